package service

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/sms-console/internal/dto"
	"github.com/noah-isme/sms-console/internal/models"
	"github.com/noah-isme/sms-console/internal/querycache"
)

// schoolResource implements the list/get/create/update/delete/toggle set of
// a collection under /api/school/{schoolId}/.
type schoolResource[T any] struct {
	gateway
	entity     string
	collection string
	label      string
	validate   *validator.Validate
	status     func(T) models.EntityStatus
}

func (r schoolResource[T]) list(ctx context.Context, sess *models.Session, filters url.Values) (Result[[]T], error) {
	tenant, err := schoolOf(sess)
	if err != nil {
		return Result[[]T]{}, err
	}
	key := querycache.Key{Entity: r.entity, Tenant: tenant, Filters: filters}
	res, err := read[[]T](ctx, r.gateway, sess, key, schoolPath(tenant, r.collection), filters)
	if err != nil {
		return res, err
	}
	if res.Data == nil {
		res.Data = []T{}
	}
	return res, nil
}

func (r schoolResource[T]) get(ctx context.Context, sess *models.Session, id string) (Result[T], error) {
	if err := requireID(id, r.label); err != nil {
		return Result[T]{}, err
	}
	tenant, err := schoolOf(sess)
	if err != nil {
		return Result[T]{}, err
	}
	key := querycache.Key{Entity: r.entity, Tenant: tenant}.With("id", id)
	return read[T](ctx, r.gateway, sess, key, schoolPath(tenant, r.collection, id), nil)
}

func (r schoolResource[T]) create(ctx context.Context, sess *models.Session, payload interface{}) (*T, error) {
	if err := dto.Validate(r.validate, payload, "invalid "+r.label+" payload"); err != nil {
		return nil, err
	}
	tenant, err := schoolOf(sess)
	if err != nil {
		return nil, err
	}
	out, _, err := write[T](ctx, r.gateway, sess, http.MethodPost, schoolPath(tenant, r.collection), payload, r.entity, tenant)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r schoolResource[T]) update(ctx context.Context, sess *models.Session, id string, patch dto.Patch) (*T, error) {
	if err := requireID(id, r.label); err != nil {
		return nil, err
	}
	if err := dto.ValidatePatch(r.validate, patch, "invalid "+r.label+" payload"); err != nil {
		return nil, err
	}
	return r.put(ctx, sess, id, patch.Fields())
}

func (r schoolResource[T]) put(ctx context.Context, sess *models.Session, id string, fields dto.FieldSet) (*T, error) {
	tenant, err := schoolOf(sess)
	if err != nil {
		return nil, err
	}
	out, _, err := write[T](ctx, r.gateway, sess, http.MethodPut, schoolPath(tenant, r.collection, id), fields, r.entity, tenant)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r schoolResource[T]) remove(ctx context.Context, sess *models.Session, id string) error {
	if err := requireID(id, r.label); err != nil {
		return err
	}
	tenant, err := schoolOf(sess)
	if err != nil {
		return err
	}
	_, _, err = write[struct{}](ctx, r.gateway, sess, http.MethodDelete, schoolPath(tenant, r.collection, id), nil, r.entity, tenant)
	return err
}

// toggle flips the status of the current server copy; the read bypasses the
// cache so two quick toggles act on the latest state the backend reported.
func (r schoolResource[T]) toggle(ctx context.Context, sess *models.Session, id string) (*T, error) {
	if err := requireID(id, r.label); err != nil {
		return nil, err
	}
	tenant, err := schoolOf(sess)
	if err != nil {
		return nil, err
	}
	current, err := fetch[T](ctx, r.gateway, sess, schoolPath(tenant, r.collection, id), nil)
	if err != nil {
		return nil, err
	}
	return r.put(ctx, sess, id, dto.FieldSet{"status": r.status(current).Toggle()})
}

// search issues a search-as-you-type query. Blank queries return nothing.
func (r schoolResource[T]) search(ctx context.Context, sess *models.Session, query string) (Result[[]T], error) {
	if query == "" {
		return Result[[]T]{Data: []T{}}, nil
	}
	tenant, err := schoolOf(sess)
	if err != nil {
		return Result[[]T]{}, err
	}
	filters := url.Values{"query": {query}}
	key := querycache.Key{Entity: r.entity, Tenant: tenant, Filters: url.Values{"search": {query}}}
	res, err := read[[]T](ctx, r.gateway, sess, key, schoolPath(tenant, r.collection, "search"), filters)
	if err != nil {
		return res, err
	}
	if res.Data == nil {
		res.Data = []T{}
	}
	return res, nil
}
