package service

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sms-console/internal/backend"
	"github.com/noah-isme/sms-console/internal/dto"
	"github.com/noah-isme/sms-console/internal/models"
	"github.com/noah-isme/sms-console/internal/querycache"
)

// RequestService handles change requests (tickets) raised by school members.
type RequestService struct {
	gateway
	validate *validator.Validate
}

// NewRequestService constructs a RequestService.
func NewRequestService(client backend.Doer, cache *querycache.Cache, validate *validator.Validate, logger *zap.Logger) *RequestService {
	if validate == nil {
		validate = dto.NewValidator()
	}
	return &RequestService{gateway: newGateway(client, cache, logger), validate: validate}
}

// List returns the school's requests for administrators.
func (s *RequestService) List(ctx context.Context, sess *models.Session, filter models.RequestFilter) (Result[[]models.Request], error) {
	tenant, err := schoolOf(sess)
	if err != nil {
		return Result[[]models.Request]{}, err
	}
	query := filter.Values()
	key := querycache.Key{Entity: querycache.EntityRequests, Tenant: tenant, Filters: query}
	res, err := read[[]models.Request](ctx, s.gateway, sess, key, schoolPath(tenant, "requests"), query)
	if err == nil && res.Data == nil {
		res.Data = []models.Request{}
	}
	return res, err
}

// Mine returns the requests raised by the session's member.
func (s *RequestService) Mine(ctx context.Context, sess *models.Session) (Result[[]models.Request], error) {
	tenant, err := schoolOf(sess)
	if err != nil {
		return Result[[]models.Request]{}, err
	}
	query := url.Values{"userId": {memberID(sess)}, "userType": {sess.UserType()}}
	key := querycache.Key{Entity: querycache.EntityRequests, Tenant: tenant, Scope: "user:" + sess.SubjectID, Filters: query}
	res, err := read[[]models.Request](ctx, s.gateway, sess, key, schoolPath(tenant, "requests", "my"), query)
	if err == nil && res.Data == nil {
		res.Data = []models.Request{}
	}
	return res, err
}

// Create raises a request on behalf of the session's member. Identity fields
// left empty are taken from the session.
func (s *RequestService) Create(ctx context.Context, sess *models.Session, req dto.CreateRequestRequest) (*models.Request, error) {
	if sess != nil {
		if req.UserID == "" {
			req.UserID = memberID(sess)
		}
		if req.UserType == "" {
			req.UserType = sess.UserType()
		}
		if req.UserName == "" {
			req.UserName = sess.Name
		}
	}
	if err := dto.Validate(s.validate, req, "invalid request payload"); err != nil {
		return nil, err
	}
	tenant, err := schoolOf(sess)
	if err != nil {
		return nil, err
	}
	out, _, err := write[models.Request](ctx, s.gateway, sess, http.MethodPost, schoolPath(tenant, "requests"), req, querycache.EntityRequests, tenant)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStatus answers a request.
func (s *RequestService) UpdateStatus(ctx context.Context, sess *models.Session, id string, req dto.UpdateRequestStatusRequest) (*models.Request, error) {
	if err := requireID(id, "request"); err != nil {
		return nil, err
	}
	if err := dto.Validate(s.validate, req, "invalid request status"); err != nil {
		return nil, err
	}
	tenant, err := schoolOf(sess)
	if err != nil {
		return nil, err
	}
	out, _, err := write[models.Request](ctx, s.gateway, sess, http.MethodPut, schoolPath(tenant, "requests", id), req, querycache.EntityRequests, tenant)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// memberID prefers the school member id over the account id.
func memberID(sess *models.Session) string {
	if sess == nil {
		return ""
	}
	if sess.MemberID != "" {
		return sess.MemberID
	}
	return sess.SubjectID
}
