package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/noah-isme/sms-console/internal/backend"
	"github.com/noah-isme/sms-console/internal/models"
	"github.com/noah-isme/sms-console/internal/querycache"
	appErrors "github.com/noah-isme/sms-console/pkg/errors"
)

// Result is a read together with its list count and cache provenance.
type Result[T any] struct {
	Data     T
	Count    int
	CacheHit bool
}

type cachedRead[T any] struct {
	Data  T   `json:"data"`
	Count int `json:"count"`
}

// gateway is shared by every resource service: it dispatches calls with the
// session credential, caches reads and invalidates after writes.
type gateway struct {
	client backend.Doer
	cache  *querycache.Cache
	logger *zap.Logger
}

func newGateway(client backend.Doer, cache *querycache.Cache, logger *zap.Logger) gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return gateway{client: client, cache: cache, logger: logger}
}

func credential(sess *models.Session) string {
	if sess == nil {
		return ""
	}
	return sess.Token
}

// identity names the caller a cached read belongs to. The backend filters by
// credential, so no two callers may share an entry.
func identity(sess *models.Session) string {
	switch {
	case sess == nil:
		return "anonymous"
	case sess.SubjectID != "":
		return "user:" + sess.SubjectID
	case sess.Token != "":
		sum := sha256.Sum256([]byte(sess.Token))
		return "token:" + hex.EncodeToString(sum[:8])
	default:
		return "anonymous"
	}
}

// scopeFor prefixes a read's own scope with the caller identity.
func scopeFor(sess *models.Session, scope string) string {
	id := identity(sess)
	if scope == "" || scope == id {
		return id
	}
	return id + "/" + scope
}

// read performs a cached GET, cached per caller.
func read[T any](ctx context.Context, g gateway, sess *models.Session, key querycache.Key, path string, query url.Values) (Result[T], error) {
	key.Scope = scopeFor(sess, key.Scope)
	if len(query) > 0 && key.Filters == nil {
		key.Filters = query
	}
	cached, hit, err := querycache.Fetch(ctx, g.cache, key, func(ctx context.Context) (cachedRead[T], error) {
		var out cachedRead[T]
		meta, err := g.client.Do(ctx, backend.Call{
			Method:     http.MethodGet,
			Path:       path,
			Query:      query,
			Credential: credential(sess),
		}, &out.Data)
		if err != nil {
			return out, err
		}
		if meta.Count != nil {
			out.Count = *meta.Count
		}
		return out, nil
	})
	if err != nil {
		return Result[T]{}, err
	}
	return Result[T]{Data: cached.Data, Count: cached.Count, CacheHit: hit}, nil
}

// fetch performs an uncached GET, used for reads that must observe the
// latest server state.
func fetch[T any](ctx context.Context, g gateway, sess *models.Session, path string, query url.Values) (T, error) {
	var out T
	_, err := g.client.Do(ctx, backend.Call{
		Method:     http.MethodGet,
		Path:       path,
		Query:      query,
		Credential: credential(sess),
	}, &out)
	return out, err
}

// write performs a mutation and, on success, invalidates entity for tenant.
func write[T any](ctx context.Context, g gateway, sess *models.Session, method, path string, body interface{}, entity, tenant string) (T, backend.Meta, error) {
	var out T
	meta, err := g.client.Do(ctx, backend.Call{
		Method:     method,
		Path:       path,
		Body:       body,
		Credential: credential(sess),
	}, &out)
	if err != nil {
		return out, meta, err
	}
	if err := g.cache.Invalidate(ctx, entity, tenant); err != nil {
		g.logger.Warn("invalidate after write failed",
			zap.String("entity", entity),
			zap.String("tenant", tenant),
			zap.Error(err),
		)
	}
	return out, meta, nil
}

// schoolOf returns the tenant of a school-scoped session.
func schoolOf(sess *models.Session) (string, error) {
	if sess == nil {
		return "", appErrors.ErrUnauthorized
	}
	if sess.SchoolID == "" {
		return "", appErrors.Clone(appErrors.ErrForbidden, "session is not bound to a school")
	}
	return sess.SchoolID, nil
}

func requireID(id, label string) error {
	if id == "" {
		return appErrors.Validation("invalid "+label+" id", map[string]string{"id": "is required"})
	}
	return nil
}

func schoolPath(schoolID string, parts ...string) string {
	path := "/api/school/" + url.PathEscape(schoolID)
	for _, p := range parts {
		path += "/" + url.PathEscape(p)
	}
	return path
}
