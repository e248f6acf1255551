package service

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sms-console/internal/backend"
	"github.com/noah-isme/sms-console/internal/dto"
	"github.com/noah-isme/sms-console/internal/models"
	"github.com/noah-isme/sms-console/internal/querycache"
)

// LeaveService handles leave applications and their approval.
type LeaveService struct {
	gateway
	validate *validator.Validate
}

// NewLeaveService constructs a LeaveService.
func NewLeaveService(client backend.Doer, cache *querycache.Cache, validate *validator.Validate, logger *zap.Logger) *LeaveService {
	if validate == nil {
		validate = dto.NewValidator()
	}
	return &LeaveService{gateway: newGateway(client, cache, logger), validate: validate}
}

// Apply submits a leave application for the session's member.
func (s *LeaveService) Apply(ctx context.Context, sess *models.Session, req dto.ApplyLeaveRequest) (*models.LeaveRequest, error) {
	if err := dto.Validate(s.validate, req, "invalid leave payload"); err != nil {
		return nil, err
	}
	return s.mutate(ctx, sess, http.MethodPost, req, "apply")
}

// Mine returns the session member's leave applications.
func (s *LeaveService) Mine(ctx context.Context, sess *models.Session, filter models.LeaveFilter) (Result[models.LeaveList], error) {
	return s.list(ctx, sess, "my", "user:"+subjectOf(sess), filter)
}

// All returns every leave application of the school.
func (s *LeaveService) All(ctx context.Context, sess *models.Session, filter models.LeaveFilter) (Result[models.LeaveList], error) {
	return s.list(ctx, sess, "all", "", filter)
}

// ClassLeaves returns student applications for a class teacher.
func (s *LeaveService) ClassLeaves(ctx context.Context, sess *models.Session, filter models.LeaveFilter) (Result[models.LeaveList], error) {
	return s.list(ctx, sess, "class-leaves", "user:"+subjectOf(sess), filter)
}

// Get returns one leave application.
func (s *LeaveService) Get(ctx context.Context, sess *models.Session, id string) (Result[models.LeaveRequest], error) {
	if err := requireID(id, "leave"); err != nil {
		return Result[models.LeaveRequest]{}, err
	}
	tenant, err := schoolOf(sess)
	if err != nil {
		return Result[models.LeaveRequest]{}, err
	}
	key := querycache.Key{Entity: querycache.EntityLeave, Tenant: tenant}.With("id", id)
	return read[models.LeaveRequest](ctx, s.gateway, sess, key, schoolPath(tenant, "leave", id), nil)
}

// Process approves or rejects an application.
func (s *LeaveService) Process(ctx context.Context, sess *models.Session, id string, req dto.ProcessLeaveRequest) (*models.LeaveRequest, error) {
	if err := requireID(id, "leave"); err != nil {
		return nil, err
	}
	if err := dto.Validate(s.validate, req, "invalid leave decision"); err != nil {
		return nil, err
	}
	return s.mutate(ctx, sess, http.MethodPut, req, id, "process")
}

// Cancel withdraws a pending application.
func (s *LeaveService) Cancel(ctx context.Context, sess *models.Session, id string) error {
	if err := requireID(id, "leave"); err != nil {
		return err
	}
	_, err := s.mutate(ctx, sess, http.MethodDelete, nil, id)
	return err
}

// Stats returns the dashboard counters.
func (s *LeaveService) Stats(ctx context.Context, sess *models.Session) (Result[models.LeaveStats], error) {
	tenant, err := schoolOf(sess)
	if err != nil {
		return Result[models.LeaveStats]{}, err
	}
	key := querycache.Key{Entity: querycache.EntityLeave, Tenant: tenant, Scope: "stats"}
	return read[models.LeaveStats](ctx, s.gateway, sess, key, schoolPath(tenant, "leave", "stats"), nil)
}

func (s *LeaveService) list(ctx context.Context, sess *models.Session, view, scope string, filter models.LeaveFilter) (Result[models.LeaveList], error) {
	tenant, err := schoolOf(sess)
	if err != nil {
		return Result[models.LeaveList]{}, err
	}
	query := filter.Values()
	key := querycache.Key{Entity: querycache.EntityLeave, Tenant: tenant, Scope: scope, Filters: query}.With("view", view)
	res, err := read[models.LeaveList](ctx, s.gateway, sess, key, schoolPath(tenant, "leave", view), query)
	if err == nil && res.Data.Leaves == nil {
		res.Data.Leaves = []models.LeaveRequest{}
	}
	return res, err
}

func (s *LeaveService) mutate(ctx context.Context, sess *models.Session, method string, body interface{}, parts ...string) (*models.LeaveRequest, error) {
	tenant, err := schoolOf(sess)
	if err != nil {
		return nil, err
	}
	out, _, err := write[models.LeaveRequest](ctx, s.gateway, sess, method, schoolPath(tenant, append([]string{"leave"}, parts...)...), body, querycache.EntityLeave, tenant)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func subjectOf(sess *models.Session) string {
	if sess == nil {
		return ""
	}
	return sess.SubjectID
}
