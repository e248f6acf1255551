package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sms-console/internal/backend"
	"github.com/noah-isme/sms-console/internal/dto"
	"github.com/noah-isme/sms-console/internal/models"
	"github.com/noah-isme/sms-console/internal/querycache"
)

// ParentService manages parents and their links to students.
type ParentService struct {
	res schoolResource[models.Parent]
}

// NewParentService constructs a ParentService.
func NewParentService(client backend.Doer, cache *querycache.Cache, validate *validator.Validate, logger *zap.Logger) *ParentService {
	if validate == nil {
		validate = dto.NewValidator()
	}
	return &ParentService{res: schoolResource[models.Parent]{
		gateway:    newGateway(client, cache, logger),
		entity:     querycache.EntityParents,
		collection: "parents",
		label:      "parent",
		validate:   validate,
		status:     func(p models.Parent) models.EntityStatus { return p.Status },
	}}
}

// List returns parents matching filter.
func (s *ParentService) List(ctx context.Context, sess *models.Session, filter models.ParentFilter) (Result[[]models.Parent], error) {
	return s.res.list(ctx, sess, filter.Values())
}

// Get returns a parent by id.
func (s *ParentService) Get(ctx context.Context, sess *models.Session, id string) (Result[models.Parent], error) {
	return s.res.get(ctx, sess, id)
}

// ByStudent returns the parents linked to a student.
func (s *ParentService) ByStudent(ctx context.Context, sess *models.Session, studentID string) (Result[[]models.Parent], error) {
	if err := requireID(studentID, "student"); err != nil {
		return Result[[]models.Parent]{}, err
	}
	tenant, err := schoolOf(sess)
	if err != nil {
		return Result[[]models.Parent]{}, err
	}
	key := querycache.Key{Entity: querycache.EntityParents, Tenant: tenant}.With("studentId", studentID)
	res, err := read[[]models.Parent](ctx, s.res.gateway, sess, key, schoolPath(tenant, "parents", "student", studentID), nil)
	if err == nil && res.Data == nil {
		res.Data = []models.Parent{}
	}
	return res, err
}

// Search finds parents by name for autocomplete fields.
func (s *ParentService) Search(ctx context.Context, sess *models.Session, query string) (Result[[]models.Parent], error) {
	return s.res.search(ctx, sess, strings.TrimSpace(query))
}

// Create registers a parent.
func (s *ParentService) Create(ctx context.Context, sess *models.Session, req dto.CreateParentRequest) (*models.Parent, error) {
	return s.res.create(ctx, sess, req)
}

// Update modifies the supplied fields of a parent.
func (s *ParentService) Update(ctx context.Context, sess *models.Session, id string, req dto.UpdateParentRequest) (*models.Parent, error) {
	return s.res.update(ctx, sess, id, req)
}

// Delete soft deletes a parent.
func (s *ParentService) Delete(ctx context.Context, sess *models.Session, id string) error {
	return s.res.remove(ctx, sess, id)
}

// ToggleStatus flips a parent between active and inactive.
func (s *ParentService) ToggleStatus(ctx context.Context, sess *models.Session, id string) (*models.Parent, error) {
	return s.res.toggle(ctx, sess, id)
}
