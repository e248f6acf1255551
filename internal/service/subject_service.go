package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sms-console/internal/backend"
	"github.com/noah-isme/sms-console/internal/dto"
	"github.com/noah-isme/sms-console/internal/models"
	"github.com/noah-isme/sms-console/internal/querycache"
)

// SubjectService manages the subjects taught in a school.
type SubjectService struct {
	res schoolResource[models.Subject]
}

// NewSubjectService constructs a SubjectService.
func NewSubjectService(client backend.Doer, cache *querycache.Cache, validate *validator.Validate, logger *zap.Logger) *SubjectService {
	if validate == nil {
		validate = dto.NewValidator()
	}
	return &SubjectService{res: schoolResource[models.Subject]{
		gateway:    newGateway(client, cache, logger),
		entity:     querycache.EntitySubjects,
		collection: "subjects",
		label:      "subject",
		validate:   validate,
		status:     func(s models.Subject) models.EntityStatus { return s.Status },
	}}
}

// List returns subjects matching filter.
func (s *SubjectService) List(ctx context.Context, sess *models.Session, filter models.StatusFilter) (Result[[]models.Subject], error) {
	return s.res.list(ctx, sess, filter.Values())
}

// Get returns a subject by id.
func (s *SubjectService) Get(ctx context.Context, sess *models.Session, id string) (Result[models.Subject], error) {
	return s.res.get(ctx, sess, id)
}

// Create registers a subject.
func (s *SubjectService) Create(ctx context.Context, sess *models.Session, req dto.CreateSubjectRequest) (*models.Subject, error) {
	return s.res.create(ctx, sess, req)
}

// Update modifies the supplied fields of a subject.
func (s *SubjectService) Update(ctx context.Context, sess *models.Session, id string, req dto.UpdateSubjectRequest) (*models.Subject, error) {
	return s.res.update(ctx, sess, id, req)
}

// Delete soft deletes a subject.
func (s *SubjectService) Delete(ctx context.Context, sess *models.Session, id string) error {
	return s.res.remove(ctx, sess, id)
}

// ToggleStatus flips a subject between active and inactive.
func (s *SubjectService) ToggleStatus(ctx context.Context, sess *models.Session, id string) (*models.Subject, error) {
	return s.res.toggle(ctx, sess, id)
}
