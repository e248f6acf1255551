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

// TeacherService manages the teachers of the session's school.
type TeacherService struct {
	res schoolResource[models.Teacher]
}

// NewTeacherService constructs a TeacherService.
func NewTeacherService(client backend.Doer, cache *querycache.Cache, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = dto.NewValidator()
	}
	return &TeacherService{res: schoolResource[models.Teacher]{
		gateway:    newGateway(client, cache, logger),
		entity:     querycache.EntityTeachers,
		collection: "teachers",
		label:      "teacher",
		validate:   validate,
		status:     func(t models.Teacher) models.EntityStatus { return t.Status },
	}}
}

// List returns teachers matching filter.
func (s *TeacherService) List(ctx context.Context, sess *models.Session, filter models.TeacherFilter) (Result[[]models.Teacher], error) {
	return s.res.list(ctx, sess, filter.Values())
}

// Get returns a teacher by id.
func (s *TeacherService) Get(ctx context.Context, sess *models.Session, id string) (Result[models.Teacher], error) {
	return s.res.get(ctx, sess, id)
}

// Create registers a new teacher.
func (s *TeacherService) Create(ctx context.Context, sess *models.Session, req dto.CreateTeacherRequest) (*models.Teacher, error) {
	return s.res.create(ctx, sess, req)
}

// Update modifies the supplied fields of a teacher.
func (s *TeacherService) Update(ctx context.Context, sess *models.Session, id string, req dto.UpdateTeacherRequest) (*models.Teacher, error) {
	return s.res.update(ctx, sess, id, req)
}

// Delete soft deletes a teacher.
func (s *TeacherService) Delete(ctx context.Context, sess *models.Session, id string) error {
	return s.res.remove(ctx, sess, id)
}

// ToggleStatus flips a teacher between active and inactive.
func (s *TeacherService) ToggleStatus(ctx context.Context, sess *models.Session, id string) (*models.Teacher, error) {
	return s.res.toggle(ctx, sess, id)
}
