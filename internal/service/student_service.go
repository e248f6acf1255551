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

// StudentService manages the students of the session's school.
type StudentService struct {
	res schoolResource[models.Student]
}

// NewStudentService constructs a StudentService.
func NewStudentService(client backend.Doer, cache *querycache.Cache, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = dto.NewValidator()
	}
	return &StudentService{res: schoolResource[models.Student]{
		gateway:    newGateway(client, cache, logger),
		entity:     querycache.EntityStudents,
		collection: "students",
		label:      "student",
		validate:   validate,
		status:     func(s models.Student) models.EntityStatus { return s.Status },
	}}
}

// List returns students matching filter.
func (s *StudentService) List(ctx context.Context, sess *models.Session, filter models.StudentFilter) (Result[[]models.Student], error) {
	return s.res.list(ctx, sess, filter.Values())
}

// Get returns a student by id.
func (s *StudentService) Get(ctx context.Context, sess *models.Session, id string) (Result[models.Student], error) {
	return s.res.get(ctx, sess, id)
}

// Search finds students by name for autocomplete fields.
func (s *StudentService) Search(ctx context.Context, sess *models.Session, query string) (Result[[]models.Student], error) {
	return s.res.search(ctx, sess, strings.TrimSpace(query))
}

// Create registers a new student.
func (s *StudentService) Create(ctx context.Context, sess *models.Session, req dto.CreateStudentRequest) (*models.Student, error) {
	return s.res.create(ctx, sess, req)
}

// Update modifies the supplied fields of a student.
func (s *StudentService) Update(ctx context.Context, sess *models.Session, id string, req dto.UpdateStudentRequest) (*models.Student, error) {
	return s.res.update(ctx, sess, id, req)
}

// Delete soft deletes a student.
func (s *StudentService) Delete(ctx context.Context, sess *models.Session, id string) error {
	return s.res.remove(ctx, sess, id)
}

// ToggleStatus flips a student between active and inactive.
func (s *StudentService) ToggleStatus(ctx context.Context, sess *models.Session, id string) (*models.Student, error) {
	return s.res.toggle(ctx, sess, id)
}
