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

// ClassService manages classes and their sections.
type ClassService struct {
	res schoolResource[models.Class]
}

// NewClassService constructs a ClassService.
func NewClassService(client backend.Doer, cache *querycache.Cache, validate *validator.Validate, logger *zap.Logger) *ClassService {
	if validate == nil {
		validate = dto.NewValidator()
	}
	return &ClassService{res: schoolResource[models.Class]{
		gateway:    newGateway(client, cache, logger),
		entity:     querycache.EntityClasses,
		collection: "classes",
		label:      "class",
		validate:   validate,
		status:     func(c models.Class) models.EntityStatus { return c.Status },
	}}
}

// List returns classes matching filter.
func (s *ClassService) List(ctx context.Context, sess *models.Session, filter models.StatusFilter) (Result[[]models.Class], error) {
	return s.res.list(ctx, sess, filter.Values())
}

// Get returns a class by id.
func (s *ClassService) Get(ctx context.Context, sess *models.Session, id string) (Result[models.Class], error) {
	return s.res.get(ctx, sess, id)
}

// Create registers a class with optional sections.
func (s *ClassService) Create(ctx context.Context, sess *models.Session, req dto.CreateClassRequest) (*models.Class, error) {
	return s.res.create(ctx, sess, req)
}

// Update modifies the supplied fields of a class.
func (s *ClassService) Update(ctx context.Context, sess *models.Session, id string, req dto.UpdateClassRequest) (*models.Class, error) {
	return s.res.update(ctx, sess, id, req)
}

// Delete soft deletes a class.
func (s *ClassService) Delete(ctx context.Context, sess *models.Session, id string) error {
	return s.res.remove(ctx, sess, id)
}

// ToggleStatus flips a class between active and inactive.
func (s *ClassService) ToggleStatus(ctx context.Context, sess *models.Session, id string) (*models.Class, error) {
	return s.res.toggle(ctx, sess, id)
}

// AddSection appends a section to a class.
func (s *ClassService) AddSection(ctx context.Context, sess *models.Session, classID string, req dto.SectionInput) (*models.Class, error) {
	if err := requireID(classID, "class"); err != nil {
		return nil, err
	}
	if err := dto.Validate(s.res.validate, req, "invalid section payload"); err != nil {
		return nil, err
	}
	return s.sectionWrite(ctx, sess, http.MethodPost, req, classID, "sections")
}

// RemoveSection deletes a section from a class.
func (s *ClassService) RemoveSection(ctx context.Context, sess *models.Session, classID, sectionID string) (*models.Class, error) {
	if err := requireID(classID, "class"); err != nil {
		return nil, err
	}
	if err := requireID(sectionID, "section"); err != nil {
		return nil, err
	}
	return s.sectionWrite(ctx, sess, http.MethodDelete, nil, classID, "sections", sectionID)
}

// AssignClassTeacher sets or clears the class teacher of a section.
func (s *ClassService) AssignClassTeacher(ctx context.Context, sess *models.Session, classID, sectionID string, req dto.AssignClassTeacherRequest) (*models.Class, error) {
	if err := requireID(classID, "class"); err != nil {
		return nil, err
	}
	if err := requireID(sectionID, "section"); err != nil {
		return nil, err
	}
	return s.sectionWrite(ctx, sess, http.MethodPut, req, classID, "sections", sectionID, "teacher")
}

func (s *ClassService) sectionWrite(ctx context.Context, sess *models.Session, method string, body interface{}, parts ...string) (*models.Class, error) {
	tenant, err := schoolOf(sess)
	if err != nil {
		return nil, err
	}
	path := schoolPath(tenant, append([]string{"classes"}, parts...)...)
	out, _, err := write[models.Class](ctx, s.res.gateway, sess, method, path, body, querycache.EntityClasses, tenant)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
