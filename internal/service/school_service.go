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

const schoolAPI = "/api/admin/school"

// SchoolService manages tenants on the platform service.
type SchoolService struct {
	gateway
	validate *validator.Validate
}

// NewSchoolService constructs a SchoolService.
func NewSchoolService(client backend.Doer, cache *querycache.Cache, validate *validator.Validate, logger *zap.Logger) *SchoolService {
	if validate == nil {
		validate = dto.NewValidator()
	}
	return &SchoolService{gateway: newGateway(client, cache, logger), validate: validate}
}

// List returns every school.
func (s *SchoolService) List(ctx context.Context, sess *models.Session) (Result[[]models.School], error) {
	key := querycache.Key{Entity: querycache.EntitySchools, Tenant: querycache.PlatformTenant}
	res, err := read[[]models.School](ctx, s.gateway, sess, key, schoolAPI+"/get-all-schools", nil)
	if err == nil && res.Data == nil {
		res.Data = []models.School{}
	}
	return res, err
}

// Get returns one school. School admins read their own school through it.
func (s *SchoolService) Get(ctx context.Context, sess *models.Session, id string) (Result[models.School], error) {
	if err := requireID(id, "school"); err != nil {
		return Result[models.School]{}, err
	}
	key := querycache.Key{Entity: querycache.EntitySchools, Tenant: querycache.PlatformTenant}.With("id", id)
	return read[models.School](ctx, s.gateway, sess, key, schoolAPI+"/get-school/"+url.PathEscape(id), nil)
}

// Create registers a school; the platform assigns its id and active status.
func (s *SchoolService) Create(ctx context.Context, sess *models.Session, req dto.CreateSchoolRequest) (*models.School, error) {
	if err := dto.Validate(s.validate, req, "invalid school payload"); err != nil {
		return nil, err
	}
	out, _, err := write[models.School](ctx, s.gateway, sess, http.MethodPost, schoolAPI+"/create-school", req, querycache.EntitySchools, querycache.PlatformTenant)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Update modifies the supplied fields of a school.
func (s *SchoolService) Update(ctx context.Context, sess *models.Session, id string, req dto.UpdateSchoolRequest) (*models.School, error) {
	if err := requireID(id, "school"); err != nil {
		return nil, err
	}
	if err := dto.ValidatePatch(s.validate, req, "invalid school payload"); err != nil {
		return nil, err
	}
	return s.put(ctx, sess, id, req.Fields())
}

// ToggleStatus flips a school between active and inactive.
func (s *SchoolService) ToggleStatus(ctx context.Context, sess *models.Session, id string) (*models.School, error) {
	if err := requireID(id, "school"); err != nil {
		return nil, err
	}
	current, err := fetch[models.School](ctx, s.gateway, sess, schoolAPI+"/get-school/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	return s.put(ctx, sess, id, dto.FieldSet{"status": current.Status.Toggle()})
}

// AttendanceSettings returns the attendance configuration of the session's
// school. Schools without settings use the simple mode.
func (s *SchoolService) AttendanceSettings(ctx context.Context, sess *models.Session) (*models.AttendanceSettings, error) {
	tenant, err := schoolOf(sess)
	if err != nil {
		return nil, err
	}
	res, err := s.Get(ctx, sess, tenant)
	if err != nil {
		return nil, err
	}
	if res.Data.AttendanceSettings == nil {
		return &models.AttendanceSettings{Mode: models.ModeSimple}, nil
	}
	return res.Data.AttendanceSettings, nil
}

func (s *SchoolService) put(ctx context.Context, sess *models.Session, id string, fields dto.FieldSet) (*models.School, error) {
	out, _, err := write[models.School](ctx, s.gateway, sess, http.MethodPut, schoolAPI+"/update-school/"+url.PathEscape(id), fields, querycache.EntitySchools, querycache.PlatformTenant)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
