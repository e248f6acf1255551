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

const userAPI = "/api/admin/user"

// SchoolAdminService manages sch_admin accounts on the platform service.
type SchoolAdminService struct {
	gateway
	validate *validator.Validate
}

// NewSchoolAdminService constructs a SchoolAdminService.
func NewSchoolAdminService(client backend.Doer, cache *querycache.Cache, validate *validator.Validate, logger *zap.Logger) *SchoolAdminService {
	if validate == nil {
		validate = dto.NewValidator()
	}
	return &SchoolAdminService{gateway: newGateway(client, cache, logger), validate: validate}
}

// List returns every school admin.
func (s *SchoolAdminService) List(ctx context.Context, sess *models.Session) (Result[[]models.SchoolAdmin], error) {
	key := querycache.Key{Entity: querycache.EntitySchoolAdmins, Tenant: querycache.PlatformTenant}
	res, err := read[[]models.SchoolAdmin](ctx, s.gateway, sess, key, userAPI+"/get-users", nil)
	if err == nil && res.Data == nil {
		res.Data = []models.SchoolAdmin{}
	}
	return res, err
}

// Get returns one school admin.
func (s *SchoolAdminService) Get(ctx context.Context, sess *models.Session, id string) (Result[models.SchoolAdmin], error) {
	if err := requireID(id, "user"); err != nil {
		return Result[models.SchoolAdmin]{}, err
	}
	key := querycache.Key{Entity: querycache.EntitySchoolAdmins, Tenant: querycache.PlatformTenant}.With("id", id)
	return read[models.SchoolAdmin](ctx, s.gateway, sess, key, userAPI+"/get-user/"+url.PathEscape(id), nil)
}

// Create provisions a school admin.
func (s *SchoolAdminService) Create(ctx context.Context, sess *models.Session, req dto.CreateSchoolAdminRequest) (*models.SchoolAdmin, error) {
	if err := dto.Validate(s.validate, req, "invalid school admin payload"); err != nil {
		return nil, err
	}
	out, _, err := write[models.SchoolAdmin](ctx, s.gateway, sess, http.MethodPost, userAPI+"/create-user", req, querycache.EntitySchoolAdmins, querycache.PlatformTenant)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Update modifies the supplied fields of a school admin. An empty password
// leaves the password unchanged.
func (s *SchoolAdminService) Update(ctx context.Context, sess *models.Session, id string, req dto.UpdateSchoolAdminRequest) (*models.SchoolAdmin, error) {
	if err := requireID(id, "user"); err != nil {
		return nil, err
	}
	if err := dto.ValidatePatch(s.validate, req, "invalid school admin payload"); err != nil {
		return nil, err
	}
	return s.put(ctx, sess, id, req.Fields())
}

// ToggleStatus flips a school admin between active and inactive.
func (s *SchoolAdminService) ToggleStatus(ctx context.Context, sess *models.Session, id string) (*models.SchoolAdmin, error) {
	if err := requireID(id, "user"); err != nil {
		return nil, err
	}
	current, err := fetch[models.SchoolAdmin](ctx, s.gateway, sess, userAPI+"/get-user/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	return s.put(ctx, sess, id, dto.FieldSet{"status": current.Status.Toggle()})
}

func (s *SchoolAdminService) put(ctx context.Context, sess *models.Session, id string, fields dto.FieldSet) (*models.SchoolAdmin, error) {
	out, _, err := write[models.SchoolAdmin](ctx, s.gateway, sess, http.MethodPut, userAPI+"/update-user/"+url.PathEscape(id), fields, querycache.EntitySchoolAdmins, querycache.PlatformTenant)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
