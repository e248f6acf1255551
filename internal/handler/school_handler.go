package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sms-console/internal/dto"
	"github.com/noah-isme/sms-console/internal/form"
	"github.com/noah-isme/sms-console/internal/models"
	"github.com/noah-isme/sms-console/internal/service"
	"github.com/noah-isme/sms-console/internal/view"
	appErrors "github.com/noah-isme/sms-console/pkg/errors"
	"github.com/noah-isme/sms-console/pkg/response"
)

// SchoolHandler serves the super admin views over schools and their admins,
// and a school admin's view of their own school.
type SchoolHandler struct {
	schools *service.SchoolService
	admins  *service.SchoolAdminService
	submitter
}

// NewSchoolHandler constructs a school handler.
func NewSchoolHandler(schools *service.SchoolService, admins *service.SchoolAdminService, forms *form.Tracker) *SchoolHandler {
	return &SchoolHandler{schools: schools, admins: admins, submitter: submitter{forms: forms}}
}

// List godoc
// @Summary List schools
// @Tags Schools
// @Produce json
// @Param format query string false "csv or pdf export"
// @Success 200 {object} response.Envelope
// @Router /super-admin/schools [get]
func (h *SchoolHandler) List(c *gin.Context) {
	res, err := h.schools.List(c.Request.Context(), sessionFromContext(c))
	list(c, res, err, view.SchoolTable, "schools")
}

// Get godoc
// @Summary Get school
// @Tags Schools
// @Produce json
// @Param id path string true "School ID"
// @Success 200 {object} response.Envelope
// @Router /super-admin/schools/{id} [get]
func (h *SchoolHandler) Get(c *gin.Context) {
	res, err := h.schools.Get(c.Request.Context(), sessionFromContext(c), c.Param("id"))
	single(c, res, err)
}

// Create godoc
// @Summary Create school
// @Tags Schools
// @Accept json
// @Produce json
// @Param payload body dto.CreateSchoolRequest true "School payload"
// @Success 201 {object} response.Envelope
// @Router /super-admin/schools [post]
func (h *SchoolHandler) Create(c *gin.Context) {
	var req dto.CreateSchoolRequest
	if !bindJSON(c, &req) {
		return
	}
	mutate(c, h.submitter, "school:create", http.StatusCreated, func() (*models.School, error) {
		return h.schools.Create(c.Request.Context(), sessionFromContext(c), req)
	})
}

// Update godoc
// @Summary Update school
// @Tags Schools
// @Accept json
// @Produce json
// @Param id path string true "School ID"
// @Param payload body dto.UpdateSchoolRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Router /super-admin/schools/{id} [put]
func (h *SchoolHandler) Update(c *gin.Context) {
	var req dto.UpdateSchoolRequest
	if !bindJSON(c, &req) {
		return
	}
	id := c.Param("id")
	mutate(c, h.submitter, "school:update:"+id, http.StatusOK, func() (*models.School, error) {
		return h.schools.Update(c.Request.Context(), sessionFromContext(c), id, req)
	})
}

// ToggleStatus godoc
// @Summary Activate or deactivate a school
// @Tags Schools
// @Produce json
// @Param id path string true "School ID"
// @Success 200 {object} response.Envelope
// @Router /super-admin/schools/{id}/toggle-status [patch]
func (h *SchoolHandler) ToggleStatus(c *gin.Context) {
	id := c.Param("id")
	mutate(c, h.submitter, "school:toggle:"+id, http.StatusOK, func() (*models.School, error) {
		return h.schools.ToggleStatus(c.Request.Context(), sessionFromContext(c), id)
	})
}

// ListAdmins godoc
// @Summary List school admins
// @Tags Users
// @Produce json
// @Param format query string false "csv or pdf export"
// @Success 200 {object} response.Envelope
// @Router /super-admin/users [get]
func (h *SchoolHandler) ListAdmins(c *gin.Context) {
	res, err := h.admins.List(c.Request.Context(), sessionFromContext(c))
	list(c, res, err, view.SchoolAdminTable, "school-admins")
}

// GetAdmin godoc
// @Summary Get school admin
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Router /super-admin/users/{id} [get]
func (h *SchoolHandler) GetAdmin(c *gin.Context) {
	res, err := h.admins.Get(c.Request.Context(), sessionFromContext(c), c.Param("id"))
	single(c, res, err)
}

// CreateAdmin godoc
// @Summary Create school admin
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body dto.CreateSchoolAdminRequest true "User payload"
// @Success 201 {object} response.Envelope
// @Router /super-admin/users [post]
func (h *SchoolHandler) CreateAdmin(c *gin.Context) {
	var req dto.CreateSchoolAdminRequest
	if !bindJSON(c, &req) {
		return
	}
	mutate(c, h.submitter, "user:create", http.StatusCreated, func() (*models.SchoolAdmin, error) {
		return h.admins.Create(c.Request.Context(), sessionFromContext(c), req)
	})
}

// UpdateAdmin godoc
// @Summary Update school admin
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param payload body dto.UpdateSchoolAdminRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Router /super-admin/users/{id} [put]
func (h *SchoolHandler) UpdateAdmin(c *gin.Context) {
	var req dto.UpdateSchoolAdminRequest
	if !bindJSON(c, &req) {
		return
	}
	id := c.Param("id")
	mutate(c, h.submitter, "user:update:"+id, http.StatusOK, func() (*models.SchoolAdmin, error) {
		return h.admins.Update(c.Request.Context(), sessionFromContext(c), id, req)
	})
}

// ToggleAdmin godoc
// @Summary Activate or deactivate a school admin
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Router /super-admin/users/{id}/toggle-status [patch]
func (h *SchoolHandler) ToggleAdmin(c *gin.Context) {
	id := c.Param("id")
	mutate(c, h.submitter, "user:toggle:"+id, http.StatusOK, func() (*models.SchoolAdmin, error) {
		return h.admins.ToggleStatus(c.Request.Context(), sessionFromContext(c), id)
	})
}

// OwnSchool godoc
// @Summary The signed-in admin's school
// @Tags Schools
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /school-admin/school [get]
func (h *SchoolHandler) OwnSchool(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil || sess.SchoolID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "no school selected"))
		return
	}
	res, err := h.schools.Get(c.Request.Context(), sess, sess.SchoolID)
	single(c, res, err)
}

// AttendanceSettings godoc
// @Summary Attendance configuration of the signed-in member's school
// @Tags Schools
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /school-admin/school/attendance-settings [get]
func (h *SchoolHandler) AttendanceSettings(c *gin.Context) {
	settings, err := h.schools.AttendanceSettings(c.Request.Context(), sessionFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, settings)
}
