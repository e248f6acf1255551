package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sms-console/internal/middleware"
	"github.com/noah-isme/sms-console/internal/models"
	"github.com/noah-isme/sms-console/internal/service"
	"github.com/noah-isme/sms-console/pkg/response"
)

type dashboardService interface {
	Platform(ctx context.Context, sess *models.Session) (*service.PlatformDashboard, error)
	School(ctx context.Context, sess *models.Session) (*service.SchoolDashboard, error)
	Member(ctx context.Context, sess *models.Session) (*service.MemberDashboard, error)
}

// DashboardHandler wires dashboard service to HTTP endpoints.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Platform godoc
// @Summary Super admin dashboard
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /super-admin/dashboard [get]
func (h *DashboardHandler) Platform(c *gin.Context) {
	out, err := h.service.Platform(c.Request.Context(), sessionFromContext(c))
	respondDashboard(c, out, err)
}

// School godoc
// @Summary School admin dashboard
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /school-admin/dashboard [get]
func (h *DashboardHandler) School(c *gin.Context) {
	out, err := h.service.School(c.Request.Context(), sessionFromContext(c))
	respondDashboard(c, out, err)
}

// Member godoc
// @Summary Teacher or student dashboard
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /teacher/dashboard [get]
// @Router /student/dashboard [get]
func (h *DashboardHandler) Member(c *gin.Context) {
	out, err := h.service.Member(c.Request.Context(), sessionFromContext(c))
	respondDashboard(c, out, err)
}

func respondDashboard(c *gin.Context, out interface{}, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, out, middleware.ExtractMeta(c))
}
