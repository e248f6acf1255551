package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sms-console/internal/dto"
	"github.com/noah-isme/sms-console/internal/form"
	"github.com/noah-isme/sms-console/internal/middleware"
	"github.com/noah-isme/sms-console/internal/models"
	"github.com/noah-isme/sms-console/internal/service"
	"github.com/noah-isme/sms-console/internal/view"
	"github.com/noah-isme/sms-console/pkg/response"
)

// RequestHandler serves change requests and leave applications.
type RequestHandler struct {
	requests *service.RequestService
	leave    *service.LeaveService
	submitter
}

// NewRequestHandler constructs a request handler.
func NewRequestHandler(requests *service.RequestService, leave *service.LeaveService, forms *form.Tracker) *RequestHandler {
	return &RequestHandler{requests: requests, leave: leave, submitter: submitter{forms: forms}}
}

// List godoc
// @Summary List change requests of the school
// @Tags Requests
// @Produce json
// @Param status query string false "pending, approved or rejected"
// @Param userType query string false "Requester type"
// @Param format query string false "csv or pdf export"
// @Success 200 {object} response.Envelope
// @Router /school-admin/requests [get]
func (h *RequestHandler) List(c *gin.Context) {
	var filter models.RequestFilter
	if !bindQuery(c, &filter) {
		return
	}
	res, err := h.requests.List(c.Request.Context(), sessionFromContext(c), filter)
	list(c, res, err, view.RequestTable, "requests")
}

// Mine godoc
// @Summary Change requests raised by the signed-in member
// @Tags Requests
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /teacher/my-requests [get]
// @Router /student/my-requests [get]
func (h *RequestHandler) Mine(c *gin.Context) {
	res, err := h.requests.Mine(c.Request.Context(), sessionFromContext(c))
	list(c, res, err, view.RequestTable, "my-requests")
}

// Create godoc
// @Summary Raise a change request
// @Tags Requests
// @Accept json
// @Produce json
// @Param payload body dto.CreateRequestRequest true "Request payload"
// @Success 201 {object} response.Envelope
// @Router /teacher/my-requests [post]
// @Router /student/my-requests [post]
func (h *RequestHandler) Create(c *gin.Context) {
	var req dto.CreateRequestRequest
	if !bindJSON(c, &req) {
		return
	}
	mutate(c, h.submitter, "request:create", http.StatusCreated, func() (*models.Request, error) {
		return h.requests.Create(c.Request.Context(), sessionFromContext(c), req)
	})
}

// UpdateStatus godoc
// @Summary Answer a change request
// @Tags Requests
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param payload body dto.UpdateRequestStatusRequest true "Decision"
// @Success 200 {object} response.Envelope
// @Router /school-admin/requests/{id} [put]
func (h *RequestHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateRequestStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	id := c.Param("id")
	mutate(c, h.submitter, "request:status:"+id, http.StatusOK, func() (*models.Request, error) {
		return h.requests.UpdateStatus(c.Request.Context(), sessionFromContext(c), id, req)
	})
}

// ApplyLeave godoc
// @Summary Apply for leave
// @Tags Leave
// @Accept json
// @Produce json
// @Param payload body dto.ApplyLeaveRequest true "Leave payload"
// @Success 201 {object} response.Envelope
// @Router /teacher/leave [post]
// @Router /student/leave [post]
func (h *RequestHandler) ApplyLeave(c *gin.Context) {
	var req dto.ApplyLeaveRequest
	if !bindJSON(c, &req) {
		return
	}
	mutate(c, h.submitter, "leave:apply", http.StatusCreated, func() (*models.LeaveRequest, error) {
		return h.leave.Apply(c.Request.Context(), sessionFromContext(c), req)
	})
}

// MyLeave godoc
// @Summary Leave applications of the signed-in member
// @Tags Leave
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /teacher/leave [get]
// @Router /student/leave [get]
func (h *RequestHandler) MyLeave(c *gin.Context) {
	h.leaveList(c, h.leave.Mine, "my-leave")
}

// AllLeave godoc
// @Summary Every leave application of the school
// @Tags Leave
// @Produce json
// @Param status query string false "pending, approved or rejected"
// @Param applicantType query string false "teacher or student"
// @Param format query string false "csv or pdf export"
// @Success 200 {object} response.Envelope
// @Router /school-admin/leave [get]
func (h *RequestHandler) AllLeave(c *gin.Context) {
	h.leaveList(c, h.leave.All, "leave")
}

// ClassLeave godoc
// @Summary Student leave applications for the class teacher
// @Tags Leave
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /teacher/leave/class [get]
func (h *RequestHandler) ClassLeave(c *gin.Context) {
	h.leaveList(c, h.leave.ClassLeaves, "class-leave")
}

type leaveLister func(ctx context.Context, sess *models.Session, filter models.LeaveFilter) (service.Result[models.LeaveList], error)

func (h *RequestHandler) leaveList(c *gin.Context, fetch leaveLister, name string) {
	var filter models.LeaveFilter
	if !bindQuery(c, &filter) {
		return
	}
	res, err := fetch(c.Request.Context(), sessionFromContext(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	if raw := c.Query("format"); raw != "" {
		exportTable(c, res.Data.Leaves, view.LeaveTable, name, raw)
		return
	}
	middleware.SetCacheHit(c, res.CacheHit)
	response.List(c, res.Data, len(res.Data.Leaves), middleware.ExtractMeta(c))
}

// GetLeave godoc
// @Summary Get leave application
// @Tags Leave
// @Produce json
// @Param id path string true "Leave ID"
// @Success 200 {object} response.Envelope
// @Router /school-admin/leave/{id} [get]
func (h *RequestHandler) GetLeave(c *gin.Context) {
	res, err := h.leave.Get(c.Request.Context(), sessionFromContext(c), c.Param("id"))
	single(c, res, err)
}

// ProcessLeave godoc
// @Summary Approve or reject a leave application
// @Tags Leave
// @Accept json
// @Produce json
// @Param id path string true "Leave ID"
// @Param payload body dto.ProcessLeaveRequest true "Decision"
// @Success 200 {object} response.Envelope
// @Router /school-admin/leave/{id}/process [put]
// @Router /teacher/leave/{id}/process [put]
func (h *RequestHandler) ProcessLeave(c *gin.Context) {
	var req dto.ProcessLeaveRequest
	if !bindJSON(c, &req) {
		return
	}
	id := c.Param("id")
	mutate(c, h.submitter, "leave:process:"+id, http.StatusOK, func() (*models.LeaveRequest, error) {
		return h.leave.Process(c.Request.Context(), sessionFromContext(c), id, req)
	})
}

// CancelLeave godoc
// @Summary Withdraw a pending leave application
// @Tags Leave
// @Param id path string true "Leave ID"
// @Success 204
// @Router /teacher/leave/{id} [delete]
// @Router /student/leave/{id} [delete]
func (h *RequestHandler) CancelLeave(c *gin.Context) {
	id := c.Param("id")
	remove(c, h.submitter, "leave:cancel:"+id, func() error {
		return h.leave.Cancel(c.Request.Context(), sessionFromContext(c), id)
	})
}

// LeaveStats godoc
// @Summary Leave counters for the dashboard
// @Tags Leave
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /school-admin/leave/stats [get]
func (h *RequestHandler) LeaveStats(c *gin.Context) {
	res, err := h.leave.Stats(c.Request.Context(), sessionFromContext(c))
	single(c, res, err)
}
