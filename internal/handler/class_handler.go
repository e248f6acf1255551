package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sms-console/internal/dto"
	"github.com/noah-isme/sms-console/internal/form"
	"github.com/noah-isme/sms-console/internal/models"
	"github.com/noah-isme/sms-console/internal/service"
	"github.com/noah-isme/sms-console/internal/view"
)

// ClassHandler serves classes, their sections and subjects.
type ClassHandler struct {
	classes  *service.ClassService
	subjects *service.SubjectService
	submitter
}

// NewClassHandler constructs a class handler.
func NewClassHandler(classes *service.ClassService, subjects *service.SubjectService, forms *form.Tracker) *ClassHandler {
	return &ClassHandler{classes: classes, subjects: subjects, submitter: submitter{forms: forms}}
}

// List godoc
// @Summary List classes
// @Tags Classes
// @Produce json
// @Param status query string false "active or inactive"
// @Param format query string false "csv or pdf export"
// @Success 200 {object} response.Envelope
// @Router /school-admin/classes [get]
func (h *ClassHandler) List(c *gin.Context) {
	var filter models.StatusFilter
	if !bindQuery(c, &filter) {
		return
	}
	res, err := h.classes.List(c.Request.Context(), sessionFromContext(c), filter)
	list(c, res, err, view.ClassTable, "classes")
}

// Get godoc
// @Summary Get class
// @Tags Classes
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /school-admin/classes/{id} [get]
func (h *ClassHandler) Get(c *gin.Context) {
	res, err := h.classes.Get(c.Request.Context(), sessionFromContext(c), c.Param("id"))
	single(c, res, err)
}

// Create godoc
// @Summary Create class
// @Tags Classes
// @Accept json
// @Produce json
// @Param payload body dto.CreateClassRequest true "Class payload"
// @Success 201 {object} response.Envelope
// @Router /school-admin/classes [post]
func (h *ClassHandler) Create(c *gin.Context) {
	var req dto.CreateClassRequest
	if !bindJSON(c, &req) {
		return
	}
	mutate(c, h.submitter, "class:create", http.StatusCreated, func() (*models.Class, error) {
		return h.classes.Create(c.Request.Context(), sessionFromContext(c), req)
	})
}

// Update godoc
// @Summary Update class
// @Tags Classes
// @Accept json
// @Produce json
// @Param id path string true "Class ID"
// @Param payload body dto.UpdateClassRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Router /school-admin/classes/{id} [put]
func (h *ClassHandler) Update(c *gin.Context) {
	var req dto.UpdateClassRequest
	if !bindJSON(c, &req) {
		return
	}
	id := c.Param("id")
	mutate(c, h.submitter, "class:update:"+id, http.StatusOK, func() (*models.Class, error) {
		return h.classes.Update(c.Request.Context(), sessionFromContext(c), id, req)
	})
}

// Delete godoc
// @Summary Delete class
// @Tags Classes
// @Param id path string true "Class ID"
// @Success 204
// @Router /school-admin/classes/{id} [delete]
func (h *ClassHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	remove(c, h.submitter, "class:delete:"+id, func() error {
		return h.classes.Delete(c.Request.Context(), sessionFromContext(c), id)
	})
}

// ToggleStatus godoc
// @Summary Activate or deactivate a class
// @Tags Classes
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /school-admin/classes/{id}/toggle-status [patch]
func (h *ClassHandler) ToggleStatus(c *gin.Context) {
	id := c.Param("id")
	mutate(c, h.submitter, "class:toggle:"+id, http.StatusOK, func() (*models.Class, error) {
		return h.classes.ToggleStatus(c.Request.Context(), sessionFromContext(c), id)
	})
}

// AddSection godoc
// @Summary Add a section to a class
// @Tags Classes
// @Accept json
// @Produce json
// @Param id path string true "Class ID"
// @Param payload body dto.SectionInput true "Section payload"
// @Success 201 {object} response.Envelope
// @Router /school-admin/classes/{id}/sections [post]
func (h *ClassHandler) AddSection(c *gin.Context) {
	var req dto.SectionInput
	if !bindJSON(c, &req) {
		return
	}
	id := c.Param("id")
	mutate(c, h.submitter, "class:sections:"+id, http.StatusCreated, func() (*models.Class, error) {
		return h.classes.AddSection(c.Request.Context(), sessionFromContext(c), id, req)
	})
}

// RemoveSection godoc
// @Summary Remove a section from a class
// @Tags Classes
// @Produce json
// @Param id path string true "Class ID"
// @Param sectionId path string true "Section ID"
// @Success 200 {object} response.Envelope
// @Router /school-admin/classes/{id}/sections/{sectionId} [delete]
func (h *ClassHandler) RemoveSection(c *gin.Context) {
	id, sectionID := c.Param("id"), c.Param("sectionId")
	mutate(c, h.submitter, "class:sections:"+id, http.StatusOK, func() (*models.Class, error) {
		return h.classes.RemoveSection(c.Request.Context(), sessionFromContext(c), id, sectionID)
	})
}

// AssignClassTeacher godoc
// @Summary Assign the class teacher of a section
// @Tags Classes
// @Accept json
// @Produce json
// @Param id path string true "Class ID"
// @Param sectionId path string true "Section ID"
// @Param payload body dto.AssignClassTeacherRequest true "Teacher"
// @Success 200 {object} response.Envelope
// @Router /school-admin/classes/{id}/sections/{sectionId}/class-teacher [put]
func (h *ClassHandler) AssignClassTeacher(c *gin.Context) {
	var req dto.AssignClassTeacherRequest
	if !bindJSON(c, &req) {
		return
	}
	id, sectionID := c.Param("id"), c.Param("sectionId")
	mutate(c, h.submitter, "class:teacher:"+id+":"+sectionID, http.StatusOK, func() (*models.Class, error) {
		return h.classes.AssignClassTeacher(c.Request.Context(), sessionFromContext(c), id, sectionID, req)
	})
}

// ListSubjects godoc
// @Summary List subjects
// @Tags Subjects
// @Produce json
// @Param status query string false "active or inactive"
// @Param format query string false "csv or pdf export"
// @Success 200 {object} response.Envelope
// @Router /school-admin/subjects [get]
func (h *ClassHandler) ListSubjects(c *gin.Context) {
	var filter models.StatusFilter
	if !bindQuery(c, &filter) {
		return
	}
	res, err := h.subjects.List(c.Request.Context(), sessionFromContext(c), filter)
	list(c, res, err, view.SubjectTable, "subjects")
}

// GetSubject godoc
// @Summary Get subject by id
// @Tags Subjects
// @Produce json
// @Param id path string true "Subject ID"
// @Success 200 {object} response.Envelope
// @Router /school-admin/subjects/{id} [get]
func (h *ClassHandler) GetSubject(c *gin.Context) {
	res, err := h.subjects.Get(c.Request.Context(), sessionFromContext(c), c.Param("id"))
	single(c, res, err)
}

// CreateSubject godoc
// @Summary Create subject
// @Tags Subjects
// @Accept json
// @Produce json
// @Param payload body dto.CreateSubjectRequest true "Subject payload"
// @Success 201 {object} response.Envelope
// @Router /school-admin/subjects [post]
func (h *ClassHandler) CreateSubject(c *gin.Context) {
	var req dto.CreateSubjectRequest
	if !bindJSON(c, &req) {
		return
	}
	mutate(c, h.submitter, "subject:create", http.StatusCreated, func() (*models.Subject, error) {
		return h.subjects.Create(c.Request.Context(), sessionFromContext(c), req)
	})
}

// UpdateSubject godoc
// @Summary Update subject
// @Tags Subjects
// @Accept json
// @Produce json
// @Param id path string true "Subject ID"
// @Param payload body dto.UpdateSubjectRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Router /school-admin/subjects/{id} [put]
func (h *ClassHandler) UpdateSubject(c *gin.Context) {
	var req dto.UpdateSubjectRequest
	if !bindJSON(c, &req) {
		return
	}
	id := c.Param("id")
	mutate(c, h.submitter, "subject:update:"+id, http.StatusOK, func() (*models.Subject, error) {
		return h.subjects.Update(c.Request.Context(), sessionFromContext(c), id, req)
	})
}

// DeleteSubject godoc
// @Summary Delete subject
// @Tags Subjects
// @Param id path string true "Subject ID"
// @Success 204
// @Router /school-admin/subjects/{id} [delete]
func (h *ClassHandler) DeleteSubject(c *gin.Context) {
	id := c.Param("id")
	remove(c, h.submitter, "subject:delete:"+id, func() error {
		return h.subjects.Delete(c.Request.Context(), sessionFromContext(c), id)
	})
}

// ToggleSubject godoc
// @Summary Activate or deactivate a subject
// @Tags Subjects
// @Produce json
// @Param id path string true "Subject ID"
// @Success 200 {object} response.Envelope
// @Router /school-admin/subjects/{id}/toggle-status [patch]
func (h *ClassHandler) ToggleSubject(c *gin.Context) {
	id := c.Param("id")
	mutate(c, h.submitter, "subject:toggle:"+id, http.StatusOK, func() (*models.Subject, error) {
		return h.subjects.ToggleStatus(c.Request.Context(), sessionFromContext(c), id)
	})
}
