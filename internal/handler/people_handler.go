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

// PeopleHandler serves teacher, student and parent views of a school.
type PeopleHandler struct {
	teachers *service.TeacherService
	students *service.StudentService
	parents  *service.ParentService
	search   *Searcher
	submitter
}

// NewPeopleHandler constructs a people handler.
func NewPeopleHandler(teachers *service.TeacherService, students *service.StudentService, parents *service.ParentService, search *Searcher, forms *form.Tracker) *PeopleHandler {
	return &PeopleHandler{
		teachers:  teachers,
		students:  students,
		parents:   parents,
		search:    search,
		submitter: submitter{forms: forms},
	}
}

// ListTeachers godoc
// @Summary List teachers
// @Tags Teachers
// @Produce json
// @Param department query string false "Department"
// @Param status query string false "active or inactive"
// @Param format query string false "csv or pdf export"
// @Success 200 {object} response.Envelope
// @Router /school-admin/teachers [get]
func (h *PeopleHandler) ListTeachers(c *gin.Context) {
	var filter models.TeacherFilter
	if !bindQuery(c, &filter) {
		return
	}
	res, err := h.teachers.List(c.Request.Context(), sessionFromContext(c), filter)
	list(c, res, err, view.TeacherTable, "teachers")
}

// GetTeacher godoc
// @Summary Get teacher
// @Tags Teachers
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /school-admin/teachers/{id} [get]
func (h *PeopleHandler) GetTeacher(c *gin.Context) {
	res, err := h.teachers.Get(c.Request.Context(), sessionFromContext(c), c.Param("id"))
	single(c, res, err)
}

// CreateTeacher godoc
// @Summary Create teacher
// @Tags Teachers
// @Accept json
// @Produce json
// @Param payload body dto.CreateTeacherRequest true "Teacher payload"
// @Success 201 {object} response.Envelope
// @Router /school-admin/teachers [post]
func (h *PeopleHandler) CreateTeacher(c *gin.Context) {
	var req dto.CreateTeacherRequest
	if !bindJSON(c, &req) {
		return
	}
	mutate(c, h.submitter, "teacher:create", http.StatusCreated, func() (*models.Teacher, error) {
		return h.teachers.Create(c.Request.Context(), sessionFromContext(c), req)
	})
}

// UpdateTeacher godoc
// @Summary Update teacher
// @Tags Teachers
// @Accept json
// @Produce json
// @Param id path string true "Teacher ID"
// @Param payload body dto.UpdateTeacherRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Router /school-admin/teachers/{id} [put]
func (h *PeopleHandler) UpdateTeacher(c *gin.Context) {
	var req dto.UpdateTeacherRequest
	if !bindJSON(c, &req) {
		return
	}
	id := c.Param("id")
	mutate(c, h.submitter, "teacher:update:"+id, http.StatusOK, func() (*models.Teacher, error) {
		return h.teachers.Update(c.Request.Context(), sessionFromContext(c), id, req)
	})
}

// DeleteTeacher godoc
// @Summary Delete teacher
// @Tags Teachers
// @Param id path string true "Teacher ID"
// @Success 204
// @Router /school-admin/teachers/{id} [delete]
func (h *PeopleHandler) DeleteTeacher(c *gin.Context) {
	id := c.Param("id")
	remove(c, h.submitter, "teacher:delete:"+id, func() error {
		return h.teachers.Delete(c.Request.Context(), sessionFromContext(c), id)
	})
}

// ToggleTeacher godoc
// @Summary Activate or deactivate a teacher
// @Tags Teachers
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /school-admin/teachers/{id}/toggle-status [patch]
func (h *PeopleHandler) ToggleTeacher(c *gin.Context) {
	id := c.Param("id")
	mutate(c, h.submitter, "teacher:toggle:"+id, http.StatusOK, func() (*models.Teacher, error) {
		return h.teachers.ToggleStatus(c.Request.Context(), sessionFromContext(c), id)
	})
}

// ListStudents godoc
// @Summary List students
// @Tags Students
// @Produce json
// @Param class query string false "Class ID"
// @Param section query string false "Section ID"
// @Param status query string false "active or inactive"
// @Param parentId query string false "Parent ID"
// @Param format query string false "csv or pdf export"
// @Success 200 {object} response.Envelope
// @Router /school-admin/students [get]
func (h *PeopleHandler) ListStudents(c *gin.Context) {
	var filter models.StudentFilter
	if !bindQuery(c, &filter) {
		return
	}
	res, err := h.students.List(c.Request.Context(), sessionFromContext(c), filter)
	list(c, res, err, view.StudentTable, "students")
}

// SearchStudents godoc
// @Summary Search students as the user types
// @Tags Students
// @Produce json
// @Param q query string true "Search text"
// @Success 200 {object} response.Envelope
// @Router /school-admin/students/search [get]
func (h *PeopleHandler) SearchStudents(c *gin.Context) {
	query, ok := h.search.admit(c, "students")
	if !ok {
		return
	}
	res, err := h.students.Search(c.Request.Context(), sessionFromContext(c), query)
	list(c, res, err, view.StudentTable, "students")
}

// GetStudent godoc
// @Summary Get student
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /school-admin/students/{id} [get]
func (h *PeopleHandler) GetStudent(c *gin.Context) {
	res, err := h.students.Get(c.Request.Context(), sessionFromContext(c), c.Param("id"))
	single(c, res, err)
}

// CreateStudent godoc
// @Summary Create student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body dto.CreateStudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Router /school-admin/students [post]
func (h *PeopleHandler) CreateStudent(c *gin.Context) {
	var req dto.CreateStudentRequest
	if !bindJSON(c, &req) {
		return
	}
	mutate(c, h.submitter, "student:create", http.StatusCreated, func() (*models.Student, error) {
		return h.students.Create(c.Request.Context(), sessionFromContext(c), req)
	})
}

// UpdateStudent godoc
// @Summary Update student
// @Tags Students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body dto.UpdateStudentRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Router /school-admin/students/{id} [put]
func (h *PeopleHandler) UpdateStudent(c *gin.Context) {
	var req dto.UpdateStudentRequest
	if !bindJSON(c, &req) {
		return
	}
	id := c.Param("id")
	mutate(c, h.submitter, "student:update:"+id, http.StatusOK, func() (*models.Student, error) {
		return h.students.Update(c.Request.Context(), sessionFromContext(c), id, req)
	})
}

// DeleteStudent godoc
// @Summary Delete student
// @Tags Students
// @Param id path string true "Student ID"
// @Success 204
// @Router /school-admin/students/{id} [delete]
func (h *PeopleHandler) DeleteStudent(c *gin.Context) {
	id := c.Param("id")
	remove(c, h.submitter, "student:delete:"+id, func() error {
		return h.students.Delete(c.Request.Context(), sessionFromContext(c), id)
	})
}

// ToggleStudent godoc
// @Summary Activate or deactivate a student
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /school-admin/students/{id}/toggle-status [patch]
func (h *PeopleHandler) ToggleStudent(c *gin.Context) {
	id := c.Param("id")
	mutate(c, h.submitter, "student:toggle:"+id, http.StatusOK, func() (*models.Student, error) {
		return h.students.ToggleStatus(c.Request.Context(), sessionFromContext(c), id)
	})
}

// ListParents godoc
// @Summary List parents
// @Tags Parents
// @Produce json
// @Param status query string false "active or inactive"
// @Param relationship query string false "Relationship to the student"
// @Param format query string false "csv or pdf export"
// @Success 200 {object} response.Envelope
// @Router /school-admin/parents [get]
func (h *PeopleHandler) ListParents(c *gin.Context) {
	var filter models.ParentFilter
	if !bindQuery(c, &filter) {
		return
	}
	res, err := h.parents.List(c.Request.Context(), sessionFromContext(c), filter)
	list(c, res, err, view.ParentTable, "parents")
}

// SearchParents godoc
// @Summary Search parents as the user types
// @Tags Parents
// @Produce json
// @Param q query string true "Search text"
// @Success 200 {object} response.Envelope
// @Router /school-admin/parents/search [get]
func (h *PeopleHandler) SearchParents(c *gin.Context) {
	query, ok := h.search.admit(c, "parents")
	if !ok {
		return
	}
	res, err := h.parents.Search(c.Request.Context(), sessionFromContext(c), query)
	list(c, res, err, view.ParentTable, "parents")
}

// StudentParents godoc
// @Summary Parents of one student
// @Tags Parents
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /school-admin/students/{id}/parents [get]
func (h *PeopleHandler) StudentParents(c *gin.Context) {
	res, err := h.parents.ByStudent(c.Request.Context(), sessionFromContext(c), c.Param("id"))
	list(c, res, err, view.ParentTable, "parents")
}

// GetParent godoc
// @Summary Get parent
// @Tags Parents
// @Produce json
// @Param id path string true "Parent ID"
// @Success 200 {object} response.Envelope
// @Router /school-admin/parents/{id} [get]
func (h *PeopleHandler) GetParent(c *gin.Context) {
	res, err := h.parents.Get(c.Request.Context(), sessionFromContext(c), c.Param("id"))
	single(c, res, err)
}

// CreateParent godoc
// @Summary Create parent
// @Tags Parents
// @Accept json
// @Produce json
// @Param payload body dto.CreateParentRequest true "Parent payload"
// @Success 201 {object} response.Envelope
// @Router /school-admin/parents [post]
func (h *PeopleHandler) CreateParent(c *gin.Context) {
	var req dto.CreateParentRequest
	if !bindJSON(c, &req) {
		return
	}
	mutate(c, h.submitter, "parent:create", http.StatusCreated, func() (*models.Parent, error) {
		return h.parents.Create(c.Request.Context(), sessionFromContext(c), req)
	})
}

// UpdateParent godoc
// @Summary Update parent
// @Tags Parents
// @Accept json
// @Produce json
// @Param id path string true "Parent ID"
// @Param payload body dto.UpdateParentRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Router /school-admin/parents/{id} [put]
func (h *PeopleHandler) UpdateParent(c *gin.Context) {
	var req dto.UpdateParentRequest
	if !bindJSON(c, &req) {
		return
	}
	id := c.Param("id")
	mutate(c, h.submitter, "parent:update:"+id, http.StatusOK, func() (*models.Parent, error) {
		return h.parents.Update(c.Request.Context(), sessionFromContext(c), id, req)
	})
}

// DeleteParent godoc
// @Summary Delete parent
// @Tags Parents
// @Param id path string true "Parent ID"
// @Success 204
// @Router /school-admin/parents/{id} [delete]
func (h *PeopleHandler) DeleteParent(c *gin.Context) {
	id := c.Param("id")
	remove(c, h.submitter, "parent:delete:"+id, func() error {
		return h.parents.Delete(c.Request.Context(), sessionFromContext(c), id)
	})
}

// ToggleParent godoc
// @Summary Activate or deactivate a parent
// @Tags Parents
// @Produce json
// @Param id path string true "Parent ID"
// @Success 200 {object} response.Envelope
// @Router /school-admin/parents/{id}/toggle-status [patch]
func (h *PeopleHandler) ToggleParent(c *gin.Context) {
	id := c.Param("id")
	mutate(c, h.submitter, "parent:toggle:"+id, http.StatusOK, func() (*models.Parent, error) {
		return h.parents.ToggleStatus(c.Request.Context(), sessionFromContext(c), id)
	})
}
