package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sms-console/internal/guard"
	"github.com/noah-isme/sms-console/internal/models"
	"github.com/noah-isme/sms-console/internal/service"
	"github.com/noah-isme/sms-console/pkg/response"
)

// ProfileHandler shows the signed-in user together with their school
// record when they have one.
type ProfileHandler struct {
	teachers *service.TeacherService
	students *service.StudentService
	admins   *service.SchoolAdminService
}

// NewProfileHandler constructs a profile handler.
func NewProfileHandler(teachers *service.TeacherService, students *service.StudentService, admins *service.SchoolAdminService) *ProfileHandler {
	return &ProfileHandler{teachers: teachers, students: students, admins: admins}
}

// ProfileView pairs the session with the member record.
type ProfileView struct {
	Session *models.Session `json:"session"`
	Menu    []guard.Item    `json:"menu"`
	Record  interface{}     `json:"record,omitempty"`
}

// Show godoc
// @Summary Profile of the signed-in user
// @Tags Profile
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /school-admin/profile [get]
// @Router /teacher/profile [get]
// @Router /student/profile [get]
func (h *ProfileHandler) Show(c *gin.Context) {
	sess := sessionFromContext(c)
	out := ProfileView{Session: sess, Menu: guard.Menu(sess.Role)}

	var (
		record interface{}
		err    error
	)
	ctx := c.Request.Context()
	switch {
	case sess.Role == models.RoleTeacher && sess.MemberID != "":
		var res service.Result[models.Teacher]
		res, err = h.teachers.Get(ctx, sess, sess.MemberID)
		record = res.Data
	case sess.Role == models.RoleStudent && sess.MemberID != "":
		var res service.Result[models.Student]
		res, err = h.students.Get(ctx, sess, sess.MemberID)
		record = res.Data
	case sess.Role == models.RoleSchoolAdmin:
		var res service.Result[models.SchoolAdmin]
		res, err = h.admins.Get(ctx, sess, sess.SubjectID)
		record = res.Data
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	out.Record = record
	response.JSON(c, http.StatusOK, out)
}
