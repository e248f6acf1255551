package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sms-console/internal/attendance"
	"github.com/noah-isme/sms-console/internal/dto"
	"github.com/noah-isme/sms-console/internal/form"
	"github.com/noah-isme/sms-console/internal/middleware"
	"github.com/noah-isme/sms-console/internal/models"
	"github.com/noah-isme/sms-console/internal/service"
	"github.com/noah-isme/sms-console/internal/view"
	appErrors "github.com/noah-isme/sms-console/pkg/errors"
	"github.com/noah-isme/sms-console/pkg/response"
)

const dateLayout = "2006-01-02"

type settingsSource interface {
	AttendanceSettings(ctx context.Context, sess *models.Session) (*models.AttendanceSettings, error)
}

// AttendanceHandler serves marking sheets, check-in boards, teacher
// self-attendance and attendance reports.
type AttendanceHandler struct {
	attendance *service.AttendanceService
	settings   settingsSource
	submitter
	now func() time.Time
}

// NewAttendanceHandler constructs an attendance handler.
func NewAttendanceHandler(svc *service.AttendanceService, settings settingsSource, forms *form.Tracker) *AttendanceHandler {
	return &AttendanceHandler{attendance: svc, settings: settings, submitter: submitter{forms: forms}, now: time.Now}
}

// SheetView is a marking sheet as shown to the marker.
type SheetView struct {
	ClassID   string                   `json:"classId"`
	SectionID string                   `json:"sectionId,omitempty"`
	Date      string                   `json:"date"`
	Period    int                      `json:"period,omitempty"`
	SubjectID string                   `json:"subjectId,omitempty"`
	Records   []attendance.Entry       `json:"records"`
	Summary   models.AttendanceSummary `json:"summary"`
}

// BoardEntry is one check-in log with the actions it still allows.
type BoardEntry struct {
	models.AttendanceCheckin
	CanCheckOut bool `json:"canCheckOut"`
}

func (h *AttendanceHandler) date(c *gin.Context, key string) string {
	if d := strings.TrimSpace(c.Query(key)); d != "" {
		return d
	}
	return h.now().Format(dateLayout)
}

// validDate rejects anything that is not an ISO calendar date.
func validDate(c *gin.Context, date string) bool {
	if _, err := time.Parse(dateLayout, date); err != nil {
		response.Error(c, appErrors.Validation("invalid date", map[string]string{"date": "must be formatted as YYYY-MM-DD"}))
		return false
	}
	return true
}

func batch(c *gin.Context, res attendance.BatchResult, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	switch {
	case res.Complete():
		response.Message(c, http.StatusOK, res.Message(), res)
	case res.Succeeded() > 0:
		c.Header("Cache-Control", "no-store")
		c.JSON(http.StatusMultiStatus, response.Envelope{Success: false, Message: res.Message(), Data: res})
	default:
		c.Header("Cache-Control", "no-store")
		c.JSON(http.StatusUnprocessableEntity, response.Envelope{Success: false, Message: res.Message(), Data: res})
	}
}

// Mode godoc
// @Summary Attendance mode of the school
// @Tags Attendance
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /school-admin/attendance/mode [get]
// @Router /teacher/attendance/mode [get]
func (h *AttendanceHandler) Mode(c *gin.Context) {
	settings, err := h.settings.AttendanceSettings(c.Request.Context(), sessionFromContext(c))
	if err != nil && appErrors.FromError(err).Status != http.StatusForbidden {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"mode": attendance.ResolveMode(settings)})
}

// SimpleClass godoc
// @Summary Saved simple attendance of a class
// @Tags Attendance
// @Produce json
// @Param classId path string true "Class ID"
// @Param date query string false "YYYY-MM-DD, defaults to today"
// @Param sectionId query string false "Section ID"
// @Success 200 {object} response.Envelope
// @Router /school-admin/attendance/simple/class/{classId} [get]
func (h *AttendanceHandler) SimpleClass(c *gin.Context) {
	date := h.date(c, "date")
	if !validDate(c, date) {
		return
	}
	res, err := h.attendance.SimpleClass(c.Request.Context(), sessionFromContext(c), c.Param("classId"), date, c.Query("sectionId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, res.CacheHit)
	response.List(c, res.Data, len(res.Data), middleware.ExtractMeta(c))
}

// SimpleSheet godoc
// @Summary Simple marking sheet of a class section
// @Tags Attendance
// @Produce json
// @Param classId query string true "Class ID"
// @Param sectionId query string false "Section ID"
// @Param date query string false "YYYY-MM-DD, defaults to today"
// @Success 200 {object} response.Envelope
// @Router /teacher/attendance/sheet [get]
func (h *AttendanceHandler) SimpleSheet(c *gin.Context) {
	classID, sectionID, date := c.Query("classId"), c.Query("sectionId"), h.date(c, "date")
	if !validDate(c, date) {
		return
	}
	sheet, err := h.attendance.SimpleSheet(c.Request.Context(), sessionFromContext(c), classID, sectionID, date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, SheetView{
		ClassID:   classID,
		SectionID: sectionID,
		Date:      date,
		Records:   sheet.Records(),
		Summary:   sheet.Summary(),
	})
}

// SaveSheet godoc
// @Summary Save a simple marking sheet
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body dto.SaveSheetRequest true "Mark-all status and overrides"
// @Success 200 {object} response.Envelope
// @Success 207 {object} response.Envelope
// @Router /teacher/attendance/sheet [post]
func (h *AttendanceHandler) SaveSheet(c *gin.Context) {
	var req dto.SaveSheetRequest
	if !bindJSON(c, &req) {
		return
	}
	h.submitBatch(c, "attendance:sheet:"+req.ClassID+":"+req.SectionID+":"+req.Date, func() (attendance.BatchResult, error) {
		return h.attendance.SaveSheet(c.Request.Context(), sessionFromContext(c), req)
	})
}

// MarkSimple godoc
// @Summary Save simple attendance records as given
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body dto.MarkSimpleRequest true "Records"
// @Success 200 {object} response.Envelope
// @Router /school-admin/attendance/simple/mark [post]
func (h *AttendanceHandler) MarkSimple(c *gin.Context) {
	var req dto.MarkSimpleRequest
	if !bindJSON(c, &req) {
		return
	}
	h.submitBatch(c, "attendance:simple:"+req.ClassID, func() (attendance.BatchResult, error) {
		return h.attendance.MarkSimple(c.Request.Context(), sessionFromContext(c), req)
	})
}

// UpdateSimple godoc
// @Summary Correct one simple attendance record
// @Tags Attendance
// @Accept json
// @Produce json
// @Param id path string true "Record ID"
// @Param payload body dto.UpdateSimpleRecordRequest true "Status"
// @Success 200 {object} response.Envelope
// @Router /school-admin/attendance/simple/{id} [put]
func (h *AttendanceHandler) UpdateSimple(c *gin.Context) {
	var req dto.UpdateSimpleRecordRequest
	if !bindJSON(c, &req) {
		return
	}
	id := c.Param("id")
	mutate(c, h.submitter, "attendance:record:"+id, http.StatusOK, func() (*models.AttendanceSimple, error) {
		return h.attendance.UpdateSimple(c.Request.Context(), sessionFromContext(c), id, req)
	})
}

// PeriodClass godoc
// @Summary Saved period attendance of a class
// @Tags Attendance
// @Produce json
// @Param classId path string true "Class ID"
// @Param date query string false "YYYY-MM-DD, defaults to today"
// @Param period query int false "Period number"
// @Param sectionId query string false "Section ID"
// @Success 200 {object} response.Envelope
// @Router /school-admin/attendance/period/class/{classId} [get]
func (h *AttendanceHandler) PeriodClass(c *gin.Context) {
	date := h.date(c, "date")
	if !validDate(c, date) {
		return
	}
	period, ok := queryInt(c, "period")
	if !ok {
		return
	}
	res, err := h.attendance.PeriodClass(c.Request.Context(), sessionFromContext(c), c.Param("classId"), date, period, c.Query("sectionId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, res.CacheHit)
	response.List(c, res.Data, len(res.Data), middleware.ExtractMeta(c))
}

// PeriodSheet godoc
// @Summary Period marking sheet for one period and subject
// @Tags Attendance
// @Produce json
// @Param classId query string true "Class ID"
// @Param sectionId query string false "Section ID"
// @Param date query string false "YYYY-MM-DD, defaults to today"
// @Param period query int true "Period number"
// @Param subjectId query string true "Subject ID"
// @Success 200 {object} response.Envelope
// @Router /teacher/attendance/period-sheet [get]
func (h *AttendanceHandler) PeriodSheet(c *gin.Context) {
	period, ok := queryInt(c, "period")
	if !ok {
		return
	}
	req := dto.SavePeriodSheetRequest{
		ClassID:   c.Query("classId"),
		SectionID: c.Query("sectionId"),
		Date:      h.date(c, "date"),
		Period:    period,
		SubjectID: c.Query("subjectId"),
		TeacherID: c.Query("teacherId"),
	}
	if !validDate(c, req.Date) {
		return
	}
	if req.Period < 1 || req.SubjectID == "" {
		response.Error(c, appErrors.Validation("invalid query", map[string]string{"period": "period and subjectId are required"}))
		return
	}
	sheet, err := h.attendance.PeriodSheet(c.Request.Context(), sessionFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, SheetView{
		ClassID:   req.ClassID,
		SectionID: req.SectionID,
		Date:      req.Date,
		Period:    req.Period,
		SubjectID: req.SubjectID,
		Records:   sheet.Records(),
		Summary:   sheet.Summary(),
	})
}

// SavePeriodSheet godoc
// @Summary Save a period marking sheet
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body dto.SavePeriodSheetRequest true "Mark-all status and overrides"
// @Success 200 {object} response.Envelope
// @Success 207 {object} response.Envelope
// @Router /teacher/attendance/period-sheet [post]
func (h *AttendanceHandler) SavePeriodSheet(c *gin.Context) {
	var req dto.SavePeriodSheetRequest
	if !bindJSON(c, &req) {
		return
	}
	h.submitBatch(c, "attendance:period:"+req.ClassID+":"+req.Date, func() (attendance.BatchResult, error) {
		return h.attendance.SavePeriodSheet(c.Request.Context(), sessionFromContext(c), req)
	})
}

// MarkPeriod godoc
// @Summary Save period attendance records as given
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body dto.MarkPeriodRequest true "Records"
// @Success 200 {object} response.Envelope
// @Router /school-admin/attendance/period/mark [post]
func (h *AttendanceHandler) MarkPeriod(c *gin.Context) {
	var req dto.MarkPeriodRequest
	if !bindJSON(c, &req) {
		return
	}
	h.submitBatch(c, "attendance:period:"+req.ClassID+":"+req.Date, func() (attendance.BatchResult, error) {
		return h.attendance.MarkPeriod(c.Request.Context(), sessionFromContext(c), req)
	})
}

// StudentHistory godoc
// @Summary Attendance history of a student in the school's mode
// @Tags Attendance
// @Produce json
// @Param studentId path string true "Student ID"
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Success 200 {object} response.Envelope
// @Router /school-admin/attendance/students/{studentId} [get]
func (h *AttendanceHandler) StudentHistory(c *gin.Context) {
	h.studentHistory(c, c.Param("studentId"))
}

// MyHistory godoc
// @Summary Attendance history of the signed-in student
// @Tags Attendance
// @Produce json
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Success 200 {object} response.Envelope
// @Router /student/attendance [get]
func (h *AttendanceHandler) MyHistory(c *gin.Context) {
	sess := sessionFromContext(c)
	id := sess.MemberID
	if id == "" {
		id = sess.SubjectID
	}
	h.studentHistory(c, id)
}

func (h *AttendanceHandler) studentHistory(c *gin.Context, studentID string) {
	var q dto.DateRangeQuery
	if !bindQuery(c, &q) {
		return
	}
	sess := sessionFromContext(c)
	settings, err := h.settings.AttendanceSettings(c.Request.Context(), sess)
	if err != nil && appErrors.FromError(err).Status != http.StatusForbidden {
		response.Error(c, err)
		return
	}
	if attendance.ResolveMode(settings) == models.ModePeriodWise {
		res, err := h.attendance.PeriodStudent(c.Request.Context(), sess, studentID, q)
		single(c, res, err)
		return
	}
	res, err := h.attendance.SimpleStudent(c.Request.Context(), sess, studentID, q)
	single(c, res, err)
}

// CheckinBoard godoc
// @Summary Check-in logs of a date with the actions each allows
// @Tags Attendance
// @Produce json
// @Param date query string false "YYYY-MM-DD, defaults to today"
// @Param userType query string false "student or teacher"
// @Param classId query string false "Class ID"
// @Success 200 {object} response.Envelope
// @Router /school-admin/attendance/checkin [get]
func (h *AttendanceHandler) CheckinBoard(c *gin.Context) {
	date := h.date(c, "date")
	if !validDate(c, date) {
		return
	}
	var q dto.CheckinDailyQuery
	if !bindQuery(c, &q) {
		return
	}
	res, err := h.attendance.CheckinDaily(c.Request.Context(), sessionFromContext(c), date, q)
	if err != nil {
		response.Error(c, err)
		return
	}
	board := attendance.NewCheckinBoard(res.Data.Attendance)
	entries := make([]BoardEntry, 0, len(res.Data.Attendance))
	for _, log := range res.Data.Attendance {
		entries = append(entries, BoardEntry{AttendanceCheckin: log, CanCheckOut: board.CanCheckOut(log.UserID)})
	}
	middleware.SetCacheHit(c, res.CacheHit)
	response.List(c, gin.H{"date": date, "attendance": entries, "summary": res.Data.Summary}, len(entries), middleware.ExtractMeta(c))
}

// CheckinStatus godoc
// @Summary Whether a user has checked in today
// @Tags Attendance
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} response.Envelope
// @Router /school-admin/attendance/checkin/status/{userId} [get]
func (h *AttendanceHandler) CheckinStatus(c *gin.Context) {
	res, err := h.attendance.CheckinStatus(c.Request.Context(), sessionFromContext(c), c.Param("userId"))
	single(c, res, err)
}

// CheckIn godoc
// @Summary Open a check-in log
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body dto.CheckInRequest true "User"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /school-admin/attendance/checkin/in [post]
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	var req dto.CheckInRequest
	if !bindJSON(c, &req) {
		return
	}
	mutate(c, h.submitter, "checkin:"+req.UserID, http.StatusCreated, func() (*models.AttendanceCheckin, error) {
		return h.attendance.CheckIn(c.Request.Context(), sessionFromContext(c), req)
	})
}

// CheckOut godoc
// @Summary Close the open check-in log of a user
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body dto.CheckOutRequest true "User"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /school-admin/attendance/checkin/out [post]
func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	var req dto.CheckOutRequest
	if !bindJSON(c, &req) {
		return
	}
	mutate(c, h.submitter, "checkin:"+req.UserID, http.StatusOK, func() (*models.AttendanceCheckin, error) {
		return h.attendance.CheckOut(c.Request.Context(), sessionFromContext(c), req)
	})
}

// TeacherCheckIn godoc
// @Summary Record the signed-in teacher's arrival
// @Tags Attendance
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /teacher/attendance/me/check-in [post]
func (h *AttendanceHandler) TeacherCheckIn(c *gin.Context) {
	mutate(c, h.submitter, "teacher:self", http.StatusCreated, func() (*models.TeacherAttendance, error) {
		return h.attendance.TeacherCheckIn(c.Request.Context(), sessionFromContext(c))
	})
}

// TeacherCheckOut godoc
// @Summary Record the signed-in teacher's departure
// @Tags Attendance
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /teacher/attendance/me/check-out [post]
func (h *AttendanceHandler) TeacherCheckOut(c *gin.Context) {
	mutate(c, h.submitter, "teacher:self", http.StatusOK, func() (*models.TeacherAttendance, error) {
		return h.attendance.TeacherCheckOut(c.Request.Context(), sessionFromContext(c))
	})
}

// TeacherStatus godoc
// @Summary Whether the signed-in teacher has checked in today
// @Tags Attendance
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /teacher/attendance/me [get]
func (h *AttendanceHandler) TeacherStatus(c *gin.Context) {
	res, err := h.attendance.TeacherStatus(c.Request.Context(), sessionFromContext(c))
	single(c, res, err)
}

// MyTeacherHistory godoc
// @Summary Attendance history of the signed-in teacher
// @Tags Attendance
// @Produce json
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Success 200 {object} response.Envelope
// @Router /teacher/attendance/me/history [get]
func (h *AttendanceHandler) MyTeacherHistory(c *gin.Context) {
	sess := sessionFromContext(c)
	id := sess.MemberID
	if id == "" {
		id = sess.SubjectID
	}
	h.teacherHistory(c, id)
}

// TeacherHistory godoc
// @Summary Attendance history of a teacher
// @Tags Attendance
// @Produce json
// @Param teacherId path string true "Teacher ID"
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Param format query string false "csv or pdf export"
// @Success 200 {object} response.Envelope
// @Router /school-admin/attendance/teachers/{teacherId}/history [get]
func (h *AttendanceHandler) TeacherHistory(c *gin.Context) {
	h.teacherHistory(c, c.Param("teacherId"))
}

func (h *AttendanceHandler) teacherHistory(c *gin.Context, teacherID string) {
	var q dto.DateRangeQuery
	if !bindQuery(c, &q) {
		return
	}
	res, err := h.attendance.TeacherHistory(c.Request.Context(), sessionFromContext(c), teacherID, q)
	h.teacherList(c, res, err, "teacher-history")
}

// TeacherDaily godoc
// @Summary Attendance of every teacher for a date
// @Tags Attendance
// @Produce json
// @Param date query string false "YYYY-MM-DD, defaults to today"
// @Param format query string false "csv or pdf export"
// @Success 200 {object} response.Envelope
// @Router /school-admin/attendance/teachers [get]
func (h *AttendanceHandler) TeacherDaily(c *gin.Context) {
	date := h.date(c, "date")
	if !validDate(c, date) {
		return
	}
	res, err := h.attendance.TeacherDaily(c.Request.Context(), sessionFromContext(c), date)
	h.teacherList(c, res, err, "teacher-attendance-"+date)
}

func (h *AttendanceHandler) teacherList(c *gin.Context, res service.Result[models.TeacherAttendanceList], err error, name string) {
	if err != nil {
		response.Error(c, err)
		return
	}
	if raw := c.Query("format"); raw != "" {
		exportTable(c, res.Data.Attendance, view.TeacherAttendanceTable, name, raw)
		return
	}
	middleware.SetCacheHit(c, res.CacheHit)
	response.List(c, res.Data, len(res.Data.Attendance), middleware.ExtractMeta(c))
}

// MarkTeachers godoc
// @Summary Save teacher attendance for a day
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body dto.MarkTeacherRequest true "Records"
// @Success 200 {object} response.Envelope
// @Router /school-admin/attendance/teachers [post]
func (h *AttendanceHandler) MarkTeachers(c *gin.Context) {
	var req dto.MarkTeacherRequest
	if !bindJSON(c, &req) {
		return
	}
	h.submitBatch(c, "attendance:teachers:"+req.Date, func() (attendance.BatchResult, error) {
		return h.attendance.MarkTeachers(c.Request.Context(), sessionFromContext(c), req)
	})
}

// DailyReport godoc
// @Summary Daily attendance report
// @Tags Reports
// @Produce json
// @Param date query string false "YYYY-MM-DD"
// @Param mode query string false "simple, period_wise or check_in_out"
// @Param classId query string false "Class ID"
// @Param sectionId query string false "Section ID"
// @Success 200 {object} response.Envelope
// @Router /school-admin/attendance/reports/daily [get]
func (h *AttendanceHandler) DailyReport(c *gin.Context) {
	var q dto.DailyReportQuery
	if !bindQuery(c, &q) {
		return
	}
	res, err := h.attendance.DailyReport(c.Request.Context(), sessionFromContext(c), q)
	single(c, res, err)
}

// MonthlyReport godoc
// @Summary Monthly attendance report
// @Tags Reports
// @Produce json
// @Param year query int false "Year"
// @Param month query int false "Month"
// @Param type query string false "student or teacher"
// @Param format query string false "csv or pdf export of the per-person rows"
// @Success 200 {object} response.Envelope
// @Router /school-admin/attendance/reports/monthly [get]
func (h *AttendanceHandler) MonthlyReport(c *gin.Context) {
	var q dto.MonthlyReportQuery
	if !bindQuery(c, &q) {
		return
	}
	res, err := h.attendance.MonthlyReport(c.Request.Context(), sessionFromContext(c), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	if raw := c.Query("format"); raw != "" {
		var rows []models.AttendanceRateRow
		if res.Data.Students != nil {
			rows = append(rows, res.Data.Students.ByStudent...)
		}
		if res.Data.Teachers != nil {
			rows = append(rows, res.Data.Teachers.ByTeacher...)
		}
		exportTable(c, rows, view.AttendanceRateTable, "attendance-monthly", raw)
		return
	}
	single(c, res, nil)
}

// RangeReport godoc
// @Summary Attendance report over a date range
// @Tags Reports
// @Produce json
// @Param startDate query string true "YYYY-MM-DD"
// @Param endDate query string true "YYYY-MM-DD"
// @Success 200 {object} response.Envelope
// @Router /school-admin/attendance/reports/range [get]
func (h *AttendanceHandler) RangeReport(c *gin.Context) {
	var q dto.RangeReportQuery
	if !bindQuery(c, &q) {
		return
	}
	res, err := h.attendance.RangeReport(c.Request.Context(), sessionFromContext(c), q)
	single(c, res, err)
}

// ClassWiseReport godoc
// @Summary Attendance per class for one date
// @Tags Reports
// @Produce json
// @Param date query string false "YYYY-MM-DD"
// @Param format query string false "csv or pdf export"
// @Success 200 {object} response.Envelope
// @Router /school-admin/attendance/reports/class-wise [get]
func (h *AttendanceHandler) ClassWiseReport(c *gin.Context) {
	var q dto.ClassWiseQuery
	if !bindQuery(c, &q) {
		return
	}
	res, err := h.attendance.ClassWiseReport(c.Request.Context(), sessionFromContext(c), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	if raw := c.Query("format"); raw != "" {
		exportTable(c, res.Data.Classes, view.AttendanceRateTable, "attendance-class-wise", raw)
		return
	}
	single(c, res, nil)
}

func (h *AttendanceHandler) submitBatch(c *gin.Context, name string, fn func() (attendance.BatchResult, error)) {
	var res attendance.BatchResult
	err := h.submit(c, name, func() error {
		var err error
		res, err = fn()
		return err
	})
	batch(c, res, err)
}
