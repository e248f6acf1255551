package dto

import (
	"net/url"
	"strconv"

	"github.com/noah-isme/sms-console/internal/models"
)

// SimpleRecordInput is one student's status in a simple sheet.
type SimpleRecordInput struct {
	StudentID string                  `json:"studentId" validate:"required"`
	Status    models.AttendanceStatus `json:"status" validate:"required,oneof=present absent late half_day leave pending"`
	Remarks   string                  `json:"remarks,omitempty"`
}

// MarkSimpleRequest is the bulk body for simple attendance.
type MarkSimpleRequest struct {
	ClassID           string              `json:"classId" validate:"required"`
	SectionID         string              `json:"sectionId,omitempty"`
	Date              string              `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	AttendanceRecords []SimpleRecordInput `json:"attendanceRecords" validate:"required,min=1,dive"`
}

// SaveSheetRequest is what the marking view posts: an optional mark-all
// status followed by per-student overrides.
type SaveSheetRequest struct {
	ClassID   string                  `json:"classId" validate:"required"`
	SectionID string                  `json:"sectionId,omitempty"`
	Date      string                  `json:"date" validate:"required,datetime=2006-01-02"`
	MarkAll   models.AttendanceStatus `json:"markAll,omitempty" validate:"omitempty,oneof=present absent late half_day leave"`
	Records   []SimpleRecordInput     `json:"records,omitempty" validate:"dive"`
}

// PeriodRecordInput is one student's status for a period.
type PeriodRecordInput struct {
	StudentID string                  `json:"studentId" validate:"required"`
	Status    models.AttendanceStatus `json:"status" validate:"required,oneof=present absent late"`
	Remarks   string                  `json:"remarks,omitempty"`
}

// MarkPeriodRequest is the bulk body for period attendance.
type MarkPeriodRequest struct {
	ClassID           string              `json:"classId" validate:"required"`
	SectionID         string              `json:"sectionId,omitempty"`
	Date              string              `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Period            int                 `json:"period" validate:"required,min=1"`
	SubjectID         string              `json:"subjectId" validate:"required"`
	TeacherID         string              `json:"teacherId" validate:"required"`
	IsSubstitute      bool                `json:"isSubstitute,omitempty"`
	AttendanceRecords []PeriodRecordInput `json:"attendanceRecords" validate:"required,min=1,dive"`
}

// SavePeriodSheetRequest is the period marking view's body.
type SavePeriodSheetRequest struct {
	ClassID      string                  `json:"classId" validate:"required"`
	SectionID    string                  `json:"sectionId,omitempty"`
	Date         string                  `json:"date" validate:"required,datetime=2006-01-02"`
	Period       int                     `json:"period" validate:"required,min=1"`
	SubjectID    string                  `json:"subjectId" validate:"required"`
	TeacherID    string                  `json:"teacherId,omitempty"`
	IsSubstitute bool                    `json:"isSubstitute,omitempty"`
	MarkAll      models.AttendanceStatus `json:"markAll,omitempty" validate:"omitempty,oneof=present absent late"`
	Records      []PeriodRecordInput     `json:"records,omitempty" validate:"dive"`
}

// UpdateSimpleRecordRequest corrects one simple attendance row.
type UpdateSimpleRecordRequest struct {
	Status  models.AttendanceStatus `json:"status" validate:"required,oneof=present absent late half_day leave"`
	Remarks string                  `json:"remarks,omitempty"`
}

// CheckInRequest opens a check-in log for a user.
type CheckInRequest struct {
	UserID    string `json:"userId" validate:"required"`
	UserType  string `json:"userType" validate:"required,oneof=student teacher"`
	ClassID   string `json:"classId,omitempty"`
	SectionID string `json:"sectionId,omitempty"`
	Method    string `json:"method,omitempty" validate:"omitempty,oneof=manual biometric rfid app"`
}

// CheckOutRequest closes the open check-in log of a user.
type CheckOutRequest struct {
	UserID string `json:"userId" validate:"required"`
	Method string `json:"method,omitempty" validate:"omitempty,oneof=manual biometric rfid app"`
}

// TeacherRecordInput is one teacher's status for a day.
type TeacherRecordInput struct {
	TeacherID string                  `json:"teacherId" validate:"required"`
	Status    models.AttendanceStatus `json:"status" validate:"required,oneof=present absent late half_day leave"`
	LeaveType string                  `json:"leaveType,omitempty" validate:"omitempty,oneof=casual sick earned unpaid other"`
	Remarks   string                  `json:"remarks,omitempty"`
}

// MarkTeacherRequest is the admin bulk body for teacher attendance.
type MarkTeacherRequest struct {
	Date              string               `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	AttendanceRecords []TeacherRecordInput `json:"attendanceRecords" validate:"required,min=1,dive"`
}

// DateRangeQuery bounds history and range reports.
type DateRangeQuery struct {
	StartDate string `form:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"endDate" validate:"omitempty,datetime=2006-01-02"`
}

// Values renders the query for the backend.
func (q DateRangeQuery) Values() url.Values {
	v := url.Values{}
	setIf(v, "startDate", q.StartDate)
	setIf(v, "endDate", q.EndDate)
	return v
}

// DailyReportQuery selects the daily report.
type DailyReportQuery struct {
	Date      string `form:"date" validate:"omitempty,datetime=2006-01-02"`
	Mode      string `form:"mode" validate:"omitempty,oneof=simple period_wise check_in_out"`
	ClassID   string `form:"classId"`
	SectionID string `form:"sectionId"`
}

// Values renders the query for the backend.
func (q DailyReportQuery) Values() url.Values {
	v := url.Values{}
	setIf(v, "date", q.Date)
	setIf(v, "mode", q.Mode)
	setIf(v, "classId", q.ClassID)
	setIf(v, "sectionId", q.SectionID)
	return v
}

// MonthlyReportQuery selects a calendar month.
type MonthlyReportQuery struct {
	Year    int    `form:"year" validate:"omitempty,min=2000,max=2100"`
	Month   int    `form:"month" validate:"omitempty,min=1,max=12"`
	Mode    string `form:"mode" validate:"omitempty,oneof=simple period_wise check_in_out"`
	ClassID string `form:"classId"`
	Type    string `form:"type" validate:"omitempty,oneof=student teacher"`
}

// Values renders the query for the backend.
func (q MonthlyReportQuery) Values() url.Values {
	v := url.Values{}
	if q.Year > 0 {
		v.Set("year", strconv.Itoa(q.Year))
	}
	if q.Month > 0 {
		v.Set("month", strconv.Itoa(q.Month))
	}
	setIf(v, "mode", q.Mode)
	setIf(v, "classId", q.ClassID)
	setIf(v, "type", q.Type)
	return v
}

// ClassWiseQuery selects the class-wise report.
type ClassWiseQuery struct {
	Date string `form:"date" validate:"omitempty,datetime=2006-01-02"`
	Mode string `form:"mode" validate:"omitempty,oneof=simple period_wise check_in_out"`
}

// Values renders the query for the backend.
func (q ClassWiseQuery) Values() url.Values {
	v := url.Values{}
	setIf(v, "date", q.Date)
	setIf(v, "mode", q.Mode)
	return v
}

func setIf(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

// RangeReportQuery selects the date range report.
type RangeReportQuery struct {
	StartDate string `form:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `form:"endDate" validate:"required,datetime=2006-01-02"`
	Mode      string `form:"mode" validate:"omitempty,oneof=simple period_wise check_in_out"`
	ClassID   string `form:"classId"`
	StudentID string `form:"studentId"`
	TeacherID string `form:"teacherId"`
	Type      string `form:"type" validate:"omitempty,oneof=student teacher"`
}

// Values renders the query for the backend.
func (q RangeReportQuery) Values() url.Values {
	v := url.Values{}
	setIf(v, "startDate", q.StartDate)
	setIf(v, "endDate", q.EndDate)
	setIf(v, "mode", q.Mode)
	setIf(v, "classId", q.ClassID)
	setIf(v, "studentId", q.StudentID)
	setIf(v, "teacherId", q.TeacherID)
	setIf(v, "type", q.Type)
	return v
}

// Check rejects ranges that end before they start.
func (q RangeReportQuery) Check(c *Checker) {
	if q.StartDate != "" && q.EndDate != "" && q.EndDate < q.StartDate {
		c.Fail("endDate", "must not be before startDate")
	}
}

// CheckinDailyQuery narrows the daily check-in board.
type CheckinDailyQuery struct {
	UserType string `form:"userType" validate:"omitempty,oneof=student teacher"`
	ClassID  string `form:"classId"`
}

// Values renders the query for the backend.
func (q CheckinDailyQuery) Values() url.Values {
	v := url.Values{}
	setIf(v, "userType", q.UserType)
	setIf(v, "classId", q.ClassID)
	return v
}
