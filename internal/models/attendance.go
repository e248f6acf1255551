package models

import (
	"encoding/json"
	"time"
)

// AttendanceMode is chosen per school.
type AttendanceMode string

const (
	ModeSimple     AttendanceMode = "simple"
	ModePeriodWise AttendanceMode = "period_wise"
	ModeCheckInOut AttendanceMode = "check_in_out"
)

// AttendanceStatus is shared by every attendance shape.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceHalfDay AttendanceStatus = "half_day"
	AttendanceLeave   AttendanceStatus = "leave"
	AttendancePending AttendanceStatus = "pending"
)

// Valid reports whether s belongs to the status vocabulary.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceHalfDay, AttendanceLeave, AttendancePending:
		return true
	}
	return false
}

// AttendanceSimple is one row per student per day.
type AttendanceSimple struct {
	AttendanceID string           `json:"attendanceId"`
	SchoolID     string           `json:"schoolId"`
	ClassID      string           `json:"classId"`
	SectionID    string           `json:"sectionId,omitempty"`
	StudentID    string           `json:"studentId"`
	Date         string           `json:"date"`
	Status       AttendanceStatus `json:"status"`
	MarkedBy     string           `json:"markedBy"`
	MarkedByRole UserRole         `json:"markedByRole"`
	Remarks      string           `json:"remarks,omitempty"`
	CreatedAt    *time.Time       `json:"createdAt,omitempty"`
	UpdatedAt    *time.Time       `json:"updatedAt,omitempty"`
}

// AttendancePeriod is one row per student per day per period per subject.
type AttendancePeriod struct {
	AttendanceID string           `json:"attendanceId"`
	SchoolID     string           `json:"schoolId"`
	ClassID      string           `json:"classId"`
	SectionID    string           `json:"sectionId,omitempty"`
	StudentID    string           `json:"studentId"`
	Date         string           `json:"date"`
	Period       int              `json:"period"`
	SubjectID    string           `json:"subjectId"`
	TeacherID    string           `json:"teacherId"`
	Status       AttendanceStatus `json:"status"`
	MarkedBy     string           `json:"markedBy"`
	IsSubstitute bool             `json:"isSubstitute"`
	Remarks      string           `json:"remarks,omitempty"`
	CreatedAt    *time.Time       `json:"createdAt,omitempty"`
	UpdatedAt    *time.Time       `json:"updatedAt,omitempty"`
}

// AttendanceCheckin is one row per user-day with optional check-in/out times.
// TotalMinutes and Status are computed by the backend.
type AttendanceCheckin struct {
	LogID          string           `json:"logId"`
	SchoolID       string           `json:"schoolId"`
	UserID         string           `json:"userId"`
	UserType       string           `json:"userType"`
	ClassID        string           `json:"classId,omitempty"`
	SectionID      string           `json:"sectionId,omitempty"`
	Date           string           `json:"date"`
	CheckInTime    *time.Time       `json:"checkInTime,omitempty"`
	CheckOutTime   *time.Time       `json:"checkOutTime,omitempty"`
	CheckInMethod  string           `json:"checkInMethod"`
	CheckOutMethod string           `json:"checkOutMethod,omitempty"`
	TotalMinutes   int              `json:"totalMinutes"`
	Status         AttendanceStatus `json:"status"`
	MarkedBy       string           `json:"markedBy,omitempty"`
	Remarks        string           `json:"remarks,omitempty"`
}

// Open reports a check-in that has not been checked out yet.
func (a AttendanceCheckin) Open() bool {
	return a.CheckInTime != nil && a.CheckOutTime == nil
}

// TeacherAttendance is a teacher's own day record.
type TeacherAttendance struct {
	AttendanceID string           `json:"attendanceId"`
	SchoolID     string           `json:"schoolId"`
	TeacherID    string           `json:"teacherId"`
	Date         string           `json:"date"`
	CheckInTime  *time.Time       `json:"checkInTime,omitempty"`
	CheckOutTime *time.Time       `json:"checkOutTime,omitempty"`
	Status       AttendanceStatus `json:"status"`
	LeaveType    string           `json:"leaveType,omitempty"`
	TotalMinutes int              `json:"totalMinutes"`
	MarkedBy     string           `json:"markedBy"`
	MarkedByRole UserRole         `json:"markedByRole"`
	Remarks      string           `json:"remarks,omitempty"`
}

// AttendanceSummary counts a set of attendance rows by status.
type AttendanceSummary struct {
	Total      int    `json:"total"`
	Present    int    `json:"present"`
	Absent     int    `json:"absent"`
	Late       int    `json:"late"`
	HalfDay    int    `json:"halfDay"`
	Leave      int    `json:"leave"`
	Percentage string `json:"percentage,omitempty"`
}

// SimpleStudentHistory is a student's simple attendance over a date range.
type SimpleStudentHistory struct {
	Attendance []AttendanceSimple `json:"attendance"`
	Summary    AttendanceSummary  `json:"summary"`
}

// PeriodStudentHistory is a student's period attendance over a date range.
type PeriodStudentHistory struct {
	Attendance []AttendancePeriod `json:"attendance"`
	Overall    AttendanceSummary  `json:"overall"`
}

// DailyCheckins lists check-in logs for a date.
type DailyCheckins struct {
	Attendance []AttendanceCheckin `json:"attendance"`
	Summary    map[string]int      `json:"summary,omitempty"`
}

// CheckinStatus answers whether a user has checked in today.
type CheckinStatus struct {
	Checked bool               `json:"checked"`
	Log     *AttendanceCheckin `json:"log,omitempty"`
}

// TeacherStatus answers whether the signed-in teacher has checked in today.
type TeacherStatus struct {
	CheckedIn bool               `json:"checkedIn"`
	Record    *TeacherAttendance `json:"record,omitempty"`
}

// TeacherAttendanceList is the teacher daily/history payload.
type TeacherAttendanceList struct {
	Attendance []TeacherAttendance `json:"attendance"`
	Summary    AttendanceSummary   `json:"summary"`
}

// AttendanceRateRow is one student, teacher or class line of a report.
type AttendanceRateRow struct {
	StudentID  string `json:"studentId,omitempty"`
	TeacherID  string `json:"teacherId,omitempty"`
	ClassID    string `json:"classId,omitempty"`
	SectionID  string `json:"sectionId,omitempty"`
	Present    int    `json:"present"`
	Absent     int    `json:"absent"`
	Late       int    `json:"late"`
	HalfDay    int    `json:"halfDay"`
	Leave      int    `json:"leave"`
	Total      int    `json:"total"`
	Percentage string `json:"percentage"`
}

// DailyReport aggregates one date.
type DailyReport struct {
	Date     string         `json:"date"`
	Mode     AttendanceMode `json:"mode"`
	Students struct {
		// Attendance shape depends on Mode.
		Attendance json.RawMessage   `json:"attendance,omitempty"`
		Summary    AttendanceSummary `json:"summary"`
	} `json:"students"`
	Teachers struct {
		Attendance []TeacherAttendance `json:"attendance"`
		Summary    AttendanceSummary   `json:"summary"`
	} `json:"teachers"`
}

// MonthlyBreakdown is the per-person part of a monthly report.
type MonthlyBreakdown struct {
	ByStudent    []AttendanceRateRow `json:"byStudent,omitempty"`
	ByTeacher    []AttendanceRateRow `json:"byTeacher,omitempty"`
	TotalRecords int                 `json:"totalRecords"`
	WorkingDays  int                 `json:"workingDays"`
}

// MonthlyReport aggregates one calendar month.
type MonthlyReport struct {
	Year      int               `json:"year"`
	Month     int               `json:"month"`
	StartDate string            `json:"startDate"`
	EndDate   string            `json:"endDate"`
	Students  *MonthlyBreakdown `json:"students,omitempty"`
	Teachers  *MonthlyBreakdown `json:"teachers,omitempty"`
}

// BatchOutcome is the results/errors pair returned by bulk saves.
type BatchOutcome struct {
	Results []map[string]any `json:"results"`
	Errors  []map[string]any `json:"errors"`
}

// ClassWiseReport lists per-class attendance for one date.
type ClassWiseReport struct {
	Date    string              `json:"date"`
	Classes []AttendanceRateRow `json:"classes"`
}

// RangeReport aggregates a date range. Each part's shape depends on the
// requested mode and type.
type RangeReport struct {
	Students json.RawMessage `json:"students,omitempty"`
	Teachers json.RawMessage `json:"teachers,omitempty"`
}
