package models

import "time"

// EntityStatus is the active/inactive toggle shared by most entities.
type EntityStatus string

const (
	StatusActive   EntityStatus = "active"
	StatusInactive EntityStatus = "inactive"
)

// Toggle returns the opposite status; anything not active becomes active.
func (s EntityStatus) Toggle() EntityStatus {
	if s == StatusActive {
		return StatusInactive
	}
	return StatusActive
}

// WorkingHours bounds a school day in HH:MM.
type WorkingHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// AttendanceSettings configures how a school records attendance.
type AttendanceSettings struct {
	Mode                    AttendanceMode `json:"mode"`
	WorkingHours            WorkingHours   `json:"workingHours"`
	LateThresholdMinutes    int            `json:"lateThresholdMinutes"`
	HalfDayThresholdMinutes int            `json:"halfDayThresholdMinutes"`
	PeriodsPerDay           int            `json:"periodsPerDay"`
}

// School is a tenant managed from the platform service.
type School struct {
	SchoolID           string              `json:"schoolId"`
	SchoolName         string              `json:"schoolName"`
	SchoolLogo         string              `json:"schoolLogo,omitempty"`
	SchoolDBName       string              `json:"schoolDbName"`
	Status             EntityStatus        `json:"status"`
	SchoolAddress      string              `json:"schoolAddress,omitempty"`
	SchoolEmail        string              `json:"schoolEmail,omitempty"`
	SchoolContact      string              `json:"schoolContact,omitempty"`
	SchoolWebsite      string              `json:"schoolWebsite,omitempty"`
	AttendanceSettings *AttendanceSettings `json:"attendanceSettings,omitempty"`
	CreatedAt          *time.Time          `json:"createdAt,omitempty"`
	UpdatedAt          *time.Time          `json:"updatedAt,omitempty"`
}

// SchoolAdmin is a sch_admin account managed from the platform service.
type SchoolAdmin struct {
	UserID        string       `json:"userId"`
	Username      string       `json:"username"`
	Email         string       `json:"email"`
	Role          UserRole     `json:"role"`
	SchoolID      string       `json:"schoolId"`
	ContactNumber string       `json:"contactNumber,omitempty"`
	Status        EntityStatus `json:"status"`
	CreatedAt     *time.Time   `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time   `json:"updatedAt,omitempty"`
}

// PlatformStats backs the super admin dashboard.
type PlatformStats struct {
	TotalSchools  int `json:"totalSchools"`
	TotalUsers    int `json:"totalUsers"`
	ActiveSchools int `json:"activeSchools"`
	ActiveUsers   int `json:"activeUsers"`
}

// SchoolStats backs the school dashboards.
type SchoolStats struct {
	TotalTeachers  int `json:"totalTeachers"`
	ActiveTeachers int `json:"activeTeachers"`
	TotalStudents  int `json:"totalStudents"`
	ActiveStudents int `json:"activeStudents"`
	TotalParents   int `json:"totalParents"`
	ActiveParents  int `json:"activeParents"`
}
