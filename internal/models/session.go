package models

import "time"

// UserRole represents the roles carried in console credentials.
type UserRole string

const (
	RoleSuperAdmin  UserRole = "super_admin"
	RoleSchoolAdmin UserRole = "sch_admin"
	RoleTeacher     UserRole = "teacher"
	RoleStudent     UserRole = "student"
)

// Roles lists every role with a console area.
var Roles = []UserRole{RoleSuperAdmin, RoleSchoolAdmin, RoleTeacher, RoleStudent}

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// Session is derived from a stored credential. It is read-only to the rest of
// the console and is passed explicitly to guards and services.
type Session struct {
	SubjectID string     `json:"subjectId"`
	MemberID  string     `json:"memberId,omitempty"`
	Role      UserRole   `json:"role"`
	SchoolID  string     `json:"schoolId,omitempty"`
	Name      string     `json:"name,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`

	// Token is the raw bearer credential the session was decoded from.
	Token string `json:"-"`
}

// Expired is fail-closed: a session without an expiry is treated as expired.
func (s *Session) Expired(now time.Time) bool {
	if s == nil || s.ExpiresAt == nil {
		return true
	}
	return !now.Before(*s.ExpiresAt)
}

// UserType maps the role to the userType vocabulary used by requests and leave.
func (s *Session) UserType() string {
	if s == nil {
		return ""
	}
	return string(s.Role)
}
