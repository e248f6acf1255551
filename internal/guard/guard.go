// Package guard decides whether a console session may open a view.
package guard

import (
	"time"

	"github.com/noah-isme/sms-console/internal/models"
)

// Redirect targets.
const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
	HomePath         = "/"
)

// Decision is the outcome of Decide. Redirect is empty when Allowed.
type Decision struct {
	Allowed  bool
	Redirect string
}

// Decide allows navigation only for a live session whose role is in
// required. Missing or expired sessions go to login, other roles go to the
// unauthorized view.
func Decide(required []models.UserRole, sess *models.Session, now time.Time) Decision {
	if sess == nil || sess.Expired(now) {
		return Decision{Redirect: LoginPath}
	}
	for _, role := range required {
		if sess.Role == role {
			return Decision{Allowed: true}
		}
	}
	return Decision{Redirect: UnauthorizedPath}
}

// DashboardPath is the landing page of a role after login.
func DashboardPath(role models.UserRole) string {
	switch role {
	case models.RoleSuperAdmin:
		return "/super-admin/dashboard"
	case models.RoleSchoolAdmin:
		return "/school-admin/dashboard"
	case models.RoleTeacher:
		return "/teacher/dashboard"
	case models.RoleStudent:
		return "/student/dashboard"
	default:
		return HomePath
	}
}
