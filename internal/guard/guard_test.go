package guard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/sms-console/internal/models"
)

var now = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func session(role models.UserRole, exp *time.Time) *models.Session {
	return &models.Session{SubjectID: "u1", Role: role, ExpiresAt: exp}
}

func TestDecide(t *testing.T) {
	future := now.Add(time.Hour)
	past := now.Add(-time.Minute)

	cases := []struct {
		name     string
		required []models.UserRole
		sess     *models.Session
		want     Decision
	}{
		{"no session", []models.UserRole{models.RoleTeacher}, nil, Decision{Redirect: LoginPath}},
		{"expired", []models.UserRole{models.RoleTeacher}, session(models.RoleTeacher, &past), Decision{Redirect: LoginPath}},
		{"missing expiry", []models.UserRole{models.RoleTeacher}, session(models.RoleTeacher, nil), Decision{Redirect: LoginPath}},
		{"role matches", []models.UserRole{models.RoleTeacher}, session(models.RoleTeacher, &future), Decision{Allowed: true}},
		{"role mismatch", []models.UserRole{models.RoleSchoolAdmin}, session(models.RoleTeacher, &future), Decision{Redirect: UnauthorizedPath}},
		{"empty requirement", nil, session(models.RoleTeacher, &future), Decision{Redirect: UnauthorizedPath}},
		{"unknown role", []models.UserRole{models.RoleTeacher}, session(models.UserRole("janitor"), &future), Decision{Redirect: UnauthorizedPath}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Decide(tc.required, tc.sess, now))
		})
	}
}

func TestDashboardPath(t *testing.T) {
	assert.Equal(t, "/teacher/dashboard", DashboardPath(models.RoleTeacher))
	assert.Equal(t, "/school-admin/dashboard", DashboardPath(models.RoleSchoolAdmin))
	assert.Equal(t, "/super-admin/dashboard", DashboardPath(models.RoleSuperAdmin))
	assert.Equal(t, "/student/dashboard", DashboardPath(models.RoleStudent))
	assert.Equal(t, HomePath, DashboardPath("parent"))
}

func TestMenuFollowsNavigation(t *testing.T) {
	teacher := Menu(models.RoleTeacher)
	assert.Contains(t, teacher, Item{Label: "Attendance", Path: "/teacher/attendance/mode"})
	assert.Contains(t, Menu(models.RoleStudent), Item{Label: "Leave", Path: "/student/leave"})
	for _, item := range teacher {
		assert.Contains(t, item.Path, "/teacher/")
	}
	assert.Nil(t, Menu("parent"))
}
