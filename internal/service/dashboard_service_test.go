package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sms-console/internal/backend"
	"github.com/noah-isme/sms-console/internal/models"
	appErrors "github.com/noah-isme/sms-console/pkg/errors"
)

func newDashboard(t *testing.T, fake *fakeBackend) *DashboardService {
	t.Helper()
	cache := newTestCache(t)
	return NewDashboardService(fake, cache, DashboardDeps{
		Schools:    NewSchoolService(fake, cache, nil, nil),
		Requests:   NewRequestService(fake, cache, nil, nil),
		Leave:      NewLeaveService(fake, cache, nil, nil),
		Attendance: newAttendanceService(t, fake, cache),
	}, nil)
}

func TestPlatformDashboardCombinesReads(t *testing.T) {
	fake := newFakeBackend(func(call backend.Call) (interface{}, backend.Meta, error) {
		switch call.Path {
		case "/api/admin/dashboard/stats":
			return models.PlatformStats{TotalSchools: 2, ActiveSchools: 1}, backend.Meta{Status: http.StatusOK}, nil
		case schoolAPI + "/get-all-schools":
			return []models.School{{SchoolID: "a"}, {SchoolID: "b"}}, count(2), nil
		}
		return nil, backend.Meta{}, appErrors.Backend(http.StatusNotFound, "")
	})

	dash, err := newDashboard(t, fake).Platform(context.Background(), superSession())
	require.NoError(t, err)
	assert.Equal(t, 2, dash.Stats.TotalSchools)
	assert.Len(t, dash.Schools, 2)
}

func TestSchoolDashboardFailsWhenAnyReadFails(t *testing.T) {
	fake := newFakeBackend(func(call backend.Call) (interface{}, backend.Meta, error) {
		switch call.Path {
		case "/api/school/s1/leave/stats":
			return nil, backend.Meta{}, appErrors.Connectivity(assert.AnError)
		case "/api/school/s1/requests":
			return []models.Request{}, count(0), nil
		}
		return models.SchoolStats{TotalTeachers: 4}, backend.Meta{Status: http.StatusOK}, nil
	})

	_, err := newDashboard(t, fake).School(context.Background(), adminSession())
	assert.True(t, appErrors.IsCode(err, appErrors.ErrConnectivity.Code))
}

func TestMemberDashboardForTeacher(t *testing.T) {
	fake := newFakeBackend(func(call backend.Call) (interface{}, backend.Meta, error) {
		switch call.Path {
		case schoolAPI + "/get-school/s1":
			return models.School{SchoolID: "s1", AttendanceSettings: &models.AttendanceSettings{Mode: models.ModePeriodWise}}, backend.Meta{Status: http.StatusOK}, nil
		case "/api/school/s1/requests/my":
			return []models.Request{}, count(0), nil
		case "/api/school/s1/leave/my":
			return models.LeaveList{}, backend.Meta{Status: http.StatusOK}, nil
		case "/api/school/s1/attendance/teacher/status":
			return map[string]bool{"checkedIn": false}, backend.Meta{Status: http.StatusOK}, nil
		}
		return nil, backend.Meta{}, appErrors.Backend(http.StatusNotFound, "")
	})

	dash, err := newDashboard(t, fake).Member(context.Background(), teacherSession())
	require.NoError(t, err)
	assert.Equal(t, models.ModePeriodWise, dash.Mode)
	require.NotNil(t, dash.Teacher)
	assert.False(t, dash.Teacher.CheckedIn)
	assert.NotNil(t, dash.Leave)
}
