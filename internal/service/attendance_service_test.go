package service

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sms-console/internal/attendance"
	"github.com/noah-isme/sms-console/internal/backend"
	"github.com/noah-isme/sms-console/internal/dto"
	"github.com/noah-isme/sms-console/internal/models"
	"github.com/noah-isme/sms-console/internal/querycache"
	appErrors "github.com/noah-isme/sms-console/pkg/errors"
)

func newAttendanceService(t *testing.T, fake *fakeBackend, cache *querycache.Cache) *AttendanceService {
	t.Helper()
	students := NewStudentService(fake, cache, nil, nil)
	return NewAttendanceService(fake, cache, students, nil, nil)
}

func TestSaveSheetMarkAllSendsEveryStudentOnce(t *testing.T) {
	ctx := context.Background()
	fake := newFakeBackend(func(call backend.Call) (interface{}, backend.Meta, error) {
		switch call.Path {
		case "/api/school/s1/students":
			return []models.Student{{StudentID: "a"}, {StudentID: "b"}, {StudentID: "c"}}, count(3), nil
		case "/api/school/s1/attendance/simple/class/c1/2026-10-19":
			return []models.AttendanceSimple{{StudentID: "b", Status: models.AttendanceAbsent, Remarks: "flu"}}, count(1), nil
		case "/api/school/s1/attendance/simple/mark":
			req := call.Body.(dto.MarkSimpleRequest)
			results := make([]map[string]any, 0, len(req.AttendanceRecords))
			for _, rec := range req.AttendanceRecords {
				results = append(results, map[string]any{"studentId": rec.StudentID})
			}
			return models.BatchOutcome{Results: results}, backend.Meta{Status: http.StatusOK}, nil
		}
		return nil, backend.Meta{}, appErrors.Backend(http.StatusNotFound, "")
	})
	svc := newAttendanceService(t, fake, newTestCache(t))

	result, err := svc.SaveSheet(ctx, teacherSession(), dto.SaveSheetRequest{
		ClassID:   "c1",
		SectionID: "A",
		Date:      "2026-10-19",
		MarkAll:   models.AttendancePresent,
	})
	require.NoError(t, err)
	assert.True(t, result.Complete())
	assert.Equal(t, 3, result.Succeeded())

	assert.Equal(t, 1, fake.count(http.MethodPost, "/api/school/s1/attendance/simple/mark"))
	call, _ := fake.last(http.MethodPost, "/api/school/s1/attendance/simple/mark")
	body := call.Body.(dto.MarkSimpleRequest)
	require.Len(t, body.AttendanceRecords, 3)
	for _, rec := range body.AttendanceRecords {
		assert.Equal(t, models.AttendancePresent, rec.Status)
	}
	assert.Equal(t, "flu", body.AttendanceRecords[1].Remarks)

	roster, _ := fake.last(http.MethodGet, "/api/school/s1/students")
	assert.Equal(t, "c1", roster.Query.Get("class"))
	assert.Equal(t, "A", roster.Query.Get("section"))
	assert.Equal(t, "active", roster.Query.Get("status"))
}

func TestSaveSheetRejectsStudentOffRoster(t *testing.T) {
	fake := newFakeBackend(func(call backend.Call) (interface{}, backend.Meta, error) {
		if call.Path == "/api/school/s1/students" {
			return []models.Student{{StudentID: "a"}}, count(1), nil
		}
		return []models.AttendanceSimple{}, count(0), nil
	})
	svc := newAttendanceService(t, fake, newTestCache(t))

	_, err := svc.SaveSheet(context.Background(), teacherSession(), dto.SaveSheetRequest{
		ClassID: "c1",
		Date:    "2026-10-19",
		Records: []dto.SimpleRecordInput{{StudentID: "ghost", Status: models.AttendanceAbsent}},
	})

	assert.True(t, appErrors.IsCode(err, appErrors.ErrValidation.Code))
	assert.Zero(t, fake.count(http.MethodPost, "/api/school/s1/attendance/simple/mark"))
}

func TestMarkSimpleInvalidatesReports(t *testing.T) {
	ctx := context.Background()
	fake := newFakeBackend(func(call backend.Call) (interface{}, backend.Meta, error) {
		if call.Method == http.MethodPost {
			return models.BatchOutcome{Results: []map[string]any{{"studentId": "a"}}}, backend.Meta{Status: http.StatusOK}, nil
		}
		return models.DailyReport{Date: "2026-10-19", Mode: models.ModeSimple}, backend.Meta{Status: http.StatusOK}, nil
	})
	svc := newAttendanceService(t, fake, newTestCache(t))
	q := dto.DailyReportQuery{Date: "2026-10-19"}

	_, err := svc.DailyReport(ctx, adminSession(), q)
	require.NoError(t, err)
	_, err = svc.MarkSimple(ctx, teacherSession(), dto.MarkSimpleRequest{
		ClassID:           "c1",
		AttendanceRecords: []dto.SimpleRecordInput{{StudentID: "a", Status: models.AttendancePresent}},
	})
	require.NoError(t, err)
	res, err := svc.DailyReport(ctx, adminSession(), q)
	require.NoError(t, err)

	assert.False(t, res.CacheHit)
	assert.Equal(t, 2, fake.count(http.MethodGet, "/api/school/s1/attendance/reports/daily"))
}

func TestPartialBatchIsReportedNotRetried(t *testing.T) {
	fake := newFakeBackend(func(call backend.Call) (interface{}, backend.Meta, error) {
		return models.BatchOutcome{
			Results: []map[string]any{{"teacherId": "t1"}},
			Errors:  []map[string]any{{"teacherId": "t2", "error": "unknown teacher"}},
		}, backend.Meta{Status: http.StatusOK}, nil
	})
	svc := newAttendanceService(t, fake, newTestCache(t))

	result, err := svc.MarkTeachers(context.Background(), adminSession(), dto.MarkTeacherRequest{
		AttendanceRecords: []dto.TeacherRecordInput{
			{TeacherID: "t1", Status: models.AttendancePresent},
			{TeacherID: "t2", Status: models.AttendanceAbsent},
		},
	})
	require.NoError(t, err)
	assert.False(t, result.Complete())
	assert.Equal(t, "attendance saved for 1 record(s), 1 failed", result.Message())
	assert.Equal(t, 1, fake.total())
}

func TestCheckOutWithoutOpenCheckinConflicts(t *testing.T) {
	fake := newFakeBackend(func(call backend.Call) (interface{}, backend.Meta, error) {
		if call.Method == http.MethodGet {
			return map[string]bool{"checked": false}, backend.Meta{Status: http.StatusOK}, nil
		}
		return models.AttendanceCheckin{}, backend.Meta{Status: http.StatusOK}, nil
	})
	svc := newAttendanceService(t, fake, newTestCache(t))

	_, err := svc.CheckOut(context.Background(), teacherSession(), dto.CheckOutRequest{UserID: "st1"})

	assert.True(t, appErrors.IsCode(err, appErrors.ErrConflict.Code))
	assert.Zero(t, fake.count(http.MethodPost, "/api/school/s1/attendance/checkin/out"))
}

func TestCheckOutWithOpenCheckin(t *testing.T) {
	in := time.Date(2026, 10, 19, 7, 50, 0, 0, time.UTC)
	fake := newFakeBackend(func(call backend.Call) (interface{}, backend.Meta, error) {
		if call.Method == http.MethodGet {
			return models.AttendanceCheckin{LogID: "l1", UserID: "st1", CheckInTime: &in}, backend.Meta{Status: http.StatusOK}, nil
		}
		out := in.Add(6 * time.Hour)
		return models.AttendanceCheckin{LogID: "l1", UserID: "st1", CheckInTime: &in, CheckOutTime: &out}, backend.Meta{Status: http.StatusOK}, nil
	})
	svc := newAttendanceService(t, fake, newTestCache(t))

	log, err := svc.CheckOut(context.Background(), teacherSession(), dto.CheckOutRequest{UserID: "st1"})
	require.NoError(t, err)
	assert.NotNil(t, log.CheckOutTime)
	assert.Equal(t, 1, fake.count(http.MethodPost, "/api/school/s1/attendance/checkin/out"))
}

func TestDecodeCheckinStatusShapes(t *testing.T) {
	status, err := decodeCheckinStatus(json.RawMessage(`{"checked":false}`))
	require.NoError(t, err)
	assert.Equal(t, models.CheckinStatus{}, status)

	status, err = decodeCheckinStatus(nil)
	require.NoError(t, err)
	assert.False(t, status.Checked)

	status, err = decodeCheckinStatus(json.RawMessage(`{"logId":"l1","userId":"u1","checkInTime":"2026-10-19T07:50:00Z"}`))
	require.NoError(t, err)
	assert.True(t, status.Checked)
	require.NotNil(t, status.Log)
	assert.NoError(t, attendance.CheckOutAllowed(status))

	teacher, err := decodeTeacherStatus(json.RawMessage(`{"checkedIn":false}`))
	require.NoError(t, err)
	assert.False(t, teacher.CheckedIn)

	teacher, err = decodeTeacherStatus(json.RawMessage(`{"attendanceId":"a1","teacherId":"t1","checkInTime":"2026-10-19T07:50:00Z"}`))
	require.NoError(t, err)
	assert.True(t, teacher.CheckedIn)
	assert.Equal(t, "t1", teacher.Record.TeacherID)
}

func TestTeacherStatusIsScopedToUser(t *testing.T) {
	ctx := context.Background()
	fake := newFakeBackend(okHandler(map[string]bool{"checkedIn": false}))
	svc := newAttendanceService(t, fake, newTestCache(t))

	other := teacherSession()
	other.SubjectID = "user-8"

	_, err := svc.TeacherStatus(ctx, teacherSession())
	require.NoError(t, err)
	_, err = svc.TeacherStatus(ctx, other)
	require.NoError(t, err)

	assert.Equal(t, 2, fake.count(http.MethodGet, "/api/school/s1/attendance/teacher/status"))
}

func TestRangeReportRejectsInvertedRange(t *testing.T) {
	fake := newFakeBackend(okHandler(nil))
	svc := newAttendanceService(t, fake, newTestCache(t))

	_, err := svc.RangeReport(context.Background(), adminSession(), dto.RangeReportQuery{StartDate: "2026-10-19", EndDate: "2026-10-01"})

	assert.True(t, appErrors.IsCode(err, appErrors.ErrValidation.Code))
	assert.Zero(t, fake.total())
}
