package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sms-console/internal/attendance"
	"github.com/noah-isme/sms-console/internal/backend"
	"github.com/noah-isme/sms-console/internal/dto"
	"github.com/noah-isme/sms-console/internal/models"
	"github.com/noah-isme/sms-console/internal/querycache"
	appErrors "github.com/noah-isme/sms-console/pkg/errors"
)

// AttendanceService covers the three attendance modes, teacher self
// attendance and the attendance reports of the session's school.
type AttendanceService struct {
	gateway
	students *StudentService
	validate *validator.Validate
}

// NewAttendanceService constructs an AttendanceService. Rosters for marking
// sheets are read through students.
func NewAttendanceService(client backend.Doer, cache *querycache.Cache, students *StudentService, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = dto.NewValidator()
	}
	return &AttendanceService{gateway: newGateway(client, cache, logger), students: students, validate: validate}
}

func (s *AttendanceService) path(tenant string, parts ...string) string {
	return schoolPath(tenant, append([]string{"attendance"}, parts...)...)
}

// target resolves the session's school and builds the path, backend query
// and cache key of a read.
func (s *AttendanceService) target(sess *models.Session, entity, scope string, build func(tenant string) (path string, query, filters url.Values)) (querycache.Key, string, url.Values, error) {
	tenant, err := schoolOf(sess)
	if err != nil {
		return querycache.Key{}, "", nil, err
	}
	path, query, filters := build(tenant)
	return querycache.Key{Entity: entity, Tenant: tenant, Scope: scope, Filters: filters}, path, query, nil
}

func (s *AttendanceService) batch(ctx context.Context, sess *models.Session, body interface{}, entity string, parts ...string) (attendance.BatchResult, error) {
	tenant, err := schoolOf(sess)
	if err != nil {
		return attendance.BatchResult{}, err
	}
	out, _, err := write[models.BatchOutcome](ctx, s.gateway, sess, http.MethodPost, s.path(tenant, parts...), body, entity, tenant)
	if err != nil {
		return attendance.BatchResult{}, err
	}
	result := attendance.NewBatchResult(out)
	if !result.Complete() {
		s.logger.Warn("attendance batch partially failed",
			zap.String("entity", entity),
			zap.Int("saved", result.Succeeded()),
			zap.Int("failed", result.Failed()),
		)
	}
	return result, nil
}

// roster lists the active students of a class section in backend order.
func (s *AttendanceService) roster(ctx context.Context, sess *models.Session, classID, sectionID string) ([]models.Student, error) {
	res, err := s.students.List(ctx, sess, models.StudentFilter{Class: classID, Section: sectionID, Status: models.StatusActive})
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

// MarkSimple saves a whole simple sheet in one request.
func (s *AttendanceService) MarkSimple(ctx context.Context, sess *models.Session, req dto.MarkSimpleRequest) (attendance.BatchResult, error) {
	if err := dto.Validate(s.validate, req, "invalid attendance payload"); err != nil {
		return attendance.BatchResult{}, err
	}
	return s.batch(ctx, sess, req, querycache.EntityAttendanceSimple, "simple", "mark")
}

// SimpleClass returns the simple records of a class for a date.
func (s *AttendanceService) SimpleClass(ctx context.Context, sess *models.Session, classID, date, sectionID string) (Result[[]models.AttendanceSimple], error) {
	if err := requireID(classID, "class"); err != nil {
		return Result[[]models.AttendanceSimple]{}, err
	}
	key, path, query, err := s.target(sess, querycache.EntityAttendanceSimple, "", func(tenant string) (string, url.Values, url.Values) {
		q := url.Values{}
		if sectionID != "" {
			q.Set("sectionId", sectionID)
		}
		f := url.Values{"classId": {classID}, "date": {date}, "sectionId": {sectionID}}
		return s.path(tenant, "simple", "class", classID, date), q, f
	})
	if err != nil {
		return Result[[]models.AttendanceSimple]{}, err
	}
	res, err := read[[]models.AttendanceSimple](ctx, s.gateway, sess, key, path, query)
	if err == nil && res.Data == nil {
		res.Data = []models.AttendanceSimple{}
	}
	return res, err
}

// SimpleSheet builds the marking sheet of a class section for a date from
// the roster and the records already saved.
func (s *AttendanceService) SimpleSheet(ctx context.Context, sess *models.Session, classID, sectionID, date string) (*attendance.Sheet, error) {
	students, err := s.roster(ctx, sess, classID, sectionID)
	if err != nil {
		return nil, err
	}
	existing, err := s.SimpleClass(ctx, sess, classID, date, sectionID)
	if err != nil {
		return nil, err
	}
	return attendance.NewSheet(classID, sectionID, date, students, existing.Data), nil
}

// SaveSheet applies the mark-all status and per-student overrides to the
// current sheet and saves every entry in one request.
func (s *AttendanceService) SaveSheet(ctx context.Context, sess *models.Session, req dto.SaveSheetRequest) (attendance.BatchResult, error) {
	if err := dto.Validate(s.validate, req, "invalid attendance payload"); err != nil {
		return attendance.BatchResult{}, err
	}
	sheet, err := s.SimpleSheet(ctx, sess, req.ClassID, req.SectionID, req.Date)
	if err != nil {
		return attendance.BatchResult{}, err
	}
	if sheet.Len() == 0 {
		return attendance.BatchResult{}, appErrors.Validation("no students to mark", map[string]string{"classId": "has no active students"})
	}
	if req.MarkAll != "" {
		if err := sheet.MarkAll(req.MarkAll); err != nil {
			return attendance.BatchResult{}, err
		}
	}
	for _, rec := range req.Records {
		remarks := rec.Remarks
		if err := sheet.Set(rec.StudentID, rec.Status, &remarks); err != nil {
			return attendance.BatchResult{}, err
		}
	}
	return s.batch(ctx, sess, sheet.Request(), querycache.EntityAttendanceSimple, "simple", "mark")
}

// SimpleStudent returns a student's simple history.
func (s *AttendanceService) SimpleStudent(ctx context.Context, sess *models.Session, studentID string, q dto.DateRangeQuery) (Result[models.SimpleStudentHistory], error) {
	return studentHistory[models.SimpleStudentHistory](ctx, s, sess, querycache.EntityAttendanceSimple, "simple", studentID, q)
}

// UpdateSimple corrects one simple record.
func (s *AttendanceService) UpdateSimple(ctx context.Context, sess *models.Session, id string, req dto.UpdateSimpleRecordRequest) (*models.AttendanceSimple, error) {
	if err := requireID(id, "attendance"); err != nil {
		return nil, err
	}
	if err := dto.Validate(s.validate, req, "invalid attendance payload"); err != nil {
		return nil, err
	}
	tenant, err := schoolOf(sess)
	if err != nil {
		return nil, err
	}
	out, _, err := write[models.AttendanceSimple](ctx, s.gateway, sess, http.MethodPut, s.path(tenant, "simple", id), req, querycache.EntityAttendanceSimple, tenant)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// MarkPeriod saves a whole period sheet in one request.
func (s *AttendanceService) MarkPeriod(ctx context.Context, sess *models.Session, req dto.MarkPeriodRequest) (attendance.BatchResult, error) {
	if err := dto.Validate(s.validate, req, "invalid attendance payload"); err != nil {
		return attendance.BatchResult{}, err
	}
	return s.batch(ctx, sess, req, querycache.EntityAttendancePeriod, "period", "mark")
}

// PeriodClass returns period records of a class for a date. A period of 0
// returns every period.
func (s *AttendanceService) PeriodClass(ctx context.Context, sess *models.Session, classID, date string, period int, sectionID string) (Result[[]models.AttendancePeriod], error) {
	if err := requireID(classID, "class"); err != nil {
		return Result[[]models.AttendancePeriod]{}, err
	}
	key, path, query, err := s.target(sess, querycache.EntityAttendancePeriod, "", func(tenant string) (string, url.Values, url.Values) {
		parts := []string{"period", "class", classID, date}
		if period > 0 {
			parts = append(parts, strconv.Itoa(period))
		}
		q := url.Values{}
		if sectionID != "" {
			q.Set("sectionId", sectionID)
		}
		f := url.Values{"classId": {classID}, "date": {date}, "period": {strconv.Itoa(period)}, "sectionId": {sectionID}}
		return s.path(tenant, parts...), q, f
	})
	if err != nil {
		return Result[[]models.AttendancePeriod]{}, err
	}
	res, err := read[[]models.AttendancePeriod](ctx, s.gateway, sess, key, path, query)
	if err == nil && res.Data == nil {
		res.Data = []models.AttendancePeriod{}
	}
	return res, err
}

// PeriodSheet builds the marking sheet for one period and subject.
func (s *AttendanceService) PeriodSheet(ctx context.Context, sess *models.Session, req dto.SavePeriodSheetRequest) (*attendance.PeriodSheet, error) {
	students, err := s.roster(ctx, sess, req.ClassID, req.SectionID)
	if err != nil {
		return nil, err
	}
	existing, err := s.PeriodClass(ctx, sess, req.ClassID, req.Date, req.Period, req.SectionID)
	if err != nil {
		return nil, err
	}
	teacherID := req.TeacherID
	if teacherID == "" {
		teacherID = memberID(sess)
	}
	return attendance.NewPeriodSheet(req.ClassID, req.SectionID, req.Date, req.Period, req.SubjectID, teacherID, req.IsSubstitute, students, existing.Data), nil
}

// SavePeriodSheet applies overrides to the current period sheet and saves it.
func (s *AttendanceService) SavePeriodSheet(ctx context.Context, sess *models.Session, req dto.SavePeriodSheetRequest) (attendance.BatchResult, error) {
	if err := dto.Validate(s.validate, req, "invalid attendance payload"); err != nil {
		return attendance.BatchResult{}, err
	}
	sheet, err := s.PeriodSheet(ctx, sess, req)
	if err != nil {
		return attendance.BatchResult{}, err
	}
	if sheet.Len() == 0 {
		return attendance.BatchResult{}, appErrors.Validation("no students to mark", map[string]string{"classId": "has no active students"})
	}
	if req.MarkAll != "" {
		if err := sheet.MarkAll(req.MarkAll); err != nil {
			return attendance.BatchResult{}, err
		}
	}
	for _, rec := range req.Records {
		remarks := rec.Remarks
		if err := sheet.Set(rec.StudentID, rec.Status, &remarks); err != nil {
			return attendance.BatchResult{}, err
		}
	}
	return s.MarkPeriod(ctx, sess, sheet.Request())
}

// PeriodStudent returns a student's period history.
func (s *AttendanceService) PeriodStudent(ctx context.Context, sess *models.Session, studentID string, q dto.DateRangeQuery) (Result[models.PeriodStudentHistory], error) {
	return studentHistory[models.PeriodStudentHistory](ctx, s, sess, querycache.EntityAttendancePeriod, "period", studentID, q)
}

func studentHistory[T any](ctx context.Context, s *AttendanceService, sess *models.Session, entity, mode, studentID string, q dto.DateRangeQuery) (Result[T], error) {
	if err := requireID(studentID, "student"); err != nil {
		return Result[T]{}, err
	}
	if err := dto.Validate(s.validate, q, "invalid date range"); err != nil {
		return Result[T]{}, err
	}
	scope := ""
	if sess != nil && sess.Role == models.RoleStudent {
		scope = "user:" + subjectOf(sess)
	}
	key, path, query, err := s.target(sess, entity, scope, func(tenant string) (string, url.Values, url.Values) {
		f := q.Values()
		f.Set("studentId", studentID)
		return s.path(tenant, mode, "student", studentID), q.Values(), f
	})
	if err != nil {
		return Result[T]{}, err
	}
	return read[T](ctx, s.gateway, sess, key, path, query)
}

// CheckIn opens a check-in log.
func (s *AttendanceService) CheckIn(ctx context.Context, sess *models.Session, req dto.CheckInRequest) (*models.AttendanceCheckin, error) {
	if err := dto.Validate(s.validate, req, "invalid check-in payload"); err != nil {
		return nil, err
	}
	status, err := s.currentCheckin(ctx, sess, req.UserID)
	if err != nil {
		return nil, err
	}
	if err := attendance.CheckInAllowed(status); err != nil {
		return nil, err
	}
	return s.checkinWrite(ctx, sess, req, "in")
}

// CheckOut closes the user's open check-in. Without one the call fails with
// CONFLICT before reaching the backend.
func (s *AttendanceService) CheckOut(ctx context.Context, sess *models.Session, req dto.CheckOutRequest) (*models.AttendanceCheckin, error) {
	if err := dto.Validate(s.validate, req, "invalid check-out payload"); err != nil {
		return nil, err
	}
	status, err := s.currentCheckin(ctx, sess, req.UserID)
	if err != nil {
		return nil, err
	}
	if err := attendance.CheckOutAllowed(status); err != nil {
		return nil, err
	}
	return s.checkinWrite(ctx, sess, req, "out")
}

func (s *AttendanceService) checkinWrite(ctx context.Context, sess *models.Session, body interface{}, action string) (*models.AttendanceCheckin, error) {
	tenant, err := schoolOf(sess)
	if err != nil {
		return nil, err
	}
	out, _, err := write[models.AttendanceCheckin](ctx, s.gateway, sess, http.MethodPost, s.path(tenant, "checkin", action), body, querycache.EntityAttendanceCheckin, tenant)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// currentCheckin reads the status bypassing the cache.
func (s *AttendanceService) currentCheckin(ctx context.Context, sess *models.Session, userID string) (models.CheckinStatus, error) {
	tenant, err := schoolOf(sess)
	if err != nil {
		return models.CheckinStatus{}, err
	}
	raw, err := fetch[json.RawMessage](ctx, s.gateway, sess, s.path(tenant, "checkin", "status", userID), nil)
	if err != nil {
		return models.CheckinStatus{}, err
	}
	return decodeCheckinStatus(raw)
}

// CheckinStatus reports whether a user has checked in today.
func (s *AttendanceService) CheckinStatus(ctx context.Context, sess *models.Session, userID string) (Result[models.CheckinStatus], error) {
	if err := requireID(userID, "user"); err != nil {
		return Result[models.CheckinStatus]{}, err
	}
	key, path, _, err := s.target(sess, querycache.EntityAttendanceCheckin, "", func(tenant string) (string, url.Values, url.Values) {
		return s.path(tenant, "checkin", "status", userID), nil, url.Values{"status": {userID}}
	})
	if err != nil {
		return Result[models.CheckinStatus]{}, err
	}
	res, err := read[json.RawMessage](ctx, s.gateway, sess, key, path, nil)
	if err != nil {
		return Result[models.CheckinStatus]{}, err
	}
	status, err := decodeCheckinStatus(res.Data)
	if err != nil {
		return Result[models.CheckinStatus]{}, err
	}
	return Result[models.CheckinStatus]{Data: status, CacheHit: res.CacheHit}, nil
}

// CheckinDaily lists the check-in logs of a date.
func (s *AttendanceService) CheckinDaily(ctx context.Context, sess *models.Session, date string, q dto.CheckinDailyQuery) (Result[models.DailyCheckins], error) {
	if err := dto.Validate(s.validate, q, "invalid check-in filter"); err != nil {
		return Result[models.DailyCheckins]{}, err
	}
	key, path, query, err := s.target(sess, querycache.EntityAttendanceCheckin, "", func(tenant string) (string, url.Values, url.Values) {
		f := q.Values()
		f.Set("date", date)
		return s.path(tenant, "checkin", "daily", date), q.Values(), f
	})
	if err != nil {
		return Result[models.DailyCheckins]{}, err
	}
	res, err := read[models.DailyCheckins](ctx, s.gateway, sess, key, path, query)
	if err == nil && res.Data.Attendance == nil {
		res.Data.Attendance = []models.AttendanceCheckin{}
	}
	return res, err
}

// CheckinBoard builds the board of a date for the check-in view.
func (s *AttendanceService) CheckinBoard(ctx context.Context, sess *models.Session, date string, q dto.CheckinDailyQuery) (*attendance.CheckinBoard, error) {
	res, err := s.CheckinDaily(ctx, sess, date, q)
	if err != nil {
		return nil, err
	}
	return attendance.NewCheckinBoard(res.Data.Attendance), nil
}

// TeacherCheckIn records the signed-in teacher's arrival.
func (s *AttendanceService) TeacherCheckIn(ctx context.Context, sess *models.Session) (*models.TeacherAttendance, error) {
	return s.teacherSelf(ctx, sess, "check-in")
}

// TeacherCheckOut records the signed-in teacher's departure.
func (s *AttendanceService) TeacherCheckOut(ctx context.Context, sess *models.Session) (*models.TeacherAttendance, error) {
	status, err := s.teacherStatus(ctx, sess, false)
	if err != nil {
		return nil, err
	}
	if !status.Data.CheckedIn || status.Data.Record == nil || status.Data.Record.CheckOutTime != nil {
		return nil, attendance.ErrNoOpenCheckin
	}
	return s.teacherSelf(ctx, sess, "check-out")
}

func (s *AttendanceService) teacherSelf(ctx context.Context, sess *models.Session, action string) (*models.TeacherAttendance, error) {
	tenant, err := schoolOf(sess)
	if err != nil {
		return nil, err
	}
	out, _, err := write[models.TeacherAttendance](ctx, s.gateway, sess, http.MethodPost, s.path(tenant, "teacher", action), struct{}{}, querycache.EntityAttendanceTeacher, tenant)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// TeacherStatus reports whether the signed-in teacher has checked in today.
func (s *AttendanceService) TeacherStatus(ctx context.Context, sess *models.Session) (Result[models.TeacherStatus], error) {
	return s.teacherStatus(ctx, sess, true)
}

func (s *AttendanceService) teacherStatus(ctx context.Context, sess *models.Session, cached bool) (Result[models.TeacherStatus], error) {
	tenant, err := schoolOf(sess)
	if err != nil {
		return Result[models.TeacherStatus]{}, err
	}
	path := s.path(tenant, "teacher", "status")
	var res Result[json.RawMessage]
	if cached {
		key := querycache.Key{Entity: querycache.EntityAttendanceTeacher, Tenant: tenant, Scope: "user:" + subjectOf(sess)}.With("view", "status")
		res, err = read[json.RawMessage](ctx, s.gateway, sess, key, path, nil)
	} else {
		res.Data, err = fetch[json.RawMessage](ctx, s.gateway, sess, path, nil)
	}
	if err != nil {
		return Result[models.TeacherStatus]{}, err
	}
	status, err := decodeTeacherStatus(res.Data)
	if err != nil {
		return Result[models.TeacherStatus]{}, err
	}
	return Result[models.TeacherStatus]{Data: status, CacheHit: res.CacheHit}, nil
}

// MarkTeachers saves teacher attendance for a day.
func (s *AttendanceService) MarkTeachers(ctx context.Context, sess *models.Session, req dto.MarkTeacherRequest) (attendance.BatchResult, error) {
	if err := dto.Validate(s.validate, req, "invalid attendance payload"); err != nil {
		return attendance.BatchResult{}, err
	}
	return s.batch(ctx, sess, req, querycache.EntityAttendanceTeacher, "teacher", "mark")
}

// TeacherDaily lists every teacher's attendance for a date.
func (s *AttendanceService) TeacherDaily(ctx context.Context, sess *models.Session, date string) (Result[models.TeacherAttendanceList], error) {
	key, path, _, err := s.target(sess, querycache.EntityAttendanceTeacher, "", func(tenant string) (string, url.Values, url.Values) {
		return s.path(tenant, "teacher", "daily", date), nil, url.Values{"date": {date}}
	})
	if err != nil {
		return Result[models.TeacherAttendanceList]{}, err
	}
	return teacherList(read[models.TeacherAttendanceList](ctx, s.gateway, sess, key, path, nil))
}

// TeacherHistory lists a teacher's attendance, optionally bounded.
func (s *AttendanceService) TeacherHistory(ctx context.Context, sess *models.Session, teacherID string, q dto.DateRangeQuery) (Result[models.TeacherAttendanceList], error) {
	if err := requireID(teacherID, "teacher"); err != nil {
		return Result[models.TeacherAttendanceList]{}, err
	}
	if err := dto.Validate(s.validate, q, "invalid date range"); err != nil {
		return Result[models.TeacherAttendanceList]{}, err
	}
	// The range only applies when both ends are given.
	query := url.Values{}
	if q.StartDate != "" && q.EndDate != "" {
		query = q.Values()
	}
	key, path, _, err := s.target(sess, querycache.EntityAttendanceTeacher, "", func(tenant string) (string, url.Values, url.Values) {
		f := url.Values{"history": {teacherID}}
		for k, v := range query {
			f[k] = v
		}
		return s.path(tenant, "teacher", teacherID, "history"), query, f
	})
	if err != nil {
		return Result[models.TeacherAttendanceList]{}, err
	}
	return teacherList(read[models.TeacherAttendanceList](ctx, s.gateway, sess, key, path, query))
}

func teacherList(res Result[models.TeacherAttendanceList], err error) (Result[models.TeacherAttendanceList], error) {
	if err == nil && res.Data.Attendance == nil {
		res.Data.Attendance = []models.TeacherAttendance{}
	}
	return res, err
}

// DailyReport aggregates one date.
func (s *AttendanceService) DailyReport(ctx context.Context, sess *models.Session, q dto.DailyReportQuery) (Result[models.DailyReport], error) {
	return report[models.DailyReport](ctx, s, sess, "daily", q, q.Values())
}

// MonthlyReport aggregates one calendar month.
func (s *AttendanceService) MonthlyReport(ctx context.Context, sess *models.Session, q dto.MonthlyReportQuery) (Result[models.MonthlyReport], error) {
	return report[models.MonthlyReport](ctx, s, sess, "monthly", q, q.Values())
}

// RangeReport aggregates a date range.
func (s *AttendanceService) RangeReport(ctx context.Context, sess *models.Session, q dto.RangeReportQuery) (Result[models.RangeReport], error) {
	return report[models.RangeReport](ctx, s, sess, "range", q, q.Values())
}

// ClassWiseReport lists per-class attendance for one date.
func (s *AttendanceService) ClassWiseReport(ctx context.Context, sess *models.Session, q dto.ClassWiseQuery) (Result[models.ClassWiseReport], error) {
	res, err := report[models.ClassWiseReport](ctx, s, sess, "classwise", q, q.Values())
	if err == nil && res.Data.Classes == nil {
		res.Data.Classes = []models.AttendanceRateRow{}
	}
	return res, err
}

func report[T any](ctx context.Context, s *AttendanceService, sess *models.Session, kind string, q interface{}, query url.Values) (Result[T], error) {
	if err := dto.Validate(s.validate, q, "invalid report filter"); err != nil {
		return Result[T]{}, err
	}
	key, path, _, err := s.target(sess, querycache.EntityAttendanceReports, "", func(tenant string) (string, url.Values, url.Values) {
		f := url.Values{"report": {kind}}
		for k, v := range query {
			f[k] = v
		}
		return s.path(tenant, "reports", kind), query, f
	})
	if err != nil {
		return Result[T]{}, err
	}
	return read[T](ctx, s.gateway, sess, key, path, query)
}

// decodeCheckinStatus accepts either a log or {"checked": false}.
func decodeCheckinStatus(raw json.RawMessage) (models.CheckinStatus, error) {
	if isNull(raw) {
		return models.CheckinStatus{}, nil
	}
	var probe struct {
		Checked *bool  `json:"checked"`
		LogID   string `json:"logId"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return models.CheckinStatus{}, appErrors.Wrap(err, appErrors.ErrBackend.Code, http.StatusBadGateway, "unexpected check-in status")
	}
	if probe.Checked != nil && probe.LogID == "" {
		return models.CheckinStatus{Checked: *probe.Checked}, nil
	}
	var log models.AttendanceCheckin
	if err := json.Unmarshal(raw, &log); err != nil {
		return models.CheckinStatus{}, appErrors.Wrap(err, appErrors.ErrBackend.Code, http.StatusBadGateway, "unexpected check-in status")
	}
	return models.CheckinStatus{Checked: log.CheckInTime != nil, Log: &log}, nil
}

// decodeTeacherStatus accepts either a record or {"checkedIn": false}.
func decodeTeacherStatus(raw json.RawMessage) (models.TeacherStatus, error) {
	if isNull(raw) {
		return models.TeacherStatus{}, nil
	}
	var probe struct {
		CheckedIn    *bool  `json:"checkedIn"`
		AttendanceID string `json:"attendanceId"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return models.TeacherStatus{}, appErrors.Wrap(err, appErrors.ErrBackend.Code, http.StatusBadGateway, "unexpected teacher status")
	}
	if probe.CheckedIn != nil && probe.AttendanceID == "" {
		return models.TeacherStatus{CheckedIn: *probe.CheckedIn}, nil
	}
	var rec models.TeacherAttendance
	if err := json.Unmarshal(raw, &rec); err != nil {
		return models.TeacherStatus{}, appErrors.Wrap(err, appErrors.ErrBackend.Code, http.StatusBadGateway, "unexpected teacher status")
	}
	return models.TeacherStatus{CheckedIn: rec.CheckInTime != nil, Record: &rec}, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
