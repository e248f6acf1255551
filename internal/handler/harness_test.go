package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/sms-console/internal/backend"
	"github.com/noah-isme/sms-console/internal/debounce"
	"github.com/noah-isme/sms-console/internal/dto"
	"github.com/noah-isme/sms-console/internal/form"
	"github.com/noah-isme/sms-console/internal/middleware"
	"github.com/noah-isme/sms-console/internal/models"
	"github.com/noah-isme/sms-console/internal/querycache"
	"github.com/noah-isme/sms-console/internal/repository"
	"github.com/noah-isme/sms-console/internal/service"
	"github.com/noah-isme/sms-console/internal/session"
)

type handlerFunc func(call backend.Call) (interface{}, backend.Meta, error)

type fakeBackend struct {
	mu     sync.Mutex
	calls  []backend.Call
	handle handlerFunc
}

func (f *fakeBackend) Do(_ context.Context, call backend.Call, dest interface{}) (backend.Meta, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	handle := f.handle
	f.mu.Unlock()

	data, meta, err := handle(call)
	if err != nil {
		return meta, err
	}
	if dest != nil && data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return meta, err
		}
		if err := json.Unmarshal(raw, dest); err != nil {
			return meta, err
		}
	}
	return meta, nil
}

func (f *fakeBackend) count(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

func (f *fakeBackend) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeBackend) queries(path string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.calls {
		if c.Path == path {
			out = append(out, c.Query.Get("query"))
		}
	}
	return out
}

type fakeAuth struct {
	login  func(ctx context.Context, store *session.TokenStore, req dto.LoginRequest) (*service.LoginResult, error)
	logout func(ctx context.Context, store *session.TokenStore) error
}

func (f *fakeAuth) Login(ctx context.Context, store *session.TokenStore, req dto.LoginRequest) (*service.LoginResult, error) {
	return f.login(ctx, store, req)
}

func (f *fakeAuth) Verify(context.Context, *session.TokenStore) (json.RawMessage, error) {
	return json.RawMessage(`{"valid":true}`), nil
}

func (f *fakeAuth) Logout(ctx context.Context, store *session.TokenStore) error {
	if f.logout != nil {
		return f.logout(ctx, store)
	}
	return store.Clear(ctx)
}

type harness struct {
	backend  *fakeBackend
	sessions *session.Manager
	router   *gin.Engine
}

type harnessOptions struct {
	sess   *models.Session
	auth   *fakeAuth
	quiet  time.Duration
	checks map[string]Check
	logger *zap.Logger
}

func newHarness(t *testing.T, handle handlerFunc, opts harnessOptions) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fb := &fakeBackend{handle: handle}
	cache := querycache.New(repository.NewMemoryCacheRepository(), nil, time.Minute, nil, nil)
	validate := dto.NewValidator()
	forms := form.NewTracker()

	schools := service.NewSchoolService(fb, cache, validate, nil)
	admins := service.NewSchoolAdminService(fb, cache, validate, nil)
	teachers := service.NewTeacherService(fb, cache, validate, nil)
	students := service.NewStudentService(fb, cache, validate, nil)
	parents := service.NewParentService(fb, cache, validate, nil)
	classes := service.NewClassService(fb, cache, validate, nil)
	subjects := service.NewSubjectService(fb, cache, validate, nil)
	requests := service.NewRequestService(fb, cache, validate, nil)
	leave := service.NewLeaveService(fb, cache, validate, nil)
	att := service.NewAttendanceService(fb, cache, students, validate, nil)
	dashboards := service.NewDashboardService(fb, cache, service.DashboardDeps{
		Schools: schools, Requests: requests, Leave: leave, Attendance: att,
	}, nil)

	auth := opts.auth
	if auth == nil {
		auth = &fakeAuth{}
	}
	sessions := session.NewManager(repository.NewMemoryCredentialRepository(), nil)
	search := NewSearcher(debounce.New(opts.quiet), 2)

	r := gin.New()
	r.Use(middleware.WithResponseMeta())
	r.Use(middleware.Session(sessions, "sms_console_sid"))
	if opts.sess != nil {
		sess := opts.sess
		r.Use(func(c *gin.Context) {
			c.Set(middleware.ContextSessionKey, sess)
			c.Next()
		})
	}
	Register(r, Handlers{
		Auth:       NewAuthHandler(auth, sessions, CookieConfig{Name: "sms_console_sid", TTL: time.Hour}, opts.logger),
		Metrics:    NewMetricsHandler(service.NewMetricsService(), opts.checks),
		Dashboard:  NewDashboardHandler(dashboards),
		Schools:    NewSchoolHandler(schools, admins, forms),
		People:     NewPeopleHandler(teachers, students, parents, search, forms),
		Classes:    NewClassHandler(classes, subjects, forms),
		Requests:   NewRequestHandler(requests, leave, forms),
		Attendance: NewAttendanceHandler(att, schools, forms),
		Profile:    NewProfileHandler(teachers, students, admins),
	}, RouteOptions{EnableMetrics: true})

	return &harness{backend: fb, sessions: sessions, router: r}
}

func (h *harness) do(method, path string, body interface{}, header ...string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    json.RawMessage        `json:"data"`
	Count   *int                   `json:"count"`
	Meta    map[string]interface{} `json:"meta"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func live(sess models.Session) *models.Session {
	exp := time.Now().Add(time.Hour)
	sess.ExpiresAt = &exp
	return &sess
}

func adminSession() *models.Session {
	return live(models.Session{SubjectID: "admin-1", Role: models.RoleSchoolAdmin, SchoolID: "s1", Token: "tok-admin"})
}

func teacherSession() *models.Session {
	return live(models.Session{SubjectID: "user-7", MemberID: "t-7", Role: models.RoleTeacher, SchoolID: "s1", Token: "tok-teacher"})
}

func studentSession() *models.Session {
	return live(models.Session{SubjectID: "user-9", MemberID: "m-1", Role: models.RoleStudent, SchoolID: "s1", Token: "tok-student"})
}

func counted(n int) backend.Meta {
	return backend.Meta{Status: http.StatusOK, Count: &n}
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test"))
	require.NoError(t, err)
	return token
}
