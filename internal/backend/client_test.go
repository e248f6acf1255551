package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sms-console/pkg/config"
	appErrors "github.com/noah-isme/sms-console/pkg/errors"
	"github.com/noah-isme/sms-console/pkg/middleware/requestid"
)

func TestTableResolvePriority(t *testing.T) {
	table := DefaultTable()

	cases := map[string]Service{
		"/api/auth/login":                   ServiceAuth,
		"/api/auth/verify-token":            ServiceAuth,
		"/api/school/s1/teachers":           ServiceUser,
		"/api/admin/school/get-all-schools": ServicePlatform,
		"/api/unknown":                      ServicePlatform,
		"/api/authz":                        ServicePlatform,
		"/api/schools":                      ServicePlatform,
		"":                                  ServicePlatform,
	}
	for path, want := range cases {
		assert.Equal(t, want, table.Resolve(path), path)
	}
}

func TestTableFirstMatchWins(t *testing.T) {
	table := Table{
		Routes: []Route{
			{Prefix: "/api/", Service: ServiceAuth},
			{Prefix: "/api/school/", Service: ServiceUser},
		},
		Default: ServicePlatform,
	}
	assert.Equal(t, ServiceAuth, table.Resolve("/api/school/x"))
}

type recorded struct {
	backend string
	path    string
	query   url.Values
	auth    string
	reqID   string
	body    map[string]interface{}
}

func newBackend(t *testing.T, name string, calls chan<- recorded, status int, payload string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{
			backend: name,
			path:    r.URL.Path,
			query:   r.URL.Query(),
			auth:    r.Header.Get("Authorization"),
			reqID:   r.Header.Get(requestid.HeaderKey),
		}
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&rec.body)
		}
		calls <- rec
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientDispatchesByPrefix(t *testing.T) {
	calls := make(chan recorded, 3)
	ok := `{"success":true,"message":"ok","data":{"id":"1"}}`
	auth := newBackend(t, "auth", calls, http.StatusOK, ok)
	user := newBackend(t, "user", calls, http.StatusOK, ok)
	platform := newBackend(t, "platform", calls, http.StatusOK, ok)

	client := NewClient(config.ServicesConfig{AuthURL: auth.URL, UserURL: user.URL, PlatformURL: platform.URL}, nil)

	for path, want := range map[string]string{
		"/api/auth/verify-token":            "auth",
		"/api/school/s1/students":           "user",
		"/api/admin/school/get-all-schools": "platform",
	} {
		_, err := client.Do(context.Background(), Call{Method: http.MethodGet, Path: path}, nil)
		require.NoError(t, err)
		got := <-calls
		assert.Equal(t, want, got.backend)
		assert.Equal(t, path, got.path)
	}
}

func TestClientAttachesCredentialOnlyWhenPresent(t *testing.T) {
	calls := make(chan recorded, 2)
	srv := newBackend(t, "user", calls, http.StatusOK, `{"success":true,"data":null}`)
	client := NewClient(config.ServicesConfig{UserURL: srv.URL}, nil)

	ctx := requestid.WithContext(context.Background(), "req-1")
	_, err := client.Do(ctx, Call{Path: "/api/school/s1/classes", Credential: "tok"}, nil)
	require.NoError(t, err)
	got := <-calls
	assert.Equal(t, "Bearer tok", got.auth)
	assert.Equal(t, "req-1", got.reqID)

	_, err = client.Do(context.Background(), Call{Path: "/api/school/s1/classes"}, nil)
	require.NoError(t, err)
	got = <-calls
	assert.Empty(t, got.auth)
}

func TestClientDecodesEnvelope(t *testing.T) {
	calls := make(chan recorded, 1)
	srv := newBackend(t, "user", calls, http.StatusOK, `{"success":true,"message":"fetched","data":[{"name":"A"},{"name":"B"}],"count":2}`)
	client := NewClient(config.ServicesConfig{UserURL: srv.URL}, nil)

	var dest []struct {
		Name string `json:"name"`
	}
	meta, err := client.Do(context.Background(), Call{
		Method: http.MethodPost,
		Path:   "/api/school/s1/subjects",
		Query:  url.Values{"status": []string{"active"}},
		Body:   map[string]string{"name": "Math"},
	}, &dest)
	require.NoError(t, err)

	got := <-calls
	assert.Equal(t, "active", got.query.Get("status"))
	assert.Equal(t, "Math", got.body["name"])

	require.Len(t, dest, 2)
	assert.Equal(t, "B", dest[1].Name)
	assert.Equal(t, "fetched", meta.Message)
	require.NotNil(t, meta.Count)
	assert.Equal(t, 2, *meta.Count)
}

func TestClientBackendErrorCarriesServerMessage(t *testing.T) {
	calls := make(chan recorded, 2)
	srv := newBackend(t, "auth", calls, http.StatusUnauthorized, `{"success":false,"message":"Invalid credentials"}`)
	client := NewClient(config.ServicesConfig{AuthURL: srv.URL}, nil)

	_, err := client.Do(context.Background(), Call{Method: http.MethodPost, Path: "/api/auth/login"}, nil)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrBackend.Code, appErr.Code)
	assert.Equal(t, http.StatusUnauthorized, appErr.Status)
	assert.Equal(t, "Invalid credentials", appErr.Message)
	<-calls
}

func TestClientBackendErrorFallsBackToGenericMessage(t *testing.T) {
	calls := make(chan recorded, 1)
	srv := newBackend(t, "platform", calls, http.StatusInternalServerError, `<html>oops</html>`)
	client := NewClient(config.ServicesConfig{PlatformURL: srv.URL}, nil)

	_, err := client.Do(context.Background(), Call{Path: "/api/admin/user/get-users"}, nil)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Equal(t, appErrors.GenericBackendMessage, appErr.Message)
	<-calls
}

func TestClientConnectivityError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	client := NewClient(config.ServicesConfig{PlatformURL: base}, nil)
	_, err := client.Do(context.Background(), Call{Path: "/api/admin/dashboard/stats"}, nil)
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.True(t, IsConnectivity(err))
	assert.Equal(t, 0, appErr.Status)
	assert.Equal(t, http.StatusBadGateway, appErr.HTTPStatus())
	assert.Equal(t, "cannot reach server", appErr.Message)
}

func TestClientBuildsOneHTTPClientPerBackend(t *testing.T) {
	calls := make(chan recorded, 10)
	srv := newBackend(t, "any", calls, http.StatusOK, `{"success":true}`)

	var built int32
	client := NewClient(
		config.ServicesConfig{AuthURL: srv.URL, UserURL: srv.URL, PlatformURL: srv.URL},
		nil,
		WithHTTPClientFactory(func(Service) *http.Client {
			atomic.AddInt32(&built, 1)
			return &http.Client{}
		}),
	)

	assert.Equal(t, int32(0), atomic.LoadInt32(&built))
	for i := 0; i < 3; i++ {
		_, err := client.Do(context.Background(), Call{Path: "/api/school/s1/classes"}, nil)
		require.NoError(t, err)
		<-calls
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&built))

	_, err := client.Do(context.Background(), Call{Path: "/api/auth/verify-token"}, nil)
	require.NoError(t, err)
	<-calls
	assert.Equal(t, int32(2), atomic.LoadInt32(&built))
}
