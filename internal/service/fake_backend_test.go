package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/noah-isme/sms-console/internal/backend"
	"github.com/noah-isme/sms-console/internal/models"
	"github.com/noah-isme/sms-console/internal/querycache"
	"github.com/noah-isme/sms-console/internal/repository"
)

type handlerFunc func(call backend.Call) (interface{}, backend.Meta, error)

// fakeBackend records every call and answers through handle. Data is passed
// through JSON so dest sees what a real envelope would carry.
type fakeBackend struct {
	mu     sync.Mutex
	calls  []backend.Call
	handle handlerFunc
}

func newFakeBackend(handle handlerFunc) *fakeBackend {
	return &fakeBackend{handle: handle}
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

func (f *fakeBackend) last(method, path string) (backend.Call, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.calls) - 1; i >= 0; i-- {
		if f.calls[i].Method == method && f.calls[i].Path == path {
			return f.calls[i], true
		}
	}
	return backend.Call{}, false
}

func (f *fakeBackend) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newTestCache(t *testing.T) *querycache.Cache {
	t.Helper()
	return querycache.New(repository.NewMemoryCacheRepository(), nil, time.Minute, nil, nil)
}

func adminSession() *models.Session {
	return &models.Session{SubjectID: "admin-1", Role: models.RoleSchoolAdmin, SchoolID: "s1", Token: "tok-admin"}
}

func teacherSession() *models.Session {
	return &models.Session{SubjectID: "user-7", MemberID: "t-7", Role: models.RoleTeacher, SchoolID: "s1", Token: "tok-teacher"}
}

func superSession() *models.Session {
	return &models.Session{SubjectID: "root", Role: models.RoleSuperAdmin, Token: "tok-root"}
}

func count(n int) backend.Meta {
	return backend.Meta{Status: 200, Count: &n}
}
