package service

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sms-console/internal/backend"
	"github.com/noah-isme/sms-console/internal/dto"
	"github.com/noah-isme/sms-console/internal/models"
	appErrors "github.com/noah-isme/sms-console/pkg/errors"
)

// schoolBackend is a tiny platform service keeping schools in memory.
type schoolBackend struct {
	mu      sync.Mutex
	schools []models.School
}

func (b *schoolBackend) handle(call backend.Call) (interface{}, backend.Meta, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch {
	case call.Method == http.MethodGet && call.Path == schoolAPI+"/get-all-schools":
		out := append([]models.School(nil), b.schools...)
		return out, count(len(out)), nil
	case call.Method == http.MethodPost && call.Path == schoolAPI+"/create-school":
		raw, _ := json.Marshal(call.Body)
		var req dto.CreateSchoolRequest
		_ = json.Unmarshal(raw, &req)
		school := models.School{
			SchoolID:     "sch-1",
			SchoolName:   req.SchoolName,
			SchoolDBName: req.DBName,
			Status:       models.StatusActive,
		}
		b.schools = append(b.schools, school)
		return school, backend.Meta{Status: http.StatusCreated}, nil
	case call.Method == http.MethodGet && call.Path == schoolAPI+"/get-school/sch-1":
		return b.schools[0], backend.Meta{Status: http.StatusOK}, nil
	case call.Method == http.MethodPut && call.Path == schoolAPI+"/update-school/sch-1":
		fields := call.Body.(dto.FieldSet)
		if status, ok := fields["status"].(models.EntityStatus); ok {
			b.schools[0].Status = status
		}
		return b.schools[0], backend.Meta{Status: http.StatusOK}, nil
	}
	return nil, backend.Meta{Status: http.StatusNotFound}, appErrors.Backend(http.StatusNotFound, "")
}

func TestSchoolCreateIsVisibleInNextList(t *testing.T) {
	ctx := context.Background()
	platform := &schoolBackend{}
	fake := newFakeBackend(platform.handle)
	svc := NewSchoolService(fake, newTestCache(t), nil, nil)
	sess := superSession()

	before, err := svc.List(ctx, sess)
	require.NoError(t, err)
	assert.Empty(t, before.Data)

	created, err := svc.Create(ctx, sess, dto.CreateSchoolRequest{SchoolName: "Lincoln High", DBName: "lincoln-high"})
	require.NoError(t, err)
	assert.Equal(t, "lincoln-high", created.SchoolDBName)

	after, err := svc.List(ctx, sess)
	require.NoError(t, err)
	require.Len(t, after.Data, 1)
	assert.Equal(t, "lincoln-high", after.Data[0].SchoolDBName)
	assert.Equal(t, models.StatusActive, after.Data[0].Status)
	assert.False(t, after.CacheHit)
	assert.Equal(t, 2, fake.count(http.MethodGet, schoolAPI+"/get-all-schools"))

	call, ok := fake.last(http.MethodPost, schoolAPI+"/create-school")
	require.True(t, ok)
	assert.Equal(t, "tok-root", call.Credential)
}

func TestSchoolListServedFromCache(t *testing.T) {
	ctx := context.Background()
	fake := newFakeBackend((&schoolBackend{}).handle)
	svc := NewSchoolService(fake, newTestCache(t), nil, nil)

	_, err := svc.List(ctx, superSession())
	require.NoError(t, err)
	second, err := svc.List(ctx, superSession())
	require.NoError(t, err)

	assert.True(t, second.CacheHit)
	assert.Equal(t, 1, fake.total())
}

func TestSchoolCreateRejectsInvalidDBNameWithoutNetwork(t *testing.T) {
	fake := newFakeBackend((&schoolBackend{}).handle)
	svc := NewSchoolService(fake, newTestCache(t), nil, nil)

	_, err := svc.Create(context.Background(), superSession(), dto.CreateSchoolRequest{SchoolName: "Lincoln High", DBName: "Lincoln High"})

	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Contains(t, appErr.Fields, "dbName")
	assert.Zero(t, fake.total())
}

func TestSchoolToggleStatusFlipsServerCopy(t *testing.T) {
	ctx := context.Background()
	platform := &schoolBackend{}
	fake := newFakeBackend(platform.handle)
	svc := NewSchoolService(fake, newTestCache(t), nil, nil)

	_, err := svc.Create(ctx, superSession(), dto.CreateSchoolRequest{SchoolName: "Lincoln High", DBName: "lincoln-high"})
	require.NoError(t, err)

	toggled, err := svc.ToggleStatus(ctx, superSession(), "sch-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusInactive, toggled.Status)

	toggled, err = svc.ToggleStatus(ctx, superSession(), "sch-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, toggled.Status)
	assert.Equal(t, 2, fake.count(http.MethodGet, schoolAPI+"/get-school/sch-1"))
}
