package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sms-console/internal/backend"
	"github.com/noah-isme/sms-console/internal/dto"
	"github.com/noah-isme/sms-console/internal/models"
	appErrors "github.com/noah-isme/sms-console/pkg/errors"
)

func okHandler(data interface{}) handlerFunc {
	return func(call backend.Call) (interface{}, backend.Meta, error) {
		return data, backend.Meta{Status: http.StatusOK}, nil
	}
}

func TestTeacherUpdateSendsOnlySuppliedFields(t *testing.T) {
	fake := newFakeBackend(okHandler(models.Teacher{TeacherID: "t1", FirstName: "Ann"}))
	svc := NewTeacherService(fake, newTestCache(t), nil, nil)

	_, err := svc.Update(context.Background(), adminSession(), "t1", dto.UpdateTeacherRequest{
		FirstName: models.Some("Ann"),
		Password:  models.Some(""),
	})
	require.NoError(t, err)

	call, ok := fake.last(http.MethodPut, "/api/school/s1/teachers/t1")
	require.True(t, ok)
	assert.Equal(t, dto.FieldSet{"firstName": "Ann"}, call.Body)
}

func TestTeacherEmptyUpdateFailsBeforeNetwork(t *testing.T) {
	fake := newFakeBackend(okHandler(nil))
	svc := NewTeacherService(fake, newTestCache(t), nil, nil)

	_, err := svc.Update(context.Background(), adminSession(), "t1", dto.UpdateTeacherRequest{})

	assert.True(t, appErrors.IsCode(err, appErrors.ErrValidation.Code))
	assert.Zero(t, fake.total())
}

func TestReadsAreScopedByCaller(t *testing.T) {
	ctx := context.Background()
	fake := newFakeBackend(okHandler([]models.Student{{StudentID: "st1"}}))
	svc := NewStudentService(fake, newTestCache(t), nil, nil)

	_, err := svc.List(ctx, adminSession(), models.StudentFilter{})
	require.NoError(t, err)
	_, err = svc.List(ctx, teacherSession(), models.StudentFilter{})
	require.NoError(t, err)
	res, err := svc.List(ctx, adminSession(), models.StudentFilter{})
	require.NoError(t, err)

	assert.True(t, res.CacheHit)
	assert.Equal(t, 2, fake.count(http.MethodGet, "/api/school/s1/students"))
}

func TestSameRoleCallersDoNotShareReads(t *testing.T) {
	ctx := context.Background()
	fake := newFakeBackend(func(call backend.Call) (interface{}, backend.Meta, error) {
		if call.Method == http.MethodPost {
			return models.Class{ClassID: "c10"}, backend.Meta{Status: http.StatusCreated}, nil
		}
		if call.Credential == "tok-a" {
			return []models.Class{{ClassID: "classes-of-a"}}, count(1), nil
		}
		return []models.Class{{ClassID: "classes-of-b"}}, count(1), nil
	})
	cache := newTestCache(t)
	svc := NewClassService(fake, cache, nil, nil)
	teacherA := &models.Session{SubjectID: "user-a", Role: models.RoleTeacher, SchoolID: "s1", Token: "tok-a"}
	teacherB := &models.Session{SubjectID: "user-b", Role: models.RoleTeacher, SchoolID: "s1", Token: "tok-b"}

	_, err := svc.List(ctx, teacherA, models.StatusFilter{})
	require.NoError(t, err)
	res, err := svc.List(ctx, teacherB, models.StatusFilter{})
	require.NoError(t, err)

	assert.False(t, res.CacheHit)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "classes-of-b", res.Data[0].ClassID)
	assert.Equal(t, 2, fake.count(http.MethodGet, "/api/school/s1/classes"))

	_, err = svc.Create(ctx, adminSession(), dto.CreateClassRequest{Name: "10"})
	require.NoError(t, err)
	res, err = svc.List(ctx, teacherA, models.StatusFilter{})
	require.NoError(t, err)
	assert.False(t, res.CacheHit)
}

func TestScopeForUsesCallerIdentity(t *testing.T) {
	assert.Equal(t, "user:user-7", scopeFor(teacherSession(), ""))
	assert.Equal(t, "user:user-7", scopeFor(teacherSession(), "user:user-7"))
	assert.Equal(t, "user:admin-1/stats", scopeFor(adminSession(), "stats"))
	assert.Equal(t, "anonymous", scopeFor(nil, ""))

	tokenOnly := scopeFor(&models.Session{Token: "tok-x"}, "")
	assert.Contains(t, tokenOnly, "token:")
	assert.NotEqual(t, tokenOnly, scopeFor(&models.Session{Token: "tok-y"}, ""))
}

func TestStudentMutationInvalidatesParents(t *testing.T) {
	ctx := context.Background()
	fake := newFakeBackend(func(call backend.Call) (interface{}, backend.Meta, error) {
		switch call.Path {
		case "/api/school/s1/parents":
			return []models.Parent{{ParentID: "p1"}}, count(1), nil
		case "/api/school/s1/students":
			return models.Student{StudentID: "st9"}, backend.Meta{Status: http.StatusCreated}, nil
		}
		return nil, backend.Meta{}, appErrors.Backend(http.StatusNotFound, "")
	})
	cache := newTestCache(t)
	parents := NewParentService(fake, cache, nil, nil)
	students := NewStudentService(fake, cache, nil, nil)

	_, err := parents.List(ctx, adminSession(), models.ParentFilter{})
	require.NoError(t, err)

	_, err = students.Create(ctx, adminSession(), dto.CreateStudentRequest{
		FirstName: "Jo",
		LastName:  "March",
		Email:     "jo@example.com",
		Password:  "secret1",
		Class:     "c1",
	})
	require.NoError(t, err)

	res, err := parents.List(ctx, adminSession(), models.ParentFilter{})
	require.NoError(t, err)
	assert.False(t, res.CacheHit)
	assert.Equal(t, 2, fake.count(http.MethodGet, "/api/school/s1/parents"))
}

func TestSchoolScopedReadNeedsSchool(t *testing.T) {
	fake := newFakeBackend(okHandler(nil))
	svc := NewTeacherService(fake, newTestCache(t), nil, nil)

	_, err := svc.List(context.Background(), superSession(), models.TeacherFilter{})
	assert.True(t, appErrors.IsCode(err, appErrors.ErrForbidden.Code))

	_, err = svc.List(context.Background(), nil, models.TeacherFilter{})
	assert.True(t, appErrors.IsCode(err, appErrors.ErrUnauthorized.Code))
	assert.Zero(t, fake.total())
}

func TestBackendErrorIsSurfacedVerbatim(t *testing.T) {
	fake := newFakeBackend(func(call backend.Call) (interface{}, backend.Meta, error) {
		return nil, backend.Meta{Status: http.StatusConflict}, appErrors.Backend(http.StatusConflict, "email already registered")
	})
	svc := NewTeacherService(fake, newTestCache(t), nil, nil)

	_, err := svc.Create(context.Background(), adminSession(), dto.CreateTeacherRequest{
		FirstName: "Ann",
		LastName:  "Lee",
		Email:     "ann@example.com",
		Password:  "secret1",
	})

	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusConflict, appErr.Status)
	assert.Equal(t, "email already registered", appErr.Message)
	assert.Equal(t, 1, fake.total())
}

func TestSearchSkipsBlankQuery(t *testing.T) {
	fake := newFakeBackend(okHandler([]models.Student{{StudentID: "st1"}}))
	svc := NewStudentService(fake, newTestCache(t), nil, nil)

	res, err := svc.Search(context.Background(), adminSession(), "   ")
	require.NoError(t, err)
	assert.Empty(t, res.Data)
	assert.Zero(t, fake.total())

	res, err = svc.Search(context.Background(), adminSession(), "jo")
	require.NoError(t, err)
	assert.Len(t, res.Data, 1)
	call, ok := fake.last(http.MethodGet, "/api/school/s1/students/search")
	require.True(t, ok)
	assert.Equal(t, "jo", call.Query.Get("query"))
}
