package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sms-console/internal/backend"
	"github.com/noah-isme/sms-console/internal/dto"
	"github.com/noah-isme/sms-console/internal/models"
	"github.com/noah-isme/sms-console/internal/repository"
	"github.com/noah-isme/sms-console/internal/session"
	appErrors "github.com/noah-isme/sms-console/pkg/errors"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("unused"))
	require.NoError(t, err)
	return token
}

func newStore() *session.TokenStore {
	return session.NewManager(repository.NewMemoryCredentialRepository(), nil).For("sid-1")
}

func TestLoginStoresDecodableToken(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{
		"id":       "u1",
		"role":     "sch_admin",
		"schoolId": "s1",
		"exp":      float64(time.Now().Add(time.Hour).Unix()),
	})
	fake := newFakeBackend(func(call backend.Call) (interface{}, backend.Meta, error) {
		assert.Empty(t, call.Credential)
		return map[string]interface{}{
			"token": token,
			"user":  map[string]string{"email": "a@b.co", "role": "sch_admin"},
		}, backend.Meta{Status: http.StatusOK, Message: "Login successful"}, nil
	})
	svc := NewAuthService(fake, nil, nil)
	store := newStore()

	res, err := svc.Login(context.Background(), store, dto.LoginRequest{Email: "a@b.co", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleSchoolAdmin, res.Session.Role)
	assert.Equal(t, "s1", res.Session.SchoolID)
	assert.Equal(t, "Login successful", res.Message)

	stored, ok, err := store.Credential(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, token, stored)
}

func TestLoginRejectsTokenWithoutExpiry(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"id": "u1", "role": "teacher"})
	fake := newFakeBackend(okHandler(map[string]string{"token": token}))
	svc := NewAuthService(fake, nil, nil)
	store := newStore()

	_, err := svc.Login(context.Background(), store, dto.LoginRequest{Email: "a@b.co", Password: "pw"})
	assert.True(t, appErrors.IsCode(err, appErrors.ErrUnauthorized.Code))

	_, ok, _ := store.Credential(context.Background())
	assert.False(t, ok)
}

func TestLoginValidatesBeforeNetwork(t *testing.T) {
	fake := newFakeBackend(okHandler(nil))
	svc := NewAuthService(fake, nil, nil)

	_, err := svc.Login(context.Background(), newStore(), dto.LoginRequest{Email: "not-an-email"})
	assert.True(t, appErrors.IsCode(err, appErrors.ErrValidation.Code))
	assert.Zero(t, fake.total())
}

func TestVerifyClearsRejectedToken(t *testing.T) {
	fake := newFakeBackend(func(call backend.Call) (interface{}, backend.Meta, error) {
		assert.Equal(t, "stale", call.Credential)
		return nil, backend.Meta{Status: http.StatusUnauthorized}, appErrors.Backend(http.StatusUnauthorized, "Invalid token")
	})
	svc := NewAuthService(fake, nil, nil)
	store := newStore()
	require.NoError(t, store.SetCredential(context.Background(), "stale"))

	_, err := svc.Verify(context.Background(), store)
	require.Error(t, err)
	assert.Equal(t, "Invalid token", appErrors.FromError(err).Message)

	_, ok, _ := store.Credential(context.Background())
	assert.False(t, ok)
}

func TestVerifyWithoutCredential(t *testing.T) {
	fake := newFakeBackend(okHandler(nil))
	svc := NewAuthService(fake, nil, nil)

	_, err := svc.Verify(context.Background(), newStore())
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
	assert.Zero(t, fake.total())
}
