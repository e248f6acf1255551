package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sms-console/internal/models"
)

type mapRepo struct {
	values map[string]string
	err    error
}

func newMapRepo() *mapRepo { return &mapRepo{values: map[string]string{}} }

func (r *mapRepo) Get(_ context.Context, sid, key string) (string, bool, error) {
	if r.err != nil {
		return "", false, r.err
	}
	v, ok := r.values[sid+"/"+key]
	return v, ok, nil
}

func (r *mapRepo) Set(_ context.Context, sid, key, value string) error {
	r.values[sid+"/"+key] = value
	return nil
}

func (r *mapRepo) Delete(_ context.Context, sid, key string) error {
	delete(r.values, sid+"/"+key)
	return nil
}

func sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("not-our-key"))
	require.NoError(t, err)
	return token
}

func TestDecodeReadsClaimsWithoutVerification(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()
	token := sign(t, jwt.MapClaims{
		"id":        "u-1",
		"role":      "teacher",
		"schoolId":  "s-9",
		"user_name": "Jane Doe",
		"memberId":  "t-42",
		"exp":       exp,
	})

	sess, ok := Decode(token)
	require.True(t, ok)
	assert.Equal(t, "u-1", sess.SubjectID)
	assert.Equal(t, models.RoleTeacher, sess.Role)
	assert.Equal(t, "s-9", sess.SchoolID)
	assert.Equal(t, "Jane Doe", sess.Name)
	assert.Equal(t, "t-42", sess.MemberID)
	require.NotNil(t, sess.ExpiresAt)
	assert.Equal(t, exp, sess.ExpiresAt.Unix())
	assert.Equal(t, token, sess.Token)
}

func TestDecodeFallsBackToSubjectClaim(t *testing.T) {
	sess, ok := Decode(sign(t, jwt.MapClaims{"sub": "u-2", "role": "super_admin", "username": "root"}))
	require.True(t, ok)
	assert.Equal(t, "u-2", sess.SubjectID)
	assert.Equal(t, "root", sess.Name)
	assert.Nil(t, sess.ExpiresAt)
}

func TestDecodeRejectsMalformedAndRoleless(t *testing.T) {
	_, ok := Decode("")
	assert.False(t, ok)
	_, ok = Decode("not.a.jwt")
	assert.False(t, ok)
	_, ok = Decode(sign(t, jwt.MapClaims{"id": "u-3"}))
	assert.False(t, ok)
}

func TestDecodeKeepsUnknownRole(t *testing.T) {
	sess, ok := Decode(sign(t, jwt.MapClaims{"id": "u-3", "role": "janitor"}))
	require.True(t, ok)
	assert.Equal(t, models.UserRole("janitor"), sess.Role)
	assert.False(t, sess.Role.Valid())
}

func TestIsExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	manager := NewManager(newMapRepo(), nil)

	cases := []struct {
		name    string
		claims  jwt.MapClaims
		expired bool
	}{
		{"future expiry", jwt.MapClaims{"role": "student", "exp": now.Add(time.Minute).Unix()}, false},
		{"past expiry", jwt.MapClaims{"role": "student", "exp": now.Add(-time.Minute).Unix()}, true},
		{"missing expiry", jwt.MapClaims{"role": "student"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := manager.For("sid-" + tc.name)
			require.NoError(t, store.SetCredential(ctx, sign(t, tc.claims)))
			assert.Equal(t, tc.expired, store.IsExpired(ctx, now))
		})
	}

	assert.True(t, manager.For("empty").IsExpired(ctx, now))
}

func TestTokenStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newMapRepo()
	store := NewManager(repo, nil).For("sid-1")

	_, ok, err := store.Credential(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	token := sign(t, jwt.MapClaims{"role": "sch_admin", "schoolId": "s-1", "exp": time.Now().Add(time.Hour).Unix()})
	require.NoError(t, store.SetCredential(ctx, token))
	assert.Equal(t, token, repo.values["sid-1/"+CredentialKey])

	sess, ok := store.Decode(ctx)
	require.True(t, ok)
	assert.Equal(t, models.RoleSchoolAdmin, sess.Role)

	require.NoError(t, store.Clear(ctx))
	_, ok = store.Decode(ctx)
	assert.False(t, ok)
}

func TestDecodeTreatsStorageFailureAsNoSession(t *testing.T) {
	repo := newMapRepo()
	repo.err = errors.New("redis down")
	_, ok := NewManager(repo, nil).For("sid").Decode(context.Background())
	assert.False(t, ok)
}
