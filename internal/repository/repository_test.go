package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/sms-console/pkg/errors"
)

func newCredentialRepoMock(t *testing.T) (*PostgresCredentialRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	repo := NewPostgresCredentialRepository(sqlx.NewDb(db, "sqlmock"), time.Hour)
	fixed := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }
	return repo, mock, func() { db.Close() }
}

func TestPostgresCredentialRepositorySetAndGet(t *testing.T) {
	repo, mock, cleanup := newCredentialRepoMock(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO console_sessions").
		WithArgs("sid-1", "token", "jwt", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.Set(context.Background(), "sid-1", "token", "jwt"))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM console_sessions WHERE session_id = $1 AND key = $2")).
		WithArgs("sid-1", "token", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("jwt"))
	value, ok, err := repo.Get(context.Background(), "sid-1", "token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "jwt", value)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCredentialRepositoryMissingRow(t *testing.T) {
	repo, mock, cleanup := newCredentialRepoMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT value FROM console_sessions").
		WithArgs("sid-2", "token", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"value"}))
	_, ok, err := repo.Get(context.Background(), "sid-2", "token")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCredentialRepositoryDeleteAndPurge(t *testing.T) {
	repo, mock, cleanup := newCredentialRepoMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM console_sessions WHERE session_id = $1 AND key = $2")).
		WithArgs("sid-1", "token").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), "sid-1", "token"))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM console_sessions WHERE expires_at IS NOT NULL")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 3))
	purged, err := repo.PurgeExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), purged)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryCredentialRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryCredentialRepository()

	_, ok, err := repo.Get(ctx, "sid", "token")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Set(ctx, "sid", "token", "a"))
	require.NoError(t, repo.Set(ctx, "sid", "token", "b"))
	v, ok, _ := repo.Get(ctx, "sid", "token")
	assert.True(t, ok)
	assert.Equal(t, "b", v)

	require.NoError(t, repo.Delete(ctx, "sid", "token"))
	_, ok, _ = repo.Get(ctx, "sid", "token")
	assert.False(t, ok)
}

func TestMemoryCacheRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryCacheRepository()
	now := time.Now()
	repo.now = func() time.Time { return now }

	require.NoError(t, repo.Set(ctx, "q:teachers:s1:", []string{"a"}, time.Minute))
	require.NoError(t, repo.Set(ctx, "q:teachers:s1:status=active", []string{"b"}, time.Minute))
	require.NoError(t, repo.Set(ctx, "q:teachers:s2:", []string{"c"}, time.Minute))

	var got []string
	require.NoError(t, repo.Get(ctx, "q:teachers:s1:", &got))
	assert.Equal(t, []string{"a"}, got)

	require.NoError(t, repo.DeleteByPattern(ctx, "q:teachers:s1:*"))
	assert.ErrorIs(t, repo.Get(ctx, "q:teachers:s1:", &got), appErrors.ErrCacheMiss)
	assert.ErrorIs(t, repo.Get(ctx, "q:teachers:s1:status=active", &got), appErrors.ErrCacheMiss)
	require.NoError(t, repo.Get(ctx, "q:teachers:s2:", &got))

	now = now.Add(2 * time.Minute)
	assert.ErrorIs(t, repo.Get(ctx, "q:teachers:s2:", &got), appErrors.ErrCacheMiss)
	assert.Equal(t, 0, repo.Len())
}

func TestCredentialKey(t *testing.T) {
	assert.Equal(t, "console:session:abc:token", CredentialKey("abc", "token"))
}
