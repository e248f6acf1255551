package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// MemoryCredentialRepository keeps console credentials in process memory.
// Credentials are lost on restart.
type MemoryCredentialRepository struct {
	mu     sync.RWMutex
	values map[string]map[string]string
}

// NewMemoryCredentialRepository constructs an empty repository.
func NewMemoryCredentialRepository() *MemoryCredentialRepository {
	return &MemoryCredentialRepository{values: make(map[string]map[string]string)}
}

// Get returns the value stored for a session key.
func (r *MemoryCredentialRepository) Get(_ context.Context, sessionID, key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[sessionID][key]
	return v, ok, nil
}

// Set stores a value for a session key.
func (r *MemoryCredentialRepository) Set(_ context.Context, sessionID, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	bucket, ok := r.values[sessionID]
	if !ok {
		bucket = make(map[string]string)
		r.values[sessionID] = bucket
	}
	bucket[key] = value
	return nil
}

// Delete removes a session key.
func (r *MemoryCredentialRepository) Delete(_ context.Context, sessionID, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if bucket, ok := r.values[sessionID]; ok {
		delete(bucket, key)
		if len(bucket) == 0 {
			delete(r.values, sessionID)
		}
	}
	return nil
}

// RedisCredentialRepository keeps console credentials in Redis with a TTL.
type RedisCredentialRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCredentialRepository constructs a Redis backed repository.
func NewRedisCredentialRepository(client *redis.Client, ttl time.Duration) *RedisCredentialRepository {
	return &RedisCredentialRepository{client: client, ttl: ttl}
}

// CredentialKey returns the Redis key of a session value.
func CredentialKey(sessionID, key string) string {
	return fmt.Sprintf("console:session:%s:%s", sessionID, key)
}

// Get returns the value stored for a session key.
func (r *RedisCredentialRepository) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, CredentialKey(sessionID, key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis get credential: %w", err)
	}
	return v, true, nil
}

// Set stores a value for a session key.
func (r *RedisCredentialRepository) Set(ctx context.Context, sessionID, key, value string) error {
	if err := r.client.Set(ctx, CredentialKey(sessionID, key), value, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set credential: %w", err)
	}
	return nil
}

// Delete removes a session key.
func (r *RedisCredentialRepository) Delete(ctx context.Context, sessionID, key string) error {
	if err := r.client.Del(ctx, CredentialKey(sessionID, key)).Err(); err != nil {
		return fmt.Errorf("redis delete credential: %w", err)
	}
	return nil
}

// PostgresCredentialRepository keeps console credentials in the
// console_sessions table:
//
//	CREATE TABLE console_sessions (
//	    session_id TEXT NOT NULL,
//	    key        TEXT NOT NULL,
//	    value      TEXT NOT NULL,
//	    expires_at TIMESTAMPTZ,
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
//	    PRIMARY KEY (session_id, key)
//	);
type PostgresCredentialRepository struct {
	db  *sqlx.DB
	ttl time.Duration
	now func() time.Time
}

// NewPostgresCredentialRepository constructs a Postgres backed repository.
func NewPostgresCredentialRepository(db *sqlx.DB, ttl time.Duration) *PostgresCredentialRepository {
	return &PostgresCredentialRepository{db: db, ttl: ttl, now: time.Now}
}

// Get returns the value stored for a session key if it has not expired.
func (r *PostgresCredentialRepository) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	const query = `SELECT value FROM console_sessions WHERE session_id = $1 AND key = $2 AND (expires_at IS NULL OR expires_at > $3)`
	var value string
	if err := r.db.GetContext(ctx, &value, query, sessionID, key, r.now().UTC()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get credential: %w", err)
	}
	return value, true, nil
}

// Set upserts a value for a session key.
func (r *PostgresCredentialRepository) Set(ctx context.Context, sessionID, key, value string) error {
	const query = `INSERT INTO console_sessions (session_id, key, value, expires_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (session_id, key) DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at, updated_at = EXCLUDED.updated_at`
	now := r.now().UTC()
	var expiresAt *time.Time
	if r.ttl > 0 {
		exp := now.Add(r.ttl)
		expiresAt = &exp
	}
	if _, err := r.db.ExecContext(ctx, query, sessionID, key, value, expiresAt, now); err != nil {
		return fmt.Errorf("set credential: %w", err)
	}
	return nil
}

// Delete removes a session key.
func (r *PostgresCredentialRepository) Delete(ctx context.Context, sessionID, key string) error {
	const query = `DELETE FROM console_sessions WHERE session_id = $1 AND key = $2`
	if _, err := r.db.ExecContext(ctx, query, sessionID, key); err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	return nil
}

// PurgeExpired deletes expired rows and reports how many were removed.
func (r *PostgresCredentialRepository) PurgeExpired(ctx context.Context) (int64, error) {
	const query = `DELETE FROM console_sessions WHERE expires_at IS NOT NULL AND expires_at <= $1`
	res, err := r.db.ExecContext(ctx, query, r.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("purge credentials: %w", err)
	}
	return res.RowsAffected()
}
