package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sms-console/internal/models"
)

// CredentialKey is the single well-known key a credential is stored under.
const CredentialKey = "token"

// CredentialRepository persists values per console session.
type CredentialRepository interface {
	Get(ctx context.Context, sessionID, key string) (string, bool, error)
	Set(ctx context.Context, sessionID, key, value string) error
	Delete(ctx context.Context, sessionID, key string) error
}

// Manager hands out token stores bound to console session ids.
type Manager struct {
	repo   CredentialRepository
	logger *zap.Logger
}

// NewManager constructs a Manager.
func NewManager(repo CredentialRepository, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{repo: repo, logger: logger}
}

// For returns the token store of one console session.
func (m *Manager) For(sessionID string) *TokenStore {
	return &TokenStore{id: sessionID, repo: m.repo, logger: m.logger}
}

// TokenStore owns the credential of one console session.
type TokenStore struct {
	id     string
	repo   CredentialRepository
	logger *zap.Logger
}

// ID returns the console session id.
func (s *TokenStore) ID() string { return s.id }

// SetCredential replaces the stored credential.
func (s *TokenStore) SetCredential(ctx context.Context, token string) error {
	return s.repo.Set(ctx, s.id, CredentialKey, token)
}

// Credential returns the stored credential, if any.
func (s *TokenStore) Credential(ctx context.Context) (string, bool, error) {
	if s.id == "" {
		return "", false, nil
	}
	return s.repo.Get(ctx, s.id, CredentialKey)
}

// Decode loads the credential and decodes it. Storage failures are logged
// and treated as no session.
func (s *TokenStore) Decode(ctx context.Context) (*models.Session, bool) {
	token, ok, err := s.Credential(ctx)
	if err != nil {
		s.logger.Warn("load credential failed", zap.String("session_id", s.id), zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	return Decode(token)
}

// IsExpired is true without a credential, with an undecodable credential and
// with a credential lacking an expiry.
func (s *TokenStore) IsExpired(ctx context.Context, now time.Time) bool {
	sess, ok := s.Decode(ctx)
	if !ok {
		return true
	}
	return sess.Expired(now)
}

// Clear removes the credential.
func (s *TokenStore) Clear(ctx context.Context) error {
	if s.id == "" {
		return nil
	}
	return s.repo.Delete(ctx, s.id, CredentialKey)
}
