package service

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sms-console/internal/backend"
	"github.com/noah-isme/sms-console/internal/dto"
	"github.com/noah-isme/sms-console/internal/models"
	"github.com/noah-isme/sms-console/internal/session"
	appErrors "github.com/noah-isme/sms-console/pkg/errors"
)

// LoginUser is the profile the auth service returns next to the token.
type LoginUser struct {
	UserID    string          `json:"userId,omitempty"`
	AdminID   string          `json:"adminId,omitempty"`
	Email     string          `json:"email"`
	Role      models.UserRole `json:"role"`
	SchoolID  string          `json:"schoolId,omitempty"`
	FirstName string          `json:"firstName,omitempty"`
	LastName  string          `json:"lastName,omitempty"`
}

type loginData struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

// LoginResult is a freshly stored session.
type LoginResult struct {
	Session *models.Session `json:"session"`
	User    LoginUser       `json:"user"`
	Message string          `json:"message,omitempty"`
}

// AuthService exchanges credentials with the auth backend and keeps the
// resulting token in the console session's store.
type AuthService struct {
	client    backend.Doer
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(client backend.Doer, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = dto.NewValidator()
	}
	return &AuthService{client: client, validator: validate, logger: logger, now: time.Now}
}

// Login authenticates against the auth backend and stores the returned
// token. A token that does not decode to a live session is rejected and
// nothing is stored.
func (s *AuthService) Login(ctx context.Context, store *session.TokenStore, req dto.LoginRequest) (*LoginResult, error) {
	if err := dto.Validate(s.validator, req, "invalid login payload"); err != nil {
		return nil, err
	}

	var data loginData
	meta, err := s.client.Do(ctx, backend.Call{Method: http.MethodPost, Path: "/api/auth/login", Body: req}, &data)
	if err != nil {
		return nil, err
	}

	sess, ok := session.Decode(data.Token)
	if !ok {
		s.logger.Warn("login returned an unreadable token", zap.String("email", req.Email))
		return nil, appErrors.Backend(http.StatusBadGateway, "login returned an invalid token")
	}
	if sess.Expired(s.now()) {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session expired")
	}

	if err := store.SetCredential(ctx, data.Token); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store session")
	}

	s.logger.Info("console login",
		zap.String("session_id", store.ID()),
		zap.String("role", string(sess.Role)),
		zap.String("school_id", sess.SchoolID),
	)
	return &LoginResult{Session: sess, User: data.User, Message: meta.Message}, nil
}

// Verify asks the auth backend whether the stored token is still accepted.
// A rejected token is removed from the store.
func (s *AuthService) Verify(ctx context.Context, store *session.TokenStore) (json.RawMessage, error) {
	token, ok, err := store.Credential(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}
	if !ok {
		return nil, appErrors.ErrUnauthorized
	}

	var data json.RawMessage
	_, err = s.client.Do(ctx, backend.Call{Method: http.MethodGet, Path: "/api/auth/verify-token", Credential: token}, &data)
	if err != nil {
		if appErr := appErrors.FromError(err); appErr.Status == http.StatusUnauthorized {
			if clearErr := store.Clear(ctx); clearErr != nil {
				s.logger.Warn("clear rejected session failed", zap.String("session_id", store.ID()), zap.Error(clearErr))
			}
		}
		return nil, err
	}
	return data, nil
}

// Logout discards the stored token.
func (s *AuthService) Logout(ctx context.Context, store *session.TokenStore) error {
	if err := store.Clear(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear session")
	}
	return nil
}
