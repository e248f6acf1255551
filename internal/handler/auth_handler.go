package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/sms-console/internal/dto"
	"github.com/noah-isme/sms-console/internal/guard"
	"github.com/noah-isme/sms-console/internal/middleware"
	"github.com/noah-isme/sms-console/internal/models"
	"github.com/noah-isme/sms-console/internal/service"
	"github.com/noah-isme/sms-console/internal/session"
	appErrors "github.com/noah-isme/sms-console/pkg/errors"
	"github.com/noah-isme/sms-console/pkg/response"
)

type authService interface {
	Login(ctx context.Context, store *session.TokenStore, req dto.LoginRequest) (*service.LoginResult, error)
	Verify(ctx context.Context, store *session.TokenStore) (json.RawMessage, error)
	Logout(ctx context.Context, store *session.TokenStore) error
}

// CookieConfig describes the console session cookie.
type CookieConfig struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// AuthHandler manages console sessions.
type AuthHandler struct {
	auth     authService
	sessions *session.Manager
	cookie   CookieConfig
	logger   *zap.Logger
	now      func() time.Time
}

// NewAuthHandler constructs an auth handler.
func NewAuthHandler(auth authService, sessions *session.Manager, cookie CookieConfig, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{auth: auth, sessions: sessions, cookie: cookie, logger: logger, now: time.Now}
}

// SessionView is what the console knows about the signed-in user.
type SessionView struct {
	Session   *models.Session `json:"session"`
	Dashboard string          `json:"dashboard"`
	Menu      []guard.Item    `json:"menu"`
}

// LoginView is returned after a successful login.
type LoginView struct {
	SessionView
	User     service.LoginUser `json:"user"`
	Redirect string            `json:"redirect"`
}

func newSessionView(sess *models.Session) SessionView {
	return SessionView{Session: sess, Dashboard: guard.DashboardPath(sess.Role), Menu: guard.Menu(sess.Role)}
}

// Login godoc
// @Summary Sign in to the console
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body dto.LoginRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	store := h.sessions.For(uuid.NewString())
	result, err := h.auth.Login(c.Request.Context(), store, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if previous := middleware.CurrentStore(c); previous != nil {
		if err := h.auth.Logout(c.Request.Context(), previous); err != nil {
			h.logger.Warn("failed to end previous session", zap.String("session_id", previous.ID()), zap.Error(err))
		}
	}

	h.setCookie(c, store.ID(), int(h.cookie.TTL.Seconds()))
	redirect := guard.DashboardPath(result.Session.Role)
	c.Header("Location", redirect)
	response.JSON(c, http.StatusOK, LoginView{
		SessionView: newSessionView(result.Session),
		User:        result.User,
		Redirect:    redirect,
	})
}

// Logout godoc
// @Summary Sign out of the console
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if store := middleware.CurrentStore(c); store != nil {
		if err := h.auth.Logout(c.Request.Context(), store); err != nil {
			response.Error(c, err)
			return
		}
	}
	h.setCookie(c, "", -1)
	response.Message(c, http.StatusOK, "logged out", gin.H{"redirect": guard.LoginPath})
}

// Session godoc
// @Summary Current console session
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil || sess.Expired(h.now()) {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "no active session"))
		return
	}
	response.JSON(c, http.StatusOK, newSessionView(sess))
}

// Verify godoc
// @Summary Ask the auth service whether the stored token is still valid
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /verify [get]
func (h *AuthHandler) Verify(c *gin.Context) {
	store := middleware.CurrentStore(c)
	if store == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	data, err := h.auth.Verify(c.Request.Context(), store)
	if err != nil {
		if appErrors.FromError(err).Status == http.StatusUnauthorized {
			h.setCookie(c, "", -1)
		}
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, data)
}

// Unauthorized godoc
// @Summary View shown when a role opens a view it cannot access
// @Tags Auth
// @Produce json
// @Success 403 {object} response.Envelope
// @Router /unauthorized [get]
func (h *AuthHandler) Unauthorized(c *gin.Context) {
	home := guard.LoginPath
	if sess := sessionFromContext(c); sess != nil && !sess.Expired(h.now()) {
		home = guard.DashboardPath(sess.Role)
	}
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusForbidden, response.Envelope{
		Success: false,
		Message: "You do not have permission to view this page",
		Meta:    map[string]interface{}{"links": map[string]string{"home": home}},
	})
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, value, maxAge, "/", "", h.cookie.Secure, true)
}
