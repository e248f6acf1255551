package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sms-console/internal/models"
	"github.com/noah-isme/sms-console/internal/session"
)

// Context keys for the console session.
const (
	ContextSessionKey = "consoleSession"
	ContextStoreKey   = "consoleStore"
)

// Session loads the console session named by the session cookie. Clients
// without the cookie may present the bearer token directly; such a session
// has no store, so it cannot log out or verify.
func Session(manager *session.Manager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sid, err := c.Cookie(cookieName); err == nil && sid != "" {
			store := manager.For(sid)
			c.Set(ContextStoreKey, store)
			if sess, ok := store.Decode(c.Request.Context()); ok {
				c.Set(ContextSessionKey, sess)
			}
			c.Next()
			return
		}

		if token := bearer(c.GetHeader("Authorization")); token != "" {
			if sess, ok := session.Decode(token); ok {
				c.Set(ContextSessionKey, sess)
			}
		}
		c.Next()
	}
}

// CurrentSession returns the session loaded by Session, or nil.
func CurrentSession(c *gin.Context) *models.Session {
	value, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil
	}
	sess, _ := value.(*models.Session)
	return sess
}

// CurrentStore returns the token store of the cookie session, or nil.
func CurrentStore(c *gin.Context) *session.TokenStore {
	value, exists := c.Get(ContextStoreKey)
	if !exists {
		return nil
	}
	store, _ := value.(*session.TokenStore)
	return store
}

func bearer(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
