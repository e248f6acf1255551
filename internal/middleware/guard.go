package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sms-console/internal/guard"
	"github.com/noah-isme/sms-console/internal/models"
	appErrors "github.com/noah-isme/sms-console/pkg/errors"
	"github.com/noah-isme/sms-console/pkg/response"
)

// RequireRoles lets a request through only when guard.Decide allows the
// loaded session. Browsers are redirected; API clients get the error
// envelope with the redirect target in meta.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	return requireRoles(time.Now, roles)
}

func requireRoles(now func() time.Time, roles []models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := guard.Decide(roles, CurrentSession(c), now())
		if decision.Allowed {
			c.Next()
			return
		}

		if wantsHTML(c) {
			c.Redirect(http.StatusFound, decision.Redirect)
			c.Abort()
			return
		}

		appErr := appErrors.Clone(appErrors.ErrForbidden, "you do not have access to this view")
		if decision.Redirect == guard.LoginPath {
			appErr = appErrors.Clone(appErrors.ErrUnauthorized, "login required")
		}
		c.Header("Location", decision.Redirect)
		c.AbortWithStatusJSON(appErr.HTTPStatus(), response.Envelope{
			Success: false,
			Message: appErr.Message,
			Error:   appErr,
			Meta:    map[string]interface{}{"redirect": decision.Redirect},
		})
	}
}

func wantsHTML(c *gin.Context) bool {
	accept := c.GetHeader("Accept")
	return strings.Contains(accept, "text/html") && !strings.Contains(accept, "application/json")
}
