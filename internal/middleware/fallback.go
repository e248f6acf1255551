package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/sms-console/internal/guard"
	"github.com/noah-isme/sms-console/pkg/middleware/requestid"
)

// FallbackView is rendered when a view panics.
type FallbackView struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Links   map[string]string `json:"links"`
	Detail  *FallbackDetail   `json:"detail,omitempty"`
}

// FallbackDetail is only shown when error detail is enabled.
type FallbackDetail struct {
	Error string `json:"error"`
	Stack string `json:"stack"`
}

// Fallback recovers from panics in views and renders a generic error with
// reload and home links instead of a bare 500.
func Fallback(showDetail bool, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}
			stack := string(debug.Stack())
			logger.Error("view panicked",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", requestid.Value(c)),
				zap.Any("panic", recovered),
				zap.String("stack", stack),
			)

			view := FallbackView{
				Message: "Something went wrong",
				Links: map[string]string{
					"reload": c.Request.URL.RequestURI(),
					"home":   guard.HomePath,
				},
			}
			if showDetail {
				view.Detail = &FallbackDetail{Error: fmt.Sprint(recovered), Stack: stack}
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, view)
		}()
		c.Next()
	}
}
