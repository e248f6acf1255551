package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sms-console/internal/form"
	"github.com/noah-isme/sms-console/internal/middleware"
	"github.com/noah-isme/sms-console/internal/models"
	"github.com/noah-isme/sms-console/internal/service"
	"github.com/noah-isme/sms-console/internal/view"
	appErrors "github.com/noah-isme/sms-console/pkg/errors"
	"github.com/noah-isme/sms-console/pkg/export"
	"github.com/noah-isme/sms-console/pkg/response"
)

func sessionFromContext(c *gin.Context) *models.Session {
	return middleware.CurrentSession(c)
}

// sessionKey names the console session for per-session state. Bearer
// clients have no store and are keyed by subject.
func sessionKey(c *gin.Context) string {
	if store := middleware.CurrentStore(c); store != nil {
		return store.ID()
	}
	if sess := sessionFromContext(c); sess != nil {
		return "bearer:" + sess.SubjectID
	}
	return "anonymous"
}

func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return false
	}
	return true
}

func bindQuery(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindQuery(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return false
	}
	return true
}

func queryInt(c *gin.Context, key string) (int, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		response.Error(c, appErrors.Validation("invalid query", map[string]string{key: "must be a non-negative number"}))
		return 0, false
	}
	return n, true
}

// single renders a cached read of one value.
func single[T any](c *gin.Context, res service.Result[T], err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, res.CacheHit)
	response.JSON(c, http.StatusOK, res.Data, middleware.ExtractMeta(c))
}

// list renders a cached collection, or an export of it when ?format is set.
// ?columns narrows the exported columns.
func list[T any](c *gin.Context, res service.Result[[]T], err error, table view.Table[T], name string) {
	if err != nil {
		response.Error(c, err)
		return
	}
	if raw := c.Query("format"); raw != "" {
		exportTable(c, res.Data, table, name, raw)
		return
	}
	middleware.SetCacheHit(c, res.CacheHit)
	count := res.Count
	if count == 0 {
		count = len(res.Data)
	}
	response.List(c, res.Data, count, middleware.ExtractMeta(c))
}

func exportTable[T any](c *gin.Context, items []T, table view.Table[T], name, rawFormat string) {
	format, err := export.ParseFormat(rawFormat)
	if err != nil {
		response.Error(c, appErrors.Validation("invalid export format", map[string]string{"format": "must be csv or pdf"}))
		return
	}
	if cols := strings.TrimSpace(c.Query("columns")); cols != "" {
		table = table.Select(strings.Split(cols, ","))
	}
	doc, err := export.Render(format, name, table.Dataset(items))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, doc.ContentType, doc.Body)
}

// submitter runs mutations through the form tracker so the same form of
// one console session is never in flight twice.
type submitter struct {
	forms *form.Tracker
}

func (s submitter) submit(c *gin.Context, name string, fn func() error) error {
	if s.forms == nil {
		return fn()
	}
	return s.forms.Submit(form.Key(sessionKey(c), name), fn)
}

// mutate submits fn under name and renders its result with status.
func mutate[T any](c *gin.Context, s submitter, name string, status int, fn func() (*T, error)) {
	var out *T
	err := s.submit(c, name, func() error {
		var err error
		out, err = fn()
		return err
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, status, out)
}

// remove submits a delete under name.
func remove(c *gin.Context, s submitter, name string, fn func() error) {
	if err := s.submit(c, name, fn); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
