package handler

import (
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sms-console/internal/debounce"
	"github.com/noah-isme/sms-console/internal/middleware"
	"github.com/noah-isme/sms-console/pkg/response"
)

// Searcher gates search-as-you-type requests. Queries shorter than
// minLength never reach a backend, and of a burst of queries on the same
// field of the same console session only the last one does.
type Searcher struct {
	group     *debounce.Group
	minLength int
}

// NewSearcher constructs a Searcher.
func NewSearcher(group *debounce.Group, minLength int) *Searcher {
	if minLength < 1 {
		minLength = 1
	}
	return &Searcher{group: group, minLength: minLength}
}

// admit returns the trimmed query when it should be sent to the backend.
// When it returns false the empty result has already been written.
func (s *Searcher) admit(c *gin.Context, field string) (string, bool) {
	query := strings.TrimSpace(c.Query("q"))
	if utf8.RuneCountInString(query) < s.minLength {
		middleware.SetMeta(c, "searched", false)
		middleware.SetMeta(c, "min_length", s.minLength)
		response.List(c, []struct{}{}, 0, middleware.ExtractMeta(c))
		return "", false
	}
	if s.group == nil {
		return query, true
	}

	ticket := s.group.Trigger(sessionKey(c) + "|" + field)
	if !ticket.Wait(c.Request.Context()) {
		middleware.SetMeta(c, "searched", false)
		middleware.SetMeta(c, "superseded", true)
		response.List(c, []struct{}{}, 0, middleware.ExtractMeta(c))
		return "", false
	}
	middleware.SetMeta(c, "searched", true)
	return query, true
}
