package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"foodadmin/internal/access"
	"foodadmin/internal/config"
	"foodadmin/internal/domain"
	"foodadmin/internal/http/middleware"
	"foodadmin/internal/query"

	"github.com/gin-gonic/gin"
)

// API carries the injected dependencies every controller needs. One instance
// is built at process start and shared; nothing here is mutated per request.
type API struct {
	DB  *sql.DB
	Env config.Env
}

// Respond writes the uniform success envelope.
func Respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, gin.H{
		"status":     "success",
		"message":    message,
		"data":       data,
		"request_id": middleware.GetRequestID(c),
	})
}

// RespondList wraps rows and page meta in the success envelope.
func RespondList(c *gin.Context, message string, rows any, meta query.PageMeta) {
	Respond(c, http.StatusOK, message, gin.H{
		"rows": rows,
		"meta": meta,
	})
}

// BindJSONOrError ensures body is present and parsable; unknown fields are
// ignored, missing required fields fail here.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}

// Principal returns the identity the auth middleware attached. Routes behind
// Auth always have one; the zero value only shows up in tests that skip it.
func Principal(c *gin.Context) domain.Principal {
	p, _ := middleware.GetPrincipal(c)
	return p
}

// ScopeFromRequest resolves the caller's access scope, passing optional
// country_id/city_id filters through for super admins.
func ScopeFromRequest(c *gin.Context) access.Scope {
	return access.Resolve(Principal(c), QueryInt64Ptr(c, "country_id"), QueryInt64Ptr(c, "city_id"))
}

// ListParams parses sort/page query params with the entity default sort.
func ListParams(c *gin.Context, defaultSort string) (query.Sort, query.Page) {
	srt := query.ParseSort(c.Query("sort_by"), c.Query("sort_order"), defaultSort)
	pg := query.ParsePage(c.Query("page"), c.Query("limit"))
	return srt, pg
}

// PathID parses the :id path segment; responds with a validation error when
// it is not a positive integer.
func PathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id", err)
		return 0, false
	}
	return id, true
}

// QueryInt64Ptr reads an optional numeric filter; absent or malformed means
// nil, never zero.
func QueryInt64Ptr(c *gin.Context, name string) *int64 {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

// QueryBoolPtr keeps the tri-state semantics of boolean filters: only a
// literal true/false applies, anything else is "don't care".
func QueryBoolPtr(c *gin.Context, name string) *bool {
	switch strings.ToLower(strings.TrimSpace(c.Query(name))) {
	case "true", "1":
		v := true
		return &v
	case "false", "0":
		v := false
		return &v
	}
	return nil
}
