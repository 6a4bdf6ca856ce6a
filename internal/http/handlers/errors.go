package handlers

import (
	"net/http"

	"foodadmin/internal/domain"
	"foodadmin/internal/http/middleware"
	"foodadmin/internal/utils"

	"github.com/gin-gonic/gin"
)

// RespondError writes the uniform error envelope.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"status":     "error",
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["data"] = gin.H{"detail": err.Error()}
	}
	c.JSON(status, payload)
}

// RespondDomainError maps the error taxonomy 1:1 to HTTP statuses. Internal
// errors are logged with full detail but cross the boundary as a generic
// message only.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		RespondError(c, http.StatusBadRequest, err.Error(), nil)
	case domain.IsNotFound(err):
		RespondError(c, http.StatusNotFound, err.Error(), nil)
	case domain.IsForbidden(err):
		RespondError(c, http.StatusForbidden, err.Error(), nil)
	case domain.IsConflict(err):
		RespondError(c, http.StatusConflict, err.Error(), nil)
	default:
		utils.LogEvent(middleware.GetRequestID(c), "http", "internal_error", err.Error())
		RespondError(c, http.StatusInternalServerError, "something went wrong", nil)
	}
}
