// Package api provides the HTTP handlers of the application.
//
// Handlers are the one place that calls the typed resolver facade: they fetch
// a use case by token, invoke Execute, and render the returned Result. The
// failure branch of a Result covers everything anticipated; the recovery
// middleware covers the rest.
package api

import (
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/cleanarch/webapp/internal/api/middleware"
	"github.com/cleanarch/webapp/internal/result"
)

var (
	responseLogger *slog.Logger
	loggerOnce     sync.Once
)

func getResponseLogger() *slog.Logger {
	loggerOnce.Do(func() {
		responseLogger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelWarn,
		}))
	})
	return responseLogger
}

// statusByCode maps the failure codes produced by the use cases to HTTP
// statuses. Unknown codes are treated as server errors.
var statusByCode = map[string]int{
	result.CodeValidation:       http.StatusBadRequest,
	"INVALID_EMAIL":             http.StatusBadRequest,
	"INVALID_USERNAME":          http.StatusBadRequest,
	"INVALID_NAME":              http.StatusBadRequest,
	"INVALID_ROLE":              http.StatusBadRequest,
	"WEAK_PASSWORD":             http.StatusBadRequest,
	"INVALID_CREDENTIALS":       http.StatusUnauthorized,
	"INVALID_TOKEN":             http.StatusUnauthorized,
	"USER_NOT_FOUND":            http.StatusNotFound,
	"EMAIL_ALREADY_EXISTS":      http.StatusConflict,
	"USERNAME_ALREADY_EXISTS":   http.StatusConflict,
	result.CodeInfrastructure:   http.StatusServiceUnavailable,
	"DATABASE_ERROR":            http.StatusServiceUnavailable,
	"USER_LOOKUP_FAILED":        http.StatusServiceUnavailable,
	result.CodeInternal:         http.StatusInternalServerError,
	"TOKEN_GENERATION_FAILED":   http.StatusInternalServerError,
	"PASSWORD_HASH_FAILED":      http.StatusInternalServerError,
}

func statusForCode(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Render writes a Result as an HTTP response: successStatus with the data on
// success, the mapped failure status otherwise. Failure details accompany
// client errors (form-field context); for server errors they are logged with
// the request ID and withheld from the body.
func Render[T any](c *gin.Context, res result.Result[T], successStatus int) {
	if res.IsSuccess() {
		c.JSON(successStatus, gin.H{
			"success": true,
			"data":    res.Data(),
		})
		return
	}

	failure := res.Error()
	status := statusForCode(failure.Code)

	body := gin.H{
		"code":    failure.Code,
		"message": failure.Message,
	}
	if status < http.StatusInternalServerError && len(failure.Details) > 0 {
		body["details"] = failure.Details
	}

	if status >= http.StatusInternalServerError {
		getResponseLogger().Error("use case failure",
			"request_id", middleware.GetRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"code", failure.Code,
			"details", failure.Details,
		)
	}

	c.JSON(status, gin.H{
		"success": false,
		"error":   body,
	})
}

// WiringErrorResponse reports a failed service resolution. A missing
// registration is a deployment bug, not a user condition, so the body stays
// generic while the log entry carries the cause.
func WiringErrorResponse(c *gin.Context, err error) {
	getResponseLogger().Error("service resolution failed",
		"request_id", middleware.GetRequestID(c),
		"path", c.Request.URL.Path,
		"error", err,
	)
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error": gin.H{
			"code":    result.CodeInternal,
			"message": "An internal error occurred",
		},
	})
}

// BindingErrorResponse reports a malformed request body.
func BindingErrorResponse(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    result.CodeValidation,
			"message": "Request body is invalid",
			"details": gin.H{"cause": err.Error()},
		},
	})
}
