// Package apperrors defines the error taxonomy shared by the catalog core
// and the HTTP layer: validation, not-found, store and partial-cascade
// failures, each carrying an HTTP status and a machine-readable code.
package apperrors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voralis/catalogd/internal/logger"
)

// Error codes returned in API responses.
const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeNotFound       = "NOT_FOUND"
	CodeStore          = "STORE_ERROR"
	CodePartialCascade = "PARTIAL_CASCADE"
)

// Error is a structured error with HTTP context.
type Error struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Context    map[string]interface{} `json:"context,omitempty"`
	Cause      error                  `json:"-"`
	HTTPStatus int                    `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ToGinResponse sends the error as a standardized JSON response. Store
// errors keep their cause server-side only; the client gets a generic
// message.
func (e *Error) ToGinResponse(c *gin.Context) {
	statusCode := e.HTTPStatus
	if statusCode == 0 {
		statusCode = http.StatusInternalServerError
	}

	response := gin.H{
		"error": e.Message,
		"code":  e.Code,
	}
	if len(e.Context) > 0 {
		response["details"] = e.Context
	}

	if statusCode >= http.StatusInternalServerError {
		logger.Error("request failed",
			"status", statusCode,
			"code", e.Code,
			"error", e.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method)
	} else {
		logger.Debug("request rejected",
			"status", statusCode,
			"code", e.Code,
			"message", e.Message,
			"path", c.Request.URL.Path,
			"method", c.Request.Method)
	}

	c.JSON(statusCode, response)
}

// NewValidationError reports a malformed request, naming the failing fields.
func NewValidationError(message string, fields ...string) *Error {
	ctx := map[string]interface{}{}
	if len(fields) > 0 {
		ctx["fields"] = fields
	}
	return &Error{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Context:    ctx,
	}
}

// NewNotFoundError reports a natural-key lookup miss.
func NewNotFoundError(resource, key string) *Error {
	return &Error{
		Code:       CodeNotFound,
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
		Context:    map[string]interface{}{"resource": resource, "key": key},
	}
}

// NewStoreError reports a persistence failure. The cause is logged but not
// sent to the client.
func NewStoreError(operation string, cause error) *Error {
	return &Error{
		Code:       CodeStore,
		Message:    "store operation failed",
		HTTPStatus: http.StatusInternalServerError,
		Context:    map[string]interface{}{"operation": operation},
		Cause:      cause,
	}
}

// NewPartialCascadeError reports a cascade whose parent delete succeeded but
// a child delete failed. This must never be collapsed into plain success.
func NewPartialCascadeError(parent, step string, cause error) *Error {
	return &Error{
		Code:       CodePartialCascade,
		Message:    "cascade delete partially failed",
		HTTPStatus: http.StatusInternalServerError,
		Context:    map[string]interface{}{"parent": parent, "step": step},
		Cause:      cause,
	}
}

// Handle writes err to the response, wrapping untyped errors as store
// errors.
func Handle(c *gin.Context, err error) {
	var appErr *Error
	if errors.As(err, &appErr) {
		appErr.ToGinResponse(c)
		return
	}
	NewStoreError("internal", err).ToGinResponse(c)
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Code == CodeNotFound
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Code == CodeValidation
}
