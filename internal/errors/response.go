package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard error payload
type ErrorResponse struct {
	Error   string `json:"error"`   // error code, used by the frontend for mapping
	Message string `json:"message"` // user-facing message
}

// RespondWithError writes an error response
// statusCode: HTTP status code
// errorCode: one of the code constants in codes.go
// message: user-facing message
func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}

// Shortcut helpers for the most common responses

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	RespondWithError(c, http.StatusUnauthorized, AuthUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Access denied"
	}
	RespondWithError(c, http.StatusForbidden, AuthzForbidden, message)
}

func BadRequest(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusBadRequest, errorCode, message)
}

func NotFound(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusNotFound, errorCode, message)
}

func Conflict(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusConflict, errorCode, message)
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Something went wrong. Please try again later"
	}
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}

// RespondWithParsedError maps a low-level error through ParseError and
// picks the HTTP status from the resulting code
func RespondWithParsedError(c *gin.Context, err error, context string) {
	info := ParseError(err, context)
	RespondWithError(c, statusForCode(info.Code), info.Code, info.Message)
}

func statusForCode(code string) int {
	switch code {
	case ResourceNotFound, ProductNotFound, CategoryNotFound, CartNotFound,
		CartItemNotFound, OrderNotFound, IssueNotFound:
		return http.StatusNotFound
	case ResourceAlreadyExists, ResourceConflict, AuthEmailAlreadyExists:
		return http.StatusConflict
	case ValidationInvalidInput, ValidationInvalidID, ValidationInvalidFormat,
		ValidationInvalidRange, ValidationRequired:
		return http.StatusBadRequest
	case InternalExternalAPI:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ValidationError carries per-field validation failures
type ValidationError struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func RespondWithValidationError(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, ValidationError{
		Error:   ValidationInvalidInput,
		Message: "Invalid input",
		Fields:  fields,
	})
}
