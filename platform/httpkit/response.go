// Package httpkit provides HTTP response utilities.
// This is part of the platform layer and contains no business logic.
package httpkit

import (
	"net/http"

	"users_manager_backend/platform/apperr"
	"users_manager_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInternal         = "internal server error"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// JSON sends a JSON response with the given status code.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// Error sends an error response with the given status code and message.
func Error(c *gin.Context, status int, message string, details interface{}) {
	c.JSON(status, ErrorResponse{Error: message, Details: details})
}

// OK sends a 200 OK response with the given payload.
func OK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

// Raw relays a provider body as JSON without re-encoding it.
// An empty body is written as a bare status.
func Raw(c *gin.Context, status int, body string) {
	if body == "" || status == http.StatusNoContent {
		c.Status(status)
		return
	}
	c.Data(status, "application/json; charset=utf-8", []byte(body))
}

// BindJSON decodes the request body into req and validates it.
// It writes a 422 response and returns false on failure.
func BindJSON(c *gin.Context, val *validator.Validator, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		Error(c, http.StatusUnprocessableEntity, msgInvalidRequest, err.Error())
		return false
	}
	return Validate(c, val, req)
}

// BindQuery decodes query parameters into req and validates it.
func BindQuery(c *gin.Context, val *validator.Validator, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		Error(c, http.StatusUnprocessableEntity, msgInvalidRequest, err.Error())
		return false
	}
	return Validate(c, val, req)
}

// Validate runs struct validation and writes a 422 response on failure.
func Validate(c *gin.Context, val *validator.Validator, req interface{}) bool {
	if err := val.Struct(req); err != nil {
		details := interface{}(validator.Details(err))
		if details == nil {
			details = err.Error()
		}
		Error(c, http.StatusUnprocessableEntity, msgValidationFailed, details)
		return false
	}
	return true
}

// HandleError maps domain errors to HTTP responses.
// Any *apperr.Error in the chain decides the status code; other errors
// are reported as 500 without leaking their text.
// Returns true if an error was handled, false otherwise.
func HandleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	_ = c.Error(err)

	if domainErr, ok := apperr.As(err); ok {
		c.JSON(domainErr.HTTPStatus(), ErrorResponse{
			Error:   domainErr.Message,
			Details: domainErr.Details,
		})
		return true
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msgInternal})
	return true
}
