// Package errs defines the shared JSON error shape used by the HTTP
// middleware (middleware/authz) to translate a
// handler's self-described failure into a response body. Component A-D of
// the router core never constructs or depends on this package.
package errs

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Type classifies an APIError for client-side branching without string
// matching on Message.
type Type string

const (
	TypeValidation  Type = "VALIDATION_ERROR"
	TypeAuth        Type = "AUTH_ERROR"
	TypePermission  Type = "PERMISSION_ERROR"
	TypeResource    Type = "RESOURCE_ERROR"
	TypeInternal    Type = "INTERNAL_ERROR"
	TypeUnavailable Type = "UNAVAILABLE_ERROR"
	TypeRateLimit   Type = "RATE_LIMIT_ERROR"
	TypeTimeout     Type = "TIMEOUT_ERROR"
)

// APIError is the JSON body written for any handler failure in the demo
// server.
type APIError struct {
	Type    Type   `json:"type"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func (e *APIError) Error() string { return e.Message }

// ToJSON marshals the error, falling back to a fixed internal-error body if
// marshaling itself fails.
func (e *APIError) ToJSON() []byte {
	data, err := json.Marshal(e)
	if err != nil {
		return []byte(`{"type":"INTERNAL_ERROR","code":500,"message":"error serializing error response"}`)
	}
	return data
}

// WithDetails attaches additional structured detail and returns e for
// chaining at the call site.
func (e *APIError) WithDetails(details any) *APIError {
	e.Details = details
	return e
}

func NewValidationError(message string) *APIError {
	return &APIError{Type: TypeValidation, Code: http.StatusBadRequest, Message: message}
}

func NewAuthError(message string) *APIError {
	if message == "" {
		message = "authentication failed"
	}
	return &APIError{Type: TypeAuth, Code: http.StatusUnauthorized, Message: message}
}

func NewPermissionError(message string) *APIError {
	if message == "" {
		message = "permission denied"
	}
	return &APIError{Type: TypePermission, Code: http.StatusForbidden, Message: message}
}

func NewResourceNotFoundError(resource string) *APIError {
	message := "resource not found"
	if resource != "" {
		message = fmt.Sprintf("%s not found", resource)
	}
	return &APIError{Type: TypeResource, Code: http.StatusNotFound, Message: message}
}

func NewTimeoutError(message string) *APIError {
	if message == "" {
		message = "request timed out"
	}
	return &APIError{Type: TypeTimeout, Code: http.StatusRequestTimeout, Message: message}
}

func NewRateLimitError(message string) *APIError {
	if message == "" {
		message = "too many requests"
	}
	return &APIError{Type: TypeRateLimit, Code: http.StatusTooManyRequests, Message: message}
}

func NewInternalError(message string) *APIError {
	if message == "" {
		message = "internal server error"
	}
	return &APIError{Type: TypeInternal, Code: http.StatusInternalServerError, Message: message}
}

func NewServiceUnavailableError(message string) *APIError {
	if message == "" {
		message = "service unavailable"
	}
	return &APIError{Type: TypeUnavailable, Code: http.StatusServiceUnavailable, Message: message}
}

// WrapError converts an arbitrary error into an APIError, passing an
// existing APIError through unchanged.
func WrapError(err error) *APIError {
	if err == nil {
		return nil
	}
	if apiErr, ok := err.(*APIError); ok {
		return apiErr
	}
	return NewInternalError(err.Error())
}
