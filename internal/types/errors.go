// Package types holds the JSON envelopes shared by the HTTP surface.
package types

import (
	"encoding/json"
	"net/http"
)

// APIError is the JSON body of every error response.
type APIError struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains the error information.
type ErrorDetail struct {
	Message string  `json:"message"`
	Type    string  `json:"type"`
	Param   *string `json:"param,omitempty"`
	Code    int     `json:"code"`
}

// Error type constants
const (
	ErrorTypeInvalidRequest = "invalid_request_error"
	ErrorTypeInvalidUsage   = "invalid_usage_error"
	ErrorTypeInvalidModel   = "invalid_model_error"
	ErrorTypeNotFound       = "not_found_error"
	ErrorTypeConflict       = "conflict_error"
	ErrorTypeNoData         = "no_data_error"
	ErrorTypeRateLimit      = "rate_limit_error"
	ErrorTypeServer         = "server_error"
	ErrorTypeUnavailable    = "service_unavailable"
)

// NewAPIError creates a new API error.
func NewAPIError(message, errType string, status int) *APIError {
	return &APIError{
		Error: ErrorDetail{
			Message: message,
			Type:    errType,
			Code:    status,
		},
	}
}

// WithParam names the request field that caused the error.
func (e *APIError) WithParam(param string) *APIError {
	e.Error.Param = &param
	return e
}

// WriteError writes an API error using its code as the HTTP status.
func WriteError(w http.ResponseWriter, err *APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Error.Code)
	_ = json.NewEncoder(w).Encode(err)
}

// ErrInvalidRequest creates a malformed request error.
func ErrInvalidRequest(message string) *APIError {
	return NewAPIError(message, ErrorTypeInvalidRequest, http.StatusBadRequest)
}

// ErrRateLimit creates a rate limit error.
func ErrRateLimit(message string) *APIError {
	return NewAPIError(message, ErrorTypeRateLimit, http.StatusTooManyRequests)
}

// ErrServer creates a server error.
func ErrServer(message string) *APIError {
	return NewAPIError(message, ErrorTypeServer, http.StatusInternalServerError)
}

// ErrNotFound creates a not found error.
func ErrNotFound(message string) *APIError {
	return NewAPIError(message, ErrorTypeNotFound, http.StatusNotFound)
}
