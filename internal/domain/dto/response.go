package dto

import (
	"net/http"
	"time"
)

// Error codes carried in ErrorResponse.Error.
const (
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeInternal       = "internal_error"
	ErrCodeUnauthorized   = "unauthorized"
	ErrCodeNotFound       = "not_found"
	ErrCodeRateLimit      = "rate_limit_exceeded"
	ErrCodeTimeout        = "timeout"
	// ErrCodeUnavailable is returned while MongoDB is unreachable or the
	// breaker in front of it is open.
	ErrCodeUnavailable = "service_unavailable"
	ErrCodeTooLarge    = "payload_too_large"
)

var statusCodes = map[int]string{
	http.StatusBadRequest:            ErrCodeInvalidRequest,
	http.StatusUnprocessableEntity:   ErrCodeInvalidRequest,
	http.StatusUnauthorized:          ErrCodeUnauthorized,
	http.StatusNotFound:              ErrCodeNotFound,
	http.StatusTooManyRequests:       ErrCodeRateLimit,
	http.StatusRequestTimeout:        ErrCodeTimeout,
	http.StatusGatewayTimeout:        ErrCodeTimeout,
	http.StatusServiceUnavailable:    ErrCodeUnavailable,
	http.StatusRequestEntityTooLarge: ErrCodeTooLarge,
}

// SuccessResponse wraps successful API responses with metadata.
// @Description Successful API response wrapper
type SuccessResponse struct {
	// Data contains the endpoint payload, e.g. a SimulationResponse.
	Data interface{} `json:"data" swaggertype:"object"`
	// RequestID is the unique request identifier
	RequestID string `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	// Timestamp is when the response was generated
	Timestamp time.Time `json:"timestamp" example:"2026-10-19T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse represents a standardized error response for the API.
// @Description Standardized error response
type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_request"`
	Message string `json:"message,omitempty" example:"items[0].carton: dimensions must be positive"`
	// Details contains additional error details (optional)
	// Example: {"field": "error message"}
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time         `json:"timestamp" example:"2026-10-19T10:00:00Z"`
} // @name ErrorResponse

// NewError creates a new ErrorResponse with the given code and message.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// WithRequestID adds a request ID to the error response.
func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// ErrCodeFromStatus maps an HTTP status to its error code. Unlisted
// statuses are reported as internal errors.
func ErrCodeFromStatus(status int) string {
	if code, ok := statusCodes[status]; ok {
		return code
	}
	return ErrCodeInternal
}
