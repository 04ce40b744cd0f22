package packing

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is matched by every validation failure returned from the
	// engine. Overflow is never reported through an error.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCapacityLimit is matched when a well-formed input needs more
	// placement steps than the engine is configured to run.
	ErrCapacityLimit = errors.New("placement limit exceeded")
)

// Validation codes, stable identifiers for translated messages.
const (
	CodeContainerInvalid  = "container_invalid"
	CodeNoRequests        = "no_requests"
	CodeDimensionInvalid  = "dimension_invalid"
	CodeCountInvalid      = "count_invalid"
	CodeDuplicateName     = "duplicate_name"
	CodeTooManyPlacements = "too_many_placements"
	CodeRotationInvalid   = "rotation_mode_invalid"
)

// ValidationError describes the input that was rejected. Index is the
// position of the offending request, or -1 when the error is not tied to one.
type ValidationError struct {
	Code    string
	Field   string
	Index   int
	Message string

	kind error
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("items[%d].%s: %s", e.Index, e.Field, e.Message)
	}
	return e.Field + ": " + e.Message
}

// Unwrap makes errors.Is(err, ErrInvalidInput) hold, or
// errors.Is(err, ErrCapacityLimit) for the placement cap.
func (e *ValidationError) Unwrap() error {
	if e.kind != nil {
		return e.kind
	}
	return ErrInvalidInput
}

func invalid(code, field string, index int, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		Code:    code,
		Field:   field,
		Index:   index,
		Message: fmt.Sprintf(format, args...),
	}
}

func limitExceeded(limit int) *ValidationError {
	e := invalid(CodeTooManyPlacements, "items", -1, "placing more than %d cartons is not supported", limit)
	e.kind = ErrCapacityLimit
	return e
}
