package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`

	// Details carries structured information for conflict responses,
	// e.g. the colliding interval pair or the expected version token.
	Details interface{} `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is allows errors.Is matching against the predefined sentinels by code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e != nil && e.Code == t.Code
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrNotFound        = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrForbidden       = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrUnauthorized    = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrValidation      = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal        = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrOverlapConflict = New("OVERLAP_CONFLICT", http.StatusConflict, "availability windows overlap")
	ErrVersionConflict = New("VERSION_CONFLICT", http.StatusConflict, "availability changed since it was read, refetch and retry")

	// ErrCacheMiss marks a cache lookup that found nothing. It never crosses
	// the service boundary.
	ErrCacheMiss = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// OverlapDetail names the date and the two colliding intervals.
type OverlapDetail struct {
	Date   string `json:"date"`
	First  string `json:"first"`
	Second string `json:"second"`
}

// VersionDetail reports the token mismatch that blocked a write.
type VersionDetail struct {
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

// NewOverlapConflict builds an overlap conflict carrying the offending pair.
func NewOverlapConflict(date, first, second string) *Error {
	e := *ErrOverlapConflict
	e.Message = fmt.Sprintf("windows %s and %s overlap on %s", first, second, date)
	e.Details = OverlapDetail{Date: date, First: first, Second: second}
	return &e
}

// NewVersionConflict builds a version conflict carrying both tokens.
func NewVersionConflict(expected, actual string) *Error {
	e := *ErrVersionConflict
	e.Details = VersionDetail{Expected: expected, Actual: actual}
	return &e
}

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
