package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness. Code is the error kind.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
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

// Is reports whether target carries the same error kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if e == nil || !errors.As(target, &t) || t == nil {
		return false
	}
	return e.Code == t.Code
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
	ErrForbidden          = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrPreconditionFailed = New("PRECONDITION_FAILED", http.StatusPreconditionFailed, "precondition failed")
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrCacheMiss          = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// Domain and workflow error kinds.
var (
	ErrInvalidName              = New("INVALID_NAME", http.StatusBadRequest, "invalid name")
	ErrInvalidAge               = New("INVALID_AGE", http.StatusBadRequest, "student must be at least 18 years old to register")
	ErrInvalidRegistrationFee   = New("INVALID_REGISTRATION_FEE", http.StatusBadRequest, "registration fee cannot be negative")
	ErrInvalidCourseDate        = New("INVALID_COURSE_DATE", http.StatusBadRequest, "invalid course date")
	ErrCourseStarted            = New("COURSE_STARTED", http.StatusConflict, "course has already started")
	ErrInvalidPaymentTransition = New("INVALID_PAYMENT_TRANSITION", http.StatusConflict, "invalid payment status transition")
	ErrNilArgument              = New("NIL_ARGUMENT", http.StatusInternalServerError, "required argument is nil")
	ErrEntityNotFound           = New("ENTITY_NOT_FOUND", http.StatusNotFound, "entity not found")
	ErrAlreadyEnrolled          = New("ALREADY_ENROLLED", http.StatusConflict, "student is already enrolled in this course")
	ErrPaymentGateway           = New("PAYMENT_GATEWAY_ERROR", http.StatusBadGateway, "payment gateway failure")
)

// EntityNotFound builds the not-found error for an entity type and id.
func EntityNotFound(entity, id string) *Error {
	return Clone(ErrEntityNotFound, fmt.Sprintf("%s not found by id: %s", entity, id))
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
