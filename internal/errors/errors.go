package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode identifies a class of adapter error.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// TodoError is a structured error with code, status, and details.
type TodoError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *TodoError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *TodoError {
	return &TodoError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for an unknown todo id.
func NewNotFound(id string) *TodoError {
	return &TodoError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("todo not found: %s", id),
		Details: map[string]any{"id": id},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *TodoError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &TodoError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// As converts err to a *TodoError, wrapping anything else as internal.
func As(err error) *TodoError {
	var tErr *TodoError
	if stderrors.As(err, &tErr) {
		return tErr
	}
	return NewInternal(err)
}

// Is checks if an error is a TodoError with the given code.
func Is(err error, code ErrorCode) bool {
	var tErr *TodoError
	if stderrors.As(err, &tErr) {
		return tErr.Code == code
	}
	return false
}
