package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// CastError reports a path or filter value that cannot be read as a document key.
type CastError struct {
	Value string
	Err   error
}

func (e CastError) Error() string {
	return fmt.Sprintf("Resource not found with id of %s", e.Value)
}

func (e CastError) Unwrap() error { return e.Err }

// DuplicateError wraps a unique index violation raised by the store.
type DuplicateError struct {
	Err error
}

func (e DuplicateError) Error() string {
	return "Duplicated field value entered"
}

func (e DuplicateError) Unwrap() error { return e.Err }

// ValidationError carries one message per violated field.
type ValidationError struct {
	Messages []string
	Err      error
}

func NewValidationError(msgs ...string) ValidationError {
	return ValidationError{Messages: msgs}
}

func (e ValidationError) Error() string {
	if len(e.Messages) == 0 {
		return "validation error"
	}
	return strings.Join(e.Messages, ", ")
}

func (e ValidationError) Unwrap() error { return e.Err }

type NotFoundError struct {
	Resource string
	ID       string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.ID == "" {
		if e.Resource == "" {
			return "not found"
		}
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("Resource not found with id of %s", e.ID)
}

func (e NotFoundError) Unwrap() error { return e.Err }

// StatusError is an explicit rejection whose HTTP status is chosen by the caller.
type StatusError struct {
	Status int
	Msg    string
	Err    error
}

func NewStatusError(status int, format string, args ...any) StatusError {
	return StatusError{Status: status, Msg: fmt.Sprintf(format, args...)}
}

func (e StatusError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return http.StatusText(e.Status)
}

func (e StatusError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsCast(err error) bool {
	var target CastError
	return errors.As(err, &target)
}

func IsDuplicate(err error) bool {
	var target DuplicateError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}
