package core

import (
	"errors"
	"fmt"
)

const ElectronicVotingDisabledDetail = "Electronic voting is disabled. Only analog polls are allowed."

var (
	ErrValidation = errors.New("validation failed")

	// Poll errors.
	ErrPollNotFound     = errors.New("poll not found")
	ErrConcurrentUpdate = errors.New("poll was modified concurrently")

	// KV errors.
	ErrKeyNotFound    = errors.New("key not found")
	ErrBucketNotFound = errors.New("bucket not found")
	ErrBucketExists   = errors.New("bucket already exists")
	ErrKeyExists      = errors.New("key already exists")
	ErrWrongOperation = errors.New("wrong operation or revision")
)

// ValidationError is returned when user input is not acceptable. Detail is
// meant to be shown to the client verbatim. Field is empty for errors that
// concern the whole poll.
type ValidationError struct {
	Field  string
	Detail string
}

func NewValidationError(detail string) *ValidationError {
	return &ValidationError{Detail: detail}
}

func NewFieldValidationError(field, detail string) *ValidationError {
	return &ValidationError{Field: field, Detail: detail}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Detail
	}

	return fmt.Sprintf("%s: %s", e.Field, e.Detail)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation //nolint:errorlint
}
