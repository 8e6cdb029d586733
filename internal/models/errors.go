package models

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrNoRecord           = errors.New("models: no matching record found")
	ErrInvalidCredentials = errors.New("models: invalid credentials")
	ErrDuplicate          = errors.New("models: duplicate record")
	ErrForbidden          = errors.New("models: forbidden")
	ErrReferenced         = errors.New("models: record is still referenced")
	ErrMissingReference   = errors.New("models: referenced record does not exist")
	ErrRateLimited        = errors.New("models: too many requests")
	ErrUnauthorized       = errors.New("models: authentication required")
	ErrStaleStatus        = errors.New("models: status changed concurrently")
)

// ValidationError carries per-field messages keyed by the JSON field name.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = message
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// DuplicateError names the field that collided so handlers can point at it.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return "models: duplicate " + e.Field
}

func (e *DuplicateError) Unwrap() error {
	return ErrDuplicate
}
