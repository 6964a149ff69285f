package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateEmail    = errors.New("email already in use")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidInput      = errors.New("invalid input")
	ErrAmbiguousUsername = errors.New("multiple users share that username")
	ErrWrongPassword     = errors.New("current password is incorrect")
	ErrUpstream          = errors.New("movie catalog unavailable")
)

// ValidationError carries per-field messages for a rejected request.
// It matches ErrInvalidInput under errors.Is.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + " " + e.Fields[k]
	}
	return "invalid input: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
