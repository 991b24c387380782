package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrValidation         = errors.New("validation_error")
	ErrDuplicateEmail     = errors.New("duplicate_email")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrStoreUnavailable   = errors.New("service_unavailable")

	// ErrNoSession means the token is missing, unknown or expired. Callers
	// treat it as anonymous rather than as a failure.
	ErrNoSession = errors.New("no session")

	// ErrMergeFailed wraps CartMerger errors.
	ErrMergeFailed = errors.New("guest merge failed")
)

// ValidationError carries one message per offending input field, keyed by the
// field's JSON name.
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
	return "validation_error: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// unavailable tags a driver error so handlers can answer 503 without
// exposing the cause.
func unavailable(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}
