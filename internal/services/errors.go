package services

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
)

var (
	ErrActivePeriodExists = fmt.Errorf("%w: active period already exists", ErrConflict)
	ErrNoActivePeriod     = fmt.Errorf("%w: no active period to end", ErrNotFound)
	ErrCycleLedgerDrift   = errors.New("cycle ledger does not match the active period")
)

// ValidationError names the input field that was rejected.
type ValidationError struct {
	Field  string
	Reason string
}

func (err *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", err.Field, err.Reason)
}

func (err *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalidField(field string, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ValidationField returns the offending field name when err is a validation error.
func ValidationField(err error) (string, bool) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Field, true
	}
	return "", false
}
