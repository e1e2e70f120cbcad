package services

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Sentinel error kinds surfaced by the service layer. Handlers map these to
// HTTP statuses; anything else is treated as an internal failure and rolls
// back the surrounding transaction.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
)

// notFoundf wraps ErrNotFound with context
func notFoundf(format string, args ...any) error {
	return errors.Wrapf(ErrNotFound, format, args...)
}

// forbiddenf wraps ErrForbidden with context
func forbiddenf(format string, args ...any) error {
	return errors.Wrapf(ErrForbidden, format, args...)
}

// invalidf wraps ErrInvalidInput with context
func invalidf(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidInput, format, args...)
}

// conflictf wraps ErrConflict with context
func conflictf(format string, args ...any) error {
	return errors.Wrapf(ErrConflict, format, args...)
}

// asNotFound converts gorm's record-not-found into the service sentinel and
// annotates anything else with a stack.
func asNotFound(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Wrapf(ErrNotFound, format, args...)
	}
	return errors.Wrapf(err, format, args...)
}
