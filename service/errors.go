package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound means a referenced stock, comment, user or portfolio entry is absent.
	ErrNotFound = errors.New("not found")
	// ErrConflict means the write would duplicate an existing record.
	ErrConflict = errors.New("conflict")
	// ErrUnauthorized means credentials or a refresh token were rejected.
	ErrUnauthorized = errors.New("unauthorized")
)

// storeError maps store-level errors onto the service error kinds and wraps
// everything else with what for context.
func storeError(err error, what string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", what, ErrConflict)
	default:
		return fmt.Errorf("%s: %w", what, err)
	}
}
