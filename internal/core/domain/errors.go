package domain

import (
	"errors"
	"fmt"
)

// Authentication failures, in the order the gate checks them.
var (
	ErrMissingCredentials = errors.New("wallet address and signature are required")
	ErrSignatureMismatch  = errors.New("signature verification failed")
	ErrMalformedSignature = errors.New("malformed signature")
)

// ErrNotFound is the base for every lookup miss; match with errors.Is.
var ErrNotFound = errors.New("not found")

var (
	ErrAdminNotFound       = fmt.Errorf("admin %w", ErrNotFound)
	ErrUserNotFound        = fmt.Errorf("user %w", ErrNotFound)
	ErrContactNotFound     = fmt.Errorf("contact %w", ErrNotFound)
	ErrThemeNotFound       = fmt.Errorf("theme %w", ErrNotFound)
	ErrTransactionNotFound = fmt.Errorf("transaction %w", ErrNotFound)
	ErrDocumentNotFound    = fmt.Errorf("document %w", ErrNotFound)
)

var ErrAlreadyExists = errors.New("already exists")

var (
	ErrAdminExists = fmt.Errorf("admin %w", ErrAlreadyExists)
	ErrUserExists  = fmt.Errorf("user %w", ErrAlreadyExists)
)

// ErrRequestInProgress means a request with the same idempotency key is
// still being saved.
var ErrRequestInProgress = errors.New("a request with this idempotency key is still in progress")

var (
	ErrValidation        = errors.New("validation failed")
	ErrForbidden         = errors.New("access forbidden")
	ErrDocumentsDisabled = errors.New("document storage is not configured")
)

// Invalidf builds a validation error carrying a client-facing message.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
