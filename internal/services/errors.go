package services

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for handlers to map to a response.
var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrPersistence        = errors.New("persistence failure")
	ErrMailDelivery       = errors.New("mail delivery failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError lists the required fields that were empty after trimming.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// MailDeliveryError is returned alongside a message that was already saved.
type MailDeliveryError struct {
	Err error
}

func (e *MailDeliveryError) Error() string {
	return fmt.Sprintf("email failed to send: %v", e.Err)
}

func (e *MailDeliveryError) Unwrap() []error { return []error{ErrMailDelivery, e.Err} }

func persistence(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
}
