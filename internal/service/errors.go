package service

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel kinds. Handlers map them to HTTP statuses with errors.Is.
var (
	ErrValidation         = errors.New("validation")
	ErrConflict           = errors.New("conflict")
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("Invalid Credentials")
	ErrEmptyCart          = errors.New("Cart is empty. Add items before checking out.")
	ErrInsufficientStock  = errors.New("insufficient stock")
)

type InsufficientStockError struct {
	ProductID   uint
	ProductName string
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock for \"%s\". Available: %d", e.ProductName, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

var kinds = []error{ErrValidation, ErrConflict, ErrNotFound, ErrUnauthorized, ErrForbidden}

// Message returns the client facing text of err without the sentinel suffix added by %w.
func Message(err error) string {
	msg := err.Error()
	for _, k := range kinds {
		if errors.Is(err, k) {
			return strings.TrimSuffix(msg, ": "+k.Error())
		}
	}
	return msg
}
