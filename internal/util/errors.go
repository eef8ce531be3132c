// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidInput      = errors.New("invalid input provided")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidParameter  = errors.New("invalid game parameter")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrAccountNotFound   = errors.New("account not found")
	ErrRoundNotFound     = errors.New("round not found")
	ErrDuplicateEntry    = errors.New("duplicate entry") // For cases like signing up with an existing email
)

// IsError checks if err is, or wraps, the target error.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
