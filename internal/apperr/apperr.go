package apperr

import (
	"errors"
	"fmt"
)

// The three failure classes the API distinguishes. Handlers map them to
// 400, 404 and 502; everything else is a 500.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrGateway      = errors.New("payment gateway error")
)

// Invalid wraps a caller error with a reason.
func Invalid(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, reason)
}
