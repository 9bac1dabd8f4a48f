package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPermissionDenied is returned when a write is blocked by policy.
// Reads never return it: an invisible row is simply absent.
var ErrPermissionDenied = errors.New("permission denied")

// ErrNotFound covers both a missing row and a row the actor may not
// see. The two are deliberately indistinguishable so that existence
// itself cannot leak.
var ErrNotFound = errors.New("not found")

// ErrAlreadySaved marks the benign outcome of saving a listing twice,
// including two concurrent saves racing on the unique index.
var ErrAlreadySaved = errors.New("already saved")

// ValidationError rejects a write whose payload breaks an invariant.
// All checks run before it is built, so Reasons carries every failed
// check, not just the first.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Reasons, "; "))
}

// Validation builds a ValidationError from the collected reasons.
func Validation(reasons ...string) *ValidationError {
	return &ValidationError{Reasons: reasons}
}

// AsValidation unwraps err into a ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
