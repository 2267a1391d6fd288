package service

import (
	"github.com/cockroachdb/errors"
)

// --- Error Definitions ---
var (
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidCredential    = errors.New("invalid code")
	ErrInvalidInput         = errors.New("invalid input")
	ErrPlayerNotFound       = errors.New("player not found")
	ErrInstructorNotFound   = errors.New("instructor not found")
	ErrGatewayNotConfigured = errors.New("text messaging not configured")
	ErrPlayerMissingPhone   = errors.New("player phone missing")
	ErrGatewaySendFailed    = errors.New("text failed")
)

// SendError carries the gateway failure behind ErrGatewaySendFailed.
type SendError struct {
	Cause error
}

func (e *SendError) Error() string {
	return "text failed: " + e.Cause.Error()
}

func (e *SendError) Unwrap() error {
	return e.Cause
}

func (e *SendError) Is(target error) bool {
	return target == ErrGatewaySendFailed
}

// InputError explains why a request was rejected as ErrInvalidInput.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return "invalid input: " + e.Reason
}

func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalidInput(reason string) error {
	return &InputError{Reason: reason}
}
