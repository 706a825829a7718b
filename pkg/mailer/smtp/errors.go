package smtp

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned without any network I/O when credentials,
// host or sender address are missing.
var ErrNotConfigured = errors.New("relay not configured")

// AuthError is returned when the relay rejects the credentials.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// TransportError is returned for any other protocol or network failure.
// Stage names the step of the SMTP exchange that failed.
type TransportError struct {
	Err   error
	Stage string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("relay error: %s: %v", e.Stage, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsAuthError returns true if the error is an AuthError.
func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// IsTransportError returns true if the error is a TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
