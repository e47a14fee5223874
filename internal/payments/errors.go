package payments

import (
	"errors"
	"fmt"
)

// Sentinel errors for gateway operations.
var (
	// ErrUnsupportedCountry is returned when no platform serves a country.
	ErrUnsupportedCountry = errors.New("unsupported country")
	// ErrAccountNotFound is returned when the provider reports 404.
	ErrAccountNotFound = errors.New("account not found")
	// ErrMissingSecretKey indicates no API key is configured for a platform.
	ErrMissingSecretKey = errors.New("missing platform secret key")
)

// RemoteError is a non-2xx response from the payments provider.
// The provider is a black box; the status and message are surfaced
// for logging, never shown to end users verbatim.
type RemoteError struct {
	Status  int
	Code    string
	Message string
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("payments provider error (status %d, code %s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("payments provider error (status %d): %s", e.Status, e.Message)
}

// IsRemoteError reports whether err is a provider-side failure and
// returns it if so.
func IsRemoteError(err error) (*RemoteError, bool) {
	var re *RemoteError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
