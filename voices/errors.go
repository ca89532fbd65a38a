// Copyright (C) 2023-2025 Miðeind ehf.
// Icespeak - Icelandic TTS library
//
// Licensed under the GNU GPL v3 or later.
// See http://www.gnu.org/licenses/ for details.

package voices

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownProvider is returned when no registered provider has
	// the requested name.
	ErrUnknownProvider = errors.New("unknown tts provider")

	// ErrUnknownVoice is returned when no registered provider offers
	// the requested voice.
	ErrUnknownVoice = errors.New("unknown voice")

	// ErrUnsupportedOption is returned when a request asks a provider
	// for an option it cannot honor, e.g. an audio format it does not
	// produce.
	ErrUnsupportedOption = errors.New("unsupported option")

	// ErrAuthentication is returned when a provider rejects the
	// configured credentials.
	ErrAuthentication = errors.New("authentication failed")
)

// ServiceError wraps a failure reported by a provider's service.
// Transient errors (rate limits, timeouts, 5xx responses) may succeed
// on retry; fatal ones will not.
type ServiceError struct {
	Provider  string
	Op        string
	Transient bool
	Err       error
}

func (e *ServiceError) Error() string {
	kind := "fatal"
	if e.Transient {
		kind = "transient"
	}
	return fmt.Sprintf("%s: %s: %s error: %v", e.Provider, e.Op, kind, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError wraps err as a provider service error.
func NewServiceError(provider, op string, transient bool, err error) error {
	return &ServiceError{Provider: provider, Op: op, Transient: transient, Err: err}
}
