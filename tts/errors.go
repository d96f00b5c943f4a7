package tts

import "errors"

// Common errors for the synthesis system.
var (
	// Request errors
	ErrEmptyText       = errors.New("empty text provided")
	ErrParamOutOfRange = errors.New("voice parameter out of range (-5..5)")
	ErrTextTooLong     = errors.New("text exceeds engine limit")

	// Engine errors
	ErrEngineUnknown  = errors.New("unknown TTS engine")
	ErrNotConfigured  = errors.New("TTS engine is not configured")
	ErrAuthFailed     = errors.New("authentication failed: check API credentials")
	ErrQuotaExceeded  = errors.New("request quota exceeded")
	ErrTransport      = errors.New("transport error calling TTS service")
	ErrBadAudio       = errors.New("engine returned unusable audio")
)

// IsRetryable reports whether a synthesis error is worth retrying with
// backoff. Credential and request-shape problems will fail identically on
// every attempt.
func IsRetryable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrAuthFailed),
		errors.Is(err, ErrNotConfigured),
		errors.Is(err, ErrEngineUnknown),
		errors.Is(err, ErrEmptyText),
		errors.Is(err, ErrParamOutOfRange),
		errors.Is(err, ErrTextTooLong):
		return false
	}
	return true
}
