package roleplay

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrPersonaNotFound = errors.New("persona not found")
	ErrScriptNotFound  = errors.New("script not found")

	// ErrSessionClosed rejects turn submissions against an ended session.
	ErrSessionClosed = errors.New("session has ended")

	// ErrAlreadyEnded rejects a second end of the same session, so callers
	// can detect double submission instead of it silently succeeding.
	ErrAlreadyEnded = errors.New("session already ended")
)

// maxUpstreamExcerpt bounds how much of a provider error reaches callers.
const maxUpstreamExcerpt = 200

// UpstreamError is a failed model call. The user turn written before the
// call is retained; no assistant turn exists for it.
type UpstreamError struct {
	Quota   bool   // provider reported exhausted quota/billing
	Message string // bounded diagnostic excerpt
}

func (e *UpstreamError) Error() string {
	if e.Quota {
		return "model quota exceeded: " + e.Message
	}
	return fmt.Sprintf("model call failed: %s", e.Message)
}

func newUpstreamError(quota bool, msg string) *UpstreamError {
	if len(msg) > maxUpstreamExcerpt {
		cut := maxUpstreamExcerpt
		// Back up to a rune boundary so the excerpt stays valid UTF-8.
		for cut > 0 && !utf8.RuneStart(msg[cut]) {
			cut--
		}
		msg = msg[:cut]
	}
	return &UpstreamError{Quota: quota, Message: msg}
}
