package llmclient

import "fmt"

// ConfigError means the selected provider has no credential configured.
// The call fails before any network activity.
type ConfigError struct {
	Provider string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: missing credential", e.Provider)
}

// RateLimitError maps HTTP 429 from the vendor.
type RateLimitError struct {
	Provider string
	Detail   string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s: rate limited", e.Provider)
}

// UpstreamError covers any other non-2xx vendor response. Detail holds
// the vendor body for server-side logs only; it is never shown to users.
type UpstreamError struct {
	Provider string
	Status   int
	Detail   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Provider, e.Status)
}

// TransientError wraps timeouts and connection failures; a manual retry
// by the user may succeed.
type TransientError struct {
	Provider string
	Err      error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }
