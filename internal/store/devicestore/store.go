// Package devicestore exposes the saved devices the external account
// system keeps per user. The core only ever reads them.
package devicestore

import "context"

// Device is one saved device record, read-only to the core.
type Device struct {
	Name            string `json:"name"`
	Manufacturer    string `json:"manufacturer"`
	Model           string `json:"model"`
	SerialNumber    string `json:"serial_number,omitempty"`
	OperatingSystem string `json:"operating_system"`
}

// Lister is the collaborator interface the orchestrator consumes.
type Lister interface {
	ListForUser(ctx context.Context, sessionID string) ([]Device, error)
}
