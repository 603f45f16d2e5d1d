// Package llmclient routes chat requests to interchangeable LLM
// backends behind one call signature. Each adapter owns its system
// prompt; all prompts restate the same link trust hierarchy.
package llmclient

import "context"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role Role
	Text string
}

// Request is the outbound payload. Context carries the machine-readable
// preamble as a structured side-channel; adapters prepend it to the
// final user message on the wire, so it never leaks into the history
// types the gateway renders.
type Request struct {
	Context  string
	Messages []Message
}

// Link is a grounding source returned out-of-band by backends with
// native web search. Backends without it return none and embed links
// inline in Text instead.
type Link struct {
	URI   string
	Title string
}

type Response struct {
	Text  string
	Links []Link
}

// Provider is one LLM backend. Send makes a single attempt; retry
// policy, if any, belongs to a wrapping layer.
type Provider interface {
	ID() string
	Send(ctx context.Context, req Request) (Response, error)
}
