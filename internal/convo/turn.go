// Package convo holds the conversation wire types shared by the
// classifier, orchestrator, and gateway.
package convo

import "linkscout/internal/catalog"

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Response / dialogue-state tags carried in Turn.Type and
// BotResponse.Type. These are the wire strings the UI switches on.
const (
	TypeStandard            = "standard"
	TypeSoftware            = "software"
	TypeGame                = "game"
	TypeDriver              = "driver"
	TypeSoftwareList        = "software-list"
	TypeInstallationGuide   = "installation-guide"
	TypeClarificationPrompt = "software-clarification-prompt"
	TypePlatformPrompt      = "platform-clarification-prompt"
	TypeDeviceFlowPrompt    = "device-flow-prompt"
	TypeDeviceSelectPrompt  = "device-selection-prompt"
)

// GroundingLink is one authoritative source URL attached to a response.
type GroundingLink struct {
	URI   string `json:"uri"`
	Title string `json:"title,omitempty"`
}

// Turn is a single message in the conversation history. History is
// append-only and supplied fresh on every call; the core never mutates it.
type Turn struct {
	ID             string           `json:"id"`
	Text           string           `json:"text"`
	Sender         Sender           `json:"sender"`
	Type           string           `json:"type,omitempty"`
	Platform       catalog.Platform `json:"platform,omitempty"`
	GroundingLinks []GroundingLink  `json:"groundingLinks,omitempty"`
}

// Filter is the caller's cost constraint on results.
type Filter string

const (
	FilterAll      Filter = "all"
	FilterFree     Filter = "free"
	FilterFreemium Filter = "freemium"
	FilterPaid     Filter = "paid"
)

// Session is the opaque identity supplied by the auth collaborator.
type Session struct {
	ID     string
	OSHint string // user-agent / reported OS, used only as a platform fallback
}

// BotResponse is the core's single output type.
type BotResponse struct {
	Text           string           `json:"text"`
	Type           string           `json:"type"`
	Platform       catalog.Platform `json:"platform,omitempty"`
	GroundingLinks []GroundingLink  `json:"groundingLinks,omitempty"`
}

// DedupLinks drops later entries that repeat an earlier URI, preserving
// order of first occurrence.
func DedupLinks(links []GroundingLink) []GroundingLink {
	if len(links) < 2 {
		return links
	}
	seen := make(map[string]struct{}, len(links))
	out := make([]GroundingLink, 0, len(links))
	for _, l := range links {
		if _, dup := seen[l.URI]; dup {
			continue
		}
		seen[l.URI] = struct{}{}
		out = append(out, l)
	}
	return out
}
