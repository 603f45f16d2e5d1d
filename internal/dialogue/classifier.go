package dialogue

import (
	"strings"

	"linkscout/internal/convo"
)

// Literal option strings offered by the device-flow prompt. The
// classifier compares user replies against these, so the prompt text and
// the equality check cannot drift apart.
const (
	OptionUseSavedDevice = "Yes, use one of my saved devices"
	OptionFreshSearch    = "No, search without a device"
)

// ContextMarker opens the machine-readable preamble that is only ever
// sent outbound to a provider. A user turn starting with it must never
// be re-classified as a fresh query.
const ContextMarker = "[CONTEXT:"

// Keywords that pull a new query into the driver flow when the session
// has saved devices. Tuned empirically; overridable via WithDriverKeywords.
var defaultDriverKeywords = []string{
	"driver", "drivers", "firmware", "software", "game", "games",
}

// Classification is the classifier's verdict plus the data the
// orchestrator needs to act on it.
type Classification struct {
	State State

	// Query is the text to resolve: the raw user message for a new
	// query, the user's selection for a clarification reply, or the
	// recovered original request for platform / device replies.
	Query string

	// Device is the saved device name the user picked, set only for
	// StateAwaitingDeviceSelection.
	Device string

	// PromptDeviceFlow marks a new query that should short-circuit into
	// the device-flow prompt before any catalog lookup.
	PromptDeviceFlow bool
}

type Classifier struct {
	driverKeywords []string
}

type Option func(*Classifier)

func WithDriverKeywords(words []string) Option {
	return func(c *Classifier) { c.driverKeywords = words }
}

func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{driverKeywords: defaultDriverKeywords}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify derives the dialogue state from the tail of the history.
// deviceNames are the session's saved devices, already fetched by the
// orchestrator. The rules run in order; the first hit wins.
func (c *Classifier) Classify(history []convo.Turn, deviceNames []string) Classification {
	user, userIdx := lastTurn(history, convo.SenderUser)
	if userIdx < 0 {
		return Classification{State: StateEmptyHistory}
	}
	bot, _ := lastTurnBefore(history, userIdx, convo.SenderBot)
	userText := strings.TrimSpace(user.Text)

	if bot != nil {
		switch bot.Type {
		case convo.TypeDeviceSelectPrompt:
			for _, name := range deviceNames {
				if name != "" && strings.HasPrefix(userText, name) {
					return Classification{
						State:  StateAwaitingDeviceSelection,
						Device: name,
						Query:  originalQuery(history, userIdx),
					}
				}
			}
		case convo.TypeDeviceFlowPrompt:
			if userText == OptionUseSavedDevice {
				if len(deviceNames) > 0 {
					return Classification{State: StateAwaitingDeviceFlowChoice}
				}
				// Affirmed but nothing saved: recover the request and
				// treat it as a fresh query.
				return Classification{State: StateNewQuery, Query: originalQuery(history, userIdx)}
			}
		case convo.TypeClarificationPrompt:
			return Classification{State: StateAwaitingClarification, Query: userText}
		case convo.TypePlatformPrompt:
			return Classification{State: StateAwaitingPlatform, Query: originalQuery(history, userIdx)}
		}
	}

	if strings.HasPrefix(userText, ContextMarker) {
		// Already context-injected upstream; pass through untouched.
		return Classification{State: StateNewQuery, Query: userText}
	}

	cl := Classification{State: StateNewQuery, Query: userText}
	if len(deviceNames) > 0 && c.hasDriverKeyword(userText) {
		cl.PromptDeviceFlow = true
	}
	return cl
}

func (c *Classifier) hasDriverKeyword(text string) bool {
	for _, f := range strings.Fields(strings.ToLower(text)) {
		f = strings.Trim(f, ".,!?")
		for _, kw := range c.driverKeywords {
			if f == kw {
				return true
			}
		}
	}
	return false
}

// originalQuery walks back from the user reply at idx, skipping prompt
// turns and their replies, to recover the request that started the
// exchange. For a platform reply this is the user turn two back; the
// device flow adds one more prompt/reply pair.
func originalQuery(history []convo.Turn, idx int) string {
	for i := idx - 1; i >= 0; i-- {
		t := history[i]
		if t.Sender == convo.SenderBot {
			switch t.Type {
			case convo.TypeClarificationPrompt, convo.TypePlatformPrompt,
				convo.TypeDeviceFlowPrompt, convo.TypeDeviceSelectPrompt:
				continue
			}
			return ""
		}
		text := strings.TrimSpace(t.Text)
		if text == OptionUseSavedDevice || text == OptionFreshSearch {
			continue
		}
		return text
	}
	return ""
}

func lastTurn(history []convo.Turn, s convo.Sender) (*convo.Turn, int) {
	return lastTurnBefore(history, len(history), s)
}

func lastTurnBefore(history []convo.Turn, idx int, s convo.Sender) (*convo.Turn, int) {
	for i := idx - 1; i >= 0; i-- {
		if history[i].Sender == s {
			return &history[i], i
		}
	}
	return nil, -1
}
