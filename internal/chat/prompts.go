package chat

import (
	"strings"

	"linkscout/internal/dialogue"
)

// User-facing literals. The [OPTIONS] tag is rendered by the UI as
// tappable choices; the classifier compares replies against the device
// option literals, so those come from the dialogue package.
const (
	fallbackPrompt = "Sorry, I didn't catch that. What software, game, or driver can I help you find?"

	clarificationLead = "I found more than one match. Which one did you mean?"
	platformLead      = "Which platform do you need it for?"
	deviceFlowLead    = "I can tailor the results to one of your saved devices. Want to use one?"
	deviceSelectLead  = "Which device is this for?"

	msgNotConfigured = "This provider isn't configured on the server yet. Please pick another one or contact the site owner."
	msgRateLimited   = "I'm receiving a lot of requests right now. Please slow down and try again in a minute."
	msgUpstream      = "Something went wrong while looking that up. Please try asking again."
	msgConnectivity  = "I couldn't reach the search service. Please check your connection and try again."
)

func withOptions(lead string, options []string) string {
	return lead + "\n[OPTIONS]: " + strings.Join(options, ", ")
}

func deviceFlowPrompt() string {
	return withOptions(deviceFlowLead, []string{
		dialogue.OptionUseSavedDevice,
		dialogue.OptionFreshSearch,
	})
}

var platformOptions = []string{"Windows", "macOS", "Linux", "Android"}
