package chat

import (
	"fmt"
	"strings"

	"linkscout/internal/catalog"
	"linkscout/internal/convo"
	"linkscout/internal/dialogue"
	"linkscout/internal/llmclient"
	"linkscout/internal/store/devicestore"
)

// verifiedPreamble embeds a catalog fact the model must treat as its
// sole source. The preamble travels on the request's Context field,
// never inside the stored history.
func verifiedPreamble(name string, platform catalog.Platform, url string) string {
	return fmt.Sprintf("%s verified link for %s on %s = %s; use as sole source]",
		dialogue.ContextMarker, name, platform, url)
}

// devicePreamble pre-fills device facts so the model answers the
// original request for that exact hardware.
func devicePreamble(d devicestore.Device) string {
	return fmt.Sprintf("%s device = %s %s running %s]",
		dialogue.ContextMarker, d.Manufacturer, d.Model, d.OperatingSystem)
}

// buildRequest turns the visible history into the ephemeral provider
// payload. history[0] is the synthetic greeting and never sent. At most
// one context preamble goes out per call; the filter clause is only
// appended when no preamble claimed the context slot.
func buildRequest(history []convo.Turn, preamble string, filter convo.Filter) llmclient.Request {
	req := llmclient.Request{Context: preamble}
	for i, t := range history {
		if i == 0 && t.Sender == convo.SenderBot {
			continue
		}
		role := llmclient.RoleUser
		if t.Sender == convo.SenderBot {
			role = llmclient.RoleAssistant
		}
		req.Messages = append(req.Messages, llmclient.Message{Role: role, Text: t.Text})
	}
	if preamble == "" && filter != "" && filter != convo.FilterAll && len(req.Messages) > 0 {
		last := &req.Messages[len(req.Messages)-1]
		if !strings.HasPrefix(last.Text, dialogue.ContextMarker) {
			last.Text += fmt.Sprintf(" (Important filter constraint: Only show results that are %s.)", filter)
		}
	}
	return req
}

// rewriteLastMessage replaces the outgoing copy of the final user
// message, used by the device flow to restate the recovered request.
func rewriteLastMessage(req llmclient.Request, text string) llmclient.Request {
	if len(req.Messages) == 0 {
		req.Messages = []llmclient.Message{{Role: llmclient.RoleUser, Text: text}}
		return req
	}
	req.Messages[len(req.Messages)-1] = llmclient.Message{Role: llmclient.RoleUser, Text: text}
	return req
}
