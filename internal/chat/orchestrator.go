// Package chat composes the catalog index, dialogue classifier,
// provider registry, and tag parser into the single Resolve entry
// point. Nothing in here is allowed to crash a conversation: every
// failure path resolves to a friendly BotResponse.
package chat

import (
	"context"
	"errors"
	"log"
	"strings"

	"linkscout/internal/catalog"
	"linkscout/internal/convo"
	"linkscout/internal/dialogue"
	"linkscout/internal/llmclient"
	"linkscout/internal/store/devicestore"
	"linkscout/internal/tagparse"
)

type Orchestrator struct {
	catalog    *catalog.Index
	devices    devicestore.Lister
	providers  *llmclient.Registry
	classifier *dialogue.Classifier
}

func New(ix *catalog.Index, devices devicestore.Lister, providers *llmclient.Registry, classifier *dialogue.Classifier) *Orchestrator {
	if classifier == nil {
		classifier = dialogue.NewClassifier()
	}
	return &Orchestrator{catalog: ix, devices: devices, providers: providers, classifier: classifier}
}

// Resolve handles one chat turn. State is derived from the history on
// every call; the orchestrator keeps nothing between requests.
func (o *Orchestrator) Resolve(ctx context.Context, history []convo.Turn, filter convo.Filter, providerID string, session convo.Session) convo.BotResponse {
	devices := o.listDevices(ctx, session.ID)
	names := deviceNames(devices)

	cl := o.classifier.Classify(history, names)
	switch cl.State {
	case dialogue.StateEmptyHistory:
		// Terminal: neither the catalog nor a provider is consulted.
		return convo.BotResponse{Text: fallbackPrompt, Type: convo.TypeStandard}

	case dialogue.StateAwaitingDeviceFlowChoice:
		return convo.BotResponse{
			Text: withOptions(deviceSelectLead, names),
			Type: convo.TypeDeviceSelectPrompt,
		}

	case dialogue.StateAwaitingDeviceSelection:
		if d, ok := findDevice(devices, cl.Device); ok {
			return o.resolveWithDevice(ctx, history, cl.Query, d, filter, providerID)
		}
		// The picked device vanished between turns; fall back to a
		// plain resolution of the recovered request.
		return o.resolveQuery(ctx, history, cl.Query, filter, providerID, session, false)

	case dialogue.StateAwaitingClarification, dialogue.StateAwaitingPlatform:
		return o.resolveQuery(ctx, history, cl.Query, filter, providerID, session, true)

	case dialogue.StateNewQuery:
		if cl.PromptDeviceFlow {
			return convo.BotResponse{Text: deviceFlowPrompt(), Type: convo.TypeDeviceFlowPrompt}
		}
		return o.resolveQuery(ctx, history, cl.Query, filter, providerID, session, false)
	}
	return convo.BotResponse{Text: fallbackPrompt, Type: convo.TypeStandard}
}

// resolveQuery runs the deterministic catalog tiers first and only
// reaches for a provider once disambiguation is settled. resumed marks
// a clarification or platform reply, where the query may name an entry
// that was already offered.
func (o *Orchestrator) resolveQuery(ctx context.Context, history []convo.Turn, query string, filter convo.Filter, providerID string, session convo.Session, resumed bool) convo.BotResponse {
	matches, err := o.catalog.Match(ctx, query)
	if err != nil {
		// The provider path can still answer without a verified link.
		log.Printf("chat: catalog lookup degraded: %v", err)
		matches = nil
	}
	if resumed && len(matches) > 1 {
		// A reply naming one of the offered entries is a selection. The
		// exact tier would re-attach the longer siblings and re-issue the
		// same prompt forever, leaving the shorter entry unreachable.
		if it, ok := o.selectedItem(matches, query); ok {
			matches = []catalog.Item{it}
		}
	}

	platformText := query + "\n" + lastUserText(history)
	platform, havePlatform := catalog.DetectPlatform(platformText, session.OSHint)

	var pre *convo.GroundingLink
	preamble := ""
	switch {
	case len(matches) > 1:
		return convo.BotResponse{
			Text: withOptions(clarificationLead, itemNames(matches)),
			Type: convo.TypeClarificationPrompt,
		}
	case len(matches) == 1:
		if !havePlatform {
			return convo.BotResponse{
				Text: withOptions(platformLead, platformOptions),
				Type: convo.TypePlatformPrompt,
			}
		}
		it := matches[0]
		if url, ok := it.URLFor(platform); ok {
			pre = &convo.GroundingLink{URI: url, Title: it.Name}
			preamble = verifiedPreamble(it.Name, platform, url)
		}
	}

	req := buildRequest(history, preamble, filter)
	out, failed := o.callProvider(ctx, providerID, req)
	if failed {
		return out
	}
	if out.Platform == "" && havePlatform {
		out.Platform = platform
	}
	mergeVerified(pre, &out)
	return out
}

// resolveWithDevice restates the recovered request with the device
// facts pre-filled, so the model answers the original intent.
func (o *Orchestrator) resolveWithDevice(ctx context.Context, history []convo.Turn, original string, d devicestore.Device, filter convo.Filter, providerID string) convo.BotResponse {
	req := buildRequest(history, devicePreamble(d), filter)
	req = rewriteLastMessage(req, original)
	out, _ := o.callProvider(ctx, providerID, req)
	return out
}

// callProvider sends one request and parses the answer. failed=true
// means out already carries the friendly error response.
func (o *Orchestrator) callProvider(ctx context.Context, providerID string, req llmclient.Request) (convo.BotResponse, bool) {
	p, err := o.providers.Get(providerID)
	if err != nil {
		log.Printf("chat: %v", err)
		return convo.BotResponse{Text: msgNotConfigured, Type: convo.TypeStandard}, true
	}
	resp, err := p.Send(ctx, req)
	if err != nil {
		return friendlyError(p.ID(), err), true
	}

	parsed := tagparse.Parse(resp.Text, oobLinks(resp.Links))
	out := convo.BotResponse{
		Text:           parsed.DisplayText,
		Type:           parsed.Type,
		Platform:       parsed.Platform,
		GroundingLinks: parsed.Links,
	}
	if strings.TrimSpace(out.Text) == "" {
		out.Text = msgUpstream
		out.Type = convo.TypeStandard
	}
	return out, false
}

// friendlyError converts the provider error taxonomy into user-facing
// apologies. Vendor detail stays in the server log.
func friendlyError(provider string, err error) convo.BotResponse {
	var (
		cfg *llmclient.ConfigError
		rl  *llmclient.RateLimitError
		up  *llmclient.UpstreamError
		tr  *llmclient.TransientError
	)
	switch {
	case errors.As(err, &cfg):
		log.Printf("chat: %s not configured", provider)
		return convo.BotResponse{Text: msgNotConfigured, Type: convo.TypeStandard}
	case errors.As(err, &rl):
		log.Printf("chat: %s rate limited: %s", provider, rl.Detail)
		return convo.BotResponse{Text: msgRateLimited, Type: convo.TypeStandard}
	case errors.As(err, &up):
		log.Printf("chat: %s upstream %d: %s", provider, up.Status, up.Detail)
		return convo.BotResponse{Text: msgUpstream, Type: convo.TypeStandard}
	case errors.As(err, &tr):
		log.Printf("chat: %s transient: %v", provider, err)
		return convo.BotResponse{Text: msgConnectivity, Type: convo.TypeStandard}
	}
	log.Printf("chat: %s: %v", provider, err)
	return convo.BotResponse{Text: msgUpstream, Type: convo.TypeStandard}
}

func (o *Orchestrator) listDevices(ctx context.Context, sessionID string) []devicestore.Device {
	if o.devices == nil || sessionID == "" {
		return nil
	}
	devices, err := o.devices.ListForUser(ctx, sessionID)
	if err != nil {
		log.Printf("chat: device lookup degraded: %v", err)
		return nil
	}
	return devices
}

func deviceNames(devices []devicestore.Device) []string {
	names := make([]string, 0, len(devices))
	for _, d := range devices {
		if d.Name != "" {
			names = append(names, d.Name)
		}
	}
	return names
}

func findDevice(devices []devicestore.Device, name string) (devicestore.Device, bool) {
	for _, d := range devices {
		if d.Name == name {
			return d, true
		}
	}
	return devicestore.Device{}, false
}

// selectedItem reports the entry whose normalized name exactly matches
// the normalized reply, if any.
func (o *Orchestrator) selectedItem(matches []catalog.Item, reply string) (catalog.Item, bool) {
	want := o.catalog.Normalize(reply)
	for _, it := range matches {
		if o.catalog.Normalize(it.Name) == want {
			return it, true
		}
	}
	return catalog.Item{}, false
}

func itemNames(items []catalog.Item) []string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	return names
}

func lastUserText(history []convo.Turn) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Sender == convo.SenderUser {
			return history[i].Text
		}
	}
	return ""
}

func oobLinks(links []llmclient.Link) []convo.GroundingLink {
	out := make([]convo.GroundingLink, 0, len(links))
	for _, l := range links {
		out = append(out, convo.GroundingLink{URI: l.URI, Title: l.Title})
	}
	return out
}
