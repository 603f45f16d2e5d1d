package chat

import "linkscout/internal/convo"

// mergeVerified enforces that a pre-verified catalog link is never lost
// or shadowed by whatever the model produced: it always ends up first
// in the grounding list, and a generic answer type is upgraded so the
// UI can render the richer download affordance. Idempotent.
func mergeVerified(pre *convo.GroundingLink, resp *convo.BotResponse) {
	if pre == nil || pre.URI == "" {
		return
	}
	links := make([]convo.GroundingLink, 0, len(resp.GroundingLinks)+1)
	links = append(links, *pre)
	for _, l := range resp.GroundingLinks {
		if l.URI == pre.URI {
			continue
		}
		links = append(links, l)
	}
	resp.GroundingLinks = links

	if resp.Type == convo.TypeStandard {
		resp.Type = convo.TypeSoftware
	}
}
