// Package tagparse extracts the typed fields the UI needs out of raw
// model output. One parser serves every backend; only the out-of-band
// link metadata differs per adapter family.
package tagparse

import (
	"regexp"
	"strings"

	"linkscout/internal/catalog"
	"linkscout/internal/convo"
)

// Parsed is the structured view of one model answer.
type Parsed struct {
	DisplayText string
	Type        string
	Platform    catalog.Platform
	Links       []convo.GroundingLink
}

var typeTagRe = regexp.MustCompile(`(?m)^\s*\[TYPE\]:\s*(\S+)\s*$`)

// Inline link patterns, tried in fixed order; the first hit wins and the
// matched substring is stripped from the display text. Backends with
// native grounding never reach these.
var inlineLinkPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^\s*\*Official Source\*:\s*(\S+)\s*$`),
	regexp.MustCompile(`(?m)^\s*\*Guide\*:\s*(\S+)\s*$`),
	regexp.MustCompile(`(?m)^\s*\*\*Official Page\*\*:\s*(\S+)\s*$`),
	regexp.MustCompile(`\[DOWNLOAD_LINK\](.+?)\[/DOWNLOAD_LINK\]`),
	regexp.MustCompile(`\[VIDEO_LINK\](.+?)\[/VIDEO_LINK\]`),
}

// Parse splits raw model text into display text, response type,
// platform, and grounding links. oob carries out-of-band grounding
// metadata from backends with native search; when present it is
// authoritative and the inline patterns are skipped entirely.
func Parse(raw string, oob []convo.GroundingLink) Parsed {
	out := Parsed{Type: convo.TypeStandard, DisplayText: raw}

	if m := typeTagRe.FindStringSubmatch(out.DisplayText); m != nil {
		typ, platform, ok := parseTypeToken(m[1])
		if ok {
			out.Type = typ
			out.Platform = platform
		}
		// The tag line is stripped even when the token is unknown.
		out.DisplayText = strings.Replace(out.DisplayText, m[0], "", 1)
	}

	if len(oob) > 0 {
		out.Links = convo.DedupLinks(oob)
	} else {
		for _, re := range inlineLinkPatterns {
			m := re.FindStringSubmatch(out.DisplayText)
			if m == nil {
				continue
			}
			uri := strings.TrimSpace(m[1])
			if uri != "" {
				out.Links = []convo.GroundingLink{{URI: uri}}
			}
			out.DisplayText = strings.Replace(out.DisplayText, m[0], "", 1)
			break
		}
	}

	out.DisplayText = strings.TrimSpace(out.DisplayText)
	return out
}

// parseTypeToken validates one [TYPE] token against the grammar:
//
//	standard | installation-guide
//	software-list-<platform>
//	<software|game|driver>[-details]-<platform>
//	device-flow-prompt | device-selection-prompt
//
// Tokens with an invalid platform suffix are rejected wholesale; the
// caller keeps the default type rather than propagating bad data.
func parseTypeToken(token string) (string, catalog.Platform, bool) {
	token = strings.ToLower(strings.TrimSpace(token))
	switch token {
	case convo.TypeStandard, convo.TypeInstallationGuide,
		convo.TypeDeviceFlowPrompt, convo.TypeDeviceSelectPrompt:
		return token, "", true
	}

	if rest, ok := strings.CutPrefix(token, "software-list-"); ok {
		p, valid := catalog.ParsePlatform(rest)
		if !valid {
			return "", "", false
		}
		return convo.TypeSoftwareList, p, true
	}

	for _, base := range []string{convo.TypeSoftware, convo.TypeGame, convo.TypeDriver} {
		rest, ok := strings.CutPrefix(token, base+"-")
		if !ok {
			continue
		}
		typ := base
		if d, has := strings.CutPrefix(rest, "details-"); has {
			typ = base + "-details"
			rest = d
		}
		p, valid := catalog.ParsePlatform(rest)
		if !valid {
			return "", "", false
		}
		return typ, p, true
	}
	return "", "", false
}
