package chat

import (
	"strings"
	"testing"

	"linkscout/internal/convo"
	"linkscout/internal/dialogue"
)

func TestBuildRequest_SkipsGreetingAndMapsRoles(t *testing.T) {
	h := []convo.Turn{
		greeting(),
		user("find VLC"),
		{Text: "Which platform?", Sender: convo.SenderBot, Type: convo.TypePlatformPrompt},
		user("windows"),
	}
	req := buildRequest(h, "", convo.FilterAll)
	if len(req.Messages) != 3 {
		t.Fatalf("messages = %v", req.Messages)
	}
	if req.Messages[0].Role != "user" || req.Messages[1].Role != "assistant" {
		t.Fatalf("roles wrong: %v", req.Messages)
	}
}

func TestBuildRequest_AtMostOnePreamble(t *testing.T) {
	h := []convo.Turn{greeting(), user("find VLC for windows")}
	pre := verifiedPreamble("VLC", "windows", "https://www.videolan.org/vlc/")
	req := buildRequest(h, pre, convo.FilterFree)

	if !strings.HasPrefix(req.Context, dialogue.ContextMarker) {
		t.Fatalf("context = %q", req.Context)
	}
	// The filter clause never piggybacks on a preambled call.
	last := req.Messages[len(req.Messages)-1]
	if strings.Contains(last.Text, "filter constraint") {
		t.Fatalf("filter clause on preambled call: %q", last.Text)
	}
	// The visible history is untouched.
	if strings.Contains(h[1].Text, dialogue.ContextMarker) {
		t.Fatalf("history mutated: %q", h[1].Text)
	}
}

func TestVerifiedPreambleShape(t *testing.T) {
	got := verifiedPreamble("VLC", "windows", "https://www.videolan.org/vlc/")
	want := "[CONTEXT: verified link for VLC on windows = https://www.videolan.org/vlc/; use as sole source]"
	if got != want {
		t.Fatalf("got %q", got)
	}
}
