package llmclient

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	genai "google.golang.org/genai"
)

func TestGemini_MissingCredential(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	p, err := NewGeminiProvider(context.Background(), "", "", time.Second)
	if err != nil {
		t.Fatalf("constructor must tolerate a missing credential: %v", err)
	}

	_, err = p.Send(context.Background(), Request{Messages: []Message{{Role: RoleUser, Text: "hi"}}})
	var cfg *ConfigError
	if !errors.As(err, &cfg) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestGemini_ContentRolesAndContext(t *testing.T) {
	req := Request{
		Context: "[CONTEXT: verified link for VLC on windows = https://www.videolan.org/vlc/; use as sole source]",
		Messages: []Message{
			{Role: RoleUser, Text: "find vlc"},
			{Role: RoleAssistant, Text: "Which platform?"},
			{Role: RoleUser, Text: "windows"},
		},
	}

	contents := buildGeminiContents(req)
	if len(contents) != 3 {
		t.Fatalf("contents = %d", len(contents))
	}
	if contents[0].Role != genai.RoleUser || contents[1].Role != genai.RoleModel || contents[2].Role != genai.RoleUser {
		t.Fatalf("roles = %q %q %q", contents[0].Role, contents[1].Role, contents[2].Role)
	}
	last := contents[2].Parts[0].Text
	if !strings.HasPrefix(last, "[CONTEXT:") || !strings.HasSuffix(last, "windows") {
		t.Fatalf("context not prepended to final message only: %q", last)
	}
	if strings.Contains(contents[0].Parts[0].Text, "[CONTEXT:") {
		t.Fatalf("context leaked into earlier message: %q", contents[0].Parts[0].Text)
	}
}
