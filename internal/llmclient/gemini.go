package llmclient

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	genai "google.golang.org/genai"
)

// GeminiProvider is a thin wrapper around the official genai client.
// It is the only backend with native web grounding: verified sources
// come back as grounding metadata, not as inline text.
type GeminiProvider struct {
	cli     *genai.Client
	model   string
	timeout time.Duration
}

func NewGeminiProvider(ctx context.Context, apiKey, model string, timeout time.Duration) (*GeminiProvider, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	g := &GeminiProvider{model: model, timeout: timeout}
	// genai.NewClient refuses to construct without a credential. An
	// unkeyed provider must still register, so the client is only built
	// when a key exists and Send reports the gap per call.
	if apiKey != "" {
		cli, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI})
		if err != nil {
			return nil, err
		}
		g.cli = cli
	}
	return g, nil
}

func (g *GeminiProvider) ID() string { return "gemini" }

func (g *GeminiProvider) Send(ctx context.Context, req Request) (Response, error) {
	if g.cli == nil {
		return Response{}, &ConfigError{Provider: g.ID()}
	}
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	contents := buildGeminiContents(req)
	resp, err := g.cli.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(geminiPrompt, genai.RoleUser),
		Tools:             []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	})
	if err != nil {
		return Response{}, mapGeminiError(g.ID(), err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return Response{}, &UpstreamError{Provider: g.ID(), Status: http.StatusOK, Detail: "empty candidate set"}
	}
	cand := resp.Candidates[0]

	var b strings.Builder
	for _, part := range cand.Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}

	out := Response{Text: b.String()}
	if cand.GroundingMetadata != nil {
		for _, chunk := range cand.GroundingMetadata.GroundingChunks {
			if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
				continue
			}
			out.Links = append(out.Links, Link{URI: chunk.Web.URI, Title: chunk.Web.Title})
		}
	}
	return out, nil
}

func buildGeminiContents(req Request) []*genai.Content {
	contents := make([]*genai.Content, 0, len(req.Messages))
	for i, m := range req.Messages {
		var role genai.Role = genai.RoleUser
		if m.Role == RoleAssistant {
			role = genai.RoleModel
		}
		text := m.Text
		if i == len(req.Messages)-1 && req.Context != "" {
			text = req.Context + "\n" + text
		}
		contents = append(contents, genai.NewContentFromText(text, role))
	}
	return contents
}

func mapGeminiError(provider string, err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests:
			return &RateLimitError{Provider: provider, Detail: apiErr.Message}
		case apiErr.Code >= 400:
			return &UpstreamError{Provider: provider, Status: apiErr.Code, Detail: apiErr.Message}
		}
	}
	// Everything else is transport-level: timeout, DNS, reset.
	return &TransientError{Provider: provider, Err: err}
}
