package llmclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"time"
)

// compatProvider calls an OpenAI-compatible chat-completions endpoint.
// The concrete backends (Groq, Mistral, OpenRouter) differ only in id,
// endpoint, credential, and extra headers.
type compatProvider struct {
	id        string
	http      *http.Client
	baseURL   string
	apiKey    string
	model     string
	headers   map[string]string
	sysPrompt string
}

type compatChatReq struct {
	Model       string          `json:"model"`
	Messages    []compatMessage `json:"messages"`
	Temperature float32         `json:"temperature"`
}

type compatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type compatChatResp struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *compatProvider) ID() string { return c.id }

func (c *compatProvider) Send(ctx context.Context, req Request) (Response, error) {
	if c.apiKey == "" {
		return Response{}, &ConfigError{Provider: c.id}
	}

	msgs := make([]compatMessage, 0, len(req.Messages)+1)
	msgs = append(msgs, compatMessage{Role: "system", Content: c.sysPrompt})
	for i, m := range req.Messages {
		role := "user"
		if m.Role == RoleAssistant {
			role = "assistant"
		}
		text := m.Text
		if i == len(req.Messages)-1 && req.Context != "" {
			text = req.Context + "\n" + text
		}
		msgs = append(msgs, compatMessage{Role: role, Content: text})
	}

	body, _ := json.Marshal(compatChatReq{Model: c.model, Messages: msgs, Temperature: 0.2})
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return Response{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	for k, v := range c.headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Response{}, &TransientError{Provider: c.id, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return Response{}, &RateLimitError{Provider: c.id, Detail: string(detail)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return Response{}, &UpstreamError{Provider: c.id, Status: resp.StatusCode, Detail: string(detail)}
	}

	var out compatChatResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Response{}, &UpstreamError{Provider: c.id, Status: resp.StatusCode, Detail: "undecodable body"}
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return Response{}, &UpstreamError{Provider: c.id, Status: resp.StatusCode, Detail: "empty choice set"}
	}
	// No out-of-band grounding on these backends; links, if any, are
	// embedded inline per the tag grammar.
	return Response{Text: out.Choices[0].Message.Content}, nil
}

func newCompat(id, baseURL, apiKey, envKey, model string, timeout time.Duration, headers map[string]string) *compatProvider {
	if apiKey == "" {
		apiKey = os.Getenv(envKey)
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &compatProvider{
		id:        id,
		http:      &http.Client{Timeout: timeout},
		baseURL:   baseURL,
		apiKey:    apiKey,
		model:     model,
		headers:   headers,
		sysPrompt: inlineTagPrompt,
	}
}

// NewGroqProvider targets the Groq chat-completions API.
// See: https://console.groq.com/docs/api-reference
func NewGroqProvider(apiKey, model string, timeout time.Duration) Provider {
	if model == "" {
		model = "llama-3.3-70b-versatile"
	}
	return newCompat("groq", "https://api.groq.com/openai/v1/chat/completions", apiKey, "GROQ_API_KEY", model, timeout, nil)
}

// NewMistralProvider targets the Mistral chat-completions API.
func NewMistralProvider(apiKey, model string, timeout time.Duration) Provider {
	if model == "" {
		model = "mistral-large-latest"
	}
	return newCompat("mistral", "https://api.mistral.ai/v1/chat/completions", apiKey, "MISTRAL_API_KEY", model, timeout, nil)
}

// NewOpenRouterProvider targets OpenRouter, which multiplexes many
// vendors behind the same wire shape.
func NewOpenRouterProvider(apiKey, model string, timeout time.Duration) Provider {
	if model == "" {
		model = "meta-llama/llama-3.3-70b-instruct"
	}
	headers := map[string]string{
		"HTTP-Referer": "https://linkscout.app",
		"X-Title":      "LinkScout",
	}
	return newCompat("openrouter", "https://openrouter.ai/api/v1/chat/completions", apiKey, "OPENROUTER_API_KEY", model, timeout, headers)
}
