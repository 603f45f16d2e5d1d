package llmclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testCompat(url, key string) *compatProvider {
	return &compatProvider{
		id:        "groq",
		http:      &http.Client{Timeout: 2 * time.Second},
		baseURL:   url,
		apiKey:    key,
		model:     "test-model",
		sysPrompt: inlineTagPrompt,
	}
}

func TestCompat_MissingCredential(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no network call expected without a credential")
	}))
	defer srv.Close()

	p := testCompat(srv.URL, "")
	_, err := p.Send(context.Background(), Request{Messages: []Message{{Role: RoleUser, Text: "hi"}}})
	var cfg *ConfigError
	if !errors.As(err, &cfg) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestCompat_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"slow down"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := testCompat(srv.URL, "key")
	_, err := p.Send(context.Background(), Request{Messages: []Message{{Role: RoleUser, Text: "hi"}}})
	var rl *RateLimitError
	if !errors.As(err, &rl) {
		t.Fatalf("expected RateLimitError, got %v", err)
	}
}

func TestCompat_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	p := testCompat(srv.URL, "key")
	_, err := p.Send(context.Background(), Request{Messages: []Message{{Role: RoleUser, Text: "hi"}}})
	var up *UpstreamError
	if !errors.As(err, &up) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if up.Status != http.StatusBadGateway {
		t.Fatalf("status = %d", up.Status)
	}
}

func TestCompat_TransientOnConnectFailure(t *testing.T) {
	// Closing the server first guarantees a refused connection while
	// keeping the reserved address.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	p := testCompat(srv.URL, "key")
	_, err := p.Send(context.Background(), Request{Messages: []Message{{Role: RoleUser, Text: "hi"}}})
	var tr *TransientError
	if !errors.As(err, &tr) {
		t.Fatalf("expected TransientError, got %v", err)
	}
	if tr.Unwrap() == nil {
		t.Fatal("transport cause must be wrapped")
	}
}

func TestCompat_ContextPrependedToLastMessage(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok [TYPE]: standard"}}]}`))
	}))
	defer srv.Close()

	p := testCompat(srv.URL, "key")
	resp, err := p.Send(context.Background(), Request{
		Context:  "[CONTEXT: verified link for VLC on windows = https://www.videolan.org/vlc/; use as sole source]",
		Messages: []Message{{Role: RoleUser, Text: "find VLC for windows"}},
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if resp.Text == "" || len(resp.Links) != 0 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if body := string(gotBody); !strings.Contains(body, "[CONTEXT: verified link for VLC") {
		t.Fatalf("outbound body missing preamble: %s", body)
	}
}

func TestRegistry_DefaultAndUnknown(t *testing.T) {
	p := testCompat("http://unused", "key")
	r := NewRegistry(p)
	if _, err := r.Get("groq"); err != nil {
		t.Fatalf("get groq: %v", err)
	}
	if _, err := r.Get("nope"); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}
