package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/blackwell-systems/vitalwatch/internal/kb"
	"github.com/blackwell-systems/vitalwatch/internal/retrieval"
)

type fakeProvider struct {
	calls  int
	answer string
}

func (f *fakeProvider) Complete(ctx context.Context, system, user string) (string, error) {
	f.calls++
	return f.answer, nil
}

func (f *fakeProvider) Name() string { return "fake" }

func TestAsk_DeclinesWithoutEvidence(t *testing.T) {
	p := &fakeProvider{answer: "should not be used"}

	got, err := Ask(context.Background(), p, "how is my recovery?", retrieval.Summary{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.calls != 0 {
		t.Errorf("provider was called %d times on empty evidence", p.calls)
	}
	if !strings.Contains(got, "don't have any health data") {
		t.Errorf("expected decline message, got %q", got)
	}
}

func TestAsk_UsesProviderWithEvidence(t *testing.T) {
	p := &fakeProvider{answer: "  Your recovery is in the green zone.  "}
	summary := retrieval.Summary{
		Evidence: []kb.Fact{{Content: "Most recently, your recovery score % was 72%", Metric: "recovery score %"}},
		Text:     "## recovery score %\n- Most recently, your recovery score % was 72% [Green/high]\n",
	}

	got, err := Ask(context.Background(), p, "how is my recovery?", summary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.calls != 1 {
		t.Errorf("provider called %d times, want 1", p.calls)
	}
	if got != "Your recovery is in the green zone." {
		t.Errorf("answer not trimmed: %q", got)
	}
}

func TestBuildPrompt(t *testing.T) {
	summary := retrieval.Summary{
		Text: "## day strain\n- Most recently, your day strain was 14.3 [high]\n",
	}

	prompt := BuildPrompt("was yesterday hard?", summary)

	if !strings.Contains(prompt, "## Evidence") {
		t.Error("prompt missing evidence header")
	}
	if !strings.Contains(prompt, "day strain was 14.3") {
		t.Error("prompt missing evidence content")
	}
	if !strings.Contains(prompt, "## Question") {
		t.Error("prompt missing question header")
	}
	if !strings.Contains(prompt, "was yesterday hard?") {
		t.Error("prompt missing question text")
	}
	// Evidence must come before the question so the model reads it first.
	if strings.Index(prompt, "## Evidence") > strings.Index(prompt, "## Question") {
		t.Error("evidence should precede question")
	}
}

func TestAnthropicComplete(t *testing.T) {
	var gotReq anthropicRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Errorf("missing version header")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(anthropicResponse{
			Content: []anthropicContentBlock{
				{Type: "text", Text: "part one "},
				{Type: "text", Text: "part two"},
			},
		})
	}))
	defer srv.Close()

	a := NewAnthropic("test-key", "", 0)
	a.baseURL = srv.URL

	got, err := a.Complete(context.Background(), "system prompt", "user prompt")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "part one part two" {
		t.Errorf("got %q, want joined text blocks", got)
	}
	if gotReq.System != "system prompt" {
		t.Errorf("system prompt not sent: %q", gotReq.System)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Content != "user prompt" {
		t.Errorf("user message not sent: %+v", gotReq.Messages)
	}
	if gotReq.Model != defaultModel {
		t.Errorf("default model not applied: %q", gotReq.Model)
	}
	if gotReq.MaxTokens != defaultMaxTokens {
		t.Errorf("default max tokens not applied: %d", gotReq.MaxTokens)
	}
}

func TestAnthropicComplete_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"type": "rate_limit_error", "message": "slow down"}}`))
	}))
	defer srv.Close()

	a := NewAnthropic("test-key", "", 0)
	a.baseURL = srv.URL

	_, err := a.Complete(context.Background(), "s", "u")
	if err == nil {
		t.Fatal("expected error for 429 response")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error should mention status: %v", err)
	}
}

func TestNewProvider_UnknownProvider(t *testing.T) {
	_, err := NewProvider(Options{Provider: "gemini", APIKey: "x"})
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestNewProvider_SelectsByName(t *testing.T) {
	p, err := NewProvider(Options{Provider: "anthropic", APIKey: "k"})
	if err != nil {
		t.Fatalf("anthropic: %v", err)
	}
	if p.Name() != "anthropic" {
		t.Errorf("got provider %q", p.Name())
	}

	p, err = NewProvider(Options{Provider: "openai", APIKey: "k"})
	if err != nil {
		t.Fatalf("openai: %v", err)
	}
	if p.Name() != "openai" {
		t.Errorf("got provider %q", p.Name())
	}
}
