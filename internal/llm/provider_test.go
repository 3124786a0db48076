package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
)

var answerSchema = &Schema{
	Name: "test-answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"answer": map[string]any{"type": "string"},
		},
		"required":             []any{"answer"},
		"additionalProperties": false,
	},
}

func jsonHandler(status int, body any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}
}

func newTestAnthropic(t *testing.T, h http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	p, err := NewAnthropicProvider(Endpoint{APIKey: "test-key", Model: "claude-haiku", BaseURL: srv.URL}, option.WithMaxRetries(0))
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	return p
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_1",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}
}

func TestAnthropicProvider_Structured(t *testing.T) {
	p := newTestAnthropic(t, jsonHandler(http.StatusOK, anthropicMessage(`{"answer":"photosynthesis"}`, "end_turn")))
	if p.ModelID() != "claude-haiku-4-5-20251001" {
		t.Fatalf("alias not resolved: %s", p.ModelID())
	}

	resp, err := p.Generate(context.Background(), UserPrompt("tutor", "what?", answerSchema, 256))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"answer":"photosynthesis"}` {
		t.Errorf("content = %s", resp.Content)
	}
	if resp.Usage.TotalTokens != 80 || resp.StopReason != StopEnd {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestAnthropicProvider_PlainTextWrapped(t *testing.T) {
	p := newTestAnthropic(t, jsonHandler(http.StatusOK, anthropicMessage(`Light bends.`, "end_turn")))
	resp, err := p.Generate(context.Background(), UserPrompt("", "explain", nil, 64))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var s string
	if err := json.Unmarshal(resp.Content, &s); err != nil || s != "Light bends." {
		t.Errorf("content = %s (%v)", resp.Content, err)
	}
}

func TestAnthropicProvider_SchemaViolation(t *testing.T) {
	p := newTestAnthropic(t, jsonHandler(http.StatusOK, anthropicMessage(`{"wrong":1}`, "end_turn")))
	_, err := p.Generate(context.Background(), UserPrompt("", "q", answerSchema, 64))
	if !IsKind(err, KindInvalidResponse) {
		t.Fatalf("expected invalid response, got %v", err)
	}
}

func TestAnthropicProvider_Truncated(t *testing.T) {
	p := newTestAnthropic(t, jsonHandler(http.StatusOK, anthropicMessage(`{"answer":"par`, "max_tokens")))
	_, err := p.Generate(context.Background(), UserPrompt("", "q", answerSchema, 4))
	if !IsKind(err, KindTruncated) {
		t.Fatalf("expected truncated, got %v", err)
	}
}

func TestAnthropicProvider_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		message string
		want    Kind
	}{
		{"rate limit", http.StatusTooManyRequests, "Rate limit exceeded", KindRateLimited},
		{"quota", http.StatusTooManyRequests, "You exceeded your current quota", KindQuota},
		{"server error", http.StatusInternalServerError, "boom", KindUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestAnthropic(t, jsonHandler(tt.status, map[string]any{
				"type":  "error",
				"error": map[string]any{"type": "api_error", "message": tt.message},
			}))
			_, err := p.Generate(context.Background(), UserPrompt("", "q", nil, 16))
			if err == nil {
				t.Fatal("expected error")
			}
			var e *Error
			if !errors.As(err, &e) || e.Kind != tt.want {
				t.Fatalf("expected kind %s, got %v", tt.want, err)
			}
		})
	}
}

func newTestOpenAI(t *testing.T, h http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	p, err := NewOpenAIProvider(Endpoint{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: srv.URL + "/v1"})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	return p
}

func chatCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
	}
}

func TestOpenAIProvider_SendsSchema(t *testing.T) {
	var got map[string]any
	p := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		jsonHandler(http.StatusOK, chatCompletion(`{"answer":"x"}`, "stop"))(w, r)
	})

	resp, err := p.Generate(context.Background(), UserPrompt("sys", "q", answerSchema, 128))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.TotalTokens != 65 {
		t.Errorf("usage = %+v", resp.Usage)
	}

	format, _ := got["response_format"].(map[string]any)
	if format["type"] != "json_schema" {
		t.Errorf("response_format = %v", got["response_format"])
	}
	msgs, _ := got["messages"].([]any)
	if len(msgs) != 2 {
		t.Errorf("expected system + user messages, got %d", len(msgs))
	}
}

func TestOpenAIProvider_Errors(t *testing.T) {
	p := newTestOpenAI(t, jsonHandler(http.StatusTooManyRequests, map[string]any{
		"error": map[string]any{"message": "slow down", "type": "rate_limit"},
	}))
	_, err := p.Generate(context.Background(), UserPrompt("", "q", nil, 16))
	if !IsKind(err, KindRateLimited) {
		t.Fatalf("expected rate limited, got %v", err)
	}

	p = newTestOpenAI(t, jsonHandler(http.StatusOK, map[string]any{
		"id": "x", "object": "chat.completion", "model": "gpt-4o-mini", "choices": []any{},
	}))
	_, err = p.Generate(context.Background(), UserPrompt("", "q", nil, 16))
	if !IsKind(err, KindInvalidResponse) {
		t.Fatalf("expected invalid response, got %v", err)
	}
}

func TestOpenRouterDefaults(t *testing.T) {
	p, err := NewOpenRouterProvider(Endpoint{APIKey: "k", Model: "google/gemini-2.5-flash"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.name != ProviderOpenRouter || p.ModelID() != "google/gemini-2.5-flash" {
		t.Errorf("unexpected provider: %+v", p)
	}
	if _, err := NewOpenRouterProvider(Endpoint{}); err == nil {
		t.Error("expected error without API key")
	}
}

func TestGenerateInto(t *testing.T) {
	fake := NewFakeProvider(JSONReply(map[string]string{"answer": "42"}), Reply{Content: []byte(`[1]`)})
	type out struct {
		Answer string `json:"answer"`
	}

	got, _, err := GenerateInto[out](context.Background(), fake, Request{})
	if err != nil || got.Answer != "42" {
		t.Fatalf("got %+v, %v", got, err)
	}

	_, _, err = GenerateInto[out](context.Background(), fake, Request{})
	if !IsKind(err, KindInvalidResponse) {
		t.Fatalf("expected decode failure as invalid response, got %v", err)
	}
}

func TestFakeProvider_ExhaustedScript(t *testing.T) {
	fake := NewFakeProvider()
	_, err := fake.Generate(context.Background(), Request{})
	if !IsKind(err, KindUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
	fake.Push(okReply())
	if _, err := fake.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error after push: %v", err)
	}
	if len(fake.Requests()) != 2 {
		t.Errorf("requests = %d", len(fake.Requests()))
	}
}
