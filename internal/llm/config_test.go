package llm

import (
	"strings"
	"testing"
	"time"

	"google.golang.org/genai"
)

func clearProviderEnv(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY", "ALFANUMRIK_LLM_PROVIDER"} {
		t.Setenv(k, "")
	}
}

func TestConfigFromEnv(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("ALFANUMRIK_LLM_PROVIDER", "OpenAI")
	t.Setenv("ALFANUMRIK_OPENAI_API_KEY", "sk-test")
	t.Setenv("ALFANUMRIK_OPENAI_MODEL", "gpt-4.1-mini")
	t.Setenv("ALFANUMRIK_LLM_TIMEOUT", "5s")

	cfg := ConfigFromEnv()
	if cfg.Provider != ProviderOpenAI {
		t.Errorf("provider = %q", cfg.Provider)
	}
	if cfg.OpenAI.APIKey != "sk-test" || cfg.OpenAI.Model != "gpt-4.1-mini" {
		t.Errorf("openai endpoint = %+v", cfg.OpenAI)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("timeout = %s", cfg.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestDiscoverConfig(t *testing.T) {
	clearProviderEnv(t)
	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected no provider without keys")
	}

	t.Setenv("ANTHROPIC_API_KEY", "a")
	t.Setenv("OPENAI_API_KEY", "o")
	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != ProviderOpenAI || cfg.OpenAI.APIKey != "o" {
		t.Errorf("expected openai to win over anthropic, got %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderGemini
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "ALFANUMRIK_GEMINI_API_KEY") {
		t.Errorf("expected missing key error, got %v", err)
	}

	cfg.Provider = ProviderFake
	if err := cfg.Validate(); err != nil {
		t.Errorf("fake needs no key: %v", err)
	}

	cfg.Provider = "carrier-pigeon"
	if err := cfg.Validate(); err == nil {
		t.Error("expected unknown provider error")
	}
}

func TestPriceOf(t *testing.T) {
	p, ok := PriceOf("google/gemini-2.5-flash")
	if !ok {
		t.Fatal("expected vendor prefix to be ignored")
	}
	if got := p.Cost(1_000_000, 0); got != 0.3 {
		t.Errorf("cost = %v", got)
	}
	if _, ok := PriceOf("unknown-model"); ok {
		t.Error("expected unknown model")
	}
}

func TestSchemaValidate(t *testing.T) {
	s := &Schema{Name: "schema-validate-test", Definition: map[string]any{
		"type":       "object",
		"properties": map[string]any{"n": map[string]any{"type": "integer", "minimum": 0}},
		"required":   []string{"n"},
	}}
	if err := s.Validate([]byte(`{"n":3}`)); err != nil {
		t.Errorf("valid document rejected: %v", err)
	}
	for _, bad := range []string{`{"n":-1}`, `{}`, `not json`} {
		if err := s.Validate([]byte(bad)); !IsKind(err, KindInvalidResponse) {
			t.Errorf("%s: expected invalid response, got %v", bad, err)
		}
	}
}

func TestGeminiSchema(t *testing.T) {
	got := geminiSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"kind":  map[string]any{"type": "string", "enum": []string{"a", "b"}},
			"score": map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
			"tags":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
		"required": []any{"kind"},
	})

	if got.Type != genai.TypeObject || len(got.Required) != 1 || got.Required[0] != "kind" {
		t.Fatalf("unexpected root: %+v", got)
	}
	if k := got.Properties["kind"]; len(k.Enum) != 2 {
		t.Errorf("enum = %v", k.Enum)
	}
	if s := got.Properties["score"]; s.Minimum == nil || *s.Maximum != 1 {
		t.Errorf("bounds not carried: %+v", s)
	}
	if tags := got.Properties["tags"]; tags.Type != genai.TypeArray || tags.Items.Type != genai.TypeString {
		t.Errorf("items not carried: %+v", tags)
	}
}

func TestErrorMessages(t *testing.T) {
	e := &Error{Kind: KindQuota}
	if e.Error() != "llm: quota exceeded" {
		t.Errorf("Error() = %q", e.Error())
	}
	if _, ok := KindOf(nil); ok {
		t.Error("nil has no kind")
	}
}
