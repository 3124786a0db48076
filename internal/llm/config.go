package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const envPrefix = "ALFANUMRIK_"

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderFake       = "fake"
)

// Endpoint configures one hosted provider.
type Endpoint struct {
	APIKey  string
	Model   string
	BaseURL string // optional; OpenAI-compatible providers only
}

// Config selects a provider and configures retries and deadlines.
type Config struct {
	Provider string

	Anthropic  Endpoint
	OpenAI     Endpoint
	Gemini     Endpoint
	OpenRouter Endpoint

	// ImageModel is the Gemini image model used for diagrams.
	ImageModel string

	Retry RetryConfig

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration
}

// RetryConfig configures backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the defaults used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderGemini,
		Anthropic:  Endpoint{Model: "claude-haiku"},
		OpenAI:     Endpoint{Model: "gpt-4o-mini"},
		Gemini:     Endpoint{Model: "gemini-flash"},
		OpenRouter: Endpoint{Model: "google/gemini-2.5-flash", BaseURL: defaultOpenRouterBaseURL},
		ImageModel: "imagen-4.0-generate-001",
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 60 * time.Second,
	}
}

// Endpoint returns the endpoint for the selected provider.
func (c *Config) Endpoint(provider string) *Endpoint {
	switch provider {
	case ProviderAnthropic:
		return &c.Anthropic
	case ProviderOpenAI:
		return &c.OpenAI
	case ProviderGemini:
		return &c.Gemini
	case ProviderOpenRouter:
		return &c.OpenRouter
	}
	return nil
}

// ConfigFromEnv overlays ALFANUMRIK_* variables on the defaults. When no
// provider is named explicitly, the first provider with a standard API key
// in the environment is chosen.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if d, ok := DiscoverConfig(); ok {
		cfg = d
	}

	if p := os.Getenv(envPrefix + "LLM_PROVIDER"); p != "" {
		cfg.Provider = strings.ToLower(p)
	}
	for _, name := range []string{ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter} {
		ep := cfg.Endpoint(name)
		setFromEnv(&ep.APIKey, envKey(name, "API_KEY"))
		setFromEnv(&ep.Model, envKey(name, "MODEL"))
		setFromEnv(&ep.BaseURL, envKey(name, "BASE_URL"))
	}
	setFromEnv(&cfg.ImageModel, envPrefix+"IMAGE_MODEL")
	if d, err := time.ParseDuration(os.Getenv(envPrefix + "LLM_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	return cfg
}

// DiscoverConfig checks the vendors' standard API key variables in priority
// order and returns a Config for the first one found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	candidates := []struct {
		env      string
		provider string
	}{
		{"GEMINI_API_KEY", ProviderGemini},
		{"OPENAI_API_KEY", ProviderOpenAI},
		{"ANTHROPIC_API_KEY", ProviderAnthropic},
		{"OPENROUTER_API_KEY", ProviderOpenRouter},
	}
	for _, p := range candidates {
		if k := os.Getenv(p.env); k != "" {
			cfg.Provider = p.provider
			cfg.Endpoint(p.provider).APIKey = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the selected provider has an API key.
func (c Config) Validate() error {
	if c.Provider == ProviderFake {
		return nil
	}
	ep := c.Endpoint(c.Provider)
	if ep == nil {
		return fmt.Errorf("unknown LLM provider %q", c.Provider)
	}
	if ep.APIKey == "" {
		return fmt.Errorf("%s is required for the %s provider", envKey(c.Provider, "API_KEY"), c.Provider)
	}
	return nil
}

func envKey(provider, suffix string) string {
	return envPrefix + strings.ToUpper(provider) + "_" + suffix
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
