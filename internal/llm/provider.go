// Package llm talks to hosted text-generation models. Every call returns
// JSON: either the structured object a Schema asked for, or the raw text
// wrapped as a JSON string.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// Provider generates one response for one request.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier requests are sent to.
	ModelID() string
}

// Request describes a single generation call.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, makes the provider use its native structured output
	// and the response is validated against it before it is returned.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema.
type Schema struct {
	// Name must be unique per Definition; compiled schemas are cached by it.
	Name        string
	Description string
	Definition  map[string]any
}

// StopReason is the normalized reason generation ended.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
)

// Response holds a provider's output.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason StopReason
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// UserPrompt builds a single-turn request.
func UserPrompt(system, user string, schema *Schema, maxTokens int) Request {
	return Request{
		System:    system,
		Messages:  []Message{{Role: RoleUser, Content: user}},
		Schema:    schema,
		MaxTokens: maxTokens,
	}
}

// GenerateInto runs req and decodes the structured content into a new T.
func GenerateInto[T any](ctx context.Context, p Provider, req Request) (*T, *Response, error) {
	resp, err := p.Generate(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	var out T
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, resp, invalidResponse(resp.Content, fmt.Errorf("decode %T: %w", out, err))
	}
	return &out, resp, nil
}

// textContent wraps free-form output as a JSON string so Content is always
// valid JSON.
func textContent(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}

// finish applies the checks shared by every provider: a truncated structured
// response is never handed back, and structured content must match its schema.
func finish(req Request, text string, resp *Response) (*Response, error) {
	if req.Schema == nil {
		resp.Content = textContent(text)
		return resp, nil
	}
	resp.Content = json.RawMessage(text)
	if resp.StopReason == StopMaxTokens {
		return nil, &Error{Kind: KindTruncated, Content: resp.Content}
	}
	if err := req.Schema.Validate(resp.Content); err != nil {
		return nil, err
	}
	return resp, nil
}
