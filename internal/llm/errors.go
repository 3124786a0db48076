package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Kind classifies a generation failure.
type Kind int

const (
	// KindUnavailable covers network failures and 5xx responses.
	KindUnavailable Kind = iota
	// KindRateLimited is a 429 that may clear on its own.
	KindRateLimited
	// KindQuota is a 429 caused by an exhausted quota. Never retried.
	KindQuota
	// KindInvalidResponse is content that is not JSON or fails its schema.
	KindInvalidResponse
	// KindTruncated is a structured response cut off at MaxTokens.
	KindTruncated
)

func (k Kind) String() string {
	switch k {
	case KindRateLimited:
		return "rate limited"
	case KindQuota:
		return "quota exceeded"
	case KindInvalidResponse:
		return "invalid response"
	case KindTruncated:
		return "truncated"
	default:
		return "unavailable"
	}
}

// Error is the single error type providers return.
type Error struct {
	Kind       Kind
	RetryAfter time.Duration
	// Content holds the offending output for invalid or truncated responses.
	Content json.RawMessage
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return "llm: " + e.Kind.String()
	}
	return fmt.Sprintf("llm: %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the kind of err, or false when err is not an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	got, ok := KindOf(err)
	return ok && got == k
}

func invalidResponse(content json.RawMessage, err error) *Error {
	return &Error{Kind: KindInvalidResponse, Content: content, Err: err}
}

// classifyStatus maps an HTTP status from any SDK onto an *Error. A 429
// whose message mentions quota is a hard stop rather than a rate limit.
func classifyStatus(status int, err error) *Error {
	switch {
	case status == http.StatusTooManyRequests:
		if strings.Contains(strings.ToLower(err.Error()), "quota") {
			return &Error{Kind: KindQuota, Err: err}
		}
		return &Error{Kind: KindRateLimited, Err: err}
	default:
		return &Error{Kind: KindUnavailable, Err: err}
	}
}
