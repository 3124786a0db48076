package llm

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/alfanumrik/internal/logger"
	"github.com/abhisek/alfanumrik/internal/store"
)

var fastRetry = RetryConfig{MaxAttempts: 3, InitialWait: time.Millisecond, MaxWait: 2 * time.Millisecond, Multiplier: 2}

func okReply() Reply { return Reply{Content: []byte(`{"ok":true}`)} }

func TestRetry_RecoversFromRateLimit(t *testing.T) {
	fake := NewFakeProvider(
		Reply{Err: &Error{Kind: KindRateLimited}},
		Reply{Err: &Error{Kind: KindUnavailable}},
		okReply(),
	)
	p := Chain(fake, WithRetry(fastRetry))

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"ok":true}` {
		t.Errorf("content = %s", resp.Content)
	}
	if fake.CallCount() != 3 {
		t.Errorf("calls = %d, want 3", fake.CallCount())
	}
}

func TestRetry_GivesUpAfterMaxAttempts(t *testing.T) {
	fake := NewFakeProvider(
		Reply{Err: &Error{Kind: KindRateLimited}},
		Reply{Err: &Error{Kind: KindRateLimited}},
		Reply{Err: &Error{Kind: KindRateLimited}},
		okReply(),
	)
	_, err := Chain(fake, WithRetry(fastRetry)).Generate(context.Background(), Request{})
	if !IsKind(err, KindRateLimited) {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if fake.CallCount() != 3 {
		t.Errorf("calls = %d, want 3", fake.CallCount())
	}
}

func TestRetry_NeverRetriesQuotaOrTruncation(t *testing.T) {
	for _, kind := range []Kind{KindQuota, KindTruncated} {
		t.Run(kind.String(), func(t *testing.T) {
			fake := NewFakeProvider(Reply{Err: &Error{Kind: kind}}, okReply())
			_, err := Chain(fake, WithRetry(fastRetry)).Generate(context.Background(), Request{})
			if !IsKind(err, kind) {
				t.Fatalf("expected %s, got %v", kind, err)
			}
			if fake.CallCount() != 1 {
				t.Errorf("calls = %d, want 1", fake.CallCount())
			}
		})
	}
}

func TestRetry_InvalidResponseRetriedOnce(t *testing.T) {
	fake := NewFakeProvider(
		Reply{Err: invalidResponse(nil, errors.New("bad"))},
		Reply{Err: invalidResponse(nil, errors.New("bad again"))},
		okReply(),
	)
	_, err := Chain(fake, WithRetry(fastRetry)).Generate(context.Background(), Request{})
	if !IsKind(err, KindInvalidResponse) {
		t.Fatalf("expected invalid response, got %v", err)
	}
	if fake.CallCount() != 2 {
		t.Errorf("calls = %d, want 2", fake.CallCount())
	}
}

func TestRetry_StopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fake := NewFakeProvider(okReply())
	_, err := Chain(fake, WithRetry(fastRetry)).Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRetryWait_HonoursRetryAfter(t *testing.T) {
	cfg := RetryConfig{InitialWait: time.Second, MaxWait: 5 * time.Second, Multiplier: 2}
	got := cfg.wait(0, &Error{Kind: KindRateLimited, RetryAfter: 42 * time.Millisecond})
	if got != 42*time.Millisecond {
		t.Errorf("wait = %s, want 42ms", got)
	}

	got = cfg.wait(10, errors.New("x"))
	if got > 6*time.Second {
		t.Errorf("wait = %s exceeds max wait plus jitter", got)
	}
}

type slowProvider struct{}

func (slowProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (slowProvider) ModelID() string { return "slow" }

func TestWithTimeout(t *testing.T) {
	p := Chain(slowProvider{}, WithTimeout(5*time.Millisecond))
	_, err := p.Generate(context.Background(), Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if p.ModelID() != "slow" {
		t.Errorf("ModelID = %q", p.ModelID())
	}
}

func TestWithEvents_RecordsSuccessAndFailure(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "events.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()

	fake := NewFakeProvider(
		Reply{Content: []byte(`{"a":1}`), Usage: Usage{InputTokens: 12, OutputTokens: 3}},
		Reply{Err: &Error{Kind: KindUnavailable, Err: fmt.Errorf("down")}},
	)
	p := Chain(fake, WithEvents(ProviderFake, s.EventRepo(), logger.Nop()))
	ctx := WithPurpose(context.Background(), PurposeLesson)

	req := UserPrompt("sys", "hello", &Schema{Name: "t", Definition: map[string]any{"type": "object"}}, 100)
	if _, err := p.Generate(ctx, req); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := p.Generate(ctx, req); err == nil {
		t.Fatal("expected second call to fail")
	}

	events, err := s.EventRepo().QueryLLMEvents(context.Background(), store.QueryOpts{Purpose: PurposeLesson})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}

	var ok, failed int
	for _, e := range events {
		if e.Provider != ProviderFake {
			t.Errorf("provider = %q", e.Provider)
		}
		if e.Success {
			ok++
			if e.InputTokens != 12 || e.ResponseBody != `{"a":1}` {
				t.Errorf("unexpected success event: %+v", e)
			}
		} else {
			failed++
			if e.ErrorMessage == "" {
				t.Error("failed event has no error message")
			}
		}
	}
	if ok != 1 || failed != 1 {
		t.Errorf("ok=%d failed=%d", ok, failed)
	}
}

func TestTranscript(t *testing.T) {
	got := transcript(UserPrompt("be brief", "hi", &Schema{Name: "s", Definition: map[string]any{"type": "string"}}, 10))
	want := "[system]\nbe brief\n\n[user]\nhi\n\n[schema s]\n{\"type\":\"string\"}\n"
	if got != want {
		t.Errorf("transcript =\n%q\nwant\n%q", got, want)
	}
}

func TestPurposeDefaults(t *testing.T) {
	if got := PurposeFrom(context.Background()); got != "unknown" {
		t.Errorf("PurposeFrom = %q", got)
	}
}
