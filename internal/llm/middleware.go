package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/abhisek/alfanumrik/internal/logger"
	"github.com/abhisek/alfanumrik/internal/store"
)

// Middleware decorates a Provider.
type Middleware func(Provider) Provider

// Chain applies middlewares so that the first one listed is outermost.
func Chain(p Provider, mws ...Middleware) Provider {
	for i := len(mws) - 1; i >= 0; i-- {
		p = mws[i](p)
	}
	return p
}

type providerFunc struct {
	generate func(context.Context, Request) (*Response, error)
	model    func() string
}

func (f providerFunc) Generate(ctx context.Context, req Request) (*Response, error) {
	return f.generate(ctx, req)
}

func (f providerFunc) ModelID() string { return f.model() }

// WithTimeout bounds each call, retries included when placed outside
// WithRetry. A zero duration disables it.
func WithTimeout(d time.Duration) Middleware {
	return func(next Provider) Provider {
		if d <= 0 {
			return next
		}
		return providerFunc{
			model: next.ModelID,
			generate: func(ctx context.Context, req Request) (*Response, error) {
				ctx, cancel := context.WithTimeout(ctx, d)
				defer cancel()
				return next.Generate(ctx, req)
			},
		}
	}
}

// WithRetry retries transient failures with exponential backoff and jitter.
// Rate limits and unavailability are retried up to MaxAttempts; an invalid
// response gets one more try; quota, truncation and context errors return
// immediately.
func WithRetry(cfg RetryConfig) Middleware {
	return func(next Provider) Provider {
		return providerFunc{
			model: next.ModelID,
			generate: func(ctx context.Context, req Request) (*Response, error) {
				return retry(ctx, cfg, func() (*Response, error) { return next.Generate(ctx, req) })
			},
		}
	}
}

func retry(ctx context.Context, cfg RetryConfig, call func() (*Response, error)) (*Response, error) {
	attempts := max(cfg.MaxAttempts, 1)
	retriedInvalid := false

	var lastErr error
	for attempt := range attempts {
		resp, err := call()
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		switch kind, _ := KindOf(err); kind {
		case KindQuota, KindTruncated:
			return nil, err
		case KindInvalidResponse:
			if retriedInvalid {
				return nil, err
			}
			retriedInvalid = true
		}

		if attempt == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.wait(attempt, err)):
		}
	}
	return nil, lastErr
}

func (cfg RetryConfig) wait(attempt int, err error) time.Duration {
	var e *Error
	if errors.As(err, &e) && e.RetryAfter > 0 {
		return e.RetryAfter
	}
	mult := cfg.Multiplier
	if mult <= 0 {
		mult = 2
	}
	w := float64(cfg.InitialWait) * math.Pow(mult, float64(attempt))
	if cfg.MaxWait > 0 {
		w = min(w, float64(cfg.MaxWait))
	}
	// ±20% jitter
	w += w * 0.2 * (2*rand.Float64() - 1)
	return time.Duration(max(w, 0))
}

// WithEvents records every call in repo and logs failures. A failure to
// record never fails the call.
func WithEvents(provider string, repo store.EventRepo, log *logger.Logger) Middleware {
	return func(next Provider) Provider {
		return providerFunc{
			model: next.ModelID,
			generate: func(ctx context.Context, req Request) (*Response, error) {
				start := time.Now()
				resp, err := next.Generate(ctx, req)

				ev := store.LLMRequestEventData{
					Provider:    provider,
					Model:       next.ModelID(),
					Purpose:     PurposeFrom(ctx),
					LatencyMs:   time.Since(start).Milliseconds(),
					Success:     err == nil,
					RequestBody: transcript(req),
				}
				if resp != nil {
					ev.Model = resp.Model
					ev.InputTokens = resp.Usage.InputTokens
					ev.OutputTokens = resp.Usage.OutputTokens
					ev.ResponseBody = string(resp.Content)
				}
				if err != nil {
					ev.ErrorMessage = err.Error()
					log.Warn("llm request failed", "purpose", ev.Purpose, "model", ev.Model, "latency_ms", ev.LatencyMs, "error", err)
				} else {
					log.Debug("llm request", "purpose", ev.Purpose, "model", ev.Model, "latency_ms", ev.LatencyMs,
						"input_tokens", ev.InputTokens, "output_tokens", ev.OutputTokens)
				}

				if repo != nil {
					// Record even when the caller's context is already done.
					if recErr := repo.AppendLLMRequest(context.WithoutCancel(ctx), ev); recErr != nil {
						log.Warn("record llm request", "error", recErr)
					}
				}
				return resp, err
			},
		}
	}
}

// transcript renders a request for the event log.
func transcript(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
