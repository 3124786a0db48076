package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// Reply is one scripted outcome for FakeProvider.
type Reply struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// JSONReply builds a Reply whose content is v encoded as JSON.
func JSONReply(v any) Reply {
	b, err := json.Marshal(v)
	if err != nil {
		return Reply{Err: err}
	}
	return Reply{Content: b}
}

// FakeProvider replays scripted replies in order and records every request.
// Once the script is exhausted it fails with KindUnavailable.
type FakeProvider struct {
	mu       sync.Mutex
	script   []Reply
	requests []Request
}

// NewFakeProvider returns a FakeProvider that will replay replies.
func NewFakeProvider(replies ...Reply) *FakeProvider {
	return &FakeProvider{script: replies}
}

func (f *FakeProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, req)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(f.script) == 0 {
		return nil, &Error{Kind: KindUnavailable}
	}

	r := f.script[0]
	f.script = f.script[1:]
	if r.Err != nil {
		return nil, r.Err
	}
	return &Response{Content: r.Content, Usage: r.Usage, Model: "fake", StopReason: StopEnd}, nil
}

func (f *FakeProvider) ModelID() string { return "fake" }

// Push appends replies to the script.
func (f *FakeProvider) Push(replies ...Reply) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.script = append(f.script, replies...)
}

// Requests returns a copy of the requests seen so far.
func (f *FakeProvider) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Request(nil), f.requests...)
}

// CallCount returns how many times Generate was called.
func (f *FakeProvider) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}
