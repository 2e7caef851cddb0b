package llm

import (
	"context"
	"encoding/json"
	"slices"
	"sync"
)

// MockReply is one queued answer of a MockProvider.
type MockReply struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// Reply queues a plain text answer, the shape of explanations and summaries.
func Reply(text string) MockReply {
	return MockReply{Content: json.RawMessage(text)}
}

// ReplyJSON queues v encoded as JSON, the shape of structured answers.
func ReplyJSON(v any) MockReply {
	b, err := json.Marshal(v)
	if err != nil {
		return MockReply{Err: err}
	}
	return MockReply{Content: b}
}

// Fail queues an error.
func Fail(err error) MockReply {
	return MockReply{Err: err}
}

// MockCall is one request seen by a MockProvider.
type MockCall struct {
	Purpose string
	Request Request
}

// MockProvider answers from a FIFO queue of replies and records every call.
// Structured replies are checked against the request schema like a real
// backend would, so a malformed fixture fails the same way a bad model
// answer does. An empty queue reports the provider as unavailable.
type MockProvider struct {
	mu      sync.Mutex
	replies []MockReply
	calls   []MockCall
}

// NewMockProvider creates a MockProvider with queued replies.
func NewMockProvider(replies ...MockReply) *MockProvider {
	return &MockProvider{replies: replies}
}

func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, MockCall{Purpose: PurposeFrom(ctx), Request: req})
	if len(m.replies) == 0 {
		return nil, &ErrProviderUnavailable{}
	}

	r := m.replies[0]
	m.replies = m.replies[1:]
	if r.Err != nil {
		return nil, r.Err
	}
	return finish(req, r.Content, StopEnd, "mock", r.Usage)
}

func (m *MockProvider) ModelID() string { return "mock" }

// AddReply queues another reply.
func (m *MockProvider) AddReply(r MockReply) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, r)
}

// Calls returns the recorded calls in order.
func (m *MockProvider) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.calls)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
