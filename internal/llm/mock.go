package llm

import (
	"context"
	"encoding/json"
	"iter"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
//
// Generate returns Content (or Err). Stream yields Fragments in order and
// then Err, if set; with no Fragments a non-empty Content is streamed as a
// single fragment. Gate, when non-nil, holds a stream before its first
// fragment until the channel is closed.
type MockResponse struct {
	Content   json.RawMessage
	Fragments []string
	Usage     Usage
	Err       error
	Gate      <-chan struct{}
}

// MockProvider is a deterministic StreamProvider for testing.
// It returns canned responses in FIFO order and records all requests.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

func (m *MockProvider) next(req Request) (MockResponse, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.responses) == 0 {
		return MockResponse{}, false
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	return resp, true
}

// Generate returns the next canned response or ErrProviderUnavailable if
// the queue is empty.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	resp, ok := m.next(req)
	if !ok {
		return nil, &ErrProviderUnavailable{Err: nil}
	}

	if resp.Err != nil {
		return nil, resp.Err
	}

	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// Stream yields the next canned response's fragments.
func (m *MockProvider) Stream(ctx context.Context, req Request) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		resp, ok := m.next(req)
		if !ok {
			yield("", &ErrProviderUnavailable{Err: nil})
			return
		}

		if resp.Gate != nil {
			select {
			case <-resp.Gate:
			case <-ctx.Done():
				yield("", ctx.Err())
				return
			}
		}

		fragments := resp.Fragments
		if len(fragments) == 0 && len(resp.Content) > 0 {
			fragments = []string{string(resp.Content)}
		}
		for _, f := range fragments {
			if f == "" {
				continue
			}
			if !yield(f, nil) {
				return
			}
		}
		if resp.Err != nil {
			yield("", resp.Err)
		}
	}
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate and Stream calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastCall returns the most recent request, or false if none was made.
func (m *MockProvider) LastCall() (Request, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return Request{}, false
	}
	return m.Calls[len(m.Calls)-1], true
}
