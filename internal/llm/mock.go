package llm

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error

	// Chunks, when set, are delivered one by one by Stream and their
	// concatenation becomes the response Content. If Err is also set the
	// chunks are delivered before the error is returned.
	Chunks []string
}

// MockProvider is a deterministic Provider and Streamer for testing.
// It returns canned responses in FIFO order and records all requests.
// Like the real providers, it validates content against req.Schema.
// Once the queue is empty, Fallback (when set) answers every request.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request

	Fallback func(ctx context.Context, req Request) MockResponse
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// Generate returns the next canned response, the Fallback response, or
// ErrProviderUnavailable if neither exists.
func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	resp, err := m.next(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.Err != nil {
		return nil, resp.Err
	}
	return m.validated(req, m.build(resp))
}

// Stream behaves like Generate but delivers Chunks (or the whole Content)
// through onChunk first.
func (m *MockProvider) Stream(ctx context.Context, req Request, onChunk func(string)) (*Response, error) {
	resp, err := m.next(ctx, req)
	if err != nil {
		return nil, err
	}

	chunks := resp.Chunks
	if len(chunks) == 0 && len(resp.Content) > 0 && resp.Err == nil {
		chunks = []string{string(resp.Content)}
	}
	for _, c := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		onChunk(c)
	}

	if resp.Err != nil {
		return nil, resp.Err
	}
	return m.validated(req, m.build(resp))
}

func (m *MockProvider) validated(req Request, r *Response) (*Response, error) {
	if err := validateResponse(req.Schema, r.Content); err != nil {
		return nil, err
	}
	return r, nil
}

func (m *MockProvider) next(ctx context.Context, req Request) (MockResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if err := ctx.Err(); err != nil {
		return MockResponse{}, err
	}
	if len(m.responses) == 0 {
		if m.Fallback != nil {
			return m.Fallback(ctx, req), nil
		}
		return MockResponse{}, &ErrProviderUnavailable{Err: nil}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]
	return resp, nil
}

func (m *MockProvider) build(resp MockResponse) *Response {
	content := resp.Content
	if len(resp.Chunks) > 0 {
		content = json.RawMessage(strings.Join(resp.Chunks, ""))
	}
	return &Response{
		Content:    content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
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
