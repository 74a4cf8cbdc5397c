package llm

import (
	"context"
	"sync"
)

// MockClient is a scripted LLMClient. Respond, when set, decides the reply
// per prompt; otherwise Response and Err are returned for every call.
type MockClient struct {
	Response string
	Err      error
	Respond  func(prompt string) (string, error)

	mu    sync.Mutex
	calls []Call
}

type Call struct {
	Prompt  string
	Options Options
}

func (m *MockClient) Generate(ctx context.Context, prompt string, opts ...Option) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, Call{Prompt: prompt, Options: Collect(opts)})
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.Respond != nil {
		return m.Respond(prompt)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

func (m *MockClient) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}
