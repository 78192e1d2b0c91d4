package llm

import "context"

// MockClient is a test double for the Client interface. Responses can be
// fixed or derived from the prompt via Func.
type MockClient struct {
	Response *Response
	Err      error
	Func     func(prompt string) (*Response, error)
	Calls    []string // records prompts sent
}

// Complete records the call and returns the configured response.
func (m *MockClient) Complete(ctx context.Context, prompt string) (*Response, error) {
	m.Calls = append(m.Calls, prompt)
	if m.Func != nil {
		return m.Func(prompt)
	}
	return m.Response, m.Err
}
