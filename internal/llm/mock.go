package llm

import (
	"context"

	"github.com/amemlabs/amem/internal/domain"
)

// MockClient is a configurable LLM client for testing.
// Set the response fields to control what ChatJSON returns.
type MockClient struct {
	ChatJSONResponse map[string]any
	ChatJSONError    error

	// Call tracking for assertions
	ChatJSONCalls [][]domain.Message
}

func NewMockClient() *MockClient {
	return &MockClient{
		ChatJSONResponse: map[string]any{
			"events":          []any{},
			"corrections":     []any{},
			"session_summary": "",
		},
	}
}

func (m *MockClient) ChatJSON(ctx context.Context, messages []domain.Message) (map[string]any, error) {
	m.ChatJSONCalls = append(m.ChatJSONCalls, messages)
	if m.ChatJSONError != nil {
		return nil, m.ChatJSONError
	}
	return m.ChatJSONResponse, nil
}
