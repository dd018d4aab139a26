package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/amemlabs/amem/internal/domain"
	anthropic "github.com/liushuangls/go-anthropic/v2"
)

const (
	anthropicModel     = "claude-3-5-haiku-latest"
	anthropicMaxTokens = 2048
)

type AnthropicClient struct {
	client *anthropic.Client
	model  string
}

func NewAnthropicClient(apiKey string) *AnthropicClient {
	return &AnthropicClient{
		client: anthropic.NewClient(apiKey),
		model:  anthropicModel,
	}
}

// ChatJSON sends one messages request and parses the reply as a JSON
// object. The Anthropic API has no JSON mode, so the raw text goes through
// SanitizeJSON before parsing.
func (c *AnthropicClient) ChatJSON(ctx context.Context, messages []domain.Message) (map[string]any, error) {
	var system strings.Builder
	var msgs []anthropic.Message

	for _, m := range messages {
		switch m.Role {
		case "system":
			// Anthropic takes system text as a top-level field.
			if system.Len() > 0 {
				system.WriteString("\n\n")
			}
			system.WriteString(m.Content)
		case "assistant":
			msgs = append(msgs, anthropic.NewAssistantTextMessage(m.Content))
		default:
			msgs = append(msgs, anthropic.NewUserTextMessage(m.Content))
		}
	}

	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(c.model),
		System:    system.String(),
		Messages:  msgs,
		MaxTokens: anthropicMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic messages request failed: %w", err)
	}
	if len(resp.Content) == 0 || resp.Content[0].Text == nil {
		return nil, errors.New("anthropic returned no text content")
	}

	raw := strings.TrimSpace(*resp.Content[0].Text)

	var out map[string]any
	if err := json.Unmarshal([]byte(SanitizeJSON(raw)), &out); err != nil {
		return nil, fmt.Errorf("parse messages response: %w (raw: %s)", err, raw)
	}
	return out, nil
}
