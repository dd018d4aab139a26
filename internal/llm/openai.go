package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/amemlabs/amem/internal/domain"
	openai "github.com/sashabaranov/go-openai"
)

const openAIChatModel = openai.GPT4oMini

type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(apiKey string) *OpenAIClient {
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  openAIChatModel,
	}
}

// ChatJSON sends one chat completion request in JSON mode and returns the
// decoded object. OpenAI's json_object response format requires the word
// "json" to appear somewhere in the messages; the extraction prompt always
// satisfies that.
func (c *OpenAIClient) ChatJSON(ctx context.Context, messages []domain.Message) (map[string]any, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    msgs,
		Temperature: 0.2,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai chat request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("openai chat returned no choices")
	}

	raw := strings.TrimSpace(resp.Choices[0].Message.Content)

	var out map[string]any
	if err := json.Unmarshal([]byte(raw), &out); err == nil {
		return out, nil
	}

	// JSON mode is not bulletproof; recover what we can before giving up.
	if err := json.Unmarshal([]byte(SanitizeJSON(raw)), &out); err != nil {
		return nil, fmt.Errorf("parse chat response: %w (raw: %s)", err, raw)
	}
	return out, nil
}
