package llm

import (
	"context"
	"fmt"

	"chat-backend/internal/chat"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// OpenAICompleter implements chat.Completer against the OpenAI chat API.
type OpenAICompleter struct {
	client *openai.LLM
}

func NewOpenAICompleter(apiKey, model string) (*OpenAICompleter, error) {
	client, err := openai.New(openai.WithToken(apiKey), openai.WithModel(model))
	if err != nil {
		return nil, fmt.Errorf("could not create OpenAI client: %w", err)
	}

	return &OpenAICompleter{client: client}, nil
}

func (completer *OpenAICompleter) Complete(ctx context.Context, instruction string, history []chat.Turn, message string) (string, error) {
	messages := make([]llms.MessageContent, 0, len(history)+2)
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, instruction))
	for _, turn := range history {
		role := llms.ChatMessageTypeHuman
		if turn.Role == chat.RoleAssistant {
			role = llms.ChatMessageTypeAI
		}
		messages = append(messages, llms.TextParts(role, turn.Content))
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, message))

	resp, err := completer.client.GenerateContent(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("error calling completion service: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion service returned no choices")
	}

	return resp.Choices[0].Content, nil
}
