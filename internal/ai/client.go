package ai

import (
	"context"
	"fmt"

	"github.com/example/maternal/pkg/models"
)

// Client is a chat-capable AI backend. Implementations are thin wrappers
// over the provider HTTP APIs; the API key always comes from the user's
// stored configuration, never from the environment.
type Client interface {
	// Chat sends the conversation and returns the assistant's reply.
	// symptomCheck switches to the triage system prompt.
	Chat(ctx context.Context, messages []models.Message, symptomCheck bool) (string, error)
}

// New creates the client matching the configured provider
func New(config models.AIConfig) (Client, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("API key is not configured")
	}

	switch config.Provider {
	case models.ProviderOpenAI:
		return NewOpenAI(config.APIKey, config.Model), nil
	case models.ProviderGemini:
		return NewGemini(config.APIKey, config.Model), nil
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", config.Provider)
	}
}

func systemPromptFor(symptomCheck bool) string {
	if symptomCheck {
		return SymptomCheckPrompt
	}
	return SystemPrompt
}
