package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/example/maternal/pkg/models"
)

const defaultOpenAIModel = "gpt-4o"

// OpenAI is a client for the OpenAI chat completions API
type OpenAI struct {
	apiKey      string
	model       string
	apiURL      string
	temperature float64
	httpClient  *http.Client
}

// NewOpenAI creates an OpenAI client with the user's key and model choice
func NewOpenAI(apiKey, model string) *OpenAI {
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAI{
		apiKey:      apiKey,
		model:       model,
		apiURL:      "https://api.openai.com/v1/chat/completions",
		temperature: 0.7,
		httpClient:  &http.Client{Timeout: 60 * time.Second},
	}
}

// chatMessage is a message in the chat completions wire format
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is a request to the chat completions API
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

// chatResponse is a response from the chat completions API
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Chat sends the conversation, prefixed with the system prompt, and returns
// the assistant's reply
func (c *OpenAI) Chat(ctx context.Context, messages []models.Message, symptomCheck bool) (string, error) {
	wire := make([]chatMessage, 0, len(messages)+1)
	wire = append(wire, chatMessage{Role: "system", Content: systemPromptFor(symptomCheck)})
	for _, m := range messages {
		wire = append(wire, chatMessage{Role: m.Role, Content: m.Content})
	}

	request := chatRequest{
		Model:       c.model,
		Messages:    wire,
		Temperature: c.temperature,
	}

	requestData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(requestData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var response chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if response.Error != nil {
		return "", fmt.Errorf("API error: %s", response.Error.Message)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	return response.Choices[0].Message.Content, nil
}
