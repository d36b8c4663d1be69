package models

// AIProvider selects the AI backend used by the chat assistant
type AIProvider string

const (
	// ProviderGemini uses the Google Gemini API
	ProviderGemini AIProvider = "gemini"
	// ProviderOpenAI uses the OpenAI chat completions API
	ProviderOpenAI AIProvider = "openai"
)

// AIConfig holds the user-supplied AI credentials and model choice.
// The key belongs to the user (bring-your-own-key) and never leaves the
// local store except in requests to the chosen provider.
type AIConfig struct {
	Provider AIProvider `json:"provider"`
	APIKey   string     `json:"apiKey"`
	Model    string     `json:"model"`
}

// Message is a single chat message
type Message struct {
	ID        string `json:"id"`
	Role      string `json:"role"` // "user" or "assistant"
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// ChatSession is one conversation with the AI assistant
type ChatSession struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt"`
}
