package chat

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/maternal/internal/ai"
	"github.com/example/maternal/internal/storage"
	"github.com/example/maternal/internal/tracking"
	"github.com/example/maternal/pkg/models"
)

// titleLength is the number of runes of the first message used as the
// session title
const titleLength = 30

// Manager owns the chat sessions and the AI configuration. Sessions are
// persisted whole under one store key, newest first. Every question asked
// is also recorded as a tracking event with its section context.
type Manager struct {
	store   *storage.Store
	tracker *tracking.Tracker
	// newClient builds the provider client; tests replace it
	newClient func(models.AIConfig) (ai.Client, error)
	now       func() time.Time

	mu sync.Mutex
}

// NewManager creates a chat manager over the given store and tracker
func NewManager(store *storage.Store, tracker *tracking.Tracker) *Manager {
	return &Manager{
		store:     store,
		tracker:   tracker,
		newClient: ai.New,
		now:       time.Now,
	}
}

// Config returns the stored AI configuration, if any
func (m *Manager) Config() (models.AIConfig, bool) {
	var config models.AIConfig
	found, err := m.store.Get(storage.KeyAIConfig, &config)
	if err != nil {
		log.Printf("chat: failed to load AI config: %v", err)
		return models.AIConfig{}, false
	}
	return config, found
}

// SetConfig stores the AI configuration after validating the provider
func (m *Manager) SetConfig(config models.AIConfig) error {
	if config.Provider != models.ProviderGemini && config.Provider != models.ProviderOpenAI {
		return fmt.Errorf("unsupported AI provider: %s", config.Provider)
	}
	if config.APIKey == "" {
		return fmt.Errorf("API key must not be empty")
	}
	return m.store.Set(storage.KeyAIConfig, config)
}

// ClearConfig removes the stored AI configuration
func (m *Manager) ClearConfig() error {
	return m.store.Delete(storage.KeyAIConfig)
}

// Sessions returns all sessions, newest first
func (m *Manager) Sessions() []models.ChatSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadLocked()
}

// Session returns one session by id
func (m *Manager) Session(id string) (models.ChatSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.loadLocked() {
		if s.ID == id {
			return s, true
		}
	}
	return models.ChatSession{}, false
}

// CreateSession creates and persists an empty session
func (m *Manager) CreateSession() models.ChatSession {
	now := m.now().UTC().Format(time.RFC3339)
	session := models.ChatSession{
		ID:        uuid.NewString(),
		Title:     "新對話",
		Messages:  []models.Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveLocked(session)
	return session
}

// DeleteSession removes a session by id
func (m *Manager) DeleteSession(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sessions := m.loadLocked()
	kept := sessions[:0]
	for _, s := range sessions {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	m.persistLocked(kept)
}

// SendMessage appends the user's message to the session, asks the
// configured AI provider for a reply, appends and persists it, and records
// the question as a tracking event. sectionContext names the knowledge
// section the user was reading, if any.
func (m *Manager) SendMessage(ctx context.Context, sessionID, content, sectionContext string, symptomCheck bool) (models.ChatSession, error) {
	config, ok := m.Config()
	if !ok {
		return models.ChatSession{}, fmt.Errorf("AI provider is not configured")
	}

	client, err := m.newClient(config)
	if err != nil {
		return models.ChatSession{}, err
	}

	m.mu.Lock()
	session, found := m.findLocked(sessionID)
	m.mu.Unlock()
	if !found {
		return models.ChatSession{}, fmt.Errorf("unknown chat session: %s", sessionID)
	}

	now := m.now().UTC().Format(time.RFC3339)
	session.Messages = append(session.Messages, models.Message{
		ID:        uuid.NewString(),
		Role:      "user",
		Content:   content,
		Timestamp: now,
	})
	if len(session.Messages) == 1 {
		session.Title = sessionTitle(content)
	}

	reply, err := client.Chat(ctx, session.Messages, symptomCheck)
	if err != nil {
		return models.ChatSession{}, fmt.Errorf("chat request failed: %w", err)
	}

	session.Messages = append(session.Messages, models.Message{
		ID:        uuid.NewString(),
		Role:      "assistant",
		Content:   reply,
		Timestamp: m.now().UTC().Format(time.RFC3339),
	})
	session.UpdatedAt = m.now().UTC().Format(time.RFC3339)

	m.mu.Lock()
	m.saveLocked(session)
	m.mu.Unlock()

	m.tracker.TrackQuestion(content, sectionContext)
	return session, nil
}

func (m *Manager) findLocked(id string) (models.ChatSession, bool) {
	for _, s := range m.loadLocked() {
		if s.ID == id {
			return s, true
		}
	}
	return models.ChatSession{}, false
}

// loadLocked reads the full session list; a broken store degrades to none
func (m *Manager) loadLocked() []models.ChatSession {
	var sessions []models.ChatSession
	if _, err := m.store.Get(storage.KeyChatSessions, &sessions); err != nil {
		log.Printf("chat: failed to load sessions: %v", err)
		return nil
	}
	return sessions
}

// saveLocked upserts one session, keeping newest-first order
func (m *Manager) saveLocked(session models.ChatSession) {
	sessions := m.loadLocked()
	for i, s := range sessions {
		if s.ID == session.ID {
			sessions[i] = session
			m.persistLocked(sessions)
			return
		}
	}
	m.persistLocked(append([]models.ChatSession{session}, sessions...))
}

func (m *Manager) persistLocked(sessions []models.ChatSession) {
	if err := m.store.Set(storage.KeyChatSessions, sessions); err != nil {
		log.Printf("chat: failed to persist sessions: %v", err)
	}
}

// sessionTitle derives the session title from the first message
func sessionTitle(content string) string {
	runes := []rune(content)
	if len(runes) <= titleLength {
		return content
	}
	return string(runes[:titleLength]) + "..."
}
