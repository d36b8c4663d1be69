package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/maternal/internal/ai"
	"github.com/example/maternal/internal/identity"
	"github.com/example/maternal/internal/storage"
	"github.com/example/maternal/internal/tracking"
	"github.com/example/maternal/pkg/models"
)

type stubClient struct {
	reply string
	err   error
	// records the last conversation seen
	messages     []models.Message
	symptomCheck bool
}

func (s *stubClient) Chat(_ context.Context, messages []models.Message, symptomCheck bool) (string, error) {
	s.messages = messages
	s.symptomCheck = symptomCheck
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

type recordingQueue struct {
	events []models.TrackingEvent
}

func (q *recordingQueue) Add(e models.TrackingEvent) { q.events = append(q.events, e) }
func (q *recordingQueue) SyncNow()                   {}
func (q *recordingQueue) Stop()                      {}

func newTestManager(t *testing.T, stub *stubClient) (*Manager, *recordingQueue) {
	t.Helper()
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DATA_DIR", t.TempDir())

	store, err := storage.Connect()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	queue := &recordingQueue{}
	m := NewManager(store, tracking.NewTracker(queue, identity.New(store)))
	m.newClient = func(models.AIConfig) (ai.Client, error) { return stub, nil }
	require.NoError(t, m.SetConfig(models.AIConfig{
		Provider: models.ProviderGemini,
		APIKey:   "test-key",
		Model:    "gemini-2.5-flash",
	}))
	return m, queue
}

func TestSetConfigValidates(t *testing.T) {
	m, _ := newTestManager(t, &stubClient{})

	assert.Error(t, m.SetConfig(models.AIConfig{Provider: "claude", APIKey: "k"}))
	assert.Error(t, m.SetConfig(models.AIConfig{Provider: models.ProviderOpenAI}))

	require.NoError(t, m.ClearConfig())
	_, ok := m.Config()
	assert.False(t, ok)
}

func TestSendMessageRoundTrip(t *testing.T) {
	stub := &stubClient{reply: "規則陣痛的特徵是..."}
	m, queue := newTestManager(t, stub)

	session := m.CreateSession()
	got, err := m.SendMessage(context.Background(), session.ID, "什麼是真陣痛？", "labor-signs", false)
	require.NoError(t, err)

	require.Len(t, got.Messages, 2)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "什麼是真陣痛？", got.Messages[0].Content)
	assert.Equal(t, "assistant", got.Messages[1].Role)
	assert.Equal(t, "規則陣痛的特徵是...", got.Messages[1].Content)
	assert.Equal(t, "什麼是真陣痛？", got.Title, "title comes from the first message")

	// Persisted
	reloaded, ok := m.Session(session.ID)
	require.True(t, ok)
	assert.Len(t, reloaded.Messages, 2)

	// The question was tracked with its section context
	require.Len(t, queue.events, 1)
	assert.Equal(t, models.EventQuestion, queue.events[0].EventType)
	assert.Equal(t, "什麼是真陣痛？", queue.events[0].Question)
	assert.JSONEq(t, `{"context":"labor-signs"}`, queue.events[0].Metadata)
}

func TestSendMessageTitleTruncation(t *testing.T) {
	m, _ := newTestManager(t, &stubClient{reply: "好的"})

	long := strings.Repeat("問", 40)
	session := m.CreateSession()
	got, err := m.SendMessage(context.Background(), session.ID, long, "", false)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("問", 30)+"...", got.Title)
}

func TestSendMessageProviderFailure(t *testing.T) {
	stub := &stubClient{err: errors.New("rate limited")}
	m, queue := newTestManager(t, stub)

	session := m.CreateSession()
	_, err := m.SendMessage(context.Background(), session.ID, "hi", "", false)
	require.Error(t, err)

	// The failed exchange is not persisted and no question is tracked
	reloaded, ok := m.Session(session.ID)
	require.True(t, ok)
	assert.Empty(t, reloaded.Messages)
	assert.Empty(t, queue.events)
}

func TestSendMessageRequiresConfig(t *testing.T) {
	m, _ := newTestManager(t, &stubClient{})
	require.NoError(t, m.ClearConfig())

	session := m.CreateSession()
	_, err := m.SendMessage(context.Background(), session.ID, "hi", "", false)
	assert.Error(t, err)
}

func TestSendMessageSymptomCheckFlag(t *testing.T) {
	stub := &stubClient{reply: "請立即就醫"}
	m, _ := newTestManager(t, stub)

	session := m.CreateSession()
	_, err := m.SendMessage(context.Background(), session.ID, "破水了", "", true)
	require.NoError(t, err)
	assert.True(t, stub.symptomCheck)
}

func TestSessionsNewestFirst(t *testing.T) {
	m, _ := newTestManager(t, &stubClient{})

	first := m.CreateSession()
	second := m.CreateSession()

	sessions := m.Sessions()
	require.Len(t, sessions, 2)
	assert.Equal(t, second.ID, sessions[0].ID)
	assert.Equal(t, first.ID, sessions[1].ID)

	m.DeleteSession(first.ID)
	sessions = m.Sessions()
	require.Len(t, sessions, 1)
	assert.Equal(t, second.ID, sessions[0].ID)
}
