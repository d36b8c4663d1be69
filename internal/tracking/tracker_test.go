package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/maternal/internal/identity"
	"github.com/example/maternal/internal/storage"
	"github.com/example/maternal/pkg/models"
)

func TestFirstEventCreatesAndPersistsIdentity(t *testing.T) {
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DATA_DIR", t.TempDir())
	store, err := storage.Connect()
	require.NoError(t, err)
	defer store.Close()

	queue := &captureQueue{}
	tracker := NewTracker(queue, identity.New(store))

	// Fresh profile: no identity exists until the first event is tracked
	var saved string
	found, err := store.Get(storage.KeyUserID, &saved)
	require.NoError(t, err)
	assert.False(t, found)

	tracker.TrackPageView("home", 0)

	found, err = store.Get(storage.KeyUserID, &saved)
	require.NoError(t, err)
	require.True(t, found)
	require.NotEmpty(t, saved)

	// Every later event in the session carries the same identity
	tracker.TrackQuestion("什麼是真陣痛？", "labor-signs")
	tracker.TrackProgress(25, nil)

	events := queue.all()
	require.Len(t, events, 3)
	for _, e := range events {
		assert.Equal(t, saved, e.UserID)
	}
}

func TestTrackerStampsTimestamp(t *testing.T) {
	queue := &captureQueue{}
	tracker := newTestTracker(t, queue)
	clock := newFakeClock()
	tracker.now = clock.Now

	tracker.TrackPageView("home", 0)

	events := queue.all()
	require.Len(t, events, 1)
	assert.Equal(t, "2026-03-14T09:00:00Z", events[0].Timestamp)
	assert.Equal(t, models.EventPageView, events[0].EventType)
}

func TestTrackQuestionMetadata(t *testing.T) {
	queue := &captureQueue{}
	tracker := newTestTracker(t, queue)

	tracker.TrackQuestion("何時該去醫院？", "hospital-timing")
	tracker.TrackQuestion("自由提問", "")

	events := queue.byType(models.EventQuestion)
	require.Len(t, events, 2)
	assert.JSONEq(t, `{"context":"hospital-timing"}`, events[0].Metadata)
	assert.Empty(t, events[1].Metadata)
}
