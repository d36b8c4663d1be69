package tracking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/example/maternal/internal/identity"
	"github.com/example/maternal/internal/storage"
	"github.com/example/maternal/pkg/models"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DATA_DIR", t.TempDir())

	s, err := storage.Connect()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// fakeSink records uploaded batches and fails on demand
type fakeSink struct {
	mu       sync.Mutex
	batches  [][]models.TrackingEvent
	err      error
	onUpload func()
}

func (f *fakeSink) Upload(_ context.Context, events []models.TrackingEvent) error {
	f.mu.Lock()
	err := f.err
	f.mu.Unlock()

	if f.onUpload != nil {
		f.onUpload()
	}
	if err != nil {
		return err
	}

	batch := make([]models.TrackingEvent, len(events))
	copy(batch, events)

	f.mu.Lock()
	f.batches = append(f.batches, batch)
	f.mu.Unlock()
	return nil
}

func (f *fakeSink) setErr(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func (f *fakeSink) uploads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.batches)
}

func (f *fakeSink) lastBatch() []models.TrackingEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.batches) == 0 {
		return nil
	}
	return f.batches[len(f.batches)-1]
}

// captureQueue collects added events without delivering anything
type captureQueue struct {
	mu     sync.Mutex
	events []models.TrackingEvent
}

func (c *captureQueue) Add(e models.TrackingEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

func (c *captureQueue) SyncNow() {}
func (c *captureQueue) Stop()    {}

func (c *captureQueue) all() []models.TrackingEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.TrackingEvent, len(c.events))
	copy(out, c.events)
	return out
}

func (c *captureQueue) byType(et models.EventType) []models.TrackingEvent {
	var out []models.TrackingEvent
	for _, e := range c.all() {
		if e.EventType == et {
			out = append(out, e)
		}
	}
	return out
}

// fakeClock is an adjustable time source
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// fakeScheduler records lifecycle calls
type fakeScheduler struct {
	started int
	stopped int
}

func (f *fakeScheduler) Start() { f.started++ }
func (f *fakeScheduler) Stop()  { f.stopped++ }

func newTestTracker(t *testing.T, queue Queue) *Tracker {
	t.Helper()
	return NewTracker(queue, identity.New(newTestStore(t)))
}

func pageViewEvent(user, page string) models.TrackingEvent {
	return models.TrackingEvent{
		UserID:    user,
		Timestamp: "2026-03-14T09:00:00Z",
		EventType: models.EventPageView,
		Page:      page,
	}
}
