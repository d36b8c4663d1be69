package tracking

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/example/maternal/internal/storage"
	"github.com/example/maternal/pkg/models"
)

// Default tuning of the event queue
const (
	// MaxQueueSize is the number of buffered events that forces a flush
	MaxQueueSize = 10
	// SyncInterval is the period of the automatic flush
	SyncInterval = 30 * time.Second
	// MaxRetries is the number of consecutive failures after which the
	// queue stops escalating (data stays buffered for a later flush)
	MaxRetries = 3
)

// Sink delivers a batch of tracking events to the remote spreadsheet relay
type Sink interface {
	Upload(ctx context.Context, events []models.TrackingEvent) error
}

// Queue buffers tracking events for batched delivery. Call sites hold this
// interface so a no-op implementation can stand in when tracking is not
// configured.
type Queue interface {
	// Add appends an event; the event must already carry its user id and
	// timestamp
	Add(event models.TrackingEvent)
	// SyncNow attempts to deliver the buffered events as one batch.
	// Failures are handled internally and never surface to the caller.
	SyncNow()
	// Stop cancels the periodic flush
	Stop()
}

// EventQueue is the real queue. Events are buffered in memory and mirrored
// to the persistent store on every mutation, so undelivered events survive a
// restart; the snapshot is reconciled with memory once, at construction.
// Delivery failures leave the queue intact — the next flush naturally
// retries the same batch plus anything added meanwhile.
type EventQueue struct {
	store *storage.Store
	sink  Sink
	sched flushScheduler

	mu         sync.Mutex
	events     []models.TrackingEvent
	retryCount int
	inFlight   bool
}

// NewEventQueue loads any persisted events and starts the periodic flush
func NewEventQueue(store *storage.Store, sink Sink) *EventQueue {
	q := newEventQueue(store, sink)
	q.sched = newAutoSync(SyncInterval, q.SyncNow)
	q.sched.Start()
	return q
}

// newEventQueue builds a queue without the periodic flush; tests drive
// flushes explicitly
func newEventQueue(store *storage.Store, sink Sink) *EventQueue {
	q := &EventQueue{store: store, sink: sink}
	q.loadSnapshot()
	return q
}

// Add appends the event and persists the new snapshot. Reaching the maximum
// size triggers a flush attempt that the caller does not wait for.
func (q *EventQueue) Add(event models.TrackingEvent) {
	q.mu.Lock()
	q.events = append(q.events, event)
	q.persistLocked()
	full := len(q.events) >= MaxQueueSize
	q.mu.Unlock()

	if full {
		go q.SyncNow()
	}
}

// SyncNow delivers the current buffer as one ordered batch. It is a no-op
// when the buffer is empty or another flush is already in flight. On success
// the delivered events are dropped and the retry counter resets; on failure
// the buffer is left untouched and the counter increments.
func (q *EventQueue) SyncNow() {
	q.mu.Lock()
	if q.inFlight || len(q.events) == 0 {
		q.mu.Unlock()
		return
	}
	q.inFlight = true
	batch := make([]models.TrackingEvent, len(q.events))
	copy(batch, q.events)
	q.mu.Unlock()

	err := q.sink.Upload(context.Background(), batch)

	q.mu.Lock()
	defer q.mu.Unlock()
	q.inFlight = false

	if err != nil {
		q.retryCount++
		if q.retryCount >= MaxRetries {
			log.Printf("tracking: sync failed %d times in a row, %d events stay buffered locally: %v",
				q.retryCount, len(q.events), err)
		} else {
			log.Printf("tracking: sync failed, will retry on next flush: %v", err)
		}
		return
	}

	// Drop exactly the delivered events; anything appended while the upload
	// was in flight stays queued for the next batch
	q.events = append([]models.TrackingEvent(nil), q.events[len(batch):]...)
	q.retryCount = 0
	q.persistLocked()
}

// Stop cancels the periodic flush. An in-flight delivery is allowed to
// finish on its own.
func (q *EventQueue) Stop() {
	if q.sched != nil {
		q.sched.Stop()
	}
}

// Pending reports the number of buffered events
func (q *EventQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// loadSnapshot reconciles the in-memory buffer with the persisted one.
// A read failure degrades to an empty buffer instead of failing startup.
func (q *EventQueue) loadSnapshot() {
	var saved []models.TrackingEvent
	found, err := q.store.Get(storage.KeyTrackingQueue, &saved)
	if err != nil {
		log.Printf("tracking: failed to load queued events: %v", err)
		return
	}
	if found {
		q.events = saved
	}
}

// persistLocked mirrors the buffer to the store; callers hold q.mu.
// A write failure is logged and the queue degrades to memory-only.
func (q *EventQueue) persistLocked() {
	if err := q.store.Set(storage.KeyTrackingQueue, q.events); err != nil {
		log.Printf("tracking: failed to persist queued events: %v", err)
	}
}

// NopQueue discards everything. It stands in for the real queue when no
// relay URL is configured, so shared code can track unconditionally.
type NopQueue struct{}

// Add discards the event
func (NopQueue) Add(models.TrackingEvent) {}

// SyncNow does nothing
func (NopQueue) SyncNow() {}

// Stop does nothing
func (NopQueue) Stop() {}
