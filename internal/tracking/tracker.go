package tracking

import (
	"encoding/json"
	"log"
	"time"

	"github.com/example/maternal/internal/identity"
	"github.com/example/maternal/pkg/models"
)

// Tracker is the front door of the analytics subsystem. It stamps events
// with the anonymous identity and an ISO-8601 timestamp and hands them to
// the queue. Tracking never fails loudly: whatever goes wrong stays behind
// this boundary.
type Tracker struct {
	queue Queue
	ident *identity.Provider
	now   func() time.Time
}

// NewTracker creates a tracker over the given queue and identity provider
func NewTracker(queue Queue, ident *identity.Provider) *Tracker {
	return &Tracker{
		queue: queue,
		ident: ident,
		now:   time.Now,
	}
}

// UserID returns the anonymous identifier events are stamped with
func (t *Tracker) UserID() string {
	return t.ident.UserID()
}

// newEvent builds the common envelope of every event
func (t *Tracker) newEvent(eventType models.EventType) models.TrackingEvent {
	return models.TrackingEvent{
		UserID:    t.ident.UserID(),
		Timestamp: t.now().UTC().Format(time.RFC3339),
		EventType: eventType,
	}
}

// TrackPageView records entering or leaving a page. A zero duration means
// the visit just started.
func (t *Tracker) TrackPageView(page string, duration int) {
	e := t.newEvent(models.EventPageView)
	e.Page = page
	e.Duration = duration
	t.queue.Add(e)
}

// TrackReading records one finished visit to a knowledge section
func (t *Tracker) TrackReading(sectionID, sectionTitle string, duration, scrollDepth int) {
	e := t.newEvent(models.EventReading)
	e.SectionID = sectionID
	e.SectionTitle = sectionTitle
	e.Duration = duration
	e.ScrollDepth = scrollDepth
	t.queue.Add(e)
}

// TrackQuestion records a question asked to the AI assistant. The context
// (the section the user was reading, if any) goes into the metadata column.
func (t *Tracker) TrackQuestion(question, context string) {
	e := t.newEvent(models.EventQuestion)
	e.Question = question
	if context != "" {
		e.Metadata = encodeMetadata(map[string]string{"context": context})
	}
	t.queue.Add(e)
}

// TrackProgress records a change of the overall learning progress
func (t *Tracker) TrackProgress(percentage int, metadata interface{}) {
	e := t.newEvent(models.EventProgress)
	e.ProgressPercentage = percentage
	if metadata != nil {
		e.Metadata = encodeMetadata(metadata)
	}
	t.queue.Add(e)
}

// SyncNow forces an immediate flush of the buffered events
func (t *Tracker) SyncNow() {
	t.queue.SyncNow()
}

func encodeMetadata(v interface{}) string {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Printf("tracking: failed to encode event metadata: %v", err)
		return ""
	}
	return string(raw)
}
