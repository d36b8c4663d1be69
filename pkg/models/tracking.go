package models

// EventType identifies the kind of a tracking event. The set is closed:
// the relay writes one spreadsheet row per event and keys its columns off
// this value.
type EventType string

const (
	// EventPageView records entering or leaving a page
	EventPageView EventType = "page_view"
	// EventReading records one visit to a knowledge section
	EventReading EventType = "reading"
	// EventQuestion records a question asked to the AI assistant
	EventQuestion EventType = "question"
	// EventProgress records a change of the overall learning progress
	EventProgress EventType = "progress"
)

// TrackingEvent is one observed user-interaction fact. Events are created by
// the instrumentation call sites with UserID and Timestamp already populated,
// and are immutable afterwards. Only the fields relevant to the event type
// are set; the rest stay empty and the relay writes them as blank cells.
type TrackingEvent struct {
	UserID             string    `json:"userId"`
	Timestamp          string    `json:"timestamp"` // ISO-8601, assigned at enqueue time
	EventType          EventType `json:"eventType"`
	Page               string    `json:"page,omitempty"`               // page_view
	SectionID          string    `json:"sectionId,omitempty"`          // reading
	SectionTitle       string    `json:"sectionTitle,omitempty"`       // reading
	Question           string    `json:"question,omitempty"`           // question
	Duration           int       `json:"duration,omitempty"`           // seconds, any type
	ScrollDepth        int       `json:"scrollDepth,omitempty"`        // 0-100, reading
	ProgressPercentage int       `json:"progressPercentage,omitempty"` // progress
	Metadata           string    `json:"metadata,omitempty"`           // JSON string
}

// LearningProgress is the derived progress snapshot. It is recomputed from
// the completed-section set on every read and never persisted, so the
// percentage cannot drift when the knowledge catalog changes between
// releases.
type LearningProgress struct {
	UserID             string   `json:"userId"`
	TotalSections      int      `json:"totalSections"`
	CompletedSections  []string `json:"completedSections"`
	ProgressPercentage int      `json:"progressPercentage"`
	LastUpdated        string   `json:"lastUpdated"`
}
