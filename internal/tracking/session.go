package tracking

import (
	"sync"
	"time"
)

// DefaultEstimatedReadTime is assumed when content metadata carries no
// estimate, in minutes
const DefaultEstimatedReadTime = 5

// completionScrollDepth is the minimum furthest scroll depth counting as
// having read to the end
const completionScrollDepth = 80

// ScrollDepth converts a scroll offset into a 0-100 percentage of vertical
// progress through the page. When the whole page fits the viewport there is
// nothing left to scroll, which counts as 100.
func ScrollDepth(scrollTop, documentHeight, viewportHeight int) int {
	scrollable := documentHeight - viewportHeight
	if scrollable <= 0 {
		return 100
	}
	depth := scrollTop * 100 / scrollable
	if depth < 0 {
		return 0
	}
	if depth > 100 {
		return 100
	}
	return depth
}

// IsCompletedReading is the completion rule for a knowledge section: the
// visit must have lasted at least half the estimated read time AND reached
// at least 80% scroll depth. Fast-scrolling without dwelling, or dwelling
// near the top, both fail.
func IsCompletedReading(durationSeconds, maxScrollDepth, estimatedReadTimeMinutes int) bool {
	if estimatedReadTimeMinutes <= 0 {
		estimatedReadTimeMinutes = DefaultEstimatedReadTime
	}
	return durationSeconds >= estimatedReadTimeMinutes*30 && maxScrollDepth >= completionScrollDepth
}

// ReadingSession observes one visit to a knowledge section. It keeps the
// running maximum of the observed scroll depth — what matters for "did they
// read it" is the furthest point reached, not where they happened to stop.
// Ending the session emits the reading event and applies the completion
// rule.
type ReadingSession struct {
	sectionID         string
	sectionTitle      string
	estimatedReadTime int

	tracker  *Tracker
	progress *Aggregator
	now      func() time.Time

	mu       sync.Mutex
	started  time.Time
	maxDepth int
	ended    bool
}

// ReadingResult summarizes an ended reading session
type ReadingResult struct {
	SectionID   string `json:"sectionId"`
	Duration    int    `json:"duration"`
	ScrollDepth int    `json:"scrollDepth"`
	Completed   bool   `json:"completed"`
}

// NewReadingSession starts observing a section visit. An estimate of 0
// falls back to the default read time.
func NewReadingSession(tracker *Tracker, progress *Aggregator, sectionID, sectionTitle string, estimatedReadTime int) *ReadingSession {
	if estimatedReadTime <= 0 {
		estimatedReadTime = DefaultEstimatedReadTime
	}
	s := &ReadingSession{
		sectionID:         sectionID,
		sectionTitle:      sectionTitle,
		estimatedReadTime: estimatedReadTime,
		tracker:           tracker,
		progress:          progress,
		now:               tracker.now,
	}
	s.started = s.now()
	return s
}

// ObserveScroll folds a scroll position into the session and returns the
// depth it translated to. Callers should observe once right after the
// session starts so even a very short visit has a defined depth.
func (s *ReadingSession) ObserveScroll(scrollTop, documentHeight, viewportHeight int) int {
	depth := ScrollDepth(scrollTop, documentHeight, viewportHeight)

	s.mu.Lock()
	if depth > s.maxDepth {
		s.maxDepth = depth
	}
	s.mu.Unlock()
	return depth
}

// End closes the visit: it emits the reading event carrying the whole-second
// duration and the maximum observed depth, then marks the section completed
// if the completion rule holds. Ending twice has no further effect.
func (s *ReadingSession) End() ReadingResult {
	s.mu.Lock()
	if s.ended {
		defer s.mu.Unlock()
		return ReadingResult{SectionID: s.sectionID, ScrollDepth: s.maxDepth}
	}
	s.ended = true
	duration := int(s.now().Sub(s.started).Seconds())
	maxDepth := s.maxDepth
	s.mu.Unlock()

	s.tracker.TrackReading(s.sectionID, s.sectionTitle, duration, maxDepth)

	completed := IsCompletedReading(duration, maxDepth, s.estimatedReadTime)
	if completed {
		s.progress.MarkSectionCompleted(s.sectionID)
	}

	return ReadingResult{
		SectionID:   s.sectionID,
		Duration:    duration,
		ScrollDepth: maxDepth,
		Completed:   completed,
	}
}

// PageVisit observes a generic page view. It emits a page_view event when
// the visit starts and another one with the elapsed duration when it ends;
// it never touches the progress aggregator.
type PageVisit struct {
	page    string
	tracker *Tracker
	now     func() time.Time

	mu      sync.Mutex
	started time.Time
	ended   bool
}

// NewPageVisit records entering the page and starts timing the visit
func NewPageVisit(tracker *Tracker, page string) *PageVisit {
	v := &PageVisit{
		page:    page,
		tracker: tracker,
		now:     tracker.now,
	}
	v.started = v.now()
	tracker.TrackPageView(page, 0)
	return v
}

// End records leaving the page and returns the dwell time in whole seconds
func (v *PageVisit) End() int {
	v.mu.Lock()
	if v.ended {
		v.mu.Unlock()
		return 0
	}
	v.ended = true
	duration := int(v.now().Sub(v.started).Seconds())
	v.mu.Unlock()

	v.tracker.TrackPageView(v.page, duration)
	return duration
}
