package tracking

import (
	"log"
	"sync"
	"time"

	"github.com/example/maternal/internal/storage"
	"github.com/example/maternal/pkg/models"
)

// Aggregator tracks which knowledge sections the user has completed and
// derives the overall learning progress. The completed set only grows under
// normal operation; the percentage is recomputed from it on every read and
// never persisted.
type Aggregator struct {
	store   *storage.Store
	tracker *Tracker
	// allSections is the fixed catalog of section and subsection ids; the
	// knowledge corpus owns it and the aggregator only reads its size
	allSections []string
	now         func() time.Time

	mu        sync.Mutex
	completed []string
}

// NewAggregator loads the persisted completed-section set and returns an
// aggregator deriving progress against the given section catalog.
func NewAggregator(store *storage.Store, tracker *Tracker, allSections []string) *Aggregator {
	a := &Aggregator{
		store:       store,
		tracker:     tracker,
		allSections: allSections,
		now:         time.Now,
	}

	var saved []string
	found, err := store.Get(storage.KeyCompletedSections, &saved)
	if err != nil {
		log.Printf("progress: failed to load completed sections: %v", err)
	} else if found {
		a.completed = saved
	}
	return a
}

// MarkSectionCompleted adds the section to the completed set. It is
// idempotent: marking an already-completed section changes nothing and
// emits no event. A new completion persists the set and emits a progress
// event with the fresh percentage.
func (a *Aggregator) MarkSectionCompleted(sectionID string) {
	a.mu.Lock()
	if a.containsLocked(sectionID) {
		a.mu.Unlock()
		return
	}
	a.completed = append(a.completed, sectionID)
	a.persistLocked()
	progress := a.progressLocked()
	a.mu.Unlock()

	a.tracker.TrackProgress(progress.ProgressPercentage, map[string]int{
		"completedCount": len(progress.CompletedSections),
		"totalCount":     progress.TotalSections,
	})
}

// IsSectionCompleted reports whether the section has been completed
func (a *Aggregator) IsSectionCompleted(sectionID string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.containsLocked(sectionID)
}

// LearningProgress recomputes and returns the current progress snapshot
func (a *Aggregator) LearningProgress() models.LearningProgress {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.progressLocked()
}

// Reset clears the completed set entirely. Meant for tests and debugging,
// not exposed in the normal flow.
func (a *Aggregator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.completed = nil
	if err := a.store.Delete(storage.KeyCompletedSections); err != nil {
		log.Printf("progress: failed to reset completed sections: %v", err)
	}
}

func (a *Aggregator) containsLocked(sectionID string) bool {
	for _, id := range a.completed {
		if id == sectionID {
			return true
		}
	}
	return false
}

func (a *Aggregator) progressLocked() models.LearningProgress {
	percentage := 0
	if len(a.allSections) > 0 {
		percentage = len(a.completed) * 100 / len(a.allSections)
	}
	completed := make([]string, len(a.completed))
	copy(completed, a.completed)

	return models.LearningProgress{
		UserID:             a.tracker.UserID(),
		TotalSections:      len(a.allSections),
		CompletedSections:  completed,
		ProgressPercentage: percentage,
		LastUpdated:        a.now().UTC().Format(time.RFC3339),
	}
}

func (a *Aggregator) persistLocked() {
	if err := a.store.Set(storage.KeyCompletedSections, a.completed); err != nil {
		log.Printf("progress: failed to persist completed sections: %v", err)
	}
}
