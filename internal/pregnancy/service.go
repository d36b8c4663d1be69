package pregnancy

import (
	"fmt"
	"log"
	"time"

	"github.com/example/maternal/internal/storage"
	"github.com/example/maternal/pkg/models"
)

const dateLayout = "2006-01-02"

// Service persists the pregnancy baseline and derives the current status
// from it. Only the user-entered dates are stored; week, trimester and
// schedule are always recomputed.
type Service struct {
	store *storage.Store
	now   func() time.Time
}

// NewService creates a pregnancy service over the given store
func NewService(store *storage.Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Info returns the stored pregnancy baseline, if any
func (s *Service) Info() (models.PregnancyInfo, bool) {
	var info models.PregnancyInfo
	found, err := s.store.Get(storage.KeyPregnancyInfo, &info)
	if err != nil {
		log.Printf("pregnancy: failed to load info: %v", err)
		return models.PregnancyInfo{}, false
	}
	return info, found
}

// SetInfo validates and stores the pregnancy baseline. At least one of the
// two dates must be present.
func (s *Service) SetInfo(info models.PregnancyInfo) error {
	if info.DueDate == "" && info.LastPeriodDate == "" {
		return fmt.Errorf("either due date or last period date is required")
	}
	for _, d := range []string{info.DueDate, info.LastPeriodDate} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, d); err != nil {
			return fmt.Errorf("invalid date %q: %w", d, err)
		}
	}
	return s.store.Set(storage.KeyPregnancyInfo, info)
}

// Clear removes the stored baseline
func (s *Service) Clear() error {
	return s.store.Delete(storage.KeyPregnancyInfo)
}

// Status derives the current pregnancy status from the stored baseline.
// The LMP date wins when both dates are present.
func (s *Service) Status() (models.PregnancyStatus, error) {
	info, found := s.Info()
	if !found {
		return models.PregnancyStatus{}, fmt.Errorf("pregnancy info is not set")
	}

	now := s.now()
	var wc WeekCount
	var due time.Time

	switch {
	case info.LastPeriodDate != "":
		lmp, err := time.Parse(dateLayout, info.LastPeriodDate)
		if err != nil {
			return models.PregnancyStatus{}, fmt.Errorf("invalid last period date: %w", err)
		}
		wc = WeeksFromLMP(lmp, now)
		due = DueDateFromLMP(lmp)
	default:
		parsed, err := time.Parse(dateLayout, info.DueDate)
		if err != nil {
			return models.PregnancyStatus{}, fmt.Errorf("invalid due date: %w", err)
		}
		wc = WeeksFromDueDate(parsed, now)
		due = parsed
	}

	title, description := Milestone(wc.Weeks)
	past, upcoming := Checkups(wc.Weeks)

	return models.PregnancyStatus{
		CurrentWeek:   wc.Weeks,
		CurrentDay:    wc.Days,
		Trimester:     Trimester(wc.Weeks),
		DueDate:       due.Format(dateLayout),
		DaysUntilDue:  DaysUntilDue(due, now),
		Milestone:     title,
		Description:   description,
		PastCheckups:  past,
		NextCheckups:  upcoming,
		FormattedWeek: FormatWeek(wc),
	}, nil
}
