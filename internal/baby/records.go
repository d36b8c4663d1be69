package baby

import (
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/example/maternal/internal/storage"
	"github.com/example/maternal/pkg/models"
)

// Service keeps the baby care records. Each record kind lives whole under
// its own store key; lists are returned newest first.
type Service struct {
	store *storage.Store
	mu    sync.Mutex
}

// NewService creates a baby record service over the given store
func NewService(store *storage.Store) *Service {
	return &Service{store: store}
}

// GrowthRecords returns all growth measurements, newest date first
func (s *Service) GrowthRecords() []models.BabyRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []models.BabyRecord
	s.load(storage.KeyBabyRecords, &records)
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date > records[j].Date
	})
	return records
}

// SaveGrowthRecord inserts or updates one growth measurement
func (s *Service) SaveGrowthRecord(record models.BabyRecord) (models.BabyRecord, error) {
	if record.Date == "" {
		return models.BabyRecord{}, fmt.Errorf("record date is required")
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var records []models.BabyRecord
	s.load(storage.KeyBabyRecords, &records)
	records = upsert(records, record, func(r models.BabyRecord) string { return r.ID })
	return record, s.store.Set(storage.KeyBabyRecords, records)
}

// DeleteGrowthRecord removes one growth measurement by id
func (s *Service) DeleteGrowthRecord(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []models.BabyRecord
	s.load(storage.KeyBabyRecords, &records)
	records = remove(records, id, func(r models.BabyRecord) string { return r.ID })
	return s.store.Set(storage.KeyBabyRecords, records)
}

// FeedingRecords returns all feeding entries, newest first
func (s *Service) FeedingRecords() []models.FeedingRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []models.FeedingRecord
	s.load(storage.KeyFeedingRecords, &records)
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date > records[j].Date
		}
		return records[i].Time > records[j].Time
	})
	return records
}

// SaveFeedingRecord inserts or updates one feeding entry
func (s *Service) SaveFeedingRecord(record models.FeedingRecord) (models.FeedingRecord, error) {
	if record.Date == "" || record.Time == "" {
		return models.FeedingRecord{}, fmt.Errorf("record date and time are required")
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var records []models.FeedingRecord
	s.load(storage.KeyFeedingRecords, &records)
	records = upsert(records, record, func(r models.FeedingRecord) string { return r.ID })
	return record, s.store.Set(storage.KeyFeedingRecords, records)
}

// DeleteFeedingRecord removes one feeding entry by id
func (s *Service) DeleteFeedingRecord(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []models.FeedingRecord
	s.load(storage.KeyFeedingRecords, &records)
	records = remove(records, id, func(r models.FeedingRecord) string { return r.ID })
	return s.store.Set(storage.KeyFeedingRecords, records)
}

// DiaperRecords returns all diaper entries, newest first
func (s *Service) DiaperRecords() []models.DiaperRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []models.DiaperRecord
	s.load(storage.KeyDiaperRecords, &records)
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date > records[j].Date
		}
		return records[i].Time > records[j].Time
	})
	return records
}

// SaveDiaperRecord inserts or updates one diaper entry
func (s *Service) SaveDiaperRecord(record models.DiaperRecord) (models.DiaperRecord, error) {
	if record.Date == "" || record.Time == "" {
		return models.DiaperRecord{}, fmt.Errorf("record date and time are required")
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var records []models.DiaperRecord
	s.load(storage.KeyDiaperRecords, &records)
	records = upsert(records, record, func(r models.DiaperRecord) string { return r.ID })
	return record, s.store.Set(storage.KeyDiaperRecords, records)
}

// DeleteDiaperRecord removes one diaper entry by id
func (s *Service) DeleteDiaperRecord(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []models.DiaperRecord
	s.load(storage.KeyDiaperRecords, &records)
	records = remove(records, id, func(r models.DiaperRecord) string { return r.ID })
	return s.store.Set(storage.KeyDiaperRecords, records)
}

// VaccineRecords returns all vaccine entries ordered by scheduled date
func (s *Service) VaccineRecords() []models.VaccineRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []models.VaccineRecord
	s.load(storage.KeyVaccineRecords, &records)
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].ScheduledDate < records[j].ScheduledDate
	})
	return records
}

// SaveVaccineRecord inserts or updates one vaccine entry
func (s *Service) SaveVaccineRecord(record models.VaccineRecord) (models.VaccineRecord, error) {
	if record.Name == "" || record.ScheduledDate == "" {
		return models.VaccineRecord{}, fmt.Errorf("vaccine name and scheduled date are required")
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var records []models.VaccineRecord
	s.load(storage.KeyVaccineRecords, &records)
	records = upsert(records, record, func(r models.VaccineRecord) string { return r.ID })
	return record, s.store.Set(storage.KeyVaccineRecords, records)
}

// DeleteVaccineRecord removes one vaccine entry by id
func (s *Service) DeleteVaccineRecord(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []models.VaccineRecord
	s.load(storage.KeyVaccineRecords, &records)
	records = remove(records, id, func(r models.VaccineRecord) string { return r.ID })
	return s.store.Set(storage.KeyVaccineRecords, records)
}

// load reads one record list; a broken store degrades to an empty list
func (s *Service) load(key string, out interface{}) {
	if _, err := s.store.Get(key, out); err != nil {
		log.Printf("baby: failed to load %s: %v", key, err)
	}
}

func upsert[T any](records []T, record T, id func(T) string) []T {
	for i, r := range records {
		if id(r) == id(record) {
			records[i] = record
			return records
		}
	}
	return append(records, record)
}

func remove[T any](records []T, target string, id func(T) string) []T {
	kept := records[:0]
	for _, r := range records {
		if id(r) != target {
			kept = append(kept, r)
		}
	}
	return kept
}
