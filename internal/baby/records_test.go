package baby

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/maternal/internal/storage"
	"github.com/example/maternal/pkg/models"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DATA_DIR", t.TempDir())

	store, err := storage.Connect()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewService(store)
}

func TestGrowthRecordLifecycle(t *testing.T) {
	s := newTestService(t)

	saved, err := s.SaveGrowthRecord(models.BabyRecord{Date: "2026-08-01", Weight: 3.4, Height: 51})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID, "an id is assigned on insert")

	_, err = s.SaveGrowthRecord(models.BabyRecord{Date: "2026-08-15", Weight: 4.1})
	require.NoError(t, err)

	records := s.GrowthRecords()
	require.Len(t, records, 2)
	assert.Equal(t, "2026-08-15", records[0].Date, "newest first")

	// Updating keeps the id and does not add a row
	saved.Weight = 3.5
	updated, err := s.SaveGrowthRecord(saved)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, updated.ID)

	records = s.GrowthRecords()
	require.Len(t, records, 2)
	assert.Equal(t, 3.5, records[1].Weight)

	require.NoError(t, s.DeleteGrowthRecord(saved.ID))
	assert.Len(t, s.GrowthRecords(), 1)
}

func TestGrowthRecordRequiresDate(t *testing.T) {
	s := newTestService(t)
	_, err := s.SaveGrowthRecord(models.BabyRecord{Weight: 3.4})
	assert.Error(t, err)
}

func TestFeedingRecordsOrderedByDateThenTime(t *testing.T) {
	s := newTestService(t)

	for _, r := range []models.FeedingRecord{
		{Date: "2026-08-20", Time: "08:00", Type: "breastfeed", Duration: 20, Side: "left"},
		{Date: "2026-08-21", Time: "02:30", Type: "formula", Amount: 90},
		{Date: "2026-08-20", Time: "14:15", Type: "breastfeed", Duration: 15, Side: "right"},
	} {
		_, err := s.SaveFeedingRecord(r)
		require.NoError(t, err)
	}

	records := s.FeedingRecords()
	require.Len(t, records, 3)
	assert.Equal(t, "2026-08-21", records[0].Date)
	assert.Equal(t, "14:15", records[1].Time)
	assert.Equal(t, "08:00", records[2].Time)
}

func TestDiaperRecordLifecycle(t *testing.T) {
	s := newTestService(t)

	saved, err := s.SaveDiaperRecord(models.DiaperRecord{Date: "2026-08-20", Time: "09:00", Type: "wet"})
	require.NoError(t, err)

	_, err = s.SaveDiaperRecord(models.DiaperRecord{Date: "2026-08-20", Time: "12:00", Type: "dirty"})
	require.NoError(t, err)

	records := s.DiaperRecords()
	require.Len(t, records, 2)
	assert.Equal(t, "12:00", records[0].Time)

	require.NoError(t, s.DeleteDiaperRecord(saved.ID))
	records = s.DiaperRecords()
	require.Len(t, records, 1)
	assert.Equal(t, "dirty", records[0].Type)
}

func TestVaccineRecordsOrderedBySchedule(t *testing.T) {
	s := newTestService(t)

	_, err := s.SaveVaccineRecord(models.VaccineRecord{Name: "B型肝炎疫苗第二劑", ScheduledDate: "2026-09-20"})
	require.NoError(t, err)
	first, err := s.SaveVaccineRecord(models.VaccineRecord{Name: "B型肝炎疫苗第一劑", ScheduledDate: "2026-08-21"})
	require.NoError(t, err)

	records := s.VaccineRecords()
	require.Len(t, records, 2)
	assert.Equal(t, "B型肝炎疫苗第一劑", records[0].Name, "schedule order, earliest first")

	first.CompletedDate = "2026-08-21"
	_, err = s.SaveVaccineRecord(first)
	require.NoError(t, err)

	records = s.VaccineRecords()
	assert.Equal(t, "2026-08-21", records[0].CompletedDate)
}

func TestRecordsSurviveRestart(t *testing.T) {
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DATA_DIR", t.TempDir())

	store, err := storage.Connect()
	require.NoError(t, err)

	s := NewService(store)
	_, err = s.SaveFeedingRecord(models.FeedingRecord{Date: "2026-08-20", Time: "08:00", Type: "formula", Amount: 60})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = storage.Connect()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	records := NewService(store).FeedingRecords()
	require.Len(t, records, 1)
	assert.Equal(t, 60, records[0].Amount)
}
