package pregnancy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/maternal/internal/storage"
	"github.com/example/maternal/pkg/models"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDueDateFromLMP(t *testing.T) {
	// Naegele's rule: LMP + 280 days
	assert.Equal(t, date("2026-10-07"), DueDateFromLMP(date("2025-12-31")))
	assert.Equal(t, date("2025-12-31"), LMPFromDueDate(date("2026-10-07")))
}

func TestWeeksFromLMP(t *testing.T) {
	lmp := date("2026-01-05")

	assert.Equal(t, WeekCount{Weeks: 0, Days: 0}, WeeksFromLMP(lmp, date("2026-01-05")))
	assert.Equal(t, WeekCount{Weeks: 1, Days: 3}, WeeksFromLMP(lmp, date("2026-01-15")))
	assert.Equal(t, WeekCount{Weeks: 12, Days: 0}, WeeksFromLMP(lmp, date("2026-03-30")))

	// A date before the LMP clamps to zero
	assert.Equal(t, WeekCount{Weeks: 0, Days: 0}, WeeksFromLMP(lmp, date("2025-12-01")))
}

func TestWeeksFromDueDate(t *testing.T) {
	due := date("2026-10-07")

	// 280 days before the due date is week zero
	assert.Equal(t, WeekCount{Weeks: 0, Days: 0}, WeeksFromDueDate(due, date("2025-12-31")))
	assert.Equal(t, WeekCount{Weeks: 20, Days: 0}, WeeksFromDueDate(due, date("2026-05-20")))
	// On the due date itself the pregnancy is exactly 40 weeks
	assert.Equal(t, WeekCount{Weeks: 40, Days: 0}, WeeksFromDueDate(due, date("2026-10-07")))
}

func TestTrimester(t *testing.T) {
	assert.Equal(t, 1, Trimester(0))
	assert.Equal(t, 1, Trimester(12))
	assert.Equal(t, 2, Trimester(13))
	assert.Equal(t, 2, Trimester(26))
	assert.Equal(t, 3, Trimester(27))
	assert.Equal(t, 3, Trimester(41))
}

func TestMilestone(t *testing.T) {
	title, _ := Milestone(0)
	assert.Equal(t, "著床完成", title, "before the first milestone the earliest entry is shown")

	title, desc := Milestone(13)
	assert.Equal(t, "第一孕期結束", title)
	assert.NotEmpty(t, desc)

	title, _ = Milestone(37)
	assert.Equal(t, "足月", title)

	title, _ = Milestone(42)
	assert.Equal(t, "預產期", title)
}

func TestCheckups(t *testing.T) {
	past, upcoming := Checkups(21)

	require.Len(t, past, 4)
	assert.Equal(t, "第 8 週：第一次產檢、超音波確認", past[0])
	assert.Equal(t, "第 20 週：高層次超音波", past[3])

	require.Len(t, upcoming, 3)
	assert.Equal(t, "第 24 週：妊娠糖尿病篩檢", upcoming[0])
	assert.Equal(t, "第 30 週：例行產檢", upcoming[2])

	past, upcoming = Checkups(40)
	assert.Len(t, past, len(checkupSchedule))
	assert.Empty(t, upcoming)
}

func TestFormatWeek(t *testing.T) {
	assert.Equal(t, "12 週", FormatWeek(WeekCount{Weeks: 12}))
	assert.Equal(t, "12 週 3 天", FormatWeek(WeekCount{Weeks: 12, Days: 3}))
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DATA_DIR", t.TempDir())

	store, err := storage.Connect()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewService(store)
}

func TestServiceSetInfoValidation(t *testing.T) {
	s := newTestService(t)

	assert.Error(t, s.SetInfo(models.PregnancyInfo{}), "at least one date is required")
	assert.Error(t, s.SetInfo(models.PregnancyInfo{DueDate: "07/10/2026"}))
	assert.NoError(t, s.SetInfo(models.PregnancyInfo{DueDate: "2026-10-07"}))
}

func TestServiceStatusFromLMP(t *testing.T) {
	s := newTestService(t)
	s.now = func() time.Time { return date("2026-03-30") }

	require.NoError(t, s.SetInfo(models.PregnancyInfo{LastPeriodDate: "2026-01-05"}))

	status, err := s.Status()
	require.NoError(t, err)
	assert.Equal(t, 12, status.CurrentWeek)
	assert.Equal(t, 0, status.CurrentDay)
	assert.Equal(t, 1, status.Trimester)
	assert.Equal(t, "2026-10-12", status.DueDate)
	assert.Equal(t, 196, status.DaysUntilDue)
	assert.Equal(t, "第一孕期結束", status.Milestone)
	assert.Equal(t, "12 週", status.FormattedWeek)
	assert.NotEmpty(t, status.NextCheckups)
}

func TestServiceStatusPrefersLMP(t *testing.T) {
	s := newTestService(t)
	s.now = func() time.Time { return date("2026-03-30") }

	// When both dates are present the LMP drives the computed due date
	require.NoError(t, s.SetInfo(models.PregnancyInfo{
		DueDate:        "2026-12-01",
		LastPeriodDate: "2026-01-05",
	}))

	status, err := s.Status()
	require.NoError(t, err)
	assert.Equal(t, "2026-10-12", status.DueDate)
}

func TestServiceStatusUnset(t *testing.T) {
	s := newTestService(t)
	_, err := s.Status()
	assert.Error(t, err)

	require.NoError(t, s.SetInfo(models.PregnancyInfo{DueDate: "2026-10-07"}))
	_, found := s.Info()
	assert.True(t, found)

	require.NoError(t, s.Clear())
	_, found = s.Info()
	assert.False(t, found)
}
