package pregnancy

import (
	"fmt"
	"time"
)

// totalPregnancyDays is the full term by Naegele's rule: 40 weeks
const totalPregnancyDays = 280

// WeekCount is a pregnancy age expressed as completed weeks plus days
type WeekCount struct {
	Weeks int
	Days  int
}

// milestone describes what typically happens around a given week
type milestone struct {
	week        int
	title       string
	description string
}

// 以週數排序；查詢時取「已達到」的最近一個里程碑
var milestones = []milestone{
	{4, "著床完成", "受精卵已著床於子宮內膜"},
	{8, "胚胎成形", "主要器官開始發育，心臟開始跳動"},
	{12, "第一孕期結束", "流產風險大幅降低，可以開始告訴親友好消息"},
	{16, "感受胎動", "部分媽媽開始感受到胎動"},
	{20, "高層次超音波", "可進行詳細的胎兒結構檢查"},
	{24, "妊娠糖尿病篩檢", "建議進行妊娠糖尿病篩檢"},
	{28, "第三孕期開始", "寶寶快速成長，媽媽可能感到更疲累"},
	{32, "胎位檢查", "確認寶寶胎位，為生產做準備"},
	{36, "足月在即", "寶寶已接近足月，隨時可能生產"},
	{37, "足月", "寶寶已足月，可以安全出生"},
	{40, "預產期", "預產期到了！隨時準備迎接寶寶"},
}

type checkup struct {
	week int
	name string
}

var checkupSchedule = []checkup{
	{8, "第一次產檢、超音波確認"},
	{12, "唐氏症篩檢（第一孕期）"},
	{16, "唐氏症篩檢（第二孕期）、羊膜穿刺（如需要）"},
	{20, "高層次超音波"},
	{24, "妊娠糖尿病篩檢"},
	{28, "例行產檢"},
	{30, "例行產檢"},
	{32, "胎位檢查"},
	{34, "例行產檢、乙型鏈球菌篩檢"},
	{36, "每週產檢開始"},
	{38, "例行產檢"},
	{40, "預產期評估"},
}

// daysBetween counts whole calendar days from a to b
func daysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// WeeksFromLMP computes the pregnancy age at the given date from the last
// menstrual period
func WeeksFromLMP(lmp, at time.Time) WeekCount {
	total := daysBetween(lmp, at)
	if total < 0 {
		total = 0
	}
	return WeekCount{Weeks: total / 7, Days: total % 7}
}

// WeeksFromDueDate computes the pregnancy age at the given date from the
// due date
func WeeksFromDueDate(due, at time.Time) WeekCount {
	passed := totalPregnancyDays - daysBetween(at, due)
	if passed < 0 {
		passed = 0
	}
	return WeekCount{Weeks: passed / 7, Days: passed % 7}
}

// DueDateFromLMP applies Naegele's rule: LMP + 280 days
func DueDateFromLMP(lmp time.Time) time.Time {
	return lmp.AddDate(0, 0, totalPregnancyDays)
}

// LMPFromDueDate is the inverse of Naegele's rule
func LMPFromDueDate(due time.Time) time.Time {
	return due.AddDate(0, 0, -totalPregnancyDays)
}

// DaysUntilDue counts the days remaining until the due date; negative once
// the due date has passed
func DaysUntilDue(due, at time.Time) int {
	return daysBetween(at, due)
}

// Trimester buckets the pregnancy week into 1, 2 or 3
func Trimester(weeks int) int {
	if weeks < 13 {
		return 1
	}
	if weeks < 27 {
		return 2
	}
	return 3
}

// Milestone returns the most recent milestone reached by the given week
func Milestone(weeks int) (title, description string) {
	current := milestones[0]
	for _, m := range milestones {
		if weeks >= m.week {
			current = m
		}
	}
	return current.title, current.description
}

// Checkups splits the prenatal checkup schedule into the ones already due
// and the next three upcoming ones
func Checkups(weeks int) (past, upcoming []string) {
	for _, c := range checkupSchedule {
		entry := fmt.Sprintf("第 %d 週：%s", c.week, c.name)
		if c.week <= weeks {
			past = append(past, entry)
		} else if len(upcoming) < 3 {
			upcoming = append(upcoming, entry)
		}
	}
	return past, upcoming
}

// FormatWeek renders a pregnancy age like "12 週 3 天"
func FormatWeek(wc WeekCount) string {
	if wc.Days == 0 {
		return fmt.Sprintf("%d 週", wc.Weeks)
	}
	return fmt.Sprintf("%d 週 %d 天", wc.Weeks, wc.Days)
}
