package tracker

import (
	"math"
	"time"
)

// DayClass is the display classification of a calendar day.
type DayClass string

const (
	ClassUpcoming DayClass = "upcoming" // future date, regardless of stats
	ClassNeutral  DayClass = "neutral"  // past/present day with nothing due
	ClassComplete DayClass = "complete" // 100%
	ClassPartial  DayClass = "partial"  // >= 50%
	ClassPoor     DayClass = "poor"     // < 50%
)

// DaySummary holds the dashboard aggregate for a single day.
type DaySummary struct {
	Total      int // due tasks not exempted
	Completed  int
	Percentage int
}

// DayStat is one calendar cell of a month history.
type DayStat struct {
	Day        int // 1-based day of month
	Expected   int // structural due count, ignores entries
	Completed  int
	Exempt     int
	Percentage int
	Class      DayClass
}

// DayStats computes the dashboard summary for date: due tasks whose
// recorded status is exempt are excluded from both counts.
func DayStats(tasks []Task, entries []Entry, date time.Time) DaySummary {
	dateStr := FormatDate(date)
	var s DaySummary
	for _, t := range TasksDueOn(tasks, date) {
		var status Status
		if e, ok := FindEntry(entries, t.ID, dateStr); ok {
			status = e.Status
		}
		if status == StatusExempt {
			continue
		}
		s.Total++
		if status == StatusComplete {
			s.Completed++
		}
	}
	s.Percentage = percent(s.Completed, s.Total)
	return s
}

// MonthStats computes one DayStat per day of the month containing month,
// classifying against today at day granularity.
func MonthStats(tasks []Task, entries []Entry, month, today time.Time) []DayStat {
	year, m, _ := month.Date()
	first := time.Date(year, m, 1, 0, 0, 0, 0, month.Location())
	daysInMonth := first.AddDate(0, 1, -1).Day()
	todayStart := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())

	stats := make([]DayStat, 0, daysInMonth)
	for day := 1; day <= daysInMonth; day++ {
		current := time.Date(year, m, day, 0, 0, 0, 0, month.Location())
		dateStr := FormatDate(current)

		st := DayStat{Day: day, Expected: len(TasksDueOn(tasks, current))}
		for _, e := range entries {
			if e.Date != dateStr {
				continue
			}
			switch e.Status {
			case StatusComplete:
				st.Completed++
			case StatusExempt:
				st.Exempt++
			}
		}

		effectiveTotal := st.Expected - st.Exempt
		if effectiveTotal < 0 {
			effectiveTotal = 0
		}
		switch {
		case effectiveTotal > 0:
			st.Percentage = percent(st.Completed, effectiveTotal)
		case st.Expected > 0 && st.Exempt == st.Expected:
			// Every due task excused counts as a fully kept day.
			st.Percentage = 100
		}

		st.Class = classify(current, todayStart, st.Expected, st.Percentage)
		stats = append(stats, st)
	}
	return stats
}

func classify(day, today time.Time, expected, percentage int) DayClass {
	switch {
	case day.After(today):
		return ClassUpcoming
	case expected == 0:
		return ClassNeutral
	case percentage == 100:
		return ClassComplete
	case percentage >= 50:
		return ClassPartial
	default:
		return ClassPoor
	}
}

// percent rounds half-up; a zero denominator yields 0.
func percent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}
