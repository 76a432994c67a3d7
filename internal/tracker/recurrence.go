package tracker

import "time"

// DueOn reports whether task is due on date. A task with no recurrence
// rule is due every day; otherwise it is due only on the listed weekdays.
func DueOn(task Task, date time.Time) bool {
	if task.RecurringDays == nil {
		return true
	}
	tag := WeekdayTag(date)
	for _, d := range task.RecurringDays {
		if d == tag {
			return true
		}
	}
	return false
}

// TasksDueOn filters tasks down to those due on date, preserving
// insertion order.
func TasksDueOn(tasks []Task, date time.Time) []Task {
	var due []Task
	for _, t := range tasks {
		if DueOn(t, date) {
			due = append(due, t)
		}
	}
	return due
}

// FindEntry returns the entry recording taskID's status on dateStr, if
// any. At most one such entry exists.
func FindEntry(entries []Entry, taskID int64, dateStr string) (Entry, bool) {
	for _, e := range entries {
		if e.TaskID == taskID && e.Date == dateStr {
			return e, true
		}
	}
	return Entry{}, false
}
