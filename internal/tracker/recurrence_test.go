package tracker

import (
	"testing"
	"time"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%s): %v", s, err)
	}
	return d
}

func TestDueOnNilRecurrenceMeansEveryDay(t *testing.T) {
	task := Task{ID: 1, Title: "Read"}
	day := mustDate(t, "2024-01-01")
	for i := 0; i < 14; i++ {
		if !DueOn(task, day.AddDate(0, 0, i)) {
			t.Errorf("task with nil recurrence not due on %s", FormatDate(day.AddDate(0, 0, i)))
		}
	}
}

func TestDueOnMatchesListedWeekdaysAcrossMonths(t *testing.T) {
	task := Task{ID: 1, RecurringDays: []string{"mon", "wed", "fri"}}
	listed := map[string]bool{"mon": true, "wed": true, "fri": true}

	day := mustDate(t, "2024-02-01")
	end := mustDate(t, "2024-04-30")
	for !day.After(end) {
		want := listed[WeekdayTag(day)]
		if got := DueOn(task, day); got != want {
			t.Errorf("DueOn(%s, %s) = %v, want %v", FormatDate(day), WeekdayTag(day), got, want)
		}
		day = day.AddDate(0, 0, 1)
	}
}

func TestTasksDueOnPreservesInsertionOrder(t *testing.T) {
	tasks := []Task{
		{ID: 3, RecurringDays: []string{"mon"}},
		{ID: 1},
		{ID: 2, RecurringDays: []string{"tue"}},
		{ID: 7, RecurringDays: []string{"mon", "tue"}},
	}
	monday := mustDate(t, "2024-03-04")

	due := TasksDueOn(tasks, monday)
	wantIDs := []int64{3, 1, 7}
	if len(due) != len(wantIDs) {
		t.Fatalf("got %d due tasks, want %d", len(due), len(wantIDs))
	}
	for i, id := range wantIDs {
		if due[i].ID != id {
			t.Errorf("due[%d].ID = %d, want %d", i, due[i].ID, id)
		}
	}
}

func TestFindEntry(t *testing.T) {
	entries := []Entry{
		{TaskID: 1, Date: "2024-03-03", Status: StatusComplete},
		{TaskID: 2, Date: "2024-03-04", Status: StatusExempt},
		{TaskID: 1, Date: "2024-03-04", Status: StatusIncomplete},
	}

	e, ok := FindEntry(entries, 1, "2024-03-04")
	if !ok {
		t.Fatal("entry not found")
	}
	if e.Status != StatusIncomplete {
		t.Errorf("status = %q, want incomplete", e.Status)
	}

	if _, ok := FindEntry(entries, 3, "2024-03-04"); ok {
		t.Error("found entry for missing task")
	}
	if _, ok := FindEntry(entries, 1, "2024-03-05"); ok {
		t.Error("found entry for missing date")
	}
}
