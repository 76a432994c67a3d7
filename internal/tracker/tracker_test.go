package tracker_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/Asikur22/daily-tasks-tracker/internal/storage"
	"github.com/Asikur22/daily-tasks-tracker/internal/tracker"
)

// testApp opens a fresh temp database and loads an App over it. The
// first load seeds the demo dataset.
func testApp(t *testing.T) (*tracker.App, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tracker.db")
	store, err := storage.Open(path)
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	app, err := tracker.New(store)
	if err != nil {
		t.Fatalf("tracker.New: %v", err)
	}
	return app, path
}

// reload opens the database again and returns the persisted state.
func reload(t *testing.T, path string) tracker.State {
	t.Helper()
	store, err := storage.Open(path)
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	defer store.Close()
	state, err := store.Load()
	if err != nil {
		t.Fatalf("store.Load: %v", err)
	}
	return state
}

func countEntries(entries []tracker.Entry, taskID int64, date string) int {
	n := 0
	for _, e := range entries {
		if e.TaskID == taskID && e.Date == date {
			n++
		}
	}
	return n
}

func TestNewSeedsEmptyDatabase(t *testing.T) {
	app, path := testApp(t)

	if len(app.Categories) != 3 {
		t.Errorf("seeded categories = %d, want 3", len(app.Categories))
	}
	if len(app.Tasks) != 3 {
		t.Errorf("seeded tasks = %d, want 3", len(app.Tasks))
	}
	if len(app.Entries) != 0 {
		t.Errorf("seeded entries = %d, want 0", len(app.Entries))
	}
	if app.Tasks[0].Title != "Morning Standup" {
		t.Errorf("first task = %q, want Morning Standup", app.Tasks[0].Title)
	}
	if app.Tasks[2].RecurringDays != nil {
		t.Errorf("daily task has recurrence %v, want nil", app.Tasks[2].RecurringDays)
	}

	// Seed is persisted immediately: a reload sees the same dataset.
	state := reload(t, path)
	if len(state.Tasks) != 3 || len(state.Categories) != 3 {
		t.Errorf("persisted seed = %d tasks, %d categories; want 3 and 3",
			len(state.Tasks), len(state.Categories))
	}
}

func TestToggleCycle(t *testing.T) {
	app, _ := testApp(t)
	const date = "2024-03-04"
	id := app.Tasks[0].ID

	if err := app.ToggleStatus(id, date); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if got := app.StatusOn(id, date); got != tracker.StatusComplete {
		t.Errorf("after first toggle status = %q, want complete", got)
	}

	if err := app.ToggleStatus(id, date); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if got := app.StatusOn(id, date); got != "" {
		t.Errorf("after second toggle status = %q, want unset", got)
	}
	if n := countEntries(app.Entries, id, date); n != 0 {
		t.Errorf("unset pair has %d entries, want 0 (never materialized)", n)
	}
}

func TestToggleInvariantUnderSequences(t *testing.T) {
	app, _ := testApp(t)
	const date = "2024-03-04"
	id := app.Tasks[0].ID

	for i := 0; i < 7; i++ {
		if err := app.ToggleStatus(id, date); err != nil {
			t.Fatalf("toggle %d: %v", i, err)
		}
		if n := countEntries(app.Entries, id, date); n > 1 {
			t.Fatalf("after %d toggles: %d entries for pair, want at most 1", i+1, n)
		}
	}
	// Odd number of toggles from unset lands on complete.
	if got := app.StatusOn(id, date); got != tracker.StatusComplete {
		t.Errorf("after 7 toggles status = %q, want complete", got)
	}
}

func TestToggleFromExemptGoesToComplete(t *testing.T) {
	app, _ := testApp(t)
	const date = "2024-03-04"
	id := app.Tasks[1].ID

	if err := app.SetStatus(id, date, tracker.StatusExempt); err != nil {
		t.Fatalf("set exempt: %v", err)
	}
	if err := app.ToggleStatus(id, date); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if got := app.StatusOn(id, date); got != tracker.StatusComplete {
		t.Errorf("toggling an exempt task gives %q, want complete", got)
	}
	if n := countEntries(app.Entries, id, date); n != 1 {
		t.Errorf("entries for pair = %d, want 1", n)
	}
}

func TestSetStatusOverwritesInsteadOfDuplicating(t *testing.T) {
	app, _ := testApp(t)
	const date = "2024-03-04"
	id := app.Tasks[0].ID

	for _, s := range []tracker.Status{tracker.StatusComplete, tracker.StatusIncomplete, tracker.StatusExempt} {
		if err := app.SetStatus(id, date, s); err != nil {
			t.Fatalf("set %s: %v", s, err)
		}
		if n := countEntries(app.Entries, id, date); n != 1 {
			t.Fatalf("after set %s: %d entries, want 1", s, n)
		}
	}
	if got := app.StatusOn(id, date); got != tracker.StatusExempt {
		t.Errorf("final status = %q, want exempt", got)
	}
}

func TestClearStatusIsIdempotent(t *testing.T) {
	app, _ := testApp(t)
	id := app.Tasks[0].ID

	if err := app.ClearStatus(id, "2024-03-04"); err != nil {
		t.Errorf("clearing an unset pair: %v", err)
	}
}

func TestCreateTaskAssignsFreshIDs(t *testing.T) {
	app, _ := testApp(t)
	seen := map[int64]bool{}
	for _, existing := range app.Tasks {
		seen[existing.ID] = true
	}

	for i := 0; i < 3; i++ {
		created, err := app.CreateTask(tracker.TaskFields{Title: "New", CategoryID: app.Categories[0].ID})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if seen[created.ID] {
			t.Errorf("id %d reused", created.ID)
		}
		seen[created.ID] = true
	}
}

func TestUpdateTaskMissingIDIsNoOp(t *testing.T) {
	app, path := testApp(t)
	before := len(app.Tasks)

	if err := app.UpdateTask(9999, tracker.TaskFields{Title: "Ghost"}); err != nil {
		t.Errorf("update missing id: %v, want nil", err)
	}
	if len(app.Tasks) != before {
		t.Errorf("task count changed on missing-id update")
	}
	for _, task := range reload(t, path).Tasks {
		if task.Title == "Ghost" {
			t.Error("missing-id update was persisted")
		}
	}
}

func TestDeleteTaskLeavesOrphanEntries(t *testing.T) {
	app, _ := testApp(t)
	const date = "2024-03-04"
	id := app.Tasks[0].ID

	if err := app.SetStatus(id, date, tracker.StatusComplete); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := app.DeleteTask(id); err != nil {
		t.Fatalf("delete: %v", err)
	}

	for _, task := range app.Tasks {
		if task.ID == id {
			t.Fatal("task still present after delete")
		}
	}
	if n := countEntries(app.Entries, id, date); n != 1 {
		t.Errorf("orphan entries = %d, want 1 (no cascade)", n)
	}
}

func TestDeleteLastCategoryRefused(t *testing.T) {
	app, _ := testApp(t)

	// Delete down to one category.
	for len(app.Categories) > 1 {
		if err := app.DeleteCategory(app.Categories[0].ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
	}
	last := app.Categories[0]

	err := app.DeleteCategory(last.ID)
	if !errors.Is(err, tracker.ErrLastCategory) {
		t.Fatalf("deleting last category: %v, want ErrLastCategory", err)
	}
	if len(app.Categories) != 1 || app.Categories[0].ID != last.ID {
		t.Error("category collection changed by refused delete")
	}
}

func TestCategoryForFallsBackToUnknown(t *testing.T) {
	app, _ := testApp(t)

	task := app.Tasks[0]
	if err := app.DeleteCategory(task.CategoryID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	got := app.CategoryFor(task)
	if got.Name != "Unknown" || got.Color != "#ccc" {
		t.Errorf("fallback category = %+v, want Unknown/#ccc", got)
	}
}

func TestMutationsWriteThrough(t *testing.T) {
	app, path := testApp(t)

	created, err := app.CreateTask(tracker.TaskFields{
		Title:         "Water plants",
		CategoryID:    app.Categories[1].ID,
		RecurringDays: []string{"sat"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := app.SetStatus(created.ID, "2024-03-09", tracker.StatusComplete); err != nil {
		t.Fatalf("set: %v", err)
	}

	state := reload(t, path)
	var found *tracker.Task
	for i := range state.Tasks {
		if state.Tasks[i].ID == created.ID {
			found = &state.Tasks[i]
		}
	}
	if found == nil {
		t.Fatal("created task not persisted")
	}
	if len(found.RecurringDays) != 1 || found.RecurringDays[0] != "sat" {
		t.Errorf("persisted recurrence = %v, want [sat]", found.RecurringDays)
	}
	if n := countEntries(state.Entries, created.ID, "2024-03-09"); n != 1 {
		t.Errorf("persisted entries for pair = %d, want 1", n)
	}
}

func TestDashboardRowsAnnotateStatusAndCategory(t *testing.T) {
	app, _ := testApp(t)

	// Pin the current date to a Monday so all three seed tasks are due.
	monday, err := tracker.ParseDate("2024-03-04")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	app.SetCurrentDate(monday)

	if err := app.ToggleStatus(app.Tasks[1].ID, "2024-03-04"); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	rows := app.DashboardRows()
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3 (all seed tasks due on Monday)", len(rows))
	}
	if rows[1].Status != tracker.StatusComplete {
		t.Errorf("row status = %q, want complete", rows[1].Status)
	}
	if rows[0].Category.Name != "Work" {
		t.Errorf("row category = %q, want Work", rows[0].Category.Name)
	}

	s := app.TodayStats()
	if s.Total != 3 || s.Completed != 1 || s.Percentage != 33 {
		t.Errorf("today stats = %+v, want total=3 completed=1 percentage=33", s)
	}
}

func TestMonthNavigation(t *testing.T) {
	app, _ := testApp(t)
	start, _ := tracker.ParseDate("2024-03-15")
	app.SetCurrentDate(start)

	app.ChangeMonth(1)
	app.ChangeMonth(1)
	app.ChangeMonth(-3)
	// History month moved independently of the current date.
	if got := tracker.FormatDate(app.CurrentDate()); got != "2024-03-15" {
		t.Errorf("current date = %s, want 2024-03-15", got)
	}

	app.AdvanceDay(3)
	if got := tracker.FormatDate(app.CurrentDate()); got != "2024-03-18" {
		t.Errorf("after AdvanceDay(3) = %s, want 2024-03-18", got)
	}
}
