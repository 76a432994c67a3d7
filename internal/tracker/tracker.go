package tracker

import (
	"errors"
	"time"
)

// ErrLastCategory is returned when deleting the only remaining category.
var ErrLastCategory = errors.New("at least one category must exist")

// State is the full persisted dataset: the three collections the entity
// store owns.
type State struct {
	Tasks      []Task
	Categories []Category
	Entries    []Entry
}

// Persistence is the external storage collaborator. Save must be atomic
// from the caller's perspective: a subsequent Load never observes a
// partial write.
type Persistence interface {
	Load() (State, error)
	Save(State) error
}

// App is the entity store plus the view cursors. It is constructed once
// at startup and mutated synchronously by UI event handlers; every
// mutation is written through to the Persistence collaborator before it
// returns.
type App struct {
	persist Persistence

	Tasks      []Task
	Categories []Category
	Entries    []Entry

	currentDate  time.Time
	historyMonth time.Time

	nextTaskID int64
	nextCatID  int64
}

// New loads the dataset from p, seeding demo data on first launch (an
// empty tasks collection), and positions both view cursors on today.
func New(p Persistence) (*App, error) {
	state, err := p.Load()
	if err != nil {
		return nil, err
	}
	a := &App{
		persist:      p,
		Tasks:        state.Tasks,
		Categories:   state.Categories,
		Entries:      state.Entries,
		currentDate:  time.Now(),
		historyMonth: time.Now(),
	}
	if len(a.Tasks) == 0 {
		a.seed()
		if err := a.save(); err != nil {
			return nil, err
		}
	}
	a.nextTaskID = maxID(taskIDs(a.Tasks)) + 1
	a.nextCatID = maxID(categoryIDs(a.Categories)) + 1
	return a, nil
}

func (a *App) seed() {
	a.Categories = []Category{
		{ID: 1, Name: "Work", Color: "#3b82f6"},
		{ID: 2, Name: "Personal", Color: "#10b981"},
		{ID: 3, Name: "Health", Color: "#ef4444"},
	}
	a.Tasks = []Task{
		{ID: 1, Title: "Morning Standup", CategoryID: 1, NotificationTime: "09:00", RecurringDays: []string{"mon", "tue", "wed", "thu", "fri"}},
		{ID: 2, Title: "Gym", CategoryID: 3, NotificationTime: "18:00", RecurringDays: []string{"mon", "wed", "fri"}},
		{ID: 3, Title: "Read", CategoryID: 2, NotificationTime: "21:00", RecurringDays: nil},
	}
	a.Entries = nil
}

func (a *App) save() error {
	return a.persist.Save(State{Tasks: a.Tasks, Categories: a.Categories, Entries: a.Entries})
}

// --- Status mutations ---

// StatusOn resolves the recorded status of taskID on dateStr. The empty
// Status means unset (no entry).
func (a *App) StatusOn(taskID int64, dateStr string) Status {
	if e, ok := FindEntry(a.Entries, taskID, dateStr); ok {
		return e.Status
	}
	return ""
}

// SetStatus records status for (taskID, dateStr), overwriting any
// existing entry so that at most one entry per pair exists.
func (a *App) SetStatus(taskID int64, dateStr string, status Status) error {
	for i := range a.Entries {
		if a.Entries[i].TaskID == taskID && a.Entries[i].Date == dateStr {
			a.Entries[i].Status = status
			return a.save()
		}
	}
	a.Entries = append(a.Entries, Entry{TaskID: taskID, Date: dateStr, Status: status})
	return a.save()
}

// ClearStatus removes the entry for (taskID, dateStr), returning the
// pair to unset. Clearing an unset pair is a no-op.
func (a *App) ClearStatus(taskID int64, dateStr string) error {
	for i := range a.Entries {
		if a.Entries[i].TaskID == taskID && a.Entries[i].Date == dateStr {
			a.Entries = append(a.Entries[:i], a.Entries[i+1:]...)
			return a.save()
		}
	}
	return nil
}

// ToggleStatus cycles (taskID, dateStr) between unset and complete: a
// complete entry is removed, anything else (unset, incomplete, exempt)
// becomes complete.
func (a *App) ToggleStatus(taskID int64, dateStr string) error {
	if a.StatusOn(taskID, dateStr) == StatusComplete {
		return a.ClearStatus(taskID, dateStr)
	}
	return a.SetStatus(taskID, dateStr, StatusComplete)
}

// --- Task CRUD ---

// TaskFields are the caller-supplied fields of a task; RecurringDays nil
// means due every day.
type TaskFields struct {
	Title            string
	CategoryID       int64
	NotificationTime string
	RecurringDays    []string
}

func (a *App) CreateTask(f TaskFields) (Task, error) {
	t := Task{
		ID:               a.nextTaskID,
		Title:            f.Title,
		CategoryID:       f.CategoryID,
		NotificationTime: f.NotificationTime,
		RecurringDays:    f.RecurringDays,
	}
	a.nextTaskID++
	a.Tasks = append(a.Tasks, t)
	return t, a.save()
}

// UpdateTask replaces the fields of the task with the given id. A
// missing id is silently ignored.
func (a *App) UpdateTask(id int64, f TaskFields) error {
	for i := range a.Tasks {
		if a.Tasks[i].ID == id {
			a.Tasks[i].Title = f.Title
			a.Tasks[i].CategoryID = f.CategoryID
			a.Tasks[i].NotificationTime = f.NotificationTime
			a.Tasks[i].RecurringDays = f.RecurringDays
			return a.save()
		}
	}
	return nil
}

// DeleteTask removes the task. Entries referencing it are left in place;
// they are dangling but harmless, since all entry lookups go through the
// task list.
func (a *App) DeleteTask(id int64) error {
	for i := range a.Tasks {
		if a.Tasks[i].ID == id {
			a.Tasks = append(a.Tasks[:i], a.Tasks[i+1:]...)
			return a.save()
		}
	}
	return nil
}

// --- Category CRUD ---

func (a *App) CreateCategory(name, color string) (Category, error) {
	c := Category{ID: a.nextCatID, Name: name, Color: color}
	a.nextCatID++
	a.Categories = append(a.Categories, c)
	return c, a.save()
}

func (a *App) UpdateCategory(id int64, name, color string) error {
	for i := range a.Categories {
		if a.Categories[i].ID == id {
			a.Categories[i].Name = name
			a.Categories[i].Color = color
			return a.save()
		}
	}
	return nil
}

// DeleteCategory removes the category, refusing with ErrLastCategory
// when it is the only one left. Tasks referencing the deleted id keep
// their dangling category_id and resolve to UnknownCategory at read time.
func (a *App) DeleteCategory(id int64) error {
	if len(a.Categories) <= 1 {
		return ErrLastCategory
	}
	for i := range a.Categories {
		if a.Categories[i].ID == id {
			a.Categories = append(a.Categories[:i], a.Categories[i+1:]...)
			return a.save()
		}
	}
	return nil
}

// CategoryFor resolves a task's category, falling back to
// UnknownCategory for dangling references.
func (a *App) CategoryFor(t Task) Category {
	for _, c := range a.Categories {
		if c.ID == t.CategoryID {
			return c
		}
	}
	return UnknownCategory
}

// --- View data ---

// TaskRow is one dashboard line: a due task annotated with its resolved
// status and category display info.
type TaskRow struct {
	Task     Task
	Status   Status
	Category Category
}

// DashboardRows lists the tasks due on the current date, in insertion
// order, each with its resolved status and category.
func (a *App) DashboardRows() []TaskRow {
	dateStr := FormatDate(a.currentDate)
	var rows []TaskRow
	for _, t := range TasksDueOn(a.Tasks, a.currentDate) {
		rows = append(rows, TaskRow{
			Task:     t,
			Status:   a.StatusOn(t.ID, dateStr),
			Category: a.CategoryFor(t),
		})
	}
	return rows
}

// TodayStats aggregates the current date's completion summary.
func (a *App) TodayStats() DaySummary {
	return DayStats(a.Tasks, a.Entries, a.currentDate)
}

// HistoryStats computes the calendar stats for the viewed month,
// classified against the current date.
func (a *App) HistoryStats() []DayStat {
	return MonthStats(a.Tasks, a.Entries, a.historyMonth, a.currentDate)
}

// --- Navigation ---

func (a *App) CurrentDate() time.Time  { return a.currentDate }
func (a *App) HistoryMonth() time.Time { return a.historyMonth }

func (a *App) SetCurrentDate(t time.Time) { a.currentDate = t }

// AdvanceDay moves the dashboard's current date by delta days.
func (a *App) AdvanceDay(delta int) {
	a.currentDate = a.currentDate.AddDate(0, 0, delta)
}

// ChangeMonth moves the viewed history month by delta months.
func (a *App) ChangeMonth(delta int) {
	a.historyMonth = a.historyMonth.AddDate(0, delta, 0)
}

func taskIDs(tasks []Task) []int64 {
	ids := make([]int64, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}

func categoryIDs(cats []Category) []int64 {
	ids := make([]int64, len(cats))
	for i, c := range cats {
		ids[i] = c.ID
	}
	return ids
}

func maxID(ids []int64) int64 {
	var max int64
	for _, id := range ids {
		if id > max {
			max = id
		}
	}
	return max
}
