package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Asikur22/daily-tasks-tracker/internal/config"
	"github.com/Asikur22/daily-tasks-tracker/internal/tracker"
)

type mode int

const (
	modeDashboard mode = iota
	modeHistory
	modeTaskForm
	modeCategories
	modeCategoryForm
)

type Model struct {
	app    *tracker.App
	cfg    config.Config
	mode   mode
	cursor int
	input  textinput.Model
	status string

	form    *taskForm
	catForm *categoryForm

	catCursor  int
	confirmDel bool
	pendingDel int64 // task or category id, depending on mode
}

func Run(app *tracker.App, cfg config.Config) error {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40

	m := Model{
		app:    app,
		cfg:    cfg,
		mode:   modeDashboard,
		input:  ti,
		status: "space toggle • x exempt • a add • e edit • d delete • c categories • tab history",
	}

	program := tea.NewProgram(m)
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		switch m.mode {
		case modeTaskForm:
			return m.updateTaskForm(msg.String(), msg)
		case modeCategoryForm:
			return m.updateCategoryForm(msg.String(), msg)
		case modeCategories:
			return m.updateCategories(msg.String())
		case modeHistory:
			return m.updateHistory(msg.String())
		default:
			return m.updateDashboard(msg.String())
		}
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
	}
	return m, nil
}

// --- Dashboard ---

func (m Model) updateDashboard(key string) (tea.Model, tea.Cmd) {
	rows := m.app.DashboardRows()
	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		m.cursor = clampCursor(m.cursor+1, len(rows))
	case m.cfg.Keys.Up, "up":
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, len(rows))
		}
	case m.cfg.Keys.Toggle:
		if len(rows) == 0 {
			return m, nil
		}
		row := rows[clampCursor(m.cursor, len(rows))]
		dateStr := tracker.FormatDate(m.app.CurrentDate())
		if err := m.app.ToggleStatus(row.Task.ID, dateStr); err != nil {
			m.status = fmt.Sprintf("save failed: %v", err)
			return m, nil
		}
		m.status = "Toggled " + row.Task.Title
	case m.cfg.Keys.Exempt:
		if len(rows) == 0 {
			return m, nil
		}
		row := rows[clampCursor(m.cursor, len(rows))]
		dateStr := tracker.FormatDate(m.app.CurrentDate())
		var err error
		if row.Status == tracker.StatusExempt {
			err = m.app.ClearStatus(row.Task.ID, dateStr)
			m.status = "Cleared exemption for " + row.Task.Title
		} else {
			err = m.app.SetStatus(row.Task.ID, dateStr, tracker.StatusExempt)
			m.status = "Exempted " + row.Task.Title
		}
		if err != nil {
			m.status = fmt.Sprintf("save failed: %v", err)
		}
	case m.cfg.Keys.Add:
		return m.startTaskForm(nil)
	case m.cfg.Keys.Edit:
		if len(rows) == 0 {
			m.status = "No tasks to edit"
			return m, nil
		}
		t := rows[clampCursor(m.cursor, len(rows))].Task
		return m.startTaskForm(&t)
	case m.cfg.Keys.Delete:
		if len(rows) == 0 {
			return m, nil
		}
		t := rows[clampCursor(m.cursor, len(rows))].Task
		m.confirmDel = true
		m.pendingDel = t.ID
		m.status = fmt.Sprintf("Delete %q? y/n", t.Title)
	case m.cfg.Keys.Categories:
		m.mode = modeCategories
		m.catCursor = 0
		m.status = "Categories: a add, e edit, d delete, esc back"
	case m.cfg.Keys.History:
		m.mode = modeHistory
		m.status = "History: h/l change month, tab back"
	case m.cfg.Keys.PrevDay:
		m.app.AdvanceDay(-1)
		m.cursor = 0
	case m.cfg.Keys.NextDay:
		m.app.AdvanceDay(1)
		m.cursor = 0
	}
	return m, nil
}

// --- History ---

func (m Model) updateHistory(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.PrevMonth, "left":
		m.app.ChangeMonth(-1)
	case m.cfg.Keys.NextMonth, "right":
		m.app.ChangeMonth(1)
	case m.cfg.Keys.History, m.cfg.Keys.Cancel:
		m.mode = modeDashboard
		m.status = ""
	}
	return m, nil
}

// --- Delete confirmation ---

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", "esc":
		m.status = "Delete cancelled"
		m.confirmDel = false
		m.pendingDel = 0
		return m, nil
	case "y", "Y":
		id := m.pendingDel
		m.confirmDel = false
		m.pendingDel = 0
		var err error
		if m.mode == modeCategories {
			err = m.app.DeleteCategory(id)
			if errors.Is(err, tracker.ErrLastCategory) {
				m.status = "Refused: " + err.Error()
				return m, nil
			}
			m.catCursor = clampCursor(m.catCursor, len(m.app.Categories))
		} else {
			err = m.app.DeleteTask(id)
			m.cursor = clampCursor(m.cursor, len(m.app.DashboardRows()))
		}
		if err != nil {
			m.status = fmt.Sprintf("delete failed: %v", err)
		} else {
			m.status = "Deleted"
		}
		return m, nil
	default:
		return m, nil
	}
}

// --- Task form ---

// taskForm is a field-cycling editor over the four task fields. taskID 0
// means a new task is being created.
type taskForm struct {
	taskID   int64
	title    string
	category string
	time     string
	days     string
	index    int
}

func taskFormFields() []string {
	return []string{"title", "category", "notification time (HH:MM)", "recurring days (mon,wed,fri; empty = daily)"}
}

func (f taskForm) currentLabel() string {
	return taskFormFields()[f.index]
}

func (f taskForm) currentValue() string {
	switch f.index {
	case 0:
		return f.title
	case 1:
		return f.category
	case 2:
		return f.time
	case 3:
		return f.days
	default:
		return ""
	}
}

func (f *taskForm) setCurrentValue(v string) {
	switch f.index {
	case 0:
		f.title = v
	case 1:
		f.category = v
	case 2:
		f.time = v
	case 3:
		f.days = v
	}
}

func (m Model) startTaskForm(t *tracker.Task) (tea.Model, tea.Cmd) {
	f := &taskForm{}
	if t != nil {
		f.taskID = t.ID
		f.title = t.Title
		f.category = m.app.CategoryFor(*t).Name
		f.time = t.NotificationTime
		f.days = strings.Join(t.RecurringDays, ",")
	}
	m.form = f
	m.input.SetValue(f.currentValue())
	m.input.Placeholder = f.currentLabel()
	m.input.Focus()
	m.mode = modeTaskForm
	m.status = "Task editor: tab to move, enter to save/next, esc to cancel"
	return m, nil
}

func (m Model) updateTaskForm(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.form = nil
		m.mode = modeDashboard
		m.input.Blur()
		m.status = "Edit cancelled"
		return m, nil
	case "tab", "down":
		m.form.setCurrentValue(m.input.Value())
		m.form.index = wrapIndex(m.form.index+1, len(taskFormFields()))
		m.input.SetValue(m.form.currentValue())
		m.input.Placeholder = m.form.currentLabel()
		return m, nil
	case "shift+tab", "up":
		m.form.setCurrentValue(m.input.Value())
		m.form.index = wrapIndex(m.form.index-1, len(taskFormFields()))
		m.input.SetValue(m.form.currentValue())
		m.input.Placeholder = m.form.currentLabel()
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		m.form.setCurrentValue(m.input.Value())
		if m.form.index >= len(taskFormFields())-1 {
			return m.saveTaskForm()
		}
		m.form.index++
		m.input.SetValue(m.form.currentValue())
		m.input.Placeholder = m.form.currentLabel()
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) saveTaskForm() (tea.Model, tea.Cmd) {
	f := m.form
	title := strings.TrimSpace(f.title)
	if title == "" {
		m.status = "Title cannot be empty"
		return m, nil
	}
	cat, err := m.resolveCategory(f.category)
	if err != nil {
		m.status = err.Error()
		return m, nil
	}
	notif, err := parseNotificationTime(f.time)
	if err != nil {
		m.status = fmt.Sprintf("time invalid: %v", err)
		return m, nil
	}
	days, err := parseRecurringDays(f.days)
	if err != nil {
		m.status = fmt.Sprintf("days invalid: %v", err)
		return m, nil
	}

	fields := tracker.TaskFields{
		Title:            title,
		CategoryID:       cat.ID,
		NotificationTime: notif,
		RecurringDays:    days,
	}
	if f.taskID != 0 {
		err = m.app.UpdateTask(f.taskID, fields)
	} else {
		_, err = m.app.CreateTask(fields)
	}
	if err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		return m, nil
	}
	m.form = nil
	m.mode = modeDashboard
	m.input.Blur()
	m.status = "Saved " + title
	return m, nil
}

// resolveCategory maps a typed category name to an existing category,
// case-insensitively. An empty name falls back to the first category.
func (m Model) resolveCategory(name string) (tracker.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		if len(m.app.Categories) == 0 {
			return tracker.Category{}, errors.New("no categories exist")
		}
		return m.app.Categories[0], nil
	}
	for _, c := range m.app.Categories {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	names := make([]string, len(m.app.Categories))
	for i, c := range m.app.Categories {
		names[i] = c.Name
	}
	return tracker.Category{}, fmt.Errorf("unknown category %q (have: %s)", name, strings.Join(names, ", "))
}

// --- Category manager ---

func (m Model) updateCategories(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Cancel, m.cfg.Keys.Categories:
		m.mode = modeDashboard
		m.status = ""
	case m.cfg.Keys.Down, "down":
		m.catCursor = clampCursor(m.catCursor+1, len(m.app.Categories))
	case m.cfg.Keys.Up, "up":
		if m.catCursor > 0 {
			m.catCursor = clampCursor(m.catCursor-1, len(m.app.Categories))
		}
	case m.cfg.Keys.Add:
		return m.startCategoryForm(nil)
	case m.cfg.Keys.Edit:
		if len(m.app.Categories) == 0 {
			return m, nil
		}
		c := m.app.Categories[clampCursor(m.catCursor, len(m.app.Categories))]
		return m.startCategoryForm(&c)
	case m.cfg.Keys.Delete:
		if len(m.app.Categories) == 0 {
			return m, nil
		}
		c := m.app.Categories[clampCursor(m.catCursor, len(m.app.Categories))]
		m.confirmDel = true
		m.pendingDel = c.ID
		m.status = fmt.Sprintf("Delete category %q? Tasks keep a dangling reference. y/n", c.Name)
	}
	return m, nil
}

type categoryForm struct {
	catID int64
	name  string
	color string
	index int
}

func categoryFormFields() []string {
	return []string{"name", "color (#rrggbb)"}
}

func (f categoryForm) currentLabel() string { return categoryFormFields()[f.index] }

func (f categoryForm) currentValue() string {
	if f.index == 0 {
		return f.name
	}
	return f.color
}

func (f *categoryForm) setCurrentValue(v string) {
	if f.index == 0 {
		f.name = v
	} else {
		f.color = v
	}
}

func (m Model) startCategoryForm(c *tracker.Category) (tea.Model, tea.Cmd) {
	f := &categoryForm{color: "#89b4fa"}
	if c != nil {
		f.catID = c.ID
		f.name = c.Name
		f.color = c.Color
	}
	m.catForm = f
	m.input.SetValue(f.currentValue())
	m.input.Placeholder = f.currentLabel()
	m.input.Focus()
	m.mode = modeCategoryForm
	m.status = "Category editor: enter to save/next, esc to cancel"
	return m, nil
}

func (m Model) updateCategoryForm(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.catForm = nil
		m.mode = modeCategories
		m.input.Blur()
		m.status = "Edit cancelled"
		return m, nil
	case "tab", "down", "shift+tab", "up":
		m.catForm.setCurrentValue(m.input.Value())
		m.catForm.index = wrapIndex(m.catForm.index+1, len(categoryFormFields()))
		m.input.SetValue(m.catForm.currentValue())
		m.input.Placeholder = m.catForm.currentLabel()
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		m.catForm.setCurrentValue(m.input.Value())
		if m.catForm.index >= len(categoryFormFields())-1 {
			return m.saveCategoryForm()
		}
		m.catForm.index++
		m.input.SetValue(m.catForm.currentValue())
		m.input.Placeholder = m.catForm.currentLabel()
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) saveCategoryForm() (tea.Model, tea.Cmd) {
	f := m.catForm
	name := strings.TrimSpace(f.name)
	if name == "" {
		m.status = "Name cannot be empty"
		return m, nil
	}
	color := strings.TrimSpace(f.color)
	if color == "" {
		color = "#89b4fa"
	}
	var err error
	if f.catID != 0 {
		err = m.app.UpdateCategory(f.catID, name, color)
	} else {
		_, err = m.app.CreateCategory(name, color)
	}
	if err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		return m, nil
	}
	m.catForm = nil
	m.mode = modeCategories
	m.input.Blur()
	m.status = "Saved category " + name
	return m, nil
}

// --- Views ---

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Daily Tasks Tracker"))
	b.WriteString("\n\n")

	switch m.mode {
	case modeHistory:
		b.WriteString(m.viewHistory())
	case modeTaskForm:
		b.WriteString(m.viewTaskForm())
	case modeCategories:
		b.WriteString(m.viewCategories())
	case modeCategoryForm:
		b.WriteString(m.viewCategoryForm())
	default:
		b.WriteString(m.viewDashboard())
	}

	b.WriteString("\n\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.helpLine()))
	return b.String()
}

func (m Model) viewDashboard() string {
	var b strings.Builder
	b.WriteString(dateStyle.Render(m.app.CurrentDate().Format("Monday, 2 January 2006")))
	b.WriteString("\n\n")

	rows := m.app.DashboardRows()
	if len(rows) == 0 {
		b.WriteString(mutedStyle.Render("No tasks for today. Enjoy!"))
	} else {
		for i, row := range rows {
			cursor := " "
			if i == clampCursor(m.cursor, len(rows)) {
				cursor = cursorStyle.Render(">")
			}
			b.WriteString(fmt.Sprintf("%s %s %s %s", cursor, statusIcon(row.Status),
				badgeStyle(row.Category.Color).Render(row.Category.Name), renderTitle(row)))
			var extras []string
			if row.Task.NotificationTime != "" {
				extras = append(extras, row.Task.NotificationTime)
			}
			if row.Task.RecurringDays != nil {
				extras = append(extras, strings.Join(row.Task.RecurringDays, ","))
			}
			if len(extras) > 0 {
				b.WriteString(mutedStyle.Render("  (" + strings.Join(extras, " ") + ")"))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	s := m.app.TodayStats()
	b.WriteString(renderProgress(s.Percentage))
	b.WriteString(fmt.Sprintf(" %d%% (%d/%d)", s.Percentage, s.Completed, s.Total))
	return b.String()
}

func renderTitle(row tracker.TaskRow) string {
	switch row.Status {
	case tracker.StatusComplete:
		return doneStyle.Render(row.Task.Title)
	case tracker.StatusExempt:
		return exemptStyle.Render(row.Task.Title)
	default:
		return pendingStyle.Render(row.Task.Title)
	}
}

func statusIcon(s tracker.Status) string {
	switch s {
	case tracker.StatusComplete:
		return doneStyle.Render("[x]")
	case tracker.StatusIncomplete:
		return errorStyle.Render("[!]")
	case tracker.StatusExempt:
		return mutedStyle.Render("[-]")
	default:
		return "[ ]"
	}
}

func renderProgress(percentage int) string {
	const width = 24
	filled := percentage * width / 100
	if filled > width {
		filled = width
	}
	return progressFillStyle.Render(strings.Repeat("█", filled)) +
		progressRestStyle.Render(strings.Repeat("░", width-filled))
}

func (m Model) viewHistory() string {
	var b strings.Builder
	month := m.app.HistoryMonth()
	b.WriteString(dateStyle.Render(month.Format("January 2006")))
	b.WriteString("\n\n")

	b.WriteString(mutedStyle.Render(" Sun  Mon  Tue  Wed  Thu  Fri  Sat"))
	b.WriteString("\n")

	stats := m.app.HistoryStats()
	first := firstOfMonth(month)
	offset := int(first.Weekday())
	col := 0
	for i := 0; i < offset; i++ {
		b.WriteString("     ")
		col++
	}
	for _, st := range stats {
		b.WriteString(renderCell(st))
		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		}
	}
	if col != 0 {
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(legendLine())
	return b.String()
}

// renderCell paints one five-column calendar cell: the day number plus a
// completion marker for classified days.
func renderCell(st tracker.DayStat) string {
	text := fmt.Sprintf("%4d ", st.Day)
	switch st.Class {
	case tracker.ClassComplete:
		return cellCompleteStyle.Render(fmt.Sprintf("%3d", st.Day) + "✓ ")
	case tracker.ClassPartial:
		return cellPartialStyle.Render(fmt.Sprintf("%3d", st.Day) + "~ ")
	case tracker.ClassPoor:
		return cellPoorStyle.Render(fmt.Sprintf("%3d", st.Day) + "! ")
	default:
		return cellQuietStyle.Render(text)
	}
}

func legendLine() string {
	return cellCompleteStyle.Render("✓ complete") + "  " +
		cellPartialStyle.Render("~ partial") + "  " +
		cellPoorStyle.Render("! poor") + "  " +
		cellQuietStyle.Render("· upcoming/none")
}

func (m Model) viewTaskForm() string {
	var b strings.Builder
	if m.form.taskID != 0 {
		b.WriteString("Edit task\n\n")
	} else {
		b.WriteString("New task\n\n")
	}
	values := []string{m.form.title, m.form.category, m.form.time, m.form.days}
	for i, name := range taskFormFields() {
		prefix := " "
		val := values[i]
		if i == m.form.index {
			prefix = cursorStyle.Render(">")
			val = m.input.Value()
		}
		if strings.TrimSpace(val) == "" {
			val = mutedStyle.Render("(empty)")
		}
		b.WriteString(fmt.Sprintf("%s %-42s : %s\n", prefix, name, val))
	}
	b.WriteString("\n")
	b.WriteString(m.input.View())
	return b.String()
}

func (m Model) viewCategories() string {
	var b strings.Builder
	b.WriteString("Categories\n\n")
	for i, c := range m.app.Categories {
		cursor := " "
		if i == clampCursor(m.catCursor, len(m.app.Categories)) {
			cursor = cursorStyle.Render(">")
		}
		b.WriteString(fmt.Sprintf("%s %s %s %s\n", cursor,
			badgeStyle(c.Color).Render("●"), c.Name, mutedStyle.Render(c.Color)))
	}
	return b.String()
}

func (m Model) viewCategoryForm() string {
	var b strings.Builder
	if m.catForm.catID != 0 {
		b.WriteString("Edit category\n\n")
	} else {
		b.WriteString("New category\n\n")
	}
	values := []string{m.catForm.name, m.catForm.color}
	for i, name := range categoryFormFields() {
		prefix := " "
		val := values[i]
		if i == m.catForm.index {
			prefix = cursorStyle.Render(">")
			val = m.input.Value()
		}
		if strings.TrimSpace(val) == "" {
			val = mutedStyle.Render("(empty)")
		}
		b.WriteString(fmt.Sprintf("%s %-16s : %s\n", prefix, name, val))
	}
	b.WriteString("\n")
	b.WriteString(m.input.View())
	return b.String()
}

func (m Model) helpLine() string {
	k := m.cfg.Keys
	switch m.mode {
	case modeHistory:
		return fmt.Sprintf("%s/%s month • %s dashboard • %s quit", k.PrevMonth, k.NextMonth, k.History, k.Quit)
	case modeCategories:
		return fmt.Sprintf("%s/%s move • %s add • %s edit • %s delete • %s back • %s quit",
			k.Up, k.Down, k.Add, k.Edit, k.Delete, k.Cancel, k.Quit)
	case modeTaskForm, modeCategoryForm:
		return "tab move • enter save/next • esc cancel"
	default:
		return fmt.Sprintf("%s/%s move • space toggle • %s exempt • %s add • %s edit • %s delete • %s/%s day • %s categories • %s history • %s quit",
			k.Up, k.Down, k.Exempt, k.Add, k.Edit, k.Delete, k.PrevDay, k.NextDay, k.Categories, k.History, k.Quit)
	}
}

// --- Parsing helpers ---

// parseNotificationTime validates an optional HH:MM value.
func parseNotificationTime(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", nil
	}
	var h, min int
	if _, err := fmt.Sscanf(v, "%d:%d", &h, &min); err != nil {
		return "", fmt.Errorf("want HH:MM, got %q", v)
	}
	if h < 0 || h > 23 || min < 0 || min > 59 {
		return "", fmt.Errorf("out of range: %q", v)
	}
	return fmt.Sprintf("%02d:%02d", h, min), nil
}

// parseRecurringDays turns a comma-separated weekday-tag list into a
// recurrence set. Empty input means due every day (nil).
func parseRecurringDays(v string) ([]string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	var days []string
	for _, part := range strings.Split(v, ",") {
		tag := strings.ToLower(strings.TrimSpace(part))
		if tag == "" {
			continue
		}
		if !tracker.IsValidWeekdayTag(tag) {
			return nil, fmt.Errorf("unknown weekday %q (want sun..sat)", tag)
		}
		days = append(days, tag)
	}
	if len(days) == 0 {
		return nil, nil
	}
	return days, nil
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
