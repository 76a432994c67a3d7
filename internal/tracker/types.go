package tracker

// Status is the recorded state of a task on a given date. The absence of
// an Entry is a fourth state ("unset") that is never stored.
type Status string

const (
	StatusComplete   Status = "complete"
	StatusIncomplete Status = "incomplete"
	StatusExempt     Status = "exempt"
)

// Weekday tags used by recurrence rules, in calendar order.
var WeekdayTags = []string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

type Task struct {
	ID               int64    `json:"id"`
	Title            string   `json:"title"`
	CategoryID       int64    `json:"category_id"`
	NotificationTime string   `json:"notification_time,omitempty"`
	RecurringDays    []string `json:"recurring_days"`
}

type Category struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type Entry struct {
	TaskID int64  `json:"taskId"`
	Date   string `json:"date"`
	Status Status `json:"status"`
}

// UnknownCategory is the render-time fallback for tasks whose category
// was deleted. Dangling category_id references are tolerated, not cleaned up.
var UnknownCategory = Category{Name: "Unknown", Color: "#ccc"}

// IsValidWeekdayTag reports whether tag is one of sun..sat.
func IsValidWeekdayTag(tag string) bool {
	for _, t := range WeekdayTags {
		if t == tag {
			return true
		}
	}
	return false
}
