package tracker

import "time"

const dateLayout = "2006-01-02"

// FormatDate renders a canonical YYYY-MM-DD date string from the local
// calendar fields of t.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// ParseDate is the inverse of FormatDate.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// WeekdayTag returns the lowercase three-letter weekday tag (sun..sat)
// for the local day-of-week of t. Recurrence matching and entry lookup
// both key off this, so it must agree with FormatDate about which day t is.
func WeekdayTag(t time.Time) string {
	return WeekdayTags[int(t.Weekday())]
}
