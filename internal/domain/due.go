package domain

import "time"

// NoDueDate is shown for tasks without a due date.
const NoDueDate = "No due date"

// dueDisplayLayout renders dates like "Jan 2, 2006".
const dueDisplayLayout = "Jan 2, 2006"

// FormatDue renders a due date relative to now.
// Dates are compared by calendar day in now's location.
func FormatDue(due Date, now time.Time) string {
	if due.IsZero() {
		return NoDueDate
	}
	today := DateOf(now)
	switch due {
	case today:
		return "Today"
	case today.AddDays(1):
		return "Tomorrow"
	}
	return due.Time(now.Location()).Format(dueDisplayLayout)
}
