package event

import (
	"math"
	"time"
)

// Minimum lead times for mutating a published event. Deletion gets the
// longer window because it destroys registrations irrecoverably, while
// an edit leaves them intact.
const (
	editMinDays   = 1
	deleteMinDays = 7
)

// DaysUntil returns the whole-day floor difference between the event
// date and now. Exactly 24 hours out is 1; anything past the event
// date goes negative.
func DaysUntil(eventDate, now time.Time) int {
	diff := eventDate.Sub(now)
	return int(math.Floor(diff.Hours() / 24))
}

// CanEdit reports whether the event may still be edited. A zero event
// date fails closed.
func CanEdit(eventDate, now time.Time) bool {
	if eventDate.IsZero() {
		return false
	}
	return DaysUntil(eventDate, now) >= editMinDays
}

// CanDelete reports whether the event may still be deleted
func CanDelete(eventDate, now time.Time) bool {
	if eventDate.IsZero() {
		return false
	}
	return DaysUntil(eventDate, now) >= deleteMinDays
}
