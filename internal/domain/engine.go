package domain

import "time"

// ValidateEventDates checks the event date invariants at validation
// time. The past-start check is never applied retroactively to stored
// records, so callers pass the current clock explicitly.
func ValidateEventDates(start, end, now time.Time) error {
	if start.After(end) {
		return ErrInvalidDateRange
	}
	if start.Before(now) {
		return ErrPastStartDate
	}
	return nil
}

// ValidateSessionWindow checks that a session interval is ordered and
// lies within its parent event's bounds.
func ValidateSessionWindow(start, end, eventStart, eventEnd time.Time) error {
	if start.After(end) {
		return ErrInvalidDateRange
	}
	if start.Before(eventStart) || end.After(eventEnd) {
		return ErrOutOfEventBounds
	}
	return nil
}

// Overlaps reports whether two half-open [start, end) intervals
// overlap. Boundary-touching intervals do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// CanRegister gates event registration creation: the confirmed count
// must be strictly below capacity. Pending registrations never consume
// capacity, so any number of them may queue for organizer triage.
func CanRegister(confirmed, capacity int64) error {
	if confirmed >= capacity {
		return ErrEventAtCapacity
	}
	return nil
}

// CanConfirm gates the pending -> confirmed transition against the
// current confirmed count.
func CanConfirm(confirmed, capacity int64) error {
	if confirmed >= capacity {
		return ErrEventAtCapacity
	}
	return nil
}

// CanJoinSession gates session registration. A nil capacity means the
// session is unbounded.
func CanJoinSession(attendees int64, capacity *int64) error {
	if capacity != nil && attendees >= *capacity {
		return ErrSessionAtCapacity
	}
	return nil
}
