package streaks

import "time"

type DayRelation int

const (
	OlderOrNever DayRelation = iota
	Yesterday
	Today
)

func (r DayRelation) String() string {
	switch r {
	case Today:
		return "today"
	case Yesterday:
		return "yesterday"
	default:
		return "older-or-never"
	}
}

// Relation classifies last against now in loc. A zero last means never.
func Relation(last, now time.Time, loc *time.Location) DayRelation {
	if last.IsZero() {
		return OlderOrNever
	}
	if loc == nil {
		loc = time.Local
	}

	last, now = last.In(loc), now.In(loc)
	if sameDay(last, now) {
		return Today
	}
	if sameDay(last, now.AddDate(0, 0, -1)) {
		return Yesterday
	}
	return OlderOrNever
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// FromMillis converts a stored last-played value; 0 yields the zero time.
func FromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
