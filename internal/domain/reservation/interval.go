package reservation

import "time"

// Interval is a half-open time window [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval validates a booking window. The window must be non-empty and
// must not cross midnight; ending exactly at the next midnight is allowed.
func NewInterval(start, end time.Time) (Interval, error) {
	if !end.After(start) {
		return Interval{}, ErrInvalidInterval
	}

	y, m, d := start.Date()
	nextMidnight := time.Date(y, m, d+1, 0, 0, 0, 0, start.Location())
	if end.After(nextMidnight) {
		return Interval{}, ErrInvalidInterval
	}

	return Interval{Start: start, End: end}, nil
}

// Overlaps uses the half-open convention: touching intervals do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return !(!i.End.After(o.Start) || !i.Start.Before(o.End))
}

// HasOverlap checks [start, end) against every existing interval and stops at
// the first collision. existing must hold live reservations only.
func HasOverlap(existing []Interval, start, end time.Time) (bool, error) {
	candidate, err := NewInterval(start, end)
	if err != nil {
		return false, err
	}

	for _, iv := range existing {
		if iv.Overlaps(candidate) {
			return true, nil
		}
	}
	return false, nil
}
