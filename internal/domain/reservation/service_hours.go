package reservation

import (
	"fmt"
	"time"
)

// ServiceHours describes when seatings may start and how long each one lasts.
type ServiceHours struct {
	Opening     time.Duration // offset from midnight
	LastSeating time.Duration // offset from midnight, inclusive
	Step        time.Duration
	Duration    time.Duration
}

func NewServiceHours(opening, lastSeating string, step, duration time.Duration) (ServiceHours, error) {
	open, err := parseClock(opening)
	if err != nil {
		return ServiceHours{}, fmt.Errorf("opening time: %w", err)
	}
	last, err := parseClock(lastSeating)
	if err != nil {
		return ServiceHours{}, fmt.Errorf("last seating: %w", err)
	}
	if last < open {
		return ServiceHours{}, fmt.Errorf("last seating %s before opening %s", lastSeating, opening)
	}
	if step <= 0 || duration <= 0 {
		return ServiceHours{}, fmt.Errorf("step and duration must be positive")
	}

	return ServiceHours{
		Opening:     open,
		LastSeating: last,
		Step:        step,
		Duration:    duration,
	}, nil
}

func parseClock(hm string) (time.Duration, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

func midnight(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, day.Location())
}

// Starts lists every allowed seating start on day, in order.
func (h ServiceHours) Starts(day time.Time) []time.Time {
	base := midnight(day)

	var out []time.Time
	for off := h.Opening; off <= h.LastSeating; off += h.Step {
		start := base.Add(off)
		if _, err := NewInterval(start, start.Add(h.Duration)); err != nil {
			continue
		}
		out = append(out, start)
	}
	return out
}

// Window returns the booking interval for a seating starting at start.
// Starts outside opening..last seating are rejected.
func (h ServiceHours) Window(start time.Time) (Interval, error) {
	off := start.Sub(midnight(start))
	if off < h.Opening || off > h.LastSeating {
		return Interval{}, ErrInvalidInterval
	}
	return NewInterval(start, start.Add(h.Duration))
}
