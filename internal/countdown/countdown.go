// Package countdown computes the time left until the event and drives a ticking display.
package countdown

import (
	"context"
	"time"
)

// Remaining is a days/hours/minutes/seconds breakdown of a duration.
type Remaining struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// Zero reports whether nothing is left.
func (r Remaining) Zero() bool {
	return r == Remaining{}
}

// Until returns the time left from now to target, or zero once target has passed.
func Until(now, target time.Time) Remaining {
	d := target.Sub(now)
	if d <= 0 {
		return Remaining{}
	}
	secs := int64(d / time.Second)
	return Remaining{
		Days:    int(secs / 86400),
		Hours:   int(secs / 3600 % 24),
		Minutes: int(secs / 60 % 60),
		Seconds: int(secs % 60),
	}
}

// EventDate returns midnight of month/day in now's location this year,
// or next year if that moment has already passed.
func EventDate(now time.Time, month time.Month, day int) time.Time {
	event := time.Date(now.Year(), month, day, 0, 0, 0, 0, now.Location())
	if now.After(event) {
		event = event.AddDate(1, 0, 0)
	}
	return event
}

// Watch calls emit with the time left on every tick. It returns nil after emitting
// zero, or ctx.Err() when the owning view goes away first. The caller owns the ticker
// behind ticks and must stop it once Watch returns.
func Watch(ctx context.Context, ticks <-chan time.Time, now func() time.Time, target time.Time, emit func(Remaining) error) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticks:
			left := Until(now(), target)
			if err := emit(left); err != nil {
				return err
			}
			if left.Zero() {
				return nil
			}
		}
	}
}
