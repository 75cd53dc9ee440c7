package booking

import (
	"errors"
	"time"
)

var ErrInvalidPeriod = errors.New("start time must be before end time")

// Period is the rental interval of a booking.
type Period struct {
	start time.Time
	end   time.Time
}

func NewPeriod(start, end time.Time) (Period, error) {
	if !start.Before(end) {
		return Period{}, ErrInvalidPeriod
	}
	return Period{start: start, end: end}, nil
}

func (p Period) Start() time.Time {
	return p.start
}

func (p Period) End() time.Time {
	return p.end
}

func (p Period) Duration() time.Duration {
	return p.end.Sub(p.start)
}

// Contains reports whether t falls inside the period, bounds included.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.start) && !t.After(p.end)
}

// FinishedBy reports whether the period has fully elapsed at t.
func (p Period) FinishedBy(t time.Time) bool {
	return p.end.Before(t)
}
