package booking

import "strings"

// Status is the persisted lifecycle value of a booking.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	// StatusCanceled is a terminal value kept for history; the current
	// lifecycle exposes no path that sets it.
	StatusCanceled Status = "CANCELED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusWaiting, StatusApproved, StatusRejected, StatusCanceled:
		return true
	default:
		return false
	}
}

// State is the query-time view selector. It is never persisted; it only
// parameterizes list queries.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StateFuture   State = "FUTURE"
	StatePast     State = "PAST"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

func ParseState(s string) (State, bool) {
	switch State(strings.ToUpper(s)) {
	case StateAll:
		return StateAll, true
	case StateCurrent:
		return StateCurrent, true
	case StateFuture:
		return StateFuture, true
	case StatePast:
		return StatePast, true
	case StateWaiting:
		return StateWaiting, true
	case StateRejected:
		return StateRejected, true
	default:
		return "", false
	}
}
