package queries

import (
	"time"

	"lendhub/internal/domain/booking"
)

// Subject is the perspective a booking list is requested from.
type Subject string

const (
	SubjectBooker Subject = "booker"
	SubjectOwner  Subject = "owner"
)

// StateFilter is the concrete query a State resolves to. Stores translate it
// into WHERE clauses (postgres) or predicates (memory); they never interpret
// State themselves, so both subjects stay behaviorally consistent.
type StateFilter struct {
	// Statuses, when non-empty, restricts to bookings in any of these statuses.
	Statuses []booking.Status
	// CurrentAt, when set, restricts to bookings with start <= t <= end.
	CurrentAt *time.Time
	// StartsAfter, when set, restricts to bookings with start > t.
	StartsAfter *time.Time
	// EndsBefore, when set, restricts to bookings with end < t.
	EndsBefore *time.Time
}

// FilterForState maps an abstract state to its store filter. The time is read
// once by the caller, so one call sees a single consistent "now".
//
// The booker and owner REJECTED views intentionally differ: the booker view
// includes CANCELED bookings, the owner view does not. The asymmetry is
// inherited behavior that clients depend on; do not "fix" it here.
func FilterForState(state booking.State, subject Subject, now time.Time) StateFilter {
	switch state {
	case booking.StateCurrent:
		t := now
		return StateFilter{CurrentAt: &t}
	case booking.StateFuture:
		t := now
		return StateFilter{StartsAfter: &t}
	case booking.StatePast:
		t := now
		return StateFilter{EndsBefore: &t}
	case booking.StateWaiting:
		return StateFilter{Statuses: []booking.Status{booking.StatusWaiting}}
	case booking.StateRejected:
		if subject == SubjectBooker {
			return StateFilter{Statuses: []booking.Status{booking.StatusRejected, booking.StatusCanceled}}
		}
		return StateFilter{Statuses: []booking.Status{booking.StatusRejected}}
	default:
		return StateFilter{}
	}
}

// Read models (DTO for read side)

type UserRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ItemRef struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	OwnerID int64  `json:"-"`
}

type BookingView struct {
	ID     int64          `json:"id"`
	Start  time.Time      `json:"start"`
	End    time.Time      `json:"end"`
	Status booking.Status `json:"status"`
	Item   ItemRef        `json:"item"`
	Booker UserRef        `json:"booker"`
}

type UserView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type CommentView struct {
	ID         int64     `json:"id"`
	ItemID     int64     `json:"item_id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	Created    time.Time `json:"created"`
}

type ItemView struct {
	ID          int64         `json:"id"`
	OwnerID     int64         `json:"owner_id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Available   bool          `json:"available"`
	RequestID   *int64        `json:"request_id,omitempty"`
	Comments    []CommentView `json:"comments"`
}

type ItemRequestView struct {
	ID          int64     `json:"id"`
	RequestorID int64     `json:"requestor_id"`
	Description string    `json:"description"`
	Created     time.Time `json:"created"`
	// Items already listed in answer to this request.
	Items []ItemRef `json:"items"`
}
