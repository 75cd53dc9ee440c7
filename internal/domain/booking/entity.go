package booking

import (
	"errors"
)

var (
	ErrAlreadyDecided = errors.New("booking is already approved or rejected")
	ErrInvalidStatus  = errors.New("invalid booking status")
)

// Booking is one requested rental interval of an item. The id is assigned by
// the store on creation; itemID, bookerID and period never change afterwards.
type Booking struct {
	id       int64
	itemID   int64
	bookerID int64
	period   Period
	status   Status
}

func NewBooking(itemID, bookerID int64, period Period) *Booking {
	return &Booking{
		itemID:   itemID,
		bookerID: bookerID,
		period:   period,
		status:   StatusWaiting,
	}
}

func Reconstruct(id, itemID, bookerID int64, period Period, status Status) *Booking {
	return &Booking{
		id:       id,
		itemID:   itemID,
		bookerID: bookerID,
		period:   period,
		status:   status,
	}
}

// Decide moves a WAITING booking to APPROVED or REJECTED. Any other starting
// status fails: decided bookings are immutable.
func (b *Booking) Decide(approve bool) error {
	if b.status != StatusWaiting {
		return ErrAlreadyDecided
	}
	if approve {
		b.status = StatusApproved
	} else {
		b.status = StatusRejected
	}
	return nil
}

func (b *Booking) IsWaiting() bool {
	return b.status == StatusWaiting
}

func (b *Booking) IsApproved() bool {
	return b.status == StatusApproved
}

// VisibleTo reports whether userID may read this booking: only the booker and
// the item owner see it at all.
func (b *Booking) VisibleTo(userID, itemOwnerID int64) bool {
	return b.bookerID == userID || itemOwnerID == userID
}

func (b *Booking) ID() int64       { return b.id }
func (b *Booking) ItemID() int64   { return b.itemID }
func (b *Booking) BookerID() int64 { return b.bookerID }
func (b *Booking) Period() Period  { return b.period }
func (b *Booking) Status() Status  { return b.status }
