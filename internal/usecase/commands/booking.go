package commands

import (
	"context"
	"time"

	"lendhub/internal/domain/booking"
	"lendhub/internal/infra"
	"lendhub/internal/pkg/errs"
	"lendhub/internal/usecase/queries"
)

var (
	ErrUserNotFound = errs.New("user not found")
	ErrItemNotFound = errs.New("item not found")
	// ErrOwnItemBooking is deliberately surfaced as not-found, not forbidden:
	// for booking purposes your own item does not exist.
	ErrOwnItemBooking          = errs.New("cannot book own item")
	ErrItemUnavailable         = errs.New("item is not available")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrAlreadyDecided          = errs.New("booking is already decided")
	ErrNotItemOwner            = errs.New("item does not belong to this user")
	ErrInvalidPeriod           = errs.New("invalid booking period")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateBookingInput struct {
	ItemID int64
	Start  time.Time
	End    time.Time
}

type BookingCommands interface {
	Create(ctx context.Context, bookerID int64, in CreateBookingInput) (*queries.BookingView, error)
	// SetApproval decides a WAITING booking. Only the owner of the booked item
	// may call it, and only once per booking.
	SetApproval(ctx context.Context, callerID, bookingID int64, approve bool) (*queries.BookingView, error)
}

type bookingUseCaseImpl struct {
	bookings BookingRepository
	items    ItemRepository
	users    UserRepository
	views    queries.BookingReadStore
}

func NewBookingCommands(
	bookings BookingRepository,
	items ItemRepository,
	users UserRepository,
	views queries.BookingReadStore,
) BookingCommands {
	return &bookingUseCaseImpl{
		bookings: bookings,
		items:    items,
		users:    users,
		views:    views,
	}
}

func (uc *bookingUseCaseImpl) Create(ctx context.Context, bookerID int64, in CreateBookingInput) (*queries.BookingView, error) {
	exists, err := uc.users.Exists(ctx, bookerID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	it, err := uc.items.FindByID(ctx, in.ItemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if it.OwnedBy(bookerID) {
		return nil, ErrOwnItemBooking
	}
	if !it.Available() {
		return nil, ErrItemUnavailable
	}

	period, err := booking.NewPeriod(in.Start, in.End)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidPeriod)
	}

	id, err := uc.bookings.Create(ctx, booking.NewBooking(in.ItemID, bookerID, period))
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	// Read-after-write: return the full view the read side serves.
	return uc.findView(ctx, id)
}

func (uc *bookingUseCaseImpl) SetApproval(ctx context.Context, callerID, bookingID int64, approve bool) (*queries.BookingView, error) {
	b, err := uc.bookings.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !b.IsWaiting() {
		return nil, ErrAlreadyDecided
	}

	it, err := uc.items.FindByID(ctx, b.ItemID())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !it.OwnedBy(callerID) {
		return nil, ErrNotItemOwner
	}

	next := booking.StatusRejected
	if approve {
		next = booking.StatusApproved
	}
	if _, err = uc.bookings.UpdateStatusIfWaiting(ctx, bookingID, next); err != nil {
		// A concurrent decision between our read and the update loses the
		// CAS; report it exactly like a booking that was already decided.
		if infra.IsKind(err, infra.KindConflict) {
			return nil, ErrAlreadyDecided
		}
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return uc.findView(ctx, bookingID)
}

func (uc *bookingUseCaseImpl) findView(ctx context.Context, id int64) (*queries.BookingView, error) {
	view, err := uc.views.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}
