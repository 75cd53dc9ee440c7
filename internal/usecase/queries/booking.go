package queries

import (
	"context"

	"lendhub/internal/domain/booking"
	"lendhub/internal/infra"
	"lendhub/internal/pkg/clock"
	"lendhub/internal/pkg/errs"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrUserNotFound    = errs.New("user not found")
	ErrNoOwnedItems    = errs.New("user owns no items")
)

// BookingReadStore lists bookings matching a StateFilter. Results are ordered
// by start descending, id descending on equal start.
type BookingReadStore interface {
	FindByID(ctx context.Context, id int64) (*BookingView, error)
	ListByBooker(ctx context.Context, bookerID int64, f StateFilter) ([]BookingView, error)
	ListByOwner(ctx context.Context, ownerID int64, f StateFilter) ([]BookingView, error)
}

type BookingQueries interface {
	// GetByID returns a booking visible to caller: the booker or the item
	// owner. Anyone else gets ErrBookingNotFound, never a permission error,
	// so booking ids do not leak existence.
	GetByID(ctx context.Context, callerID, bookingID int64) (*BookingView, error)
	ListForBooker(ctx context.Context, bookerID int64, state booking.State) ([]BookingView, error)
	ListForOwner(ctx context.Context, ownerID int64, state booking.State) ([]BookingView, error)
}

type bookingQueriesImpl struct {
	bookings BookingReadStore
	users    UserReadStore
	items    ItemReadStore
	clock    clock.Clock
}

func NewBookingQueries(bookings BookingReadStore, users UserReadStore, items ItemReadStore, clk clock.Clock) BookingQueries {
	return &bookingQueriesImpl{
		bookings: bookings,
		users:    users,
		items:    items,
		clock:    clk,
	}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, callerID, bookingID int64) (*BookingView, error) {
	view, err := q.bookings.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if view.Booker.ID != callerID && view.Item.OwnerID != callerID {
		return nil, ErrBookingNotFound
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListForBooker(ctx context.Context, bookerID int64, state booking.State) ([]BookingView, error) {
	if err := q.requireUser(ctx, bookerID); err != nil {
		return nil, err
	}
	f := FilterForState(state, SubjectBooker, q.clock.Now())
	return q.bookings.ListByBooker(ctx, bookerID, f)
}

func (q *bookingQueriesImpl) ListForOwner(ctx context.Context, ownerID int64, state booking.State) ([]BookingView, error) {
	if err := q.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}
	owned, err := q.items.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owned == 0 {
		return nil, ErrNoOwnedItems
	}
	f := FilterForState(state, SubjectOwner, q.clock.Now())
	return q.bookings.ListByOwner(ctx, ownerID, f)
}

func (q *bookingQueriesImpl) requireUser(ctx context.Context, userID int64) error {
	exists, err := q.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUserNotFound
	}
	return nil
}
