package commands

import (
	"context"

	"lendhub/internal/domain/booking"
	"lendhub/internal/domain/item"
	"lendhub/internal/domain/request"
	"lendhub/internal/domain/user"
)

// Write-side repositories. Implementations wrap failures in
// infra.RepositoryError so commands can branch on the kind.

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) (int64, error)
	FindByID(ctx context.Context, id int64) (*booking.Booking, error)
	// UpdateStatusIfWaiting persists the WAITING→status transition as a
	// compare-and-swap: the row is updated only while still WAITING, so of two
	// racing approvals exactly one wins. A lost race or an already decided
	// booking surfaces as a KindConflict error.
	UpdateStatusIfWaiting(ctx context.Context, id int64, status booking.Status) (*booking.Booking, error)
	// FindByItem returns all bookings of the item in store order (id
	// ascending).
	FindByItem(ctx context.Context, itemID int64) ([]*booking.Booking, error)
}

type ItemRepository interface {
	Create(ctx context.Context, it *item.Item) (int64, error)
	FindByID(ctx context.Context, id int64) (*item.Item, error)
	Update(ctx context.Context, it *item.Item) error
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) (int64, error)
	FindByID(ctx context.Context, id int64) (*user.User, error)
	Update(ctx context.Context, u *user.User) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
}

type CommentRepository interface {
	Create(ctx context.Context, c *item.Comment) (int64, error)
}

type RequestRepository interface {
	Create(ctx context.Context, r *request.ItemRequest) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
}
