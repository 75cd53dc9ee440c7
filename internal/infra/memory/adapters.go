package memory

import (
	"context"

	"lendhub/internal/domain/booking"
	"lendhub/internal/domain/item"
	"lendhub/internal/domain/request"
	"lendhub/internal/domain/user"
	"lendhub/internal/usecase/commands"
	"lendhub/internal/usecase/queries"
)

// Per-aggregate adapters over Store, matching the repository ports one for one.

type Users struct{ s *Store }

func (s *Store) Users() *Users { return &Users{s: s} }

var _ commands.UserRepository = (*Users)(nil)

func (a *Users) Create(ctx context.Context, u *user.User) (int64, error) { return a.s.CreateUser(ctx, u) }
func (a *Users) FindByID(ctx context.Context, id int64) (*user.User, error) {
	return a.s.FindUserByID(ctx, id)
}
func (a *Users) Update(ctx context.Context, u *user.User) error { return a.s.UpdateUser(ctx, u) }
func (a *Users) Delete(ctx context.Context, id int64) error     { return a.s.DeleteUser(ctx, id) }
func (a *Users) Exists(ctx context.Context, id int64) (bool, error) {
	return a.s.UserExists(ctx, id)
}
func (a *Users) EmailTaken(ctx context.Context, email string) (bool, error) {
	return a.s.EmailTaken(ctx, email)
}

type UserViews struct{ s *Store }

func (s *Store) UserViews() *UserViews { return &UserViews{s: s} }

var _ queries.UserReadStore = (*UserViews)(nil)

func (a *UserViews) FindByID(ctx context.Context, id int64) (*queries.UserView, error) {
	return a.s.FindUserView(ctx, id)
}
func (a *UserViews) FindAll(ctx context.Context) ([]queries.UserView, error) {
	return a.s.FindAllUsers(ctx)
}
func (a *UserViews) Exists(ctx context.Context, id int64) (bool, error) {
	return a.s.UserExists(ctx, id)
}

type Items struct{ s *Store }

func (s *Store) Items() *Items { return &Items{s: s} }

var _ commands.ItemRepository = (*Items)(nil)

func (a *Items) Create(ctx context.Context, it *item.Item) (int64, error) {
	return a.s.CreateItem(ctx, it)
}
func (a *Items) FindByID(ctx context.Context, id int64) (*item.Item, error) {
	return a.s.FindItemByID(ctx, id)
}
func (a *Items) Update(ctx context.Context, it *item.Item) error { return a.s.UpdateItem(ctx, it) }

type ItemViews struct{ s *Store }

func (s *Store) ItemViews() *ItemViews { return &ItemViews{s: s} }

var _ queries.ItemReadStore = (*ItemViews)(nil)

func (a *ItemViews) FindByID(ctx context.Context, id int64) (*queries.ItemView, error) {
	return a.s.FindItemView(ctx, id)
}
func (a *ItemViews) ListByOwner(ctx context.Context, ownerID int64) ([]queries.ItemView, error) {
	return a.s.ListItemsByOwner(ctx, ownerID)
}
func (a *ItemViews) Search(ctx context.Context, text string) ([]queries.ItemView, error) {
	return a.s.SearchItems(ctx, text)
}
func (a *ItemViews) CountByOwner(ctx context.Context, ownerID int64) (int64, error) {
	return a.s.CountItemsByOwner(ctx, ownerID)
}

type Bookings struct{ s *Store }

func (s *Store) Bookings() *Bookings { return &Bookings{s: s} }

var _ commands.BookingRepository = (*Bookings)(nil)

func (a *Bookings) Create(ctx context.Context, b *booking.Booking) (int64, error) {
	return a.s.CreateBooking(ctx, b)
}
func (a *Bookings) FindByID(ctx context.Context, id int64) (*booking.Booking, error) {
	return a.s.FindBookingByID(ctx, id)
}
func (a *Bookings) UpdateStatusIfWaiting(ctx context.Context, id int64, status booking.Status) (*booking.Booking, error) {
	return a.s.UpdateBookingStatusIfWaiting(ctx, id, status)
}
func (a *Bookings) FindByItem(ctx context.Context, itemID int64) ([]*booking.Booking, error) {
	return a.s.FindBookingsByItem(ctx, itemID)
}

type BookingViews struct{ s *Store }

func (s *Store) BookingViews() *BookingViews { return &BookingViews{s: s} }

var _ queries.BookingReadStore = (*BookingViews)(nil)

func (a *BookingViews) FindByID(ctx context.Context, id int64) (*queries.BookingView, error) {
	return a.s.FindBookingView(ctx, id)
}
func (a *BookingViews) ListByBooker(ctx context.Context, bookerID int64, f queries.StateFilter) ([]queries.BookingView, error) {
	return a.s.ListBookingsByBooker(ctx, bookerID, f)
}
func (a *BookingViews) ListByOwner(ctx context.Context, ownerID int64, f queries.StateFilter) ([]queries.BookingView, error) {
	return a.s.ListBookingsByOwner(ctx, ownerID, f)
}

type Comments struct{ s *Store }

func (s *Store) Comments() *Comments { return &Comments{s: s} }

var _ commands.CommentRepository = (*Comments)(nil)

func (a *Comments) Create(ctx context.Context, c *item.Comment) (int64, error) {
	return a.s.CreateComment(ctx, c)
}

type CommentViews struct{ s *Store }

func (s *Store) CommentViews() *CommentViews { return &CommentViews{s: s} }

var _ queries.CommentReadStore = (*CommentViews)(nil)

func (a *CommentViews) ListByItem(ctx context.Context, itemID int64) ([]queries.CommentView, error) {
	return a.s.ListCommentsByItem(ctx, itemID)
}

type Requests struct{ s *Store }

func (s *Store) Requests() *Requests { return &Requests{s: s} }

var _ commands.RequestRepository = (*Requests)(nil)

func (a *Requests) Create(ctx context.Context, r *request.ItemRequest) (int64, error) {
	return a.s.CreateRequest(ctx, r)
}
func (a *Requests) Exists(ctx context.Context, id int64) (bool, error) {
	return a.s.RequestExists(ctx, id)
}

type RequestViews struct{ s *Store }

func (s *Store) RequestViews() *RequestViews { return &RequestViews{s: s} }

var _ queries.RequestReadStore = (*RequestViews)(nil)

func (a *RequestViews) FindByID(ctx context.Context, id int64) (*queries.ItemRequestView, error) {
	return a.s.FindRequestView(ctx, id)
}
func (a *RequestViews) ListByRequestor(ctx context.Context, requestorID int64) ([]queries.ItemRequestView, error) {
	return a.s.ListRequestsByRequestor(ctx, requestorID)
}
func (a *RequestViews) ListOthers(ctx context.Context, userID int64, from, size int) ([]queries.ItemRequestView, error) {
	return a.s.ListOtherRequests(ctx, userID, from, size)
}
