// Package memory is a process-local storage backend. It implements the same
// ports as the postgres repositories and mirrors their semantics, including
// ordering and the status compare-and-swap, so usecases behave identically on
// either backend.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"lendhub/internal/domain/booking"
	"lendhub/internal/domain/item"
	"lendhub/internal/domain/request"
	"lendhub/internal/domain/user"
	"lendhub/internal/infra"
	"lendhub/internal/usecase/queries"
)

type userRec struct {
	id          int64
	name, email string
}

type itemRec struct {
	id, ownerID       int64
	name, description string
	available         bool
	requestID         *int64
}

type bookingRec struct {
	id, itemID, bookerID int64
	start, end           time.Time
	status               booking.Status
}

type commentRec struct {
	id, itemID, authorID int64
	text                 string
	created              time.Time
}

type requestRec struct {
	id, requestorID int64
	description     string
	created         time.Time
}

type Store struct {
	mu sync.RWMutex

	users    map[int64]userRec
	items    map[int64]itemRec
	bookings map[int64]bookingRec
	comments map[int64]commentRec
	requests map[int64]requestRec

	nextID int64
}

func NewStore() *Store {
	return &Store{
		users:    make(map[int64]userRec),
		items:    make(map[int64]itemRec),
		bookings: make(map[int64]bookingRec),
		comments: make(map[int64]commentRec),
		requests: make(map[int64]requestRec),
	}
}

func (s *Store) newID() int64 {
	s.nextID++
	return s.nextID
}

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

// Users

func (s *Store) CreateUser(_ context.Context, u *user.User) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.users {
		if rec.email == u.Email() {
			return 0, infra.WrapRepoErr("duplicate email", nil, infra.KindDuplicateKey)
		}
	}
	id := s.newID()
	s.users[id] = userRec{id: id, name: u.Name(), email: u.Email()}
	return id, nil
}

func (s *Store) FindUserByID(_ context.Context, id int64) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.users[id]
	if !ok {
		return nil, notFound("user not found")
	}
	return user.Reconstruct(rec.id, rec.name, rec.email), nil
}

func (s *Store) UpdateUser(_ context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[u.ID()]
	if !ok {
		return notFound("user not found")
	}
	for _, other := range s.users {
		if other.id != u.ID() && other.email == u.Email() {
			return infra.WrapRepoErr("duplicate email", nil, infra.KindDuplicateKey)
		}
	}
	rec.name = u.Name()
	rec.email = u.Email()
	s.users[u.ID()] = rec
	return nil
}

func (s *Store) DeleteUser(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return notFound("user not found")
	}
	delete(s.users, id)
	return nil
}

func (s *Store) UserExists(_ context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.users[id]
	return ok, nil
}

func (s *Store) EmailTaken(_ context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.users {
		if rec.email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) FindUserView(_ context.Context, id int64) (*queries.UserView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.users[id]
	if !ok {
		return nil, notFound("user not found")
	}
	return &queries.UserView{ID: rec.id, Name: rec.name, Email: rec.email}, nil
}

func (s *Store) FindAllUsers(_ context.Context) ([]queries.UserView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]queries.UserView, 0, len(s.users))
	for _, rec := range s.users {
		out = append(out, queries.UserView{ID: rec.id, Name: rec.name, Email: rec.email})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Items

func (s *Store) CreateItem(_ context.Context, it *item.Item) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.newID()
	s.items[id] = itemRec{
		id:          id,
		ownerID:     it.OwnerID(),
		name:        it.Name(),
		description: it.Description(),
		available:   it.Available(),
		requestID:   it.RequestID(),
	}
	return id, nil
}

func (s *Store) FindItemByID(_ context.Context, id int64) (*item.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.items[id]
	if !ok {
		return nil, notFound("item not found")
	}
	return item.ReconstructItem(rec.id, rec.ownerID, rec.name, rec.description, rec.available, rec.requestID), nil
}

func (s *Store) UpdateItem(_ context.Context, it *item.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.items[it.ID()]
	if !ok {
		return notFound("item not found")
	}
	rec.name = it.Name()
	rec.description = it.Description()
	rec.available = it.Available()
	s.items[it.ID()] = rec
	return nil
}

func (s *Store) itemView(rec itemRec) queries.ItemView {
	return queries.ItemView{
		ID:          rec.id,
		OwnerID:     rec.ownerID,
		Name:        rec.name,
		Description: rec.description,
		Available:   rec.available,
		RequestID:   rec.requestID,
	}
}

func (s *Store) FindItemView(_ context.Context, id int64) (*queries.ItemView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.items[id]
	if !ok {
		return nil, notFound("item not found")
	}
	v := s.itemView(rec)
	return &v, nil
}

func (s *Store) ListItemsByOwner(_ context.Context, ownerID int64) ([]queries.ItemView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]queries.ItemView, 0)
	for _, rec := range s.items {
		if rec.ownerID == ownerID {
			out = append(out, s.itemView(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) SearchItems(_ context.Context, text string) ([]queries.ItemView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	needle := strings.ToLower(text)
	out := make([]queries.ItemView, 0)
	for _, rec := range s.items {
		if !rec.available {
			continue
		}
		if strings.Contains(strings.ToLower(rec.name), needle) ||
			strings.Contains(strings.ToLower(rec.description), needle) {
			out = append(out, s.itemView(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) CountItemsByOwner(_ context.Context, ownerID int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, rec := range s.items {
		if rec.ownerID == ownerID {
			n++
		}
	}
	return n, nil
}

// Bookings

func (s *Store) CreateBooking(_ context.Context, b *booking.Booking) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.newID()
	s.bookings[id] = bookingRec{
		id:       id,
		itemID:   b.ItemID(),
		bookerID: b.BookerID(),
		start:    b.Period().Start(),
		end:      b.Period().End(),
		status:   b.Status(),
	}
	return id, nil
}

func reconstructBooking(rec bookingRec) (*booking.Booking, error) {
	period, err := booking.NewPeriod(rec.start, rec.end)
	if err != nil {
		return nil, infra.WrapRepoErr("reconstruct booking period", err)
	}
	return booking.Reconstruct(rec.id, rec.itemID, rec.bookerID, period, rec.status), nil
}

func (s *Store) FindBookingByID(_ context.Context, id int64) (*booking.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.bookings[id]
	if !ok {
		return nil, notFound("booking not found")
	}
	return reconstructBooking(rec)
}

func (s *Store) UpdateBookingStatusIfWaiting(_ context.Context, id int64, status booking.Status) (*booking.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.bookings[id]
	if !ok {
		return nil, notFound("booking not found")
	}
	if rec.status != booking.StatusWaiting {
		return nil, infra.WrapRepoErr("booking already decided", nil, infra.KindConflict)
	}
	rec.status = status
	s.bookings[id] = rec
	return reconstructBooking(rec)
}

func (s *Store) FindBookingsByItem(_ context.Context, itemID int64) ([]*booking.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := make([]bookingRec, 0)
	for _, rec := range s.bookings {
		if rec.itemID == itemID {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].id < recs[j].id })
	out := make([]*booking.Booking, 0, len(recs))
	for _, rec := range recs {
		b, err := reconstructBooking(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func (s *Store) bookingView(rec bookingRec) (queries.BookingView, bool) {
	it, okItem := s.items[rec.itemID]
	u, okUser := s.users[rec.bookerID]
	if !okItem || !okUser {
		return queries.BookingView{}, false
	}
	return queries.BookingView{
		ID:     rec.id,
		Start:  rec.start,
		End:    rec.end,
		Status: rec.status,
		Item:   queries.ItemRef{ID: it.id, Name: it.name, OwnerID: it.ownerID},
		Booker: queries.UserRef{ID: u.id, Name: u.name},
	}, true
}

func (s *Store) FindBookingView(_ context.Context, id int64) (*queries.BookingView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.bookings[id]
	if !ok {
		return nil, notFound("booking not found")
	}
	v, ok := s.bookingView(rec)
	if !ok {
		return nil, notFound("booking not found")
	}
	return &v, nil
}

func matchesFilter(rec bookingRec, f queries.StateFilter) bool {
	if len(f.Statuses) > 0 {
		found := false
		for _, st := range f.Statuses {
			if rec.status == st {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.CurrentAt != nil && (rec.start.After(*f.CurrentAt) || rec.end.Before(*f.CurrentAt)) {
		return false
	}
	if f.StartsAfter != nil && !rec.start.After(*f.StartsAfter) {
		return false
	}
	if f.EndsBefore != nil && !rec.end.Before(*f.EndsBefore) {
		return false
	}
	return true
}

func (s *Store) ListBookingsByBooker(_ context.Context, bookerID int64, f queries.StateFilter) ([]queries.BookingView, error) {
	return s.listBookings(func(rec bookingRec) bool { return rec.bookerID == bookerID }, f)
}

func (s *Store) ListBookingsByOwner(_ context.Context, ownerID int64, f queries.StateFilter) ([]queries.BookingView, error) {
	return s.listBookings(func(rec bookingRec) bool {
		it, ok := s.items[rec.itemID]
		return ok && it.ownerID == ownerID
	}, f)
}

func (s *Store) listBookings(subject func(bookingRec) bool, f queries.StateFilter) ([]queries.BookingView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := make([]bookingRec, 0)
	for _, rec := range s.bookings {
		if subject(rec) && matchesFilter(rec, f) {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].start.Equal(recs[j].start) {
			return recs[i].start.After(recs[j].start)
		}
		return recs[i].id > recs[j].id
	})
	out := make([]queries.BookingView, 0, len(recs))
	for _, rec := range recs {
		if v, ok := s.bookingView(rec); ok {
			out = append(out, v)
		}
	}
	return out, nil
}

// Comments

func (s *Store) CreateComment(_ context.Context, c *item.Comment) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.newID()
	s.comments[id] = commentRec{
		id:       id,
		itemID:   c.ItemID(),
		authorID: c.AuthorID(),
		text:     c.Text(),
		created:  c.Created(),
	}
	return id, nil
}

func (s *Store) ListCommentsByItem(_ context.Context, itemID int64) ([]queries.CommentView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := make([]commentRec, 0)
	for _, rec := range s.comments {
		if rec.itemID == itemID {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].id < recs[j].id })
	out := make([]queries.CommentView, 0, len(recs))
	for _, rec := range recs {
		name := ""
		if u, ok := s.users[rec.authorID]; ok {
			name = u.name
		}
		out = append(out, queries.CommentView{
			ID:         rec.id,
			ItemID:     rec.itemID,
			AuthorName: name,
			Text:       rec.text,
			Created:    rec.created,
		})
	}
	return out, nil
}

// Item requests

func (s *Store) CreateRequest(_ context.Context, req *request.ItemRequest) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.newID()
	s.requests[id] = requestRec{
		id:          id,
		requestorID: req.RequestorID(),
		description: req.Description(),
		created:     req.Created(),
	}
	return id, nil
}

func (s *Store) RequestExists(_ context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.requests[id]
	return ok, nil
}

func (s *Store) requestView(rec requestRec) queries.ItemRequestView {
	items := make([]queries.ItemRef, 0)
	for _, it := range s.items {
		if it.requestID != nil && *it.requestID == rec.id {
			items = append(items, queries.ItemRef{ID: it.id, Name: it.name, OwnerID: it.ownerID})
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return queries.ItemRequestView{
		ID:          rec.id,
		RequestorID: rec.requestorID,
		Description: rec.description,
		Created:     rec.created,
		Items:       items,
	}
}

func (s *Store) FindRequestView(_ context.Context, id int64) (*queries.ItemRequestView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.requests[id]
	if !ok {
		return nil, notFound("request not found")
	}
	v := s.requestView(rec)
	return &v, nil
}

func (s *Store) ListRequestsByRequestor(_ context.Context, requestorID int64) ([]queries.ItemRequestView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listRequests(func(rec requestRec) bool { return rec.requestorID == requestorID }, -1, -1), nil
}

func (s *Store) ListOtherRequests(_ context.Context, userID int64, from, size int) ([]queries.ItemRequestView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listRequests(func(rec requestRec) bool { return rec.requestorID != userID }, from, size), nil
}

func (s *Store) listRequests(match func(requestRec) bool, from, size int) []queries.ItemRequestView {
	recs := make([]requestRec, 0)
	for _, rec := range s.requests {
		if match(rec) {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].created.Equal(recs[j].created) {
			return recs[i].created.After(recs[j].created)
		}
		return recs[i].id > recs[j].id
	})
	if from >= 0 {
		if from >= len(recs) {
			recs = nil
		} else {
			recs = recs[from:]
		}
	}
	if size >= 0 && size < len(recs) {
		recs = recs[:size]
	}
	out := make([]queries.ItemRequestView, 0, len(recs))
	for _, rec := range recs {
		out = append(out, s.requestView(rec))
	}
	return out
}
