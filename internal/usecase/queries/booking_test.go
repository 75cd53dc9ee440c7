//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"lendhub/internal/domain/booking"
	"lendhub/internal/domain/item"
	"lendhub/internal/domain/user"
	"lendhub/internal/infra/memory"
	"lendhub/internal/pkg/clock"
	"lendhub/internal/usecase/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestFilterForState(t *testing.T) {
	t.Run("ALL filters nothing", func(t *testing.T) {
		f := queries.FilterForState(booking.StateAll, queries.SubjectBooker, now)
		assert.Empty(t, f.Statuses)
		assert.Nil(t, f.CurrentAt)
		assert.Nil(t, f.StartsAfter)
		assert.Nil(t, f.EndsBefore)
	})

	t.Run("CURRENT pins now", func(t *testing.T) {
		f := queries.FilterForState(booking.StateCurrent, queries.SubjectBooker, now)
		require.NotNil(t, f.CurrentAt)
		assert.Equal(t, now, *f.CurrentAt)
	})

	t.Run("FUTURE starts after now", func(t *testing.T) {
		f := queries.FilterForState(booking.StateFuture, queries.SubjectOwner, now)
		require.NotNil(t, f.StartsAfter)
		assert.Equal(t, now, *f.StartsAfter)
	})

	t.Run("PAST ends before now", func(t *testing.T) {
		f := queries.FilterForState(booking.StatePast, queries.SubjectOwner, now)
		require.NotNil(t, f.EndsBefore)
		assert.Equal(t, now, *f.EndsBefore)
	})

	t.Run("WAITING selects the single status", func(t *testing.T) {
		for _, subject := range []queries.Subject{queries.SubjectBooker, queries.SubjectOwner} {
			f := queries.FilterForState(booking.StateWaiting, subject, now)
			assert.Equal(t, []booking.Status{booking.StatusWaiting}, f.Statuses)
		}
	})

	t.Run("REJECTED differs by subject", func(t *testing.T) {
		bookerFilter := queries.FilterForState(booking.StateRejected, queries.SubjectBooker, now)
		assert.ElementsMatch(t,
			[]booking.Status{booking.StatusRejected, booking.StatusCanceled},
			bookerFilter.Statuses,
			"booker view includes canceled bookings")

		ownerFilter := queries.FilterForState(booking.StateRejected, queries.SubjectOwner, now)
		assert.Equal(t,
			[]booking.Status{booking.StatusRejected},
			ownerFilter.Statuses,
			"owner view excludes canceled bookings")
	})
}

type bookingQueryFixture struct {
	store    *memory.Store
	queries  queries.BookingQueries
	bookerID int64
	ownerID  int64
	otherID  int64
	itemID   int64
}

func newBookingQueryFixture(t *testing.T) *bookingQueryFixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	owner, err := user.NewUser("owner", "owner@example.com")
	require.NoError(t, err)
	ownerID, err := store.Users().Create(ctx, owner)
	require.NoError(t, err)

	booker, err := user.NewUser("booker", "booker@example.com")
	require.NoError(t, err)
	bookerID, err := store.Users().Create(ctx, booker)
	require.NoError(t, err)

	other, err := user.NewUser("other", "other@example.com")
	require.NoError(t, err)
	otherID, err := store.Users().Create(ctx, other)
	require.NoError(t, err)

	it, err := item.NewItem(ownerID, "drill", "cordless drill", true, nil)
	require.NoError(t, err)
	itemID, err := store.Items().Create(ctx, it)
	require.NoError(t, err)

	return &bookingQueryFixture{
		store:    store,
		queries:  queries.NewBookingQueries(store.BookingViews(), store.UserViews(), store.ItemViews(), clock.NewMockClock(now)),
		bookerID: bookerID,
		ownerID:  ownerID,
		otherID:  otherID,
		itemID:   itemID,
	}
}

func (f *bookingQueryFixture) addBooking(t *testing.T, start, end time.Time, status booking.Status) int64 {
	t.Helper()
	period, err := booking.NewPeriod(start, end)
	require.NoError(t, err)
	id, err := f.store.Bookings().Create(context.Background(), booking.Reconstruct(0, f.itemID, f.bookerID, period, status))
	require.NoError(t, err)
	return id
}

func TestBookingQueries_GetByID(t *testing.T) {
	ctx := context.Background()
	f := newBookingQueryFixture(t)
	id := f.addBooking(t, now.Add(time.Hour), now.Add(2*time.Hour), booking.StatusWaiting)

	t.Run("booker sees it", func(t *testing.T) {
		view, err := f.queries.GetByID(ctx, f.bookerID, id)
		require.NoError(t, err)
		assert.Equal(t, id, view.ID)
		assert.Equal(t, "drill", view.Item.Name)
		assert.Equal(t, "booker", view.Booker.Name)
	})

	t.Run("item owner sees it", func(t *testing.T) {
		_, err := f.queries.GetByID(ctx, f.ownerID, id)
		assert.NoError(t, err)
	})

	t.Run("third party gets not found", func(t *testing.T) {
		_, err := f.queries.GetByID(ctx, f.otherID, id)
		assert.ErrorIs(t, err, queries.ErrBookingNotFound)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := f.queries.GetByID(ctx, f.bookerID, 9999)
		assert.ErrorIs(t, err, queries.ErrBookingNotFound)
	})
}

func TestBookingQueries_ListForBooker(t *testing.T) {
	ctx := context.Background()
	f := newBookingQueryFixture(t)

	past := f.addBooking(t, now.Add(-48*time.Hour), now.Add(-24*time.Hour), booking.StatusApproved)
	current := f.addBooking(t, now.Add(-time.Hour), now.Add(time.Hour), booking.StatusApproved)
	future := f.addBooking(t, now.Add(24*time.Hour), now.Add(48*time.Hour), booking.StatusWaiting)
	rejected := f.addBooking(t, now.Add(72*time.Hour), now.Add(96*time.Hour), booking.StatusRejected)
	canceled := f.addBooking(t, now.Add(120*time.Hour), now.Add(144*time.Hour), booking.StatusCanceled)

	ids := func(views []queries.BookingView) []int64 {
		out := make([]int64, len(views))
		for i, v := range views {
			out[i] = v.ID
		}
		return out
	}

	t.Run("ALL returns everything newest first", func(t *testing.T) {
		views, err := f.queries.ListForBooker(ctx, f.bookerID, booking.StateAll)
		require.NoError(t, err)
		assert.Equal(t, []int64{canceled, rejected, future, current, past}, ids(views))
	})

	t.Run("CURRENT", func(t *testing.T) {
		views, err := f.queries.ListForBooker(ctx, f.bookerID, booking.StateCurrent)
		require.NoError(t, err)
		assert.Equal(t, []int64{current}, ids(views))
	})

	t.Run("PAST", func(t *testing.T) {
		views, err := f.queries.ListForBooker(ctx, f.bookerID, booking.StatePast)
		require.NoError(t, err)
		assert.Equal(t, []int64{past}, ids(views))
	})

	t.Run("FUTURE", func(t *testing.T) {
		views, err := f.queries.ListForBooker(ctx, f.bookerID, booking.StateFuture)
		require.NoError(t, err)
		assert.Equal(t, []int64{canceled, rejected, future}, ids(views))
	})

	t.Run("WAITING", func(t *testing.T) {
		views, err := f.queries.ListForBooker(ctx, f.bookerID, booking.StateWaiting)
		require.NoError(t, err)
		assert.Equal(t, []int64{future}, ids(views))
	})

	t.Run("REJECTED includes canceled for the booker", func(t *testing.T) {
		views, err := f.queries.ListForBooker(ctx, f.bookerID, booking.StateRejected)
		require.NoError(t, err)
		assert.Equal(t, []int64{canceled, rejected}, ids(views))
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := f.queries.ListForBooker(ctx, 9999, booking.StateAll)
		assert.ErrorIs(t, err, queries.ErrUserNotFound)
	})
}

func TestBookingQueries_ListForOwner(t *testing.T) {
	ctx := context.Background()
	f := newBookingQueryFixture(t)

	rejected := f.addBooking(t, now.Add(time.Hour), now.Add(2*time.Hour), booking.StatusRejected)
	f.addBooking(t, now.Add(3*time.Hour), now.Add(4*time.Hour), booking.StatusCanceled)

	t.Run("REJECTED excludes canceled for the owner", func(t *testing.T) {
		views, err := f.queries.ListForOwner(ctx, f.ownerID, booking.StateRejected)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, rejected, views[0].ID)
	})

	t.Run("user without items", func(t *testing.T) {
		_, err := f.queries.ListForOwner(ctx, f.otherID, booking.StateAll)
		assert.ErrorIs(t, err, queries.ErrNoOwnedItems)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := f.queries.ListForOwner(ctx, 9999, booking.StateAll)
		assert.ErrorIs(t, err, queries.ErrUserNotFound)
	})
}
