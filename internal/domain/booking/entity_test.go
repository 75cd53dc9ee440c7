//go:build unit

package booking_test

import (
	"testing"
	"time"

	"lendhub/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPeriod(t *testing.T, start, end time.Time) booking.Period {
	t.Helper()
	p, err := booking.NewPeriod(start, end)
	require.NoError(t, err)
	return p
}

func TestNewPeriod(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name  string
		start time.Time
		end   time.Time
		errIs error
	}{
		{name: "start before end", start: now, end: now.Add(time.Hour)},
		{name: "start equals end", start: now, end: now, errIs: booking.ErrInvalidPeriod},
		{name: "start after end", start: now.Add(time.Hour), end: now, errIs: booking.ErrInvalidPeriod},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := booking.NewPeriod(tc.start, tc.end)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPeriod_FinishedBy(t *testing.T) {
	start := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)
	p := mustPeriod(t, start, end)

	assert.False(t, p.FinishedBy(start))
	assert.False(t, p.FinishedBy(end), "period is not finished at its exact end")
	assert.True(t, p.FinishedBy(end.Add(time.Second)))
}

func TestPeriod_Contains(t *testing.T) {
	start := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	p := mustPeriod(t, start, end)

	assert.True(t, p.Contains(start), "bounds included")
	assert.True(t, p.Contains(end), "bounds included")
	assert.True(t, p.Contains(start.Add(30*time.Minute)))
	assert.False(t, p.Contains(start.Add(-time.Second)))
	assert.False(t, p.Contains(end.Add(time.Second)))
}

func TestBooking_Decide(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	period := mustPeriod(t, now, now.Add(time.Hour))

	t.Run("new booking starts waiting", func(t *testing.T) {
		b := booking.NewBooking(1, 2, period)
		assert.True(t, b.IsWaiting())
		assert.Equal(t, booking.StatusWaiting, b.Status())
	})

	t.Run("approve", func(t *testing.T) {
		b := booking.NewBooking(1, 2, period)
		require.NoError(t, b.Decide(true))
		assert.True(t, b.IsApproved())
	})

	t.Run("reject", func(t *testing.T) {
		b := booking.NewBooking(1, 2, period)
		require.NoError(t, b.Decide(false))
		assert.Equal(t, booking.StatusRejected, b.Status())
	})

	t.Run("decided booking cannot be decided again", func(t *testing.T) {
		b := booking.NewBooking(1, 2, period)
		require.NoError(t, b.Decide(true))
		assert.ErrorIs(t, b.Decide(false), booking.ErrAlreadyDecided)
		assert.True(t, b.IsApproved(), "status unchanged after failed decide")
	})

	t.Run("reconstructed terminal statuses are immutable", func(t *testing.T) {
		for _, st := range []booking.Status{booking.StatusApproved, booking.StatusRejected, booking.StatusCanceled} {
			b := booking.Reconstruct(7, 1, 2, period, st)
			assert.ErrorIs(t, b.Decide(true), booking.ErrAlreadyDecided, string(st))
		}
	})
}

func TestBooking_VisibleTo(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	period := mustPeriod(t, now, now.Add(time.Hour))
	b := booking.Reconstruct(7, 10, 2, period, booking.StatusWaiting)
	const ownerID = int64(5)

	assert.True(t, b.VisibleTo(2, ownerID), "booker sees own booking")
	assert.True(t, b.VisibleTo(5, ownerID), "item owner sees booking")
	assert.False(t, b.VisibleTo(9, ownerID), "third parties see nothing")
}

func TestParseState(t *testing.T) {
	testCases := []struct {
		in     string
		want   booking.State
		wantOK bool
	}{
		{in: "ALL", want: booking.StateAll, wantOK: true},
		{in: "current", want: booking.StateCurrent, wantOK: true},
		{in: "Future", want: booking.StateFuture, wantOK: true},
		{in: "past", want: booking.StatePast, wantOK: true},
		{in: "WAITING", want: booking.StateWaiting, wantOK: true},
		{in: "rejected", want: booking.StateRejected, wantOK: true},
		{in: "UNSUPPORTED", wantOK: false},
		{in: "", wantOK: false},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := booking.ParseState(tc.in)
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestStatus_IsValid(t *testing.T) {
	for _, st := range []booking.Status{booking.StatusWaiting, booking.StatusApproved, booking.StatusRejected, booking.StatusCanceled} {
		assert.True(t, st.IsValid(), string(st))
	}
	assert.False(t, booking.Status("PENDING").IsValid())
}
