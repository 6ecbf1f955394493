package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelswift/booking-system/internal/domain/models"
	"github.com/travelswift/booking-system/internal/domain/types"
	"github.com/travelswift/booking-system/pkg/logger"
)

const testSession = "sess-1"

var testNow = time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC)

func newTestLedger() *Ledger {
	return New(NewMemoryStore(), logger.InitLogger("ledger-test", logger.LevelError))
}

func booking(kind types.ServiceKind, origin, dest, date string, fare float64) models.Booking {
	return models.Booking{
		Kind:        kind,
		Origin:      origin,
		Destination: dest,
		Date:        mustDate(date),
		Fare:        fare,
	}
}

func TestAppendAssignsID(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger()

	b, err := l.Append(ctx, testSession, booking(types.RideKind, "Patna", "Delhi", "2026-09-10", 450))
	require.NoError(t, err)
	assert.False(t, b.ID.IsZero())

	all, err := l.List(ctx, testSession)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, b.ID, all[0].ID)
}

func TestStatusDerivation(t *testing.T) {
	now := testNow

	t.Run("past date is completed", func(t *testing.T) {
		b := booking(types.RideKind, "A", "B", "2026-08-31", 100)
		assert.Equal(t, types.StatusCompleted, b.Status(now))
	})

	t.Run("same day is upcoming regardless of time", func(t *testing.T) {
		b := booking(types.RideKind, "A", "B", "2026-09-01", 100)
		// now is 15:30 and the booking date midnight, still upcoming.
		assert.Equal(t, types.StatusUpcoming, b.Status(now))
	})

	t.Run("future date is upcoming", func(t *testing.T) {
		b := booking(types.RideKind, "A", "B", "2026-09-02", 100)
		assert.Equal(t, types.StatusUpcoming, b.Status(now))
	})

	t.Run("classification moves with now", func(t *testing.T) {
		b := booking(types.RideKind, "A", "B", "2026-09-01", 100)
		assert.Equal(t, types.StatusUpcoming, b.Status(now))

		nextDay := now.AddDate(0, 0, 1)
		assert.Equal(t, types.StatusCompleted, b.Status(nextDay))
	})
}

func TestUpcomingSortedAscending(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger()

	for _, d := range []string{"2026-09-20", "2026-09-05", "2026-09-12"} {
		_, err := l.Append(ctx, testSession, booking(types.RideKind, "A", "B", d, 100))
		require.NoError(t, err)
	}

	upcoming, err := l.Upcoming(ctx, testSession, testNow)
	require.NoError(t, err)
	require.Len(t, upcoming, 3)

	assert.Equal(t, "2026-09-05", upcoming[0].Date.Format(models.DateLayout))
	assert.Equal(t, "2026-09-12", upcoming[1].Date.Format(models.DateLayout))
	assert.Equal(t, "2026-09-20", upcoming[2].Date.Format(models.DateLayout))
}

func TestCompletedSortedDescending(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger()

	for _, d := range []string{"2024-05-01", "2024-07-15", "2024-06-20"} {
		_, err := l.Append(ctx, testSession, booking(types.TransitKind, "A", "B", d, 100))
		require.NoError(t, err)
	}

	completed, err := l.Completed(ctx, testSession, testNow)
	require.NoError(t, err)
	require.Len(t, completed, 3)

	assert.Equal(t, "2024-07-15", completed[0].Date.Format(models.DateLayout))
	assert.Equal(t, "2024-06-20", completed[1].Date.Format(models.DateLayout))
	assert.Equal(t, "2024-05-01", completed[2].Date.Format(models.DateLayout))
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger()

	require.NoError(t, l.Seed(ctx, testSession, testNow))

	all, err := l.List(ctx, testSession)
	require.NoError(t, err)
	require.Len(t, all, 4)

	upcoming, err := l.Upcoming(ctx, testSession, testNow)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "Gaya", upcoming[0].Destination)
	assert.Equal(t, "2026-09-06", upcoming[0].Date.Format(models.DateLayout))

	completed, err := l.Completed(ctx, testSession, testNow)
	require.NoError(t, err)
	require.Len(t, completed, 3)
	assert.Equal(t, "Delhi", completed[0].Destination)
	assert.Equal(t, "Jaipur", completed[1].Destination)
	assert.Equal(t, "Pune", completed[2].Destination)

	// Seeding again is a no-op.
	require.NoError(t, l.Seed(ctx, testSession, testNow))
	all, err = l.List(ctx, testSession)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger()

	_, err := l.Append(ctx, "sess-a", booking(types.RideKind, "A", "B", "2026-09-10", 100))
	require.NoError(t, err)

	other, err := l.List(ctx, "sess-b")
	require.NoError(t, err)
	assert.Empty(t, other)
}
