package ticket

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelswift/booking-system/internal/domain/models"
	"github.com/travelswift/booking-system/internal/domain/types"
	"github.com/travelswift/booking-system/pkg/logger"
	"github.com/travelswift/booking-system/pkg/uuid"
)

func TestRender(t *testing.T) {
	r := NewRenderer(logger.InitLogger("ticket-test", logger.LevelError))

	id, err := uuid.New()
	require.NoError(t, err)

	user := &models.UserProfile{Name: "Demo User", Email: "demo@example.com", Phone: "9876543210"}
	booking := models.Booking{
		ID:          id,
		Kind:        types.RideKind,
		Origin:      "Patna",
		Destination: "Delhi",
		Date:        time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		Fare:        450,
		Details:     "Maruti Dzire (BR01AB1234)",
	}

	data, filename, err := r.Render(context.Background(), user, booking)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "output should be a PDF document")
	assert.Contains(t, filename, "ETICKET_")
	assert.Contains(t, filename, ".pdf")
}

func TestSafeFilenamePart(t *testing.T) {
	assert.Equal(t, "NA", safeFilenamePart("  "))
	assert.Equal(t, "a_b_c", safeFilenamePart("a b/c"))
}
