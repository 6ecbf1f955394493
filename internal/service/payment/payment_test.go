package payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelswift/booking-system/internal/adapter/camera"
	"github.com/travelswift/booking-system/internal/domain/models"
	"github.com/travelswift/booking-system/internal/domain/types"
	"github.com/travelswift/booking-system/pkg/logger"
)

type instantSleeper struct {
	slept []time.Duration
}

func (s *instantSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.slept = append(s.slept, d)
	return nil
}

// fixedRand returns a scripted sequence of draws.
type fixedRand struct {
	draws []float64
	i     int
}

func (r *fixedRand) Float64() float64 {
	if r.i >= len(r.draws) {
		return 1
	}
	v := r.draws[r.i]
	r.i++
	return v
}

func testOffer() models.Offer {
	return models.Offer{
		ID:   "ride-1",
		Kind: types.RideKind,
		Ride: &models.RideOffer{
			DriverName:    "Rajesh Kumar",
			VehicleModel:  "Maruti Dzire",
			VehicleNumber: "BR01AB1234",
			ETAMinutes:    5,
			Fare:          450,
			Rating:        4.8,
		},
	}
}

func newTestProcessor(rand Rand, device camera.Device) (*Processor, *instantSleeper) {
	sleeper := &instantSleeper{}
	now := func() time.Time { return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC) }
	log := logger.InitLogger("payment-test", logger.LevelError)
	return NewProcessor(sleeper, rand, device, DefaultUPILatency, DefaultDeclineRate, now, log), sleeper
}

func TestConfirmCash(t *testing.T) {
	ctx := context.Background()
	proc, sleeper := newTestProcessor(&fixedRand{}, camera.NewMockDevice(true))

	conf, err := proc.Confirm(ctx, models.PaymentAttempt{
		Offer:       testOffer(),
		Method:      types.MethodCash,
		Origin:      "Patna",
		Destination: "Delhi",
	})
	require.NoError(t, err)

	assert.Equal(t, types.MethodCash, conf.Method)
	assert.Equal(t, "ride-1", conf.Offer.ID)
	assert.Equal(t, "Patna", conf.Origin)
	assert.Equal(t, "Delhi", conf.Destination)
	assert.Equal(t, time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC), conf.ConfirmedAt)

	// Cash confirms immediately, no gateway latency.
	assert.Empty(t, sleeper.slept)
}

func TestConfirmUPI(t *testing.T) {
	ctx := context.Background()
	attempt := models.PaymentAttempt{
		Offer:     testOffer(),
		Method:    types.MethodOnline,
		SubMethod: types.OnlineUPI,
	}

	t.Run("success", func(t *testing.T) {
		proc, sleeper := newTestProcessor(&fixedRand{draws: []float64{0.9}}, camera.NewMockDevice(true))

		conf, err := proc.Confirm(ctx, attempt)
		require.NoError(t, err)
		assert.Equal(t, types.OnlineUPI, conf.SubMethod)
		assert.Equal(t, []time.Duration{DefaultUPILatency}, sleeper.slept)
	})

	t.Run("decline is retryable", func(t *testing.T) {
		// First draw declines, second succeeds.
		proc, _ := newTestProcessor(&fixedRand{draws: []float64{0.1, 0.9}}, camera.NewMockDevice(true))

		_, err := proc.Confirm(ctx, attempt)
		require.ErrorIs(t, err, types.ErrPaymentDeclined)

		conf, err := proc.Confirm(ctx, attempt)
		require.NoError(t, err)
		assert.NotNil(t, conf)
	})

	t.Run("cancelled during gateway wait", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		proc, _ := newTestProcessor(&fixedRand{}, camera.NewMockDevice(true))
		_, err := proc.Confirm(cancelled, attempt)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestConfirmQR(t *testing.T) {
	ctx := context.Background()
	attempt := models.PaymentAttempt{
		Offer:     testOffer(),
		Method:    types.MethodOnline,
		SubMethod: types.OnlineQR,
	}

	t.Run("scan confirms like cash", func(t *testing.T) {
		device := camera.NewMockDevice(true)
		proc, sleeper := newTestProcessor(&fixedRand{}, device)

		conf, err := proc.Confirm(ctx, attempt)
		require.NoError(t, err)
		assert.Equal(t, types.OnlineQR, conf.SubMethod)
		assert.Empty(t, sleeper.slept)

		// The stream is released after the scan.
		assert.Zero(t, device.OpenStreams())
	})

	t.Run("device unavailable", func(t *testing.T) {
		device := camera.NewMockDevice(false)
		proc, _ := newTestProcessor(&fixedRand{}, device)

		_, err := proc.Confirm(ctx, attempt)
		assert.ErrorIs(t, err, types.ErrDeviceUnavailable)
		assert.Zero(t, device.OpenStreams())
	})

	t.Run("cancelled mid-scan releases the stream", func(t *testing.T) {
		scanCtx, cancel := context.WithCancel(ctx)
		device := &cancellingDevice{MockDevice: camera.NewMockDevice(true), cancel: cancel}
		proc, _ := newTestProcessor(&fixedRand{}, device)

		_, err := proc.Confirm(scanCtx, attempt)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, device.OpenStreams())
	})
}

// cancellingDevice cancels the scan context as soon as the stream is
// acquired, so the capture that follows fails mid-scan.
type cancellingDevice struct {
	*camera.MockDevice
	cancel context.CancelFunc
}

func (d *cancellingDevice) AcquireStream(ctx context.Context) (camera.StreamHandle, error) {
	stream, err := d.MockDevice.AcquireStream(ctx)
	d.cancel()
	return stream, err
}

func TestConfirmUnknownMethod(t *testing.T) {
	ctx := context.Background()
	proc, _ := newTestProcessor(&fixedRand{}, camera.NewMockDevice(true))

	_, err := proc.Confirm(ctx, models.PaymentAttempt{Offer: testOffer(), Method: "card"})
	assert.Error(t, err)

	_, err = proc.Confirm(ctx, models.PaymentAttempt{
		Offer:     testOffer(),
		Method:    types.MethodOnline,
		SubMethod: "netbanking",
	})
	assert.Error(t, err)
}
