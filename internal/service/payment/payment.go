package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/travelswift/booking-system/internal/adapter/camera"
	"github.com/travelswift/booking-system/internal/domain/models"
	"github.com/travelswift/booking-system/internal/domain/types"
	"github.com/travelswift/booking-system/pkg/logger"
	wrap "github.com/travelswift/booking-system/pkg/logger/wrapper"
	"github.com/travelswift/booking-system/pkg/metrics"
)

const (
	// DefaultUPILatency approximates the gateway round trip.
	DefaultUPILatency = 2 * time.Second

	// DefaultDeclineRate is the share of simulated UPI declines.
	DefaultDeclineRate = 0.2

	metricsService = "payment"
)

// Sleeper abstracts the simulated gateway latency. The implementation
// must honor ctx cancellation.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// Rand yields draws in [0, 1). Injected so decline outcomes are
// deterministic under test.
type Rand interface {
	Float64() float64
}

// Processor resolves payment attempts against the simulated gateway
// and the camera device.
type Processor struct {
	sleeper     Sleeper
	rand        Rand
	device      camera.Device
	upiLatency  time.Duration
	declineRate float64
	now         func() time.Time
	log         logger.Logger
}

func NewProcessor(sleeper Sleeper, rand Rand, device camera.Device, upiLatency time.Duration, declineRate float64, now func() time.Time, log logger.Logger) *Processor {
	if upiLatency <= 0 {
		upiLatency = DefaultUPILatency
	}
	if declineRate < 0 || declineRate > 1 {
		declineRate = DefaultDeclineRate
	}
	if now == nil {
		now = time.Now
	}
	return &Processor{
		sleeper:     sleeper,
		rand:        rand,
		device:      device,
		upiLatency:  upiLatency,
		declineRate: declineRate,
		now:         now,
		log:         log,
	}
}

// Confirm resolves one payment attempt. Cash confirms immediately. UPI
// waits out the gateway latency and may decline; a declined attempt is
// retryable. QR acquires the camera stream, scans, and confirms like
// cash; the stream is released on every path once acquired.
func (p *Processor) Confirm(ctx context.Context, attempt models.PaymentAttempt) (*models.Confirmation, error) {
	ctx = wrap.WithAction(ctx, "confirm_payment")

	switch attempt.Method {
	case types.MethodCash:
		return p.confirm(ctx, attempt)
	case types.MethodOnline:
		switch attempt.SubMethod {
		case types.OnlineUPI:
			return p.confirmUPI(ctx, attempt)
		case types.OnlineQR:
			return p.confirmQR(ctx, attempt)
		default:
			return nil, wrap.Error(ctx, fmt.Errorf("unknown online method %q", attempt.SubMethod))
		}
	default:
		return nil, wrap.Error(ctx, fmt.Errorf("unknown payment method %q", attempt.Method))
	}
}

func (p *Processor) confirmUPI(ctx context.Context, attempt models.PaymentAttempt) (*models.Confirmation, error) {
	if err := p.sleeper.Sleep(ctx, p.upiLatency); err != nil {
		return nil, wrap.Error(ctx, err)
	}

	if p.rand.Float64() < p.declineRate {
		metrics.RecordPayment(metricsService, "upi", "declined")
		return nil, wrap.Error(ctx, types.ErrPaymentDeclined)
	}

	return p.confirm(ctx, attempt)
}

func (p *Processor) confirmQR(ctx context.Context, attempt models.PaymentAttempt) (*models.Confirmation, error) {
	stream, err := p.device.AcquireStream(ctx)
	if err != nil {
		metrics.RecordPayment(metricsService, "qr", "device_unavailable")
		return nil, wrap.Error(ctx, err)
	}
	defer func() {
		if relErr := p.device.Release(ctx, stream); relErr != nil {
			p.log.Warn(ctx, "failed to release camera stream", "error", relErr.Error())
		}
	}()

	// The scan is simulated: one captured frame counts as a read code.
	if _, err := p.device.Capture(ctx, stream); err != nil {
		metrics.RecordPayment(metricsService, "qr", "scan_failed")
		return nil, wrap.Error(ctx, err)
	}

	return p.confirm(ctx, attempt)
}

func (p *Processor) confirm(ctx context.Context, attempt models.PaymentAttempt) (*models.Confirmation, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrap.Error(ctx, err)
	}

	method := string(attempt.Method)
	if attempt.Method == types.MethodOnline {
		method = string(attempt.SubMethod)
	}
	metrics.RecordPayment(metricsService, method, "confirmed")

	p.log.Info(ctx, "payment confirmed",
		"method", method,
		"offer_id", attempt.Offer.ID,
		"amount", attempt.Offer.Fare(),
	)

	return &models.Confirmation{
		Offer:       attempt.Offer,
		Method:      attempt.Method,
		SubMethod:   attempt.SubMethod,
		Origin:      attempt.Origin,
		Destination: attempt.Destination,
		Date:        attempt.Date,
		ConfirmedAt: p.now().UTC(),
	}, nil
}
