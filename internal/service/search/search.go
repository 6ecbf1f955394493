package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/travelswift/booking-system/internal/domain/models"
	"github.com/travelswift/booking-system/internal/domain/types"
	"github.com/travelswift/booking-system/pkg/logger"
	wrap "github.com/travelswift/booking-system/pkg/logger/wrapper"
	"github.com/travelswift/booking-system/pkg/metrics"
)

// SentinelFailOrigin makes the upstream inventory call fail after the
// latency elapses, exercising the degraded path end to end.
const SentinelFailOrigin = "fail"

// DefaultLatency approximates the round trip to the upstream inventory.
const DefaultLatency = 1500 * time.Millisecond

// BusTypeAny disables the transit class filter.
const BusTypeAny = "any"

const metricsService = "search"

// Sleeper abstracts the simulated upstream latency so tests run at
// full speed. The implementation must honor ctx cancellation.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// RealSleeper blocks on a timer, bailing out early if ctx is done.
type RealSleeper struct{}

func (RealSleeper) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Query describes one inventory lookup.
type Query struct {
	Kind        types.ServiceKind
	Origin      string
	Destination string
	Date        time.Time
	BusType     string
}

// Engine resolves queries against the simulated inventory.
type Engine struct {
	sleeper Sleeper
	latency time.Duration
	log     logger.Logger
}

func NewEngine(sleeper Sleeper, latency time.Duration, log logger.Logger) *Engine {
	if sleeper == nil {
		sleeper = RealSleeper{}
	}
	if latency <= 0 {
		latency = DefaultLatency
	}
	return &Engine{
		sleeper: sleeper,
		latency: latency,
		log:     log,
	}
}

// Search validates the query, waits out the simulated upstream latency
// and returns the matching offers. Validation failures are reported
// before any latency is spent; the upstream failure sentinel only
// fires after it.
func (e *Engine) Search(ctx context.Context, query Query) ([]models.Offer, error) {
	ctx = wrap.WithAction(ctx, "search_offers")

	if !query.Kind.Valid() {
		return nil, wrap.Error(ctx, types.ErrValidationFailed)
	}
	if strings.TrimSpace(query.Origin) == "" ||
		strings.TrimSpace(query.Destination) == "" ||
		query.Date.IsZero() {
		return nil, wrap.Error(ctx, types.ErrValidationFailed)
	}

	if err := e.sleeper.Sleep(ctx, e.latency); err != nil {
		return nil, wrap.Error(ctx, err)
	}

	if strings.EqualFold(strings.TrimSpace(query.Origin), SentinelFailOrigin) {
		metrics.RecordSearch(metricsService, string(query.Kind), "upstream_error")
		return nil, wrap.Error(ctx, types.ErrUpstreamUnavailable)
	}

	var offers []models.Offer
	switch query.Kind {
	case types.RideKind:
		offers = rideFleet()
	case types.TransitKind:
		offers = filterByBusType(transitFleet(), query.BusType)
	}

	for i := range offers {
		offers[i].ID = fmt.Sprintf("%s-%d", query.Kind, i+1)
	}

	e.log.Debug(ctx, "search resolved",
		"kind", query.Kind,
		"origin", query.Origin,
		"destination", query.Destination,
		"results", len(offers),
	)
	metrics.RecordSearch(metricsService, string(query.Kind), "ok")

	return offers, nil
}

// filterByBusType narrows transit offers by class. "any" keeps all,
// "non-ac" keeps classes that do not mention "ac", anything else is a
// case-insensitive substring match. An empty result is valid.
func filterByBusType(offers []models.Offer, busType string) []models.Offer {
	busType = strings.ToLower(strings.TrimSpace(busType))
	if busType == "" || busType == BusTypeAny {
		return offers
	}

	filtered := make([]models.Offer, 0, len(offers))
	for _, o := range offers {
		class := strings.ToLower(o.Transit.Class)
		if busType == "non-ac" {
			if !strings.Contains(class, "ac") {
				filtered = append(filtered, o)
			}
			continue
		}
		if strings.Contains(class, busType) {
			filtered = append(filtered, o)
		}
	}
	return filtered
}
