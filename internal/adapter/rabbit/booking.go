package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/travelswift/booking-system/internal/domain/models"
	"github.com/travelswift/booking-system/pkg/logger"
	wrap "github.com/travelswift/booking-system/pkg/logger/wrapper"
	"github.com/travelswift/booking-system/pkg/rabbit"
)

// BookingExchange carries booking lifecycle events, routed by the
// event name (booking.created, payment.confirmed, ticket.issued).
const BookingExchange = "booking.events"

type BookingBroker struct {
	client   *rabbit.RabbitMQ
	exchange string

	l logger.Logger
}

func NewBookingBroker(ctx context.Context, client *rabbit.RabbitMQ, log logger.Logger) (*BookingBroker, error) {
	b := &BookingBroker{
		client:   client,
		exchange: BookingExchange,
		l:        log,
	}

	if err := client.EnsureConnection(ctx); err != nil {
		return nil, fmt.Errorf("rabbitmq connection: %w", err)
	}

	if err := client.Channel.ExchangeDeclare(
		b.exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return nil, fmt.Errorf("declare exchange %q: %w", b.exchange, err)
	}

	return b, nil
}

// Publish emits one booking lifecycle event. The routing key is the
// event name itself.
func (b *BookingBroker) Publish(ctx context.Context, body models.BookingEventBody) error {
	ctx = wrap.WithAction(ctx, "rabbitmq_publish_booking_event")

	if err := b.client.EnsureConnection(ctx); err != nil {
		b.l.Error(ctx, "ensure connection failed", err)
		return wrap.Error(ctx, err)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("failed to marshal message: %w", err))
	}

	key := body.Event.String()

	if err := retry(5, time.Second, func() error {
		if err := b.client.Channel.PublishWithContext(
			ctx,
			b.exchange,
			key,
			false, // mandatory
			false, // immediate
			amqp091.Publishing{
				ContentType:   "application/json",
				CorrelationId: body.SessionID,
				Body:          payload,
				Timestamp:     time.Now(),
			},
		); err != nil {
			return fmt.Errorf("failed to publish with context: %w", err)
		}
		return nil
	}); err != nil {
		return wrap.Error(ctx, err)
	}

	b.l.Debug(ctx, "booking event published", "event", key, "session_id", body.SessionID)
	return nil
}

func retry(n int, sleep time.Duration, fn func() error) error {
	var err error
	for range n {
		if err = fn(); err == nil {
			return nil
		}
		time.Sleep(sleep)
	}
	return err
}
