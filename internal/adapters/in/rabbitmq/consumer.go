// Package rabbitmq consumes live messages published by any server instance and hands
// them to this instance's live channel.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrDeliveriesClosed is returned by Run when the broker closes the channel.
var ErrDeliveriesClosed = errors.New("live message deliveries closed")

// Consumer binds an exclusive, server-named queue to the fanout exchange, so every
// instance sees every message.
type Consumer struct {
	ch       *amqp.Channel
	exchange string
	hub      ports.EventPublisher
	log      *slog.Logger
}

func NewConsumer(ch *amqp.Channel, exchange string, hub ports.EventPublisher, log *slog.Logger) (*Consumer, error) {
	if ch == nil {
		return nil, errs.NewValueIsRequiredError("ch")
	}
	if exchange == "" {
		return nil, errs.NewValueIsRequiredError("exchange")
	}
	if hub == nil {
		return nil, errs.NewValueIsRequiredError("hub")
	}
	if log == nil {
		return nil, errs.NewValueIsRequiredError("log")
	}

	return &Consumer{
		ch:       ch,
		exchange: exchange,
		hub:      hub,
		log:      log.With("component", "live_bridge_consumer"),
	}, nil
}

// Run consumes until ctx is cancelled or the broker closes the deliveries.
func (c *Consumer) Run(ctx context.Context) error {
	q, err := c.ch.QueueDeclare(
		"",    // name (let server generate)
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	if err = c.ch.QueueBind(q.Name, "", c.exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}

	deliveries, err := c.ch.ConsumeWithContext(ctx,
		q.Name, // queue
		"",     // consumer
		true,   // auto-ack
		true,   // exclusive
		false,  // no-local
		false,  // no-wait
		nil,    // args
	)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	c.log.InfoContext(ctx, "live bridge consumer started", "queue", q.Name, "exchange", c.exchange)

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return ErrDeliveriesClosed
			}
			c.Handle(ctx, d.Body)
		}
	}
}

// Handle decodes one envelope and publishes it locally. Malformed bodies are logged
// and skipped.
func (c *Consumer) Handle(ctx context.Context, body []byte) {
	var envelope ports.LiveEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		c.log.ErrorContext(ctx, "failed to decode live envelope", "error", err)
		return
	}
	if len(envelope.Recipients) == 0 {
		c.log.WarnContext(ctx, "live envelope without recipients", "type", envelope.Message.Type)
		return
	}

	c.hub.Publish(ctx, envelope.Recipients, envelope.Message)
}
