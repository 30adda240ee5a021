// Package rabbitmq bridges live messages between server instances through a fanout
// exchange. Every instance consumes the exchange and hands the messages to its own
// live channel, so a subscriber connected to any instance receives them.
package rabbitmq

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// DeclareExchange declares the durable fanout exchange live messages travel through.
func DeclareExchange(ch *amqp.Channel, exchange string) error {
	return ch.ExchangeDeclare(
		exchange, // name
		"fanout", // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
}

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Publisher implements ports.EventPublisher by publishing to the exchange. When the
// broker rejects a message it is handed to local instead, so subscribers of this
// instance still get it.
type Publisher struct {
	ch       channel
	exchange string
	local    ports.EventPublisher
	log      *slog.Logger
}

func NewPublisher(ch *amqp.Channel, exchange string, local ports.EventPublisher, log *slog.Logger) (*Publisher, error) {
	if ch == nil {
		return nil, errs.NewValueIsRequiredError("ch")
	}
	return newPublisher(ch, exchange, local, log)
}

func newPublisher(ch channel, exchange string, local ports.EventPublisher, log *slog.Logger) (*Publisher, error) {
	if exchange == "" {
		return nil, errs.NewValueIsRequiredError("exchange")
	}
	if local == nil {
		return nil, errs.NewValueIsRequiredError("local")
	}
	if log == nil {
		return nil, errs.NewValueIsRequiredError("log")
	}

	return &Publisher{
		ch:       ch,
		exchange: exchange,
		local:    local,
		log:      log.With("component", "live_bridge_publisher"),
	}, nil
}

func (p *Publisher) Publish(ctx context.Context, recipients []ports.Recipient, msg ports.LiveMessage) {
	body, err := json.Marshal(ports.LiveEnvelope{Recipients: recipients, Message: msg})
	if err != nil {
		p.log.ErrorContext(ctx, "failed to encode live envelope", "error", err)
		p.local.Publish(ctx, recipients, msg)
		return
	}

	// The caller's request may already be finished; publishing must not depend on it.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	err = p.ch.PublishWithContext(pubCtx,
		p.exchange, // exchange
		"",         // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   time.Now(),
		})
	if err != nil {
		p.log.ErrorContext(ctx, "failed to publish live message, delivering locally",
			"error", err, "type", msg.Type, "order_id", msg.OrderID)
		p.local.Publish(ctx, recipients, msg)
	}
}
