// Package rabbitmq publishes order events to a topic exchange. The routing
// key is the event type, e.g. "order.placed".
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrPublishNack = errors.New("publish nacked by broker")

// Channel is the part of *amqp.Channel the publisher uses.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type Publisher struct {
	ch       Channel
	conn     *amqp.Connection
	acks     <-chan amqp.Confirmation
	exchange string

	// confirms arrive in publish order, so publishes are serialised
	mu sync.Mutex
}

type eventMessage struct {
	Type       string    `json:"type"`
	OrderID    string    `json:"orderId"`
	Number     string    `json:"number"`
	Status     string    `json:"status"`
	TotalMinor int64     `json:"totalMinor"`
	StaffID    string    `json:"staffId"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Dial connects, declares a durable topic exchange and enables publisher
// confirms.
func Dial(url, exchange string) (*Publisher, error) {
	if url == "" {
		return nil, errs.NewValueIsRequiredError("url")
	}
	if exchange == "" {
		return nil, errs.NewValueIsRequiredError("exchange")
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("enable confirms: %w", err)
	}
	acks := ch.NotifyPublish(make(chan amqp.Confirmation, 1))

	p, err := NewPublisher(ch, acks, exchange)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

// NewPublisher wraps an open channel. acks may be nil when the channel is
// not in confirm mode.
func NewPublisher(ch Channel, acks <-chan amqp.Confirmation, exchange string) (*Publisher, error) {
	if ch == nil {
		return nil, errs.NewValueIsRequiredError("channel")
	}
	if exchange == "" {
		return nil, errs.NewValueIsRequiredError("exchange")
	}
	return &Publisher{ch: ch, acks: acks, exchange: exchange}, nil
}

func (p *Publisher) Publish(ctx context.Context, event ports.OrderEvent) error {
	body, err := json.Marshal(eventMessage{
		Type:       string(event.Type),
		OrderID:    event.OrderID.String(),
		Number:     event.Number,
		Status:     event.Status.String(),
		TotalMinor: event.TotalMinor,
		StaffID:    event.StaffID,
		OccurredAt: event.OccurredAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.PublishWithContext(ctx, p.exchange, string(event.Type), false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Timestamp:    event.OccurredAt,
		MessageId:    event.OrderID.String() + "/" + string(event.Type),
		Body:         body,
	}); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}

	if p.acks == nil {
		return nil
	}

	select {
	case conf := <-p.acks:
		if !conf.Ack {
			return ErrPublishNack
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Publisher) Close() error {
	err := p.ch.Close()
	if p.conn != nil {
		err = errors.Join(err, p.conn.Close())
	}
	return err
}
