package ports

import (
	"context"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
)

type OrderEventType string

const (
	OrderPlaced    OrderEventType = "order.placed"
	OrderCompleted OrderEventType = "order.completed"
)

// OrderEvent notifies systems outside the outlet, such as a receipt printer
// or an accounting export, that an order changed.
type OrderEvent struct {
	Type       OrderEventType
	OrderID    kernel.UUID
	Number     string
	Status     order.Status
	TotalMinor int64
	StaffID    string
	OccurredAt time.Time
}

func NewOrderEvent(eventType OrderEventType, o *order.Order, status order.Status, at time.Time) OrderEvent {
	return OrderEvent{
		Type:       eventType,
		OrderID:    o.ID(),
		Number:     o.Number(),
		Status:     status,
		TotalMinor: o.Total().Minor(),
		StaffID:    o.Staff().ID(),
		OccurredAt: at,
	}
}

// OrderEventPublisher delivers order events. Publishing is best effort: the
// order store stays the source of truth.
type OrderEventPublisher interface {
	Publish(ctx context.Context, event OrderEvent) error
}
