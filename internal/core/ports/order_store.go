// Package ports defines the contracts between the ordering core and the
// infrastructure around it: the order store with its change stream and the
// order event publisher.
package ports

import (
	"context"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
)

// OrderStore persists orders and pushes the full order set to subscribers on
// every change. Failures are reported as *errs.StoreError so callers can tell
// a transient outage from a configuration problem.
type OrderStore interface {
	// Create persists a new order and returns the stored copy carrying the
	// store-assigned identifier.
	Create(ctx context.Context, o *order.Order) (*order.Order, error)

	// List returns every order, newest first by placement time.
	List(ctx context.Context) ([]*order.Order, error)

	// Get returns one order or an *errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UpdateStatus changes the status field only. Other fields are write-once.
	UpdateStatus(ctx context.Context, id kernel.UUID, status order.Status) error

	// Subscribe attaches a handler that receives the current snapshot right
	// away and a new one after every change. The handler runs on its own
	// goroutine and is never invoked after the subscription is cancelled.
	Subscribe(handler func(Snapshot)) Subscription

	// Refresh reloads the order set and pushes it to subscribers.
	Refresh(ctx context.Context) error
}

// Subscription is the cancellation handle of a change stream attachment.
// Cancel is idempotent.
type Subscription interface {
	Cancel()
}

// Snapshot is the complete ordered order set at one point in time. When the
// stream is degraded Orders is empty and Degraded holds the reason, so "no
// orders" and "orders unknown" stay distinguishable.
type Snapshot struct {
	Orders   []*order.Order
	Degraded error
	At       time.Time
}

// NewSnapshot wraps an authoritative order set.
func NewSnapshot(orders []*order.Order, at time.Time) Snapshot {
	return Snapshot{Orders: orders, At: at}
}

// NewDegradedSnapshot reports a stream failure with an empty order set.
func NewDegradedSnapshot(reason error, at time.Time) Snapshot {
	return Snapshot{Orders: []*order.Order{}, Degraded: reason, At: at}
}

func (s Snapshot) IsDegraded() bool {
	return s.Degraded != nil
}
