// Package memory is an in-process order store for development and tests. It
// keeps orders in a map and pushes a fresh snapshot after every change.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/broadcast"
	"orderdesk/internal/pkg/errs"
)

type Store struct {
	mu     sync.RWMutex
	orders map[kernel.UUID]*order.Order
	hub    *broadcast.Hub[ports.Snapshot]
}

func NewStore() *Store {
	s := &Store{
		orders: make(map[kernel.UUID]*order.Order),
		hub:    broadcast.NewHub[ports.Snapshot](),
	}
	s.hub.Publish(ports.NewSnapshot([]*order.Order{}, time.Now()))
	return s
}

func (s *Store) Create(ctx context.Context, o *order.Order) (*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.NewStoreError("create order", errs.StoreUnavailable, err)
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}

	stored, err := o.WithID(kernel.NewUUID())
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders[stored.ID()] = stored
	s.publishLocked()
	return stored, nil
}

func (s *Store) List(ctx context.Context) ([]*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.NewStoreError("list orders", errs.StoreUnavailable, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked(), nil
}

func (s *Store) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.NewStoreError("get order", errs.StoreUnavailable, err)
	}
	if err := id.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return o, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id kernel.UUID, status order.Status) error {
	if err := ctx.Err(); err != nil {
		return errs.NewStoreError("update order status", errs.StoreUnavailable, err)
	}
	if err := status.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.orders[id]
	if !ok {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	updated, err := current.WithStatus(status)
	if err != nil {
		return err
	}
	s.orders[id] = updated
	s.publishLocked()
	return nil
}

func (s *Store) Subscribe(handler func(ports.Snapshot)) ports.Subscription {
	return s.hub.Subscribe(handler)
}

func (s *Store) Refresh(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errs.NewStoreError("refresh orders", errs.StoreUnavailable, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.publishLocked()
	return nil
}

// Close cancels every subscription.
func (s *Store) Close() {
	s.hub.Close()
}

// publishLocked pushes the current order set. Callers hold s.mu, which keeps
// snapshots in the order the changes were made.
func (s *Store) publishLocked() {
	s.hub.Publish(ports.NewSnapshot(s.sortedLocked(), time.Now()))
}

func (s *Store) sortedLocked() []*order.Order {
	orders := make([]*order.Order, 0, len(s.orders))
	for _, o := range s.orders {
		orders = append(orders, o)
	}

	slices.SortStableFunc(orders, func(a, b *order.Order) int {
		if c := b.PlacedAt().Compare(a.PlacedAt()); c != 0 {
			return c
		}
		return compareIDs(a.ID(), b.ID())
	})
	return orders
}

func compareIDs(a, b kernel.UUID) int {
	switch {
	case a.String() < b.String():
		return -1
	case a.String() > b.String():
		return 1
	default:
		return 0
	}
}
