package postgres

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/broadcast"
	"orderdesk/internal/pkg/errs"

	"golang.org/x/sync/singleflight"
)

const (
	reloadKey            = "orders"
	defaultReloadTimeout = 5 * time.Second
)

// Store is the PostgreSQL order store. Subscribers receive a reloaded order
// set after every change; when a Feed is attached the reload is driven by
// NOTIFY so changes made by other instances are picked up too.
type Store struct {
	factory UnitOfWorkFactory
	hub     *broadcast.Hub[ports.Snapshot]
	reloads singleflight.Group
	logger  *slog.Logger

	reloadTimeout time.Duration
	listening     atomic.Bool

	publishMu sync.Mutex
	seq       atomic.Uint64
	published uint64
}

func NewStore(factory UnitOfWorkFactory, reloadTimeout time.Duration, logger *slog.Logger) (*Store, error) {
	if factory == nil {
		return nil, errs.NewValueIsRequiredError("unit of work factory")
	}
	if reloadTimeout <= 0 {
		reloadTimeout = defaultReloadTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		factory:       factory,
		hub:           broadcast.NewHub[ports.Snapshot](),
		logger:        logger.With("component", "postgres-order-store"),
		reloadTimeout: reloadTimeout,
	}, nil
}

func (s *Store) Create(ctx context.Context, o *order.Order) (*order.Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	stored, err := o.WithID(kernel.NewUUID())
	if err != nil {
		return nil, err
	}

	if err := s.inTx(ctx, func(repo OrderRepository) error {
		return repo.Add(ctx, stored)
	}); err != nil {
		return nil, classify("create order", err)
	}

	s.afterWrite(ctx)
	return stored, nil
}

func (s *Store) List(ctx context.Context) ([]*order.Order, error) {
	orders, err := s.factory.Create().OrderRepository().List(ctx)
	if err != nil {
		return nil, classify("list orders", err)
	}
	return orders, nil
}

func (s *Store) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	o, err := s.factory.Create().OrderRepository().Get(ctx, id)
	if err != nil {
		return nil, classify("get order", err)
	}
	return o, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id kernel.UUID, status order.Status) error {
	if err := s.inTx(ctx, func(repo OrderRepository) error {
		return repo.UpdateStatus(ctx, id, status)
	}); err != nil {
		return classify("update order status", err)
	}

	s.afterWrite(ctx)
	return nil
}

// Subscribe attaches handler. The first subscriber of a store that has not
// loaded anything yet triggers a background reload.
func (s *Store) Subscribe(handler func(ports.Snapshot)) ports.Subscription {
	sub := s.hub.Subscribe(handler)
	if _, ok := s.hub.Latest(); !ok {
		go func() {
			if err := s.reload(context.Background(), false); err != nil {
				s.logger.Warn("initial reload failed", "error", err)
			}
		}()
	}
	return sub
}

// Refresh reloads the order set and publishes it. A failed reload publishes
// a degraded snapshot and returns the classified error.
func (s *Store) Refresh(ctx context.Context) error {
	return s.reload(ctx, false)
}

// Close cancels every subscription.
func (s *Store) Close() {
	s.hub.Close()
}

func (s *Store) inTx(ctx context.Context, fn func(repo OrderRepository) error) error {
	uow := s.factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	if err := fn(uow.OrderRepository()); err != nil {
		if rbErr := uow.Rollback(ctx); rbErr != nil {
			s.logger.WarnContext(ctx, "rollback failed", "error", rbErr)
		}
		return err
	}

	return uow.Commit(ctx)
}

// afterWrite reloads directly when no feed delivers notifications.
func (s *Store) afterWrite(ctx context.Context) {
	if s.listening.Load() {
		return
	}
	if err := s.reload(ctx, true); err != nil {
		s.logger.WarnContext(ctx, "reload after write failed", "error", err)
	}
}

// reload lists the orders and publishes them. Concurrent reloads share one
// query; fresh forces a new query so a change committed before the call is
// always included.
func (s *Store) reload(ctx context.Context, fresh bool) error {
	if fresh {
		s.reloads.Forget(reloadKey)
	}

	_, err, _ := s.reloads.Do(reloadKey, func() (any, error) {
		seq := s.seq.Add(1)

		reloadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.reloadTimeout)
		defer cancel()

		orders, err := s.List(reloadCtx)
		if err != nil {
			s.publish(seq, ports.NewDegradedSnapshot(err, time.Now()))
			return nil, err
		}

		s.publish(seq, ports.NewSnapshot(orders, time.Now()))
		return nil, nil
	})

	return err
}

// degrade publishes an empty degraded snapshot.
func (s *Store) degrade(reason error) {
	s.publish(s.seq.Add(1), ports.NewDegradedSnapshot(reason, time.Now()))
}

// publish drops results of reloads overtaken by a later one.
func (s *Store) publish(seq uint64, snapshot ports.Snapshot) {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	if seq <= s.published {
		return
	}
	s.published = seq
	s.hub.Publish(snapshot)
}

func (s *Store) setListening(v bool) {
	s.listening.Store(v)
}
