// Package postgres keeps orders in PostgreSQL through GORM.
//
// Writes go through a GormUnitOfWork: repositories created from an active
// unit of work share its transaction, and every aggregate they touch is
// tracked. On Commit the unit of work raises one NOTIFY on ChangesChannel
// per tracked order inside the same transaction, so listeners only hear
// about changes that were actually committed.
//
// Basic usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	if err := uow.OrderRepository().Add(ctx, o); err != nil {
//	    _ = uow.Rollback(ctx)
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Store wraps the unit of work and the change feed into the order store
// used by the application layer.
package postgres

import (
	"context"

	"orderdesk/internal/adapters/out/postgres/orderrepo"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// ChangesChannel is the NOTIFY channel carrying the id of each changed order.
const ChangesChannel = "orders_changed"

type OrderRepository interface {
	Add(ctx context.Context, aggregate *order.Order) error
	UpdateStatus(ctx context.Context, id kernel.UUID, status order.Status) error
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
	List(ctx context.Context) ([]*order.Order, error)
}

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	OrderRepository() OrderRepository
}

type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// trackedAggregate is an order written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create returns a fresh unit of work. Instances are not safe for
// concurrent use; each operation gets its own.
func (f *GormUnitOfWorkFactory) Create() UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin opens a transaction. Calling it twice keeps the first one.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit notifies listeners about the tracked orders and commits. If the
// notification fails the transaction is rolled back.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	tx := uow.tx
	uow.tx = nil

	for _, tracked := range uow.trackedAggregates {
		if err := tx.Exec("SELECT pg_notify(?, ?)", ChangesChannel, tracked.ID.String()).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	uow.trackedAggregates = uow.trackedAggregates[:0]
	return tx.Commit().Error
}

func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// OrderRepository uses the open transaction when there is one, otherwise
// the plain connection.
func (uow *GormUnitOfWork) OrderRepository() OrderRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return orderrepo.NewGormOrderRepository(db, uow)
}

func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedCount reports how many aggregates are waiting for Commit.
func (uow *GormUnitOfWork) TrackedCount() int {
	return len(uow.trackedAggregates)
}
