package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewAdvanceOrderStatusCommand(t *testing.T) {
	_, err := commands.NewAdvanceOrderStatusCommand(kernel.UUID{})

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestAdvanceOrderStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := testContext(t)
	placed := storedOrder(t, order.Placed)
	cmd, err := commands.NewAdvanceOrderStatusCommand(placed.ID())
	require.NoError(t, err)

	store := new(MockOrderStore)
	publisher := new(MockPublisher)
	observer := new(MockObserver)
	mock.InOrder(
		store.On("Get", mock.MatchedBy(hasDeadline), placed.ID()).Return(placed, nil).Once(),
		store.On("UpdateStatus", mock.MatchedBy(hasDeadline), placed.ID(), order.Completed).Return(nil).Once(),
		observer.On("StatusAdvanced", order.Completed).Once(),
		publisher.On("Publish", ctx, mock.MatchedBy(func(e ports.OrderEvent) bool {
			return e.Type == ports.OrderCompleted && e.Status == order.Completed && e.Number == "T1"
		})).Return(nil).Once(),
	)

	h, err := commands.NewAdvanceOrderStatusCommandHandler(store, publisher, observer, time.Second, nil)
	require.NoError(t, err)
	next, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Completed, next)
	assert.Equal(t, order.Placed, placed.Status(), "local copy must not change optimistically")
	store.AssertExpectations(t)
	observer.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestAdvanceOrderStatusCommandHandler_Handle_TerminalState(t *testing.T) {
	completed := storedOrder(t, order.Completed)
	cmd, _ := commands.NewAdvanceOrderStatusCommand(completed.ID())

	store := new(MockOrderStore)
	store.On("Get", mock.Anything, completed.ID()).Return(completed, nil).Once()

	h, _ := commands.NewAdvanceOrderStatusCommandHandler(store, commands.NopPublisher{}, nil, time.Second, nil)
	next, err := h.Handle(testContext(t), cmd)

	require.Error(t, err)
	assert.Equal(t, order.Unknown, next)
	assert.True(t, errs.HasReason(err, errs.ReasonTerminalState))
	store.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdvanceOrderStatusCommandHandler_Handle_NotFound(t *testing.T) {
	id := kernel.NewUUID()
	cmd, _ := commands.NewAdvanceOrderStatusCommand(id)

	store := new(MockOrderStore)
	store.On("Get", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once()

	h, _ := commands.NewAdvanceOrderStatusCommandHandler(store, commands.NopPublisher{}, nil, time.Second, nil)
	_, err := h.Handle(testContext(t), cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestAdvanceOrderStatusCommandHandler_Handle_UpdateError(t *testing.T) {
	placed := storedOrder(t, order.Placed)
	cmd, _ := commands.NewAdvanceOrderStatusCommand(placed.ID())

	store := new(MockOrderStore)
	publisher := new(MockPublisher)
	observer := new(MockObserver)
	denied := errs.NewStoreError("update order status", errs.StorePermissionDenied, errors.New("42501"))
	store.On("Get", mock.Anything, placed.ID()).Return(placed, nil).Once()
	store.On("UpdateStatus", mock.Anything, placed.ID(), order.Completed).Return(denied).Once()

	h, _ := commands.NewAdvanceOrderStatusCommandHandler(store, publisher, observer, time.Second, nil)
	next, err := h.Handle(testContext(t), cmd)

	require.ErrorIs(t, err, errs.ErrStorePermissionDenied)
	assert.Equal(t, order.Unknown, next)
	assert.Equal(t, order.Placed, placed.Status())
	observer.AssertNotCalled(t, "StatusAdvanced", mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestAdvanceOrderStatusCommandHandler_Handle_StoreTimeout(t *testing.T) {
	id := kernel.NewUUID()
	cmd, _ := commands.NewAdvanceOrderStatusCommand(id)

	store := new(MockOrderStore)
	publisher := new(MockPublisher)
	observer := new(MockObserver)
	store.On("Get", mock.MatchedBy(hasDeadline), id).
		Return(func(ctx context.Context, _ kernel.UUID) (*order.Order, error) {
			return nil, stalled(ctx)
		}).Once()

	timeout := 50 * time.Millisecond
	h, _ := commands.NewAdvanceOrderStatusCommandHandler(store, publisher, observer, timeout, nil)
	started := time.Now()
	next, err := h.Handle(testContext(t), cmd)
	elapsed := time.Since(started)

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, order.Unknown, next)
	assert.GreaterOrEqual(t, elapsed, timeout)
	assert.Less(t, elapsed, time.Second)
	store.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	observer.AssertNotCalled(t, "StatusAdvanced", mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestAdvanceOrderStatusCommandHandler_Handle_CommandNotConstructed(t *testing.T) {
	h, _ := commands.NewAdvanceOrderStatusCommandHandler(new(MockOrderStore), commands.NopPublisher{}, nil, 0, nil)

	_, err := h.Handle(testContext(t), commands.AdvanceOrderStatusCommand{})

	require.ErrorIs(t, err, commands.ErrAdvanceOrderStatusCommandIsNotConstructed)
}
