package commands_test

import (
	"context"
	"testing"
	"time"

	"orderdesk/internal/core/domain/model/cart"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/menu"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderStore struct{ mock.Mock }

func (m *MockOrderStore) Create(ctx context.Context, o *order.Order) (*order.Order, error) {
	args := m.Called(ctx, o)
	if fn, ok := args.Get(0).(func(context.Context, *order.Order) (*order.Order, error)); ok {
		return fn(ctx, o)
	}
	stored, _ := args.Get(0).(*order.Order)
	return stored, args.Error(1)
}

func (m *MockOrderStore) List(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderStore) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if fn, ok := args.Get(0).(func(context.Context, kernel.UUID) (*order.Order, error)); ok {
		return fn(ctx, id)
	}
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderStore) UpdateStatus(ctx context.Context, id kernel.UUID, status order.Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOrderStore) Subscribe(handler func(ports.Snapshot)) ports.Subscription {
	args := m.Called(handler)
	return args.Get(0).(ports.Subscription)
}

func (m *MockOrderStore) Refresh(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, event ports.OrderEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockObserver struct{ mock.Mock }

func (m *MockObserver) OrderSubmitted()                    { m.Called() }
func (m *MockObserver) SubmissionFailed(kind errs.Kind)    { m.Called(kind) }
func (m *MockObserver) StatusAdvanced(status order.Status) { m.Called(status) }

func hasDeadline(ctx context.Context) bool {
	_, ok := ctx.Deadline()
	return ok
}

// stalled blocks until the store call's context ends.
func stalled(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func newCart(t *testing.T, number string, items ...menu.ItemID) *cart.Cart {
	t.Helper()
	catalog, err := menu.Default()
	require.NoError(t, err)
	b, err := cart.NewBuilder(catalog)
	require.NoError(t, err)
	c, err := cart.NewCart(number)
	require.NoError(t, err)
	for _, id := range items {
		_, err = b.SelectItem(c, id)
		require.NoError(t, err)
	}
	return c
}

func newStaff(t *testing.T) order.Staff {
	t.Helper()
	staff, err := order.NewStaff("staff-1", "Counter")
	require.NoError(t, err)
	return staff
}

func storedOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	price, err := kernel.NewMoney(90)
	require.NoError(t, err)
	item, err := order.NewItem("Water", price, 1, nil)
	require.NoError(t, err)
	o, err := order.RestoreOrder(kernel.NewUUID(), "T1", []order.Item{item}, "", price, status, time.Now(), newStaff(t))
	require.NoError(t, err)
	return o
}

// testContext returns a context that is cancelled when the test finishes.
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
