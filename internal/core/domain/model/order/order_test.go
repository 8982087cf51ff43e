package order_test

import (
	"testing"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, minor int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(minor)
	require.NoError(t, err)
	return m
}

func wrapItem(t *testing.T, quantity int) order.Item {
	t.Helper()
	dip, err := order.NewCondiment(6, "Atomic Dip")
	require.NoError(t, err)
	item, err := order.NewItem("Tortilla Wrap", mustMoney(t, 870), quantity, []order.Condiment{dip})
	require.NoError(t, err)
	return item
}

func counter(t *testing.T) order.Staff {
	t.Helper()
	staff, err := order.NewStaff("staff-1", "Counter")
	require.NoError(t, err)
	return staff
}

func TestNewItem(t *testing.T) {
	t.Run("should keep condiment snapshot", func(t *testing.T) {
		item := wrapItem(t, 2)

		require.NoError(t, item.Validate())
		assert.Equal(t, "Tortilla Wrap", item.Name())
		assert.Equal(t, 2, item.Quantity())
		assert.Equal(t, []string{"Atomic Dip"}, item.CondimentNames())
		subtotal, err := item.Subtotal()
		require.NoError(t, err)
		assert.Equal(t, int64(1740), subtotal.Minor())
	})

	t.Run("should collect every invalid field", func(t *testing.T) {
		_, err := order.NewItem(" ", kernel.Money{}, 0, nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "item name")
		assert.Contains(t, err.Error(), "unit price")
		assert.Contains(t, err.Error(), "0 is not greater than 0")
	})

	t.Run("should reject more than two condiments", func(t *testing.T) {
		a, _ := order.NewCondiment(6, "Atomic Dip")
		b, _ := order.NewCondiment(7, "Chipotle Dip")
		c, _ := order.NewCondiment(8, "Garlic Dip")

		_, err := order.NewItem("Tortilla Wrap", mustMoney(t, 870), 1, []order.Condiment{a, b, c})

		assert.True(t, errs.HasReason(err, errs.ReasonCondimentLimitExceeded))
	})

	t.Run("should reject zero value condiment", func(t *testing.T) {
		_, err := order.NewItem("Tortilla Wrap", mustMoney(t, 870), 1, []order.Condiment{{}})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Condiment must be created")
	})
}

func TestNewStaff(t *testing.T) {
	t.Run("should default name to id", func(t *testing.T) {
		s, err := order.NewStaff("counter", "")

		require.NoError(t, err)
		assert.Equal(t, "counter", s.Name())
	})

	t.Run("should require id", func(t *testing.T) {
		_, err := order.NewStaff("", "Counter")

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestNewOrder(t *testing.T) {
	placedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should create placed order without id", func(t *testing.T) {
		o, err := order.NewOrder(" A1 ", []order.Item{wrapItem(t, 2)}, "  no onions ", mustMoney(t, 1740), counter(t), placedAt)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsZero())
		assert.Equal(t, "A1", o.Number())
		assert.Equal(t, "no onions", o.Instructions())
		assert.Equal(t, order.Placed, o.Status())
		assert.Equal(t, int64(1740), o.Total().Minor())
		assert.Equal(t, placedAt, o.PlacedAt())
		assert.Equal(t, "staff-1", o.Staff().ID())
		assert.Len(t, o.Items(), 1)
	})

	t.Run("should reject total that does not match items", func(t *testing.T) {
		o, err := order.NewOrder("A1", []order.Item{wrapItem(t, 2)}, "", mustMoney(t, 870), counter(t), placedAt)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "does not match items sum")
	})

	t.Run("should handle multiple validation errors", func(t *testing.T) {
		o, err := order.NewOrder("", nil, "", kernel.Zero(), order.Staff{}, time.Time{})

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "order number")
		assert.Contains(t, err.Error(), "order items")
		assert.Contains(t, err.Error(), "Staff must be created")
		assert.Contains(t, err.Error(), "placed at")
	})
}

func TestRestoreOrder(t *testing.T) {
	id := kernel.NewUUID()
	placedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should restore stored order with reserved status", func(t *testing.T) {
		o, err := order.RestoreOrder(id, "T3", []order.Item{wrapItem(t, 1)}, "", mustMoney(t, 870), order.Pending, placedAt, counter(t))

		require.NoError(t, err)
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("should require id and valid status", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.UUID{}, "T3", []order.Item{wrapItem(t, 1)}, "", mustMoney(t, 870), order.Unknown, placedAt, counter(t))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "0 is not a valid status")
	})
}

func TestOrder_StatusChanges(t *testing.T) {
	placedAt := time.Now()
	o, err := order.NewOrder("A1", []order.Item{wrapItem(t, 1)}, "", mustMoney(t, 870), counter(t), placedAt)
	require.NoError(t, err)

	t.Run("should compute next status without mutating", func(t *testing.T) {
		next, err := o.NextStatus()

		require.NoError(t, err)
		assert.Equal(t, order.Completed, next)
		assert.Equal(t, order.Placed, o.Status())
	})

	t.Run("should copy with id and status", func(t *testing.T) {
		id := kernel.NewUUID()
		stored, err := o.WithID(id)
		require.NoError(t, err)

		completed, err := stored.WithStatus(order.Completed)
		require.NoError(t, err)

		assert.True(t, completed.IsEqual(stored))
		assert.Equal(t, order.Completed, completed.Status())
		assert.Equal(t, order.Placed, stored.Status())
		_, err = completed.NextStatus()
		assert.True(t, errs.HasReason(err, errs.ReasonTerminalState))
	})

	t.Run("should not consider unsaved orders equal", func(t *testing.T) {
		assert.False(t, o.IsEqual(o))
	})
}
