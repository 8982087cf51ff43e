package services_test

import (
	"testing"
	"time"

	"orderdesk/internal/core/domain/model/cart"
	"orderdesk/internal/core/domain/model/menu"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/domain/services"
	"orderdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, number string) (*cart.Builder, *cart.Cart, order.Staff) {
	t.Helper()
	catalog, err := menu.Default()
	require.NoError(t, err)
	b, err := cart.NewBuilder(catalog)
	require.NoError(t, err)
	c, err := cart.NewCart(number)
	require.NoError(t, err)
	staff, err := order.NewStaff("staff-1", "Counter")
	require.NoError(t, err)
	return b, c, staff
}

func TestCheckout_Submit(t *testing.T) {
	now := time.Date(2024, 5, 1, 18, 30, 0, 0, time.UTC)
	checkout := services.NewCheckout()

	t.Run("should fail on missing order number", func(t *testing.T) {
		b, c, staff := setup(t, "")
		_, _ = b.SelectItem(c, 11)

		o, err := checkout.Submit(c, staff, now)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.True(t, errs.HasReason(err, errs.ReasonMissingOrderNumber))
	})

	t.Run("should check order number before emptiness", func(t *testing.T) {
		_, c, staff := setup(t, "")

		_, err := checkout.Submit(c, staff, now)

		assert.True(t, errs.HasReason(err, errs.ReasonMissingOrderNumber))
	})

	t.Run("should fail on empty cart", func(t *testing.T) {
		_, c, staff := setup(t, "T12")

		o, err := checkout.Submit(c, staff, now)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.True(t, errs.HasReason(err, errs.ReasonEmptyCart))
	})

	t.Run("should produce placed order matching cart", func(t *testing.T) {
		b, c, staff := setup(t, "T12")
		_, _ = b.SelectItem(c, 1)
		require.NoError(t, b.ConfirmCondiments(c, 1, []menu.ItemID{6, 8}))
		_, _ = b.SelectItem(c, 13)
		_, _ = b.SelectItem(c, 13)
		b.SetInstructions(c, "  less ice  ")

		o, err := checkout.Submit(c, staff, now)

		require.NoError(t, err)
		cartTotal, _ := c.Total()
		assert.Equal(t, cartTotal.Minor(), o.Total().Minor())
		assert.Equal(t, int64(1230), o.Total().Minor())
		assert.Equal(t, order.Placed, o.Status())
		assert.Equal(t, "T12", o.Number())
		assert.Equal(t, "less ice", o.Instructions())
		assert.Equal(t, now, o.PlacedAt())
		assert.Equal(t, "staff-1", o.Staff().ID())

		items := o.Items()
		require.Len(t, items, 2)
		assert.Equal(t, "Tortilla Wrap", items[0].Name())
		assert.Equal(t, []string{"Atomic Dip", "Garlic Dip"}, items[0].CondimentNames())
		assert.Equal(t, 6, items[0].Condiments()[0].ID())
		assert.Equal(t, "Coke", items[1].Name())
		assert.Equal(t, 2, items[1].Quantity())
		assert.Empty(t, items[1].Condiments())
	})

	t.Run("should not mutate cart", func(t *testing.T) {
		b, c, staff := setup(t, "T12")
		_, _ = b.SelectItem(c, 12)
		b.SetInstructions(c, " note ")

		_, err := checkout.Submit(c, staff, now)

		require.NoError(t, err)
		assert.Equal(t, 1, c.Len())
		assert.Equal(t, " note ", c.Instructions())
		assert.Equal(t, "T12", c.Number())
	})
}
