package menu_test

import (
	"testing"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/menu"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	catalog, err := menu.Default()
	require.NoError(t, err)

	t.Run("should load every item in menu order", func(t *testing.T) {
		items := catalog.Items()

		require.Len(t, items, 14)
		assert.Equal(t, "Tortilla Wrap", items[0].Name())
		assert.Equal(t, "Sprite", items[13].Name())
	})

	t.Run("should flag wraps and burgers as requiring a condiment", func(t *testing.T) {
		wrap, ok := catalog.Item(1)
		require.True(t, ok)
		assert.True(t, wrap.RequiresCondiment())
		assert.Equal(t, int64(870), wrap.Price().Minor())

		fries, ok := catalog.Item(11)
		require.True(t, ok)
		assert.False(t, fries.RequiresCondiment())
	})

	t.Run("should group by category in display order", func(t *testing.T) {
		groups := catalog.ByCategory()

		require.Len(t, groups, 4)
		assert.Equal(t, menu.Wraps, groups[0].Category)
		assert.Len(t, groups[0].Items, 3)
		assert.Equal(t, menu.Burgers, groups[1].Category)
		assert.Equal(t, menu.SaucesAndDips, groups[2].Category)
		assert.Equal(t, menu.SidesAndDrinks, groups[3].Category)
		assert.Len(t, groups[3].Items, 4)
	})

	t.Run("should offer the dips as free condiments", func(t *testing.T) {
		condiments := catalog.Condiments()

		require.Len(t, condiments, 5)
		assert.Equal(t, "Atomic Dip", condiments[0].Name())
		for _, c := range condiments {
			assert.True(t, c.Price().IsZero())
		}

		dip, ok := catalog.Item(condiments[0].ID())
		require.True(t, ok)
		assert.Equal(t, int64(100), dip.Price().Minor(), "ordered on its own a dip is not free")
	})

	t.Run("should report unknown ids", func(t *testing.T) {
		_, ok := catalog.Item(99)
		assert.False(t, ok)

		_, ok = catalog.Condiment(11)
		assert.False(t, ok)
	})

	t.Run("returned slices are copies", func(t *testing.T) {
		items := catalog.Items()
		items[0] = menu.Item{}

		first, _ := catalog.Item(1)
		assert.Equal(t, "Tortilla Wrap", first.Name())
	})
}

func TestParse(t *testing.T) {
	t.Run("should reject duplicate ids", func(t *testing.T) {
		_, err := menu.Parse([]byte(`
items:
  - {id: 1, name: Water, category: sides-drinks, price: 90}
  - {id: 1, name: Coke, category: sides-drinks, price: 180}
`))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate item id 1")
	})

	t.Run("should reject unknown categories and negative prices", func(t *testing.T) {
		_, err := menu.Parse([]byte(`
items:
  - {id: 1, name: Soup, category: starters, price: 90}
`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a valid category")

		_, err = menu.Parse([]byte(`
items:
  - {id: 1, name: Water, category: sides-drinks, price: -5}
`))
		require.Error(t, err)
	})

	t.Run("should reject condiments outside sauces and dips", func(t *testing.T) {
		_, err := menu.Parse([]byte(`
items:
  - {id: 1, name: Water, category: sides-drinks, price: 90}
condiments: [1, 2]
`))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "condiment 1 is not in Sauces & Dips")
		assert.Contains(t, err.Error(), "condiment 2 is not a menu item")
	})

	t.Run("should reject malformed yaml and empty menus", func(t *testing.T) {
		_, err := menu.Parse([]byte("items: ["))
		require.Error(t, err)

		_, err = menu.Parse([]byte("items: []"))
		require.Error(t, err)
	})
}

func TestNewItem(t *testing.T) {
	price, _ := kernel.NewMoney(220)

	t.Run("should trim and validate fields", func(t *testing.T) {
		item, err := menu.NewItem(11, "  Regular Fries ", " Crinkle cut ", price, menu.SidesAndDrinks, false)

		require.NoError(t, err)
		require.NoError(t, item.Validate())
		assert.Equal(t, "Regular Fries", item.Name())
		assert.Equal(t, "Crinkle cut", item.Description())
	})

	t.Run("should join every validation error", func(t *testing.T) {
		_, err := menu.NewItem(0, " ", "", kernel.Money{}, "other", false)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "item id")
		assert.Contains(t, err.Error(), "item name")
		assert.Contains(t, err.Error(), "money must be created")
		assert.Contains(t, err.Error(), "category")
	})

	t.Run("zero value item is not constructed", func(t *testing.T) {
		var item menu.Item

		assert.Equal(t, menu.ErrItemIsNotConstructed, item.Validate())
	})
}

func TestCategory(t *testing.T) {
	assert.Equal(t, "Sauces & Dips", menu.SaucesAndDips.Label())
	assert.Equal(t, "Other", menu.Category("x").Label())
	require.NoError(t, menu.Wraps.Validate())
	require.Error(t, menu.Category("").Validate())
}
