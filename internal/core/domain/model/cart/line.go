package cart

import (
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/menu"
)

// Line is one menu item in a cart with its quantity and, for items that
// require one, the condiments chosen when the line was first confirmed.
type Line struct {
	item       menu.Item
	quantity   int
	condiments []menu.CondimentOption
}

func (l Line) ItemID() menu.ItemID     { return l.item.ID() }
func (l Line) Name() string            { return l.item.Name() }
func (l Line) UnitPrice() kernel.Money { return l.item.Price() }
func (l Line) Quantity() int           { return l.quantity }
func (l Line) RequiresCondiment() bool { return l.item.RequiresCondiment() }

// Condiments returns the condiment snapshot attached to the line.
func (l Line) Condiments() []menu.CondimentOption {
	return append([]menu.CondimentOption(nil), l.condiments...)
}

// Subtotal is unit price times quantity. Condiments never add to it.
func (l Line) Subtotal() (kernel.Money, error) {
	return l.item.Price().Multiply(l.quantity)
}
