package cart

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/menu"
	"orderdesk/internal/pkg/errs"
)

// MaxOrderNumberLength bounds the order/table/token number.
const MaxOrderNumberLength = 20

// Cart is an order in progress. The zero value is not usable; create carts
// with NewCart.
type Cart struct {
	number       string
	lines        map[menu.ItemID]*Line
	order        []menu.ItemID
	instructions string
}

// NewCart starts an empty cart. The number may still be empty at this point;
// submission rejects carts without one.
func NewCart(number string) (*Cart, error) {
	c := &Cart{lines: make(map[menu.ItemID]*Line)}
	if err := c.setNumber(number); err != nil {
		return nil, err
	}
	return c, nil
}

// Number is the order, table or token number.
func (c *Cart) Number() string {
	return c.number
}

// Instructions returns the free text exactly as entered.
func (c *Cart) Instructions() string {
	return c.instructions
}

// Lines returns copies of the lines in the order they were first added.
func (c *Cart) Lines() []Line {
	lines := make([]Line, 0, len(c.order))
	for _, id := range c.order {
		lines = append(lines, *c.lines[id])
	}
	return lines
}

// Line returns the line for a menu item, if present.
func (c *Cart) Line(id menu.ItemID) (Line, bool) {
	l, ok := c.lines[id]
	if !ok {
		return Line{}, false
	}
	return *l, true
}

// Len is the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.order)
}

func (c *Cart) IsEmpty() bool {
	return len(c.order) == 0
}

// Total sums unit price times quantity over all lines. It is computed on
// every call so it can never go stale.
func (c *Cart) Total() (kernel.Money, error) {
	total := kernel.Zero()
	for _, id := range c.order {
		subtotal, err := c.lines[id].Subtotal()
		if err != nil {
			return kernel.Money{}, err
		}
		if total, err = total.Add(subtotal); err != nil {
			return kernel.Money{}, err
		}
	}
	return total, nil
}

func (c *Cart) setNumber(number string) error {
	number = strings.TrimSpace(number)
	if n := utf8.RuneCountInString(number); n > MaxOrderNumberLength {
		return errs.NewValidationErrorWithCause(
			errs.ReasonOrderNumberTooLong,
			fmt.Errorf("%d characters, at most %d allowed", n, MaxOrderNumberLength),
		)
	}
	c.number = number
	return nil
}

// addOne increments the existing line for item or inserts a new one. The
// condiment snapshot is attached only when the line is created.
func (c *Cart) addOne(item menu.Item, condiments []menu.CondimentOption) {
	if l, ok := c.lines[item.ID()]; ok {
		l.quantity++
		return
	}
	c.lines[item.ID()] = &Line{
		item:       item,
		quantity:   1,
		condiments: append([]menu.CondimentOption(nil), condiments...),
	}
	c.order = append(c.order, item.ID())
}

func (c *Cart) setQuantity(id menu.ItemID, quantity int) bool {
	l, ok := c.lines[id]
	if !ok {
		return false
	}
	l.quantity = quantity
	return true
}

func (c *Cart) remove(id menu.ItemID) {
	if _, ok := c.lines[id]; !ok {
		return
	}
	delete(c.lines, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *Cart) clear() {
	c.number = ""
	c.lines = make(map[menu.ItemID]*Line)
	c.order = nil
	c.instructions = ""
}
