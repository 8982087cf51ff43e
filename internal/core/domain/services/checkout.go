package services

import (
	"time"

	"orderdesk/internal/core/domain/model/cart"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"
)

// Checkout is a domain service that transforms a cart into a Placed order.
//
// Business rules:
//   - The cart must carry an order number (checked first)
//   - The cart must hold at least one line
//   - Name, unit price and quantity are copied by value; condiments are
//     captured as a name and id snapshot
//   - Instructions are trimmed, the total is the cart total
//   - The cart itself is never modified
//
// Example usage:
//
//	checkout := services.NewCheckout()
//	o, err := checkout.Submit(c, staff, time.Now())
//	if errs.HasReason(err, errs.ReasonEmptyCart) {
//	    // nothing to submit yet
//	}
type Checkout struct{}

func NewCheckout() Checkout {
	return Checkout{}
}

// Submit builds the order for the cart.
//
// Returns:
//   - *order.Order: the Placed order without an id
//   - error: ValidationError "missing-order-number" or "empty-cart", or a
//     construction error for corrupt input
func (Checkout) Submit(c *cart.Cart, staff order.Staff, now time.Time) (*order.Order, error) {
	if c == nil {
		return nil, errs.NewValueIsRequiredError("cart")
	}
	if c.Number() == "" {
		return nil, errs.NewValidationError(errs.ReasonMissingOrderNumber)
	}
	if c.IsEmpty() {
		return nil, errs.NewValidationError(errs.ReasonEmptyCart)
	}

	lines := c.Lines()
	items := make([]order.Item, 0, len(lines))
	for _, line := range lines {
		options := line.Condiments()
		condiments := make([]order.Condiment, 0, len(options))
		for _, option := range options {
			condiment, err := order.NewCondiment(int(option.ID()), option.Name())
			if err != nil {
				return nil, err
			}
			condiments = append(condiments, condiment)
		}

		item, err := order.NewItem(line.Name(), line.UnitPrice(), line.Quantity(), condiments)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	total, err := c.Total()
	if err != nil {
		return nil, err
	}

	return order.NewOrder(c.Number(), items, c.Instructions(), total, staff, now)
}
