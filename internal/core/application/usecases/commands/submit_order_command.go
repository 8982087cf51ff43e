package commands

import (
	"errors"

	"orderdesk/internal/core/domain/model/cart"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

var ErrSubmitOrderCommandIsNotConstructed = errors.New(
	"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
)

type SubmitOrderCommand struct { //nolint:recvcheck //using for validation
	cart  *cart.Cart
	staff order.Staff

	guard guard.ConstructorGuard
}

func NewSubmitOrderCommand(c *cart.Cart, staff order.Staff) (SubmitOrderCommand, error) {
	cmd := SubmitOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCart(c),
		cmd.setStaff(staff),
	); err != nil {
		return SubmitOrderCommand{}, err
	}

	return cmd, nil
}

func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

func (c SubmitOrderCommand) Cart() *cart.Cart {
	return c.cart
}

func (c SubmitOrderCommand) Staff() order.Staff {
	return c.staff
}

func (c *SubmitOrderCommand) setCart(v *cart.Cart) error {
	if v == nil {
		return errs.NewValueIsRequiredError("cart")
	}

	c.cart = v
	return nil
}

func (c *SubmitOrderCommand) setStaff(staff order.Staff) error {
	if err := staff.Validate(); err != nil {
		return err
	}

	c.staff = staff
	return nil
}
