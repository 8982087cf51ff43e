package order

import (
	"errors"
	"fmt"
	"strings"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

var (
	ErrItemIsNotConstructed      = errors.New("Item must be created via NewItem constructor")
	ErrCondimentIsNotConstructed = errors.New("Condiment must be created via NewCondiment constructor")
	ErrStaffIsNotConstructed     = errors.New("Staff must be created via NewStaff constructor")
)

// Condiment is the snapshot of a condiment chosen for an item.
type Condiment struct { //nolint:recvcheck //using for validation
	id    int
	name  string
	guard guard.ConstructorGuard
}

func NewCondiment(id int, name string) (Condiment, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Condiment{}, errs.NewValueIsRequiredError("condiment name")
	}
	return Condiment{id: id, name: name, guard: guard.NewConstructorGuard()}, nil
}

func (c Condiment) Validate() error {
	return c.guard.Validate(ErrCondimentIsNotConstructed)
}

func (c Condiment) ID() int      { return c.id }
func (c Condiment) Name() string { return c.name }

// Item is one ordered line: name, unit price and quantity copied by value
// from the cart, plus the condiment snapshot (possibly empty).
type Item struct { //nolint:recvcheck //using for validation
	name       string
	unitPrice  kernel.Money
	quantity   int
	condiments []Condiment
	guard      guard.ConstructorGuard
}

// NewItem creates an ordered item. Quantity must be at least one and at most
// two condiments may be attached.
func NewItem(name string, unitPrice kernel.Money, quantity int, condiments []Condiment) (Item, error) {
	item := Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setName(name),
		item.setUnitPrice(unitPrice),
		item.setQuantity(quantity),
		item.setCondiments(condiments),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) Name() string            { return i.name }
func (i Item) UnitPrice() kernel.Money { return i.unitPrice }
func (i Item) Quantity() int           { return i.quantity }

func (i Item) Condiments() []Condiment {
	return append([]Condiment(nil), i.condiments...)
}

// CondimentNames lists the chosen condiment names in selection order.
func (i Item) CondimentNames() []string {
	names := make([]string, 0, len(i.condiments))
	for _, c := range i.condiments {
		names = append(names, c.name)
	}
	return names
}

// Subtotal is unit price times quantity.
func (i Item) Subtotal() (kernel.Money, error) {
	return i.unitPrice.Multiply(i.quantity)
}

func (i *Item) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	i.name = name
	return nil
}

func (i *Item) setUnitPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("unit price", err)
	}
	i.unitPrice = price
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setCondiments(condiments []Condiment) error {
	if len(condiments) > 2 {
		return errs.NewValidationErrorWithCause(
			errs.ReasonCondimentLimitExceeded,
			fmt.Errorf("%d condiments on %s", len(condiments), i.name),
		)
	}
	for _, c := range condiments {
		if err := c.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("condiment", err)
		}
	}
	i.condiments = append([]Condiment(nil), condiments...)
	return nil
}

// Staff identifies the staff member who submitted an order.
type Staff struct { //nolint:recvcheck //using for validation
	id    string
	name  string
	guard guard.ConstructorGuard
}

func NewStaff(id, name string) (Staff, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Staff{}, errs.NewValueIsRequiredError("staff id")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = id
	}
	return Staff{id: id, name: name, guard: guard.NewConstructorGuard()}, nil
}

func (s Staff) Validate() error {
	return s.guard.Validate(ErrStaffIsNotConstructed)
}

func (s Staff) ID() string   { return s.id }
func (s Staff) Name() string { return s.name }
