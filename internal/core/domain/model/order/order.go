package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the record produced by submitting a cart. It is the aggregate root
// of the ordering workflow.
//
// Order follows these invariants:
//   - Order number is non-empty
//   - At least one item is present
//   - Total equals the sum of item subtotals at submission time
//   - Status is valid; new orders always start in Placed
//   - Every field except status is write-once
//
// The identifier is assigned by the order store. A freshly submitted Order
// has a zero ID until the store returns the persisted copy.
type Order struct {
	id           kernel.UUID
	number       string
	items        []Item
	instructions string
	total        kernel.Money
	status       Status
	placedAt     time.Time
	staff        Staff

	isConstructed bool
}

// NewOrder creates a Placed order ready to be written to the store.
//
// Parameters:
//   - number: order, table or token number (required)
//   - items: ordered items, at least one
//   - instructions: free text, stored trimmed
//   - total: must equal the sum of item subtotals
//   - staff: submitting staff member
//   - placedAt: submission time
//
// Example:
//
//	wrap, _ := order.NewItem("Tortilla Wrap", price, 1, nil)
//	o, err := order.NewOrder("A1", []order.Item{wrap}, "", price, staff, time.Now())
func NewOrder(
	number string,
	items []Item,
	instructions string,
	total kernel.Money,
	staff Staff,
	placedAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Placed,
		instructions:  strings.TrimSpace(instructions),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setNumber(number),
		o.setItems(items),
		o.setStaff(staff),
		o.setPlacedAt(placedAt),
	); err != nil {
		return nil, err
	}

	if err := o.setTotal(total, true); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order read from the store. The stored total is
// kept as-is and any valid status, including Pending, is accepted.
func RestoreOrder(
	id kernel.UUID,
	number string,
	items []Item,
	instructions string,
	total kernel.Money,
	status Status,
	placedAt time.Time,
	staff Staff,
) (*Order, error) {
	o := &Order{
		instructions:  instructions,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setItems(items),
		o.setTotal(total, false),
		o.setStatus(status),
		o.setStaff(staff),
		o.setPlacedAt(placedAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two stored orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && !o.id.IsZero() && o.id.IsEqual(other.id)
}

// ID returns the store-assigned identifier, zero before the order is stored.
func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Number() string {
	return o.number
}

// Items returns a copy of the ordered items.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

func (o *Order) Instructions() string {
	return o.instructions
}

func (o *Order) Total() kernel.Money {
	return o.total
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) PlacedAt() time.Time {
	return o.placedAt
}

func (o *Order) Staff() Staff {
	return o.staff
}

// NextStatus computes the status Advance would move the order to without
// changing the order. The change itself is applied by the order store.
func (o *Order) NextStatus() (Status, error) {
	return o.status.Advance()
}

// WithID returns a copy of the order carrying the store-assigned identifier.
func (o *Order) WithID(id kernel.UUID) (*Order, error) {
	return RestoreOrder(id, o.number, o.items, o.instructions, o.total, o.status, o.placedAt, o.staff)
}

// WithStatus returns a copy of the order in the given status. It is used by
// stores applying a status update; the receiver is left untouched.
func (o *Order) WithStatus(status Status) (*Order, error) {
	return RestoreOrder(o.id, o.number, o.items, o.instructions, o.total, status, o.placedAt, o.staff)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	o.number = number
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("order items")
	}
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("item %d", i), err)
		}
	}
	o.items = append([]Item(nil), items...)
	return nil
}

func (o *Order) setTotal(total kernel.Money, checkSum bool) error {
	if err := total.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("total", err)
	}
	if checkSum {
		sum := kernel.Zero()
		for _, item := range o.items {
			subtotal, err := item.Subtotal()
			if err != nil {
				return err
			}
			if sum, err = sum.Add(subtotal); err != nil {
				return err
			}
		}
		if sum.Minor() != total.Minor() {
			return errs.NewValueIsInvalidErrorWithCause(
				"total",
				fmt.Errorf("%s does not match items sum %s", total, sum),
			)
		}
	}
	o.total = total
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setStaff(staff Staff) error {
	if err := staff.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("staff", err)
	}
	o.staff = staff
	return nil
}

func (o *Order) setPlacedAt(placedAt time.Time) error {
	if placedAt.IsZero() {
		return errs.NewValueIsRequiredError("placed at")
	}
	o.placedAt = placedAt
	return nil
}
