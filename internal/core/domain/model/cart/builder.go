package cart

import (
	"fmt"
	"slices"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/menu"
	"orderdesk/internal/pkg/errs"
)

// Builder performs every cart mutation and owns the condiment picker slot.
// One Builder serves one staff session.
type Builder struct {
	catalog *menu.Catalog
	picker  CondimentPicker
}

// SelectResult tells the caller whether the selected item was added or is
// waiting for a condiment choice.
type SelectResult struct {
	AwaitingCondiments bool
}

// PendingSelection describes the item currently waiting for condiments.
type PendingSelection struct {
	Item   menu.Item
	Chosen []menu.CondimentOption
}

func NewBuilder(catalog *menu.Catalog) (*Builder, error) {
	if catalog == nil {
		return nil, errs.NewValueIsRequiredError("catalog")
	}
	return &Builder{catalog: catalog}, nil
}

// Pending returns the selection awaiting confirmation, if any.
func (b *Builder) Pending() (PendingSelection, bool) {
	item, ok := b.picker.Pending()
	if !ok {
		return PendingSelection{}, false
	}
	return PendingSelection{Item: item, Chosen: b.options(b.picker.chosen)}, true
}

func (b *Builder) PickerState() PickerState {
	return b.picker.State()
}

// SelectItem adds one unit of the item to the cart, or opens the condiment
// picker when the item requires a condiment. Opening the picker discards any
// selection that was pending before.
func (b *Builder) SelectItem(c *Cart, id menu.ItemID) (SelectResult, error) {
	if c == nil {
		return SelectResult{}, errs.NewValueIsRequiredError("cart")
	}
	item, ok := b.catalog.Item(id)
	if !ok {
		return SelectResult{}, errs.NewValidationErrorWithCause(errs.ReasonUnknownItem, fmt.Errorf("item %d", id))
	}

	if item.RequiresCondiment() {
		b.picker.begin(item)
		return SelectResult{AwaitingCondiments: true}, nil
	}

	c.addOne(item, nil)
	return SelectResult{}, nil
}

// ToggleCondiment flips one condiment in the pending selection. A third
// condiment is refused with MaximumReached and no error.
func (b *Builder) ToggleCondiment(id menu.ItemID) (ToggleResult, error) {
	if b.picker.State() != Selecting {
		return ToggleResult{}, errs.NewValidationError(errs.ReasonNoPendingSelection)
	}
	if _, ok := b.catalog.Condiment(id); !ok {
		return ToggleResult{}, errs.NewValidationErrorWithCause(errs.ReasonUnknownCondiment, fmt.Errorf("condiment %d", id))
	}
	return b.picker.toggle(id), nil
}

// ConfirmCondiments commits the pending item with the chosen condiments.
// On failure the picker stays in Selecting so the caller may retry. When the
// cart already holds the item its quantity is incremented and the condiments
// attached on first confirmation are kept.
func (b *Builder) ConfirmCondiments(c *Cart, itemID menu.ItemID, chosen []menu.ItemID) error {
	if c == nil {
		return errs.NewValueIsRequiredError("cart")
	}
	item, ok := b.picker.Pending()
	if !ok || item.ID() != itemID {
		return errs.NewValidationErrorWithCause(errs.ReasonNoPendingSelection, fmt.Errorf("item %d", itemID))
	}

	unique := make([]menu.ItemID, 0, len(chosen))
	for _, id := range chosen {
		if !slices.Contains(unique, id) {
			unique = append(unique, id)
		}
	}
	switch {
	case len(unique) < MinCondiments:
		return errs.NewValidationError(errs.ReasonCondimentRequired)
	case len(unique) > MaxCondiments:
		return errs.NewValidationErrorWithCause(
			errs.ReasonCondimentLimitExceeded,
			fmt.Errorf("%d chosen, at most %d allowed", len(unique), MaxCondiments),
		)
	}

	options := make([]menu.CondimentOption, 0, len(unique))
	for _, id := range unique {
		option, ok := b.catalog.Condiment(id)
		if !ok {
			return errs.NewValidationErrorWithCause(errs.ReasonUnknownCondiment, fmt.Errorf("condiment %d", id))
		}
		options = append(options, option)
	}

	c.addOne(item, options)
	b.picker.reset()
	return nil
}

// ConfirmSelection confirms the pending item with the picker's own selection.
func (b *Builder) ConfirmSelection(c *Cart) error {
	item, ok := b.picker.Pending()
	if !ok {
		return errs.NewValidationError(errs.ReasonNoPendingSelection)
	}
	return b.ConfirmCondiments(c, item.ID(), b.picker.Chosen())
}

// CancelSelection abandons the pending selection. The cart is not touched.
func (b *Builder) CancelSelection() {
	b.picker.reset()
}

// ChangeQuantity sets the quantity of an existing line. A quantity of zero or
// less removes the line.
func (b *Builder) ChangeQuantity(c *Cart, id menu.ItemID, quantity int) error {
	if c == nil {
		return errs.NewValueIsRequiredError("cart")
	}
	if quantity <= 0 {
		c.remove(id)
		return nil
	}
	if !c.setQuantity(id, quantity) {
		return errs.NewObjectNotFoundError("cart line", id)
	}
	return nil
}

// RemoveItem drops the line for the item. Removing an absent line is a no-op.
func (b *Builder) RemoveItem(c *Cart, id menu.ItemID) {
	if c == nil {
		return
	}
	c.remove(id)
}

// SetInstructions stores the text verbatim.
func (b *Builder) SetInstructions(c *Cart, text string) {
	if c == nil {
		return
	}
	c.instructions = text
}

func (b *Builder) SetOrderNumber(c *Cart, number string) error {
	if c == nil {
		return errs.NewValueIsRequiredError("cart")
	}
	return c.setNumber(number)
}

// Reset empties the cart and abandons any pending selection.
func (b *Builder) Reset(c *Cart) {
	b.picker.reset()
	if c != nil {
		c.clear()
	}
}

func (b *Builder) Total(c *Cart) (kernel.Money, error) {
	if c == nil {
		return kernel.Money{}, errs.NewValueIsRequiredError("cart")
	}
	return c.Total()
}

func (b *Builder) options(ids []menu.ItemID) []menu.CondimentOption {
	options := make([]menu.CondimentOption, 0, len(ids))
	for _, id := range ids {
		if option, ok := b.catalog.Condiment(id); ok {
			options = append(options, option)
		}
	}
	return options
}
