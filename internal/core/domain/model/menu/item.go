package menu

import (
	"errors"
	"strings"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when an Item was not created via NewItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// ItemID is the stable identifier of a menu item.
type ItemID int

// Item is one orderable menu entry. Items flagged requiresCondiment cannot be
// added to a cart without choosing one or two complimentary condiments.
type Item struct { //nolint:recvcheck //using for validation
	id                ItemID
	name              string
	description       string
	price             kernel.Money
	category          Category
	requiresCondiment bool

	guard guard.ConstructorGuard
}

// NewItem validates and creates a menu item.
func NewItem(
	id ItemID,
	name, description string,
	price kernel.Money,
	category Category,
	requiresCondiment bool,
) (Item, error) {
	item := Item{
		description:       strings.TrimSpace(description),
		requiresCondiment: requiresCondiment,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setName(name),
		item.setPrice(price),
		item.setCategory(category),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) ID() ItemID              { return i.id }
func (i Item) Name() string            { return i.name }
func (i Item) Description() string     { return i.description }
func (i Item) Price() kernel.Money     { return i.price }
func (i Item) Category() Category      { return i.category }
func (i Item) RequiresCondiment() bool { return i.requiresCondiment }

func (i *Item) setID(id ItemID) error {
	if id <= 0 {
		return errs.NewValueIsInvalidError("item id")
	}
	i.id = id
	return nil
}

func (i *Item) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	i.name = name
	return nil
}

func (i *Item) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	i.price = price
	return nil
}

func (i *Item) setCategory(category Category) error {
	if err := category.Validate(); err != nil {
		return err
	}
	i.category = category
	return nil
}

// CondimentOption is a complimentary accompaniment offered with items that
// require one. It is always free, whatever the same dip costs on its own.
type CondimentOption struct {
	id   ItemID
	name string
}

func (c CondimentOption) ID() ItemID   { return c.id }
func (c CondimentOption) Name() string { return c.name }

// Price is always zero.
func (c CondimentOption) Price() kernel.Money {
	return kernel.Zero()
}
