package menu

import (
	_ "embed"
	"errors"
	"fmt"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"

	"gopkg.in/yaml.v3"
)

//go:embed menu.yaml
var defaultMenu []byte

// Catalog is the ordered, immutable menu.
type Catalog struct {
	items      []Item
	byID       map[ItemID]int
	condiments []CondimentOption
	condByID   map[ItemID]int
}

// CategoryGroup is one category with its items in menu order.
type CategoryGroup struct {
	Category Category
	Items    []Item
}

type catalogFile struct {
	Items []struct {
		ID                int    `yaml:"id"`
		Name              string `yaml:"name"`
		Category          string `yaml:"category"`
		Price             int64  `yaml:"price"`
		Description       string `yaml:"description"`
		RequiresCondiment bool   `yaml:"requires_condiment"`
	} `yaml:"items"`
	Condiments []int `yaml:"condiments"`
}

// Default returns the embedded outlet menu.
func Default() (*Catalog, error) {
	return Parse(defaultMenu)
}

// Parse builds a catalog from its YAML form. Item ids must be unique and every
// condiment must reference a Sauces & Dips item.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse menu: %w", err)
	}

	items := make([]Item, 0, len(file.Items))
	for _, raw := range file.Items {
		price, err := kernel.NewMoney(raw.Price)
		if err != nil {
			return nil, fmt.Errorf("menu item %d: %w", raw.ID, err)
		}
		item, err := NewItem(ItemID(raw.ID), raw.Name, raw.Description, price, Category(raw.Category), raw.RequiresCondiment)
		if err != nil {
			return nil, fmt.Errorf("menu item %d: %w", raw.ID, err)
		}
		items = append(items, item)
	}

	condimentIDs := make([]ItemID, 0, len(file.Condiments))
	for _, id := range file.Condiments {
		condimentIDs = append(condimentIDs, ItemID(id))
	}

	return NewCatalog(items, condimentIDs)
}

// NewCatalog assembles a catalog from validated items.
func NewCatalog(items []Item, condimentIDs []ItemID) (*Catalog, error) {
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("menu items")
	}

	c := &Catalog{
		items:      make([]Item, 0, len(items)),
		byID:       make(map[ItemID]int, len(items)),
		condiments: make([]CondimentOption, 0, len(condimentIDs)),
		condByID:   make(map[ItemID]int, len(condimentIDs)),
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[item.ID()]; dup {
			return nil, errs.NewValueIsInvalidErrorWithCause("menu items", fmt.Errorf("duplicate item id %d", item.ID()))
		}
		c.byID[item.ID()] = len(c.items)
		c.items = append(c.items, item)
	}

	var errList []error
	for _, id := range condimentIDs {
		item, ok := c.Item(id)
		switch {
		case !ok:
			errList = append(errList, fmt.Errorf("condiment %d is not a menu item", id))
		case item.Category() != SaucesAndDips:
			errList = append(errList, fmt.Errorf("condiment %d is not in %s", id, SaucesAndDips.Label()))
		default:
			if _, dup := c.condByID[id]; dup {
				continue
			}
			c.condByID[id] = len(c.condiments)
			c.condiments = append(c.condiments, CondimentOption{id: item.ID(), name: item.Name()})
		}
	}
	if err := errors.Join(errList...); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("condiments", err)
	}

	return c, nil
}

// Items returns every item in menu order.
func (c *Catalog) Items() []Item {
	return append([]Item(nil), c.items...)
}

// Item looks an item up by id.
func (c *Catalog) Item(id ItemID) (Item, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Item{}, false
	}
	return c.items[idx], true
}

// ByCategory groups items by category in display order, skipping empty categories.
func (c *Catalog) ByCategory() []CategoryGroup {
	groups := make([]CategoryGroup, 0, len(Categories()))
	for _, category := range Categories() {
		var items []Item
		for _, item := range c.items {
			if item.Category() == category {
				items = append(items, item)
			}
		}
		if len(items) > 0 {
			groups = append(groups, CategoryGroup{Category: category, Items: items})
		}
	}
	return groups
}

// Condiments returns the complimentary condiment options.
func (c *Catalog) Condiments() []CondimentOption {
	return append([]CondimentOption(nil), c.condiments...)
}

// Condiment looks a condiment option up by id.
func (c *Catalog) Condiment(id ItemID) (CondimentOption, bool) {
	idx, ok := c.condByID[id]
	if !ok {
		return CondimentOption{}, false
	}
	return c.condiments[idx], true
}
