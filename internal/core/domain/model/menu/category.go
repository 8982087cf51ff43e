package menu

import (
	"fmt"

	"orderdesk/internal/pkg/errs"
)

// Category groups menu items for display. The set is closed.
type Category string

const (
	Wraps          Category = "wraps"
	Burgers        Category = "burgers"
	SaucesAndDips  Category = "sauces-dips"
	SidesAndDrinks Category = "sides-drinks"
)

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{Wraps, Burgers, SaucesAndDips, SidesAndDrinks}
}

func getCategoryLabels() map[Category]string {
	return map[Category]string{
		Wraps:          "Wraps",
		Burgers:        "Burgers",
		SaucesAndDips:  "Sauces & Dips",
		SidesAndDrinks: "Sides & Drinks",
	}
}

// Validate rejects values outside the closed set.
func (c Category) Validate() error {
	if _, ok := getCategoryLabels()[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("category", fmt.Errorf("%q is not a valid category", string(c)))
	}
	return nil
}

// Label is the display name shown to staff.
func (c Category) Label() string {
	if label, ok := getCategoryLabels()[c]; ok {
		return label
	}
	return "Other"
}

func (c Category) String() string {
	return string(c)
}
