package kernel

import (
	"fmt"
	"math"

	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

// CurrencySymbol prefixes amounts rendered for staff.
const CurrencySymbol = "Rs"

// ErrMoneyIsNotConstructed is returned when a Money was not created via NewMoney or Zero.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("money must be created via NewMoney or Zero")

// Money is a non-negative amount in minor currency units. Prices, line totals
// and order totals are all Money; arithmetic never produces a negative value.
//
// Example:
//
//	price, _ := kernel.NewMoney(870)
//	lineTotal, _ := price.Multiply(2)
//	fmt.Println(lineTotal) // Rs 1740
type Money struct { //nolint:recvcheck //using for validation
	minor int64
	guard guard.ConstructorGuard
}

// NewMoney creates an amount from minor units. Negative amounts are rejected.
func NewMoney(minor int64) (Money, error) {
	m := Money{
		guard: guard.NewConstructorGuard(),
	}

	if err := m.setMinor(minor); err != nil {
		return Money{}, err
	}

	return m, nil
}

// Zero returns a valid zero amount.
func Zero() Money {
	return Money{guard: guard.NewConstructorGuard()}
}

// Validate reports whether the amount was built through a constructor.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Minor returns the amount in minor units.
func (m Money) Minor() int64 {
	return m.minor
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.minor == 0
}

// Add returns the sum of both amounts.
func (m Money) Add(other Money) (Money, error) {
	if m.minor > math.MaxInt64-other.minor {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", "sum overflows", 0, int64(math.MaxInt64))
	}
	return NewMoney(m.minor + other.minor)
}

// Multiply scales the amount by a non-negative quantity.
func (m Money) Multiply(quantity int) (Money, error) {
	if quantity < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 0, math.MaxInt)
	}
	if quantity != 0 && m.minor > math.MaxInt64/int64(quantity) {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", "product overflows", 0, int64(math.MaxInt64))
	}
	return NewMoney(m.minor * int64(quantity))
}

// String renders the amount the way the outlet prints it, e.g. "Rs 870".
func (m Money) String() string {
	return fmt.Sprintf("%s %d", CurrencySymbol, m.minor)
}

func (m *Money) setMinor(minor int64) error {
	if minor < 0 {
		return errs.NewValueIsOutOfRangeError("amount", minor, 0, int64(math.MaxInt64))
	}

	m.minor = minor
	return nil
}
