// Package liveview derives the kitchen and order-list boards from order
// snapshots pushed by the order store.
//
// Project is a pure function over one snapshot. Viewer keeps the only state
// that survives between snapshots: the filter chosen by the person looking
// at the board.
package liveview

import (
	"fmt"
	"strings"

	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"
)

// Filter selects which orders a board shows.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterPlaced    Filter = "placed"
	FilterCompleted Filter = "completed"
)

// ParseFilter accepts "all" or a status wire name. An empty value means all.
func ParseFilter(value string) (Filter, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" || normalized == string(FilterAll) {
		return FilterAll, nil
	}
	status, err := order.ParseStatus(normalized)
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("filter", fmt.Errorf("%q is not a valid filter", value))
	}
	return Filter(status.String()), nil
}

// Matches reports whether an order in the given status passes the filter.
func (f Filter) Matches(status order.Status) bool {
	if f == FilterAll || f == "" {
		return true
	}
	return string(f) == status.String()
}

func (f Filter) String() string {
	if f == "" {
		return string(FilterAll)
	}
	return string(f)
}
