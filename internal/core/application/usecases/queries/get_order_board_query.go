// Package queries holds the read side: projecting the stored orders into a
// board for one filter.
package queries

import (
	"errors"

	"orderdesk/internal/core/application/liveview"
	"orderdesk/internal/pkg/guard"
)

var ErrGetOrderBoardQueryIsNotConstructed = errors.New(
	"GetOrderBoardQuery must be created via NewGetOrderBoardQuery constructor",
)

type GetOrderBoardQuery struct {
	filter liveview.Filter

	guard guard.ConstructorGuard
}

// NewGetOrderBoardQuery parses the filter ("", "all" or a status name).
func NewGetOrderBoardQuery(filter string) (GetOrderBoardQuery, error) {
	f, err := liveview.ParseFilter(filter)
	if err != nil {
		return GetOrderBoardQuery{}, err
	}
	return GetOrderBoardQuery{filter: f, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderBoardQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderBoardQueryIsNotConstructed)
}

func (q GetOrderBoardQuery) Filter() liveview.Filter {
	return q.filter
}
