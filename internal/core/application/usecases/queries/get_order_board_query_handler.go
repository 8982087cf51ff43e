package queries

import (
	"context"
	"time"

	"orderdesk/internal/core/application/liveview"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"
)

// OrderLister is the part of the order store the query needs.
type OrderLister interface {
	List(ctx context.Context) ([]*order.Order, error)
}

// GetOrderBoardQueryHandler reads the authoritative order list once and
// projects it. Live displays use liveview.Viewer instead.
type GetOrderBoardQueryHandler struct {
	store    OrderLister
	location *time.Location
	timeout  time.Duration
}

func NewGetOrderBoardQueryHandler(
	store OrderLister,
	location *time.Location,
	timeout time.Duration,
) (GetOrderBoardQueryHandler, error) {
	if store == nil {
		return GetOrderBoardQueryHandler{}, errs.NewValueIsRequiredError("store")
	}
	if location == nil {
		location = time.Local
	}
	return GetOrderBoardQueryHandler{store: store, location: location, timeout: timeout}, nil
}

func (h GetOrderBoardQueryHandler) Handle(ctx context.Context, query GetOrderBoardQuery) (liveview.Board, error) {
	if err := query.Validate(); err != nil {
		return liveview.Board{}, err
	}

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	orders, err := h.store.List(ctx)
	if err != nil {
		return liveview.Board{}, err
	}

	now := time.Now()
	return liveview.Project(ports.NewSnapshot(orders, now), query.Filter(), now, h.location), nil
}
