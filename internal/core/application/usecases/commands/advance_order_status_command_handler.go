package commands

import (
	"context"
	"log/slog"
	"time"

	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"
)

// AdvanceOrderStatusCommandHandler moves an order one step along the status
// workflow. It reads the stored order, asks the domain for the next status
// and writes only the status. Nothing is changed locally; displays learn of
// the new status from the store's change stream.
type AdvanceOrderStatusCommandHandler struct {
	store     ports.OrderStore
	publisher ports.OrderEventPublisher
	observer  Observer
	timeout   time.Duration
	logger    *slog.Logger
}

func NewAdvanceOrderStatusCommandHandler(
	store ports.OrderStore,
	publisher ports.OrderEventPublisher,
	observer Observer,
	timeout time.Duration,
	logger *slog.Logger,
) (*AdvanceOrderStatusCommandHandler, error) {
	if store == nil {
		return nil, errs.NewValueIsRequiredError("store")
	}
	if publisher == nil {
		return nil, errs.NewValueIsRequiredError("publisher")
	}
	if observer == nil {
		observer = NopObserver{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &AdvanceOrderStatusCommandHandler{
		store:     store,
		publisher: publisher,
		observer:  observer,
		timeout:   timeout,
		logger:    logger.With("component", "AdvanceOrderStatusCommandHandler"),
	}, nil
}

// Handle returns the status the store confirmed.
func (h *AdvanceOrderStatusCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderStatusCommand) (order.Status, error) {
	if err := cmd.Validate(); err != nil {
		return order.Unknown, err
	}

	storeCtx, cancel := withTimeout(ctx, h.timeout)
	defer cancel()

	current, err := h.store.Get(storeCtx, cmd.OrderID())
	if err != nil {
		return order.Unknown, err
	}

	next, err := current.NextStatus()
	if err != nil {
		return order.Unknown, err
	}

	if err = h.store.UpdateStatus(storeCtx, cmd.OrderID(), next); err != nil {
		h.logger.ErrorContext(ctx, "Failed to update order status",
			"order_id", cmd.OrderID().String(),
			"status", next.String(),
			"error", err,
		)
		return order.Unknown, err
	}
	h.observer.StatusAdvanced(next)
	h.logger.InfoContext(ctx, "Order status advanced",
		"order_id", cmd.OrderID().String(),
		"number", current.Number(),
		"status", next.String(),
	)

	event := ports.NewOrderEvent(ports.OrderCompleted, current, next, time.Now())
	if err = h.publisher.Publish(ctx, event); err != nil {
		h.logger.WarnContext(ctx, "Failed to publish order event", "order_id", cmd.OrderID().String(), "error", err)
	}

	return next, nil
}
