package commands

import (
	"context"
	"log/slog"
	"time"

	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/domain/services"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"
)

// SubmitOrderCommandHandler turns a cart into a stored order. The cart is
// left untouched; clearing it is up to the caller.
type SubmitOrderCommandHandler struct {
	store     ports.OrderStore
	publisher ports.OrderEventPublisher
	observer  Observer
	checkout  services.Checkout
	timeout   time.Duration
	logger    *slog.Logger
}

func NewSubmitOrderCommandHandler(
	store ports.OrderStore,
	publisher ports.OrderEventPublisher,
	observer Observer,
	timeout time.Duration,
	logger *slog.Logger,
) (*SubmitOrderCommandHandler, error) {
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

	return &SubmitOrderCommandHandler{
		store:     store,
		publisher: publisher,
		observer:  observer,
		checkout:  services.NewCheckout(),
		timeout:   timeout,
		logger:    logger.With("component", "SubmitOrderCommandHandler"),
	}, nil
}

func (h *SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	placed, err := h.checkout.Submit(cmd.Cart(), cmd.Staff(), time.Now())
	if err != nil {
		h.observer.SubmissionFailed(errs.KindOf(err))
		return nil, err
	}

	storeCtx, cancel := withTimeout(ctx, h.timeout)
	defer cancel()

	stored, err := h.store.Create(storeCtx, placed)
	if err != nil {
		h.observer.SubmissionFailed(errs.KindOf(err))
		h.logger.ErrorContext(ctx, "Failed to store order", "number", placed.Number(), "error", err)
		return nil, err
	}
	h.observer.OrderSubmitted()
	h.logger.InfoContext(ctx, "Order placed",
		"order_id", stored.ID().String(),
		"number", stored.Number(),
		"total", stored.Total().String(),
	)

	event := ports.NewOrderEvent(ports.OrderPlaced, stored, stored.Status(), stored.PlacedAt())
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.WarnContext(ctx, "Failed to publish order event", "order_id", stored.ID().String(), "error", err)
	}

	return stored, nil
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
