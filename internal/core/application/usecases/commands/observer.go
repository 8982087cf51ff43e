package commands

import (
	"context"

	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"
)

// Observer receives workflow outcomes for metrics.
type Observer interface {
	OrderSubmitted()
	SubmissionFailed(kind errs.Kind)
	StatusAdvanced(status order.Status)
}

// NopObserver discards every outcome.
type NopObserver struct{}

func (NopObserver) OrderSubmitted()             {}
func (NopObserver) SubmissionFailed(errs.Kind)  {}
func (NopObserver) StatusAdvanced(order.Status) {}

// NopPublisher drops order events. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ports.OrderEvent) error { return nil }
