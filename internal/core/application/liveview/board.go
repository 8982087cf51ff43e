package liveview

import (
	"time"

	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
)

// Counts holds per-status totals over the whole snapshot, regardless of the
// active filter.
type Counts struct {
	All       int
	Pending   int
	Placed    int
	Completed int
}

// Card is one order as shown on a board.
type Card struct {
	Order       *order.Order
	PlacedAgo   string
	PlacedAt    string
	StatusLabel string
	StatusColor string
	ActionLabel string
	CanAdvance  bool
}

// Board is the projection of one snapshot through one filter.
type Board struct {
	Filter      Filter
	Counts      Counts
	Cards       []Card
	Stale       bool
	StaleReason string
	GeneratedAt time.Time
}

func getStatusColors() map[order.Status]string {
	//nolint:exhaustive // Unknown falls back to grey
	return map[order.Status]string{
		order.Pending:   "#FF9800",
		order.Placed:    "#4CAF50",
		order.Completed: "#2196F3",
	}
}

func getActionLabels() map[order.Status]string {
	//nolint:exhaustive // Unknown falls back to the generic action
	return map[order.Status]string{
		order.Placed:    "Mark Complete",
		order.Completed: "Completed",
	}
}

// Project derives a board from a snapshot. It never modifies the snapshot and
// keeps the relative order of the input. A degraded snapshot projects to an
// empty board flagged Stale.
func Project(snapshot ports.Snapshot, filter Filter, now time.Time, location *time.Location) Board {
	board := Board{
		Filter:      filter,
		Cards:       []Card{},
		GeneratedAt: now,
	}
	if snapshot.IsDegraded() {
		board.Stale = true
		board.StaleReason = snapshot.Degraded.Error()
		return board
	}

	colors := getStatusColors()
	actions := getActionLabels()
	for _, o := range snapshot.Orders {
		if o == nil {
			continue
		}
		status := o.Status()
		board.Counts.All++
		switch status {
		case order.Pending:
			board.Counts.Pending++
		case order.Placed:
			board.Counts.Placed++
		case order.Completed:
			board.Counts.Completed++
		case order.Unknown:
		}

		if !filter.Matches(status) {
			continue
		}

		color, ok := colors[status]
		if !ok {
			color = "#B8B8B8"
		}
		action, ok := actions[status]
		if !ok {
			action = "Update Status"
		}
		board.Cards = append(board.Cards, Card{
			Order:       o,
			PlacedAgo:   RelativeLabel(o.PlacedAt(), now),
			PlacedAt:    AbsoluteLabel(o.PlacedAt(), location),
			StatusLabel: status.Label(),
			StatusColor: color,
			ActionLabel: action,
			CanAdvance:  status.Validate() == nil && !status.IsTerminal(),
		})
	}

	return board
}
