package liveview_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"orderdesk/internal/core/application/liveview"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)

func storedOrder(t *testing.T, number string, status order.Status, placedAt time.Time) *order.Order {
	t.Helper()
	price, err := kernel.NewMoney(220)
	require.NoError(t, err)
	item, err := order.NewItem("Regular Fries", price, 1, nil)
	require.NoError(t, err)
	staff, err := order.NewStaff("staff-1", "Counter")
	require.NoError(t, err)
	o, err := order.RestoreOrder(kernel.NewUUID(), number, []order.Item{item}, "", price, status, placedAt, staff)
	require.NoError(t, err)
	return o
}

func fiveOrders(t *testing.T) []*order.Order {
	return []*order.Order{
		storedOrder(t, "5", order.Placed, now.Add(-time.Minute)),
		storedOrder(t, "4", order.Completed, now.Add(-2*time.Minute)),
		storedOrder(t, "3", order.Placed, now.Add(-3*time.Minute)),
		storedOrder(t, "2", order.Completed, now.Add(-4*time.Minute)),
		storedOrder(t, "1", order.Placed, now.Add(-5*time.Minute)),
	}
}

func numbers(board liveview.Board) []string {
	out := make([]string, 0, len(board.Cards))
	for _, c := range board.Cards {
		out = append(out, c.Order.Number())
	}
	return out
}

func TestProject(t *testing.T) {
	t.Run("should keep placed orders in input order", func(t *testing.T) {
		snapshot := ports.NewSnapshot(fiveOrders(t), now)

		board := liveview.Project(snapshot, liveview.FilterPlaced, now, time.UTC)

		assert.Equal(t, []string{"5", "3", "1"}, numbers(board))
		assert.Equal(t, liveview.Counts{All: 5, Placed: 3, Completed: 2}, board.Counts)
		assert.False(t, board.Stale)
	})

	t.Run("should show everything with the all filter", func(t *testing.T) {
		board := liveview.Project(ports.NewSnapshot(fiveOrders(t), now), liveview.FilterAll, now, time.UTC)

		assert.Len(t, board.Cards, 5)
	})

	t.Run("should count reserved pending status", func(t *testing.T) {
		orders := append(fiveOrders(t), storedOrder(t, "0", order.Pending, now))

		board := liveview.Project(ports.NewSnapshot(orders, now), liveview.FilterPending, now, time.UTC)

		assert.Equal(t, 1, board.Counts.Pending)
		require.Len(t, board.Cards, 1)
		assert.Equal(t, "Pending", board.Cards[0].StatusLabel)
		assert.Equal(t, "#FF9800", board.Cards[0].StatusColor)
		assert.True(t, board.Cards[0].CanAdvance)
	})

	t.Run("should fill card labels", func(t *testing.T) {
		o := storedOrder(t, "A1", order.Completed, now.Add(-5*time.Minute))

		board := liveview.Project(ports.NewSnapshot([]*order.Order{o}, now), liveview.FilterAll, now, time.UTC)

		require.Len(t, board.Cards, 1)
		card := board.Cards[0]
		assert.Equal(t, "5 min ago", card.PlacedAgo)
		assert.Equal(t, "01 May 2024 17:55", card.PlacedAt)
		assert.Equal(t, "Completed", card.StatusLabel)
		assert.Equal(t, "Completed", card.ActionLabel)
		assert.False(t, card.CanAdvance)
	})

	t.Run("should not modify the snapshot", func(t *testing.T) {
		orders := fiveOrders(t)
		before := append([]*order.Order(nil), orders...)

		_ = liveview.Project(ports.NewSnapshot(orders, now), liveview.FilterCompleted, now, time.UTC)

		assert.Equal(t, before, orders)
	})

	t.Run("should flag degraded snapshot as stale and empty", func(t *testing.T) {
		snapshot := ports.NewDegradedSnapshot(errors.New("connection lost"), now)

		board := liveview.Project(snapshot, liveview.FilterAll, now, time.UTC)

		assert.True(t, board.Stale)
		assert.Equal(t, "connection lost", board.StaleReason)
		assert.Empty(t, board.Cards)
		assert.Zero(t, board.Counts.All)
	})
}

func TestRelativeLabel(t *testing.T) {
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{-time.Minute, "just now"},
		{30 * time.Second, "just now"},
		{5 * time.Minute, "5 min ago"},
		{59 * time.Minute, "59 min ago"},
		{2 * time.Hour, "2 h ago"},
		{3*24*time.Hour + time.Hour, "3 d ago"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, liveview.RelativeLabel(now.Add(-tt.ago), now))
		})
	}
}

func TestParseFilter(t *testing.T) {
	for input, want := range map[string]liveview.Filter{
		"":          liveview.FilterAll,
		"ALL":       liveview.FilterAll,
		"placed":    liveview.FilterPlaced,
		"Completed": liveview.FilterCompleted,
		"pending":   liveview.FilterPending,
	} {
		got, err := liveview.ParseFilter(input)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := liveview.ParseFilter("cooking")
	assert.Error(t, err)
}

type fakeSubscription struct {
	mu        sync.Mutex
	cancelled int
}

func (s *fakeSubscription) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelled++
}

type fakeSubscriber struct {
	handler func(ports.Snapshot)
	sub     *fakeSubscription
}

func (f *fakeSubscriber) Subscribe(handler func(ports.Snapshot)) ports.Subscription {
	f.handler = handler
	f.sub = &fakeSubscription{}
	return f.sub
}

func TestViewer(t *testing.T) {
	t.Run("should project every snapshot through the active filter", func(t *testing.T) {
		store := &fakeSubscriber{}
		var boards []liveview.Board
		v := liveview.NewViewer(store, liveview.FilterPlaced, time.UTC, func(b liveview.Board) {
			boards = append(boards, b)
		})

		store.handler(ports.NewSnapshot(fiveOrders(t), now))

		require.Len(t, boards, 1)
		assert.Len(t, boards[0].Cards, 3)
		assert.Equal(t, liveview.FilterPlaced, v.Filter())
	})

	t.Run("should re-project current snapshot when filter changes", func(t *testing.T) {
		store := &fakeSubscriber{}
		var boards []liveview.Board
		v := liveview.NewViewer(store, liveview.FilterPlaced, time.UTC, func(b liveview.Board) {
			boards = append(boards, b)
		})
		store.handler(ports.NewSnapshot(fiveOrders(t), now))

		v.SetFilter(liveview.FilterCompleted)

		require.Len(t, boards, 2)
		assert.Equal(t, []string{"4", "2"}, numbers(boards[1]))
	})

	t.Run("should not project before the first snapshot", func(t *testing.T) {
		store := &fakeSubscriber{}
		calls := 0
		v := liveview.NewViewer(store, liveview.FilterAll, time.UTC, func(liveview.Board) { calls++ })

		v.SetFilter(liveview.FilterPlaced)

		assert.Zero(t, calls)
	})

	t.Run("should stop after close and cancel once", func(t *testing.T) {
		store := &fakeSubscriber{}
		calls := 0
		v := liveview.NewViewer(store, liveview.FilterAll, time.UTC, func(liveview.Board) { calls++ })

		v.Close()
		v.Close()
		store.handler(ports.NewSnapshot(fiveOrders(t), now))
		v.SetFilter(liveview.FilterPlaced)

		assert.Zero(t, calls)
		assert.Equal(t, 1, store.sub.cancelled)
	})
}
