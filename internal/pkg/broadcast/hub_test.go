package broadcast_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"orderdesk/internal/pkg/broadcast"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitFor = time.Second

func TestHub_Publish(t *testing.T) {
	t.Run("should deliver published value to every subscriber", func(t *testing.T) {
		hub := broadcast.NewHub[int]()
		first := make(chan int, 1)
		second := make(chan int, 1)
		hub.Subscribe(func(v int) { first <- v })
		hub.Subscribe(func(v int) { second <- v })

		hub.Publish(7)

		assert.Equal(t, 7, receive(t, first))
		assert.Equal(t, 7, receive(t, second))
		assert.Equal(t, 2, hub.Len())
	})

	t.Run("should deliver latest value to new subscriber", func(t *testing.T) {
		hub := broadcast.NewHub[string]()
		hub.Publish("old")
		hub.Publish("current")
		got := make(chan string, 1)

		hub.Subscribe(func(v string) { got <- v })

		assert.Equal(t, "current", receive(t, got))
		latest, ok := hub.Latest()
		require.True(t, ok)
		assert.Equal(t, "current", latest)
	})

	t.Run("should skip intermediate values for slow subscriber", func(t *testing.T) {
		hub := broadcast.NewHub[int]()
		release := make(chan struct{})
		var mu sync.Mutex
		var seen []int
		hub.Subscribe(func(v int) {
			if v == 0 {
				<-release
			}
			mu.Lock()
			seen = append(seen, v)
			mu.Unlock()
		})

		hub.Publish(0)
		time.Sleep(20 * time.Millisecond)
		for i := 1; i <= 5; i++ {
			hub.Publish(i)
		}
		close(release)

		assert.Eventually(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return len(seen) > 0 && seen[len(seen)-1] == 5
		}, waitFor, 5*time.Millisecond)
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []int{0, 5}, seen)
	})
}

func TestSubscription_Cancel(t *testing.T) {
	t.Run("should stop deliveries and be idempotent", func(t *testing.T) {
		hub := broadcast.NewHub[int]()
		var calls atomic.Int32
		sub := hub.Subscribe(func(int) { calls.Add(1) })

		sub.Cancel()
		sub.Cancel()
		hub.Publish(1)
		time.Sleep(20 * time.Millisecond)

		assert.Zero(t, calls.Load())
		assert.Zero(t, hub.Len())
		select {
		case <-sub.Done():
		default:
			t.Fatal("done channel should be closed")
		}
	})

	t.Run("should allow cancel from inside the handler", func(t *testing.T) {
		hub := broadcast.NewHub[int]()
		var calls atomic.Int32
		var sub *broadcast.Subscription[int]
		ready := make(chan struct{})
		sub = hub.Subscribe(func(int) {
			<-ready
			calls.Add(1)
			sub.Cancel()
		})
		close(ready)

		hub.Publish(1)
		assert.Eventually(t, func() bool { return hub.Len() == 0 }, waitFor, 5*time.Millisecond)
		hub.Publish(2)
		time.Sleep(20 * time.Millisecond)

		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("should not start a handler once cancel has returned", func(t *testing.T) {
		for i := 0; i < 500; i++ {
			hub := broadcast.NewHub[int]()
			var cancelled atomic.Bool
			var late atomic.Int32
			sub := hub.Subscribe(func(int) {
				if cancelled.Load() {
					late.Add(1)
				}
			})

			stop := make(chan struct{})
			var wg sync.WaitGroup
			wg.Add(1)
			go func() {
				defer wg.Done()
				for v := 0; ; v++ {
					select {
					case <-stop:
						return
					default:
						hub.Publish(v)
					}
				}
			}()

			sub.Cancel()
			cancelled.Store(true)
			time.Sleep(time.Millisecond)
			close(stop)
			wg.Wait()

			require.Zero(t, late.Load(), "iteration %d", i)
		}
	})

	t.Run("should not block cancel on a running handler", func(t *testing.T) {
		hub := broadcast.NewHub[int]()
		entered := make(chan struct{})
		release := make(chan struct{})
		var finished atomic.Bool
		sub := hub.Subscribe(func(int) {
			close(entered)
			<-release
			finished.Store(true)
		})

		hub.Publish(1)
		<-entered
		cancelled := make(chan struct{})
		go func() {
			sub.Cancel()
			close(cancelled)
		}()

		select {
		case <-cancelled:
		case <-time.After(waitFor):
			t.Fatal("cancel must not block on a running handler")
		}
		close(release)
		assert.Eventually(t, finished.Load, waitFor, 5*time.Millisecond)
	})

	t.Run("should cancel all subscriptions on close", func(t *testing.T) {
		hub := broadcast.NewHub[int]()
		sub := hub.Subscribe(func(int) {})

		hub.Close()
		late := hub.Subscribe(func(int) { t.Error("closed hub must not deliver") })
		hub.Publish(3)
		time.Sleep(20 * time.Millisecond)

		assert.Zero(t, hub.Len())
		<-sub.Done()
		<-late.Done()
		late.Cancel()
	})
}

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(waitFor):
		t.Fatal("timed out waiting for delivery")
	}
	var zero T
	return zero
}
