// Package broadcast fans a stream of values out to in-process subscribers.
//
// Every subscriber owns a delivery goroutine and a single-slot mailbox: a
// slow handler never blocks Publish and only ever sees the most recent value.
// New subscribers immediately receive the latest published value.
package broadcast

import (
	"sync"
)

// Hub distributes values of type T. The zero value is not usable; create hubs
// with NewHub.
type Hub[T any] struct {
	mu        sync.Mutex
	latest    T
	hasLatest bool
	subs      map[uint64]*Subscription[T]
	nextID    uint64
	closed    bool
}

func NewHub[T any]() *Hub[T] {
	return &Hub[T]{subs: make(map[uint64]*Subscription[T])}
}

// Publish records v as the latest value and offers it to every subscriber.
// It never blocks on handlers.
func (h *Hub[T]) Publish(v T) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.latest = v
	h.hasLatest = true
	for _, s := range h.subs {
		s.offer(v)
	}
}

// Subscribe attaches handler. Handlers of one subscription are invoked
// sequentially on a dedicated goroutine.
func (h *Hub[T]) Subscribe(handler func(T)) *Subscription[T] {
	s := &Subscription[T]{
		handler: handler,
		signal:  make(chan struct{}, 1),
		done:    make(chan struct{}),
		hub:     h,
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		s.cancelled = true
		close(s.done)
		return s
	}

	h.nextID++
	s.id = h.nextID
	h.subs[s.id] = s
	go s.run()

	if h.hasLatest {
		s.offer(h.latest)
	}
	return s
}

// Latest returns the most recently published value.
func (h *Hub[T]) Latest() (T, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.latest, h.hasLatest
}

// Len reports the number of active subscriptions.
func (h *Hub[T]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close cancels every subscription and drops further publishes.
func (h *Hub[T]) Close() {
	h.mu.Lock()
	h.closed = true
	subs := make([]*Subscription[T], 0, len(h.subs))
	for _, s := range h.subs {
		subs = append(subs, s)
	}
	h.mu.Unlock()

	for _, s := range subs {
		s.Cancel()
	}
}

func (h *Hub[T]) remove(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, id)
}

// Subscription is the cancellation handle returned by Subscribe.
type Subscription[T any] struct {
	id      uint64
	handler func(T)
	hub     *Hub[T]

	mu         sync.Mutex
	pending    T
	hasPending bool
	cancelled  bool
	inHandler  bool

	// dispatchMu is held by run from the cancelled check until the handler
	// returns.
	dispatchMu sync.Mutex

	signal chan struct{}
	done   chan struct{}
	once   sync.Once
}

// Cancel detaches the subscription. It is idempotent and may be called from
// any goroutine, including from inside the handler. Once Cancel returns no
// further handler invocation begins. A handler that was already running when
// Cancel was called, such as the one calling it, may still be executing.
func (s *Subscription[T]) Cancel() {
	s.once.Do(func() {
		s.mu.Lock()
		s.cancelled = true
		s.hasPending = false
		var zero T
		s.pending = zero
		running := s.inHandler
		s.mu.Unlock()

		if s.id != 0 {
			close(s.done)
			s.hub.remove(s.id)
		}

		// Wait out a dispatch that is between its check and the handler.
		if !running {
			s.dispatchMu.Lock()
			s.dispatchMu.Unlock() //nolint:staticcheck // empty critical section
		}
	})
}

// Done is closed once the subscription is cancelled.
func (s *Subscription[T]) Done() <-chan struct{} {
	return s.done
}

func (s *Subscription[T]) offer(v T) {
	s.mu.Lock()
	if s.cancelled {
		s.mu.Unlock()
		return
	}
	s.pending = v
	s.hasPending = true
	s.mu.Unlock()

	select {
	case s.signal <- struct{}{}:
	default:
	}
}

func (s *Subscription[T]) run() {
	for {
		select {
		case <-s.done:
			return
		case <-s.signal:
		}

		s.dispatch()
	}
}

func (s *Subscription[T]) dispatch() {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	if s.cancelled || !s.hasPending {
		s.mu.Unlock()
		return
	}
	v := s.pending
	s.hasPending = false
	var zero T
	s.pending = zero
	s.inHandler = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inHandler = false
		s.mu.Unlock()
	}()

	s.handler(v)
}
