package liveview

import (
	"sync"
	"time"

	"orderdesk/internal/core/ports"
)

// Subscriber is the part of the order store a Viewer needs.
type Subscriber interface {
	Subscribe(handler func(ports.Snapshot)) ports.Subscription
}

// Viewer keeps one board up to date for one display. Boards are delivered to
// onBoard one at a time; onBoard must not call back into the Viewer.
type Viewer struct {
	mu       sync.Mutex
	filter   Filter
	current  ports.Snapshot
	received bool
	closed   bool
	location *time.Location
	now      func() time.Time
	onBoard  func(Board)
	sub      ports.Subscription
}

func NewViewer(subscriber Subscriber, filter Filter, location *time.Location, onBoard func(Board)) *Viewer {
	v := &Viewer{
		filter:   filter,
		location: location,
		now:      time.Now,
		onBoard:  onBoard,
	}
	sub := subscriber.Subscribe(v.receive)

	v.mu.Lock()
	v.sub = sub
	closed := v.closed
	v.mu.Unlock()
	if closed {
		sub.Cancel()
	}
	return v
}

// Filter returns the active filter.
func (v *Viewer) Filter() Filter {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filter
}

// SetFilter switches the filter and re-projects the current snapshot.
func (v *Viewer) SetFilter(filter Filter) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return
	}
	v.filter = filter
	if v.received {
		v.onBoard(Project(v.current, v.filter, v.now(), v.location))
	}
}

// Close detaches the viewer from the store. It is idempotent.
func (v *Viewer) Close() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	sub := v.sub
	v.mu.Unlock()

	if sub != nil {
		sub.Cancel()
	}
}

func (v *Viewer) receive(snapshot ports.Snapshot) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return
	}
	v.current = snapshot
	v.received = true
	v.onBoard(Project(snapshot, v.filter, v.now(), v.location))
}
