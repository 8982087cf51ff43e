// Package carts keeps the server-side cart sessions. Each session is owned by
// one staff member and serialises its operations, which gives every cart the
// single logical timeline the cart builder expects.
package carts

import (
	"sync"
	"time"

	"orderdesk/internal/core/domain/model/cart"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/menu"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"
)

// Session is one cart with its builder and condiment picker.
type Session struct {
	id    kernel.UUID
	owner order.Staff

	mu        sync.Mutex
	cart      *cart.Cart
	builder   *cart.Builder
	touchedAt time.Time
	now       func() time.Time
}

func (s *Session) ID() kernel.UUID {
	return s.id
}

func (s *Session) Owner() order.Staff {
	return s.owner
}

// Do runs fn with exclusive access to the cart and its builder.
func (s *Session) Do(fn func(c *cart.Cart, b *cart.Builder) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touchedAt = s.now()
	return fn(s.cart, s.builder)
}

// TouchedAt is the time of the last operation on the session.
func (s *Session) TouchedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touchedAt
}

// Registry tracks the open sessions of this process.
type Registry struct {
	catalog *menu.Catalog
	now     func() time.Time

	mu       sync.RWMutex
	sessions map[kernel.UUID]*Session
}

func NewRegistry(catalog *menu.Catalog) (*Registry, error) {
	if catalog == nil {
		return nil, errs.NewValueIsRequiredError("catalog")
	}
	return &Registry{
		catalog:  catalog,
		now:      time.Now,
		sessions: make(map[kernel.UUID]*Session),
	}, nil
}

// Start opens a session with an empty cart.
func (r *Registry) Start(owner order.Staff, number string) (*Session, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}
	c, err := cart.NewCart(number)
	if err != nil {
		return nil, err
	}
	b, err := cart.NewBuilder(r.catalog)
	if err != nil {
		return nil, err
	}

	s := &Session{
		id:        kernel.NewUUID(),
		owner:     owner,
		cart:      c,
		builder:   b,
		touchedAt: r.now(),
		now:       r.now,
	}

	r.mu.Lock()
	r.sessions[s.id] = s
	r.mu.Unlock()

	return s, nil
}

func (r *Registry) Get(id kernel.UUID) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("cart", id.String())
	}
	return s, nil
}

// Discard closes a session. Unknown ids are ignored.
func (r *Registry) Discard(id kernel.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// EvictIdle discards sessions untouched for longer than ttl and returns how
// many were removed. Sessions busy with an operation are skipped.
func (r *Registry) EvictIdle(ttl time.Duration) int {
	cutoff := r.now().Add(-ttl)

	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, s := range r.sessions {
		if !s.mu.TryLock() {
			continue
		}
		idle := s.touchedAt.Before(cutoff)
		s.mu.Unlock()

		if idle {
			delete(r.sessions, id)
			evicted++
		}
	}
	return evicted
}
