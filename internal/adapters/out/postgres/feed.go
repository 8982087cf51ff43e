package postgres

import (
	"context"
	"log/slog"
	"time"

	"orderdesk/internal/pkg/errs"

	"github.com/lib/pq"
)

const (
	minReconnectInterval = 10 * time.Second
	maxReconnectInterval = time.Minute
	pingInterval         = 90 * time.Second
)

// Feed listens on ChangesChannel and makes the store reload on every
// notification. While the connection is down subscribers see a degraded
// snapshot; after reconnecting the store reloads in full.
type Feed struct {
	dsn    string
	store  *Store
	logger *slog.Logger
}

func NewFeed(dsn string, store *Store, logger *slog.Logger) (*Feed, error) {
	if dsn == "" {
		return nil, errs.NewValueIsRequiredError("dsn")
	}
	if store == nil {
		return nil, errs.NewValueIsRequiredError("store")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Feed{
		dsn:    dsn,
		store:  store,
		logger: logger.With("component", "order-feed"),
	}, nil
}

// Run blocks until ctx is cancelled.
func (f *Feed) Run(ctx context.Context) error {
	listener := pq.NewListener(f.dsn, minReconnectInterval, maxReconnectInterval, f.onEvent)
	defer func() {
		f.store.setListening(false)
		if err := listener.Close(); err != nil {
			f.logger.WarnContext(ctx, "closing listener failed", "error", err)
		}
	}()

	if err := listener.Listen(ChangesChannel); err != nil {
		return classify("listen for order changes", err)
	}
	f.store.setListening(true)
	f.logger.InfoContext(ctx, "listening for order changes", "channel", ChangesChannel)

	if err := f.store.reload(ctx, true); err != nil {
		f.logger.WarnContext(ctx, "initial reload failed", "error", err)
	}

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case n := <-listener.Notify:
			// A nil notification follows a reconnect; anything may have
			// changed in between.
			if n == nil {
				f.logger.InfoContext(ctx, "order feed reconnected")
			}
			if err := f.store.reload(ctx, true); err != nil {
				f.logger.WarnContext(ctx, "reload failed", "error", err)
			}
		case <-ticker.C:
			go func() {
				if err := listener.Ping(); err != nil {
					f.logger.WarnContext(ctx, "order feed ping failed", "error", err)
				}
			}()
		}
	}
}

func (f *Feed) onEvent(event pq.ListenerEventType, err error) {
	if event == pq.ListenerEventDisconnected || event == pq.ListenerEventConnectionAttemptFailed {
		f.logger.Warn("order feed connection lost", "error", err)
		f.store.degrade(errs.NewStoreError("order stream", errs.StoreStream, err))
	}
}
