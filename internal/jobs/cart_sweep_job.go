package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const cartSweepSpec = "0 * * * * *"

// Sweeper evicts cart sessions idle for longer than ttl.
type Sweeper interface {
	EvictIdle(ttl time.Duration) int
	Len() int
}

// CartSweepJob drops abandoned cart sessions once a minute.
type CartSweepJob struct {
	carts   Sweeper
	ttl     time.Duration
	onSweep func(remaining int)
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewCartSweepJob creates the job. onSweep, when set, receives the number
// of sessions left after each sweep.
func NewCartSweepJob(carts Sweeper, ttl time.Duration, onSweep func(remaining int), logger *slog.Logger) *CartSweepJob {
	if onSweep == nil {
		onSweep = func(int) {}
	}
	return &CartSweepJob{
		carts:   carts,
		ttl:     ttl,
		onSweep: onSweep,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "cart_sweep_job"),
	}
}

func (j *CartSweepJob) Start() error {
	if _, err := j.cron.AddFunc(cartSweepSpec, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Cart sweep job started", "ttl", j.ttl)
	return nil
}

// Run performs one sweep and returns the number of evicted sessions.
func (j *CartSweepJob) Run(ctx context.Context) int {
	evicted := j.carts.EvictIdle(j.ttl)
	remaining := j.carts.Len()
	if evicted > 0 {
		j.logger.InfoContext(ctx, "Evicted idle carts", "evicted", evicted, "remaining", remaining)
	}
	j.onSweep(remaining)
	return evicted
}

func (j *CartSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Cart sweep job stopped")
}
