package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultBoardRefreshSpec reloads the board every 30 seconds.
const DefaultBoardRefreshSpec = "*/30 * * * * *"

// Refresher republishes an authoritative order snapshot.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// BoardRefreshJob periodically pushes a fresh snapshot to live viewers so a
// missed notification never leaves a board behind for long.
type BoardRefreshJob struct {
	store   Refresher
	spec    string
	timeout time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewBoardRefreshJob(store Refresher, spec string, timeout time.Duration, logger *slog.Logger) *BoardRefreshJob {
	if spec == "" {
		spec = DefaultBoardRefreshSpec
	}
	return &BoardRefreshJob{
		store:   store,
		spec:    spec,
		timeout: timeout,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "board_refresh_job"),
	}
}

// Start schedules the refresh.
func (j *BoardRefreshJob) Start() error {
	if _, err := j.cron.AddFunc(j.spec, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Board refresh job started", "spec", j.spec)
	return nil
}

// Run performs one refresh. A failed refresh has already published a
// degraded snapshot, so it is only logged.
func (j *BoardRefreshJob) Run(ctx context.Context) {
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	if err := j.store.Refresh(ctx); err != nil {
		j.logger.WarnContext(ctx, "Board refresh failed", "error", err)
	}
}

func (j *BoardRefreshJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Board refresh job stopped")
}
