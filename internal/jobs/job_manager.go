package jobs

import (
	"fmt"
)

// JobManager starts and stops every scheduled job together.
type JobManager struct {
	boardRefreshJob *BoardRefreshJob
	cartSweepJob    *CartSweepJob
}

func NewJobManager(boardRefreshJob *BoardRefreshJob, cartSweepJob *CartSweepJob) *JobManager {
	return &JobManager{
		boardRefreshJob: boardRefreshJob,
		cartSweepJob:    cartSweepJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.boardRefreshJob.Start(); err != nil {
		return fmt.Errorf("failed to start board refresh job: %w", err)
	}

	if err := jm.cartSweepJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.boardRefreshJob.Stop()
		return fmt.Errorf("failed to start cart sweep job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running ones to finish.
func (jm *JobManager) StopAll() {
	jm.cartSweepJob.Stop()
	jm.boardRefreshJob.Stop()
}
