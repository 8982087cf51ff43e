// Package jobs holds the scheduled background tasks of the order desk.
//
// Jobs are built on github.com/robfig/cron/v3 with second-level schedules:
//
//  1. BoardRefreshJob - republishes the order snapshot (default every 30 seconds)
//     so live boards recover even when a change notification was lost.
//  2. CartSweepJob - once a minute, evicts cart sessions idle longer than the
//     configured TTL.
//
// # Usage
//
//	manager := jobs.NewJobManager(
//		jobs.NewBoardRefreshJob(store, cfg.BoardRefreshSpec, timeout, logger),
//		jobs.NewCartSweepJob(registry, ttl, collector.SetCartSessions, logger),
//	)
//	if err := manager.StartAll(); err != nil {
//		log.Fatal(err)
//	}
//	defer manager.StopAll()
//
// Every job also exposes Run for a single synchronous execution.
package jobs
