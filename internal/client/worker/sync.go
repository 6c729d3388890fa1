// Package worker runs background jobs for the client.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gameguesser/internal/client/catalog"
	"github.com/dmitrijs2005/gameguesser/internal/client/repositories/prefs"
	"github.com/dmitrijs2005/gameguesser/internal/logging"
	"github.com/go-co-op/gocron/v2"
)

// KeyLastSync holds the RFC 3339 time of the last catalog sync that stored
// records.
const KeyLastSync = "last_sync"

type Syncer interface {
	SyncAll(ctx context.Context) catalog.Result[int]
}

// SyncScheduler refreshes the catalog cache on a fixed interval.
type SyncScheduler struct {
	syncer   Syncer
	prefs    prefs.Repository
	interval time.Duration
	logger   logging.Logger
	now      func() time.Time

	mu    sync.Mutex
	sched gocron.Scheduler
	job   gocron.Job
}

func NewSyncScheduler(s Syncer, p prefs.Repository, interval time.Duration, logger logging.Logger) *SyncScheduler {
	return &SyncScheduler{syncer: s, prefs: p, interval: interval, logger: logger, now: time.Now}
}

// Start schedules a sync right away and then every interval. A non-positive
// interval disables the job. Runs never overlap; a run requested while
// another is in progress waits for it.
func (s *SyncScheduler) Start(ctx context.Context) error {
	if s.interval <= 0 {
		s.logger.Info(ctx, "background sync disabled")
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sched != nil {
		return nil
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}

	job, err := sched.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(func() { s.RunOnce(ctx) }),
		gocron.WithName("catalog-sync"),
		gocron.WithSingletonMode(gocron.LimitModeWait),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = sched.Shutdown()
		return fmt.Errorf("schedule catalog sync: %w", err)
	}

	sched.Start()
	s.sched = sched
	s.job = job
	s.logger.Info(ctx, "background sync started", "interval", s.interval.String())
	return nil
}

// Stop waits for a running sync to finish and stops the schedule.
func (s *SyncScheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sched == nil {
		return nil
	}
	err := s.sched.Shutdown()
	s.sched = nil
	s.job = nil
	return err
}

// Trigger queues an extra run of the scheduled job. It does nothing when
// the scheduler is not running.
func (s *SyncScheduler) Trigger(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.job == nil {
		return
	}
	if err := s.job.RunNow(); err != nil {
		s.logger.Warn(ctx, "failed to trigger catalog sync", "error", err)
	}
}

// RunOnce syncs now and records the time when any records were stored.
func (s *SyncScheduler) RunOnce(ctx context.Context) catalog.Result[int] {
	res := s.syncer.SyncAll(ctx)
	if res.Empty() {
		s.logger.Debug(ctx, "catalog sync skipped", "reason", res.Err)
		return res
	}
	if res.Degraded() {
		s.logger.Warn(ctx, "catalog sync incomplete", "games", res.Value, "error", res.Err)
	}

	if err := s.prefs.Set(ctx, KeyLastSync, s.now().UTC().Format(time.RFC3339)); err != nil {
		s.logger.Warn(ctx, "failed to record sync time", "error", err)
	}
	return res
}

// LastSync reports ok == false when no sync has succeeded yet.
func (s *SyncScheduler) LastSync(ctx context.Context) (time.Time, bool, error) {
	v, ok, err := s.prefs.Get(ctx, KeyLastSync)
	if err != nil || !ok {
		return time.Time{}, false, err
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse %s: %w", KeyLastSync, err)
	}
	return t, true, nil
}
