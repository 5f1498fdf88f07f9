package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Evicter forgets clients that have been idle since a point in time
type Evicter interface {
	Evict(before time.Time) int
}

// Pruner drops request traces that fell out of the metrics window
type Pruner interface {
	Prune(now time.Time)
}

// Scheduler runs the periodic housekeeping of the server's in-memory state
type Scheduler struct {
	cron    *cron.Cron
	limiter Evicter
	metrics Pruner
	maxIdle time.Duration
	now     func() time.Time
}

// NewScheduler creates a scheduler. Clients idle for longer than maxIdle are
// evicted from limiter.
func NewScheduler(limiter Evicter, metrics Pruner, maxIdle time.Duration) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		limiter: limiter,
		metrics: metrics,
		maxIdle: maxIdle,
		now:     time.Now,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	_, err := s.cron.AddFunc("@every 1m", s.evictIdleClients)
	if err != nil {
		zap.S().Errorw("failed to register rate limiter eviction job", "error", err)
	}

	_, err = s.cron.AddFunc("@every 5m", s.pruneMetrics)
	if err != nil {
		zap.S().Errorw("failed to register metrics prune job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("housekeeping scheduler started")
}

// Stop waits for running jobs and stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("housekeeping scheduler stopped")
}

// Jobs reports how many jobs are registered
func (s *Scheduler) Jobs() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) evictIdleClients() {
	if s.limiter == nil {
		return
	}
	if n := s.limiter.Evict(s.now().Add(-s.maxIdle)); n > 0 {
		zap.S().Debugw("evicted idle rate limit clients", "count", n)
	}
}

func (s *Scheduler) pruneMetrics() {
	if s.metrics == nil {
		return
	}
	s.metrics.Prune(s.now())
}
