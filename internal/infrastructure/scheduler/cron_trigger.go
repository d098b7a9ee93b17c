package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/salesreport/backend/internal/infrastructure/telemetry"
)

// Sweeper deletes stored documents older than a given age
type Sweeper interface {
	CleanupOlderThan(ctx context.Context, age time.Duration) (int, error)
}

// RetentionConfig holds configuration for the retention trigger
type RetentionConfig struct {
	Schedule  DailySchedule
	Retention time.Duration
	// JobTimeout bounds a single sweep
	JobTimeout time.Duration
	// CheckInterval is how often the clock is compared with the schedule
	CheckInterval time.Duration
}

// DefaultRetentionConfig sweeps daily at 03:00
func DefaultRetentionConfig(retention time.Duration) RetentionConfig {
	return RetentionConfig{
		Schedule:      DailySchedule{Hour: 3},
		Retention:     retention,
		JobTimeout:    10 * time.Minute,
		CheckInterval: time.Minute,
	}
}

// RetentionTrigger removes expired reports once a day
type RetentionTrigger struct {
	config  RetentionConfig
	sweeper Sweeper
	metrics *telemetry.AppMetrics
	logger  *zap.Logger
	now     func() time.Time

	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.Mutex
	isRunning   bool
	lastRunDate string
}

// NewRetentionTrigger creates a new retention trigger
func NewRetentionTrigger(config RetentionConfig, sweeper Sweeper, logger *zap.Logger) *RetentionTrigger {
	if config.CheckInterval <= 0 {
		config.CheckInterval = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RetentionTrigger{
		config:  config,
		sweeper: sweeper,
		logger:  logger,
		now:     time.Now,
	}
}

// WithMetrics counts swept reports on m
func (t *RetentionTrigger) WithMetrics(m *telemetry.AppMetrics) *RetentionTrigger {
	t.metrics = m
	return t
}

// Start launches the check loop. Calling it twice is a no-op.
func (t *RetentionTrigger) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.isRunning {
		return nil
	}
	t.isRunning = true

	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel

	t.wg.Add(1)
	go t.runLoop(ctx)

	t.logger.Info("Retention trigger started",
		zap.Stringer("schedule", t.config.Schedule),
		zap.Duration("retention", t.config.Retention),
		zap.Time("next_run_at", t.config.Schedule.Next(t.now())),
	)
	return nil
}

// Stop cancels the loop and waits for a running sweep, up to ctx.
func (t *RetentionTrigger) Stop(ctx context.Context) error {
	t.mu.Lock()
	if !t.isRunning {
		t.mu.Unlock()
		return nil
	}
	t.isRunning = false
	cancel := t.cancel
	t.mu.Unlock()

	cancel()

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.logger.Info("Retention trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *RetentionTrigger) runLoop(ctx context.Context) {
	defer t.wg.Done()

	ticker := time.NewTicker(t.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.checkAndRun(ctx)
		}
	}
}

// checkAndRun sweeps when the scheduled minute has been reached and no
// sweep ran yet today.
func (t *RetentionTrigger) checkAndRun(ctx context.Context) bool {
	now := t.now()
	today := now.Format(time.DateOnly)

	t.mu.Lock()
	if t.lastRunDate == today {
		t.mu.Unlock()
		return false
	}
	due := now.Hour() > t.config.Schedule.Hour ||
		(now.Hour() == t.config.Schedule.Hour && now.Minute() >= t.config.Schedule.Minute)
	if !due {
		t.mu.Unlock()
		return false
	}
	t.lastRunDate = today
	t.mu.Unlock()

	t.RunOnce(ctx)
	return true
}

// RunOnce performs one sweep immediately.
func (t *RetentionTrigger) RunOnce(ctx context.Context) (int, error) {
	if t.config.JobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.config.JobTimeout)
		defer cancel()
	}

	start := t.now()
	deleted, err := t.sweeper.CleanupOlderThan(ctx, t.config.Retention)
	t.metrics.RecordSweep(ctx, deleted)
	if err != nil {
		t.logger.Error("Report retention sweep failed", zap.Error(err))
		return deleted, err
	}
	t.logger.Info("Report retention sweep finished",
		zap.Int("deleted", deleted),
		zap.Duration("duration", t.now().Sub(start)),
	)
	return deleted, nil
}
