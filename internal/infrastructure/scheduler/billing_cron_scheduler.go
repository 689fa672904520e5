package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	appbilling "github.com/aqari/backend/internal/application/billing"
)

// cronTickInterval is how often the scheduler checks whether it is time to run
const cronTickInterval = time.Minute

// sweepTimeout bounds one full nightly run
const sweepTimeout = 30 * time.Minute

// BillingCronConfig holds configuration for the nightly billing run
type BillingCronConfig struct {
	// Enabled indicates whether the scheduler runs at all
	Enabled bool
	// Hour is the local hour (0-23) of the nightly run
	Hour int
	// Minute is the minute (0-59) of the nightly run
	Minute int
}

// DefaultBillingCronConfig runs the sweeps at 02:00 daily
func DefaultBillingCronConfig() BillingCronConfig {
	return BillingCronConfig{
		Enabled: true,
		Hour:    2,
		Minute:  0,
	}
}

// BillingCronScheduler drives the recurring billing sweeps on a daily
// schedule: invoice generation, overdue flagging and lease expiry. Every
// sweep is idempotent, so a run that overlaps a crash recovery or a manual
// trigger does no harm.
type BillingCronScheduler struct {
	config BillingCronConfig
	sweeps *appbilling.SweepService
	logger *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool

	lastRunAt *time.Time
	nextRunAt *time.Time
}

// NewBillingCronScheduler creates a new BillingCronScheduler
func NewBillingCronScheduler(config BillingCronConfig, sweeps *appbilling.SweepService, logger *zap.Logger) *BillingCronScheduler {
	return &BillingCronScheduler{
		config: config,
		sweeps: sweeps,
		logger: logger,
	}
}

// Start starts the cron loop. Disabled schedulers start successfully and do
// nothing.
func (s *BillingCronScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	if !s.config.Enabled {
		s.logger.Info("Billing scheduler disabled")
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.calculateNextRunTime()

	s.wg.Add(1)
	go s.cronLoop(ctx)

	s.logger.Info("Billing scheduler started",
		zap.Int("hour", s.config.Hour),
		zap.Int("minute", s.config.Minute),
		zap.Timep("next_run_at", s.nextRunAt),
	)
	return nil
}

// Stop stops the cron loop and waits for an in-flight run to finish
func (s *BillingCronScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Billing scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Billing scheduler stop timed out")
		return ctx.Err()
	}
}

func (s *BillingCronScheduler) cronLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(cronTickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if s.shouldRun(now) {
				s.runSweeps(ctx)
				s.calculateNextRunTime()
			}
		}
	}
}

func (s *BillingCronScheduler) shouldRun(now time.Time) bool {
	return now.Hour() == s.config.Hour && now.Minute() == s.config.Minute
}

func (s *BillingCronScheduler) calculateNextRunTime() {
	now := time.Now()
	next := time.Date(now.Year(), now.Month(), now.Day(), s.config.Hour, s.config.Minute, 0, 0, now.Location())
	if now.After(next) {
		next = next.AddDate(0, 0, 1)
	}

	s.mu.Lock()
	s.nextRunAt = &next
	s.mu.Unlock()
}

// runSweeps runs the three billing sweeps in order. Expiry goes first so that
// a lease ending today is not billed for the next period.
func (s *BillingCronScheduler) runSweeps(ctx context.Context) {
	now := time.Now()
	s.mu.Lock()
	s.lastRunAt = &now
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, sweepTimeout)
	defer cancel()

	s.logger.Info("Billing run starting")

	if _, err := s.sweeps.ExpireLeases(ctx); err != nil {
		s.logger.Error("Lease expiry sweep failed", zap.Error(err))
	}
	if _, err := s.sweeps.GenerateMonthlyInvoices(ctx); err != nil {
		s.logger.Error("Invoice generation sweep failed", zap.Error(err))
	}
	if _, err := s.sweeps.MarkOverdueInvoices(ctx); err != nil {
		s.logger.Error("Overdue sweep failed", zap.Error(err))
	}

	s.logger.Info("Billing run finished", zap.Duration("took", time.Since(now)))
}

// TriggerManualRun runs the sweeps immediately, detached from the caller's
// request context so an HTTP timeout cannot abort a half-finished run
func (s *BillingCronScheduler) TriggerManualRun(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return ErrSchedulerNotRunning
	}
	s.mu.Unlock()

	go s.runSweeps(context.Background())
	return nil
}

// GetStatus returns the current scheduler state for the admin endpoint
func (s *BillingCronScheduler) GetStatus() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]any{
		"enabled":     s.config.Enabled,
		"is_running":  s.isRunning,
		"hour":        s.config.Hour,
		"minute":      s.config.Minute,
		"last_run_at": s.lastRunAt,
		"next_run_at": s.nextRunAt,
	}
}

// GetNextRunAt returns when the next scheduled run will occur
func (s *BillingCronScheduler) GetNextRunAt() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextRunAt
}
