package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDefaultBillingCronConfig(t *testing.T) {
	cfg := DefaultBillingCronConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 2, cfg.Hour)
	assert.Equal(t, 0, cfg.Minute)
}

func TestBillingCronScheduler_ShouldRun(t *testing.T) {
	s := &BillingCronScheduler{
		config: BillingCronConfig{Hour: 2, Minute: 30},
	}

	tests := []struct {
		name     string
		time     time.Time
		expected bool
	}{
		{"exact match", time.Date(2026, 1, 15, 2, 30, 0, 0, time.UTC), true},
		{"wrong hour", time.Date(2026, 1, 15, 3, 30, 0, 0, time.UTC), false},
		{"wrong minute", time.Date(2026, 1, 15, 2, 31, 0, 0, time.UTC), false},
		{"midnight", time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, s.shouldRun(tt.time))
		})
	}
}

func TestBillingCronScheduler_NextRunTime(t *testing.T) {
	s := &BillingCronScheduler{
		config: BillingCronConfig{Enabled: true, Hour: 2, Minute: 0},
	}

	s.calculateNextRunTime()
	next := s.GetNextRunAt()

	require.NotNil(t, next)
	assert.Equal(t, 2, next.Hour())
	assert.Equal(t, 0, next.Minute())
	assert.True(t, next.After(time.Now()))
}

func TestBillingCronScheduler_StartStop(t *testing.T) {
	s := NewBillingCronScheduler(DefaultBillingCronConfig(), nil, zap.NewNop())

	ctx := context.Background()
	require.NoError(t, s.Start(ctx))
	// Idempotent start
	require.NoError(t, s.Start(ctx))

	stopCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, s.Stop(stopCtx))
	// Idempotent stop
	require.NoError(t, s.Stop(stopCtx))
}

func TestBillingCronScheduler_DisabledStartsClean(t *testing.T) {
	cfg := DefaultBillingCronConfig()
	cfg.Enabled = false
	s := NewBillingCronScheduler(cfg, nil, zap.NewNop())

	require.NoError(t, s.Start(context.Background()))

	status := s.GetStatus()
	assert.Equal(t, false, status["enabled"])
	assert.Equal(t, true, status["is_running"])
}

func TestBillingCronScheduler_ManualRunRequiresRunning(t *testing.T) {
	s := NewBillingCronScheduler(DefaultBillingCronConfig(), nil, zap.NewNop())

	err := s.TriggerManualRun(context.Background())
	assert.ErrorIs(t, err, ErrSchedulerNotRunning)
}
