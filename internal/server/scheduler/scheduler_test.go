package scheduler

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Alok0227/rallly/internal/logging"
	"github.com/Alok0227/rallly/internal/server/housekeeping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSweeper struct {
	calls atomic.Int64
}

func (f *fakeSweeper) Run(ctx context.Context) (*housekeeping.Result, error) {
	f.calls.Add(1)
	return &housekeeping.Result{}, nil
}

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestStart_EmptyScheduleDisablesScheduler(t *testing.T) {
	s := NewScheduler(&fakeSweeper{}, "", discardLogger())

	require.NoError(t, s.Start(context.Background()))
	assert.False(t, s.IsRunning())
}

func TestStart_InvalidCronExpression(t *testing.T) {
	s := NewScheduler(&fakeSweeper{}, "not a cron", discardLogger())

	err := s.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid cron schedule")
	assert.False(t, s.IsRunning())
}

func TestStartAndStop(t *testing.T) {
	s := NewScheduler(&fakeSweeper{}, "0 3 * * *", discardLogger())

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())

	s.Stop()
	assert.False(t, s.IsRunning())
}

func TestStart_StopsOnContextCancel(t *testing.T) {
	s := NewScheduler(&fakeSweeper{}, "0 3 * * *", discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	require.True(t, s.IsRunning())

	cancel()

	deadline := time.After(2 * time.Second)
	for s.IsRunning() {
		select {
		case <-deadline:
			t.Fatal("scheduler did not stop after context cancellation")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestStop_IsIdempotent(t *testing.T) {
	s := NewScheduler(&fakeSweeper{}, "0 3 * * *", discardLogger())

	require.NoError(t, s.Start(context.Background()))
	s.Stop()
	s.Stop()
	assert.False(t, s.IsRunning())
}
