package scheduler_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/avelsk/bankledger/pkg/scheduler"
	"github.com/stretchr/testify/assert"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTick_RunsTaskOnce(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	s := scheduler.New("test", time.Hour, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}, discard())

	s.Tick(context.Background())
	s.Tick(context.Background())
	assert.Equal(t, int32(2), calls.Load())
}

func TestTick_TaskErrorIsSwallowed(t *testing.T) {
	t.Parallel()
	s := scheduler.New("test", time.Hour, func(ctx context.Context) error {
		return errors.New("boom")
	}, discard())

	assert.NotPanics(t, func() { s.Tick(context.Background()) })
}

func TestStartStop_RunsPeriodically(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	s := scheduler.New("test", 5*time.Millisecond, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}, discard())

	s.Start(context.Background())
	assert.Eventually(t, func() bool {
		return calls.Load() >= 2
	}, time.Second, time.Millisecond)
	s.Stop()

	after := calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, calls.Load(), "no ticks after Stop returns")
}

func TestStart_Twice_IsNoOp(t *testing.T) {
	t.Parallel()
	s := scheduler.New("test", time.Hour, func(ctx context.Context) error {
		return nil
	}, discard())

	s.Start(context.Background())
	s.Start(context.Background())
	s.Stop()
	assert.NotPanics(t, s.Stop, "stopping a stopped scheduler is safe")
}
