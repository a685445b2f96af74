package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeSweeper struct {
	calls atomic.Int64
	n     int64
	err   error
}

func (f *fakeSweeper) CleanupExpired(ctx context.Context) (int64, error) {
	f.calls.Add(1)
	return f.n, f.err
}

func TestSweep_ReturnsCount(t *testing.T) {
	s := &fakeSweeper{n: 3}
	w := NewStateCleanup(s, zap.NewNop(), time.Hour)
	if got := w.Sweep(); got != 3 {
		t.Errorf("Sweep() = %d, want 3", got)
	}
	if calls := s.calls.Load(); calls != 1 {
		t.Errorf("sweeper called %d times, want 1", calls)
	}
}

func TestSweep_ErrorReturnsZero(t *testing.T) {
	s := &fakeSweeper{n: 3, err: errors.New("boom")}
	w := NewStateCleanup(s, zap.NewNop(), time.Hour)
	if got := w.Sweep(); got != 0 {
		t.Errorf("Sweep() = %d, want 0 on error", got)
	}
}

func TestStartStop_RunsOnTick(t *testing.T) {
	s := &fakeSweeper{}
	w := NewStateCleanup(s, zap.NewNop(), 5*time.Millisecond)
	w.Start()

	deadline := time.Now().Add(2 * time.Second)
	for s.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	w.Stop()
	w.Stop()

	if s.calls.Load() == 0 {
		t.Error("expected at least one sweep before Stop")
	}
}
