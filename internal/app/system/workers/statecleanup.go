// internal/app/system/workers/statecleanup.go
package workers

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Sweeper deletes expired records and reports how many it removed.
type Sweeper interface {
	CleanupExpired(ctx context.Context) (int64, error)
}

// StateCleanup is a background worker that periodically sweeps expired
// OAuth state tokens. MongoDB's TTL monitor runs about once a minute and can
// lag under load; this keeps the collection small regardless.
type StateCleanup struct {
	sweeper  Sweeper
	log      *zap.Logger
	interval time.Duration
	timeout  time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewStateCleanup creates a cleanup worker running every interval.
func NewStateCleanup(sweeper Sweeper, logger *zap.Logger, interval time.Duration) *StateCleanup {
	return &StateCleanup{
		sweeper:  sweeper,
		log:      logger,
		interval: interval,
		timeout:  30 * time.Second,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background cleanup loop.
func (w *StateCleanup) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("oauth state cleanup worker started", zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish. It is safe to
// call more than once.
func (w *StateCleanup) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.wg.Wait()
		w.log.Info("oauth state cleanup worker stopped")
	})
}

func (w *StateCleanup) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.Sweep()
		}
	}
}

// Sweep runs one cleanup pass.
func (w *StateCleanup) Sweep() int64 {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	count, err := w.sweeper.CleanupExpired(ctx)
	if err != nil {
		w.log.Error("failed to clean up expired OAuth states", zap.Error(err))
		return 0
	}
	if count > 0 {
		w.log.Debug("cleaned up expired OAuth states", zap.Int64("count", count))
	}
	return count
}
