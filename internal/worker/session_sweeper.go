package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// SessionPurger removes expired sessions and reports how many were dropped.
type SessionPurger interface {
	Purge(ctx context.Context) (int, error)
}

// SessionSweeper periodically purges expired sessions in the background.
type SessionSweeper struct {
	purger   SessionPurger
	interval time.Duration
	logger   *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewSessionSweeper constructs a sweeper running every interval.
func NewSessionSweeper(purger SessionPurger, interval time.Duration, logger *slog.Logger) *SessionSweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &SessionSweeper{
		purger:   purger,
		interval: interval,
		logger:   logger,
	}
}

// Start launches the sweep loop. Calling Start on a running sweeper is a no-op.
func (s *SessionSweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return
	}

	// fx cancels the start context once startup completes.
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel

	s.wg.Add(1)
	go s.loop(runCtx)
}

// Stop cancels the loop and waits for it to exit.
func (s *SessionSweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *SessionSweeper) loop(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *SessionSweeper) sweep(ctx context.Context) {
	removed, err := s.purger.Purge(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Error("purge expired sessions failed", slog.String("error", err.Error()))
		}
		return
	}
	if removed > 0 {
		s.logger.Info("purged expired sessions", slog.Int("removed", removed))
	}
}
