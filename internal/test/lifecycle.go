package test

import (
	"context"
	"sync"

	"go.uber.org/fx"
)

// LifecycleRecorder captures lifecycle hooks appended during tests.
type LifecycleRecorder struct {
	Hooks []fx.Hook
}

// Append stores hook for later invocation.
func (l *LifecycleRecorder) Append(h fx.Hook) {
	l.Hooks = append(l.Hooks, h)
}

// Start runs every recorded OnStart hook in order and stops at the first error.
func (l *LifecycleRecorder) Start(ctx context.Context) error {
	for _, h := range l.Hooks {
		if h.OnStart == nil {
			continue
		}
		if err := h.OnStart(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Stop runs recorded OnStop hooks in reverse order, like fx does.
func (l *LifecycleRecorder) Stop(ctx context.Context) error {
	for i := len(l.Hooks) - 1; i >= 0; i-- {
		if l.Hooks[i].OnStop == nil {
			continue
		}
		if err := l.Hooks[i].OnStop(ctx); err != nil {
			return err
		}
	}
	return nil
}

// ShutdownerStub records shutdown requests issued by background components.
type ShutdownerStub struct {
	Called chan struct{}

	mu    sync.Mutex
	count int
}

// Shutdown counts the request and notifies a waiting test, if any.
func (s *ShutdownerStub) Shutdown(...fx.ShutdownOption) error {
	s.mu.Lock()
	s.count++
	s.mu.Unlock()

	if s.Called != nil {
		select {
		case s.Called <- struct{}{}:
		default:
		}
	}
	return nil
}

// Count returns how many times Shutdown was requested.
func (s *ShutdownerStub) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}
