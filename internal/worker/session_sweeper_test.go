package worker

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	testhelpers "github.com/polkiloo/salonbook/internal/test"
)

func waitForCalls(t *testing.T, purger *testhelpers.SessionPurgerStub, n int) {
	t.Helper()
	deadline := time.After(500 * time.Millisecond)
	for purger.CallCount() < n {
		select {
		case <-deadline:
			t.Fatalf("timeout waiting for %d purges, got %d", n, purger.CallCount())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestNewSessionSweeperDefaults(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	sweeper := NewSessionSweeper(&testhelpers.SessionPurgerStub{}, 0, logger)
	if sweeper.interval != time.Minute {
		t.Fatalf("expected default interval 1m, got %v", sweeper.interval)
	}
}

func TestSessionSweeperPurgesPeriodically(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	purger := &testhelpers.SessionPurgerStub{Removed: 3}
	sweeper := NewSessionSweeper(purger, 10*time.Millisecond, logger)

	sweeper.Start(context.Background())
	waitForCalls(t, purger, 2)
	sweeper.Stop()

	if !strings.Contains(buf.String(), "purged expired sessions") {
		t.Fatalf("expected purge to be logged, got %q", buf.String())
	}
}

func TestSessionSweeperSurvivesStartContextCancellation(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	purger := &testhelpers.SessionPurgerStub{}
	sweeper := NewSessionSweeper(purger, 10*time.Millisecond, logger)

	ctx, cancel := context.WithCancel(context.Background())
	sweeper.Start(ctx)
	cancel()

	waitForCalls(t, purger, 1)
	sweeper.Stop()
}

func TestSessionSweeperLogsErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	purger := &testhelpers.SessionPurgerStub{Err: errors.New("boom")}
	sweeper := NewSessionSweeper(purger, 10*time.Millisecond, logger)

	sweeper.Start(context.Background())
	waitForCalls(t, purger, 1)
	sweeper.Stop()

	if !strings.Contains(buf.String(), "purge expired sessions failed") {
		t.Fatalf("expected error to be logged, got %q", buf.String())
	}
}

func TestSessionSweeperStartIsIdempotent(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	purger := &testhelpers.SessionPurgerStub{}
	sweeper := NewSessionSweeper(purger, time.Hour, logger)

	sweeper.Start(context.Background())
	first := sweeper.cancel
	sweeper.Start(context.Background())
	if sweeper.cancel == nil || first == nil {
		t.Fatal("expected sweeper to be running")
	}
	sweeper.Stop()
	sweeper.Stop()

	if sweeper.cancel != nil {
		t.Fatal("expected cancel to be cleared after stop")
	}
	if purger.CallCount() != 0 {
		t.Fatalf("expected no purges before the first tick, got %d", purger.CallCount())
	}
}
