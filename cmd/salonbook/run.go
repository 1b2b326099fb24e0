package main

import (
	"context"
	"fmt"
	"os"
)

type lifecycle interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Done() <-chan os.Signal
}

// run starts app and blocks until ctx is cancelled or fx requests shutdown.
func run(ctx context.Context, app lifecycle) error {
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("start application: %w", err)
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	if err := app.Stop(context.Background()); err != nil {
		return fmt.Errorf("stop application: %w", err)
	}
	return nil
}
