package logger

import (
	"context"
	"log/slog"
	"testing"

	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/polkiloo/salonbook/internal/config"
)

func TestModuleHonoursConfiguredLevel(t *testing.T) {
	cases := map[string]struct {
		enabled  slog.Level
		disabled slog.Level
	}{
		"debug": {enabled: slog.LevelDebug},
		"info":  {enabled: slog.LevelInfo, disabled: slog.LevelDebug},
		"error": {enabled: slog.LevelError, disabled: slog.LevelWarn},
	}

	for level, tc := range cases {
		t.Run(level, func(t *testing.T) {
			var resolved *slog.Logger
			app := fxtest.New(t,
				fx.Supply(&config.Config{LogLevel: level}),
				Module,
				fx.Populate(&resolved),
			)
			app.RequireStart()
			defer app.RequireStop()

			if !resolved.Enabled(context.Background(), tc.enabled) {
				t.Fatalf("expected %v to be enabled at %s", tc.enabled, level)
			}
			if level != "debug" && resolved.Enabled(context.Background(), tc.disabled) {
				t.Fatalf("expected %v to be disabled at %s", tc.disabled, level)
			}
		})
	}
}
