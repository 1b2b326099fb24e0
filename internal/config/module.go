package config

import (
	"fmt"

	"go.uber.org/fx"
)

// Module provides *Config parsed from command-line flags and the environment.
var Module = fx.Provide(provide)

func provide() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
