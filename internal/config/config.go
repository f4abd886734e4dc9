// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"flexible-calculator/internal/calc"
)

// Config is the runtime configuration of the calculator API.
type Config struct {
	HTTPAddr        string        `env:"CALC_HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"CALC_SHUTDOWN_TIMEOUT" envDefault:"5s"`
	Operations      []string      `env:"CALC_OPERATIONS" envDefault:"add,subtract,multiply,divide" envSeparator:","`
	ServiceName     string        `env:"OTEL_SERVICE_NAME" envDefault:"flexible-calculator"`
	Traces          bool          `env:"CALC_OTEL_TRACES" envDefault:"true"`
	Metrics         bool          `env:"CALC_OTEL_METRICS" envDefault:"true"`
	Logs            bool          `env:"CALC_OTEL_LOGS" envDefault:"false"`
	Development     bool          `env:"CALC_DEV_LOGGING" envDefault:"false"`
}

// Load parses Config from the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if _, err := cfg.Registry(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Registry builds the operation registry named by Operations.
func (c Config) Registry() (calc.Registry, error) {
	ops, err := calc.ParseOperations(c.Operations)
	if err != nil {
		return nil, fmt.Errorf("CALC_OPERATIONS: %w", err)
	}
	return calc.NewRegistry(ops...), nil
}
