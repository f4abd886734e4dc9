package main

import (
	"context"
	"errors"

	"flexible-calculator/internal/calculator"
	"flexible-calculator/internal/config"
	"flexible-calculator/internal/observability"
)

// initTelemetry starts the OTel providers enabled in cfg and registers the
// calculator's metric instruments. The returned func shuts down every
// provider that was started.
func initTelemetry(ctx context.Context, cfg config.Config) (func(context.Context) error, error) {
	var shutdowns []func(context.Context) error

	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	if cfg.Traces {
		s, err := observability.InitTracing(ctx, cfg.ServiceName)
		if err != nil {
			return nil, err
		}
		shutdowns = append(shutdowns, s)
	}

	if cfg.Metrics {
		s, err := observability.InitMetrics(ctx, cfg.ServiceName)
		if err != nil {
			_ = shutdown(ctx)
			return nil, err
		}
		shutdowns = append(shutdowns, s)
	}

	if cfg.Logs {
		s, err := observability.InitLogging(ctx, cfg.ServiceName)
		if err != nil {
			_ = shutdown(ctx)
			return nil, err
		}
		shutdowns = append(shutdowns, s)
	}

	// Instruments bind to whichever meter provider is global by now.
	if err := calculator.InitMetrics(); err != nil {
		_ = shutdown(ctx)
		return nil, err
	}

	return shutdown, nil
}
