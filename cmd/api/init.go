package main

import (
	"context"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/config"
	"go-chi-calculator/internal/observability"
)

// initTelemetry starts the OTLP pipelines (when enabled) and registers the
// application-specific metric instruments. Add new domain InitMetrics calls
// here as the project grows.
func initTelemetry(ctx context.Context, cfg config.Config) (func(context.Context) error, error) {
	shutdown, err := observability.Setup(ctx, cfg.ServiceName, cfg.TelemetryEnabled)
	if err != nil {
		return nil, err
	}

	if err := calculator.InitMetrics(); err != nil {
		return nil, err
	}

	return shutdown, nil
}
