package observability

import (
	"context"
	"errors"
)

// Setup starts OTLP tracing, metrics and log export. When enabled is false
// nothing is exported and the global no-op providers stay in place, which
// keeps local runs and tests free of collector dependencies.
func Setup(ctx context.Context, serviceName string, enabled bool) (func(context.Context) error, error) {
	if !enabled {
		return func(context.Context) error { return nil }, nil
	}

	var shutdowns []func(context.Context) error
	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	for _, start := range []func(context.Context, string) (func(context.Context) error, error){
		InitTracing,
		InitMetrics,
		InitLogging,
	} {
		fn, err := start(ctx, serviceName)
		if err != nil {
			return nil, errors.Join(err, shutdown(ctx))
		}
		shutdowns = append(shutdowns, fn)
	}

	return shutdown, nil
}
