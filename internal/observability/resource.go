package observability

import (
	"context"

	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// serviceName is set by the Init* telemetry functions and falls back to the
// calculator's default when telemetry is initialised piecemeal in tests.
var serviceName = "flexible-calculator"

func ServiceName() string {
	return serviceName
}

func newResource(ctx context.Context, name string) (*resource.Resource, error) {
	if name != "" {
		serviceName = name
	}

	return resource.New(
		ctx,
		resource.WithFromEnv(),
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
}
