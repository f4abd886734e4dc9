package calculator

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"flexible-calculator/internal/calc"
)

// instrument returns a dispatcher interceptor that runs every resolved
// operation inside a child span of ctx and records the operation metrics.
// spanName is called once per operation, in dispatch order.
func instrument(ctx context.Context, spanName func(op calc.Operation) string) calc.Interceptor {
	return func(op calc.Operation, a, b float64, next calc.Func) (float64, error) {
		_, span := tracer.Start(ctx, spanName(op),
			trace.WithAttributes(
				attribute.String("calculator.operation", op.String()),
				attribute.Float64("calculator.operand.a", a),
				attribute.Float64("calculator.operand.b", b),
			),
		)
		defer span.End()

		start := time.Now()
		result, err := next(a, b)
		elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return result, err
		}

		attrs := metric.WithAttributes(attribute.String("operation", op.String()))
		opsCounter.Add(ctx, 1, attrs)
		opsHistogram.Record(ctx, elapsed, attrs)

		span.AddEvent("computation.complete", trace.WithAttributes(
			attribute.Float64("result", result),
			attribute.Float64("duration_ms", elapsed),
		))
		span.SetAttributes(attribute.Float64("calculator.result", result))
		span.SetStatus(codes.Ok, "")

		return result, nil
	}
}
