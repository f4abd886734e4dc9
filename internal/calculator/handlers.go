package calculator

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"flexible-calculator/internal/calc"
	"flexible-calculator/internal/handlers"
	"flexible-calculator/internal/observability"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// errNonFinite is reported when a result cannot be represented in JSON.
var errNonFinite = errors.New("result is not a finite number")

// Handler serves the calculator endpoints from a dispatcher.
type Handler struct {
	dispatcher *calc.Dispatcher
}

func NewHandler(d *calc.Dispatcher) *Handler {
	return &Handler{dispatcher: d}
}

// statusFor maps dispatcher errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errNonFinite):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ---------------------------------------------------------------------------
// Handler — binary operations
// ---------------------------------------------------------------------------

// Calculate handles POST /calculator/{operation}.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	op := calc.ParseOperation(chi.URLParam(r, "operation"))
	opName := op.String()

	ctx, span := tracer.Start(ctx, fmt.Sprintf("calculator.%s", opName),
		trace.WithAttributes(
			attribute.String("calculator.operation", opName),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	fail := func(msg string, err error, status int) {
		requestsTotal.WithLabelValues("calculate", "error").Inc()
		observability.RecordError(ctx, span, logger, errorCounter, opName, msg, err, status, w)
	}

	var req CalcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail("invalid request body", err, http.StatusBadRequest)
		return
	}

	d := h.dispatcher.With(calc.WithInterceptor(instrument(ctx, func(op calc.Operation) string {
		return "calculator.dispatch." + op.String()
	})))

	result, err := d.Calculate(op, req.A, req.B)
	if err == nil && !finite(result) {
		err = fmt.Errorf("%s(%g, %g) = %g: %w", opName, req.A, req.B, result, errNonFinite)
	}
	if err != nil {
		msg := err.Error()
		if errors.Is(err, errNonFinite) {
			msg = errNonFinite.Error()
		}
		fail(msg, err, statusFor(err))
		return
	}

	resultGauge.Record(ctx, result, metric.WithAttributes(attribute.String("operation", opName)))
	requestsTotal.WithLabelValues("calculate", "ok").Inc()
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator operation completed",
		zap.String("operation", opName),
		zap.Float64("a", req.A),
		zap.Float64("b", req.B),
		zap.Float64("result", result),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, CalcResponse{
		Operation: opName,
		A:         req.A,
		B:         req.B,
		Result:    result,
	})
}

// ---------------------------------------------------------------------------
// Handler — chained operations (nested spans)
// ---------------------------------------------------------------------------

// Chain handles POST /calculator/chain. Each dispatched step gets its own
// child span under the chain span; an empty chain returns the initial value.
func (h *Handler) Chain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.chain",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	fail := func(opName, msg string, err error, status int) {
		requestsTotal.WithLabelValues("chain", "error").Inc()
		observability.RecordError(ctx, span, logger, errorCounter, opName, msg, err, status, w)
	}

	var req ChainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail("chain", "invalid request body", err, http.StatusBadRequest)
		return
	}

	span.SetAttributes(
		attribute.Float64("chain.initial", req.Initial),
		attribute.Int("chain.steps_count", len(req.Steps)),
	)

	logger.Info("starting chained calculation",
		zap.Float64("initial", req.Initial),
		zap.Int("steps", len(req.Steps)),
		zap.String("request_id", requestID),
	)

	steps := make([]calc.Step, len(req.Steps))
	for i, s := range req.Steps {
		steps[i] = calc.Step{Op: calc.ParseOperation(s.Op), Operand: s.Value}
	}

	results := make([]ChainResult, 0, len(steps))
	record := func(op calc.Operation, a, b float64, next calc.Func) (float64, error) {
		result, err := next(a, b)
		if err != nil {
			return result, err
		}
		logger.Debug("chain step completed",
			zap.Int("step", len(results)),
			zap.String("operation", op.String()),
			zap.Float64("input", a),
			zap.Float64("value", b),
			zap.Float64("result", result),
		)
		results = append(results, ChainResult{Op: op.String(), Value: b, Result: result})
		return result, nil
	}

	d := h.dispatcher.With(
		calc.WithInterceptor(record),
		calc.WithInterceptor(instrument(ctx, func(op calc.Operation) string {
			return fmt.Sprintf("calculator.chain.step.%d.%s", len(results), op)
		})),
	)

	result, err := d.ChainOperations(req.Initial, steps)
	if err == nil && !finite(result) {
		err = fmt.Errorf("chain result %g: %w", result, errNonFinite)
	}
	if err != nil {
		failed := len(results)
		opName := "chain"
		if failed < len(steps) {
			opName = steps[failed].Op.String()
			span.SetAttributes(attribute.Int("chain.failed_step", failed))
		}

		msg := err.Error()
		if errors.Is(err, errNonFinite) {
			msg = errNonFinite.Error()
		}
		logger.Error("chain step failed",
			zap.Int("step", failed),
			zap.String("operation", opName),
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		fail(opName, msg, err, statusFor(err))
		return
	}

	resultGauge.Record(ctx, result, metric.WithAttributes(attribute.String("operation", "chain")))
	requestsTotal.WithLabelValues("chain", "ok").Inc()

	span.AddEvent("chain.complete", trace.WithAttributes(
		attribute.Float64("final_result", result),
		attribute.Int("total_steps", len(steps)),
	))
	span.SetAttributes(attribute.Float64("chain.result", result))
	span.SetStatus(codes.Ok, "")

	logger.Info("chained calculation completed",
		zap.Float64("initial", req.Initial),
		zap.Float64("result", result),
		zap.Int("steps", len(steps)),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, ChainResponse{
		Initial: req.Initial,
		Steps:   results,
		Result:  result,
	})
}

// Operations handles GET /calculator/operations.
func (h *Handler) Operations(w http.ResponseWriter, r *http.Request) {
	ops := h.dispatcher.Operations()
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = op.String()
	}

	requestsTotal.WithLabelValues("operations", "ok").Inc()
	handlers.WriteJSON(w, http.StatusOK, OperationsResponse{Operations: names})
}
