package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go-chi-calculator/internal/expr"
	"go-chi-calculator/internal/handlers"
	"go-chi-calculator/internal/keypad"
	"go-chi-calculator/internal/observability"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// Service serves the calculator HTTP API on top of a session store.
type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// ---------------------------------------------------------------------------
// Handler: one-shot evaluation
// ---------------------------------------------------------------------------

// Evaluate handles POST /calculator/evaluate
func (svc *Service) Evaluate(w http.ResponseWriter, r *http.Request) {
	const opName = "evaluate"

	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.evaluate",
		trace.WithAttributes(
			attribute.String("calculator.operation", opName),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	if strings.TrimSpace(req.Expression) == "" {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "expression is required", errors.New("empty expression"), http.StatusBadRequest, w)
		return
	}

	rpn := expr.Join(expr.ToRPN(expr.Tokenize(req.Expression)))
	span.SetAttributes(
		attribute.String("calculator.expression", req.Expression),
		attribute.String("calculator.rpn", rpn),
	)

	start := time.Now()
	result, err := expr.Evaluate(req.Expression)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, evaluationMessage(err), err, http.StatusUnprocessableEntity, w)
		return
	}

	display := expr.FormatResult(result)

	attrs := metric.WithAttributes(attribute.String("operation", opName))
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)
	resultGauge.Record(ctx, result, attrs)

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.Float64("result", result),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(attribute.Float64("calculator.result", result))
	span.SetStatus(codes.Ok, "")

	logger.Info("expression evaluated",
		zap.String("operation", opName),
		zap.String("expression", req.Expression),
		zap.String("rpn", rpn),
		zap.Float64("result", result),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, EvaluateResponse{
		Expression: req.Expression,
		RPN:        rpn,
		Result:     result,
		Display:    display,
	})
}

func evaluationMessage(err error) string {
	switch {
	case errors.Is(err, expr.ErrDivisionByZero):
		return "division by zero"
	case errors.Is(err, expr.ErrInvalidExpression):
		return "invalid expression"
	}
	return "evaluation failed"
}

// ---------------------------------------------------------------------------
// Handlers: session lifecycle
// ---------------------------------------------------------------------------

// CreateSession handles POST /calculator/sessions
func (svc *Service) CreateSession(w http.ResponseWriter, r *http.Request) {
	const opName = "create_session"

	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.session.create",
		trace.WithAttributes(attribute.String("request.id", requestID)),
	)
	defer span.End()

	created, err := svc.store.Create()
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "session limit reached", err, http.StatusServiceUnavailable, w)
		return
	}
	sessionsGauge.Add(ctx, 1)

	span.SetAttributes(attribute.String("calculator.session.id", created.ID))
	span.SetStatus(codes.Ok, "")

	logger.Info("session created",
		zap.String("session_id", created.ID),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusCreated, created)
}

// GetSession handles GET /calculator/sessions/{id}
func (svc *Service) GetSession(w http.ResponseWriter, r *http.Request) {
	svc.withSession(w, r, "get_session", func(s *Session) (int, any) {
		return http.StatusOK, newSessionResponse(s)
	})
}

// DeleteSession handles DELETE /calculator/sessions/{id}
func (svc *Service) DeleteSession(w http.ResponseWriter, r *http.Request) {
	const opName = "delete_session"

	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "calculator.session.delete",
		trace.WithAttributes(attribute.String("calculator.session.id", id)),
	)
	defer span.End()

	if err := svc.store.Delete(id); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, err.Error(), err, http.StatusNotFound, w)
		return
	}
	sessionsGauge.Add(ctx, -1)
	span.SetStatus(codes.Ok, "")

	logger.Info("session deleted",
		zap.String("session_id", id),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	w.WriteHeader(http.StatusNoContent)
}

// GetHistory handles GET /calculator/sessions/{id}/history
func (svc *Service) GetHistory(w http.ResponseWriter, r *http.Request) {
	svc.withSession(w, r, "get_history", func(s *Session) (int, any) {
		return http.StatusOK, HistoryResponse{Entries: s.History()}
	})
}

// ClearHistory handles DELETE /calculator/sessions/{id}/history. The
// session's display and pending expression are left alone.
func (svc *Service) ClearHistory(w http.ResponseWriter, r *http.Request) {
	svc.withSession(w, r, "clear_history", func(s *Session) (int, any) {
		s.ClearHistory()
		return http.StatusNoContent, nil
	})
}

// withSession is the shared implementation for handlers that run one
// function against a stored session and render what it returns.
func (svc *Service) withSession(w http.ResponseWriter, r *http.Request, opName string, fn func(*Session) (int, any)) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "calculator.session."+opName,
		trace.WithAttributes(attribute.String("calculator.session.id", id)),
	)
	defer span.End()

	var (
		status int
		body   any
	)
	if err := svc.store.With(id, func(s *Session) { status, body = fn(s) }); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, err.Error(), err, http.StatusNotFound, w)
		return
	}
	span.SetStatus(codes.Ok, "")

	if body == nil {
		w.WriteHeader(status)
		return
	}
	handlers.WriteJSON(w, status, body)
}

// ---------------------------------------------------------------------------
// Handler: key presses (one child span per key)
// ---------------------------------------------------------------------------

// PressKeys handles POST /calculator/sessions/{id}/keys. It submits a batch of
// keypad labels to a session in order, creating a child span for every key.
// Every label is parsed before any is applied, so a bad label leaves the
// session untouched.
func (svc *Service) PressKeys(w http.ResponseWriter, r *http.Request) {
	const opName = "press_keys"

	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "calculator.keys",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
			attribute.String("calculator.session.id", id),
		),
	)
	defer span.End()

	var req KeysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	if len(req.Keys) == 0 {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "no keys provided", errors.New("keys array is empty"), http.StatusBadRequest, w)
		return
	}

	events, err := keypad.ParseKeys(req.Keys)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, err.Error(), err, http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(attribute.Int("calculator.keys_count", len(events)))

	var resp KeysResponse
	err = svc.store.With(id, func(s *Session) {
		resp.Evaluations = make([]EvaluationResult, 0)

		for i, ev := range events {
			_, keySpan := tracer.Start(ctx, fmt.Sprintf("calculator.key.%d.%s", i, ev.Key),
				trace.WithAttributes(
					attribute.Int("calculator.key.index", i),
					attribute.String("calculator.key", ev.String()),
				),
			)

			start := time.Now()
			evals := s.Press(ev)
			elapsed := float64(time.Since(start).Microseconds()) / 1000.0

			keyCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("key", ev.Key.String())))

			for _, e := range evals {
				resp.Evaluations = append(resp.Evaluations, recordEvaluation(ctx, keySpan, logger, id, e, elapsed))
			}

			keySpan.SetAttributes(attribute.String("calculator.display", s.calc.Display()))
			keySpan.End()
		}

		resp.SessionResponse = newSessionResponse(s)
	})
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, err.Error(), err, http.StatusNotFound, w)
		return
	}

	span.AddEvent("keys.complete", trace.WithAttributes(
		attribute.String("display", resp.Display),
		attribute.Int("evaluations", len(resp.Evaluations)),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("keys applied",
		zap.String("session_id", id),
		zap.Int("keys", len(events)),
		zap.String("display", resp.Display),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, resp)
}

// recordEvaluation reports one '=' or '%' press on the key span, metrics and
// log. A failed evaluation is not a failed request: the session shows Error
// and the response carries the reason.
func recordEvaluation(ctx context.Context, span trace.Span, logger *zap.Logger, sessionID string, e keypad.Evaluation, elapsed float64) EvaluationResult {
	attrs := metric.WithAttributes(attribute.String("operation", e.Key.String()))

	res := EvaluationResult{
		Key:        e.Key.String(),
		Expression: expr.DisplayGlyphs(e.Expression),
		Display:    e.Display,
	}

	if e.Err != nil {
		res.Error = evaluationMessage(e.Err)

		span.RecordError(e.Err)
		span.SetStatus(codes.Error, res.Error)
		errorCounter.Add(ctx, 1, attrs)

		logger.Warn("evaluation failed",
			zap.String("session_id", sessionID),
			zap.String("operation", e.Key.String()),
			zap.String("expression", e.Expression),
			zap.Error(e.Err),
		)
		return res
	}

	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)
	resultGauge.Record(ctx, e.Result, attrs)

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.String("expression", e.Expression),
		attribute.Float64("result", e.Result),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("evaluation completed",
		zap.String("session_id", sessionID),
		zap.String("operation", e.Key.String()),
		zap.String("expression", e.Expression),
		zap.Float64("result", e.Result),
		zap.String("display", e.Display),
	)
	return res
}
