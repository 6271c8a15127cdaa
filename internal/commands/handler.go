package commands

import (
	"context"
	"errors"
	"maps"
	"time"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-devpot/internal/logging"
	"github.com/goliatone/go-devpot/pkg/interfaces"
)

const defaultHandlerTimeout = 5 * time.Minute

// HandlerOption configures a Handler instance.
type HandlerOption[T command.Message] func(*Handler[T])

// Handler wraps command execution with the shared build concerns (context, logging, error tagging).
type Handler[T command.Message] struct {
	exec          command.CommandFunc[T]
	logger        interfaces.Logger
	timeout       time.Duration
	operation     string
	messageFields func(T) map[string]any
	telemetry     Telemetry[T]
}

// NewHandler creates a handler that satisfies go-command's Commander interface while applying
// validation, logging and timeout enforcement.
func NewHandler[T command.Message](fn command.CommandFunc[T], opts ...HandlerOption[T]) *Handler[T] {
	if fn == nil {
		panic("commands: handler function cannot be nil")
	}
	h := &Handler[T]{
		exec:      fn,
		logger:    logging.NoOp(),
		timeout:   defaultHandlerTimeout,
		telemetry: LogTelemetry[T](nil),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Execute conforms to command.Commander[T].Execute. It validates msg, applies
// the timeout, runs the wrapped function and tags any failure with a text
// code derived from the operation name.
func (h *Handler[T]) Execute(ctx context.Context, msg T) error {
	if err := command.ValidateMessage(msg); err != nil {
		return classify(err, h.operation, failureInvalid)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return classify(err, h.operation, contextFailure(err))
	}

	messageType := command.GetMessageType(msg)
	fields := map[string]any{
		"command": messageType,
	}
	if h.operation != "" {
		fields["operation"] = h.operation
	}
	if h.messageFields != nil {
		maps.Copy(fields, h.messageFields(msg))
	}
	logger := logging.WithFields(h.logger, fields)
	logger.Debug("command.execute.start")

	ctx, out := withOutcome(ctx)
	started := time.Now()
	err := h.exec(ctx, msg)
	if err == nil {
		err = ctx.Err()
	}

	status := TelemetryStatusSuccess
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		status = TelemetryStatusContextError
		err = classify(err, h.operation, contextFailure(err))
	default:
		status = TelemetryStatusFailed
		err = classify(err, h.operation, failureFailed)
	}

	h.telemetry(ctx, msg, TelemetryInfo{
		Command:   messageType,
		Operation: h.operation,
		Fields:    fields,
		Outcome:   out.snapshot(),
		Duration:  time.Since(started),
		Error:     err,
		ErrorCode: ErrorCode(err),
		Status:    status,
		Logger:    logger,
	})
	return err
}

// WithTimeout overrides the default execution timeout. Zero disables it.
func WithTimeout[T command.Message](timeout time.Duration) HandlerOption[T] {
	return func(h *Handler[T]) {
		if timeout <= 0 {
			h.timeout = 0
			return
		}
		h.timeout = timeout
	}
}

// WithLogger injects the logger used during execution. Defaults to a no-op logger.
func WithLogger[T command.Message](logger interfaces.Logger) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.logger = logging.OrNoOp(logger)
	}
}

// WithOperation sets a human-friendly operation name emitted with every log entry.
func WithOperation[T command.Message](operation string) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.operation = operation
	}
}

// WithMessageFields adds message specific fields to every log entry.
func WithMessageFields[T command.Message](fn func(T) map[string]any) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.messageFields = fn
	}
}

// WithTelemetry replaces the default command.finished logging with fn.
func WithTelemetry[T command.Message](fn Telemetry[T]) HandlerOption[T] {
	return func(h *Handler[T]) {
		if fn != nil {
			h.telemetry = fn
		}
	}
}
