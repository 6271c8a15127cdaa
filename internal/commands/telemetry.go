package commands

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-devpot/internal/logging"
	"github.com/goliatone/go-devpot/pkg/interfaces"
)

// TelemetryStatus captures the result category for command execution.
type TelemetryStatus string

const (
	TelemetryStatusSuccess TelemetryStatus = "success"
	TelemetryStatusFailed  TelemetryStatus = "failed"
	// TelemetryStatusContextError marks runs stopped by cancellation or a deadline.
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// TelemetryInfo describes one finished command run.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	// Outcome holds what the command reported about its work, such as
	// pages_built for site builds.
	Outcome   map[string]any
	Duration  time.Duration
	Error     error
	ErrorCode string
	Status    TelemetryStatus
	Logger    interfaces.Logger
}

// Telemetry is invoked once after every command run.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

type outcomeKey struct{}

type outcome struct {
	mu     sync.Mutex
	fields map[string]any
}

func withOutcome(ctx context.Context) (context.Context, *outcome) {
	out := &outcome{fields: map[string]any{}}
	return context.WithValue(ctx, outcomeKey{}, out), out
}

func (o *outcome) snapshot() map[string]any {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.fields) == 0 {
		return nil
	}
	return maps.Clone(o.fields)
}

// Report adds fields to the outcome of the running command. Later values
// replace earlier ones. Outside a handler it does nothing.
func Report(ctx context.Context, fields map[string]any) {
	if ctx == nil {
		return
	}
	out, ok := ctx.Value(outcomeKey{}).(*outcome)
	if !ok {
		return
	}
	out.mu.Lock()
	maps.Copy(out.fields, fields)
	out.mu.Unlock()
}

// LogTelemetry logs command.finished with the run status and reported
// outcome. A nil logger uses the handler logger, which already carries
// the command fields.
func LogTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	return func(_ context.Context, _ T, info TelemetryInfo) {
		entry := info.Logger
		if logger != nil {
			entry = logging.WithFields(logger, info.Fields)
		}
		if entry == nil {
			return
		}
		args := []any{"status", string(info.Status), "duration_ms", info.Duration.Milliseconds()}
		for _, key := range slices.Sorted(maps.Keys(info.Outcome)) {
			args = append(args, key, info.Outcome[key])
		}
		switch info.Status {
		case TelemetryStatusSuccess:
			entry.Info("command.finished", args...)
		case TelemetryStatusContextError:
			entry.Warn("command.finished", append(args, "error_code", info.ErrorCode, "error", info.Error)...)
		default:
			entry.Error("command.finished", append(args, "error_code", info.ErrorCode, "error", info.Error)...)
		}
	}
}
