package logging

import (
	"context"
	"maps"

	"github.com/goliatone/go-devpot/pkg/interfaces"
)

// WithFields attaches fields when logger implements FieldsLogger and returns
// it unchanged otherwise.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	fieldsLogger, ok := logger.(interfaces.FieldsLogger)
	if !ok {
		return logger
	}
	return fieldsLogger.WithFields(maps.Clone(fields))
}

// OrNoOp returns logger, or a logger that drops every entry when it is nil.
func OrNoOp(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return NoOp()
	}
	return logger
}

// Scoped returns logger bound to the build scope of ctx.
func Scoped(logger interfaces.Logger, ctx context.Context) interfaces.Logger {
	logger = OrNoOp(logger)
	if BuildScopeFrom(ctx).IsZero() {
		return logger
	}
	return logger.WithContext(ctx)
}
