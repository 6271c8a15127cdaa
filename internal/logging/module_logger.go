package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-devpot/pkg/interfaces"
)

const (
	rootModule      = "devpot"
	contentModule   = "devpot.content"
	routesModule    = "devpot.routes"
	generatorModule = "devpot.generator"
	ledgerModule    = "devpot.ledger"
	serverModule    = "devpot.server"
	commandsModule  = "devpot.commands"
)

// Field names shared by the console format and the build scope.
const (
	FieldModule  = "module"
	FieldBuildID = "build_id"
	FieldRoute   = "route"

	fieldSourcePath = "source_path"
	fieldLang       = "lang"
	fieldStep       = "step"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module name is attached
// as a structured field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{FieldModule: module})
}

// ContentLogger returns the logger used while loading posts.
func ContentLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, contentModule)
}

// RoutesLogger returns the logger used by route generation.
func RoutesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, routesModule)
}

// GeneratorLogger returns the logger used by the static generator.
func GeneratorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, generatorModule)
}

// LedgerLogger returns the logger used by the build ledger.
func LedgerLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, ledgerModule)
}

// ServerLogger returns the logger used by the preview server.
func ServerLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, serverModule)
}

// CommandsLogger returns the logger used by command handlers.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

// WithSourceContext enriches the logger with the content file path, the
// language and the pipeline step. Empty values are ignored.
func WithSourceContext(logger interfaces.Logger, path, lang, step string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldSourcePath] = trimmed
	}
	if trimmed := strings.TrimSpace(lang); trimmed != "" {
		fields[fieldLang] = trimmed
	}
	if trimmed := strings.TrimSpace(step); trimmed != "" {
		fields[fieldStep] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var (
	_ interfaces.Logger       = noopLogger{}
	_ interfaces.FieldsLogger = noopLogger{}
)

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
