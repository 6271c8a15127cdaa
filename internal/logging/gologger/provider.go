package gologger

import (
	"context"
	"fmt"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-devpot/internal/logging"
	"github.com/goliatone/go-devpot/internal/logging/console"
	"github.com/goliatone/go-devpot/pkg/interfaces"
)

// Config mirrors the logging section of the devpot configuration.
type Config struct {
	Level     string
	Format    string
	AddSource bool
	// Focus limits output to the named module loggers, e.g. devpot.generator.
	Focus []string
}

var formats = map[string]string{
	"":        glog.LoggerTypeJSON,
	"json":    glog.LoggerTypeJSON,
	"console": glog.LoggerTypeConsole,
	"pretty":  glog.LoggerTypePretty,
}

// Provider hands out go-logger children named after devpot modules.
type Provider struct {
	root *glog.BaseLogger
}

// NewProvider builds the go-logger root. Level names follow the console
// provider, so both accept the same configuration.
func NewProvider(cfg Config) (*Provider, error) {
	format, ok := formats[strings.ToLower(strings.TrimSpace(cfg.Format))]
	if !ok {
		return nil, fmt.Errorf("logging: unsupported go-logger format %q", cfg.Format)
	}
	level, ok := console.ParseLevel(cfg.Level)
	if !ok {
		return nil, fmt.Errorf("logging: unsupported go-logger level %q", cfg.Level)
	}

	root := glog.NewLogger(
		glog.WithLoggerType(format),
		glog.WithLevel(level.String()),
		glog.WithAddSource(cfg.AddSource),
	)
	if focus := modules(cfg.Focus); len(focus) > 0 {
		root.Focus(focus...)
	}
	return &Provider{root: root}, nil
}

// GetLogger returns the child logger of module name, the root when empty.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil || p.root == nil {
		return logging.NoOp()
	}
	if name = strings.TrimSpace(name); name == "" {
		return &adapter{inner: p.root}
	}
	return &adapter{inner: p.root.GetLogger(name)}
}

// adapter forwards to go-logger. go-logger does not read the devpot build
// scope from contexts, so WithContext also copies it into fields.
type adapter struct {
	inner glog.Logger
}

func (l *adapter) Trace(msg string, args ...any) { l.inner.Trace(msg, args...) }
func (l *adapter) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l *adapter) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l *adapter) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l *adapter) Error(msg string, args ...any) { l.inner.Error(msg, args...) }
func (l *adapter) Fatal(msg string, args ...any) { l.inner.Fatal(msg, args...) }

func (l *adapter) WithFields(fields map[string]any) interfaces.Logger {
	with, ok := l.inner.(glog.FieldsLogger)
	if !ok || len(fields) == 0 {
		return l
	}
	copied := make(map[string]any, len(fields))
	for key, value := range fields {
		copied[key] = value
	}
	return &adapter{inner: with.WithFields(copied)}
}

func (l *adapter) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return l
	}
	scoped := &adapter{inner: l.inner.WithContext(ctx)}
	return scoped.WithFields(logging.BuildScopeFrom(ctx).Fields())
}

func modules(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
