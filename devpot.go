package devpot

import (
	"context"

	sitecmd "github.com/goliatone/go-devpot/internal/commands/site"
	"github.com/goliatone/go-devpot/internal/di"
	"github.com/goliatone/go-devpot/internal/generator"
	"github.com/goliatone/go-devpot/internal/logging"
	"github.com/goliatone/go-devpot/internal/search"
	"github.com/goliatone/go-devpot/internal/server"
	"github.com/goliatone/go-devpot/pkg/interfaces"
)

// GeneratorService exports the static site generator contract.
type GeneratorService = generator.Service

// BuildOptions narrows a generator run.
type BuildOptions = generator.BuildOptions

// BuildResult reports the outcome of a generator run.
type BuildResult = generator.BuildResult

// Command messages accepted by the site handlers.
type (
	BuildSiteCommand = sitecmd.BuildSiteCommand
	CleanSiteCommand = sitecmd.CleanSiteCommand
	ListRoutesQuery  = sitecmd.ListRoutesQuery
	SearchQuery      = sitecmd.SearchQuery
	ResultEnvelope   = sitecmd.ResultEnvelope
	RouteEntry       = sitecmd.RouteEntry
	SearchResponse   = search.Response
	CommandHandlers  = sitecmd.HandlerSet
	PreviewServer    = server.Server
)

// Option customises the module wiring.
type Option = di.Option

var (
	WithLoggerProvider = di.WithLoggerProvider
	WithContentFS      = di.WithContentFS
	WithStaticFS       = di.WithStaticFS
	WithTemplatesFS    = di.WithTemplatesFS
	WithWriter         = di.WithWriter
	WithLedger         = di.WithLedger
)

// Module is the assembled blog pipeline.
type Module struct {
	container *di.Container
}

// New constructs a module from cfg. Preview mode is applied before
// validation.
func New(ctx context.Context, cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(ctx, cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Config returns the resolved configuration.
func (m *Module) Config() Config {
	return m.container.Config
}

// Generator returns the configured generator service.
func (m *Module) Generator() GeneratorService {
	return m.container.GeneratorService()
}

// Commands returns the site command handlers.
func (m *Module) Commands() *CommandHandlers {
	return m.container.Commands()
}

// Logger returns a module scoped logger.
func (m *Module) Logger(name string) interfaces.Logger {
	return logging.ModuleLogger(m.container.LoggerProvider(), name)
}

// Server builds the preview server. An empty addr uses the configured one.
func (m *Module) Server(addr string, watch bool) (*PreviewServer, error) {
	return m.container.NewServer(addr, watch)
}

// Close releases resources held by the module.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
