package sitecmd

import (
	"errors"

	"github.com/goliatone/go-devpot/internal/commands"
	"github.com/goliatone/go-devpot/internal/content"
	"github.com/goliatone/go-devpot/internal/generator"
	"github.com/goliatone/go-devpot/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the handlers produced by RegisterSiteCommands.
type HandlerSet struct {
	Build  *BuildSiteHandler
	Clean  *CleanSiteHandler
	Routes *ListRoutesHandler
	Search *SearchHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	buildHandlerOpts []commands.HandlerOption[BuildSiteCommand]
}

// WithBuildHandlerOptions forwards options to the BuildSiteHandler constructor.
func WithBuildHandlerOptions(opts ...commands.HandlerOption[BuildSiteCommand]) Option {
	return func(cfg *options) {
		cfg.buildHandlerOpts = append(cfg.buildHandlerOpts, opts...)
	}
}

// RegisterSiteCommands builds the site handlers and registers them with reg
// when one is given.
func RegisterSiteCommands(reg CommandRegistry, service generator.Service, translator content.Translator, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("site command registration: generator service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "site")
	set := &HandlerSet{
		Build:  NewBuildSiteHandler(service, logger, cfg.buildHandlerOpts...),
		Clean:  NewCleanSiteHandler(service, logger),
		Routes: NewListRoutesHandler(service, logger),
		Search: NewSearchHandler(service, translator, logger),
	}

	if reg != nil {
		for _, handler := range []any{set.Build, set.Clean, set.Routes, set.Search} {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}
