package sitecmd

import (
	"context"
	"strings"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-devpot/internal/commands"
	"github.com/goliatone/go-devpot/internal/content"
	"github.com/goliatone/go-devpot/internal/generator"
	"github.com/goliatone/go-devpot/internal/logging"
	"github.com/goliatone/go-devpot/internal/routes"
	"github.com/goliatone/go-devpot/internal/search"
	"github.com/goliatone/go-devpot/pkg/interfaces"
)

var (
	_ command.Commander[BuildSiteCommand] = (*BuildSiteHandler)(nil)
	_ command.Commander[CleanSiteCommand] = (*CleanSiteHandler)(nil)
	_ command.Commander[ListRoutesQuery]  = (*ListRoutesHandler)(nil)
	_ command.Commander[SearchQuery]      = (*SearchHandler)(nil)
)

// BuildSiteHandler runs generator builds through the shared command handler.
type BuildSiteHandler struct {
	inner *commands.Handler[BuildSiteCommand]
}

// NewBuildSiteHandler constructs a handler wired to the provided generator service.
func NewBuildSiteHandler(service generator.Service, logger interfaces.Logger, opts ...commands.HandlerOption[BuildSiteCommand]) *BuildSiteHandler {
	baseLogger := logging.OrNoOp(logger)

	exec := func(ctx context.Context, msg BuildSiteCommand) error {
		if service == nil {
			return generator.ErrServiceDisabled
		}
		options := generator.BuildOptions{
			Locales: normalizeLocales(msg.Locales),
			DryRun:  msg.DryRun,
			Force:   msg.Force,
		}
		result, err := service.Build(ctx, options)
		if result != nil {
			commands.Report(ctx, map[string]any{
				"build_id":      result.BuildID,
				"pages_built":   result.PagesBuilt,
				"pages_skipped": result.PagesSkipped,
				"static_copied": result.StaticCopied,
				"feeds_built":   result.FeedsBuilt,
				"errors":        len(result.Errors),
				"dry_run":       result.DryRun,
			})
		}
		operation := "build"
		if msg.DryRun {
			operation = "dry_run"
		}
		invokeCallback(msg.ResultCallback, ResultEnvelope{
			Result: result,
			Metadata: map[string]any{
				"operation": operation,
			},
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[BuildSiteCommand]{
		commands.WithLogger[BuildSiteCommand](baseLogger),
		commands.WithOperation[BuildSiteCommand]("site.build"),
		commands.WithMessageFields(func(msg BuildSiteCommand) map[string]any {
			fields := map[string]any{}
			if len(msg.Locales) > 0 {
				fields["locales"] = strings.Join(normalizeLocales(msg.Locales), ",")
			}
			if msg.Force {
				fields["force"] = true
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &BuildSiteHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[BuildSiteCommand].
func (h *BuildSiteHandler) Execute(ctx context.Context, msg BuildSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CleanSiteHandler clears generator artifacts.
type CleanSiteHandler struct {
	inner *commands.Handler[CleanSiteCommand]
}

// NewCleanSiteHandler constructs a handler that cleans generator output.
func NewCleanSiteHandler(service generator.Service, logger interfaces.Logger, opts ...commands.HandlerOption[CleanSiteCommand]) *CleanSiteHandler {
	baseLogger := logging.OrNoOp(logger)

	exec := func(ctx context.Context, _ CleanSiteCommand) error {
		if service == nil {
			return generator.ErrServiceDisabled
		}
		return service.Clean(ctx)
	}

	handlerOpts := []commands.HandlerOption[CleanSiteCommand]{
		commands.WithLogger[CleanSiteCommand](baseLogger),
		commands.WithOperation[CleanSiteCommand]("site.clean"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CleanSiteHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[CleanSiteCommand].
func (h *CleanSiteHandler) Execute(ctx context.Context, msg CleanSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ListRoutesHandler reports the routes of the loaded site.
type ListRoutesHandler struct {
	inner *commands.Handler[ListRoutesQuery]
}

// NewListRoutesHandler constructs a handler that loads the site and lists its routes.
func NewListRoutesHandler(service generator.Service, logger interfaces.Logger, opts ...commands.HandlerOption[ListRoutesQuery]) *ListRoutesHandler {
	baseLogger := logging.OrNoOp(logger)

	exec := func(ctx context.Context, msg ListRoutesQuery) error {
		if service == nil {
			return generator.ErrServiceDisabled
		}
		site, err := service.Load(ctx)
		if err != nil {
			return err
		}
		entries := ListRoutes(site, msg.Lang)
		if msg.ResultCallback != nil {
			msg.ResultCallback(entries)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ListRoutesQuery]{
		commands.WithLogger[ListRoutesQuery](baseLogger),
		commands.WithOperation[ListRoutesQuery]("site.routes"),
		commands.WithMessageFields(func(msg ListRoutesQuery) map[string]any {
			if msg.Lang == "" {
				return nil
			}
			return map[string]any{"lang": strings.ToLower(strings.TrimSpace(msg.Lang))}
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ListRoutesHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ListRoutesQuery].
func (h *ListRoutesHandler) Execute(ctx context.Context, msg ListRoutesQuery) error {
	return h.inner.Execute(ctx, msg)
}

// ListRoutes flattens the route tree of site, keeping lang only when set.
// The 404 page closes the list.
func ListRoutes(site *generator.Site, lang string) []RouteEntry {
	if site == nil || site.Routes == nil {
		return nil
	}
	lang = strings.ToLower(strings.TrimSpace(lang))
	all := append(routes.Flatten(site.Routes.All()), site.Routes.NotFound())
	entries := make([]RouteEntry, 0, len(all))
	for _, route := range all {
		if lang != "" && route.Lang != lang {
			continue
		}
		entries = append(entries, RouteEntry{
			Path:     route.Path,
			Template: route.Template,
			Kind:     route.Kind,
			Lang:     route.Lang,
			NoIndex:  route.NoIndex,
		})
	}
	return entries
}

// SearchHandler answers search queries against the loaded site.
type SearchHandler struct {
	inner *commands.Handler[SearchQuery]
}

// NewSearchHandler constructs a handler that ranks posts with the search package.
func NewSearchHandler(service generator.Service, translator content.Translator, logger interfaces.Logger, opts ...commands.HandlerOption[SearchQuery]) *SearchHandler {
	baseLogger := logging.OrNoOp(logger)

	exec := func(ctx context.Context, msg SearchQuery) error {
		if service == nil || translator == nil {
			return generator.ErrServiceDisabled
		}
		site, err := service.Load(ctx)
		if err != nil {
			return err
		}
		searcher := search.NewSearcher(site.Routes, translator)
		response := searcher.Search(strings.ToLower(strings.TrimSpace(msg.Lang)), msg.Query)
		if msg.ResultCallback != nil {
			msg.ResultCallback(response)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[SearchQuery]{
		commands.WithLogger[SearchQuery](baseLogger),
		commands.WithOperation[SearchQuery]("site.search"),
		commands.WithMessageFields(func(msg SearchQuery) map[string]any {
			return map[string]any{"lang": strings.ToLower(strings.TrimSpace(msg.Lang))}
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SearchHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SearchQuery].
func (h *SearchHandler) Execute(ctx context.Context, msg SearchQuery) error {
	return h.inner.Execute(ctx, msg)
}

func invokeCallback(cb ResultCallback, envelope ResultEnvelope) {
	if cb == nil {
		return
	}
	cb(envelope)
}

func normalizeLocales(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	seen := map[string]struct{}{}
	for _, locale := range values {
		key := strings.ToLower(strings.TrimSpace(locale))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
