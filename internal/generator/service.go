package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-devpot/internal/content"
	"github.com/goliatone/go-devpot/internal/logging"
	"github.com/goliatone/go-devpot/internal/routes"
	"github.com/goliatone/go-devpot/internal/seo"
	"github.com/goliatone/go-devpot/pkg/interfaces"
)

var (
	// ErrServiceDisabled indicates the generator feature is disabled.
	ErrServiceDisabled    = errors.New("generator: service disabled")
	errRendererRequired   = errors.New("generator: template renderer is required")
	errSourceRequired     = errors.New("generator: content source is required")
	errTranslatorRequired = errors.New("generator: translator is required")
)

// Service describes the static site generator contract.
type Service interface {
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
	Load(ctx context.Context) (*Site, error)
	Clean(ctx context.Context) error
}

// Config captures runtime behaviour toggles for the generator.
type Config struct {
	OutputDir           string
	SiteRoot            string
	DefaultLang         string
	Workers             int
	CleanBuild          bool
	Incremental         bool
	CopyStatic          bool
	GenerateSitemap     bool
	GenerateRobots      bool
	GenerateFeeds       bool
	GenerateSearchIndex bool
	RewriteManifest     bool
	Staging             bool
	DevMode             bool
	Site                SiteMetadata
}

// BuildOptions narrows the scope of a generator run.
type BuildOptions struct {
	Locales []string
	DryRun  bool
	// Force rewrites pages whose checksum did not change.
	Force bool
}

// BuildResult reports aggregated build metadata.
type BuildResult struct {
	BuildID      string
	PagesBuilt   int
	PagesSkipped int
	StaticCopied int
	FeedsBuilt   int
	Locales      []string
	Duration     time.Duration
	Rendered     []RenderedPage
	Diagnostics  []RenderDiagnostic
	Errors       []error
	DryRun       bool
}

// ContentSource loads the raw post and home collections.
type ContentSource interface {
	LoadBlog(ctx context.Context) (content.Blog, error)
	LoadHomes(ctx context.Context) (content.Homes, error)
}

// Ledger remembers the artifacts of previous builds.
type Ledger interface {
	Begin(ctx context.Context, startedAt time.Time) (string, error)
	Checksum(ctx context.Context, path string) (string, error)
	Record(ctx context.Context, buildID, path, lang, checksum string) error
	Finish(ctx context.Context, buildID string, finishedAt time.Time, pages, failures int) error
}

// Dependencies lists the services required by the generator.
type Dependencies struct {
	Source     ContentSource
	Translator Translator
	Renderer   interfaces.TemplateRenderer
	Writer     ArtifactWriter
	Static     fs.FS
	Ledger     Ledger
	Logger     interfaces.Logger
}

// Site is the prepared content with its route tree.
type Site struct {
	Blog        content.Blog
	Homes       content.Homes
	Routes      *routes.Builder
	Links       *seo.Links
	GeneratedAt time.Time
}

// NewService wires a generator implementation with the provided configuration and dependencies.
func NewService(cfg Config, deps Dependencies) Service {
	logger := deps.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	if deps.Writer == nil {
		deps.Writer = NewDirWriter(cfg.OutputDir)
	}
	if cfg.DefaultLang == "" {
		cfg.DefaultLang = cfg.Site.DefaultLang
	}
	if cfg.SiteRoot == "" {
		cfg.SiteRoot = cfg.Site.BaseURL
	}
	cfg.SiteRoot = strings.TrimRight(cfg.SiteRoot, "/")
	return &service{
		cfg:    cfg,
		deps:   deps,
		logger: logger,
		now:    time.Now,
	}
}

// NewDisabledService returns a Service that fails all operations with ErrServiceDisabled.
func NewDisabledService() Service {
	return disabledService{}
}

type service struct {
	cfg    Config
	deps   Dependencies
	logger interfaces.Logger
	now    func() time.Time
}

type disabledService struct{}

func (s *service) Load(ctx context.Context) (*Site, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if s.deps.Source == nil {
		return nil, errSourceRequired
	}
	if s.deps.Translator == nil {
		return nil, errTranslatorRequired
	}
	blog, err := s.deps.Source.LoadBlog(ctx)
	if err != nil {
		return nil, err
	}
	homes, err := s.deps.Source.LoadHomes(ctx)
	if err != nil {
		return nil, err
	}
	preparer := content.NewPreparer(
		s.deps.Translator,
		s.cfg.DefaultLang,
		content.WithDevMode(s.cfg.DevMode),
		content.WithPreparerLogger(s.logger),
	)
	blog, err = preparer.Prepare(ctx, blog)
	if err != nil {
		return nil, err
	}

	generatedAt := s.now().UTC()
	builder := routes.NewBuilder(blog, homes, s.deps.Translator, s.cfg.DefaultLang,
		routes.WithClock(func() time.Time { return generatedAt }))
	return &Site{
		Blog:        blog,
		Homes:       homes,
		Routes:      builder,
		Links:       seo.NewLinks(s.cfg.SiteRoot, s.cfg.DefaultLang, builder.Langs(), s.deps.Translator),
		GeneratedAt: generatedAt,
	}, nil
}

func (s *service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.deps.Renderer == nil {
		return nil, errRendererRequired
	}

	start := time.Now()
	site, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	langs := filterLangs(site.Routes.Langs(), opts.Locales)
	pages := s.collectRoutes(site, langs)
	result := &BuildResult{
		Locales:     langs,
		DryRun:      opts.DryRun,
		Diagnostics: make([]RenderDiagnostic, 0, len(pages)),
	}
	siteMeta := s.siteMetadata(langs)

	var (
		mu          sync.Mutex
		rendered    = make([]RenderedPage, 0, len(pages))
		errorsSlice []error
	)
	collect := func(outcome renderOutcome) {
		mu.Lock()
		defer mu.Unlock()
		result.Diagnostics = append(result.Diagnostics, outcome.diagnostic)
		if outcome.err != nil {
			errorsSlice = append(errorsSlice, outcome.err)
			return
		}
		rendered = append(rendered, outcome.page)
	}

	workerCount := s.effectiveWorkerCount(len(langs))
	if workerCount <= 1 || len(pages) <= 1 {
		for _, route := range pages {
			if err := ctx.Err(); err != nil {
				collect(cancelledOutcome(route, err))
				return result, err
			}
			collect(s.renderPage(ctx, site, siteMeta, route))
		}
	} else if err := s.renderConcurrently(ctx, site, siteMeta, langs, pages, workerCount, collect); err != nil {
		errorsSlice = append(errorsSlice, err)
	}
	sort.Slice(rendered, func(i, j int) bool { return rendered[i].Output < rendered[j].Output })

	if opts.DryRun {
		result.PagesBuilt = len(rendered)
		result.Rendered = rendered
		return s.finish(ctx, result, start, errorsSlice)
	}

	writer := s.deps.Writer
	buildID, err := s.beginLedger(ctx, site.GeneratedAt)
	if err != nil {
		errorsSlice = append(errorsSlice, err)
	}
	result.BuildID = buildID
	ctx = logging.WithBuildScope(ctx, logging.BuildScope{BuildID: buildID})

	if s.cfg.CleanBuild {
		if err := writer.RemoveAll(ctx, ""); err != nil {
			errorsSlice = append(errorsSlice, fmt.Errorf("generator: clean output: %w", err))
		}
	}
	if s.cfg.CopyStatic {
		copied, err := s.copyStatic(ctx, writer)
		result.StaticCopied = copied
		if err != nil {
			errorsSlice = append(errorsSlice, err)
		}
	}
	if err := s.persistPages(ctx, writer, buildID, rendered, opts.Force, result); err != nil {
		errorsSlice = append(errorsSlice, err)
	}

	for _, step := range s.auxiliarySteps(site, langs, rendered, result) {
		if err := step(ctx, writer); err != nil {
			errorsSlice = append(errorsSlice, err)
		}
	}

	if buildID != "" {
		if err := s.deps.Ledger.Finish(ctx, buildID, s.now().UTC(), result.PagesBuilt, len(errorsSlice)); err != nil {
			errorsSlice = append(errorsSlice, err)
		}
	}

	result.Rendered = rendered
	return s.finish(ctx, result, start, errorsSlice)
}

type buildStep func(ctx context.Context, writer ArtifactWriter) error

// auxiliarySteps lists the files written after the pages, in order. Each
// step fails on its own without aborting the others.
func (s *service) auxiliarySteps(site *Site, langs []string, rendered []RenderedPage, result *BuildResult) []buildStep {
	var steps []buildStep
	if s.cfg.GenerateSitemap {
		steps = append(steps, func(ctx context.Context, writer ArtifactWriter) error {
			return s.writeSitemap(ctx, writer, site, rendered)
		})
	}
	if s.cfg.GenerateRobots {
		steps = append(steps, func(ctx context.Context, writer ArtifactWriter) error {
			return s.writeRobots(ctx, writer)
		})
	}
	if s.cfg.GenerateFeeds {
		steps = append(steps, func(ctx context.Context, writer ArtifactWriter) error {
			built, err := s.writeFeeds(ctx, writer, site, langs)
			result.FeedsBuilt = built
			return err
		})
	}
	if s.cfg.GenerateSearchIndex {
		steps = append(steps, func(ctx context.Context, writer ArtifactWriter) error {
			return s.writeSearchIndexes(ctx, writer, site, langs)
		})
	}
	if s.cfg.RewriteManifest {
		steps = append(steps, func(ctx context.Context, writer ArtifactWriter) error {
			return s.applyManifestConfig(ctx, writer, langs)
		})
	}
	if s.cfg.Site.BraveRewardsToken != "" {
		steps = append(steps, s.applyBraveRewardsConfig)
	}
	if s.cfg.Site.Disallow != "" {
		steps = append(steps, s.applyRobotsConfig)
	}
	return steps
}

func (s *service) finish(ctx context.Context, result *BuildResult, start time.Time, errs []error) (*BuildResult, error) {
	result.Duration = time.Since(start)
	logging.Scoped(s.logger, ctx).Info("generator build finished",
		"pages_built", result.PagesBuilt,
		"pages_skipped", result.PagesSkipped,
		"dry_run", result.DryRun,
		"errors", len(errs),
		"duration", result.Duration.String(),
	)
	if len(errs) > 0 {
		result.Errors = append(result.Errors, errs...)
		return result, errors.Join(errs...)
	}
	return result, nil
}

func (s *service) Clean(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := s.deps.Writer.RemoveAll(ctx, ""); err != nil {
		return fmt.Errorf("generator: clean output: %w", err)
	}
	s.logger.Info("generator output removed", "output_dir", s.cfg.OutputDir)
	return nil
}

// collectRoutes flattens the route tree of the selected languages and adds
// the 404 page when the default language is among them.
func (s *service) collectRoutes(site *Site, langs []string) []routes.Route {
	selected := make(map[string]struct{}, len(langs))
	for _, lang := range langs {
		selected[lang] = struct{}{}
	}
	var pages []routes.Route
	for _, route := range routes.Flatten(site.Routes.All()) {
		if _, ok := selected[route.Lang]; ok {
			pages = append(pages, route)
		}
	}
	if _, ok := selected[s.cfg.DefaultLang]; ok {
		pages = append(pages, site.Routes.NotFound())
	}
	return pages
}

func (s *service) siteMetadata(langs []string) SiteMetadata {
	meta := s.cfg.Site
	meta.BaseURL = s.cfg.SiteRoot
	meta.DefaultLang = s.cfg.DefaultLang
	meta.Langs = append([]string(nil), langs...)
	if s.cfg.DevMode {
		meta.GA = ""
	}
	return meta
}

func (s *service) renderConcurrently(
	ctx context.Context,
	site *Site,
	siteMeta SiteMetadata,
	langs []string,
	pages []routes.Route,
	workers int,
	collect func(renderOutcome),
) error {
	grouped := groupRoutesByLang(pages)
	if len(grouped) == 0 {
		return nil
	}

	jobs := make(chan []routes.Route)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for batch := range jobs {
				for _, route := range batch {
					if err := ctx.Err(); err != nil {
						collect(cancelledOutcome(route, err))
						return
					}
					collect(s.renderPage(ctx, site, siteMeta, route))
				}
			}
		}()
	}

	for _, lang := range langs {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return ctx.Err()
		case jobs <- grouped[lang]:
		}
	}
	close(jobs)
	wg.Wait()
	return nil
}

func (s *service) renderPage(ctx context.Context, site *Site, siteMeta SiteMetadata, route routes.Route) renderOutcome {
	outcome := s.renderRoute(ctx, site, siteMeta, route)
	logger := logging.Scoped(s.logger, logging.WithBuildScope(ctx, logging.BuildScope{Lang: route.Lang, Route: route.Path}))
	if outcome.err != nil {
		logger.Warn("generator page failed", "template", route.Template, "error", outcome.err)
		return outcome
	}
	logger.Debug("generator page rendered", "template", route.Template, "duration", outcome.diagnostic.Duration)
	return outcome
}

func (s *service) renderRoute(ctx context.Context, site *Site, siteMeta SiteMetadata, route routes.Route) renderOutcome {
	outcome := renderOutcome{
		diagnostic: RenderDiagnostic{
			Route:    route.Path,
			Lang:     route.Lang,
			Template: route.Template,
		},
	}
	if err := ctx.Err(); err != nil {
		outcome.err = err
		outcome.diagnostic.Err = err
		return outcome
	}

	data := route.LoadData()
	head, err := s.buildHead(site, route, data)
	if err != nil {
		wrapped := fmt.Errorf("generator: head for %s: %w", route.Path, err)
		outcome.err = wrapped
		outcome.diagnostic.Err = wrapped
		return outcome
	}

	templateCtx := TemplateContext{
		Site: siteMeta,
		Route: RouteInfo{
			Path:     route.Path,
			Template: route.Template,
			Kind:     route.Kind,
			Lang:     route.Lang,
			NoIndex:  route.NoIndex,
		},
		Page:   data,
		Head:   head,
		JSONLD: template.JS(head.JSONLD),
		Build: BuildMetadata{
			GeneratedAt: site.GeneratedAt,
			DevMode:     s.cfg.DevMode,
		},
		Helpers: newTemplateHelpers(s.deps.Translator, s.cfg.DefaultLang, route.Lang, s.cfg.SiteRoot),
	}

	start := time.Now()
	html, err := s.deps.Renderer.RenderTemplate(route.Template, templateCtx)
	duration := time.Since(start)
	outcome.diagnostic.Duration = duration
	if err != nil {
		wrapped := fmt.Errorf("generator: render template %q for %s (%s): %w", route.Template, route.Path, route.Lang, err)
		outcome.err = wrapped
		outcome.diagnostic.Err = wrapped
		return outcome
	}

	lastModified := site.GeneratedAt
	if data.Post != nil {
		lastModified = data.Post.LastModified()
	}
	outcome.page = RenderedPage{
		Route:        route.Path,
		Lang:         route.Lang,
		Kind:         route.Kind,
		Output:       outputPath(route),
		Template:     route.Template,
		HTML:         html,
		Duration:     duration,
		Checksum:     computeHashFromString(html),
		NoIndex:      route.NoIndex,
		LangRefs:     data.LangRefs,
		LastModified: lastModified,
	}
	return outcome
}

func cancelledOutcome(route routes.Route, err error) renderOutcome {
	return renderOutcome{
		diagnostic: RenderDiagnostic{
			Route:    route.Path,
			Lang:     route.Lang,
			Template: route.Template,
			Err:      err,
		},
		err: err,
	}
}

// persistPages writes the rendered pages. Incremental builds keep files whose
// checksum matches the one recorded in the ledger.
func (s *service) persistPages(
	ctx context.Context,
	writer ArtifactWriter,
	buildID string,
	pages []RenderedPage,
	force bool,
	result *BuildResult,
) error {
	diagnostics := make(map[string]int, len(result.Diagnostics))
	for i, diag := range result.Diagnostics {
		diagnostics[diag.Route] = i
	}
	for i := range pages {
		page := &pages[i]
		skip, err := s.unchanged(ctx, writer, *page, force)
		if err != nil {
			return err
		}
		if skip {
			result.PagesSkipped++
			if idx, ok := diagnostics[page.Route]; ok {
				result.Diagnostics[idx].Skipped = true
			}
		} else {
			req := WriteFileRequest{
				Path:        page.Output,
				Content:     strings.NewReader(page.HTML),
				Size:        int64(len(page.HTML)),
				Lang:        page.Lang,
				Category:    categoryPage,
				ContentType: "text/html; charset=utf-8",
				Checksum:    page.Checksum,
			}
			if err := writer.WriteFile(ctx, req); err != nil {
				return fmt.Errorf("generator: write %s: %w", page.Output, err)
			}
			result.PagesBuilt++
		}
		if buildID != "" {
			if err := s.deps.Ledger.Record(ctx, buildID, page.Output, page.Lang, page.Checksum); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *service) unchanged(ctx context.Context, writer ArtifactWriter, page RenderedPage, force bool) (bool, error) {
	if force || !s.cfg.Incremental || s.deps.Ledger == nil {
		return false, nil
	}
	previous, err := s.deps.Ledger.Checksum(ctx, page.Output)
	if err != nil {
		return false, err
	}
	if previous == "" || previous != page.Checksum {
		return false, nil
	}
	return writer.Exists(ctx, page.Output)
}

func (s *service) beginLedger(ctx context.Context, startedAt time.Time) (string, error) {
	if s.deps.Ledger == nil {
		return "", nil
	}
	return s.deps.Ledger.Begin(ctx, startedAt)
}

func (s *service) effectiveWorkerCount(langCount int) int {
	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		workers = 1
	}
	if langCount > 0 && workers > langCount {
		return langCount
	}
	return workers
}

func groupRoutesByLang(pages []routes.Route) map[string][]routes.Route {
	grouped := make(map[string][]routes.Route, len(pages))
	for _, route := range pages {
		grouped[route.Lang] = append(grouped[route.Lang], route)
	}
	return grouped
}

// filterLangs keeps the requested languages in blog order. No request means
// every language.
func filterLangs(available, requested []string) []string {
	if len(requested) == 0 {
		return append([]string(nil), available...)
	}
	wanted := make(map[string]struct{}, len(requested))
	for _, lang := range requested {
		wanted[strings.ToLower(strings.TrimSpace(lang))] = struct{}{}
	}
	var langs []string
	for _, lang := range available {
		if _, ok := wanted[lang]; ok {
			langs = append(langs, lang)
		}
	}
	return langs
}

func computeHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func computeHashFromString(content string) string {
	return computeHash([]byte(content))
}

func (disabledService) Build(context.Context, BuildOptions) (*BuildResult, error) {
	return nil, ErrServiceDisabled
}

func (disabledService) Load(context.Context) (*Site, error) {
	return nil, ErrServiceDisabled
}

func (disabledService) Clean(context.Context) error {
	return ErrServiceDisabled
}
