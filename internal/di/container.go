package di

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-devpot/internal/commands"
	sitecmd "github.com/goliatone/go-devpot/internal/commands/site"
	"github.com/goliatone/go-devpot/internal/content"
	"github.com/goliatone/go-devpot/internal/generator"
	"github.com/goliatone/go-devpot/internal/i18n"
	"github.com/goliatone/go-devpot/internal/ledger"
	"github.com/goliatone/go-devpot/internal/logging"
	"github.com/goliatone/go-devpot/internal/logging/console"
	"github.com/goliatone/go-devpot/internal/logging/gologger"
	"github.com/goliatone/go-devpot/internal/markdown"
	"github.com/goliatone/go-devpot/internal/runtimeconfig"
	"github.com/goliatone/go-devpot/internal/seo"
	"github.com/goliatone/go-devpot/internal/server"
	"github.com/goliatone/go-devpot/pkg/interfaces"
)

// Container wires the build pipeline from a resolved configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	contentFS      fs.FS
	staticFS       fs.FS
	templatesFS    fs.FS
	writer         generator.ArtifactWriter
	ledger         *ledger.Store
	ownsLedger     bool

	translator   *i18n.Translator
	source       *content.Source
	renderer     *generator.HTMLRenderer
	generatorSvc generator.Service
	handlers     *sitecmd.HandlerSet
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider built from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithContentFS reads posts and home entries from fsys instead of the
// working directory.
func WithContentFS(fsys fs.FS) Option {
	return func(c *Container) {
		c.contentFS = fsys
	}
}

// WithStaticFS overrides the static directory copied into the output.
func WithStaticFS(fsys fs.FS) Option {
	return func(c *Container) {
		c.staticFS = fsys
	}
}

// WithTemplatesFS replaces the embedded page templates.
func WithTemplatesFS(fsys fs.FS) Option {
	return func(c *Container) {
		c.templatesFS = fsys
	}
}

// WithWriter overrides the output directory writer.
func WithWriter(writer generator.ArtifactWriter) Option {
	return func(c *Container) {
		c.writer = writer
	}
}

// WithLedger injects an open ledger. The caller keeps ownership.
func WithLedger(store *ledger.Store) Option {
	return func(c *Container) {
		c.ledger = store
	}
}

// NewContainer resolves preview mode, validates cfg and builds every
// service of the pipeline.
func NewContainer(ctx context.Context, cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg = cfg.Resolved()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if c.loggerProvider == nil {
		provider, err := newLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		c.loggerProvider = provider
	}
	if c.contentFS == nil {
		c.contentFS = os.DirFS(".")
	}
	if c.staticFS == nil && cfg.Generator.CopyStatic {
		c.staticFS = dirFS(cfg.Content.StaticDir)
	}
	if c.templatesFS == nil && strings.TrimSpace(cfg.Content.TemplatesDir) != "" {
		c.templatesFS = os.DirFS(cfg.Content.TemplatesDir)
	}

	if err := c.configureTranslator(ctx); err != nil {
		return nil, err
	}
	c.configureSource()

	renderer, err := generator.NewHTMLRenderer(c.templatesFS)
	if err != nil {
		return nil, err
	}
	c.renderer = renderer

	if err := c.configureLedger(ctx); err != nil {
		return nil, err
	}
	c.configureGenerator()

	handlers, err := sitecmd.RegisterSiteCommands(nil, c.generatorSvc, c.translator, c.loggerProvider,
		sitecmd.WithBuildHandlerOptions(commands.WithTimeout[sitecmd.BuildSiteCommand](cfg.Generator.RenderTimeout)))
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.handlers = handlers

	logging.ModuleLogger(c.loggerProvider, "").Debug("container.configured",
		"output_dir", cfg.Generator.OutputDir,
		"preview", cfg.IsPreview(),
		"incremental", c.ledger != nil,
	)
	return c, nil
}

func newLoggerProvider(cfg runtimeconfig.LoggingConfig) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gologger":
		return gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
	case "", "console":
		level, ok := console.ParseLevel(cfg.Level)
		if !ok {
			return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrLoggingLevelInvalid, cfg.Level)
		}
		return console.NewProvider(console.Options{Level: level}), nil
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrLoggingProviderUnknown, cfg.Provider)
	}
}

func (c *Container) configureTranslator(ctx context.Context) error {
	tables, err := i18n.DefaultTables()
	if err != nil {
		return err
	}
	if file := strings.TrimSpace(c.Config.Content.TranslationsFile); file != "" {
		overrides, err := i18n.NewLoader(file).Load(ctx)
		if err != nil {
			return err
		}
		tables = i18n.Merge(tables, overrides)
	}
	site := c.Config.Site
	c.translator = i18n.New(i18n.FromSiteConfig(site.DefaultLanguage, site.SiteTitle, c.Config.Optional.TwitterAuthor), tables)
	return nil
}

func (c *Container) configureSource() {
	cfg := c.Config
	loader := markdown.NewLoader(c.contentFS, markdown.LoaderConfig{
		DefaultLang: cfg.Site.DefaultLanguage,
		Langs:       cfg.Content.Languages,
	})
	c.source = content.NewSource(loader, content.SourceConfig{
		PostsDir:    fsPath(cfg.Content.PostsDir),
		HomeDir:     fsPath(cfg.Content.HomeDir),
		DefaultLang: cfg.Site.DefaultLanguage,
		Langs:       cfg.Content.Languages,
		Parse: interfaces.ParseOptions{
			Extensions: cfg.Markdown.Extensions,
			Sanitize:   cfg.Markdown.Sanitize,
			HardWraps:  cfg.Markdown.HardWraps,
			SafeMode:   cfg.Markdown.SafeMode,
		},
	}, content.WithSourceLogger(logging.ContentLogger(c.loggerProvider)))
}

func (c *Container) configureLedger(ctx context.Context) error {
	if c.ledger != nil || !c.Config.Generator.Incremental {
		return nil
	}
	dsn := strings.TrimSpace(c.Config.Generator.LedgerDSN)
	if dsn == "" {
		return errors.New("di: incremental builds require generator.ledger_dsn")
	}
	store, err := ledger.Open(ctx, dsn)
	if err != nil {
		return err
	}
	c.ledger = store
	c.ownsLedger = true
	logging.LedgerLogger(c.loggerProvider).Info("ledger.opened", "dsn", dsn)
	return nil
}

func (c *Container) configureGenerator() {
	cfg := c.Config
	gen := cfg.Generator
	deps := generator.Dependencies{
		Source:     c.source,
		Translator: c.translator,
		Renderer:   c.renderer,
		Writer:     c.writer,
		Static:     c.staticFS,
		Logger:     logging.GeneratorLogger(c.loggerProvider),
	}
	if c.ledger != nil {
		deps.Ledger = c.ledger
	}
	c.generatorSvc = generator.NewService(generator.Config{
		OutputDir:           gen.OutputDir,
		SiteRoot:            cfg.Site.SiteRoot,
		DefaultLang:         cfg.Site.DefaultLanguage,
		Workers:             gen.Workers,
		CleanBuild:          gen.CleanBuild,
		Incremental:         gen.Incremental,
		CopyStatic:          gen.CopyStatic,
		GenerateSitemap:     gen.GenerateSitemap,
		GenerateRobots:      gen.GenerateRobots,
		GenerateFeeds:       gen.GenerateFeeds,
		GenerateSearchIndex: gen.GenerateSearchIndex,
		RewriteManifest:     gen.RewriteManifest,
		Staging:             gen.Staging,
		DevMode:             cfg.IsPreview(),
		Site: generator.SiteMetadata{
			BaseURL:     cfg.Site.SiteRoot,
			DefaultLang: cfg.Site.DefaultLanguage,
			Langs:       cfg.Content.Languages,
			Title:       cfg.Site.SiteTitle,
			LongTitle:   cfg.Site.SiteLongTitle,
			Author: seo.Author{
				Name:     cfg.Site.Author,
				Site:     cfg.Site.AuthorSite,
				Email:    cfg.Site.AuthorEmail,
				JobTitle: cfg.Site.AuthorJobTitle,
			},
			TwitterAuthor:     cfg.Optional.TwitterAuthor,
			GA:                cfg.Optional.GA,
			CommentsRepo:      cfg.Optional.CommentsRepo,
			BraveRewardsToken: cfg.Optional.BraveRewardsToken,
			Disallow:          cfg.Optional.Disallow,
		},
	}, deps)
}

// NewServer builds the preview server over the output directory. Content,
// home and static directories are watched when watch is set.
func (c *Container) NewServer(addr string, watch bool) (*server.Server, error) {
	cfg := c.Config
	if strings.TrimSpace(addr) == "" {
		addr = cfg.Server.Addr
	}
	return server.New(server.Config{
		Addr:      addr,
		OutputDir: cfg.Generator.OutputDir,
		WatchDirs: []string{cfg.Content.PostsDir, cfg.Content.HomeDir, cfg.Content.StaticDir},
		Watch:     watch,
		Debounce:  cfg.Server.Debounce,
	}, c.generatorSvc, logging.ServerLogger(c.loggerProvider))
}

// LoggerProvider returns the provider shared by every module.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Translator returns the site translator.
func (c *Container) Translator() *i18n.Translator {
	return c.translator
}

// GeneratorService returns the configured static generator.
func (c *Container) GeneratorService() generator.Service {
	return c.generatorSvc
}

// Commands returns the site command handlers.
func (c *Container) Commands() *sitecmd.HandlerSet {
	return c.handlers
}

// Ledger returns the build ledger, nil when incremental builds are off.
func (c *Container) Ledger() *ledger.Store {
	return c.ledger
}

// Close releases the ledger when the container opened it.
func (c *Container) Close() error {
	if c == nil || c.ledger == nil || !c.ownsLedger {
		return nil
	}
	return c.ledger.Close()
}

// dirFS returns nil when dir does not exist so missing static files
// surface as read errors of the rewrite steps.
func dirFS(dir string) fs.FS {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil
	}
	return os.DirFS(dir)
}

func fsPath(dir string) string {
	cleaned := path.Clean(filepath.ToSlash(strings.TrimSpace(dir)))
	return strings.TrimPrefix(cleaned, "./")
}
