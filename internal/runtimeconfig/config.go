package runtimeconfig

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

var ErrSiteRootRequired = errors.New("devpot config: site root is required")
var ErrSiteRootInvalid = errors.New("devpot config: site root must be an absolute http(s) url")
var ErrDefaultLanguageRequired = errors.New("devpot config: default language is required")
var ErrPostsDirRequired = errors.New("devpot config: posts directory is required")
var ErrOutputDirRequired = errors.New("devpot config: generator output directory is required")
var ErrWorkersInvalid = errors.New("devpot config: generator workers must be zero or positive")
var ErrLoggingProviderRequired = errors.New("devpot config: logging provider is required")
var ErrLoggingProviderUnknown = errors.New("devpot config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("devpot config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("devpot config: logging format is invalid")

// Config is the full runtime configuration of a blog build.
type Config struct {
	Site      SiteConfig      `mapstructure:"site"`
	Optional  OptionalConfig  `mapstructure:"optional"`
	Content   ContentConfig   `mapstructure:"content"`
	Markdown  MarkdownConfig  `mapstructure:"markdown"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Preview   PreviewConfig   `mapstructure:"preview"`
}

// SiteConfig carries the identity of the blog.
type SiteConfig struct {
	Author          string `mapstructure:"author"`
	AuthorSite      string `mapstructure:"author_site"`
	AuthorEmail     string `mapstructure:"author_email"`
	AuthorJobTitle  string `mapstructure:"author_job_title"`
	SiteTitle       string `mapstructure:"site_title"`
	SiteLongTitle   string `mapstructure:"site_long_title"`
	SiteRoot        string `mapstructure:"site_root"`
	DefaultLanguage string `mapstructure:"default_language"`
}

// OptionalConfig holds integrations that are skipped when empty.
type OptionalConfig struct {
	CommentsRepo      string `mapstructure:"comments_repo"`
	GA                string `mapstructure:"ga"`
	TwitterAuthor     string `mapstructure:"twitter_author"`
	BraveRewardsToken string `mapstructure:"brave_rewards_token"`
	// Disallow is appended verbatim to robots.txt.
	Disallow          string `mapstructure:"disallow"`
}

// ContentConfig locates the content and static directories.
type ContentConfig struct {
	PostsDir         string   `mapstructure:"posts_dir"`
	HomeDir          string   `mapstructure:"home_dir"`
	StaticDir        string   `mapstructure:"static_dir"`
	TemplatesDir     string   `mapstructure:"templates_dir"`
	TranslationsFile string   `mapstructure:"translations_file"`
	Languages        []string `mapstructure:"languages"`
}

// MarkdownConfig mirrors interfaces.ParseOptions.
type MarkdownConfig struct {
	Extensions []string `mapstructure:"extensions"`
	Sanitize   bool     `mapstructure:"sanitize"`
	HardWraps  bool     `mapstructure:"hard_wraps"`
	SafeMode   bool     `mapstructure:"safe_mode"`
}

// GeneratorConfig captures behaviour of the static build.
type GeneratorConfig struct {
	OutputDir           string        `mapstructure:"output_dir"`
	Workers             int           `mapstructure:"workers"`
	CleanBuild          bool          `mapstructure:"clean_build"`
	Incremental         bool          `mapstructure:"incremental"`
	CopyStatic          bool          `mapstructure:"copy_static"`
	GenerateSitemap     bool          `mapstructure:"generate_sitemap"`
	GenerateRobots      bool          `mapstructure:"generate_robots"`
	GenerateFeeds       bool          `mapstructure:"generate_feeds"`
	GenerateSearchIndex bool          `mapstructure:"generate_search_index"`
	RewriteManifest     bool          `mapstructure:"rewrite_manifest"`
	Staging             bool          `mapstructure:"staging"`
	LedgerDSN           string        `mapstructure:"ledger_dsn"`
	RenderTimeout       time.Duration `mapstructure:"render_timeout"`
}

// ServerConfig configures the preview server.
type ServerConfig struct {
	Addr     string        `mapstructure:"addr"`
	Watch    bool          `mapstructure:"watch"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// LoggingConfig captures provider specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `mapstructure:"provider"`
	Level     string   `mapstructure:"level"`
	Format    string   `mapstructure:"format"`
	AddSource bool     `mapstructure:"add_source"`
	Focus     []string `mapstructure:"focus"`
}

// PreviewConfig switches the build into deploy preview mode.
type PreviewConfig struct {
	DeployPrimeURL string `mapstructure:"deploy_prime_url"`
}

// DefaultConfig returns the Devpot defaults.
func DefaultConfig() Config {
	return Config{
		Site: SiteConfig{
			Author:          "Damian Terlecki",
			AuthorSite:      "https://termian.dev",
			AuthorJobTitle:  "Software Engineer",
			SiteTitle:       "Devpot",
			SiteLongTitle:   "Devpot: a coder's blog",
			SiteRoot:        "https://blog.termian.dev",
			DefaultLanguage: "en",
		},
		Content: ContentConfig{
			PostsDir:     "content/posts",
			HomeDir:      "content/home",
			StaticDir:    "public",
			TemplatesDir: "",
		},
		Generator: GeneratorConfig{
			OutputDir:           "dist",
			CopyStatic:          true,
			GenerateSitemap:     true,
			GenerateRobots:      true,
			GenerateFeeds:       true,
			GenerateSearchIndex: true,
			RewriteManifest:     true,
			RenderTimeout:       30 * time.Second,
		},
		Server: ServerConfig{
			Addr:     ":3000",
			Debounce: 500 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// IsPreview reports whether the build targets a deploy preview.
func (cfg Config) IsPreview() bool {
	return strings.TrimSpace(cfg.Preview.DeployPrimeURL) != ""
}

// Resolved returns the configuration as seen by a build. In preview mode the
// author site points at the preview deployment and analytics are disabled.
func (cfg Config) Resolved() Config {
	if !cfg.IsPreview() {
		return cfg
	}
	cfg.Site.AuthorSite = strings.TrimSpace(cfg.Preview.DeployPrimeURL)
	cfg.Optional.GA = ""
	return cfg
}

// Validate reports the first inconsistency found.
func (cfg Config) Validate() error {
	root := strings.TrimSpace(cfg.Site.SiteRoot)
	if root == "" {
		return ErrSiteRootRequired
	}
	if parsed, err := url.Parse(root); err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return fmt.Errorf("%w: %s", ErrSiteRootInvalid, root)
	}
	if strings.TrimSpace(cfg.Site.DefaultLanguage) == "" {
		return ErrDefaultLanguageRequired
	}
	if strings.TrimSpace(cfg.Content.PostsDir) == "" {
		return ErrPostsDirRequired
	}
	if strings.TrimSpace(cfg.Generator.OutputDir) == "" {
		return ErrOutputDirRequired
	}
	if cfg.Generator.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrWorkersInvalid, cfg.Generator.Workers)
	}

	provider := normalizeProvider(cfg.Logging.Provider)
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
