package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	envPrefix         = "DEVPOT"
	defaultConfigName = "devpot"
	deployPrimeURLEnv = "DEPLOY_PRIME_URL"
)

// LoadOptions controls where configuration is read from.
type LoadOptions struct {
	// File is an explicit config path. When empty devpot.yaml is searched
	// in Paths.
	File  string
	Paths []string
	// Overrides are applied last, keyed by dotted viper keys.
	Overrides map[string]any
}

// Load merges defaults, the optional config file, DEVPOT_* environment
// variables and overrides into a validated Config. A missing devpot.yaml is
// not an error, a missing explicit file is.
func Load(opts LoadOptions) (Config, error) {
	v := NewViper(opts)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || opts.File != "" {
			return Config{}, fmt.Errorf("devpot config: read %s: %w", describeSource(opts), err)
		}
	}

	for key, value := range opts.Overrides {
		v.Set(key, value)
	}

	cfg, err := Decode(v)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewViper prepares a viper instance with defaults and env bindings.
func NewViper(opts LoadOptions) *viper.Viper {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		paths := opts.Paths
		if len(paths) == 0 {
			paths = []string{"."}
		}
		for _, path := range paths {
			v.AddConfigPath(path)
		}
		v.SetConfigName(defaultConfigName)
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("preview.deploy_prime_url", deployPrimeURLEnv)
	return v
}

// Decode unmarshals the viper state into a Config.
func Decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("devpot config: decode: %w", err)
	}
	return cfg, nil
}

func describeSource(opts LoadOptions) string {
	if opts.File != "" {
		return opts.File
	}
	return defaultConfigName + ".yaml"
}

func setDefaults(v *viper.Viper, cfg Config) {
	defaults := map[string]any{
		"site.author":           cfg.Site.Author,
		"site.author_site":      cfg.Site.AuthorSite,
		"site.author_email":     cfg.Site.AuthorEmail,
		"site.author_job_title": cfg.Site.AuthorJobTitle,
		"site.site_title":       cfg.Site.SiteTitle,
		"site.site_long_title":  cfg.Site.SiteLongTitle,
		"site.site_root":        cfg.Site.SiteRoot,
		"site.default_language": cfg.Site.DefaultLanguage,

		"optional.comments_repo":       cfg.Optional.CommentsRepo,
		"optional.ga":                  cfg.Optional.GA,
		"optional.twitter_author":      cfg.Optional.TwitterAuthor,
		"optional.brave_rewards_token": cfg.Optional.BraveRewardsToken,
		"optional.disallow":            cfg.Optional.Disallow,

		"content.posts_dir":         cfg.Content.PostsDir,
		"content.home_dir":          cfg.Content.HomeDir,
		"content.static_dir":        cfg.Content.StaticDir,
		"content.templates_dir":     cfg.Content.TemplatesDir,
		"content.translations_file": cfg.Content.TranslationsFile,
		"content.languages":         cfg.Content.Languages,

		"markdown.extensions": cfg.Markdown.Extensions,
		"markdown.sanitize":   cfg.Markdown.Sanitize,
		"markdown.hard_wraps": cfg.Markdown.HardWraps,
		"markdown.safe_mode":  cfg.Markdown.SafeMode,

		"generator.output_dir":            cfg.Generator.OutputDir,
		"generator.workers":               cfg.Generator.Workers,
		"generator.clean_build":           cfg.Generator.CleanBuild,
		"generator.incremental":           cfg.Generator.Incremental,
		"generator.copy_static":           cfg.Generator.CopyStatic,
		"generator.generate_sitemap":      cfg.Generator.GenerateSitemap,
		"generator.generate_robots":       cfg.Generator.GenerateRobots,
		"generator.generate_feeds":        cfg.Generator.GenerateFeeds,
		"generator.generate_search_index": cfg.Generator.GenerateSearchIndex,
		"generator.rewrite_manifest":      cfg.Generator.RewriteManifest,
		"generator.staging":               cfg.Generator.Staging,
		"generator.ledger_dsn":            cfg.Generator.LedgerDSN,
		"generator.render_timeout":        cfg.Generator.RenderTimeout,

		"server.addr":     cfg.Server.Addr,
		"server.watch":    cfg.Server.Watch,
		"server.debounce": cfg.Server.Debounce,

		"logging.provider":   cfg.Logging.Provider,
		"logging.level":      cfg.Logging.Level,
		"logging.format":     cfg.Logging.Format,
		"logging.add_source": cfg.Logging.AddSource,
		"logging.focus":      cfg.Logging.Focus,

		"preview.deploy_prime_url": cfg.Preview.DeployPrimeURL,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}
