package devpot

import "github.com/goliatone/go-devpot/internal/runtimeconfig"

var (
	ErrSiteRootRequired        = runtimeconfig.ErrSiteRootRequired
	ErrSiteRootInvalid         = runtimeconfig.ErrSiteRootInvalid
	ErrDefaultLanguageRequired = runtimeconfig.ErrDefaultLanguageRequired
	ErrPostsDirRequired        = runtimeconfig.ErrPostsDirRequired
	ErrOutputDirRequired       = runtimeconfig.ErrOutputDirRequired
	ErrWorkersInvalid          = runtimeconfig.ErrWorkersInvalid
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config          = runtimeconfig.Config
	SiteConfig      = runtimeconfig.SiteConfig
	OptionalConfig  = runtimeconfig.OptionalConfig
	ContentConfig   = runtimeconfig.ContentConfig
	MarkdownConfig  = runtimeconfig.MarkdownConfig
	GeneratorConfig = runtimeconfig.GeneratorConfig
	ServerConfig    = runtimeconfig.ServerConfig
	LoggingConfig   = runtimeconfig.LoggingConfig
	PreviewConfig   = runtimeconfig.PreviewConfig
	LoadOptions     = runtimeconfig.LoadOptions
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads configuration from file, environment and overrides.
func LoadConfig(opts LoadOptions) (Config, error) {
	return runtimeconfig.Load(opts)
}
