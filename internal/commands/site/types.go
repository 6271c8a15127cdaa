package sitecmd

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-devpot/internal/generator"
	"github.com/goliatone/go-devpot/internal/routes"
	"github.com/goliatone/go-devpot/internal/search"
)

const (
	buildSiteMessageType  = "devpot.site.build"
	cleanSiteMessageType  = "devpot.site.clean"
	listRoutesMessageType = "devpot.site.routes"
	searchMessageType     = "devpot.site.search"

	maxQueryLength = 200
)

var localePattern = regexp.MustCompile(`^\s*[A-Za-z]{2,3}(-[A-Za-z0-9]{2,8})?\s*$`)

var localeRule = validation.Match(localePattern).Error("must be a language code such as en or pl")

// ResultCallback receives build results produced by generator operations. The callback is optional
// and is invoked synchronously from the handler when a BuildResult is available.
type ResultCallback func(ResultEnvelope)

// ResultEnvelope captures the outcome of a build.
type ResultEnvelope struct {
	Result   *generator.BuildResult
	Metadata map[string]any
}

// BuildSiteCommand renders the blog, optionally narrowed to some languages.
type BuildSiteCommand struct {
	Locales        []string       `json:"locales,omitempty"`
	Force          bool           `json:"force,omitempty"`
	DryRun         bool           `json:"dry_run,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (BuildSiteCommand) Type() string { return buildSiteMessageType }

// Validate ensures every requested locale is a language code.
func (m BuildSiteCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Locales, validation.Each(validation.Required, localeRule)),
	)
}

// CleanSiteCommand removes the output directory.
type CleanSiteCommand struct{}

// Type implements command.Message.
func (CleanSiteCommand) Type() string { return cleanSiteMessageType }

// Validate satisfies command.Message; there are no payload constraints.
func (CleanSiteCommand) Validate() error { return nil }

// RouteEntry is the listing form of a generated route.
type RouteEntry struct {
	Path     string      `json:"path"`
	Template string      `json:"template"`
	Kind     routes.Kind `json:"kind"`
	Lang     string      `json:"lang"`
	NoIndex  bool        `json:"noindex,omitempty"`
}

// ListRoutesQuery lists the routes a build would render. An empty Lang lists
// every language.
type ListRoutesQuery struct {
	Lang           string             `json:"lang,omitempty"`
	ResultCallback func([]RouteEntry) `json:"-"`
}

// Type implements command.Message.
func (ListRoutesQuery) Type() string { return listRoutesMessageType }

// Validate ensures the language filter is a language code.
func (m ListRoutesQuery) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Lang, localeRule),
	)
}

// SearchQuery ranks the posts of one language against a free text query.
type SearchQuery struct {
	Lang           string                `json:"lang"`
	Query          string                `json:"query"`
	ResultCallback func(search.Response) `json:"-"`
}

// Type implements command.Message.
func (SearchQuery) Type() string { return searchMessageType }

// Validate requires a language and bounds the query length.
func (m SearchQuery) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Lang, validation.Required, localeRule),
		validation.Field(&m.Query, validation.RuneLength(0, maxQueryLength)),
	)
}
