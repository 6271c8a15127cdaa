package generator

import (
	"html/template"
	"strings"
	"time"

	"github.com/goliatone/go-devpot/internal/i18n"
	"github.com/goliatone/go-devpot/internal/routes"
	"github.com/goliatone/go-devpot/internal/seo"
)

const isoMillis = "2006-01-02T15:04:05.000Z"

// TemplateContext captures the data contract passed to TemplateRenderer implementations.
type TemplateContext struct {
	Site    SiteMetadata
	Route   RouteInfo
	Page    routes.PageData
	Head    seo.Head
	JSONLD  template.JS
	Build   BuildMetadata
	Helpers TemplateHelpers
}

// TagPath returns the page of tag among the graded tags, empty when the tag
// is not listed.
func (c TemplateContext) TagPath(tag string) string {
	for _, candidate := range c.Page.Tags {
		if candidate.Value == tag {
			return candidate.Path
		}
	}
	return ""
}

// SearchPath is the search page of the current language.
func (c TemplateContext) SearchPath() string {
	return c.Page.Root + c.Helpers.translator.Path(c.Helpers.lang, "search")
}

// FeedPath is the RSS feed of the current language.
func (c TemplateContext) FeedPath() string {
	return "/" + feedFile(c.Helpers.lang, c.Helpers.defaultLang)
}

// SearchIndexPath is the search index of the current language.
func (c TemplateContext) SearchIndexPath() string {
	return "/" + searchIndexFile(c.Helpers.lang)
}

// SiteMetadata exposes the site wide settings required by templates.
type SiteMetadata struct {
	BaseURL           string
	DefaultLang       string
	Langs             []string
	Title             string
	LongTitle         string
	Author            seo.Author
	TwitterAuthor     string
	GA                string
	CommentsRepo      string
	BraveRewardsToken string
	Disallow          string
}

// RouteInfo describes the route being rendered.
type RouteInfo struct {
	Path     string
	Template string
	Kind     routes.Kind
	Lang     string
	NoIndex  bool
}

// BuildMetadata surfaces high level build information to templates.
type BuildMetadata struct {
	GeneratedAt time.Time
	DevMode     bool
}

// Translator is the subset of the translation tables templates rely on.
type Translator interface {
	Path(lang, part string) string
	T(lang, key string, vars map[string]any) string
	Count(lang, key string, count int) string
}

// TemplateHelpers exposes convenience helpers for template authors.
type TemplateHelpers struct {
	lang        string
	defaultLang string
	baseURL     string
	translator  Translator
}

func newTemplateHelpers(translator Translator, defaultLang, lang, baseURL string) TemplateHelpers {
	return TemplateHelpers{
		lang:        lang,
		defaultLang: defaultLang,
		baseURL:     strings.TrimRight(baseURL, "/"),
		translator:  translator,
	}
}

// Locale returns the active language code.
func (h TemplateHelpers) Locale() string {
	return h.lang
}

// IsDefaultLocale reports whether the current language is the default one.
func (h TemplateHelpers) IsDefaultLocale() bool {
	return strings.EqualFold(h.lang, h.defaultLang)
}

// BaseURL returns the configured site root.
func (h TemplateHelpers) BaseURL() string {
	return h.baseURL
}

// WithBaseURL prefixes the provided path with the site root.
func (h TemplateHelpers) WithBaseURL(path string) string {
	return seo.AbsoluteURL(h.baseURL, path)
}

// LocalePrefix returns the language prefix of paths, empty for the default
// language.
func (h TemplateHelpers) LocalePrefix() string {
	if h.IsDefaultLocale() {
		return ""
	}
	return "/" + h.lang
}

// T translates key in the current language. pairs are alternating var names
// and values.
func (h TemplateHelpers) T(key string, pairs ...any) string {
	var vars map[string]any
	if len(pairs) > 1 {
		vars = make(map[string]any, len(pairs)/2)
		for i := 0; i+1 < len(pairs); i += 2 {
			name, ok := pairs[i].(string)
			if !ok {
				continue
			}
			vars[name] = pairs[i+1]
		}
	}
	return h.translator.T(h.lang, key, vars)
}

// Date formats when with one of the i18n date styles.
func (h TemplateHelpers) Date(when time.Time, style string) string {
	return i18n.FormatDate(h.lang, when, i18n.DateStyle(style))
}

// MinutesRead renders the reading time label.
func (h TemplateHelpers) MinutesRead(minutes int) string {
	return h.translator.Count(h.lang, "count minutes read", minutes)
}

// Capitalize upper-cases the first letter of text.
func (h TemplateHelpers) Capitalize(text string) string {
	return seo.Capitalize(text)
}

// ISO formats when as an ISO 8601 instant with milliseconds.
func (h TemplateHelpers) ISO(when time.Time) string {
	return when.UTC().Format(isoMillis)
}

// RenderedPage captures the rendered HTML output for a route.
type RenderedPage struct {
	Route        string
	Lang         string
	Kind         routes.Kind
	Output       string
	Template     string
	HTML         string
	Duration     time.Duration
	Checksum     string
	NoIndex      bool
	LangRefs     []routes.LangRef
	LastModified time.Time
}

// RenderDiagnostic records rendering timing and errors for individual routes.
type RenderDiagnostic struct {
	Route    string
	Lang     string
	Template string
	Duration time.Duration
	Skipped  bool
	Err      error
}

type renderOutcome struct {
	page       RenderedPage
	diagnostic RenderDiagnostic
	err        error
}
