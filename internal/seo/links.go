package seo

import (
	"fmt"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-devpot/internal/content"
)

const siteGroup = "site"

// Route names registered per language group.
const (
	RouteHome     = "home"
	RoutePost     = "post"
	RouteTag      = "tag"
	RouteCategory = "category"
	RouteSearch   = "search"
	RouteFeed     = "feed"
)

// Links builds absolute URLs of the public pages. The default language is
// served from the site root, other languages from a "/{lang}" group.
type Links struct {
	siteRoot    string
	defaultLang string
	manager     *urlkit.RouteManager
}

// NewLinks registers the page routes of every language.
func NewLinks(siteRoot, defaultLang string, langs []string, translator content.Translator) *Links {
	siteRoot = strings.TrimSuffix(strings.TrimSpace(siteRoot), "/")
	root := urlkit.GroupConfig{
		Name:    siteGroup,
		BaseURL: siteRoot,
		Paths:   langPaths(translator, defaultLang),
	}
	for _, lang := range langs {
		if lang == defaultLang {
			continue
		}
		root.Groups = append(root.Groups, urlkit.GroupConfig{
			Name:  lang,
			Path:  "/" + lang,
			Paths: langPaths(translator, lang),
		})
	}
	return &Links{
		siteRoot:    siteRoot,
		defaultLang: defaultLang,
		manager:     urlkit.NewRouteManager(&urlkit.Config{Groups: []urlkit.GroupConfig{root}}),
	}
}

func langPaths(translator content.Translator, lang string) map[string]string {
	return map[string]string{
		RouteHome:     "/",
		RoutePost:     "/" + translator.Path(lang, "posts") + "/:slug",
		RouteTag:      "/" + translator.Path(lang, "tags") + "/:slug",
		RouteCategory: "/" + translator.Path(lang, "category") + "/:slug",
		RouteSearch:   "/" + translator.Path(lang, "search"),
		RouteFeed:     "/feed.xml",
	}
}

// SiteRoot returns the configured root without a trailing slash.
func (l *Links) SiteRoot() string {
	return l.siteRoot
}

// Home is the absolute index URL of lang.
func (l *Links) Home(lang string) (string, error) {
	return l.build(lang, RouteHome, "", true)
}

// Post is the absolute URL of a post page.
func (l *Links) Post(lang, slug string) (string, error) {
	return l.build(lang, RoutePost, slug, true)
}

// Tag is the absolute URL of a tag page.
func (l *Links) Tag(lang, slug string) (string, error) {
	return l.build(lang, RouteTag, slug, true)
}

// Category is the absolute URL of a category page.
func (l *Links) Category(lang, slug string) (string, error) {
	return l.build(lang, RouteCategory, slug, true)
}

// Search is the absolute URL of the search page.
func (l *Links) Search(lang string) (string, error) {
	return l.build(lang, RouteSearch, "", false)
}

// Feed is the absolute URL of the RSS feed of lang.
func (l *Links) Feed(lang string) (string, error) {
	return l.build(lang, RouteFeed, "", false)
}

// Absolute prefixes a site path with the site root. Absolute URLs are
// returned unchanged.
func (l *Links) Absolute(path string) string {
	return AbsoluteURL(l.siteRoot, path)
}

// AbsoluteURL joins siteRoot and path unless path already carries a scheme
// or is protocol relative.
func AbsoluteURL(siteRoot, path string) string {
	if strings.HasPrefix(path, "//") || strings.Contains(path, "://") {
		return path
	}
	siteRoot = strings.TrimSuffix(siteRoot, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return siteRoot + path
}

func (l *Links) build(lang, route, slug string, trailingSlash bool) (url string, err error) {
	group, err := l.group(lang)
	if err != nil {
		return "", err
	}

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("seo: route %q not registered for %q: %v", route, lang, rec)
		}
	}()
	builder := group.Builder(route)
	if slug != "" {
		builder.WithParam("slug", slug)
	}
	url, err = builder.Build()
	if err != nil {
		return "", fmt.Errorf("seo: build %s url for %s: %w", route, lang, err)
	}
	if trailingSlash {
		url = strings.TrimSuffix(url, "/") + "/"
	}
	return url, nil
}

func (l *Links) group(lang string) (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("seo: no url group for language %q", lang)
		}
	}()
	group = l.manager.Group(siteGroup)
	if lang != "" && lang != l.defaultLang {
		group = group.Group(lang)
	}
	return group, nil
}
