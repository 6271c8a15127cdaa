package routes

import (
	"strings"
	"time"

	"github.com/goliatone/go-devpot/internal/content"
)

// Templates resolved by the renderer.
const (
	TemplateIndex    = "src/pages/index"
	TemplatePost     = "src/containers/Post"
	TemplateTags     = "src/containers/Tags"
	TemplateCategory = "src/containers/Category"
	TemplateSearch   = "src/containers/Search"
	TemplateNotFound = "src/pages/404"
)

// Kind identifies the page family a route belongs to.
type Kind string

const (
	KindIndex    Kind = "index"
	KindPost     Kind = "post"
	KindTag      Kind = "tag"
	KindCategory Kind = "category"
	KindSearch   Kind = "search"
	KindNotFound Kind = "notfound"
)

// Route is a generated page descriptor. Child paths are relative to the
// parent path until Flatten resolves them.
type Route struct {
	Path     string
	Template string
	Kind     Kind
	Lang     string
	NoIndex  bool
	Data     func() PageData
	Children []Route
}

// LangRef points at the equivalent of a page in another language.
type LangRef struct {
	Lang     string `json:"lang"`
	URL      string `json:"url"`
	Selected bool   `json:"selected"`
}

// Tag is a graded tag of one language.
type Tag struct {
	Value string `json:"value"`
	Hits  int    `json:"hits"`
	Path  string `json:"path"`
}

// CategoryLink lists a category of one language.
type CategoryLink struct {
	Key   string `json:"key"`
	Path  string `json:"path"`
	Value string `json:"value,omitempty"`
}

// PostSummary is the listing form of a post.
type PostSummary struct {
	ID          int           `json:"id"`
	Date        time.Time     `json:"date"`
	Title       string        `json:"title"`
	DevMode     bool          `json:"devMode"`
	ImageURL    string        `json:"imageUrl,omitempty"`
	MinutesRead int           `json:"minutesRead"`
	Tags        []string      `json:"tags,omitempty"`
	Path        string        `json:"path"`
	Post        *content.Post `json:"post,omitempty"`
}

// PageData is the payload handed to a template.
type PageData struct {
	Lang          string         `json:"lang"`
	IsDefaultLang bool           `json:"isDefaultLang"`
	Root          string         `json:"root"`
	Date          string         `json:"date,omitempty"`
	Path          string         `json:"path,omitempty"`
	Home          *content.Home  `json:"home,omitempty"`
	Post          *content.Post  `json:"post,omitempty"`
	Posts         []PostSummary  `json:"posts,omitempty"`
	Tags          []Tag          `json:"tags"`
	Categories    []CategoryLink `json:"categories,omitempty"`
	LangRefs      []LangRef      `json:"langRefs"`
	Tag           string         `json:"tag,omitempty"`
	Category      string         `json:"category,omitempty"`
	NoIndex       bool           `json:"noindex,omitempty"`
}

// LoadData evaluates the data getter, tolerating routes without one.
func (r Route) LoadData() PageData {
	if r.Data == nil {
		return PageData{Lang: r.Lang}
	}
	return r.Data()
}

// Flatten returns routes and their descendants with absolute paths, parents
// before children.
func Flatten(routes []Route) []Route {
	var flat []Route
	var walk func(parent string, items []Route)
	walk = func(parent string, items []Route) {
		for _, route := range items {
			if parent != "" && !strings.HasPrefix(route.Path, "/") {
				route.Path = strings.TrimSuffix(parent, "/") + "/" + route.Path
			}
			children := route.Children
			route.Children = nil
			flat = append(flat, route)
			walk(route.Path, children)
		}
	}
	walk("", routes)
	return flat
}
