package routes

import (
	"time"

	"github.com/goliatone/go-devpot/internal/content"
)

// isoMillis matches the ISO 8601 form browsers produce for dates.
const isoMillis = "2006-01-02T15:04:05.000Z"

// Builder derives the route tree of a prepared blog.
type Builder struct {
	blog        content.Blog
	homes       content.Homes
	translator  content.Translator
	defaultLang string
	now         func() time.Time
}

// BuilderOption customises a Builder.
type BuilderOption func(*Builder)

// WithClock overrides the clock used for the build date.
func WithClock(now func() time.Time) BuilderOption {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// NewBuilder returns a Builder over blog and homes.
func NewBuilder(blog content.Blog, homes content.Homes, translator content.Translator, defaultLang string, opts ...BuilderOption) *Builder {
	b := &Builder{
		blog:        blog,
		homes:       homes,
		translator:  translator,
		defaultLang: defaultLang,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Variant returns the view of the blog for lang.
func (b *Builder) Variant(lang string) *Variant {
	return NewVariant(b.blog, b.translator, b.defaultLang, lang)
}

// Langs lists the languages of the blog.
func (b *Builder) Langs() []string {
	return b.blog.Langs()
}

// All returns the index routes (with their post children) followed by the
// tag, category and search routes.
func (b *Builder) All() []Route {
	var routes []Route
	routes = append(routes, b.Indexes()...)
	routes = append(routes, b.Tags()...)
	routes = append(routes, b.Categories()...)
	routes = append(routes, b.Search()...)
	return routes
}

// Indexes returns one index route per language.
func (b *Builder) Indexes() []Route {
	var routes []Route
	for _, lang := range b.Langs() {
		routes = append(routes, b.index(b.Variant(lang)))
	}
	return routes
}

func (b *Builder) index(v *Variant) Route {
	return Route{
		Path:     v.Root(),
		Template: TemplateIndex,
		Kind:     KindIndex,
		Lang:     v.Lang(),
		Data: func() PageData {
			return b.indexData(v)
		},
		Children: b.Posts(v),
	}
}

func (b *Builder) indexData(v *Variant) PageData {
	data := v.CommonData(nil)
	data.Home = b.homes.First(v.Lang())
	data.Posts = v.ExplodedPosts(nil, false)
	data.Date = b.now().UTC().Format(isoMillis)
	data.Categories = v.Categories()
	data.LangRefs = b.rootRefs(v, func(string) string { return "" })
	return data
}

// rootRefs lists every language with the default one last, as used by pages
// that exist in every language.
func (b *Builder) rootRefs(v *Variant, part func(lang string) string) []LangRef {
	var refs []LangRef
	for _, lang := range b.Langs() {
		if lang == b.defaultLang {
			continue
		}
		refs = append(refs, LangRef{
			Lang:     lang,
			URL:      "/" + lang + "/" + part(lang),
			Selected: lang == v.Lang(),
		})
	}
	return append(refs, LangRef{
		Lang:     b.defaultLang,
		URL:      "/" + part(b.defaultLang),
		Selected: b.defaultLang == v.Lang(),
	})
}

// Posts returns the post routes of a language, relative to its root.
func (b *Builder) Posts(v *Variant) []Route {
	posts := v.Posts("")
	routes := make([]Route, 0, len(posts))
	for _, post := range posts {
		post := post
		routes = append(routes, Route{
			Path:     b.translator.Path(v.Lang(), "posts") + "/" + post.URL + "/",
			Template: TemplatePost,
			Kind:     KindPost,
			Lang:     v.Lang(),
			Data: func() PageData {
				data := v.CommonData(nil)
				data.Post = post
				data.Categories = v.Categories()
				data.LangRefs = v.ExplodeRefs(func(lang string) []string {
					translated, ok := b.blog.Find(lang, post.ID)
					if !ok {
						return nil
					}
					return []string{"/" + b.translator.Path(lang, "posts") + "/" + translated.URL + "/"}
				})
				return data
			},
		})
	}
	return routes
}

// Tags returns a noindex route per tag and language.
func (b *Builder) Tags() []Route {
	var routes []Route
	for _, lang := range b.Langs() {
		v := b.Variant(lang)
		tagsPath := v.Path("tags")
		for _, tag := range v.FlatTags() {
			tag := tag
			routes = append(routes, Route{
				Path:     tagsPath + TagSegment(tag),
				Template: TemplateTags,
				Kind:     KindTag,
				Lang:     lang,
				NoIndex:  true,
				Data: func() PageData {
					filter := func(p *content.Post) bool { return p.HasTag(tag) }
					data := v.ExplodedCommonData(filter, false)
					data.LangRefs = v.ExplodeRefs(func(lang string) []string {
						for _, post := range v.Posts(lang) {
							if post.HasTag(tag) {
								return []string{"/" + b.translator.Path(lang, "tags") + "/" + TagSegment(tag) + "/"}
							}
						}
						return nil
					})
					data.Categories = v.Categories()
					data.Tag = tag
					data.NoIndex = true
					return data
				},
			})
		}
	}
	return routes
}

// Categories returns a noindex route per category and language.
func (b *Builder) Categories() []Route {
	var routes []Route
	for _, lang := range b.Langs() {
		v := b.Variant(lang)
		categoryPath := v.Path("category")
		for _, level := range v.FlatCategories() {
			level := level
			routes = append(routes, Route{
				Path:     categoryPath + NormalizedCategoryValue(level),
				Template: TemplateCategory,
				Kind:     KindCategory,
				Lang:     lang,
				NoIndex:  true,
				Data: func() PageData {
					filter := func(p *content.Post) bool { return ContainsCategory(p, level) }
					data := v.ExplodedCommonData(filter, false)
					data.LangRefs = v.ExplodeRefs(func(lang string) []string {
						translated, ok := TranslatedCategory(v.Posts(lang), level)
						if !ok {
							return nil
						}
						return []string{"/" + b.translator.Path(lang, "category") + "/" + NormalizedCategoryValue(translated) + "/"}
					})
					data.Categories = v.Categories()
					data.Category = CategoryValue(level)
					data.NoIndex = true
					return data
				},
			})
		}
	}
	return routes
}

// Search returns one noindex search route per language. It carries the index
// data without post children.
func (b *Builder) Search() []Route {
	var routes []Route
	for _, lang := range b.Langs() {
		v := b.Variant(lang)
		path := v.PathWithSuffix("search", "")
		routes = append(routes, Route{
			Path:     path,
			Template: TemplateSearch,
			Kind:     KindSearch,
			Lang:     lang,
			NoIndex:  true,
			Data: func() PageData {
				data := b.indexData(v)
				data.LangRefs = b.rootRefs(v, func(lang string) string {
					return b.translator.Path(lang, "search")
				})
				data.Path = path
				data.NoIndex = true
				return data
			},
		})
	}
	return routes
}

// NotFound returns the 404 page of the default language, linking to every
// language root.
func (b *Builder) NotFound() Route {
	v := b.Variant(b.defaultLang)
	return Route{
		Path:     "/404",
		Template: TemplateNotFound,
		Kind:     KindNotFound,
		Lang:     b.defaultLang,
		NoIndex:  true,
		Data: func() PageData {
			data := v.PageData()
			data.Tags = []Tag{}
			data.LangRefs = b.rootRefs(v, func(string) string { return "" })
			data.NoIndex = true
			return data
		},
	}
}
