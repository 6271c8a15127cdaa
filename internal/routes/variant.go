package routes

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/goliatone/go-devpot/internal/content"
)

// Variant is the read-only view of the blog scoped to one language.
type Variant struct {
	blog        content.Blog
	translator  content.Translator
	defaultLang string
	lang        string
}

// NewVariant returns the view of blog for lang.
func NewVariant(blog content.Blog, translator content.Translator, defaultLang, lang string) *Variant {
	return &Variant{
		blog:        blog,
		translator:  translator,
		defaultLang: defaultLang,
		lang:        lang,
	}
}

func (v *Variant) Lang() string        { return v.lang }
func (v *Variant) DefaultLang() string { return v.defaultLang }

// IsDefaultLang reports whether the variant serves unprefixed paths.
func (v *Variant) IsDefaultLang() bool {
	return v.lang == v.defaultLang
}

// Root is "/" for the default language and "/{lang}/" otherwise.
func (v *Variant) Root() string {
	if v.IsDefaultLang() {
		return "/"
	}
	return "/" + v.lang + "/"
}

// Path returns the root followed by the translated part and a slash.
func (v *Variant) Path(part string) string {
	return v.PathWithSuffix(part, "/")
}

// PathWithSuffix is Path with a custom suffix.
func (v *Variant) PathWithSuffix(part, suffix string) string {
	return v.Root() + v.translator.Path(v.lang, part) + suffix
}

// Posts returns the posts of lang, or of the variant language when lang is
// empty.
func (v *Variant) Posts(lang string) []*content.Post {
	if lang == "" {
		lang = v.lang
	}
	return v.blog[lang]
}

// Langs lists every language of the blog.
func (v *Variant) Langs() []string {
	return v.blog.Langs()
}

// PostFilter selects posts.
type PostFilter func(*content.Post) bool

func allPosts(*content.Post) bool { return true }

// ExplodedPosts lists the matching posts in their listing form. eager
// attaches the whole post.
func (v *Variant) ExplodedPosts(filter PostFilter, eager bool) []PostSummary {
	if filter == nil {
		filter = allPosts
	}
	postsPath := v.Path("posts")
	var summaries []PostSummary
	for _, post := range v.Posts("") {
		if !filter(post) {
			continue
		}
		summary := PostSummary{
			ID:          post.ID,
			Date:        post.Date,
			Title:       post.Title,
			DevMode:     post.DevMode,
			ImageURL:    post.ImageURL,
			MinutesRead: post.MinutesRead,
			Tags:        post.Tags,
			Path:        postsPath + post.URL,
		}
		if eager {
			summary.Post = post
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

// GradedTags counts tag usage over the matching posts in first seen order.
func (v *Variant) GradedTags(filter PostFilter) []Tag {
	if filter == nil {
		filter = allPosts
	}
	tagsPath := v.Path("tags")
	index := map[string]int{}
	tags := []Tag{}
	for _, post := range v.Posts("") {
		if !filter(post) {
			continue
		}
		for _, tag := range post.Tags {
			if tag == "" {
				continue
			}
			if i, ok := index[tag]; ok {
				tags[i].Hits++
				continue
			}
			index[tag] = len(tags)
			tags = append(tags, Tag{Value: tag, Hits: 1, Path: tagsPath + TagSegment(tag) + "/"})
		}
	}
	return tags
}

// FlatTags lists the distinct tags of the language in first seen order.
func (v *Variant) FlatTags() []string {
	seen := map[string]struct{}{}
	var tags []string
	for _, post := range v.Posts("") {
		for _, tag := range post.Tags {
			if _, ok := seen[tag]; ok || tag == "" {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	return tags
}

// FlatCategories lists the distinct category levels of the language in first
// seen order.
func (v *Variant) FlatCategories() []content.CategoryLevel {
	seen := map[string]struct{}{}
	var levels []content.CategoryLevel
	for _, post := range v.Posts("") {
		for _, level := range post.Category {
			key := CategoryKey(level)
			if key == "" {
				continue
			}
			identity := key + "\x00" + level[key]
			if _, ok := seen[identity]; ok {
				continue
			}
			seen[identity] = struct{}{}
			levels = append(levels, level)
		}
	}
	return levels
}

// Categories lists the category links of the language ordered by label
// using the collation rules of the language.
func (v *Variant) Categories() []CategoryLink {
	categoryPath := v.Path("category")
	var links []CategoryLink
	for _, level := range v.FlatCategories() {
		links = append(links, CategoryLink{
			Key:   CategoryKey(level),
			Path:  categoryPath + NormalizedCategoryValue(level) + "/",
			Value: CategoryValue(level),
		})
	}

	collator := collate.New(language.Make(v.lang))
	sort.SliceStable(links, func(i, j int) bool {
		return collator.CompareString(links[i].Value, links[j].Value) < 0
	})
	return links
}

// PageData is the data shared by every page of the language.
func (v *Variant) PageData() PageData {
	return PageData{
		Lang:          v.lang,
		IsDefaultLang: v.IsDefaultLang(),
		Root:          v.Root(),
	}
}

// CommonData is PageData with tags graded over the matching posts.
func (v *Variant) CommonData(filter PostFilter) PageData {
	data := v.PageData()
	data.Tags = v.GradedTags(filter)
	return data
}

// ExplodedCommonData is CommonData with the matching posts listed.
func (v *Variant) ExplodedCommonData(filter PostFilter, eager bool) PageData {
	data := v.CommonData(filter)
	data.Posts = v.ExplodedPosts(filter, eager)
	return data
}

// I18nPath prefixes path with the language unless it is the default one.
func I18nPath(lang, defaultLang, path string) string {
	if lang == defaultLang {
		return path
	}
	return "/" + lang + path
}

// ExplodeRefs resolves the equivalents of a page across languages. resolve
// returns the unprefixed paths of the page in a language, none when the
// language lacks it.
func (v *Variant) ExplodeRefs(resolve func(lang string) []string) []LangRef {
	var refs []LangRef
	for _, lang := range v.Langs() {
		for _, path := range resolve(lang) {
			refs = append(refs, LangRef{
				Lang:     lang,
				URL:      I18nPath(lang, v.defaultLang, path),
				Selected: lang == v.lang,
			})
		}
	}
	return refs
}
