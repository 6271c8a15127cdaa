package generator

import (
	"strings"

	"github.com/goliatone/go-devpot/internal/routes"
	"github.com/goliatone/go-devpot/internal/seo"
)

const (
	logoImage   = "/img/logo.png"
	twitterCard = "summary"
)

// buildHead resolves the document head of a route from its page data.
func (s *service) buildHead(site *Site, route routes.Route, data routes.PageData) (seo.Head, error) {
	lang := route.Lang
	siteTitle := s.siteTitle(lang)
	in := seo.HeadInput{
		Lang:        lang,
		DefaultLang: s.cfg.DefaultLang,
		SiteName:    siteTitle,
		TwitterSite: s.cfg.Site.TwitterAuthor,
		TwitterCard: twitterCard,
		NoIndex:     route.NoIndex,
		LangRefs:    data.LangRefs,
		Type:        "website",
		Image:       logoImage,
	}
	in.TwitterCreator = in.TwitterSite

	switch route.Kind {
	case routes.KindIndex:
		in.Title = siteTitle
		if data.Home != nil {
			in.Title = siteTitle + ": " + data.Home.Title
			in.Description = data.Home.Contents
		}
	case routes.KindPost:
		post := data.Post
		if post == nil {
			break
		}
		in.Title = post.Title + " - " + siteTitle
		in.Description = post.Contents
		in.Type = "article"
		if post.ImageURL != "" {
			in.Image = post.ImageURL
		}
		in.Date = post.LastModified().UTC().Format(isoMillis)
		if post.TwitterAuthor != "" {
			in.TwitterCreator = post.TwitterAuthor
		}
	case routes.KindTag:
		in.Title = seo.Capitalize(s.deps.Translator.T(lang, "tags", nil)) + " - " + siteTitle
		in.Description = tagValues(data.Tags)
	case routes.KindCategory:
		in.Title = seo.Capitalize(s.deps.Translator.T(lang, "category", nil)) + " - " + siteTitle
		in.Description = tagValues(data.Tags)
	case routes.KindSearch:
		in.Title = seo.Capitalize(s.deps.Translator.T(lang, "search", nil)) + " - " + siteTitle
	case routes.KindNotFound:
		in.Title = "404 - " + siteTitle
	}

	head := seo.NewHead(s.cfg.SiteRoot, in)
	if route.Kind == routes.KindPost && data.Post != nil {
		pageURL, err := site.Links.Post(lang, data.Post.URL)
		if err != nil {
			return head, err
		}
		head.URL = pageURL
		jsonld, err := seo.MarshalJSONLD(seo.NewBlogPosting(data.Post, pageURL, s.cfg.Site.Author))
		if err != nil {
			return head, err
		}
		head.JSONLD = jsonld
	}
	return head, nil
}

// siteTitle prefers the translated title and falls back to the configured
// one when the tables lack it.
func (s *service) siteTitle(lang string) string {
	if title := s.deps.Translator.T(lang, "site title", nil); title != "" && title != "site title" {
		return title
	}
	return s.cfg.Site.Title
}

func tagValues(tags []routes.Tag) string {
	values := make([]string, 0, len(tags))
	for _, tag := range tags {
		values = append(values, tag.Value)
	}
	return strings.Join(values, ", ")
}
