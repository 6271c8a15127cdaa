package seo

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-devpot/internal/routes"
)

const descriptionLimit = 160

var markupPattern = regexp.MustCompile(`<(.|\n)*?>`)

// Alternate is a hreflang link.
type Alternate struct {
	HrefLang string
	Href     string
}

// Head holds the document head tags of a page.
type Head struct {
	Lang           string
	Title          string
	Description    string
	Type           string
	Image          string
	URL            string
	SiteName       string
	Manifest       string
	TwitterSite    string
	TwitterCreator string
	TwitterCard    string
	Date           string
	NoIndex        bool
	Alternates     []Alternate
	JSONLD         string
}

// HeadInput is the page specific part of a Head.
type HeadInput struct {
	Lang           string
	DefaultLang    string
	Title          string
	Description    string
	Type           string
	Image          string
	SiteName       string
	TwitterSite    string
	TwitterCreator string
	TwitterCard    string
	Date           string
	NoIndex        bool
	LangRefs       []routes.LangRef
}

// NewHead resolves absolute URLs against siteRoot and trims the
// description to plain text.
func NewHead(siteRoot string, in HeadInput) Head {
	head := Head{
		Lang:        in.Lang,
		Title:       in.Title,
		Description: ElipsizeDescription(in.Description),
		Type:        in.Type,
		SiteName:    in.SiteName,
		Manifest:    ManifestPath(in.Lang, in.DefaultLang),
		TwitterCard: in.TwitterCard,
		Date:        in.Date,
		NoIndex:     in.NoIndex,
		Alternates:  Alternates(siteRoot, in.DefaultLang, in.LangRefs),
	}
	if in.Image != "" {
		head.Image = AbsoluteURL(siteRoot, in.Image)
	}
	for _, ref := range in.LangRefs {
		if ref.Selected {
			head.URL = AbsoluteURL(siteRoot, ref.URL)
			break
		}
	}
	if in.TwitterSite != "" {
		head.TwitterSite = "@" + in.TwitterSite
	}
	if in.TwitterCreator != "" {
		head.TwitterCreator = "@" + in.TwitterCreator
	}
	return head
}

// ElipsizeDescription strips tags and cuts the text to 160 characters.
func ElipsizeDescription(description string) string {
	text := markupPattern.ReplaceAllString(description, "")
	if utf8.RuneCountInString(text) <= descriptionLimit {
		return text
	}
	runes := []rune(text)
	return string(runes[:descriptionLimit-1]) + "…"
}

// ManifestPath is the web manifest of lang.
func ManifestPath(lang, defaultLang string) string {
	if lang == defaultLang {
		return "/site.webmanifest"
	}
	return "/site-" + lang + ".webmanifest"
}

// Alternates maps langRefs to hreflang links and adds x-default for the
// default language.
func Alternates(siteRoot, defaultLang string, refs []routes.LangRef) []Alternate {
	alternates := make([]Alternate, 0, len(refs)+1)
	var fallback string
	for _, ref := range refs {
		href := AbsoluteURL(siteRoot, ref.URL)
		alternates = append(alternates, Alternate{HrefLang: ref.Lang, Href: href})
		if ref.Lang == defaultLang {
			fallback = href
		}
	}
	if fallback != "" {
		alternates = append(alternates, Alternate{HrefLang: "x-default", Href: fallback})
	}
	return alternates
}

// Capitalize upper cases the first letter of text.
func Capitalize(text string) string {
	if text == "" {
		return text
	}
	r, size := utf8.DecodeRuneInString(text)
	return strings.ToUpper(string(r)) + text[size:]
}
