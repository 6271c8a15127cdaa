package search

import (
	"strings"

	"github.com/goliatone/go-devpot/internal/content"
	"github.com/goliatone/go-devpot/internal/routes"
)

// Searcher answers queries over a prepared blog.
type Searcher struct {
	builder    *routes.Builder
	translator content.Translator
	indexes    map[string][]Document
}

// Response is the answer to one query.
type Response struct {
	Lang    string   `json:"lang"`
	Words   []string `json:"words"`
	Header  string   `json:"header"`
	Results []Result `json:"results"`
	Empty   string   `json:"empty,omitempty"`
}

// NewSearcher indexes every language of the builder.
func NewSearcher(builder *routes.Builder, translator content.Translator) *Searcher {
	indexes := map[string][]Document{}
	for _, lang := range builder.Langs() {
		indexes[lang] = BuildIndex(builder.Variant(lang))
	}
	return &Searcher{builder: builder, translator: translator, indexes: indexes}
}

// Index returns the documents of lang.
func (s *Searcher) Index(lang string) []Document {
	return s.indexes[lang]
}

// Search ranks the posts of lang against query.
func (s *Searcher) Search(lang, query string) Response {
	words := ParseQuery(query)
	response := Response{Lang: lang, Words: words, Header: s.Header(lang, words)}
	if len(words) > 0 {
		response.Results = Rank(s.indexes[lang], words)
	}
	if len(response.Results) == 0 {
		response.Empty = s.translator.T(lang, "No content", nil)
	}
	return response
}

// Header is the translated heading of a result page.
func (s *Searcher) Header(lang string, words []string) string {
	if len(words) == 0 {
		return s.translator.T(lang, "Empty query", nil)
	}
	quoted := make([]string, 0, len(words))
	for _, word := range words {
		quoted = append(quoted, `"`+word+`"`)
	}
	return s.translator.T(lang, "Search results", map[string]any{"parts": " " + strings.Join(quoted, ", ")})
}

// RelevanceLabel translates the relevance of a result.
func (s *Searcher) RelevanceLabel(lang string, relevance Relevance) string {
	return s.translator.T(lang, string(relevance), nil)
}
