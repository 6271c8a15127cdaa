package search

import (
	"sort"
	"strings"
)

// Result is a graded document.
type Result struct {
	Document    Document  `json:"document"`
	TitleHits   int       `json:"titleHits"`
	TagHits     int       `json:"tagHits"`
	ContentHits int       `json:"contentHits"`
	Score       int       `json:"score"`
	Relevance   Relevance `json:"relevance"`
}

// Grade counts the query words in the title, tags and text of doc. Title hits
// weigh cubed and tag hits squared. Matching ignores case.
func Grade(doc Document, words []string) Result {
	title := strings.ToLower(doc.Title)
	tags := strings.ToLower(strings.Join(doc.Tags, " "))
	text := strings.ToLower(doc.Text)

	result := Result{Document: doc}
	for _, word := range words {
		result.TitleHits += CountSubstrings(title, word)
		result.TagHits += CountSubstrings(tags, word)
		result.ContentHits += CountSubstrings(text, word)
	}
	result.Score = result.TitleHits*result.TitleHits*result.TitleHits +
		result.TagHits*result.TagHits +
		result.ContentHits
	result.Relevance = ScoreToRelevance(result.Score)
	return result
}

// Rank grades docs and keeps those that match, best first. Ties keep the
// document order.
func Rank(docs []Document, words []string) []Result {
	results := make([]Result, 0, len(docs))
	for _, doc := range docs {
		if result := Grade(doc, words); result.Score > 0 {
			results = append(results, result)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}
