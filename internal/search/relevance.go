package search

// Relevance buckets a score. The values double as translation keys.
type Relevance string

const (
	Mentioned Relevance = "Mentioned"
	Related   Relevance = "Related"
	Relevant  Relevance = "Relevant"
)

// ScoreToRelevance maps a score to its bucket.
func ScoreToRelevance(score int) Relevance {
	switch {
	case score < 5:
		return Mentioned
	case score < 15:
		return Related
	default:
		return Relevant
	}
}
