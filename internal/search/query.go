package search

import (
	"net/url"
	"strings"
)

// ParseQuery splits a raw query into lower cased words. Dots and commas
// separate words like spaces do. Percent encoded input is decoded first; a plus sign is kept.
func ParseQuery(raw string) []string {
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}
	raw = strings.NewReplacer(".", " ", ",", " ").Replace(strings.ToLower(raw))
	return strings.Fields(raw)
}

// CountSubstrings counts the non overlapping occurrences of word in text.
func CountSubstrings(text, word string) int {
	if word == "" {
		return 0
	}
	return strings.Count(text, word)
}
