package routes

import (
	"sort"
	"strings"

	"github.com/goliatone/go-devpot/internal/content"
)

// CategoryKey returns the language independent key of a category level.
func CategoryKey(level content.CategoryLevel) string {
	keys := make([]string, 0, len(level))
	for key := range level {
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	return keys[0]
}

// CategoryValue returns the translated label of a category level.
func CategoryValue(level content.CategoryLevel) string {
	return level[CategoryKey(level)]
}

// NormalizedCategoryValue is the lower cased label used in category paths.
func NormalizedCategoryValue(level content.CategoryLevel) string {
	return strings.ToLower(strings.TrimSpace(CategoryValue(level)))
}

// CategoriesEqual reports whether two levels share a key. Labels differ
// between languages, keys do not.
func CategoriesEqual(a, b content.CategoryLevel) bool {
	return CategoryKey(a) == CategoryKey(b)
}

// ContainsCategory reports whether post is filed under a level with the key
// of level.
func ContainsCategory(post *content.Post, level content.CategoryLevel) bool {
	for _, candidate := range post.Category {
		if CategoriesEqual(candidate, level) {
			return true
		}
	}
	return false
}

// TranslatedCategory finds the level with the key of level among posts.
func TranslatedCategory(posts []*content.Post, level content.CategoryLevel) (content.CategoryLevel, bool) {
	for _, post := range posts {
		for _, candidate := range post.Category {
			if CategoriesEqual(candidate, level) {
				return candidate, true
			}
		}
	}
	return nil, false
}

// TagSegment is the path segment of a tag: the tag as written, trimmed.
func TagSegment(tag string) string {
	return strings.TrimSpace(tag)
}
