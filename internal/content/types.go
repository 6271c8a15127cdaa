package content

import (
	"sort"
	"time"

	"github.com/goliatone/go-devpot/pkg/interfaces"
)

// CategoryLevel is a single-key label map shared by posts of every language.
type CategoryLevel = interfaces.CategoryLevel

// Neighbor links a post to the previous or next one in id order.
type Neighbor struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Post is a blog entry of one language together with its derived fields.
type Post struct {
	ID            int             `json:"id"`
	Title         string          `json:"title"`
	URL           string          `json:"url"`
	Lang          string          `json:"lang"`
	Date          time.Time       `json:"date"`
	Updated       time.Time       `json:"updated,omitempty"`
	Tags          []string        `json:"tags"`
	Category      []CategoryLevel `json:"category,omitempty"`
	Author        string          `json:"author,omitempty"`
	Source        string          `json:"source,omitempty"`
	TwitterAuthor string          `json:"twitterAuthor,omitempty"`
	Draft         bool            `json:"draft,omitempty"`
	Contents      string          `json:"contents"`
	FileInfo      FileInfo        `json:"fileInfo"`
	Checksum      string          `json:"-"`

	DevMode     bool      `json:"devMode"`
	MinutesRead int       `json:"minutesRead"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Next        *Neighbor `json:"next,omitempty"`
	Prev        *Neighbor `json:"prev,omitempty"`
}

// HasTag reports whether tag is one of the post tags.
func (p *Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// LastModified is the updated date when present, the publication date
// otherwise.
func (p *Post) LastModified() time.Time {
	if !p.Updated.IsZero() {
		return p.Updated
	}
	return p.Date
}

// FileInfo points back at the source file.
type FileInfo struct {
	Path string `json:"path"`
}

// Home is the introduction shown on the index page of a language.
type Home struct {
	Title    string   `json:"title"`
	Contents string   `json:"contents"`
	Lang     string   `json:"lang"`
	FileInfo FileInfo `json:"fileInfo"`
}

// Blog holds the posts of every language keyed by language code.
type Blog map[string][]*Post

// Langs returns the languages in a stable order.
func (b Blog) Langs() []string {
	return sortedKeys(b)
}

// Find returns the post with id in lang.
func (b Blog) Find(lang string, id int) (*Post, bool) {
	for _, post := range b[lang] {
		if post.ID == id {
			return post, true
		}
	}
	return nil, false
}

// Homes holds the home entries keyed by language code.
type Homes map[string][]*Home

// First returns the first home entry of lang or nil.
func (h Homes) First(lang string) *Home {
	if entries := h[lang]; len(entries) > 0 {
		return entries[0]
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
