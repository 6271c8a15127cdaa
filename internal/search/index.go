package search

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/goliatone/go-devpot/internal/content"
	"github.com/goliatone/go-devpot/internal/routes"
)

// Document is the searchable form of a post.
type Document struct {
	ID    int       `json:"id"`
	Lang  string    `json:"lang"`
	Title string    `json:"title"`
	Path  string    `json:"path"`
	Tags  []string  `json:"tags,omitempty"`
	Text  string    `json:"text"`
	Date  time.Time `json:"date"`
}

// NewDocument extracts the plain text of post. path is the public page path.
func NewDocument(post *content.Post, path string) Document {
	return Document{
		ID:    post.ID,
		Lang:  post.Lang,
		Title: post.Title,
		Path:  path,
		Tags:  append([]string(nil), post.Tags...),
		Text:  PlainText(post.Contents),
		Date:  post.Date,
	}
}

// BuildIndex returns the documents of the variant language in post order.
func BuildIndex(v *routes.Variant) []Document {
	postsPath := v.Path("posts")
	posts := v.Posts("")
	docs := make([]Document, 0, len(posts))
	for _, post := range posts {
		docs = append(docs, NewDocument(post, postsPath+post.URL+"/"))
	}
	return docs
}

// PlainText drops markup from rendered HTML and collapses whitespace.
func PlainText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
