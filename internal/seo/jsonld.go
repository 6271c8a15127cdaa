package seo

import (
	"encoding/json"
	"time"

	"github.com/goliatone/go-devpot/internal/content"
)

const schemaContext = "https://schema.org"

// Author describes the site owner for structured data.
type Author struct {
	Name     string
	Site     string
	Email    string
	JobTitle string
	Picture  string
}

// Person is a schema.org Person.
type Person struct {
	Type     string   `json:"@type"`
	Name     string   `json:"name"`
	Image    []string `json:"image,omitempty"`
	URL      string   `json:"url,omitempty"`
	Email    string   `json:"email,omitempty"`
	JobTitle string   `json:"jobTitle,omitempty"`
}

// BlogPosting is a schema.org BlogPosting.
type BlogPosting struct {
	Context          string   `json:"@context"`
	Type             string   `json:"@type"`
	Headline         string   `json:"headline"`
	Name             string   `json:"name"`
	Image            []string `json:"image"`
	DatePublished    string   `json:"datePublished"`
	DateModified     string   `json:"dateModified,omitempty"`
	Author           Person   `json:"author"`
	Publisher        Person   `json:"publisher"`
	MainEntityOfPage string   `json:"mainEntityOfPage"`
}

// NewBlogPosting describes post published at pageURL. The site owner is the
// publisher and the author unless the post names another one.
func NewBlogPosting(post *content.Post, pageURL string, owner Author) BlogPosting {
	authorName := post.Author
	if authorName == "" {
		authorName = owner.Name
	}
	posting := BlogPosting{
		Context:          schemaContext,
		Type:             "BlogPosting",
		Headline:         post.Title,
		Name:             post.Title,
		Image:            []string{post.ImageURL},
		DatePublished:    isoDate(post.Date),
		Author:           newPerson(authorName, owner),
		Publisher:        newPerson(owner.Name, owner),
		MainEntityOfPage: pageURL,
	}
	if !post.Updated.IsZero() {
		posting.DateModified = isoDate(post.Updated)
	}
	return posting
}

func newPerson(name string, owner Author) Person {
	person := Person{Type: "Person", Name: name}
	if owner.Picture != "" {
		person.Image = []string{owner.Picture}
	}
	if name == owner.Name {
		person.URL = owner.Site
		person.Email = owner.Email
		person.JobTitle = owner.JobTitle
	}
	return person
}

// MarshalJSONLD renders v for a script of type application/ld+json.
func MarshalJSONLD(v any) (string, error) {
	encoded, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func isoDate(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
