package markdown

import (
	"bytes"
	"fmt"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-devpot/pkg/interfaces"
)

// ParseFrontMatter splits source into its metadata block and the Markdown
// body without delimiters.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return envelopeToFrontMatter(meta), body, nil
}

// BuildDocument assembles a Document for path. BodyHTML is left empty so the
// caller decides when to render.
func BuildDocument(path, lang string, source []byte, modified time.Time) (*interfaces.Document, error) {
	fm, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &interfaces.Document{
		FilePath:     path,
		Lang:         lang,
		FrontMatter:  fm,
		Body:         body,
		LastModified: modified,
	}, nil
}

type frontMatterEnvelope struct {
	ID            int                 `yaml:"id"`
	Title         string              `yaml:"title"`
	URL           string              `yaml:"url"`
	Date          time.Time           `yaml:"date"`
	Updated       time.Time           `yaml:"updated"`
	Tags          []string            `yaml:"tags"`
	Category      []map[string]string `yaml:"category"`
	Author        string              `yaml:"author"`
	Source        string              `yaml:"source"`
	TwitterAuthor string              `yaml:"twitterAuthor"`
	Draft         bool                `yaml:"draft"`
	Custom        map[string]any      `yaml:",inline"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) interfaces.FrontMatter {
	var categories []interfaces.CategoryLevel
	for _, level := range env.Category {
		if len(level) == 0 {
			continue
		}
		copied := make(interfaces.CategoryLevel, len(level))
		for key, value := range level {
			copied[key] = value
		}
		categories = append(categories, copied)
	}

	return interfaces.FrontMatter{
		ID:            env.ID,
		Title:         env.Title,
		URL:           env.URL,
		Date:          env.Date,
		Updated:       env.Updated,
		Tags:          append([]string(nil), env.Tags...),
		Category:      categories,
		Author:        env.Author,
		Source:        env.Source,
		TwitterAuthor: env.TwitterAuthor,
		Draft:         env.Draft,
		Custom:        cloneMap(env.Custom),
	}
}

func cloneMap(input map[string]any) map[string]any {
	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
