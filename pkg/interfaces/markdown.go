package interfaces

import "time"

// MarkdownParser converts Markdown source into HTML.
type MarkdownParser interface {
	// Parse renders with the parser defaults.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions renders with per-call overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown rendering. Option names stay readable
// for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// Document is a Markdown file with parsed front matter. Lang is derived from
// the directory the file lives in.
type Document struct {
	FilePath     string
	Lang         string
	FrontMatter  FrontMatter
	Body         []byte
	BodyHTML     []byte
	LastModified time.Time
	// Checksum is the SHA-256 digest of the raw file.
	Checksum []byte
}

// CategoryLevel is a single-key label map such as {other: Misc}. The key is
// shared between languages, the value is the translated label.
type CategoryLevel map[string]string

// FrontMatter models the metadata block of a post or home page. Unknown keys
// end up in Custom.
type FrontMatter struct {
	ID            int             `yaml:"id" json:"id"`
	Title         string          `yaml:"title" json:"title"`
	URL           string          `yaml:"url" json:"url"`
	Date          time.Time       `yaml:"date" json:"date"`
	Updated       time.Time       `yaml:"updated" json:"updated"`
	Tags          []string        `yaml:"tags" json:"tags"`
	Category      []CategoryLevel `yaml:"category" json:"category"`
	Author        string          `yaml:"author" json:"author"`
	Source        string          `yaml:"source" json:"source"`
	TwitterAuthor string          `yaml:"twitterAuthor" json:"twitterAuthor"`
	Draft         bool            `yaml:"draft" json:"draft"`
	Custom        map[string]any  `yaml:",inline" json:"custom"`
}
