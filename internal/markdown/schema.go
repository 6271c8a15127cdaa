package markdown

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-devpot/pkg/interfaces"
)

// ErrFrontMatterInvalid marks front matter rejected by the post schema.
var ErrFrontMatterInvalid = errors.New("front matter invalid")

//go:embed post.schema.json
var postSchemaSource []byte

var (
	postSchemaOnce sync.Once
	postSchema     *jsonschema.Schema
	postSchemaErr  error
)

// Issue is a single schema violation.
type Issue struct {
	Location string
	Message  string
}

// FrontMatterError lists the schema violations of one document.
type FrontMatterError struct {
	Path   string
	Issues []Issue
}

func (e *FrontMatterError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := issue.Location
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return fmt.Sprintf("%s: %s", e.Path, strings.Join(parts, "; "))
}

func (e *FrontMatterError) Unwrap() error {
	return ErrFrontMatterInvalid
}

// ValidatePost checks a post document against the embedded post schema. A
// missing id is not a schema violation; the content pipeline drops such
// posts with a warning.
func ValidatePost(doc *interfaces.Document) error {
	if doc == nil {
		return nil
	}
	schema, err := compiledPostSchema()
	if err != nil {
		return err
	}

	payload, err := schemaPayload(doc.FrontMatter)
	if err != nil {
		return fmt.Errorf("%s: %w", doc.FilePath, err)
	}
	if err := schema.Validate(payload); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return &FrontMatterError{Path: doc.FilePath, Issues: collectIssues(validationErr)}
		}
		return fmt.Errorf("%s: %w", doc.FilePath, err)
	}
	return nil
}

func compiledPostSchema() (*jsonschema.Schema, error) {
	postSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("post.schema.json", bytes.NewReader(postSchemaSource)); err != nil {
			postSchemaErr = err
			return
		}
		postSchema, postSchemaErr = compiler.Compile("post.schema.json")
	})
	return postSchema, postSchemaErr
}

// schemaPayload converts the typed front matter into plain JSON values.
func schemaPayload(fm interfaces.FrontMatter) (map[string]any, error) {
	raw := map[string]any{
		"title": fm.Title,
		"draft": fm.Draft,
	}
	if fm.ID != 0 {
		raw["id"] = fm.ID
	}
	if fm.URL != "" {
		raw["url"] = fm.URL
	}
	if !fm.Date.IsZero() {
		raw["date"] = fm.Date
	}
	if !fm.Updated.IsZero() {
		raw["updated"] = fm.Updated
	}
	if fm.Tags != nil {
		raw["tags"] = fm.Tags
	}
	if fm.Category != nil {
		raw["category"] = fm.Category
	}
	if fm.Author != "" {
		raw["author"] = fm.Author
	}

	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	decoder := json.NewDecoder(bytes.NewReader(encoded))
	decoder.UseNumber()
	var payload map[string]any
	if err := decoder.Decode(&payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func collectIssues(err *jsonschema.ValidationError) []Issue {
	var issues []Issue
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
