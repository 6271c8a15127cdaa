package markdown

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-devpot/pkg/interfaces"
)

const plantumlPost = `---
id: 5
title: PlantUML as go-to UML CASE tool
url: plantuml
date: 2019-11-02T10:00:00Z
tags:
  - uml
category:
  - other: Misc
author: Damian Terlecki
series: tooling
---
# PlantUML

Body <img data-src="/img/hq/plantuml.svg" src="/img/lq/plantuml.svg">
`

func TestParseFrontMatter(t *testing.T) {
	fm, body, err := ParseFrontMatter([]byte(plantumlPost))
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}

	if fm.ID != 5 {
		t.Fatalf("expected id 5, got %d", fm.ID)
	}
	if fm.Title != "PlantUML as go-to UML CASE tool" {
		t.Fatalf("title mismatch, got %q", fm.Title)
	}
	if fm.URL != "plantuml" {
		t.Fatalf("url mismatch, got %q", fm.URL)
	}
	if !fm.Date.Equal(time.Date(2019, 11, 2, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("date mismatch, got %v", fm.Date)
	}
	if len(fm.Tags) != 1 || fm.Tags[0] != "uml" {
		t.Fatalf("tags mismatch: %#v", fm.Tags)
	}
	if len(fm.Category) != 1 || fm.Category[0]["other"] != "Misc" {
		t.Fatalf("category mismatch: %#v", fm.Category)
	}
	if fm.Custom["series"] != "tooling" {
		t.Fatalf("expected custom field, got %#v", fm.Custom)
	}
	if !strings.Contains(string(body), "# PlantUML") {
		t.Fatalf("body not returned correctly: %q", string(body))
	}
}

func TestBuildDocumentKeepsLang(t *testing.T) {
	modified := time.Now().UTC()
	doc, err := BuildDocument("posts/pl/plantuml.md", "pl", []byte(plantumlPost), modified)
	if err != nil {
		t.Fatalf("BuildDocument: %v", err)
	}
	if doc.Lang != "pl" || doc.FilePath != "posts/pl/plantuml.md" {
		t.Fatalf("unexpected document identity: %q %q", doc.Lang, doc.FilePath)
	}
	if !doc.LastModified.Equal(modified) {
		t.Fatal("expected LastModified to equal the provided timestamp")
	}
}

func TestLoaderGroupsByLanguageDirectory(t *testing.T) {
	fsys := fstest.MapFS{
		"content/posts/en/plantuml.md": {Data: []byte(plantumlPost)},
		"content/posts/en/git.md":      {Data: []byte("---\nid: 6\ntitle: Git\n---\nbody")},
		"content/posts/pl/plantuml.md": {Data: []byte(plantumlPost)},
		"content/posts/pl/notes.txt":   {Data: []byte("ignored")},
		"content/posts/readme.md":      {Data: []byte("---\ntitle: Readme\n---\n")},
	}

	loader := NewLoader(fsys, LoaderConfig{DefaultLang: "en"})
	grouped, err := loader.LoadDirectory(context.Background(), "content/posts")
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}

	if len(grouped["en"]) != 3 {
		t.Fatalf("expected 3 en documents, got %d", len(grouped["en"]))
	}
	if len(grouped["pl"]) != 1 {
		t.Fatalf("expected 1 pl document, got %d", len(grouped["pl"]))
	}
	if grouped["en"][0].FilePath != "content/posts/en/git.md" {
		t.Fatalf("expected documents sorted by path, got %s", grouped["en"][0].FilePath)
	}
	if len(grouped["pl"][0].Checksum) != 32 {
		t.Fatalf("expected sha256 checksum, got %d bytes", len(grouped["pl"][0].Checksum))
	}
}

func TestLoaderRestrictsLanguages(t *testing.T) {
	fsys := fstest.MapFS{
		"posts/en/a.md": {Data: []byte("---\ntitle: A\n---\n")},
		"posts/de/b.md": {Data: []byte("---\ntitle: B\n---\n")},
	}
	loader := NewLoader(fsys, LoaderConfig{Langs: []string{"en"}})
	grouped, err := loader.LoadDirectory(context.Background(), "posts")
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if _, ok := grouped["de"]; ok {
		t.Fatalf("expected unknown language to be skipped, got %v", grouped)
	}
}

func TestLoaderHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	loader := NewLoader(fstest.MapFS{}, LoaderConfig{})
	if _, err := loader.LoadDirectory(ctx, "."); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestGoldmarkParser_Parse(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.Parse([]byte("# Heading\n\nHello **world** <span data-src=\"x\"></span>"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	got := string(html)
	if !strings.Contains(got, `<h1 id="heading">Heading</h1>`) {
		t.Fatalf("expected heading with auto id, got %q", got)
	}
	if !strings.Contains(got, "<strong>world</strong>") {
		t.Fatalf("expected <strong>, got %q", got)
	}
	if !strings.Contains(got, `data-src="x"`) {
		t.Fatalf("expected raw HTML to pass through, got %q", got)
	}
}

func TestGoldmarkParser_SafeModeDropsRawHTML(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{SafeMode: true})
	html, err := parser.Parse([]byte("<script>alert(1)</script>"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if strings.Contains(string(html), "<script>") {
		t.Fatalf("expected raw HTML to be omitted, got %q", string(html))
	}
}

func TestGoldmarkParser_HardWraps(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})
	html, err := parser.ParseWithOptions([]byte("line one\nline two"), interfaces.ParseOptions{HardWraps: true})
	if err != nil {
		t.Fatalf("ParseWithOptions: %v", err)
	}
	if !strings.Contains(string(html), "line one<br>") {
		t.Fatalf("expected hard wraps in HTML output, got %q", string(html))
	}
}

func TestValidatePost(t *testing.T) {
	valid, err := BuildDocument("en/plantuml.md", "en", []byte(plantumlPost), time.Time{})
	if err != nil {
		t.Fatalf("BuildDocument: %v", err)
	}
	if err := ValidatePost(valid); err != nil {
		t.Fatalf("expected valid post, got %v", err)
	}

	cases := []struct {
		name   string
		source string
	}{
		{"missing title", "---\nid: 1\nurl: a\ndate: 2020-01-01T00:00:00Z\n---\n"},
		{"url with slash", "---\nid: 1\ntitle: A\nurl: a/b\ndate: 2020-01-01T00:00:00Z\n---\n"},
		{"multi-key category", "---\nid: 1\ntitle: A\nurl: a\ndate: 2020-01-01T00:00:00Z\ncategory:\n  - {a: A, b: B}\n---\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := BuildDocument("en/x.md", "en", []byte(tc.source), time.Time{})
			if err != nil {
				t.Fatalf("BuildDocument: %v", err)
			}
			err = ValidatePost(doc)
			if !errors.Is(err, ErrFrontMatterInvalid) {
				t.Fatalf("expected ErrFrontMatterInvalid, got %v", err)
			}
			var fmErr *FrontMatterError
			if !errors.As(err, &fmErr) || len(fmErr.Issues) == 0 {
				t.Fatalf("expected issues, got %v", err)
			}
		})
	}
}

func TestValidatePostAllowsMissingID(t *testing.T) {
	doc, err := BuildDocument("en/x.md", "en", []byte("---\ntitle: A\nurl: a\ndate: 2020-01-01T00:00:00Z\n---\n"), time.Time{})
	if err != nil {
		t.Fatalf("BuildDocument: %v", err)
	}
	if err := ValidatePost(doc); err != nil {
		t.Fatalf("expected missing id to pass schema, got %v", err)
	}
}
