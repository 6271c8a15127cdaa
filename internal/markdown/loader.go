package markdown

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/goliatone/go-devpot/pkg/interfaces"
)

// LoaderConfig configures how content files are discovered.
type LoaderConfig struct {
	// DefaultLang is assigned to files that do not live under a language
	// directory.
	DefaultLang string
	// Langs restricts which first-level directories count as languages. When
	// empty every first-level directory is a language.
	Langs []string
	// Pattern limits discovered files (defaults to "*.md").
	Pattern string
}

// Loader reads content collections laid out as <dir>/<lang>/<file>.md.
type Loader struct {
	fs          fs.FS
	defaultLang string
	langs       map[string]struct{}
	pattern     string
}

// NewLoader constructs a Loader over filesystem.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := strings.TrimSpace(cfg.Pattern)
	if pattern == "" {
		pattern = "*.md"
	}
	var langs map[string]struct{}
	if len(cfg.Langs) > 0 {
		langs = make(map[string]struct{}, len(cfg.Langs))
		for _, lang := range cfg.Langs {
			if trimmed := strings.TrimSpace(lang); trimmed != "" {
				langs[trimmed] = struct{}{}
			}
		}
	}
	return &Loader{
		fs:          filesystem,
		defaultLang: cfg.DefaultLang,
		langs:       langs,
		pattern:     pattern,
	}
}

// LoadFile reads and parses a single file. lang is recorded as given.
func (l *Loader) LoadFile(ctx context.Context, name, lang string) (*interfaces.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name = path.Clean(strings.TrimPrefix(name, "/"))
	data, err := fs.ReadFile(l.fs, name)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", name, err)
	}

	info, err := fs.Stat(l.fs, name)
	if err != nil {
		return nil, fmt.Errorf("markdown loader stat %s: %w", name, err)
	}

	doc, err := BuildDocument(name, lang, data, info.ModTime())
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(data)
	doc.Checksum = sum[:]
	return doc, nil
}

// LoadDirectory walks dir and returns its documents grouped by language.
// Documents inside each group are ordered by file path.
func (l *Loader) LoadDirectory(ctx context.Context, dir string) (map[string][]*interfaces.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root := path.Clean(strings.TrimPrefix(dir, "/"))
	if root == "" {
		root = "."
	}

	grouped := map[string][]*interfaces.Document{}
	walkErr := fs.WalkDir(l.fs, root, func(name string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if match, _ := path.Match(l.pattern, path.Base(name)); !match {
			return nil
		}

		lang, ok := l.detectLang(root, name)
		if !ok {
			return nil
		}
		doc, err := l.LoadFile(ctx, name, lang)
		if err != nil {
			return err
		}
		grouped[lang] = append(grouped[lang], doc)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	for _, docs := range grouped {
		sort.Slice(docs, func(i, j int) bool {
			return docs[i].FilePath < docs[j].FilePath
		})
	}
	return grouped, nil
}

// detectLang resolves the language from the first segment below root. Files
// placed directly in root belong to the default language; directories not in
// the configured language list are skipped.
func (l *Loader) detectLang(root, name string) (string, bool) {
	rel := name
	if root != "." {
		rel = strings.TrimPrefix(name, root+"/")
	}
	segments := strings.Split(rel, "/")
	if len(segments) < 2 {
		return l.defaultLang, l.defaultLang != ""
	}
	first := segments[0]
	if l.langs == nil {
		return first, true
	}
	if _, ok := l.langs[first]; ok {
		return first, true
	}
	return "", false
}
