package content

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-devpot/internal/logging"
	"github.com/goliatone/go-devpot/internal/markdown"
	"github.com/goliatone/go-devpot/pkg/interfaces"
)

// SourceConfig locates the content collections.
type SourceConfig struct {
	PostsDir    string
	HomeDir     string
	DefaultLang string
	Langs       []string
	Parse       interfaces.ParseOptions
}

// Source reads posts and home entries and renders their Markdown.
type Source struct {
	loader *markdown.Loader
	parser interfaces.MarkdownParser
	cfg    SourceConfig
	logger interfaces.Logger
}

// SourceOption customises a Source.
type SourceOption func(*Source)

// WithSourceLogger sets the logger used while loading.
func WithSourceLogger(logger interfaces.Logger) SourceOption {
	return func(s *Source) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithParser overrides the Markdown parser.
func WithParser(parser interfaces.MarkdownParser) SourceOption {
	return func(s *Source) {
		if parser != nil {
			s.parser = parser
		}
	}
}

// NewSource builds a Source reading from loader.
func NewSource(loader *markdown.Loader, cfg SourceConfig, opts ...SourceOption) *Source {
	s := &Source{
		loader: loader,
		parser: markdown.NewGoldmarkParser(cfg.Parse),
		cfg:    cfg,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadBlog reads every post, validates its front matter and renders its
// body. Schema violations are collected and returned together. Posts
// without an id skip validation.
func (s *Source) LoadBlog(ctx context.Context) (Blog, error) {
	grouped, err := s.loader.LoadDirectory(ctx, s.cfg.PostsDir)
	if err != nil {
		return nil, fmt.Errorf("content: load posts: %w", err)
	}

	blog := Blog{}
	var errs []error
	for lang, docs := range grouped {
		posts := make([]*Post, 0, len(docs))
		for _, doc := range docs {
			// Posts without an id are dropped during preparation.
			if doc.FrontMatter.ID != 0 {
				if err := markdown.ValidatePost(doc); err != nil {
					errs = append(errs, err)
					continue
				}
			}
			post, err := s.postFromDocument(doc)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			posts = append(posts, post)
		}
		blog[lang] = posts
		s.logger.Debug("content.posts.loaded", "lang", lang, "count", len(posts))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return blog, nil
}

// LoadHomes reads the per-language home entries. A missing home directory
// yields an empty collection.
func (s *Source) LoadHomes(ctx context.Context) (Homes, error) {
	if s.cfg.HomeDir == "" {
		return Homes{}, nil
	}
	grouped, err := s.loader.LoadDirectory(ctx, s.cfg.HomeDir)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("content.home.missing", "dir", s.cfg.HomeDir)
		return Homes{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("content: load home: %w", err)
	}

	homes := Homes{}
	for lang, docs := range grouped {
		for _, doc := range docs {
			html, err := s.parser.Parse(doc.Body)
			if err != nil {
				return nil, fmt.Errorf("content: render %s: %w", doc.FilePath, err)
			}
			homes[lang] = append(homes[lang], &Home{
				Title:    doc.FrontMatter.Title,
				Contents: string(html),
				Lang:     lang,
				FileInfo: FileInfo{Path: doc.FilePath},
			})
		}
	}
	return homes, nil
}

func (s *Source) postFromDocument(doc *interfaces.Document) (*Post, error) {
	html, err := s.parser.Parse(doc.Body)
	if err != nil {
		return nil, fmt.Errorf("content: render %s: %w", doc.FilePath, err)
	}
	fm := doc.FrontMatter
	return &Post{
		ID:            fm.ID,
		Title:         fm.Title,
		URL:           fm.URL,
		Lang:          doc.Lang,
		Date:          fm.Date,
		Updated:       fm.Updated,
		Tags:          append([]string(nil), fm.Tags...),
		Category:      fm.Category,
		Author:        fm.Author,
		Source:        fm.Source,
		TwitterAuthor: fm.TwitterAuthor,
		Draft:         fm.Draft,
		Contents:      string(html),
		FileInfo:      FileInfo{Path: doc.FilePath},
		Checksum:      hex.EncodeToString(doc.Checksum),
	}, nil
}
