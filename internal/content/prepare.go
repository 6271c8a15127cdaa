package content

import (
	"context"
	"fmt"
	"sort"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-devpot/internal/logging"
	"github.com/goliatone/go-devpot/pkg/interfaces"
)

// Translator resolves route segments and labels per language.
type Translator interface {
	Path(lang, part string) string
	T(lang, key string, vars map[string]any) string
}

// Preparer derives the computed post fields and enforces the collection
// invariants before routes are generated.
type Preparer struct {
	translator  Translator
	defaultLang string
	devMode     bool
	logger      interfaces.Logger
}

// PreparerOption customises a Preparer.
type PreparerOption func(*Preparer)

// WithDevMode flags every post as rendered for development or preview.
func WithDevMode(devMode bool) PreparerOption {
	return func(p *Preparer) {
		p.devMode = devMode
	}
}

// WithPreparerLogger sets the logger used for warnings.
func WithPreparerLogger(logger interfaces.Logger) PreparerOption {
	return func(p *Preparer) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPreparer returns a Preparer for a blog whose default language is
// defaultLang.
func NewPreparer(translator Translator, defaultLang string, opts ...PreparerOption) *Preparer {
	p := &Preparer{
		translator:  translator,
		defaultLang: defaultLang,
		logger:      logging.NoOp(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Prepare runs the per-language pipeline in place and returns blog.
// Posts without an id are dropped with a warning; duplicated ids abort.
func (p *Preparer) Prepare(ctx context.Context, blog Blog) (Blog, error) {
	for _, lang := range blog.Langs() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		posts := p.dropMissingIDs(lang, blog[lang])
		if !p.devMode {
			posts = dropDrafts(posts)
		}
		if err := ensureUniqueIDs(lang, posts); err != nil {
			return nil, err
		}

		for _, post := range posts {
			p.checkURL(lang, post)
			post.DevMode = p.devMode
			post.MinutesRead = MinutesRead(post.Contents)
			length := TimeToLength(post.MinutesRead)
			post.Tags = append(post.Tags, p.translator.T(lang, string(length), nil))
			post.ImageURL = LeadImage(post.Contents)
		}

		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].Date.After(posts[j].Date)
		})
		p.linkNeighbors(lang, posts)
		blog[lang] = posts
	}
	return blog, nil
}

func (p *Preparer) dropMissingIDs(lang string, posts []*Post) []*Post {
	kept := make([]*Post, 0, len(posts))
	missing := 0
	for _, post := range posts {
		if post.ID == 0 {
			missing++
			logging.WithSourceContext(p.logger, post.FileInfo.Path, lang, "prepare").
				Info(fmt.Sprintf("Missing post id: %s", post.Title))
			continue
		}
		kept = append(kept, post)
	}
	if missing > 0 {
		p.logger.Warn("Some posts have missing ids. Please check.", "lang", lang, "missing", missing)
	}
	return kept
}

// checkURL warns about post urls that are not lower case slugs. The url is
// kept as written since published links depend on it.
func (p *Preparer) checkURL(lang string, post *Post) {
	if slug.IsValid(post.URL) {
		return
	}
	suggested, _ := slug.Normalize(post.URL)
	logging.WithSourceContext(p.logger, post.FileInfo.Path, lang, "prepare").
		Warn("content.post.url_not_slug", "url", post.URL, "suggested", suggested)
}

func dropDrafts(posts []*Post) []*Post {
	kept := posts[:0]
	for _, post := range posts {
		if !post.Draft {
			kept = append(kept, post)
		}
	}
	return kept
}

func ensureUniqueIDs(lang string, posts []*Post) error {
	seen := make(map[int]string, len(posts))
	for _, post := range posts {
		if other, ok := seen[post.ID]; ok {
			err := fmt.Errorf("%w: id %d used by %s and %s", ErrDuplicatePostID, post.ID, other, post.FileInfo.Path)
			return goerrors.Wrap(err, goerrors.CategoryValidation, "duplicate post id in "+lang).
				WithTextCode("DUPLICATE_POST_ID")
		}
		seen[post.ID] = post.FileInfo.Path
	}
	return nil
}

// linkNeighbors connects each post to the posts with the closest lower and
// higher ids of the same language.
func (p *Preparer) linkNeighbors(lang string, posts []*Post) {
	byID := append([]*Post(nil), posts...)
	sort.Slice(byID, func(i, j int) bool {
		return byID[i].ID < byID[j].ID
	})
	for i, post := range byID {
		post.Prev, post.Next = nil, nil
		if i > 0 {
			post.Prev = p.neighbor(lang, byID[i-1])
		}
		if i < len(byID)-1 {
			post.Next = p.neighbor(lang, byID[i+1])
		}
	}
}

func (p *Preparer) neighbor(lang string, post *Post) *Neighbor {
	url := "/" + p.translator.Path(lang, "posts") + "/" + post.URL + "/"
	if lang != p.defaultLang {
		url = "/" + lang + url
	}
	return &Neighbor{Title: post.Title, URL: url}
}
