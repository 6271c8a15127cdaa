package generator

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/goliatone/go-devpot/internal/routes"
	"github.com/goliatone/go-devpot/pkg/interfaces"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

const layoutTemplate = "layout.html"

// pageTemplates maps route template identifiers onto page files.
var pageTemplates = map[string]string{
	routes.TemplateIndex:    "index.html",
	routes.TemplatePost:     "post.html",
	routes.TemplateTags:     "tags.html",
	routes.TemplateCategory: "category.html",
	routes.TemplateSearch:   "search.html",
	routes.TemplateNotFound: "404.html",
}

var _ interfaces.TemplateRenderer = (*HTMLRenderer)(nil)

// HTMLRenderer renders pages with html/template. Every page file defines a
// "content" block executed inside the shared layout.
type HTMLRenderer struct {
	pages map[string]*template.Template
}

// DefaultTemplates returns the built-in template set.
func DefaultTemplates() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// NewHTMLRenderer parses the layout and page templates found in fsys. A nil
// fsys selects the built-in templates.
func NewHTMLRenderer(fsys fs.FS) (*HTMLRenderer, error) {
	if fsys == nil {
		fsys = DefaultTemplates()
	}
	base, err := template.New(layoutTemplate).Funcs(templateFuncs()).ParseFS(fsys, layoutTemplate)
	if err != nil {
		return nil, fmt.Errorf("generator: parse layout: %w", err)
	}
	renderer := &HTMLRenderer{pages: make(map[string]*template.Template, len(pageTemplates))}
	for name, file := range pageTemplates {
		page, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := page.ParseFS(fsys, file); err != nil {
			return nil, fmt.Errorf("generator: parse template %s: %w", file, err)
		}
		renderer.pages[name] = page
	}
	return renderer, nil
}

// RenderTemplate executes the page registered for name.
func (r *HTMLRenderer) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	page, ok := r.pages[name]
	if !ok {
		return "", fmt.Errorf("generator: unknown template %q", name)
	}
	var buf bytes.Buffer
	if err := page.ExecuteTemplate(&buf, layoutTemplate, data); err != nil {
		return "", err
	}
	for _, w := range out {
		if w == nil {
			continue
		}
		if _, err := w.Write(buf.Bytes()); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"safeHTML": func(value string) template.HTML {
			return template.HTML(value)
		},
	}
}
