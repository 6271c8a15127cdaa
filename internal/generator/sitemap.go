package generator

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-devpot/internal/seo"
)

const (
	sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"
	xhtmlNamespace   = "http://www.w3.org/1999/xhtml"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	XHTML   string       `xml:"xmlns:xhtml,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string        `xml:"loc"`
	LastMod string        `xml:"lastmod,omitempty"`
	Links   []sitemapLink `xml:"xhtml:link"`
}

type sitemapLink struct {
	Rel      string `xml:"rel,attr"`
	HrefLang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

// buildSitemap lists the indexable pages with their language alternates.
func buildSitemap(siteRoot, defaultLang string, pages []RenderedPage) ([]byte, error) {
	set := sitemapURLSet{XMLNS: sitemapNamespace, XHTML: xhtmlNamespace}
	seen := map[string]struct{}{}
	for _, page := range pages {
		if page.NoIndex {
			continue
		}
		loc := seo.AbsoluteURL(siteRoot, canonicalPath(page))
		if _, ok := seen[loc]; ok {
			continue
		}
		seen[loc] = struct{}{}
		entry := sitemapURL{Loc: loc}
		if !page.LastModified.IsZero() {
			entry.LastMod = page.LastModified.UTC().Format(time.RFC3339)
		}
		for _, alternate := range seo.Alternates(siteRoot, defaultLang, page.LangRefs) {
			entry.Links = append(entry.Links, sitemapLink{
				Rel:      "alternate",
				HrefLang: alternate.HrefLang,
				Href:     alternate.Href,
			})
		}
		set.URLs = append(set.URLs, entry)
	}
	sort.Slice(set.URLs, func(i, j int) bool {
		return set.URLs[i].Loc < set.URLs[j].Loc
	})

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	encoder := xml.NewEncoder(&buf)
	encoder.Indent("", "  ")
	if err := encoder.Encode(set); err != nil {
		return nil, fmt.Errorf("generator: encode sitemap: %w", err)
	}
	buf.WriteString("\n")
	return buf.Bytes(), nil
}

// canonicalPath prefers the selected language reference, which carries the
// trailing slash the page is served with.
func canonicalPath(page RenderedPage) string {
	for _, ref := range page.LangRefs {
		if ref.Selected {
			return ref.URL
		}
	}
	return page.Route
}

func buildRobots(siteRoot, sitemap string, includeSitemap bool) string {
	var builder strings.Builder
	builder.WriteString("User-agent: *\n")
	builder.WriteString("Allow: /\n")
	if includeSitemap {
		builder.WriteString("\n")
		builder.WriteString(fmt.Sprintf("Sitemap: %s\n", seo.AbsoluteURL(siteRoot, "/"+sitemap)))
	}
	return builder.String()
}

func (s *service) writeSitemap(ctx context.Context, writer ArtifactWriter, site *Site, pages []RenderedPage) error {
	content, err := buildSitemap(s.cfg.SiteRoot, s.cfg.DefaultLang, pages)
	if err != nil {
		return err
	}
	req := WriteFileRequest{
		Path:        sitemapFile(s.cfg.Staging),
		Content:     bytes.NewReader(content),
		Size:        int64(len(content)),
		Category:    categorySitemap,
		ContentType: "application/xml",
		Checksum:    computeHash(content),
	}
	if err := writer.WriteFile(ctx, req); err != nil {
		return fmt.Errorf("generator: write sitemap: %w", err)
	}
	s.logger.Debug("generator sitemap written", "path", req.Path, "generated_at", site.GeneratedAt.Format(time.RFC3339))
	return nil
}

func (s *service) writeRobots(ctx context.Context, writer ArtifactWriter) error {
	content := buildRobots(s.cfg.SiteRoot, sitemapFile(s.cfg.Staging), s.cfg.GenerateSitemap)
	req := WriteFileRequest{
		Path:        robotsFile,
		Content:     strings.NewReader(content),
		Size:        int64(len(content)),
		Category:    categoryRobots,
		ContentType: "text/plain; charset=utf-8",
		Checksum:    computeHashFromString(content),
	}
	if err := writer.WriteFile(ctx, req); err != nil {
		return fmt.Errorf("generator: write robots: %w", err)
	}
	return nil
}
