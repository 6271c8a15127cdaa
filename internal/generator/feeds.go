package generator

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/goliatone/go-devpot/internal/seo"
)

const maxFeedItems = 100

type feedItem struct {
	Title       string
	Summary     string
	Link        string
	Tags        []string
	PublishedAt time.Time
}

type feedDocument struct {
	Lang        string
	Title       string
	Description string
	Link        string
	Items       []feedItem
}

// buildFeedDocument lists the newest posts of lang. Posts are already sorted
// by date, newest first.
func (s *service) buildFeedDocument(site *Site, lang string) (feedDocument, error) {
	home, err := site.Links.Home(lang)
	if err != nil {
		return feedDocument{}, err
	}
	doc := feedDocument{
		Lang:        lang,
		Title:       s.siteTitle(lang),
		Description: s.cfg.Site.LongTitle,
		Link:        home,
	}
	if doc.Description == "" {
		doc.Description = doc.Title
	}
	for _, post := range site.Blog[lang] {
		if len(doc.Items) == maxFeedItems {
			break
		}
		link, err := site.Links.Post(lang, post.URL)
		if err != nil {
			return feedDocument{}, err
		}
		doc.Items = append(doc.Items, feedItem{
			Title:       post.Title,
			Summary:     normalizeWhitespace(seo.ElipsizeDescription(post.Contents)),
			Link:        link,
			Tags:        post.Tags,
			PublishedAt: post.Date,
		})
	}
	return doc, nil
}

func (s *service) writeFeeds(ctx context.Context, writer ArtifactWriter, site *Site, langs []string) (int, error) {
	total := 0
	for _, lang := range langs {
		doc, err := s.buildFeedDocument(site, lang)
		if err != nil {
			return total, fmt.Errorf("generator: feed for %s: %w", lang, err)
		}
		content := buildRSSFeed(doc, site.GeneratedAt)
		if err := writer.WriteFile(ctx, WriteFileRequest{
			Path:        feedFile(lang, s.cfg.DefaultLang),
			Content:     strings.NewReader(content),
			Size:        int64(len(content)),
			Lang:        lang,
			Category:    categoryFeed,
			ContentType: "application/rss+xml",
			Checksum:    computeHashFromString(content),
		}); err != nil {
			return total, fmt.Errorf("generator: write feed for %s: %w", lang, err)
		}
		total++
	}
	return total, nil
}

func buildRSSFeed(doc feedDocument, generatedAt time.Time) string {
	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<rss version="2.0">` + "\n")
	builder.WriteString("  <channel>\n")
	builder.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(doc.Title)))
	builder.WriteString(fmt.Sprintf("    <link>%s</link>\n", escapeXML(doc.Link)))
	builder.WriteString(fmt.Sprintf("    <description>%s</description>\n", escapeXML(doc.Description)))
	builder.WriteString(fmt.Sprintf("    <language>%s</language>\n", escapeXML(doc.Lang)))
	builder.WriteString(fmt.Sprintf("    <lastBuildDate>%s</lastBuildDate>\n", generatedAt.UTC().Format(time.RFC1123Z)))
	for _, item := range doc.Items {
		pub := item.PublishedAt
		if pub.IsZero() {
			pub = generatedAt
		}
		builder.WriteString("    <item>\n")
		builder.WriteString(fmt.Sprintf("      <title>%s</title>\n", escapeXML(item.Title)))
		builder.WriteString(fmt.Sprintf("      <link>%s</link>\n", escapeXML(item.Link)))
		builder.WriteString(fmt.Sprintf("      <guid isPermaLink=\"true\">%s</guid>\n", escapeXML(item.Link)))
		builder.WriteString(fmt.Sprintf("      <pubDate>%s</pubDate>\n", pub.UTC().Format(time.RFC1123Z)))
		for _, tag := range item.Tags {
			builder.WriteString(fmt.Sprintf("      <category>%s</category>\n", escapeXML(tag)))
		}
		if item.Summary != "" {
			builder.WriteString(fmt.Sprintf("      <description>%s</description>\n", escapeXML(item.Summary)))
		}
		builder.WriteString("    </item>\n")
	}
	builder.WriteString("  </channel>\n")
	builder.WriteString(`</rss>` + "\n")
	return builder.String()
}

func normalizeWhitespace(input string) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	return strings.Join(strings.Fields(input), " ")
}

func escapeXML(value string) string {
	return html.EscapeString(value)
}
