package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/goliatone/go-devpot/internal/content"
	"github.com/goliatone/go-devpot/internal/i18n"
	"github.com/goliatone/go-devpot/internal/logging/console"
	"github.com/goliatone/go-devpot/internal/markdown"
	"github.com/goliatone/go-devpot/internal/routes"
	"github.com/goliatone/go-devpot/internal/search"
	"github.com/goliatone/go-devpot/internal/seo"
	"github.com/goliatone/go-devpot/pkg/testsupport"
)

const (
	testSiteRoot = "https://blog.termian.dev"
	// pages: 2 indexes, 6 posts, 9 tags (length tags included), 6 categories,
	// 2 search pages and the 404 page.
	testPageCount = 26
)

var testBuildTime = time.Date(2024, 3, 14, 15, 9, 26, 0, time.UTC)

type memoryLedger struct {
	mu        sync.Mutex
	builds    int
	checksums map[string]string
	finished  []int
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{checksums: map[string]string{}}
}

func (l *memoryLedger) Begin(context.Context, time.Time) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.builds++
	return fmt.Sprintf("build-%d", l.builds), nil
}

func (l *memoryLedger) Checksum(_ context.Context, path string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.checksums[path], nil
}

func (l *memoryLedger) Record(_ context.Context, _ string, path, _ string, checksum string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.checksums[path] = checksum
	return nil
}

func (l *memoryLedger) Finish(_ context.Context, _ string, _ time.Time, pages, _ int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.finished = append(l.finished, pages)
	return nil
}

func staticFS() fstest.MapFS {
	return fstest.MapFS{
		"site.webmanifest": {Data: []byte(`{"name":"$template.config.js.siteLongTitle","short_name":"$template.config.js.siteTitle","start_url":"$template.config.js.siteRoot"}`)},
		".well-known/brave-rewards-verification.txt": {Data: []byte("domain: $template.config.js._siteRoot\ntoken: $template.config.js.optional.braveRewardsToken\n")},
		"img/logo.png": {Data: []byte("png")},
	}
}

func testConfig() Config {
	return Config{
		SiteRoot:            testSiteRoot,
		DefaultLang:         "en",
		Workers:             2,
		CopyStatic:          true,
		GenerateSitemap:     true,
		GenerateRobots:      true,
		GenerateFeeds:       true,
		GenerateSearchIndex: true,
		RewriteManifest:     true,
		Site: SiteMetadata{
			Title:             "Devpot",
			LongTitle:         "Devpot: a coder's blog",
			Author:            seo.Author{Name: "Damian Terlecki", Site: "https://termian.dev"},
			TwitterAuthor:     "t3rmian",
			BraveRewardsToken: "token123",
			Disallow:          "Disallow: /drafts/",
		},
	}
}

func newTestService(t *testing.T, cfg Config, writer ArtifactWriter, ledger Ledger, static fs.FS) *service {
	t.Helper()
	translator, err := i18n.NewDefault(i18n.FromSiteConfig("en", "Devpot", "t3rmian"))
	if err != nil {
		t.Fatalf("translator: %v", err)
	}
	renderer, err := NewHTMLRenderer(nil)
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	loader := markdown.NewLoader(testsupport.BlogFS(), markdown.LoaderConfig{DefaultLang: "en"})
	source := content.NewSource(loader, content.SourceConfig{
		PostsDir:    testsupport.PostsDir,
		HomeDir:     testsupport.HomeDir,
		DefaultLang: "en",
	})
	deps := Dependencies{
		Source:     source,
		Translator: translator,
		Renderer:   renderer,
		Writer:     writer,
		Static:     static,
	}
	if ledger != nil {
		deps.Ledger = ledger
	}
	svc := NewService(cfg, deps).(*service)
	svc.now = func() time.Time { return testBuildTime }
	return svc
}

func readOutput(t *testing.T, writer ArtifactWriter, name string) string {
	t.Helper()
	data, err := writer.ReadFile(context.Background(), name)
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return string(data)
}

func TestBuildWritesSiteToDirectory(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig()
	cfg.OutputDir = dir
	svc := newTestService(t, cfg, nil, nil, staticFS())

	result, err := svc.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if result.PagesBuilt != testPageCount || result.PagesSkipped != 0 {
		t.Fatalf("expected %d pages built, got %d built %d skipped", testPageCount, result.PagesBuilt, result.PagesSkipped)
	}
	if result.StaticCopied != 3 {
		t.Fatalf("expected 3 static files, got %d", result.StaticCopied)
	}
	if result.FeedsBuilt != 2 {
		t.Fatalf("expected 2 feeds, got %d", result.FeedsBuilt)
	}
	if len(result.Locales) != 2 || result.Locales[0] != "en" || result.Locales[1] != "pl" {
		t.Fatalf("unexpected locales %v", result.Locales)
	}

	expected := []string{
		"index.html",
		"pl/index.html",
		"posts/plantuml/index.html",
		"pl/posty/opcje-jvm/index.html",
		"tags/jvm/index.html",
		"pl/tagi/uml/index.html",
		"category/misc/index.html",
		"pl/kategoria/inne/index.html",
		"search/index.html",
		"pl/szukaj/index.html",
		"404.html",
		"sitemap.xml",
		"robots.txt",
		"feed.xml",
		"pl/feed.xml",
		"search/en.json",
		"search/pl.json",
		"site.webmanifest",
		"img/logo.png",
		".well-known/brave-rewards-verification.txt",
	}
	for _, name := range expected {
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(name))); err != nil {
			t.Fatalf("expected %s to be written: %v", name, err)
		}
	}
}

func TestBuildRendersPageHead(t *testing.T) {
	writer := NewMemoryWriter()
	svc := newTestService(t, testConfig(), writer, nil, staticFS())
	if _, err := svc.Build(context.Background(), BuildOptions{}); err != nil {
		t.Fatalf("Build: %v", err)
	}

	post := readOutput(t, writer, "posts/plantuml/index.html")
	for _, fragment := range []string{
		`<html lang="en">`,
		`<title>PlantUML as go-to UML CASE tool - Devpot</title>`,
		`<link rel="canonical" href="https://blog.termian.dev/posts/plantuml/">`,
		`<link rel="alternate" hreflang="pl" href="https://blog.termian.dev/pl/posty/plantuml/">`,
		`<link rel="alternate" hreflang="x-default" href="https://blog.termian.dev/posts/plantuml/">`,
		`<meta property="og:type" content="article">`,
		`<meta property="og:image" content="https://blog.termian.dev/img/hq/plantuml.jpeg">`,
		`<meta name="twitter:creator" content="@t3rmian">`,
		`"@type":"BlogPosting"`,
		`<link rel="manifest" href="/site.webmanifest">`,
	} {
		if !strings.Contains(post, fragment) {
			t.Fatalf("expected post page to contain %s\n%s", fragment, post)
		}
	}

	index := readOutput(t, writer, "pl/index.html")
	for _, fragment := range []string{
		`<html lang="pl">`,
		`<h1>Blog programisty</h1>`,
		`<link rel="manifest" href="/site-pl.webmanifest">`,
		`<a href="/pl/posty/git-ept">`,
	} {
		if !strings.Contains(index, fragment) {
			t.Fatalf("expected pl index to contain %s\n%s", fragment, index)
		}
	}

	tag := readOutput(t, writer, "tags/jvm/index.html")
	if !strings.Contains(tag, `<meta name="robots" content="noindex">`) {
		t.Fatalf("expected tag page to be noindex")
	}

	notFound := readOutput(t, writer, "404.html")
	if !strings.Contains(notFound, "<h1>404</h1>") || !strings.Contains(notFound, `href="/pl/"`) {
		t.Fatalf("unexpected 404 page\n%s", notFound)
	}
}

func TestBuildSitemapListsIndexablePagesWithAlternates(t *testing.T) {
	writer := NewMemoryWriter()
	svc := newTestService(t, testConfig(), writer, nil, staticFS())
	if _, err := svc.Build(context.Background(), BuildOptions{}); err != nil {
		t.Fatalf("Build: %v", err)
	}

	sitemap := readOutput(t, writer, "sitemap.xml")
	if !strings.Contains(sitemap, `xmlns:xhtml="http://www.w3.org/1999/xhtml"`) {
		t.Fatalf("expected xhtml namespace\n%s", sitemap)
	}
	// indexes, posts and categories
	if count := strings.Count(sitemap, "<url>"); count != 14 {
		t.Fatalf("expected 14 urls, got %d\n%s", count, sitemap)
	}
	for _, fragment := range []string{
		`<loc>https://blog.termian.dev/</loc>`,
		`<loc>https://blog.termian.dev/pl/posty/plantuml/</loc>`,
		`<loc>https://blog.termian.dev/category/misc/</loc>`,
		`<xhtml:link rel="alternate" hreflang="pl" href="https://blog.termian.dev/pl/posty/plantuml/"></xhtml:link>`,
		`<xhtml:link rel="alternate" hreflang="x-default" href="https://blog.termian.dev/posts/plantuml/"></xhtml:link>`,
		`<lastmod>2019-10-20T10:00:00Z</lastmod>`,
	} {
		if !strings.Contains(sitemap, fragment) {
			t.Fatalf("expected sitemap to contain %s\n%s", fragment, sitemap)
		}
	}
	for _, excluded := range []string{"/tags/", "/tagi/", "/search", "/szukaj", "404"} {
		if strings.Contains(sitemap, excluded) {
			t.Fatalf("expected sitemap to skip %s\n%s", excluded, sitemap)
		}
	}
}

func TestBuildRewritesAuxiliaryFiles(t *testing.T) {
	writer := NewMemoryWriter()
	svc := newTestService(t, testConfig(), writer, nil, staticFS())
	if _, err := svc.Build(context.Background(), BuildOptions{}); err != nil {
		t.Fatalf("Build: %v", err)
	}

	robots := readOutput(t, writer, "robots.txt")
	wantRobots := "User-agent: *\nAllow: /\n\nSitemap: https://blog.termian.dev/sitemap.xml\n\nDisallow: /drafts/"
	if robots != wantRobots {
		t.Fatalf("unexpected robots.txt %q", robots)
	}

	manifest := readOutput(t, writer, "site.webmanifest")
	wantManifest := `{"name":"Devpot: a coder's blog","short_name":"Devpot","start_url":"https://blog.termian.dev"}`
	if manifest != wantManifest {
		t.Fatalf("unexpected manifest %s", manifest)
	}

	brave := readOutput(t, writer, ".well-known/brave-rewards-verification.txt")
	if brave != "domain: blog.termian.dev\ntoken: token123\n" {
		t.Fatalf("unexpected brave verification %q", brave)
	}
}

func TestBuildRewritesLanguageManifestLinkedFromHead(t *testing.T) {
	static := staticFS()
	static["site-pl.webmanifest"] = &fstest.MapFile{Data: []byte(`{"start_url":"$template.config.js.siteRoot","lang":"pl"}`)}
	writer := NewMemoryWriter()
	svc := newTestService(t, testConfig(), writer, nil, static)
	if _, err := svc.Build(context.Background(), BuildOptions{}); err != nil {
		t.Fatalf("Build: %v", err)
	}

	page := readOutput(t, writer, "pl/index.html")
	if !strings.Contains(page, `href="/site-pl.webmanifest"`) {
		t.Fatalf("expected pl pages to link the pl manifest")
	}
	manifest := readOutput(t, writer, "site-pl.webmanifest")
	if manifest != `{"start_url":"https://blog.termian.dev","lang":"pl"}` {
		t.Fatalf("unexpected pl manifest %s", manifest)
	}
}

func TestBuildFailsWhenManifestMissing(t *testing.T) {
	static := staticFS()
	delete(static, "site.webmanifest")
	writer := NewMemoryWriter()
	svc := newTestService(t, testConfig(), writer, nil, static)

	result, err := svc.Build(context.Background(), BuildOptions{})
	if err == nil {
		t.Fatalf("expected missing manifest error")
	}
	if !errors.Is(err, fs.ErrNotExist) || !strings.Contains(err.Error(), "site.webmanifest") {
		t.Fatalf("expected read error for site.webmanifest, got %v", err)
	}
	if result == nil || result.PagesBuilt != testPageCount {
		t.Fatalf("expected the pages to be written despite the failed step, got %+v", result)
	}
	if ok, _ := writer.Exists(context.Background(), "feed.xml"); !ok {
		t.Fatalf("expected other steps to run")
	}
}

func TestBuildFailsWhenRobotsMissingForDisallow(t *testing.T) {
	cfg := testConfig()
	cfg.GenerateRobots = false
	writer := NewMemoryWriter()
	svc := newTestService(t, cfg, writer, nil, staticFS())

	_, err := svc.Build(context.Background(), BuildOptions{})
	if err == nil || !strings.Contains(err.Error(), "robots.txt") {
		t.Fatalf("expected robots read error, got %v", err)
	}
}

func TestBuildRejectsUnknownManifestKey(t *testing.T) {
	static := staticFS()
	static["site.webmanifest"] = &fstest.MapFile{Data: []byte(`{"name":"$template.config.js.nope"}`)}
	svc := newTestService(t, testConfig(), NewMemoryWriter(), nil, static)

	_, err := svc.Build(context.Background(), BuildOptions{})
	if err == nil || !strings.Contains(err.Error(), `unknown template config key "nope"`) {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestBuildFeedsAreValidRSS(t *testing.T) {
	writer := NewMemoryWriter()
	svc := newTestService(t, testConfig(), writer, nil, staticFS())
	if _, err := svc.Build(context.Background(), BuildOptions{}); err != nil {
		t.Fatalf("Build: %v", err)
	}

	parser := gofeed.NewParser()
	cases := []struct {
		file      string
		language  string
		firstLink string
	}{
		{file: "feed.xml", language: "en", firstLink: "https://blog.termian.dev/posts/git-monthly-work-log/"},
		{file: "pl/feed.xml", language: "pl", firstLink: "https://blog.termian.dev/pl/posty/git-ept/"},
	}
	for _, tc := range cases {
		feed, err := parser.ParseString(readOutput(t, writer, tc.file))
		if err != nil {
			t.Fatalf("parse %s: %v", tc.file, err)
		}
		if feed.Title != "Devpot" || feed.Language != tc.language {
			t.Fatalf("unexpected channel %s %q %q", tc.file, feed.Title, feed.Language)
		}
		if len(feed.Items) != 3 {
			t.Fatalf("expected 3 items in %s, got %d", tc.file, len(feed.Items))
		}
		if feed.Items[0].Link != tc.firstLink {
			t.Fatalf("expected newest post first in %s, got %s", tc.file, feed.Items[0].Link)
		}
	}
}

func TestBuildWritesSearchIndexes(t *testing.T) {
	writer := NewMemoryWriter()
	svc := newTestService(t, testConfig(), writer, nil, staticFS())
	if _, err := svc.Build(context.Background(), BuildOptions{}); err != nil {
		t.Fatalf("Build: %v", err)
	}

	var docs []search.Document
	if err := json.Unmarshal([]byte(readOutput(t, writer, "search/pl.json")), &docs); err != nil {
		t.Fatalf("decode search index: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(docs))
	}
	if docs[0].Path != "/pl/posty/git-ept/" || docs[0].Text != "Podsumowanie miesiąca commitów." {
		t.Fatalf("unexpected first document %+v", docs[0])
	}
}

func TestBuildDryRunWritesNothing(t *testing.T) {
	writer := NewMemoryWriter()
	ledger := newMemoryLedger()
	svc := newTestService(t, testConfig(), writer, ledger, staticFS())

	result, err := svc.Build(context.Background(), BuildOptions{DryRun: true})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !result.DryRun || result.PagesBuilt != testPageCount || len(result.Rendered) != testPageCount {
		t.Fatalf("unexpected dry run result %+v", result)
	}
	if paths := writer.Paths(); len(paths) != 0 {
		t.Fatalf("expected no artifacts, got %v", paths)
	}
	if ledger.builds != 0 {
		t.Fatalf("expected dry run to leave the ledger alone")
	}
}

func TestIncrementalBuildSkipsUnchangedPages(t *testing.T) {
	cfg := testConfig()
	cfg.Incremental = true
	writer := NewMemoryWriter()
	ledger := newMemoryLedger()
	svc := newTestService(t, cfg, writer, ledger, staticFS())
	ctx := context.Background()

	first, err := svc.Build(ctx, BuildOptions{})
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	if first.PagesBuilt != testPageCount || first.PagesSkipped != 0 {
		t.Fatalf("unexpected first build %d/%d", first.PagesBuilt, first.PagesSkipped)
	}

	second, err := svc.Build(ctx, BuildOptions{})
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	if second.PagesBuilt != 0 || second.PagesSkipped != testPageCount {
		t.Fatalf("expected every page skipped, got %d/%d", second.PagesBuilt, second.PagesSkipped)
	}
	skipped := 0
	for _, diag := range second.Diagnostics {
		if diag.Skipped {
			skipped++
		}
	}
	if skipped != testPageCount {
		t.Fatalf("expected skipped diagnostics, got %d", skipped)
	}

	if err := writer.RemoveAll(ctx, "posts/plantuml"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	third, err := svc.Build(ctx, BuildOptions{})
	if err != nil {
		t.Fatalf("third build: %v", err)
	}
	if third.PagesBuilt != 1 {
		t.Fatalf("expected the removed page to be rewritten, got %d", third.PagesBuilt)
	}

	forced, err := svc.Build(ctx, BuildOptions{Force: true})
	if err != nil {
		t.Fatalf("forced build: %v", err)
	}
	if forced.PagesBuilt != testPageCount {
		t.Fatalf("expected forced build to rewrite every page, got %d", forced.PagesBuilt)
	}
	if len(ledger.finished) != 4 || ledger.finished[1] != 0 {
		t.Fatalf("unexpected ledger history %v", ledger.finished)
	}
}

func TestBuildLogsCarryBuildScope(t *testing.T) {
	var out bytes.Buffer
	svc := newTestService(t, testConfig(), NewMemoryWriter(), newMemoryLedger(), staticFS())
	svc.logger = console.NewProvider(console.Options{
		Writer: &out,
		Level:  console.LevelDebug,
		Clock:  func() time.Time { return testBuildTime },
	}).GetLogger("devpot.generator")

	if _, err := svc.Build(context.Background(), BuildOptions{}); err != nil {
		t.Fatalf("build: %v", err)
	}

	var rendered, finished bool
	for _, line := range strings.Split(out.String(), "\n") {
		if strings.Contains(line, "[lang=pl route=/pl/posty/plantuml/] generator page rendered duration=") {
			rendered = true
		}
		if strings.Contains(line, "INFO  devpot.generator [build=build-1] generator build finished") &&
			strings.Contains(line, fmt.Sprintf("pages_built=%d", testPageCount)) {
			finished = true
		}
	}
	if !rendered {
		t.Fatalf("expected a scoped page entry, got:\n%s", out.String())
	}
	if !finished {
		t.Fatalf("expected the build id on the finish entry, got:\n%s", out.String())
	}
}

func TestBuildFiltersLocales(t *testing.T) {
	writer := NewMemoryWriter()
	svc := newTestService(t, testConfig(), writer, nil, staticFS())

	result, err := svc.Build(context.Background(), BuildOptions{Locales: []string{"PL"}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(result.Locales) != 1 || result.Locales[0] != "pl" {
		t.Fatalf("unexpected locales %v", result.Locales)
	}
	for _, page := range result.Rendered {
		if page.Lang != "pl" {
			t.Fatalf("unexpected %s page %s", page.Lang, page.Route)
		}
	}
	ctx := context.Background()
	if ok, _ := writer.Exists(ctx, "index.html"); ok {
		t.Fatalf("expected no default language index")
	}
	if ok, _ := writer.Exists(ctx, "404.html"); ok {
		t.Fatalf("expected no 404 page outside the default language")
	}
	if ok, _ := writer.Exists(ctx, "pl/feed.xml"); !ok {
		t.Fatalf("expected pl feed")
	}
}

func TestBuildStagingSitemap(t *testing.T) {
	cfg := testConfig()
	cfg.Staging = true
	writer := NewMemoryWriter()
	svc := newTestService(t, cfg, writer, nil, staticFS())
	if _, err := svc.Build(context.Background(), BuildOptions{}); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if ok, _ := writer.Exists(context.Background(), "sitemap.staging.xml"); !ok {
		t.Fatalf("expected staging sitemap")
	}
	if !strings.Contains(readOutput(t, writer, "robots.txt"), "Sitemap: https://blog.termian.dev/sitemap.staging.xml") {
		t.Fatalf("expected robots to reference the staging sitemap")
	}
}

func TestCleanRemovesOutputDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dist")
	cfg := testConfig()
	cfg.OutputDir = dir
	svc := newTestService(t, cfg, nil, nil, staticFS())
	if _, err := svc.Build(context.Background(), BuildOptions{}); err != nil {
		t.Fatalf("Build: %v", err)
	}

	if err := svc.Clean(context.Background()); err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if _, err := os.Stat(dir); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected output directory removed, got %v", err)
	}
}

func TestLoadRequiresSource(t *testing.T) {
	svc := NewService(testConfig(), Dependencies{})
	if _, err := svc.Load(context.Background()); !errors.Is(err, errSourceRequired) {
		t.Fatalf("expected errSourceRequired, got %v", err)
	}
	if _, err := svc.Build(context.Background(), BuildOptions{}); !errors.Is(err, errRendererRequired) {
		t.Fatalf("expected errRendererRequired, got %v", err)
	}
}

func TestDisabledService(t *testing.T) {
	svc := NewDisabledService()
	if _, err := svc.Build(context.Background(), BuildOptions{}); !errors.Is(err, ErrServiceDisabled) {
		t.Fatalf("expected ErrServiceDisabled, got %v", err)
	}
	if err := svc.Clean(context.Background()); !errors.Is(err, ErrServiceDisabled) {
		t.Fatalf("expected ErrServiceDisabled, got %v", err)
	}
}

func TestRewriteTemplateConfig(t *testing.T) {
	values := map[string]string{"siteTitle": "Devpot", "siteRoot": "https://blog.termian.dev"}
	cases := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "no placeholders", input: `{"a":"b"}`, want: `{"a":"b"}`},
		{name: "quoted", input: `{"name":"$template.config.js.siteTitle"}`, want: `{"name":"Devpot"}`},
		{name: "several", input: `"$template.config.js.siteTitle" "$template.config.js.siteRoot"`, want: `"Devpot" "https://blog.termian.dev"`},
		{name: "trailing", input: `$template.config.js.siteTitle`, want: `Devpot`},
		{name: "unknown", input: `"$template.config.js.other"`, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := rewriteTemplateConfig(tc.input, values)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	cases := []struct {
		route routes.Route
		want  string
	}{
		{route: routes.Route{Path: "/"}, want: "index.html"},
		{route: routes.Route{Path: "/pl/"}, want: "pl/index.html"},
		{route: routes.Route{Path: "/posts/plantuml/"}, want: "posts/plantuml/index.html"},
		{route: routes.Route{Path: "/pl/tagi/uml"}, want: "pl/tagi/uml/index.html"},
		{route: routes.Route{Path: "/404", Kind: routes.KindNotFound}, want: "404.html"},
	}
	for _, tc := range cases {
		if got := outputPath(tc.route); got != tc.want {
			t.Fatalf("outputPath(%q) = %q, want %q", tc.route.Path, got, tc.want)
		}
	}
}

func TestSiteHost(t *testing.T) {
	if got := siteHost("https://blog.termian.dev"); got != "blog.termian.dev" {
		t.Fatalf("unexpected host %q", got)
	}
	if got := siteHost("blog.termian.dev"); got != "blog.termian.dev" {
		t.Fatalf("unexpected host %q", got)
	}
}
