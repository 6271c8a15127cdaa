package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-devpot"
	"github.com/goliatone/go-devpot/internal/routes"
	"github.com/goliatone/go-devpot/internal/search"
)

type stubHandler[T any] struct {
	calls []T
	err   error
	reply func(T)
}

func (s *stubHandler[T]) Execute(ctx context.Context, msg T) error {
	s.calls = append(s.calls, msg)
	if s.reply != nil {
		s.reply(msg)
	}
	return s.err
}

type stubs struct {
	build  *stubHandler[devpot.BuildSiteCommand]
	clean  *stubHandler[devpot.CleanSiteCommand]
	routes *stubHandler[devpot.ListRoutesQuery]
	search *stubHandler[devpot.SearchQuery]
	opts   devpot.LoadOptions
	closed bool
	served []string
}

func withStubHandlers(t *testing.T) *stubs {
	t.Helper()
	s := &stubs{
		build:  &stubHandler[devpot.BuildSiteCommand]{},
		clean:  &stubHandler[devpot.CleanSiteCommand]{},
		routes: &stubHandler[devpot.ListRoutesQuery]{},
		search: &stubHandler[devpot.SearchQuery]{},
	}
	previous := loadHandlers
	loadHandlers = func(ctx context.Context, opts devpot.LoadOptions) (*handlerSet, error) {
		s.opts = opts
		return &handlerSet{
			build:  s.build,
			clean:  s.clean,
			routes: s.routes,
			search: s.search,
			serve: func(ctx context.Context, addr string, watch bool) error {
				s.served = append(s.served, addr)
				return nil
			},
			defaultLang: "en",
			close: func() error {
				s.closed = true
				return nil
			},
		}, nil
	}
	t.Cleanup(func() { loadHandlers = previous })
	return s
}

func TestRunBuildPassesFlags(t *testing.T) {
	s := withStubHandlers(t)
	s.build.reply = func(msg devpot.BuildSiteCommand) {
		msg.ResultCallback(devpot.ResultEnvelope{Result: &devpot.BuildResult{
			PagesBuilt:   20,
			PagesSkipped: 6,
			FeedsBuilt:   2,
			Locales:      []string{"en", "pl"},
		}})
	}

	var out bytes.Buffer
	err := run(context.Background(), []string{"build", "--force", "--locale", "en,pl", "--config", "site.yaml", "--log-level", "debug"}, &out)
	if err != nil {
		t.Fatalf("run build: %v", err)
	}
	if len(s.build.calls) != 1 {
		t.Fatalf("expected one build, got %d", len(s.build.calls))
	}
	msg := s.build.calls[0]
	if !msg.Force || msg.DryRun || len(msg.Locales) != 2 {
		t.Fatalf("unexpected build message %+v", msg)
	}
	if s.opts.File != "site.yaml" || s.opts.Overrides["logging.level"] != "debug" {
		t.Fatalf("unexpected load options %+v", s.opts)
	}
	if !strings.Contains(out.String(), "built 20 pages (6 skipped, 0 static files, 2 feeds) for en,pl") {
		t.Fatalf("unexpected output %q", out.String())
	}
	if !s.closed {
		t.Fatal("expected handlers to be closed")
	}
}

func TestRunBuildReportsDryRun(t *testing.T) {
	s := withStubHandlers(t)
	s.build.reply = func(msg devpot.BuildSiteCommand) {
		msg.ResultCallback(devpot.ResultEnvelope{Result: &devpot.BuildResult{DryRun: true, PagesBuilt: 26, Locales: []string{"en"}}})
	}
	var out bytes.Buffer
	if err := run(context.Background(), []string{"build", "--dry-run"}, &out); err != nil {
		t.Fatalf("run dry run: %v", err)
	}
	if !s.build.calls[0].DryRun {
		t.Fatal("expected dry run flag")
	}
	if !strings.HasPrefix(out.String(), "dry run: 26 pages rendered for en") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRunPropagatesHandlerErrors(t *testing.T) {
	s := withStubHandlers(t)
	s.clean.err = errors.New("permission denied")
	err := run(context.Background(), []string{"clean"}, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "permission denied") {
		t.Fatalf("expected clean error, got %v", err)
	}
}

func TestRunRoutesPrintsTable(t *testing.T) {
	s := withStubHandlers(t)
	s.routes.reply = func(msg devpot.ListRoutesQuery) {
		msg.ResultCallback([]devpot.RouteEntry{
			{Lang: "pl", Kind: routes.KindIndex, Path: "/pl/"},
			{Lang: "pl", Kind: routes.KindPost, Path: "/pl/posty/plantuml/"},
		})
	}
	var out bytes.Buffer
	if err := run(context.Background(), []string{"routes", "--lang", "pl"}, &out); err != nil {
		t.Fatalf("run routes: %v", err)
	}
	if s.routes.calls[0].Lang != "pl" {
		t.Fatalf("expected lang filter, got %+v", s.routes.calls[0])
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[0], "LANG") || !strings.HasSuffix(lines[2], "/pl/posty/plantuml/") {
		t.Fatalf("unexpected table %q", out.String())
	}
}

func TestRunSearchDefaultsLanguage(t *testing.T) {
	s := withStubHandlers(t)
	s.search.reply = func(msg devpot.SearchQuery) {
		msg.ResultCallback(devpot.SearchResponse{
			Header: "Search results",
			Results: []search.Result{{
				Document:  search.Document{Title: "PlantUML", Path: "/posts/plantuml/"},
				Relevance: search.Relevance("Related"),
			}},
		})
	}
	var out bytes.Buffer
	if err := run(context.Background(), []string{"search", "uml", "case"}, &out); err != nil {
		t.Fatalf("run search: %v", err)
	}
	msg := s.search.calls[0]
	if msg.Lang != "en" || msg.Query != "uml case" {
		t.Fatalf("unexpected search query %+v", msg)
	}
	if !strings.Contains(out.String(), "PlantUML  /posts/plantuml/") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRunServe(t *testing.T) {
	s := withStubHandlers(t)
	if err := run(context.Background(), []string{"serve", "--addr", ":4000", "--watch"}, &bytes.Buffer{}); err != nil {
		t.Fatalf("run serve: %v", err)
	}
	if len(s.served) != 1 || s.served[0] != ":4000" {
		t.Fatalf("expected serve on :4000, got %v", s.served)
	}
}

func TestRunUnknownCommand(t *testing.T) {
	withStubHandlers(t)
	if err := run(context.Background(), []string{"deploy"}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected unknown command error")
	}
}

func TestRunConfigErrorsStopExecution(t *testing.T) {
	previous := loadHandlers
	loadHandlers = func(ctx context.Context, opts devpot.LoadOptions) (*handlerSet, error) {
		return nil, devpot.ErrSiteRootRequired
	}
	t.Cleanup(func() { loadHandlers = previous })

	err := run(context.Background(), []string{"build"}, &bytes.Buffer{})
	if !errors.Is(err, devpot.ErrSiteRootRequired) {
		t.Fatalf("expected config error, got %v", err)
	}
}
