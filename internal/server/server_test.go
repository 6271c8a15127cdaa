package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-devpot/internal/generator"
)

type fakeBuilder struct {
	mu     sync.Mutex
	calls  int
	result *generator.BuildResult
	err    error
}

func (f *fakeBuilder) Build(ctx context.Context, opts generator.BuildOptions) (*generator.BuildResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.result, f.err
}

func (f *fakeBuilder) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func writeFile(t *testing.T, root, name, body string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(full, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func newTestServer(t *testing.T, builder Builder) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "index.html", "<h1>home</h1>")
	writeFile(t, dir, "posts/plantuml/index.html", "<h1>plantuml</h1>")
	writeFile(t, dir, "tags/uml/index.html", "<h1>uml</h1>")
	writeFile(t, dir, "404.html", "<h1>404</h1>")
	writeFile(t, dir, "img/logo.png", "png")
	srv, err := New(Config{Addr: ":0", OutputDir: dir}, builder, nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv, dir
}

func get(t *testing.T, srv *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestServerServesGeneratedFiles(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	cases := []struct {
		path   string
		status int
		body   string
	}{
		{path: "/", status: http.StatusOK, body: "<h1>home</h1>"},
		{path: "/posts/plantuml/", status: http.StatusOK, body: "<h1>plantuml</h1>"},
		{path: "/tags/uml", status: http.StatusOK, body: "<h1>uml</h1>"},
		{path: "/img/logo.png", status: http.StatusOK, body: "png"},
		{path: "/missing/", status: http.StatusNotFound, body: "<h1>404</h1>"},
		{path: "/../etc/passwd", status: http.StatusNotFound, body: "<h1>404</h1>"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			rec := get(t, srv, tc.path)
			if rec.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, rec.Code)
			}
			if rec.Body.String() != tc.body {
				t.Fatalf("expected body %q, got %q", tc.body, rec.Body.String())
			}
			if rec.Header().Get("Cache-Control") != "no-cache, no-store, must-revalidate" {
				t.Fatalf("expected no-cache headers, got %q", rec.Header().Get("Cache-Control"))
			}
		})
	}
}

func TestServerHealthReportsLastBuild(t *testing.T) {
	builder := &fakeBuilder{result: &generator.BuildResult{BuildID: "b1", PagesBuilt: 26, PagesSkipped: 0}}
	srv, _ := newTestServer(t, builder)

	var body healthResponse
	rec := get(t, srv, healthPath)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if body.Status != "ok" || body.LastBuild != nil {
		t.Fatalf("unexpected health before build %+v", body)
	}

	if err := srv.Rebuild(context.Background()); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	rec = get(t, srv, healthPath)
	body = healthResponse{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if body.LastBuild == nil || body.LastBuild.BuildID != "b1" || body.LastBuild.Pages != 26 {
		t.Fatalf("unexpected last build %+v", body.LastBuild)
	}
}

func TestServerRebuildRecordsFailure(t *testing.T) {
	builder := &fakeBuilder{err: errors.New("manifest missing")}
	srv, _ := newTestServer(t, builder)

	if err := srv.Rebuild(context.Background()); err == nil {
		t.Fatal("expected rebuild error")
	}
	last := srv.LastBuild()
	if last == nil || last.Error != "manifest missing" {
		t.Fatalf("expected failure to be recorded, got %+v", last)
	}
}

func TestNewRequiresOutputDir(t *testing.T) {
	if _, err := New(Config{}, nil, nil); !errors.Is(err, errOutputDirRequired) {
		t.Fatalf("expected errOutputDirRequired, got %v", err)
	}
}

func TestDebouncerCoalescesTriggers(t *testing.T) {
	var mu sync.Mutex
	fired := 0
	done := make(chan struct{}, 4)
	deb := newDebouncer(30*time.Millisecond, func() {
		mu.Lock()
		fired++
		mu.Unlock()
		done <- struct{}{}
	})
	defer deb.Stop()

	for i := 0; i < 5; i++ {
		deb.Trigger()
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("expected debounced call")
	}
	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if fired != 1 {
		t.Fatalf("expected a single call, got %d", fired)
	}
}

func TestWatcherTriggersOnChange(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "posts/en/plantuml.md", "---\nid: 5\n---\n")

	triggered := make(chan struct{}, 8)
	watcher, err := NewWatcher([]string{dir, filepath.Join(dir, "missing")}, 20*time.Millisecond, func() {
		triggered <- struct{}{}
	}, nil)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- watcher.Run(ctx) }()

	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		writeFile(t, dir, "posts/en/plantuml.md", "---\nid: 5\ntitle: changed\n---\n")
		select {
		case <-triggered:
			cancel()
			if err := <-done; err != nil {
				t.Fatalf("watcher run: %v", err)
			}
			return
		case <-tick.C:
		case <-deadline:
			t.Fatal("expected change to trigger a rebuild")
		}
	}
}

func TestNewWatcherRequiresTrigger(t *testing.T) {
	if _, err := NewWatcher(nil, 0, nil, nil); err == nil {
		t.Fatal("expected error without trigger")
	}
}
