package ledger

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-devpot/internal/generator"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

var _ generator.Ledger = (*Store)(nil)

func newTestStore(t *testing.T, name string) *Store {
	t.Helper()

	sqldb, err := sql.Open("sqlite3", "file:"+name+"?mode=memory&cache=shared&_fk=1")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	store := New(db)
	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store
}

func TestStoreRecordsChecksums(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, "ledger_checksums")

	started := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	buildID, err := store.Begin(ctx, started)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if buildID == "" {
		t.Fatalf("expected build id")
	}

	checksum, err := store.Checksum(ctx, "index.html")
	if err != nil {
		t.Fatalf("checksum: %v", err)
	}
	if checksum != "" {
		t.Fatalf("expected empty checksum for unknown path, got %q", checksum)
	}

	if err := store.Record(ctx, buildID, "index.html", "en", "abc"); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := store.Record(ctx, buildID, "/index.html", "en", "def"); err != nil {
		t.Fatalf("record update: %v", err)
	}

	checksum, err = store.Checksum(ctx, "index.html")
	if err != nil {
		t.Fatalf("checksum: %v", err)
	}
	if checksum != "def" {
		t.Fatalf("expected updated checksum, got %q", checksum)
	}

	artifact, err := store.Artifact(ctx, "index.html")
	if err != nil {
		t.Fatalf("artifact: %v", err)
	}
	if artifact.Path != "index.html" || artifact.Lang != "en" || artifact.BuildID != buildID {
		t.Fatalf("unexpected artifact %+v", artifact)
	}
}

func TestStoreRecordRequiresPath(t *testing.T) {
	store := newTestStore(t, "ledger_path")
	err := store.Record(context.Background(), "build", " / ", "en", "abc")
	if !errors.Is(err, ErrPathRequired) {
		t.Fatalf("expected ErrPathRequired, got %v", err)
	}
}

func TestStoreFinishAndLast(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, "ledger_finish")

	if _, err := store.Last(ctx); !errors.Is(err, ErrNoBuilds) {
		t.Fatalf("expected ErrNoBuilds, got %v", err)
	}

	first, err := store.Begin(ctx, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("begin first: %v", err)
	}
	second, err := store.Begin(ctx, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("begin second: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct build ids")
	}

	finished := time.Date(2024, 2, 1, 0, 1, 0, 0, time.UTC)
	if err := store.Finish(ctx, second, finished, 26, 1); err != nil {
		t.Fatalf("finish: %v", err)
	}

	last, err := store.Last(ctx)
	if err != nil {
		t.Fatalf("last: %v", err)
	}
	if last.ID != second {
		t.Fatalf("expected last build %s, got %s", second, last.ID)
	}
	if !last.Finished() || last.Pages != 26 || last.Failures != 1 {
		t.Fatalf("unexpected build totals %+v", last)
	}
	if !last.FinishedAt.Equal(finished) {
		t.Fatalf("expected finished at %s, got %s", finished, last.FinishedAt)
	}
}

func TestStoreFinishUnknownBuild(t *testing.T) {
	store := newTestStore(t, "ledger_unknown")
	err := store.Finish(context.Background(), "missing", time.Now(), 0, 0)
	if !errors.Is(err, ErrBuildNotFound) {
		t.Fatalf("expected ErrBuildNotFound, got %v", err)
	}
}

func TestStoreReset(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, "ledger_reset")

	buildID, err := store.Begin(ctx, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := store.Record(ctx, buildID, "pl/index.html", "pl", "abc"); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := store.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	checksum, err := store.Checksum(ctx, "pl/index.html")
	if err != nil {
		t.Fatalf("checksum: %v", err)
	}
	if checksum != "" {
		t.Fatalf("expected artifacts to be cleared, got %q", checksum)
	}
	if _, err := store.Last(ctx); err != nil {
		t.Fatalf("expected build history to survive reset: %v", err)
	}
}

func TestOpenCreatesSchema(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, "file:ledger_open?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	if _, err := store.Begin(ctx, time.Now()); err != nil {
		t.Fatalf("begin after open: %v", err)
	}
	if _, err := Open(ctx, "  "); err == nil {
		t.Fatalf("expected error for blank dsn")
	}
}
