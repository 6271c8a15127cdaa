package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-devpot/internal/identity"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

var (
	// ErrBuildNotFound is returned when finishing an unknown build.
	ErrBuildNotFound = errors.New("ledger: build not found")
	// ErrNoBuilds is returned by Last on an empty ledger.
	ErrNoBuilds = errors.New("ledger: no builds recorded")
	// ErrPathRequired guards artifact writes without a path.
	ErrPathRequired = errors.New("ledger: artifact path required")
)

// Build is one generator run.
type Build struct {
	bun.BaseModel `bun:"table:devpot_builds,alias:b"`

	ID         string    `bun:",pk"`
	StartedAt  time.Time `bun:"started_at,notnull"`
	FinishedAt time.Time `bun:"finished_at,nullzero"`
	Pages      int       `bun:"pages,notnull,default:0"`
	Failures   int       `bun:"failures,notnull,default:0"`
}

// Finished reports whether the build reached its end.
func (b Build) Finished() bool {
	return !b.FinishedAt.IsZero()
}

// Artifact is the last recorded state of one output file.
type Artifact struct {
	bun.BaseModel `bun:"table:devpot_artifacts,alias:a"`

	ID        string    `bun:",pk"`
	Path      string    `bun:"path,notnull,unique"`
	Lang      string    `bun:"lang"`
	Checksum  string    `bun:"checksum,notnull"`
	BuildID   string    `bun:"build_id,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

// Store keeps build history and artifact checksums in SQL.
type Store struct {
	db     *bun.DB
	closer func() error
}

// Open connects to a SQLite database and ensures the schema exists.
func Open(ctx context.Context, dsn string) (*Store, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, errors.New("ledger: dsn required")
	}
	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("ledger: open %s: %w", dsn, err)
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	store := &Store{db: db, closer: db.Close}
	if err := store.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// New wraps an existing connection. The caller owns its lifecycle.
func New(db *bun.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the ledger tables when missing.
func (s *Store) Migrate(ctx context.Context) error {
	for _, model := range []any{(*Build)(nil), (*Artifact)(nil)} {
		if _, err := s.db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("ledger: migrate: %w", err)
		}
	}
	return nil
}

// Begin opens a build and returns its id.
func (s *Store) Begin(ctx context.Context, startedAt time.Time) (string, error) {
	startedAt = startedAt.UTC()
	build := Build{
		ID:        identity.BuildUUID(startedAt).String(),
		StartedAt: startedAt,
	}
	if _, err := s.db.NewInsert().
		Model(&build).
		On("CONFLICT (id) DO UPDATE").
		Set("finished_at = NULL").
		Set("pages = 0").
		Set("failures = 0").
		Exec(ctx); err != nil {
		return "", fmt.Errorf("ledger: begin build: %w", err)
	}
	return build.ID, nil
}

// Checksum returns the last checksum recorded for path, or an empty string
// when the path was never written.
func (s *Store) Checksum(ctx context.Context, path string) (string, error) {
	artifact, err := s.Artifact(ctx, path)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return artifact.Checksum, nil
}

// Artifact loads the record for path.
func (s *Store) Artifact(ctx context.Context, path string) (*Artifact, error) {
	var artifact Artifact
	err := s.db.NewSelect().
		Model(&artifact).
		Where("id = ?", identity.ArtifactUUID(path).String()).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("ledger: load artifact %s: %w", path, err)
	}
	return &artifact, nil
}

// Record stores the checksum written for path by buildID.
func (s *Store) Record(ctx context.Context, buildID, path, lang, checksum string) error {
	path = strings.Trim(strings.TrimSpace(path), "/")
	if path == "" {
		return ErrPathRequired
	}
	artifact := Artifact{
		ID:        identity.ArtifactUUID(path).String(),
		Path:      path,
		Lang:      lang,
		Checksum:  checksum,
		BuildID:   buildID,
		UpdatedAt: time.Now().UTC(),
	}
	if _, err := s.db.NewInsert().
		Model(&artifact).
		On("CONFLICT (id) DO UPDATE").
		Set("lang = EXCLUDED.lang").
		Set("checksum = EXCLUDED.checksum").
		Set("build_id = EXCLUDED.build_id").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx); err != nil {
		return fmt.Errorf("ledger: record %s: %w", path, err)
	}
	return nil
}

// Finish closes buildID with its totals.
func (s *Store) Finish(ctx context.Context, buildID string, finishedAt time.Time, pages, failures int) error {
	build := Build{
		ID:         buildID,
		FinishedAt: finishedAt.UTC(),
		Pages:      pages,
		Failures:   failures,
	}
	res, err := s.db.NewUpdate().
		Model(&build).
		Column("finished_at", "pages", "failures").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("ledger: finish build %s: %w", buildID, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("%w: %s", ErrBuildNotFound, buildID)
	}
	return nil
}

// Last returns the most recently started build.
func (s *Store) Last(ctx context.Context) (*Build, error) {
	var build Build
	err := s.db.NewSelect().
		Model(&build).
		Order("started_at DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoBuilds
		}
		return nil, fmt.Errorf("ledger: load last build: %w", err)
	}
	return &build, nil
}

// Reset forgets every artifact so the next incremental build rewrites all
// pages. Build history is kept.
func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.db.NewDelete().Model((*Artifact)(nil)).Where("1 = 1").Exec(ctx); err != nil {
		return fmt.Errorf("ledger: reset artifacts: %w", err)
	}
	return nil
}

// Close releases the connection opened by Open.
func (s *Store) Close() error {
	if s == nil || s.closer == nil {
		return nil
	}
	return s.closer()
}
