package generator

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

type writeCategory string

const (
	categoryPage     writeCategory = "page"
	categoryStatic   writeCategory = "static"
	categorySitemap  writeCategory = "sitemap"
	categoryRobots   writeCategory = "robots"
	categoryFeed     writeCategory = "feed"
	categorySearch   writeCategory = "search"
	categoryManifest writeCategory = "manifest"
)

// WriteFileRequest describes a file write routed through the artifact writer.
// Paths are slash separated and relative to the output directory.
type WriteFileRequest struct {
	Path        string
	Content     io.Reader
	Size        int64
	Lang        string
	Category    writeCategory
	ContentType string
	Checksum    string
}

// ArtifactWriter stores generated files under the output directory.
type ArtifactWriter interface {
	EnsureDir(ctx context.Context, path string) error
	WriteFile(ctx context.Context, req WriteFileRequest) error
	ReadFile(ctx context.Context, path string) ([]byte, error)
	Exists(ctx context.Context, path string) (bool, error)
	RemoveAll(ctx context.Context, path string) error
}

var (
	errWriteContentRequired = errors.New("generator: write requires content reader")
	errWritePathRequired    = errors.New("generator: write requires path")
)

// NewDirWriter returns a writer rooted at dir on the local filesystem.
func NewDirWriter(dir string) ArtifactWriter {
	return &dirWriter{root: filepath.Clean(dir)}
}

type dirWriter struct {
	root string
}

func (w *dirWriter) resolve(rel string) string {
	rel = strings.TrimLeft(strings.TrimSpace(rel), "/")
	if rel == "" || rel == "." {
		return w.root
	}
	return filepath.Join(w.root, filepath.FromSlash(path.Clean("/"+rel)))
}

func (w *dirWriter) EnsureDir(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.MkdirAll(w.resolve(dir), 0o755)
}

func (w *dirWriter) WriteFile(ctx context.Context, req WriteFileRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if req.Content == nil {
		return errWriteContentRequired
	}
	if strings.TrimSpace(req.Path) == "" {
		return errWritePathRequired
	}
	target := w.resolve(req.Path)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	file, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(file, req.Content); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

func (w *dirWriter) ReadFile(ctx context.Context, rel string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(w.resolve(rel))
}

func (w *dirWriter) Exists(ctx context.Context, rel string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	_, err := os.Stat(w.resolve(rel))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (w *dirWriter) RemoveAll(ctx context.Context, rel string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.RemoveAll(w.resolve(rel))
}

// NewMemoryWriter keeps artifacts in memory. Preview and tests use it to
// inspect a build without touching the disk.
func NewMemoryWriter() *MemoryWriter {
	return &MemoryWriter{files: map[string][]byte{}}
}

// MemoryWriter is an in-memory ArtifactWriter.
type MemoryWriter struct {
	mu    sync.RWMutex
	files map[string][]byte
}

func memoryKey(rel string) string {
	rel = strings.TrimLeft(strings.TrimSpace(rel), "/")
	if rel == "" {
		return "."
	}
	return path.Clean(rel)
}

func (m *MemoryWriter) EnsureDir(context.Context, string) error { return nil }

func (m *MemoryWriter) WriteFile(ctx context.Context, req WriteFileRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if req.Content == nil {
		return errWriteContentRequired
	}
	if strings.TrimSpace(req.Path) == "" {
		return errWritePathRequired
	}
	data, err := io.ReadAll(req.Content)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.files[memoryKey(req.Path)] = data
	m.mu.Unlock()
	return nil
}

func (m *MemoryWriter) ReadFile(_ context.Context, rel string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[memoryKey(rel)]
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: rel, Err: fs.ErrNotExist}
	}
	return bytes.Clone(data), nil
}

func (m *MemoryWriter) Exists(_ context.Context, rel string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[memoryKey(rel)]
	return ok, nil
}

func (m *MemoryWriter) RemoveAll(_ context.Context, rel string) error {
	key := memoryKey(rel)
	m.mu.Lock()
	defer m.mu.Unlock()
	for name := range m.files {
		if key == "." || name == key || strings.HasPrefix(name, key+"/") {
			delete(m.files, name)
		}
	}
	return nil
}

// Paths lists the stored artifacts in lexical order.
func (m *MemoryWriter) Paths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	paths := make([]string, 0, len(m.files))
	for name := range m.files {
		paths = append(paths, name)
	}
	sort.Strings(paths)
	return paths
}
