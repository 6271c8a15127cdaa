package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/goliatone/go-devpot/internal/search"
)

// copyStatic mirrors the static directory into the output before the
// manifest and robots rewrites run.
func (s *service) copyStatic(ctx context.Context, writer ArtifactWriter) (int, error) {
	if s.deps.Static == nil {
		return 0, nil
	}
	copied := 0
	err := fs.WalkDir(s.deps.Static, ".", func(name string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() {
			return writer.EnsureDir(ctx, name)
		}
		data, err := fs.ReadFile(s.deps.Static, name)
		if err != nil {
			return err
		}
		if err := writer.WriteFile(ctx, WriteFileRequest{
			Path:        name,
			Content:     bytes.NewReader(data),
			Size:        int64(len(data)),
			Category:    categoryStatic,
			ContentType: detectContentType(name),
			Checksum:    computeHash(data),
		}); err != nil {
			return err
		}
		copied++
		return nil
	})
	if err != nil {
		return copied, fmt.Errorf("generator: copy static files: %w", err)
	}
	return copied, nil
}

// writeSearchIndexes stores the plain text documents of every language for
// the search page.
func (s *service) writeSearchIndexes(ctx context.Context, writer ArtifactWriter, site *Site, langs []string) error {
	for _, lang := range langs {
		docs := search.BuildIndex(site.Routes.Variant(lang))
		data, err := json.Marshal(docs)
		if err != nil {
			return fmt.Errorf("generator: encode search index for %s: %w", lang, err)
		}
		if err := writer.WriteFile(ctx, WriteFileRequest{
			Path:        searchIndexFile(lang),
			Content:     bytes.NewReader(data),
			Size:        int64(len(data)),
			Lang:        lang,
			Category:    categorySearch,
			ContentType: "application/json",
			Checksum:    computeHash(data),
		}); err != nil {
			return fmt.Errorf("generator: write search index for %s: %w", lang, err)
		}
	}
	return nil
}

func detectContentType(name string) string {
	switch strings.ToLower(strings.TrimPrefix(path.Ext(name), ".")) {
	case "html":
		return "text/html; charset=utf-8"
	case "css":
		return "text/css"
	case "js":
		return "application/javascript"
	case "json":
		return "application/json"
	case "webmanifest":
		return "application/manifest+json"
	case "txt":
		return "text/plain; charset=utf-8"
	case "xml":
		return "application/xml"
	case "svg":
		return "image/svg+xml"
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	case "ico":
		return "image/x-icon"
	default:
		return "application/octet-stream"
	}
}
