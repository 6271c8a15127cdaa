package i18n

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Tables maps a language to its translation keys.
type Tables map[string]map[string]string

//go:embed translations.yaml
var defaultTablesData []byte

// DefaultTables returns the built-in en and pl tables.
func DefaultTables() (Tables, error) {
	tables, err := decodeTables(bytes.NewReader(defaultTablesData))
	if err != nil {
		return nil, fmt.Errorf("i18n: decode embedded tables: %w", err)
	}
	return tables, nil
}

// Loader reads translation tables from a YAML file.
type Loader struct {
	path string
}

// NewLoader constructs a loader for path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load parses the configured file.
func (l *Loader) Load(ctx context.Context) (Tables, error) {
	if l == nil || l.path == "" {
		return nil, errors.New("i18n: loader path cannot be empty")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("i18n: open tables %q: %w", l.path, err)
	}
	defer file.Close()

	return decodeTables(file)
}

// Merge overlays override onto base key by key and returns a new value.
func Merge(base, override Tables) Tables {
	out := make(Tables, len(base)+len(override))
	for lang, keys := range base {
		out[lang] = make(map[string]string, len(keys))
		for key, value := range keys {
			out[lang][key] = value
		}
	}
	for lang, keys := range override {
		if out[lang] == nil {
			out[lang] = make(map[string]string, len(keys))
		}
		for key, value := range keys {
			out[lang][key] = value
		}
	}
	return out
}

func decodeTables(r io.Reader) (Tables, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var tables Tables
	if err := decoder.Decode(&tables); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if tables == nil {
		tables = Tables{}
	}
	return tables, nil
}
