package i18n

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Vars are the placeholder values interpolated into a translation.
type Vars = map[string]any

// Translator resolves keys per language with a fallback to the default
// language and finally to the key itself.
type Translator struct {
	defaultLang string
	site        map[string]string
	tables      Tables
}

// New builds a translator over tables.
func New(cfg Config, tables Tables) *Translator {
	site := make(map[string]string, len(cfg.Site))
	for key, value := range cfg.Site {
		site[key] = value
	}
	return &Translator{
		defaultLang: cfg.DefaultLang,
		site:        site,
		tables:      tables,
	}
}

// NewDefault builds a translator over the embedded tables.
func NewDefault(cfg Config) (*Translator, error) {
	tables, err := DefaultTables()
	if err != nil {
		return nil, err
	}
	return New(cfg, tables), nil
}

// DefaultLang reports the fallback language.
func (t *Translator) DefaultLang() string {
	return t.defaultLang
}

// Langs lists the languages that have a table, sorted.
func (t *Translator) Langs() []string {
	langs := make([]string, 0, len(t.tables))
	for lang := range t.tables {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// T translates key for lang, interpolating {{name}} placeholders from vars.
// A "count" var selects the plural form key_0, key_1 or key_2 when present.
func (t *Translator) T(lang, key string, vars Vars) string {
	value, ok := t.lookup(lang, key)
	if count, hasCount := vars["count"]; hasCount {
		if n, isInt := toInt(count); isInt {
			if numeral, found := t.lookup(lang, key+"_"+PluralForm(n)); found {
				value, ok = numeral, true
			}
		}
	}
	if !ok {
		return key
	}
	if when, isDate := vars["date"].(time.Time); isDate {
		return t.formatDateValue(lang, value, when)
	}
	return interpolate(value, vars)
}

// Path translates a route segment such as "posts" or "tags".
func (t *Translator) Path(lang, part string) string {
	return t.T(lang, part, nil)
}

// Count is a shorthand for T with a count var.
func (t *Translator) Count(lang, key string, count int) string {
	return t.T(lang, key, Vars{"count": count})
}

// Has reports whether lang or the default language define key.
func (t *Translator) Has(lang, key string) bool {
	_, ok := t.lookup(lang, key)
	return ok
}

func (t *Translator) lookup(lang, key string) (string, bool) {
	if value := t.tables[lang][key]; value != "" {
		return value, true
	}
	if value := t.tables[t.defaultLang][key]; value != "" {
		return value, true
	}
	if value := t.site[key]; value != "" {
		return value, true
	}
	return "", false
}

// formatDateValue handles values shaped like "{{date, month+day}}".
func (t *Translator) formatDateValue(lang, value string, when time.Time) string {
	_, rest, found := strings.Cut(value, ",")
	if !found {
		return interpolate(value, Vars{"date": when})
	}
	style, _, _ := strings.Cut(rest, "}")
	return FormatDate(lang, when, DateStyle(strings.TrimSpace(style)))
}

func interpolate(value string, vars Vars) string {
	for key, raw := range vars {
		value = strings.ReplaceAll(value, "{{"+key+"}}", fmt.Sprint(raw))
	}
	return value
}

func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case int32:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
