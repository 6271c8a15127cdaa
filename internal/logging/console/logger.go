package console

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-devpot/internal/logging"
	"github.com/goliatone/go-devpot/pkg/interfaces"
)

// Level orders entries by severity. The zero value is LevelInfo.
type Level int8

const (
	LevelTrace Level = iota - 2
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = map[Level]string{
	LevelTrace: "TRACE",
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
	LevelFatal: "FATAL",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "INFO"
}

// ParseLevel maps a configured level name to a Level. Unknown names report
// false and yield LevelInfo.
func ParseLevel(value string) (Level, bool) {
	name := strings.ToUpper(strings.TrimSpace(value))
	switch name {
	case "":
		return LevelInfo, true
	case "WARNING":
		return LevelWarn, true
	}
	for level, candidate := range levelNames {
		if candidate == name {
			return level, true
		}
	}
	return LevelInfo, false
}

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// Options configures the console provider. A nil Writer means stdout and a
// nil Clock means time.Now.
type Options struct {
	Writer io.Writer
	Clock  func() time.Time
	Level  Level
}

type provider struct {
	mu    sync.Mutex
	out   io.Writer
	clock func() time.Time
	level Level
}

// NewProvider returns a provider writing one line per entry:
//
//	<time> <LEVEL> <module> [build=<id> lang=<lang> route=<path>] <msg> key=value...
//
// The bracketed build scope is filled from the context bound with
// WithContext and from the build_id, lang and route fields.
func NewProvider(opts Options) interfaces.LoggerProvider {
	p := &provider{out: opts.Writer, clock: opts.Clock, level: opts.Level}
	if p.out == nil {
		p.out = os.Stdout
	}
	if p.clock == nil {
		p.clock = time.Now
	}
	return p
}

func (p *provider) GetLogger(name string) interfaces.Logger {
	return &entryLogger{provider: p, name: name}
}

type entryLogger struct {
	provider *provider
	name     string
	fields   map[string]any
	scope    logging.BuildScope
}

var (
	_ interfaces.Logger       = (*entryLogger)(nil)
	_ interfaces.FieldsLogger = (*entryLogger)(nil)
)

func (l *entryLogger) Trace(msg string, args ...any) { l.write(LevelTrace, msg, args) }
func (l *entryLogger) Debug(msg string, args ...any) { l.write(LevelDebug, msg, args) }
func (l *entryLogger) Info(msg string, args ...any)  { l.write(LevelInfo, msg, args) }
func (l *entryLogger) Warn(msg string, args ...any)  { l.write(LevelWarn, msg, args) }
func (l *entryLogger) Error(msg string, args ...any) { l.write(LevelError, msg, args) }
func (l *entryLogger) Fatal(msg string, args ...any) { l.write(LevelFatal, msg, args) }

func (l *entryLogger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	child := *l
	child.fields = make(map[string]any, len(l.fields)+len(fields))
	maps.Copy(child.fields, l.fields)
	maps.Copy(child.fields, fields)
	return &child
}

// WithContext binds the build scope carried by ctx.
func (l *entryLogger) WithContext(ctx context.Context) interfaces.Logger {
	child := *l
	child.scope = logging.BuildScopeFrom(ctx)
	return &child
}

func (l *entryLogger) write(level Level, msg string, args []any) {
	if level < l.provider.level {
		return
	}
	fields := maps.Clone(l.fields)
	if fields == nil {
		fields = map[string]any{}
	}
	appendArgs(fields, args)

	line := l.format(l.provider.clock(), level, msg, fields)

	l.provider.mu.Lock()
	defer l.provider.mu.Unlock()
	_, _ = io.WriteString(l.provider.out, line)
}

func (l *entryLogger) format(ts time.Time, level Level, msg string, fields map[string]any) string {
	module := l.name
	if value, ok := fields[logging.FieldModule]; ok {
		module = fmt.Sprint(value)
		delete(fields, logging.FieldModule)
	}

	var b strings.Builder
	b.WriteString(ts.UTC().Format(timeLayout))
	fmt.Fprintf(&b, " %-5s", level)
	if module != "" {
		b.WriteByte(' ')
		b.WriteString(module)
	}
	if scope := takeScope(l.scope, fields); len(scope) > 0 {
		b.WriteString(" [")
		b.WriteString(strings.Join(scope, " "))
		b.WriteByte(']')
	}
	b.WriteByte(' ')
	b.WriteString(msg)
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		b.WriteByte(' ')
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(formatValue(fields[key]))
	}
	b.WriteByte('\n')
	return b.String()
}

// takeScope moves the build scope fields out of fields, in build, lang,
// route order. Entry fields win over the bound context.
func takeScope(bound logging.BuildScope, fields map[string]any) []string {
	parts := []struct {
		key, label, fallback string
	}{
		{logging.FieldBuildID, "build", bound.BuildID},
		{"lang", "lang", bound.Lang},
		{logging.FieldRoute, "route", bound.Route},
	}
	var out []string
	for _, part := range parts {
		value := part.fallback
		if raw, ok := fields[part.key]; ok {
			value = fmt.Sprint(raw)
			delete(fields, part.key)
		}
		if value != "" {
			out = append(out, part.label+"="+quote(value))
		}
	}
	return out
}

// appendArgs reads key/value pairs. A trailing value without a key is kept
// under "!extra".
func appendArgs(fields map[string]any, args []any) {
	for len(args) > 0 {
		if len(args) == 1 {
			fields["!extra"] = args[0]
			return
		}
		key, ok := args[0].(string)
		if !ok || key == "" {
			key = fmt.Sprint(args[0])
		}
		fields[key] = args[1]
		args = args[2:]
	}
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return quote(v)
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	case time.Duration:
		return v.Round(time.Millisecond).String()
	case error:
		return quote(v.Error())
	case fmt.Stringer:
		return quote(v.String())
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return quote(fmt.Sprint(v))
	}
}

func quote(value string) string {
	if value == "" || strings.ContainsFunc(value, func(r rune) bool { return r <= ' ' || r == '=' || r == '"' }) {
		return strconv.Quote(value)
	}
	return value
}
