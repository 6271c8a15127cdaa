package logging

import "context"

type scopeKey struct{}

// BuildScope names the build, language and route a log entry belongs to.
// Loggers that honour WithContext print it ahead of the entry fields.
type BuildScope struct {
	BuildID string
	Lang    string
	Route   string
}

// WithBuildScope narrows the scope carried by ctx. Empty values keep the
// outer value, so a route scope inherits the build id.
func WithBuildScope(ctx context.Context, scope BuildScope) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	merged := BuildScopeFrom(ctx)
	if scope.BuildID != "" {
		merged.BuildID = scope.BuildID
	}
	if scope.Lang != "" {
		merged.Lang = scope.Lang
	}
	if scope.Route != "" {
		merged.Route = scope.Route
	}
	return context.WithValue(ctx, scopeKey{}, merged)
}

// BuildScopeFrom returns the scope carried by ctx, zero when there is none.
func BuildScopeFrom(ctx context.Context) BuildScope {
	if ctx == nil {
		return BuildScope{}
	}
	scope, _ := ctx.Value(scopeKey{}).(BuildScope)
	return scope
}

// IsZero reports whether no part of the scope is set.
func (s BuildScope) IsZero() bool {
	return s == BuildScope{}
}

// Fields lists the set parts of the scope as log fields.
func (s BuildScope) Fields() map[string]any {
	fields := map[string]any{}
	if s.BuildID != "" {
		fields[FieldBuildID] = s.BuildID
	}
	if s.Lang != "" {
		fields[fieldLang] = s.Lang
	}
	if s.Route != "" {
		fields[FieldRoute] = s.Route
	}
	return fields
}
