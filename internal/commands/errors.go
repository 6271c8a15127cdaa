package commands

import (
	"context"
	"errors"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

type failureKind string

const (
	failureInvalid  failureKind = "INVALID"
	failureCanceled failureKind = "CANCELED"
	failureTimeout  failureKind = "TIMEOUT"
	failureFailed   failureKind = "FAILED"
)

// failureCode names a failure of operation, so "site.build" timing out
// reports SITE_BUILD_TIMEOUT.
func failureCode(operation string, kind failureKind) string {
	prefix := strings.ToUpper(strings.NewReplacer(".", "_", "-", "_", " ", "_").Replace(strings.TrimSpace(operation)))
	if prefix == "" {
		prefix = "COMMAND"
	}
	return prefix + "_" + string(kind)
}

func contextFailure(err error) failureKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return failureTimeout
	}
	return failureCanceled
}

// classify tags err with the category and text code of kind. Errors that
// already carry a category keep it.
func classify(err error, operation string, kind failureKind) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	category := goerrors.CategoryCommand
	message := "command failed"
	switch kind {
	case failureInvalid:
		category = goerrors.CategoryValidation
		message = "command rejected"
	case failureTimeout:
		message = "command timed out"
	case failureCanceled:
		message = "command canceled"
	}
	if operation != "" {
		message = operation + ": " + message
	}
	wrapped := goerrors.Wrap(err, category, message).WithTextCode(failureCode(operation, kind))
	if kind == failureCanceled {
		wrapped = wrapped.WithSeverity(goerrors.SeverityWarning)
	}
	return wrapped
}

// ErrorCode returns the text code attached to err, or "" when it has none.
func ErrorCode(err error) string {
	var tagged *goerrors.Error
	if goerrors.As(err, &tagged) {
		return tagged.TextCode
	}
	return ""
}
