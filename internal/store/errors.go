package store

import (
	"fmt"
	"strings"
)

// ValidationError reports a rejected mutation input: a bad shape enum, a
// non-positive dimension, an out-of-range rotation or a malformed update
// payload. It is always surfaced synchronously to the caller.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation: " + e.Reason
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

// NotFoundError reports an unknown entity or project. KnownIDs carries every
// id present in the collection so callers can see what the store actually
// holds when an identifier fails to resolve.
type NotFoundError struct {
	Kind     string // "panel", "patch", "destructive test", "layout"
	ID       string
	KnownIDs []string
}

func (e *NotFoundError) Error() string {
	if len(e.KnownIDs) == 0 {
		return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
	}
	return fmt.Sprintf("%s %q not found (known ids: %s)", e.Kind, e.ID, strings.Join(e.KnownIDs, ", "))
}

func notFound(kind, id string, known []string) error {
	return &NotFoundError{Kind: kind, ID: id, KnownIDs: known}
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
