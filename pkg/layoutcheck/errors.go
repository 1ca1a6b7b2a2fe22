package layoutcheck

import (
	"fmt"
	"strings"
)

// Kind classifies a layout validation failure.
type Kind string

const (
	KindStructuralViolation Kind = "layout-structural-violation"
	KindMissingRequiredCode Kind = "layout-node-missing-required-code"
	KindInvalidNodeType     Kind = "layout-node-type-invalid"
	KindInvalidSize         Kind = "layout-size-invalid"
	KindInvalidPosition     Kind = "layout-position-invalid"
)

// Error reports a layout tree that the remote platform would reject.
// Path locates the offending node ("layout[2].fields[0]"); Rule quotes
// the containment rule that was violated.
type Error struct {
	Kind    Kind
	Path    string
	Rule    string
	Message string
}

func (e *Error) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = "invalid layout"
	}
	if e.Path == "" {
		return "layoutcheck: " + msg
	}
	return fmt.Sprintf("layoutcheck: %s: %s", e.Path, msg)
}

func newError(kind Kind, path, rule, format string, args ...any) *Error {
	return &Error{Kind: kind, Path: path, Rule: rule, Message: fmt.Sprintf(format, args...)}
}
