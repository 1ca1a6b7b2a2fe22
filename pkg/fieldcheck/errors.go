package fieldcheck

import (
	"fmt"
	"strings"
)

// Kind classifies a field validation failure.
type Kind string

const (
	KindFieldCodeReserved           Kind = "field-code-reserved"
	KindFieldCodeInvalidCharacters  Kind = "field-code-invalid-characters"
	KindTypeUnknown                 Kind = "field-type-unknown"
	KindTypeConfigMismatch          Kind = "field-type-config-mismatch"
	KindOptionsMissingOrMalformed   Kind = "options-missing-or-malformed"
	KindCalcExpressionEmpty         Kind = "calc-expression-empty"
	KindCalcUnsupportedFunction     Kind = "calc-expression-unsupported-function"
	KindCalcCrossTableReference     Kind = "calc-expression-cross-table-reference"
	KindCalcFormatInvalid           Kind = "calc-format-invalid"
	KindLinkProtocolInvalid         Kind = "link-protocol-invalid"
	KindReferenceTableMisconfigured Kind = "reference-table-misconfigured"
	KindLookupMisconfigured         Kind = "lookup-misconfigured"
	KindNumericBoundsInvalid        Kind = "numeric-bounds-invalid"
	KindUnitPositionInvalid         Kind = "unit-position-invalid"
)

// Error reports an unrecoverable field definition problem. Message is
// self-contained: it names the offending field, the violated rule, and,
// when one can be derived mechanically, Suggestion carries a corrected
// example.
type Error struct {
	Kind       Kind
	Field      string
	Message    string
	Suggestion string
}

func (e *Error) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = "invalid field definition"
	}
	if e.Field == "" {
		return "fieldcheck: " + msg
	}
	return fmt.Sprintf("fieldcheck: field %q: %s", e.Field, msg)
}

func newError(kind Kind, field, format string, args ...any) *Error {
	return &Error{Kind: kind, Field: field, Message: fmt.Sprintf(format, args...)}
}
