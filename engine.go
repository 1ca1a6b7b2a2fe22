// Package formlint validates, normalizes, and auto-corrects form field
// definitions and layout trees for kintone-style applications. The root
// package wires the per-concern validators together behind a single
// Engine; callers that need finer control can use the pkg/ packages
// directly.
package formlint

import (
	"sort"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formlint/pkg/fieldcheck"
	"github.com/goliatone/go-formlint/pkg/layoutcheck"
	"github.com/goliatone/go-formlint/pkg/organizer"
	"github.com/goliatone/go-formlint/pkg/schema"
	"github.com/goliatone/go-formlint/pkg/units"
)

// Notice re-exports the shared advisory type so callers only import the
// root package for common flows.
type Notice = schema.Notice

// FieldResult pairs a corrected field definition with the notices its
// validation produced.
type FieldResult struct {
	Code    string
	Field   schema.FieldDefinition
	Notices []Notice
}

// Engine composes the field validator, layout validator, and layout
// organizer over a shared configuration.
type Engine struct {
	fields    *fieldcheck.Validator
	layout    *layoutcheck.Validator
	organizer *organizer.Organizer
}

// Option customizes an Engine during construction.
type Option func(*settings)

type settings struct {
	unitTables     *units.Tables
	fieldRules     *fieldcheck.Rules
	organizerRules *organizer.Rules
	labelPolicy    *bluemonday.Policy
}

// WithUnitTables replaces the built-in unit symbol tables used for
// unit-position correction, e.g. tables loaded via units.LoadTables.
func WithUnitTables(tables units.Tables) Option {
	return func(s *settings) { s.unitTables = &tables }
}

// WithFieldRules overrides the platform rule set the field validator
// enforces.
func WithFieldRules(rules fieldcheck.Rules) Option {
	return func(s *settings) { s.fieldRules = &rules }
}

// WithOrganizerRules overrides the reconciliation rule set.
func WithOrganizerRules(rules organizer.Rules) Option {
	return func(s *settings) { s.organizerRules = &rules }
}

// WithLabelPolicy overrides the sanitizer applied to label markup in
// layout trees.
func WithLabelPolicy(policy *bluemonday.Policy) Option {
	return func(s *settings) { s.labelPolicy = policy }
}

// New builds an Engine. Options are applied in order; omitted concerns
// fall back to the platform defaults.
func New(options ...Option) *Engine {
	var cfg settings
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	resolver := units.Default()
	if cfg.unitTables != nil {
		resolver = units.New(*cfg.unitTables)
	}
	fieldRules := fieldcheck.DefaultRules()
	if cfg.fieldRules != nil {
		fieldRules = *cfg.fieldRules
	}
	organizerRules := organizer.DefaultRules()
	if cfg.organizerRules != nil {
		organizerRules = *cfg.organizerRules
	}

	return &Engine{
		fields:    fieldcheck.New(fieldRules, resolver),
		layout:    layoutcheck.New(cfg.labelPolicy),
		organizer: organizer.New(organizerRules),
	}
}

// ValidateField validates and auto-corrects a single field definition.
func (e *Engine) ValidateField(field schema.FieldDefinition) (schema.FieldDefinition, []Notice, error) {
	return e.fields.Validate(field)
}

// ValidateFields validates every definition in the properties map,
// including subtable member fields. It stops at the first invalid field
// so callers get a single actionable error; the returned map holds the
// corrected definitions.
func (e *Engine) ValidateFields(fields schema.FieldProperties) (schema.FieldProperties, []FieldResult, error) {
	out := make(schema.FieldProperties, len(fields))
	results := make([]FieldResult, 0, len(fields))

	for _, code := range sortedCodes(fields) {
		corrected, notices, err := e.fields.Validate(fields[code])
		if err != nil {
			return nil, results, err
		}
		if corrected.Type == schema.FieldTypeSubtable && len(corrected.Fields) > 0 {
			members, memberResults, err := e.ValidateFields(corrected.Fields)
			if err != nil {
				return nil, results, err
			}
			corrected.Fields = members
			for _, r := range memberResults {
				results = append(results, FieldResult{
					Code:    code + "." + r.Code,
					Field:   r.Field,
					Notices: r.Notices,
				})
			}
		}
		out[code] = corrected
		results = append(results, FieldResult{Code: code, Field: corrected, Notices: notices})
	}
	return out, results, nil
}

// ValidateLayout validates and normalizes a layout tree.
func (e *Engine) ValidateLayout(layout []schema.Node) ([]schema.Node, []Notice, error) {
	return e.layout.Validate(layout)
}

// Reconcile places every unplaced field into the layout and prunes
// entries that reference fields no longer defined. With autoFix false it
// only reports what would change.
func (e *Engine) Reconcile(layout []schema.Node, fields schema.FieldProperties, autoFix bool) ([]schema.Node, []string) {
	return e.organizer.Reconcile(layout, fields, autoFix)
}

// CorrectWidths widens layout entries below the minimum width their
// field definition calls for.
func (e *Engine) CorrectWidths(layout []schema.Node, fields schema.FieldProperties) ([]schema.Node, []string) {
	return e.organizer.CorrectWidths(layout, fields)
}

// InsertElement places a new element into the layout at the requested
// position.
func (e *Engine) InsertElement(layout []schema.Node, element schema.Node, pos schema.Position) ([]schema.Node, error) {
	return e.organizer.InsertAt(layout, element, pos)
}

// Check runs the full pipeline: field validation, layout validation,
// reconciliation, and width correction. It is the one-call entry point
// for linting a complete app shape.
func (e *Engine) Check(fields schema.FieldProperties, layout []schema.Node, autoFix bool) (schema.FieldProperties, []schema.Node, []Notice, error) {
	correctedFields, results, err := e.ValidateFields(fields)
	if err != nil {
		return nil, nil, nil, err
	}
	var notices []Notice
	for _, r := range results {
		notices = append(notices, r.Notices...)
	}

	correctedLayout, layoutNotices, err := e.ValidateLayout(layout)
	if err != nil {
		return nil, nil, notices, err
	}
	notices = append(notices, layoutNotices...)

	correctedLayout, warnings := e.Reconcile(correctedLayout, correctedFields, autoFix)
	for _, w := range warnings {
		notices = append(notices, schema.Warnf("%s", w))
	}

	correctedLayout, guidance := e.CorrectWidths(correctedLayout, correctedFields)
	for _, g := range guidance {
		notices = append(notices, schema.Infof("%s", g))
	}

	return correctedFields, correctedLayout, notices, nil
}

func sortedCodes(fields schema.FieldProperties) []string {
	codes := make([]string, 0, len(fields))
	for code := range fields {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
