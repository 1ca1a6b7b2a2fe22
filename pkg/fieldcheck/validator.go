// Package fieldcheck validates and normalizes single field definitions
// before they are sent to the remote platform, which rejects a whole
// request on the first violation without saying which field tripped it.
// Recoverable authoring mistakes are repaired on a copy and reported as
// notices; structural problems come back as typed errors carrying a
// corrected example.
package fieldcheck

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formlint/pkg/schema"
	"github.com/goliatone/go-formlint/pkg/units"
)

// Validator checks one field definition at a time. Construct with New;
// the zero value panics on use.
type Validator struct {
	rules    Rules
	resolver *units.Resolver
}

// New builds a Validator from explicit rules and a unit resolver. Nil
// resolver falls back to the default tables.
func New(rules Rules, resolver *units.Resolver) *Validator {
	if resolver == nil {
		resolver = units.Default()
	}
	return &Validator{rules: rules, resolver: resolver}
}

// Default builds a Validator over DefaultRules.
func Default() *Validator {
	return New(DefaultRules(), nil)
}

// Validate returns a corrected copy of the field together with the
// notices explaining every repair. On an unrecoverable violation it
// returns a zero field, the notices gathered so far, and a *Error;
// nothing is partially applied.
func (v *Validator) Validate(field schema.FieldDefinition) (schema.FieldDefinition, []schema.Notice, error) {
	out := field.Clone()
	var notices []schema.Notice

	v.autoCorrectUnitPosition(&out, &notices)

	if out.Code != "" {
		if err := v.ValidateCode(out.Code); err != nil {
			return schema.FieldDefinition{}, notices, err
		}
	}

	if out.Type != "" {
		if !out.Type.Known() {
			return schema.FieldDefinition{}, notices, newError(KindTypeUnknown, out.Code,
				"unknown field type %q; see the platform's field reference for the accepted type tags", out.Type)
		}
		if err := v.checkConfigShape(out); err != nil {
			return schema.FieldDefinition{}, notices, err
		}

		var err error
		switch out.Type {
		case schema.FieldTypeCheckBox, schema.FieldTypeRadioButton,
			schema.FieldTypeDropDown, schema.FieldTypeMultiSelect:
			err = v.validateOptions(&out, &notices)
		case schema.FieldTypeCalc:
			err = v.validateCalc(&out, &notices)
		case schema.FieldTypeLink:
			err = v.validateLink(out)
		case schema.FieldTypeReferenceTable:
			err = v.validateReferenceTable(out)
		case schema.FieldTypeNumber:
			err = v.validateNumber(out)
		case schema.FieldTypeSingleLineText, schema.FieldTypeMultiLineText:
			err = v.validateText(out)
		case schema.FieldTypeDate, schema.FieldTypeTime, schema.FieldTypeDateTime:
			err = v.validateDateTime(out)
		case schema.FieldTypeRichText, schema.FieldTypeFile,
			schema.FieldTypeUserSelect, schema.FieldTypeGroupSelect, schema.FieldTypeOrgSelect,
			schema.FieldTypeLookup, schema.FieldTypeSubtable,
			schema.FieldTypeStatus, schema.FieldTypeStatusAssignee, schema.FieldTypeCategory,
			schema.FieldTypeRelatedRecords, schema.FieldTypeRecordNumber,
			schema.FieldTypeCreator, schema.FieldTypeModifier,
			schema.FieldTypeCreatedTime, schema.FieldTypeUpdatedTime,
			schema.FieldTypeID, schema.FieldTypeRevision,
			schema.FieldTypeLabel, schema.FieldTypeSpacer, schema.FieldTypeHR,
			schema.FieldTypeGroup:
			// No per-type rules beyond the shared checks above.
		}
		if err != nil {
			return schema.FieldDefinition{}, notices, err
		}
	}

	if out.Lookup != nil {
		if err := v.validateLookup(out.Code, out.Lookup); err != nil {
			return schema.FieldDefinition{}, notices, err
		}
		out.RecommendedMinWidth = strconv.Itoa(v.rules.LookupMinWidth)
	}

	return out, notices, nil
}

// ValidateCode checks a field code against the reserved system-field
// codes and the platform's character classes.
func (v *Validator) ValidateCode(code string) error {
	if advice, reserved := v.rules.ReservedCodes[code]; reserved {
		err := newError(KindFieldCodeReserved, code,
			"code %q is reserved for a system field the platform creates automatically "+
				"(record number, creator, modifier, created/updated time, $id, $revision); "+
				"pick a different code", code)
		err.Suggestion = advice
		return err
	}
	if !v.rules.CodePattern.MatchString(code) {
		return newError(KindFieldCodeInvalidCharacters, code,
			"code %q contains characters the platform rejects; codes may use "+
				"hiragana, katakana, kanji, alphanumerics (halfwidth or fullwidth), "+
				"underscore (_ ＿), middle dot (･ ・), and fullwidth currency marks (＄ ￥)", code)
	}
	return nil
}

var unitPositionExamples = map[units.Position]string{
	units.Before: "$100, ¥100",
	units.After:  "100円, 100%, 100kg",
}

func (v *Validator) autoCorrectUnitPosition(field *schema.FieldDefinition, notices *[]schema.Notice) {
	if field.Type != schema.FieldTypeNumber && field.Type != schema.FieldTypeCalc {
		return
	}
	if field.Unit == "" {
		return
	}

	decision := v.resolver.Explain(field.Unit)
	if field.UnitPosition == "" {
		field.UnitPosition = string(decision.Position)
		*notices = append(*notices, schema.Infof(
			"unit %q: unitPosition was not set; defaulted to %q (%s)",
			field.Unit, decision.Position, describeDecision(decision)))
		return
	}
	if field.UnitPosition != string(decision.Position) {
		*notices = append(*notices, schema.Warnf(
			"unit %q usually renders with unitPosition %q (e.g. %s); keeping the configured %q",
			field.Unit, decision.Position, unitPositionExamples[decision.Position], field.UnitPosition))
	}
}

func describeDecision(d units.Decision) string {
	switch d.Rule {
	case units.RuleEmpty:
		return "no unit given"
	case units.RuleTooLong:
		return "units of four or more characters render after the value"
	case units.RuleCompound:
		return "compound units render after the value"
	case units.RuleExactBoth, units.RulePartialBoth:
		return fmt.Sprintf("symbol matches both prefix and suffix tables (%s); suffix wins ties",
			strings.Join(d.Matches, ", "))
	case units.RuleExact:
		return "exact match in the curated symbol table"
	case units.RulePartial:
		return fmt.Sprintf("partial match on %s", strings.Join(d.Matches, ", "))
	default:
		return "no table match; suffix is the default"
	}
}

// checkConfigShape rejects config payloads that cannot belong to the
// declared type tag.
func (v *Validator) checkConfigShape(field schema.FieldDefinition) error {
	if field.Options != nil && !field.Type.RequiresOptions() {
		return newError(KindTypeConfigMismatch, field.Code,
			"options only apply to CHECK_BOX, RADIO_BUTTON, DROP_DOWN, and MULTI_SELECT fields, not %q", field.Type)
	}
	if field.Expression != "" && field.Type != schema.FieldTypeCalc {
		return newError(KindTypeConfigMismatch, field.Code,
			"expression only applies to CALC fields, not %q", field.Type)
	}
	if field.Protocol != "" && field.Type != schema.FieldTypeLink {
		return newError(KindTypeConfigMismatch, field.Code,
			"protocol only applies to LINK fields, not %q", field.Type)
	}
	if field.ReferenceTable != nil && field.Type != schema.FieldTypeReferenceTable {
		return newError(KindTypeConfigMismatch, field.Code,
			"referenceTable only applies to REFERENCE_TABLE fields, not %q", field.Type)
	}
	return nil
}

func optionsShapeExample(key string) string {
	if key == "" {
		key = "choice_1"
	}
	return fmt.Sprintf(`options: { %q: { "label": %q, "index": "0" } }`, key, key)
}

func (v *Validator) validateOptions(field *schema.FieldDefinition, notices *[]schema.Notice) error {
	if len(field.Options) == 0 {
		err := newError(KindOptionsMissingOrMalformed, field.Code,
			"%s fields require an options map keyed by choice", field.Type)
		err.Suggestion = optionsShapeExample("")
		return err
	}

	// Sorted so the first offending key reported is deterministic.
	keys := make([]string, 0, len(field.Options))
	for key := range field.Options {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		opt := field.Options[key]
		if opt.Label == "" {
			err := newError(KindOptionsMissingOrMalformed, field.Code,
				"option %q is missing its label; the platform requires one per choice", key)
			err.Suggestion = fmt.Sprintf(`%q: { "label": %q, "index": "0" }`, key, key)
			return err
		}
		if opt.Label != key {
			*notices = append(*notices, schema.Warnf(
				"option key %q and label %q differ; the platform allows it, but keeping them equal avoids confusion",
				key, opt.Label))
		}
		if err := v.validateOptionIndex(field.Code, key, opt); err != nil {
			return err
		}
	}
	return nil
}

var optionIndexPattern = regexp.MustCompile(`^\d+$`)

func (v *Validator) validateOptionIndex(code, key string, opt schema.Option) error {
	example := fmt.Sprintf(`%q: { "label": %q, "index": "0" }`, key, opt.Label)
	if opt.Index == nil {
		err := newError(KindOptionsMissingOrMalformed, code,
			"option %q is missing its index; give each choice a string-encoded integer starting at \"0\"", key)
		err.Suggestion = example
		return err
	}
	text, ok := opt.Index.(string)
	if !ok {
		err := newError(KindOptionsMissingOrMalformed, code,
			"option %q has a %T index (%v); the platform requires a string-encoded integer such as \"0\"",
			key, opt.Index, opt.Index)
		err.Suggestion = example
		return err
	}
	if !optionIndexPattern.MatchString(text) {
		err := newError(KindOptionsMissingOrMalformed, code,
			"option %q has index %q; the platform requires a non-negative integer encoded as a string",
			key, text)
		err.Suggestion = example
		return err
	}
	return nil
}

func (v *Validator) validateLink(field schema.FieldDefinition) error {
	allowed := strings.Join(v.rules.LinkProtocols, ", ")
	if field.Protocol == "" {
		return newError(KindLinkProtocolInvalid, field.Code,
			"LINK fields require a protocol; allowed values: %s", allowed)
	}
	for _, protocol := range v.rules.LinkProtocols {
		if field.Protocol == protocol {
			return nil
		}
	}
	return newError(KindLinkProtocolInvalid, field.Code,
		"protocol %q is not valid; allowed values: %s", field.Protocol, allowed)
}

func (v *Validator) validateReferenceTable(field schema.FieldDefinition) error {
	ref := field.ReferenceTable
	if ref == nil {
		return newError(KindReferenceTableMisconfigured, field.Code,
			"REFERENCE_TABLE fields require a referenceTable payload with relatedApp and condition")
	}
	if ref.RelatedApp == nil || (ref.RelatedApp.App == nil && ref.RelatedApp.Code == "") {
		return newError(KindReferenceTableMisconfigured, field.Code,
			"referenceTable.relatedApp must name the referenced app by id (relatedApp.app) or code (relatedApp.code)")
	}
	if ref.Condition == nil {
		return newError(KindReferenceTableMisconfigured, field.Code,
			"referenceTable.condition must join a local field to a field of the referenced app, "+
				`e.g. condition: { "field": "customer_id", "relatedField": "customer_id" }`)
	}
	if ref.Condition.Field == "" {
		return newError(KindReferenceTableMisconfigured, field.Code,
			"referenceTable.condition.field must name the local side of the join")
	}
	if ref.Condition.RelatedField == "" {
		return newError(KindReferenceTableMisconfigured, field.Code,
			"referenceTable.condition.relatedField must name the referenced app's side of the join")
	}
	if ref.Size != nil {
		size, ok := schema.IntValue(ref.Size)
		if !ok || !containsInt(v.rules.ReferenceTableSizes, size) {
			return newError(KindReferenceTableMisconfigured, field.Code,
				"referenceTable.size %v is not valid; allowed values: %s",
				ref.Size, joinInts(v.rules.ReferenceTableSizes))
		}
	}
	return nil
}

func (v *Validator) validateNumber(field schema.FieldDefinition) error {
	if err := v.checkDigit(field.Code, field.Digit); err != nil {
		return err
	}
	if err := v.checkDisplayScale(field.Code, field.DisplayScale); err != nil {
		return err
	}
	return v.checkUnitPosition(field.Code, field.UnitPosition)
}

func (v *Validator) validateText(field schema.FieldDefinition) error {
	if field.MaxLength == nil {
		return nil
	}
	length, ok := schema.IntValue(field.MaxLength)
	if !ok || length < 1 || length > v.rules.MaxLengthMax {
		return newError(KindNumericBoundsInvalid, field.Code,
			"maxLength %v is not valid; use an integer between 1 and %d", field.MaxLength, v.rules.MaxLengthMax)
	}
	return nil
}

func (v *Validator) validateDateTime(field schema.FieldDefinition) error {
	if field.DefaultNowValue == nil {
		return nil
	}
	if _, ok := schema.BoolValue(field.DefaultNowValue); !ok {
		return newError(KindNumericBoundsInvalid, field.Code,
			"defaultNowValue %v is not valid; use true or false", field.DefaultNowValue)
	}
	return nil
}

func (v *Validator) validateLookup(code string, lookup *schema.Lookup) error {
	if lookup.RelatedApp == nil || (lookup.RelatedApp.App == nil && lookup.RelatedApp.Code == "") {
		return newError(KindLookupMisconfigured, code,
			"lookup.relatedApp must name the source app by id (relatedApp.app) or code (relatedApp.code)")
	}
	if lookup.RelatedKeyField == "" {
		return newError(KindLookupMisconfigured, code,
			"lookup.relatedKeyField must name the key field matched in the source app")
	}
	if len(lookup.FieldMappings) == 0 {
		return newError(KindLookupMisconfigured, code,
			"lookup.fieldMappings must copy at least one field from the matched record, "+
				`e.g. fieldMappings: [{ "field": "customer_name", "relatedField": "name" }]`)
	}
	for i, mapping := range lookup.FieldMappings {
		if mapping.Field == "" || mapping.RelatedField == "" {
			return newError(KindLookupMisconfigured, code,
				"lookup.fieldMappings[%d] must name both the local field and the relatedField it copies from", i)
		}
		if mapping.RelatedField == lookup.RelatedKeyField {
			return newError(KindLookupMisconfigured, code,
				"lookup.fieldMappings[%d] copies the key field %q; the key is stored in the lookup field itself and must not be mapped",
				i, lookup.RelatedKeyField)
		}
	}
	return nil
}

func (v *Validator) checkDigit(code string, digit any) error {
	if digit == nil {
		return nil
	}
	if _, ok := schema.BoolValue(digit); !ok {
		return newError(KindNumericBoundsInvalid, code,
			"digit %v is not valid; use true or false to toggle thousands separators", digit)
	}
	return nil
}

func (v *Validator) checkDisplayScale(code string, displayScale any) error {
	if displayScale == nil {
		return nil
	}
	scale, ok := schema.IntValue(displayScale)
	if !ok || scale < 0 || scale > v.rules.DisplayScaleMax {
		return newError(KindNumericBoundsInvalid, code,
			"displayScale %v is not valid; use an integer between 0 and %d", displayScale, v.rules.DisplayScaleMax)
	}
	return nil
}

func (v *Validator) checkUnitPosition(code, position string) error {
	if position == "" {
		return nil
	}
	for _, allowed := range v.rules.UnitPositions {
		if position == allowed {
			return nil
		}
	}
	return newError(KindUnitPositionInvalid, code,
		"unitPosition %q is not valid; allowed values: %s", position, strings.Join(v.rules.UnitPositions, ", "))
}

func containsInt(values []int, want int) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
