package schema

// FieldProperties is the wire shape of the remote platform's
// field-properties payload: a map from field code to its definition.
type FieldProperties map[string]FieldDefinition

// Option is a single choice inside a choice-family field. Index arrives
// as a string-encoded non-negative integer on the wire; it is typed any
// so malformed payloads (numeric index, missing index) survive decoding
// long enough for the validator to report them precisely.
type Option struct {
	Label string `json:"label,omitempty"`
	Index any    `json:"index,omitempty"`
}

// RelatedApp references another application by numeric id or by code.
// Exactly one of the two is required by the platform.
type RelatedApp struct {
	App  any    `json:"app,omitempty"`
	Code string `json:"code,omitempty"`
}

// FieldMapping copies a value from the looked-up record into a local
// field.
type FieldMapping struct {
	Field        string `json:"field,omitempty"`
	RelatedField string `json:"relatedField,omitempty"`
}

// Lookup augments a field with a reference to a key field in another
// application.
type Lookup struct {
	RelatedApp         *RelatedApp    `json:"relatedApp,omitempty"`
	RelatedKeyField    string         `json:"relatedKeyField,omitempty"`
	FieldMappings      []FieldMapping `json:"fieldMappings,omitempty"`
	LookupPickerFields []string       `json:"lookupPickerFields,omitempty"`
	FilterCond         string         `json:"filterCond,omitempty"`
	Sort               string         `json:"sort,omitempty"`
}

// ReferenceCondition joins a local field to a field of the referenced
// application.
type ReferenceCondition struct {
	Field        string `json:"field,omitempty"`
	RelatedField string `json:"relatedField,omitempty"`
}

// ReferenceTable configures a reference-table field.
type ReferenceTable struct {
	RelatedApp    *RelatedApp         `json:"relatedApp,omitempty"`
	Condition     *ReferenceCondition `json:"condition,omitempty"`
	FilterCond    string              `json:"filterCond,omitempty"`
	DisplayFields []string            `json:"displayFields,omitempty"`
	Sort          string              `json:"sort,omitempty"`
	Size          any                 `json:"size,omitempty"`
}

// FieldDefinition is a typed form field with its per-type configuration
// flattened the way the remote API flattens it. Loosely typed members
// (Digit, DisplayScale, MaxLength, DefaultNowValue) are any because the
// platform tolerates both native and string-encoded scalars and the
// validator needs to see exactly what the author wrote.
type FieldDefinition struct {
	Type     FieldType `json:"type,omitempty"`
	Code     string    `json:"code,omitempty"`
	Label    string    `json:"label,omitempty"`
	NoLabel  bool      `json:"noLabel,omitempty"`
	Required bool      `json:"required,omitempty"`

	// Choice family.
	Options map[string]Option `json:"options,omitempty"`

	// Numeric and calculated display config.
	Expression   string `json:"expression,omitempty"`
	Formula      string `json:"formula,omitempty"` // common authoring mistake, auto-renamed to expression
	Format       string `json:"format,omitempty"`
	Digit        any    `json:"digit,omitempty"`
	DisplayScale any    `json:"displayScale,omitempty"`
	Unit         string `json:"unit,omitempty"`
	UnitPosition string `json:"unitPosition,omitempty"`

	// Text bounds.
	MaxLength any `json:"maxLength,omitempty"`
	MinLength any `json:"minLength,omitempty"`

	// Link.
	Protocol string `json:"protocol,omitempty"`

	// Date/time.
	DefaultNowValue any `json:"defaultNowValue,omitempty"`

	DefaultValue any `json:"defaultValue,omitempty"`

	Lookup         *Lookup         `json:"lookup,omitempty"`
	ReferenceTable *ReferenceTable `json:"referenceTable,omitempty"`

	// Subtable member fields.
	Fields FieldProperties `json:"fields,omitempty"`

	// Engine-computed hint: minimum layout width this field should be
	// given. Set by the field validator, consumed by the organizer.
	RecommendedMinWidth string `json:"_recommendedMinWidth,omitempty"`
}

// Clone returns a deep copy so corrective steps never alias the
// caller's structure.
func (f FieldDefinition) Clone() FieldDefinition {
	out := f
	if f.Options != nil {
		out.Options = make(map[string]Option, len(f.Options))
		for key, opt := range f.Options {
			out.Options[key] = opt
		}
	}
	if f.Lookup != nil {
		lookup := *f.Lookup
		if f.Lookup.RelatedApp != nil {
			app := *f.Lookup.RelatedApp
			lookup.RelatedApp = &app
		}
		lookup.FieldMappings = append([]FieldMapping(nil), f.Lookup.FieldMappings...)
		lookup.LookupPickerFields = append([]string(nil), f.Lookup.LookupPickerFields...)
		out.Lookup = &lookup
	}
	if f.ReferenceTable != nil {
		ref := *f.ReferenceTable
		if f.ReferenceTable.RelatedApp != nil {
			app := *f.ReferenceTable.RelatedApp
			ref.RelatedApp = &app
		}
		if f.ReferenceTable.Condition != nil {
			cond := *f.ReferenceTable.Condition
			ref.Condition = &cond
		}
		ref.DisplayFields = append([]string(nil), f.ReferenceTable.DisplayFields...)
		out.ReferenceTable = &ref
	}
	if f.Fields != nil {
		out.Fields = f.Fields.Clone()
	}
	return out
}

// Clone deep-copies the whole properties map.
func (p FieldProperties) Clone() FieldProperties {
	if p == nil {
		return nil
	}
	out := make(FieldProperties, len(p))
	for code, field := range p {
		out[code] = field.Clone()
	}
	return out
}
