// Package export maps a validated field-definition set to an OpenAPI 3
// schema fragment describing the records the form produces, so app
// shapes can feed API-documentation pipelines without hand-written
// schemas.
package export

import (
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formlint/pkg/schema"
)

// RecordSchema builds an object schema with one property per defined
// field. Property order follows the sorted field codes; required fields
// are listed in the schema's required set.
func RecordSchema(fields schema.FieldProperties) *openapi3.Schema {
	out := &openapi3.Schema{
		Type:       &openapi3.Types{openapi3.TypeObject},
		Properties: make(openapi3.Schemas, len(fields)),
	}

	codes := make([]string, 0, len(fields))
	for code := range fields {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		field := fields[code]
		property := fieldSchema(field)
		if property == nil {
			continue
		}
		out.Properties[code] = openapi3.NewSchemaRef("", property)
		if field.Required {
			out.Required = append(out.Required, code)
		}
	}
	return out
}

func fieldSchema(field schema.FieldDefinition) *openapi3.Schema {
	switch field.Type {
	case schema.FieldTypeSingleLineText, schema.FieldTypeMultiLineText, schema.FieldTypeRichText:
		s := typed(openapi3.TypeString)
		s.Title = field.Label
		if length, ok := schema.IntValue(field.MaxLength); ok && length > 0 {
			max := uint64(length)
			s.MaxLength = &max
		}
		return s
	case schema.FieldTypeNumber, schema.FieldTypeCalc:
		s := typed(openapi3.TypeNumber)
		s.Title = field.Label
		if field.Unit != "" {
			s.Description = "unit: " + field.Unit
		}
		if field.Type == schema.FieldTypeCalc {
			s.ReadOnly = true
		}
		return s
	case schema.FieldTypeRadioButton, schema.FieldTypeDropDown:
		s := typed(openapi3.TypeString)
		s.Title = field.Label
		s.Enum = optionEnum(field.Options)
		return s
	case schema.FieldTypeCheckBox, schema.FieldTypeMultiSelect:
		item := typed(openapi3.TypeString)
		item.Enum = optionEnum(field.Options)
		return arrayOf(field.Label, item)
	case schema.FieldTypeDate:
		return formatted(field.Label, "date")
	case schema.FieldTypeDateTime, schema.FieldTypeCreatedTime, schema.FieldTypeUpdatedTime:
		return formatted(field.Label, "date-time")
	case schema.FieldTypeTime:
		return formatted(field.Label, "time")
	case schema.FieldTypeLink:
		return formatted(field.Label, "uri")
	case schema.FieldTypeUserSelect, schema.FieldTypeGroupSelect, schema.FieldTypeOrgSelect,
		schema.FieldTypeStatusAssignee:
		return arrayOf(field.Label, entitySchema())
	case schema.FieldTypeCreator, schema.FieldTypeModifier:
		s := entitySchema()
		s.Title = field.Label
		s.ReadOnly = true
		return s
	case schema.FieldTypeFile:
		return arrayOf(field.Label, fileSchema())
	case schema.FieldTypeSubtable:
		return arrayOf(field.Label, RecordSchema(field.Fields))
	case schema.FieldTypeRecordNumber, schema.FieldTypeStatus, schema.FieldTypeCategory:
		s := typed(openapi3.TypeString)
		s.Title = field.Label
		s.ReadOnly = true
		return s
	case schema.FieldTypeID, schema.FieldTypeRevision:
		s := typed(openapi3.TypeInteger)
		s.Title = field.Label
		s.ReadOnly = true
		return s
	default:
		// Layout pseudo fields and reference tables hold no record
		// value.
		return nil
	}
}

func typed(t string) *openapi3.Schema {
	return &openapi3.Schema{Type: &openapi3.Types{t}}
}

func formatted(title, format string) *openapi3.Schema {
	s := typed(openapi3.TypeString)
	s.Title = title
	s.Format = format
	return s
}

func arrayOf(title string, item *openapi3.Schema) *openapi3.Schema {
	s := typed(openapi3.TypeArray)
	s.Title = title
	s.Items = openapi3.NewSchemaRef("", item)
	return s
}

func entitySchema() *openapi3.Schema {
	s := typed(openapi3.TypeObject)
	s.Properties = openapi3.Schemas{
		"code": openapi3.NewSchemaRef("", typed(openapi3.TypeString)),
		"name": openapi3.NewSchemaRef("", typed(openapi3.TypeString)),
	}
	return s
}

func fileSchema() *openapi3.Schema {
	s := typed(openapi3.TypeObject)
	s.Properties = openapi3.Schemas{
		"fileKey":     openapi3.NewSchemaRef("", typed(openapi3.TypeString)),
		"name":        openapi3.NewSchemaRef("", typed(openapi3.TypeString)),
		"contentType": openapi3.NewSchemaRef("", typed(openapi3.TypeString)),
		"size":        openapi3.NewSchemaRef("", typed(openapi3.TypeString)),
	}
	return s
}

func optionEnum(options map[string]schema.Option) []any {
	if len(options) == 0 {
		return nil
	}
	keys := make([]string, 0, len(options))
	for key := range options {
		keys = append(keys, key)
	}
	// Order by the authored index; fall back to the key for ties and
	// malformed indexes.
	sort.Slice(keys, func(i, j int) bool {
		left, lok := schema.IntValue(options[keys[i]].Index)
		right, rok := schema.IntValue(options[keys[j]].Index)
		if lok && rok && left != right {
			return left < right
		}
		return keys[i] < keys[j]
	})
	out := make([]any, len(keys))
	for i, key := range keys {
		out[i] = key
	}
	return out
}
