package export

import (
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formlint/pkg/schema"
)

func TestRecordSchemaBasicTypes(t *testing.T) {
	fields := schema.FieldProperties{
		"title": {
			Type:      schema.FieldTypeSingleLineText,
			Code:      "title",
			Label:     "Title",
			Required:  true,
			MaxLength: "64",
		},
		"price": {
			Type:  schema.FieldTypeNumber,
			Code:  "price",
			Label: "Price",
			Unit:  "$",
		},
		"due": {
			Type: schema.FieldTypeDate,
			Code: "due",
		},
	}

	got := RecordSchema(fields)

	if want := (&openapi3.Types{openapi3.TypeObject}); !cmp.Equal(got.Type, want) {
		t.Fatalf("schema type = %v, want %v", got.Type, want)
	}
	if diff := cmp.Diff([]string{"title"}, got.Required); diff != "" {
		t.Errorf("required mismatch (-want +got):\n%s", diff)
	}

	title := got.Properties["title"].Value
	if title == nil {
		t.Fatal("missing title property")
	}
	if title.MaxLength == nil || *title.MaxLength != 64 {
		t.Errorf("title maxLength = %v, want 64", title.MaxLength)
	}

	price := got.Properties["price"].Value
	if !price.Type.Is(openapi3.TypeNumber) {
		t.Errorf("price type = %v, want number", price.Type)
	}
	if price.Description != "unit: $" {
		t.Errorf("price description = %q", price.Description)
	}

	due := got.Properties["due"].Value
	if due.Format != "date" {
		t.Errorf("due format = %q, want date", due.Format)
	}
}

func TestRecordSchemaChoiceEnumOrdering(t *testing.T) {
	fields := schema.FieldProperties{
		"status": {
			Type: schema.FieldTypeDropDown,
			Code: "status",
			Options: map[string]schema.Option{
				"done":    {Label: "done", Index: "2"},
				"open":    {Label: "open", Index: "0"},
				"blocked": {Label: "blocked", Index: "1"},
			},
		},
		"tags": {
			Type: schema.FieldTypeCheckBox,
			Code: "tags",
			Options: map[string]schema.Option{
				"b": {Label: "b", Index: "1"},
				"a": {Label: "a", Index: "0"},
			},
		},
	}

	got := RecordSchema(fields)

	status := got.Properties["status"].Value
	if diff := cmp.Diff([]any{"open", "blocked", "done"}, status.Enum); diff != "" {
		t.Errorf("status enum mismatch (-want +got):\n%s", diff)
	}

	tags := got.Properties["tags"].Value
	if !tags.Type.Is(openapi3.TypeArray) {
		t.Fatalf("tags type = %v, want array", tags.Type)
	}
	if diff := cmp.Diff([]any{"a", "b"}, tags.Items.Value.Enum); diff != "" {
		t.Errorf("tags enum mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordSchemaSubtableNesting(t *testing.T) {
	fields := schema.FieldProperties{
		"items": {
			Type:  schema.FieldTypeSubtable,
			Code:  "items",
			Label: "Items",
			Fields: schema.FieldProperties{
				"qty": {Type: schema.FieldTypeNumber, Code: "qty"},
				"sku": {Type: schema.FieldTypeSingleLineText, Code: "sku", Required: true},
			},
		},
	}

	got := RecordSchema(fields)

	items := got.Properties["items"].Value
	if !items.Type.Is(openapi3.TypeArray) {
		t.Fatalf("items type = %v, want array", items.Type)
	}
	row := items.Items.Value
	if !row.Type.Is(openapi3.TypeObject) {
		t.Fatalf("row type = %v, want object", row.Type)
	}
	if _, ok := row.Properties["qty"]; !ok {
		t.Error("missing nested qty property")
	}
	if diff := cmp.Diff([]string{"sku"}, row.Required); diff != "" {
		t.Errorf("nested required mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordSchemaSkipsValuelessTypes(t *testing.T) {
	fields := schema.FieldProperties{
		"ref": {
			Type: schema.FieldTypeReferenceTable,
			Code: "ref",
		},
		"note": {
			Type: schema.FieldTypeMultiLineText,
			Code: "note",
		},
	}

	got := RecordSchema(fields)

	if _, ok := got.Properties["ref"]; ok {
		t.Error("reference table should not produce a record property")
	}
	if _, ok := got.Properties["note"]; !ok {
		t.Error("expected note property")
	}
}

func TestRecordSchemaSystemFieldsReadOnly(t *testing.T) {
	fields := schema.FieldProperties{
		"$id":      {Type: schema.FieldTypeID, Code: "$id"},
		"created":  {Type: schema.FieldTypeCreator, Code: "created"},
		"recno":    {Type: schema.FieldTypeRecordNumber, Code: "recno"},
		"computed": {Type: schema.FieldTypeCalc, Code: "computed", Expression: "a + b"},
	}

	got := RecordSchema(fields)

	for _, code := range []string{"$id", "created", "recno", "computed"} {
		ref, ok := got.Properties[code]
		if !ok {
			t.Fatalf("missing %s property", code)
		}
		if !ref.Value.ReadOnly {
			t.Errorf("%s should be read only", code)
		}
	}
	if !got.Properties["$id"].Value.Type.Is(openapi3.TypeInteger) {
		t.Error("$id should be an integer")
	}
}
