package formlint

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formlint/pkg/fieldcheck"
	"github.com/goliatone/go-formlint/pkg/organizer"
	"github.com/goliatone/go-formlint/pkg/schema"
	"github.com/goliatone/go-formlint/pkg/units"
)

func TestEngineValidateFieldsCorrectsAndReports(t *testing.T) {
	engine := New()

	fields := schema.FieldProperties{
		"price": {
			Type: schema.FieldTypeNumber,
			Code: "price",
			Unit: "$",
		},
		"name": {
			Type: schema.FieldTypeSingleLineText,
			Code: "name",
		},
	}

	corrected, results, err := engine.ValidateFields(fields)
	if err != nil {
		t.Fatalf("ValidateFields: %v", err)
	}

	if got := corrected["price"].UnitPosition; got != "BEFORE" {
		t.Errorf("price unitPosition = %q, want BEFORE", got)
	}

	var codes []string
	for _, r := range results {
		codes = append(codes, r.Code)
	}
	if diff := cmp.Diff([]string{"name", "price"}, codes); diff != "" {
		t.Errorf("result order mismatch (-want +got):\n%s", diff)
	}
}

func TestEngineValidateFieldsStopsAtFirstInvalid(t *testing.T) {
	engine := New()

	fields := schema.FieldProperties{
		"$id": {
			Type: schema.FieldTypeSingleLineText,
			Code: "$id",
		},
	}

	_, _, err := engine.ValidateFields(fields)
	var fieldErr *fieldcheck.Error
	if !errors.As(err, &fieldErr) {
		t.Fatalf("err = %v, want *fieldcheck.Error", err)
	}
	if fieldErr.Kind != fieldcheck.KindFieldCodeReserved {
		t.Errorf("kind = %v, want %v", fieldErr.Kind, fieldcheck.KindFieldCodeReserved)
	}
}

func TestEngineValidateFieldsRecursesSubtables(t *testing.T) {
	engine := New()

	fields := schema.FieldProperties{
		"items": {
			Type: schema.FieldTypeSubtable,
			Code: "items",
			Fields: schema.FieldProperties{
				"weight": {
					Type: schema.FieldTypeNumber,
					Code: "weight",
					Unit: "kg",
				},
			},
		},
	}

	corrected, results, err := engine.ValidateFields(fields)
	if err != nil {
		t.Fatalf("ValidateFields: %v", err)
	}
	if got := corrected["items"].Fields["weight"].UnitPosition; got != "AFTER" {
		t.Errorf("nested unitPosition = %q, want AFTER", got)
	}

	var sawMember bool
	for _, r := range results {
		if r.Code == "items.weight" {
			sawMember = true
		}
	}
	if !sawMember {
		t.Error("expected a result entry for items.weight")
	}
}

func TestEngineCheckFullPipeline(t *testing.T) {
	engine := New()

	fields := schema.FieldProperties{
		"title": {Type: schema.FieldTypeSingleLineText, Code: "title"},
		"notes": {Type: schema.FieldTypeMultiLineText, Code: "notes"},
	}
	layout := []schema.Node{
		{
			Type: schema.NodeRow,
			Fields: []schema.FieldRef{
				{Type: schema.FieldTypeSingleLineText, Code: "title"},
			},
		},
	}

	correctedFields, correctedLayout, notices, err := engine.Check(fields, layout, true)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(correctedFields) != 2 {
		t.Fatalf("corrected fields = %d, want 2", len(correctedFields))
	}

	codes := organizer.Default().ExtractFieldCodes(correctedLayout)
	if diff := cmp.Diff([]string{"title", "notes"}, codes); diff != "" {
		t.Errorf("placed codes mismatch (-want +got):\n%s", diff)
	}

	var mentionedNotes bool
	for _, n := range notices {
		if strings.Contains(n.Message, "notes") {
			mentionedNotes = true
		}
	}
	if !mentionedNotes {
		t.Error("expected a notice about placing the notes field")
	}
}

func TestEngineCheckWithoutAutoFixLeavesLayout(t *testing.T) {
	engine := New()

	fields := schema.FieldProperties{
		"title": {Type: schema.FieldTypeSingleLineText, Code: "title"},
		"notes": {Type: schema.FieldTypeMultiLineText, Code: "notes"},
	}
	layout := []schema.Node{
		{
			Type: schema.NodeRow,
			Fields: []schema.FieldRef{
				{Type: schema.FieldTypeSingleLineText, Code: "title"},
			},
		},
	}

	_, correctedLayout, _, err := engine.Check(fields, layout, false)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	codes := organizer.Default().ExtractFieldCodes(correctedLayout)
	if diff := cmp.Diff([]string{"title"}, codes); diff != "" {
		t.Errorf("layout should be unchanged without autoFix (-want +got):\n%s", diff)
	}
}

func TestEngineOptionsOverrideDefaults(t *testing.T) {
	tables := units.Tables{
		Before: []string{"ca"},
		After:  []string{"pcs"},
	}
	engine := New(WithUnitTables(tables))

	corrected, _, err := engine.ValidateField(schema.FieldDefinition{
		Type: schema.FieldTypeNumber,
		Code: "qty",
		Unit: "ca",
	})
	if err != nil {
		t.Fatalf("ValidateField: %v", err)
	}
	if corrected.UnitPosition != "BEFORE" {
		t.Errorf("unitPosition = %q, want BEFORE from custom table", corrected.UnitPosition)
	}
}
