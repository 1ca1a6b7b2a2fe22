package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/AlecAivazis/survey/v2"

	formlint "github.com/goliatone/go-formlint"
	"github.com/goliatone/go-formlint/pkg/export"
	"github.com/goliatone/go-formlint/pkg/schema"
	"github.com/goliatone/go-formlint/pkg/units"
)

func main() {
	fieldsPath := flag.String("fields", "", "path to the field-properties JSON payload")
	layoutPath := flag.String("layout", "", "path to the layout JSON payload (optional)")
	unitsDir := flag.String("units", "", "directory of extra unit-symbol tables (optional)")
	fix := flag.Bool("fix", false, "apply auto-corrections and write the results back")
	interactive := flag.Bool("interactive", false, "confirm before writing corrected files")
	openapiOut := flag.String("openapi", "", "write an OpenAPI record schema to this file")
	flag.Parse()

	if *fieldsPath == "" {
		log.Fatal("missing -fields: nothing to lint")
	}

	var options []formlint.Option
	if *unitsDir != "" {
		tables, err := units.LoadTables(os.DirFS(*unitsDir))
		if err != nil {
			log.Fatalf("Failed to load unit tables: %v", err)
		}
		options = append(options, formlint.WithUnitTables(tables))
	}
	engine := formlint.New(options...)

	fields, err := readFields(*fieldsPath)
	if err != nil {
		log.Fatalf("Failed to read fields: %v", err)
	}

	var layout []schema.Node
	if *layoutPath != "" {
		layout, err = readLayout(*layoutPath)
		if err != nil {
			log.Fatalf("Failed to read layout: %v", err)
		}
	}

	correctedFields, correctedLayout, notices, err := engine.Check(fields, layout, *fix)
	for _, n := range notices {
		fmt.Fprintf(os.Stderr, "%s: %s\n", n.Level, n.Message)
	}
	if err != nil {
		log.Fatalf("Lint failed: %v", err)
	}

	if *openapiOut != "" {
		if err := writeJSON(*openapiOut, export.RecordSchema(correctedFields)); err != nil {
			log.Fatalf("Failed to write OpenAPI schema: %v", err)
		}
		fmt.Printf("OpenAPI schema written to %s\n", *openapiOut)
	}

	if !*fix {
		fmt.Printf("Checked %d fields, %d notices\n", len(correctedFields), len(notices))
		return
	}

	if *interactive && !confirmWrite(*fieldsPath, *layoutPath) {
		fmt.Println("Aborted, nothing written")
		return
	}

	if err := writeJSON(*fieldsPath, correctedFields); err != nil {
		log.Fatalf("Failed to write fields: %v", err)
	}
	fmt.Printf("Corrected fields written to %s\n", *fieldsPath)

	if *layoutPath != "" {
		if err := writeJSON(*layoutPath, correctedLayout); err != nil {
			log.Fatalf("Failed to write layout: %v", err)
		}
		fmt.Printf("Corrected layout written to %s\n", *layoutPath)
	}
}

func readFields(path string) (schema.FieldProperties, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseFields(raw, path)
}

// parseFields accepts both the bare properties map and the API envelope
// {"properties": {...}}. A bare map can itself define a field coded
// "properties", so the envelope is only taken when that value does not
// look like a single field definition.
func parseFields(raw []byte, path string) (schema.FieldProperties, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	payload := raw
	if prop, ok := top["properties"]; ok && !looksLikeFieldDefinition(prop) {
		payload = prop
	}
	var fields schema.FieldProperties
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return fields, nil
}

// looksLikeFieldDefinition reports whether the object carries a "type"
// string member, which every field definition has and a code-keyed
// properties map cannot (a field coded "type" maps to an object, not a
// string).
func looksLikeFieldDefinition(raw json.RawMessage) bool {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(raw, &members); err != nil {
		return false
	}
	tag, ok := members["type"]
	if !ok {
		return false
	}
	var name string
	return json.Unmarshal(tag, &name) == nil
}

func readLayout(path string) ([]schema.Node, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Layout []schema.Node `json:"layout"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Layout) > 0 {
		return envelope.Layout, nil
	}
	var layout []schema.Node
	if err := json.Unmarshal(raw, &layout); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return layout, nil
}

func writeJSON(path string, value any) error {
	raw, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(raw, '\n'), 0o644)
}

func confirmWrite(fieldsPath, layoutPath string) bool {
	message := fmt.Sprintf("Overwrite %s", fieldsPath)
	if layoutPath != "" {
		message += " and " + layoutPath
	}
	message += " with corrected output?"

	confirmed := false
	if err := survey.AskOne(&survey.Confirm{Message: message}, &confirmed); err != nil {
		return false
	}
	return confirmed
}
