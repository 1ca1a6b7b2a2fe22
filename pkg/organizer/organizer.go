// Package organizer reconciles a form layout tree against the
// authoritative field-definition set: it finds fields a layout forgot,
// prunes references to fields that no longer exist, widens lookup
// fields to the platform's minimum, and inserts new elements at
// addressed positions. Inputs are copied, never mutated.
package organizer

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formlint/pkg/layoutcheck"
	"github.com/goliatone/go-formlint/pkg/schema"
)

// Rules is the organizer's injected static configuration.
type Rules struct {
	// SystemFieldTypes never require a layout entry; the platform
	// manages their placement.
	SystemFieldTypes []schema.FieldType
	// LookupMinWidth is the minimum rendered width of a lookup field.
	LookupMinWidth int
}

// DefaultRules mirrors the platform: seven system field types and a
// 250-pixel lookup minimum.
func DefaultRules() Rules {
	return Rules{
		SystemFieldTypes: []schema.FieldType{
			schema.FieldTypeRecordNumber,
			schema.FieldTypeID,
			schema.FieldTypeRevision,
			schema.FieldTypeCreator,
			schema.FieldTypeCreatedTime,
			schema.FieldTypeModifier,
			schema.FieldTypeUpdatedTime,
		},
		LookupMinWidth: 250,
	}
}

// Organizer reconciles layouts with field sets. Construct with New.
type Organizer struct {
	rules       Rules
	systemTypes map[schema.FieldType]struct{}
}

// New builds an Organizer from explicit rules.
func New(rules Rules) *Organizer {
	o := &Organizer{
		rules:       rules,
		systemTypes: make(map[schema.FieldType]struct{}, len(rules.SystemFieldTypes)),
	}
	for _, t := range rules.SystemFieldTypes {
		o.systemTypes[t] = struct{}{}
	}
	return o
}

// Default builds an Organizer over DefaultRules.
func Default() *Organizer {
	return New(DefaultRules())
}

// ExtractFieldCodes flattens the tree to the field codes it references:
// every coded row entry plus every SUBTABLE code, recursing into
// groups. Decorative wrappers contribute nothing themselves. The result
// preserves first-appearance order and holds no duplicates.
func (o *Organizer) ExtractFieldCodes(layout []schema.Node) []string {
	var codes []string
	seen := make(map[string]struct{})
	add := func(code string) {
		if code == "" {
			return
		}
		if _, ok := seen[code]; ok {
			return
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}

	var walk func(nodes []schema.Node)
	walk = func(nodes []schema.Node) {
		for _, node := range nodes {
			switch node.Type {
			case schema.NodeRow:
				for _, entry := range node.Fields {
					add(entry.Code)
				}
			case schema.NodeGroup:
				walk(node.Layout)
			case schema.NodeSubtable:
				add(node.Code)
			}
		}
	}
	walk(layout)
	return codes
}

// FindMissing returns the custom field codes defined in allFields but
// absent from the layout, sorted so reports are deterministic.
func (o *Organizer) FindMissing(layout []schema.Node, allFields schema.FieldProperties) []string {
	placed := make(map[string]struct{})
	for _, code := range o.ExtractFieldCodes(layout) {
		placed[code] = struct{}{}
	}

	var missing []string
	for code, field := range allFields {
		if _, system := o.systemTypes[field.Type]; system {
			continue
		}
		if _, ok := placed[code]; !ok {
			missing = append(missing, code)
		}
	}
	sort.Strings(missing)
	return missing
}

// Reconcile diffs the layout's referenced codes against allFields. With
// autoFix off it only reports the missing fields. With autoFix on it
// returns a repaired copy: entries whose codes vanished from allFields
// are pruned (emptied rows and groups dropped with them) and every
// missing field is appended at the end, one row per field and one bare
// SUBTABLE node per table.
func (o *Organizer) Reconcile(layout []schema.Node, allFields schema.FieldProperties, autoFix bool) ([]schema.Node, []string) {
	// An empty field set means the caller has no authoritative data
	// (the set comes from a remote fetch), not that every field was
	// deleted; pruning against it would wipe the layout.
	if len(allFields) == 0 {
		return schema.CloneLayout(layout), nil
	}

	missing := o.FindMissing(layout, allFields)

	var warnings []string
	if len(missing) > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"fields defined but not placed in the layout: %s", strings.Join(missing, ", ")))
	}
	if !autoFix {
		if len(missing) > 0 {
			warnings = append(warnings, "enable autoFix to append them to the end of the form")
		}
		return schema.CloneLayout(layout), warnings
	}

	out := o.pruneStale(schema.CloneLayout(layout), allFields, &warnings)

	for _, code := range missing {
		field := allFields[code]
		if field.Type == schema.FieldTypeSubtable {
			out = append(out, schema.Node{Type: schema.NodeSubtable, Code: code})
			warnings = append(warnings, fmt.Sprintf("table %q appended to the layout", code))
			continue
		}
		out = append(out, schema.Node{
			Type:   schema.NodeRow,
			Fields: []schema.FieldRef{{Type: field.Type, Code: code}},
		})
		warnings = append(warnings, fmt.Sprintf("field %q appended to the layout", code))
	}
	return out, warnings
}

func (o *Organizer) pruneStale(layout []schema.Node, allFields schema.FieldProperties, warnings *[]string) []schema.Node {
	out := layout[:0]
	for _, node := range layout {
		switch node.Type {
		case schema.NodeRow:
			kept := node.Fields[:0]
			for _, entry := range node.Fields {
				if entry.Code != "" && !entry.Type.Decorative() {
					if _, ok := allFields[entry.Code]; !ok {
						*warnings = append(*warnings, fmt.Sprintf(
							"removed layout entry for %q; the field no longer exists", entry.Code))
						continue
					}
				}
				kept = append(kept, entry)
			}
			node.Fields = kept
			if len(kept) > 0 {
				out = append(out, node)
			}
		case schema.NodeGroup:
			node.Layout = o.pruneStale(node.Layout, allFields, warnings)
			if len(node.Layout) > 0 {
				out = append(out, node)
			}
		case schema.NodeSubtable, schema.NodeReferenceTable:
			if _, ok := allFields[node.Code]; !ok {
				*warnings = append(*warnings, fmt.Sprintf(
					"removed layout entry for %q; the field no longer exists", node.Code))
				continue
			}
			out = append(out, node)
		default:
			out = append(out, node)
		}
	}
	return out
}

// CorrectWidths walks the tree and widens every entry whose field
// definition is a lookup (or carries the validator's recommended
// minimum width hint) to at least the platform minimum, creating the
// size payload when absent. Each bump produces a guidance string. The
// pass is idempotent.
func (o *Organizer) CorrectWidths(layout []schema.Node, allFields schema.FieldProperties) ([]schema.Node, []string) {
	out := schema.CloneLayout(layout)
	var guidances []string
	o.correctWidths(out, allFields, &guidances)
	return out, guidances
}

func (o *Organizer) correctWidths(nodes []schema.Node, allFields schema.FieldProperties, guidances *[]string) {
	for i := range nodes {
		switch nodes[i].Type {
		case schema.NodeRow:
			for j := range nodes[i].Fields {
				o.correctEntryWidth(&nodes[i].Fields[j], allFields, guidances)
			}
		case schema.NodeGroup:
			o.correctWidths(nodes[i].Layout, allFields, guidances)
		}
	}
}

func (o *Organizer) correctEntryWidth(entry *schema.FieldRef, allFields schema.FieldProperties, guidances *[]string) {
	if entry.Code == "" {
		return
	}
	field, ok := allFields[entry.Code]
	if !ok {
		return
	}

	minWidth := 0
	if field.Lookup != nil {
		minWidth = o.rules.LookupMinWidth
	}
	if hint, ok := schema.IntValue(field.RecommendedMinWidth); ok && hint > minWidth {
		minWidth = hint
	}
	if minWidth == 0 {
		return
	}

	if entry.Size == nil {
		entry.Size = &schema.Size{}
	}
	if width, ok := schema.FloatValue(entry.Size.Width); ok && width >= float64(minWidth) {
		return
	}
	entry.Size.Width = strconv.Itoa(minWidth)
	*guidances = append(*guidances, fmt.Sprintf(
		"lookup field %q must be placed with an explicit width of at least %d; width set to %d",
		entry.Code, minWidth, minWidth))
}

// InsertAt places element into a copy of the layout at the addressed
// position: an absolute top-level index, an index inside a named group,
// or directly after/before the first occurrence of a field code found
// by recursive search through rows, groups, and row entries. An empty
// position appends.
func (o *Organizer) InsertAt(layout []schema.Node, element schema.Node, pos schema.Position) ([]schema.Node, error) {
	if err := layoutcheck.ValidatePosition(pos); err != nil {
		return nil, err
	}
	out := schema.CloneLayout(layout)

	switch {
	case pos.Index != nil:
		if pos.Type == schema.NodeGroup && pos.GroupCode != "" {
			for i := range out {
				if out[i].Type == schema.NodeGroup && out[i].Code == pos.GroupCode {
					out[i].Layout = insertNode(out[i].Layout, element, *pos.Index)
					return out, nil
				}
			}
			return nil, fmt.Errorf("organizer: group %q not found in layout", pos.GroupCode)
		}
		return insertNode(out, element, *pos.Index), nil

	case pos.After != "" || pos.Before != "":
		target := pos.After
		after := true
		if target == "" {
			target = pos.Before
			after = false
		}
		if insertNear(&out, element, target, after) {
			return out, nil
		}
		return nil, fmt.Errorf("organizer: field %q not found in layout", target)

	default:
		return append(out, element), nil
	}
}

func insertNode(nodes []schema.Node, element schema.Node, index int) []schema.Node {
	if index > len(nodes) {
		index = len(nodes)
	}
	nodes = append(nodes, schema.Node{})
	copy(nodes[index+1:], nodes[index:])
	nodes[index] = element
	return nodes
}

// insertNear performs the first-match-wins recursive search. Inserting
// next to a code found inside a row places the element into that row as
// a row entry.
func insertNear(nodes *[]schema.Node, element schema.Node, target string, after bool) bool {
	list := *nodes
	for i := range list {
		if list[i].Code == target {
			offset := i
			if after {
				offset++
			}
			*nodes = insertNode(list, element, offset)
			return true
		}
		if list[i].Type == schema.NodeGroup {
			if insertNear(&list[i].Layout, element, target, after) {
				return true
			}
		}
		if list[i].Type == schema.NodeRow {
			for j := range list[i].Fields {
				if list[i].Fields[j].Code == target {
					offset := j
					if after {
						offset++
					}
					list[i].Fields = insertFieldRef(list[i].Fields, fieldRefFromNode(element), offset)
					return true
				}
			}
		}
	}
	return false
}

func insertFieldRef(fields []schema.FieldRef, entry schema.FieldRef, index int) []schema.FieldRef {
	if index > len(fields) {
		index = len(fields)
	}
	fields = append(fields, schema.FieldRef{})
	copy(fields[index+1:], fields[index:])
	fields[index] = entry
	return fields
}

func fieldRefFromNode(n schema.Node) schema.FieldRef {
	return schema.FieldRef{
		Type:      schema.FieldType(n.Type),
		Code:      n.Code,
		Label:     n.Label,
		Value:     n.Value,
		ElementID: n.ElementID,
	}
}
