// Package layoutcheck validates the structural shape of a form layout
// tree against the remote platform's containment rules, independent of
// field content. Unambiguous gaps (a missing type tag, a missing fields
// array) are repaired on a copy with a notice; genuine rule violations
// fail fast with the offending node's position and the exact rule.
package layoutcheck

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formlint/pkg/schema"
)

// Containment rules quoted in structural errors.
const (
	ruleGroupSoleInRow    = "a row that contains a group field may contain no other entries; groups span the full form width"
	ruleNoSubtableInRow   = "rows may not contain tables; SUBTABLE nodes are placed at the top level of the layout"
	ruleNoSubtableInGroup = "groups may not contain tables"
	ruleNoGroupInGroup    = "groups may not be nested inside other groups"
	ruleGroupRowChildren  = "a group's layout may contain only ROW nodes"
	ruleGroupUsesLayout   = "groups arrange their rows under \"layout\", not \"fields\""
)

var topLevelTypes = []schema.NodeType{schema.NodeRow, schema.NodeGroup, schema.NodeSubtable}

// Validator checks layout trees. Construct with New.
type Validator struct {
	policy *bluemonday.Policy
}

// New builds a Validator. A nil policy falls back to the default LABEL
// markup policy.
func New(policy *bluemonday.Policy) *Validator {
	if policy == nil {
		policy = defaultLabelPolicy()
	}
	return &Validator{policy: policy}
}

// Default builds a Validator with the default LABEL markup policy.
func Default() *Validator {
	return New(nil)
}

// Validate checks every node of the tree and returns a corrected copy:
// absent type tags, fields arrays, layout arrays, and openGroup flags
// are filled in with a notice; nesting violations return a *Error
// naming the node position and the rule. The input is never mutated.
func (v *Validator) Validate(layout []schema.Node) ([]schema.Node, []schema.Notice, error) {
	out := schema.CloneLayout(layout)
	if out == nil {
		out = []schema.Node{}
	}
	var notices []schema.Notice

	for i := range out {
		path := fmt.Sprintf("layout[%d]", i)
		if err := v.validateNode(&out[i], path, &notices); err != nil {
			return nil, notices, err
		}
	}
	return out, notices, nil
}

func (v *Validator) validateNode(node *schema.Node, path string, notices *[]schema.Notice) error {
	if node.Type == "" {
		node.Type = topLevelTypes[0]
		*notices = append(*notices, schema.Warnf(
			"%s has no type; assuming %q", path, node.Type))
	}
	switch node.Type {
	case schema.NodeRow:
		return v.validateRow(node, path, notices)
	case schema.NodeGroup:
		return v.validateGroup(node, path, notices)
	case schema.NodeSubtable:
		return v.validateSubtable(node, path)
	default:
		return newError(KindInvalidNodeType, path, "",
			"node type %q is not allowed at the top level; allowed types: ROW, GROUP, SUBTABLE", node.Type)
	}
}

func (v *Validator) validateRow(row *schema.Node, path string, notices *[]schema.Notice) error {
	if row.Fields == nil {
		row.Fields = []schema.FieldRef{}
		*notices = append(*notices, schema.Warnf("%s has no fields array; assuming an empty row", path))
	}

	groups := 0
	for _, entry := range row.Fields {
		if entry.Type == schema.FieldTypeGroup {
			groups++
		}
	}
	if groups > 0 && len(row.Fields) > groups {
		return newError(KindStructuralViolation, path, ruleGroupSoleInRow,
			"row mixes a group field with other entries; %s", ruleGroupSoleInRow)
	}

	for i := range row.Fields {
		entry := &row.Fields[i]
		entryPath := fmt.Sprintf("%s.fields[%d]", path, i)

		if entry.Type == schema.FieldTypeSubtable {
			return newError(KindStructuralViolation, entryPath, ruleNoSubtableInRow,
				"row contains a SUBTABLE entry; %s", ruleNoSubtableInRow)
		}

		switch entry.Type {
		case schema.FieldTypeLabel:
			if entry.Value == "" {
				return newError(KindStructuralViolation, entryPath, "",
					"LABEL entries require a value")
			}
			if cleaned, changed := sanitizeLabelMarkup(v.policy, entry.Value); changed {
				entry.Value = cleaned
				*notices = append(*notices, schema.Warnf(
					"%s: label markup contained elements the platform will not render; stripped them", entryPath))
			}
		case schema.FieldTypeReferenceTable:
			if entry.Code == "" {
				return newError(KindMissingRequiredCode, entryPath, "",
					"REFERENCE_TABLE entries require the code of the reference-table field they place")
			}
		}

		if entry.Size != nil {
			sizeNotices, err := NormalizeSize(entry.Size, entryPath)
			*notices = append(*notices, sizeNotices...)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (v *Validator) validateGroup(group *schema.Node, path string, notices *[]schema.Notice) error {
	if group.Code == "" {
		return newError(KindMissingRequiredCode, path, "",
			"GROUP nodes require the code of the group field they place")
	}
	if group.Fields != nil {
		return newError(KindStructuralViolation, path, ruleGroupUsesLayout,
			`group %q carries a "fields" array; %s. Correct shape: `+
				`{ "type": "GROUP", "code": %q, "label": "...", "layout": [ { "type": "ROW", "fields": [...] } ] }`,
			group.Code, ruleGroupUsesLayout, group.Code)
	}
	if group.OpenGroup == nil {
		open := true
		group.OpenGroup = &open
		*notices = append(*notices, schema.Warnf(
			"%s: group %q has no openGroup flag; assuming true so the group renders expanded", path, group.Code))
	}
	if group.Layout == nil {
		group.Layout = []schema.Node{}
		*notices = append(*notices, schema.Warnf(
			"%s: group %q has no layout array; assuming an empty group", path, group.Code))
	}

	for i := range group.Layout {
		child := &group.Layout[i]
		childPath := fmt.Sprintf("%s.layout[%d]", path, i)

		switch child.Type {
		case schema.NodeSubtable:
			return newError(KindStructuralViolation, childPath, ruleNoSubtableInGroup,
				"group %q contains a SUBTABLE; %s", group.Code, ruleNoSubtableInGroup)
		case schema.NodeGroup:
			return newError(KindStructuralViolation, childPath, ruleNoGroupInGroup,
				"group %q contains another group; %s", group.Code, ruleNoGroupInGroup)
		case "":
			child.Type = schema.NodeRow
			*notices = append(*notices, schema.Warnf("%s has no type; assuming %q", childPath, schema.NodeRow))
		case schema.NodeRow:
		default:
			return newError(KindStructuralViolation, childPath, ruleGroupRowChildren,
				"group %q contains a %s node; %s", group.Code, child.Type, ruleGroupRowChildren)
		}

		if err := v.validateRow(child, childPath, notices); err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) validateSubtable(subtable *schema.Node, path string) error {
	if subtable.Code == "" {
		return newError(KindMissingRequiredCode, path, "",
			"SUBTABLE nodes require the code of the table field they place")
	}
	return nil
}

var nonNumericChars = regexp.MustCompile(`[^0-9.]`)

// NormalizeSize coerces a row entry's geometry into plain numbers: the
// platform rejects unit suffixes ("250px") and the string encodings
// authors copy from fetched layouts. Non-positive or unparsable values
// are errors. The size is updated in place.
func NormalizeSize(size *schema.Size, path string) ([]schema.Notice, error) {
	if size == nil {
		return nil, nil
	}
	var notices []schema.Notice
	for _, dim := range []struct {
		name  string
		value *any
	}{
		{"width", &size.Width},
		{"height", &size.Height},
		{"innerHeight", &size.InnerHeight},
	} {
		if *dim.value == nil {
			continue
		}
		num, notice, err := normalizeDimension(*dim.value, path, dim.name)
		if err != nil {
			return notices, err
		}
		if notice != nil {
			notices = append(notices, *notice)
		}
		*dim.value = num
	}
	return notices, nil
}

func normalizeDimension(value any, path, name string) (float64, *schema.Notice, error) {
	var (
		num    float64
		notice *schema.Notice
	)
	switch v := value.(type) {
	case string:
		numeric := nonNumericChars.ReplaceAllString(v, "")
		parsed, err := strconv.ParseFloat(numeric, 64)
		if err != nil {
			return 0, nil, newError(KindInvalidSize, path, "",
				"size.%s %q is not a number", name, v)
		}
		num = parsed
		var n schema.Notice
		if numeric != v {
			n = schema.Warnf("%s: size.%s %q carries a unit suffix the platform rejects; using %v", path, name, v, parsed)
		} else {
			n = schema.Infof("%s: size.%s was a string; converted %q to %v", path, name, v, parsed)
		}
		notice = &n
	default:
		parsed, ok := schema.FloatValue(value)
		if !ok {
			return 0, nil, newError(KindInvalidSize, path, "",
				"size.%s %v is not a number", name, value)
		}
		num = parsed
	}
	if num <= 0 {
		return 0, nil, newError(KindInvalidSize, path, "",
			"size.%s must be a positive number, got %v", name, num)
	}
	return num, notice, nil
}

// ValidatePosition checks an insertion address before an organizer uses
// it: a non-negative index (with groupCode when targeting a group), or
// exactly one of after/before.
func ValidatePosition(pos schema.Position) error {
	if pos.Index != nil {
		if *pos.Index < 0 {
			return newError(KindInvalidPosition, "", "",
				"position.index must be zero or greater, got %d", *pos.Index)
		}
		if pos.Type == schema.NodeGroup && pos.GroupCode == "" {
			return newError(KindInvalidPosition, "", "",
				"inserting into a group requires position.groupCode")
		}
		return nil
	}
	if pos.After != "" && pos.Before != "" {
		return newError(KindInvalidPosition, "", "",
			"position.after and position.before are mutually exclusive")
	}
	return nil
}
