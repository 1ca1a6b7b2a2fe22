package schema

import "encoding/json"

// NodeType tags the layout-node union.
type NodeType string

const (
	NodeRow            NodeType = "ROW"
	NodeGroup          NodeType = "GROUP"
	NodeSubtable       NodeType = "SUBTABLE"
	NodeLabel          NodeType = "LABEL"
	NodeSpacer         NodeType = "SPACER"
	NodeHR             NodeType = "HR"
	NodeReferenceTable NodeType = "REFERENCE_TABLE"
)

// Size is the pixel geometry of a row entry. Members are any because
// the platform emits strings ("250") while authors frequently write
// numbers or unit-suffixed strings ("250px"); the layout validator
// normalizes them.
type Size struct {
	Width       any `json:"width,omitempty"`
	Height      any `json:"height,omitempty"`
	InnerHeight any `json:"innerHeight,omitempty"`
}

// FieldRef is an entry inside a ROW: a placed field, or a decorative
// LABEL/SPACER/HR/REFERENCE_TABLE element.
type FieldRef struct {
	Type      FieldType `json:"type,omitempty"`
	Code      string    `json:"code,omitempty"`
	Label     string    `json:"label,omitempty"`
	Value     string    `json:"value,omitempty"`     // LABEL text, may carry markup
	ElementID string    `json:"elementId,omitempty"` // SPACER / HR
	Size      *Size     `json:"size,omitempty"`
}

// Node is one element of a form layout tree. The populated members
// depend on Type: ROW uses Fields, GROUP uses Code/Label/OpenGroup/
// Layout, SUBTABLE and REFERENCE_TABLE use Code, LABEL uses Value,
// SPACER and HR use ElementID. A zero Type means the author omitted it;
// the layout validator fills it in.
type Node struct {
	Type      NodeType   `json:"type,omitempty"`
	Code      string     `json:"code,omitempty"`
	Label     string     `json:"label,omitempty"`
	Value     string     `json:"value,omitempty"`
	ElementID string     `json:"elementId,omitempty"`
	OpenGroup *bool      `json:"openGroup,omitempty"`
	Fields    []FieldRef `json:"fields,omitempty"`
	Layout    []Node     `json:"layout,omitempty"`
}

// MarshalJSON keeps the wire shape the remote API expects: rows always
// carry a fields array and groups always carry a layout array, even
// when empty.
func (n Node) MarshalJSON() ([]byte, error) {
	switch n.Type {
	case NodeRow:
		fields := n.Fields
		if fields == nil {
			fields = []FieldRef{}
		}
		return json.Marshal(struct {
			Type   NodeType   `json:"type"`
			Fields []FieldRef `json:"fields"`
		}{n.Type, fields})
	case NodeGroup:
		layout := n.Layout
		if layout == nil {
			layout = []Node{}
		}
		return json.Marshal(struct {
			Type      NodeType `json:"type"`
			Code      string   `json:"code"`
			Label     string   `json:"label,omitempty"`
			OpenGroup *bool    `json:"openGroup,omitempty"`
			Layout    []Node   `json:"layout"`
		}{n.Type, n.Code, n.Label, n.OpenGroup, layout})
	case NodeSubtable, NodeReferenceTable:
		return json.Marshal(struct {
			Type NodeType `json:"type"`
			Code string   `json:"code"`
		}{n.Type, n.Code})
	case NodeLabel:
		return json.Marshal(struct {
			Type  NodeType `json:"type"`
			Value string   `json:"value"`
		}{n.Type, n.Value})
	case NodeSpacer, NodeHR:
		return json.Marshal(struct {
			Type      NodeType `json:"type"`
			ElementID string   `json:"elementId,omitempty"`
		}{n.Type, n.ElementID})
	default:
		type plain Node
		return json.Marshal(plain(n))
	}
}

// Clone deep-copies the node.
func (n Node) Clone() Node {
	out := n
	if n.OpenGroup != nil {
		open := *n.OpenGroup
		out.OpenGroup = &open
	}
	if n.Fields != nil {
		out.Fields = make([]FieldRef, len(n.Fields))
		for i, field := range n.Fields {
			out.Fields[i] = field.Clone()
		}
	}
	if n.Layout != nil {
		out.Layout = CloneLayout(n.Layout)
	}
	return out
}

// Clone deep-copies the row entry.
func (f FieldRef) Clone() FieldRef {
	out := f
	if f.Size != nil {
		size := *f.Size
		out.Size = &size
	}
	return out
}

// CloneLayout deep-copies a layout tree.
func CloneLayout(layout []Node) []Node {
	if layout == nil {
		return nil
	}
	out := make([]Node, len(layout))
	for i, node := range layout {
		out[i] = node.Clone()
	}
	return out
}

// Position addresses an insertion point for a layout element. Index
// places the element at an absolute offset, optionally inside the named
// group; After/Before place it relative to an existing field code and
// are mutually exclusive.
type Position struct {
	Index     *int     `json:"index,omitempty"`
	Type      NodeType `json:"type,omitempty"`
	GroupCode string   `json:"groupCode,omitempty"`
	After     string   `json:"after,omitempty"`
	Before    string   `json:"before,omitempty"`
}

// Empty reports whether no addressing mode is set; organizers append in
// that case.
func (p Position) Empty() bool {
	return p.Index == nil && p.After == "" && p.Before == ""
}
