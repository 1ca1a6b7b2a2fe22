package schema

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNodeMarshalKeepsRequiredKeys(t *testing.T) {
	cases := []struct {
		name string
		node Node
		want string
	}{
		{
			name: "empty row keeps fields array",
			node: Node{Type: NodeRow},
			want: `{"type":"ROW","fields":[]}`,
		},
		{
			name: "empty group keeps layout array",
			node: Node{Type: NodeGroup, Code: "details"},
			want: `{"type":"GROUP","code":"details","layout":[]}`,
		},
		{
			name: "subtable carries only type and code",
			node: Node{Type: NodeSubtable, Code: "items", Label: "ignored"},
			want: `{"type":"SUBTABLE","code":"items"}`,
		},
		{
			name: "label always emits value",
			node: Node{Type: NodeLabel},
			want: `{"type":"LABEL","value":""}`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := json.Marshal(tc.node)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if string(raw) != tc.want {
				t.Errorf("marshal = %s, want %s", raw, tc.want)
			}
		})
	}
}

func TestNodeRoundTrip(t *testing.T) {
	open := true
	in := Node{
		Type:      NodeGroup,
		Code:      "details",
		Label:     "Details",
		OpenGroup: &open,
		Layout: []Node{
			{Type: NodeRow, Fields: []FieldRef{
				{Type: FieldTypeSingleLineText, Code: "title", Size: &Size{Width: "250"}},
			}},
		},
	}

	raw, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var out Node
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCloneLayoutIsDeep(t *testing.T) {
	open := false
	layout := []Node{
		{Type: NodeGroup, Code: "g", OpenGroup: &open, Layout: []Node{
			{Type: NodeRow, Fields: []FieldRef{
				{Type: FieldTypeSingleLineText, Code: "a", Size: &Size{Width: 100.0}},
			}},
		}},
	}

	cloned := CloneLayout(layout)
	cloned[0].Layout[0].Fields[0].Size.Width = 999.0
	*cloned[0].OpenGroup = true

	if layout[0].Layout[0].Fields[0].Size.Width != 100.0 {
		t.Error("clone shares the size payload")
	}
	if *layout[0].OpenGroup {
		t.Error("clone shares the openGroup flag")
	}
}

func TestFieldDefinitionCloneIsDeep(t *testing.T) {
	in := FieldDefinition{
		Type: FieldTypeSingleLineText,
		Code: "customer",
		Options: map[string]Option{
			"x": {Label: "x", Index: "0"},
		},
		Lookup: &Lookup{
			RelatedApp:      &RelatedApp{Code: "CRM"},
			RelatedKeyField: "id",
			FieldMappings:   []FieldMapping{{Field: "customer", RelatedField: "name"}},
		},
	}

	cloned := in.Clone()
	cloned.Options["x"] = Option{Label: "changed", Index: "1"}
	cloned.Lookup.RelatedApp.Code = "other"
	cloned.Lookup.FieldMappings[0].Field = "changed"

	if in.Options["x"].Label != "x" {
		t.Error("clone shares the options map")
	}
	if in.Lookup.RelatedApp.Code != "CRM" {
		t.Error("clone shares the related app")
	}
	if in.Lookup.FieldMappings[0].Field != "customer" {
		t.Error("clone shares the field mappings")
	}
}

func TestPositionEmpty(t *testing.T) {
	index := 0
	if !(Position{}).Empty() {
		t.Error("zero position should be empty")
	}
	if (Position{Index: &index}).Empty() || (Position{After: "a"}).Empty() || (Position{Before: "b"}).Empty() {
		t.Error("addressed positions should not be empty")
	}
}
