package schema

// FieldType enumerates every field tag the remote platform accepts in a
// field-properties payload, including layout-only pseudo fields (LABEL,
// SPACER, HR) that never appear in the properties map but do appear as
// row entries.
type FieldType string

const (
	FieldTypeSingleLineText FieldType = "SINGLE_LINE_TEXT"
	FieldTypeMultiLineText  FieldType = "MULTI_LINE_TEXT"
	FieldTypeRichText       FieldType = "RICH_TEXT"
	FieldTypeNumber         FieldType = "NUMBER"
	FieldTypeCalc           FieldType = "CALC"
	FieldTypeCheckBox       FieldType = "CHECK_BOX"
	FieldTypeRadioButton    FieldType = "RADIO_BUTTON"
	FieldTypeDropDown       FieldType = "DROP_DOWN"
	FieldTypeMultiSelect    FieldType = "MULTI_SELECT"
	FieldTypeDate           FieldType = "DATE"
	FieldTypeTime           FieldType = "TIME"
	FieldTypeDateTime       FieldType = "DATETIME"
	FieldTypeFile           FieldType = "FILE"
	FieldTypeLink           FieldType = "LINK"
	FieldTypeUserSelect     FieldType = "USER_SELECT"
	FieldTypeGroupSelect    FieldType = "GROUP_SELECT"
	FieldTypeOrgSelect      FieldType = "ORGANIZATION_SELECT"
	FieldTypeLookup         FieldType = "LOOKUP"
	FieldTypeReferenceTable FieldType = "REFERENCE_TABLE"
	FieldTypeSubtable       FieldType = "SUBTABLE"
	FieldTypeStatus         FieldType = "STATUS"
	FieldTypeStatusAssignee FieldType = "STATUS_ASSIGNEE"
	FieldTypeCategory       FieldType = "CATEGORY"
	FieldTypeRelatedRecords FieldType = "RELATED_RECORDS"
	FieldTypeRecordNumber   FieldType = "RECORD_NUMBER"
	FieldTypeCreator        FieldType = "CREATOR"
	FieldTypeModifier       FieldType = "MODIFIER"
	FieldTypeCreatedTime    FieldType = "CREATED_TIME"
	FieldTypeUpdatedTime    FieldType = "UPDATED_TIME"
	FieldTypeID             FieldType = "__ID__"
	FieldTypeRevision       FieldType = "__REVISION__"

	// Layout-only pseudo fields.
	FieldTypeLabel  FieldType = "LABEL"
	FieldTypeSpacer FieldType = "SPACER"
	FieldTypeHR     FieldType = "HR"
	FieldTypeGroup  FieldType = "GROUP"
)

var knownFieldTypes = map[FieldType]struct{}{
	FieldTypeSingleLineText: {},
	FieldTypeMultiLineText:  {},
	FieldTypeRichText:       {},
	FieldTypeNumber:         {},
	FieldTypeCalc:           {},
	FieldTypeCheckBox:       {},
	FieldTypeRadioButton:    {},
	FieldTypeDropDown:       {},
	FieldTypeMultiSelect:    {},
	FieldTypeDate:           {},
	FieldTypeTime:           {},
	FieldTypeDateTime:       {},
	FieldTypeFile:           {},
	FieldTypeLink:           {},
	FieldTypeUserSelect:     {},
	FieldTypeGroupSelect:    {},
	FieldTypeOrgSelect:      {},
	FieldTypeLookup:         {},
	FieldTypeReferenceTable: {},
	FieldTypeSubtable:       {},
	FieldTypeStatus:         {},
	FieldTypeStatusAssignee: {},
	FieldTypeCategory:       {},
	FieldTypeRelatedRecords: {},
	FieldTypeRecordNumber:   {},
	FieldTypeCreator:        {},
	FieldTypeModifier:       {},
	FieldTypeCreatedTime:    {},
	FieldTypeUpdatedTime:    {},
	FieldTypeID:             {},
	FieldTypeRevision:       {},
	FieldTypeLabel:          {},
	FieldTypeSpacer:         {},
	FieldTypeHR:             {},
	FieldTypeGroup:          {},
}

// Known reports whether t is part of the closed enumeration the remote
// platform accepts.
func (t FieldType) Known() bool {
	_, ok := knownFieldTypes[t]
	return ok
}

// RequiresOptions reports whether the field type carries an options map.
func (t FieldType) RequiresOptions() bool {
	switch t {
	case FieldTypeCheckBox, FieldTypeRadioButton, FieldTypeDropDown, FieldTypeMultiSelect:
		return true
	default:
		return false
	}
}

// Decorative reports whether the type is a layout decoration that never
// references a defined field.
func (t FieldType) Decorative() bool {
	switch t {
	case FieldTypeLabel, FieldTypeSpacer, FieldTypeHR:
		return true
	default:
		return false
	}
}
