package fieldcheck

import "regexp"

// UnsupportedFunction names a spreadsheet-style function the platform's
// calculated fields reject, with rewrite advice for the error message.
type UnsupportedFunction struct {
	Name   string
	Advice string
}

// Rules is the static configuration the validator runs against. It is
// injected rather than read from package state so tests can substitute
// alternate tables.
type Rules struct {
	// CodePattern is the character class field codes must match.
	CodePattern *regexp.Regexp
	// ReservedCodes maps each reserved system-field code to advice on
	// what to define instead.
	ReservedCodes map[string]string
	// UnsupportedFunctions are checked in order so reports stay
	// deterministic when an expression uses several.
	UnsupportedFunctions []UnsupportedFunction

	CalcFormats         []string
	LinkProtocols       []string
	ReferenceTableSizes []int
	UnitPositions       []string

	DisplayScaleMax int
	MaxLengthMax    int
	LookupMinWidth  int
}

// DefaultRules mirrors the remote platform's constraints: its reserved
// field codes, the character classes codes may use (ASCII and fullwidth
// alphanumerics, kana, kanji, underscore, middle dots, fullwidth
// currency marks), and the bounds its field-properties API enforces.
func DefaultRules() Rules {
	return Rules{
		CodePattern: regexp.MustCompile(`^[a-zA-Z0-9０-９ぁ-んァ-ヶー一-龠々＿_･・＄￥]+$`),
		ReservedCodes: map[string]string{
			"$id":       "record ids are assigned by the platform; reference them through the API, not a custom field",
			"$revision": "revisions are assigned by the platform; reference them through the API, not a custom field",
			"レコード番号":    "add a SINGLE_LINE_TEXT field with a code like \"management_number\" instead",
			"作成者":       "add a USER_SELECT field with a code like \"applicant\" instead",
			"作成日時":      "add a DATETIME field with a code like \"applied_at\" instead",
			"更新者":       "add a USER_SELECT field with a code like \"approver\" instead",
			"更新日時":      "add a DATETIME field with a code like \"approved_at\" instead",
		},
		UnsupportedFunctions: []UnsupportedFunction{
			{"DAYS_BETWEEN", `compute date differences as DATE_FORMAT(date1, "YYYY/MM/DD") - DATE_FORMAT(date2, "YYYY/MM/DD")`},
			{"AVERAGE", "compute averages as SUM(field) / COUNT(field)"},
			{"CONCATENATE", `join strings with the & operator, e.g. text1 & " " & text2`},
			{"VLOOKUP", "use a lookup field to pull values from another app"},
			{"COUNTIF", "count conditionally with SUM(IF(condition, 1, 0))"},
			{"SUMIF", "sum conditionally with SUM(IF(condition, value, 0))"},
			{"TODAY", "use a DATE field with defaultNowValue: true for the current date"},
			{"NOW", "use a DATETIME field with defaultNowValue: true for the current time"},
			{"MONTH", `extract the month with DATE_FORMAT(date, "MM")`},
			{"YEAR", `extract the year with DATE_FORMAT(date, "YYYY")`},
			{"DAY", `extract the day with DATE_FORMAT(date, "DD")`},
		},
		CalcFormats: []string{
			"NUMBER", "NUMBER_DIGIT", "DATETIME", "DATE", "TIME",
			"HOUR_MINUTE", "DAY_HOUR_MINUTE",
		},
		LinkProtocols:       []string{"WEB", "CALL", "MAIL"},
		ReferenceTableSizes: []int{1, 3, 5, 10, 20, 30, 40, 50},
		UnitPositions:       []string{"BEFORE", "AFTER"},
		DisplayScaleMax:     10,
		MaxLengthMax:        64000,
		LookupMinWidth:      250,
	}
}
