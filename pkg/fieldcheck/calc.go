package fieldcheck

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-formlint/pkg/schema"
)

var (
	daysBetweenCall = regexp.MustCompile(`(?i)DAYS_BETWEEN\s*\(\s*([^,]+?)\s*,\s*([^)]+?)\s*\)`)
	decimalLiteral  = regexp.MustCompile(`\b\d+\.\d+\b`)
	// Dotted table.field references; the segment classes mirror the
	// field-code character classes.
	crossTableRef = regexp.MustCompile(`([a-zA-Z0-9ぁ-んァ-ヶー一-龠々＿_･・＄￥]+)\.([a-zA-Z0-9ぁ-んァ-ヶー一-龠々＿_･・＄￥]+)`)
)

func (v *Validator) validateCalc(field *schema.FieldDefinition, notices *[]schema.Notice) error {
	// "formula" is a frequent authoring mistake for "expression".
	if field.Formula != "" && field.Expression == "" {
		field.Expression = field.Formula
		field.Formula = ""
		*notices = append(*notices, schema.Infof(
			"calculated fields take their expression in \"expression\", not \"formula\"; moved it automatically"))
	}

	if digit, ok := schema.BoolValue(field.Digit); ok && digit {
		if field.Format == "" || field.Format == "NUMBER" {
			field.Format = "NUMBER_DIGIT"
			*notices = append(*notices, schema.Infof(
				"digit separators are enabled, so format was set to \"NUMBER_DIGIT\""))
		}
	}

	if strings.TrimSpace(field.Expression) == "" {
		return newError(KindCalcExpressionEmpty, field.Code,
			"CALC fields require a non-empty expression, "+
				`e.g. "price * quantity", "SUM(amount)", or "IF(quantity > 10, price * 0.9, price)"`)
	}
	if err := v.checkExpression(field.Code, field.Expression); err != nil {
		return err
	}

	if field.Format == "" {
		field.Format = "NUMBER_DIGIT"
		*notices = append(*notices, schema.Infof(
			"format was not set; defaulted to \"NUMBER_DIGIT\""))
	} else if !containsString(v.rules.CalcFormats, field.Format) {
		return newError(KindCalcFormatInvalid, field.Code,
			"format %q is not valid; allowed values: %s", field.Format, strings.Join(v.rules.CalcFormats, ", "))
	}

	if field.Format == "NUMBER" || field.Format == "NUMBER_DIGIT" {
		if err := v.checkDigit(field.Code, field.Digit); err != nil {
			return err
		}
		if err := v.checkDisplayScale(field.Code, field.DisplayScale); err != nil {
			return err
		}
		if err := v.checkUnitPosition(field.Code, field.UnitPosition); err != nil {
			return err
		}
	}
	return nil
}

// checkExpression rejects functions the platform does not implement and
// cross-table "table.field" references inside subtable formulas, both
// with a mechanical rewrite in the suggestion.
func (v *Validator) checkExpression(code, expression string) error {
	for _, fn := range v.rules.UnsupportedFunctions {
		call := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(fn.Name) + `\s*\(`)
		if !call.MatchString(expression) {
			continue
		}
		err := newError(KindCalcUnsupportedFunction, code,
			"expression uses %s(), which the platform's calculated fields do not support; %s",
			fn.Name, fn.Advice)
		if fn.Name == "DAYS_BETWEEN" {
			if suggestion := rewriteDaysBetween(expression); suggestion != "" {
				err.Suggestion = suggestion
			}
		}
		return err
	}

	// Decimal literals contain a dot too; mask them before looking for
	// table.field references.
	masked, restore := maskDecimalLiterals(expression)
	if crossTableRef.MatchString(masked) {
		suggestion := restore(crossTableRef.ReplaceAllString(masked, "$2"))
		err := newError(KindCalcCrossTableReference, code,
			"expression references a subtable field as \"table.field\"; field codes are unique per app, "+
				"so use the field code alone: %s", suggestion)
		err.Suggestion = suggestion
		return err
	}
	return nil
}

func rewriteDaysBetween(expression string) string {
	if !daysBetweenCall.MatchString(expression) {
		return ""
	}
	return daysBetweenCall.ReplaceAllStringFunc(expression, func(call string) string {
		parts := daysBetweenCall.FindStringSubmatch(call)
		return fmt.Sprintf(`ROUNDDOWN(DATE_FORMAT(%s, "YYYY/MM/DD") - DATE_FORMAT(%s, "YYYY/MM/DD"), 0)`,
			parts[1], parts[2])
	})
}

func maskDecimalLiterals(expression string) (string, func(string) string) {
	literals := make(map[string]string)
	count := 0
	masked := decimalLiteral.ReplaceAllStringFunc(expression, func(literal string) string {
		placeholder := fmt.Sprintf("__decimal_%d__", count)
		literals[placeholder] = literal
		count++
		return placeholder
	})
	restore := func(s string) string {
		for placeholder, literal := range literals {
			s = strings.ReplaceAll(s, placeholder, literal)
		}
		return s
	}
	return masked, restore
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
