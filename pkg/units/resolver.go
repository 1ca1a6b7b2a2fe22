// Package units decides whether a unit symbol renders before or after a
// numeric value. The remote platform never validates unitPosition
// against the symbol, so an unset position silently produces layouts
// like "100$"; the resolver front-loads a deterministic heuristic over
// curated symbol tables instead.
package units

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Position is a unit placement relative to the value.
type Position string

const (
	Before Position = "BEFORE"
	After  Position = "AFTER"
)

// Rule names the branch of the decision procedure that produced a
// position, in evaluation order.
type Rule string

const (
	RuleEmpty       Rule = "empty"
	RuleTooLong     Rule = "too-long"
	RuleCompound    Rule = "compound"
	RuleExactBoth   Rule = "exact-both"
	RuleExact       Rule = "exact"
	RulePartialBoth Rule = "partial-both"
	RulePartial     Rule = "partial"
	RuleNoMatch     Rule = "no-match"
)

// Decision carries the resolved position plus the rule and table
// entries that produced it, so validators can phrase their notices.
type Decision struct {
	Position Position
	Rule     Rule
	Matches  []string
}

// Tables holds the curated prefix and suffix symbol sets. Both sets are
// consulted by exact then substring membership; AFTER wins ties.
type Tables struct {
	Before []string `json:"before" yaml:"before"`
	After  []string `json:"after" yaml:"after"`
}

// DefaultTables returns the platform's curated symbol lists: currency
// and numbering prefixes on the BEFORE side; percent, physical and
// commercial units, counters, and time units on the AFTER side.
func DefaultTables() Tables {
	return Tables{
		Before: []string{
			"$", "＄", "¥", "￥", "€", "£", "₩", "₹", "฿", "₽", "₴", "₱",
			"№", "＃", "#",
		},
		After: []string{
			"%", "％",
			"円", "ドル", "ユーロ", "ポンド", "元", "ウォン",
			"kg", "g", "mg", "μg", "ton", "トン",
			"m", "km", "cm", "mm", "μm", "nm",
			"L", "l", "ml", "mL", "cc", "kl",
			"個", "点", "枚", "本", "冊", "台", "人", "名", "社", "件", "回",
			"時", "分", "秒", "h", "hr", "min", "sec",
			"度", "°", "℃", "°C", "°F", "K", "A", "V", "W", "Hz", "Ω",
		},
	}
}

var (
	compoundSeparators = regexp.MustCompile(`[\s/+-]`)
	// Word characters in the broad sense: letters (which covers
	// hiragana, katakana, and kanji), digits, underscore.
	nonWordCharacter = regexp.MustCompile(`[^\p{L}\p{N}_]`)
)

// Resolver decides unit placement from injected tables. The zero value
// is not usable; construct with New.
type Resolver struct {
	tables      Tables
	beforeExact map[string]struct{}
	afterExact  map[string]struct{}
}

// New builds a Resolver. Empty table sides fall back to the defaults so
// a partially overridden Tables value stays usable.
func New(tables Tables) *Resolver {
	defaults := DefaultTables()
	if len(tables.Before) == 0 {
		tables.Before = defaults.Before
	}
	if len(tables.After) == 0 {
		tables.After = defaults.After
	}

	r := &Resolver{
		tables:      tables,
		beforeExact: make(map[string]struct{}, len(tables.Before)),
		afterExact:  make(map[string]struct{}, len(tables.After)),
	}
	for _, symbol := range tables.Before {
		r.beforeExact[symbol] = struct{}{}
	}
	for _, symbol := range tables.After {
		r.afterExact[symbol] = struct{}{}
	}
	return r
}

// Default builds a Resolver over DefaultTables.
func Default() *Resolver {
	return New(Tables{})
}

// Resolve returns the placement for the given unit symbol.
func (r *Resolver) Resolve(unit string) Position {
	return r.Explain(unit).Position
}

// Explain runs the decision procedure and reports which branch fired.
// Branches are evaluated in order; the first match wins:
//
//  1. empty unit
//  2. four or more code points
//  3. compound unit (whitespace, /, -, +, or a multi-rune symbol
//     containing a character outside the word classes)
//  4. exact membership in both tables (AFTER wins)
//  5. exact membership in one table
//  6. substring membership, same tie-break
//  7. no match at all
//
// Every branch except exact/partial BEFORE resolves to AFTER.
func (r *Resolver) Explain(unit string) Decision {
	if unit == "" {
		return Decision{Position: After, Rule: RuleEmpty}
	}
	if utf8.RuneCountInString(unit) >= 4 {
		return Decision{Position: After, Rule: RuleTooLong}
	}
	if isCompound(unit) {
		return Decision{Position: After, Rule: RuleCompound}
	}

	_, beforeExact := r.beforeExact[unit]
	_, afterExact := r.afterExact[unit]
	switch {
	case beforeExact && afterExact:
		return Decision{Position: After, Rule: RuleExactBoth, Matches: []string{unit}}
	case beforeExact:
		return Decision{Position: Before, Rule: RuleExact, Matches: []string{unit}}
	case afterExact:
		return Decision{Position: After, Rule: RuleExact, Matches: []string{unit}}
	}

	beforePartial := substringMatches(r.tables.Before, unit)
	afterPartial := substringMatches(r.tables.After, unit)
	switch {
	case len(beforePartial) > 0 && len(afterPartial) > 0:
		return Decision{Position: After, Rule: RulePartialBoth, Matches: append(beforePartial, afterPartial...)}
	case len(beforePartial) > 0:
		return Decision{Position: Before, Rule: RulePartial, Matches: beforePartial}
	case len(afterPartial) > 0:
		return Decision{Position: After, Rule: RulePartial, Matches: afterPartial}
	}

	return Decision{Position: After, Rule: RuleNoMatch}
}

func isCompound(unit string) bool {
	if compoundSeparators.MatchString(unit) {
		return true
	}
	return utf8.RuneCountInString(unit) > 1 && nonWordCharacter.MatchString(unit)
}

func substringMatches(table []string, unit string) []string {
	var matches []string
	for _, symbol := range table {
		if strings.Contains(unit, symbol) {
			matches = append(matches, symbol)
		}
	}
	return matches
}
