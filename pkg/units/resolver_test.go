package units

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolve(t *testing.T) {
	resolver := Default()

	cases := []struct {
		name string
		unit string
		want Position
	}{
		{name: "currency prefix", unit: "$", want: Before},
		{name: "fullwidth currency prefix", unit: "＄", want: Before},
		{name: "yen sign", unit: "¥", want: Before},
		{name: "numero sign", unit: "№", want: Before},
		{name: "weight suffix", unit: "kg", want: After},
		{name: "percent", unit: "%", want: After},
		{name: "japanese counter", unit: "個", want: After},
		{name: "empty", unit: "", want: After},
		{name: "four code points", unit: "時間単位", want: After},
		{name: "slash compound", unit: "円/kg", want: After},
		{name: "space compound", unit: "kg net", want: After},
		{name: "hyphen compound", unit: "m-s", want: After},
		{name: "degree celsius", unit: "℃", want: After},
		{name: "unknown symbol", unit: "pts", want: After},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := resolver.Resolve(tc.unit); got != tc.want {
				t.Errorf("Resolve(%q) = %v, want %v", tc.unit, got, tc.want)
			}
		})
	}
}

func TestResolveCuratedTables(t *testing.T) {
	resolver := Default()
	tables := DefaultTables()

	after := make(map[string]struct{}, len(tables.After))
	for _, symbol := range tables.After {
		after[symbol] = struct{}{}
	}

	for _, symbol := range tables.Before {
		if _, both := after[symbol]; both {
			continue
		}
		if got := resolver.Resolve(symbol); got != Before {
			t.Errorf("Resolve(%q) = %v, want BEFORE for a prefix-table symbol", symbol, got)
		}
	}
	for _, symbol := range tables.After {
		if got := resolver.Resolve(symbol); got != After {
			t.Errorf("Resolve(%q) = %v, want AFTER for a suffix-table symbol", symbol, got)
		}
	}
}

func TestExplainRuleOrder(t *testing.T) {
	resolver := New(Tables{
		Before: []string{"$", "both"},
		After:  []string{"kg", "both"},
	})

	cases := []struct {
		name     string
		unit     string
		wantRule Rule
		wantPos  Position
	}{
		{name: "empty first", unit: "", wantRule: RuleEmpty, wantPos: After},
		{name: "length before tables", unit: "kgkg", wantRule: RuleTooLong, wantPos: After},
		{name: "compound before tables", unit: "k/g", wantRule: RuleCompound, wantPos: After},
		{name: "exact both ties after", unit: "both", wantRule: RuleTooLong, wantPos: After},
		{name: "exact before", unit: "$", wantRule: RuleExact, wantPos: Before},
		{name: "exact after", unit: "kg", wantRule: RuleExact, wantPos: After},
		{name: "partial before", unit: "a$", wantRule: RuleCompound, wantPos: After},
		{name: "no match", unit: "zz", wantRule: RuleNoMatch, wantPos: After},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := resolver.Explain(tc.unit)
			if got.Rule != tc.wantRule || got.Position != tc.wantPos {
				t.Errorf("Explain(%q) = {%v %v}, want {%v %v}",
					tc.unit, got.Position, got.Rule, tc.wantPos, tc.wantRule)
			}
		})
	}
}

func TestExplainExactBothTieBreak(t *testing.T) {
	resolver := New(Tables{
		Before: []string{"pt"},
		After:  []string{"pt"},
	})

	got := resolver.Explain("pt")
	if got.Rule != RuleExactBoth || got.Position != After {
		t.Errorf("Explain(pt) = {%v %v}, want AFTER via exact-both", got.Position, got.Rule)
	}
}

func TestExplainPartialMatches(t *testing.T) {
	resolver := New(Tables{
		Before: []string{"¥"},
		After:  []string{"時"},
	})

	got := resolver.Explain("時あ")
	if got.Rule != RulePartial || got.Position != After {
		t.Fatalf("Explain(時あ) = {%v %v}, want AFTER via partial", got.Position, got.Rule)
	}
	if diff := cmp.Diff([]string{"時"}, got.Matches); diff != "" {
		t.Errorf("matches mismatch (-want +got):\n%s", diff)
	}
}

func TestNewFallsBackToDefaultsPerSide(t *testing.T) {
	resolver := New(Tables{Before: []string{"approx"}})

	// After side was empty, so the default suffix table still applies.
	if got := resolver.Resolve("kg"); got != After {
		t.Errorf("Resolve(kg) = %v, want AFTER from default table", got)
	}
	// And the overridden Before side replaced the default one.
	if got := resolver.Resolve("$"); got != After {
		t.Errorf("Resolve($) = %v, want AFTER once the prefix table is replaced", got)
	}
}
