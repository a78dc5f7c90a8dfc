package grammar

import (
	"sort"
	"testing"
)

func TestGenFollowSet(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		follow  map[string]struct {
			symbols []string
			eof     bool
		}
	}{
		{
			caption: "the augmented start symbol is followed by the end marker",
			src: `
E -> E + T | T
T -> id
`,
			follow: map[string]struct {
				symbols []string
				eof     bool
			}{
				"S'": {symbols: []string{}, eof: true},
				"E":  {symbols: []string{"+"}, eof: true},
				"T":  {symbols: []string{"+"}, eof: true},
			},
		},
		{
			caption: "nullable tails pass the containing FOLLOW set down",
			src: `
E -> T E'
E' -> + T E' | ε
T -> id
`,
			follow: map[string]struct {
				symbols []string
				eof     bool
			}{
				"E":  {symbols: []string{}, eof: true},
				"E'": {symbols: []string{}, eof: true},
				"T":  {symbols: []string{"+"}, eof: true},
			},
		},
		{
			caption: "closing parentheses follow the inner expression",
			src: `
E -> E + T | T
T -> T * F | F
F -> ( E ) | id
`,
			follow: map[string]struct {
				symbols []string
				eof     bool
			}{
				"E": {symbols: []string{")", "+"}, eof: true},
				"T": {symbols: []string{")", "*", "+"}, eof: true},
				"F": {symbols: []string{")", "*", "+"}, eof: true},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			g := newTestGrammar(t, tt.src)
			flw := genFollowSet(g, genFirstSet(g))
			for sym, want := range tt.follow {
				e, ok := flw.find(sym)
				if !ok {
					t.Fatalf("FOLLOW set of %v is missing", sym)
				}
				got := make([]string, 0, len(e.symbols))
				for s := range e.symbols {
					got = append(got, s)
				}
				sort.Strings(got)
				if !equalStrings(got, want.symbols) {
					t.Errorf("unexpected FOLLOW(%v); want: %v, got: %v", sym, want.symbols, got)
				}
				if e.eof != want.eof {
					t.Errorf("unexpected end marker in FOLLOW(%v); want: %v, got: %v", sym, want.eof, e.eof)
				}
			}
		})
	}
}
