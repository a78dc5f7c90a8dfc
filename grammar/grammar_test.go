package grammar

import (
	"strings"
	"testing"

	verr "github.com/talhanaseem08/ParserGen/error"
	"github.com/talhanaseem08/ParserGen/spec"
)

func newTestGrammar(t *testing.T, src string) *Grammar {
	t.Helper()

	root, err := spec.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	g, err := NewGrammar(root)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestNewGrammar(t *testing.T) {
	src := `
E -> E + T | T
T -> T * F | F
F -> ( E ) | id
`
	g := newTestGrammar(t, src)

	if g.StartSymbol() != "E" {
		t.Fatalf("unexpected start symbol; want: E, got: %v", g.StartSymbol())
	}

	wantProds := []string{
		"S' → E",
		"E → E + T",
		"E → T",
		"T → T * F",
		"T → F",
		"F → ( E )",
		"F → id",
	}
	prods := g.Productions()
	if len(prods) != len(wantProds) {
		t.Fatalf("unexpected production count; want: %v, got: %v", len(wantProds), len(prods))
	}
	for i, want := range wantProds {
		if prods[i].Num() != i {
			t.Errorf("unexpected production number; want: %v, got: %v", i, prods[i].Num())
		}
		if prods[i].String() != want {
			t.Errorf("unexpected production; want: %v, got: %v", want, prods[i].String())
		}
	}

	wantTerms := []string{"(", ")", "*", "+", "id"}
	if got := g.Terminals(); !equalStrings(got, wantTerms) {
		t.Fatalf("unexpected terminals; want: %v, got: %v", wantTerms, got)
	}
	wantNonTerms := []string{"E", "F", "S'", "T"}
	if got := g.NonTerminals(); !equalStrings(got, wantNonTerms) {
		t.Fatalf("unexpected non-terminals; want: %v, got: %v", wantNonTerms, got)
	}

	if !g.IsNonTerminal("E") || g.IsNonTerminal("id") {
		t.Fatalf("non-terminal classification is broken")
	}
	if !g.IsTerminal("id") || g.IsTerminal("E") {
		t.Fatalf("terminal classification is broken")
	}
}

func TestNewGrammar_emptyProduction(t *testing.T) {
	g := newTestGrammar(t, `
S -> a S | ε
`)

	prods := g.ProductionsOf("S")
	if len(prods) != 2 {
		t.Fatalf("unexpected production count; want: %v, got: %v", 2, len(prods))
	}
	if got := prods[1].String(); got != "S → ε" {
		t.Fatalf("unexpected production; want: S → ε, got: %v", got)
	}
	if len(prods[1].RHS()) != 0 {
		t.Fatalf("an empty production must have no RHS symbols; got: %v", prods[1].RHS())
	}
}

func TestNewGrammar_semanticErrors(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		cause   error
	}{
		{
			caption: "a grammar must have at least one production",
			src:     `# comments only`,
			cause:   semErrNoProduction,
		},
		{
			caption: "a production needs an LHS",
			src:     `-> a b`,
			cause:   semErrNoLHS,
		},
		{
			caption: "the end marker cannot be an LHS",
			src:     `$ -> a`,
			cause:   semErrReservedEndSym,
		},
		{
			caption: "the end marker cannot appear in an RHS",
			src:     `S -> a $`,
			cause:   semErrReservedEndSym,
		},
		{
			caption: "the augmented start symbol cannot be an LHS",
			src:     `S' -> a`,
			cause:   semErrReservedAugSym,
		},
		{
			caption: "the augmented start symbol cannot appear in an RHS",
			src: `
S -> a S'
`,
			cause: semErrReservedAugSym,
		},
		{
			caption: "a production cannot be defined twice",
			src: `
S -> a b | a b
`,
			cause: semErrDupProduction,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			root, err := spec.Parse(strings.NewReader(tt.src))
			if err != nil {
				t.Fatal(err)
			}
			_, err = NewGrammar(root)
			specErrs, ok := err.(verr.SpecErrors)
			if !ok {
				t.Fatalf("want: spec errors, got: %v", err)
			}
			found := false
			for _, specErr := range specErrs {
				if specErr.Cause == tt.cause {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("want: %v, got: %v", tt.cause, specErrs)
			}
		})
	}
}

func TestNewGrammar_repeatedLHSKeepsProductionOrder(t *testing.T) {
	g := newTestGrammar(t, `
S -> a
A -> b
S -> c
`)

	wantProds := []string{
		"S' → S",
		"S → a",
		"S → c",
		"A → b",
	}
	prods := g.Productions()
	if len(prods) != len(wantProds) {
		t.Fatalf("unexpected production count; want: %v, got: %v", len(wantProds), len(prods))
	}
	for i, want := range wantProds {
		if prods[i].String() != want {
			t.Errorf("unexpected production #%v; want: %v, got: %v", i, want, prods[i].String())
		}
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
