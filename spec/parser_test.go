package spec

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		prods   []*ProductionNode
	}{
		{
			caption: "alternatives are split on | and symbols on whitespace",
			src: `
E -> E + T | T
T -> id
`,
			prods: []*ProductionNode{
				{
					LHS: "E",
					RHS: []*AlternativeNode{
						{Symbols: []string{"E", "+", "T"}},
						{Symbols: []string{"T"}},
					},
				},
				{
					LHS: "T",
					RHS: []*AlternativeNode{
						{Symbols: []string{"id"}},
					},
				},
			},
		},
		{
			caption: "ε, epsilon, and a blank alternative all mean the empty production",
			src: `
A -> ε
B -> epsilon
C ->
D -> d | | ε
`,
			prods: []*ProductionNode{
				{LHS: "A", RHS: []*AlternativeNode{{Symbols: nil}}},
				{LHS: "B", RHS: []*AlternativeNode{{Symbols: nil}}},
				{LHS: "C", RHS: []*AlternativeNode{{Symbols: nil}}},
				{
					LHS: "D",
					RHS: []*AlternativeNode{
						{Symbols: []string{"d"}},
						{Symbols: nil},
						{Symbols: nil},
					},
				},
			},
		},
		{
			caption: "comments, blank lines, and lines without an arrow are skipped",
			src: `
# a grammar
E -> T

this line is not a production
T -> id
`,
			prods: []*ProductionNode{
				{LHS: "E", RHS: []*AlternativeNode{{Symbols: []string{"T"}}}},
				{LHS: "T", RHS: []*AlternativeNode{{Symbols: []string{"id"}}}},
			},
		},
		{
			caption: "repeated LHS lines accumulate onto the first occurrence",
			src: `
A -> a
B -> b
A -> c
`,
			prods: []*ProductionNode{
				{
					LHS: "A",
					RHS: []*AlternativeNode{
						{Symbols: []string{"a"}},
						{Symbols: []string{"c"}},
					},
				},
				{LHS: "B", RHS: []*AlternativeNode{{Symbols: []string{"b"}}}},
			},
		},
		{
			caption: "quotes keep whitespace and stay part of the symbol",
			src: `
S -> "hello world" x | 'a b'
`,
			prods: []*ProductionNode{
				{
					LHS: "S",
					RHS: []*AlternativeNode{
						{Symbols: []string{`"hello world"`, "x"}},
						{Symbols: []string{"'a b'"}},
					},
				},
			},
		},
		{
			caption: "the arrow needs no surrounding whitespace",
			src:     `E->E+T`,
			prods: []*ProductionNode{
				{LHS: "E", RHS: []*AlternativeNode{{Symbols: []string{"E+T"}}}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			root, err := Parse(strings.NewReader(tt.src))
			if err != nil {
				t.Fatal(err)
			}
			testRootNode(t, root, tt.prods)
		})
	}
}

func TestParse_rows(t *testing.T) {
	src := `# header
E -> T
T -> id
E -> ( E )
`
	root, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(root.Productions) != 2 {
		t.Fatalf("want: %v productions, got: %v", 2, len(root.Productions))
	}
	e := root.Productions[0]
	if e.Row != 2 {
		t.Errorf("want: row %v, got: %v", 2, e.Row)
	}
	if len(e.RHS) != 2 || e.RHS[0].Row != 2 || e.RHS[1].Row != 4 {
		t.Errorf("unexpected alternative rows: %+v", e.RHS)
	}
	if root.Productions[1].Row != 3 {
		t.Errorf("want: row %v, got: %v", 3, root.Productions[1].Row)
	}
}

func testRootNode(t *testing.T, root *RootNode, prods []*ProductionNode) {
	t.Helper()
	if len(root.Productions) != len(prods) {
		t.Fatalf("want: %v productions, got: %v", len(prods), len(root.Productions))
	}
	for i, want := range prods {
		got := root.Productions[i]
		if got.LHS != want.LHS {
			t.Fatalf("want: %v, got: %v", want.LHS, got.LHS)
		}
		if len(got.RHS) != len(want.RHS) {
			t.Fatalf("%v: want: %v alternatives, got: %v", want.LHS, len(want.RHS), len(got.RHS))
		}
		for j, alt := range want.RHS {
			gotAlt := got.RHS[j]
			if len(gotAlt.Symbols) != len(alt.Symbols) {
				t.Fatalf("%v: want: %v, got: %v", want.LHS, alt.Symbols, gotAlt.Symbols)
			}
			for k, sym := range alt.Symbols {
				if gotAlt.Symbols[k] != sym {
					t.Fatalf("%v: want: %v, got: %v", want.LHS, alt.Symbols, gotAlt.Symbols)
				}
			}
		}
	}
}
