package grammar

import "sort"

const (
	// AugmentedStart is the start symbol the augmentation step adds on
	// top of a grammar's own start symbol.
	AugmentedStart = "S'"

	// EndMarker is the end-of-input terminal. It appears in ACTION
	// tables and token streams but is never part of a grammar's own
	// terminal alphabet.
	EndMarker = "$"

	symEpsilon = "ε"
)

// sortSymbols orders grammar symbols for state discovery: the start
// symbol first, then the remaining non-terminals, then the terminals,
// each group in lexical order. Scanning a state's outgoing symbols in
// this order is what makes state numbering deterministic.
func (g *Grammar) sortSymbols(syms []string) {
	rank := func(sym string) int {
		switch {
		case sym == g.start:
			return 0
		case g.IsNonTerminal(sym):
			return 1
		default:
			return 2
		}
	}
	sort.Slice(syms, func(i, j int) bool {
		ri, rj := rank(syms[i]), rank(syms[j])
		if ri != rj {
			return ri < rj
		}
		return syms[i] < syms[j]
	})
}
