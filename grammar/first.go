package grammar

// firstEntry is the FIRST set of a symbol or a symbol sequence: the
// terminals that can begin it, plus whether it can derive the empty
// string.
type firstEntry struct {
	symbols map[string]struct{}
	empty   bool
}

func newFirstEntry() *firstEntry {
	return &firstEntry{
		symbols: map[string]struct{}{},
	}
}

func (e *firstEntry) add(sym string) bool {
	if _, ok := e.symbols[sym]; ok {
		return false
	}
	e.symbols[sym] = struct{}{}
	return true
}

func (e *firstEntry) addEmpty() bool {
	if e.empty {
		return false
	}
	e.empty = true
	return true
}

// mergeSymbols adds src's terminals, not its emptiness, and reports
// whether anything changed.
func (e *firstEntry) mergeSymbols(src *firstEntry) bool {
	changed := false
	for sym := range src.symbols {
		if e.add(sym) {
			changed = true
		}
	}
	return changed
}

type firstSet struct {
	set map[string]*firstEntry
}

func (s *firstSet) find(sym string) (*firstEntry, bool) {
	e, ok := s.set[sym]
	return e, ok
}

// firstOfSequence computes FIRST of a symbol sequence: each symbol
// contributes its FIRST terminals as long as every symbol before it is
// nullable. The empty sequence derives the empty string.
func (s *firstSet) firstOfSequence(seq []string) *firstEntry {
	e := newFirstEntry()
	for _, sym := range seq {
		symE := s.set[sym]
		e.mergeSymbols(symE)
		if !symE.empty {
			return e
		}
	}
	e.empty = true
	return e
}

// genFirstSet computes FIRST for every grammar symbol by iterating the
// productions to a fixed point. A terminal's FIRST set is itself.
func genFirstSet(g *Grammar) *firstSet {
	fst := &firstSet{
		set: map[string]*firstEntry{},
	}
	for _, sym := range g.Terminals() {
		e := newFirstEntry()
		e.add(sym)
		fst.set[sym] = e
	}
	for _, sym := range g.NonTerminals() {
		fst.set[sym] = newFirstEntry()
	}

	for changed := true; changed; {
		changed = false
		for _, prod := range g.Productions() {
			e := fst.set[prod.LHS()]
			if prod.isEpsilon() {
				if e.addEmpty() {
					changed = true
				}
				continue
			}
			seqE := fst.firstOfSequence(prod.RHS())
			if e.mergeSymbols(seqE) {
				changed = true
			}
			if seqE.empty && e.addEmpty() {
				changed = true
			}
		}
	}
	return fst
}
