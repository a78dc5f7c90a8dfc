package grammar

// followEntry is the FOLLOW set of a non-terminal: the terminals that
// can appear immediately after it, plus whether the end marker can.
type followEntry struct {
	symbols map[string]struct{}
	eof     bool
}

func newFollowEntry() *followEntry {
	return &followEntry{
		symbols: map[string]struct{}{},
	}
}

func (e *followEntry) add(sym string) bool {
	if _, ok := e.symbols[sym]; ok {
		return false
	}
	e.symbols[sym] = struct{}{}
	return true
}

// merge adds src's terminals and its end-marker flag and reports
// whether anything changed.
func (e *followEntry) merge(src *followEntry) bool {
	changed := false
	for sym := range src.symbols {
		if e.add(sym) {
			changed = true
		}
	}
	if src.eof && !e.eof {
		e.eof = true
		changed = true
	}
	return changed
}

type followSet struct {
	set map[string]*followEntry
}

func (s *followSet) find(sym string) (*followEntry, bool) {
	e, ok := s.set[sym]
	return e, ok
}

// genFollowSet computes FOLLOW for every non-terminal. The augmented
// start symbol is seeded with the end marker. For an occurrence A → α B β,
// B receives FIRST(β), and FOLLOW(A) as well when β can derive the
// empty string (which includes β being empty).
func genFollowSet(g *Grammar, fst *firstSet) *followSet {
	flw := &followSet{
		set: map[string]*followEntry{},
	}
	for _, sym := range g.NonTerminals() {
		flw.set[sym] = newFollowEntry()
	}
	flw.set[AugmentedStart].eof = true

	for changed := true; changed; {
		changed = false
		for _, prod := range g.Productions() {
			lhsE := flw.set[prod.LHS()]
			rhs := prod.RHS()
			for i, sym := range rhs {
				e, ok := flw.set[sym]
				if !ok {
					// terminal
					continue
				}
				rest := fst.firstOfSequence(rhs[i+1:])
				for s := range rest.symbols {
					if e.add(s) {
						changed = true
					}
				}
				if rest.empty && e.merge(lhsE) {
					changed = true
				}
			}
		}
	}
	return flw
}
