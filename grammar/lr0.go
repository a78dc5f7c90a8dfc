package grammar

// transition is one edge of the LR(0) DFA. The automaton records edges
// in discovery order because reports list them that way.
type transition struct {
	from   int
	to     int
	symbol string
}

type transitionKey struct {
	state  int
	symbol string
}

type lrState struct {
	num   int
	items []lrItem
	set   itemSet
}

// lr0Automaton is the canonical collection of LR(0) item sets together
// with the GOTO transitions between them.
type lr0Automaton struct {
	states         []*lrState
	transitions    map[transitionKey]int
	transitionList []*transition
}

// genLR0Automaton builds the canonical collection breadth-first from the
// closure of S' → • start, which becomes state 0. Later states are
// numbered in discovery order; a state already seen (same item set) is
// reused, never renumbered.
func genLR0Automaton(g *Grammar) *lr0Automaton {
	aut := &lr0Automaton{
		transitions: map[transitionKey]int{},
	}
	ids := map[itemSetID]int{}

	initial := g.closure(itemSet{lrItem{}: {}})
	aut.states = append(aut.states, &lrState{num: 0, items: initial.sorted(), set: initial})
	ids[initial.id()] = 0

	for next := 0; next < len(aut.states); next++ {
		state := aut.states[next]

		var syms []string
		seen := map[string]struct{}{}
		for _, item := range state.items {
			sym, ok := item.dottedSymbol(g)
			if !ok {
				continue
			}
			if _, ok := seen[sym]; ok {
				continue
			}
			seen[sym] = struct{}{}
			syms = append(syms, sym)
		}
		g.sortSymbols(syms)

		for _, sym := range syms {
			dest := g.gotoItems(state.set, sym)
			id := dest.id()
			num, ok := ids[id]
			if !ok {
				num = len(aut.states)
				aut.states = append(aut.states, &lrState{num: num, items: dest.sorted(), set: dest})
				ids[id] = num
			}
			aut.transitions[transitionKey{state: state.num, symbol: sym}] = num
			aut.transitionList = append(aut.transitionList, &transition{from: state.num, to: num, symbol: sym})
		}
	}
	return aut
}
