package grammar

import (
	"sort"

	"github.com/talhanaseem08/ParserGen/spec"
)

// Report assembles the serializable description of the table: the
// augmented grammar, the states with their item labels, both tables,
// the DFA transitions, the alphabets, and the conflicts. In SLR(1)
// mode it also carries the FIRST and FOLLOW sets and the is_slr1 flag.
func (t *ParsingTable) Report() *spec.Report {
	g := t.gram

	prods := g.Productions()
	augmented := make([]string, len(prods))
	for i, prod := range prods {
		augmented[i] = prod.String()
	}

	states := make([]*spec.State, len(t.aut.states))
	for i, state := range t.aut.states {
		items := make([]string, len(state.items))
		for j, item := range state.items {
			items[j] = item.label(g)
		}
		states[i] = &spec.State{
			ID:    state.num,
			Items: items,
		}
	}

	actionTable := map[int]map[string]string{}
	for key, act := range t.action {
		row, ok := actionTable[key.state]
		if !ok {
			row = map[string]string{}
			actionTable[key.state] = row
		}
		row[key.symbol] = act.String()
	}

	gotoTable := map[int]map[string]int{}
	for key, to := range t.goTo {
		row, ok := gotoTable[key.state]
		if !ok {
			row = map[string]int{}
			gotoTable[key.state] = row
		}
		row[key.symbol] = to
	}

	transitions := make([]*spec.Transition, len(t.aut.transitionList))
	for i, tr := range t.aut.transitionList {
		transitions[i] = &spec.Transition{
			From:   tr.from,
			To:     tr.to,
			Symbol: tr.symbol,
		}
	}

	// the end marker always lists last, after the sorted terminals
	terminals := make([]string, 0, len(g.Terminals())+1)
	terminals = append(terminals, g.Terminals()...)
	terminals = append(terminals, EndMarker)

	rep := &spec.Report{
		ParserType:            string(t.mode),
		AugmentedGrammar:      augmented,
		States:                states,
		ActionTable:           actionTable,
		GotoTable:             gotoTable,
		DFATransitions:        transitions,
		Terminals:             terminals,
		NonTerminals:          g.NonTerminals(),
		ShiftReduceConflicts:  t.ShiftReduceConflicts(),
		ReduceReduceConflicts: t.ReduceReduceConflicts(),
		IsLR0:                 t.valid,
		NumStates:             len(t.aut.states),
	}
	if t.mode == ModeSLR1 {
		valid := t.valid
		rep.IsSLR1 = &valid
		rep.FirstSets = formatFirstSets(g, t.firsts)
		rep.FollowSets = formatFollowSets(g, t.follows)
	}
	return rep
}

// ShiftReduceConflicts returns the shift/reduce conflicts in the order
// the table fill found them.
func (t *ParsingTable) ShiftReduceConflicts() []*spec.ShiftReduceConflict {
	cs := []*spec.ShiftReduceConflict{}
	for _, c := range t.conflicts {
		sr, ok := c.(*shiftReduceConflict)
		if !ok {
			continue
		}
		cs = append(cs, &spec.ShiftReduceConflict{
			State:  sr.state,
			Symbol: sr.symbol,
			Shift:  sr.shift.String(),
			Reduce: sr.reduce.String(),
		})
	}
	return cs
}

// ReduceReduceConflicts returns the reduce/reduce conflicts in the
// order the table fill found them.
func (t *ParsingTable) ReduceReduceConflicts() []*spec.ReduceReduceConflict {
	cs := []*spec.ReduceReduceConflict{}
	for _, c := range t.conflicts {
		rr, ok := c.(*reduceReduceConflict)
		if !ok {
			continue
		}
		cs = append(cs, &spec.ReduceReduceConflict{
			State:   rr.state,
			Symbol:  rr.symbol,
			Reduce1: rr.reduce1.String(),
			Reduce2: rr.reduce2.String(),
		})
	}
	return cs
}

func formatFirstSets(g *Grammar, fst *firstSet) map[string][]string {
	sets := map[string][]string{}
	for _, sym := range g.Terminals() {
		sets[sym] = formatFirstEntry(fst, sym)
	}
	for _, sym := range g.NonTerminals() {
		sets[sym] = formatFirstEntry(fst, sym)
	}
	return sets
}

func formatFirstEntry(fst *firstSet, sym string) []string {
	e, _ := fst.find(sym)
	list := make([]string, 0, len(e.symbols)+1)
	for s := range e.symbols {
		list = append(list, s)
	}
	if e.empty {
		list = append(list, symEpsilon)
	}
	sort.Strings(list)
	return list
}

func formatFollowSets(g *Grammar, flw *followSet) map[string][]string {
	sets := map[string][]string{}
	for _, sym := range g.NonTerminals() {
		e, _ := flw.find(sym)
		list := make([]string, 0, len(e.symbols)+1)
		for s := range e.symbols {
			list = append(list, s)
		}
		if e.eof {
			list = append(list, EndMarker)
		}
		sort.Strings(list)
		sets[sym] = list
	}
	return sets
}
