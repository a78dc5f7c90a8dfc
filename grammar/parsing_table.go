package grammar

import (
	"fmt"
	"sort"
)

// Mode selects how reduce lookaheads are computed when the ACTION table
// is filled. Everything else about the construction is shared.
type Mode string

const (
	// ModeLR0 installs a reduce action for every terminal and the end
	// marker.
	ModeLR0 Mode = "lr0"
	// ModeSLR1 restricts reduce actions to the FOLLOW set of the
	// production's left-hand side.
	ModeSLR1 Mode = "slr1"
)

// ParseMode converts a mode name as written on the command line or in
// an API request.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "lr0":
		return ModeLR0, nil
	case "slr1":
		return ModeSLR1, nil
	}
	return "", fmt.Errorf("unsupported parser mode: %v (available: lr0, slr1)", name)
}

// DisplayName returns the conventional notation of the mode, like LR(0).
func (m Mode) DisplayName() string {
	if m == ModeSLR1 {
		return "SLR(1)"
	}
	return "LR(0)"
}

type ActionKind int

const (
	ActionShift ActionKind = iota
	ActionReduce
	ActionAccept
)

// Action is one ACTION-table entry.
type Action struct {
	kind  ActionKind
	state int
	prod  int
}

func shiftAction(state int) Action {
	return Action{kind: ActionShift, state: state}
}

func reduceAction(prod int) Action {
	return Action{kind: ActionReduce, prod: prod}
}

func acceptAction() Action {
	return Action{kind: ActionAccept}
}

func (a Action) Kind() ActionKind {
	return a.kind
}

// State returns the destination state of a shift action.
func (a Action) State() int {
	return a.state
}

// Production returns the production number of a reduce action.
func (a Action) Production() int {
	return a.prod
}

// String renders the action the way reports encode it: sN for a shift
// to state N, rN for a reduce by production N, and accept.
func (a Action) String() string {
	switch a.kind {
	case ActionShift:
		return fmt.Sprintf("s%d", a.state)
	case ActionReduce:
		return fmt.Sprintf("r%d", a.prod)
	default:
		return "accept"
	}
}

type conflict interface {
	conflict()
}

type shiftReduceConflict struct {
	state  int
	symbol string
	shift  Action
	reduce Action
}

func (c *shiftReduceConflict) conflict() {}

type reduceReduceConflict struct {
	state   int
	symbol  string
	reduce1 Action
	reduce2 Action
}

func (c *reduceReduceConflict) conflict() {}

type tableKey struct {
	state  int
	symbol string
}

// ParsingTable holds the ACTION and GOTO tables generated for a grammar
// plus every conflict found while filling them. Conflicts never abort
// the construction: the table stays complete for reporting, Valid just
// reports false and callers decide whether parsing with it is
// acceptable.
type ParsingTable struct {
	mode      Mode
	gram      *Grammar
	aut       *lr0Automaton
	action    map[tableKey]Action
	goTo      map[tableKey]int
	conflicts []conflict
	valid     bool
	firsts    *firstSet
	follows   *followSet
}

// reduceLookahead picks the terminals a reduce action is installed for.
// This is the only point where the LR(0) and SLR(1) constructions
// differ.
type reduceLookahead interface {
	lookahead(prod *Production) (terminals []string, endMarker bool)
}

type lr0Lookahead struct {
	terminals []string
}

func (la *lr0Lookahead) lookahead(*Production) ([]string, bool) {
	return la.terminals, true
}

type slr1Lookahead struct {
	follows *followSet
}

func (la *slr1Lookahead) lookahead(prod *Production) ([]string, bool) {
	e, _ := la.follows.find(prod.LHS())
	syms := make([]string, 0, len(e.symbols))
	for sym := range e.symbols {
		syms = append(syms, sym)
	}
	sort.Strings(syms)
	return syms, e.eof
}

// GenerateTable builds the LR(0) automaton for the grammar and fills
// the ACTION and GOTO tables in the given mode.
func GenerateTable(g *Grammar, mode Mode) (*ParsingTable, error) {
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}

	t := &ParsingTable{
		mode:   mode,
		gram:   g,
		aut:    genLR0Automaton(g),
		action: map[tableKey]Action{},
		goTo:   map[tableKey]int{},
		valid:  true,
	}

	var la reduceLookahead
	if mode == ModeSLR1 {
		t.firsts = genFirstSet(g)
		t.follows = genFollowSet(g, t.firsts)
		la = &slr1Lookahead{follows: t.follows}
	} else {
		la = &lr0Lookahead{terminals: g.Terminals()}
	}
	t.fill(la)
	return t, nil
}

// fill scans every state's items in canonical order (production number,
// then dot), installing accept, shift, and reduce actions. The scan
// order decides which action reaches a cell first, so the tie-break
// rules below are deterministic.
func (t *ParsingTable) fill(la reduceLookahead) {
	for _, state := range t.aut.states {
		reduced := map[int]struct{}{}
		for _, item := range state.items {
			if item.accept() {
				t.action[tableKey{state: state.num, symbol: EndMarker}] = acceptAction()
				continue
			}
			if sym, ok := item.dottedSymbol(t.gram); ok {
				if t.gram.IsTerminal(sym) {
					to := t.aut.transitions[transitionKey{state: state.num, symbol: sym}]
					t.writeShift(state.num, sym, to)
				}
				continue
			}
			if _, ok := reduced[item.prod]; ok {
				continue
			}
			reduced[item.prod] = struct{}{}

			prod, _ := t.gram.Production(item.prod)
			terms, endMarker := la.lookahead(prod)
			for _, sym := range terms {
				t.writeReduce(state.num, sym, item.prod)
			}
			if endMarker {
				t.writeReduce(state.num, EndMarker, item.prod)
			}
		}
	}

	for _, tr := range t.aut.transitionList {
		if t.gram.IsNonTerminal(tr.symbol) {
			t.goTo[tableKey{state: tr.from, symbol: tr.symbol}] = tr.to
		}
	}
}

func (t *ParsingTable) writeShift(state int, sym string, to int) {
	k := tableKey{state: state, symbol: sym}
	sh := shiftAction(to)
	prev, ok := t.action[k]
	if !ok {
		t.action[k] = sh
		return
	}
	// A second shift into the same cell repeats the same target because
	// the DFA is deterministic. A reduce in the cell is a conflict, and
	// the shift wins.
	if prev.Kind() == ActionReduce {
		t.conflicts = append(t.conflicts, &shiftReduceConflict{
			state:  state,
			symbol: sym,
			shift:  sh,
			reduce: prev,
		})
		t.valid = false
		t.action[k] = sh
	}
}

func (t *ParsingTable) writeReduce(state int, sym string, prod int) {
	k := tableKey{state: state, symbol: sym}
	red := reduceAction(prod)
	prev, ok := t.action[k]
	if !ok {
		t.action[k] = red
		return
	}
	switch prev.Kind() {
	case ActionShift:
		// shift wins
		t.conflicts = append(t.conflicts, &shiftReduceConflict{
			state:  state,
			symbol: sym,
			shift:  prev,
			reduce: red,
		})
		t.valid = false
	case ActionReduce:
		if prev.Production() == prod {
			return
		}
		// the reduce installed first wins
		t.conflicts = append(t.conflicts, &reduceReduceConflict{
			state:   state,
			symbol:  sym,
			reduce1: prev,
			reduce2: red,
		})
		t.valid = false
	case ActionAccept:
		// the accepting state keeps accept on the end marker
	}
}

// Mode returns the mode the table was generated in.
func (t *ParsingTable) Mode() Mode {
	return t.mode
}

// Grammar returns the grammar the table was generated from.
func (t *ParsingTable) Grammar() *Grammar {
	return t.gram
}

// Valid reports whether the table is free of conflicts.
func (t *ParsingTable) Valid() bool {
	return t.valid
}

// NumStates returns the number of states of the LR(0) automaton.
func (t *ParsingTable) NumStates() int {
	return len(t.aut.states)
}

// Action looks up the ACTION entry for a state and a terminal or the
// end marker.
func (t *ParsingTable) Action(state int, sym string) (Action, bool) {
	act, ok := t.action[tableKey{state: state, symbol: sym}]
	return act, ok
}

// Goto looks up the GOTO entry for a state and a non-terminal.
func (t *ParsingTable) Goto(state int, sym string) (int, bool) {
	to, ok := t.goTo[tableKey{state: state, symbol: sym}]
	return to, ok
}
