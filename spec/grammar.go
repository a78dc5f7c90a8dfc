package spec

// Report is the serialized result of generating parsing tables for a
// grammar. Table maps are keyed by state number; JSON object keys are
// therefore the decimal state numbers.
type Report struct {
	ParserType            string                    `json:"parser_type"`
	AugmentedGrammar      []string                  `json:"augmented_grammar"`
	States                []*State                  `json:"states"`
	ActionTable           map[int]map[string]string `json:"action_table"`
	GotoTable             map[int]map[string]int    `json:"goto_table"`
	DFATransitions        []*Transition             `json:"dfa_transitions"`
	Terminals             []string                  `json:"terminals"`
	NonTerminals          []string                  `json:"non_terminals"`
	ShiftReduceConflicts  []*ShiftReduceConflict    `json:"shift_reduce_conflicts"`
	ReduceReduceConflicts []*ReduceReduceConflict   `json:"reduce_reduce_conflicts"`
	IsLR0                 bool                      `json:"is_lr0"`
	IsSLR1                *bool                     `json:"is_slr1,omitempty"`
	NumStates             int                       `json:"num_states"`
	FirstSets             map[string][]string       `json:"first_sets,omitempty"`
	FollowSets            map[string][]string       `json:"follow_sets,omitempty"`
}

// State lists one DFA state and the labels of its items in canonical
// order.
type State struct {
	ID    int      `json:"id"`
	Items []string `json:"items"`
}

// Transition is one edge of the DFA, in discovery order.
type Transition struct {
	From   int    `json:"from"`
	To     int    `json:"to"`
	Symbol string `json:"symbol"`
}

// ShiftReduceConflict records a cell that wanted both a shift and a
// reduce. The shift wins in the generated table.
type ShiftReduceConflict struct {
	State  int    `json:"state"`
	Symbol string `json:"symbol"`
	Shift  string `json:"shift"`
	Reduce string `json:"reduce"`
}

// ReduceReduceConflict records a cell that wanted two different reduces.
// The first one installed wins in the generated table.
type ReduceReduceConflict struct {
	State   int    `json:"state"`
	Symbol  string `json:"symbol"`
	Reduce1 string `json:"reduce1"`
	Reduce2 string `json:"reduce2"`
}
