package grammar

import (
	"testing"
)

func assertAction(t *testing.T, tab *ParsingTable, state int, sym string, want string) {
	t.Helper()

	act, ok := tab.Action(state, sym)
	if !ok {
		t.Fatalf("ACTION(%v, %v) is empty; want: %v", state, sym, want)
	}
	if got := act.String(); got != want {
		t.Fatalf("unexpected ACTION(%v, %v); want: %v, got: %v", state, sym, want, got)
	}
}

func assertNoAction(t *testing.T, tab *ParsingTable, state int, sym string) {
	t.Helper()

	if act, ok := tab.Action(state, sym); ok {
		t.Fatalf("ACTION(%v, %v) must be empty; got: %v", state, sym, act)
	}
}

func assertGoto(t *testing.T, tab *ParsingTable, state int, sym string, want int) {
	t.Helper()

	to, ok := tab.Goto(state, sym)
	if !ok {
		t.Fatalf("GOTO(%v, %v) is empty; want: %v", state, sym, want)
	}
	if to != want {
		t.Fatalf("unexpected GOTO(%v, %v); want: %v, got: %v", state, sym, want, to)
	}
}

func TestGenerateTable_lr0(t *testing.T) {
	g := newTestGrammar(t, `
E -> E + T | T
T -> id
`)
	tab, err := GenerateTable(g, ModeLR0)
	if err != nil {
		t.Fatal(err)
	}

	if !tab.Valid() {
		t.Fatalf("the grammar is LR(0); got conflicts: %v and %v", tab.ShiftReduceConflicts(), tab.ReduceReduceConflicts())
	}
	if tab.NumStates() != 6 {
		t.Fatalf("unexpected state count; want: %v, got: %v", 6, tab.NumStates())
	}

	assertAction(t, tab, 0, "id", "s3")
	assertNoAction(t, tab, 0, "+")
	assertNoAction(t, tab, 0, EndMarker)

	assertAction(t, tab, 1, EndMarker, "accept")
	assertAction(t, tab, 1, "+", "s4")

	// LR(0) reduces on every terminal and on the end marker
	for _, sym := range []string{"+", "id", EndMarker} {
		assertAction(t, tab, 2, sym, "r2")
		assertAction(t, tab, 3, sym, "r3")
		assertAction(t, tab, 5, sym, "r1")
	}

	assertAction(t, tab, 4, "id", "s3")

	assertGoto(t, tab, 0, "E", 1)
	assertGoto(t, tab, 0, "T", 2)
	assertGoto(t, tab, 4, "T", 5)
	if _, ok := tab.Goto(1, "E"); ok {
		t.Fatalf("GOTO(1, E) must be empty")
	}
}

func TestGenerateTable_slr1(t *testing.T) {
	g := newTestGrammar(t, `
E -> E + T | T
T -> id
`)
	tab, err := GenerateTable(g, ModeSLR1)
	if err != nil {
		t.Fatal(err)
	}

	if !tab.Valid() {
		t.Fatalf("the grammar is SLR(1); got conflicts: %v and %v", tab.ShiftReduceConflicts(), tab.ReduceReduceConflicts())
	}

	// reduces appear only on FOLLOW symbols, so never on id
	for _, state := range []int{2, 3, 5} {
		assertNoAction(t, tab, state, "id")
	}
	assertAction(t, tab, 2, "+", "r2")
	assertAction(t, tab, 2, EndMarker, "r2")
	assertAction(t, tab, 3, "+", "r3")
	assertAction(t, tab, 3, EndMarker, "r3")
	assertAction(t, tab, 5, "+", "r1")
	assertAction(t, tab, 5, EndMarker, "r1")

	// shifts and the accept do not depend on the mode
	assertAction(t, tab, 0, "id", "s3")
	assertAction(t, tab, 1, EndMarker, "accept")
	assertGoto(t, tab, 0, "E", 1)
}

func TestGenerateTable_shiftReduceConflict(t *testing.T) {
	// the dangling-else grammar is neither LR(0) nor SLR(1)
	src := `
S -> i S e S | i S | a
`
	for _, mode := range []Mode{ModeLR0, ModeSLR1} {
		t.Run(string(mode), func(t *testing.T) {
			tab, err := GenerateTable(newTestGrammar(t, src), mode)
			if err != nil {
				t.Fatal(err)
			}

			if tab.Valid() {
				t.Fatalf("the table must have conflicts")
			}
			srs := tab.ShiftReduceConflicts()
			if len(srs) != 1 {
				t.Fatalf("unexpected conflict count; want: %v, got: %v", 1, len(srs))
			}
			sr := srs[0]
			if sr.State != 4 || sr.Symbol != "e" || sr.Shift != "s5" || sr.Reduce != "r2" {
				t.Fatalf("unexpected conflict; got: %+v", sr)
			}
			if rrs := tab.ReduceReduceConflicts(); len(rrs) != 0 {
				t.Fatalf("unexpected reduce/reduce conflicts: %v", rrs)
			}

			// the shift wins the conflicted cell
			assertAction(t, tab, 4, "e", "s5")
			assertAction(t, tab, 4, EndMarker, "r2")
		})
	}
}

func TestGenerateTable_reduceReduceConflict(t *testing.T) {
	src := `
S -> A | B
A -> c
B -> c
`

	t.Run("lr0 conflicts on every lookahead", func(t *testing.T) {
		tab, err := GenerateTable(newTestGrammar(t, src), ModeLR0)
		if err != nil {
			t.Fatal(err)
		}

		if tab.Valid() {
			t.Fatalf("the table must have conflicts")
		}
		rrs := tab.ReduceReduceConflicts()
		if len(rrs) != 2 {
			t.Fatalf("unexpected conflict count; want: %v, got: %v", 2, len(rrs))
		}
		for i, sym := range []string{"c", EndMarker} {
			rr := rrs[i]
			if rr.State != 4 || rr.Symbol != sym || rr.Reduce1 != "r3" || rr.Reduce2 != "r4" {
				t.Fatalf("unexpected conflict #%v; got: %+v", i, rr)
			}
		}

		// the reduce installed first wins
		assertAction(t, tab, 4, "c", "r3")
		assertAction(t, tab, 4, EndMarker, "r3")
	})

	t.Run("slr1 conflicts only inside FOLLOW", func(t *testing.T) {
		tab, err := GenerateTable(newTestGrammar(t, src), ModeSLR1)
		if err != nil {
			t.Fatal(err)
		}

		if tab.Valid() {
			t.Fatalf("the table must have conflicts")
		}
		rrs := tab.ReduceReduceConflicts()
		if len(rrs) != 1 {
			t.Fatalf("unexpected conflict count; want: %v, got: %v", 1, len(rrs))
		}
		if rr := rrs[0]; rr.State != 4 || rr.Symbol != EndMarker || rr.Reduce1 != "r3" || rr.Reduce2 != "r4" {
			t.Fatalf("unexpected conflict; got: %+v", rr)
		}

		assertAction(t, tab, 4, EndMarker, "r3")
		assertNoAction(t, tab, 4, "c")
	})
}

func TestGenerateTable_slr1ResolvesLR0Conflicts(t *testing.T) {
	src := `
E -> E + T | T
T -> T * F | F
F -> id
`

	lr0, err := GenerateTable(newTestGrammar(t, src), ModeLR0)
	if err != nil {
		t.Fatal(err)
	}
	slr1, err := GenerateTable(newTestGrammar(t, src), ModeSLR1)
	if err != nil {
		t.Fatal(err)
	}

	if lr0.Valid() {
		t.Fatalf("the grammar must not be LR(0)")
	}
	srs := lr0.ShiftReduceConflicts()
	if len(srs) != 2 {
		t.Fatalf("unexpected conflict count; want: %v, got: %v", 2, len(srs))
	}
	if sr := srs[0]; sr.State != 3 || sr.Symbol != "*" || sr.Shift != "s6" || sr.Reduce != "r2" {
		t.Fatalf("unexpected conflict; got: %+v", sr)
	}
	if sr := srs[1]; sr.State != 7 || sr.Symbol != "*" || sr.Shift != "s6" || sr.Reduce != "r1" {
		t.Fatalf("unexpected conflict; got: %+v", sr)
	}

	if !slr1.Valid() {
		t.Fatalf("the grammar is SLR(1); got conflicts: %v", slr1.ShiftReduceConflicts())
	}
	// FOLLOW(E) does not contain *, so the cells no longer collide
	assertAction(t, slr1, 3, "*", "s6")
	assertAction(t, slr1, 3, "+", "r2")
	assertAction(t, slr1, 3, EndMarker, "r2")
	assertAction(t, slr1, 7, "*", "s6")
	assertAction(t, slr1, 7, "+", "r1")

	if lr0.NumStates() != slr1.NumStates() {
		t.Fatalf("both modes share the automaton; want: %v states, got: %v", lr0.NumStates(), slr1.NumStates())
	}
}

func TestGenerateTable_acceptKeepsItsCell(t *testing.T) {
	// A → A asks to reduce on the end marker of the accepting state.
	// The accept action stays and no conflict is recorded.
	g := newTestGrammar(t, `
A -> A | a
`)
	tab, err := GenerateTable(g, ModeLR0)
	if err != nil {
		t.Fatal(err)
	}

	if !tab.Valid() {
		t.Fatalf("the table must stay conflict-free; got: %v and %v", tab.ShiftReduceConflicts(), tab.ReduceReduceConflicts())
	}
	assertAction(t, tab, 1, EndMarker, "accept")
	assertAction(t, tab, 1, "a", "r1")
}

func TestGenerateTable_unsupportedMode(t *testing.T) {
	g := newTestGrammar(t, `
S -> a
`)
	if _, err := GenerateTable(g, Mode("lalr1")); err == nil {
		t.Fatalf("an unsupported mode must be rejected")
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode("lr0"); err != nil || m != ModeLR0 {
		t.Fatalf("want: %v, got: %v (err: %v)", ModeLR0, m, err)
	}
	if m, err := ParseMode("slr1"); err != nil || m != ModeSLR1 {
		t.Fatalf("want: %v, got: %v (err: %v)", ModeSLR1, m, err)
	}
	if _, err := ParseMode("lalr1"); err == nil {
		t.Fatalf("an unknown mode name must be rejected")
	}
}
