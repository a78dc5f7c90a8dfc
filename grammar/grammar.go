package grammar

import (
	"github.com/emirpasic/gods/sets/treeset"

	verr "github.com/talhanaseem08/ParserGen/error"
	"github.com/talhanaseem08/ParserGen/spec"
)

// Grammar is a context-free grammar augmented with the production
// S' → start. Productions keep their definition order, production 0
// being the augmented one, and the alphabets are kept sorted.
type Grammar struct {
	prods        *productionSet
	start        string
	terminals    *treeset.Set
	nonTerminals *treeset.Set
	termList     []string
	nonTermList  []string
}

// NewGrammar builds a Grammar from a parsed grammar source. The LHS of
// the first production becomes the start symbol. Every symbol that never
// appears as an LHS is a terminal. All semantic errors found are
// reported together.
func NewGrammar(root *spec.RootNode) (*Grammar, error) {
	if root == nil || len(root.Productions) == 0 {
		return nil, verr.SpecErrors{
			&verr.SpecError{Cause: semErrNoProduction},
		}
	}

	var errs verr.SpecErrors

	nonTerms := treeset.NewWithStringComparator()
	for _, prod := range root.Productions {
		switch prod.LHS {
		case "":
			errs = append(errs, &verr.SpecError{Cause: semErrNoLHS, Row: prod.Row})
		case EndMarker:
			errs = append(errs, &verr.SpecError{Cause: semErrReservedEndSym, Row: prod.Row})
		case AugmentedStart:
			errs = append(errs, &verr.SpecError{Cause: semErrReservedAugSym, Row: prod.Row})
		default:
			nonTerms.Add(prod.LHS)
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	start := root.Productions[0].LHS
	terms := treeset.NewWithStringComparator()
	prods := newProductionSet()
	prods.append(AugmentedStart, []string{start})
	for _, prodNode := range root.Productions {
		for _, alt := range prodNode.RHS {
			altOK := true
			for _, sym := range alt.Symbols {
				switch sym {
				case EndMarker:
					errs = append(errs, &verr.SpecError{Cause: semErrReservedEndSym, Row: alt.Row})
					altOK = false
				case AugmentedStart:
					errs = append(errs, &verr.SpecError{Cause: semErrReservedAugSym, Row: alt.Row})
					altOK = false
				default:
					if !nonTerms.Contains(sym) {
						terms.Add(sym)
					}
				}
			}
			if !altOK {
				continue
			}
			if prods.contains(prodNode.LHS, alt.Symbols) {
				errs = append(errs, &verr.SpecError{
					Cause:  semErrDupProduction,
					Detail: newProduction(0, prodNode.LHS, alt.Symbols).String(),
					Row:    alt.Row,
				})
				continue
			}
			prods.append(prodNode.LHS, alt.Symbols)
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	nonTerms.Add(AugmentedStart)

	g := &Grammar{
		prods:        prods,
		start:        start,
		terminals:    terms,
		nonTerminals: nonTerms,
	}
	g.termList = symbolList(terms)
	g.nonTermList = symbolList(nonTerms)
	return g, nil
}

func symbolList(set *treeset.Set) []string {
	vals := set.Values()
	syms := make([]string, len(vals))
	for i, v := range vals {
		syms[i] = v.(string)
	}
	return syms
}

// StartSymbol returns the start symbol of the unaugmented grammar.
func (g *Grammar) StartSymbol() string {
	return g.start
}

// Productions returns every production including the augmented start
// production, in production-number order.
func (g *Grammar) Productions() []*Production {
	return g.prods.all()
}

// Production returns the production with the given number.
func (g *Grammar) Production(num int) (*Production, bool) {
	return g.prods.findByNum(num)
}

// ProductionsOf returns the productions whose LHS is the given symbol,
// in production-number order.
func (g *Grammar) ProductionsOf(lhs string) []*Production {
	return g.prods.findByLHS(lhs)
}

// Terminals returns the terminal alphabet in lexical order. The end
// marker is not part of it.
func (g *Grammar) Terminals() []string {
	return g.termList
}

// NonTerminals returns the non-terminal alphabet in lexical order,
// including the augmented start symbol.
func (g *Grammar) NonTerminals() []string {
	return g.nonTermList
}

func (g *Grammar) IsNonTerminal(sym string) bool {
	return g.nonTerminals.Contains(sym)
}

func (g *Grammar) IsTerminal(sym string) bool {
	return g.terminals.Contains(sym)
}
