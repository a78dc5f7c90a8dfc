package grammar

import (
	"fmt"
	"strings"
)

// Production is a single rewriting rule of a grammar. Productions are
// numbered in the order they appear in a grammar definition, and the
// augmented start production always has the number 0.
type Production struct {
	num int
	lhs string
	rhs []string
}

func newProduction(num int, lhs string, rhs []string) *Production {
	return &Production{
		num: num,
		lhs: lhs,
		rhs: rhs,
	}
}

// Num returns the production number.
func (p *Production) Num() int {
	return p.num
}

// LHS returns the left-hand side symbol.
func (p *Production) LHS() string {
	return p.lhs
}

// RHS returns the right-hand side symbols. An empty production returns an
// empty slice. Callers must not modify the returned slice.
func (p *Production) RHS() []string {
	return p.rhs
}

func (p *Production) isEpsilon() bool {
	return len(p.rhs) == 0
}

// String renders the production in the form the reports and parse trees
// use, like `E → E + T`. An empty right-hand side renders as `A → ε`.
func (p *Production) String() string {
	if p.isEpsilon() {
		return fmt.Sprintf("%v → ε", p.lhs)
	}
	return fmt.Sprintf("%v → %v", p.lhs, strings.Join(p.rhs, " "))
}

func (p *Production) equals(lhs string, rhs []string) bool {
	if p.lhs != lhs || len(p.rhs) != len(rhs) {
		return false
	}
	for i, sym := range p.rhs {
		if sym != rhs[i] {
			return false
		}
	}
	return true
}

type productionSet struct {
	prods      []*Production
	lhsToProds map[string][]*Production
}

func newProductionSet() *productionSet {
	return &productionSet{
		lhsToProds: map[string][]*Production{},
	}
}

func (ps *productionSet) append(lhs string, rhs []string) *Production {
	prod := newProduction(len(ps.prods), lhs, rhs)
	ps.prods = append(ps.prods, prod)
	ps.lhsToProds[lhs] = append(ps.lhsToProds[lhs], prod)
	return prod
}

func (ps *productionSet) findByLHS(lhs string) []*Production {
	return ps.lhsToProds[lhs]
}

func (ps *productionSet) findByNum(num int) (*Production, bool) {
	if num < 0 || num >= len(ps.prods) {
		return nil, false
	}
	return ps.prods[num], true
}

func (ps *productionSet) contains(lhs string, rhs []string) bool {
	for _, prod := range ps.lhsToProds[lhs] {
		if prod.equals(lhs, rhs) {
			return true
		}
	}
	return false
}

func (ps *productionSet) all() []*Production {
	return ps.prods
}
