package grammar

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"sort"
	"strings"
)

// lrItem is an LR(0) item: a production with a dot somewhere in its
// right-hand side. Items refer to productions by number, so two items
// are equal iff they mark the same position of the same production.
// The zero value is the initial item S' → • start.
type lrItem struct {
	prod int
	dot  int
}

// accept reports whether this is the accepting item S' → start •.
func (i lrItem) accept() bool {
	return i.prod == 0 && i.dot == 1
}

// reducible reports whether the dot sits at the end of the production.
func (i lrItem) reducible(g *Grammar) bool {
	prod, _ := g.Production(i.prod)
	return i.dot >= len(prod.RHS())
}

// dottedSymbol returns the symbol immediately after the dot, or false
// when the item is reducible.
func (i lrItem) dottedSymbol(g *Grammar) (string, bool) {
	prod, _ := g.Production(i.prod)
	rhs := prod.RHS()
	if i.dot >= len(rhs) {
		return "", false
	}
	return rhs[i.dot], true
}

// label renders the item with • marking the dot, like `E → E • + T`.
// The item of an empty production renders as `A → •`.
func (i lrItem) label(g *Grammar) string {
	prod, _ := g.Production(i.prod)
	rhs := prod.RHS()
	parts := make([]string, 0, len(rhs)+1)
	parts = append(parts, rhs[:i.dot]...)
	parts = append(parts, "•")
	parts = append(parts, rhs[i.dot:]...)
	return fmt.Sprintf("%v → %v", prod.LHS(), strings.Join(parts, " "))
}

type itemSet map[lrItem]struct{}

func (s itemSet) add(item lrItem) {
	s[item] = struct{}{}
}

// sorted returns the items ordered by production number, then dot
// position. State listings and the ACTION fill both scan items in this
// order.
func (s itemSet) sorted() []lrItem {
	items := make([]lrItem, 0, len(s))
	for item := range s {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].prod != items[j].prod {
			return items[i].prod < items[j].prod
		}
		return items[i].dot < items[j].dot
	})
	return items
}

type itemSetID [32]byte

// id digests the whole item set. Two sets share an ID iff they contain
// exactly the same items, which is the state-identity rule.
func (s itemSet) id() itemSetID {
	items := s.sorted()
	buf := make([]byte, len(items)*8)
	for i, item := range items {
		binary.LittleEndian.PutUint32(buf[i*8:], uint32(item.prod))
		binary.LittleEndian.PutUint32(buf[i*8+4:], uint32(item.dot))
	}
	return sha256.Sum256(buf)
}

// closure extends the item set with an item B → • γ for every
// production of every non-terminal that appears right after a dot,
// until nothing new can be added.
func (g *Grammar) closure(items itemSet) itemSet {
	clo := itemSet{}
	work := make([]lrItem, 0, len(items))
	for item := range items {
		clo.add(item)
		work = append(work, item)
	}
	for len(work) > 0 {
		item := work[0]
		work = work[1:]
		sym, ok := item.dottedSymbol(g)
		if !ok || !g.IsNonTerminal(sym) {
			continue
		}
		for _, prod := range g.ProductionsOf(sym) {
			next := lrItem{prod: prod.Num()}
			if _, ok := clo[next]; ok {
				continue
			}
			clo.add(next)
			work = append(work, next)
		}
	}
	return clo
}

// gotoItems advances the dot of every item that expects sym and returns
// the closure of the result. An empty result means the state has no
// transition on sym.
func (g *Grammar) gotoItems(items itemSet, sym string) itemSet {
	moved := itemSet{}
	for item := range items {
		dotted, ok := item.dottedSymbol(g)
		if !ok || dotted != sym {
			continue
		}
		moved.add(lrItem{prod: item.prod, dot: item.dot + 1})
	}
	if len(moved) == 0 {
		return moved
	}
	return g.closure(moved)
}
