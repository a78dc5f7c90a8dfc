// Package spec provides the textual grammar format and the serialized
// representations of generated parsing tables.
//
// A grammar source is line-oriented. Each line has the form
//
//	LHS -> alternative | alternative | ...
//
// where an alternative is a whitespace-separated sequence of symbols.
// Whitespace inside quotes does not split and the quote characters stay
// part of the symbol. An alternative written as ε, epsilon, or left blank
// is the empty production. Lines starting with # and lines without an
// arrow are skipped. Writing the same LHS on several lines appends the
// new alternatives to that non-terminal.
package spec

import (
	"bufio"
	"io"
	"strings"
	"unicode"
)

type RootNode struct {
	Productions []*ProductionNode
}

type ProductionNode struct {
	LHS string
	RHS []*AlternativeNode
	Row int
}

type AlternativeNode struct {
	Symbols []string
	Row     int
}

// Parse reads a grammar source and returns its AST. Alternatives are
// grouped under the first occurrence of their LHS, so production order
// (and with it the start symbol and production numbering) follows the
// order in which left-hand sides first appear.
func Parse(src io.Reader) (*RootNode, error) {
	root := &RootNode{}
	prods := map[string]*ProductionNode{}

	row := 0
	s := bufio.NewScanner(src)
	for s.Scan() {
		row++
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.Contains(line, "->") {
			continue
		}

		parts := strings.SplitN(line, "->", 2)
		lhs := strings.TrimSpace(parts[0])
		rhs := strings.TrimSpace(parts[1])

		prod, ok := prods[lhs]
		if !ok {
			prod = &ProductionNode{
				LHS: lhs,
				Row: row,
			}
			prods[lhs] = prod
			root.Productions = append(root.Productions, prod)
		}

		for _, alt := range strings.Split(rhs, "|") {
			alt = strings.TrimSpace(alt)

			var syms []string
			if alt != "ε" && alt != "epsilon" && alt != "" {
				syms = splitSymbols(alt)
			}
			prod.RHS = append(prod.RHS, &AlternativeNode{
				Symbols: syms,
				Row:     row,
			})
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	return root, nil
}

func splitSymbols(alt string) []string {
	var syms []string
	var b strings.Builder
	inQuotes := false
	for _, c := range alt {
		switch {
		case c == '"' || c == '\'':
			inQuotes = !inQuotes
			b.WriteRune(c)
		case unicode.IsSpace(c) && !inQuotes:
			if b.Len() > 0 {
				syms = append(syms, b.String())
				b.Reset()
			}
		default:
			b.WriteRune(c)
		}
	}
	if b.Len() > 0 {
		syms = append(syms, b.String())
	}
	return syms
}
