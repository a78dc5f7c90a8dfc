package driver

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"

	"github.com/talhanaseem08/ParserGen/grammar"
)

// operatorChars always split a chunk in whitespace mode, even without
// surrounding spaces, so `id+id` tokenizes as three tokens.
const operatorChars = "+-*/()=,;:.&|!<>"

// LexError reports input that cannot be turned into terminals.
type LexError struct {
	// Token is the offending text, a single character in greedy mode.
	Token string
	// Pos is the byte offset of the failure, or -1 in whitespace mode.
	Pos int
	// Terminals lists the valid terminals in whitespace mode.
	Terminals []string
}

func (e *LexError) Error() string {
	if e.Terminals != nil {
		return fmt.Sprintf("Unknown token: '%v'. Valid terminals: %v", e.Token, strings.Join(e.Terminals, ", "))
	}
	return fmt.Sprintf("Unknown token: '%v' at position %v", e.Token, e.Pos)
}

// Tokenizer turns an input string into the terminal sequence a parser
// consumes. It has two modes: the whitespace mode splits on spaces and
// single operator characters and then validates each token against the
// terminal alphabet, while the greedy mode matches declared terminals
// longest-first anywhere in the input.
type Tokenizer struct {
	terminals []string
	valid     map[string]struct{}
	greedyLex *lexmachine.Lexer
}

// NewTokenizer builds a tokenizer for the given terminal alphabet. The
// greedy matcher is compiled on first use.
func NewTokenizer(terminals []string) *Tokenizer {
	valid := make(map[string]struct{}, len(terminals))
	for _, term := range terminals {
		valid[term] = struct{}{}
	}
	return &Tokenizer{
		terminals: terminals,
		valid:     valid,
	}
}

// Tokenize splits the input on whitespace and operator characters and
// appends the end marker. Blank input yields just the end marker. A
// token outside the terminal alphabet fails; the end marker itself is
// always allowed through.
func (t *Tokenizer) Tokenize(input string) ([]string, error) {
	if strings.TrimSpace(input) == "" {
		return []string{grammar.EndMarker}, nil
	}

	var toks []string
	for _, field := range strings.Fields(input) {
		var b strings.Builder
		for _, c := range field {
			if strings.ContainsRune(operatorChars, c) {
				if b.Len() > 0 {
					toks = append(toks, b.String())
					b.Reset()
				}
				toks = append(toks, string(c))
				continue
			}
			b.WriteRune(c)
		}
		if b.Len() > 0 {
			toks = append(toks, b.String())
		}
	}

	for _, tok := range toks {
		if _, ok := t.valid[tok]; !ok && tok != grammar.EndMarker {
			return nil, &LexError{
				Token:     tok,
				Pos:       -1,
				Terminals: t.terminals,
			}
		}
	}
	return append(toks, grammar.EndMarker), nil
}

// TokenizeGreedy scans the input with a DFA built from the terminal
// alphabet, preferring the longest match at every position and skipping
// whitespace. It appends the end marker. A character no terminal can
// start fails with its position.
func (t *Tokenizer) TokenizeGreedy(input string) ([]string, error) {
	if strings.TrimSpace(input) == "" {
		return []string{grammar.EndMarker}, nil
	}
	if t.greedyLex == nil {
		lex, err := t.compileGreedy()
		if err != nil {
			return nil, err
		}
		t.greedyLex = lex
	}

	scanner, err := t.greedyLex.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	var toks []string
	for tok, err, eof := scanner.Next(); !eof; tok, err, eof = scanner.Next() {
		if err != nil {
			if ui, ok := err.(*machines.UnconsumedInput); ok {
				// StartTC is where the failed match attempt began,
				// which is the first character no terminal can start
				r, _ := utf8.DecodeRuneInString(input[ui.StartTC:])
				return nil, &LexError{
					Token: string(r),
					Pos:   ui.StartTC,
				}
			}
			return nil, err
		}
		toks = append(toks, tok.(string))
	}
	return append(toks, grammar.EndMarker), nil
}

func (t *Tokenizer) compileGreedy() (*lexmachine.Lexer, error) {
	lex := lexmachine.NewLexer()
	for _, term := range t.terminals {
		lex.Add([]byte(escapeLiteral(term)), matchTerminal)
	}
	lex.Add([]byte(`[ \t\n\r]+`), skipMatch)
	if err := lex.Compile(); err != nil {
		return nil, err
	}
	return lex, nil
}

func matchTerminal(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	return string(m.Bytes), nil
}

func skipMatch(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	return nil, nil
}

// escapeLiteral backslash-escapes every character so a terminal is
// matched verbatim, never as a pattern.
func escapeLiteral(lit string) string {
	return "\\" + strings.Join(strings.Split(lit, ""), "\\")
}
