package test

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"unicode/utf8"
)

// TreeDiff describes one mismatch between an expected and an actual
// parse tree.
type TreeDiff struct {
	ExpectedPath string
	ActualPath   string
	Message      string
}

func newTreeDiff(expected, actual *Tree, message string) *TreeDiff {
	return &TreeDiff{
		ExpectedPath: expected.path(),
		ActualPath:   actual.path(),
		Message:      message,
	}
}

// Tree is the expectation form of a parse tree: a symbol and its
// children, without the production bookkeeping the parser records.
type Tree struct {
	Parent   *Tree
	Offset   int
	Kind     string
	Children []*Tree
}

func NewTree(kind string, children ...*Tree) *Tree {
	return &Tree{
		Kind:     kind,
		Children: children,
	}
}

// Fill sets the parent and offset of every node so that path
// expressions are available. It returns the receiver.
func (t *Tree) Fill() *Tree {
	for i, c := range t.Children {
		c.Parent = t
		c.Offset = i
		c.Fill()
	}
	return t
}

func (t *Tree) path() string {
	if t.Parent == nil {
		return t.Kind
	}
	return fmt.Sprintf("%v.[%v]%v", t.Parent.path(), t.Offset, t.Kind)
}

// DiffTree compares an actual tree against an expected one and reports
// every mismatch. The kind _ in the expected tree matches any symbol.
func DiffTree(expected, actual *Tree) []*TreeDiff {
	if expected == nil && actual == nil {
		return nil
	}
	if expected.Kind != "_" && actual.Kind != expected.Kind {
		msg := fmt.Sprintf("unexpected kind: expected '%v' but got '%v'", expected.Kind, actual.Kind)
		return []*TreeDiff{
			newTreeDiff(expected, actual, msg),
		}
	}
	if len(actual.Children) != len(expected.Children) {
		msg := fmt.Sprintf("unexpected node count: expected %v but got %v", len(expected.Children), len(actual.Children))
		return []*TreeDiff{
			newTreeDiff(expected, actual, msg),
		}
	}
	var diffs []*TreeDiff
	for i, exp := range expected.Children {
		if ds := DiffTree(exp, actual.Children[i]); len(ds) > 0 {
			diffs = append(diffs, ds...)
		}
	}
	return diffs
}

// TestCase is one test-case file: a description, the source text to
// parse, and the expected parse tree.
type TestCase struct {
	Description string
	Source      []byte
	Output      *Tree
}

// ParseTestCase reads a test case consisting of three parts separated
// by delimiter lines of three or more hyphens: a description, a source
// text, and a tree expectation like (E (E (id)) (+) (id)).
func ParseTestCase(r io.Reader) (*TestCase, error) {
	parts, err := splitIntoParts(r)
	if err != nil {
		return nil, err
	}
	if len(parts) != 3 {
		return nil, fmt.Errorf("too many or too few part delimiters: a test case consists of just three parts: %v parts found", len(parts))
	}

	tp := &treeParser{
		lineOffset: parts[0].lineCount + parts[1].lineCount + 2,
		src:        string(parts[2].buf),
	}
	tree, err := tp.parseTree()
	if err != nil {
		return nil, err
	}

	return &TestCase{
		Description: string(parts[0].buf),
		Source:      parts[1].buf,
		Output:      tree,
	}, nil
}

type testCasePart struct {
	buf       []byte
	lineCount int
}

func splitIntoParts(r io.Reader) ([]*testCasePart, error) {
	var parts []*testCasePart
	s := bufio.NewScanner(r)
	for {
		buf, lineCount, err := readPart(s)
		if err != nil {
			return nil, err
		}
		if buf == nil {
			break
		}
		parts = append(parts, &testCasePart{
			buf:       buf,
			lineCount: lineCount,
		})
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return parts, nil
}

var reDelim = regexp.MustCompile(`^\s*---+\s*$`)

func readPart(s *bufio.Scanner) ([]byte, int, error) {
	if !s.Scan() {
		return nil, 0, s.Err()
	}
	buf := &bytes.Buffer{}
	line := s.Bytes()
	if reDelim.Match(line) {
		// (*bytes.Buffer).Bytes() returns nil when nothing was written,
		// and a nil part means the end of the input, so return an empty
		// slice explicitly.
		return []byte{}, 0, nil
	}
	if _, err := buf.Write(line); err != nil {
		return nil, 0, err
	}
	lineCount := 1
	for s.Scan() {
		line := s.Bytes()
		if reDelim.Match(line) {
			return buf.Bytes(), lineCount, nil
		}
		if _, err := buf.WriteString("\n"); err != nil {
			return nil, 0, err
		}
		if _, err := buf.Write(line); err != nil {
			return nil, 0, err
		}
		lineCount++
	}
	if err := s.Err(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), lineCount, nil
}

// treeParser reads a parenthesized tree expectation. Error positions
// refer to lines of the enclosing test-case file, hence the offset.
type treeParser struct {
	lineOffset int
	src        string
	pos        int
	row        int
	col        int
}

func (tp *treeParser) parseTree() (*Tree, error) {
	tp.skipSpaces()
	if _, ok := tp.peek(); !ok {
		return nil, tp.syntaxError("a tree expectation is required")
	}
	tree, err := tp.parseNode()
	if err != nil {
		return nil, err
	}
	tp.skipSpaces()
	if c, ok := tp.peek(); ok {
		return nil, tp.syntaxError(fmt.Sprintf("expected the end of the tree but found '%c'", c))
	}
	return tree.Fill(), nil
}

func (tp *treeParser) parseNode() (*Tree, error) {
	c, ok := tp.peek()
	if !ok {
		return nil, tp.syntaxError("expected '(' but found the end of the tree")
	}
	if c != '(' {
		return nil, tp.syntaxError(fmt.Sprintf("expected '(' but found '%c'", c))
	}
	tp.next()
	tp.skipSpaces()

	kind := tp.scanSymbol()
	if kind == "" {
		return nil, tp.syntaxError("expected a symbol name")
	}

	var children []*Tree
	for {
		tp.skipSpaces()
		c, ok := tp.peek()
		if !ok {
			return nil, tp.syntaxError("expected ')' but found the end of the tree")
		}
		if c == ')' {
			tp.next()
			return NewTree(kind, children...), nil
		}
		if c != '(' {
			return nil, tp.syntaxError(fmt.Sprintf("expected '(' or ')' but found '%c'", c))
		}
		child, err := tp.parseNode()
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
}

func (tp *treeParser) scanSymbol() string {
	start := tp.pos
	for {
		c, ok := tp.peek()
		if !ok || c == '(' || c == ')' || isSpace(c) {
			break
		}
		tp.next()
	}
	return tp.src[start:tp.pos]
}

func (tp *treeParser) skipSpaces() {
	for {
		c, ok := tp.peek()
		if !ok || !isSpace(c) {
			return
		}
		tp.next()
	}
}

func (tp *treeParser) peek() (rune, bool) {
	if tp.pos >= len(tp.src) {
		return 0, false
	}
	c, _ := utf8.DecodeRuneInString(tp.src[tp.pos:])
	return c, true
}

func (tp *treeParser) next() {
	c, size := utf8.DecodeRuneInString(tp.src[tp.pos:])
	tp.pos += size
	if c == '\n' {
		tp.row++
		tp.col = 0
	} else {
		tp.col++
	}
}

func (tp *treeParser) syntaxError(message string) error {
	return fmt.Errorf("%v:%v: %v", tp.lineOffset+tp.row+1, tp.col+1, message)
}

func isSpace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
