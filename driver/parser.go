package driver

import (
	"encoding/json"
	"fmt"

	"github.com/talhanaseem08/ParserGen/grammar"
)

// maxSteps caps a single parse so a buggy or forced table cannot loop
// forever, e.g. a cycle of reduces that never consumes a token.
const maxSteps = 1000

type ParseErrorKind int

const (
	// ParseErrorLex reports input the tokenizer rejected.
	ParseErrorLex ParseErrorKind = iota
	// ParseErrorNoAction reports an empty ACTION cell.
	ParseErrorNoAction
	// ParseErrorNoGoto reports an empty GOTO cell after a reduce.
	ParseErrorNoGoto
	// ParseErrorStackUnderflow reports a reduce that wants more items
	// than the stack holds.
	ParseErrorStackUnderflow
	// ParseErrorUnexpectedEOF reports token exhaustion before accept.
	ParseErrorUnexpectedEOF
	// ParseErrorStepLimit reports a parse exceeding maxSteps.
	ParseErrorStepLimit
	// ParseErrorIncompleteTree reports an accept that left more than
	// one tree root behind.
	ParseErrorIncompleteTree
)

// ParseError describes why a parse was rejected. Message is the exact
// text that also lands in the trace and serialized results.
type ParseError struct {
	Kind    ParseErrorKind
	State   int
	Token   string
	Message string
}

func (e *ParseError) Error() string {
	return e.Message
}

// Step records one iteration of the parse loop, taken before the action
// mutates the stacks.
type Step struct {
	// Step counts from 1.
	Step int `json:"step"`
	// Stack is the interleaved stack snapshot: state, symbol, state, …
	// with the bottom state first.
	Stack []interface{} `json:"stack"`
	// Input is the remaining input including the current token.
	Input []string `json:"input"`
	// Action is the table entry applied, or ERROR.
	Action string `json:"action"`
	// State is the state the action was looked up in.
	State int `json:"state"`
	// Token is the lookahead the action was looked up for.
	Token string `json:"token"`

	Message    string `json:"message,omitempty"`
	Production string `json:"production,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Result is the outcome of a parse: the verdict, the error if any, the
// parse tree if accepted, and the full step trace.
type Result struct {
	Accepted bool
	Err      *ParseError
	Tree     *Node
	Steps    []*Step
}

// MarshalJSON serializes the result with error and parse_tree as
// explicit nulls and steps as an array even when no step ran.
func (r *Result) MarshalJSON() ([]byte, error) {
	var errMsg *string
	if r.Err != nil {
		msg := r.Err.Message
		errMsg = &msg
	}
	steps := r.Steps
	if steps == nil {
		steps = []*Step{}
	}
	return json.Marshal(&struct {
		Accepted bool    `json:"accepted"`
		Error    *string `json:"error"`
		Tree     *Node   `json:"parse_tree"`
		Steps    []*Step `json:"steps"`
	}{
		Accepted: r.Accepted,
		Error:    errMsg,
		Tree:     r.Tree,
		Steps:    steps,
	})
}

type ParserOption func(p *Parser) error

// WithGreedyTokenizer makes the parser tokenize by longest terminal
// match instead of whitespace splitting.
func WithGreedyTokenizer() ParserOption {
	return func(p *Parser) error {
		p.greedy = true
		return nil
	}
}

// Parser runs the table-driven shift-reduce algorithm. It keeps the
// state and symbol stacks separate and interleaves them only in trace
// snapshots. A parser is reusable: every Parse call starts fresh.
type Parser struct {
	tab    *grammar.ParsingTable
	tok    *Tokenizer
	greedy bool

	stateStack []int
	symStack   []string
	treeStack  []*Node
	steps      []*Step
	toks       []string
	cursor     int
}

// NewParser builds a parser on a generated table. The table may carry
// conflicts; whether that is acceptable is the caller's decision.
func NewParser(tab *grammar.ParsingTable, opts ...ParserOption) (*Parser, error) {
	p := &Parser{
		tab: tab,
		tok: NewTokenizer(tab.Grammar().Terminals()),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Parse tokenizes the input and runs it against the table. It never
// returns an error: tokenizer failures come back as a rejected Result
// with an empty trace.
func (p *Parser) Parse(input string) *Result {
	p.reset()

	var err error
	if p.greedy {
		p.toks, err = p.tok.TokenizeGreedy(input)
	} else {
		p.toks, err = p.tok.Tokenize(input)
	}
	if err != nil {
		return &Result{
			Err:   &ParseError{Kind: ParseErrorLex, Message: err.Error()},
			Steps: []*Step{},
		}
	}

	for stepCount := 1; stepCount <= maxSteps; stepCount++ {
		state := p.stateStack[len(p.stateStack)-1]
		if p.cursor >= len(p.toks) {
			return p.reject(&ParseError{
				Kind:    ParseErrorUnexpectedEOF,
				State:   state,
				Message: "Unexpected end of input",
			})
		}
		token := p.toks[p.cursor]

		step := &Step{
			Step:  stepCount,
			Stack: p.stackSnapshot(),
			Input: append([]string{}, p.toks[p.cursor:]...),
			State: state,
			Token: token,
		}

		act, ok := p.tab.Action(state, token)
		if !ok {
			step.Action = "ERROR"
			step.Error = fmt.Sprintf("No action defined for state %d and token '%s'", state, token)
			p.steps = append(p.steps, step)
			return p.reject(&ParseError{
				Kind:    ParseErrorNoAction,
				State:   state,
				Token:   token,
				Message: step.Error,
			})
		}
		step.Action = act.String()

		switch act.Kind() {
		case grammar.ActionAccept:
			if len(p.treeStack) != 1 {
				step.Error = fmt.Sprintf("Incomplete parse tree: %d roots remain", len(p.treeStack))
				p.steps = append(p.steps, step)
				return p.reject(&ParseError{
					Kind:    ParseErrorIncompleteTree,
					State:   state,
					Token:   token,
					Message: step.Error,
				})
			}
			step.Message = "Input accepted!"
			p.steps = append(p.steps, step)
			return &Result{
				Accepted: true,
				Tree:     p.treeStack[0],
				Steps:    p.steps,
			}

		case grammar.ActionShift:
			next := act.State()
			p.symStack = append(p.symStack, token)
			p.stateStack = append(p.stateStack, next)
			p.treeStack = append(p.treeStack, &Node{Symbol: token})
			p.cursor++
			step.Message = fmt.Sprintf("Shift %s, goto state %d", token, next)
			p.steps = append(p.steps, step)

		case grammar.ActionReduce:
			prod, _ := p.tab.Grammar().Production(act.Production())
			rhsLen := len(prod.RHS())

			// stack size counts interleaved entries, states and symbols
			stackLen := len(p.stateStack) + len(p.symStack)
			if stackLen < rhsLen*2 {
				step.Error = fmt.Sprintf("Stack underflow: trying to pop %d items from stack of size %d", rhsLen*2, stackLen)
				p.steps = append(p.steps, step)
				return p.reject(&ParseError{
					Kind:    ParseErrorStackUnderflow,
					State:   state,
					Token:   token,
					Message: step.Error,
				})
			}
			p.stateStack = p.stateStack[:len(p.stateStack)-rhsLen]
			p.symStack = p.symStack[:len(p.symStack)-rhsLen]

			top := p.stateStack[len(p.stateStack)-1]
			next, ok := p.tab.Goto(top, prod.LHS())
			if !ok {
				step.Error = fmt.Sprintf("No GOTO defined for state %d and non-terminal %s", top, prod.LHS())
				p.steps = append(p.steps, step)
				return p.reject(&ParseError{
					Kind:    ParseErrorNoGoto,
					State:   top,
					Token:   token,
					Message: step.Error,
				})
			}
			p.symStack = append(p.symStack, prod.LHS())
			p.stateStack = append(p.stateStack, next)

			node := &Node{
				Symbol:     prod.LHS(),
				Production: prod.String(),
			}
			if rhsLen > 0 {
				children := make([]*Node, rhsLen)
				copy(children, p.treeStack[len(p.treeStack)-rhsLen:])
				p.treeStack = p.treeStack[:len(p.treeStack)-rhsLen]
				node.Children = children
			}
			p.treeStack = append(p.treeStack, node)

			step.Message = fmt.Sprintf("Reduce %s, goto state %d", prod.String(), next)
			step.Production = prod.String()
			p.steps = append(p.steps, step)
		}
	}

	return p.reject(&ParseError{
		Kind:    ParseErrorStepLimit,
		Message: fmt.Sprintf("Parser exceeded maximum steps (%d)", maxSteps),
	})
}

func (p *Parser) reset() {
	p.stateStack = append(p.stateStack[:0], 0)
	p.symStack = p.symStack[:0]
	p.treeStack = p.treeStack[:0]
	p.steps = nil
	p.toks = nil
	p.cursor = 0
}

func (p *Parser) reject(err *ParseError) *Result {
	steps := p.steps
	if steps == nil {
		steps = []*Step{}
	}
	return &Result{
		Err:   err,
		Steps: steps,
	}
}

// stackSnapshot interleaves the two stacks the way traces show them:
// state 0 at the bottom, then the symbol and state of each shift or
// reduce above it.
func (p *Parser) stackSnapshot() []interface{} {
	snap := make([]interface{}, 0, len(p.stateStack)+len(p.symStack))
	for i, st := range p.stateStack {
		if i > 0 {
			snap = append(snap, p.symStack[i-1])
		}
		snap = append(snap, st)
	}
	return snap
}
