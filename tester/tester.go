package tester

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/talhanaseem08/ParserGen/driver"
	"github.com/talhanaseem08/ParserGen/grammar"
	tspec "github.com/talhanaseem08/ParserGen/spec/test"
)

type TestResult struct {
	TestCasePath string
	Error        error
	Diffs        []*tspec.TreeDiff
}

func (r *TestResult) String() string {
	if r.Error != nil {
		const indent1 = "    "
		const indent2 = indent1 + indent1

		msgLines := strings.Split(r.Error.Error(), "\n")
		msg := fmt.Sprintf("Failed %v:\n%v%v", r.TestCasePath, indent1, strings.Join(msgLines, "\n"+indent1))
		if len(r.Diffs) == 0 {
			return msg
		}
		var diffLines []string
		for _, diff := range r.Diffs {
			diffLines = append(diffLines, diff.Message)
			diffLines = append(diffLines, fmt.Sprintf("%vexpected path: %v", indent1, diff.ExpectedPath))
			diffLines = append(diffLines, fmt.Sprintf("%vactual path:   %v", indent1, diff.ActualPath))
		}
		return fmt.Sprintf("%v\n%v%v", msg, indent2, strings.Join(diffLines, "\n"+indent2))
	}
	return fmt.Sprintf("Passed %v", r.TestCasePath)
}

type TestCaseWithMetadata struct {
	TestCase *tspec.TestCase
	FilePath string
	Error    error
}

// ListTestCases collects the test cases under testPath. A directory is
// walked recursively, a plain file is read as a single test case.
func ListTestCases(testPath string) []*TestCaseWithMetadata {
	fi, err := os.Stat(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	if !fi.IsDir() {
		c, err := parseTestCase(testPath)
		return []*TestCaseWithMetadata{
			{
				TestCase: c,
				FilePath: testPath,
				Error:    err,
			},
		}
	}

	es, err := os.ReadDir(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	var cases []*TestCaseWithMetadata
	for _, e := range es {
		cs := ListTestCases(filepath.Join(testPath, e.Name()))
		cases = append(cases, cs...)
	}
	return cases
}

func parseTestCase(testCasePath string) (*tspec.TestCase, error) {
	f, err := os.Open(testCasePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return tspec.ParseTestCase(f)
}

// Tester runs test cases against a parsing table.
type Tester struct {
	Table  *grammar.ParsingTable
	Greedy bool
	Cases  []*TestCaseWithMetadata
}

func (t *Tester) Run() []*TestResult {
	var rs []*TestResult
	for _, c := range t.Cases {
		rs = append(rs, runTest(t.Table, t.Greedy, c))
	}
	return rs
}

func runTest(tab *grammar.ParsingTable, greedy bool, c *TestCaseWithMetadata) *TestResult {
	var opts []driver.ParserOption
	if greedy {
		opts = append(opts, driver.WithGreedyTokenizer())
	}
	p, err := driver.NewParser(tab, opts...)
	if err != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        err,
		}
	}

	res := p.Parse(string(c.TestCase.Source))
	if !res.Accepted {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        fmt.Errorf("%v", res.Err.Message),
		}
	}

	diffs := tspec.DiffTree(c.TestCase.Output, genTree(res.Tree).Fill())
	if len(diffs) > 0 {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        fmt.Errorf("output mismatch"),
			Diffs:        diffs,
		}
	}
	return &TestResult{
		TestCasePath: c.FilePath,
	}
}

func genTree(node *driver.Node) *tspec.Tree {
	var children []*tspec.Tree
	if len(node.Children) > 0 {
		children = make([]*tspec.Tree, len(node.Children))
		for i, c := range node.Children {
			children[i] = genTree(c)
		}
	}
	return tspec.NewTree(node.Symbol, children...)
}
