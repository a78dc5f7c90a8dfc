package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/talhanaseem08/ParserGen/tester"

	"github.com/spf13/cobra"
)

var testFlags = struct {
	mode   *string
	greedy *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "test <grammar file path> <test file path>|<test directory path>",
		Short:   "Test a grammar against tree expectations",
		Example: `  parsergen test grammar.txt testdata/`,
		Args:    cobra.ExactArgs(2),
		RunE:    runTest,
	}
	testFlags.mode = cmd.Flags().StringP("mode", "m", "lr0", "parser type (lr0 or slr1)")
	testFlags.greedy = cmd.Flags().Bool("greedy", false, "tokenize by longest match instead of whitespace splitting")
	rootCmd.AddCommand(cmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	tab, err := genTableFromFile(args[0], *testFlags.mode)
	if err != nil {
		return fmt.Errorf("Cannot read a grammar: %w", err)
	}
	if !tab.Valid() {
		printConflicts(tab.Report())
		return fmt.Errorf("Grammar is not %v. Cannot parse with conflicts.", tab.Mode().DisplayName())
	}

	var cs []*tester.TestCaseWithMetadata
	{
		cs = tester.ListTestCases(args[1])
		errOccurred := false
		for _, c := range cs {
			if c.Error != nil {
				fmt.Fprintf(os.Stderr, "Failed to read a test case or a directory: %v\n%v\n", c.FilePath, c.Error)
				errOccurred = true
			}
		}
		if errOccurred {
			return errors.New("Cannot run test")
		}
	}

	t := &tester.Tester{
		Table:  tab,
		Greedy: *testFlags.greedy,
		Cases:  cs,
	}
	rs := t.Run()
	testFailed := false
	for _, r := range rs {
		fmt.Fprintln(os.Stdout, r)
		if r.Error != nil {
			testFailed = true
		}
	}
	if testFailed {
		return errors.New("Test failed")
	}
	return nil
}
