package main

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/talhanaseem08/ParserGen/driver"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	mode   *string
	greedy *bool
	force  *bool
	trace  *bool
	json   *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse <grammar file path> <input>",
		Short:   "Parse an input string with a table generated from the grammar",
		Example: `  parsergen parse grammar.txt "id + id * id" --trace`,
		Args:    cobra.ExactArgs(2),
		RunE:    runParse,
	}
	parseFlags.mode = cmd.Flags().StringP("mode", "m", "lr0", "parser type (lr0 or slr1)")
	parseFlags.greedy = cmd.Flags().Bool("greedy", false, "tokenize by longest match instead of whitespace splitting")
	parseFlags.force = cmd.Flags().Bool("force", false, "parse even when the table has conflicts")
	parseFlags.trace = cmd.Flags().Bool("trace", false, "print the step table")
	parseFlags.json = cmd.Flags().Bool("json", false, "print the result as JSON")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) (retErr error) {
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		err, ok := v.(error)
		if !ok {
			retErr = fmt.Errorf("an unexpected error occurred: %v", v)
			fmt.Fprintf(os.Stderr, "%v:\n%v", retErr, string(debug.Stack()))
			return
		}
		fmt.Fprintf(os.Stderr, "%v:\n%v", err, string(debug.Stack()))
		retErr = err
	}()

	grmPath := args[0]
	defer func() {
		if retErr != nil {
			stampSource(retErr, grmPath, grmPath)
		}
	}()

	tab, err := genTableFromFile(grmPath, *parseFlags.mode)
	if err != nil {
		return err
	}

	if !tab.Valid() && !*parseFlags.force {
		printConflicts(tab.Report())
		return fmt.Errorf("Grammar is not %v. Cannot parse with conflicts. (--force parses anyway)", tab.Mode().DisplayName())
	}

	var opts []driver.ParserOption
	if *parseFlags.greedy {
		opts = append(opts, driver.WithGreedyTokenizer())
	}
	p, err := driver.NewParser(tab, opts...)
	if err != nil {
		return err
	}

	res := p.Parse(args[1])

	if *parseFlags.json {
		b, err := json.Marshal(res)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%v\n", string(b))
		if !res.Accepted {
			return fmt.Errorf("%v", res.Err.Message)
		}
		return nil
	}

	if *parseFlags.trace {
		printSteps(res.Steps)
		pterm.Println()
	}

	if !res.Accepted {
		return fmt.Errorf("%v", res.Err.Message)
	}

	driver.PrintTree(os.Stdout, res.Tree)
	pterm.Println()
	pterm.Success.Printf("Input accepted (%v steps)\n", len(res.Steps))
	return nil
}

// printSteps renders the parse trace, one row per step.
func printSteps(steps []*driver.Step) {
	data := pterm.TableData{{"STEP", "STACK", "INPUT", "ACTION", "DETAIL"}}
	for _, s := range steps {
		stack := make([]string, len(s.Stack))
		for i, v := range s.Stack {
			stack[i] = fmt.Sprintf("%v", v)
		}
		detail := s.Message
		if s.Error != "" {
			detail = s.Error
		}
		data = append(data, []string{
			fmt.Sprintf("%v", s.Step),
			strings.Join(stack, " "),
			strings.Join(s.Input, " "),
			s.Action,
			detail,
		})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
