package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/talhanaseem08/ParserGen/driver"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var replFlags = struct {
	mode   *string
	greedy *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "repl <grammar file path>",
		Short:   "Parse input lines interactively",
		Example: `  parsergen repl grammar.txt -m slr1`,
		Args:    cobra.ExactArgs(1),
		RunE:    runREPL,
	}
	replFlags.mode = cmd.Flags().StringP("mode", "m", "lr0", "parser type (lr0 or slr1)")
	replFlags.greedy = cmd.Flags().Bool("greedy", false, "tokenize by longest match instead of whitespace splitting")
	rootCmd.AddCommand(cmd)
}

func runREPL(cmd *cobra.Command, args []string) (retErr error) {
	grmPath := args[0]
	defer func() {
		if retErr != nil {
			stampSource(retErr, grmPath, grmPath)
		}
	}()

	tab, err := genTableFromFile(grmPath, *replFlags.mode)
	if err != nil {
		return err
	}

	if !tab.Valid() {
		printConflicts(tab.Report())
		return fmt.Errorf("Grammar is not %v. Cannot parse with conflicts.", tab.Mode().DisplayName())
	}

	var opts []driver.ParserOption
	if *replFlags.greedy {
		opts = append(opts, driver.WithGreedyTokenizer())
	}
	p, err := driver.NewParser(tab, opts...)
	if err != nil {
		return err
	}

	pterm.Info.Printf("%v table ready: %v states, start symbol %v\n",
		tab.Mode().DisplayName(), tab.NumStates(), tab.Grammar().StartSymbol())
	pterm.Info.Println("Enter a line to parse it. Quit with <ctrl>D.")

	rl, err := readline.New("parsergen> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}

		res := p.Parse(line)
		if !res.Accepted {
			pterm.Error.Println(res.Err.Message)
			continue
		}

		driver.PrintTree(os.Stdout, res.Tree)
		pterm.Success.Printf("Input accepted (%v steps)\n", len(res.Steps))
	}

	pterm.Println("Good bye!")
	return nil
}
