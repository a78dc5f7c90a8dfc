package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	verr "github.com/talhanaseem08/ParserGen/error"
	"github.com/talhanaseem08/ParserGen/grammar"
	"github.com/talhanaseem08/ParserGen/spec"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var generateFlags = struct {
	mode   *string
	json   *bool
	output *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "generate <grammar file path>",
		Short:   "Generate a parsing table from a grammar",
		Example: `  parsergen generate grammar.txt -m slr1`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runGenerate,
	}
	generateFlags.mode = cmd.Flags().StringP("mode", "m", "lr0", "parser type (lr0 or slr1)")
	generateFlags.json = cmd.Flags().Bool("json", false, "print the report as JSON instead of tables")
	generateFlags.output = cmd.Flags().StringP("output", "o", "", "report JSON output file path (implies --json)")
	rootCmd.AddCommand(cmd)
}

func runGenerate(cmd *cobra.Command, args []string) (retErr error) {
	var tmpDirPath string
	defer func() {
		if tmpDirPath == "" {
			return
		}
		os.RemoveAll(tmpDirPath)
	}()

	var grmPath string
	if len(args) > 0 && args[0] != "-" {
		grmPath = args[0]
	}
	sourceName := grmPath

	if grmPath == "" {
		var err error
		tmpDirPath, err = os.MkdirTemp("", "parsergen-generate-*")
		if err != nil {
			return err
		}

		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}

		grmPath = filepath.Join(tmpDirPath, "stdin.grammar")
		err = os.WriteFile(grmPath, src, 0600)
		if err != nil {
			return err
		}
		sourceName = "stdin"
	}
	defer func() {
		if retErr != nil {
			stampSource(retErr, grmPath, sourceName)
		}
	}()

	tab, err := genTableFromFile(grmPath, *generateFlags.mode)
	if err != nil {
		return err
	}

	rep := tab.Report()

	if *generateFlags.json || *generateFlags.output != "" {
		return writeReport(rep, *generateFlags.output)
	}

	printReport(rep)
	return nil
}

// readGrammar parses a grammar file into the grammar model.
func readGrammar(path string) (*grammar.Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot open the grammar file %s: %w", path, err)
	}
	defer f.Close()

	root, err := spec.Parse(f)
	if err != nil {
		return nil, err
	}

	return grammar.NewGrammar(root)
}

func genTableFromFile(grmPath string, modeName string) (*grammar.ParsingTable, error) {
	mode, err := grammar.ParseMode(modeName)
	if err != nil {
		return nil, err
	}

	g, err := readGrammar(grmPath)
	if err != nil {
		return nil, err
	}

	return grammar.GenerateTable(g, mode)
}

// stampSource attaches the grammar file path to spec errors so they
// render with the offending source line.
func stampSource(err error, path string, sourceName string) {
	specErrs, ok := err.(verr.SpecErrors)
	if !ok {
		return
	}
	for _, e := range specErrs {
		e.FilePath = path
		e.SourceName = sourceName
	}
}

// writeReport writes the report as JSON to a file, or to stdout when
// the path is empty.
func writeReport(rep *spec.Report, path string) error {
	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("Cannot create an output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	b, err := json.Marshal(rep)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%v\n", string(b))
	return nil
}

// printReport renders the report as terminal sections and tables.
func printReport(rep *spec.Report) {
	pterm.DefaultSection.Println("Augmented grammar")
	for i, prod := range rep.AugmentedGrammar {
		pterm.Printf("  %v: %v\n", i, prod)
	}

	pterm.DefaultSection.Println("States")
	for _, state := range rep.States {
		pterm.Printf("  State %v\n", state.ID)
		for _, item := range state.Items {
			pterm.Printf("      %v\n", item)
		}
	}

	pterm.DefaultSection.Println("ACTION table")
	actionData := pterm.TableData{append([]string{"STATE"}, rep.Terminals...)}
	for s := 0; s < rep.NumStates; s++ {
		row := make([]string, 0, len(rep.Terminals)+1)
		row = append(row, strconv.Itoa(s))
		for _, t := range rep.Terminals {
			row = append(row, rep.ActionTable[s][t])
		}
		actionData = append(actionData, row)
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(actionData).Render()

	pterm.DefaultSection.Println("GOTO table")
	nonTerms := make([]string, 0, len(rep.NonTerminals))
	for _, sym := range rep.NonTerminals {
		if sym == grammar.AugmentedStart {
			continue
		}
		nonTerms = append(nonTerms, sym)
	}
	gotoData := pterm.TableData{append([]string{"STATE"}, nonTerms...)}
	for s := 0; s < rep.NumStates; s++ {
		row := make([]string, 0, len(nonTerms)+1)
		row = append(row, strconv.Itoa(s))
		for _, sym := range nonTerms {
			if to, ok := rep.GotoTable[s][sym]; ok {
				row = append(row, strconv.Itoa(to))
			} else {
				row = append(row, "")
			}
		}
		gotoData = append(gotoData, row)
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(gotoData).Render()

	if len(rep.FirstSets) > 0 {
		pterm.DefaultSection.Println("FIRST sets")
		printSymbolSets("FIRST", rep.FirstSets)
	}
	if len(rep.FollowSets) > 0 {
		pterm.DefaultSection.Println("FOLLOW sets")
		printSymbolSets("FOLLOW", rep.FollowSets)
	}

	printConflicts(rep)

	pterm.Println()
	displayName := grammar.Mode(rep.ParserType).DisplayName()
	valid := rep.IsLR0
	if rep.IsSLR1 != nil {
		valid = *rep.IsSLR1
	}
	if valid {
		pterm.Success.Printf("The grammar is %v\n", displayName)
	} else {
		pterm.Error.Printf("The grammar is not %v\n", displayName)
	}
}

func printSymbolSets(label string, sets map[string][]string) {
	syms := make([]string, 0, len(sets))
	for sym := range sets {
		syms = append(syms, sym)
	}
	sort.Strings(syms)
	for _, sym := range syms {
		pterm.Printf("  %v(%v) = { %v }\n", label, sym, strings.Join(sets[sym], ", "))
	}
}

func printConflicts(rep *spec.Report) {
	if len(rep.ShiftReduceConflicts) == 0 && len(rep.ReduceReduceConflicts) == 0 {
		return
	}
	pterm.DefaultSection.Println("Conflicts")
	for _, c := range rep.ShiftReduceConflicts {
		pterm.Warning.Printf("shift/reduce conflict in state %v on %v: %v vs %v\n", c.State, c.Symbol, c.Shift, c.Reduce)
	}
	for _, c := range rep.ReduceReduceConflicts {
		pterm.Warning.Printf("reduce/reduce conflict in state %v on %v: %v vs %v\n", c.State, c.Symbol, c.Reduce1, c.Reduce2)
	}
}
