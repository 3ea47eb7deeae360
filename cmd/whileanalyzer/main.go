// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"

	"whileanalyzer/internal/analysis"
	"whileanalyzer/internal/errors"
	"whileanalyzer/internal/format"
	"whileanalyzer/internal/interval"
	"whileanalyzer/internal/parser"
	"whileanalyzer/internal/store"
	"whileanalyzer/internal/storeparser"
	"whileanalyzer/repl"
)

var (
	windowFlag string
	modeFlag   string
	initFlag   string
)

func main() {
	root := &cobra.Command{
		Use:     "whileanalyzer",
		Short:   "Interval-domain static analyzer for the While language",
		Version: "0.1.0",
	}

	runCmd := &cobra.Command{
		Use:   "run <program-file>",
		Short: "Analyze a program and print its final store",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalysis,
	}
	runCmd.Flags().StringVar(&windowFlag, "window", "-128,127", "widening window as \"m,n\"")
	runCmd.Flags().StringVar(&modeFlag, "mode", "abstract", "evaluation mode: concrete|abstract")
	runCmd.Flags().StringVar(&initFlag, "init", "", "path to an initial-store file (var := integer; lines)")

	replCmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive read-eval-print loop",
		Args:  cobra.NoArgs,
		RunE:  runRepl,
	}
	replCmd.Flags().StringVar(&windowFlag, "window", "-128,127", "widening window as \"m,n\"")

	root.AddCommand(runCmd, replCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runAnalysis(cmd *cobra.Command, args []string) error {
	path := args[0]
	runID := ksuid.New()
	fmt.Fprintf(os.Stderr, "run %s: analyzing %s\n", runID, path)

	source, err := os.ReadFile(path)
	if err != nil {
		color.Red("failed to read %s: %s", path, err)
		os.Exit(1)
	}

	program, scanErrs, parseErrs := parser.Parse(string(source), path)
	if len(scanErrs) > 0 || len(parseErrs) > 0 {
		reportSyntaxErrors(path, string(source), scanErrs, parseErrs)
		os.Exit(1)
	}

	w, err := parseWindow(windowFlag)
	if err != nil {
		color.Red("invalid --window: %s", err)
		os.Exit(1)
	}

	mode, err := parseMode(modeFlag)
	if err != nil {
		color.Red("invalid --mode: %s", err)
		os.Exit(1)
	}

	initial := store.New()
	if initFlag != "" {
		vars, err := storeparser.ParseFile(initFlag)
		if err != nil {
			color.Red("failed to parse initial store %s: %s", initFlag, err)
			os.Exit(1)
		}
		initial = store.FromConcrete(vars)
	}

	final, err := analysis.AnalyzeTo(program, initial, w, mode, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "run %s: failed\n", runID)
		reportAnalysisError(path, string(source), err)
		os.Exit(1)
	}

	fmt.Println(format.DumpStore(final))
	return nil
}

func runRepl(cmd *cobra.Command, args []string) error {
	w, err := parseWindow(windowFlag)
	if err != nil {
		color.Red("invalid --window: %s", err)
		os.Exit(1)
	}
	return startRepl(w, os.Stdin, os.Stdout)
}

func startRepl(w interval.Window, in io.Reader, out io.Writer) error {
	repl.Start(w, in, out)
	return nil
}

func parseWindow(raw string) (interval.Window, error) {
	parts := strings.SplitN(raw, ",", 2)
	if len(parts) != 2 {
		return interval.Window{}, fmt.Errorf("expected \"m,n\", got %q", raw)
	}
	m, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return interval.Window{}, fmt.Errorf("invalid m: %w", err)
	}
	n, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return interval.Window{}, fmt.Errorf("invalid n: %w", err)
	}
	return interval.Window{M: m, N: n}, nil
}

func parseMode(raw string) (analysis.Mode, error) {
	switch strings.ToLower(raw) {
	case "concrete":
		return analysis.Concrete, nil
	case "abstract":
		return analysis.Abstract, nil
	default:
		return 0, fmt.Errorf("must be \"concrete\" or \"abstract\", got %q", raw)
	}
}

func reportSyntaxErrors(path, source string, scanErrs []parser.ScanError, parseErrs []parser.ParseError) {
	reporter := errors.NewErrorReporter(path, source)
	for _, e := range scanErrs {
		ce := errors.NewSemanticError(errors.ErrorUnexpectedToken, e.Message, e.Position).WithLength(e.Length).Build()
		fmt.Println(reporter.FormatError(ce))
	}
	for _, e := range parseErrs {
		ce := errors.NewSemanticError(errors.ErrorUnexpectedEOF, e.Message, e.Position).Build()
		fmt.Println(reporter.FormatError(ce))
	}
}

func reportAnalysisError(path, source string, err error) {
	var analysisErr *analysis.Error
	if ok := asAnalysisError(err, &analysisErr); ok {
		reporter := errors.NewErrorReporter(path, source)
		fmt.Println(reporter.FormatError(analysisErr.Compiler))
		return
	}
	color.Red("analysis failed: %s", err)
}

func asAnalysisError(err error, target **analysis.Error) bool {
	if ae, ok := err.(*analysis.Error); ok {
		*target = ae
		return true
	}
	return false
}
