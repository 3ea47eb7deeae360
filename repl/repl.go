// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"

	"whileanalyzer/internal/format"
	"whileanalyzer/internal/interp"
	"whileanalyzer/internal/interval"
	"whileanalyzer/internal/parser"
	"whileanalyzer/internal/store"
)

const PROMPT = ">> "

// Start reads one statement per line from in, threading it through a
// running abstract store under window w, and prints the updated store
// to out after each line. A line that fails to parse reports its errors
// and leaves the running store untouched.
func Start(w interval.Window, in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	ip := interp.New(w)
	ip.Output = out
	s := store.New()

	for {
		fmt.Fprint(out, PROMPT)
		if !scanner.Scan() {
			return
		}

		line := scanner.Text()
		if line == "" {
			continue
		}

		program, scanErrs, parseErrs := parser.Parse(line, "<repl>")
		if len(scanErrs) > 0 || len(parseErrs) > 0 {
			for _, e := range scanErrs {
				fmt.Fprintf(out, "scan error: %s\n", e.Message)
			}
			for _, e := range parseErrs {
				fmt.Fprintf(out, "parse error: %s\n", e.Message)
			}
			continue
		}

		s = ip.Step(program.Root, s)
		fmt.Fprintln(out, format.DumpStore(s))
	}
}
