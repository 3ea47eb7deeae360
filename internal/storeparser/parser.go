// SPDX-License-Identifier: Apache-2.0
package storeparser

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"
)

var storeParser = participle.MustBuild[StoreFile](
	participle.Lexer(storeLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(2),
)

// ParseFile reads and parses an initial-store file into a name -> value
// map suitable for store.FromConcrete.
func ParseFile(path string) (map[string]int64, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}
	return ParseString(path, string(source))
}

// ParseString parses source (named path for error messages) into a
// name -> value map.
func ParseString(path, source string) (map[string]int64, error) {
	file, err := storeParser.ParseString(path, source)
	if err != nil {
		reportParseError(source, err)
		return nil, err
	}

	vars := make(map[string]int64, len(file.Bindings))
	for _, b := range file.Bindings {
		vars[b.Name] = b.Value
	}
	return vars, nil
}

func reportParseError(src string, err error) {
	pe, ok := err.(participle.Error)
	if !ok {
		color.Red("unexpected error: %s", err)
		return
	}

	pos := pe.Position()
	lines := strings.Split(src, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		color.Red("syntax error at unknown location: %s", err)
		return
	}

	line := lines[pos.Line-1]
	caret := strings.Repeat(" ", pos.Column-1) + "^"

	color.Red("syntax error in %s at line %d, column %d:", pos.Filename, pos.Line, pos.Column)
	fmt.Println(line)
	color.HiRed(caret)
	fmt.Printf("-> %s\n", pe.Message())
}
