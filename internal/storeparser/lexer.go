// SPDX-License-Identifier: Apache-2.0
package storeparser

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var storeLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `//[^\n]*`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"Int", `-?[0-9]+`, nil},
		{"Punctuation", `[:=;]`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
