package lsp

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"whileanalyzer/internal/analysis"
	"whileanalyzer/internal/ast"
	"whileanalyzer/internal/interval"
	"whileanalyzer/internal/parser"
	"whileanalyzer/internal/store"
	"whileanalyzer/token"
)

// SemanticTokenTypes is the set of semantic token categories this server
// reports, a small subset of the LSP-standard list relevant to a
// four-keyword-family imperative language.
var SemanticTokenTypes = []string{
	"keyword",
	"variable",
	"number",
	"operator",
}

var SemanticTokenModifiers = []string{}

// defaultWindow is the widening window used for every re-analysis; the
// LSP surface does not expose window configuration the way the CLI's
// --window flag does.
var defaultWindow = interval.Window{M: -128, N: 127}

// document is the analyzer's per-file state: the last successfully
// parsed program plus the inferred store from analyzing it, used to
// answer hover requests.
type document struct {
	content string
	program *ast.Program
	final   store.Store
}

// Handler implements the LSP server handlers for the While-language
// analyzer. Its mutex guards the per-document map; parsing and analysis
// of a document run outside the lock.
type Handler struct {
	mu   sync.RWMutex
	docs map[string]*document
}

func NewHandler() *Handler {
	return &Handler{docs: make(map[string]*document)}
}

func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("LSP Initialize called")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			HoverProvider: &protocol.HoverOptions{},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
	}, nil
}

func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Println("LSP Initialized")
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Println("LSP Shutdown")
	return nil
}

func (h *Handler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Printf("opened file: %s\n", params.TextDocument.URI)
	return h.reanalyze(ctx, params.TextDocument.URI, params.TextDocument.Text)
}

func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Printf("changed file: %s\n", params.TextDocument.URI)

	// TextDocumentSyncKindFull means the last change event carries the
	// entire document text.
	var text string
	if len(params.ContentChanges) > 0 {
		if full, ok := params.ContentChanges[len(params.ContentChanges)-1].(protocol.TextDocumentContentChangeEventWhole); ok {
			text = full.Text
		}
	}
	return h.reanalyze(ctx, params.TextDocument.URI, text)
}

func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Printf("closed file: %s\n", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	h.mu.Lock()
	delete(h.docs, path)
	h.mu.Unlock()
	return nil
}

func (h *Handler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (interface{}, error) {
	items := make([]protocol.CompletionItem, 0, len(token.LookupKeywords()))
	kind := protocol.CompletionItemKindKeyword
	for _, kw := range token.LookupKeywords() {
		items = append(items, protocol.CompletionItem{Label: kw, Kind: &kind})
	}
	return &protocol.CompletionList{IsIncomplete: false, Items: items}, nil
}

// TextDocumentHover answers with the inferred interval of the variable
// under the cursor, computed from the document's final abstract store.
func (h *Handler) TextDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	h.mu.RLock()
	doc, ok := h.docs[path]
	h.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	name := identifierAt(doc.content, int(params.Position.Line), int(params.Position.Character))
	if name == "" || !doc.final.Has(name) {
		return nil, nil
	}

	contents := protocol.MarkupContent{
		Kind:  protocol.MarkupKindPlainText,
		Value: fmt.Sprintf("%s: %s", name, doc.final.Get(name).String()),
	}
	return &protocol.Hover{Contents: contents}, nil
}

func (h *Handler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	h.mu.RLock()
	doc, ok := h.docs[path]
	h.mu.RUnlock()
	if !ok {
		return &protocol.SemanticTokens{}, nil
	}

	scanner := parser.NewScanner(doc.content, path)
	tokens, _ := scanner.ScanTokens()

	var data []uint32
	var prevLine, prevStart uint32
	for _, tok := range tokens {
		ttype, ok := semanticTypeOf(tok.Type)
		if !ok {
			continue
		}
		line := uint32(tok.Line - 1)
		start := uint32(tok.Column - 1)
		deltaLine := line - prevLine
		deltaStart := start
		if deltaLine == 0 {
			deltaStart = start - prevStart
		}
		data = append(data, deltaLine, deltaStart, uint32(len(tok.Literal)), ttype, 0)
		prevLine, prevStart = line, start
	}

	return &protocol.SemanticTokens{Data: data}, nil
}

func semanticTypeOf(t token.TokenType) (uint32, bool) {
	switch t {
	case token.SKIP, token.IF, token.THEN, token.ELSE, token.WHILE, token.FOR,
		token.REPEAT, token.UNTIL, token.DO, token.TRUE, token.FALSE, token.PRINT:
		return 0, true // "keyword"
	case token.IDENT:
		return 1, true // "variable"
	case token.INT:
		return 2, true // "number"
	case token.PLUS, token.MINUS, token.ASTERISK, token.SLASH, token.INC, token.DEC,
		token.ASSIGN, token.EQ, token.NOT_EQ, token.LT, token.LTE, token.GT, token.GTE,
		token.AND, token.OR, token.BANG:
		return 3, true // "operator"
	default:
		return 0, false
	}
}

// reanalyze parses and re-runs C6 over the document in abstract mode
// with an empty initial store, publishing diagnostics for any lexical
// or syntax errors found. Semantic soundness errors surfaced by
// analysis.Analyze itself are not currently published as diagnostics —
// only parse/scan failures are, matching the scope of the original
// spec's "fixed contract" for this collaborator.
func (h *Handler) reanalyze(ctx *glsp.Context, uri protocol.DocumentUri, content string) error {
	path, err := uriToPath(uri)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", uri, err)
	}

	program, scanErrs, parseErrs := parser.Parse(content, path)

	var diagnostics []protocol.Diagnostic
	diagnostics = append(diagnostics, ConvertScanErrors(scanErrs)...)
	diagnostics = append(diagnostics, ConvertParseErrors(parseErrs)...)

	doc := &document{content: content, program: program}
	if len(scanErrs) == 0 && len(parseErrs) == 0 {
		if final, err := analysis.Analyze(program, store.New(), defaultWindow, analysis.Abstract); err == nil {
			doc.final = final
		}
	}

	h.mu.Lock()
	h.docs[path] = doc
	h.mu.Unlock()

	sendDiagnosticNotification(ctx, uri, diagnostics)
	return nil
}

// identifierAt returns the identifier token spanning the given 0-based
// line/character position in content, or "" if there is none.
func identifierAt(content string, line, char int) string {
	lines := strings.Split(content, "\n")
	if line < 0 || line >= len(lines) {
		return ""
	}
	text := lines[line]
	if char < 0 || char > len(text) {
		return ""
	}

	isIdentChar := func(c byte) bool {
		return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_'
	}

	start := char
	for start > 0 && isIdentChar(text[start-1]) {
		start--
	}
	end := char
	for end < len(text) && isIdentChar(text[end]) {
		end++
	}
	if start == end {
		return ""
	}
	return text[start:end]
}

func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.URI, diagnostics []protocol.Diagnostic) {
	diagnosticsJSON, err := json.MarshalIndent(diagnostics, "", "  ")
	if err != nil {
		fmt.Println("failed to marshal diagnostics:", err)
		return
	}
	log.Println("sending diagnostics:", string(diagnosticsJSON))

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
