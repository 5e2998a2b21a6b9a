package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/mgomes/circuit/circuit"
	"github.com/spf13/cobra"
)

const lspSource = "circuit-lsp"

// LSP kinds used below.
const (
	completionKindFunction = 3
	completionKindKeyword  = 14
	symbolKindFunction     = 12
	severityError          = 1
)

type lspInboundMessage struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method,omitempty"`
	Params  json.RawMessage  `json:"params,omitempty"`
}

type lspResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type lspOutboundMessage struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      *json.RawMessage  `json:"id,omitempty"`
	Method  string            `json:"method,omitempty"`
	Params  any               `json:"params,omitempty"`
	Result  any               `json:"result,omitempty"`
	Error   *lspResponseError `json:"error,omitempty"`
}

type lspTextDocumentIdentifier struct {
	URI string `json:"uri"`
}

type lspDidOpenParams struct {
	TextDocument struct {
		URI  string `json:"uri"`
		Text string `json:"text"`
	} `json:"textDocument"`
}

type lspDidChangeParams struct {
	TextDocument   lspTextDocumentIdentifier `json:"textDocument"`
	ContentChanges []struct {
		Text string `json:"text"`
	} `json:"contentChanges"`
}

type lspDocumentParams struct {
	TextDocument lspTextDocumentIdentifier `json:"textDocument"`
}

type lspTextDocumentPositionParams struct {
	TextDocument lspTextDocumentIdentifier `json:"textDocument"`
	Position     lspPosition               `json:"position"`
}

type lspPosition struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

type lspRange struct {
	Start lspPosition `json:"start"`
	End   lspPosition `json:"end"`
}

type lspDiagnostic struct {
	Range    lspRange `json:"range"`
	Severity int      `json:"severity"`
	Source   string   `json:"source"`
	Code     string   `json:"code,omitempty"`
	Message  string   `json:"message"`
}

type lspSymbol struct {
	Name           string   `json:"name"`
	Detail         string   `json:"detail,omitempty"`
	Kind           int      `json:"kind"`
	Range          lspRange `json:"range"`
	SelectionRange lspRange `json:"selectionRange"`
}

type lspServer struct {
	reader *bufio.Reader
	writer *bufio.Writer
	engine *circuit.Engine
	logger *slog.Logger
	docs   map[string]string
}

func newLSPCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Run a language server over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := newLSPServer(cmd.InOrStdin(), cmd.OutOrStdout(), a.engine, a.logger)
			return server.serve()
		},
	}
}

func newLSPServer(r io.Reader, w io.Writer, engine *circuit.Engine, logger *slog.Logger) *lspServer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &lspServer{
		reader: bufio.NewReader(r),
		writer: bufio.NewWriter(w),
		engine: engine,
		logger: logger,
		docs:   make(map[string]string),
	}
}

func (s *lspServer) serve() error {
	for {
		payload, err := s.readPayload()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		var incoming lspInboundMessage
		if err := json.Unmarshal(payload, &incoming); err != nil {
			s.logger.Warn("lsp: dropping malformed message", "error", err)
			continue
		}
		s.logger.Debug("lsp: message", "method", incoming.Method)

		for _, msg := range s.handleMessage(incoming) {
			if err := s.writePayload(msg); err != nil {
				return err
			}
		}

		if incoming.Method == "exit" {
			return nil
		}
	}
}

func (s *lspServer) handleMessage(incoming lspInboundMessage) []lspOutboundMessage {
	switch incoming.Method {
	case "initialize":
		return reply(incoming, map[string]any{
			"capabilities": map[string]any{
				"textDocumentSync":       1,
				"hoverProvider":          true,
				"documentSymbolProvider": true,
				"completionProvider": map[string]any{
					"resolveProvider": false,
				},
			},
			"serverInfo": map[string]any{
				"name":    lspSource,
				"version": version,
			},
		})
	case "initialized", "exit":
		return nil
	case "shutdown":
		return reply(incoming, nil)
	case "textDocument/didOpen":
		var params lspDidOpenParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return nil
		}
		s.docs[params.TextDocument.URI] = params.TextDocument.Text
		return []lspOutboundMessage{
			s.publishDiagnostics(params.TextDocument.URI, params.TextDocument.Text),
		}
	case "textDocument/didChange":
		var params lspDidChangeParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return nil
		}
		if len(params.ContentChanges) == 0 {
			return nil
		}
		latest := params.ContentChanges[len(params.ContentChanges)-1].Text
		s.docs[params.TextDocument.URI] = latest
		return []lspOutboundMessage{
			s.publishDiagnostics(params.TextDocument.URI, latest),
		}
	case "textDocument/didClose":
		var params lspDocumentParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return nil
		}
		delete(s.docs, params.TextDocument.URI)
		return []lspOutboundMessage{{
			JSONRPC: "2.0",
			Method:  "textDocument/publishDiagnostics",
			Params: map[string]any{
				"uri":         params.TextDocument.URI,
				"diagnostics": []lspDiagnostic{},
			},
		}}
	case "textDocument/completion":
		var params lspTextDocumentPositionParams
		_ = json.Unmarshal(incoming.Params, &params)
		return reply(incoming, map[string]any{
			"isIncomplete": false,
			"items":        completionItems(s.functions(params.TextDocument.URI)),
		})
	case "textDocument/hover":
		var params lspTextDocumentPositionParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return replyError(incoming, -32602, "invalid hover params")
		}
		source := s.docs[params.TextDocument.URI]
		word := wordAtPosition(source, params.Position.Line, params.Position.Character)
		if word == "" {
			return reply(incoming, nil)
		}
		return reply(incoming, map[string]any{
			"contents": map[string]any{
				"kind":  "markdown",
				"value": hoverText(word, s.functions(params.TextDocument.URI)),
			},
		})
	case "textDocument/documentSymbol":
		var params lspDocumentParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return replyError(incoming, -32602, "invalid documentSymbol params")
		}
		uri := params.TextDocument.URI
		return reply(incoming, documentSymbols(s.docs[uri], s.functions(uri)))
	default:
		return replyError(incoming, -32601, "method not found")
	}
}

// reply answers a request; notifications, which carry no id, get nothing.
func reply(incoming lspInboundMessage, result any) []lspOutboundMessage {
	if incoming.ID == nil {
		return nil
	}
	return []lspOutboundMessage{{JSONRPC: "2.0", ID: incoming.ID, Result: result}}
}

func replyError(incoming lspInboundMessage, code int, message string) []lspOutboundMessage {
	if incoming.ID == nil {
		return nil
	}
	return []lspOutboundMessage{{
		JSONRPC: "2.0",
		ID:      incoming.ID,
		Error:   &lspResponseError{Code: code, Message: message},
	}}
}

func (s *lspServer) publishDiagnostics(uri, source string) lspOutboundMessage {
	return lspOutboundMessage{
		JSONRPC: "2.0",
		Method:  "textDocument/publishDiagnostics",
		Params: map[string]any{
			"uri":         uri,
			"diagnostics": diagnosticsForSource(s.engine, source),
		},
	}
}

func diagnosticsForSource(engine *circuit.Engine, source string) []lspDiagnostic {
	_, err := engine.Parse(source)
	if err == nil {
		return []lspDiagnostic{}
	}

	diags := circuit.Diagnostics(err)
	if len(diags) == 0 {
		return []lspDiagnostic{{
			Range:    lspRange{End: lspPosition{Character: 1}},
			Severity: severityError,
			Source:   lspSource,
			Message:  err.Error(),
		}}
	}

	out := make([]lspDiagnostic, 0, len(diags))
	for _, diag := range diags {
		out = append(out, lspDiagnostic{
			Range:    rangeOf(source, diag.Span),
			Severity: severityError,
			Source:   lspSource,
			Code:     diag.Kind,
			Message:  diag.Msg,
		})
	}
	return out
}

// rangeOf converts a span to an editor range. Zero-width spans are widened
// by one character so clients have something to underline.
func rangeOf(source string, span circuit.Span) lspRange {
	r := lspRange{
		Start: positionOf(source, span.Start),
		End:   positionOf(source, span.End),
	}
	if r.End == r.Start {
		r.End.Character++
	}
	return r
}

// positionOf re-expresses pos with a UTF-16 character offset, which is what
// LSP clients count in.
func positionOf(source string, pos circuit.Position) lspPosition {
	offset := min(max(pos.Offset, 0), len(source))
	lineStart := strings.LastIndexByte(source[:offset], '\n') + 1
	units := 0
	for _, r := range source[lineStart:offset] {
		units += utf16.RuneLen(r)
	}
	return lspPosition{Line: pos.Line, Character: units}
}

// functions returns the function declarations of a document, or nil if it
// does not parse.
func (s *lspServer) functions(uri string) []*circuit.FunctionStmt {
	source, ok := s.docs[uri]
	if !ok {
		return nil
	}
	program, err := s.engine.Parse(source)
	if err != nil {
		return nil
	}
	var fns []*circuit.FunctionStmt
	circuit.Walk(program, func(node circuit.Node) bool {
		if fn, ok := node.(*circuit.FunctionStmt); ok {
			fns = append(fns, fn)
		}
		return true
	})
	return fns
}

func completionItems(fns []*circuit.FunctionStmt) []map[string]any {
	items := make([]map[string]any, 0)
	seen := make(map[string]struct{})
	for _, keyword := range circuit.Keywords() {
		seen[keyword] = struct{}{}
		items = append(items, map[string]any{
			"label":  keyword,
			"kind":   completionKindKeyword,
			"detail": "keyword",
		})
	}
	for _, fn := range fns {
		if _, ok := seen[fn.Name.Name]; ok {
			continue
		}
		seen[fn.Name.Name] = struct{}{}
		items = append(items, map[string]any{
			"label":  fn.Name.Name,
			"kind":   completionKindFunction,
			"detail": signature(fn),
		})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i]["label"].(string) < items[j]["label"].(string)
	})
	return items
}

func documentSymbols(source string, fns []*circuit.FunctionStmt) []lspSymbol {
	out := make([]lspSymbol, 0, len(fns))
	for _, fn := range fns {
		out = append(out, lspSymbol{
			Name:           fn.Name.Name,
			Detail:         signature(fn),
			Kind:           symbolKindFunction,
			Range:          rangeOf(source, fn.Span()),
			SelectionRange: rangeOf(source, fn.Name.Token.Span),
		})
	}
	return out
}

func signature(fn *circuit.FunctionStmt) string {
	return "fun " + fn.Name.Name + "(" + paramList(fn) + ")"
}

func hoverText(word string, fns []*circuit.FunctionStmt) string {
	for _, keyword := range circuit.Keywords() {
		if keyword == word {
			return fmt.Sprintf("`%s`\n\nCircuit keyword", word)
		}
	}
	for _, fn := range fns {
		if fn.Name.Name == word {
			start := fn.Span().Start
			return fmt.Sprintf("```circuit\n%s\n```\n\nDeclared at line %d", signature(fn), start.Line+1)
		}
	}
	return fmt.Sprintf("`%s`\n\nCircuit symbol", word)
}

func wordAtPosition(source string, line, character int) string {
	lines := strings.Split(source, "\n")
	if line < 0 || line >= len(lines) {
		return ""
	}

	runes := []rune(lines[line])
	if len(runes) == 0 {
		return ""
	}

	// character counts UTF-16 units; walk to the rune it lands on.
	cursor, units := 0, 0
	for cursor < len(runes) && units < character {
		units += utf16.RuneLen(runes[cursor])
		cursor++
	}

	if cursor == len(runes) {
		cursor--
	}
	if !isWordRune(runes[cursor]) {
		if cursor > 0 && isWordRune(runes[cursor-1]) {
			cursor--
		} else {
			return ""
		}
	}

	start := cursor
	for start > 0 && isWordRune(runes[start-1]) {
		start--
	}
	end := cursor
	for end < len(runes) && isWordRune(runes[end]) {
		end++
	}
	return string(runes[start:end])
}

func isWordRune(r rune) bool {
	return circuit.IsIdentifierRune(r)
}

func (s *lspServer) readPayload() ([]byte, error) {
	contentLength := -1
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(name), "Content-Length") {
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return nil, fmt.Errorf("invalid Content-Length: %w", err)
			}
			contentLength = n
		}
	}

	if contentLength < 0 {
		return nil, fmt.Errorf("missing Content-Length header")
	}
	payload := make([]byte, contentLength)
	if _, err := io.ReadFull(s.reader, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (s *lspServer) writePayload(msg lspOutboundMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.writer, "Content-Length: %d\r\n\r\n", len(data)); err != nil {
		return err
	}
	if _, err := s.writer.Write(data); err != nil {
		return err
	}
	return s.writer.Flush()
}
