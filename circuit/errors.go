package circuit

import (
	"errors"
	"fmt"
	"strings"
)

// LexError describes a character run the lexer could not turn into a token.
type LexError struct {
	Span Span
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at %d:%d: %s", e.Span.Start.Line+1, e.Span.Start.Column+1, e.Msg)
}

// LexErrors is the ordered set of lexical errors found in one tokenization
// pass. It is never empty when returned as an error.
type LexErrors []*LexError

func (errs LexErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// ParseError is the first grammar violation found by the parser.
type ParseError struct {
	Span Span
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Span.Start.Line+1, e.Span.Start.Column+1, e.Msg)
}

// Diagnostic is a span-tagged message extracted from a lex or parse failure.
type Diagnostic struct {
	Span Span
	Msg  string
	Kind string
}

// Diagnostics flattens an error returned by Tokenize or Parse into one entry
// per problem. Errors that carry no span yield nil.
func Diagnostics(err error) []Diagnostic {
	var lexErrs LexErrors
	if errors.As(err, &lexErrs) {
		out := make([]Diagnostic, len(lexErrs))
		for i, lexErr := range lexErrs {
			out[i] = Diagnostic{Span: lexErr.Span, Msg: lexErr.Msg, Kind: "lex"}
		}
		return out
	}
	var lexErr *LexError
	if errors.As(err, &lexErr) {
		return []Diagnostic{{Span: lexErr.Span, Msg: lexErr.Msg, Kind: "lex"}}
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return []Diagnostic{{Span: parseErr.Span, Msg: parseErr.Msg, Kind: "parse"}}
	}
	return nil
}
