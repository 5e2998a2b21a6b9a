package circuit

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func tokenTypes(t *testing.T, source string) []TokenType {
	t.Helper()
	stream, err := Tokenize(source)
	if err != nil {
		t.Fatalf("tokenize %q failed: %v", source, err)
	}
	var out []TokenType
	for _, tok := range stream.Remaining() {
		out = append(out, tok.Type)
	}
	return out
}

func TestTokenizeWhitespaceOnlyYieldsNoTokens(t *testing.T) {
	for _, source := range []string{"", " ", "\t\t", "\n\n  \t\n"} {
		stream, err := Tokenize(source)
		if err != nil {
			t.Fatalf("tokenize %q failed: %v", source, err)
		}
		if stream.Len() != 0 {
			t.Fatalf("expected no tokens for %q, got %v", source, stream.Remaining())
		}
	}
}

func TestTokenizeUnsignedInteger(t *testing.T) {
	stream, err := Tokenize("123")
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}
	if stream.Len() != 1 {
		t.Fatalf("expected 1 token, got %d", stream.Len())
	}
	tok, _ := stream.Next()
	if tok.Type != TokenUInt {
		t.Fatalf("expected UINT, got %s", tok.Type)
	}
	if tok.Span.Start.Offset != 0 || tok.Span.End.Offset != 3 {
		t.Fatalf("unexpected span %+v", tok.Span)
	}
	if got := tok.Text("123"); got != "123" {
		t.Fatalf("unexpected token text %q", got)
	}
}

func TestTokenizeUnterminatedStringReportsOneError(t *testing.T) {
	_, err := Tokenize(`"abc`)
	if err == nil {
		t.Fatalf("expected lex error")
	}
	var lexErrs LexErrors
	if !errors.As(err, &lexErrs) {
		t.Fatalf("expected LexErrors, got %T", err)
	}
	if len(lexErrs) != 1 {
		t.Fatalf("expected 1 lex error, got %d: %v", len(lexErrs), lexErrs)
	}
	if lexErrs[0].Span.Start.Offset != 0 {
		t.Fatalf("expected error to start at the opening quote, got %+v", lexErrs[0].Span)
	}
	if lexErrs[0].Span.End.Offset != 4 {
		t.Fatalf("expected error to run to end of input, got %+v", lexErrs[0].Span)
	}
	if !strings.Contains(lexErrs[0].Msg, "unterminated string") {
		t.Fatalf("unexpected message %q", lexErrs[0].Msg)
	}
}

func TestTokenizeOperators(t *testing.T) {
	got := tokenTypes(t, "a == b != !c = d + - * / . , ; ( ) { }")
	want := []TokenType{
		TokenIdent, TokenEQ, TokenIdent, TokenNotEQ, TokenBang, TokenIdent, TokenAssign, TokenIdent,
		TokenPlus, TokenMinus, TokenAsterisk, TokenSlash, TokenDot, TokenComma, TokenSemicolon,
		TokenLParen, TokenRParen, TokenLBrace, TokenRBrace,
	}
	if !slices.Equal(got, want) {
		t.Fatalf("unexpected tokens\n got: %v\nwant: %v", got, want)
	}
}

func TestTokenizeTwoCharacterOperatorSpans(t *testing.T) {
	stream, err := Tokenize("a==b")
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}
	toks := stream.Remaining()
	if len(toks) != 3 {
		t.Fatalf("expected 3 tokens, got %v", toks)
	}
	if toks[1].Type != TokenEQ || toks[1].Span.Start.Offset != 1 || toks[1].Span.End.Offset != 3 {
		t.Fatalf("unexpected == token %+v", toks[1])
	}
}

func TestTokenizeStringSpanIncludesQuotes(t *testing.T) {
	source := `x "hi there" y`
	stream, err := Tokenize(source)
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}
	toks := stream.Remaining()
	if len(toks) != 3 || toks[1].Type != TokenString {
		t.Fatalf("unexpected tokens %v", toks)
	}
	if got := toks[1].Text(source); got != `"hi there"` {
		t.Fatalf("unexpected string text %q", got)
	}
}

func TestTokenizeKeywords(t *testing.T) {
	got := tokenTypes(t, "if for fun return funny returns")
	want := []TokenType{TokenIf, TokenFor, TokenFun, TokenReturn, TokenIdent, TokenIdent}
	if !slices.Equal(got, want) {
		t.Fatalf("unexpected tokens\n got: %v\nwant: %v", got, want)
	}
}

func TestTokenizeDigitsThenIdentifier(t *testing.T) {
	got := tokenTypes(t, "12abc")
	want := []TokenType{TokenUInt, TokenIdent}
	if !slices.Equal(got, want) {
		t.Fatalf("unexpected tokens\n got: %v\nwant: %v", got, want)
	}
}

func TestTokenPositionsTrackLinesAndColumns(t *testing.T) {
	stream, err := Tokenize("a\n  bb\n\tc")
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}
	toks := stream.Remaining()
	if len(toks) != 3 {
		t.Fatalf("expected 3 tokens, got %v", toks)
	}
	want := []Position{
		{Offset: 0, Line: 0, Column: 0},
		{Offset: 4, Line: 1, Column: 2},
		{Offset: 8, Line: 2, Column: 1},
	}
	for i, tok := range toks {
		if tok.Span.Start != want[i] {
			t.Fatalf("token %d: expected start %+v, got %+v", i, want[i], tok.Span.Start)
		}
	}
	if end := toks[1].Span.End; end.Offset != 6 || end.Column != 4 {
		t.Fatalf("unexpected end of bb: %+v", end)
	}
}

func TestTokenizeUnicodeIdentifiers(t *testing.T) {
	source := "héllo wörld"
	stream, err := Tokenize(source)
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}
	toks := stream.Remaining()
	if len(toks) != 2 {
		t.Fatalf("expected 2 identifiers, got %v", toks)
	}
	if toks[0].Text(source) != "héllo" || toks[1].Text(source) != "wörld" {
		t.Fatalf("unexpected identifier texts %q %q", toks[0].Text(source), toks[1].Text(source))
	}
	if toks[0].Span.End.Offset != 6 || toks[0].Span.End.Column != 5 {
		t.Fatalf("expected byte offset 6 and column 5, got %+v", toks[0].Span.End)
	}
}

func TestTokenizeStrictCollectsEveryUnexpectedCharacter(t *testing.T) {
	_, err := Tokenize("1 @ 2 # 3")
	var lexErrs LexErrors
	if !errors.As(err, &lexErrs) {
		t.Fatalf("expected LexErrors, got %v", err)
	}
	if len(lexErrs) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(lexErrs), lexErrs)
	}
	if lexErrs[0].Span.Start.Offset != 2 || lexErrs[1].Span.Start.Offset != 6 {
		t.Fatalf("unexpected error spans %v, %v", lexErrs[0].Span, lexErrs[1].Span)
	}
	if !strings.Contains(lexErrs[0].Msg, "unexpected character '@'") {
		t.Fatalf("unexpected message %q", lexErrs[0].Msg)
	}
}

func TestTokenizePermissiveStopsAtUnexpectedCharacter(t *testing.T) {
	engine := MustNewEngine(Config{LexMode: LexPermissive})
	stream, err := engine.Tokenize("1 + @ 2")
	if err != nil {
		t.Fatalf("permissive tokenize failed: %v", err)
	}
	if stream.Len() != 2 {
		t.Fatalf("expected 2 tokens before the stop, got %v", stream.Remaining())
	}
}

func TestTokensSequenceIsLazy(t *testing.T) {
	count := 0
	for tok, err := range Tokens("a b c d") {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tok.Type != TokenIdent {
			t.Fatalf("unexpected token %v", tok)
		}
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Fatalf("expected to stop after 2 tokens, got %d", count)
	}
}

func TestTokensSequenceYieldsErrorsInPlace(t *testing.T) {
	var kinds []TokenType
	var errs int
	for tok, err := range Tokens("a ? b") {
		if err != nil {
			errs++
		}
		kinds = append(kinds, tok.Type)
	}
	want := []TokenType{TokenIdent, TokenIllegal, TokenIdent}
	if errs != 1 || !slices.Equal(kinds, want) {
		t.Fatalf("unexpected sequence %v with %d errors", kinds, errs)
	}
}

func TestTokenizeIsIdempotent(t *testing.T) {
	source := "fun f(a) { return a.b(1, \"x\"); }"
	first, err := Tokenize(source)
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}
	second, err := Tokenize(source)
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}
	if !slices.Equal(first.Remaining(), second.Remaining()) {
		t.Fatalf("tokenization differs between runs")
	}
}

func TestParseLexMode(t *testing.T) {
	cases := map[string]LexMode{"": LexStrict, "strict": LexStrict, "permissive": LexPermissive}
	for input, want := range cases {
		got, err := ParseLexMode(input)
		if err != nil || got != want {
			t.Fatalf("ParseLexMode(%q) = %v, %v", input, got, err)
		}
	}
	if _, err := ParseLexMode("loose"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}
