// Package circuit implements the front end of the Circuit scripting language:
// a lexer that turns source text into span-tagged tokens and a recursive
// descent parser that turns those tokens into an AST. The grammar covers:
//   - Function declarations via `fun name(args...) { ... }`.
//   - Expression statements terminated by `;`, `return expr;`, and nested blocks.
//   - Unsigned integer and double-quoted string literals.
//   - Arithmetic (+, -, *, /) with the usual precedence and prefix `!` and `-`.
//   - Property access chains (`a.b.c`) and calls (`f(x, y)`), applied left to right.
//   - Parenthesised grouping and inline block expressions.
//
// Tokens carry no text; identifier and literal text is recovered from the
// source through each token's Span. Tokenization reports every lexical error
// at once, while parsing stops at the first grammar error.
package circuit
