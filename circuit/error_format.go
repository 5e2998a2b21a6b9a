package circuit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// FormatCodeFrame renders the source line holding span.Start with a caret
// range underneath the spanned characters. Spans running past the end of the
// line are clipped to it; zero-width spans get a single caret.
func FormatCodeFrame(source string, span Span) string {
	lines := strings.Split(source, "\n")
	if span.Start.Line < 0 || span.Start.Line >= len(lines) {
		return ""
	}

	lineText := lines[span.Start.Line]
	lineRunes := []rune(lineText)

	column := min(max(span.Start.Column, 0), len(lineRunes))
	endColumn := len(lineRunes)
	if span.End.Line == span.Start.Line {
		endColumn = min(max(span.End.Column, column), len(lineRunes))
	}

	lineLabel := strconv.Itoa(span.Start.Line + 1)
	gutterPad := strings.Repeat(" ", len(lineLabel))
	caretPad := padFor(lineRunes[:column])
	carets := strings.Repeat("^", max(1, runewidth.StringWidth(string(lineRunes[column:endColumn]))))

	return fmt.Sprintf(
		"  --> line %d, column %d\n %s | %s\n %s | %s%s",
		span.Start.Line+1,
		column+1,
		lineLabel,
		lineText,
		gutterPad,
		caretPad,
		carets,
	)
}

// padFor builds whitespace occupying the same terminal cells as prefix,
// keeping tabs so the caret lines up under tab-indented code.
func padFor(prefix []rune) string {
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return b.String()
}
