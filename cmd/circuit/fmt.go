package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mgomes/circuit/circuit"
	"github.com/spf13/cobra"
)

const indentUnit = "  "

func newFmtCommand(a *app) *cobra.Command {
	var write, check bool
	cmd := &cobra.Command{
		Use:   "fmt <path>...",
		Short: "Format " + scriptExtension + " files",
		Long: `fmt normalizes line endings, re-indents lines by brace depth, trims trailing
whitespace, and collapses runs of blank lines. String literal contents are
left untouched. Files that do not lex cleanly are reported and skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := collectScriptFiles(args)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return nil
			}

			// Formatting depends on every string token being found, so it always
			// lexes strictly regardless of the configured mode.
			engine, err := circuit.NewEngine(circuit.Config{LexMode: circuit.LexStrict, Logger: a.logger})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			changedCount := 0
			for _, path := range files {
				originalBytes, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				original := string(originalBytes)
				formatted, err := formatScriptSource(engine, original)
				if err != nil {
					n := writeDiagnostics(out, path, normalizeNewlines(original), err, a.color)
					return problemsError("fmt", n)
				}
				changed := formatted != original
				if changed {
					changedCount++
				}

				switch {
				case write && changed:
					info, err := os.Stat(path)
					if err != nil {
						return fmt.Errorf("stat %s: %w", path, err)
					}
					if err := os.WriteFile(path, []byte(formatted), info.Mode().Perm()); err != nil {
						return fmt.Errorf("write %s: %w", path, err)
					}
					a.logger.Info("formatted", "path", path)
				case check && changed:
					fmt.Fprintln(out, path)
				case !write && !check:
					fmt.Fprint(out, formatted)
				}
			}

			if check && changedCount > 0 {
				return fmt.Errorf("fmt: %d file(s) need formatting", changedCount)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write result to source files instead of stdout")
	cmd.Flags().BoolVar(&check, "check", false, "fail if any source file needs formatting")
	cmd.MarkFlagsMutuallyExclusive("write", "check")
	return cmd
}

func collectScriptFiles(targets []string) ([]string, error) {
	seen := make(map[string]struct{})
	files := make([]string, 0)
	addFile := func(path string) {
		if !isScriptPath(path) {
			return
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return
		}
		if _, ok := seen[abs]; ok {
			return
		}
		seen[abs] = struct{}{}
		files = append(files, abs)
	}

	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", target, err)
		}
		if !info.IsDir() {
			addFile(target)
			continue
		}
		err = filepath.WalkDir(target, func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if entry.IsDir() {
				return nil
			}
			addFile(path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", target, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

func normalizeNewlines(source string) string {
	normalized := strings.ReplaceAll(source, "\r\n", "\n")
	return strings.ReplaceAll(normalized, "\r", "\n")
}

// formatScriptSource lays source out line by line. Lines that begin inside a
// string literal are copied verbatim, as is trailing space on lines that end
// inside one.
func formatScriptSource(engine *circuit.Engine, source string) (string, error) {
	normalized := normalizeNewlines(source)
	stream, err := engine.Tokenize(normalized)
	if err != nil {
		return "", err
	}
	if stream.Len() == 0 {
		return "", nil
	}
	toks := stream.Remaining()

	insideString := func(offset int) bool {
		for _, tok := range toks {
			if tok.Span.Start.Offset >= offset {
				return false
			}
			if tok.Type == circuit.TokenString && offset < tok.Span.End.Offset {
				return true
			}
		}
		return false
	}

	var b strings.Builder
	depth, next, blanks := 0, 0, 0
	lineStart := 0
	for _, line := range strings.SplitAfter(normalized, "\n") {
		if line == "" {
			break
		}
		lineEnd := lineStart + len(line)
		for next < len(toks) && toks[next].Span.Start.Offset < lineStart {
			depth += braceDelta(toks[next].Type)
			next++
		}

		content := strings.TrimSuffix(line, "\n")
		switch {
		case insideString(lineStart):
			b.WriteString(content)
			blanks = 0
		case strings.TrimSpace(content) == "":
			blanks++
			if blanks > 1 || b.Len() == 0 {
				lineStart = lineEnd
				continue
			}
		default:
			blanks = 0
			indent := depth
			if next < len(toks) && toks[next].Type == circuit.TokenRBrace && toks[next].Span.Start.Offset < lineEnd {
				indent--
			}
			b.WriteString(strings.Repeat(indentUnit, max(indent, 0)))
			content = strings.TrimLeft(content, " \t")
			if !insideString(lineStart + len(line) - 1) {
				content = strings.TrimRight(content, " \t")
			}
			b.WriteString(content)
		}
		b.WriteByte('\n')
		lineStart = lineEnd
	}

	formatted := strings.TrimRight(b.String(), "\n") + "\n"
	return formatted, nil
}

func braceDelta(tt circuit.TokenType) int {
	switch tt {
	case circuit.TokenLBrace:
		return 1
	case circuit.TokenRBrace:
		return -1
	default:
		return 0
	}
}
