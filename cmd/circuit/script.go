package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mgomes/circuit/circuit"
)

const scriptExtension = ".circuit"

func readScript(path string) (string, string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", "", fmt.Errorf("resolve script path: %w", err)
	}
	input, err := os.ReadFile(absPath)
	if err != nil {
		return "", "", fmt.Errorf("read script: %w", err)
	}
	return absPath, string(input), nil
}

var (
	errorLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	frameStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	locationStyle   = lipgloss.NewStyle().Bold(true)
)

// writeDiagnostics renders every lexical or grammar problem carried by err
// with a code frame underneath. It returns the number of problems written.
func writeDiagnostics(w io.Writer, path, source string, err error, color bool) int {
	diags := circuit.Diagnostics(err)
	if len(diags) == 0 {
		fmt.Fprintf(w, "%s: %v\n", path, err)
		return 1
	}
	for _, diag := range diags {
		location := fmt.Sprintf("%s:%d:%d", path, diag.Span.Start.Line+1, diag.Span.Start.Column+1)
		label := diag.Kind + " error"
		frame := circuit.FormatCodeFrame(source, diag.Span)
		if color {
			location = locationStyle.Render(location)
			label = errorLabelStyle.Render(label)
			frame = frameStyle.Render(frame)
		}
		fmt.Fprintf(w, "%s: %s: %s\n", location, label, diag.Msg)
		if frame != "" {
			fmt.Fprintln(w, frame)
		}
	}
	return len(diags)
}

var errProblemsFound = errors.New("problems found")

func problemsError(command string, n int) error {
	noun := "problem"
	if n != 1 {
		noun = "problems"
	}
	return fmt.Errorf("%s: %d %s found: %w", command, n, noun, errProblemsFound)
}

func isScriptPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), scriptExtension)
}
