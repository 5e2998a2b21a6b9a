package main

import (
	"fmt"
	"sort"

	"github.com/mgomes/circuit/circuit"
	"github.com/spf13/cobra"
)

const topLevel = "<top>"

type lintWarning struct {
	Function string
	Pos      circuit.Position
	Message  string
}

func newAnalyzeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <script>",
		Short: "Lint a script for unreachable code and duplicate functions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			path, source, err := readScript(args[0])
			if err != nil {
				return err
			}
			program, err := a.engine.Parse(source)
			if err != nil {
				n := writeDiagnostics(out, path, source, err, a.color)
				return problemsError("analyze", n)
			}

			warnings := analyzeProgram(program)
			if len(warnings) == 0 {
				fmt.Fprintln(out, "No issues found")
				return nil
			}
			for _, warning := range warnings {
				fmt.Fprintf(out, "%s:%d:%d: %s (%s)\n", path, warning.Pos.Line+1, warning.Pos.Column+1, warning.Message, warning.Function)
			}
			return fmt.Errorf("analysis found %d issue(s)", len(warnings))
		},
	}
}

func analyzeProgram(program *circuit.Program) []lintWarning {
	warnings := make([]lintWarning, 0)
	lintStatements(topLevel, program.Statements, &warnings)

	sort.SliceStable(warnings, func(i, j int) bool {
		return warnings[i].Pos.Offset < warnings[j].Pos.Offset
	})
	return warnings
}

// lintStatements checks one scope. Function names are tracked per scope so a
// redeclaration in a nested block is reported against that block only.
func lintStatements(function string, statements []circuit.Statement, warnings *[]lintWarning) bool {
	declared := circuit.NewEnvironment()
	terminated := false
	for _, stmt := range statements {
		if terminated {
			*warnings = append(*warnings, lintWarning{
				Function: function,
				Pos:      stmt.Span().Start,
				Message:  "unreachable statement",
			})
			continue
		}
		if fn, ok := stmt.(*circuit.FunctionStmt); ok {
			if prev, found := declared.Lookup(fn.Name.Name); found {
				first := prev.(*circuit.FunctionStmt).Name.Token.Span.Start
				*warnings = append(*warnings, lintWarning{
					Function: function,
					Pos:      fn.Name.Token.Span.Start,
					Message:  fmt.Sprintf("function %s redeclared (first declared at %d:%d)", fn.Name.Name, first.Line+1, first.Column+1),
				})
			} else {
				declared.Define(fn.Name.Name, fn)
			}
		}
		if statementTerminates(function, stmt, warnings) {
			terminated = true
		}
	}
	return terminated
}

func statementTerminates(function string, stmt circuit.Statement, warnings *[]lintWarning) bool {
	switch typed := stmt.(type) {
	case *circuit.ReturnStmt:
		lintExpression(function, typed.Value, warnings)
		return true
	case *circuit.BlockStmt:
		return lintStatements(function, typed.Statements, warnings)
	case *circuit.FunctionStmt:
		lintStatements(typed.Name.Name, typed.Body.Statements, warnings)
		return false
	case *circuit.ExprStmt:
		lintExpression(function, typed.Expr, warnings)
		return false
	default:
		return false
	}
}

// lintExpression descends into block expressions, which open their own scope.
func lintExpression(function string, expr circuit.Expression, warnings *[]lintWarning) {
	if expr == nil {
		return
	}
	circuit.Walk(expr, func(node circuit.Node) bool {
		block, ok := node.(*circuit.BlockExpr)
		if !ok {
			return true
		}
		lintStatements(function, block.Block.Statements, warnings)
		return false
	})
}
