package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mgomes/circuit/circuit"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newParseCommand(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "parse <script>",
		Short: "Parse a script and print its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, source, err := readScript(args[0])
			if err != nil {
				return err
			}
			program, err := a.engine.Parse(source)
			if err != nil {
				n := writeDiagnostics(cmd.OutOrStdout(), path, source, err, a.color)
				return problemsError("parse", n)
			}
			return writeProgram(cmd.OutOrStdout(), program, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json, or yaml")
	return cmd
}

func writeProgram(w io.Writer, program *circuit.Program, format string) error {
	switch format {
	case "text":
		if len(program.Statements) == 0 {
			return nil
		}
		_, err := fmt.Fprintln(w, circuit.Sprint(program))
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(treeOf(program))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(treeOf(program)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("parse: unknown format %q", format)
	}
}

// treeNode is the serialized shape of a syntax node.
type treeNode struct {
	Kind     string      `json:"kind" yaml:"kind"`
	Span     string      `json:"span" yaml:"span"`
	Name     string      `json:"name,omitempty" yaml:"name,omitempty"`
	Operator string      `json:"operator,omitempty" yaml:"operator,omitempty"`
	Value    any         `json:"value,omitempty" yaml:"value,omitempty"`
	Params   []string    `json:"params,omitempty" yaml:"params,omitempty"`
	Children []*treeNode `json:"children,omitempty" yaml:"children,omitempty"`
}

func treeOf(node circuit.Node) *treeNode {
	if node == nil {
		return nil
	}
	out := &treeNode{Span: node.Span().String()}
	switch n := node.(type) {
	case *circuit.Program:
		out.Kind = "program"
		out.Children = statementTrees(n.Statements)
	case *circuit.ExprStmt:
		out.Kind = "expression"
		out.Children = exprTrees(n.Expr)
	case *circuit.BlockStmt:
		out.Kind = "block"
		out.Children = statementTrees(n.Statements)
	case *circuit.FunctionStmt:
		out.Kind = "function"
		out.Name = n.Name.Name
		out.Params = make([]string, len(n.Params))
		for i, param := range n.Params {
			out.Params[i] = param.Name
		}
		out.Children = []*treeNode{treeOf(n.Body)}
	case *circuit.ReturnStmt:
		out.Kind = "return"
		out.Children = exprTrees(n.Value)
	case *circuit.GroupingExpr:
		out.Kind = "grouping"
		out.Children = exprTrees(n.Inner)
	case *circuit.BinaryExpr:
		out.Kind = "binary"
		out.Operator = string(n.Operator.Type)
		out.Children = exprTrees(n.Left, n.Right)
	case *circuit.UnaryExpr:
		out.Kind = "unary"
		out.Operator = string(n.Operator.Type)
		out.Children = exprTrees(n.Right)
	case *circuit.IntegerLiteral:
		out.Kind = "integer"
		out.Value = n.Value
	case *circuit.StringLiteral:
		out.Kind = "string"
		out.Value = n.Value
	case *circuit.BlockExpr:
		out.Kind = "block_expression"
		out.Children = []*treeNode{treeOf(n.Block)}
	case *circuit.PropertyExpr:
		out.Kind = "property"
		out.Name = n.Property.Name
		out.Children = exprTrees(n.Object)
	case *circuit.CallExpr:
		out.Kind = "call"
		out.Children = exprTrees(append([]circuit.Expression{n.Callee}, n.Args...)...)
	default:
		out.Kind = fmt.Sprintf("%T", node)
	}
	return out
}

func statementTrees(stmts []circuit.Statement) []*treeNode {
	out := make([]*treeNode, 0, len(stmts))
	for _, stmt := range stmts {
		out = append(out, treeOf(stmt))
	}
	return out
}

func exprTrees(exprs ...circuit.Expression) []*treeNode {
	out := make([]*treeNode, 0, len(exprs))
	for _, expr := range exprs {
		if expr == nil {
			continue
		}
		out = append(out, treeOf(expr))
	}
	return out
}
