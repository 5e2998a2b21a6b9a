package circuit

import (
	"strconv"
	"strings"
)

// Sprint renders a node as an S-expression, e.g. `(+ 1 (* 2 3))`. A nil node
// renders as "nil".
func Sprint(node Node) string {
	var b strings.Builder
	writeNode(&b, node)
	return b.String()
}

func writeNode(b *strings.Builder, node Node) {
	switch n := node.(type) {
	case nil:
		b.WriteString("nil")
	case *Program:
		for i, stmt := range n.Statements {
			if i > 0 {
				b.WriteByte('\n')
			}
			writeNode(b, stmt)
		}
	case *ExprStmt:
		writeList(b, "expr", n.Expr)
	case *ReturnStmt:
		writeList(b, "return", n.Value)
	case *BlockStmt:
		b.WriteString("(block")
		for _, stmt := range n.Statements {
			b.WriteByte(' ')
			writeNode(b, stmt)
		}
		b.WriteByte(')')
	case *FunctionStmt:
		b.WriteString("(fun ")
		b.WriteString(n.Name.Name)
		b.WriteString(" (")
		for i, param := range n.Params {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(param.Name)
		}
		b.WriteString(") ")
		writeNode(b, n.Body)
		b.WriteByte(')')
	case *GroupingExpr:
		writeList(b, "group", n.Inner)
	case *BinaryExpr:
		writeList(b, string(n.Operator.Type), n.Left, n.Right)
	case *UnaryExpr:
		writeList(b, string(n.Operator.Type), n.Right)
	case *IntegerLiteral:
		b.WriteString(strconv.FormatUint(n.Value, 10))
	case *StringLiteral:
		b.WriteString(strconv.Quote(n.Value))
	case *BlockExpr:
		writeNode(b, n.Block)
	case *PropertyExpr:
		if n.Object == nil {
			b.WriteString(n.Property.Name)
			return
		}
		b.WriteString("(. ")
		writeNode(b, n.Object)
		b.WriteByte(' ')
		b.WriteString(n.Property.Name)
		b.WriteByte(')')
	case *CallExpr:
		b.WriteString("(call ")
		writeNode(b, n.Callee)
		for _, arg := range n.Args {
			b.WriteByte(' ')
			writeNode(b, arg)
		}
		b.WriteByte(')')
	default:
		b.WriteString("?")
	}
}

func writeList(b *strings.Builder, head string, children ...Node) {
	b.WriteByte('(')
	b.WriteString(head)
	for _, child := range children {
		b.WriteByte(' ')
		writeNode(b, child)
	}
	b.WriteByte(')')
}
