package circuit

// Walk visits node and its descendants depth-first in source order. When fn
// returns false the node's children are skipped.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	switch n := node.(type) {
	case *Program:
		for _, stmt := range n.Statements {
			Walk(stmt, fn)
		}
	case *ExprStmt:
		walkExpr(n.Expr, fn)
	case *ReturnStmt:
		walkExpr(n.Value, fn)
	case *BlockStmt:
		for _, stmt := range n.Statements {
			Walk(stmt, fn)
		}
	case *FunctionStmt:
		if n.Body != nil {
			Walk(n.Body, fn)
		}
	case *GroupingExpr:
		walkExpr(n.Inner, fn)
	case *BinaryExpr:
		walkExpr(n.Left, fn)
		walkExpr(n.Right, fn)
	case *UnaryExpr:
		walkExpr(n.Right, fn)
	case *BlockExpr:
		if n.Block != nil {
			Walk(n.Block, fn)
		}
	case *PropertyExpr:
		walkExpr(n.Object, fn)
	case *CallExpr:
		walkExpr(n.Callee, fn)
		for _, arg := range n.Args {
			walkExpr(arg, fn)
		}
	}
}

func walkExpr(expr Expression, fn func(Node) bool) {
	if expr != nil {
		Walk(expr, fn)
	}
}
