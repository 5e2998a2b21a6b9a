package circuit

type Node interface {
	Span() Span
}

type Statement interface {
	Node
	stmtNode()
}

type Expression interface {
	Node
	exprNode()
}

type Program struct {
	Statements []Statement
}

func (p *Program) Span() Span {
	if len(p.Statements) == 0 {
		return Span{}
	}
	first := p.Statements[0].Span()
	return first.extend(p.Statements[len(p.Statements)-1].Span())
}

// Ident is an identifier token together with its decoded name.
type Ident struct {
	Token Token
	Name  string
}

type ExprStmt struct {
	Expr Expression
	span Span
}

func (s *ExprStmt) stmtNode()  {}
func (s *ExprStmt) Span() Span { return s.span }

type BlockStmt struct {
	Statements []Statement
	span       Span
}

func (s *BlockStmt) stmtNode()  {}
func (s *BlockStmt) Span() Span { return s.span }

type FunctionStmt struct {
	Name   Ident
	Params []Ident
	Body   *BlockStmt
	span   Span
}

func (s *FunctionStmt) stmtNode()  {}
func (s *FunctionStmt) Span() Span { return s.span }

type ReturnStmt struct {
	Value Expression
	span  Span
}

func (s *ReturnStmt) stmtNode()  {}
func (s *ReturnStmt) Span() Span { return s.span }

type GroupingExpr struct {
	Inner Expression
	span  Span
}

func (e *GroupingExpr) exprNode()  {}
func (e *GroupingExpr) Span() Span { return e.span }

type BinaryExpr struct {
	Operator Token
	Left     Expression
	Right    Expression
	span     Span
}

func (e *BinaryExpr) exprNode()  {}
func (e *BinaryExpr) Span() Span { return e.span }

type IntegerLiteral struct {
	Value uint64
	span  Span
}

func (e *IntegerLiteral) exprNode()  {}
func (e *IntegerLiteral) Span() Span { return e.span }

// StringLiteral holds the text between the quotes, verbatim.
type StringLiteral struct {
	Value string
	span  Span
}

func (e *StringLiteral) exprNode()  {}
func (e *StringLiteral) Span() Span { return e.span }

type BlockExpr struct {
	Block *BlockStmt
	span  Span
}

func (e *BlockExpr) exprNode()  {}
func (e *BlockExpr) Span() Span { return e.span }

// PropertyExpr reads Property from Object. A nil Object resolves the
// property in the current scope.
type PropertyExpr struct {
	Object   Expression
	Property Ident
	span     Span
}

func (e *PropertyExpr) exprNode()  {}
func (e *PropertyExpr) Span() Span { return e.span }

type UnaryExpr struct {
	Operator Token
	Right    Expression
	span     Span
}

func (e *UnaryExpr) exprNode()  {}
func (e *UnaryExpr) Span() Span { return e.span }

type CallExpr struct {
	Callee Expression
	Args   []Expression
	span   Span
}

func (e *CallExpr) exprNode()  {}
func (e *CallExpr) Span() Span { return e.span }
