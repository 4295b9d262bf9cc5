package ast

import "github.com/inferlang/inferlang/internal/token"

type ExpressionStatement struct {
	Loc        token.Span
	Expression Expression
}

func (n *ExpressionStatement) Kind() string     { return "ExpressionStatement" }
func (n *ExpressionStatement) Span() token.Span { return n.Loc }
func (n *ExpressionStatement) Accept(v Visitor) { v.VisitExpressionStatement(n) }
func (n *ExpressionStatement) statementNode()   {}

type ReturnStatement struct {
	Loc      token.Span
	Argument Expression // optional
}

func (n *ReturnStatement) Kind() string     { return "ReturnStatement" }
func (n *ReturnStatement) Span() token.Span { return n.Loc }
func (n *ReturnStatement) Accept(v Visitor) { v.VisitReturnStatement(n) }
func (n *ReturnStatement) statementNode()   {}

type BlockStatement struct {
	Loc  token.Span
	Body []Statement
}

func (n *BlockStatement) Kind() string     { return "BlockStatement" }
func (n *BlockStatement) Span() token.Span { return n.Loc }
func (n *BlockStatement) Accept(v Visitor) { v.VisitBlockStatement(n) }
func (n *BlockStatement) statementNode()   {}

type IfStatement struct {
	Loc         token.Span
	Test        Expression
	Consequent  Statement
	Alternate   Statement // optional
}

func (n *IfStatement) Kind() string     { return "IfStatement" }
func (n *IfStatement) Span() token.Span { return n.Loc }
func (n *IfStatement) Accept(v Visitor) { v.VisitIfStatement(n) }
func (n *IfStatement) statementNode()   {}

type WhileStatement struct {
	Loc  token.Span
	Test Expression
	Body Statement
}

func (n *WhileStatement) Kind() string     { return "WhileStatement" }
func (n *WhileStatement) Span() token.Span { return n.Loc }
func (n *WhileStatement) Accept(v Visitor) { v.VisitWhileStatement(n) }
func (n *WhileStatement) statementNode()   {}

type DoWhileStatement struct {
	Loc  token.Span
	Test Expression
	Body Statement
}

func (n *DoWhileStatement) Kind() string     { return "DoWhileStatement" }
func (n *DoWhileStatement) Span() token.Span { return n.Loc }
func (n *DoWhileStatement) Accept(v Visitor) { v.VisitDoWhileStatement(n) }
func (n *DoWhileStatement) statementNode()   {}

// ForStatement's Init may be nil, a *VariableDeclaration, or an
// Expression (a bare assignment/update before the loop).
type ForStatement struct {
	Loc    token.Span
	Init   Node
	Test   Expression // optional
	Update Expression // optional
	Body   Statement
}

func (n *ForStatement) Kind() string     { return "ForStatement" }
func (n *ForStatement) Span() token.Span { return n.Loc }
func (n *ForStatement) Accept(v Visitor) { v.VisitForStatement(n) }
func (n *ForStatement) statementNode()   {}

// ForInStatement/ForOfStatement's Left is either a *VariableDeclaration
// (with exactly one declarator) or an Expression/Pattern assignment target.
type ForInStatement struct {
	Loc   token.Span
	Left  Node
	Right Expression
	Body  Statement
}

func (n *ForInStatement) Kind() string     { return "ForInStatement" }
func (n *ForInStatement) Span() token.Span { return n.Loc }
func (n *ForInStatement) Accept(v Visitor) { v.VisitForInStatement(n) }
func (n *ForInStatement) statementNode()   {}

type ForOfStatement struct {
	Loc     token.Span
	Left    Node
	Right   Expression
	Body    Statement
	IsAwait bool
}

func (n *ForOfStatement) Kind() string     { return "ForOfStatement" }
func (n *ForOfStatement) Span() token.Span { return n.Loc }
func (n *ForOfStatement) Accept(v Visitor) { v.VisitForOfStatement(n) }
func (n *ForOfStatement) statementNode()   {}

// SwitchCase's Test is nil for the default case.
type SwitchCase struct {
	Test       Expression
	Consequent []Statement
}

type SwitchStatement struct {
	Loc          token.Span
	Discriminant Expression
	Cases        []SwitchCase
}

func (n *SwitchStatement) Kind() string     { return "SwitchStatement" }
func (n *SwitchStatement) Span() token.Span { return n.Loc }
func (n *SwitchStatement) Accept(v Visitor) { v.VisitSwitchStatement(n) }
func (n *SwitchStatement) statementNode()   {}

type CatchClause struct {
	Param Pattern // optional (catch without binding)
	Body  *BlockStatement
}

type TryStatement struct {
	Loc       token.Span
	Block     *BlockStatement
	Handler   *CatchClause    // optional
	Finalizer *BlockStatement // optional
}

func (n *TryStatement) Kind() string     { return "TryStatement" }
func (n *TryStatement) Span() token.Span { return n.Loc }
func (n *TryStatement) Accept(v Visitor) { v.VisitTryStatement(n) }
func (n *TryStatement) statementNode()   {}

type ThrowStatement struct {
	Loc      token.Span
	Argument Expression
}

func (n *ThrowStatement) Kind() string     { return "ThrowStatement" }
func (n *ThrowStatement) Span() token.Span { return n.Loc }
func (n *ThrowStatement) Accept(v Visitor) { v.VisitThrowStatement(n) }
func (n *ThrowStatement) statementNode()   {}

type BreakStatement struct {
	Loc   token.Span
	Label *Identifier // optional
}

func (n *BreakStatement) Kind() string     { return "BreakStatement" }
func (n *BreakStatement) Span() token.Span { return n.Loc }
func (n *BreakStatement) Accept(v Visitor) { v.VisitBreakStatement(n) }
func (n *BreakStatement) statementNode()   {}

type ContinueStatement struct {
	Loc   token.Span
	Label *Identifier // optional
}

func (n *ContinueStatement) Kind() string     { return "ContinueStatement" }
func (n *ContinueStatement) Span() token.Span { return n.Loc }
func (n *ContinueStatement) Accept(v Visitor) { v.VisitContinueStatement(n) }
func (n *ContinueStatement) statementNode()   {}

type LabeledStatement struct {
	Loc   token.Span
	Label *Identifier
	Body  Statement
}

func (n *LabeledStatement) Kind() string     { return "LabeledStatement" }
func (n *LabeledStatement) Span() token.Span { return n.Loc }
func (n *LabeledStatement) Accept(v Visitor) { v.VisitLabeledStatement(n) }
func (n *LabeledStatement) statementNode()   {}
