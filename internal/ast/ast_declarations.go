package ast

import "github.com/inferlang/inferlang/internal/token"

type VariableDeclarator struct {
	Loc  token.Span
	Id   Pattern // Identifier for simple bindings, or a destructuring pattern
	Init Expression
}

func (n *VariableDeclarator) Kind() string     { return "VariableDeclarator" }
func (n *VariableDeclarator) Span() token.Span { return n.Loc }
func (n *VariableDeclarator) Accept(v Visitor) { v.VisitVariableDeclarator(n) }
func (n *VariableDeclarator) statementNode()   {}

type VariableDeclaration struct {
	Loc          token.Span
	DeclKind     string // "const", "let", "var"
	Declarations []*VariableDeclarator
}

func (n *VariableDeclaration) Kind() string     { return "VariableDeclaration" }
func (n *VariableDeclaration) Span() token.Span { return n.Loc }
func (n *VariableDeclaration) Accept(v Visitor) { v.VisitVariableDeclaration(n) }
func (n *VariableDeclaration) statementNode()   {}
