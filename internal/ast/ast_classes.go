package ast

import "github.com/inferlang/inferlang/internal/token"

// ClassMember is either a *ClassMethod or a *ClassProperty.
type ClassMember interface {
	Node
	classMemberNode()
}

type ClassMethod struct {
	Loc        token.Span
	Key        string
	MethodKind string // "constructor", "method", "get", "set"
	Static     bool
	Function   *FunctionExpression
}

func (n *ClassMethod) Kind() string     { return "ClassMethod" }
func (n *ClassMethod) classMemberNode() {}
func (n *ClassMethod) Span() token.Span { return n.Loc }
func (n *ClassMethod) Accept(v Visitor) { v.VisitClassMethod(n) }

type ClassProperty struct {
	Loc    token.Span
	Key    string
	Value  Expression // optional initializer
	Static bool
}

func (n *ClassProperty) Kind() string     { return "ClassProperty" }
func (n *ClassProperty) classMemberNode() {}
func (n *ClassProperty) Span() token.Span { return n.Loc }
func (n *ClassProperty) Accept(v Visitor) { v.VisitClassProperty(n) }

type ClassDeclaration struct {
	Loc        token.Span
	Id         *Identifier
	SuperClass Expression // optional
	Body       []ClassMember
}

func (n *ClassDeclaration) Kind() string     { return "ClassDeclaration" }
func (n *ClassDeclaration) Span() token.Span { return n.Loc }
func (n *ClassDeclaration) Accept(v Visitor) { v.VisitClassDeclaration(n) }
func (n *ClassDeclaration) statementNode()   {}

type ClassExpression struct {
	Loc        token.Span
	Id         *Identifier // optional
	SuperClass Expression  // optional
	Body       []ClassMember
}

func (n *ClassExpression) Kind() string     { return "ClassExpression" }
func (n *ClassExpression) Span() token.Span { return n.Loc }
func (n *ClassExpression) Accept(v Visitor) { v.VisitClassExpression(n) }
func (n *ClassExpression) expressionNode()  {}
