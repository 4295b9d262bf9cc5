package ast

import "github.com/inferlang/inferlang/internal/token"

type NumericLiteral struct {
	Loc   token.Span
	Value float64
}

func (n *NumericLiteral) Kind() string     { return "NumericLiteral" }
func (n *NumericLiteral) Span() token.Span { return n.Loc }
func (n *NumericLiteral) Accept(v Visitor) { v.VisitNumericLiteral(n) }
func (n *NumericLiteral) expressionNode()  {}

type StringLiteral struct {
	Loc   token.Span
	Value string
}

func (n *StringLiteral) Kind() string     { return "StringLiteral" }
func (n *StringLiteral) Span() token.Span { return n.Loc }
func (n *StringLiteral) Accept(v Visitor) { v.VisitStringLiteral(n) }
func (n *StringLiteral) expressionNode()  {}

type BooleanLiteral struct {
	Loc   token.Span
	Value bool
}

func (n *BooleanLiteral) Kind() string     { return "BooleanLiteral" }
func (n *BooleanLiteral) Span() token.Span { return n.Loc }
func (n *BooleanLiteral) Accept(v Visitor) { v.VisitBooleanLiteral(n) }
func (n *BooleanLiteral) expressionNode()  {}

type NullLiteral struct {
	Loc token.Span
}

func (n *NullLiteral) Kind() string     { return "NullLiteral" }
func (n *NullLiteral) Span() token.Span { return n.Loc }
func (n *NullLiteral) Accept(v Visitor) { v.VisitNullLiteral(n) }
func (n *NullLiteral) expressionNode()  {}

// BigIntLiteral stores its value as decimal text; the engine never
// does bigint arithmetic itself, only types it (spec §3.1).
type BigIntLiteral struct {
	Loc   token.Span
	Value string
}

func (n *BigIntLiteral) Kind() string     { return "BigIntLiteral" }
func (n *BigIntLiteral) Span() token.Span { return n.Loc }
func (n *BigIntLiteral) Accept(v Visitor) { v.VisitBigIntLiteral(n) }
func (n *BigIntLiteral) expressionNode()  {}

type RegExpLiteral struct {
	Loc     token.Span
	Pattern string
	Flags   string
}

func (n *RegExpLiteral) Kind() string     { return "RegExpLiteral" }
func (n *RegExpLiteral) Span() token.Span { return n.Loc }
func (n *RegExpLiteral) Accept(v Visitor) { v.VisitRegExpLiteral(n) }
func (n *RegExpLiteral) expressionNode()  {}

// TemplateLiteral holds the literal string parts (quasis) and the
// interpolated expressions between them. len(Quasis) == len(Expressions)+1.
type TemplateLiteral struct {
	Loc         token.Span
	Quasis      []string
	Expressions []Expression
}

func (n *TemplateLiteral) Kind() string     { return "TemplateLiteral" }
func (n *TemplateLiteral) Span() token.Span { return n.Loc }
func (n *TemplateLiteral) Accept(v Visitor) { v.VisitTemplateLiteral(n) }
func (n *TemplateLiteral) expressionNode()  {}

// Identifier is both an Expression (a variable reference) and a
// Pattern (a destructuring leaf), matching how the spec's node set
// reuses Identifier in both positions.
type Identifier struct {
	Loc   token.Span
	Value string
}

func (n *Identifier) Kind() string     { return "Identifier" }
func (n *Identifier) Span() token.Span { return n.Loc }
func (n *Identifier) Accept(v Visitor) { v.VisitIdentifier(n) }
func (n *Identifier) expressionNode()  {}
func (n *Identifier) patternNode()     {}

// ThisExpression is the `this` keyword (spec §4.3.7).
type ThisExpression struct {
	Loc token.Span
}

func (n *ThisExpression) Kind() string     { return "ThisExpression" }
func (n *ThisExpression) Span() token.Span { return n.Loc }
func (n *ThisExpression) Accept(v Visitor) { v.VisitThisExpression(n) }
func (n *ThisExpression) expressionNode()  {}
