package ast

import "github.com/inferlang/inferlang/internal/token"

// SpreadElement wraps `...expr` inside array/object literals and call
// arguments (spec §4.3.7).
type SpreadElement struct {
	Loc      token.Span
	Argument Expression
}

func (n *SpreadElement) Kind() string     { return "SpreadElement" }
func (n *SpreadElement) Span() token.Span { return n.Loc }
func (n *SpreadElement) Accept(v Visitor) { v.VisitSpreadElement(n) }
func (n *SpreadElement) expressionNode()  {}

// ArrayExpression elements may themselves be *SpreadElement; a nil
// entry represents an elision (a hole), which contributes no type.
type ArrayExpression struct {
	Loc      token.Span
	Elements []Expression
}

func (n *ArrayExpression) Kind() string     { return "ArrayExpression" }
func (n *ArrayExpression) Span() token.Span { return n.Loc }
func (n *ArrayExpression) Accept(v Visitor) { v.VisitArrayExpression(n) }
func (n *ArrayExpression) expressionNode()  {}

// ObjectProperty is a single key/value slot of an ObjectExpression.
// Spread properties are represented as a property whose Value is a
// *SpreadElement and whose Key is empty.
type ObjectProperty struct {
	Key       string
	Computed  bool
	Shorthand bool
	Value     Expression
}

type ObjectExpression struct {
	Loc        token.Span
	Properties []ObjectProperty
}

func (n *ObjectExpression) Kind() string     { return "ObjectExpression" }
func (n *ObjectExpression) Span() token.Span { return n.Loc }
func (n *ObjectExpression) Accept(v Visitor) { v.VisitObjectExpression(n) }
func (n *ObjectExpression) expressionNode()  {}

// Param is a single function parameter: either a simple name or a
// destructuring pattern, with an optional default and rest marker.
type Param struct {
	Pattern  Pattern
	Default  Expression
	Rest     bool
	Optional bool
}

type FunctionExpression struct {
	Loc         token.Span
	Id          *Identifier // optional (anonymous function expressions)
	Params      []Param
	Body        *BlockStatement
	IsAsync     bool
	IsGenerator bool
}

func (n *FunctionExpression) Kind() string     { return "FunctionExpression" }
func (n *FunctionExpression) Span() token.Span { return n.Loc }
func (n *FunctionExpression) Accept(v Visitor) { v.VisitFunctionExpression(n) }
func (n *FunctionExpression) expressionNode()  {}

// ArrowFunctionExpression's Body is either a *BlockStatement or, for
// concise-body arrows, an Expression.
type ArrowFunctionExpression struct {
	Loc     token.Span
	Params  []Param
	Body    Node
	IsAsync bool
}

func (n *ArrowFunctionExpression) Kind() string     { return "ArrowFunctionExpression" }
func (n *ArrowFunctionExpression) Span() token.Span { return n.Loc }
func (n *ArrowFunctionExpression) Accept(v Visitor) { v.VisitArrowFunctionExpression(n) }
func (n *ArrowFunctionExpression) expressionNode()  {}

type FunctionDeclaration struct {
	Loc         token.Span
	Id          *Identifier
	Params      []Param
	Body        *BlockStatement
	IsAsync     bool
	IsGenerator bool
}

func (n *FunctionDeclaration) Kind() string     { return "FunctionDeclaration" }
func (n *FunctionDeclaration) Span() token.Span { return n.Loc }
func (n *FunctionDeclaration) Accept(v Visitor) { v.VisitFunctionDeclaration(n) }
func (n *FunctionDeclaration) statementNode()   {}

type MemberExpression struct {
	Loc      token.Span
	Object   Expression
	Property Expression // Identifier for `.x`, any Expression for `[x]`
	Computed bool
}

func (n *MemberExpression) Kind() string     { return "MemberExpression" }
func (n *MemberExpression) Span() token.Span { return n.Loc }
func (n *MemberExpression) Accept(v Visitor) { v.VisitMemberExpression(n) }
func (n *MemberExpression) expressionNode()  {}

type OptionalMemberExpression struct {
	Loc      token.Span
	Object   Expression
	Property Expression
	Computed bool
}

func (n *OptionalMemberExpression) Kind() string     { return "OptionalMemberExpression" }
func (n *OptionalMemberExpression) Span() token.Span { return n.Loc }
func (n *OptionalMemberExpression) Accept(v Visitor) { v.VisitOptionalMemberExpression(n) }
func (n *OptionalMemberExpression) expressionNode()  {}

type CallExpression struct {
	Loc       token.Span
	Callee    Expression
	Arguments []Expression
}

func (n *CallExpression) Kind() string     { return "CallExpression" }
func (n *CallExpression) Span() token.Span { return n.Loc }
func (n *CallExpression) Accept(v Visitor) { v.VisitCallExpression(n) }
func (n *CallExpression) expressionNode()  {}

type OptionalCallExpression struct {
	Loc       token.Span
	Callee    Expression
	Arguments []Expression
}

func (n *OptionalCallExpression) Kind() string     { return "OptionalCallExpression" }
func (n *OptionalCallExpression) Span() token.Span { return n.Loc }
func (n *OptionalCallExpression) Accept(v Visitor) { v.VisitOptionalCallExpression(n) }
func (n *OptionalCallExpression) expressionNode()  {}

type NewExpression struct {
	Loc       token.Span
	Callee    Expression
	Arguments []Expression
}

func (n *NewExpression) Kind() string     { return "NewExpression" }
func (n *NewExpression) Span() token.Span { return n.Loc }
func (n *NewExpression) Accept(v Visitor) { v.VisitNewExpression(n) }
func (n *NewExpression) expressionNode()  {}

type BinaryExpression struct {
	Loc      token.Span
	Operator string
	Left     Expression
	Right    Expression
}

func (n *BinaryExpression) Kind() string     { return "BinaryExpression" }
func (n *BinaryExpression) Span() token.Span { return n.Loc }
func (n *BinaryExpression) Accept(v Visitor) { v.VisitBinaryExpression(n) }
func (n *BinaryExpression) expressionNode()  {}

type UnaryExpression struct {
	Loc      token.Span
	Operator string
	Argument Expression
	Prefix   bool
}

func (n *UnaryExpression) Kind() string     { return "UnaryExpression" }
func (n *UnaryExpression) Span() token.Span { return n.Loc }
func (n *UnaryExpression) Accept(v Visitor) { v.VisitUnaryExpression(n) }
func (n *UnaryExpression) expressionNode()  {}

type UpdateExpression struct {
	Loc      token.Span
	Operator string // "++" or "--"
	Argument Expression
	Prefix   bool
}

func (n *UpdateExpression) Kind() string     { return "UpdateExpression" }
func (n *UpdateExpression) Span() token.Span { return n.Loc }
func (n *UpdateExpression) Accept(v Visitor) { v.VisitUpdateExpression(n) }
func (n *UpdateExpression) expressionNode()  {}

type LogicalExpression struct {
	Loc      token.Span
	Operator string // "&&", "||", "??"
	Left     Expression
	Right    Expression
}

func (n *LogicalExpression) Kind() string     { return "LogicalExpression" }
func (n *LogicalExpression) Span() token.Span { return n.Loc }
func (n *LogicalExpression) Accept(v Visitor) { v.VisitLogicalExpression(n) }
func (n *LogicalExpression) expressionNode()  {}

type ConditionalExpression struct {
	Loc         token.Span
	Test        Expression
	Consequent  Expression
	Alternate   Expression
}

func (n *ConditionalExpression) Kind() string     { return "ConditionalExpression" }
func (n *ConditionalExpression) Span() token.Span { return n.Loc }
func (n *ConditionalExpression) Accept(v Visitor) { v.VisitConditionalExpression(n) }
func (n *ConditionalExpression) expressionNode()  {}

// AssignmentExpression's Left is an Expression for `x = ...` / member
// targets, or a Pattern for destructuring assignment `[a, b] = ...`.
type AssignmentExpression struct {
	Loc      token.Span
	Operator string // "=", "+=", "-=", ...
	Left     Node
	Right    Expression
}

func (n *AssignmentExpression) Kind() string     { return "AssignmentExpression" }
func (n *AssignmentExpression) Span() token.Span { return n.Loc }
func (n *AssignmentExpression) Accept(v Visitor) { v.VisitAssignmentExpression(n) }
func (n *AssignmentExpression) expressionNode()  {}

type SequenceExpression struct {
	Loc         token.Span
	Expressions []Expression
}

func (n *SequenceExpression) Kind() string     { return "SequenceExpression" }
func (n *SequenceExpression) Span() token.Span { return n.Loc }
func (n *SequenceExpression) Accept(v Visitor) { v.VisitSequenceExpression(n) }
func (n *SequenceExpression) expressionNode()  {}

type AwaitExpression struct {
	Loc      token.Span
	Argument Expression
}

func (n *AwaitExpression) Kind() string     { return "AwaitExpression" }
func (n *AwaitExpression) Span() token.Span { return n.Loc }
func (n *AwaitExpression) Accept(v Visitor) { v.VisitAwaitExpression(n) }
func (n *AwaitExpression) expressionNode()  {}

type YieldExpression struct {
	Loc      token.Span
	Argument Expression // optional
	Delegate bool       // yield*
}

func (n *YieldExpression) Kind() string     { return "YieldExpression" }
func (n *YieldExpression) Span() token.Span { return n.Loc }
func (n *YieldExpression) Accept(v Visitor) { v.VisitYieldExpression(n) }
func (n *YieldExpression) expressionNode()  {}
