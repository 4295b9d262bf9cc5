package ast

import "github.com/inferlang/inferlang/internal/token"

// RestElement wraps the trailing `...rest` of an array/object pattern
// or parameter list.
type RestElement struct {
	Loc      token.Span
	Argument Pattern
}

func (n *RestElement) Kind() string     { return "RestElement" }
func (n *RestElement) Span() token.Span { return n.Loc }
func (n *RestElement) Accept(v Visitor) { v.VisitRestElement(n) }
func (n *RestElement) patternNode()     {}

// AssignmentPattern is a pattern with a default value: `{x = 1}` or
// `[a = 2]` (spec §4.3.3 "default values").
type AssignmentPattern struct {
	Loc   token.Span
	Left  Pattern
	Right Expression
}

func (n *AssignmentPattern) Kind() string     { return "AssignmentPattern" }
func (n *AssignmentPattern) Span() token.Span { return n.Loc }
func (n *AssignmentPattern) Accept(v Visitor) { v.VisitAssignmentPattern(n) }
func (n *AssignmentPattern) patternNode()     {}

// ObjectPatternProperty destructures one field; Value may itself be a
// nested Pattern (including *AssignmentPattern for a default, or
// *RestElement for the trailing rest binding).
type ObjectPatternProperty struct {
	Key      string
	Computed bool
	Value    Pattern
}

type ObjectPattern struct {
	Loc        token.Span
	Properties []ObjectPatternProperty
}

func (n *ObjectPattern) Kind() string     { return "ObjectPattern" }
func (n *ObjectPattern) Span() token.Span { return n.Loc }
func (n *ObjectPattern) Accept(v Visitor) { v.VisitObjectPattern(n) }
func (n *ObjectPattern) patternNode()     {}

// ArrayPattern elements may be nil (an elision/hole), a plain Pattern,
// an *AssignmentPattern (default), or a trailing *RestElement.
type ArrayPattern struct {
	Loc      token.Span
	Elements []Pattern
}

func (n *ArrayPattern) Kind() string     { return "ArrayPattern" }
func (n *ArrayPattern) Span() token.Span { return n.Loc }
func (n *ArrayPattern) Accept(v Visitor) { v.VisitArrayPattern(n) }
func (n *ArrayPattern) patternNode()     {}
