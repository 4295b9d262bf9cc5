// Package ast defines the tree interface the engine consumes (spec
// §6). It is intentionally independent of any concrete parser: a
// parser is an external collaborator (out of scope, spec §1) that is
// expected to hand the engine a tree built from these node types, or
// from any type satisfying the same shape. The node kinds below match
// the "known set" enumerated in spec §6 exactly.
package ast

import "github.com/inferlang/inferlang/internal/token"

// Node is the base interface every tree node satisfies. Kind returns
// one of the string tags enumerated in spec §6; Span returns the
// node's source extent (byte offsets may be zero-valued for
// synthetically constructed nodes, e.g. in tests).
type Node interface {
	Kind() string
	Span() token.Span
	Accept(v Visitor)
}

// Statement is a Node that can appear in a statement list.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Pattern is a Node usable on the left of a destructuring binding.
type Pattern interface {
	Node
	patternNode()
}

// OpaqueStatement wraps any statement the builder does not recognize.
// The CFG builder appends it verbatim rather than rejecting the tree
// (spec §4.2, "failure mode").
type OpaqueStatement struct {
	Loc       token.Span
	NodeKind  string
	Statement Statement
}

func (n *OpaqueStatement) Kind() string        { return n.NodeKind }
func (n *OpaqueStatement) Span() token.Span    { return n.Loc }
func (n *OpaqueStatement) Accept(v Visitor)    { v.VisitOpaque(n) }
func (n *OpaqueStatement) statementNode()      {}
