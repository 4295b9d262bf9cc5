package ast

import "github.com/inferlang/inferlang/internal/token"

// Program is the root of every tree the engine analyzes (one per file).
type Program struct {
	Loc  token.Span
	Body []Statement
}

func (n *Program) Kind() string     { return "Program" }
func (n *Program) Span() token.Span { return n.Loc }
func (n *Program) Accept(v Visitor) { v.VisitProgram(n) }
