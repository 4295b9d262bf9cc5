package cfg

import (
	"testing"

	"github.com/inferlang/inferlang/internal/ast"
)

func ident(name string) *ast.Identifier { return &ast.Identifier{Value: name} }

func TestBuildIfElseJoins(t *testing.T) {
	body := []ast.Statement{
		&ast.IfStatement{
			Test: ident("cond"),
			Consequent: &ast.ExpressionStatement{Expression: ident("a")},
			Alternate:  &ast.ExpressionStatement{Expression: ident("b")},
		},
		&ast.ExpressionStatement{Expression: ident("after")},
	}
	g := Build(body)

	if len(g.Exits) != 1 {
		t.Fatalf("expected a single exit block, got %d", len(g.Exits))
	}
	exit := g.Blocks[g.Exits[0]]
	found := false
	for _, s := range exit.Statements {
		if es, ok := s.(*ast.ExpressionStatement); ok {
			if id, ok := es.Expression.(*ast.Identifier); ok && id.Value == "after" {
				found = true
			}
		}
	}
	if !found {
		t.Errorf("expected the join block to contain the statement after the if")
	}
}

func TestBuildWhileLoopBackEdge(t *testing.T) {
	body := []ast.Statement{
		&ast.WhileStatement{
			Test: ident("cond"),
			Body: &ast.ExpressionStatement{Expression: ident("x")},
		},
	}
	g := Build(body)

	foundBack := false
	for _, e := range g.Edges {
		if e.Kind == EdgeLoopBack && g.IsBackEdge(e) {
			foundBack = true
		}
	}
	if !foundBack {
		t.Errorf("expected a back edge in a while loop's CFG")
	}
}

func TestBuildReturnEndsBlock(t *testing.T) {
	body := []ast.Statement{
		&ast.IfStatement{
			Test:       ident("cond"),
			Consequent: &ast.ReturnStatement{Argument: ident("x")},
		},
		&ast.ExpressionStatement{Expression: ident("after")},
	}
	g := Build(body)

	// two exits: the early return, and the fallthrough/after path
	if len(g.Exits) != 2 {
		t.Errorf("expected 2 exits (early return + fallthrough), got %d", len(g.Exits))
	}
}

func TestBreakTargetsLoopExit(t *testing.T) {
	body := []ast.Statement{
		&ast.WhileStatement{
			Test: ident("cond"),
			Body: &ast.BlockStatement{Body: []ast.Statement{
				&ast.IfStatement{
					Test:       ident("stop"),
					Consequent: &ast.BreakStatement{},
				},
			}},
		},
	}
	g := Build(body)

	var breakEdges int
	for _, e := range g.Edges {
		if e.Kind == EdgeBreak {
			breakEdges++
		}
	}
	if breakEdges != 1 {
		t.Errorf("expected exactly one break edge, got %d", breakEdges)
	}
}

func TestDominatorsOnStraightLine(t *testing.T) {
	body := []ast.Statement{
		&ast.ExpressionStatement{Expression: ident("a")},
	}
	g := Build(body)
	if !g.Dominates(g.Entry, g.Entry) {
		t.Errorf("a block should dominate itself")
	}
}

func TestThrowRoutesToNearestCatch(t *testing.T) {
	throwStmt := &ast.ThrowStatement{Argument: ident("err")}
	body := []ast.Statement{
		&ast.TryStatement{
			Block: &ast.BlockStatement{Body: []ast.Statement{
				&ast.IfStatement{
					Test:       ident("cond"),
					Consequent: throwStmt,
				},
			}},
			Handler: &ast.CatchClause{Body: &ast.BlockStatement{Body: []ast.Statement{
				&ast.ExpressionStatement{Expression: ident("handled")},
			}}},
		},
	}
	g := Build(body)

	var throwBlk *BasicBlock
	for _, blk := range g.Blocks {
		if blk.Terminator.Kind == TermThrow {
			throwBlk = blk
		}
	}
	if throwBlk == nil {
		t.Fatalf("expected a block terminated by throw")
	}
	if throwBlk.Terminator.CatchTarget == nil {
		t.Fatalf("expected the throw inside a try/catch to carry a CatchTarget")
	}

	catchTarget := *throwBlk.Terminator.CatchTarget
	found := false
	for _, e := range g.Edges {
		if e.Kind == EdgeThrow && e.From == throwBlk.ID && e.To == catchTarget {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an EdgeThrow from the throw block to its CatchTarget")
	}

	for _, id := range g.Exits {
		if id == throwBlk.ID {
			t.Errorf("a throw routed to a catch handler should not also be a function exit")
		}
	}
}

func TestThrowWithoutEnclosingTryIsExit(t *testing.T) {
	body := []ast.Statement{
		&ast.ThrowStatement{Argument: ident("err")},
	}
	g := Build(body)

	if len(g.Exits) != 1 {
		t.Fatalf("expected the bare throw to be a function exit, got %d exits", len(g.Exits))
	}
	blk := g.Blocks[g.Exits[0]]
	if blk.Terminator.Kind != TermThrow || blk.Terminator.CatchTarget != nil {
		t.Errorf("bare throw should have TermThrow with no CatchTarget")
	}
}

func TestRPOStartsAtEntry(t *testing.T) {
	body := []ast.Statement{
		&ast.IfStatement{
			Test:       ident("cond"),
			Consequent: &ast.ExpressionStatement{Expression: ident("a")},
		},
	}
	g := Build(body)
	order := g.RPO()
	if len(order) == 0 || order[0] != g.Entry {
		t.Errorf("RPO should start at Entry, got %v", order)
	}
}
