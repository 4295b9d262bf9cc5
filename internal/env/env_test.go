package env

import (
	"testing"

	"github.com/inferlang/inferlang/internal/types"
)

func TestDeclareAndLookup(t *testing.T) {
	g := NewGlobal()
	g2 := g.Declare("x", Binding{Type: types.Number(), DeclKind: "let"})

	if _, ok := g.Lookup("x"); ok {
		t.Errorf("original environment should be unaffected by Declare on the derived one")
	}
	b, ok := g2.Lookup("x")
	if !ok || !types.Equal(b.Type, types.Number()) {
		t.Errorf("Lookup(x) = %v, %v; want number binding", b, ok)
	}
}

func TestChildShadowing(t *testing.T) {
	g := NewGlobal().Declare("x", Binding{Type: types.Number(), DeclKind: "let"})
	child := g.Child(ScopeBlock).Declare("x", Binding{Type: types.StringType{}, DeclKind: "let"})

	b, _ := child.Lookup("x")
	if b.Type.String() != "string" {
		t.Errorf("inner x = %s, want string", b.Type.String())
	}
	gb, _ := g.Lookup("x")
	if gb.Type.String() != "number" {
		t.Errorf("outer x changed after child shadow: %s", gb.Type.String())
	}
}

func TestSetNarrowsOwningFrame(t *testing.T) {
	g := NewGlobal().Declare("x", Binding{Type: types.Number(), DeclKind: "let"})
	block := g.Child(ScopeBlock)
	updated := block.Set("x", types.StringType{})

	b, _ := updated.Lookup("x")
	if b.Type.String() != "string" {
		t.Errorf("Set through child scope = %s, want string", b.Type.String())
	}
	if _, ok := block.Lookup("x"); !ok {
		t.Errorf("sanity: x should still be visible on original block chain")
	}
	ob, _ := g.Lookup("x")
	if ob.Type.String() != "number" {
		t.Errorf("Set on derived chain mutated original frame: %s", ob.Type.String())
	}
}

func TestJoinUnionsTypesAndKeepsPartialBindings(t *testing.T) {
	base := NewGlobal()
	left := base.Declare("x", Binding{Type: types.Number(), DefinitelyAssigned: true}).
		Declare("onlyLeft", Binding{Type: types.Number(), DefinitelyAssigned: true})
	right := base.Declare("x", Binding{Type: types.StringType{}, DefinitelyAssigned: true})

	joined := Join(base, []*Environment{left, right})

	x, ok := joined.Lookup("x")
	if !ok || x.Type.String() != "number | string" {
		t.Errorf("joined x = %v, ok=%v, want number | string", x, ok)
	}
	if !x.DefinitelyAssigned {
		t.Errorf("x bound on every incoming path should stay definitely-assigned")
	}
	onlyLeft, ok := joined.Lookup("onlyLeft")
	if !ok {
		t.Errorf("onlyLeft should survive the join: it is bound on at least one incoming path")
	}
	if onlyLeft.DefinitelyAssigned {
		t.Errorf("onlyLeft is missing from the right path, so it must not be definitely-assigned after the join")
	}
	if onlyLeft.Type.String() != "number" {
		t.Errorf("onlyLeft type = %s, want number", onlyLeft.Type.String())
	}
}

func TestWidenReplacesLiterals(t *testing.T) {
	g := NewGlobal().Declare("x", Binding{Type: types.NumberLiteral(1), DefinitelyAssigned: true})
	widened := Widen(g)
	b, _ := widened.Lookup("x")
	if b.Type.String() != "number" {
		t.Errorf("widened x = %s, want number", b.Type.String())
	}
}

func TestEnvironmentEqual(t *testing.T) {
	a := NewGlobal().Declare("x", Binding{Type: types.Number(), DefinitelyAssigned: true})
	b := NewGlobal().Declare("x", Binding{Type: types.Number(), DefinitelyAssigned: true})
	if !Equal(a, b) {
		t.Errorf("structurally identical environments should compare equal")
	}
	c := b.Declare("x", Binding{Type: types.StringType{}, DefinitelyAssigned: true})
	if Equal(a, c) {
		t.Errorf("environments with different binding types should not compare equal")
	}
}
