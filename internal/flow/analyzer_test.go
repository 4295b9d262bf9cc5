package flow

import (
	"testing"

	"github.com/inferlang/inferlang/internal/ast"
	"github.com/inferlang/inferlang/internal/config"
	"github.com/inferlang/inferlang/internal/env"
	"github.com/inferlang/inferlang/internal/types"
)

func newAnalyzer() *Analyzer {
	return NewAnalyzer(config.DefaultConfig(), env.NewGlobal())
}

func TestLetBindingType(t *testing.T) {
	body := []ast.Statement{
		&ast.VariableDeclaration{
			DeclKind: "let",
			Declarations: []*ast.VariableDeclarator{
				{Id: &ast.Identifier{Value: "x"}, Init: &ast.NumericLiteral{Value: 1}},
			},
		},
	}
	a := newAnalyzer()
	res := a.Analyze(body, env.NewGlobal())
	exitBlk := res.Graph.Blocks[res.Graph.Exits[0]]
	st := res.BlockStates[exitBlk.ID]
	b, ok := st.Env.Lookup("x")
	if !ok {
		t.Fatalf("x not bound after analysis")
	}
	if b.Type.String() != "1" {
		t.Errorf("x = %s, want literal 1", b.Type.String())
	}
}

func TestIfJoinUnionsBranchTypes(t *testing.T) {
	body := []ast.Statement{
		&ast.VariableDeclaration{
			DeclKind: "let",
			Declarations: []*ast.VariableDeclarator{
				{Id: &ast.Identifier{Value: "x"}, Init: &ast.NumericLiteral{Value: 0}},
			},
		},
		&ast.IfStatement{
			Test: &ast.Identifier{Value: "cond"},
			Consequent: &ast.ExpressionStatement{Expression: &ast.AssignmentExpression{
				Operator: "=",
				Left:     &ast.Identifier{Value: "x"},
				Right:    &ast.StringLiteral{Value: "s"},
			}},
		},
	}
	a := newAnalyzer()
	initial := env.NewGlobal().Declare("cond", env.Binding{Type: types.Boolean(), DefinitelyAssigned: true})
	res := a.Analyze(body, initial)
	exitBlk := res.Graph.Blocks[res.Graph.Exits[0]]
	st := res.BlockStates[exitBlk.ID]
	b, _ := st.Env.Lookup("x")
	union, ok := b.Type.(types.UnionType)
	if !ok || len(union.Members) != 2 {
		t.Fatalf("joined x = %s, want a 2-member union", b.Type.String())
	}
	if !types.Equal(b.Type, types.Union([]types.Type{types.NumberLiteral(0), types.StringLiteral("s")})) {
		t.Errorf("joined x = %s, want a union of 0 and \"s\"", b.Type.String())
	}
}

func TestWhileLoopWidensCounter(t *testing.T) {
	body := []ast.Statement{
		&ast.VariableDeclaration{
			DeclKind: "let",
			Declarations: []*ast.VariableDeclarator{
				{Id: &ast.Identifier{Value: "i"}, Init: &ast.NumericLiteral{Value: 0}},
			},
		},
		&ast.WhileStatement{
			Test: &ast.Identifier{Value: "cond"},
			Body: &ast.ExpressionStatement{Expression: &ast.AssignmentExpression{
				Operator: "=",
				Left:     &ast.Identifier{Value: "i"},
				Right: &ast.BinaryExpression{
					Operator: "+",
					Left:     &ast.Identifier{Value: "i"},
					Right:    &ast.NumericLiteral{Value: 1},
				},
			}},
		},
	}
	a := newAnalyzer()
	initial := env.NewGlobal().Declare("cond", env.Binding{Type: types.Boolean(), DefinitelyAssigned: true})
	res := a.Analyze(body, initial)
	if len(res.Diagnostics) != 0 {
		t.Errorf("expected the loop to converge without hitting the iteration budget, got %v", res.Diagnostics)
	}
	exitBlk := res.Graph.Blocks[res.Graph.Exits[0]]
	st := res.BlockStates[exitBlk.ID]
	b, _ := st.Env.Lookup("i")
	if b.Type.String() != "number" {
		t.Errorf("i after loop = %s, want widened number", b.Type.String())
	}
}

func TestFunctionReturnTypeIsUnionOfReturns(t *testing.T) {
	body := []ast.Statement{
		&ast.FunctionDeclaration{
			Id: &ast.Identifier{Value: "f"},
			Body: &ast.BlockStatement{Body: []ast.Statement{
				&ast.IfStatement{
					Test:       &ast.Identifier{Value: "cond"},
					Consequent: &ast.ReturnStatement{Argument: &ast.NumericLiteral{Value: 1}},
				},
				&ast.ReturnStatement{Argument: &ast.StringLiteral{Value: "s"}},
			}},
		},
	}
	a := newAnalyzer()
	initial := env.NewGlobal().Declare("cond", env.Binding{Type: types.Boolean(), DefinitelyAssigned: true})
	res := a.Analyze(body, initial)
	exitBlk := res.Graph.Blocks[res.Graph.Exits[0]]
	st := res.BlockStates[exitBlk.ID]
	b, ok := st.Env.Lookup("f")
	if !ok {
		t.Fatalf("f not bound")
	}
	fn, ok := b.Type.(types.FunctionType)
	if !ok {
		t.Fatalf("f's type is %T, want FunctionType", b.Type)
	}
	want := types.Union([]types.Type{types.NumberLiteral(1), types.StringLiteral("s")})
	if !types.Equal(fn.Return, want) {
		t.Errorf("f's return type = %s, want %s", fn.Return.String(), want.String())
	}
}
