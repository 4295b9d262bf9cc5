package constraints

import (
	"testing"

	"github.com/inferlang/inferlang/internal/ast"
	"github.com/inferlang/inferlang/internal/types"
)

func ident(name string) *ast.Identifier { return &ast.Identifier{Value: name} }

func TestLiteralsNeedNoConstraints(t *testing.T) {
	g := NewGenerator()
	e := NewConstraintEnv()
	typ := g.Generate(&ast.NumericLiteral{Value: 1}, e)
	if !types.Equal(typ, types.NumberLiteral(1)) {
		t.Errorf("got %s, want 1", typ.String())
	}
	if len(g.Constraints) != 0 {
		t.Errorf("literal generation should add no constraints, got %d", len(g.Constraints))
	}
}

func TestIdentifierLookupFallsBackToAny(t *testing.T) {
	g := NewGenerator()
	e := NewConstraintEnv()
	typ := g.Generate(ident("missing"), e)
	if _, ok := typ.(types.AnyType); !ok {
		t.Errorf("unbound identifier should type as any, got %s", typ.String())
	}
}

func TestPlusGeneratesSharedUpperBound(t *testing.T) {
	g := NewGenerator()
	e := NewConstraintEnv()
	expr := &ast.BinaryExpression{
		Operator: "+",
		Left:     &ast.NumericLiteral{Value: 1},
		Right:    &ast.NumericLiteral{Value: 2},
	}
	g.Generate(expr, e)
	if len(g.Constraints) != 2 {
		t.Fatalf("want 2 flow constraints for +, got %d", len(g.Constraints))
	}
	for _, c := range g.Constraints {
		if _, ok := c.Upper.(types.TypeVar); !ok {
			t.Errorf("both operands of + should flow into the same fresh variable, upper=%s", c.Upper.String())
		}
	}
}

func TestCallGeneratesFunctionConstraint(t *testing.T) {
	g := NewGenerator()
	e := NewConstraintEnv()
	e = e.Bind("f", g.Fresh("f"))
	expr := &ast.CallExpression{
		Callee:    ident("f"),
		Arguments: []ast.Expression{&ast.StringLiteral{Value: "x"}},
	}
	result := g.Generate(expr, e)
	if _, ok := result.(types.TypeVar); !ok {
		t.Errorf("call result should be a fresh variable, got %T", result)
	}
	if len(g.Constraints) != 1 {
		t.Fatalf("want 1 constraint for a call, got %d", len(g.Constraints))
	}
	fn, ok := g.Constraints[0].Upper.(types.FunctionType)
	if !ok {
		t.Fatalf("call's upper bound should be a function type, got %T", g.Constraints[0].Upper)
	}
	if len(fn.Params) != 1 {
		t.Errorf("want 1 param in synthesized callee shape, got %d", len(fn.Params))
	}
}

func TestLetBindingIsGeneralized(t *testing.T) {
	g := NewGenerator()
	e := NewConstraintEnv()
	decl := &ast.VariableDeclaration{
		DeclKind: "const",
		Declarations: []*ast.VariableDeclarator{
			{Id: ident("id"), Init: &ast.ArrowFunctionExpression{
				Params: []ast.Param{{Pattern: ident("x")}},
				Body:   ident("x"),
			}},
		},
	}
	sawReturn := false
	e2 := g.generateStatement(decl, e, nil, &sawReturn)
	_, scheme, ok := e2.lookup("id")
	if !ok {
		t.Fatalf("id should be bound")
	}
	if len(scheme.Vars) == 0 {
		t.Errorf("identity function's scheme should generalize its parameter variable")
	}
}

func TestFunctionBodyUnionsReturns(t *testing.T) {
	g := NewGenerator()
	e := NewConstraintEnv()
	body := &ast.BlockStatement{
		Body: []ast.Statement{
			&ast.IfStatement{
				Test:       ident("cond"),
				Consequent: &ast.ReturnStatement{Argument: &ast.NumericLiteral{Value: 1}},
				Alternate:  &ast.ReturnStatement{Argument: &ast.StringLiteral{Value: "s"}},
			},
		},
	}
	e = e.Bind("cond", types.Boolean())
	ret := g.generateBody(body, e)
	if _, ok := ret.(types.TypeVar); !ok {
		t.Errorf("function return should be a fresh result variable prior to solving, got %T", ret)
	}
	found := 0
	for _, c := range g.Constraints {
		if c.Upper == ret {
			found++
		}
	}
	if found != 2 {
		t.Errorf("want 2 constraints flowing into the return variable, got %d", found)
	}
}
