package typeinfer

import (
	"testing"

	"github.com/inferlang/inferlang/internal/ast"
)

// constDecl builds `const <name> = <init>;` at a zero-valued span,
// enough for Infer/InferWithConstraints without a real parser (spec §1
// treats parsing as the embedder's job).
func constDecl(name string, init ast.Expression) *ast.VariableDeclaration {
	return &ast.VariableDeclaration{
		DeclKind: "const",
		Declarations: []*ast.VariableDeclarator{
			{Id: &ast.Identifier{Value: name}, Init: init},
		},
	}
}

func TestInferAnnotatesConstNumber(t *testing.T) {
	prog := &ast.Program{Body: []ast.Statement{
		constDecl("x", &ast.NumericLiteral{Value: 1}),
	}}
	result := Infer(prog, "test.js", "const x = 1;")
	if len(result.Annotations) != 1 {
		t.Fatalf("want 1 annotation, got %d", len(result.Annotations))
	}
	if result.Annotations[0].Name != "x" {
		t.Errorf("want annotation for x, got %s", result.Annotations[0].Name)
	}
	if result.RunID == "" {
		t.Errorf("want a non-empty RunID")
	}
}

func TestInferWithConstraintsAnnotatesConstNumber(t *testing.T) {
	prog := &ast.Program{Body: []ast.Statement{
		constDecl("x", &ast.NumericLiteral{Value: 1}),
	}}
	result := InferWithConstraints(prog, "test.js", "const x = 1;")
	if len(result.Annotations) != 1 {
		t.Fatalf("want 1 annotation, got %d", len(result.Annotations))
	}
	if result.Annotations[0].Name != "x" {
		t.Errorf("want annotation for x, got %s", result.Annotations[0].Name)
	}
	if result.Stats.ConstraintCount == 0 {
		t.Errorf("want at least one constraint recorded")
	}
	if result.Stats.TypeVariableCount == 0 {
		t.Errorf("want at least one type variable minted")
	}
}

func TestInferWithConstraintsFlagsIncompatibleTypes(t *testing.T) {
	// const x = 1; x() calls a number as if it were a function.
	x := &ast.Identifier{Value: "x"}
	prog := &ast.Program{Body: []ast.Statement{
		constDecl("x", &ast.NumericLiteral{Value: 1}),
		&ast.ExpressionStatement{Expression: &ast.CallExpression{Callee: x}},
	}}
	result := InferWithConstraints(prog, "test.js", `const x = 1; x();`)
	if len(result.SolveErrors) == 0 {
		t.Errorf("want a solve diagnostic for calling a number as a function")
	}
}
