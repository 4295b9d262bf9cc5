package batch

import (
	"context"
	"testing"

	"github.com/inferlang/inferlang/internal/ast"
)

func constDecl(name string, init ast.Expression) *ast.VariableDeclaration {
	return &ast.VariableDeclaration{
		DeclKind: "const",
		Declarations: []*ast.VariableDeclarator{
			{Id: &ast.Identifier{Value: name}, Init: init},
		},
	}
}

func TestAnalyzeFilesRunsEveryFileIndependently(t *testing.T) {
	files := []File{
		{Filename: "a.js", Source: "const x = 1;", Program: &ast.Program{Body: []ast.Statement{
			constDecl("x", &ast.NumericLiteral{Value: 1}),
		}}},
		{Filename: "b.js", Source: `const y = "s";`, Program: &ast.Program{Body: []ast.Statement{
			constDecl("y", &ast.StringLiteral{Value: "s"}),
		}}},
	}
	results, err := AnalyzeFiles(context.Background(), files)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("want 2 results, got %d", len(results))
	}
	if results[0].Filename != "a.js" || results[1].Filename != "b.js" {
		t.Errorf("results must stay in input order, got %s then %s", results[0].Filename, results[1].Filename)
	}
	if results[0].Annotations[0].Name != "x" {
		t.Errorf("want x annotated in a.js")
	}
}

func TestInferFilesWithConstraintsRunsEveryFileIndependently(t *testing.T) {
	files := []File{
		{Filename: "a.js", Source: "const x = 1;", Program: &ast.Program{Body: []ast.Statement{
			constDecl("x", &ast.NumericLiteral{Value: 1}),
		}}},
	}
	results, err := InferFilesWithConstraints(context.Background(), files)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].Filename != "a.js" {
		t.Fatalf("want 1 result for a.js, got %v", results)
	}
}
