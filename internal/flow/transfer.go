package flow

import (
	"github.com/inferlang/inferlang/internal/annotate"
	"github.com/inferlang/inferlang/internal/ast"
	"github.com/inferlang/inferlang/internal/cfg"
	"github.com/inferlang/inferlang/internal/env"
	"github.com/inferlang/inferlang/internal/types"
)

// transferBlock runs the per-statement transfer function (spec
// §4.3.3) over blk's straight-line statement list, returning the
// environment reaching blk's terminator. Per-expression types
// computed along the way are cached onto res.BlockStates[blk.ID].
func (a *Analyzer) transferBlock(blk *cfg.BasicBlock, entry *env.Environment, res *Result) *env.Environment {
	st := res.BlockStates[blk.ID]
	// Reset the per-block expression-type cache every round: the
	// incoming environment can differ between fixed-point iterations,
	// so a cached type from a stale round must not leak forward.
	st.ExprTypes = map[ast.Expression]types.Type{}
	cur := entry
	for _, s := range blk.Statements {
		cur = a.transferStatement(s, cur, st)
	}
	if blk.Terminator.Condition != nil {
		a.inferExpr(blk.Terminator.Condition, cur, st)
	}
	if blk.Terminator.Value != nil {
		a.inferExpr(blk.Terminator.Value, cur, st)
	}
	return cur
}

func (a *Analyzer) transferStatement(s ast.Statement, e *env.Environment, st *TypeState) *env.Environment {
	switch n := s.(type) {
	case *ast.VariableDeclaration:
		kind := annotate.KindVariable
		if n.DeclKind == "const" {
			kind = annotate.KindConst
		}
		for _, d := range n.Declarations {
			t := types.Undefined()
			if d.Init != nil {
				name := ""
				if id, ok := d.Id.(*ast.Identifier); ok {
					name = id.Value
				}
				t = a.inferExprNamed(d.Init, name, e, st)
			}
			e = a.bindPattern(d.Id, t, n.DeclKind, kind, e)
		}
		return e

	case *ast.ExpressionStatement:
		a.inferExpr(n.Expression, e, st)
		if assign, ok := n.Expression.(*ast.AssignmentExpression); ok {
			e = a.applyAssignment(assign, e, st)
		}
		return e

	case *ast.FunctionDeclaration:
		if n.Id != nil {
			var argTypes []types.Type
			if a.MergedCallSites != nil {
				argTypes = a.MergedCallSites[n.Id.Value]
			}
			ft := a.inferFunctionSignatureWithArgs(funcToLike(n), e, argTypes)
			e = e.Declare(n.Id.Value, env.Binding{Type: ft, DeclKind: "const", DefinitelyAssigned: true, DeclNode: n})
			a.emitAnnotation(n.Id, annotate.KindFunction, ft)
		}
		return e

	case *ast.ClassDeclaration:
		if n.Id != nil {
			ct := a.inferClass(n, e)
			e = e.Declare(n.Id.Value, env.Binding{Type: ct, DeclKind: "const", DefinitelyAssigned: true, DeclNode: n})
			a.emitAnnotation(n.Id, annotate.KindClass, ct)
		}
		return e

	default:
		return e
	}
}
