package flow

import (
	"github.com/inferlang/inferlang/internal/annotate"
	"github.com/inferlang/inferlang/internal/ast"
	"github.com/inferlang/inferlang/internal/cfg"
	"github.com/inferlang/inferlang/internal/env"
	"github.com/inferlang/inferlang/internal/types"
)

// funcLike unifies FunctionDeclaration/FunctionExpression's common
// shape so inferFunctionSignature doesn't need a copy per AST node
// kind (they differ only in whether they carry a name).
type funcLike struct {
	Params      []ast.Param
	Body        *ast.BlockStatement
	IsAsync     bool
	IsGenerator bool
}

// inferFunctionSignature computes a function's type by analyzing its
// body once with each parameter bound to Unknown() (spec §4.3.5 "first
// pass: parameters are given the top type so the body can be checked
// at all"). A second pass that narrows parameter types from observed
// call-site arguments runs in AnalyzeProgram (program.go) once every
// call site in the file has been visited: a second Analyzer carrying
// the merged call sites calls inferFunctionSignatureWithArgs.
func (a *Analyzer) inferFunctionSignature(f funcLike, e *env.Environment) types.FunctionType {
	return a.inferFunctionSignatureWithArgs(f, e, nil)
}

// inferFunctionSignatureWithArgs is the second-pass entry point: argTypes,
// when non-nil, supplies the union of argument types observed at every
// call site (spec §4.3.5 "call-site aggregation"), positionally
// overriding the first pass's Unknown() parameters.
func (a *Analyzer) inferFunctionSignatureWithArgs(f funcLike, e *env.Environment, argTypes []types.Type) types.FunctionType {
	fnEnv := e.Child(env.ScopeFunction)
	params := make([]types.Param, 0, len(f.Params))
	for i, p := range f.Params {
		pt := types.Unknown()
		if i < len(argTypes) && argTypes[i] != nil {
			pt = argTypes[i]
		}
		if p.Default != nil {
			defaultType := a.inferExpr(p.Default, fnEnv, newState(fnEnv))
			pt = types.Union([]types.Type{pt, defaultType})
		}
		if p.Rest {
			pt = types.Array(pt, nil)
		}
		params = append(params, types.Param{Type: pt, Optional: p.Default != nil, Rest: p.Rest})
		fnEnv = a.bindPattern(p.Pattern, pt, "let", annotate.KindParameter, fnEnv)
	}

	returnType := a.inferFunctionBody(f.Body, fnEnv)
	if f.IsGenerator {
		returnType = types.Any("generator-unmodeled")
	}
	return types.FunctionType{Params: params, Return: returnType, IsAsync: f.IsAsync, IsGenerator: f.IsGenerator}
}

// inferFunctionBody runs the flow analyzer over a function body and
// unions the type of every reachable return statement's argument
// (spec §4.3.5); a body with no return yields undefined.
func (a *Analyzer) inferFunctionBody(body *ast.BlockStatement, fnEnv *env.Environment) types.Type {
	if body == nil {
		return types.Undefined()
	}
	result := a.analyzeGraph(cfg.Build(body.Body), fnEnv)
	var returns []types.Type
	for id, blk := range result.Graph.Blocks {
		st := result.BlockStates[id]
		if st == nil || !st.Reachable {
			continue
		}
		if blk.Terminator.Kind == cfg.TermReturn {
			if blk.Terminator.Value != nil {
				returns = append(returns, a.inferExpr(blk.Terminator.Value, st.Env, st))
			} else {
				returns = append(returns, types.Undefined())
			}
		}
	}
	if len(returns) == 0 {
		return types.Undefined()
	}
	return types.Union(returns)
}

func funcToLike(n *ast.FunctionDeclaration) funcLike {
	return funcLike{Params: n.Params, Body: n.Body, IsAsync: n.IsAsync, IsGenerator: n.IsGenerator}
}

// inferArrow computes an arrow function's signature; a concise body
// (Body is an Expression, not *BlockStatement) is treated as an
// implicit `return <expr>` (spec §4.3.7's ArrowFunctionExpression
// row).
func (a *Analyzer) inferArrow(n *ast.ArrowFunctionExpression, e *env.Environment) types.Type {
	return a.inferArrowWithArgs(n, e, nil)
}

// inferArrowWithArgs is inferArrow's second-pass entry point: argTypes,
// when non-nil, supplies the call-site-aggregated argument types (spec
// §4.3.5) the same way inferFunctionSignatureWithArgs does for named
// function declarations/expressions.
func (a *Analyzer) inferArrowWithArgs(n *ast.ArrowFunctionExpression, e *env.Environment, argTypes []types.Type) types.Type {
	fnEnv := e.Child(env.ScopeFunction)
	params := make([]types.Param, 0, len(n.Params))
	for i, p := range n.Params {
		pt := types.Unknown()
		if i < len(argTypes) && argTypes[i] != nil {
			pt = argTypes[i]
		}
		if p.Default != nil {
			defaultType := a.inferExpr(p.Default, fnEnv, newState(fnEnv))
			pt = types.Union([]types.Type{pt, defaultType})
		}
		if p.Rest {
			pt = types.Array(pt, nil)
		}
		params = append(params, types.Param{Type: pt, Optional: p.Default != nil, Rest: p.Rest})
		fnEnv = a.bindPattern(p.Pattern, pt, "let", annotate.KindParameter, fnEnv)
	}
	var ret types.Type
	if block, ok := n.Body.(*ast.BlockStatement); ok {
		ret = a.inferFunctionBody(block, fnEnv)
	} else if expr, ok := n.Body.(ast.Expression); ok {
		ret = a.inferExpr(expr, fnEnv, newState(fnEnv))
	} else {
		ret = types.Undefined()
	}
	return types.FunctionType{Params: params, Return: ret, IsAsync: n.IsAsync}
}

// inferExprNamed infers expr's type the same way inferExpr does,
// except that a function expression or arrow function assigned
// directly to name is looked up in a.MergedCallSites (spec §4.3.5):
// call-site aggregation isn't limited to top-level function
// declarations, any named binding's right-hand-side function literal
// qualifies too.
func (a *Analyzer) inferExprNamed(expr ast.Expression, name string, e *env.Environment, st *TypeState) types.Type {
	if name == "" || expr == nil {
		return a.inferExpr(expr, e, st)
	}
	if t, ok := st.ExprTypes[expr]; ok {
		return t
	}
	var argTypes []types.Type
	if a.MergedCallSites != nil {
		argTypes = a.MergedCallSites[name]
	}
	var t types.Type
	switch n := expr.(type) {
	case *ast.FunctionExpression:
		t = a.inferFunctionSignatureWithArgs(funcToLike2(n), e, argTypes)
	case *ast.ArrowFunctionExpression:
		t = a.inferArrowWithArgs(n, e, argTypes)
	default:
		t = a.inferExprUncached(expr, e, st)
	}
	st.ExprTypes[expr] = t
	return t
}
