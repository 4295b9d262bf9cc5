package flow

import (
	"github.com/inferlang/inferlang/internal/annotate"
	"github.com/inferlang/inferlang/internal/ast"
	"github.com/inferlang/inferlang/internal/builtins"
	"github.com/inferlang/inferlang/internal/config"
	"github.com/inferlang/inferlang/internal/diagnostics"
	"github.com/inferlang/inferlang/internal/env"
	"github.com/inferlang/inferlang/internal/token"
	"github.com/inferlang/inferlang/internal/types"
)

// inferExpr computes expr's type under e, caching the result onto st
// (spec §4.3.7's shared expression-inference table, used by both the
// flow analyzer and, through the same cache shape, annotation output).
func (a *Analyzer) inferExpr(expr ast.Expression, e *env.Environment, st *TypeState) types.Type {
	if expr == nil {
		return types.Undefined()
	}
	if t, ok := st.ExprTypes[expr]; ok {
		return t
	}
	t := a.inferExprUncached(expr, e, st)
	st.ExprTypes[expr] = t
	return t
}

func (a *Analyzer) inferExprUncached(expr ast.Expression, e *env.Environment, st *TypeState) types.Type {
	switch n := expr.(type) {
	case *ast.NumericLiteral:
		return types.NumberLiteral(n.Value)
	case *ast.StringLiteral:
		return types.StringLiteral(n.Value)
	case *ast.BooleanLiteral:
		return types.BooleanLiteral(n.Value)
	case *ast.BigIntLiteral:
		return types.BigIntLiteral(n.Value)
	case *ast.NullLiteral:
		return types.Null()
	case *ast.TemplateLiteral:
		for _, e2 := range n.Expressions {
			a.inferExpr(e2, e, st)
		}
		return types.String()
	case *ast.RegExpLiteral:
		return types.Any("regexp-unmodeled")
	case *ast.ThisExpression:
		if b, ok := e.Lookup("this"); ok {
			return b.Type
		}
		return types.Any("this-outside-method")

	case *ast.Identifier:
		if b, ok := e.Lookup(n.Value); ok {
			return b.Type
		}
		return types.Any("undefined-variable")

	case *ast.ArrayExpression:
		return a.inferArray(n, e, st)

	case *ast.ObjectExpression:
		return a.inferObject(n, e, st)

	case *ast.UnaryExpression:
		return a.inferUnary(n, e, st)

	case *ast.UpdateExpression:
		a.inferExpr(n.Argument, e, st)
		return types.Number()

	case *ast.BinaryExpression:
		return a.inferBinary(n, e, st)

	case *ast.LogicalExpression:
		return a.inferLogical(n, e, st)

	case *ast.ConditionalExpression:
		a.inferExpr(n.Test, e, st)
		cons := a.inferExpr(n.Consequent, e, st)
		alt := a.inferExpr(n.Alternate, e, st)
		return types.Union([]types.Type{cons, alt})

	case *ast.SequenceExpression:
		var last types.Type = types.Undefined()
		for _, x := range n.Expressions {
			last = a.inferExpr(x, e, st)
		}
		return last

	case *ast.AssignmentExpression:
		return a.inferAssignmentExpr(n, e, st)

	case *ast.MemberExpression:
		return a.inferMember(n, e, st)
	case *ast.OptionalMemberExpression:
		obj := a.inferExpr(n.Object, e, st)
		if _, isNullish := nullishSplit(obj); isNullish {
			return types.Union([]types.Type{types.Undefined(), memberType(obj, n.Property, a, e, st)})
		}
		return memberType(obj, n.Property, a, e, st)

	case *ast.CallExpression:
		return a.inferCall(n, e, st)
	case *ast.OptionalCallExpression:
		callee := a.inferExpr(n.Callee, e, st)
		return a.applyCall(callee, n.Arguments, e, st, n.Span())

	case *ast.NewExpression:
		return a.inferNew(n, e, st)

	case *ast.FunctionExpression:
		return a.inferFunctionSignature(funcLike{Params: n.Params, Body: n.Body, IsAsync: n.IsAsync, IsGenerator: n.IsGenerator}, e)

	case *ast.ArrowFunctionExpression:
		return a.inferArrow(n, e)

	case *ast.ClassExpression:
		return a.inferClassExpr(n, e)

	case *ast.SpreadElement:
		return a.inferExpr(n.Argument, e, st)

	case *ast.AwaitExpression:
		inner := a.inferExpr(n.Argument, e, st)
		if p, ok := inner.(types.PromiseType); ok {
			return p.Resolved
		}
		return inner

	case *ast.YieldExpression:
		if n.Argument != nil {
			return a.inferExpr(n.Argument, e, st)
		}
		return types.Undefined()

	default:
		return types.Any("unmodeled-expression")
	}
}

func nullishSplit(t types.Type) (types.Type, bool) {
	u, ok := t.(types.UnionType)
	if !ok {
		_, isNull := t.(types.NullType)
		_, isUndef := t.(types.UndefinedType)
		return t, isNull || isUndef
	}
	for _, m := range u.Members {
		if _, ok := m.(types.NullType); ok {
			return t, true
		}
		if _, ok := m.(types.UndefinedType); ok {
			return t, true
		}
	}
	return t, false
}

func (a *Analyzer) inferArray(n *ast.ArrayExpression, e *env.Environment, st *TypeState) types.Type {
	elems := make([]types.Type, 0, len(n.Elements))
	hasSpread := false
	for _, el := range n.Elements {
		if el == nil {
			elems = append(elems, types.Undefined())
			continue
		}
		if _, ok := el.(*ast.SpreadElement); ok {
			hasSpread = true
		}
		elems = append(elems, a.inferExpr(el, e, st))
	}
	if hasSpread || len(elems) > config.TupleArityLimit {
		return types.Array(types.Union(elems), nil)
	}
	return types.Array(nil, elems)
}

func (a *Analyzer) inferObject(n *ast.ObjectExpression, e *env.Environment, st *TypeState) types.Type {
	var fields []types.Field
	for _, p := range n.Properties {
		if _, ok := p.Value.(*ast.SpreadElement); ok {
			spread := a.inferExpr(p.Value, e, st)
			if obj, ok := spread.(types.ObjectType); ok {
				fields = append(fields, obj.Fields...)
			}
			continue
		}
		fields = append(fields, types.Field{Name: p.Key, Type: a.inferExpr(p.Value, e, st)})
	}
	return types.Object(fields)
}

func (a *Analyzer) inferUnary(n *ast.UnaryExpression, e *env.Environment, st *TypeState) types.Type {
	argT := a.inferExpr(n.Argument, e, st)
	switch n.Operator {
	case "typeof":
		return types.String()
	case "!":
		return types.Boolean()
	case "-", "+":
		_ = argT
		return types.Number()
	case "~":
		return types.Number()
	case "void":
		return types.Undefined()
	case "delete":
		return types.Boolean()
	default:
		return types.Any("unmodeled-unary-op")
	}
}

func (a *Analyzer) inferBinary(n *ast.BinaryExpression, e *env.Environment, st *TypeState) types.Type {
	left := a.inferExpr(n.Left, e, st)
	right := a.inferExpr(n.Right, e, st)
	switch n.Operator {
	case "+":
		lw, rw := types.Widen(left), types.Widen(right)
		if types.Equal(lw, types.String()) || types.Equal(rw, types.String()) {
			return types.String()
		}
		if types.Equal(lw, types.Number()) && types.Equal(rw, types.Number()) {
			return types.Number()
		}
		return types.Union([]types.Type{types.String(), types.Number()})
	case "-", "*", "/", "%", "**", "&", "|", "^", "<<", ">>", ">>>":
		return types.Number()
	case "==", "!=", "===", "!==", "<", ">", "<=", ">=", "in", "instanceof":
		return types.Boolean()
	default:
		return types.Any("unmodeled-binary-op")
	}
}

func (a *Analyzer) inferLogical(n *ast.LogicalExpression, e *env.Environment, st *TypeState) types.Type {
	left := a.inferExpr(n.Left, e, st)
	right := a.inferExpr(n.Right, e, st)
	switch n.Operator {
	case "&&":
		return types.Union([]types.Type{right, falsyOf(left)})
	case "||":
		return types.Union([]types.Type{truthyOf(left), right})
	case "??":
		if _, nullish := nullishSplit(left); nullish {
			return types.Union([]types.Type{truthyOf(left), right})
		}
		return left
	default:
		return types.Any("unmodeled-logical-op")
	}
}

// truthyOf/falsyOf approximate the value a short-circuiting operator
// yields from its left operand without full literal-truthiness
// narrowing (spec §4.3.7 leaves this coarse: "narrowing logical
// operators is a possible refinement, not required").
func truthyOf(t types.Type) types.Type { return t }
func falsyOf(t types.Type) types.Type  { return t }

func (a *Analyzer) inferMember(n *ast.MemberExpression, e *env.Environment, st *TypeState) types.Type {
	obj := a.inferExpr(n.Object, e, st)
	return memberType(obj, n.Property, a, e, st)
}

func memberType(obj types.Type, prop ast.Expression, a *Analyzer, e *env.Environment, st *TypeState) types.Type {
	switch o := obj.(type) {
	case types.ObjectType:
		if id, ok := prop.(*ast.Identifier); ok {
			if f, ok := o.Get(id.Value); ok {
				return f.Type
			}
			return types.Any("missing-property")
		}
	case types.ArrayType:
		if id, ok := prop.(*ast.Identifier); ok {
			if m, ok := builtins.ArrayMethodType(arrayElementOf(o), id.Value); ok {
				return m
			}
		}
		if o.Tuple != nil {
			if lit, ok := literalIndex(prop); ok && lit >= 0 && lit < len(o.Tuple) {
				return o.Tuple[lit]
			}
			return types.Union(o.Tuple)
		}
		return o.Element
	case types.StringType:
		if id, ok := prop.(*ast.Identifier); ok {
			if m, ok := builtins.StringMethodType(id.Value); ok {
				return m
			}
		}
	case types.ClassType:
		if id, ok := prop.(*ast.Identifier); ok {
			if f, ok := o.Instance.Get(id.Value); ok {
				return f.Type
			}
		}
	case types.AnyType:
		return types.Any(o.Reason)
	}
	a.inferExpr(prop, e, st)
	return types.Any("non-object-member-access")
}

// arrayElementOf reports the element type a tuple array's methods
// should be parameterized over (spec §4.3.7's array-method table is
// parameterized "by element type"; a tuple's is the union of its
// members since a tuple has no single declared element type).
func arrayElementOf(a types.ArrayType) types.Type {
	if a.Tuple != nil {
		return types.Union(a.Tuple)
	}
	return a.Element
}

func literalIndex(prop ast.Expression) (int, bool) {
	n, ok := prop.(*ast.NumericLiteral)
	if !ok {
		return 0, false
	}
	return int(n.Value), true
}

func (a *Analyzer) inferCall(n *ast.CallExpression, e *env.Environment, st *TypeState) types.Type {
	callee := a.inferExpr(n.Callee, e, st)
	result := a.applyCall(callee, n.Arguments, e, st, n.Span())
	if a.CallSites != nil {
		if id, ok := n.Callee.(*ast.Identifier); ok {
			argTypes := make([]types.Type, len(n.Arguments))
			for i, arg := range n.Arguments {
				argTypes[i] = st.ExprTypes[arg]
			}
			a.CallSites[id.Value] = append(a.CallSites[id.Value], argTypes)
		}
	}
	return result
}

// applyCall types a call expression's result given the callee's
// already-inferred type (spec §4.3.7 "Call"). A callee that is
// neither a function nor `any` cannot be called (spec §7
// "not-callable"); pos anchors the diagnostic at the call expression.
func (a *Analyzer) applyCall(callee types.Type, args []ast.Expression, e *env.Environment, st *TypeState, pos token.Span) types.Type {
	for _, arg := range args {
		a.inferExpr(arg, e, st)
	}
	switch c := callee.(type) {
	case types.FunctionType:
		if c.IsAsync {
			return types.Promise(c.Return)
		}
		return c.Return
	case types.AnyType:
		return types.Any(c.Reason)
	default:
		a.addDiagnostic(diagnostics.ErrNotCallable,
			diagnostics.Position{Line: pos.StartPos.Line, Column: pos.StartPos.Column},
			"%s is not callable", callee.String())
		return types.Any("not-callable")
	}
}

func (a *Analyzer) inferNew(n *ast.NewExpression, e *env.Environment, st *TypeState) types.Type {
	callee := a.inferExpr(n.Callee, e, st)
	for _, arg := range n.Arguments {
		a.inferExpr(arg, e, st)
	}
	switch c := callee.(type) {
	case types.ClassType:
		return c.Instance
	case types.FunctionType:
		return a.inferConstructorFunction(n, c, e)
	case types.AnyType:
		return types.Any(c.Reason)
	default:
		span := n.Span()
		a.addDiagnostic(diagnostics.ErrNotConstructable,
			diagnostics.Position{Line: span.StartPos.Line, Column: span.StartPos.Column},
			"%s is not constructable", callee.String())
		return types.Any("not-constructable")
	}
}

// inferConstructorFunction types `new f(...)` when f is an ordinary
// function rather than a class (spec §4.3.5 "constructor functions"):
// its declaration is found through the callee identifier's binding,
// and its body is walked the same way a class constructor's is,
// collecting `this.x = <expr>` assignments into an instance shape.
func (a *Analyzer) inferConstructorFunction(n *ast.NewExpression, ft types.FunctionType, e *env.Environment) types.Type {
	id, ok := n.Callee.(*ast.Identifier)
	if !ok {
		return types.Any("constructor-function-unresolved")
	}
	b, ok := e.Lookup(id.Value)
	if !ok {
		return types.Any("constructor-function-unresolved")
	}
	fn, ok := b.DeclNode.(*ast.FunctionDeclaration)
	if !ok || fn.Body == nil {
		return types.Any("constructor-function-unresolved")
	}
	ctorEnv := e.Child(env.ScopeFunction)
	for i, p := range fn.Params {
		pt := types.Unknown()
		if i < len(ft.Params) {
			pt = ft.Params[i].Type
		}
		ctorEnv = a.bindPattern(p.Pattern, pt, "let", annotate.KindParameter, ctorEnv)
	}
	ctorEnv = ctorEnv.Declare("this", env.Binding{Type: types.ObjectType{}, DefinitelyAssigned: true})
	fields := a.collectThisAssignments(fn.Body.Body, ctorEnv)
	return types.ObjectType{Fields: fields}
}

// bindPattern introduces the bindings a (possibly destructuring)
// pattern declares, given the type of its initializer (spec §4.3.3).
// kind tags the annotation emitted for each leaf identifier (spec
// §3.4): variable/const bindings and function parameters share this
// recursive walk but belong to different annotation kinds.
func (a *Analyzer) bindPattern(p ast.Pattern, t types.Type, declKind string, kind annotate.Kind, e *env.Environment) *env.Environment {
	switch n := p.(type) {
	case *ast.Identifier:
		e = e.Declare(n.Value, env.Binding{Type: t, DeclKind: declKind, DefinitelyAssigned: true})
		a.emitAnnotation(n, kind, t)
		return e
	case *ast.ObjectPattern:
		for _, prop := range n.Properties {
			fieldType := types.Any("destructured-field")
			if obj, ok := t.(types.ObjectType); ok {
				if f, ok := obj.Get(prop.Key); ok {
					fieldType = f.Type
				}
			}
			e = a.bindPattern(prop.Value, fieldType, declKind, kind, e)
		}
		return e
	case *ast.ArrayPattern:
		arr, isArr := t.(types.ArrayType)
		for i, el := range n.Elements {
			if el == nil {
				continue
			}
			elemType := types.Any("destructured-element")
			if isArr {
				if arr.Tuple != nil && i < len(arr.Tuple) {
					elemType = arr.Tuple[i]
				} else if arr.Tuple == nil {
					elemType = arr.Element
				}
			}
			e = a.bindPattern(el, elemType, declKind, kind, e)
		}
		return e
	case *ast.AssignmentPattern:
		defaultType := a.inferExpr(n.Right, e, newState(e))
		finalType := defaultType
		if _, isAny := t.(types.AnyType); !isAny {
			finalType = types.Union([]types.Type{t, defaultType})
		}
		return a.bindPattern(n.Left, finalType, declKind, kind, e)
	case *ast.RestElement:
		return a.bindPattern(n.Argument, types.Array(t, nil), declKind, kind, e)
	default:
		return e
	}
}

// inferAssignmentExpr types an assignment expression's result (spec
// §4.3.7): plain `=` takes the RHS type; a compound operator's result
// depends on the operand kinds, computed against the target's current
// type where one is known.
func (a *Analyzer) inferAssignmentExpr(n *ast.AssignmentExpression, e *env.Environment, st *TypeState) types.Type {
	rhs := a.inferExpr(n.Right, e, st)
	if n.Operator == "=" {
		return rhs
	}
	old := types.Any("unknown-compound-target")
	if id, ok := n.Left.(*ast.Identifier); ok {
		if b, ok := e.Lookup(id.Value); ok {
			old = b.Type
		}
	}
	return compoundAssignmentType(n.Operator, old, rhs)
}

// compoundAssignmentType implements spec §4.3.7's rule for `+=`/`-=`/
// etc.: `+=` yields string if either operand is a string, else number;
// every other compound numeric operator always yields number; any
// other operator falls back to the join of the old and new values.
func compoundAssignmentType(op string, old, rhs types.Type) types.Type {
	if op == "+=" {
		if types.Equal(types.Widen(old), types.String()) || types.Equal(types.Widen(rhs), types.String()) {
			return types.String()
		}
		return types.Number()
	}
	switch op {
	case "-=", "*=", "/=", "%=", "**=", "&=", "|=", "^=", "<<=", ">>=", ">>>=":
		return types.Number()
	default:
		return types.Join(old, rhs)
	}
}

// applyAssignment performs the environment mutation side of an
// AssignmentExpression statement (spec §4.3.3): plain assignment
// narrows/widens the target's owning binding. Assigning to a `const`
// binding is rejected (spec §4.3.3/§7 "cannot-assign-to-const"): the
// diagnostic is recorded and the binding is left unchanged.
func (a *Analyzer) applyAssignment(n *ast.AssignmentExpression, e *env.Environment, st *TypeState) *env.Environment {
	valueType := st.ExprTypes[n]
	if valueType == nil {
		valueType = a.inferExpr(n.Right, e, st)
	}
	if id, ok := n.Left.(*ast.Identifier); ok {
		if b, ok := e.Lookup(id.Value); ok && b.DeclKind == "const" {
			span := n.Span()
			a.addDiagnostic(diagnostics.ErrCannotAssignToConst,
				diagnostics.Position{Line: span.StartPos.Line, Column: span.StartPos.Column},
				"cannot assign to %q: it is a constant", id.Value)
			return e
		}
		return e.Set(id.Value, valueType)
	}
	return e
}
