package constraints

import (
	"github.com/inferlang/inferlang/internal/annotate"
	"github.com/inferlang/inferlang/internal/ast"
	"github.com/inferlang/inferlang/internal/types"
)

// PendingAnnotation pairs a not-yet-solved type (a bare TypeVar or a
// shape that may still contain one) with the partially-filled
// annotation record it belongs to; pkg/typeinfer reconstructs Node
// through the final Bisubstitution and fills in Ann.Type before
// handing the result to a caller (spec §3.4's annotation output,
// produced by the constraint path the same way the iterative
// analyzer produces it - see internal/flow/state.go's emitAnnotation).
type PendingAnnotation struct {
	Node types.Type
	Ann  annotate.Annotation
}

// recordAnnotation stages one binding position for later reconstruction,
// mirroring internal/flow/state.go's emitAnnotation but leaving Ann.Type
// blank since t is typically a bare TypeVar at generation time - only
// meaningful once solved (spec §4.4.5).
func (g *Generator) recordAnnotation(id *ast.Identifier, kind annotate.Kind, t types.Type) {
	if id == nil {
		return
	}
	span := id.Span()
	g.Pending = append(g.Pending, PendingAnnotation{
		Node: t,
		Ann: annotate.Annotation{
			Name:     id.Value,
			Kind:     kind,
			NodeKind: id.Kind(),
			Start:    span.Start,
			End:      span.End,
			Line:     span.StartPos.Line,
			Column:   span.StartPos.Column,
		},
	})
}

// Generate computes expr's polar type under e, emitting Flow
// constraints onto g as needed (spec §4.4.3's expression table:
// literal/identifier/function/call/new/member/+/logical-ternary;
// declarations with generalization are handled in generateStatement).
// `+` is not split into number and string alternatives: both operands
// flow into one fresh result variable (see generateBinary).
func (g *Generator) Generate(expr ast.Expression, e *ConstraintEnv) types.Type {
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
		for _, x := range n.Expressions {
			g.Generate(x, e)
		}
		return types.String()

	case *ast.Identifier:
		if t, s, ok := e.lookup(n.Value); ok {
			if t != nil {
				return t
			}
			return g.instantiate(s)
		}
		return types.Any("undefined-variable")

	case *ast.ArrayExpression:
		elemVar := g.Fresh("elem")
		for _, el := range n.Elements {
			if el == nil {
				continue
			}
			g.Add(g.Generate(el, e), elemVar)
		}
		return types.Array(elemVar, nil)

	case *ast.ObjectExpression:
		var fields []types.Field
		for _, p := range n.Properties {
			if _, spread := p.Value.(*ast.SpreadElement); spread {
				g.Generate(p.Value, e)
				continue
			}
			fields = append(fields, types.Field{Name: p.Key, Type: g.Generate(p.Value, e)})
		}
		return types.Object(fields)

	case *ast.SpreadElement:
		return g.Generate(n.Argument, e)

	case *ast.BinaryExpression:
		return g.generateBinary(n, e)

	case *ast.LogicalExpression:
		// disjunction: the result may be either operand (spec §4.4.3
		// "logical-ternary"), so both sides flow into a fresh variable.
		left := g.Generate(n.Left, e)
		right := g.Generate(n.Right, e)
		result := g.Fresh("logical")
		g.Add(left, result)
		g.Add(right, result)
		return result

	case *ast.ConditionalExpression:
		g.Generate(n.Test, e)
		cons := g.Generate(n.Consequent, e)
		alt := g.Generate(n.Alternate, e)
		result := g.Fresh("cond")
		g.Add(cons, result)
		g.Add(alt, result)
		return result

	case *ast.MemberExpression:
		return g.generateMember(n, e)

	case *ast.CallExpression:
		return g.generateCall(n, e)

	case *ast.NewExpression:
		calleeT := g.Generate(n.Callee, e)
		argTs := make([]types.Type, len(n.Arguments))
		for i, arg := range n.Arguments {
			argTs[i] = g.Generate(arg, e)
		}
		instance := g.Fresh("instance")
		ctor := g.syntheticFunctionType(argTs, instance)
		g.Add(calleeT, ctor)
		return instance

	case *ast.FunctionExpression:
		return g.generateFunction(n.Params, n.Body, e, n.IsAsync)

	case *ast.ArrowFunctionExpression:
		return g.generateArrow(n, e)

	case *ast.AssignmentExpression:
		return g.Generate(n.Right, e)

	case *ast.SequenceExpression:
		var last types.Type = types.Undefined()
		for _, x := range n.Expressions {
			last = g.Generate(x, e)
		}
		return last

	case *ast.UnaryExpression:
		g.Generate(n.Argument, e)
		switch n.Operator {
		case "typeof":
			return types.String()
		case "!":
			return types.Boolean()
		case "void":
			return types.Undefined()
		case "delete":
			return types.Boolean()
		default:
			return types.Number()
		}

	case *ast.UpdateExpression:
		g.Generate(n.Argument, e)
		return types.Number()

	case *ast.ThisExpression:
		if t, _, ok := e.lookup("this"); ok && t != nil {
			return t
		}
		return types.Any("this-outside-method")

	case *ast.AwaitExpression:
		argT := g.Generate(n.Argument, e)
		if p, ok := argT.(types.PromiseType); ok {
			return p.Resolved
		}
		resolved := g.Fresh("awaited")
		g.Add(argT, types.Promise(resolved))
		return resolved

	case *ast.YieldExpression:
		if n.Argument != nil {
			g.Generate(n.Argument, e)
		}
		return types.Any("yield")

	case *ast.OptionalMemberExpression:
		member := &ast.MemberExpression{Loc: n.Loc, Object: n.Object, Property: n.Property, Computed: n.Computed}
		result := g.generateMember(member, e)
		return types.Union([]types.Type{result, types.Undefined()})

	case *ast.OptionalCallExpression:
		call := &ast.CallExpression{Loc: n.Loc, Callee: n.Callee, Arguments: n.Arguments}
		result := g.generateCall(call, e)
		return types.Union([]types.Type{result, types.Undefined()})

	default:
		return types.Any("unmodeled-expression")
	}
}

func (g *Generator) generateBinary(n *ast.BinaryExpression, e *ConstraintEnv) types.Type {
	left := g.Generate(n.Left, e)
	right := g.Generate(n.Right, e)
	switch n.Operator {
	case "+":
		result := g.Fresh("plus")
		g.Add(left, result)
		g.Add(right, result)
		return result
	case "-", "*", "/", "%", "**":
		g.Add(left, types.Number())
		g.Add(right, types.Number())
		return types.Number()
	default:
		return types.Boolean()
	}
}

func (g *Generator) generateMember(n *ast.MemberExpression, e *ConstraintEnv) types.Type {
	objT := g.Generate(n.Object, e)
	if id, ok := n.Property.(*ast.Identifier); ok && !n.Computed {
		result := g.Fresh("field_" + id.Value)
		g.Add(objT, types.Object([]types.Field{{Name: id.Value, Type: result}}))
		return result
	}
	g.Generate(n.Property, e)
	return types.Any("computed-member-unmodeled")
}

func (g *Generator) generateCall(n *ast.CallExpression, e *ConstraintEnv) types.Type {
	calleeT := g.Generate(n.Callee, e)
	argTs := make([]types.Type, len(n.Arguments))
	for i, arg := range n.Arguments {
		argTs[i] = g.Generate(arg, e)
	}
	result := g.Fresh("call")
	g.Add(calleeT, g.syntheticFunctionType(argTs, result))
	return result
}

// syntheticFunctionType builds the "shape the callee must have" type
// used on the upper side of a call constraint (spec §4.4.3 "a call
// constrains its callee to be a function type with at least these
// parameters and this return").
func (g *Generator) syntheticFunctionType(argTypes []types.Type, ret types.Type) types.FunctionType {
	params := make([]types.Param, len(argTypes))
	for i, t := range argTypes {
		params[i] = types.Param{Type: t}
	}
	return types.FunctionType{Params: params, Return: ret}
}

func (g *Generator) generateFunction(params []ast.Param, body *ast.BlockStatement, e *ConstraintEnv, isAsync bool) types.Type {
	fnEnv := e.Child()
	paramTypes := make([]types.Param, 0, len(params))
	for _, p := range params {
		pv := g.Fresh("param")
		var t types.Type = pv
		if p.Rest {
			t = types.Array(pv, nil)
		}
		if id, ok := p.Pattern.(*ast.Identifier); ok {
			fnEnv = fnEnv.Bind(id.Value, t)
			g.recordAnnotation(id, annotate.KindParameter, t)
		}
		paramTypes = append(paramTypes, types.Param{Type: t, Optional: p.Default != nil, Rest: p.Rest})
	}
	ret := g.generateBody(body, fnEnv)
	if isAsync {
		ret = types.Promise(ret)
	}
	return types.FunctionType{Params: paramTypes, Return: ret, IsAsync: isAsync}
}

func (g *Generator) generateArrow(n *ast.ArrowFunctionExpression, e *ConstraintEnv) types.Type {
	fnEnv := e.Child()
	paramTypes := make([]types.Param, 0, len(n.Params))
	for _, p := range n.Params {
		pv := g.Fresh("param")
		var t types.Type = pv
		if p.Rest {
			t = types.Array(pv, nil)
		}
		if id, ok := p.Pattern.(*ast.Identifier); ok {
			fnEnv = fnEnv.Bind(id.Value, t)
			g.recordAnnotation(id, annotate.KindParameter, t)
		}
		paramTypes = append(paramTypes, types.Param{Type: t, Optional: p.Default != nil, Rest: p.Rest})
	}
	var ret types.Type
	if block, ok := n.Body.(*ast.BlockStatement); ok {
		ret = g.generateBody(block, fnEnv)
	} else if e2, ok := n.Body.(ast.Expression); ok {
		ret = g.Generate(e2, fnEnv)
	} else {
		ret = types.Undefined()
	}
	if n.IsAsync {
		ret = types.Promise(ret)
	}
	return types.FunctionType{Params: paramTypes, Return: ret, IsAsync: n.IsAsync}
}

// GenerateProgram generates constraints for a whole file's top-level
// statements (spec §4.4.3), the program-level analog of generateBody:
// a program has no return sites of its own, but reuses the same
// fresh-result-variable plumbing so top-level statements can share
// generateStatement with function bodies.
func (g *Generator) GenerateProgram(stmts []ast.Statement, e *ConstraintEnv) {
	result := g.Fresh("program")
	sawReturn := false
	g.generateStatements(stmts, e, result, &sawReturn)
}

// generateBody walks a function body's statements, collecting the
// type of every reachable return into a fresh result variable (spec
// §4.4.3 "a function's result is the join of its return sites").
func (g *Generator) generateBody(body *ast.BlockStatement, e *ConstraintEnv) types.Type {
	if body == nil {
		return types.Undefined()
	}
	result := g.Fresh("return")
	sawReturn := false
	g.generateStatements(body.Body, e, result, &sawReturn)
	if !sawReturn {
		return types.Undefined()
	}
	return result
}

func (g *Generator) generateStatements(stmts []ast.Statement, e *ConstraintEnv, result types.Type, sawReturn *bool) *ConstraintEnv {
	for _, s := range stmts {
		e = g.generateStatement(s, e, result, sawReturn)
	}
	return e
}

func (g *Generator) generateStatement(s ast.Statement, e *ConstraintEnv, result types.Type, sawReturn *bool) *ConstraintEnv {
	switch n := s.(type) {
	case *ast.VariableDeclaration:
		for _, d := range n.Declarations {
			var t types.Type = types.Undefined()
			if d.Init != nil {
				if n.DeclKind == "const" {
					g.enterLevel()
					t = g.Generate(d.Init, e)
					g.exitLevel()
				} else {
					t = g.Generate(d.Init, e)
				}
			}
			if id, ok := d.Id.(*ast.Identifier); ok {
				// the initializer's type flows into a fresh variable
				// named after the binding; that variable is what the
				// declaration's annotation reports.
				named := g.Fresh(id.Value)
				g.Add(t, named)
				if n.DeclKind == "const" {
					scheme := g.generalize(t, g.level+1)
					e = e.BindScheme(id.Value, scheme)
					g.recordAnnotation(id, annotate.KindConst, named)
				} else {
					e = e.Bind(id.Value, t)
					g.recordAnnotation(id, annotate.KindVariable, named)
				}
			}
		}
		return e
	case *ast.ExpressionStatement:
		g.Generate(n.Expression, e)
		return e
	case *ast.ReturnStatement:
		*sawReturn = true
		if n.Argument != nil {
			g.Add(g.Generate(n.Argument, e), result)
		} else {
			g.Add(types.Undefined(), result)
		}
		return e
	case *ast.IfStatement:
		g.Generate(n.Test, e)
		g.generateStatement(n.Consequent, e, result, sawReturn)
		if n.Alternate != nil {
			g.generateStatement(n.Alternate, e, result, sawReturn)
		}
		return e
	case *ast.BlockStatement:
		inner := e
		g.generateStatements(n.Body, inner, result, sawReturn)
		return e
	case *ast.FunctionDeclaration:
		return g.generateFunctionDeclaration(n, e)
	case *ast.ClassDeclaration:
		if n.Id == nil {
			g.generateClass(n, e)
			return e
		}
		return e.Bind(n.Id.Value, g.generateClass(n, e))
	case *ast.WhileStatement:
		g.Generate(n.Test, e)
		g.generateStatement(n.Body, e, result, sawReturn)
		return e
	case *ast.DoWhileStatement:
		g.generateStatement(n.Body, e, result, sawReturn)
		g.Generate(n.Test, e)
		return e
	case *ast.ForStatement:
		inner := e
		if n.Init != nil {
			if vd, ok := n.Init.(*ast.VariableDeclaration); ok {
				inner = g.generateStatement(vd, inner, result, sawReturn)
			} else if ex, ok := n.Init.(ast.Expression); ok {
				g.Generate(ex, inner)
			}
		}
		if n.Test != nil {
			g.Generate(n.Test, inner)
		}
		if n.Update != nil {
			g.Generate(n.Update, inner)
		}
		g.generateStatement(n.Body, inner, result, sawReturn)
		return e
	case *ast.ForInStatement:
		return g.generateForEach(n.Left, n.Right, n.Body, false, e, result, sawReturn)
	case *ast.ForOfStatement:
		return g.generateForEach(n.Left, n.Right, n.Body, true, e, result, sawReturn)
	case *ast.SwitchStatement:
		g.Generate(n.Discriminant, e)
		for _, c := range n.Cases {
			if c.Test != nil {
				g.Generate(c.Test, e)
			}
			g.generateStatements(c.Consequent, e, result, sawReturn)
		}
		return e
	case *ast.TryStatement:
		if n.Block != nil {
			g.generateStatements(n.Block.Body, e, result, sawReturn)
		}
		if n.Handler != nil {
			handlerEnv := e
			if id, ok := n.Handler.Param.(*ast.Identifier); ok {
				handlerEnv = e.Bind(id.Value, types.Any("caught-exception"))
			}
			if n.Handler.Body != nil {
				g.generateStatements(n.Handler.Body.Body, handlerEnv, result, sawReturn)
			}
		}
		if n.Finalizer != nil {
			g.generateStatements(n.Finalizer.Body, e, result, sawReturn)
		}
		return e
	case *ast.ThrowStatement:
		g.Generate(n.Argument, e)
		return e
	case *ast.LabeledStatement:
		return g.generateStatement(n.Body, e, result, sawReturn)
	case *ast.BreakStatement, *ast.ContinueStatement:
		return e
	default:
		return e
	}
}

// generateFunctionDeclaration binds n.Id to a fresh placeholder before
// generating its body, so a recursive call inside the function's own
// body has something to flow into (spec §4.4.3 doesn't special-case
// recursion explicitly); the placeholder is then unified with the
// function's inferred type in both directions. Unlike `const`, the
// declared name is bound to that type directly, not to a generalized
// scheme.
func (g *Generator) generateFunctionDeclaration(n *ast.FunctionDeclaration, e *ConstraintEnv) *ConstraintEnv {
	if n.Id == nil {
		g.generateFunction(n.Params, n.Body, e, n.IsAsync)
		return e
	}
	placeholder := g.Fresh(n.Id.Value)
	innerEnv := e.Bind(n.Id.Value, placeholder)
	fnType := g.generateFunction(n.Params, n.Body, innerEnv, n.IsAsync)
	g.Add(fnType, placeholder)
	g.Add(placeholder, fnType)
	g.recordAnnotation(n.Id, annotate.KindFunction, fnType)
	return e.Bind(n.Id.Value, fnType)
}

// generateForEach types a for-in (key is always string) or for-of
// (element flows from the iterated array's element variable) loop
// header, then generates the body with the loop variable bound (spec
// §4.4.3 "Generator ... walks control-flow statements").
func (g *Generator) generateForEach(left ast.Node, right ast.Expression, body ast.Statement, isOf bool, e *ConstraintEnv, result types.Type, sawReturn *bool) *ConstraintEnv {
	rightT := g.Generate(right, e)
	var elemT types.Type
	if isOf {
		elemVar := g.Fresh("elem")
		g.Add(rightT, types.Array(elemVar, nil))
		elemT = elemVar
	} else {
		elemT = types.String()
	}
	inner := e
	switch l := left.(type) {
	case *ast.VariableDeclaration:
		if len(l.Declarations) > 0 {
			if id, ok := l.Declarations[0].Id.(*ast.Identifier); ok {
				inner = inner.Bind(id.Value, elemT)
			}
		}
	case *ast.Identifier:
		inner = inner.Bind(l.Value, elemT)
	}
	g.generateStatement(body, inner, result, sawReturn)
	return e
}

// generateClass builds the constraint-path analog of spec §4.3.6's
// two-pass class inference (grounded on internal/flow/class.go's
// inferClassBody): constructor `this.x = <expr>` assignments seed the
// instance fields before methods are generated against them, and
// methods that aren't the constructor contribute function-typed
// fields alongside.
func (g *Generator) generateClass(n *ast.ClassDeclaration, e *ConstraintEnv) types.Type {
	instanceVar := g.Fresh("this")
	classEnv := e.Bind("this", instanceVar)
	if n.Id != nil {
		g.recordAnnotation(n.Id, annotate.KindClass, instanceVar)
	}

	var fields []types.Field
	for _, m := range n.Body {
		method, ok := m.(*ast.ClassMethod)
		if !ok || method.MethodKind != "constructor" || method.Function == nil || method.Function.Body == nil {
			continue
		}
		ctorEnv := classEnv
		for _, p := range method.Function.Params {
			if id, ok := p.Pattern.(*ast.Identifier); ok {
				ctorEnv = ctorEnv.Bind(id.Value, g.Fresh("param"))
			}
		}
		g.collectConstructorFields(method.Function.Body.Body, ctorEnv, &fields)
	}

	for _, m := range n.Body {
		switch member := m.(type) {
		case *ast.ClassProperty:
			if hasField(fields, member.Key) {
				continue
			}
			if member.Value != nil {
				fields = append(fields, types.Field{Name: member.Key, Type: g.Generate(member.Value, e)})
			} else {
				fields = append(fields, types.Field{Name: member.Key, Type: types.Any("uninitialized-class-property")})
			}
		}
	}

	g.Add(types.Object(fields), instanceVar)

	for _, m := range n.Body {
		method, ok := m.(*ast.ClassMethod)
		if !ok || method.MethodKind == "constructor" || method.Function == nil {
			continue
		}
		if hasField(fields, method.Key) {
			continue
		}
		fields = append(fields, types.Field{
			Name: method.Key,
			Type: g.generateFunction(method.Function.Params, method.Function.Body, classEnv, method.Function.IsAsync),
		})
	}
	return types.Object(fields)
}

func hasField(fields []types.Field, name string) bool {
	for _, f := range fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// collectConstructorFields walks a constructor body's statements for
// `this.name = <expr>` assignments, mirroring
// internal/flow/class.go's collectThisAssignments but generating
// constraint types for the right-hand side instead of flow types.
func (g *Generator) collectConstructorFields(stmts []ast.Statement, e *ConstraintEnv, fields *[]types.Field) {
	for _, s := range stmts {
		switch n := s.(type) {
		case *ast.ExpressionStatement:
			g.collectThisAssignExpr(n.Expression, e, fields)
		case *ast.IfStatement:
			if n.Consequent != nil {
				g.collectConstructorFields(blockBody(n.Consequent), e, fields)
			}
			if n.Alternate != nil {
				g.collectConstructorFields(blockBody(n.Alternate), e, fields)
			}
		case *ast.BlockStatement:
			g.collectConstructorFields(n.Body, e, fields)
		case *ast.TryStatement:
			if n.Block != nil {
				g.collectConstructorFields(n.Block.Body, e, fields)
			}
			if n.Handler != nil && n.Handler.Body != nil {
				g.collectConstructorFields(n.Handler.Body.Body, e, fields)
			}
			if n.Finalizer != nil {
				g.collectConstructorFields(n.Finalizer.Body, e, fields)
			}
		case *ast.WhileStatement:
			g.collectConstructorFields(blockBody(n.Body), e, fields)
		case *ast.ForStatement:
			g.collectConstructorFields(blockBody(n.Body), e, fields)
		case *ast.DoWhileStatement:
			g.collectConstructorFields(blockBody(n.Body), e, fields)
		case *ast.ForInStatement:
			g.collectConstructorFields(blockBody(n.Body), e, fields)
		case *ast.ForOfStatement:
			g.collectConstructorFields(blockBody(n.Body), e, fields)
		}
	}
}

func (g *Generator) collectThisAssignExpr(expr ast.Expression, e *ConstraintEnv, fields *[]types.Field) {
	assign, ok := expr.(*ast.AssignmentExpression)
	if !ok {
		return
	}
	mem, ok := assign.Left.(*ast.MemberExpression)
	if !ok || mem.Computed {
		return
	}
	if _, ok := mem.Object.(*ast.ThisExpression); !ok {
		return
	}
	id, ok := mem.Property.(*ast.Identifier)
	if !ok {
		return
	}
	rhs := g.Generate(assign.Right, e)
	for i, f := range *fields {
		if f.Name == id.Value {
			(*fields)[i].Type = rhs
			return
		}
	}
	*fields = append(*fields, types.Field{Name: id.Value, Type: rhs})
}

func blockBody(s ast.Statement) []ast.Statement {
	if b, ok := s.(*ast.BlockStatement); ok {
		return b.Body
	}
	return []ast.Statement{s}
}
