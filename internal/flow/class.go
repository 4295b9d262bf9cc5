package flow

import (
	"github.com/inferlang/inferlang/internal/annotate"
	"github.com/inferlang/inferlang/internal/ast"
	"github.com/inferlang/inferlang/internal/env"
	"github.com/inferlang/inferlang/internal/types"
)

// inferClass computes a ClassType from a class declaration (spec
// §4.3.6): instance fields come from property initializers and the
// parameter-property-free constructor's `this.x = ...` assignments,
// methods become fields of function type, and a superclass (when
// resolvable to a prior ClassType binding) is threaded through for
// member lookup.
func (a *Analyzer) inferClass(n *ast.ClassDeclaration, e *env.Environment) types.ClassType {
	name := ""
	if n.Id != nil {
		name = n.Id.Value
	}
	return a.inferClassBody(name, n.SuperClass, n.Body, e)
}

func (a *Analyzer) inferClassExpr(n *ast.ClassExpression, e *env.Environment) types.Type {
	name := ""
	if n.Id != nil {
		name = n.Id.Value
	}
	return a.inferClassBody(name, n.SuperClass, n.Body, e)
}

func (a *Analyzer) inferClassBody(name string, superExpr ast.Expression, body []ast.ClassMember, e *env.Environment) types.ClassType {
	var super *types.ClassType
	if superExpr != nil {
		st := newState(e)
		superType := a.inferExpr(superExpr, e, st)
		if ct, ok := superType.(types.ClassType); ok {
			super = &ct
		}
	}

	var instanceFields, staticFields []types.Field
	var ctor types.FunctionType
	if super != nil {
		instanceFields = append(instanceFields, super.Instance.Fields...)
		staticFields = append(staticFields, super.Static.Fields...)
		ctor = super.Constructor
	}

	classEnv := e
	if super != nil {
		classEnv = classEnv.Declare("super", env.Binding{Type: *super, DefinitelyAssigned: true})
	}

	// Scan the constructor body first (spec §4.3.6 "this.x = <expr>
	// assignments contribute instance fields"), so its fields win over
	// a same-named method/getter encountered later in the member list.
	ctorFieldNames := map[string]bool{}
	for _, m := range body {
		method, ok := m.(*ast.ClassMethod)
		if !ok || method.MethodKind != "constructor" || method.Function == nil || method.Function.Body == nil {
			continue
		}
		ctorEnv := classEnv.Child(env.ScopeFunction)
		for _, p := range method.Function.Params {
			ctorEnv = a.bindPattern(p.Pattern, types.Unknown(), "let", annotate.KindParameter, ctorEnv)
		}
		for _, f := range a.collectThisAssignments(method.Function.Body.Body, ctorEnv) {
			instanceFields = upsertField(instanceFields, f)
			ctorFieldNames[f.Name] = true
		}
	}

	for _, m := range body {
		switch member := m.(type) {
		case *ast.ClassProperty:
			ft := types.Any("class-field-not-yet-inferred")
			if member.Value != nil {
				ft = a.inferExpr(member.Value, classEnv, newState(classEnv))
			}
			field := types.Field{Name: member.Key, Type: ft}
			if member.Static {
				staticFields = upsertField(staticFields, field)
			} else if !ctorFieldNames[member.Key] {
				instanceFields = upsertField(instanceFields, field)
			}
		case *ast.ClassMethod:
			fn := funcToLike2(member.Function)
			// `this` resolves against the instance shape being built;
			// a two-pass recursive tie is approximated by binding
			// `this` to the fields accumulated so far.
			methodEnv := classEnv.Declare("this", env.Binding{
				Type:               types.ObjectType{Fields: append([]types.Field{}, instanceFields...)},
				DefinitelyAssigned: true,
			})
			ft := a.inferFunctionSignature(fn, methodEnv)
			switch member.MethodKind {
			case "constructor":
				ctor = ft
			case "get":
				if !ctorFieldNames[member.Key] {
					field := types.Field{Name: member.Key, Type: ft.Return}
					instanceFields = upsertField(instanceFields, field)
				}
			case "set":
				// setter contributes a field only if no getter/property/
				// constructor assignment already defined it
				if _, ok := getField(instanceFields, member.Key); !ok && !ctorFieldNames[member.Key] {
					param := types.Unknown()
					if len(ft.Params) > 0 {
						param = ft.Params[0].Type
					}
					instanceFields = upsertField(instanceFields, types.Field{Name: member.Key, Type: param})
				}
			default:
				field := types.Field{Name: member.Key, Type: ft}
				if member.Static {
					staticFields = upsertField(staticFields, field)
				} else if !ctorFieldNames[member.Key] {
					instanceFields = upsertField(instanceFields, field)
				}
			}
		}
	}

	return types.ClassType{
		Name:        name,
		Constructor: ctor,
		Instance:    types.ObjectType{Fields: instanceFields},
		Static:      types.ObjectType{Fields: staticFields},
		Super:       super,
	}
}

func getField(fields []types.Field, name string) (types.Field, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return types.Field{}, false
}

func upsertField(fields []types.Field, f types.Field) []types.Field {
	for i, existing := range fields {
		if existing.Name == f.Name {
			fields[i] = f
			return fields
		}
	}
	return append(fields, f)
}

func funcToLike2(n *ast.FunctionExpression) funcLike {
	return funcLike{Params: n.Params, Body: n.Body, IsAsync: n.IsAsync, IsGenerator: n.IsGenerator}
}

// collectThisAssignments walks a constructor body collecting the
// instance shape implied by every `this.x = <expr>` assignment it
// finds (spec §4.3.6 "constructor-assigned fields"), the same rule
// spec §4.3.5 applies to a plain function invoked with `new`. Walks
// into nested blocks/conditionals/loops/try bodies so a field assigned
// inside an `if` still contributes to the instance shape; later
// assignments to the same name win, matching the order this.x = ...
// statements actually execute in.
func (a *Analyzer) collectThisAssignments(stmts []ast.Statement, e *env.Environment) []types.Field {
	var fields []types.Field
	for _, s := range stmts {
		fields = a.collectThisAssignmentsStmt(s, e, fields)
	}
	return fields
}

func (a *Analyzer) collectThisAssignmentsStmt(s ast.Statement, e *env.Environment, fields []types.Field) []types.Field {
	switch n := s.(type) {
	case *ast.ExpressionStatement:
		assign, ok := n.Expression.(*ast.AssignmentExpression)
		if !ok {
			return fields
		}
		member, ok := assign.Left.(*ast.MemberExpression)
		if !ok || member.Computed {
			return fields
		}
		if _, ok := member.Object.(*ast.ThisExpression); !ok {
			return fields
		}
		prop, ok := member.Property.(*ast.Identifier)
		if !ok {
			return fields
		}
		ft := a.inferExpr(assign.Right, e, newState(e))
		return upsertField(fields, types.Field{Name: prop.Value, Type: ft})
	case *ast.BlockStatement:
		for _, inner := range n.Body {
			fields = a.collectThisAssignmentsStmt(inner, e, fields)
		}
		return fields
	case *ast.IfStatement:
		fields = a.collectThisAssignmentsStmt(n.Consequent, e, fields)
		if n.Alternate != nil {
			fields = a.collectThisAssignmentsStmt(n.Alternate, e, fields)
		}
		return fields
	case *ast.WhileStatement:
		return a.collectThisAssignmentsStmt(n.Body, e, fields)
	case *ast.DoWhileStatement:
		return a.collectThisAssignmentsStmt(n.Body, e, fields)
	case *ast.ForStatement:
		return a.collectThisAssignmentsStmt(n.Body, e, fields)
	case *ast.ForInStatement:
		return a.collectThisAssignmentsStmt(n.Body, e, fields)
	case *ast.ForOfStatement:
		return a.collectThisAssignmentsStmt(n.Body, e, fields)
	case *ast.TryStatement:
		if n.Block != nil {
			for _, inner := range n.Block.Body {
				fields = a.collectThisAssignmentsStmt(inner, e, fields)
			}
		}
		if n.Handler != nil && n.Handler.Body != nil {
			for _, inner := range n.Handler.Body.Body {
				fields = a.collectThisAssignmentsStmt(inner, e, fields)
			}
		}
		if n.Finalizer != nil {
			for _, inner := range n.Finalizer.Body {
				fields = a.collectThisAssignmentsStmt(inner, e, fields)
			}
		}
		return fields
	default:
		return fields
	}
}
