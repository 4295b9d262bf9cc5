package flow

import (
	"github.com/inferlang/inferlang/internal/ast"
	"github.com/inferlang/inferlang/internal/env"
	"github.com/inferlang/inferlang/internal/types"
)

// narrowForEdge applies condition-based narrowing to e when it is a
// branch edge, so the environment visible inside an if/while arm
// reflects what the guard proved (spec §4.3.3 "typeof/truthiness
// narrowing"). Grounded on the teacher's inferIfExpression
// (internal/analyzer/inference_control.go): a `typeof x === "..."`
// guard narrows x in the true arm and, when x's declared type is a
// union, subtracts the matched member in the false arm.
func narrowForEdge(e *env.Environment, name string, target types.Type, positive bool) *env.Environment {
	b, ok := e.Lookup(name)
	if !ok {
		return e
	}
	if positive {
		return env.Narrow(e, name, target)
	}
	union, ok := b.Type.(types.UnionType)
	if !ok {
		return e
	}
	var remaining []types.Type
	for _, m := range union.Members {
		if !types.Equal(m, target) {
			remaining = append(remaining, m)
		}
	}
	return env.Narrow(e, name, types.Union(remaining))
}

// typeofGuard recognizes `typeof <ident> === "<tag>"` (and its
// !== / reversed-operand forms) and returns the identifier name plus
// the type the string tag denotes.
func typeofGuard(cond ast.Expression) (name string, target types.Type, positive bool, ok bool) {
	bin, isBin := cond.(*ast.BinaryExpression)
	if !isBin {
		return "", nil, false, false
	}
	switch bin.Operator {
	case "===", "==", "!==", "!=":
	default:
		return "", nil, false, false
	}
	left, right := bin.Left, bin.Right
	unary, isUnary := left.(*ast.UnaryExpression)
	lit, isLit := right.(*ast.StringLiteral)
	if !isUnary || !isLit {
		unary, isUnary = right.(*ast.UnaryExpression)
		lit, isLit = left.(*ast.StringLiteral)
	}
	if !isUnary || !isLit || unary.Operator != "typeof" {
		return "", nil, false, false
	}
	id, isIdent := unary.Argument.(*ast.Identifier)
	if !isIdent {
		return "", nil, false, false
	}
	t := typeFromTag(lit.Value)
	if t == nil {
		return "", nil, false, false
	}
	positive = bin.Operator == "===" || bin.Operator == "=="
	return id.Value, t, positive, true
}

// nullishGuard recognizes `<ident> !== null`, `<ident> != null`,
// `<ident> !== undefined`, and their reversed-operand forms (spec
// §4.3.4 "null/undefined narrowing").
func nullishGuard(cond ast.Expression) (name string, ok bool) {
	bin, isBin := cond.(*ast.BinaryExpression)
	if !isBin {
		return "", false
	}
	if bin.Operator != "!==" && bin.Operator != "!=" {
		return "", false
	}
	if id, isID := bin.Left.(*ast.Identifier); isID && isNullOrUndefined(bin.Right) {
		return id.Value, true
	}
	if id, isID := bin.Right.(*ast.Identifier); isID && isNullOrUndefined(bin.Left) {
		return id.Value, true
	}
	return "", false
}

func isNullOrUndefined(e ast.Expression) bool {
	switch v := e.(type) {
	case *ast.NullLiteral:
		return true
	case *ast.Identifier:
		return v.Value == "undefined"
	}
	return false
}

// truthyGuard recognizes a bare identifier used as a condition, e.g.
// `if (x) { ... }` (spec §4.3.4 "if (x) on the true branch removes
// null and undefined from a union containing them").
func truthyGuard(cond ast.Expression) (name string, ok bool) {
	id, isID := cond.(*ast.Identifier)
	if !isID {
		return "", false
	}
	return id.Value, true
}

// removeNullish drops null/undefined members from name's binding,
// used on the true branch of a nullish/truthiness guard. A binding
// whose only type is null or undefined narrows to never: sound, if
// unhelpful, since such a branch can never actually be taken.
func removeNullish(e *env.Environment, name string) *env.Environment {
	b, ok := e.Lookup(name)
	if !ok {
		return e
	}
	union, isUnion := b.Type.(types.UnionType)
	if !isUnion {
		if isNullishType(b.Type) {
			return env.Narrow(e, name, types.Never())
		}
		return e
	}
	var remaining []types.Type
	for _, m := range union.Members {
		if isNullishType(m) {
			continue
		}
		remaining = append(remaining, m)
	}
	return env.Narrow(e, name, types.Union(remaining))
}

func isNullishType(t types.Type) bool {
	switch t.(type) {
	case types.NullType, types.UndefinedType:
		return true
	}
	return false
}

func typeFromTag(tag string) types.Type {
	switch tag {
	case "number":
		return types.Number()
	case "string":
		return types.String()
	case "boolean":
		return types.Boolean()
	case "bigint":
		return types.BigInt()
	case "undefined":
		return types.Undefined()
	case "object", "function":
		return nil // too coarse to narrow to a single shape
	default:
		return nil
	}
}
