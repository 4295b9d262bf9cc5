// Package builtins registers the fixed global environment spec §4.5
// requires: undefined, NaN, Infinity, console, Math, Date, JSON,
// Object, Array, String, Number, Boolean, and print. Grounded on the
// teacher's internal/analyzer/builtins.go: a sync.Once-guarded
// registration function so repeated calls (one per analyzed file) are
// idempotent and cheap.
package builtins

import (
	"sync"

	"github.com/inferlang/inferlang/internal/env"
	"github.com/inferlang/inferlang/internal/types"
)

var (
	once   sync.Once
	global *env.Environment
)

// Global returns the shared builtin environment, building it on first
// use (spec §4.5). The returned *env.Environment is immutable, so it
// is safe to share as the parent scope across concurrently-analyzed
// files (spec §5, internal/batch).
func Global() *env.Environment {
	once.Do(func() {
		global = build()
	})
	return global
}

// Reset rebuilds the builtin environment on next Global() call; for
// tests that need a pristine copy after mutating config.IsTestMode or
// similar switches.
func Reset() {
	once = sync.Once{}
}

func build() *env.Environment {
	e := env.NewGlobal()

	e = e.Declare("undefined", env.Binding{Type: types.Undefined(), DeclKind: "const", DefinitelyAssigned: true})
	e = e.Declare("NaN", env.Binding{Type: types.Number(), DeclKind: "const", DefinitelyAssigned: true})
	e = e.Declare("Infinity", env.Binding{Type: types.Number(), DeclKind: "const", DefinitelyAssigned: true})

	e = e.Declare("print", env.Binding{
		Type: types.Function([]types.Param{{Name: "value", Type: types.Unknown(), Rest: true}}, types.Undefined(), false, false),
		DeclKind: "const", DefinitelyAssigned: true,
	})

	e = e.Declare("console", env.Binding{Type: consoleType(), DeclKind: "const", DefinitelyAssigned: true})
	e = e.Declare("Math", env.Binding{Type: mathType(), DeclKind: "const", DefinitelyAssigned: true})
	e = e.Declare("JSON", env.Binding{Type: jsonType(), DeclKind: "const", DefinitelyAssigned: true})
	e = e.Declare("Object", env.Binding{Type: objectConstructorType(), DeclKind: "const", DefinitelyAssigned: true})
	e = e.Declare("Array", env.Binding{Type: arrayConstructorType(), DeclKind: "const", DefinitelyAssigned: true})
	e = e.Declare("String", env.Binding{Type: wrapperConstructorType(types.String()), DeclKind: "const", DefinitelyAssigned: true})
	e = e.Declare("Number", env.Binding{Type: wrapperConstructorType(types.Number()), DeclKind: "const", DefinitelyAssigned: true})
	e = e.Declare("Boolean", env.Binding{Type: wrapperConstructorType(types.Boolean()), DeclKind: "const", DefinitelyAssigned: true})
	e = e.Declare("Date", env.Binding{Type: dateConstructorType(), DeclKind: "const", DefinitelyAssigned: true})

	return e
}

func variadic(name string, ret types.Type) types.Field {
	return types.Field{
		Name: name,
		Type: types.Function([]types.Param{{Name: "args", Type: types.Unknown(), Rest: true}}, ret, false, false),
	}
}

func consoleType() types.Type {
	return types.Object([]types.Field{
		variadic("log", types.Undefined()),
		variadic("warn", types.Undefined()),
		variadic("error", types.Undefined()),
		variadic("info", types.Undefined()),
	})
}

func mathType() types.Type {
	unaryNum := types.Function([]types.Param{{Name: "x", Type: types.Number()}}, types.Number(), false, false)
	binaryNum := types.Function([]types.Param{{Name: "x", Type: types.Number()}, {Name: "y", Type: types.Number()}}, types.Number(), false, false)
	return types.Object([]types.Field{
		{Name: "PI", Type: types.Number()},
		{Name: "E", Type: types.Number()},
		{Name: "abs", Type: unaryNum},
		{Name: "floor", Type: unaryNum},
		{Name: "ceil", Type: unaryNum},
		{Name: "round", Type: unaryNum},
		{Name: "sqrt", Type: unaryNum},
		{Name: "max", Type: variadic("max", types.Number()).Type},
		{Name: "min", Type: variadic("min", types.Number()).Type},
		{Name: "pow", Type: binaryNum},
		{Name: "random", Type: types.Function(nil, types.Number(), false, false)},
	})
}

func jsonType() types.Type {
	return types.Object([]types.Field{
		{Name: "stringify", Type: types.Function([]types.Param{{Name: "value", Type: types.Unknown()}}, types.String(), false, false)},
		{Name: "parse", Type: types.Function([]types.Param{{Name: "text", Type: types.String()}}, types.Any("json-parse-result"), false, false)},
	})
}

func objectConstructorType() types.Type {
	return types.Object([]types.Field{
		{Name: "keys", Type: types.Function([]types.Param{{Name: "o", Type: types.Unknown()}}, types.Array(types.String(), nil), false, false)},
		{Name: "values", Type: types.Function([]types.Param{{Name: "o", Type: types.Unknown()}}, types.Array(types.Unknown(), nil), false, false)},
		{Name: "assign", Type: types.Function([]types.Param{{Name: "target", Type: types.Unknown()}, {Name: "sources", Type: types.Unknown(), Rest: true}}, types.Unknown(), false, false)},
		{Name: "freeze", Type: types.Function([]types.Param{{Name: "o", Type: types.Unknown()}}, types.Unknown(), false, false)},
	})
}

func arrayConstructorType() types.Type {
	return types.Object([]types.Field{
		{Name: "isArray", Type: types.Function([]types.Param{{Name: "v", Type: types.Unknown()}}, types.Boolean(), false, false)},
		{Name: "from", Type: types.Function([]types.Param{{Name: "iterable", Type: types.Unknown()}}, types.Array(types.Unknown(), nil), false, false)},
	})
}

func wrapperConstructorType(primitive types.Type) types.Type {
	return types.Function([]types.Param{{Name: "v", Type: types.Unknown(), Optional: true}}, primitive, false, false)
}

func dateConstructorType() types.Type {
	instance := types.Object([]types.Field{
		{Name: "getTime", Type: types.Function(nil, types.Number(), false, false)},
		{Name: "toString", Type: types.Function(nil, types.String(), false, false)},
	})
	return types.Class(types.ClassOpts{
		Name:        "Date",
		Constructor: types.FunctionType{Params: []types.Param{{Name: "value", Type: types.Unknown(), Optional: true}}},
		Instance:    instance.(types.ObjectType),
		Static: types.ObjectType{Fields: []types.Field{
			{Name: "now", Type: types.Function(nil, types.Number(), false, false)},
		}},
	})
}

// ArrayMethodType looks up name in the fixed table of array-method
// signatures spec §4.3.7 requires ("a known method name returns its
// signature... parameterized by element type"), instantiated against
// elem. The second result is false for any name not in the table, so
// callers fall back to the plain element-type rule for everything
// else (e.g. numeric-literal indexing).
func ArrayMethodType(elem types.Type, name string) (types.Type, bool) {
	arrayOfElem := types.Array(elem, nil)
	unaryPredicate := types.Function([]types.Param{{Name: "fn", Type: types.Unknown()}}, types.Boolean(), false, false)
	unaryVoid := types.Function([]types.Param{{Name: "fn", Type: types.Unknown()}}, types.Undefined(), false, false)
	switch name {
	case "length":
		return types.Number(), true
	case "push", "unshift":
		return types.Function([]types.Param{{Name: "items", Type: elem, Rest: true}}, types.Number(), false, false), true
	case "pop", "shift":
		return types.Function(nil, types.Union([]types.Type{elem, types.Undefined()}), false, false), true
	case "slice":
		return types.Function([]types.Param{{Name: "start", Type: types.Number(), Optional: true}, {Name: "end", Type: types.Number(), Optional: true}}, arrayOfElem, false, false), true
	case "concat":
		return types.Function([]types.Param{{Name: "items", Type: types.Unknown(), Rest: true}}, arrayOfElem, false, false), true
	case "join":
		return types.Function([]types.Param{{Name: "sep", Type: types.String(), Optional: true}}, types.String(), false, false), true
	case "indexOf", "lastIndexOf":
		return types.Function([]types.Param{{Name: "item", Type: elem}}, types.Number(), false, false), true
	case "includes":
		return types.Function([]types.Param{{Name: "item", Type: elem}}, types.Boolean(), false, false), true
	case "reverse", "sort":
		return types.Function([]types.Param{{Name: "fn", Type: types.Unknown(), Optional: true}}, arrayOfElem, false, false), true
	case "map":
		return types.Function([]types.Param{{Name: "fn", Type: types.Unknown()}}, types.Array(types.Unknown(), nil), false, false), true
	case "filter":
		return types.Function([]types.Param{{Name: "fn", Type: types.Unknown()}}, arrayOfElem, false, false), true
	case "forEach":
		return unaryVoid, true
	case "find":
		return types.Function([]types.Param{{Name: "fn", Type: types.Unknown()}}, types.Union([]types.Type{elem, types.Undefined()}), false, false), true
	case "findIndex":
		return types.Function([]types.Param{{Name: "fn", Type: types.Unknown()}}, types.Number(), false, false), true
	case "some", "every":
		return unaryPredicate, true
	case "reduce", "reduceRight":
		return types.Function([]types.Param{{Name: "fn", Type: types.Unknown()}, {Name: "initial", Type: types.Unknown(), Optional: true}}, types.Unknown(), false, false), true
	default:
		return nil, false
	}
}

// StringMethodType looks up name in the fixed table of string-method
// signatures spec §4.3.7 requires ("a fixed table of string-method
// signatures; length -> number").
func StringMethodType(name string) (types.Type, bool) {
	unaryString := types.Function(nil, types.String(), false, false)
	switch name {
	case "length":
		return types.Number(), true
	case "toUpperCase", "toLowerCase", "trim", "trimStart", "trimEnd":
		return unaryString, true
	case "charAt":
		return types.Function([]types.Param{{Name: "index", Type: types.Number()}}, types.String(), false, false), true
	case "charCodeAt":
		return types.Function([]types.Param{{Name: "index", Type: types.Number()}}, types.Number(), false, false), true
	case "indexOf", "lastIndexOf":
		return types.Function([]types.Param{{Name: "search", Type: types.String()}}, types.Number(), false, false), true
	case "includes", "startsWith", "endsWith":
		return types.Function([]types.Param{{Name: "search", Type: types.String()}}, types.Boolean(), false, false), true
	case "slice", "substring":
		return types.Function([]types.Param{{Name: "start", Type: types.Number(), Optional: true}, {Name: "end", Type: types.Number(), Optional: true}}, types.String(), false, false), true
	case "split":
		return types.Function([]types.Param{{Name: "sep", Type: types.String(), Optional: true}}, types.Array(types.String(), nil), false, false), true
	case "concat":
		return types.Function([]types.Param{{Name: "items", Type: types.String(), Rest: true}}, types.String(), false, false), true
	case "repeat":
		return types.Function([]types.Param{{Name: "count", Type: types.Number()}}, types.String(), false, false), true
	case "replace", "replaceAll":
		return types.Function([]types.Param{{Name: "search", Type: types.Unknown()}, {Name: "replacement", Type: types.Unknown()}}, types.String(), false, false), true
	default:
		return nil, false
	}
}
