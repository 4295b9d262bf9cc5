// Package types implements the tagged-variant type representation of
// spec §3.1: every shape the engine can infer, plus the additional
// polar-type variants (type variable, recursive type, type scheme)
// used only by the constraint-based path (spec §4.4.1). Grounded on
// the teacher's internal/typesystem package (types.go, unify.go): a
// single Type interface implemented by small value/pointer structs,
// a Subst-style application step, and free-variable collection -
// adapted here from funxy's Hindley-Milner variant set to the JS-like
// dynamic-type variant set this spec calls for.
package types

import "fmt"

// Type is the interface every type variant implements. The variants
// are value structs, not pointers, so there is no identity equality:
// == panics on variants that hold slices (objects, functions, unions,
// arrays). Equal provides the recursive structural comparison spec
// §3.1 requires and is the way to compare types.
type Type interface {
	String() string
	typeNode()
}

// ---- primitives and singletons ----

type NeverType struct{}

func (NeverType) String() string { return "never" }
func (NeverType) typeNode()      {}

type UnknownType struct{}

func (UnknownType) String() string { return "unknown" }
func (UnknownType) typeNode()      {}

// AnyType optionally carries a diagnostic reason (spec §3.1, §7
// "undefined-variable" surfaces as an any reason rather than an error).
type AnyType struct {
	Reason string
}

func (a AnyType) String() string { return "any" }
func (AnyType) typeNode()        {}

type NullType struct{}

func (NullType) String() string { return "null" }
func (NullType) typeNode()      {}

type UndefinedType struct{}

func (UndefinedType) String() string { return "undefined" }
func (UndefinedType) typeNode()      {}

// NumberType optionally carries a literal value; Literal == nil means
// the widened base primitive.
type NumberType struct {
	Literal *float64
}

func (n NumberType) String() string {
	if n.Literal != nil {
		return formatFloat(*n.Literal)
	}
	return "number"
}
func (NumberType) typeNode() {}

type StringType struct {
	Literal *string
}

func (s StringType) String() string {
	if s.Literal != nil {
		return fmt.Sprintf("%q", *s.Literal)
	}
	return "string"
}
func (StringType) typeNode() {}

type BooleanType struct {
	Literal *bool
}

func (b BooleanType) String() string {
	if b.Literal != nil {
		if *b.Literal {
			return "true"
		}
		return "false"
	}
	return "boolean"
}
func (BooleanType) typeNode() {}

// BigIntType's literal is stored as decimal text to avoid precision
// loss; the engine never evaluates bigint arithmetic, only types it.
type BigIntType struct {
	Literal *string
}

func (b BigIntType) String() string {
	if b.Literal != nil {
		return *b.Literal + "n"
	}
	return "bigint"
}
func (BigIntType) typeNode() {}

// ---- compound shapes ----

// ArrayType is a homogeneous array, or - when Tuple is non-nil - a
// fixed-length heterogeneous tuple (spec §3.1: "Tuples promote to
// arrays when length unknown").
type ArrayType struct {
	Element Type
	Tuple   []Type // nil unless this is a tuple
}

func (a ArrayType) String() string {
	if a.Tuple != nil {
		s := "["
		for i, t := range a.Tuple {
			if i > 0 {
				s += ", "
			}
			s += t.String()
		}
		return s + "]"
	}
	return fmt.Sprintf("Array<%s>", a.Element.String())
}
func (ArrayType) typeNode() {}

// Field is one slot of an ObjectType's ordered property mapping.
type Field struct {
	Name     string
	Type     Type
	Optional bool
	Readonly bool
}

// ObjectType preserves field declaration order (spec §3.1 invariant 3
// and §3.2 "Property order preserved for formatting only").
type ObjectType struct {
	Fields []Field
}

// Get returns the field named name and whether it exists.
func (o ObjectType) Get(name string) (Field, bool) {
	for _, f := range o.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (o ObjectType) String() string {
	s := "{"
	for i, f := range o.Fields {
		if i > 0 {
			s += "; "
		}
		s += f.Name
		if f.Optional {
			s += "?"
		}
		s += ": " + f.Type.String()
	}
	return s + "}"
}
func (ObjectType) typeNode() {}

// Param is one function parameter (spec §3.1).
type Param struct {
	Name     string
	Type     Type
	Optional bool
	Rest     bool
}

type FunctionType struct {
	Params      []Param
	Return      Type
	IsAsync     bool
	IsGenerator bool
}

func (f FunctionType) String() string {
	s := "("
	for i, p := range f.Params {
		if i > 0 {
			s += ", "
		}
		s += p.Name
		if p.Optional {
			s += "?"
		}
		s += ": " + p.Type.String()
		if p.Rest {
			s = "..." + s
		}
	}
	ret := "undefined"
	if f.Return != nil {
		ret = f.Return.String()
	}
	return s + ") => " + ret
}
func (FunctionType) typeNode() {}

// ClassType bundles a constructor signature, the instance shape, and
// static members (spec §3.1). Instance and the class's own property
// map never share storage (invariant 4): constructing a ClassType
// through the factory (types.Class) always copies Instance.Fields.
type ClassType struct {
	Name        string
	Constructor FunctionType
	Instance    ObjectType
	Static      ObjectType
	Super       *ClassType
}

func (c ClassType) String() string { return c.Name }
func (ClassType) typeNode()        {}

// PromiseType wraps a resolved value type (spec §3.1, §4.3.7 `await`).
type PromiseType struct {
	Resolved Type
}

func (p PromiseType) String() string { return fmt.Sprintf("Promise<%s>", p.Resolved.String()) }
func (PromiseType) typeNode()        {}

// UnionType and IntersectionType are always canonicalized by the
// factory (Union/Intersection): flattened,
// deduplicated, non-empty, and never nesting a union inside a union
// (or intersection inside an intersection) at the top level (spec
// §3.1 invariant 1).
type UnionType struct {
	Members []Type
}

func (u UnionType) String() string {
	s := ""
	for i, m := range u.Members {
		if i > 0 {
			s += " | "
		}
		s += m.String()
	}
	return s
}
func (UnionType) typeNode() {}

type IntersectionType struct {
	Members []Type
}

func (i IntersectionType) String() string {
	s := ""
	for idx, m := range i.Members {
		if idx > 0 {
			s += " & "
		}
		s += m.String()
	}
	return s
}
func (IntersectionType) typeNode() {}

func formatFloat(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}
