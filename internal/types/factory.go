// factory.go centralizes type construction so the invariants of spec
// §3.1 are enforced in one place (spec §4.1 "Type factory and
// canonicalizer"). Singletons are interned the way the teacher's
// typesystem package interns TCon builtins; the Any-by-reason map
// additionally needs a mutex since spec §5 calls for thread-safety
// once cross-file analysis runs concurrently (internal/batch).
package types

import "sync"

var (
	singletonNever     = NeverType{}
	singletonUnknown   = UnknownType{}
	singletonNull      = NullType{}
	singletonUndefined = UndefinedType{}
	singletonNumber    = NumberType{}
	singletonString    = StringType{}
	singletonBoolean   = BooleanType{}
	singletonBigInt    = BigIntType{}
	singletonAny       = AnyType{}
)

func Never() Type     { return singletonNever }
func Unknown() Type   { return singletonUnknown }
func Null() Type      { return singletonNull }
func Undefined() Type { return singletonUndefined }
func Number() Type    { return singletonNumber }
func String() Type    { return singletonString }
func Boolean() Type   { return singletonBoolean }
func BigInt() Type    { return singletonBigInt }

var (
	anyMu      sync.Mutex
	anyByReason = map[string]AnyType{}
)

// Any interns by reason: repeated calls with the same reason return an
// equal (though not necessarily identical) value; safe for concurrent
// use across goroutines analyzing different files (spec §5).
func Any(reason string) Type {
	if reason == "" {
		return singletonAny
	}
	anyMu.Lock()
	defer anyMu.Unlock()
	if t, ok := anyByReason[reason]; ok {
		return t
	}
	t := AnyType{Reason: reason}
	anyByReason[reason] = t
	return t
}

func NumberLiteral(v float64) Type {
	return NumberType{Literal: &v}
}

func StringLiteral(v string) Type {
	return StringType{Literal: &v}
}

func BooleanLiteral(v bool) Type {
	return BooleanType{Literal: &v}
}

func BigIntLiteral(v string) Type {
	return BigIntType{Literal: &v}
}

// Array builds an array or tuple type. A nil tuple means a plain
// homogeneous array.
func Array(element Type, tuple []Type) Type {
	return ArrayType{Element: element, Tuple: tuple}
}

// Object builds an object type from an ordered field list, copying the
// slice so the caller's backing array can't alias the result (spec
// §3.1 invariant 4).
func Object(fields []Field) Type {
	cp := make([]Field, len(fields))
	copy(cp, fields)
	return ObjectType{Fields: cp}
}

func Function(params []Param, ret Type, isAsync, isGenerator bool) Type {
	cp := make([]Param, len(params))
	copy(cp, params)
	return FunctionType{Params: cp, Return: ret, IsAsync: isAsync, IsGenerator: isGenerator}
}

// ClassOpts mirrors the named-argument style the spec's factory list
// uses for class() (spec §4.1).
type ClassOpts struct {
	Name        string
	Constructor FunctionType
	Instance    ObjectType
	Static      ObjectType
	Super       *ClassType
}

func Class(opts ClassOpts) Type {
	instanceFields := make([]Field, len(opts.Instance.Fields))
	copy(instanceFields, opts.Instance.Fields)
	staticFields := make([]Field, len(opts.Static.Fields))
	copy(staticFields, opts.Static.Fields)
	return ClassType{
		Name:        opts.Name,
		Constructor: opts.Constructor,
		Instance:    ObjectType{Fields: instanceFields},
		Static:      ObjectType{Fields: staticFields},
		Super:       opts.Super,
	}
}

func Promise(resolved Type) Type {
	return PromiseType{Resolved: resolved}
}

// Union flattens, deduplicates, and canonicalizes (spec §3.1, §4.1,
// §8 invariant 10): nested unions flatten, never is dropped, any
// absorbs everything, a single remaining member is returned bare.
func Union(members []Type) Type {
	flat := flattenUnion(members)
	if flat == nil {
		return Never()
	}
	return normalizeFlatUnion(flat)
}

func flattenUnion(members []Type) []Type {
	var flat []Type
	for _, m := range members {
		if m == nil {
			continue
		}
		if u, ok := m.(UnionType); ok {
			flat = append(flat, flattenUnion(u.Members)...)
			continue
		}
		flat = append(flat, m)
	}
	return flat
}

func normalizeFlatUnion(flat []Type) Type {
	// any absorbs everything
	for _, m := range flat {
		if _, ok := m.(AnyType); ok {
			return m
		}
	}
	var out []Type
	for _, m := range flat {
		if _, ok := m.(NeverType); ok {
			continue // never is absorbed
		}
		dup := false
		for _, existing := range out {
			if Equal(existing, m) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return Never()
	}
	if len(out) == 1 {
		return out[0]
	}
	return UnionType{Members: out}
}

// Intersection is the dual of Union (spec §4.1); flattens nested
// intersections and deduplicates structurally-equal members.
func Intersection(members []Type) Type {
	var flat []Type
	for _, m := range members {
		if m == nil {
			continue
		}
		if i, ok := m.(IntersectionType); ok {
			flat = append(flat, i.Members...)
			continue
		}
		flat = append(flat, m)
	}
	var out []Type
	for _, m := range flat {
		if _, ok := m.(UnknownType); ok {
			continue // unknown (top) is absorbed by intersection
		}
		dup := false
		for _, existing := range out {
			if Equal(existing, m) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return Unknown()
	}
	if len(out) == 1 {
		return out[0]
	}
	return IntersectionType{Members: out}
}

// Widen replaces a literal primitive with its base type and a tuple
// with its corresponding array type (spec §3.1, §4.1, §4.3.4 "Widening
// at loop headers"). Every other type is returned unchanged. Widen is
// idempotent (spec §8 invariant 7).
func Widen(t Type) Type {
	switch v := t.(type) {
	case NumberType:
		if v.Literal != nil {
			return Number()
		}
		return v
	case StringType:
		if v.Literal != nil {
			return String()
		}
		return v
	case BooleanType:
		if v.Literal != nil {
			return Boolean()
		}
		return v
	case BigIntType:
		if v.Literal != nil {
			return BigInt()
		}
		return v
	case ArrayType:
		if v.Tuple != nil {
			widened := make([]Type, len(v.Tuple))
			for i, e := range v.Tuple {
				widened[i] = e
			}
			return Array(Union(widened), nil)
		}
		return v
	case UnionType:
		widened := make([]Type, len(v.Members))
		for i, m := range v.Members {
			widened[i] = Widen(m)
		}
		return Union(widened)
	default:
		return t
	}
}
