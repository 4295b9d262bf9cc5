package types

// Join computes the join of two types at a control-flow merge (spec
// §4.3.4 "Join of types"): identity short-circuits, never/any are
// absorbing, two values of the same primitive kind widen to their base
// type before combining (so a merge never reintroduces a literal -
// spec §3.1 invariant 2), and anything else canonicalizes through
// Union.
func Join(a, b Type) Type {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if Equal(a, b) {
		return a
	}
	if _, ok := a.(NeverType); ok {
		return b
	}
	if _, ok := b.(NeverType); ok {
		return a
	}
	if _, ok := a.(AnyType); ok {
		return a
	}
	if _, ok := b.(AnyType); ok {
		return b
	}
	if samePrimitiveKind(a, b) {
		return Widen(a)
	}
	return Union([]Type{a, b})
}

func samePrimitiveKind(a, b Type) bool {
	switch a.(type) {
	case NumberType:
		_, ok := b.(NumberType)
		return ok
	case StringType:
		_, ok := b.(StringType)
		return ok
	case BooleanType:
		_, ok := b.(BooleanType)
		return ok
	case BigIntType:
		_, ok := b.(BigIntType)
		return ok
	}
	return false
}
