package types

// Equal is the recursive structural comparison spec §3.1 requires:
// unions compare as sets (order-independent), objects compare as
// field-name-keyed mappings (declaration order doesn't matter for
// equality, only for formatting - see ObjectType.String), functions
// compare pointwise by arity, parameter types, optionality and rest
// markers; parameter names are cosmetic and are not compared.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case NeverType:
		_, ok := b.(NeverType)
		return ok
	case UnknownType:
		_, ok := b.(UnknownType)
		return ok
	case AnyType:
		bv, ok := b.(AnyType)
		return ok && av.Reason == bv.Reason
	case NullType:
		_, ok := b.(NullType)
		return ok
	case UndefinedType:
		_, ok := b.(UndefinedType)
		return ok
	case NumberType:
		bv, ok := b.(NumberType)
		if !ok {
			return false
		}
		return equalLiteralFloat(av.Literal, bv.Literal)
	case StringType:
		bv, ok := b.(StringType)
		if !ok {
			return false
		}
		return equalLiteralString(av.Literal, bv.Literal)
	case BooleanType:
		bv, ok := b.(BooleanType)
		if !ok {
			return false
		}
		return equalLiteralBool(av.Literal, bv.Literal)
	case BigIntType:
		bv, ok := b.(BigIntType)
		if !ok {
			return false
		}
		return equalLiteralString(av.Literal, bv.Literal)
	case ArrayType:
		bv, ok := b.(ArrayType)
		if !ok {
			return false
		}
		return equalArray(av, bv)
	case ObjectType:
		bv, ok := b.(ObjectType)
		if !ok {
			return false
		}
		return equalObject(av, bv)
	case FunctionType:
		bv, ok := b.(FunctionType)
		if !ok {
			return false
		}
		return equalFunction(av, bv)
	case ClassType:
		bv, ok := b.(ClassType)
		if !ok {
			return false
		}
		return av.Name == bv.Name
	case PromiseType:
		bv, ok := b.(PromiseType)
		return ok && Equal(av.Resolved, bv.Resolved)
	case UnionType:
		bv, ok := b.(UnionType)
		if !ok {
			return false
		}
		return equalSet(av.Members, bv.Members)
	case IntersectionType:
		bv, ok := b.(IntersectionType)
		if !ok {
			return false
		}
		return equalSet(av.Members, bv.Members)
	case TypeVar:
		bv, ok := b.(TypeVar)
		return ok && av.ID == bv.ID
	case RecursiveType:
		bv, ok := b.(RecursiveType)
		return ok && av.Binder.ID == bv.Binder.ID && Equal(av.Body, bv.Body)
	case SchemeType:
		bv, ok := b.(SchemeType)
		if !ok || len(av.Vars) != len(bv.Vars) {
			return false
		}
		for i := range av.Vars {
			if av.Vars[i].ID != bv.Vars[i].ID {
				return false
			}
		}
		return Equal(av.Body, bv.Body)
	default:
		return false
	}
}

func equalLiteralFloat(a, b *float64) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}

func equalLiteralString(a, b *string) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}

func equalLiteralBool(a, b *bool) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}

func equalArray(a, b ArrayType) bool {
	if (a.Tuple == nil) != (b.Tuple == nil) {
		return false
	}
	if a.Tuple != nil {
		if len(a.Tuple) != len(b.Tuple) {
			return false
		}
		for i := range a.Tuple {
			if !Equal(a.Tuple[i], b.Tuple[i]) {
				return false
			}
		}
		return true
	}
	return Equal(a.Element, b.Element)
}

func equalObject(a, b ObjectType) bool {
	if len(a.Fields) != len(b.Fields) {
		return false
	}
	for _, af := range a.Fields {
		bf, ok := b.Get(af.Name)
		if !ok {
			return false
		}
		if af.Optional != bf.Optional || af.Readonly != bf.Readonly {
			return false
		}
		if !Equal(af.Type, bf.Type) {
			return false
		}
	}
	return true
}

func equalFunction(a, b FunctionType) bool {
	if len(a.Params) != len(b.Params) {
		return false
	}
	if a.IsAsync != b.IsAsync || a.IsGenerator != b.IsGenerator {
		return false
	}
	for i := range a.Params {
		if a.Params[i].Optional != b.Params[i].Optional || a.Params[i].Rest != b.Params[i].Rest {
			return false
		}
		if !Equal(a.Params[i].Type, b.Params[i].Type) {
			return false
		}
	}
	return Equal(a.Return, b.Return)
}

// equalSet compares two member slices as sets: same cardinality, and
// every member of a has a structurally-equal (and not yet consumed)
// counterpart in b.
func equalSet(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, am := range a {
		found := false
		for i, bm := range b {
			if used[i] {
				continue
			}
			if Equal(am, bm) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
