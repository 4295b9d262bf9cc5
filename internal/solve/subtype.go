package solve

import "github.com/inferlang/inferlang/internal/types"

// Subtype is the dedicated subtype query spec §4.4.4 calls out as
// existing "for use inside property/callable resolution": a pure
// boolean check with no side effects on any bisubstitution, structured
// identically to biunify's decomposition rules but without the
// variable-binding half (callers of Subtype only have concrete types
// in hand by the time they need this - e.g. "does this call's argument
// satisfy this overload's parameter").
func Subtype(a, b types.Type) bool {
	return subtype(a, b, map[pairKey]bool{})
}

func subtype(a, b types.Type, seen map[pairKey]bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if _, ok := a.(types.AnyType); ok {
		return true
	}
	if _, ok := b.(types.AnyType); ok {
		return true
	}
	if _, ok := b.(types.UnknownType); ok {
		return true
	}
	if _, ok := a.(types.NeverType); ok {
		return true
	}

	key := pairKey{a.String(), b.String()}
	if seen[key] {
		return true // co-inductive: assume success to terminate on recursive types
	}
	seen[key] = true

	if ua, ok := a.(types.UnionType); ok {
		for _, m := range ua.Members {
			if !subtype(m, b, seen) {
				return false
			}
		}
		return true
	}
	if ub, ok := b.(types.UnionType); ok {
		for _, m := range ub.Members {
			if subtype(a, m, seen) {
				return true
			}
		}
		return false
	}
	if ib, ok := b.(types.IntersectionType); ok {
		for _, m := range ib.Members {
			if !subtype(a, m, seen) {
				return false
			}
		}
		return true
	}
	if ia, ok := a.(types.IntersectionType); ok {
		for _, m := range ia.Members {
			if subtype(m, b, seen) {
				return true
			}
		}
		return false
	}

	switch av := a.(type) {
	case types.NumberType:
		bv, ok := b.(types.NumberType)
		return ok && literalCompatibleFloat(av.Literal, bv.Literal)
	case types.StringType:
		bv, ok := b.(types.StringType)
		return ok && literalCompatibleString(av.Literal, bv.Literal)
	case types.BooleanType:
		bv, ok := b.(types.BooleanType)
		return ok && literalCompatibleBool(av.Literal, bv.Literal)
	case types.BigIntType:
		bv, ok := b.(types.BigIntType)
		return ok && literalCompatibleString(av.Literal, bv.Literal)
	case types.NullType:
		_, ok := b.(types.NullType)
		return ok
	case types.UndefinedType:
		_, ok := b.(types.UndefinedType)
		return ok
	case types.ArrayType:
		bv, ok := b.(types.ArrayType)
		if !ok {
			return false
		}
		if av.Tuple != nil && bv.Tuple != nil {
			if len(av.Tuple) != len(bv.Tuple) {
				return false
			}
			for i := range av.Tuple {
				if !subtype(av.Tuple[i], bv.Tuple[i], seen) {
					return false
				}
			}
			return true
		}
		return subtype(arrayElementOf(av), arrayElementOf(bv), seen)
	case types.ObjectType:
		bv, ok := b.(types.ObjectType)
		if !ok {
			return false
		}
		for _, bf := range bv.Fields {
			af, ok := av.Get(bf.Name)
			if !ok {
				if bf.Optional {
					continue
				}
				return false
			}
			if !subtype(af.Type, bf.Type, seen) {
				return false
			}
		}
		return true
	case types.FunctionType:
		bv, ok := b.(types.FunctionType)
		if !ok {
			return false
		}
		if len(bv.Params) > len(av.Params) {
			for i := len(av.Params); i < len(bv.Params); i++ {
				if !bv.Params[i].Optional && !bv.Params[i].Rest {
					return false
				}
			}
		}
		n := len(av.Params)
		if len(bv.Params) < n {
			n = len(bv.Params)
		}
		for i := 0; i < n; i++ {
			if !subtype(bv.Params[i].Type, av.Params[i].Type, seen) { // contravariant
				return false
			}
		}
		if av.Return == nil || bv.Return == nil {
			return av.Return == nil && bv.Return == nil
		}
		return subtype(av.Return, bv.Return, seen)
	case types.PromiseType:
		bv, ok := b.(types.PromiseType)
		return ok && subtype(av.Resolved, bv.Resolved, seen)
	case types.ClassType:
		bv, ok := b.(types.ClassType)
		if !ok {
			return false
		}
		return subtype(av.Instance, bv.Instance, seen)
	default:
		return types.Equal(a, b)
	}
}
