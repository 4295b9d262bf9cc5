package solve

import "github.com/inferlang/inferlang/internal/types"

// Reconstruct turns a solved polar type back into the plain
// types.Type shape the rest of the engine (and the formatter) deal in
// (spec §4.4.5): apply the bisubstitution in covariant position (every
// AST node's recorded type variable is something the node *produces*),
// then simplify the result so leftover variables and redundant union
// members don't leak into output.
func Reconstruct(t types.Type, bisub *Bisubstitution) types.Type {
	return simplify(bisub.Apply(t, types.Positive))
}

// simplify implements spec §4.4.5's cleanup pass: unresolved variables
// that reach output become unknown; redundant unknown members are
// dropped from unions that also contain a concrete member;
// function-type union members are deduplicated by parameter signature,
// preferring the most specific return type.
func simplify(t types.Type) types.Type {
	switch v := t.(type) {
	case types.TypeVar:
		return types.Unknown()
	case types.RecursiveType:
		return types.RecursiveType{Binder: v.Binder, Body: simplify(v.Body)}
	case types.UnionType:
		members := make([]types.Type, len(v.Members))
		for i, m := range v.Members {
			members[i] = simplify(m)
		}
		return simplifyUnion(members)
	case types.IntersectionType:
		members := make([]types.Type, len(v.Members))
		for i, m := range v.Members {
			members[i] = simplify(m)
		}
		return types.Intersection(members)
	case types.ArrayType:
		if v.Tuple != nil {
			out := make([]types.Type, len(v.Tuple))
			for i, e := range v.Tuple {
				out[i] = simplify(e)
			}
			return types.Array(nil, out)
		}
		return types.Array(simplify(v.Element), nil)
	case types.ObjectType:
		fields := make([]types.Field, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = types.Field{Name: f.Name, Type: simplify(f.Type), Optional: f.Optional, Readonly: f.Readonly}
		}
		return types.Object(fields)
	case types.FunctionType:
		params := make([]types.Param, len(v.Params))
		for i, p := range v.Params {
			params[i] = types.Param{Name: p.Name, Type: simplify(p.Type), Optional: p.Optional, Rest: p.Rest}
		}
		var ret types.Type
		if v.Return != nil {
			ret = simplify(v.Return)
		}
		return types.Function(params, ret, v.IsAsync, v.IsGenerator)
	case types.ClassType:
		inst := simplify(v.Instance).(types.ObjectType)
		return types.ClassType{Name: v.Name, Constructor: v.Constructor, Instance: inst, Static: v.Static, Super: v.Super}
	case types.PromiseType:
		return types.Promise(simplify(v.Resolved))
	default:
		return t
	}
}

func simplifyUnion(members []types.Type) types.Type {
	hasConcrete := false
	for _, m := range members {
		if _, ok := m.(types.UnknownType); !ok {
			hasConcrete = true
			break
		}
	}
	var filtered []types.Type
	for _, m := range members {
		if _, ok := m.(types.UnknownType); ok && hasConcrete {
			continue
		}
		filtered = append(filtered, m)
	}
	return types.Union(dedupeFunctionsBySignature(filtered))
}

// dedupeFunctionsBySignature merges function-type union members that
// share a parameter signature, keeping whichever return type is the
// more specific of the two (spec §4.4.5 "function-type unions are
// deduplicated by parameter signature, preferring the most specific
// return type").
func dedupeFunctionsBySignature(members []types.Type) []types.Type {
	bySig := map[string]int{}
	var out []types.Type
	for _, m := range members {
		fn, ok := m.(types.FunctionType)
		if !ok {
			out = append(out, m)
			continue
		}
		sig := paramSignature(fn)
		if idx, exists := bySig[sig]; exists {
			existing := out[idx].(types.FunctionType)
			if existing.Return == nil || (fn.Return != nil && Subtype(fn.Return, existing.Return) && !types.Equal(fn.Return, existing.Return)) {
				out[idx] = fn
			}
			continue
		}
		bySig[sig] = len(out)
		out = append(out, m)
	}
	return out
}

func paramSignature(fn types.FunctionType) string {
	sig := ""
	for _, p := range fn.Params {
		sig += p.Type.String() + ","
	}
	return sig
}
