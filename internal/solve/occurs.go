package solve

import "github.com/inferlang/inferlang/internal/types"

// occursIn is the occurs check (spec §4.4.4, §9 "Cyclic graphs",
// glossary "Occurs check"): true when the variable id appears free
// somewhere inside t, meaning binding id to t directly would produce
// an infinitely-unrolling type.
func (s *Solver) occursIn(id int, t types.Type) bool {
	return occursHelper(id, t, map[int]bool{})
}

func occursHelper(id int, t types.Type, visited map[int]bool) bool {
	switch v := t.(type) {
	case types.TypeVar:
		return v.ID == id
	case types.RecursiveType:
		if visited[v.Binder.ID] {
			return false
		}
		visited[v.Binder.ID] = true
		return occursHelper(id, v.Body, visited)
	case types.ArrayType:
		if v.Tuple != nil {
			for _, e := range v.Tuple {
				if occursHelper(id, e, visited) {
					return true
				}
			}
			return false
		}
		return occursHelper(id, v.Element, visited)
	case types.ObjectType:
		for _, f := range v.Fields {
			if occursHelper(id, f.Type, visited) {
				return true
			}
		}
		return false
	case types.FunctionType:
		for _, p := range v.Params {
			if occursHelper(id, p.Type, visited) {
				return true
			}
		}
		if v.Return != nil {
			return occursHelper(id, v.Return, visited)
		}
		return false
	case types.ClassType:
		return occursHelper(id, v.Instance, visited)
	case types.PromiseType:
		return occursHelper(id, v.Resolved, visited)
	case types.UnionType:
		for _, m := range v.Members {
			if occursHelper(id, m, visited) {
				return true
			}
		}
		return false
	case types.IntersectionType:
		for _, m := range v.Members {
			if occursHelper(id, m, visited) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// makeRecursive converts "α must equal τ, and α occurs in τ" into a
// recursive type μβ.τ[α↦β] instead of failing (spec §4.4.4, §7
// "infinite-type ... Converted to recursive type, not an error"): a
// fresh binder replaces every occurrence of the offending variable
// inside τ, and the whole thing becomes the bound instead of τ itself.
func (s *Solver) makeRecursive(v types.TypeVar, t types.Type) types.Type {
	s.recursiveCounter--
	binder := types.TypeVar{ID: s.recursiveCounter, Name: "mu_" + v.String()}
	body := replaceVar(t, v.ID, binder)
	return types.RecursiveType{Binder: binder, Body: body}
}

// replaceVar substitutes every occurrence of the variable id with
// replacement throughout t; it is the renaming half of makeRecursive,
// distinct from Bisubstitution.Apply which substitutes *bounds*
// (possibly different types per polarity) rather than a single type.
func replaceVar(t types.Type, id int, replacement types.Type) types.Type {
	switch v := t.(type) {
	case types.TypeVar:
		if v.ID == id {
			return replacement
		}
		return v
	case types.ArrayType:
		if v.Tuple != nil {
			out := make([]types.Type, len(v.Tuple))
			for i, e := range v.Tuple {
				out[i] = replaceVar(e, id, replacement)
			}
			return types.ArrayType{Tuple: out}
		}
		return types.ArrayType{Element: replaceVar(v.Element, id, replacement)}
	case types.ObjectType:
		fields := make([]types.Field, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = types.Field{Name: f.Name, Type: replaceVar(f.Type, id, replacement), Optional: f.Optional, Readonly: f.Readonly}
		}
		return types.ObjectType{Fields: fields}
	case types.FunctionType:
		params := make([]types.Param, len(v.Params))
		for i, p := range v.Params {
			params[i] = types.Param{Name: p.Name, Type: replaceVar(p.Type, id, replacement), Optional: p.Optional, Rest: p.Rest}
		}
		var ret types.Type
		if v.Return != nil {
			ret = replaceVar(v.Return, id, replacement)
		}
		return types.FunctionType{Params: params, Return: ret, IsAsync: v.IsAsync, IsGenerator: v.IsGenerator}
	case types.PromiseType:
		return types.PromiseType{Resolved: replaceVar(v.Resolved, id, replacement)}
	case types.UnionType:
		out := make([]types.Type, len(v.Members))
		for i, m := range v.Members {
			out[i] = replaceVar(m, id, replacement)
		}
		return types.UnionType{Members: out}
	case types.IntersectionType:
		out := make([]types.Type, len(v.Members))
		for i, m := range v.Members {
			out[i] = replaceVar(m, id, replacement)
		}
		return types.IntersectionType{Members: out}
	case types.ClassType:
		inst := replaceVar(v.Instance, id, replacement).(types.ObjectType)
		return types.ClassType{Name: v.Name, Constructor: v.Constructor, Instance: inst, Static: v.Static, Super: v.Super}
	case types.RecursiveType:
		return types.RecursiveType{Binder: v.Binder, Body: replaceVar(v.Body, id, replacement)}
	default:
		return t
	}
}
