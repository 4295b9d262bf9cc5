// Package solve implements the second half of the constraint-based
// path (spec §4.4.4-§4.4.5): biunification over the flows
// internal/constraints collects, the bisubstitution those flows
// accumulate, a standalone subtype query for property/callable
// resolution, and the final reconstruction pass that turns a solved
// polar type back into a plain types.Type. Grounded on the teacher's
// internal/typesystem/unify.go (the occurs-check-driven substitution
// builder) and generalized from Algorithm-W's single substitution map
// to MLsub's two-sided (positive/negative) bisubstitution.
package solve

import "github.com/inferlang/inferlang/internal/types"

// Bisubstitution is the pair of maps spec §4.4.4 describes: Positive
// holds each variable's accumulated lower bound (built by union, since
// more than one concrete type may flow in from below); Negative holds
// its accumulated upper bound (built by intersection, symmetrically).
type Bisubstitution struct {
	Positive map[int]types.Type
	Negative map[int]types.Type
}

// New returns an empty bisubstitution.
func New() *Bisubstitution {
	return &Bisubstitution{Positive: map[int]types.Type{}, Negative: map[int]types.Type{}}
}

// addPositive records that t is a lower bound observed for the
// variable id (spec §4.4.4 "τ ≤ α ... update the positive component of
// α's bisubstitution to include τ (union)"), with a concrete-type
// shortcut for the very first bound: widening an empty bound with
// Union would be a no-op anyway, but skipping it keeps the stored type
// identical to what flowed in, which is what spec calls "a
// concrete-type shortcut that binds directly when no bound exists yet
// (cleaner output)".
func (b *Bisubstitution) addPositive(id int, t types.Type) {
	if existing, ok := b.Positive[id]; ok {
		b.Positive[id] = types.Union([]types.Type{existing, t})
		return
	}
	b.Positive[id] = t
}

// addNegative records that t is an upper bound observed for id (spec
// §4.4.4 "α ≤ τ ... update the negative component ... include τ
// (intersection)").
func (b *Bisubstitution) addNegative(id int, t types.Type) {
	if existing, ok := b.Negative[id]; ok {
		b.Negative[id] = types.Intersection([]types.Type{existing, t})
		return
	}
	b.Negative[id] = t
}

// boundAt returns id's bound at the given polarity: Positive bounds
// answer covariant (produced) positions, Negative bounds answer
// contravariant (consumed) positions.
func (b *Bisubstitution) boundAt(id int, polarity types.Polarity) (types.Type, bool) {
	if polarity == types.Negative {
		t, ok := b.Negative[id]
		return t, ok
	}
	t, ok := b.Positive[id]
	return t, ok
}

// Apply walks t, replacing each TypeVar with its bound at the current
// polarity - flipping at function parameters, the one contravariant
// position in this type language - and falling back to the opposite
// polarity's bound when the current one is empty (spec §4.4.4: "When a
// variable has no binding at its current polarity but has one at the
// opposite polarity, concrete parts of that bound are extracted for
// cleaner output"). A visited set of variable ids guards termination
// on recursive types (spec §9 "any walk of a type with substitution
// must track a visited set of variable ids").
func (b *Bisubstitution) Apply(t types.Type, polarity types.Polarity) types.Type {
	return b.apply(t, polarity, map[int]bool{})
}

func (b *Bisubstitution) apply(t types.Type, polarity types.Polarity, visited map[int]bool) types.Type {
	switch v := t.(type) {
	case types.TypeVar:
		if visited[v.ID] {
			return v
		}
		bound, ok := b.boundAt(v.ID, polarity)
		if !ok {
			bound, ok = b.boundAt(v.ID, polarity.Flip())
		}
		if !ok {
			return v
		}
		next := copyVisited(visited)
		next[v.ID] = true
		return b.apply(bound, polarity, next)

	case types.RecursiveType:
		next := copyVisited(visited)
		next[v.Binder.ID] = true
		return types.RecursiveType{Binder: v.Binder, Body: b.apply(v.Body, polarity, next)}

	case types.ArrayType:
		if v.Tuple != nil {
			out := make([]types.Type, len(v.Tuple))
			for i, e := range v.Tuple {
				out[i] = b.apply(e, polarity, visited)
			}
			return types.ArrayType{Tuple: out}
		}
		return types.ArrayType{Element: b.apply(v.Element, polarity, visited)}

	case types.ObjectType:
		fields := make([]types.Field, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = types.Field{Name: f.Name, Type: b.apply(f.Type, polarity, visited), Optional: f.Optional, Readonly: f.Readonly}
		}
		return types.ObjectType{Fields: fields}

	case types.FunctionType:
		params := make([]types.Param, len(v.Params))
		for i, p := range v.Params {
			params[i] = types.Param{Name: p.Name, Type: b.apply(p.Type, polarity.Flip(), visited), Optional: p.Optional, Rest: p.Rest}
		}
		var ret types.Type
		if v.Return != nil {
			ret = b.apply(v.Return, polarity, visited)
		}
		return types.FunctionType{Params: params, Return: ret, IsAsync: v.IsAsync, IsGenerator: v.IsGenerator}

	case types.ClassType:
		inst := b.apply(v.Instance, polarity, visited).(types.ObjectType)
		return types.ClassType{Name: v.Name, Constructor: v.Constructor, Instance: inst, Static: v.Static, Super: v.Super}

	case types.PromiseType:
		return types.PromiseType{Resolved: b.apply(v.Resolved, polarity, visited)}

	case types.UnionType:
		out := make([]types.Type, len(v.Members))
		for i, m := range v.Members {
			out[i] = b.apply(m, polarity, visited)
		}
		return types.UnionType{Members: out}

	case types.IntersectionType:
		out := make([]types.Type, len(v.Members))
		for i, m := range v.Members {
			out[i] = b.apply(m, polarity, visited)
		}
		return types.IntersectionType{Members: out}

	default:
		return t
	}
}

func copyVisited(v map[int]bool) map[int]bool {
	out := make(map[int]bool, len(v)+1)
	for k := range v {
		out[k] = true
	}
	return out
}
