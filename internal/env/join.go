package env

import (
	"github.com/inferlang/inferlang/internal/ast"
	"github.com/inferlang/inferlang/internal/types"
)

// Join merges the environments flowing into a CFG join point (spec
// §4.3.4): the result's bindings cover the union of names bound in any
// incoming environment's local frame. A variable bound on every
// incoming path keeps a binding whose type is the union of its
// incoming types, definitely-assigned only if it was
// definitely-assigned on every path. A variable present on only some
// incoming paths survives with definitely-assigned forced to false
// (one branch could have skipped its declaration), its type the union
// of the types it holds wherever it is bound.
func Join(base *Environment, incoming []*Environment) *Environment {
	if len(incoming) == 0 {
		return base
	}
	if len(incoming) == 1 {
		return incoming[0]
	}
	names := map[string]struct{}{}
	for _, e := range incoming {
		for n := range e.bindings {
			names[n] = struct{}{}
		}
	}
	out := incoming[0].cloneFrame()
	out.bindings = make(map[string]Binding, len(names))
	for n := range names {
		out.bindings[n] = joinBinding(n, incoming)
	}
	return out
}

func joinBinding(name string, incoming []*Environment) Binding {
	var joined types.Type
	var declKind string
	var declNode ast.Node
	definite := true
	mutated := false
	haveFirst := false
	for _, e := range incoming {
		b, ok := e.bindings[name]
		if !ok {
			definite = false
			continue
		}
		if !haveFirst {
			declKind = b.DeclKind
			declNode = b.DeclNode
			haveFirst = true
		}
		joined = types.Join(joined, b.Type)
		if !b.DefinitelyAssigned {
			definite = false
		}
		if b.PossiblyMutated {
			mutated = true
		}
	}
	return Binding{
		Name:               name,
		Type:               joined,
		DeclKind:           declKind,
		DeclNode:           declNode,
		DefinitelyAssigned: definite,
		PossiblyMutated:    mutated,
	}
}

// Widen replaces every binding's type with its widened form (spec
// §4.3.4 "Widening at loop headers"): literal types become their base
// primitive and tuples become arrays, which guarantees the fixed-point
// iteration over a loop body terminates.
func Widen(e *Environment) *Environment {
	out := e.cloneFrame()
	for n, b := range out.bindings {
		b.Type = types.Widen(b.Type)
		out.bindings[n] = b
	}
	return out
}

// Narrow returns an environment identical to e except name's binding
// is replaced by narrowed (spec §4.3.3 "typeof/truthiness narrowing
// in if/while conditions"). It does not alter DefinitelyAssigned.
func Narrow(e *Environment, name string, narrowed types.Type) *Environment {
	b, ok := e.Lookup(name)
	if !ok {
		return e
	}
	b.Type = narrowed
	return e.Declare(name, b)
}

// Equal reports whether two environments bind the same names to
// structurally-equal types; used by the flow analyzer's fixed-point
// check (spec §4.3.1 "iterate until the environment at every block
// stops changing").
func Equal(a, b *Environment) bool {
	if a == b {
		return true
	}
	an, bn := collectAll(a), collectAll(b)
	if len(an) != len(bn) {
		return false
	}
	for name, at := range an {
		bt, ok := bn[name]
		if !ok || !types.Equal(at.Type, bt.Type) || at.DefinitelyAssigned != bt.DefinitelyAssigned {
			return false
		}
	}
	return true
}

func collectAll(e *Environment) map[string]Binding {
	out := map[string]Binding{}
	for cur := e; cur != nil; cur = cur.parent {
		for n, b := range cur.bindings {
			if _, seen := out[n]; !seen {
				out[n] = b
			}
		}
	}
	return out
}
