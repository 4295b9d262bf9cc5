// Package constraints implements the MLsub-style constraint generation
// half of spec §4.4: walking the AST once, producing a polar type for
// every expression plus a flat list of subtyping constraints for the
// solver (internal/solve) to discharge. Grounded on the teacher's
// internal/analyzer two-pass shape (infer a type, thread a
// substitution/constraint set alongside it) but specialized to
// biunification's "generate now, solve later" split instead of
// Algorithm-W's "unify as you go".
package constraints

import (
	"github.com/inferlang/inferlang/internal/annotate"
	"github.com/inferlang/inferlang/internal/ast"
	"github.com/inferlang/inferlang/internal/env"
	"github.com/inferlang/inferlang/internal/types"
)

// Flow is one subtyping obligation the solver must satisfy: Lower <:
// Upper (spec §4.4.2 "Flow constraint").
type Flow struct {
	Lower types.Type
	Upper types.Type
}

// Scheme binds a let-polymorphic identifier to its generalized type
// (spec §4.4.3 "Generalization at let-bindings").
type Scheme = types.SchemeType

// ConstraintEnv maps names to schemes in a simple persistent chain,
// separate from internal/env.Environment because scheme
// instantiation (fresh type variables per use) has no flow-sensitive
// analogue.
type ConstraintEnv struct {
	bindings map[string]types.Type
	schemes  map[string]Scheme
	parent   *ConstraintEnv
}

func NewConstraintEnv() *ConstraintEnv {
	return &ConstraintEnv{bindings: map[string]types.Type{}, schemes: map[string]Scheme{}}
}

// NewConstraintEnvFromBuiltins seeds a ConstraintEnv with the same
// fixed global bindings the iterative path installs (spec §4.5), so
// both analysis strategies start from one builtin surface even though
// they otherwise keep separate environment representations.
func NewConstraintEnvFromBuiltins(builtins *env.Environment) *ConstraintEnv {
	e := NewConstraintEnv()
	for name, b := range builtins.All() {
		e.bindings[name] = b.Type
	}
	return e
}

func (e *ConstraintEnv) Child() *ConstraintEnv {
	return &ConstraintEnv{bindings: map[string]types.Type{}, schemes: map[string]Scheme{}, parent: e}
}

func (e *ConstraintEnv) Bind(name string, t types.Type) *ConstraintEnv {
	child := e.Child()
	child.bindings[name] = t
	return child
}

func (e *ConstraintEnv) BindScheme(name string, s Scheme) *ConstraintEnv {
	child := e.Child()
	child.schemes[name] = s
	return child
}

func (e *ConstraintEnv) lookup(name string) (types.Type, Scheme, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if t, ok := cur.bindings[name]; ok {
			return t, Scheme{}, true
		}
		if s, ok := cur.schemes[name]; ok {
			return nil, s, true
		}
	}
	return nil, Scheme{}, false
}

// Generator produces fresh type variables and collects Flow
// constraints as it walks expressions (spec §4.4.3).
type Generator struct {
	nextID      int
	level       int
	Constraints []Flow

	// Pending accumulates one entry per binding position discovered
	// during generation (spec §3.4); pkg/typeinfer reconstructs each
	// Node through the solved Bisubstitution to fill in the final
	// annotation.
	Pending []PendingAnnotation
}

func NewGenerator() *Generator { return &Generator{} }

// VarCount reports how many fresh type variables this Generator has
// minted, for ConstraintInferenceResult's statistics (spec §6).
func (g *Generator) VarCount() int { return g.nextID }

// Fresh returns a new, unconstrained type variable at the current
// generalization level (spec §4.4.1 "level", glossary
// "Generalization").
func (g *Generator) Fresh(name string) types.TypeVar {
	g.nextID++
	return types.TypeVar{ID: g.nextID, Name: name, Level: g.level}
}

// Add records Lower <: Upper as a constraint to be solved later.
func (g *Generator) Add(lower, upper types.Type) {
	g.Constraints = append(g.Constraints, Flow{Lower: lower, Upper: upper})
}

func (g *Generator) enterLevel() { g.level++ }
func (g *Generator) exitLevel()  { g.level-- }

// instantiate replaces a scheme's bound variables with fresh ones
// (spec §4.4.1 "Instantiation"), leaving the level-generalization
// machinery in generalize as the inverse operation.
func (g *Generator) instantiate(s Scheme) types.Type {
	if len(s.Vars) == 0 {
		return s.Body
	}
	sub := map[int]types.Type{}
	for _, v := range s.Vars {
		sub[v.ID] = g.Fresh(v.Name)
	}
	return substituteVars(s.Body, sub)
}

func substituteVars(t types.Type, sub map[int]types.Type) types.Type {
	switch v := t.(type) {
	case types.TypeVar:
		if r, ok := sub[v.ID]; ok {
			return r
		}
		return v
	case types.ArrayType:
		if v.Tuple != nil {
			out := make([]types.Type, len(v.Tuple))
			for i, e := range v.Tuple {
				out[i] = substituteVars(e, sub)
			}
			return types.ArrayType{Tuple: out}
		}
		return types.ArrayType{Element: substituteVars(v.Element, sub)}
	case types.ObjectType:
		fields := make([]types.Field, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = types.Field{Name: f.Name, Type: substituteVars(f.Type, sub), Optional: f.Optional, Readonly: f.Readonly}
		}
		return types.ObjectType{Fields: fields}
	case types.FunctionType:
		params := make([]types.Param, len(v.Params))
		for i, p := range v.Params {
			params[i] = types.Param{Name: p.Name, Type: substituteVars(p.Type, sub), Optional: p.Optional, Rest: p.Rest}
		}
		ret := v.Return
		if ret != nil {
			ret = substituteVars(ret, sub)
		}
		return types.FunctionType{Params: params, Return: ret, IsAsync: v.IsAsync, IsGenerator: v.IsGenerator}
	case types.UnionType:
		out := make([]types.Type, len(v.Members))
		for i, m := range v.Members {
			out[i] = substituteVars(m, sub)
		}
		return types.UnionType{Members: out}
	case types.IntersectionType:
		out := make([]types.Type, len(v.Members))
		for i, m := range v.Members {
			out[i] = substituteVars(m, sub)
		}
		return types.IntersectionType{Members: out}
	case types.PromiseType:
		return types.PromiseType{Resolved: substituteVars(v.Resolved, sub)}
	default:
		return t
	}
}

// freeVars collects every TypeVar ID occurring in t.
func freeVars(t types.Type, out map[int]types.TypeVar) {
	switch v := t.(type) {
	case types.TypeVar:
		out[v.ID] = v
	case types.ArrayType:
		if v.Tuple != nil {
			for _, e := range v.Tuple {
				freeVars(e, out)
			}
			return
		}
		freeVars(v.Element, out)
	case types.ObjectType:
		for _, f := range v.Fields {
			freeVars(f.Type, out)
		}
	case types.FunctionType:
		for _, p := range v.Params {
			freeVars(p.Type, out)
		}
		if v.Return != nil {
			freeVars(v.Return, out)
		}
	case types.UnionType:
		for _, m := range v.Members {
			freeVars(m, out)
		}
	case types.IntersectionType:
		for _, m := range v.Members {
			freeVars(m, out)
		}
	case types.PromiseType:
		freeVars(v.Resolved, out)
	}
}

// generalize closes over every free variable of t whose level is at
// least minLevel (spec §4.4.3 "Generalization at let-bindings"). The
// enclosing environment is not inspected: a variable at that level is
// quantified even when it is also free in the environment.
func (g *Generator) generalize(t types.Type, minLevel int) Scheme {
	free := map[int]types.TypeVar{}
	freeVars(t, free)
	var vars []types.TypeVar
	for _, v := range free {
		if v.Level >= minLevel {
			vars = append(vars, v)
		}
	}
	return Scheme{Vars: vars, Body: t}
}
