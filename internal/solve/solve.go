package solve

import (
	"github.com/inferlang/inferlang/internal/config"
	"github.com/inferlang/inferlang/internal/constraints"
	"github.com/inferlang/inferlang/internal/diagnostics"
	"github.com/inferlang/inferlang/internal/types"
)

// Solver discharges a flat list of constraints.Flow obligations by
// biunification (spec §4.4.4), accumulating a Bisubstitution and a
// diagnostic for every constraint it cannot satisfy. It never aborts:
// per spec §7, an incompatible-types failure drops the offending
// constraint and solving continues with the rest.
type Solver struct {
	cfg     config.AnalyzerConfig
	bisub   *Bisubstitution
	visited map[pairKey]bool
	errors  []*diagnostics.DiagnosticError

	// recursiveCounter mints fresh binder variables for occurs-check
	// recursion (negative, so they can never collide with a
	// constraints.Generator's positive-numbered variables).
	recursiveCounter int
}

type pairKey struct {
	lower, upper string
}

// NewSolver builds a Solver tuned by cfg (spec §5's bounded
// unification-visit budget comes from cfg.UnifyVisitLimit).
func NewSolver(cfg config.AnalyzerConfig) *Solver {
	return &Solver{cfg: cfg, bisub: New(), visited: map[pairKey]bool{}}
}

// Solve runs biunification to closure over flows and returns the
// resulting bisubstitution plus any diagnostics raised along the way.
func Solve(cfg config.AnalyzerConfig, flows []constraints.Flow) (*Bisubstitution, []*diagnostics.DiagnosticError) {
	s := NewSolver(cfg)
	for _, f := range flows {
		s.biunify(f.Lower, f.Upper)
	}
	return s.bisub, s.errors
}

func (s *Solver) budget() int {
	if s.cfg.UnifyVisitLimit > 0 {
		return s.cfg.UnifyVisitLimit
	}
	return config.DefaultUnifyVisitLimit
}

// biunify is the atomic elimination step of spec §4.4.4: it decides,
// for one Lower <: Upper obligation, whether to bind a variable's
// bound, decompose a union/intersection, or recurse structurally into
// two concrete shapes.
func (s *Solver) biunify(lower, upper types.Type) {
	if lower == nil || upper == nil {
		return
	}
	key := pairKey{lower.String(), upper.String()}
	if s.visited[key] {
		return
	}
	if len(s.visited) > s.budget() {
		s.errors = append(s.errors, diagnostics.New(diagnostics.ErrIterationBudget, diagnostics.Position{},
			"biunification did not converge within %d steps", s.budget()))
		return
	}
	s.visited[key] = true

	// "any with anything: succeed without binding (practical concession
	// to unsoundness)" - spec §4.4.4.
	if _, ok := lower.(types.AnyType); ok {
		return
	}
	if _, ok := upper.(types.AnyType); ok {
		return
	}

	// "(A ∪ B) ≤ T decomposes to A ≤ T and B ≤ T" - spec §4.4.4.
	if lu, ok := lower.(types.UnionType); ok {
		for _, m := range lu.Members {
			s.biunify(m, upper)
		}
		return
	}
	// "T ≤ (A ∩ B) decomposes to T ≤ A and T ≤ B" - spec §4.4.4.
	if iu, ok := upper.(types.IntersectionType); ok {
		for _, m := range iu.Members {
			s.biunify(lower, m)
		}
		return
	}

	lv, lIsVar := lower.(types.TypeVar)
	uv, uIsVar := upper.(types.TypeVar)
	switch {
	case lIsVar && uIsVar:
		if lv.ID == uv.ID {
			return
		}
		// "var ↔ var: both get bounds referencing each other" - spec §4.4.4.
		s.bindUpperBound(lv, upper)
		s.bindLowerBound(uv, lower)
		return
	case lIsVar:
		s.bindUpperBound(lv, upper)
		return
	case uIsVar:
		s.bindLowerBound(uv, lower)
		return
	}

	s.biunifyConcrete(lower, upper)
}

func (s *Solver) bindUpperBound(v types.TypeVar, t types.Type) {
	if s.occursIn(v.ID, t) {
		t = s.makeRecursive(v, t)
	}
	s.bisub.addNegative(v.ID, t)
}

func (s *Solver) bindLowerBound(v types.TypeVar, t types.Type) {
	if s.occursIn(v.ID, t) {
		t = s.makeRecursive(v, t)
	}
	s.bisub.addPositive(v.ID, t)
}

// biunifyConcrete decomposes two non-variable types structurally (spec
// §4.4.4's "Structural rules").
func (s *Solver) biunifyConcrete(lower, upper types.Type) {
	if _, ok := upper.(types.UnknownType); ok {
		return // top absorbs everything from below
	}
	if _, ok := lower.(types.NeverType); ok {
		return // bottom flows into everything
	}
	if uu, ok := upper.(types.UnionType); ok {
		for _, m := range uu.Members {
			if s.wouldSucceed(lower, m) {
				s.biunify(lower, m)
				return
			}
		}
		s.fail(lower, upper)
		return
	}
	if lu, ok := lower.(types.IntersectionType); ok {
		for _, m := range lu.Members {
			if s.wouldSucceed(m, upper) {
				s.biunify(m, upper)
				return
			}
		}
		s.fail(lower, upper)
		return
	}

	// A call site's synthetic upper bound is always a FunctionType
	// (spec §4.4.3 "Call ... require f ≤ (a1...) → ρ"); a concrete
	// lower type that isn't itself a function can never satisfy that
	// shape, so this is specifically "not callable" rather than a
	// generic mismatch (spec §7).
	if _, isFn := upper.(types.FunctionType); isFn {
		if _, lowerIsFn := lower.(types.FunctionType); !lowerIsFn {
			s.notCallable(lower)
			return
		}
	}

	switch lv := lower.(type) {
	case types.NumberType:
		uv, ok := upper.(types.NumberType)
		if !ok || !literalCompatibleFloat(lv.Literal, uv.Literal) {
			s.fail(lower, upper)
		}
	case types.StringType:
		uv, ok := upper.(types.StringType)
		if !ok || !literalCompatibleString(lv.Literal, uv.Literal) {
			s.fail(lower, upper)
		}
	case types.BooleanType:
		uv, ok := upper.(types.BooleanType)
		if !ok || !literalCompatibleBool(lv.Literal, uv.Literal) {
			s.fail(lower, upper)
		}
	case types.BigIntType:
		uv, ok := upper.(types.BigIntType)
		if !ok || !literalCompatibleString(lv.Literal, uv.Literal) {
			s.fail(lower, upper)
		}
	case types.NullType:
		if _, ok := upper.(types.NullType); !ok {
			s.fail(lower, upper)
		}
	case types.UndefinedType:
		if _, ok := upper.(types.UndefinedType); !ok {
			s.fail(lower, upper)
		}
	case types.ArrayType:
		uv, ok := upper.(types.ArrayType)
		if !ok {
			s.fail(lower, upper)
			return
		}
		s.biunifyArray(lv, uv)
	case types.ObjectType:
		uv, ok := upper.(types.ObjectType)
		if !ok {
			s.fail(lower, upper)
			return
		}
		s.biunifyObject(lv, uv)
	case types.FunctionType:
		uv, ok := upper.(types.FunctionType)
		if !ok {
			s.fail(lower, upper)
			return
		}
		s.biunifyFunction(lv, uv)
	case types.PromiseType:
		uv, ok := upper.(types.PromiseType)
		if !ok {
			s.fail(lower, upper)
			return
		}
		s.biunify(lv.Resolved, uv.Resolved)
	case types.ClassType:
		uv, ok := upper.(types.ClassType)
		if !ok {
			s.fail(lower, upper)
			return
		}
		s.biunify(lv.Instance, uv.Instance)
	default:
		if !types.Equal(lower, upper) {
			s.fail(lower, upper)
		}
	}
}

// wouldSucceed answers, without recording bindings or errors, whether
// biunifying lower against upper is plausible - used to pick an
// alternative out of a concrete union/intersection the way spec
// §4.4.3's disjunction constraints are meant to be tried ("commit the
// first that succeeds").
func (s *Solver) wouldSucceed(lower, upper types.Type) bool {
	return Subtype(lower, upper)
}

func (s *Solver) biunifyArray(lower, upper types.ArrayType) {
	if lower.Tuple != nil && upper.Tuple != nil {
		if len(lower.Tuple) != len(upper.Tuple) {
			s.errors = append(s.errors, diagnostics.New(diagnostics.ErrIncompatibleTypes, diagnostics.Position{},
				"tuple arity mismatch: %d vs %d", len(lower.Tuple), len(upper.Tuple)))
			return
		}
		for i := range lower.Tuple {
			s.biunify(lower.Tuple[i], upper.Tuple[i])
		}
		return
	}
	s.biunify(arrayElementOf(lower), arrayElementOf(upper))
}

func arrayElementOf(a types.ArrayType) types.Type {
	if a.Tuple != nil {
		return types.Union(a.Tuple)
	}
	return a.Element
}

// biunifyObject implements width subtyping (spec §4.4.4 "for flows the
// positive object may have fewer fields than the negative"): every
// field the upper (consumed) side requires must exist on the lower
// (produced) side with a flowing type; extra fields on the lower side
// are simply ignored.
func (s *Solver) biunifyObject(lower, upper types.ObjectType) {
	for _, uf := range upper.Fields {
		lf, ok := lower.Get(uf.Name)
		if !ok {
			if uf.Optional {
				continue
			}
			s.errors = append(s.errors, diagnostics.New(diagnostics.ErrMissingProperty, diagnostics.Position{},
				"missing property %q", uf.Name))
			continue
		}
		s.biunify(lf.Type, uf.Type)
	}
}

// biunifyFunction is contravariant in parameters, covariant in return,
// with arity tolerance for optional/rest parameters (spec §4.4.4).
func (s *Solver) biunifyFunction(lower, upper types.FunctionType) {
	n := len(lower.Params)
	if len(upper.Params) < n {
		n = len(upper.Params)
	}
	for i := 0; i < n; i++ {
		s.biunify(upper.Params[i].Type, lower.Params[i].Type)
	}
	if len(upper.Params) > len(lower.Params) {
		for i := n; i < len(upper.Params); i++ {
			if !upper.Params[i].Optional && !upper.Params[i].Rest {
				s.errors = append(s.errors, diagnostics.New(diagnostics.ErrArgumentCount, diagnostics.Position{},
					"call supplies too many arguments: no parameter at position %d", i))
			}
		}
	}
	if lower.Return != nil && upper.Return != nil {
		s.biunify(lower.Return, upper.Return)
	}
}

func (s *Solver) fail(lower, upper types.Type) {
	s.errors = append(s.errors, diagnostics.New(diagnostics.ErrIncompatibleTypes, diagnostics.Position{},
		"cannot unify %s with %s", lower.String(), upper.String()))
}

// notCallable raises spec §7's dedicated not-callable diagnostic for
// a call-site obligation against a concrete non-function type,
// distinct from the generic incompatible-types mismatch.
func (s *Solver) notCallable(lower types.Type) {
	s.errors = append(s.errors, diagnostics.New(diagnostics.ErrNotCallable, diagnostics.Position{},
		"%s is not callable", lower.String()))
}

func literalCompatibleFloat(lower, upper *float64) bool {
	if upper == nil {
		return true // widened upper bound accepts any literal
	}
	return lower != nil && *lower == *upper
}

func literalCompatibleString(lower, upper *string) bool {
	if upper == nil {
		return true
	}
	return lower != nil && *lower == *upper
}

func literalCompatibleBool(lower, upper *bool) bool {
	if upper == nil {
		return true
	}
	return lower != nil && *lower == *upper
}
