package solve

import (
	"testing"

	"github.com/inferlang/inferlang/internal/config"
	"github.com/inferlang/inferlang/internal/constraints"
	"github.com/inferlang/inferlang/internal/types"
)

func TestSolveBindsLowerBoundToVariable(t *testing.T) {
	v := types.TypeVar{ID: 1, Name: "x"}
	bisub, errs := Solve(config.DefaultConfig(), []constraints.Flow{
		{Lower: types.NumberLiteral(1), Upper: v},
	})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	got := Reconstruct(v, bisub)
	if !types.Equal(got, types.NumberLiteral(1)) {
		t.Errorf("want 1, got %s", got.String())
	}
}

func TestSolveJoinsMultipleLowerBounds(t *testing.T) {
	v := types.TypeVar{ID: 1, Name: "x"}
	bisub, errs := Solve(config.DefaultConfig(), []constraints.Flow{
		{Lower: types.Number(), Upper: v},
		{Lower: types.String(), Upper: v},
	})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	got := Reconstruct(v, bisub)
	u, ok := got.(types.UnionType)
	if !ok || len(u.Members) != 2 {
		t.Errorf("want a 2-member union, got %s", got.String())
	}
}

func TestUnresolvedVariableReconstructsAsUnknown(t *testing.T) {
	v := types.TypeVar{ID: 1, Name: "x"}
	bisub, _ := Solve(config.DefaultConfig(), nil)
	got := Reconstruct(v, bisub)
	if _, ok := got.(types.UnknownType); !ok {
		t.Errorf("unresolved variable should reconstruct to unknown, got %s", got.String())
	}
}

func TestIncompatibleConcreteTypesRaiseDiagnostic(t *testing.T) {
	_, errs := Solve(config.DefaultConfig(), []constraints.Flow{
		{Lower: types.Number(), Upper: types.String()},
	})
	if len(errs) != 1 {
		t.Fatalf("want 1 diagnostic, got %d", len(errs))
	}
	if errs[0].Code != "incompatible-types" {
		t.Errorf("want incompatible-types, got %s", errs[0].Code)
	}
}

func TestOccursCheckProducesRecursiveType(t *testing.T) {
	v := types.TypeVar{ID: 1, Name: "x"}
	cyclic := types.ArrayType{Element: v}
	s := NewSolver(config.DefaultConfig())
	s.bindUpperBound(v, cyclic)
	bound := s.bisub.Negative[v.ID]
	if _, ok := bound.(types.RecursiveType); !ok {
		t.Errorf("binding a variable to a type containing itself should produce a recursive type, got %T", bound)
	}
}

func TestObjectFlowAllowsExtraFieldsOnLowerSide(t *testing.T) {
	lower := types.ObjectType{Fields: []types.Field{
		{Name: "a", Type: types.Number()},
		{Name: "b", Type: types.String()},
	}}
	upper := types.ObjectType{Fields: []types.Field{
		{Name: "a", Type: types.Number()},
	}}
	_, errs := Solve(config.DefaultConfig(), []constraints.Flow{{Lower: lower, Upper: upper}})
	if len(errs) != 0 {
		t.Errorf("width subtyping should allow extra fields on the lower side, got %v", errs)
	}
}

func TestObjectFlowRequiresMissingPropertyDiagnostic(t *testing.T) {
	lower := types.ObjectType{Fields: []types.Field{{Name: "a", Type: types.Number()}}}
	upper := types.ObjectType{Fields: []types.Field{{Name: "b", Type: types.Number()}}}
	_, errs := Solve(config.DefaultConfig(), []constraints.Flow{{Lower: lower, Upper: upper}})
	if len(errs) != 1 || errs[0].Code != "missing-property" {
		t.Errorf("want 1 missing-property diagnostic, got %v", errs)
	}
}

func TestFunctionFlowIsContravariantInParameters(t *testing.T) {
	// lower: (string) => number    upper requires: (number) => number
	// lower's param must accept anything upper's caller might supply,
	// so a function whose param is narrower (string-only) than what
	// the call site needs (number) should fail.
	lower := types.FunctionType{Params: []types.Param{{Type: types.String()}}, Return: types.Number()}
	upper := types.FunctionType{Params: []types.Param{{Type: types.Number()}}, Return: types.Number()}
	_, errs := Solve(config.DefaultConfig(), []constraints.Flow{{Lower: lower, Upper: upper}})
	if len(errs) == 0 {
		t.Errorf("want an error: string-only param can't serve a number argument")
	}
}

func TestAnyShortCircuitsBiunification(t *testing.T) {
	_, errs := Solve(config.DefaultConfig(), []constraints.Flow{
		{Lower: types.Any("x"), Upper: types.String()},
		{Lower: types.Number(), Upper: types.Any("y")},
	})
	if len(errs) != 0 {
		t.Errorf("any should absorb both sides without error, got %v", errs)
	}
}

func TestSubtypeWidthRules(t *testing.T) {
	wide := types.ObjectType{Fields: []types.Field{{Name: "a", Type: types.Number()}, {Name: "b", Type: types.String()}}}
	narrow := types.ObjectType{Fields: []types.Field{{Name: "a", Type: types.Number()}}}
	if !Subtype(wide, narrow) {
		t.Errorf("a wider object should be a subtype of a narrower required shape")
	}
	if Subtype(narrow, wide) {
		t.Errorf("a narrower object should not satisfy a wider requirement")
	}
}

func TestReconstructDedupesFunctionUnionBySignature(t *testing.T) {
	fn1 := types.FunctionType{Params: []types.Param{{Type: types.Number()}}, Return: types.NumberLiteral(1)}
	fn2 := types.FunctionType{Params: []types.Param{{Type: types.Number()}}, Return: types.Number()}
	u := types.UnionType{Members: []types.Type{fn1, fn2}}
	got := simplify(u)
	uu, ok := got.(types.FunctionType)
	if !ok {
		t.Fatalf("want the two same-signature function members merged into one, got %s", got.String())
	}
	if !types.Equal(uu.Return, types.NumberLiteral(1)) {
		t.Errorf("want the more specific return type kept, got %s", uu.Return.String())
	}
}
