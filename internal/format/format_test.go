package format

import (
	"testing"

	"github.com/inferlang/inferlang/internal/types"
)

func TestUnionOrderIsDeterministic(t *testing.T) {
	a := types.Union([]types.Type{types.Number(), types.StringLiteral("a")})
	b := types.Union([]types.Type{types.StringLiteral("a"), types.Number()})
	if Type(a) != Type(b) {
		t.Errorf("differently-ordered unions should format identically: %q vs %q", Type(a), Type(b))
	}
}

func TestPlainTypeUnaffected(t *testing.T) {
	if Type(types.Number()) != "number" {
		t.Errorf("Type(number) = %q, want number", Type(types.Number()))
	}
}
