package builtins

import (
	"testing"

	"github.com/inferlang/inferlang/internal/types"
)

func TestGlobalIsIdempotent(t *testing.T) {
	a := Global()
	b := Global()
	if a != b {
		t.Errorf("Global() should return the same environment instance across calls")
	}
}

func TestConsoleLogIsBound(t *testing.T) {
	g := Global()
	console, ok := g.Lookup("console")
	if !ok {
		t.Fatalf("console not bound")
	}
	if console.Type.String() == "" {
		t.Errorf("console type formats to empty string")
	}
	obj, ok := console.Type.(types.ObjectType)
	if !ok {
		t.Fatalf("console should be an object type, got %T", console.Type)
	}
	if _, ok := obj.Get("log"); !ok {
		t.Errorf("console.log not bound")
	}
}

func TestUndefinedAndNaNBound(t *testing.T) {
	g := Global()
	for _, name := range []string{"undefined", "NaN", "Infinity", "Math", "JSON", "Object", "Array", "String", "Number", "Boolean", "Date", "print"} {
		if _, ok := g.Lookup(name); !ok {
			t.Errorf("builtin %q not bound", name)
		}
	}
}
