package annotate

import "testing"

func TestAddDedupesByKeyLastWins(t *testing.T) {
	r := &Result{}
	r.Add(Annotation{Name: "x", Kind: KindVariable, Type: "number", Start: 10})
	r.Add(Annotation{Name: "x", Kind: KindVariable, Type: "string", Start: 10})
	if len(r.Annotations) != 1 {
		t.Fatalf("got %d annotations, want 1 (later add should replace)", len(r.Annotations))
	}
	if r.Annotations[0].Type != "string" {
		t.Errorf("Type = %q, want the later add to win", r.Annotations[0].Type)
	}
}

func TestAddKeyIncludesKind(t *testing.T) {
	r := &Result{}
	r.Add(Annotation{Name: "x", Kind: KindVariable, Type: "number", Start: 10})
	r.Add(Annotation{Name: "x", Kind: KindParameter, Type: "string", Start: 10})
	if len(r.Annotations) != 2 {
		t.Fatalf("got %d annotations, want 2 (different kind is a different key)", len(r.Annotations))
	}
}

func TestSortOrdersByStartThenName(t *testing.T) {
	r := &Result{}
	r.Add(Annotation{Name: "b", Kind: KindVariable, Start: 20})
	r.Add(Annotation{Name: "a", Kind: KindVariable, Start: 10})
	r.Add(Annotation{Name: "c", Kind: KindVariable, Start: 10})
	r.Sort()
	want := []string{"a", "c", "b"}
	for i, name := range want {
		if r.Annotations[i].Name != name {
			t.Errorf("Annotations[%d].Name = %q, want %q", i, r.Annotations[i].Name, name)
		}
	}
}
