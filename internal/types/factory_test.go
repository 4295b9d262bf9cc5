package types

import "testing"

func TestUnionCanonicalization(t *testing.T) {
	tests := []struct {
		name    string
		members []Type
		want    string
	}{
		{
			name:    "single member passthrough",
			members: []Type{Number()},
			want:    "number",
		},
		{
			name:    "never is absorbed",
			members: []Type{Number(), Never()},
			want:    "number",
		},
		{
			name:    "any absorbs everything",
			members: []Type{Number(), Any("")},
			want:    "any",
		},
		{
			name:    "nested unions flatten",
			members: []Type{Union([]Type{Number(), StringLiteral("a")}), Boolean()},
			want:    "number | \"a\" | boolean",
		},
		{
			name:    "duplicates dedupe",
			members: []Type{Number(), Number(), StringLiteral("x")},
			want:    "number | \"x\"",
		},
		{
			name:    "all never collapses to never",
			members: []Type{Never(), Never()},
			want:    "never",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Union(tt.members).String()
			if got != tt.want {
				t.Errorf("Union(%v) = %q, want %q", tt.members, got, tt.want)
			}
		})
	}
}

func TestWiden(t *testing.T) {
	tests := []struct {
		name string
		in   Type
		want string
	}{
		{"number literal widens", NumberLiteral(3), "number"},
		{"string literal widens", StringLiteral("a"), "string"},
		{"plain number unchanged", Number(), "number"},
		{
			"tuple widens to array",
			Array(nil, []Type{NumberLiteral(1), StringLiteral("a")}),
			"Array<1 | \"a\">",
		},
		{
			"union widens pointwise",
			Union([]Type{NumberLiteral(1), NumberLiteral(2)}),
			"number",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Widen(tt.in).String()
			if got != tt.want {
				t.Errorf("Widen(%s) = %q, want %q", tt.in.String(), got, tt.want)
			}
		})
	}
}

func TestWidenIdempotent(t *testing.T) {
	in := Union([]Type{NumberLiteral(1), StringLiteral("a")})
	once := Widen(in)
	twice := Widen(once)
	if !Equal(once, twice) {
		t.Errorf("Widen not idempotent: once=%s twice=%s", once, twice)
	}
}

func TestAnyInterning(t *testing.T) {
	a := Any("undefined-variable")
	b := Any("undefined-variable")
	if !Equal(a, b) {
		t.Errorf("Any(reason) not stable across calls")
	}
	c := Any("other-reason")
	if Equal(a, c) {
		t.Errorf("Any with different reasons compared equal")
	}
}

func TestObjectEquality(t *testing.T) {
	a := Object([]Field{{Name: "x", Type: Number()}, {Name: "y", Type: StringType{}}})
	b := Object([]Field{{Name: "y", Type: StringType{}}, {Name: "x", Type: Number()}})
	if !Equal(a, b) {
		t.Errorf("objects with same fields in different order should be equal")
	}
}

func TestIntersectionAbsorbsUnknown(t *testing.T) {
	got := Intersection([]Type{Number(), Unknown()})
	if got.String() != "number" {
		t.Errorf("Intersection with unknown = %s, want number", got.String())
	}
}
