// Package format implements the pure, stateless formatType contract
// spec §6 exposes to callers: turning an internal types.Type into the
// stable display string annotations and diagnostics show. It never
// mutates its input, mirroring the teacher's typesystem.Type.String() methods but adding
// deterministic member ordering, which Type.String() alone does not
// guarantee for unions/intersections built up via different code paths.
package format

import (
	"sort"

	"github.com/inferlang/inferlang/internal/types"
)

// Type renders t the way spec §6 requires: member order within a
// top-level union or intersection (and one nested directly inside
// another) is sorted lexicographically by rendered text, regardless of
// the order its members were discovered in. Unions and intersections
// nested inside arrays, objects, functions or promises are rendered by
// their String method, in member order, without this sorting.
func Type(t types.Type) string {
	if t == nil {
		return "undefined"
	}
	switch v := t.(type) {
	case types.UnionType:
		return join(v.Members, " | ")
	case types.IntersectionType:
		return join(v.Members, " & ")
	default:
		return t.String()
	}
}

func join(members []types.Type, sep string) string {
	parts := make([]string, len(members))
	for i, m := range members {
		parts[i] = Type(m)
	}
	sort.Strings(parts)
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += sep
		}
		out += p
	}
	return out
}
