// Package env implements the persistent (copy-on-write) type
// environment of spec §3.2. Grounded on the teacher's
// internal/symbols.SymbolTable (symbol_table_advanced.go,
// symbol_table_core.go): a local map plus an outer-scope pointer.
// The flow-sensitive analyzer (spec §4.3) needs cheap branch-local
// copies, so unlike the teacher's single mutable table, Environment
// is immutable from the caller's point of view: Set returns a new
// Environment sharing the parent chain and copying only its own
// frame's map.
package env

import (
	"github.com/inferlang/inferlang/internal/ast"
	"github.com/inferlang/inferlang/internal/types"
)

// ScopeKind mirrors the teacher's ScopeType (spec §3.2 "scope kind").
type ScopeKind int

const (
	ScopeGlobal ScopeKind = iota
	ScopeFunction
	ScopeBlock
)

// Binding is one variable's record within a scope: its static type
// plus the flow metadata spec §3.2/§4.3.2 requires to special-case
// narrowing and TDZ-like definite-assignment tracking.
type Binding struct {
	Name              string
	Type              types.Type
	DeclKind          string // "const", "let", "var"
	DeclNode          ast.Node
	DefinitelyAssigned bool
	PossiblyMutated    bool
}

// Environment is one persistent frame in the lexical scope chain.
// Frames are never mutated in place once published; Set/Declare
// return a new frame.
type Environment struct {
	bindings map[string]Binding
	parent   *Environment
	kind     ScopeKind
}

// NewGlobal creates the root environment (no parent).
func NewGlobal() *Environment {
	return &Environment{bindings: map[string]Binding{}, kind: ScopeGlobal}
}

// Child opens a nested scope of the given kind, sharing this
// environment as parent.
func (e *Environment) Child(kind ScopeKind) *Environment {
	return &Environment{bindings: map[string]Binding{}, parent: e, kind: kind}
}

// Kind reports this frame's scope kind.
func (e *Environment) Kind() ScopeKind { return e.kind }

// Lookup walks the scope chain outward and returns the nearest
// binding for name.
func (e *Environment) Lookup(name string) (Binding, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if b, ok := cur.bindings[name]; ok {
			return b, true
		}
	}
	return Binding{}, false
}

// LookupLocal reports a binding only if declared directly in this
// frame, without walking outward (spec §4.3.3's "declaration
// shadows the enclosing binding in this block only").
func (e *Environment) LookupLocal(name string) (Binding, bool) {
	b, ok := e.bindings[name]
	return b, ok
}

// All walks the whole chain outward and returns every visible
// binding, innermost frame winning on name collisions. Used to seed a
// constraint-path ConstraintEnv from the same builtin environment the
// iterative analyzer uses (spec §4.5, internal/constraints), since
// the two paths otherwise have no shared representation for scopes.
func (e *Environment) All() map[string]Binding {
	out := map[string]Binding{}
	frames := []*Environment{}
	for cur := e; cur != nil; cur = cur.parent {
		frames = append(frames, cur)
	}
	for i := len(frames) - 1; i >= 0; i-- {
		for name, b := range frames[i].bindings {
			out[name] = b
		}
	}
	return out
}

// Declare returns a new environment identical to e except that name
// is now bound in THIS frame (copy-on-write: other frames sharing e
// as parent are unaffected).
func (e *Environment) Declare(name string, b Binding) *Environment {
	next := e.cloneFrame()
	b.Name = name
	next.bindings[name] = b
	return next
}

// Set narrows/widens an existing binding's Type, in whichever frame
// of the chain currently owns it (spec §4.3.3 "assignment narrows the
// owning scope's binding, not a fresh shadow"). If name isn't bound
// anywhere, Set behaves like Declare against the receiver's own frame.
func (e *Environment) Set(name string, t types.Type) *Environment {
	owner := e
	for cur := e; cur != nil; cur = cur.parent {
		if _, ok := cur.bindings[name]; ok {
			owner = cur
			break
		}
	}
	if owner == e {
		b, ok := e.bindings[name]
		if !ok {
			return e.Declare(name, Binding{Type: t, DefinitelyAssigned: true})
		}
		b.Type = t
		b.PossiblyMutated = true
		b.DefinitelyAssigned = true
		return e.Declare(name, b)
	}
	// The binding lives in an ancestor frame: rebuild the chain from
	// that frame down to e, copying each intervening frame so sibling
	// branches that share the unmodified ancestor stay untouched.
	newOwner := owner.cloneFrame()
	b := newOwner.bindings[name]
	b.Type = t
	b.PossiblyMutated = true
	b.DefinitelyAssigned = true
	newOwner.bindings[name] = b
	return e.rebase(owner, newOwner)
}

// cloneFrame copies this frame's own bindings map but keeps the same
// parent pointer (and thus shares ancestor frames by reference).
func (e *Environment) cloneFrame() *Environment {
	cp := make(map[string]Binding, len(e.bindings))
	for k, v := range e.bindings {
		cp[k] = v
	}
	return &Environment{bindings: cp, parent: e.parent, kind: e.kind}
}

// rebase walks the chain from e up to (and including) old, replacing
// old with replacement, and returns a freshly copied chain down to a
// new leaf equivalent to e.
func (e *Environment) rebase(old, replacement *Environment) *Environment {
	if e == old {
		return replacement
	}
	newParent := e.parent.rebase(old, replacement)
	cp := e.cloneFrame()
	cp.parent = newParent
	return cp
}

// Names returns the names bound directly in this frame, for
// diagnostics/formatting only; iteration order is unspecified.
func (e *Environment) Names() []string {
	out := make([]string, 0, len(e.bindings))
	for n := range e.bindings {
		out = append(out, n)
	}
	return out
}
