// Package annotate defines the per-binding annotation output spec
// §3.4 describes: a flat, position-ordered list of (name, kind, type)
// records a caller can zip back against the original source text to
// render inline type hints. Grounded on the teacher's
// internal/analyzer result types (AnalysisResult, Diagnostic): a
// single struct carrying both the successful output and the
// diagnostics gathered while producing it, rather than a Go error.
package annotate

import (
	"sort"

	"github.com/google/uuid"

	"github.com/inferlang/inferlang/internal/diagnostics"
)

// Kind tags what kind of binding position an Annotation describes
// (spec §3.4 "kind tag").
type Kind string

const (
	KindVariable  Kind = "variable"
	KindConst     Kind = "const"
	KindParameter Kind = "parameter"
	KindFunction  Kind = "function"
	KindClass     Kind = "class"
	KindExpression Kind = "expression"
)

// Annotation is one inferred type attached to a source position (spec
// §3.4).
type Annotation struct {
	Name     string
	Kind     Kind
	NodeKind string // original tree node kind name, spec §3.4
	Type     string
	Start    int
	End      int
	Line     int
	Column   int
}

// Result is the full output of analyzing one file (spec §3.4, §6
// "AnnotationResult").
type Result struct {
	Filename    string
	Source      string
	Annotations []Annotation
	Diagnostics []*diagnostics.DiagnosticError

	// RunID correlates this result with log/trace output when an
	// embedder analyzes many files concurrently (spec §A.5,
	// internal/batch); it carries no semantic weight on its own.
	RunID string

	byKey map[annotationKey]int
}

// NewResult builds an empty Result for filename/source, stamped with a
// fresh RunID.
func NewResult(filename, source string) *Result {
	return &Result{Filename: filename, Source: source, RunID: uuid.NewString()}
}

type annotationKey struct {
	start int
	name  string
	kind  Kind
}

// Add records ann, replacing any previous annotation at the same
// (start, name, kind) key (spec §3.4: re-running the analyzer on a
// later fixed-point round supersedes earlier, possibly stale, types
// for the same binding rather than accumulating duplicates).
func (r *Result) Add(ann Annotation) {
	r.add(ann, false)
}

// AddSkipIfExists records ann only if no annotation already occupies
// its (start, name, kind) key (spec §3.4: "skip if a more precise
// earlier entry exists, controlled per call"). Used by callers that
// run a cheap first pass before a more precise final pass and don't
// want the cheap pass's output to win a tie.
func (r *Result) AddSkipIfExists(ann Annotation) {
	r.add(ann, true)
}

func (r *Result) add(ann Annotation, skipIfExists bool) {
	if r.byKey == nil {
		r.byKey = map[annotationKey]int{}
	}
	key := annotationKey{start: ann.Start, name: ann.Name, kind: ann.Kind}
	if i, ok := r.byKey[key]; ok {
		if skipIfExists {
			return
		}
		r.Annotations[i] = ann
		return
	}
	r.byKey[key] = len(r.Annotations)
	r.Annotations = append(r.Annotations, ann)
}

// Sort orders annotations by ascending source position, breaking ties
// by name so output is deterministic (spec §3.4 "stable ordering").
func (r *Result) Sort() {
	sort.SliceStable(r.Annotations, func(i, j int) bool {
		a, b := r.Annotations[i], r.Annotations[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.Name < b.Name
	})
}
