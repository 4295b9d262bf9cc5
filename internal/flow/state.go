// Package flow implements the flow-sensitive iterative analyzer of
// spec §4.3: a fixed-point walk over a cfg.Graph that threads an
// env.Environment through each basic block, joining at merge points
// and widening at loop headers. Grounded on the teacher's
// internal/analyzer/inference_control.go (inferIfExpression): the
// same guard-narrowing idea (a typeof-style condition narrows the
// consequent's environment and subtracts from the union in the
// alternate) reapplied to a CFG instead of direct AST recursion.
package flow

import (
	"github.com/inferlang/inferlang/internal/annotate"
	"github.com/inferlang/inferlang/internal/ast"
	"github.com/inferlang/inferlang/internal/cfg"
	"github.com/inferlang/inferlang/internal/config"
	"github.com/inferlang/inferlang/internal/diagnostics"
	"github.com/inferlang/inferlang/internal/env"
	"github.com/inferlang/inferlang/internal/format"
	"github.com/inferlang/inferlang/internal/types"
)

// TypeState is the per-block abstract state spec §4.3.1 requires: the
// environment at block exit (after the block's statements and
// terminator have been processed), a cache of expression types computed
// while processing the block, and whether the block is reachable at
// all (unreachable blocks are skipped rather than analyzed - spec
// §4.3.1 "dead code is not re-analyzed").
type TypeState struct {
	Env         *env.Environment
	ExprTypes   map[ast.Expression]types.Type
	Reachable   bool
}

func newState(e *env.Environment) *TypeState {
	return &TypeState{Env: e, ExprTypes: map[ast.Expression]types.Type{}, Reachable: true}
}

// Result is what Analyze returns for one function/program body.
type Result struct {
	Graph       *cfg.Graph
	BlockStates map[cfg.BlockID]*TypeState
	ExprTypes   map[ast.Expression]types.Type
	Diagnostics []*diagnostics.DiagnosticError
}

// Analyzer threads configuration and the shared builtin environment
// through one Analyze call. CallSites, MergedCallSites, and
// Annotations are optional hooks the per-file orchestration in
// program.go uses to implement spec §4.3.5's two-pass call-site
// aggregation and spec §3.4's annotation output; a bare Analyzer
// built directly (as the tests in this package do) leaves them nil
// and behaves exactly as a single first-pass analysis always has.
type Analyzer struct {
	Config   config.AnalyzerConfig
	Builtins *env.Environment

	// CallSites, when non-nil, accumulates each named function's
	// observed call-site argument types (spec §4.3.5).
	CallSites map[string][][]types.Type

	// MergedCallSites, when non-nil, supplies the per-position
	// argument-type union a named function's parameters should be
	// inferred with instead of Unknown() (spec §4.3.5 second pass).
	MergedCallSites map[string][]types.Type

	// Annotations, when non-nil, receives one annotate.Annotation per
	// binding position as the analysis discovers it (spec §3.4).
	Annotations *annotate.Result

	// Diagnostics accumulates the non-fatal errors transfer raises
	// along the way (spec §7: cannot-assign-to-const, not-callable,
	// not-constructable). Deduplicated by (code, position) so that
	// re-visiting the same statement across fixed-point rounds doesn't
	// pile up repeat diagnostics for the one real error.
	Diagnostics []*diagnostics.DiagnosticError
	diagSeen    map[diagKey]bool
}

type diagKey struct {
	code diagnostics.ErrorCode
	pos  diagnostics.Position
}

// addDiagnostic records one diagnostic, skipping it if an identical
// (code, position) pair was already recorded (spec §7 "the analyzer
// never aborts on a single error" - but re-running transfer across
// fixed-point rounds must not turn one real error into many).
func (a *Analyzer) addDiagnostic(code diagnostics.ErrorCode, pos diagnostics.Position, format string, args ...interface{}) {
	key := diagKey{code: code, pos: pos}
	if a.diagSeen == nil {
		a.diagSeen = map[diagKey]bool{}
	}
	if a.diagSeen[key] {
		return
	}
	a.diagSeen[key] = true
	a.Diagnostics = append(a.Diagnostics, diagnostics.New(code, pos, format, args...))
}

func NewAnalyzer(cfgOpts config.AnalyzerConfig, builtins *env.Environment) *Analyzer {
	return &Analyzer{Config: cfgOpts, Builtins: builtins}
}

// emitAnnotation records one binding's inferred type, formatted the
// way spec §6's formatType contract requires, if an Annotations sink
// is attached.
func (a *Analyzer) emitAnnotation(id *ast.Identifier, kind annotate.Kind, t types.Type) {
	if a.Annotations == nil || id == nil {
		return
	}
	span := id.Span()
	a.Annotations.Add(annotate.Annotation{
		Name:     id.Value,
		Kind:     kind,
		NodeKind: id.Kind(),
		Type:     format.Type(t),
		Start:    span.Start,
		End:      span.End,
		Line:     span.StartPos.Line,
		Column:   span.StartPos.Column,
	})
}
