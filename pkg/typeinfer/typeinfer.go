// Package typeinfer exposes the engine's two pure entry points (spec
// §6): Infer runs the flow-sensitive iterative analyzer, and
// InferWithConstraints runs the biunification path. Both take an
// already-parsed tree - parsing is an explicit Non-goal (spec §1) left
// to the embedder.
package typeinfer

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/inferlang/inferlang/internal/annotate"
	"github.com/inferlang/inferlang/internal/ast"
	"github.com/inferlang/inferlang/internal/builtins"
	"github.com/inferlang/inferlang/internal/config"
	"github.com/inferlang/inferlang/internal/constraints"
	"github.com/inferlang/inferlang/internal/diagnostics"
	"github.com/inferlang/inferlang/internal/flow"
	"github.com/inferlang/inferlang/internal/format"
	"github.com/inferlang/inferlang/internal/solve"
)

// AnnotationResult is the flow-sensitive path's output (spec §6); it
// is exactly internal/annotate.Result, re-exported under the name
// spec.md uses so callers of this package don't need to import
// internal/annotate directly.
type AnnotationResult = annotate.Result

// Stats carries ConstraintInferenceResult's "statistics" field (spec
// §6: "constraint count, type-variable count, solve time").
type Stats struct {
	ConstraintCount   int
	TypeVariableCount int
	SolveDuration     time.Duration
}

// ConstraintInferenceResult is the biunification path's output (spec
// §6): everything AnnotationResult carries, plus the final constraint
// set and solve outcome.
type ConstraintInferenceResult struct {
	Filename    string
	Source      string
	RunID       string
	Annotations []annotate.Annotation
	Diagnostics []*diagnostics.DiagnosticError

	Constraints []constraints.Flow
	Solution    *solve.Bisubstitution
	SolveErrors []*diagnostics.DiagnosticError

	Stats Stats
}

// Infer runs the flow-sensitive iterative analyzer over prog (spec
// §4.3) using the default analyzer configuration and returns its
// annotation output.
func Infer(prog *ast.Program, filename, source string) *AnnotationResult {
	return InferWithConfig(prog, filename, source, config.DefaultConfig())
}

// InferWithConfig is Infer with an explicit AnalyzerConfig, for
// embedders that decode their own tuning from yaml via
// config.LoadConfig (spec §A.2).
func InferWithConfig(prog *ast.Program, filename, source string, cfgOpts config.AnalyzerConfig) *AnnotationResult {
	return flow.AnalyzeProgram(prog, filename, source, cfgOpts)
}

// InferWithConstraints runs the biunification path (spec §4.4): it
// generates constraints over prog's top-level statements, solves them
// to a Bisubstitution, then reconstructs every pending annotation
// (spec §3.4) collected during generation.
func InferWithConstraints(prog *ast.Program, filename, source string) *ConstraintInferenceResult {
	return InferWithConstraintsConfig(prog, filename, source, config.DefaultConfig())
}

// InferWithConstraintsConfig is InferWithConstraints with an explicit
// AnalyzerConfig.
func InferWithConstraintsConfig(prog *ast.Program, filename, source string, cfgOpts config.AnalyzerConfig) *ConstraintInferenceResult {
	g := constraints.NewGenerator()
	e := constraints.NewConstraintEnvFromBuiltins(builtins.Global())
	g.GenerateProgram(prog.Body, e)

	start := time.Now()
	bisub, solveErrs := solve.Solve(cfgOpts, g.Constraints)
	elapsed := time.Since(start)

	out := &ConstraintInferenceResult{
		Filename:    filename,
		Source:      source,
		RunID:       uuid.NewString(),
		Constraints: g.Constraints,
		Solution:    bisub,
		SolveErrors: solveErrs,
		Diagnostics: solveErrs,
		Stats: Stats{
			ConstraintCount:   len(g.Constraints),
			TypeVariableCount: g.VarCount(),
			SolveDuration:     elapsed,
		},
	}

	for _, p := range g.Pending {
		ann := p.Ann
		ann.Type = format.Type(solve.Reconstruct(p.Node, bisub))
		out.Annotations = append(out.Annotations, ann)
	}
	sort.SliceStable(out.Annotations, func(i, j int) bool {
		a, b := out.Annotations[i], out.Annotations[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.Name < b.Name
	})
	return out
}
