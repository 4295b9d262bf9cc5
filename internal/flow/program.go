package flow

import (
	"github.com/inferlang/inferlang/internal/annotate"
	"github.com/inferlang/inferlang/internal/ast"
	"github.com/inferlang/inferlang/internal/builtins"
	"github.com/inferlang/inferlang/internal/config"
	"github.com/inferlang/inferlang/internal/types"
)

// AnalyzeProgram runs the flow-sensitive analyzer over an entire
// source file's top-level statements and returns its annotation
// output (spec §3.4, §4.3.5 "call-site aggregation"). Top-level
// function declarations are analyzed in two passes: a scout pass
// collects every call site's argument types with parameters left at
// Unknown(), then a final pass re-infers each function's signature
// with its parameters overridden by the per-position union of what
// the scout pass observed, before emitting the annotations a caller
// actually sees.
func AnalyzeProgram(prog *ast.Program, filename, source string, cfgOpts config.AnalyzerConfig) *annotate.Result {
	globals := builtins.Global()

	scout := &Analyzer{Config: cfgOpts, Builtins: globals, CallSites: map[string][][]types.Type{}}
	scout.Analyze(prog.Body, globals)

	merged := mergeCallSites(scout.CallSites)

	final := &Analyzer{
		Config:          cfgOpts,
		Builtins:        globals,
		MergedCallSites: merged,
		Annotations:     annotate.NewResult(filename, source),
	}
	finalResult := final.Analyze(prog.Body, globals)
	final.Annotations.Diagnostics = append(final.Annotations.Diagnostics, finalResult.Diagnostics...)
	final.Annotations.Sort()
	return final.Annotations
}

// mergeCallSites reduces every function's observed call-site argument
// lists into a single per-position type (spec §4.3.5): each position
// is first widened (so a single literal argument doesn't freeze the
// parameter to that literal) and then joined pairwise across call
// sites, so a function called with both a string and a number literal
// infers a `string | number` parameter rather than a union of the two
// literals.
func mergeCallSites(sites map[string][][]types.Type) map[string][]types.Type {
	merged := make(map[string][]types.Type, len(sites))
	for name, calls := range sites {
		var widest []types.Type
		for _, args := range calls {
			for i, arg := range args {
				if arg == nil {
					continue
				}
				w := types.Widen(arg)
				for len(widest) <= i {
					widest = append(widest, nil)
				}
				widest[i] = types.Join(widest[i], w)
			}
		}
		merged[name] = widest
	}
	return merged
}
