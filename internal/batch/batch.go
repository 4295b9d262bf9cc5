// Package batch implements spec §5's "implementations may parallelize
// across files" note: each file is analyzed independently against the
// shared builtin environment, so fanning out is a pure indexed
// map/errgroup with no locking beyond the result slice itself.
package batch

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/inferlang/inferlang/internal/ast"
	"github.com/inferlang/inferlang/internal/config"
	"github.com/inferlang/inferlang/pkg/typeinfer"
)

// File is one already-parsed tree plus the filename/source pkg/typeinfer
// needs to build its result (spec §1: parsing stays the embedder's job).
type File struct {
	Filename string
	Source   string
	Program  *ast.Program
}

// AnalyzeFiles runs the flow-sensitive analyzer over every file
// concurrently and returns one AnnotationResult per input file, in
// input order. The first file to return an unrecoverable error cancels
// ctx for the rest; per-file diagnostics are not errors and are
// carried on the returned result instead.
func AnalyzeFiles(ctx context.Context, files []File) ([]*typeinfer.AnnotationResult, error) {
	return AnalyzeFilesWithConfig(ctx, files, config.DefaultConfig())
}

// AnalyzeFilesWithConfig is AnalyzeFiles with an explicit AnalyzerConfig
// applied to every file.
func AnalyzeFilesWithConfig(ctx context.Context, files []File, cfgOpts config.AnalyzerConfig) ([]*typeinfer.AnnotationResult, error) {
	results := make([]*typeinfer.AnnotationResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = typeinfer.InferWithConfig(f.Program, f.Filename, f.Source, cfgOpts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// InferFilesWithConstraints runs the biunification path over every
// file concurrently and returns one ConstraintInferenceResult per
// input file, in input order.
func InferFilesWithConstraints(ctx context.Context, files []File) ([]*typeinfer.ConstraintInferenceResult, error) {
	return InferFilesWithConstraintsConfig(ctx, files, config.DefaultConfig())
}

// InferFilesWithConstraintsConfig is InferFilesWithConstraints with an
// explicit AnalyzerConfig applied to every file.
func InferFilesWithConstraintsConfig(ctx context.Context, files []File, cfgOpts config.AnalyzerConfig) ([]*typeinfer.ConstraintInferenceResult, error) {
	results := make([]*typeinfer.ConstraintInferenceResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = typeinfer.InferWithConstraintsConfig(f.Program, f.Filename, f.Source, cfgOpts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
