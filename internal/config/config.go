// Package config carries the engine's tunable parameters: the kind of
// constants the teacher repo keeps in internal/config, but scoped to
// what a type-inference engine actually needs to tune (iteration
// budgets, tuple-arity thresholds, normalization switches for tests).
package config

import "gopkg.in/yaml.v3"

// IsTestMode is a test-mode switch mirroring the teacher's
// normalization flag. No package in this module reads it, so setting
// it changes no analysis result.
var IsTestMode = false

// TupleArityLimit is the maximum array literal length (with no spread)
// that is typed as a fixed tuple rather than a plain array (spec §4.3.7).
const TupleArityLimit = 10

const (
	// DefaultIterationBudget bounds the fixed-point iteration count of
	// the iterative analyzer (spec §4.3.2, §5).
	DefaultIterationBudget = 1000

	// DefaultUnifyVisitLimit bounds the visited-pair set growth during
	// biunification before it is treated as non-terminating (spec §5,
	// §9 "Cyclic graphs").
	DefaultUnifyVisitLimit = 10000
)

// AnalyzerConfig holds the tunables an embedding program may want to
// override. It is decoded from an in-memory document (never read from
// disk by this package — file I/O remains the embedder's concern per
// spec.md's Non-goals).
type AnalyzerConfig struct {
	IterationBudget  int  `yaml:"iterationBudget"`
	UnifyVisitLimit  int  `yaml:"unifyVisitLimit"`
	AnnotateExprs    bool `yaml:"annotateExpressions"`
	StrictArgCounts  bool `yaml:"strictArgumentCounts"`
}

// DefaultConfig returns the engine's out-of-the-box tunables.
func DefaultConfig() AnalyzerConfig {
	return AnalyzerConfig{
		IterationBudget: DefaultIterationBudget,
		UnifyVisitLimit: DefaultUnifyVisitLimit,
		AnnotateExprs:   true,
		StrictArgCounts: false,
	}
}

// LoadConfig decodes an AnalyzerConfig from an already-loaded YAML
// document. Missing fields fall back to DefaultConfig's values.
func LoadConfig(data []byte) (AnalyzerConfig, error) {
	cfg := DefaultConfig()
	if len(data) == 0 {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AnalyzerConfig{}, err
	}
	if cfg.IterationBudget <= 0 {
		cfg.IterationBudget = DefaultIterationBudget
	}
	if cfg.UnifyVisitLimit <= 0 {
		cfg.UnifyVisitLimit = DefaultUnifyVisitLimit
	}
	return cfg, nil
}
