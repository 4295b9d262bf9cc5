package flow

import (
	"github.com/inferlang/inferlang/internal/ast"
	"github.com/inferlang/inferlang/internal/cfg"
	"github.com/inferlang/inferlang/internal/diagnostics"
	"github.com/inferlang/inferlang/internal/env"
	"github.com/inferlang/inferlang/internal/types"
)

// Analyze runs the fixed-point flow analysis over body's CFG, starting
// from initialEnv at the entry block (spec §4.3.1). It iterates block
// entry environments until no block's environment changes, widening
// loop-header environments between rounds so the join lattice has
// finite height (spec §4.3.4), and bails out with an
// ErrIterationBudget diagnostic past Config.IterationBudget rounds
// (spec §4.3.1 "non-termination guard").
func (a *Analyzer) Analyze(body []ast.Statement, initialEnv *env.Environment) *Result {
	g := cfg.Build(body)
	return a.analyzeGraph(g, initialEnv)
}

func (a *Analyzer) analyzeGraph(g *cfg.Graph, initialEnv *env.Environment) *Result {
	res := &Result{
		Graph:       g,
		BlockStates: map[cfg.BlockID]*TypeState{},
		ExprTypes:   map[ast.Expression]types.Type{},
	}

	loopHeaders := map[cfg.BlockID]bool{}
	for _, e := range g.Edges {
		if g.IsBackEdge(e) {
			loopHeaders[e.To] = true
		}
	}

	for id := range g.Blocks {
		res.BlockStates[id] = &TypeState{Env: initialEnv, ExprTypes: map[ast.Expression]types.Type{}}
	}
	res.BlockStates[g.Entry].Env = initialEnv
	res.BlockStates[g.Entry].Reachable = true

	order := g.RPO()
	budget := a.Config.IterationBudget
	if budget <= 0 {
		budget = 1000
	}

	for round := 0; round < budget; round++ {
		changed := false
		for _, id := range order {
			blk := g.Blocks[id]
			entry := a.computeEntryEnv(g, id, initialEnv, res, loopHeaders)
			st := res.BlockStates[id]
			if !st.Reachable && id != g.Entry {
				if entry == nil {
					continue
				}
				st.Reachable = true
			}
			if entry == nil {
				continue
			}
			exitEnv := a.transferBlock(blk, entry, res)
			if st.Env == nil || !env.Equal(st.Env, exitEnv) {
				st.Env = exitEnv
				changed = true
			}
		}
		if !changed {
			break
		}
		if round == budget-1 {
			res.Diagnostics = append(res.Diagnostics, diagnostics.New(
				diagnostics.ErrIterationBudget, diagnostics.Position{}, "flow analysis did not converge within %d iterations", budget))
		}
	}

	for id, st := range res.BlockStates {
		_ = id
		for expr, t := range st.ExprTypes {
			res.ExprTypes[expr] = t
		}
	}
	res.Diagnostics = append(res.Diagnostics, a.Diagnostics...)
	return res
}

// computeEntryEnv joins the exit environments of id's already-analyzed
// predecessors (spec §4.3.4 "Join at control-flow merges"), widening
// the result if id is a loop header (spec §4.3.4 "Widening at loop
// headers"). Returns nil if id has no reachable predecessor yet (and
// isn't the entry block), meaning it cannot be analyzed this round.
func (a *Analyzer) computeEntryEnv(g *cfg.Graph, id cfg.BlockID, initialEnv *env.Environment, res *Result, loopHeaders map[cfg.BlockID]bool) *env.Environment {
	if id == g.Entry {
		return initialEnv
	}
	var incoming []*env.Environment
	for _, p := range g.Predecessors(id) {
		pst := res.BlockStates[p]
		if pst == nil || pst.Env == nil || !pst.Reachable {
			continue
		}
		incoming = append(incoming, narrowIncoming(g, p, id, pst.Env))
	}
	if len(incoming) == 0 {
		return nil
	}
	joined := env.Join(initialEnv, incoming)
	if loopHeaders[id] {
		joined = env.Widen(joined)
	}
	return joined
}

// narrowIncoming applies condition-based narrowing to a predecessor's
// exit environment for the specific edge it took into id (spec
// §4.3.3/§4.3.4: narrowing only holds along the branch that proved it).
func narrowIncoming(g *cfg.Graph, from, to cfg.BlockID, e *env.Environment) *env.Environment {
	for _, edge := range g.Edges {
		if edge.From != from || edge.To != to {
			continue
		}
		if edge.Kind != cfg.EdgeBranchTrue && edge.Kind != cfg.EdgeBranchFalse {
			continue
		}
		isTrue := edge.Kind == cfg.EdgeBranchTrue
		if name, target, positive, ok := typeofGuard(edge.Condition); ok {
			return narrowForEdge(e, name, target, positive == isTrue)
		}
		if name, ok := nullishGuard(edge.Condition); ok && isTrue {
			return removeNullish(e, name)
		}
		if name, ok := truthyGuard(edge.Condition); ok && isTrue {
			return removeNullish(e, name)
		}
		return e
	}
	return e
}
