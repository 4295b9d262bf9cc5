package cfg

// computeDominators runs the classic iterative dataflow algorithm
// (Cooper, Harvey, Kennedy) over reverse postorder (spec §4.2
// "dominators ... via classic iterative dataflow").
func computeDominators(g *Graph) {
	order := rpoFrom(g, g.Entry, g.succ)
	index := map[BlockID]int{}
	for i, id := range order {
		index[id] = i
	}
	idom := map[BlockID]BlockID{g.Entry: g.Entry}

	changed := true
	for changed {
		changed = false
		for _, id := range order {
			if id == g.Entry {
				continue
			}
			var newIdom BlockID
			set := false
			for _, p := range g.pred[id] {
				if _, ok := idom[p]; !ok {
					continue
				}
				if !set {
					newIdom = p
					set = true
					continue
				}
				newIdom = intersect(idom, index, newIdom, p)
			}
			if !set {
				continue
			}
			if cur, ok := idom[id]; !ok || cur != newIdom {
				idom[id] = newIdom
				changed = true
			}
		}
	}
	delete(idom, g.Entry) // entry has no dominator of its own
	g.idom = idom
}

func intersect(idom map[BlockID]BlockID, index map[BlockID]int, a, b BlockID) BlockID {
	for a != b {
		for index[a] > index[b] {
			a = idom[a]
		}
		for index[b] > index[a] {
			b = idom[b]
		}
	}
	return a
}

// computePostDominators mirrors computeDominators over the reversed
// graph, from a synthetic exit node joining every block in g.Exits.
func computePostDominators(g *Graph) {
	const synthetic BlockID = -1
	rsucc := map[BlockID][]BlockID{}
	for from, tos := range g.succ {
		for _, to := range tos {
			rsucc[to] = append(rsucc[to], from)
		}
	}
	for _, exitID := range g.Exits {
		rsucc[synthetic] = append(rsucc[synthetic], exitID)
	}

	order := rpoFrom(g, synthetic, rsucc)
	index := map[BlockID]int{}
	for i, id := range order {
		index[id] = i
	}
	ipdom := map[BlockID]BlockID{synthetic: synthetic}

	changed := true
	for changed {
		changed = false
		for _, id := range order {
			if id == synthetic {
				continue
			}
			var newIdom BlockID
			set := false
			for _, p := range rsucc[id] {
				if _, ok := ipdom[p]; !ok {
					continue
				}
				if !set {
					newIdom = p
					set = true
					continue
				}
				newIdom = intersect(ipdom, index, newIdom, p)
			}
			if !set {
				continue
			}
			if cur, ok := ipdom[id]; !ok || cur != newIdom {
				ipdom[id] = newIdom
				changed = true
			}
		}
	}
	delete(ipdom, synthetic)
	for id, d := range ipdom {
		if d == synthetic {
			delete(ipdom, id)
		}
	}
	g.ipdom = ipdom
}

// rpoFrom computes reverse postorder over an arbitrary successor map,
// starting from start (used for both the forward dominator pass and
// the reversed-graph post-dominator pass).
func rpoFrom(g *Graph, start BlockID, succ map[BlockID][]BlockID) []BlockID {
	visited := map[BlockID]bool{}
	var post []BlockID
	var visit func(BlockID)
	visit = func(id BlockID) {
		if visited[id] {
			return
		}
		visited[id] = true
		for _, s := range succ[id] {
			visit(s)
		}
		post = append(post, id)
	}
	visit(start)
	out := make([]BlockID, len(post))
	for i, id := range post {
		out[len(post)-1-i] = id
	}
	return out
}

// markBackEdges flags every edge whose target is still on the DFS
// recursion stack when the edge is traversed - the standard back-edge
// definition, independent of reducibility.
func markBackEdges(g *Graph) {
	onStack := map[BlockID]bool{}
	visited := map[BlockID]bool{}
	var visit func(BlockID)
	visit = func(id BlockID) {
		visited[id] = true
		onStack[id] = true
		for _, to := range g.succ[id] {
			e := edgeBetween(g, id, to)
			if onStack[to] {
				g.backEdge[e] = true
				continue
			}
			if !visited[to] {
				visit(to)
			}
		}
		onStack[id] = false
	}
	visit(g.Entry)
}

// edgeBetween returns the first recorded edge from→to. A pair of
// blocks can carry two edges: a throw placed directly in a try body
// adds an EdgeThrow beside the body's EdgeCatch to the same catch
// block, and the EdgeCatch, recorded first, is the one returned.
func edgeBetween(g *Graph, from, to BlockID) Edge {
	for _, e := range g.Edges {
		if e.From == from && e.To == to {
			return e
		}
	}
	return Edge{From: from, To: to}
}
