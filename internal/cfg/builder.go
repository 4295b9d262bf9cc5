package cfg

import (
	"github.com/inferlang/inferlang/internal/ast"
	"github.com/google/uuid"
)

// loopCtx tracks the break/continue targets of one enclosing
// loop/switch, plus the label it can additionally be reached under
// (spec §4.2's per-construct table: "labeled loops redirect break 'label'
// / continue 'label' to the matching enclosing construct").
type loopCtx struct {
	label        string
	breakTarget  BlockID
	continueTarget BlockID
}

// Builder constructs one Graph from a statement list (a function body
// or the top-level program body).
type Builder struct {
	g       *Graph
	nextID  BlockID
	current *BasicBlock
	loops   []loopCtx

	// tryCatches is the stack of enclosing try frames with a handler,
	// innermost last, so a throw (explicit or from a nested throw
	// site) routes to the nearest catch (spec §3.3).
	tryCatches []BlockID
}

// Build constructs the CFG for a flat statement list, such as a
// function body or the program's top-level statements.
func Build(body []ast.Statement) *Graph {
	b := &Builder{
		g: &Graph{
			Blocks:   map[BlockID]*BasicBlock{},
			succ:     map[BlockID][]BlockID{},
			pred:     map[BlockID][]BlockID{},
			backEdge: map[Edge]bool{},
			DebugID:  uuid.NewString(),
		},
	}
	entry := b.newBlock()
	b.g.Entry = entry.ID
	b.current = entry
	b.buildStatements(body)
	if b.current != nil {
		b.g.Exits = append(b.g.Exits, b.current.ID)
	}
	computeDominators(b.g)
	computePostDominators(b.g)
	markBackEdges(b.g)
	return b.g
}

func (b *Builder) newBlock() *BasicBlock {
	id := b.nextID
	b.nextID++
	blk := &BasicBlock{ID: id}
	b.g.Blocks[id] = blk
	return blk
}

func (b *Builder) link(from, to BlockID, kind EdgeKind, cond ast.Expression) {
	e := Edge{From: from, To: to, Kind: kind, Condition: cond}
	b.g.Edges = append(b.g.Edges, e)
	b.g.succ[from] = append(b.g.succ[from], to)
	b.g.pred[to] = append(b.g.pred[to], from)
}

// buildStatements appends stmts to the current block, opening new
// blocks as control-flow constructs require. If control falls off the
// end unconditionally (return/throw/break/continue), b.current becomes
// nil and later statements in the same list are unreachable (spec
// §4.3.1 "dead code after an unconditional exit").
func (b *Builder) buildStatements(stmts []ast.Statement) {
	for _, s := range stmts {
		if b.current == nil {
			return // unreachable
		}
		b.buildStatement(s)
	}
}

func (b *Builder) buildStatement(s ast.Statement) {
	switch n := s.(type) {
	case *ast.BlockStatement:
		b.buildStatements(n.Body)

	case *ast.IfStatement:
		b.current.Terminator = Terminator{Kind: TermBranch, Condition: n.Test}
		ifID := b.current.ID
		join := b.newBlock()

		consBlk := b.newBlock()
		b.link(ifID, consBlk.ID, EdgeBranchTrue, n.Test)
		b.current = consBlk
		b.buildStatement(n.Consequent)
		b.fallthroughTo(join.ID)

		if n.Alternate != nil {
			altBlk := b.newBlock()
			b.link(ifID, altBlk.ID, EdgeBranchFalse, n.Test)
			b.current = altBlk
			b.buildStatement(n.Alternate)
			b.fallthroughTo(join.ID)
		} else {
			b.link(ifID, join.ID, EdgeBranchFalse, n.Test)
		}

		if len(b.g.pred[join.ID]) == 0 {
			// both branches exited unconditionally
			b.current = nil
			return
		}
		b.current = join

	case *ast.WhileStatement:
		b.buildLoop("", nil, n.Test, nil, n.Body, false)

	case *ast.DoWhileStatement:
		b.buildLoop("", nil, n.Test, nil, n.Body, true)

	case *ast.ForStatement:
		if n.Init != nil {
			if decl, ok := n.Init.(*ast.VariableDeclaration); ok {
				b.buildStatement(decl)
			} else if ex, ok := n.Init.(ast.Expression); ok {
				// a bare expression Init carries no control flow; it
				// is evaluated once, in the current block.
				b.current.Statements = append(b.current.Statements, &ast.ExpressionStatement{Expression: ex})
			}
		}
		b.buildLoop("", nil, n.Test, n.Update, n.Body, false)

	case *ast.ForInStatement:
		b.buildLoop("", n.Right, nil, nil, n.Body, false)

	case *ast.ForOfStatement:
		b.buildLoop("", n.Right, nil, nil, n.Body, false)

	case *ast.SwitchStatement:
		b.buildSwitch("", n)

	case *ast.LabeledStatement:
		b.buildLabeled(n)

	case *ast.TryStatement:
		b.buildTry(n)

	case *ast.BreakStatement:
		target, ok := b.resolveBreak(labelOf(n.Label))
		if ok {
			b.link(b.current.ID, target, EdgeBreak, nil)
		}
		b.current.Terminator = Terminator{Kind: TermBreak, Label: labelOf(n.Label)}
		b.current = nil

	case *ast.ContinueStatement:
		target, ok := b.resolveContinue(labelOf(n.Label))
		if ok {
			b.link(b.current.ID, target, EdgeContinue, nil)
		}
		b.current.Terminator = Terminator{Kind: TermContinue, Label: labelOf(n.Label)}
		b.current = nil

	case *ast.ReturnStatement:
		b.current.Terminator = Terminator{Kind: TermReturn, Value: n.Argument}
		b.g.Exits = append(b.g.Exits, b.current.ID)
		b.current = nil

	case *ast.ThrowStatement:
		throwID := b.current.ID
		if len(b.tryCatches) > 0 {
			catchTarget := b.tryCatches[len(b.tryCatches)-1]
			b.link(throwID, catchTarget, EdgeThrow, nil)
			b.current.Terminator = Terminator{Kind: TermThrow, Value: n.Argument, CatchTarget: &catchTarget}
		} else {
			b.current.Terminator = Terminator{Kind: TermThrow, Value: n.Argument}
			b.g.Exits = append(b.g.Exits, b.current.ID)
		}
		b.current = nil

	default:
		// Straight-line statement: declarations, expression
		// statements, and any opaque/unrecognized statement kind
		// (spec §4.2 "unknown statement kinds are treated as opaque")
		// just extend the current block.
		b.current.Statements = append(b.current.Statements, s)
	}
}

func labelOf(id *ast.Identifier) string {
	if id == nil {
		return ""
	}
	return id.Value
}

// fallthroughTo links the current block (if still open) to target
// with an EdgeFallthrough and closes it.
func (b *Builder) fallthroughTo(target BlockID) {
	if b.current == nil {
		return
	}
	b.link(b.current.ID, target, EdgeFallthrough, nil)
	b.current = nil
}

// buildLoop handles while/do-while/for/for-in/for-of uniformly: a
// header block (re-tested every iteration), a body, and an exit
// block. iterSource is set for for-in/for-of (the Right-hand
// expression is evaluated once, in the header, spec §4.2's table
// entry for those constructs); test/update are used for while/for.
func (b *Builder) buildLoop(label string, iterSource ast.Expression, test, update ast.Expression, body ast.Statement, isDoWhile bool) {
	header := b.newBlock()
	exit := b.newBlock()
	bodyBlk := b.newBlock()

	if isDoWhile {
		// do-while enters the body unconditionally on the first
		// iteration; subsequent iterations go through the header.
		b.fallthroughTo(bodyBlk.ID)
	} else {
		b.fallthroughTo(header.ID)
	}

	b.current = header
	cond := test
	if iterSource != nil {
		cond = iterSource
	}
	header.Terminator = Terminator{Kind: TermBranch, Condition: cond}

	b.link(header.ID, bodyBlk.ID, EdgeBranchTrue, cond)
	b.link(header.ID, exit.ID, EdgeBranchFalse, cond)

	b.loops = append(b.loops, loopCtx{label: label, breakTarget: exit.ID, continueTarget: header.ID})
	b.current = bodyBlk
	b.buildStatement(body)
	if update != nil && b.current != nil {
		b.current.Statements = append(b.current.Statements, &ast.ExpressionStatement{Expression: update})
	}
	b.loops = b.loops[:len(b.loops)-1]

	if b.current != nil {
		b.link(b.current.ID, header.ID, EdgeLoopBack, nil)
	}

	b.current = exit
}

func (b *Builder) buildSwitch(label string, n *ast.SwitchStatement) {
	b.current.Statements = append(b.current.Statements, &ast.ExpressionStatement{Expression: n.Discriminant})
	switchID := b.current.ID
	exit := b.newBlock()
	b.loops = append(b.loops, loopCtx{label: label, breakTarget: exit.ID, continueTarget: -1})

	var prevFallthrough *BasicBlock
	hasDefault := false
	for _, c := range n.Cases {
		caseBlk := b.newBlock()
		kind := EdgeSwitchCase
		if c.Test == nil {
			kind = EdgeSwitchDefault
			hasDefault = true
		}
		b.link(switchID, caseBlk.ID, kind, c.Test)
		if prevFallthrough != nil {
			b.link(prevFallthrough.ID, caseBlk.ID, EdgeFallthrough, nil)
		}
		b.current = caseBlk
		b.buildStatements(c.Consequent)
		if b.current != nil {
			prevFallthrough = b.current
		} else {
			prevFallthrough = nil
		}
	}
	if prevFallthrough != nil {
		b.link(prevFallthrough.ID, exit.ID, EdgeFallthrough, nil)
	}
	if !hasDefault {
		b.link(switchID, exit.ID, EdgeSwitchDefault, nil)
	}
	b.loops = b.loops[:len(b.loops)-1]
	b.current = exit
}

// buildLabeled associates a label with the nested loop/switch so
// `break label`/`continue label` can target it (spec §4.2).
func (b *Builder) buildLabeled(n *ast.LabeledStatement) {
	label := labelOf(n.Label)
	switch body := n.Body.(type) {
	case *ast.WhileStatement:
		b.buildLoop(label, nil, body.Test, nil, body.Body, false)
	case *ast.DoWhileStatement:
		b.buildLoop(label, nil, body.Test, nil, body.Body, true)
	case *ast.ForStatement:
		if body.Init != nil {
			if decl, ok := body.Init.(*ast.VariableDeclaration); ok {
				b.buildStatement(decl)
			}
		}
		b.buildLoop(label, nil, body.Test, body.Update, body.Body, false)
	case *ast.ForInStatement:
		b.buildLoop(label, body.Right, nil, nil, body.Body, false)
	case *ast.ForOfStatement:
		b.buildLoop(label, body.Right, nil, nil, body.Body, false)
	case *ast.SwitchStatement:
		b.buildSwitch(label, body)
	default:
		// A label on a non-loop/switch statement has no break/continue
		// target of its own; just build the body (spec treats this as
		// an opaque pass-through, matching how `with`/unsupported
		// constructs are handled elsewhere in §4.2).
		b.buildStatement(n.Body)
	}
}

func (b *Builder) buildTry(n *ast.TryStatement) {
	tryExit := b.newBlock()
	bodyBlk := b.newBlock()
	b.fallthroughTo(bodyBlk.ID)
	b.current = bodyBlk

	var catchBlk *BasicBlock
	if n.Handler != nil {
		// Created before the body so nested throw sites (including
		// ones inside further-nested try/if/loop constructs) can push
		// it as their nearest catch target (spec §3.3).
		catchBlk = b.newBlock()
		b.link(bodyBlk.ID, catchBlk.ID, EdgeCatch, nil)
		b.tryCatches = append(b.tryCatches, catchBlk.ID)
	}
	b.buildStatements(n.Block.Body)
	if n.Handler != nil {
		b.tryCatches = b.tryCatches[:len(b.tryCatches)-1]
	}
	bodyTail := b.current
	if bodyTail != nil {
		b.link(bodyTail.ID, tryExit.ID, EdgeTryBody, nil)
	}

	if n.Handler != nil {
		b.current = catchBlk
		b.buildStatements(n.Handler.Body.Body)
		if b.current != nil {
			b.link(b.current.ID, tryExit.ID, EdgeFallthrough, nil)
		}
	}

	b.current = tryExit
	if n.Finalizer != nil {
		finBlk := b.newBlock()
		b.link(tryExit.ID, finBlk.ID, EdgeFinally, nil)
		b.current = finBlk
		b.buildStatements(n.Finalizer.Body)
	}
}

func (b *Builder) resolveBreak(label string) (BlockID, bool) {
	for i := len(b.loops) - 1; i >= 0; i-- {
		if label == "" || b.loops[i].label == label {
			return b.loops[i].breakTarget, true
		}
	}
	return 0, false
}

func (b *Builder) resolveContinue(label string) (BlockID, bool) {
	for i := len(b.loops) - 1; i >= 0; i-- {
		if b.loops[i].continueTarget == -1 {
			continue // a switch is not a continue target
		}
		if label == "" || b.loops[i].label == label {
			return b.loops[i].continueTarget, true
		}
	}
	return 0, false
}
