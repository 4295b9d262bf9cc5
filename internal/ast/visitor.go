package ast

// Visitor dispatches over every concrete node kind the engine
// understands. Accept methods on each node call back into exactly one
// Visit* method, the same double-dispatch shape the teacher repo uses
// for its own AST (internal/ast/ast_core.go in the teacher), adapted
// here to the JS-like node set of spec §6.
type Visitor interface {
	VisitProgram(n *Program)

	VisitNumericLiteral(n *NumericLiteral)
	VisitStringLiteral(n *StringLiteral)
	VisitBooleanLiteral(n *BooleanLiteral)
	VisitNullLiteral(n *NullLiteral)
	VisitBigIntLiteral(n *BigIntLiteral)
	VisitRegExpLiteral(n *RegExpLiteral)
	VisitTemplateLiteral(n *TemplateLiteral)
	VisitIdentifier(n *Identifier)
	VisitArrayExpression(n *ArrayExpression)
	VisitObjectExpression(n *ObjectExpression)
	VisitFunctionExpression(n *FunctionExpression)
	VisitArrowFunctionExpression(n *ArrowFunctionExpression)
	VisitFunctionDeclaration(n *FunctionDeclaration)
	VisitClassDeclaration(n *ClassDeclaration)
	VisitClassExpression(n *ClassExpression)
	VisitClassMethod(n *ClassMethod)
	VisitClassProperty(n *ClassProperty)
	VisitVariableDeclaration(n *VariableDeclaration)
	VisitVariableDeclarator(n *VariableDeclarator)
	VisitExpressionStatement(n *ExpressionStatement)
	VisitReturnStatement(n *ReturnStatement)
	VisitIfStatement(n *IfStatement)
	VisitBlockStatement(n *BlockStatement)
	VisitWhileStatement(n *WhileStatement)
	VisitDoWhileStatement(n *DoWhileStatement)
	VisitForStatement(n *ForStatement)
	VisitForInStatement(n *ForInStatement)
	VisitForOfStatement(n *ForOfStatement)
	VisitSwitchStatement(n *SwitchStatement)
	VisitTryStatement(n *TryStatement)
	VisitThrowStatement(n *ThrowStatement)
	VisitBreakStatement(n *BreakStatement)
	VisitContinueStatement(n *ContinueStatement)
	VisitLabeledStatement(n *LabeledStatement)
	VisitMemberExpression(n *MemberExpression)
	VisitOptionalMemberExpression(n *OptionalMemberExpression)
	VisitCallExpression(n *CallExpression)
	VisitOptionalCallExpression(n *OptionalCallExpression)
	VisitNewExpression(n *NewExpression)
	VisitBinaryExpression(n *BinaryExpression)
	VisitUnaryExpression(n *UnaryExpression)
	VisitUpdateExpression(n *UpdateExpression)
	VisitLogicalExpression(n *LogicalExpression)
	VisitConditionalExpression(n *ConditionalExpression)
	VisitAssignmentExpression(n *AssignmentExpression)
	VisitSequenceExpression(n *SequenceExpression)
	VisitAwaitExpression(n *AwaitExpression)
	VisitYieldExpression(n *YieldExpression)
	VisitThisExpression(n *ThisExpression)
	VisitSpreadElement(n *SpreadElement)
	VisitRestElement(n *RestElement)
	VisitObjectPattern(n *ObjectPattern)
	VisitArrayPattern(n *ArrayPattern)
	VisitAssignmentPattern(n *AssignmentPattern)

	// VisitOpaque is called for any statement the builder doesn't
	// recognize (spec §4.2 "failure mode"); left as opaque, not an error.
	VisitOpaque(n *OpaqueStatement)
}

// BaseVisitor gives every method a no-op body so a caller that only
// cares about a handful of node kinds can embed it and override just
// those, instead of implementing all ~55 methods every time.
type BaseVisitor struct{}

func (BaseVisitor) VisitProgram(n *Program)                                     {}
func (BaseVisitor) VisitNumericLiteral(n *NumericLiteral)                       {}
func (BaseVisitor) VisitStringLiteral(n *StringLiteral)                         {}
func (BaseVisitor) VisitBooleanLiteral(n *BooleanLiteral)                       {}
func (BaseVisitor) VisitNullLiteral(n *NullLiteral)                             {}
func (BaseVisitor) VisitBigIntLiteral(n *BigIntLiteral)                         {}
func (BaseVisitor) VisitRegExpLiteral(n *RegExpLiteral)                         {}
func (BaseVisitor) VisitTemplateLiteral(n *TemplateLiteral)                     {}
func (BaseVisitor) VisitIdentifier(n *Identifier)                               {}
func (BaseVisitor) VisitArrayExpression(n *ArrayExpression)                     {}
func (BaseVisitor) VisitObjectExpression(n *ObjectExpression)                   {}
func (BaseVisitor) VisitFunctionExpression(n *FunctionExpression)               {}
func (BaseVisitor) VisitArrowFunctionExpression(n *ArrowFunctionExpression)     {}
func (BaseVisitor) VisitFunctionDeclaration(n *FunctionDeclaration)             {}
func (BaseVisitor) VisitClassDeclaration(n *ClassDeclaration)                   {}
func (BaseVisitor) VisitClassExpression(n *ClassExpression)                     {}
func (BaseVisitor) VisitClassMethod(n *ClassMethod)                             {}
func (BaseVisitor) VisitClassProperty(n *ClassProperty)                         {}
func (BaseVisitor) VisitVariableDeclaration(n *VariableDeclaration)             {}
func (BaseVisitor) VisitVariableDeclarator(n *VariableDeclarator)               {}
func (BaseVisitor) VisitExpressionStatement(n *ExpressionStatement)             {}
func (BaseVisitor) VisitReturnStatement(n *ReturnStatement)                     {}
func (BaseVisitor) VisitIfStatement(n *IfStatement)                             {}
func (BaseVisitor) VisitBlockStatement(n *BlockStatement)                       {}
func (BaseVisitor) VisitWhileStatement(n *WhileStatement)                       {}
func (BaseVisitor) VisitDoWhileStatement(n *DoWhileStatement)                   {}
func (BaseVisitor) VisitForStatement(n *ForStatement)                           {}
func (BaseVisitor) VisitForInStatement(n *ForInStatement)                       {}
func (BaseVisitor) VisitForOfStatement(n *ForOfStatement)                       {}
func (BaseVisitor) VisitSwitchStatement(n *SwitchStatement)                     {}
func (BaseVisitor) VisitTryStatement(n *TryStatement)                           {}
func (BaseVisitor) VisitThrowStatement(n *ThrowStatement)                       {}
func (BaseVisitor) VisitBreakStatement(n *BreakStatement)                       {}
func (BaseVisitor) VisitContinueStatement(n *ContinueStatement)                 {}
func (BaseVisitor) VisitLabeledStatement(n *LabeledStatement)                   {}
func (BaseVisitor) VisitMemberExpression(n *MemberExpression)                   {}
func (BaseVisitor) VisitOptionalMemberExpression(n *OptionalMemberExpression)   {}
func (BaseVisitor) VisitCallExpression(n *CallExpression)                       {}
func (BaseVisitor) VisitOptionalCallExpression(n *OptionalCallExpression)       {}
func (BaseVisitor) VisitNewExpression(n *NewExpression)                         {}
func (BaseVisitor) VisitBinaryExpression(n *BinaryExpression)                   {}
func (BaseVisitor) VisitUnaryExpression(n *UnaryExpression)                     {}
func (BaseVisitor) VisitUpdateExpression(n *UpdateExpression)                   {}
func (BaseVisitor) VisitLogicalExpression(n *LogicalExpression)                 {}
func (BaseVisitor) VisitConditionalExpression(n *ConditionalExpression)         {}
func (BaseVisitor) VisitAssignmentExpression(n *AssignmentExpression)           {}
func (BaseVisitor) VisitSequenceExpression(n *SequenceExpression)               {}
func (BaseVisitor) VisitAwaitExpression(n *AwaitExpression)                     {}
func (BaseVisitor) VisitYieldExpression(n *YieldExpression)                     {}
func (BaseVisitor) VisitThisExpression(n *ThisExpression)                       {}
func (BaseVisitor) VisitSpreadElement(n *SpreadElement)                         {}
func (BaseVisitor) VisitRestElement(n *RestElement)                             {}
func (BaseVisitor) VisitObjectPattern(n *ObjectPattern)                         {}
func (BaseVisitor) VisitArrayPattern(n *ArrayPattern)                           {}
func (BaseVisitor) VisitAssignmentPattern(n *AssignmentPattern)                 {}
func (BaseVisitor) VisitOpaque(n *OpaqueStatement)                              {}
