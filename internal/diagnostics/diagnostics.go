// Package diagnostics defines the shared error taxonomy used by both
// analysis paths (the iterative CFG analyzer and the constraint-based
// solver). A single DiagnosticError type carries a stable code, a
// human-readable message, and the source position it refers to, so
// callers can switch on Code instead of pattern-matching strings.
package diagnostics

import "fmt"

// ErrorCode identifies the kind of diagnostic raised.
type ErrorCode string

const (
	ErrCannotAssignToConst   ErrorCode = "cannot-assign-to-const"
	ErrUndefinedVariable     ErrorCode = "undefined-variable"
	ErrIncompatibleTypes     ErrorCode = "incompatible-types"
	ErrMissingProperty       ErrorCode = "missing-property"
	ErrNotCallable           ErrorCode = "not-callable"
	ErrNotConstructable      ErrorCode = "not-constructable"
	ErrArgumentCount         ErrorCode = "argument-count"
	ErrIterationBudget       ErrorCode = "iteration-budget-exceeded"
)

// Position is the minimal location a diagnostic anchors to.
type Position struct {
	Line   int
	Column int
}

// DiagnosticError is the concrete error type returned across the engine.
type DiagnosticError struct {
	Code     ErrorCode
	Message  string
	Pos      Position
	NodeKind string // optional, name of the AST node kind involved
}

func (e *DiagnosticError) Error() string {
	if e.NodeKind != "" {
		return fmt.Sprintf("%s:%d:%d: %s (%s)", e.Code, e.Pos.Line, e.Pos.Column, e.Message, e.NodeKind)
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Code, e.Pos.Line, e.Pos.Column, e.Message)
}

// New builds a DiagnosticError with a formatted message.
func New(code ErrorCode, pos Position, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
	}
}

// NewWithKind attaches the originating node kind for easier triage.
func NewWithKind(code ErrorCode, pos Position, nodeKind string, format string, args ...interface{}) *DiagnosticError {
	d := New(code, pos, format, args...)
	d.NodeKind = nodeKind
	return d
}
