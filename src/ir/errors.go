package ir

import "errors"

// Sentinel errors for the fatal conditions this package detects.
// Callers compare with errors.Is; the driver maps each to its exit
// code.
var (
	// ErrDuplicateSymbol is returned (wrapped with the symbol name) when
	// RegisterFunction is called with an id that already names a
	// function.
	ErrDuplicateSymbol = errors.New("duplicate symbol")

	// ErrUnknownSymbol is returned when CallFunction names a callee
	// that has not been registered.
	ErrUnknownSymbol = errors.New("unknown symbol")

	// ErrUnsupportedLiteralKind is returned when CompileLiteral is asked
	// to compile an AST type outside the closed primitive set (in
	// practice: floating-point literals).
	ErrUnsupportedLiteralKind = errors.New("unsupported literal kind")

	// ErrUnknownType is returned when AstToIRType is given a type name
	// outside the closed primitive set.
	ErrUnknownType = errors.New("unknown type")

	// ErrTypeMismatch is returned when CompileBinaryOp or CompileAssign
	// are given two operands whose types differ.
	ErrTypeMismatch = errors.New("operand type mismatch")
)
