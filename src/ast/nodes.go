package ast

import (
	"fmt"

	"myvmc/src/ir"
	"myvmc/src/types"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Program is the root of a parsed source file: every function declaration
// it contains, in source order.
type Program struct {
	Funcs []*FuncDecl
}

// FuncDecl is a single function declaration. It implements ir.FunctionBody
// so it can be handed directly to ir.Module.RegisterFunction.
type FuncDecl struct {
	Name       string
	Params     []ir.NamedType
	ReturnType string
	Body       []Stmt
}

// Stmt is one statement in a function body.
type Stmt interface {
	lower(m *ir.Module, env map[string]ir.Operand) error
}

// Expr is one expression; lowering it yields the operand holding its
// value.
type Expr interface {
	lower(m *ir.Module, env map[string]ir.Operand) (ir.Operand, error)
}

// CallStmt invokes Callee for its side effect; any result is discarded.
type CallStmt struct {
	Callee string
	Args   []Expr
}

// ReturnStmt exits the enclosing function. Value is nil for a bare return.
type ReturnStmt struct {
	Value Expr
}

// AssignStmt binds Value's result to Name in the current function's
// environment, emitting an ir.Assign instruction if Name already names an
// operand (a parameter or an earlier binding), or simply recording the
// binding if Name is introduced for the first time.
type AssignStmt struct {
	Name  string
	Value Expr
}

// Ident is a reference to a parameter or a previously bound local name.
type Ident struct {
	Name string
}

// IntLit, StringLit, CharLit and BoolLit are literal expressions.
type (
	IntLit    struct{ Value string }
	StringLit struct{ Value string }
	CharLit   struct{ Value string }
	BoolLit   struct{ Value bool }
)

// BinaryExpr is a two-operand expression lowered via ir.Module.CompileBinaryOp.
type BinaryExpr struct {
	Op       ir.Op
	Lhs, Rhs Expr
}

// UnaryExpr is a one-operand expression lowered via ir.Module.CompileUnaryOp.
type UnaryExpr struct {
	Op      ir.Op
	Operand Expr
}

// CallExpr invokes Callee and uses its result.
type CallExpr struct {
	Callee string
	Args   []Expr
}

// ---------------------
// ----- functions -----
// ---------------------

// Build registers f's parameters as the initial environment and lowers
// every statement in order. If the body does not already end in a return
// statement, an implicit bare return is appended, so that an empty
// function body still emits exactly one ret instruction.
func (f *FuncDecl) Build(m *ir.Module) error {
	env := make(map[string]ir.Operand, len(f.Params))
	for _, p := range f.Params {
		t, err := ir.AstToIRType(p.Type)
		if err != nil {
			return err
		}
		env[p.Name] = ir.Operand{Name: p.Name, Type: t}
	}

	for _, stmt := range f.Body {
		if err := stmt.lower(m, env); err != nil {
			return err
		}
	}

	if !endsInReturn(f.Body) {
		if err := (&ReturnStmt{}).lower(m, env); err != nil {
			return err
		}
	}
	return nil
}

func endsInReturn(body []Stmt) bool {
	if len(body) == 0 {
		return false
	}
	_, ok := body[len(body)-1].(*ReturnStmt)
	return ok
}

func (s *CallStmt) lower(m *ir.Module, env map[string]ir.Operand) error {
	args, err := lowerArgs(m, env, s.Args)
	if err != nil {
		return err
	}
	return m.CallFunction(s.Callee, args)
}

func (s *ReturnStmt) lower(m *ir.Module, env map[string]ir.Operand) error {
	if s.Value != nil {
		if _, err := s.Value.lower(m, env); err != nil {
			return err
		}
	}
	return m.Ret()
}

func (s *AssignStmt) lower(m *ir.Module, env map[string]ir.Operand) error {
	src, err := s.Value.lower(m, env)
	if err != nil {
		return err
	}
	dest, exists := env[s.Name]
	if !exists {
		env[s.Name] = src
		return nil
	}
	result, err := m.CompileAssign(dest, src)
	if err != nil {
		return err
	}
	env[s.Name] = result
	return nil
}

func (e *Ident) lower(_ *ir.Module, env map[string]ir.Operand) (ir.Operand, error) {
	op, ok := env[e.Name]
	if !ok {
		return ir.Operand{}, fmt.Errorf("%w: %s", ir.ErrUnknownSymbol, e.Name)
	}
	return op, nil
}

func (e *IntLit) lower(m *ir.Module, _ map[string]ir.Operand) (ir.Operand, error) {
	return m.CompileLiteral(e.Value, types.Int)
}

func (e *StringLit) lower(m *ir.Module, _ map[string]ir.Operand) (ir.Operand, error) {
	return m.CompileLiteral(e.Value, types.String)
}

func (e *CharLit) lower(m *ir.Module, _ map[string]ir.Operand) (ir.Operand, error) {
	return m.CompileLiteral(e.Value, types.Char)
}

func (e *BoolLit) lower(m *ir.Module, _ map[string]ir.Operand) (ir.Operand, error) {
	text := "false"
	if e.Value {
		text = "true"
	}
	return m.CompileLiteral(text, types.Bool)
}

func (e *BinaryExpr) lower(m *ir.Module, env map[string]ir.Operand) (ir.Operand, error) {
	lhs, err := e.Lhs.lower(m, env)
	if err != nil {
		return ir.Operand{}, err
	}
	rhs, err := e.Rhs.lower(m, env)
	if err != nil {
		return ir.Operand{}, err
	}
	return m.CompileBinaryOp(e.Op, lhs, rhs)
}

func (e *UnaryExpr) lower(m *ir.Module, env map[string]ir.Operand) (ir.Operand, error) {
	operand, err := e.Operand.lower(m, env)
	if err != nil {
		return ir.Operand{}, err
	}
	return m.CompileUnaryOp(e.Op, operand)
}

func (e *CallExpr) lower(m *ir.Module, env map[string]ir.Operand) (ir.Operand, error) {
	args, err := lowerArgs(m, env, e.Args)
	if err != nil {
		return ir.Operand{}, err
	}
	return m.CallFunctionResult(e.Callee, args)
}

func lowerArgs(m *ir.Module, env map[string]ir.Operand, exprs []Expr) ([]ir.Operand, error) {
	args := make([]ir.Operand, len(exprs))
	for i1, e1 := range exprs {
		op, err := e1.lower(m, env)
		if err != nil {
			return nil, err
		}
		args[i1] = op
	}
	return args, nil
}
