// Package ir builds the linear, three-address intermediate representation
// consumed by the bytecode module. It accepts AST visitor callbacks
// (register_global/register_function/register_struct, call_function,
// compile_literal, compile_binary_op and friends) and exposes the finished
// function registry once building completes.
package ir

import (
	"fmt"
	"strings"

	"myvmc/src/types"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Module is the symbol table of functions plus the bookkeeping needed to
// build them: the function currently being populated, and the counters
// for fresh temporary names and fresh function numbers.
type Module struct {
	Filename string

	functions map[string]*Function
	order     []string // Insertion order; functions are numbered and iterated in this order.

	currentFunctionName string

	nextTemp uint64
	nextFunc uint32
}

// ---------------------
// ----- Constants -----
// ---------------------

// printFuncName names the builtin write-to-stdout function seeded into
// every new Module.
const printFuncName = "print"

// ---------------------
// ----- functions -----
// ---------------------

// NewModule returns a Module named filename, seeded with the builtin print
// function at function number 0.
func NewModule(filename string) *Module {
	m := &Module{
		Filename:  filename,
		functions: make(map[string]*Function, 16),
	}
	m.seedPrint()
	return m
}

// seedPrint installs the builtin print(input: string) function: a single
// syscall(3, input, 0, 0, 1) followed by ret. Syscall 3 writes the
// NUL-terminated string at the address carried by its rd argument to file
// descriptor 1 (stdout).
func (m *Module) seedPrint() {
	input := Operand{Name: "input", Type: types.String}
	f := &Function{
		Name:       printFuncName,
		Parameters: []Operand{input},
		ReturnType: types.Unit,
		Number:     m.nextFunc,
	}
	m.nextFunc++
	f.emit(Instruction{
		Op: Syscall,
		Args: []Operand{
			{Name: "3", Type: types.Int},
			input,
			{Name: "0", Type: types.Int},
			{Name: "0", Type: types.Int},
			{Name: "1", Type: types.Int},
		},
	})
	f.emit(Instruction{Op: Ret})
	m.functions[f.Name] = f
	m.order = append(m.order, f.Name)
}

// RegisterGlobal is reserved for future global-variable support. It is
// currently a no-op and must stay idempotent and side-effect-free for
// names that are not already registered.
func (m *Module) RegisterGlobal(string, types.Type, Operand, bool) {}

// RegisterStruct is reserved for future struct support; currently a no-op.
func (m *Module) RegisterStruct(string, []Operand) {}

// FunctionBody is implemented by an AST function body: something that can
// populate the IR of a freshly registered function by calling back into m.
type FunctionBody interface {
	Build(m *Module) error
}

// RegisterFunction registers a new function named id with the given
// parameters and optional return type, then builds its body by invoking
// body.Build(m). Fails with ErrDuplicateSymbol if id is already
// registered. Parameter type names are converted via AstToIRType; an
// unknown type name is fatal (ErrUnknownType).
func (m *Module) RegisterFunction(id string, params []NamedType, returnType string, body FunctionBody) error {
	if _, ok := m.functions[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateSymbol, id)
	}

	ps := make([]Operand, len(params))
	for i1, e1 := range params {
		t, err := AstToIRType(e1.Type)
		if err != nil {
			return err
		}
		ps[i1] = Operand{Name: e1.Name, Type: t}
	}
	rt, err := AstToIRType(returnType)
	if err != nil {
		return err
	}

	f := &Function{
		Name:       id,
		Parameters: ps,
		ReturnType: rt,
		Number:     m.nextFunc,
	}
	m.nextFunc++
	m.functions[id] = f
	m.order = append(m.order, id)

	m.currentFunctionName = id
	if body != nil {
		if err := body.Build(m); err != nil {
			return err
		}
	}
	m.currentFunctionName = ""
	return nil
}

// AstToIRType converts a source-level type name to its canonical IR
// type. An unrecognised name is fatal.
func AstToIRType(name string) (types.Type, error) {
	t, ok := types.FromName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
	return t, nil
}

// NamedType pairs a parameter or field name with its source-level type
// name, as the AST hands parameter lists to RegisterFunction.
type NamedType struct {
	Name string
	Type string
}

// current returns the Function currently being built. It panics if called
// outside RegisterFunction's body.Build callback, since that indicates a
// programming error in the caller, not a recoverable condition.
func (m *Module) current() *Function {
	f, ok := m.functions[m.currentFunctionName]
	if !ok {
		panic("ir: no function is currently being built")
	}
	return f
}

// CallFunction appends a call instruction invoking callee with the given
// arguments to the function currently being built. Fails with
// ErrUnknownSymbol if callee is not registered. A synthetic operand naming
// the callee (its function type as seen by FuncType) is prepended to args
// before recording the instruction.
func (m *Module) CallFunction(callee string, args []Operand) error {
	cf, ok := m.functions[callee]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSymbol, callee)
	}
	full := make([]Operand, 0, len(args)+1)
	full = append(full, Operand{Name: callee, Type: cf.FuncType()})
	full = append(full, args...)
	m.current().emit(Instruction{Op: Call, Args: full})
	return nil
}

// CallFunctionResult is CallFunction, but for a call whose result is used:
// it returns a fresh temporary of the callee's return type holding the
// call's result.
func (m *Module) CallFunctionResult(callee string, args []Operand) (Operand, error) {
	cf, ok := m.functions[callee]
	if !ok {
		return Operand{}, fmt.Errorf("%w: %s", ErrUnknownSymbol, callee)
	}
	full := make([]Operand, 0, len(args)+1)
	full = append(full, Operand{Name: callee, Type: cf.FuncType()})
	full = append(full, args...)
	result := m.newTemp(cf.ReturnType)
	m.current().emit(Instruction{Op: Call, Args: full, Result: &result})
	return result, nil
}

// CompileLiteral returns an operand naming the literal text with the
// canonical IR type for astType. Fails with ErrUnsupportedLiteralKind for
// any type outside the closed primitive set recognised here (string,
// int, char, bool; floating point is explicitly unsupported).
func (m *Module) CompileLiteral(text string, astType types.Type) (Operand, error) {
	switch astType {
	case types.String, types.Int, types.Char, types.Bool:
		return Operand{Name: text, Type: astType}, nil
	default:
		return Operand{}, fmt.Errorf("%w: %s", ErrUnsupportedLiteralKind, astType)
	}
}

// CompileBinaryOp asserts lhs.Type == rhs.Type, allocates a fresh temporary
// of the op's result type, appends the instruction to the function
// currently being built and returns the temporary.
func (m *Module) CompileBinaryOp(op Op, lhs, rhs Operand) (Operand, error) {
	if !op.IsBinary() {
		return Operand{}, fmt.Errorf("not a binary op: %s", op)
	}
	if !lhs.Type.Equal(rhs.Type) {
		return Operand{}, fmt.Errorf("%w: %s vs %s", ErrTypeMismatch, lhs.Type, rhs.Type)
	}
	resultType := lhs.Type
	if op.isBooleanResult() {
		resultType = types.Bool
	}
	result := m.newTemp(resultType)
	m.current().emit(Instruction{Op: op, Args: []Operand{lhs, rhs}, Result: &result})
	return result, nil
}

// CompileUnaryOp is CompileBinaryOp's unary counterpart, covering
// boolean_not, negation and bit_not.
func (m *Module) CompileUnaryOp(op Op, operand Operand) (Operand, error) {
	if !op.IsUnary() || op == Assign {
		return Operand{}, fmt.Errorf("not a unary operator op: %s", op)
	}
	resultType := operand.Type
	if op.isBooleanResult() {
		resultType = types.Bool
	}
	result := m.newTemp(resultType)
	m.current().emit(Instruction{Op: op, Args: []Operand{operand}, Result: &result})
	return result, nil
}

// CompileAssign emits an assign instruction moving src into dest.
// dest.Type and src.Type must match.
func (m *Module) CompileAssign(dest, src Operand) (Operand, error) {
	if !dest.Type.Equal(src.Type) {
		return Operand{}, fmt.Errorf("%w: %s vs %s", ErrTypeMismatch, dest.Type, src.Type)
	}
	m.current().emit(Instruction{Op: Assign, Args: []Operand{src}, Result: &dest})
	return dest, nil
}

// Ret appends a bare ret instruction to the function currently being
// built.
func (m *Module) Ret() error {
	m.current().emit(Instruction{Op: Ret})
	return nil
}

// newTemp returns a fresh temp_<N> operand of the given type and advances
// the temporary counter.
func (m *Module) newTemp(t types.Type) Operand {
	name := fmt.Sprintf("%s%d", tempPrefix, m.nextTemp)
	m.nextTemp++
	return Operand{Name: name, Type: t}
}

// Functions returns every registered function in insertion (= function
// number) order.
func (m *Module) Functions() []*Function {
	res := make([]*Function, len(m.order))
	for i1, e1 := range m.order {
		res[i1] = m.functions[e1]
	}
	return res
}

// Function returns the named function, or nil if no such function is
// registered.
func (m *Module) Function(name string) *Function {
	return m.functions[name]
}

// String renders every function in the module, separated by a blank
// line.
func (m *Module) String() string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("; module %s\n\n", m.Filename))
	for i1, e1 := range m.order {
		sb.WriteString(m.functions[e1].String())
		if i1 < len(m.order)-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}
