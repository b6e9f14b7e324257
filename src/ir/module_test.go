package ir

import (
	"errors"
	"testing"

	"myvmc/src/types"
)

// emptyBody is a FunctionBody that lowers to no instructions, for tests
// that only care about registration bookkeeping.
type emptyBody struct{}

func (emptyBody) Build(*Module) error { return nil }

func TestNewModuleSeedsPrint(t *testing.T) {
	m := NewModule("stdin")

	fn := m.Function("print")
	if fn == nil {
		t.Fatal("print was not registered")
	}
	if fn.Number != 0 {
		t.Errorf("print.Number = %d, want 0", fn.Number)
	}
	if len(fn.Parameters) != 1 || fn.Parameters[0].Name != "input" || fn.Parameters[0].Type != types.String {
		t.Errorf("print parameters = %+v, want [input: string]", fn.Parameters)
	}
	if len(fn.Instructions) != 2 {
		t.Fatalf("print body has %d instructions, want 2 (syscall, ret)", len(fn.Instructions))
	}
	if fn.Instructions[0].Op != Syscall {
		t.Errorf("print.Instructions[0].Op = %s, want syscall", fn.Instructions[0].Op)
	}
	if fn.Instructions[1].Op != Ret {
		t.Errorf("print.Instructions[1].Op = %s, want ret", fn.Instructions[1].Op)
	}
}

func TestRegisterFunctionNumbering(t *testing.T) {
	m := NewModule("test")

	if err := m.RegisterFunction("main", nil, "", emptyBody{}); err != nil {
		t.Fatalf("RegisterFunction(main) = %v", err)
	}
	if err := m.RegisterFunction("foo", nil, "", emptyBody{}); err != nil {
		t.Fatalf("RegisterFunction(foo) = %v", err)
	}

	main := m.Function("main")
	foo := m.Function("foo")
	if main.Number != 1 {
		t.Errorf("main.Number = %d, want 1 (one past print's 0)", main.Number)
	}
	if foo.Number != 2 {
		t.Errorf("foo.Number = %d, want 2", foo.Number)
	}
}

func TestRegisterFunctionDuplicate(t *testing.T) {
	m := NewModule("test")
	if err := m.RegisterFunction("foo", nil, "", emptyBody{}); err != nil {
		t.Fatalf("first RegisterFunction(foo) = %v", err)
	}
	err := m.RegisterFunction("foo", nil, "", emptyBody{})
	if !errors.Is(err, ErrDuplicateSymbol) {
		t.Errorf("second RegisterFunction(foo) = %v, want ErrDuplicateSymbol", err)
	}
}

func TestRegisterFunctionUnknownParamType(t *testing.T) {
	m := NewModule("test")
	err := m.RegisterFunction("foo", []NamedType{{Name: "x", Type: "struct"}}, "", emptyBody{})
	if !errors.Is(err, ErrUnknownType) {
		t.Errorf("RegisterFunction with unknown param type = %v, want ErrUnknownType", err)
	}
}

func TestCallFunctionUnknown(t *testing.T) {
	m := NewModule("test")
	callBody := callerBody{callee: "nope"}
	err := m.RegisterFunction("main", nil, "", callBody)
	if !errors.Is(err, ErrUnknownSymbol) {
		t.Errorf("CallFunction(unregistered) = %v, want ErrUnknownSymbol", err)
	}
}

// callerBody is a FunctionBody that calls callee with no arguments.
type callerBody struct{ callee string }

func (b callerBody) Build(m *Module) error {
	return m.CallFunction(b.callee, nil)
}

func TestCallFunctionPrependsCallee(t *testing.T) {
	m := NewModule("test")
	if err := m.RegisterFunction("main", nil, "", callerBody{callee: "print"}); err != nil {
		t.Fatalf("RegisterFunction(main) = %v", err)
	}
	main := m.Function("main")
	if len(main.Instructions) != 1 {
		t.Fatalf("main has %d instructions, want 1", len(main.Instructions))
	}
	in := main.Instructions[0]
	if in.Op != Call {
		t.Fatalf("instruction op = %s, want call", in.Op)
	}
	if len(in.Args) != 1 || in.Args[0].Name != "print" {
		t.Fatalf("call args = %+v, want [print]", in.Args)
	}
	if in.Args[0].Type.Kind() != types.KindFunc {
		t.Errorf("callee operand type = %v, want a Func type", in.Args[0].Type)
	}
}

func TestCompileLiteral(t *testing.T) {
	m := NewModule("test")
	op, err := m.CompileLiteral("42", types.Int)
	if err != nil {
		t.Fatalf("CompileLiteral(42, Int) = %v", err)
	}
	if op.Name != "42" {
		t.Errorf("operand.Name = %q, want %q", op.Name, "42")
	}
	if op.Type != types.Int {
		t.Errorf("operand.Type = %v, want types.Int", op.Type)
	}
}

func TestCompileLiteralUnsupportedFloat(t *testing.T) {
	m := NewModule("test")
	_, err := m.CompileLiteral("1.5", types.Float)
	if !errors.Is(err, ErrUnsupportedLiteralKind) {
		t.Errorf("CompileLiteral(float) = %v, want ErrUnsupportedLiteralKind", err)
	}
}

func TestCompileBinaryOpTypeMismatch(t *testing.T) {
	m := NewModule("test")
	if err := m.RegisterFunction("main", nil, "", emptyBody{}); err != nil {
		t.Fatalf("RegisterFunction(main) = %v", err)
	}
	m.currentFunctionName = "main"

	lhs, _ := m.CompileLiteral("1", types.Int)
	rhs, _ := m.CompileLiteral(`"x"`, types.String)
	_, err := m.CompileBinaryOp(Add, lhs, rhs)
	if !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("CompileBinaryOp(int, string) = %v, want ErrTypeMismatch", err)
	}
}

func TestCompileBinaryOpAllocatesTemp(t *testing.T) {
	m := NewModule("test")
	if err := m.RegisterFunction("main", nil, "", emptyBody{}); err != nil {
		t.Fatalf("RegisterFunction(main) = %v", err)
	}
	m.currentFunctionName = "main"

	lhs, _ := m.CompileLiteral("1", types.Int)
	rhs, _ := m.CompileLiteral("2", types.Int)
	result, err := m.CompileBinaryOp(Add, lhs, rhs)
	if err != nil {
		t.Fatalf("CompileBinaryOp(1, 2) = %v", err)
	}
	if !result.IsTemp() {
		t.Errorf("result operand %q is not a temp", result.Name)
	}
	if result.Type != types.Int {
		t.Errorf("result.Type = %v, want types.Int", result.Type)
	}

	main := m.Function("main")
	if len(main.Instructions) != 1 || main.Instructions[0].Op != Add {
		t.Fatalf("main.Instructions = %+v, want one add instruction", main.Instructions)
	}
}

func TestCompileBinaryOpBooleanResult(t *testing.T) {
	m := NewModule("test")
	if err := m.RegisterFunction("main", nil, "", emptyBody{}); err != nil {
		t.Fatalf("RegisterFunction(main) = %v", err)
	}
	m.currentFunctionName = "main"

	lhs, _ := m.CompileLiteral("1", types.Int)
	rhs, _ := m.CompileLiteral("2", types.Int)
	result, err := m.CompileBinaryOp(Less, lhs, rhs)
	if err != nil {
		t.Fatalf("CompileBinaryOp(Less) = %v", err)
	}
	if result.Type != types.Bool {
		t.Errorf("Less result type = %v, want types.Bool", result.Type)
	}
}

func TestFunctionsOrder(t *testing.T) {
	m := NewModule("test")
	_ = m.RegisterFunction("a", nil, "", emptyBody{})
	_ = m.RegisterFunction("b", nil, "", emptyBody{})

	fns := m.Functions()
	if len(fns) != 3 {
		t.Fatalf("Functions() returned %d entries, want 3 (print, a, b)", len(fns))
	}
	for i1, e1 := range fns {
		if e1.Number != uint32(i1) {
			t.Errorf("Functions()[%d].Number = %d, want %d", i1, e1.Number, i1)
		}
	}
}
