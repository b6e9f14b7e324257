// Package types defines the closed set of semantic types shared by the IR
// and bytecode modules. Primitives are singletons compared by pointer
// identity; the composite function type compares structurally.
package types

import "strings"

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Kind identifies which variant of Type a value holds.
type Kind uint8

// Type is a tagged semantic type. Primitive variants are the package-level
// singletons below; composite function types are built with NewFunc.
type Type interface {
	Kind() Kind
	String() string

	// Equal reports whether t and other denote the same type. Primitives
	// compare by identity (the underlying pointer); Func compares
	// structurally, component by component.
	Equal(other Type) bool
}

// primitive is the concrete type behind every primitive Kind. There is
// exactly one instance per Kind, created in this file's init-time var
// block, so comparing two primitive Type values with == compares pointers.
type primitive struct {
	kind Kind
	name string
}

// Func is the composite function type: zero or more argument types and a
// single return type. Two Funcs are Equal if their arities, argument types
// and return types all match.
type Func struct {
	Args []Type
	Ret  Type
}

// ---------------------
// ----- Constants -----
// ---------------------

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindChar
	KindBool
	KindUnit
	KindFunc
)

// -------------------
// ----- Globals -----
// -------------------

// The six primitive singletons. Every Operand or Type value of one of
// these kinds must hold exactly this pointer, never a freshly allocated
// copy, or identity comparison breaks.
var (
	String = &primitive{kind: KindString, name: "string"}
	Int    = &primitive{kind: KindInt, name: "integer"}
	Float  = &primitive{kind: KindFloat, name: "floating"}
	Char   = &primitive{kind: KindChar, name: "character"}
	Bool   = &primitive{kind: KindBool, name: "boolean"}
	Unit   = &primitive{kind: KindUnit, name: "unit"}
)

// ---------------------
// ----- functions -----
// ---------------------

// NewFunc builds a composite function type from its argument types and
// return type.
func NewFunc(args []Type, ret Type) *Func {
	return &Func{Args: args, Ret: ret}
}

// Kind returns KindString/KindInt/... for a primitive.
func (p *primitive) Kind() Kind { return p.kind }

// String returns the type's human readable name.
func (p *primitive) String() string { return p.name }

// Equal compares two primitives by pointer identity, per this package's
// contract: two canonical instances of the same primitive are always the
// same pointer.
func (p *primitive) Equal(other Type) bool {
	op, ok := other.(*primitive)
	return ok && op == p
}

// Kind always reports KindFunc for a Func.
func (f *Func) Kind() Kind { return KindFunc }

// String renders "func(arg1, arg2) -> ret".
func (f *Func) String() string {
	sb := strings.Builder{}
	sb.WriteString("func(")
	for i1, e1 := range f.Args {
		sb.WriteString(e1.String())
		if i1 < len(f.Args)-1 {
			sb.WriteString(", ")
		}
	}
	sb.WriteString(") -> ")
	if f.Ret != nil {
		sb.WriteString(f.Ret.String())
	} else {
		sb.WriteString(Unit.String())
	}
	return sb.String()
}

// Equal compares two Funcs structurally: same arity, same argument types in
// order, same return type.
func (f *Func) Equal(other Type) bool {
	of, ok := other.(*Func)
	if !ok || len(of.Args) != len(f.Args) {
		return false
	}
	for i1, e1 := range f.Args {
		if !e1.Equal(of.Args[i1]) {
			return false
		}
	}
	if f.Ret == nil || of.Ret == nil {
		return f.Ret == of.Ret
	}
	return f.Ret.Equal(of.Ret)
}

// FromName converts a source-level type name (as it would appear in a
// parameter or return type annotation) into its canonical Type. It returns
// false for any identifier outside the closed primitive set; composite
// types are never produced from a bare name.
func FromName(name string) (Type, bool) {
	switch name {
	case "string":
		return String, true
	case "int":
		return Int, true
	case "float":
		return Float, true
	case "char":
		return Char, true
	case "bool":
		return Bool, true
	case "unit", "":
		return Unit, true
	default:
		return nil, false
	}
}
