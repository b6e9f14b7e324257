package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"myvmc/src/ast"
	"myvmc/src/binary"
	"myvmc/src/bytecode"
	"myvmc/src/ir"
	"myvmc/src/util"
)

// ---------------------
// ----- Constants -----
// ---------------------

// Exit codes. Assertion-style failures (duplicate symbol, immediate
// overflow, missing main, register pressure) share exit 4.
const (
	exitOK               = 0
	exitArgs             = 1
	exitTooMany          = 2
	exitUnknownOrLiteral = 3
	exitAssertion        = 4
	exitUnsupported      = 5
	exitIO               = 10
)

// ---------------------
// ----- functions -----
// ---------------------

// run executes the full AST -> IR -> bytecode -> binary pipeline and
// returns the process exit code matching whatever error, if any, it
// encountered.
func run(opt util.Options) int {
	src, err := util.ReadSource(opt.Src)
	if err != nil {
		fmt.Printf("error: %s\n", err)
		return exitArgs
	}

	filename := opt.Src
	if filename == "" {
		filename = "stdin"
	}

	diag := util.NewWriter(os.Stdout)

	irMod, err := ast.Build(filename, src)
	if err != nil {
		fmt.Printf("error: %s\n", err)
		return codeForIRError(err)
	}
	if opt.Verbose {
		diag.WriteString(irMod.String())
		diag.WriteString("\n")
	}

	bcMod := bytecode.NewModule(irMod)
	if err := bcMod.Build(); err != nil {
		fmt.Printf("error: %s\n", err)
		return codeForBytecodeError(err)
	}
	if opt.Verbose {
		diag.WriteString(bcMod.String())
		diag.WriteString("\n")
	}
	if err := diag.Flush(); err != nil {
		fmt.Printf("error: %s\n", err)
		return exitIO
	}

	out := opt.Out
	if out == "" {
		out = outputName(filename)
	}
	if err := binary.Emit(bcMod, out); err != nil {
		fmt.Printf("error: %s\n", err)
		return codeForBinaryError(err)
	}
	return exitOK
}

// outputName derives the output path by replacing everything from the
// last '.' onward with ".bin".
func outputName(src string) string {
	if i := strings.LastIndex(src, "."); i >= 0 {
		return src[:i] + ".bin"
	}
	return src + ".bin"
}

func codeForIRError(err error) int {
	switch {
	case errors.Is(err, ir.ErrDuplicateSymbol):
		return exitAssertion
	case errors.Is(err, ir.ErrUnknownSymbol), errors.Is(err, ir.ErrUnsupportedLiteralKind):
		return exitUnknownOrLiteral
	default:
		return exitUnknownOrLiteral
	}
}

func codeForBytecodeError(err error) int {
	switch {
	case errors.Is(err, bytecode.ErrUnsupportedOperandType), errors.Is(err, bytecode.ErrUnsupportedIROp):
		return exitUnsupported
	case errors.Is(err, bytecode.ErrTooManyArguments), errors.Is(err, bytecode.ErrTooManyParameters):
		return exitTooMany
	case errors.Is(err, bytecode.ErrImmediateOverflow), errors.Is(err, bytecode.ErrRegisterPressureExceeded):
		return exitAssertion
	default:
		return exitAssertion
	}
}

func codeForBinaryError(err error) int {
	switch {
	case errors.Is(err, binary.ErrMissingMain):
		return exitAssertion
	case errors.Is(err, binary.ErrIO):
		return exitIO
	default:
		return exitIO
	}
}

func main() {
	opt, err := util.ParseArgs()
	if err != nil {
		fmt.Printf("command line argument error: %s\n", err)
		os.Exit(exitArgs)
	}
	os.Exit(run(opt))
}
