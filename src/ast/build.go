package ast

import "myvmc/src/ir"

// Build parses src and registers every function it declares into a fresh
// ir.Module named filename, returning the built module.
func Build(filename, src string) (*ir.Module, error) {
	prog, err := Parse(src)
	if err != nil {
		return nil, err
	}

	m := ir.NewModule(filename)
	for _, fn := range prog.Funcs {
		if err := m.RegisterFunction(fn.Name, fn.Params, fn.ReturnType, fn); err != nil {
			return nil, err
		}
	}
	return m, nil
}
