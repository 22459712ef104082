// Package object defines the BabyDuck object program — the quad
// stream plus every table the VM needs to run it without access to
// the original source — and its binary `.bdo` file encoding.
package object

import (
	"fmt"

	"github.com/babyduck-lang/babyduck/pkg/quad"
	"github.com/babyduck-lang/babyduck/pkg/symbols"
	"github.com/babyduck-lang/babyduck/pkg/types"
)

// ParamEntry records one parameter's type and storage address, in
// declaration order.
type ParamEntry struct {
	Type    types.Type
	Address symbols.Address
}

// FunctionEntry is one procedure's entry in the object program's
// function table: where its code starts and how much memory it needs.
type FunctionEntry struct {
	Name      string
	StartQuad int32
	Params    []ParamEntry
	Resources symbols.ResourceCounts
}

// ConstEntry is one row of the object program's constant table.
type ConstEntry struct {
	Address symbols.Address
	Type    types.Type
	Value   interface{} // int64, float64, or bool
}

// Program is the complete, self-contained compiled artifact: every
// table pkg/vm needs, with no dependency on pkg/ast or pkg/parser.
type Program struct {
	Quads     []quad.Quad
	Strings   []string
	Constants []ConstEntry
	Functions []FunctionEntry
	Globals   symbols.ResourceCounts
	MainStart int32
}

// FromQuadProgram builds an object Program from a freshly generated
// quad.Program, flattening its FunctionDirectory into a linear table.
func FromQuadProgram(p *quad.Program) (*Program, error) {
	op := &Program{
		Quads:     p.Quads,
		Strings:   p.Strings,
		MainStart: p.MainStart,
		Globals:   p.Directory.Global().ResourceCounts(),
	}

	for _, entry := range p.Directory.Constants().Entries() {
		op.Constants = append(op.Constants, ConstEntry{Address: entry.Address, Type: entry.Type, Value: entry.Value})
	}

	for _, name := range p.Directory.Functions() {
		fi, ok := p.Directory.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("internal: function %q missing from directory", name)
		}
		fe := FunctionEntry{
			Name:      name,
			StartQuad: int32(fi.StartQuad),
			Resources: fi.ResourceCounts(),
		}
		for _, param := range fi.Parameters {
			fe.Params = append(fe.Params, ParamEntry{Type: param.Type, Address: param.Address})
		}
		op.Functions = append(op.Functions, fe)
	}

	return op, nil
}
