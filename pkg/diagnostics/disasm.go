package diagnostics

import (
	"fmt"
	"io"

	"github.com/babyduck-lang/babyduck/pkg/object"
	"github.com/babyduck-lang/babyduck/pkg/quad"
)

// Disassemble prints an object program's quad stream and constant
// table: one quad per line, operand addresses annotated with their
// segment tag, the instruction index dim and the opcode colorized.
func Disassemble(w io.Writer, p *object.Program) {
	fmt.Fprintf(w, "; main starts at quad %d\n", p.MainStart)
	fmt.Fprintln(w, "; constants")
	for _, c := range p.Constants {
		fmt.Fprintf(w, "  %s = %v\n", AddressLabel(int32(c.Address)), c.Value)
	}
	fmt.Fprintln(w, "; strings")
	for i, s := range p.Strings {
		fmt.Fprintf(w, "  [%d] %q\n", i, s)
	}
	fmt.Fprintln(w, "; functions")
	for _, f := range p.Functions {
		fmt.Fprintf(w, "  %s starts at quad %d, %d param(s)\n", f.Name, f.StartQuad, len(f.Params))
	}
	fmt.Fprintln(w, "; quads")
	for i, q := range p.Quads {
		res := AddressLabel(q.Res)
		if q.Op == quad.OpGoto || q.Op == quad.OpGotoF {
			res = fmt.Sprintf("quad[%d]", q.Res)
		}
		fmt.Fprintf(w, "%s  %-8s %s, %s, %s\n",
			indexColor.Sprintf("%4d", i),
			opColor.Sprint(q.Op.String()),
			AddressLabel(q.Arg1), AddressLabel(q.Arg2), res)
	}
}
