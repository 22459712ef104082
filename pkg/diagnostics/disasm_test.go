package diagnostics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/babyduck-lang/babyduck/pkg/object"
	"github.com/babyduck-lang/babyduck/pkg/parser"
	"github.com/babyduck-lang/babyduck/pkg/quad"
)

func TestDisassemble_PrintsQuadsAndConstants(t *testing.T) {
	color.NoColor = true
	src := `
program p;
var x : int;
main {
  x = 2 + 3;
  print(x);
}
end
`
	prog, err := parser.New(src).Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	qp, err := quad.Generate(prog, nil)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	op, err := object.FromQuadProgram(qp)
	if err != nil {
		t.Fatalf("FromQuadProgram: %v", err)
	}

	var buf bytes.Buffer
	Disassemble(&buf, op)
	got := buf.String()

	for _, want := range []string{"main starts at quad", "PRINT"} {
		if !strings.Contains(got, want) {
			t.Errorf("disassembly missing %q, got:\n%s", want, got)
		}
	}
}
