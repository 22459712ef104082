// Package test holds end-to-end scenarios driving the whole pipeline
// (source -> lexer -> parser -> AST -> QuadGenerator -> object Program
// -> VM), plus the .bdo encode/decode round trip.
package test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babyduck-lang/babyduck/pkg/object"
	"github.com/babyduck-lang/babyduck/pkg/parser"
	"github.com/babyduck-lang/babyduck/pkg/quad"
	"github.com/babyduck-lang/babyduck/pkg/vm"
)

func runProgram(t *testing.T, src string) string {
	t.Helper()
	p := parser.New(src)
	prog, err := p.Parse()
	require.NoError(t, err)

	qp, err := quad.Generate(prog, nil)
	require.NoError(t, err)

	op, err := object.FromQuadProgram(qp)
	require.NoError(t, err)

	machine := vm.New()
	var out bytes.Buffer
	machine.SetOutput(&out)
	require.NoError(t, machine.Run(op))
	return out.String()
}

// Six worked scenarios covering assignment, precedence, parentheses,
// if/else, while, and procedure calls with implicit int->float
// promotion.

func TestScenario1_BasicAssignmentAndPrint(t *testing.T) {
	got := runProgram(t, `program p; var x:int; main { x = 10; print(x); } end`)
	assert.Equal(t, "10\n", got)
}

func TestScenario2_OperatorPrecedence(t *testing.T) {
	got := runProgram(t, `program p; var x:int; main { x = 2 + 3 * 4; print(x); } end`)
	assert.Equal(t, "14\n", got)
}

func TestScenario3_ParenthesesOverridePrecedence(t *testing.T) {
	got := runProgram(t, `program p; var x:int; main { x = (2 + 3) * 4; print(x); } end`)
	assert.Equal(t, "20\n", got)
}

func TestScenario4_IfElse(t *testing.T) {
	got := runProgram(t, `
program p; var x:int; main {
  x = 5;
  if (x > 3) { print(1); } else { print(0); }
} end
`)
	assert.Equal(t, "1\n", got)
}

func TestScenario5_WhileLoop(t *testing.T) {
	got := runProgram(t, `
program p; var x:int; main {
  x = 0;
  while (x < 3) do { print(x); x = x + 1; };
} end
`)
	assert.Equal(t, "0\n1\n2\n", got)
}

func TestScenario6_ProcedureCallWithImplicitPromotion(t *testing.T) {
	got := runProgram(t, `
program p;
void f(a: float, b: int) [ { print(a + b); } ];
main { f(1.5, 2); } end
`)
	assert.Equal(t, "3.5\n", got)
}

// Additional coverage beyond the six worked examples: multiple
// procedures, string printing, constant deduplication, and the .bdo
// persistence round trip.

func TestMultipleProceduresEachCalledFromMain(t *testing.T) {
	got := runProgram(t, `
program p;
void square(n: int) [
  var r : int;
  { r = n * n; print(r); }
];
void cube(n: int) [
  var r : int;
  { r = n * n * n; print(r); }
];
main {
  square(4);
  cube(3);
} end
`)
	assert.Equal(t, "16\n27\n", got)
}

func TestProcedureMayCallAnEarlierDeclaredProcedure(t *testing.T) {
	got := runProgram(t, `
program p;
void square(n: int) [
  var r : int;
  { r = n * n; print(r); }
];
void squarePlusOne(n: int) [
  { square(n); print(n + 1); }
];
main {
  squarePlusOne(4);
} end
`)
	assert.Equal(t, "16\n5\n", got)
}

func TestPrintAcceptsStringLiteralsAndExpressionsTogether(t *testing.T) {
	got := runProgram(t, `
program p;
var total : int;
main {
  total = 3 + 4;
  print("total is", total);
} end
`)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "total is", lines[0])
	assert.Equal(t, "7", lines[1])
}

func TestDuplicateLiteralsShareOneConstantAddress(t *testing.T) {
	p := parser.New(`
program p;
var a, b : int;
main {
  a = 7;
  b = 7;
  print(a);
} end
`)
	prog, err := p.Parse()
	require.NoError(t, err)
	qp, err := quad.Generate(prog, nil)
	require.NoError(t, err)

	entries := qp.Directory.Constants().Entries()
	sevens := 0
	for _, e := range entries {
		if e.Value == int64(7) {
			sevens++
		}
	}
	assert.Equal(t, 1, sevens, "expected the literal 7 to be interned once")
}

func TestObjectFileRoundTripsThroughEncodeDecode(t *testing.T) {
	p := parser.New(`program p; var x:int; main { x = 2 + 3 * 4; print(x); } end`)
	prog, err := p.Parse()
	require.NoError(t, err)
	qp, err := quad.Generate(prog, nil)
	require.NoError(t, err)
	op, err := object.FromQuadProgram(qp)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, object.Encode(op, &buf))

	decoded, err := object.Decode(&buf)
	require.NoError(t, err)

	machine := vm.New()
	var out bytes.Buffer
	machine.SetOutput(&out)
	require.NoError(t, machine.Run(decoded))
	assert.Equal(t, "14\n", out.String())
}
