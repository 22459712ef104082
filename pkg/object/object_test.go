package object

import (
	"bytes"
	"testing"

	"github.com/babyduck-lang/babyduck/pkg/parser"
	"github.com/babyduck-lang/babyduck/pkg/quad"
)

func compile(t *testing.T, src string) *Program {
	t.Helper()
	p := parser.New(src)
	prog, err := p.Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	qp, err := quad.Generate(prog, nil)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	op, err := FromQuadProgram(qp)
	if err != nil {
		t.Fatalf("FromQuadProgram: %v", err)
	}
	return op
}

const sampleSrc = `
program p;
var total : int;
void add(a : int, b : int) [
  var s : int;
  {
    s = a + b;
    print(s);
  }
];
main {
  total = 0;
  add(1, 2);
  print("done");
}
end
`

func TestEncodeDecode_RoundTrips(t *testing.T) {
	want := compile(t, sampleSrc)

	var buf bytes.Buffer
	if err := Encode(want, &buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if len(got.Quads) != len(want.Quads) {
		t.Fatalf("len(Quads) = %d, want %d", len(got.Quads), len(want.Quads))
	}
	for i := range want.Quads {
		if got.Quads[i] != want.Quads[i] {
			t.Errorf("Quads[%d] = %+v, want %+v", i, got.Quads[i], want.Quads[i])
		}
	}
	if len(got.Strings) != len(want.Strings) || (len(want.Strings) > 0 && got.Strings[0] != want.Strings[0]) {
		t.Errorf("Strings = %v, want %v", got.Strings, want.Strings)
	}
	if len(got.Constants) != len(want.Constants) {
		t.Fatalf("len(Constants) = %d, want %d", len(got.Constants), len(want.Constants))
	}
	for i := range want.Constants {
		if got.Constants[i] != want.Constants[i] {
			t.Errorf("Constants[%d] = %+v, want %+v", i, got.Constants[i], want.Constants[i])
		}
	}
	if len(got.Functions) != 1 || got.Functions[0].Name != "add" {
		t.Fatalf("Functions = %+v", got.Functions)
	}
	if got.MainStart != want.MainStart {
		t.Errorf("MainStart = %d, want %d", got.MainStart, want.MainStart)
	}
}

func TestDecode_RejectsBadMagicNumber(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0})
	if _, err := Decode(buf); err == nil {
		t.Fatal("expected an error for a bad magic number")
	}
}
