package quad

import (
	"strings"
	"testing"

	"github.com/babyduck-lang/babyduck/pkg/parser"
)

func mustGenerate(t *testing.T, src string) *Program {
	t.Helper()
	p := parser.New(src)
	prog, err := p.Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	obj, err := Generate(prog, nil)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	return obj
}

func TestGenerate_SimpleAssignAndPrint(t *testing.T) {
	obj := mustGenerate(t, `
program p;
var x : int;
main {
  x = 2 + 3;
  print(x);
}
end
`)
	var adds, assigns, prints int
	for _, q := range obj.Quads {
		switch q.Op {
		case OpAdd:
			adds++
		case OpAssign:
			assigns++
		case OpPrint:
			prints++
		}
	}
	if adds != 1 || assigns != 1 || prints != 1 {
		t.Fatalf("got adds=%d assigns=%d prints=%d, want 1,1,1", adds, assigns, prints)
	}
}

func TestGenerate_IfElseEmitsTwoJumps(t *testing.T) {
	obj := mustGenerate(t, `
program p;
var x : int;
main {
  if (x > 0) {
    print(x);
  } else {
    x = 0;
  }
}
end
`)
	var gotoF, gotoUnc int
	for _, q := range obj.Quads {
		switch q.Op {
		case OpGotoF:
			gotoF++
		case OpGoto:
			gotoUnc++
		}
	}
	if gotoF != 1 {
		t.Errorf("GOTOF count = %d, want 1", gotoF)
	}
	if gotoUnc != 2 {
		// one to skip the function table preamble, one to skip the else branch
		t.Errorf("GOTO count = %d, want 2", gotoUnc)
	}
}

func TestGenerate_WhileJumpsBackToCondition(t *testing.T) {
	obj := mustGenerate(t, `
program p;
var i : int;
main {
  while (i < 10) do {
    i = i + 1;
  };
}
end
`)
	var backEdge bool
	for idx, q := range obj.Quads {
		if q.Op == OpGoto && int(q.Res) < idx {
			backEdge = true
		}
	}
	if !backEdge {
		t.Error("expected a GOTO with a target earlier than itself")
	}
}

func TestGenerate_CallEmitsEraParamGosub(t *testing.T) {
	obj := mustGenerate(t, `
program p;
void show(x : int) [
  {
    print(x);
  }
];
main {
  show(5);
}
end
`)
	var era, param, gosub, endfunc int
	for _, q := range obj.Quads {
		switch q.Op {
		case OpEra:
			era++
		case OpParam:
			param++
		case OpGosub:
			gosub++
		case OpEndFunc:
			endfunc++
		}
	}
	if era != 1 || param != 1 || gosub != 1 || endfunc != 1 {
		t.Fatalf("got era=%d param=%d gosub=%d endfunc=%d, want 1 each", era, param, gosub, endfunc)
	}
}

func TestGenerate_CallToLaterDeclaredFunctionIsRejected(t *testing.T) {
	p := parser.New(`
program p;
void a() [ { b(); } ];
void b() [ { print(1); } ];
main { a(); }
end
`)
	prog, err := p.Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	_, err = Generate(prog, nil)
	if err == nil {
		t.Fatal("expected an error for a call to a procedure declared later")
	}
	if !strings.Contains(err.Error(), "not allowed") {
		t.Errorf("error = %v, want mention of calls not being allowed", err)
	}
}

func TestGenerate_TypeMismatchIsReported(t *testing.T) {
	p := parser.New(`
program p;
var b : bool;
main { b = 1 + 2; }
end
`)
	prog, _ := p.Parse()
	_, err := Generate(prog, nil)
	if err == nil {
		t.Fatal("expected a type error assigning int to bool")
	}
}

func TestGenerate_UndeclaredVariableIsReported(t *testing.T) {
	p := parser.New(`
program p;
main { x = 1; }
end
`)
	prog, _ := p.Parse()
	_, err := Generate(prog, nil)
	if err == nil {
		t.Fatal("expected an undeclared variable error")
	}
}

func TestGenerate_StringLiteralsAreDeduped(t *testing.T) {
	obj := mustGenerate(t, `
program p;
main {
  print("hi");
  print("hi");
  print("bye");
}
end
`)
	if len(obj.Strings) != 2 {
		t.Fatalf("len(Strings) = %d, want 2", len(obj.Strings))
	}
}
