package repl

import (
	"bytes"
	"strings"
	"testing"
)

func TestREPL_DeclareThenAssignThenPrint(t *testing.T) {
	var out bytes.Buffer
	r := New(&out, nil)

	r.eval("var x : int;")
	r.eval("x = 21 * 2;")
	r.eval("print(x);")

	if got := strings.TrimSpace(out.String()); got != "42" {
		t.Fatalf("got %q, want %q", got, "42")
	}
}

func TestREPL_VariablesPersistAcrossEvals(t *testing.T) {
	var out bytes.Buffer
	r := New(&out, nil)

	r.eval("var total : int;")
	r.eval("total = 0;")
	r.eval("total = total + 5;")
	r.eval("total = total + 5;")
	r.eval("print(total);")

	if got := strings.TrimSpace(out.String()); got != "10" {
		t.Fatalf("got %q, want %q", got, "10")
	}
}

func TestREPL_UndeclaredVariableReportsErrorWithoutPanicking(t *testing.T) {
	var out bytes.Buffer
	r := New(&out, nil)

	r.eval("y = 1;")

	if !strings.Contains(out.String(), "UndeclaredVariable") {
		t.Fatalf("expected an UndeclaredVariable diagnostic, got %q", out.String())
	}
}

func TestREPL_SyntaxErrorDoesNotStopSession(t *testing.T) {
	var out bytes.Buffer
	r := New(&out, nil)

	r.eval("var x : int;")
	r.eval("x = ;")
	r.eval("x = 7;")
	r.eval("print(x);")

	if got := strings.TrimSpace(out.String()); !strings.HasSuffix(got, "7") {
		t.Fatalf("expected session to recover and print 7, got %q", out.String())
	}
}
