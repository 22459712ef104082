package symbols

import (
	"testing"

	"github.com/babyduck-lang/babyduck/pkg/types"
)

func TestMemoryAllocator_NewVarAssignsSequentialAddresses(t *testing.T) {
	a := NewGlobalAllocator(NewConstantTable())

	a1, err := a.NewVar(types.Int)
	if err != nil {
		t.Fatalf("NewVar: %v", err)
	}
	a2, err := a.NewVar(types.Int)
	if err != nil {
		t.Fatalf("NewVar: %v", err)
	}
	if a1 != GlobalInt.Base() || a2 != GlobalInt.Base()+1 {
		t.Fatalf("got addresses %d, %d; want %d, %d", a1, a2, GlobalInt.Base(), GlobalInt.Base()+1)
	}
}

func TestMemoryAllocator_LocalAndTempSegmentsAreDisjoint(t *testing.T) {
	a := NewLocalAllocator(NewConstantTable())

	local, err := a.NewVar(types.Float)
	if err != nil {
		t.Fatalf("NewVar: %v", err)
	}
	param, err := a.NewParam(types.Float)
	if err != nil {
		t.Fatalf("NewParam: %v", err)
	}
	temp, err := a.NewTemp(types.Float)
	if err != nil {
		t.Fatalf("NewTemp: %v", err)
	}

	if local != LocalFloat.Base() {
		t.Errorf("local = %d, want %d", local, LocalFloat.Base())
	}
	if param != LocalFloat.Base()+1 {
		t.Errorf("param = %d, want %d", param, LocalFloat.Base()+1)
	}
	if temp != TempFloat.Base() {
		t.Errorf("temp = %d, want %d", temp, TempFloat.Base())
	}
}

func TestMemoryAllocator_SnapshotCountsByKind(t *testing.T) {
	a := NewLocalAllocator(NewConstantTable())
	a.NewParam(types.Int)
	a.NewParam(types.Int)
	a.NewVar(types.Int)
	a.NewTemp(types.Bool)

	snap := a.Snapshot()
	if snap.Params[types.Int] != 2 {
		t.Errorf("Params[Int] = %d, want 2", snap.Params[types.Int])
	}
	if snap.Vars[types.Int] != 1 {
		t.Errorf("Vars[Int] = %d, want 1", snap.Vars[types.Int])
	}
	if snap.Temps[types.Bool] != 1 {
		t.Errorf("Temps[Bool] = %d, want 1", snap.Temps[types.Bool])
	}
}

func TestMemoryAllocator_SegmentExhaustionReturnsErrSegmentFull(t *testing.T) {
	a := NewGlobalAllocator(NewConstantTable())
	for i := 0; i < segmentWidth; i++ {
		if _, err := a.NewVar(types.Int); err != nil {
			t.Fatalf("unexpected error at %d: %v", i, err)
		}
	}
	_, err := a.NewVar(types.Int)
	if err == nil {
		t.Fatal("expected ErrSegmentFull, got nil")
	}
	if _, ok := err.(*ErrSegmentFull); !ok {
		t.Fatalf("expected *ErrSegmentFull, got %T", err)
	}
}

func TestConstantTable_DedupesEqualLiterals(t *testing.T) {
	c := NewConstantTable()

	a1, err := c.Intern(types.Int, int64(5))
	if err != nil {
		t.Fatalf("Intern: %v", err)
	}
	a2, err := c.Intern(types.Int, int64(5))
	if err != nil {
		t.Fatalf("Intern: %v", err)
	}
	a3, err := c.Intern(types.Int, int64(6))
	if err != nil {
		t.Fatalf("Intern: %v", err)
	}

	if a1 != a2 {
		t.Errorf("equal literals got different addresses: %d, %d", a1, a2)
	}
	if a3 == a1 {
		t.Errorf("distinct literals got the same address: %d", a3)
	}
	if len(c.Entries()) != 2 {
		t.Errorf("len(Entries()) = %d, want 2", len(c.Entries()))
	}
}

func TestConstantTable_SharedAcrossAllocators(t *testing.T) {
	c := NewConstantTable()
	global := NewGlobalAllocator(c)
	local := NewLocalAllocator(c)

	a1, err := global.NewConstant(types.Bool, true)
	if err != nil {
		t.Fatalf("NewConstant: %v", err)
	}
	a2, err := local.NewConstant(types.Bool, true)
	if err != nil {
		t.Fatalf("NewConstant: %v", err)
	}
	if a1 != a2 {
		t.Errorf("constant table not shared: %d != %d", a1, a2)
	}
}
