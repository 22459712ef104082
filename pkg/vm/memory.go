package vm

import (
	"fmt"

	"github.com/babyduck-lang/babyduck/pkg/symbols"
	"github.com/babyduck-lang/babyduck/pkg/types"
)

// Memory is BabyDuck's segmented virtual memory: one flat vector per
// value type, directly indexed by address. Because every address
// carries its segment implicitly (pkg/symbols.SegmentOf),
// a single int64/float64/bool triple of vectors, each sized to cover
// every segment, is enough — no per-scope frame allocation is needed
// since BabyDuck has no recursion and every call's locals/temps are a
// logical overlay onto the same band.
type Memory struct {
	ints        []int64
	floats      []float64
	bools       []bool
	initialized []bool
}

// NewMemory allocates a zeroed memory image sized for the whole
// address space.
func NewMemory() *Memory {
	size := int(symbols.MemorySize())
	return &Memory{
		ints:        make([]int64, size),
		floats:      make([]float64, size),
		bools:       make([]bool, size),
		initialized: make([]bool, size),
	}
}

func (m *Memory) typeOf(addr int32) (types.Type, error) {
	seg, err := symbols.SegmentOf(symbols.Address(addr))
	if err != nil {
		return 0, &RuntimeError{Kind: KindInvalidAddress, Message: err.Error()}
	}
	return symbols.TypeOfSegment(seg), nil
}

func (m *Memory) checkRead(addr int32) error {
	if !m.initialized[addr] {
		return &RuntimeError{Kind: KindUninitialisedRead, Message: errAddr(addr)}
	}
	return nil
}

// Int reads an Int-segment cell.
func (m *Memory) Int(addr int32) (int64, error) {
	if err := m.checkRead(addr); err != nil {
		return 0, err
	}
	return m.ints[addr], nil
}

// Float reads a Float-segment cell, promoting an Int cell transparently
// (arithmetic and print both need "numeric value as float64").
func (m *Memory) Float(addr int32) (float64, error) {
	t, err := m.typeOf(addr)
	if err != nil {
		return 0, err
	}
	if err := m.checkRead(addr); err != nil {
		return 0, err
	}
	if t == types.Int {
		return float64(m.ints[addr]), nil
	}
	return m.floats[addr], nil
}

// Bool reads a Bool-segment cell.
func (m *Memory) Bool(addr int32) (bool, error) {
	if err := m.checkRead(addr); err != nil {
		return false, err
	}
	return m.bools[addr], nil
}

// SetInt stores into an Int-segment cell.
func (m *Memory) SetInt(addr int32, v int64) {
	m.ints[addr] = v
	m.initialized[addr] = true
}

// SetFloat stores into a Float-segment cell.
func (m *Memory) SetFloat(addr int32, v float64) {
	m.floats[addr] = v
	m.initialized[addr] = true
}

// SetBool stores into a Bool-segment cell.
func (m *Memory) SetBool(addr int32, v bool) {
	m.bools[addr] = v
	m.initialized[addr] = true
}

// TypeOf exposes the address's value type, used by the dispatch loop
// to decide which vector an operand lives in.
func (m *Memory) TypeOf(addr int32) (types.Type, error) { return m.typeOf(addr) }

// ClearActivation resets a callee's parameter, local, and temporary
// cells to uninitialised and zero. Every scope's local/temp allocator
// starts at the same segment base (pkg/symbols.LocalSegment/TempSegment),
// so without this step a function's leftover values from a previous
// call would alias whatever scope runs next; ERA calls this before the
// matching PARAMs stage fresh arguments (spec.md §4.5/§3: "activation
// memory for parameters/locals/temps is re-initialised on each
// function entry").
func (m *Memory) ClearActivation(r symbols.ResourceCounts) {
	for t := types.Int; t <= types.Bool; t++ {
		localCount := r.Params[t] + r.Vars[t]
		m.clearRange(symbols.LocalSegment(t).Base(), localCount)
		m.clearRange(symbols.TempSegment(t).Base(), r.Temps[t])
	}
}

func (m *Memory) clearRange(base symbols.Address, count int) {
	for i := 0; i < count; i++ {
		addr := int32(base) + int32(i)
		m.ints[addr] = 0
		m.floats[addr] = 0
		m.bools[addr] = false
		m.initialized[addr] = false
	}
}

func errAddr(addr int32) string {
	return fmt.Sprintf("read before write at address %d", addr)
}
