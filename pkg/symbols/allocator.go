package symbols

import "github.com/babyduck-lang/babyduck/pkg/types"

// ConstKey identifies a literal by its type and value for
// deduplication.
type ConstKey struct {
	Type  types.Type
	Value interface{}
}

// ConstEntry is one row of the program-wide constant table.
type ConstEntry struct {
	Address Address
	Type    types.Type
	Value   interface{}
}

// ConstantTable is the single, program-wide, deduplicating table
// shared by the global allocator and every function's allocator:
// constants live in one shared table regardless of which scope
// interns them.
type ConstantTable struct {
	addrs   map[ConstKey]Address
	entries []ConstEntry
	next    map[Segment]Address
}

// NewConstantTable creates an empty constant table.
func NewConstantTable() *ConstantTable {
	return &ConstantTable{
		addrs: make(map[ConstKey]Address),
		next: map[Segment]Address{
			ConstInt:   ConstInt.Base(),
			ConstFloat: ConstFloat.Base(),
			ConstBool:  ConstBool.Base(),
		},
	}
}

// Intern returns the address for a (type, literal) pair, allocating a
// fresh address only the first time that pair is seen.
func (c *ConstantTable) Intern(t types.Type, literal interface{}) (Address, error) {
	key := ConstKey{Type: t, Value: literal}
	if addr, ok := c.addrs[key]; ok {
		return addr, nil
	}
	seg := ConstSegment(t)
	addr := c.next[seg]
	if addr >= seg.Base()+segmentWidth {
		return 0, &ErrSegmentFull{Segment: seg}
	}
	c.next[seg] = addr + 1
	c.addrs[key] = addr
	c.entries = append(c.entries, ConstEntry{Address: addr, Type: t, Value: literal})
	return addr, nil
}

// Entries returns every interned constant, in allocation order.
func (c *ConstantTable) Entries() []ConstEntry { return c.entries }

// ResourceCounts is the per-type count of locals, parameters, and
// temporaries a scope uses, consulted when sizing activation memory.
type ResourceCounts struct {
	Vars   [3]int // indexed by types.Type
	Params [3]int
	Temps  [3]int
}

// MemoryAllocator hands out addresses from per-segment monotonic
// counters, one instance for the global scope and one per function.
type MemoryAllocator struct {
	global     bool
	constants  *ConstantTable
	next       map[Segment]Address
	varCount   [3]int
	paramCount [3]int
	tempCount  [3]int
}

// NewGlobalAllocator creates the allocator backing the `global` scope's
// program-level variables.
func NewGlobalAllocator(constants *ConstantTable) *MemoryAllocator {
	return &MemoryAllocator{
		global:    true,
		constants: constants,
		next: map[Segment]Address{
			GlobalInt:   GlobalInt.Base(),
			GlobalFloat: GlobalFloat.Base(),
			GlobalBool:  GlobalBool.Base(),
			TempInt:     TempInt.Base(),
			TempFloat:   TempFloat.Base(),
			TempBool:    TempBool.Base(),
		},
	}
}

// NewLocalAllocator creates the allocator backing one function's
// parameters, locals, and temporaries.
func NewLocalAllocator(constants *ConstantTable) *MemoryAllocator {
	return &MemoryAllocator{
		global:    false,
		constants: constants,
		next: map[Segment]Address{
			LocalInt:   LocalInt.Base(),
			LocalFloat: LocalFloat.Base(),
			LocalBool:  LocalBool.Base(),
			TempInt:    TempInt.Base(),
			TempFloat:  TempFloat.Base(),
			TempBool:   TempBool.Base(),
		},
	}
}

func (a *MemoryAllocator) bump(seg Segment) (Address, error) {
	addr := a.next[seg]
	if addr >= seg.Base()+segmentWidth {
		return 0, &ErrSegmentFull{Segment: seg}
	}
	a.next[seg] = addr + 1
	return addr, nil
}

// NewVar allocates a fresh address for a plain variable: a global in
// the `global` scope, or a local in a function scope.
func (a *MemoryAllocator) NewVar(t types.Type) (Address, error) {
	var seg Segment
	if a.global {
		seg = VariableSegment(t)
	} else {
		seg = LocalSegment(t)
	}
	addr, err := a.bump(seg)
	if err != nil {
		return 0, err
	}
	a.varCount[t]++
	return addr, nil
}

// NewParam allocates a fresh address for a function parameter. Valid
// only on a local (function-scope) allocator.
func (a *MemoryAllocator) NewParam(t types.Type) (Address, error) {
	addr, err := a.bump(LocalSegment(t))
	if err != nil {
		return 0, err
	}
	a.paramCount[t]++
	return addr, nil
}

// NewTemp allocates a fresh compiler temporary.
func (a *MemoryAllocator) NewTemp(t types.Type) (Address, error) {
	addr, err := a.bump(TempSegment(t))
	if err != nil {
		return 0, err
	}
	a.tempCount[t]++
	return addr, nil
}

// NewConstant interns a literal in the shared constant table.
func (a *MemoryAllocator) NewConstant(t types.Type, literal interface{}) (Address, error) {
	return a.constants.Intern(t, literal)
}

// Snapshot returns the per-type resource counts this allocator has
// handed out so far.
func (a *MemoryAllocator) Snapshot() ResourceCounts {
	return ResourceCounts{Vars: a.varCount, Params: a.paramCount, Temps: a.tempCount}
}
