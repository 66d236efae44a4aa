package memory

import "github.com/dolthub/swiss"

// VirtualMemory is the append-only arena of LiteralObject values (spec
// §4.2). Store is the only allocator; every Pointer it returns stays valid
// for the remainder of the process, and addresses are never reused.
type VirtualMemory struct {
	slots *swiss.Map[int, *LiteralObject]
}

// NewVirtualMemory creates an empty VirtualMemory.
func NewVirtualMemory() *VirtualMemory {
	return &VirtualMemory{slots: swiss.NewMap[int, *LiteralObject](uint32(64))}
}

// Store interns obj at the lowest unused address, stamps obj.Address, and
// returns the new pointer.
func (m *VirtualMemory) Store(obj *LiteralObject) Pointer {
	addr := m.nextUnusedAddress()
	ptr := Pointer(addr)
	obj.Address = &ptr
	m.slots.Put(addr, obj)
	return ptr
}

// Get dereferences ptr.
func (m *VirtualMemory) Get(ptr Pointer) (*LiteralObject, bool) {
	return m.slots.Get(int(ptr))
}

// GetMut dereferences ptr for mutation. Since LiteralObject is always
// stored by pointer, this is identical to Get; the separate name documents
// intent at call sites that mean to mutate the literal in place.
func (m *VirtualMemory) GetMut(ptr Pointer) (*LiteralObject, bool) {
	return m.Get(ptr)
}

// Replace overwrites the slot at ptr with obj, preserving ptr itself. Used
// by method binding (spec §4.3, "Field access") to rebind a function
// literal with its this_object without changing its address.
func (m *VirtualMemory) Replace(ptr Pointer, obj *LiteralObject) {
	obj.Address = &ptr
	m.slots.Put(int(ptr), obj)
}

// nextUnusedAddress scans from 0 for the first unused slot, guaranteeing
// compact, deterministic addresses (required for readable backend output).
func (m *VirtualMemory) nextUnusedAddress() int {
	addr := 0
	for {
		if _, ok := m.slots.Get(addr); !ok {
			return addr
		}
		addr++
	}
}
