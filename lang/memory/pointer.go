// Package memory implements the virtual memory arena (spec component C): an
// append-only store of LiteralObject values addressed by compact integer
// Pointers, plus the LiteralObject/InternalFieldValue data model itself
// (component D).
package memory

import "fmt"

// Pointer is a small integer address into a VirtualMemory. The zero Pointer
// is address 0, a valid address once something has been stored there; use
// VirtualMemory.Store's return value rather than a zero Pointer to refer to
// "nothing".
type Pointer int

func (p Pointer) String() string { return fmt.Sprintf("#%d", int(p)) }
