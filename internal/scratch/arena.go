// Package scratch accounts for the temporary memory one detection call
// needs under a fixed byte budget.
//
// Allocations nest: each one is released in the reverse order of
// acquisition, like a stack allocator carved out of a frame buffer.
package scratch

import (
	"errors"
	"fmt"
)

// Scratch memory errors.
var (
	// ErrOutOfMemory is returned when an allocation would exceed the budget.
	ErrOutOfMemory = errors.New("scratch: out of memory")

	// ErrReleaseOrder is returned when a mark is released out of LIFO order.
	ErrReleaseOrder = errors.New("scratch: release out of order")
)

// Stats describes the current budget usage.
type Stats struct {
	// TotalBytes is the budget in bytes.
	TotalBytes int

	// UsedBytes is the currently allocated memory in bytes.
	UsedBytes int

	// PeakBytes is the highest UsedBytes seen since creation.
	PeakBytes int

	// Allocations is the number of live allocations.
	Allocations int
}

// AvailableBytes returns the remaining budget.
func (s Stats) AvailableBytes() int {
	return s.TotalBytes - s.UsedBytes
}

// String returns a human-readable string of scratch stats.
func (s Stats) String() string {
	return fmt.Sprintf("Scratch[%d/%d KB used, peak %d KB, %d live]",
		s.UsedBytes/1024, s.TotalBytes/1024, s.PeakBytes/1024, s.Allocations)
}

// Mark identifies one allocation.
type Mark struct {
	depth int
	size  int
}

// Size returns the size of the allocation in bytes.
func (m Mark) Size() int { return m.size }

// allocation is one live entry on the arena stack.
type allocation struct {
	name string
	size int
}

// Arena tracks allocations against a byte budget.
//
// An Arena is not safe for concurrent use; each detection call owns one.
type Arena struct {
	limit int
	used  int
	peak  int
	stack []allocation
}

// New returns an arena with the given budget in bytes.
func New(limit int) *Arena {
	return &Arena{limit: max(limit, 0)}
}

// Alloc reserves size bytes. name appears in error messages.
func (a *Arena) Alloc(name string, size int) (Mark, error) {
	if size < 0 || size > a.limit-a.used {
		return Mark{}, fmt.Errorf("%w: %s needs %d bytes, %d available",
			ErrOutOfMemory, name, size, a.limit-a.used)
	}
	return a.push(name, size), nil
}

// AllocUpTo reserves room for at most n elements of elemSize bytes,
// fewer if the budget is smaller, and returns how many fit. At least one
// element must fit.
func (a *Arena) AllocUpTo(name string, n, elemSize int) (int, Mark, error) {
	avail := (a.limit - a.used) / elemSize
	if avail < 1 {
		return 0, Mark{}, fmt.Errorf("%w: %s needs %d bytes, %d available",
			ErrOutOfMemory, name, elemSize, a.limit-a.used)
	}
	n = min(n, avail)
	return n, a.push(name, n*elemSize), nil
}

func (a *Arena) push(name string, size int) Mark {
	a.stack = append(a.stack, allocation{name: name, size: size})
	a.used += size
	a.peak = max(a.peak, a.used)
	return Mark{depth: len(a.stack), size: size}
}

// Release frees the allocation identified by m. Only the most recent live
// allocation may be released.
func (a *Arena) Release(m Mark) error {
	if m.depth == 0 || m.depth != len(a.stack) {
		return fmt.Errorf("%w: depth %d, top %d", ErrReleaseOrder, m.depth, len(a.stack))
	}
	top := a.stack[len(a.stack)-1]
	a.stack = a.stack[:len(a.stack)-1]
	a.used -= top.size
	return nil
}

// Stats returns current usage statistics.
func (a *Arena) Stats() Stats {
	return Stats{
		TotalBytes:  a.limit,
		UsedBytes:   a.used,
		PeakBytes:   a.peak,
		Allocations: len(a.stack),
	}
}
