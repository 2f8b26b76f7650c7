package ast

import (
	"fmt"

	"fortio.org/safecast"
)

// Arena is append-only storage addressed by 1-based indices; index 0 is the
// invalid sentinel for every ID type built on top of it.
type Arena[T any] struct {
	data []T
}

// NewArena creates an arena whose backing slice is preallocated to capHint.
func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{
		data: make([]T, 0, capHint),
	}
}

// Allocate stores value and returns its 1-based index.
func (a *Arena[T]) Allocate(value T) uint32 {
	a.data = append(a.data, value)
	idx, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("arena overflow: %w", err))
	}
	return idx
}

// Get returns a pointer to the element at index, or nil for the sentinel 0.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 || int(index) > len(a.data) {
		return nil
	}
	return &a.data[index-1]
}

// Slice exposes the backing storage. Read-only.
func (a *Arena[T]) Slice() []T {
	return a.data
}

// Len returns the number of stored elements.
func (a *Arena[T]) Len() uint32 {
	return uint32(len(a.data))
}
