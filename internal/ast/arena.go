package ast

import (
	"fmt"
	"iter"

	"fortio.org/safecast"
)

// Arena is append-only storage addressed by 1-based indexes; 0 stays free
// for "no node". Pointers returned by Get are invalidated by Allocate.
type Arena[T any] struct {
	data []T
}

func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{data: make([]T, 0, capHint)}
}

// Allocate appends value and returns its index.
func (a *Arena[T]) Allocate(value T) uint32 {
	a.data = append(a.data, value)
	n, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("syntax tree exceeds %d nodes: %w", uint32(1<<32-1), err))
	}
	return n
}

// Get returns nil for 0 and for indexes never allocated.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 || int(index) > len(a.data) {
		return nil
	}
	return &a.data[index-1]
}

func (a *Arena[T]) Len() uint32 {
	return uint32(len(a.data)) //nolint:gosec // bounded by Allocate
}

// All yields every element with its index in allocation order.
func (a *Arena[T]) All() iter.Seq2[uint32, *T] {
	return func(yield func(uint32, *T) bool) {
		for i := range a.data {
			if !yield(uint32(i+1), &a.data[i]) { //nolint:gosec // bounded by Allocate
				return
			}
		}
	}
}
