package ecs

import "unsafe"

// Allocator is the external memory-manager collaborator (spec.md §1, §6).
// The core only depends on this interface; a concrete pooling/arena
// backend is out of scope here. Component pools call Allocate when they
// must grow past their cached free list and Deallocate when an instance
// is discarded because its pool is already at maxSize.
type Allocator interface {
	Allocate(size, align uintptr) (unsafe.Pointer, error)
	Deallocate(ptr unsafe.Pointer, size, align uintptr)
}

// DefaultAllocator satisfies Allocator using Go's garbage collector: the
// real allocation is always the caller's typed `new(T)` expression, so
// Allocate/Deallocate exist only as accounting hooks for a caller that
// wants to observe or override allocation (spec.md §6 "All component
// instances created by the engine on behalf of users flow through it").
type DefaultAllocator struct{}

func (DefaultAllocator) Allocate(size, align uintptr) (unsafe.Pointer, error) { return nil, nil }
func (DefaultAllocator) Deallocate(ptr unsafe.Pointer, size, align uintptr)   {}

func sizeOf[T any](zero T) uintptr  { return unsafe.Sizeof(zero) }
func alignOf[T any](zero T) uintptr { return unsafe.Alignof(zero) }
