package ecs

import (
	"reflect"
	"sync"
	"unsafe"
)

// ComponentType is a dense, process-lifetime-stable id assigned the first
// time a concrete component type is observed (spec.md §3).
type ComponentType int

var (
	componentTypeMu    sync.Mutex
	componentTypeByRT  = map[reflect.Type]ComponentType{}
	componentTypeNames []string
	nextComponentType  ComponentType
)

// typeOf returns the dense ComponentType for T, assigning one on first use.
func typeOf[T any]() ComponentType {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	componentTypeMu.Lock()
	defer componentTypeMu.Unlock()
	if ct, ok := componentTypeByRT[rt]; ok {
		return ct
	}
	ct := nextComponentType
	nextComponentType++
	componentTypeByRT[rt] = ct
	componentTypeNames = append(componentTypeNames, rt.String())
	return ct
}

// Type returns the dense ComponentType for T without touching an entity.
// Used to build Family predicates.
func Type[T any]() ComponentType { return typeOf[T]() }

// ComponentTypeName returns the registered type's name, or "<unknown>" if
// t was never assigned (e.g. an out-of-range value from another process).
func ComponentTypeName(t ComponentType) string {
	componentTypeMu.Lock()
	defer componentTypeMu.Unlock()
	if int(t) >= 0 && int(t) < len(componentTypeNames) {
		return componentTypeNames[t]
	}
	return "<unknown>"
}

// Resetter is implemented by components that need to clear references
// (slices, pointers) before returning to their pool. Release calls it
// when present; it is optional.
type Resetter interface {
	Reset()
}

// componentPool is a bounded per-type free list. obtain reuses a reset
// instance when available, else allocates a new one through the
// configured Allocator; release runs the optional Resetter hook then
// stores the instance if the pool has room, else discards it.
type componentPool[T any] struct {
	free      []*T
	maxSize   int
	allocator Allocator
}

func newComponentPool[T any](cfg PoolConfig, alloc Allocator) *componentPool[T] {
	p := &componentPool[T]{maxSize: cfg.MaxSize, allocator: alloc}
	for i := 0; i < cfg.InitialSize; i++ {
		p.free = append(p.free, new(T))
	}
	return p
}

func (p *componentPool[T]) obtain() (*T, error) {
	if n := len(p.free); n > 0 {
		c := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		return c, nil
	}
	var zero T
	if p.allocator != nil {
		if _, err := p.allocator.Allocate(sizeOf(zero), alignOf(zero)); err != nil {
			return nil, err
		}
	}
	return new(T), nil
}

func (p *componentPool[T]) release(c *T) {
	if r, ok := any(c).(Resetter); ok {
		r.Reset()
	}
	if p.maxSize <= 0 || len(p.free) < p.maxSize {
		p.free = append(p.free, c)
		return
	}
	if p.allocator != nil {
		var zero T
		p.allocator.Deallocate(unsafe.Pointer(c), sizeOf(zero), alignOf(zero))
	}
}

func (p *componentPool[T]) clear() { p.free = nil }
func (p *componentPool[T]) len() int { return len(p.free) }

// poolFor returns (creating if needed) the engine's pool for T, and
// registers the type-erased release function the Entity/Component store
// uses on detach (spec.md §4.1).
func poolFor[T any](e *Engine) *componentPool[T] {
	ct := typeOf[T]()
	if existing, ok := e.componentPools[ct]; ok {
		return existing.(*componentPool[T])
	}
	p := newComponentPool[T](e.cfg.poolConfigFor(ct), e.allocator)
	e.componentPools[ct] = p
	e.releaseFns[ct] = func(c any) { p.release(c.(*T)) }
	return p
}
