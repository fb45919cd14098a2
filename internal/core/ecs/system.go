package ecs

import (
	"reflect"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SystemType is the dense id of a concrete System implementation,
// assigned the same way ComponentType is (spec.md §6 "at most one
// instance of a given concrete System type may be registered").
type SystemType int

var (
	systemTypeMu   sync.Mutex
	systemTypeByRT = map[reflect.Type]SystemType{}
	nextSystemType SystemType
)

// systemTypeOf returns the dense SystemType for s's concrete type,
// assigning one on first use (mirrors component.go's typeOf[T]).
func systemTypeOf(s System) SystemType {
	rt := reflect.TypeOf(s)
	if rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	systemTypeMu.Lock()
	defer systemTypeMu.Unlock()
	if st, ok := systemTypeByRT[rt]; ok {
		return st
	}
	st := nextSystemType
	nextSystemType++
	systemTypeByRT[rt] = st
	return st
}

// System is a unit of per-tick behavior registered with an Engine
// (spec.md §6). Priority determines update order (ascending, ties
// broken by registration order); CheckProcessing gates whether Update
// runs this tick.
type System interface {
	Priority() int
	Processing() bool
	SetProcessing(bool)
	AddedToEngine(e *Engine)
	RemovedFromEngine(e *Engine)
	CheckProcessing() bool
	Update(dt time.Duration)
}

// BaseSystem supplies the bookkeeping every System needs so concrete
// systems only implement Update; the priority is passed to
// NewBaseSystem. The
// teacher's internal/core/system package used a bare `Phase() Phase`
// interface with no embeddable helper; BaseSystem adds one since
// spec.md's open `priority int` plus per-system enable/disable has more
// state to carry than a fixed Phase enum.
type BaseSystem struct {
	priority   int
	processing bool
}

// NewBaseSystem returns a BaseSystem at the given priority, enabled by
// default.
func NewBaseSystem(priority int) BaseSystem {
	return BaseSystem{priority: priority, processing: true}
}

func (b *BaseSystem) Priority() int        { return b.priority }
func (b *BaseSystem) Processing() bool     { return b.processing }
func (b *BaseSystem) SetProcessing(p bool) { b.processing = p }
func (b *BaseSystem) CheckProcessing() bool { return b.processing }
func (b *BaseSystem) AddedToEngine(e *Engine)   {}
func (b *BaseSystem) RemovedFromEngine(e *Engine) {}

// AddSystem registers s at its declared priority, maintaining ascending
// order with stable insertion among equal priorities (spec.md §6). It
// returns ErrSystemKindAlreadyRegistered if a System of the same
// concrete type is already registered.
func (e *Engine) AddSystem(s System) error {
	st := systemTypeOf(s)
	if _, ok := e.systemsByType[st]; ok {
		e.log.Error("system already registered", zap.Int("system_type", int(st)))
		return ErrSystemKindAlreadyRegistered
	}
	idx := sort.Search(len(e.systems), func(i int) bool {
		return e.systems[i].Priority() > s.Priority()
	})
	e.systems = append(e.systems, nil)
	copy(e.systems[idx+1:], e.systems[idx:])
	e.systems[idx] = s
	e.systemsByType[st] = s
	s.AddedToEngine(e)
	e.log.Debug("system registered", zap.Int("system_type", int(st)), zap.Int("priority", s.Priority()))
	return nil
}

// RemoveSystem unregisters s. It panics with ErrSystemNotRegistered if
// s (by concrete type) was never added.
func (e *Engine) RemoveSystem(s System) {
	st := systemTypeOf(s)
	if _, ok := e.systemsByType[st]; !ok {
		panic(ErrSystemNotRegistered)
	}
	delete(e.systemsByType, st)
	for i, x := range e.systems {
		if x == s {
			copy(e.systems[i:], e.systems[i+1:])
			e.systems = e.systems[:len(e.systems)-1]
			break
		}
	}
	s.RemovedFromEngine(e)
}

// GetSystem returns the registered System of concrete type T, if any.
// Go methods cannot carry their own type parameters, so this is a
// package-level function rather than an Engine method (same rationale
// as store.go's Get/Has/Add/Create/Remove).
func GetSystem[T System](e *Engine) (T, bool) {
	var zero T
	want := reflect.TypeOf(zero)
	if want.Kind() == reflect.Ptr {
		want = want.Elem()
	}
	for _, s := range e.systems {
		rt := reflect.TypeOf(s)
		if rt.Kind() == reflect.Ptr {
			rt = rt.Elem()
		}
		if rt == want {
			return s.(T), true
		}
	}
	return zero, false
}
