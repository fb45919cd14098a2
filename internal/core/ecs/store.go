package ecs

// This file implements the Entity & Component Store operations from
// spec.md §4.1 as generic package-level functions, since Go methods
// cannot carry their own type parameters. Each routes through the
// deferred-operation engine when an entity is already engine-owned and
// iteration/notification is in progress (spec.md §4.3); components may
// still be attached directly, bypassing the engine entirely, to an
// entity that hasn't been added to an Engine yet ("allowed pre-add",
// spec.md §3 lifecycle).

// Get returns the entity's component of type T, if present.
func Get[T any](e *Entity) (*T, bool) {
	c, ok := e.componentsByType[typeOf[T]()]
	if !ok {
		return nil, false
	}
	return c.(*T), true
}

// Has reports whether the entity carries a component of type T.
func Has[T any](e *Entity) bool {
	return e.componentBits.Get(int(typeOf[T]()))
}

// Add attaches a pre-built component to the entity, replacing any
// existing component of the same type (spec.md §4.1 "Replacement
// policy").
func Add[T any](e *Entity, c *T) {
	ct := typeOf[T]()
	if e.engine != nil {
		poolFor[T](e.engine) // ensure a pool + release function exist for T
	}
	attachComponent(e, ct, c)
}

// Create obtains a T from its pool, attaches it to the entity, and
// returns the pointer for the caller to populate. The T is either a new
// zero value or a previously released instance; a reused instance has
// passed through its Reset hook if T implements Resetter, and otherwise
// keeps the field values it was released with. An entity not yet added
// to an Engine gets a new zero value instead of a pooled one. This is
// the idiomatic-Go equivalent of spec.md §6's
// `create<T>(args…)`, which has no Go analogue for arbitrary
// constructor arguments without code generation.
func Create[T any](e *Entity) (*T, error) {
	ct := typeOf[T]()
	if e.engine == nil {
		c := new(T)
		attachComponent(e, ct, c)
		return c, nil
	}
	c, err := poolFor[T](e.engine).obtain()
	if err != nil {
		return nil, err
	}
	attachComponent(e, ct, c)
	return c, nil
}

// Remove detaches the entity's component of type T, if present, and
// returns it to its pool.
func Remove[T any](e *Entity) {
	detachComponent(e, typeOf[T]())
}

// attachComponent implements add(entity, component) (spec.md §4.1):
// enqueue while the op-handler is active, else apply immediately.
func attachComponent(e *Entity, ct ComponentType, c any) {
	if e.engine != nil && e.engine.opActive() {
		e.engine.enqueueComponentOp(opAddComponent, e, ct, c)
		return
	}
	addComponentInternal(e, ct, c)
}

// detachComponent implements remove(entity, type) (spec.md §4.1).
func detachComponent(e *Entity, ct ComponentType) {
	if e.engine != nil && e.engine.opActive() {
		e.engine.enqueueComponentOp(opRemoveComponent, e, ct, nil)
		return
	}
	removeComponentInternal(e, ct)
}

// addComponentInternal is addInternal from spec.md §4.1: replace policy
// fires componentRemoved(old) before componentAdded(new), followed by a
// single updateFamilyMembership call.
func addComponentInternal(e *Entity, ct ComponentType, c any) {
	if e.componentBits.Get(int(ct)) {
		old := e.componentsByType[ct]
		if e.engine != nil {
			e.engine.emitComponentRemoved(e, ct, old)
			if rf, ok := e.engine.releaseFns[ct]; ok {
				rf(old)
			}
		}
	} else {
		e.componentOrder = append(e.componentOrder, ct)
	}
	e.componentsByType[ct] = c
	e.componentBits.Set(int(ct))
	if e.engine != nil {
		e.engine.emitComponentAdded(e, ct, c)
		e.engine.updateFamilyMembership(e)
	}
}

// removeComponentInternal fires componentRemoved before the slot is
// cleared, so listeners can still read it (spec.md §4.1).
func removeComponentInternal(e *Entity, ct ComponentType) {
	c, ok := e.componentsByType[ct]
	if !ok {
		return
	}
	if e.engine != nil {
		e.engine.emitComponentRemoved(e, ct, c)
	}
	removeFromOrder(e, ct)
	delete(e.componentsByType, ct)
	e.componentBits.Clear(int(ct))
	if e.engine != nil {
		if rf, ok := e.engine.releaseFns[ct]; ok {
			rf(c)
		}
		e.engine.updateFamilyMembership(e)
	}
}

func removeFromOrder(e *Entity, ct ComponentType) {
	for i, x := range e.componentOrder {
		if x == ct {
			copy(e.componentOrder[i:], e.componentOrder[i+1:])
			e.componentOrder = e.componentOrder[:len(e.componentOrder)-1]
			return
		}
	}
}

// RemoveAllComponents removes every component currently present on the
// entity (spec.md §4.1 "removeAll"), each through the same deferred-op
// path an individual Remove would take.
func (e *Entity) RemoveAllComponents() {
	order := append([]ComponentType(nil), e.componentOrder...)
	for _, ct := range order {
		detachComponent(e, ct)
	}
}
