package ecs

import "go.uber.org/zap"

// componentOpKind tags a queued ComponentOperation (spec.md §4.3).
type componentOpKind uint8

const (
	opAddComponent componentOpKind = iota
	opRemoveComponent
)

type componentOperation struct {
	kind          componentOpKind
	entity        *Entity
	componentType ComponentType
	component     any
}

// entityOpKind tags a queued EntityOperation (spec.md §4.3).
type entityOpKind uint8

const (
	opAddEntity entityOpKind = iota
	opRemoveEntity
	opRemoveAllEntities
)

type entityOperation struct {
	kind   entityOpKind
	entity *Entity
}

func (e *Engine) obtainComponentOp() *componentOperation {
	if n := len(e.componentOpFree); n > 0 {
		op := e.componentOpFree[n-1]
		e.componentOpFree = e.componentOpFree[:n-1]
		return op
	}
	return &componentOperation{}
}

func (e *Engine) releaseComponentOp(op *componentOperation) {
	*op = componentOperation{}
	e.componentOpFree = append(e.componentOpFree, op)
}

func (e *Engine) obtainEntityOp() *entityOperation {
	if n := len(e.entityOpFree); n > 0 {
		op := e.entityOpFree[n-1]
		e.entityOpFree = e.entityOpFree[:n-1]
		return op
	}
	return &entityOperation{}
}

func (e *Engine) releaseEntityOp(op *entityOperation) {
	*op = entityOperation{}
	e.entityOpFree = append(e.entityOpFree, op)
}

func (e *Engine) enqueueComponentOp(kind componentOpKind, ent *Entity, ct ComponentType, c any) {
	op := e.obtainComponentOp()
	op.kind, op.entity, op.componentType, op.component = kind, ent, ct, c
	e.componentOps = append(e.componentOps, op)
}

func (e *Engine) enqueueEntityOp(kind entityOpKind, ent *Entity) {
	op := e.obtainEntityOp()
	op.kind, op.entity = kind, ent
	e.entityOps = append(e.entityOps, op)
}

// opActive reports whether entity/component mutation must be deferred:
// during update() or while a signal listener is running (spec.md §4.3).
func (e *Engine) opActive() bool { return e.updating || e.notifying }

// notify runs fn with notifying=true so any mutation it triggers is
// deferred rather than perturbing the store it's iterating (spec.md
// §4.3's re-entrancy rule for signal listeners).
func (e *Engine) notify(fn func()) {
	prev := e.notifying
	e.notifying = true
	fn()
	e.notifying = prev
}

// drainAll repeats processComponentOperations/processPendingEntityOperations
// until both queues are empty, since draining one can enqueue into the
// other (spec.md §4.3 "Draining is repeated until both queues are empty").
func (e *Engine) drainAll() {
	for {
		nc := e.processComponentOperations()
		ne := e.processPendingEntityOperations()
		if nc > 0 || ne > 0 {
			e.log.Debug("drained deferred operations", zap.Int("component_ops", nc), zap.Int("entity_ops", ne))
		}
		if len(e.componentOps) == 0 && len(e.entityOps) == 0 {
			return
		}
	}
}

// processComponentOperations drains the component-op queue FIFO,
// applying Add/Remove in order; it runs before the entity-op queue at
// every drain point, since component changes may affect family
// membership that pending entity work depends on (spec.md §5).
func (e *Engine) processComponentOperations() int {
	n := 0
	for len(e.componentOps) > 0 {
		op := e.componentOps[0]
		e.componentOps = e.componentOps[1:]
		n++
		e.applyComponentOp(op)
		e.releaseComponentOp(op)
	}
	return n
}

func (e *Engine) processPendingEntityOperations() int {
	n := 0
	for len(e.entityOps) > 0 {
		op := e.entityOps[0]
		e.entityOps = e.entityOps[1:]
		n++
		e.applyEntityOp(op)
		e.releaseEntityOp(op)
	}
	return n
}

func (e *Engine) applyComponentOp(op *componentOperation) {
	ent := op.entity
	if ent.engine == nil {
		// The entity was fully removed (and possibly pool-recycled)
		// before this op drained: silently drop it (spec.md §7
		// "Deferred ops that become nonsensical after intervening
		// mutations ... are silently dropped").
		return
	}
	switch op.kind {
	case opAddComponent:
		addComponentInternal(ent, op.componentType, op.component)
	case opRemoveComponent:
		removeComponentInternal(ent, op.componentType)
	}
}

func (e *Engine) applyEntityOp(op *entityOperation) {
	switch op.kind {
	case opAddEntity:
		if op.entity.id == 0 {
			e.addEntityInternal(op.entity)
		}
	case opRemoveEntity:
		e.removeEntityInternal(op.entity)
	case opRemoveAllEntities:
		e.removeAllEntitiesInternal()
	}
}
