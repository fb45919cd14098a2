package ecs

import (
	"time"

	"go.uber.org/zap"
)

// PoolConfig bounds a single component (or entity) pool: InitialSize
// instances are pre-allocated eagerly, MaxSize caps how many idle
// instances are retained on release (0 means unbounded) (spec.md §5
// "Pooling"; grounded on the teacher's internal/core/ecs/world.go
// top-level container plus SPEC_FULL.md §4's per-type pool knob).
type PoolConfig struct {
	InitialSize int
	MaxSize     int
}

// Config holds the Engine's tunables: its default pool shape plus any
// per-ComponentType override (SPEC_FULL.md §4 "Supplemented features").
type Config struct {
	DefaultPool    PoolConfig
	ComponentPools map[ComponentType]PoolConfig
	EntityPool     PoolConfig
}

// DefaultConfig returns the Engine configuration used when NewEngine is
// called with no WithConfig option: no pre-allocated instances
// (InitialSize 0) and no cap on idle instances retained (MaxSize 0).
func DefaultConfig() Config {
	return Config{
		DefaultPool: PoolConfig{InitialSize: 0, MaxSize: 0},
		EntityPool:  PoolConfig{InitialSize: 0, MaxSize: 0},
	}
}

func (c Config) poolConfigFor(ct ComponentType) PoolConfig {
	if pc, ok := c.ComponentPools[ct]; ok {
		return pc
	}
	return c.DefaultPool
}

// ComponentEvent is the payload delivered on Engine's componentAdded and
// componentRemoved signals (spec.md §6).
type ComponentEvent struct {
	Entity    *Entity
	Type      ComponentType
	Component any
}

// Engine is the ECS runtime container: it owns every entity, the
// component-type pools, the family registry, the system list, and the
// deferred-operation queues that make mutation safe during update()
// and inside signal listeners (spec.md §1, §6). It is grounded on the
// teacher's internal/core/ecs/world.go top-level container, generalized
// from a fixed game World into the generic engine spec.md describes.
type Engine struct {
	cfg       Config
	allocator Allocator
	log       *zap.Logger

	nextEntityID uint64
	entities     []*Entity
	entitiesByID map[uint64]*Entity
	entityPool   *entityPool

	systems       []System
	systemsByType map[SystemType]System

	familiesByKey map[string]*Family
	familiesByID  []*Family

	componentPools map[ComponentType]any
	releaseFns     map[ComponentType]func(any)

	componentOps    []*componentOperation
	componentOpFree []*componentOperation
	entityOps       []*entityOperation
	entityOpFree    []*entityOperation

	updating  bool
	notifying bool

	entityAdded      *Signal[*Entity]
	entityRemoved    *Signal[*Entity]
	componentAdded   *Signal[ComponentEvent]
	componentRemoved *Signal[ComponentEvent]
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithConfig overrides the default pool configuration.
func WithConfig(cfg Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// WithLogger attaches a zap.Logger; NewEngine falls back to zap.NewNop()
// when omitted or nil (ambient-stack convention, SPEC_FULL.md §2).
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithAllocator overrides the external memory-manager collaborator used
// by component pools; the zero value is DefaultAllocator.
func WithAllocator(a Allocator) Option {
	return func(e *Engine) { e.allocator = a }
}

// NewEngine constructs an empty Engine ready to accept entities and
// systems.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		cfg:              DefaultConfig(),
		allocator:        DefaultAllocator{},
		log:              zap.NewNop(),
		nextEntityID:     1,
		entitiesByID:     make(map[uint64]*Entity),
		systemsByType:    make(map[SystemType]System),
		familiesByKey:    make(map[string]*Family),
		componentPools:   make(map[ComponentType]any),
		releaseFns:       make(map[ComponentType]func(any)),
		entityAdded:      newSignal[*Entity](),
		entityRemoved:    newSignal[*Entity](),
		componentAdded:   newSignal[ComponentEvent](),
		componentRemoved: newSignal[ComponentEvent](),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	e.entityPool = newEntityPool(e.cfg.EntityPool)
	return e
}

// CreateEntity obtains a pooled Entity shell, not yet registered with
// the engine — it has no id and is invisible to families until passed
// to AddEntity (spec.md §3 "construction is a two-phase protocol").
func (e *Engine) CreateEntity() *Entity {
	return e.entityPool.obtain()
}

// AddEntity registers ent, assigning it an id and evaluating it against
// every family (spec.md §4.3). While the op-handler is active the
// registration is deferred to the next drain point.
func (e *Engine) AddEntity(ent *Entity) {
	if ent.id != 0 || ent.pendingAdd {
		panic(ErrEntityAlreadyAdded)
	}
	ent.pendingAdd = true
	if e.opActive() {
		e.enqueueEntityOp(opAddEntity, ent)
		return
	}
	e.addEntityInternal(ent)
}

func (e *Engine) addEntityInternal(ent *Entity) {
	ent.id = e.nextEntityID
	e.nextEntityID++
	ent.pendingAdd = false
	ent.engine = e
	e.entities = append(e.entities, ent)
	e.entitiesByID[ent.id] = ent
	e.notify(func() { e.entityAdded.emit(ent) })
	e.updateFamilyMembership(ent)
}

// RemoveEntity removes ent: family "removed" notifications, entityRemoved,
// release of its components to their pools, then release of the entity
// to the entity pool. ent is marked scheduled for removal at once; while
// the op-handler is active the removal itself is deferred to the next
// safe drain point (spec.md §4.3).
func (e *Engine) RemoveEntity(ent *Entity) {
	if ent.id == 0 || ent.scheduledForRemoval {
		return
	}
	ent.scheduledForRemoval = true
	if e.opActive() {
		e.enqueueEntityOp(opRemoveEntity, ent)
		return
	}
	e.removeEntityInternal(ent)
}

func (e *Engine) removeEntityInternal(ent *Entity) {
	for _, f := range e.familiesByID {
		if ent.familyBits.Get(int(f.id)) {
			f.remove(ent)
			ent.familyBits.Clear(int(f.id))
			e.notify(func() { f.removed.emit(ent) })
		}
	}
	e.notify(func() { e.entityRemoved.emit(ent) })

	order := append([]ComponentType(nil), ent.componentOrder...)
	for _, ct := range order {
		c := ent.componentsByType[ct]
		if rf, ok := e.releaseFns[ct]; ok {
			rf(c)
		}
	}

	delete(e.entitiesByID, ent.id)
	for i, x := range e.entities {
		if x == ent {
			copy(e.entities[i:], e.entities[i+1:])
			e.entities = e.entities[:len(e.entities)-1]
			break
		}
	}
	e.entityPool.release(ent)
}

// RemoveAllEntities schedules every live entity for removal, in current
// order (spec.md §6).
func (e *Engine) RemoveAllEntities() {
	if e.opActive() {
		e.enqueueEntityOp(opRemoveAllEntities, nil)
		return
	}
	e.removeAllEntitiesInternal()
}

func (e *Engine) removeAllEntitiesInternal() {
	for _, ent := range append([]*Entity(nil), e.entities...) {
		e.removeEntityInternal(ent)
	}
}

// GetEntity looks an entity up by id.
func (e *Engine) GetEntity(id uint64) (*Entity, bool) {
	ent, ok := e.entitiesByID[id]
	return ent, ok
}

// Entities returns the engine's live entity list. The returned slice
// aliases internal storage and must be treated as read-only by callers
// (SPEC_FULL.md §4 "getEntities() snapshot vs. live view"); callers that need
// a stable snapshot across mutation should copy it, as IteratingSystem
// does internally.
func (e *Engine) Entities() []*Entity { return e.entities }

// GetEntitiesFor returns f's live member list (spec.md §6).
func (e *Engine) GetEntitiesFor(f *Family) []*Entity { return f.Entities() }

// EntityAdded, EntityRemoved, ComponentAdded, ComponentRemoved expose the
// engine-level signals (spec.md §6).
func (e *Engine) EntityAdded() *Signal[*Entity]             { return e.entityAdded }
func (e *Engine) EntityRemoved() *Signal[*Entity]           { return e.entityRemoved }
func (e *Engine) ComponentAdded() *Signal[ComponentEvent]   { return e.componentAdded }
func (e *Engine) ComponentRemoved() *Signal[ComponentEvent] { return e.componentRemoved }

func (e *Engine) emitComponentAdded(ent *Entity, ct ComponentType, c any) {
	e.notify(func() { e.componentAdded.emit(ComponentEvent{Entity: ent, Type: ct, Component: c}) })
}

func (e *Engine) emitComponentRemoved(ent *Entity, ct ComponentType, c any) {
	e.notify(func() { e.componentRemoved.emit(ComponentEvent{Entity: ent, Type: ct, Component: c}) })
}

// Clear drains any pending deferred operations, removes every entity
// (emitting the usual family/engine signals), and discards every idle
// pooled instance — in that order, matching original_source's
// Engine::clear() (processComponentOperations(); processPendingEntityOperations();
// removeAllEntities(); clearPools();) — but keeps registered systems
// and families (spec.md §4.3 "Drain discipline", §6 "clear"). Draining
// first matters: a deferred op enqueued before Clear runs (e.g. from a
// signal listener) still names a live *Entity; skipping the drain
// would leave it stale and pointing at whatever entity the freed
// struct is handed to next.
func (e *Engine) Clear() {
	e.drainAll()
	e.removeAllEntitiesInternal()
	e.ClearPools()
}

// ClearPools discards every idle pooled instance, entity and component
// alike, forcing the next obtain() to allocate fresh (spec.md §6).
func (e *Engine) ClearPools() {
	e.entityPool.clear()
	for _, p := range e.componentPools {
		if clearer, ok := p.(interface{ clear() }); ok {
			clearer.clear()
		}
	}
}

// Update runs one simulation tick: it drains any pending deferred
// operations, then runs every registered system in ascending-priority
// order (draining again between each), then drains once more so
// mutations made by the final system are visible before Update returns
// (spec.md §4.3, §6).
func (e *Engine) Update(dt time.Duration) {
	e.updating = true
	e.drainAll()
	for _, sys := range append([]System(nil), e.systems...) {
		if sys.CheckProcessing() {
			sys.Update(dt)
		}
		e.drainAll()
	}
	e.updating = false
	e.drainAll()
}
