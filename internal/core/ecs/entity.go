package ecs

// Entity owns a set of components indexed by ComponentType, plus the
// bitsets the family index and engine use to track membership
// (spec.md §3).
type Entity struct {
	id                  uint64
	flags               uint32
	scheduledForRemoval bool
	pendingAdd          bool

	componentBits Bits
	familyBits    Bits

	componentsByType map[ComponentType]any
	componentOrder   []ComponentType // dense, insertion-ordered (I2/I6)

	engine *Engine
}

func newEntity() *Entity {
	return &Entity{componentsByType: make(map[ComponentType]any, 8)}
}

func (e *Entity) reset() {
	e.id = 0
	e.flags = 0
	e.scheduledForRemoval = false
	e.pendingAdd = false
	e.componentBits = Bits{}
	e.familyBits = Bits{}
	for k := range e.componentsByType {
		delete(e.componentsByType, k)
	}
	e.componentOrder = e.componentOrder[:0]
	e.engine = nil
}

// ID returns the entity's uuid; 0 iff not currently registered (I1).
func (e *Entity) ID() uint64 { return e.id }

// IsValid reports whether the entity currently lives inside an engine.
func (e *Entity) IsValid() bool { return e.id != 0 }

// IsScheduledForRemoval reports whether Engine.RemoveEntity has been
// called for this entity, even if the removal itself hasn't drained yet.
func (e *Entity) IsScheduledForRemoval() bool { return e.scheduledForRemoval }

// Flags returns the user-defined flag bits.
func (e *Entity) Flags() uint32 { return e.flags }

// SetFlags overwrites the user-defined flag bits.
func (e *Entity) SetFlags(f uint32) { e.flags = f }

// ComponentBits returns a copy of the entity's component bitset.
func (e *Entity) ComponentBits() Bits { return e.componentBits.Clone() }

// FamilyBits returns a copy of the entity's family-membership bitset.
func (e *Entity) FamilyBits() Bits { return e.familyBits.Clone() }

// GetAll returns every attached component in attachment order.
func (e *Entity) GetAll() []any {
	out := make([]any, len(e.componentOrder))
	for i, ct := range e.componentOrder {
		out[i] = e.componentsByType[ct]
	}
	return out
}

// HasType reports whether the entity carries a component of ct, by dense
// id rather than a generic type parameter.
func (e *Entity) HasType(ct ComponentType) bool { return e.componentBits.Get(int(ct)) }

// entityPool is a bounded free list of recycled Entity records, analogous
// to componentPool but untyped (spec.md §5 "Pooling").
type entityPool struct {
	free    []*Entity
	maxSize int
}

func newEntityPool(cfg PoolConfig) *entityPool {
	p := &entityPool{maxSize: cfg.MaxSize}
	for i := 0; i < cfg.InitialSize; i++ {
		p.free = append(p.free, newEntity())
	}
	return p
}

func (p *entityPool) obtain() *Entity {
	if n := len(p.free); n > 0 {
		e := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		return e
	}
	return newEntity()
}

func (p *entityPool) release(e *Entity) {
	e.reset()
	if p.maxSize <= 0 || len(p.free) < p.maxSize {
		p.free = append(p.free, e)
	}
}

func (p *entityPool) clear() { p.free = nil }
