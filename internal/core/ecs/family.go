package ecs

// FamilyID is the dense id assigned per unique (all, one, exclude)
// triple (spec.md §3). The registry canonicalizes: two descriptors with
// bit-equal triples share the same id and the same backing entity list.
type FamilyID int

// Family is a compiled predicate over ComponentType sets plus the dense,
// insertion-ordered list of entities currently matching it (spec.md §4.2).
type Family struct {
	id                FamilyID
	all, one, exclude Bits
	entities          []*Entity
	index             map[uint64]int // entity id -> position in entities
	added, removed    *Signal[*Entity]
}

// ID returns the family's dense id.
func (f *Family) ID() FamilyID { return f.id }

// Entities returns the live, engine-owned entity list for this family, in
// stable insertion order (spec.md §4.2, §6 `getEntitiesFor`).
func (f *Family) Entities() []*Entity { return f.entities }

// Added returns the signal fired when an entity starts matching this
// family.
func (f *Family) Added() *Signal[*Entity] { return f.added }

// Removed returns the signal fired when an entity stops matching this
// family.
func (f *Family) Removed() *Signal[*Entity] { return f.removed }

// matches implements the predicate from spec.md §4.2:
//
//	e.componentBits ⊇ f.all ∧ (f.one == ∅ ∨ e.componentBits ∩ f.one ≠ ∅) ∧ e.componentBits ∩ f.exclude == ∅
func (f *Family) matches(bits Bits) bool {
	if !bits.TestAll(f.all) {
		return false
	}
	if !f.one.IsEmpty() && !bits.TestAny(f.one) {
		return false
	}
	if bits.TestAny(f.exclude) {
		return false
	}
	return true
}

func (f *Family) add(e *Entity) {
	f.index[e.id] = len(f.entities)
	f.entities = append(f.entities, e)
}

// remove performs a stable (order-preserving) removal: family lists
// visible to users must preserve insertion order (spec.md §4.2), which
// rules out the usual swap-remove trick.
func (f *Family) remove(e *Entity) {
	idx, ok := f.index[e.id]
	if !ok {
		return
	}
	copy(f.entities[idx:], f.entities[idx+1:])
	f.entities = f.entities[:len(f.entities)-1]
	delete(f.index, e.id)
	for i := idx; i < len(f.entities); i++ {
		f.index[f.entities[i].id] = i
	}
}

// FamilyBuilder constructs the (all, one, exclude) triple handed to
// Engine.GetFamily.
type FamilyBuilder struct {
	all, one, exclude Bits
}

// NewFamilyBuilder returns a builder for the empty family, which matches
// every entity until narrowed.
func NewFamilyBuilder() *FamilyBuilder { return &FamilyBuilder{} }

// All requires every listed type to be present.
func (b *FamilyBuilder) All(types ...ComponentType) *FamilyBuilder {
	for _, t := range types {
		b.all.Set(int(t))
	}
	return b
}

// One requires at least one of the listed types to be present (ignored
// if left empty).
func (b *FamilyBuilder) One(types ...ComponentType) *FamilyBuilder {
	for _, t := range types {
		b.one.Set(int(t))
	}
	return b
}

// Exclude requires none of the listed types to be present.
func (b *FamilyBuilder) Exclude(types ...ComponentType) *FamilyBuilder {
	for _, t := range types {
		b.exclude.Set(int(t))
	}
	return b
}

func familyKey(all, one, exclude Bits) string {
	return all.key() + "\x00" + one.key() + "\x00" + exclude.key()
}

// GetFamily canonicalizes b's (all, one, exclude) triple: the same
// triple always returns the same *Family instance (spec.md §4.2, §8
// scenario 6). Registering a new family backfills it with every
// currently-matching entity.
func (e *Engine) GetFamily(b *FamilyBuilder) *Family {
	key := familyKey(b.all, b.one, b.exclude)
	if f, ok := e.familiesByKey[key]; ok {
		return f
	}
	f := &Family{
		id:      FamilyID(len(e.familiesByID)),
		all:     b.all.Clone(),
		one:     b.one.Clone(),
		exclude: b.exclude.Clone(),
		index:   make(map[uint64]int),
		added:   newSignal[*Entity](),
		removed: newSignal[*Entity](),
	}
	e.familiesByKey[key] = f
	e.familiesByID = append(e.familiesByID, f)
	for _, ent := range e.entities {
		if f.matches(ent.componentBits) {
			f.add(ent)
			ent.familyBits.Set(int(f.id))
		}
	}
	return f
}

// updateFamilyMembership re-evaluates ent against every registered
// family, in family-id order, applying the transition table from
// spec.md §4.2.
func (e *Engine) updateFamilyMembership(ent *Entity) {
	for _, f := range e.familiesByID {
		oldBit := ent.familyBits.Get(int(f.id))
		newMatch := f.matches(ent.componentBits)
		if oldBit == newMatch {
			continue
		}
		if newMatch {
			f.add(ent)
			ent.familyBits.Set(int(f.id))
			e.notify(func() { f.added.emit(ent) })
		} else {
			f.remove(ent)
			ent.familyBits.Clear(int(f.id))
			e.notify(func() { f.removed.emit(ent) })
		}
	}
}
