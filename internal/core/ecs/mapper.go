package ecs

// Mapper is a cached, allocation-free accessor for a single component
// type, letting hot-path systems skip the typeOf[T] lookup Get/Has
// otherwise perform on every call (SPEC_FULL.md §4 "Supplemented
// features" — absent from spec.md's §6 surface but a direct analogue
// of original_source's ComponentMapper<T>).
type Mapper[T any] struct {
	ct ComponentType
}

// NewMapper returns a Mapper bound to T, ensuring T's component pool is
// registered with e.
func NewMapper[T any](e *Engine) *Mapper[T] {
	poolFor[T](e)
	return &Mapper[T]{ct: typeOf[T]()}
}

// Get returns ent's component of type T, if present.
func (m *Mapper[T]) Get(ent *Entity) (*T, bool) {
	c, ok := ent.componentsByType[m.ct]
	if !ok {
		return nil, false
	}
	return c.(*T), true
}

// Has reports whether ent carries a component of type T.
func (m *Mapper[T]) Has(ent *Entity) bool {
	return ent.componentBits.Get(int(m.ct))
}
