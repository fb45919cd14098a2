package ecs

import "testing"

func TestMapperGetHas(t *testing.T) {
	e := NewEngine()
	m := NewMapper[testPosition](e)

	ent := e.CreateEntity()
	e.AddEntity(ent)
	if m.Has(ent) {
		t.Fatal("fresh entity should not have testPosition")
	}
	Add(ent, &testPosition{X: 7})
	if !m.Has(ent) {
		t.Fatal("expected Has true after Add")
	}
	pos, ok := m.Get(ent)
	if !ok || pos.X != 7 {
		t.Fatalf("unexpected Mapper.Get result: %+v ok=%v", pos, ok)
	}
}
