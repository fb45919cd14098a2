package ecs

import "testing"

func TestAddGetHasRemoveComponent(t *testing.T) {
	e := NewEngine()
	ent := e.CreateEntity()
	e.AddEntity(ent)

	if Has[testPosition](ent) {
		t.Fatal("fresh entity should not have testPosition")
	}
	Add(ent, &testPosition{X: 1, Y: 2})
	if !Has[testPosition](ent) {
		t.Fatal("expected testPosition after Add")
	}
	pos, ok := Get[testPosition](ent)
	if !ok || pos.X != 1 || pos.Y != 2 {
		t.Fatalf("unexpected Get result: %+v ok=%v", pos, ok)
	}
	Remove[testPosition](ent)
	if Has[testPosition](ent) {
		t.Fatal("expected testPosition removed")
	}
}

func TestAddReplacesExistingComponent(t *testing.T) {
	e := NewEngine()
	ent := e.CreateEntity()
	e.AddEntity(ent)

	Add(ent, &testPosition{X: 1})
	Add(ent, &testPosition{X: 99})
	pos, ok := Get[testPosition](ent)
	if !ok || pos.X != 99 {
		t.Fatalf("expected replacement component, got %+v ok=%v", pos, ok)
	}
	if len(ent.componentOrder) != 1 {
		t.Fatalf("replacing a component must not duplicate its order entry, got %v", ent.componentOrder)
	}
}

func TestCreateObtainsFromPool(t *testing.T) {
	e := NewEngine()
	ent := e.CreateEntity()
	e.AddEntity(ent)

	c, err := Create[testVelocity](ent)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	c.DX = 3
	if got, ok := Get[testVelocity](ent); !ok || got.DX != 3 {
		t.Fatalf("unexpected post-Create Get: %+v ok=%v", got, ok)
	}
}

func TestRemoveAllComponents(t *testing.T) {
	e := NewEngine()
	ent := e.CreateEntity()
	e.AddEntity(ent)

	Add(ent, &testPosition{})
	Add(ent, &testVelocity{})
	ent.RemoveAllComponents()
	if len(ent.GetAll()) != 0 {
		t.Fatalf("expected no components after RemoveAllComponents, got %v", ent.GetAll())
	}
}

func TestEntityIDAssignedOnAdd(t *testing.T) {
	e := NewEngine()
	ent := e.CreateEntity()
	if ent.IsValid() {
		t.Fatal("entity should be invalid before AddEntity")
	}
	e.AddEntity(ent)
	if !ent.IsValid() || ent.ID() == 0 {
		t.Fatalf("expected a nonzero id after AddEntity, got %d", ent.ID())
	}
}

func TestAddEntityTwicePanics(t *testing.T) {
	e := NewEngine()
	ent := e.CreateEntity()
	e.AddEntity(ent)
	defer func() {
		if recover() == nil {
			t.Fatal("expected AddEntity on an already-added entity to panic")
		}
	}()
	e.AddEntity(ent)
}
