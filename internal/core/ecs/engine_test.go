package ecs

import (
	"testing"
	"time"
)

// countingSystem appends its name to a shared log each Update, letting
// tests assert priority ordering.
type countingSystem struct {
	BaseSystem
	name string
	log  *[]string
}

func (s *countingSystem) Update(dt time.Duration) { *s.log = append(*s.log, s.name) }

func TestSystemsRunInPriorityOrder(t *testing.T) {
	e := NewEngine()
	var log []string
	_ = e.AddSystem(&countingSystem{BaseSystem: NewBaseSystem(10), name: "late", log: &log})
	_ = e.AddSystem(&countingSystem{BaseSystem: NewBaseSystem(1), name: "early", log: &log})
	_ = e.AddSystem(&countingSystem{BaseSystem: NewBaseSystem(5), name: "mid", log: &log})

	e.Update(time.Millisecond)

	want := []string{"early", "mid", "late"}
	if len(log) != len(want) {
		t.Fatalf("expected %v, got %v", want, log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, log)
		}
	}
}

func TestAddSystemRejectsDuplicateConcreteType(t *testing.T) {
	e := NewEngine()
	var log []string
	if err := e.AddSystem(&countingSystem{BaseSystem: NewBaseSystem(0), name: "a", log: &log}); err != nil {
		t.Fatalf("first AddSystem: %v", err)
	}
	err := e.AddSystem(&countingSystem{BaseSystem: NewBaseSystem(0), name: "b", log: &log})
	if err != ErrSystemKindAlreadyRegistered {
		t.Fatalf("expected ErrSystemKindAlreadyRegistered, got %v", err)
	}
}

func TestRemoveSystemUnknownPanics(t *testing.T) {
	e := NewEngine()
	defer func() {
		if recover() == nil {
			t.Fatal("expected RemoveSystem on an unregistered system to panic")
		}
	}()
	e.RemoveSystem(&countingSystem{BaseSystem: NewBaseSystem(0)})
}

// removeSelfSystem only embeds IteratingSystem and adds no behaviour;
// TestEntityRemovalDuringUpdateIsDeferred below builds its self-removing
// system with NewIteratingSystem instead of using this type.
type removeSelfSystem struct {
	IteratingSystem
}

func TestEntityRemovalDuringUpdateIsDeferred(t *testing.T) {
	e := NewEngine()
	fam := e.GetFamily(NewFamilyBuilder().All(Type[testPosition]()))

	var toRemove *Entity
	for i := 0; i < 3; i++ {
		ent := e.CreateEntity()
		e.AddEntity(ent)
		Add(ent, &testPosition{})
		if i == 1 {
			toRemove = ent
		}
	}

	var visited int
	sys := NewIteratingSystem(0, fam, func(ent *Entity, dt time.Duration) {
		visited++
		if ent == toRemove {
			e.RemoveEntity(ent)
		}
	})
	if err := e.AddSystem(sys); err != nil {
		t.Fatalf("AddSystem: %v", err)
	}

	e.Update(time.Millisecond)
	if visited != 3 {
		t.Fatalf("expected the snapshot taken before removal to include all 3 entities, visited %d", visited)
	}
	if len(fam.Entities()) != 2 {
		t.Fatalf("expected removal to take effect after Update drains, family has %d members", len(fam.Entities()))
	}
	if toRemove.IsValid() {
		t.Fatal("expected removed entity to be invalidated")
	}
}

func TestComponentAddDuringUpdateIsDeferred(t *testing.T) {
	e := NewEngine()
	famPos := e.GetFamily(NewFamilyBuilder().All(Type[testPosition]()))
	famVel := e.GetFamily(NewFamilyBuilder().All(Type[testVelocity]()))

	ent := e.CreateEntity()
	e.AddEntity(ent)
	Add(ent, &testPosition{})

	sys := NewIteratingSystem(0, famPos, func(ent *Entity, dt time.Duration) {
		Add(ent, &testVelocity{})
		if Has[testVelocity](ent) {
			t.Error("Has should still report false mid-update, before the op drains")
		}
	})
	if err := e.AddSystem(sys); err != nil {
		t.Fatalf("AddSystem: %v", err)
	}
	e.Update(time.Millisecond)

	if len(famVel.Entities()) != 1 {
		t.Fatalf("expected the deferred Add to have drained by the end of Update, got %v", famVel.Entities())
	}
}

func TestEngineSignalsFireOnAddRemove(t *testing.T) {
	e := NewEngine()
	var added, removed int
	e.EntityAdded().Subscribe(func(*Entity) { added++ })
	e.EntityRemoved().Subscribe(func(*Entity) { removed++ })

	ent := e.CreateEntity()
	e.AddEntity(ent)
	if added != 1 {
		t.Fatalf("expected EntityAdded to fire once, fired %d times", added)
	}
	e.RemoveEntity(ent)
	if removed != 1 {
		t.Fatalf("expected EntityRemoved to fire once, fired %d times", removed)
	}
}

func TestClearRemovesAllEntities(t *testing.T) {
	e := NewEngine()
	for i := 0; i < 5; i++ {
		ent := e.CreateEntity()
		e.AddEntity(ent)
	}
	e.Clear()
	if len(e.Entities()) != 0 {
		t.Fatalf("expected Clear to remove every entity, %d remain", len(e.Entities()))
	}
}

func TestIntervalIteratingSystemGatesOnInterval(t *testing.T) {
	e := NewEngine()
	fam := e.GetFamily(NewFamilyBuilder().All(Type[testPosition]()))
	ent := e.CreateEntity()
	e.AddEntity(ent)
	Add(ent, &testPosition{})

	var ticks int
	sys := NewIntervalIteratingSystem(0, fam, 100*time.Millisecond, func(*Entity, time.Duration) { ticks++ })
	if err := e.AddSystem(sys); err != nil {
		t.Fatalf("AddSystem: %v", err)
	}

	e.Update(40 * time.Millisecond)
	if ticks != 0 {
		t.Fatalf("expected no tick before the interval elapses, got %d", ticks)
	}
	e.Update(70 * time.Millisecond)
	if ticks != 1 {
		t.Fatalf("expected exactly one tick once accumulated time crosses the interval, got %d", ticks)
	}
}
