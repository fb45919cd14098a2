package ecs

import "time"

// IteratingSystem walks a Family's members once per Update, invoking
// process for each (spec.md §6). It snapshots the family's entity list
// before iterating, so an entity added or removed mid-iteration (via a
// deferred op enqueued by process itself) never perturbs the current
// pass — only the next one sees the change (spec.md §8 "iteration
// stability" scenario).
type IteratingSystem struct {
	BaseSystem
	family  *Family
	process func(ent *Entity, dt time.Duration)
}

// NewIteratingSystem returns a system at the given priority that calls
// process for every member of family on each Update.
func NewIteratingSystem(priority int, family *Family, process func(*Entity, time.Duration)) *IteratingSystem {
	return &IteratingSystem{BaseSystem: NewBaseSystem(priority), family: family, process: process}
}

// Family returns the family this system iterates.
func (s *IteratingSystem) Family() *Family { return s.family }

func (s *IteratingSystem) Update(dt time.Duration) {
	snapshot := append([]*Entity(nil), s.family.Entities()...)
	for _, ent := range snapshot {
		s.process(ent, dt)
	}
}

// IntervalIteratingSystem runs its IteratingSystem pass only once
// accumulated time crosses interval, carrying over any remainder
// (spec.md §6).
type IntervalIteratingSystem struct {
	IteratingSystem
	interval    time.Duration
	accumulated time.Duration
}

// NewIntervalIteratingSystem returns an interval-gated iterating system.
func NewIntervalIteratingSystem(priority int, family *Family, interval time.Duration, process func(*Entity, time.Duration)) *IntervalIteratingSystem {
	return &IntervalIteratingSystem{
		IteratingSystem: *NewIteratingSystem(priority, family, process),
		interval:        interval,
	}
}

func (s *IntervalIteratingSystem) Update(dt time.Duration) {
	s.accumulated += dt
	for s.accumulated >= s.interval {
		s.accumulated -= s.interval
		s.IteratingSystem.Update(s.interval)
	}
}
