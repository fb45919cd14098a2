// Package system holds the ecsdemo program's systems: MovementSystem
// integrates Velocity into Position every tick, and DecaySystem removes
// entities whose Health has reached zero, at a fixed interval
// independent of the engine's own tick rate (spec.md §6
// IteratingSystem / IntervalIteratingSystem).
package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/l1jgo/ecsengine/cmd/ecsdemo/component"
	"github.com/l1jgo/ecsengine/internal/core/ecs"
)

// NewMovementSystem returns an IteratingSystem over every entity
// carrying both Position and Velocity, advancing Position by Velocity*dt.
func NewMovementSystem(e *ecs.Engine, priority int) *ecs.IteratingSystem {
	fam := e.GetFamily(ecs.NewFamilyBuilder().
		All(ecs.Type[component.Position](), ecs.Type[component.Velocity]()))
	posMapper := ecs.NewMapper[component.Position](e)
	velMapper := ecs.NewMapper[component.Velocity](e)

	return ecs.NewIteratingSystem(priority, fam, func(ent *ecs.Entity, dt time.Duration) {
		pos, ok := posMapper.Get(ent)
		if !ok {
			return
		}
		vel, ok := velMapper.Get(ent)
		if !ok {
			return
		}
		seconds := dt.Seconds()
		pos.X += vel.DX * seconds
		pos.Y += vel.DY * seconds
	})
}

// NewDecaySystem returns an IntervalIteratingSystem that checks every
// Health-carrying entity once per interval and removes any whose
// Current HP has reached zero. Removal happens through
// engine.RemoveEntity while the engine is mid-Update, so it is
// deferred to the next drain point rather than mutating the family's
// entity list out from under the snapshot this system is iterating
// (spec.md §4.3).
func NewDecaySystem(e *ecs.Engine, priority int, interval time.Duration, log *zap.Logger) *ecs.IntervalIteratingSystem {
	fam := e.GetFamily(ecs.NewFamilyBuilder().All(ecs.Type[component.Health]()))
	healthMapper := ecs.NewMapper[component.Health](e)

	return ecs.NewIntervalIteratingSystem(priority, fam, interval, func(ent *ecs.Entity, dt time.Duration) {
		hp, ok := healthMapper.Get(ent)
		if !ok || hp.Current > 0 {
			return
		}
		log.Debug("entity depleted, scheduling removal", zap.Uint64("entity_id", ent.ID()))
		e.RemoveEntity(ent)
	})
}
