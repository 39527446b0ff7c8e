// Package system registers the spec §4.3 tick families on a
// scheduler.Scheduler: global tick, per-player stats, per-appliance fuel and
// cooking, building decay, hearth upkeep, hostile spawn pressure, dawn
// cleanup, water-container fill, dropped-item despawn, and projectile step.
// Grounded on the teacher's core/system.Runner (a fixed ordered phase list
// ticked once per server frame), generalized here into scheduler.Row-backed
// periodic sweeps so each family's cadence is independent instead of all
// firing on one shared frame clock.
package system

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/soitun/survivalcore/internal/config"
	"github.com/soitun/survivalcore/internal/core/event"
	"github.com/soitun/survivalcore/internal/data"
	"github.com/soitun/survivalcore/internal/handler"
	"github.com/soitun/survivalcore/internal/npcai"
	"github.com/soitun/survivalcore/internal/playerlogic"
	"github.com/soitun/survivalcore/internal/scheduler"
	"github.com/soitun/survivalcore/internal/spatial"
	"github.com/soitun/survivalcore/internal/world"
)

// Deps bundles the collaborators every tick-family handler needs, mirroring
// handler.Deps but adding the pieces that are system-only (RNG, dawn-cleanup
// bookkeeping) rather than part of the command surface.
type Deps struct {
	Handler   *handler.Deps
	World     *world.World
	Items     *data.ItemTable
	Species   *data.SpeciesTable
	Grid      *spatial.Grid
	Bus       *event.Bus
	Sched     *scheduler.Scheduler
	Rng       *rand.Rand
	Log       *zap.Logger
	Config    config.Config
	Monuments []world.MonumentZone

	cleanup           npcai.DawnCleanup
	cycleStartedAt    int64
	lastResourceSweep int64
	busNow            int64 // delivery timestamp of the event drain in flight
	insanity          map[world.PlayerID]*playerlogic.InsanityState
	weather           weatherState
}

const (
	kindGlobalTick       = "global_tick"
	kindPlayerStats      = "player_stats_tick"
	kindAppliance        = handler.KindApplianceTick
	kindDecay            = "decay_tick"
	kindUpkeep           = "upkeep_tick"
	kindHostileSpawn     = "hostile_spawn_tick"
	kindDawnCleanup      = "dawn_cleanup_tick"
	kindWaterFill        = "water_fill_tick"
	kindDroppedDespawn   = "dropped_despawn_tick"
	kindProjectileStep   = "projectile_step"
	kindKnockoutRecovery = "knockout_recovery_tick"
	kindCorpseDespawn    = "corpse_despawn"
)

// logger returns the configured logger, or a no-op one so tick handlers in
// tests built without logging stay safe to call.
func (d *Deps) logger() *zap.Logger {
	if d.Log != nil {
		return d.Log
	}
	return zap.NewNop()
}
