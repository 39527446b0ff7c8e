package system

import (
	"time"

	"github.com/soitun/survivalcore/internal/scheduler"
)

// RegisterAll binds every tick-family handler to sched and inserts the
// initial singleton row for each family. Each handler fires with
// IdentityModule implicitly — scheduler.Dispatch never calls a Handler on a
// client's behalf (spec §4.3, §7 SchedulingOnly) — so these closures never
// call scheduler.RequireModule themselves; that gate exists for reducers a
// client could otherwise invoke directly, which these are not.
func RegisterAll(sched *scheduler.Scheduler, d *Deps, now int64) {
	sched.RegisterHandler(kindGlobalTick, d.globalTick)
	sched.RegisterHandler(kindPlayerStats, d.playerStatsTick)
	sched.RegisterHandler(kindAppliance, d.applianceTick)
	sched.RegisterHandler(kindDecay, d.decayTick)
	sched.RegisterHandler(kindUpkeep, d.upkeepTick)
	sched.RegisterHandler(kindHostileSpawn, d.hostileSpawnTick)
	sched.RegisterHandler(kindDawnCleanup, d.dawnCleanupTick)
	sched.RegisterHandler(kindWaterFill, d.waterFillTick)
	sched.RegisterHandler(kindDroppedDespawn, d.droppedDespawnTick)
	sched.RegisterHandler(kindProjectileStep, d.projectileStepTick)
	sched.RegisterHandler(kindKnockoutRecovery, d.knockoutRecoveryTick)
	sched.RegisterHandler(kindCorpseDespawn, d.corpseDespawnTick)

	if d.Bus != nil {
		d.registerEventHandlers()
	}
	d.reschedulePersistedCorpses(now)

	d.cleanup.StartedAt = now / 1000
	d.cycleStartedAt = now / 1000

	// kindAppliance rows are per-entity: handler.ToggleBurning inserts one
	// per lit appliance and applianceTick cancels it when the fire goes out,
	// so no singleton row is inserted here.
	sched.Insert(kindGlobalTick, 0, scheduler.Timing{Interval: 1 * time.Second}, now)
	sched.Insert(kindPlayerStats, 0, scheduler.Timing{Interval: 2 * time.Second}, now)
	sched.Insert(kindDecay, 0, scheduler.Timing{Interval: 10 * time.Minute}, now)
	sched.Insert(kindUpkeep, 0, scheduler.Timing{Interval: 30 * time.Minute}, now)
	sched.Insert(kindHostileSpawn, 0, scheduler.Timing{Interval: 25 * time.Second}, now)
	sched.Insert(kindDawnCleanup, 0, scheduler.Timing{Interval: 2 * time.Second}, now)
	sched.Insert(kindWaterFill, 0, scheduler.Timing{Interval: 2 * time.Second}, now)
	sched.Insert(kindDroppedDespawn, 0, scheduler.Timing{Interval: 15 * time.Minute}, now)
	sched.Insert(kindProjectileStep, 0, scheduler.Timing{Interval: 50 * time.Millisecond}, now)
	sched.Insert(kindKnockoutRecovery, 0, scheduler.Timing{Interval: 1 * time.Second}, now)
}
