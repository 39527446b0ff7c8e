package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/soitun/survivalcore/internal/core/event"
	"github.com/soitun/survivalcore/internal/scheduler"
	"github.com/soitun/survivalcore/internal/world"
)

// corpseDespawnDelay is how long a corpse lingers before its one-shot
// despawn row fires (spec §3: a corpse is "destroyed... once emptied or
// after its despawn schedule fires").
const corpseDespawnDelay = 30 * time.Minute

// registerEventHandlers subscribes the tick layer to the cue stream the
// reducers emit. Most subscriptions surface the cue as a structured log
// line — the delivery point a client transport would hook instead (spec
// §4.4: threshold crossings are "reported once per increase (for
// client-side cues)"). PlayerDied additionally schedules the new corpse's
// despawn row, so the death → corpse → cleanup chain runs entirely through
// observable schedule state.
func (d *Deps) registerEventHandlers() {
	event.Subscribe(d.Bus, func(e event.PlayerDied) {
		d.logger().Info("player died",
			zap.Uint64("player", e.PlayerID), zap.Uint64("corpse", e.CorpseID),
			zap.Float64("x", e.DeathX), zap.Float64("y", e.DeathY))
		d.scheduleCorpseDespawn(world.ContainerID(e.CorpseID), d.busNow)
	})
	event.Subscribe(d.Bus, func(e event.PlayerRespawned) {
		d.logger().Info("player respawned", zap.Uint64("player", e.PlayerID))
	})
	event.Subscribe(d.Bus, func(e event.PlayerRegistered) {
		d.logger().Info("player registered", zap.Uint64("player", e.PlayerID), zap.String("username", e.Username))
	})
	event.Subscribe(d.Bus, func(e event.PlayerConnected) {
		d.logger().Info("player connected", zap.Uint64("player", e.PlayerID), zap.Uint64("connection", e.ConnectionID))
	})
	event.Subscribe(d.Bus, func(e event.PlayerDisconnected) {
		d.logger().Info("player disconnected", zap.Uint64("player", e.PlayerID), zap.Uint64("connection", e.ConnectionID))
	})
	event.Subscribe(d.Bus, func(e event.InsanityThresholdCrossed) {
		d.logger().Info("insanity threshold crossed", zap.Uint64("player", e.PlayerID), zap.Int("threshold", e.Threshold))
	})
	event.Subscribe(d.Bus, func(e event.EffectEntered) {
		d.logger().Debug("effect entered", zap.Uint64("player", e.PlayerID), zap.String("effect", string(e.Effect)))
	})
	event.Subscribe(d.Bus, func(e event.EffectExited) {
		d.logger().Debug("effect exited", zap.Uint64("player", e.PlayerID), zap.String("effect", string(e.Effect)))
	})
	event.Subscribe(d.Bus, func(e event.HostileSpawned) {
		d.logger().Debug("hostile spawned", zap.Uint64("hostile", e.HostileID))
	})
	event.Subscribe(d.Bus, func(e event.HostileDespawned) {
		d.logger().Debug("hostile despawned", zap.Uint64("hostile", e.HostileID))
	})
}

// DrainEvents rotates the bus buffers and delivers last tick's events to
// the subscribers above. The game loop calls it once per tick, before
// scheduler dispatch, stamping the delivery time so subscribers that
// schedule follow-up rows never reach for the wall clock themselves.
func (d *Deps) DrainEvents(now int64) {
	d.busNow = now
	d.Bus.SwapBuffers()
	d.Bus.DispatchAll()
}

// scheduleCorpseDespawn inserts the one-shot despawn row for a corpse,
// deduped the same way the per-appliance rows are.
func (d *Deps) scheduleCorpseDespawn(id world.ContainerID, now int64) {
	if _, ok := d.Sched.FindByEntity(kindCorpseDespawn, uint64(id)); ok {
		return
	}
	d.Sched.Insert(kindCorpseDespawn, uint64(id), scheduler.Timing{At: now + corpseDespawnDelay.Milliseconds()}, now)
}

// reschedulePersistedCorpses re-inserts despawn rows for corpses loaded
// from a snapshot, since schedule rows are process-local. A corpse already
// past its window despawns on the next dispatch.
func (d *Deps) reschedulePersistedCorpses(now int64) {
	d.World.Corpses.Range(func(id world.ContainerID, c *world.Corpse) bool {
		due := c.CreatedAt*1000 + corpseDespawnDelay.Milliseconds()
		if due < now {
			due = now
		}
		if _, ok := d.Sched.FindByEntity(kindCorpseDespawn, uint64(id)); !ok {
			d.Sched.Insert(kindCorpseDespawn, uint64(id), scheduler.Timing{At: due}, now)
		}
		return true
	})
}

// corpseDespawnTick removes a corpse whose lingering window has elapsed,
// deleting whatever item instances were never looted. A corpse already
// looted away (or emptied and picked up) makes this a no-op; the one-shot
// row deletes itself either way.
func (d *Deps) corpseDespawnTick(row *scheduler.Row, now int64) {
	id := world.ContainerID(row.EntityID)
	c, ok := d.World.Corpses.Get(id)
	if !ok {
		return
	}
	for i := 0; i < c.NumSlots(); i++ {
		s := c.GetSlot(i)
		if s.Empty() {
			continue
		}
		if it, ok := d.World.Items.Get(s.InstanceID); ok {
			it.Location = world.Unknown()
			d.World.DeleteItem(it.InstanceID)
		}
		c.SetSlot(i, 0, 0)
	}
	d.World.Corpses.Delete(id)
	d.logger().Info("corpse despawned", zap.Uint64("corpse", uint64(id)), zap.Uint64("owner", uint64(c.Owner)))
}
