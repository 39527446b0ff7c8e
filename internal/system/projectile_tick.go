package system

import (
	"github.com/soitun/survivalcore/internal/core/event"
	"github.com/soitun/survivalcore/internal/playerlogic"
	"github.com/soitun/survivalcore/internal/scheduler"
	"github.com/soitun/survivalcore/internal/world"
)

// projectileHitRadius is the collision radius a projectile uses against
// hostiles and players alike (spec §4.3 "projectile step", supplemented
// from original_source/ranged_combat.rs: a flat radius rather than per-target
// hitboxes).
const projectileHitRadius = 20.0

// projectileStepTick advances every in-flight Projectile by its velocity,
// resolves hits against hostiles and players, and removes expired shots
// (spec §4.3).
func (d *Deps) projectileStepTick(row *scheduler.Row, now int64) {
	dt := projectileStepIntervalSecs(row)

	var toRemove []world.ProjectileID
	d.World.Projectiles.Range(func(id world.ProjectileID, pr *world.Projectile) bool {
		if now >= pr.ExpiresAt {
			toRemove = append(toRemove, id)
			return true
		}
		pr.PosX += pr.VelX * dt
		pr.PosY += pr.VelY * dt

		if hit := d.hostileHitBy(pr); hit != nil {
			d.resolveHostileHit(pr, hit, now)
			toRemove = append(toRemove, id)
			return true
		}
		if hit, ok := d.playerHitBy(pr); ok {
			d.resolvePlayerHit(pr, hit, now)
			toRemove = append(toRemove, id)
			return true
		}
		return true
	})
	for _, id := range toRemove {
		d.World.Projectiles.Delete(id)
	}
}

// projectileStepIntervalSecs derives dt from the row's own registered
// cadence rather than hardcoding it, so retuning register.go's interval
// doesn't desync the motion math.
func projectileStepIntervalSecs(row *scheduler.Row) float64 {
	if row.Timing.Interval > 0 {
		return row.Timing.Interval.Seconds()
	}
	return 0.05
}

func (d *Deps) hostileHitBy(pr *world.Projectile) *world.Hostile {
	var found *world.Hostile
	d.World.Hostiles.Range(func(_ world.HostileID, h *world.Hostile) bool {
		if h.Dead() {
			return true
		}
		dx, dy := h.PosX-pr.PosX, h.PosY-pr.PosY
		if dx*dx+dy*dy <= projectileHitRadius*projectileHitRadius {
			found = h
			return false
		}
		return true
	})
	return found
}

func (d *Deps) resolveHostileHit(pr *world.Projectile, h *world.Hostile, now int64) {
	dmg := (pr.DamageLow + pr.DamageHigh) / 2
	h.Health -= dmg
	if h.Dead() {
		d.World.Hostiles.Delete(h.ID)
		event.Emit(d.Bus, event.HostileDespawned{HostileID: uint64(h.ID)})
		return
	}
	h.TargetPlayer = pr.Owner
	h.State = world.HostileChasing
	h.StateChangedAt = now / 1000
}

func (d *Deps) playerHitBy(pr *world.Projectile) (*world.Player, bool) {
	var found *world.Player
	d.World.Players.Range(func(id world.PlayerID, p *world.Player) bool {
		if id == pr.Owner || !p.IsOnline || !p.CanIssueCommands() {
			return true
		}
		dx, dy := p.PosX-pr.PosX, p.PosY-pr.PosY
		if dx*dx+dy*dy <= projectileHitRadius*projectileHitRadius {
			found = p
			return false
		}
		return true
	})
	return found, found != nil
}

// resolvePlayerHit applies projectile damage to a player. A shot that would
// drop them to zero downs them instead (spec §4.4's knocked-out state): they
// lose command admission, stop taking environmental damage, and the
// recovery schedule revives them. Environmental death (stats tick) remains
// the terminal path.
func (d *Deps) resolvePlayerHit(pr *world.Projectile, p *world.Player, now int64) {
	dmg := (pr.DamageLow + pr.DamageHigh) / 2
	p.Stats.Health -= dmg
	if p.Stats.Health > 0 {
		return
	}
	p.Stats.Health = 1
	playerlogic.KnockOut(d.World, p, now/1000)
}
