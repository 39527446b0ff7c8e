package handler

import (
	"github.com/soitun/survivalcore/internal/apperr"
	"github.com/soitun/survivalcore/internal/core/event"
	"github.com/soitun/survivalcore/internal/playerlogic"
	"github.com/soitun/survivalcore/internal/world"
)

// attackIntervalMs bounds how often a player's equipped weapon may land a
// hit, independent of the swing animation cooldown (spec §7
// CooldownViolation, backed by PlayerLastAttackTimestamp).
const attackIntervalMs = 400

// AttackHostile implements the melee-combat command named in spec §4.5's
// combat surface: resolves a hit against a hostile within weapon reach,
// applying the equipped weapon's damage roll (or bare-handed fallback).
func (d *Deps) AttackHostile(actor world.PlayerID, targetID world.HostileID, now int64) error {
	p, err := d.requireActor(actor)
	if err != nil {
		return err
	}
	if last, ok := d.World.LastAttacks.Get(actor); ok && now-last.At < attackIntervalMs {
		return apperr.New(apperr.CooldownViolation, "attack is still on cooldown")
	}
	target, ok := d.World.Hostiles.Get(targetID)
	if !ok || target.Dead() {
		return apperr.New(apperr.NotFound, "hostile not found")
	}

	reach := 40.0
	dmgLow, dmgHigh := 3.0, 6.0
	if eq, ok := d.World.Equipment.Get(actor); ok && !eq.Hand.Empty() {
		if def, ok := d.Items.Get(eq.Hand.DefID); ok {
			dmgLow, dmgHigh = def.DamageLow, def.DamageHigh
		}
	}
	dx, dy := target.PosX-p.PosX, target.PosY-p.PosY
	if dx*dx+dy*dy > reach*reach {
		return apperr.New(apperr.DistanceViolation, "target is out of weapon reach")
	}

	dmg := dmgLow
	if dmgHigh > dmgLow {
		dmg = (dmgLow + dmgHigh) / 2
	}
	target.Health -= dmg
	p.LastHitTime = now
	d.World.LastAttacks.Put(actor, &world.PlayerLastAttackTimestamp{Owner: actor, At: now})

	if target.Dead() {
		d.World.Hostiles.Delete(targetID)
		event.Emit(d.Bus, event.HostileDespawned{HostileID: uint64(targetID)})
	} else {
		target.TargetPlayer = actor
		target.State = world.HostileChasing
		target.StateChangedAt = now / 1000
	}
	return nil
}

// killCommandCooldownMs gates the self-destruct `/kill` command (spec §5:
// "command-level cooldowns... enforced by comparing a stored last-event
// timestamp against now").
const killCommandCooldownMs = 5 * 60 * 1000

// KillSelf implements the `/kill` admin-style self-destruct command: kills
// the caller outright, subject to a cooldown so it can't be spammed to dodge
// fall damage or combat.
func (d *Deps) KillSelf(actor world.PlayerID, now int64) error {
	p, err := d.requireActor(actor)
	if err != nil {
		return err
	}
	if cd, ok := d.World.KillCooldowns.Get(actor); ok && now-cd.LastUsedAt < killCommandCooldownMs {
		return apperr.New(apperr.CooldownViolation, "/kill is still on cooldown")
	}
	d.World.KillCooldowns.Put(actor, &world.PlayerKillCommandCooldown{Owner: actor, LastUsedAt: now})
	p.Stats.Health = 0
	corpseID := playerlogic.Die(d.World, p, now/1000)
	event.Emit(d.Bus, event.PlayerDied{PlayerID: uint64(p.ID), CorpseID: uint64(corpseID), DeathX: p.PosX, DeathY: p.PosY})
	return nil
}
