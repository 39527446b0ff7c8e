package playerlogic

import (
	"github.com/soitun/survivalcore/internal/core/event"
	"github.com/soitun/survivalcore/internal/data"
	"github.com/soitun/survivalcore/internal/world"
)

const (
	hungerDrainPerSec = world.MaxHunger / (3 * 3600)
	thirstDrainPerSec = world.MaxThirst / (2 * 3600)

	lowNeedDamagePerSec  = 0.5
	zeroNeedDamageFactor = 2.0
	lowNeedThreshold     = 20.0
	lowWarmthThreshold   = 6.67

	regenMinHealth    = 51.0
	regenPerSec       = 0.5
	cozyRegenFactor   = 2.0
)

// Biome scales warmth loss for players standing outside a temperate zone
// (spec §4.4 warmth modifiers).
type Biome int

const (
	BiomeTemperate Biome = iota
	BiomeTundra
	BiomeAlpine
)

func (b Biome) coldMultiplier() float64 {
	switch b {
	case BiomeTundra:
		return 1.5
	case BiomeAlpine:
		return 2.0
	default:
		return 1.0
	}
}

// Environment is the per-tick ambient context a stats tick needs but
// doesn't own: time-of-day warmth baseline, weather, and the zone effects a
// player currently stands in. The caller (the per-player stat tick system)
// computes this once per player per tick from world/weather/zone state;
// playerlogic only consumes it.
type Environment struct {
	WarmthBaseline float64 // spec §4.4: +2.0 at noon ramping to -0.10 at midnight
	Raining        bool
	Biome          Biome
	HotSpring      bool
	Fumarole       bool
	TreeCover      bool
	Cozy           bool // near a burning campfire/hearth, or a broth-cozy effect
	HasTorch       bool
	BrothCold      bool
	BrothGeneric   bool // any broth effect halving low-need damage
	Bleeding       bool
	Burning        bool
	Poisoned       bool
}

// ApplyStatsTick implements spec §4.4 Stats. now is unix millis; the caller
// supplies elapsed seconds derived by comparing now against
// p.LastStatUpdate (spec §5's compare-and-merge discipline — this function
// only ever advances LastStatUpdate forward, never rewinds it). eq may be
// nil (no cold-resistance contribution) for callers that haven't resolved
// the player's equipment row.
func ApplyStatsTick(w *world.World, items *data.ItemTable, p *world.Player, eq *world.ActiveEquipment, now int64, env Environment, bus *event.Bus) {
	if p.IsDead || p.IsKnockedOut {
		p.LastStatUpdate = now
		return
	}
	elapsed := float64(now-p.LastStatUpdate) / 1000.0
	if elapsed <= 0 {
		p.LastStatUpdate = now
		return
	}

	thirstDrain := thirstDrainPerSec
	if env.TreeCover {
		thirstDrain *= 0.75
	}
	p.Stats.Hunger -= hungerDrainPerSec * elapsed
	p.Stats.Thirst -= thirstDrain * elapsed

	p.Stats.Warmth += warmthDelta(p, items, eq, env) * elapsed

	p.Stats.Hunger = clamp(p.Stats.Hunger, 0, world.MaxHunger)
	p.Stats.Thirst = clamp(p.Stats.Thirst, 0, world.MaxThirst)
	p.Stats.Warmth = clamp(p.Stats.Warmth, 0, world.MaxWarmth)

	if dmg := lowNeedDamage(p, env); dmg > 0 {
		p.Stats.Health -= dmg * elapsed
	} else if canRegen(p, env) {
		rate := regenPerSec
		if env.Cozy {
			rate *= cozyRegenFactor
		}
		p.Stats.Health += rate * elapsed
	}
	p.Stats.Health = clamp(p.Stats.Health, 0, world.MaxHealth)

	p.LastStatUpdate = now

	if p.Stats.Health <= 0 {
		corpseID := Die(w, p, now/1000)
		if bus != nil {
			event.Emit(bus, event.PlayerDied{
				PlayerID: uint64(p.ID), CorpseID: uint64(corpseID),
				DeathX: p.PosX, DeathY: p.PosY,
			})
		}
	}
}

// warmthDelta composes the per-second warmth rate from the time-of-day
// baseline, weather, biome, zone overrides, and cold-immunity stacking
// (spec §9: "immunity short-circuits, resistance scales, zones zero out —
// full armor immunity must never produce partial cold damage").
func warmthDelta(p *world.Player, items *data.ItemTable, eq *world.ActiveEquipment, env Environment) float64 {
	if env.HotSpring || env.Fumarole {
		return 2.0
	}

	delta := env.WarmthBaseline
	if env.Raining {
		delta -= 0.5
	}
	if delta >= 0 {
		return delta
	}

	delta *= env.Biome.coldMultiplier()
	if p.IsInsideBuilding {
		delta *= 0.65
	}

	resist := 0.0
	if eq != nil && items != nil {
		resist = eq.ArmorColdResist(items)
	}
	if resist >= 1 {
		return 0
	}
	delta *= 1 - resist

	if env.BrothCold {
		delta *= 0.5
	}
	if env.HasTorch {
		delta += 0.5
	}
	return delta
}

func lowNeedDamage(p *world.Player, env Environment) float64 {
	dmg := 0.0
	dmg += needDamage(p.Stats.Hunger, lowNeedThreshold)
	dmg += needDamage(p.Stats.Thirst, lowNeedThreshold)
	dmg += needDamage(p.Stats.Warmth, lowWarmthThreshold)
	if env.BrothCold || env.BrothGeneric {
		dmg *= 0.5
	}
	return dmg
}

func needDamage(value, threshold float64) float64 {
	if value > threshold {
		return 0
	}
	if value <= 0 {
		return lowNeedDamagePerSec * zeroNeedDamageFactor
	}
	return lowNeedDamagePerSec
}

func canRegen(p *world.Player, env Environment) bool {
	if p.Stats.Health < regenMinHealth {
		return false
	}
	if p.Stats.Hunger <= lowNeedThreshold || p.Stats.Thirst <= lowNeedThreshold || p.Stats.Warmth <= lowWarmthThreshold {
		return false
	}
	return !env.Bleeding && !env.Burning && !env.Poisoned
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
