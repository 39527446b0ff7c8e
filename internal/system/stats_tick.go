package system

import (
	"github.com/soitun/survivalcore/internal/playerlogic"
	"github.com/soitun/survivalcore/internal/scheduler"
	"github.com/soitun/survivalcore/internal/world"
)

// playerStatsTick implements spec §4.3's per-player stats tick: sweeps
// every online player and runs the hunger/thirst/warmth/health drain (which
// ApplyStatsTick skips for dead or knocked-out players) and insanity
// accumulation (which runs for every online player) from
// internal/playerlogic. Insanity's
// carry-over bookkeeping (internal/playerlogic.InsanityState) has no
// natural home on world.Player since it's tick-local accumulation state,
// not a persisted row field, so it lives on Deps alongside the dawn-cleanup
// bookkeeping.
func (d *Deps) playerStatsTick(row *scheduler.Row, now int64) {
	if d.insanity == nil {
		d.insanity = make(map[world.PlayerID]*playerlogic.InsanityState)
	}
	d.World.Players.Range(func(id world.PlayerID, p *world.Player) bool {
		if !p.IsOnline {
			return true
		}
		eq, _ := d.World.Equipment.Get(id)
		env := environmentFor(d, p)
		playerlogic.ApplyStatsTick(d.World, d.Items, p, eq, now, env, d.Bus)

		st, ok := d.insanity[id]
		if !ok {
			st = &playerlogic.InsanityState{}
			d.insanity[id] = st
		}
		shardCount := shardsCarried(d, p)
		elapsed := 2.0 // matches this tick family's registered interval
		playerlogic.ApplyInsanity(p, st, shardCount, false, false, now, elapsed, d.Bus)
		return true
	})
}

// environmentFor derives the stats-tick Environment for the player (spec
// §4.4 environmental modifiers): a fixed warmth baseline of -0.2 that does
// not vary with time of day, rain from the weather state, biome/tree cover/
// hot spring from the tile underfoot, and the torch flag. Cozy is never set
// and monument zones are not consulted.
func environmentFor(d *Deps, p *world.Player) playerlogic.Environment {
	env := playerlogic.Environment{WarmthBaseline: -0.2, Raining: d.isRaining()}
	cx, cy := int32(p.PosX)/world.ChunkSize, int32(p.PosY)/world.ChunkSize
	tile, ok := d.World.Tiles.Get(world.ChunkIndex(cx, cy))
	if !ok {
		return env
	}
	switch tile.Type {
	case world.TileTundra:
		env.Biome = playerlogic.BiomeTundra
	case world.TileAlpine:
		env.Biome = playerlogic.BiomeAlpine
	case world.TileForest:
		env.TreeCover = true
	case world.TileHotSpringWater:
		env.HotSpring = true
	}
	if eq, ok := d.World.Equipment.Get(p.ID); ok {
		env.HasTorch = p.Flags.TorchLit && !eq.Hand.Empty()
	}
	return env
}

// shardsCarried counts glass-shard-category items across inventory and
// hotbar (spec §4.4's insanity carry mechanic: "shard_count > 3").
func shardsCarried(d *Deps, p *world.Player) int {
	count := 0
	countIn := func(a world.SlotArray) {
		for i := 0; i < a.NumSlots(); i++ {
			s := a.GetSlot(i)
			if s.Empty() {
				continue
			}
			if def, ok := d.Items.Get(s.DefID); ok && def.Name == "glass_shard" {
				if inst, ok := d.World.Items.Get(s.InstanceID); ok {
					count += int(inst.Quantity)
				}
			}
		}
	}
	if inv, ok := d.World.Inventories.Get(p.ID); ok {
		countIn(inv)
	}
	if hb, ok := d.World.Hotbars.Get(p.ID); ok {
		countIn(hb)
	}
	return count
}
