package npcai

import (
	"math"
	"math/rand"

	"github.com/soitun/survivalcore/internal/data"
	"github.com/soitun/survivalcore/internal/spatial"
	"github.com/soitun/survivalcore/internal/world"
)

// Per-species and total caps on concurrently live hostiles within a
// player's spawn ring (spec §4.5 step 2).
const (
	CapTotal        = 6
	CapShorebound   = 3
	CapShardkin     = 4
	CapDrownedWatch = 1
)

// Ring radii bounding where a candidate position may land relative to the
// triggering player (spec §4.5 step 4: "outside no-spawn inner ring, inside
// allowed outer ring").
const (
	InnerRingRadius  = 60.0
	MiddleRingRadius = 180.0
	OuterRingRadius  = 320.0
)

// Per-attempt spawn probabilities by species, consulted in priority order
// (spec §4.5 step 3: "Attempt spawns in priority order with stochastic
// probability").
const (
	spawnChanceShorebound   = 0.35
	spawnChanceShardkin     = 0.25
	spawnChanceDrownedWatch = 0.08
)

// PlacementValidator checks a candidate spawn point against world bounds,
// buildings, rune-stone deterrence, water, and the generic placement
// validator (spec §4.5 step 4; spec §4.2's ValidatePlacement covers the
// last of these). Supplied by the caller (the hostile-spawn-attempt tick
// system) since it needs world geometry npcai doesn't own.
type PlacementValidator func(x, y float64, species data.Species) bool

// Candidate is a single spawn ring offer the caller's geometry sampling
// produced for one species attempt.
type Candidate struct {
	X, Y float64
}

// RingSampler proposes ring-constrained candidate points around a base
// point for one species attempt. The caller supplies this because the
// random-in-annulus sampling depends on world bounds/terrain the npcai
// package itself has no access to; npcai only orders/gates the attempts.
type RingSampler func(baseX, baseY, innerR, outerR float64, rng *rand.Rand) Candidate

// AttemptSpawns implements spec §4.5 steps 2-4 for one player trigger:
// counts nearby hostiles against the caps, then attempts Shorebound,
// Shardkin, and DrownedWatch spawns in that priority order, each gated by
// its own stochastic chance and (for DrownedWatch) camping. Returns the
// hostiles actually created.
func AttemptSpawns(w *world.World, species *data.SpeciesTable, grid *spatial.Grid, baseX, baseY float64, isCamping bool, rng *rand.Rand, sampler RingSampler, validate PlacementValidator, nowSec int64) []*world.Hostile {
	nearby := spatial.WithinRadius(grid.Nearby(baseX, baseY), baseX, baseY, OuterRingRadius, 0)
	total, byShorebound, byShardkin, byDrownedWatch := countHostiles(w, nearby)

	var spawned []*world.Hostile

	if total < CapTotal && byShorebound < CapShorebound && rng.Float64() < spawnChanceShorebound {
		if h := trySpawnOne(w, species, data.SpeciesShorebound, baseX, baseY, rng, sampler, validate, nowSec); h != nil {
			spawned = append(spawned, h)
			total++
		}
	}

	if total < CapTotal && byShardkin < CapShardkin && rng.Float64() < spawnChanceShardkin {
		tmpl, ok := species.Get(data.SpeciesShardkin)
		if ok {
			groupSize := tmpl.GroupMin + rng.Intn(tmpl.GroupMax-tmpl.GroupMin+1)
			baseCandidate := sampler(baseX, baseY, MiddleRingRadius, OuterRingRadius, rng)
			for i := 0; i < groupSize && total < CapTotal && byShardkin < CapShardkin; i++ {
				offX := baseCandidate.X + (rng.Float64()*2-1)*tmpl.SpreadRadius
				offY := baseCandidate.Y + (rng.Float64()*2-1)*tmpl.SpreadRadius
				if !validate(offX, offY, data.SpeciesShardkin) {
					continue
				}
				h := spawnHostile(w, tmpl, offX, offY, nowSec)
				spawned = append(spawned, h)
				total++
				byShardkin++
			}
		}
	}

	if isCamping && total < CapTotal && byDrownedWatch < CapDrownedWatch && rng.Float64() < spawnChanceDrownedWatch {
		if h := trySpawnOne(w, species, data.SpeciesDrownedWatch, baseX, baseY, rng, sampler, validate, nowSec); h != nil {
			spawned = append(spawned, h)
		}
	}

	return spawned
}

func trySpawnOne(w *world.World, species *data.SpeciesTable, sp data.Species, baseX, baseY float64, rng *rand.Rand, sampler RingSampler, validate PlacementValidator, nowSec int64) *world.Hostile {
	tmpl, ok := species.Get(sp)
	if !ok {
		return nil
	}
	innerR, outerR := MiddleRingRadius, OuterRingRadius
	if sp == data.SpeciesDrownedWatch {
		innerR, outerR = OuterRingRadius, OuterRingRadius*1.5
	}
	c := sampler(baseX, baseY, innerR, outerR, rng)
	if !validate(c.X, c.Y, sp) {
		return nil
	}
	return spawnHostile(w, tmpl, c.X, c.Y, nowSec)
}

func spawnHostile(w *world.World, tmpl data.SpeciesTemplate, x, y float64, nowSec int64) *world.Hostile {
	id := w.NextHostileID()
	h := &world.Hostile{
		ID: id, Species: tmpl.Species,
		PosX: x, PosY: y,
		State: world.HostileIdle, StateChangedAt: nowSec,
		Health: tmpl.Health, MaxHealth: tmpl.Health,
		SpawnOriginX: x, SpawnOriginY: y,
	}
	w.Hostiles.Put(id, h)
	return h
}

func countHostiles(w *world.World, nearby []spatial.Occupant) (total, shorebound, shardkin, drownedWatch int) {
	ids := make(map[uint64]bool, len(nearby))
	for _, o := range nearby {
		if o.Kind == spatial.KindHostile {
			ids[o.ID] = true
		}
	}
	w.Hostiles.Range(func(id world.HostileID, h *world.Hostile) bool {
		if !ids[uint64(id)] || h.Dead() {
			return true
		}
		total++
		switch h.Species {
		case data.SpeciesShorebound:
			shorebound++
		case data.SpeciesShardkin:
			shardkin++
		case data.SpeciesDrownedWatch:
			drownedWatch++
		}
		return true
	})
	return
}

// DefaultRingSampler picks a uniformly random point in the annulus
// [innerR, outerR] around (baseX, baseY), the simplest geometry satisfying
// spec §4.5's ring constraints; callers needing terrain-aware sampling
// (avoid water, avoid buildings pre-filter) can supply their own and still
// rely on AttemptSpawns' validate hook for the hard rejection.
func DefaultRingSampler(baseX, baseY, innerR, outerR float64, rng *rand.Rand) Candidate {
	angle := rng.Float64() * 2 * math.Pi
	r := innerR + rng.Float64()*(outerR-innerR)
	return Candidate{X: baseX + r*math.Cos(angle), Y: baseY + r*math.Sin(angle)}
}
