package handler

import (
	"github.com/soitun/survivalcore/internal/apperr"
	"github.com/soitun/survivalcore/internal/core/event"
	"github.com/soitun/survivalcore/internal/playerlogic"
	"github.com/soitun/survivalcore/internal/spatial"
	"github.com/soitun/survivalcore/internal/world"
)

// PlaceSleepingBag places a respawn anchor and registers it as the actor's
// current one (spec §4.4). Like a stash, a bag lies flat and never blocks
// movement, so it skips the footprint-overlap check.
func (d *Deps) PlaceSleepingBag(actor world.PlayerID, instanceID world.ItemInstanceID, x, y float64, now int64) (world.ContainerID, error) {
	p, err := d.requireActor(actor)
	if err != nil {
		return 0, err
	}
	if err := d.withinReach(p, x, y); err != nil {
		return 0, err
	}
	if err := d.validatePlacement(x, y, spatial.PlacementRule{}); err != nil {
		return 0, err
	}
	if err := d.consumeDeployable(p, instanceID); err != nil {
		return 0, err
	}
	id := d.World.NextContainerID()
	d.World.SleepingBags.Put(id, &world.SleepingBag{
		ID: id, Owner: actor, PosX: x, PosY: y,
		ChunkIndex: d.chunkIndexAt(x, y), PlacedAt: now / 1000,
	})
	p.SleepingBagID = id
	return id, nil
}

// requireDeadActor is the respawn-path counterpart of requireActor: the spec
// admits no command from a dead player except respawn (spec §3 Player
// invariants), so these two reducers resolve the actor themselves.
func (d *Deps) requireDeadActor(id world.PlayerID) (*world.Player, error) {
	p, ok := d.World.Players.Get(id)
	if !ok {
		return nil, apperr.New(apperr.NotFound, "player not found")
	}
	if !p.IsDead {
		return nil, apperr.New(apperr.StateViolation, "player is not dead")
	}
	return p, nil
}

// RespawnAtSleepingBag implements the owned-bag respawn option (spec §4.4).
func (d *Deps) RespawnAtSleepingBag(actor world.PlayerID, bagID world.ContainerID, now int64) error {
	p, err := d.requireDeadActor(actor)
	if err != nil {
		return err
	}
	bag, ok := d.World.SleepingBags.Get(bagID)
	if !ok {
		return apperr.New(apperr.NotFound, "sleeping bag not found")
	}
	if bag.Owner != actor {
		return apperr.New(apperr.OwnershipViolation, "sleeping bag belongs to another player")
	}
	if err := playerlogic.RespawnAtSleepingBag(p, bag.PosX, bag.PosY); err != nil {
		return err
	}
	p.ChunkIndex = d.chunkIndexAt(p.PosX, p.PosY)
	event.Emit(d.Bus, event.PlayerRespawned{PlayerID: uint64(p.ID)})
	return nil
}

// beachSampleAttempts bounds the random coastal search; beachCandidateCount
// is how many candidates are handed to the spawn resolver, which relaxes
// its collision constraint after its own attempt cap.
const (
	beachSampleAttempts = 400
	beachCandidateCount = 8
)

// RespawnAtBeach implements the random-coastal-beach respawn path, the
// mandatory new-player option (spec §4.4): find beach tiles adjacent to
// sea, prefer the south half, and force a beach tile rather than falling
// back anywhere else.
func (d *Deps) RespawnAtBeach(actor world.PlayerID, now int64) error {
	p, err := d.requireDeadActor(actor)
	if err != nil {
		return err
	}
	d.RebuildGrid(now)
	candidates := d.beachCandidates()
	if err := playerlogic.RespawnAtBeach(p, candidates); err != nil {
		return err
	}
	p.ChunkIndex = d.chunkIndexAt(p.PosX, p.PosY)
	event.Emit(d.Bus, event.PlayerRespawned{PlayerID: uint64(p.ID)})
	return nil
}

// beachCandidates samples random tiles for beach-adjacent-to-sea spots,
// biasing the first rounds toward the south half of the map, then falls
// back to a deterministic scan so a world with any coastline at all always
// yields at least one candidate.
func (d *Deps) beachCandidates() []playerlogic.BeachCandidate {
	ts := terrainSampler{d: d}
	w, h := d.Config.World.WidthTiles, d.Config.World.HeightTiles
	var out []playerlogic.BeachCandidate

	if d.Rng != nil && w > 0 && h > 1 {
		for i := 0; i < beachSampleAttempts && len(out) < beachCandidateCount; i++ {
			y := d.Rng.Intn(h)
			if i < beachSampleAttempts/2 {
				y = h/2 + d.Rng.Intn(h-h/2) // south half first
			}
			x := d.Rng.Intn(w)
			wx, wy := float64(x)+0.5, float64(y)+0.5
			if !d.beachBySea(ts, wx, wy) {
				continue
			}
			out = append(out, playerlogic.BeachCandidate{
				X: wx, Y: wy,
				Valid: func() bool { return d.spawnPointClear(wx, wy) },
			})
		}
	}
	if len(out) == 0 {
		d.World.Tiles.Range(func(_ int64, t *world.WorldTile) bool {
			if t.Type != world.TileBeach {
				return true
			}
			wx, wy := float64(t.WorldX)+0.5, float64(t.WorldY)+0.5
			if !d.beachBySea(ts, wx, wy) {
				return true
			}
			out = append(out, playerlogic.BeachCandidate{X: wx, Y: wy})
			return false
		})
	}
	return out
}

// beachBySea reports whether (x,y) sits on a beach tile with open sea on at
// least one of its four neighbors.
func (d *Deps) beachBySea(ts terrainSampler, x, y float64) bool {
	tile, ok := ts.tileAt(x, y)
	if !ok || tile != world.TileBeach {
		return false
	}
	for _, n := range [][2]float64{{x - 1, y}, {x + 1, y}, {x, y - 1}, {x, y + 1}} {
		if t, ok := ts.tileAt(n[0], n[1]); ok && t == world.TileSea {
			return true
		}
	}
	return false
}

// spawnPointClear reports whether no collidable occupant sits within
// standing distance of (x,y). Used as the per-candidate validity test the
// beach resolver is allowed to relax.
func (d *Deps) spawnPointClear(x, y float64) bool {
	nearby := spatial.WithinRadius(d.Grid.Nearby(x, y), x, y, playerlogic.PlayerRadius*2, 0)
	for _, o := range nearby {
		switch o.Kind {
		case spatial.KindPlayer, spatial.KindHostile, spatial.KindStructure, spatial.KindResource:
			return false
		}
	}
	return true
}
