// Package handler implements the spec §6 command surface: one reducer per
// client-issued command, each validating preconditions against the world
// and either mutating state or returning a typed *apperr.Error. Grounded on
// the teacher's handler.Deps-struct-of-collaborators pattern (every reducer
// takes the same bag of shared tables instead of a God object), generalized
// from Lineage's packet handlers to this game's command set.
package handler

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/soitun/survivalcore/internal/apperr"
	"github.com/soitun/survivalcore/internal/config"
	"github.com/soitun/survivalcore/internal/core/event"
	"github.com/soitun/survivalcore/internal/data"
	"github.com/soitun/survivalcore/internal/inventory"
	"github.com/soitun/survivalcore/internal/playerlogic"
	"github.com/soitun/survivalcore/internal/scheduler"
	"github.com/soitun/survivalcore/internal/spatial"
	"github.com/soitun/survivalcore/internal/world"
)

// Deps bundles every collaborator a reducer might need. Constructed once at
// startup and passed by reference to every registered reducer, the same
// shape the teacher's handler.Deps takes for its zone/account/clan tables.
type Deps struct {
	World     *world.World
	Items     *data.ItemTable
	Species   *data.SpeciesTable
	Yields    *data.YieldTable
	Inventory *inventory.Engine
	Scheduler *scheduler.Scheduler
	Bus       *event.Bus
	Grid      *spatial.Grid
	Rng       *rand.Rand
	Config    config.Config
	Monuments []world.MonumentZone
}

// requireActor resolves and validates the acting player in one place so
// every reducer starts from the same precondition (spec §7: "player
// dead/knocked out" is one of the universal failure causes).
func (d *Deps) requireActor(id world.PlayerID) (*world.Player, error) {
	p, ok := d.World.Players.Get(id)
	if !ok {
		return nil, apperr.New(apperr.NotFound, "player not found")
	}
	if !p.CanIssueCommands() {
		return nil, apperr.New(apperr.StateViolation, "player is dead or knocked out")
	}
	return p, nil
}

// obstaclesNear collects the wall/door/fence cells plus every circle-shaped
// occupant (other players, hostiles, placed containers, corpses, resource
// nodes) that participate in collision near (x,y), the input MovePlayer
// resolves movement against in internal/spatial. Dropped items are not
// obstacles. A player occupant sitting exactly at (x,y) is the mover itself
// and is skipped. The
// building-cell AABBs are read straight from their tables since they're
// cheap to enumerate; the circle occupants come from the cached grid so the
// query shares the same bucketing every other grid consumer pays for once
// per tick.
func (d *Deps) obstaclesNear(x, y, radius float64) []spatial.Obstacle {
	var out []spatial.Obstacle
	d.World.Walls.Range(func(id world.BuildingCellID, w *world.WallCell) bool {
		if w.Collides() {
			out = append(out, cellObstacle(uint64(id), float64(w.CellX), float64(w.CellY)))
		}
		return true
	})
	d.World.Doors.Range(func(id world.BuildingCellID, dr *world.Door) bool {
		if dr.Collides() {
			out = append(out, cellObstacle(uint64(id), float64(dr.CellX), float64(dr.CellY)))
		}
		return true
	})
	d.World.Fences.Range(func(id world.BuildingCellID, f *world.Fence) bool {
		if f.Collides() {
			out = append(out, cellObstacle(uint64(id), float64(f.CellX), float64(f.CellY)))
		}
		return true
	})

	nearby := spatial.WithinRadius(d.Grid.Nearby(x, y), x, y, radius+structureOccupantRadius, 0)
	for _, o := range nearby {
		if o.Kind == spatial.KindPlayer && o.X == x && o.Y == y {
			continue
		}
		switch o.Kind {
		case spatial.KindStructure, spatial.KindPlayer, spatial.KindHostile, spatial.KindResource:
			out = append(out, spatial.Obstacle{ID: o.ID, Center: mgl64.Vec2{o.X, o.Y}, Radius: o.Radius})
		}
	}
	return out
}

// structureOccupantRadius is the collision circle used for every placed
// container, corpse, and building fixture tracked in the grid as
// spatial.KindStructure, grounded on the footprint radius already enforced
// at placement time (placementClearRadius).
const structureOccupantRadius = 16.0

// droppedOccupantRadius is the (small, non-blocking-for-movement) circle
// used only so dropped items show up in pickup-proximity queries, never
// passed to obstaclesNear.
const droppedOccupantRadius = 8.0

// RebuildGrid refreshes the spatial grid cache if it hasn't already been
// rebuilt for this timestamp (spec §4.2: "the spatial grid is rebuilt at
// most once per tick and cached by timestamp"). Reducers and tick handlers
// call this before any Grid.Nearby/WithinRadius query; repeated calls within
// the same millisecond are free.
func (d *Deps) RebuildGrid(now int64) {
	if d.Grid.BuiltAt() == now {
		return
	}
	var occupants []spatial.Occupant
	d.World.Players.Range(func(id world.PlayerID, p *world.Player) bool {
		if p.IsOnline {
			occupants = append(occupants, spatial.Occupant{
				ID: uint64(id), Kind: spatial.KindPlayer, X: p.PosX, Y: p.PosY, Radius: playerlogic.PlayerRadius,
			})
		}
		return true
	})
	d.World.Hostiles.Range(func(id world.HostileID, h *world.Hostile) bool {
		if h.Dead() {
			return true
		}
		r := structureOccupantRadius
		if tmpl, ok := d.Species.Get(h.Species); ok {
			if h.State == world.HostileAttacking {
				r = tmpl.AttackingRadius
			} else {
				r = tmpl.IdleRadius
			}
		}
		occupants = append(occupants, spatial.Occupant{ID: uint64(id), Kind: spatial.KindHostile, X: h.PosX, Y: h.PosY, Radius: r})
		return true
	})
	appendStructure := func(id uint64, x, y float64) {
		occupants = append(occupants, spatial.Occupant{ID: id, Kind: spatial.KindStructure, X: x, Y: y, Radius: structureOccupantRadius})
	}
	d.World.Campfires.Range(func(id world.ContainerID, c *world.Campfire) bool { appendStructure(uint64(id), c.PosX, c.PosY); return true })
	d.World.Barbecues.Range(func(id world.ContainerID, c *world.Barbecue) bool { appendStructure(uint64(id), c.PosX, c.PosY); return true })
	d.World.Furnaces.Range(func(id world.ContainerID, c *world.Furnace) bool { appendStructure(uint64(id), c.PosX, c.PosY); return true })
	d.World.StorageBoxes.Range(func(id world.ContainerID, c *world.StorageBox) bool { appendStructure(uint64(id), c.PosX, c.PosY); return true })
	d.World.Hearths.Range(func(id world.ContainerID, c *world.Hearth) bool { appendStructure(uint64(id), c.PosX, c.PosY); return true })
	d.World.Corpses.Range(func(id world.ContainerID, c *world.Corpse) bool { appendStructure(uint64(id), c.PosX, c.PosY); return true })
	d.World.RainCollectors.Range(func(id world.ContainerID, c *world.RainCollector) bool { appendStructure(uint64(id), c.PosX, c.PosY); return true })
	d.World.Lanterns.Range(func(id world.ContainerID, c *world.Lantern) bool { appendStructure(uint64(id), c.PosX, c.PosY); return true })
	// Stashes are buried and deliberately excluded: they never block
	// movement or placement footprints (PlaceStash skips footprintClear).
	d.World.ResourceNodes.Range(func(id world.ResourceNodeID, n *world.ResourceNode) bool {
		if n.Depleted() {
			return true
		}
		occupants = append(occupants, spatial.Occupant{
			ID: uint64(id), Kind: spatial.KindResource, X: n.PosX, Y: n.PosY, Radius: n.CollisionRadius(),
		})
		return true
	})
	d.World.Dropped.Range(func(id world.DroppedItemID, it *world.DroppedItem) bool {
		occupants = append(occupants, spatial.Occupant{ID: uint64(id), Kind: spatial.KindDropped, X: it.PosX, Y: it.PosY, Radius: droppedOccupantRadius})
		return true
	})
	d.Grid.Rebuild(now, occupants)
}

const buildingCellSize = 32.0

// chunkIndexAt converts a world-space point into the chunk index its tile
// belongs to, matching the chunk math MovePlayer recomputes after every
// move so a placed container's ChunkIndex is consistent with the player
// position it was placed from.
func (d *Deps) chunkIndexAt(x, y float64) int64 {
	return world.ChunkIndex(int32(x)/int32(d.Config.World.ChunkSize), int32(y)/int32(d.Config.World.ChunkSize))
}

func cellObstacle(id uint64, cellX, cellY float64) spatial.Obstacle {
	cx := cellX * buildingCellSize
	cy := cellY * buildingCellSize
	half := buildingCellSize / 2
	aabb := spatial.AABB{
		Min: mgl64.Vec2{cx - half, cy - half},
		Max: mgl64.Vec2{cx + half, cy + half},
	}
	return spatial.Obstacle{
		ID:     id,
		Center: mgl64.Vec2{cx, cy},
		Radius: half,
		AABB:   &aabb,
	}
}
