package handler

import (
	"github.com/soitun/survivalcore/internal/apperr"
	"github.com/soitun/survivalcore/internal/spatial"
	"github.com/soitun/survivalcore/internal/world"
)

// cellToWorld returns the world-space center of a building cell, the anchor
// every building placement's reach/footprint check is measured against.
func cellToWorld(cellX, cellY int32) (float64, float64) {
	half := buildingCellSize / 2
	return float64(cellX)*buildingCellSize + half, float64(cellY)*buildingCellSize + half
}

func (d *Deps) foundationAt(cellX, cellY int32) (*world.FoundationCell, bool) {
	var found *world.FoundationCell
	d.World.Foundations.Range(func(_ world.BuildingCellID, c *world.FoundationCell) bool {
		if !c.IsDestroyed && c.CellX == cellX && c.CellY == cellY {
			found = c
			return false
		}
		return true
	})
	return found, found != nil
}

func (d *Deps) wallAt(cellX, cellY int32, edge world.Edge) (*world.WallCell, bool) {
	var found *world.WallCell
	d.World.Walls.Range(func(_ world.BuildingCellID, c *world.WallCell) bool {
		if !c.IsDestroyed && c.CellX == cellX && c.CellY == cellY && c.Edge == edge {
			found = c
			return false
		}
		return true
	})
	return found, found != nil
}

func (d *Deps) doorAt(cellX, cellY int32, edge world.Edge) (*world.Door, bool) {
	var found *world.Door
	d.World.Doors.Range(func(_ world.BuildingCellID, c *world.Door) bool {
		if !c.IsDestroyed && c.CellX == cellX && c.CellY == cellY && c.Edge == edge {
			found = c
			return false
		}
		return true
	})
	return found, found != nil
}

// PlaceFoundation implements spec §6's place_foundation(item_instance_id,
// cell_x, cell_y, shape): the floor-tile half of a player-built structure.
// Grounded on the upkeep/decay tick's FoundationCell consumer in
// internal/system/decay_upkeep_tick.go, which this reducer is the producing
// counterpart to.
func (d *Deps) PlaceFoundation(actor world.PlayerID, instanceID world.ItemInstanceID, cellX, cellY int32, shape world.FoundationShape) (world.BuildingCellID, error) {
	p, err := d.requireActor(actor)
	if err != nil {
		return 0, err
	}
	x, y := cellToWorld(cellX, cellY)
	if err := d.withinReach(p, x, y); err != nil {
		return 0, err
	}
	if err := d.validatePlacement(x, y, spatial.PlacementRule{}); err != nil {
		return 0, err
	}
	if _, exists := d.foundationAt(cellX, cellY); exists {
		return 0, apperr.New(apperr.RuleViolation, "a foundation already occupies this cell")
	}
	if err := d.consumeDeployable(p, instanceID); err != nil {
		return 0, err
	}
	id := d.World.NextBuildingCellID()
	d.World.Foundations.Put(id, &world.FoundationCell{
		ID: id, Owner: p.ID, CellX: cellX, CellY: cellY, Shape: shape, Health: 200,
	})
	return id, nil
}

// PlaceWall implements spec §6's place_wall(item_instance_id, cell_x,
// cell_y, edge): requires an owned, undestroyed foundation at the cell.
func (d *Deps) PlaceWall(actor world.PlayerID, instanceID world.ItemInstanceID, cellX, cellY int32, edge world.Edge) (world.BuildingCellID, error) {
	p, err := d.requireActor(actor)
	if err != nil {
		return 0, err
	}
	f, ok := d.foundationAt(cellX, cellY)
	if !ok {
		return 0, apperr.New(apperr.RuleViolation, "walls require a foundation cell")
	}
	if f.Owner != p.ID {
		return 0, apperr.New(apperr.OwnershipViolation, "foundation belongs to another player")
	}
	x, y := cellToWorld(cellX, cellY)
	if err := d.withinReach(p, x, y); err != nil {
		return 0, err
	}
	if _, exists := d.wallAt(cellX, cellY, edge); exists {
		return 0, apperr.New(apperr.RuleViolation, "a wall already occupies this edge")
	}
	if _, exists := d.doorAt(cellX, cellY, edge); exists {
		return 0, apperr.New(apperr.RuleViolation, "a door already occupies this edge")
	}
	if err := d.consumeDeployable(p, instanceID); err != nil {
		return 0, err
	}
	id := d.World.NextBuildingCellID()
	d.World.Walls.Put(id, &world.WallCell{ID: id, Owner: p.ID, CellX: cellX, CellY: cellY, Edge: edge, Health: 150})
	return id, nil
}

// PlaceDoor implements spec §6's place_door reducer: structurally a wall
// edge that additionally tracks open/closed state.
func (d *Deps) PlaceDoor(actor world.PlayerID, instanceID world.ItemInstanceID, cellX, cellY int32, edge world.Edge) (world.BuildingCellID, error) {
	p, err := d.requireActor(actor)
	if err != nil {
		return 0, err
	}
	f, ok := d.foundationAt(cellX, cellY)
	if !ok {
		return 0, apperr.New(apperr.RuleViolation, "doors require a foundation cell")
	}
	if f.Owner != p.ID {
		return 0, apperr.New(apperr.OwnershipViolation, "foundation belongs to another player")
	}
	x, y := cellToWorld(cellX, cellY)
	if err := d.withinReach(p, x, y); err != nil {
		return 0, err
	}
	if _, exists := d.wallAt(cellX, cellY, edge); exists {
		return 0, apperr.New(apperr.RuleViolation, "a wall already occupies this edge")
	}
	if _, exists := d.doorAt(cellX, cellY, edge); exists {
		return 0, apperr.New(apperr.RuleViolation, "a door already occupies this edge")
	}
	if err := d.consumeDeployable(p, instanceID); err != nil {
		return 0, err
	}
	id := d.World.NextBuildingCellID()
	d.World.Doors.Put(id, &world.Door{ID: id, Owner: p.ID, CellX: cellX, CellY: cellY, Edge: edge, Health: 150})
	return id, nil
}

// PlaceFence implements spec §6's place_fence reducer: a freestanding
// perimeter edge that, unlike walls and doors, needs no foundation.
func (d *Deps) PlaceFence(actor world.PlayerID, instanceID world.ItemInstanceID, cellX, cellY int32, edge world.Edge) (world.BuildingCellID, error) {
	p, err := d.requireActor(actor)
	if err != nil {
		return 0, err
	}
	x, y := cellToWorld(cellX, cellY)
	if err := d.withinReach(p, x, y); err != nil {
		return 0, err
	}
	if err := d.consumeDeployable(p, instanceID); err != nil {
		return 0, err
	}
	id := d.World.NextBuildingCellID()
	d.World.Fences.Put(id, &world.Fence{ID: id, Owner: p.ID, CellX: cellX, CellY: cellY, Edge: edge, Health: 100})
	return id, nil
}

// ToggleDoor implements spec §6's toggle_door(door_id): only the owner may
// swing a door; a destroyed door cannot be toggled either way.
func (d *Deps) ToggleDoor(actor world.PlayerID, doorID world.BuildingCellID) error {
	p, err := d.requireActor(actor)
	if err != nil {
		return err
	}
	door, ok := d.World.Doors.Get(doorID)
	if !ok {
		return apperr.New(apperr.NotFound, "door not found")
	}
	if door.IsDestroyed {
		return apperr.New(apperr.StateViolation, "door is destroyed")
	}
	if door.Owner != p.ID {
		return apperr.New(apperr.OwnershipViolation, "door belongs to another player")
	}
	door.IsOpen = !door.IsOpen
	return nil
}

// PlaceHearth implements spec §6's place_hearth reducer: a hearth must sit
// on its owner's own foundation cell. Upkeep and decay
// (internal/system/decay_upkeep_tick.go) work per owner and walk no graph
// from that cell.
func (d *Deps) PlaceHearth(actor world.PlayerID, instanceID world.ItemInstanceID, cellX, cellY int32) (world.ContainerID, error) {
	p, err := d.requireActor(actor)
	if err != nil {
		return 0, err
	}
	f, ok := d.foundationAt(cellX, cellY)
	if !ok {
		return 0, apperr.New(apperr.RuleViolation, "a hearth must be placed on a foundation")
	}
	if f.Owner != p.ID {
		return 0, apperr.New(apperr.OwnershipViolation, "foundation belongs to another player")
	}
	x, y := cellToWorld(cellX, cellY)
	if err := d.withinReach(p, x, y); err != nil {
		return 0, err
	}
	if err := d.validatePlacement(x, y, spatial.PlacementRule{RequireFoundation: true}); err != nil {
		return 0, err
	}
	if err := d.consumeDeployable(p, instanceID); err != nil {
		return 0, err
	}
	id := d.World.NextContainerID()
	d.World.Hearths.Put(id, world.NewHearth(id, x, y, d.chunkIndexAt(x, y), f.ID, p.ID))
	return id, nil
}
