package handler

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/soitun/survivalcore/internal/apperr"
	"github.com/soitun/survivalcore/internal/spatial"
	"github.com/soitun/survivalcore/internal/world"
)

// terrainSampler answers spatial.ValidatePlacement's terrain questions
// straight from the world tables, the same lookups validSpawnPoint in
// internal/system/hostile_tick.go uses for the analogous hostile-spawn
// water/monument check.
type terrainSampler struct{ d *Deps }

func (t terrainSampler) tileAt(x, y float64) (world.TileType, bool) {
	cx, cy := int32(x)/world.ChunkSize, int32(y)/world.ChunkSize
	chunk, ok := t.d.World.Chunks.Get(world.ChunkIndex(cx, cy))
	if !ok {
		return 0, false
	}
	lx, ly := int32(x)%world.ChunkSize, int32(y)%world.ChunkSize
	tile, _ := chunk.TileAt(lx, ly)
	return tile, true
}

func (t terrainSampler) IsWater(x, y float64) bool {
	tile, ok := t.tileAt(x, y)
	if !ok {
		return false
	}
	return tile == world.TileSea || tile == world.TileRiver || tile == world.TileLake || tile == world.TileHotSpringWater
}

func (t terrainSampler) IsMonumentZone(x, y float64) bool {
	for _, z := range t.d.Monuments {
		dx, dy := x-z.PosX, y-z.PosY
		if dx*dx+dy*dy < z.Radius*z.Radius {
			return true
		}
	}
	return false
}

func (t terrainSampler) HasFoundationAt(x, y float64) bool {
	cellX, cellY := int32(x)/int32(buildingCellSize), int32(y)/int32(buildingCellSize)
	_, ok := t.d.foundationAt(cellX, cellY)
	return ok
}

// validatePlacement wraps spatial.ValidatePlacement with this deps' terrain
// sampler, applying spec §4.2's water/monument-zone rules to every
// above-ground structure placement. The shelter, wall-edge and same-type
// arguments are all passed as nil: no freestanding Shelter AABB entity
// exists, and wall-edge clearance is not checked here or anywhere else
// (walls are not grid occupants, so footprintClear never sees them).
func (d *Deps) validatePlacement(x, y float64, rule spatial.PlacementRule) error {
	return spatial.ValidatePlacement(mgl64.Vec2{x, y}, rule, terrainSampler{d: d}, nil, nil, nil)
}

// placementReach is the max distance between a player and the world point
// they're placing a deployable at (spec §7 DistanceViolation source).
const placementReach = 80.0

func (d *Deps) withinReach(p *world.Player, x, y float64) error {
	dx, dy := p.PosX-x, p.PosY-y
	if dx*dx+dy*dy > placementReach*placementReach {
		return apperr.New(apperr.DistanceViolation, "placement point is out of reach")
	}
	return nil
}

// footprintClear validates spec §4.2 placement: no existing structure
// footprint overlaps the new one within placementClearRadius.
const placementClearRadius = 24.0

func (d *Deps) footprintClear(x, y float64) error {
	nearby := spatial.WithinRadius(d.Grid.Nearby(x, y), x, y, placementClearRadius, 0)
	for _, o := range nearby {
		if o.Kind == spatial.KindStructure {
			return apperr.New(apperr.RuleViolation, "placement overlaps an existing structure")
		}
	}
	return nil
}

// consumeDeployable removes the deployable item instance backing a
// placement command (spec §4.1 "placing a deployable consumes the item
// instance it came from").
func (d *Deps) consumeDeployable(actor *world.Player, instanceID world.ItemInstanceID) error {
	it, ok := d.World.Items.Get(instanceID)
	if !ok {
		return apperr.New(apperr.NotFound, "item instance not found")
	}
	if it.Location.Kind != world.LocInventory && it.Location.Kind != world.LocHotbar {
		return apperr.New(apperr.OwnershipViolation, "item is not in the player's own slots")
	}
	if it.Location.Owner != actor.ID {
		return apperr.New(apperr.OwnershipViolation, "item does not belong to the actor")
	}
	def, ok := it.Def(d.Items)
	if !ok || !def.Placeable {
		return apperr.New(apperr.TypeViolation, "item is not placeable")
	}
	d.World.Clearer.ClearItemFromAnyContainer(instanceID)
	d.World.DeleteItem(instanceID)
	return nil
}

// PlaceCampfire implements spec §6's place_campfire(item_instance_id,
// world_x, world_y).
func (d *Deps) PlaceCampfire(actor world.PlayerID, instanceID world.ItemInstanceID, x, y float64, now int64) (world.ContainerID, error) {
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
	d.RebuildGrid(now)
	if err := d.footprintClear(x, y); err != nil {
		return 0, err
	}
	if err := d.consumeDeployable(p, instanceID); err != nil {
		return 0, err
	}
	id := d.World.NextContainerID()
	d.World.Campfires.Put(id, world.NewCampfire(id, x, y, d.chunkIndexAt(x, y)))
	return id, nil
}

// PlaceBarbecue implements the barbecue sibling of place_campfire. The
// accepted-item policy is derived from the seeded item table at placement
// time (spec §4.1 "item type allowed by container policy").
func (d *Deps) PlaceBarbecue(actor world.PlayerID, instanceID world.ItemInstanceID, x, y float64, now int64) (world.ContainerID, error) {
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
	d.RebuildGrid(now)
	if err := d.footprintClear(x, y); err != nil {
		return 0, err
	}
	if err := d.consumeDeployable(p, instanceID); err != nil {
		return 0, err
	}
	id := d.World.NextContainerID()
	d.World.Barbecues.Put(id, world.NewBarbecue(id, x, y, d.chunkIndexAt(x, y), d.Items.BarbecueAllowed()))
	return id, nil
}

// PlaceFurnace implements the furnace sibling of place_campfire.
func (d *Deps) PlaceFurnace(actor world.PlayerID, instanceID world.ItemInstanceID, x, y float64, now int64) (world.ContainerID, error) {
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
	d.RebuildGrid(now)
	if err := d.footprintClear(x, y); err != nil {
		return 0, err
	}
	if err := d.consumeDeployable(p, instanceID); err != nil {
		return 0, err
	}
	id := d.World.NextContainerID()
	d.World.Furnaces.Put(id, world.NewFurnace(id, x, y, d.chunkIndexAt(x, y), d.Items.FurnaceAllowed()))
	return id, nil
}

// PlaceStorageBox implements spec §6's place_storage_box reducer.
func (d *Deps) PlaceStorageBox(actor world.PlayerID, instanceID world.ItemInstanceID, x, y float64, now int64) (world.ContainerID, error) {
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
	d.RebuildGrid(now)
	if err := d.footprintClear(x, y); err != nil {
		return 0, err
	}
	if err := d.consumeDeployable(p, instanceID); err != nil {
		return 0, err
	}
	id := d.World.NextContainerID()
	d.World.StorageBoxes.Put(id, world.NewStorageBox(id, p.ID, x, y, d.chunkIndexAt(x, y)))
	return id, nil
}

// PlaceStash implements spec §6's place_stash reducer; a stash is buried and
// so skips the footprint-overlap check other placements enforce.
func (d *Deps) PlaceStash(actor world.PlayerID, instanceID world.ItemInstanceID, x, y float64) (world.ContainerID, error) {
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
	d.World.Stashes.Put(id, world.NewStash(id, p.ID, x, y, d.chunkIndexAt(x, y)))
	return id, nil
}

// PlaceLantern implements spec §6's place_lantern reducer.
func (d *Deps) PlaceLantern(actor world.PlayerID, instanceID world.ItemInstanceID, x, y float64) (world.ContainerID, error) {
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
	if err := d.consumeDeployable(p, instanceID); err != nil { // no footprint check: spec doesn't list lanterns among structure-colliding placements
		return 0, err
	}
	id := d.World.NextContainerID()
	d.World.Lanterns.Put(id, world.NewLantern(id, x, y, d.chunkIndexAt(x, y)))
	return id, nil
}

// PlaceRainCollector implements spec §6's place_rain_collector reducer.
func (d *Deps) PlaceRainCollector(actor world.PlayerID, instanceID world.ItemInstanceID, x, y float64, now int64) (world.ContainerID, error) {
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
	d.RebuildGrid(now)
	if err := d.footprintClear(x, y); err != nil {
		return 0, err
	}
	if err := d.consumeDeployable(p, instanceID); err != nil {
		return 0, err
	}
	id := d.World.NextContainerID()
	d.World.RainCollectors.Put(id, world.NewRainCollector(id, x, y, d.chunkIndexAt(x, y)))
	return id, nil
}

// resolveContainer looks a (type,id) pair up via the world composition root,
// the shared lookup every container-addressed reducer below needs.
func (d *Deps) resolveContainer(ct world.ContainerType, id world.ContainerID) (world.Container, error) {
	c, ok := d.World.Container(ct, id)
	if !ok {
		return nil, apperr.New(apperr.NotFound, "container not found")
	}
	return c, nil
}

// MoveWithinContainer implements spec §6's move_item_within_campfire and its
// siblings for every other container family: one generic reducer addressed
// by (container_type, container_id) instead of nine near-identical ones.
func (d *Deps) MoveWithinContainer(actor world.PlayerID, ct world.ContainerType, id world.ContainerID, srcSlot, dstSlot int) error {
	p, err := d.requireActor(actor)
	if err != nil {
		return err
	}
	c, err := d.resolveContainer(ct, id)
	if err != nil {
		return err
	}
	return d.Inventory.MoveWithinContainer(p, c, srcSlot, dstSlot)
}

// MoveToContainerSlot implements spec §4.1's move_to_container_slot as a
// command reducer.
func (d *Deps) MoveToContainerSlot(actor world.PlayerID, instanceID world.ItemInstanceID, ct world.ContainerType, id world.ContainerID, slot int) error {
	p, err := d.requireActor(actor)
	if err != nil {
		return err
	}
	c, err := d.resolveContainer(ct, id)
	if err != nil {
		return err
	}
	return d.Inventory.MoveToContainerSlot(p, instanceID, c, slot)
}

// QuickMoveToContainer implements spec §4.1's quick_move_to_container as a
// command reducer.
func (d *Deps) QuickMoveToContainer(actor world.PlayerID, instanceID world.ItemInstanceID, ct world.ContainerType, id world.ContainerID) error {
	p, err := d.requireActor(actor)
	if err != nil {
		return err
	}
	c, err := d.resolveContainer(ct, id)
	if err != nil {
		return err
	}
	return d.Inventory.QuickMoveToContainer(p, c, instanceID)
}

// QuickMoveFromContainer implements spec §4.1's quick_move_from_container as
// a command reducer.
func (d *Deps) QuickMoveFromContainer(actor world.PlayerID, ct world.ContainerType, id world.ContainerID, slot int) error {
	p, err := d.requireActor(actor)
	if err != nil {
		return err
	}
	c, err := d.resolveContainer(ct, id)
	if err != nil {
		return err
	}
	return d.Inventory.QuickMoveFromContainer(p, c, slot)
}

// DropFromContainerSlot implements spec §4.1's drop_from_container_slot as a
// command reducer, anchoring the dropped item at the actor's own position.
func (d *Deps) DropFromContainerSlot(actor world.PlayerID, ct world.ContainerType, id world.ContainerID, slot int) (world.DroppedItemID, error) {
	p, err := d.requireActor(actor)
	if err != nil {
		return 0, err
	}
	c, err := d.resolveContainer(ct, id)
	if err != nil {
		return 0, err
	}
	return d.Inventory.DropFromContainerSlot(p, c, slot, p.PosX, p.PosY, p.ChunkIndex)
}

// PickupDropped implements spec §4.1's pick_up_dropped_item as a command
// reducer, enforcing the pickup reach (spec §7 DistanceViolation).
func (d *Deps) PickupDropped(actor world.PlayerID, droppedID world.DroppedItemID) error {
	p, err := d.requireActor(actor)
	if err != nil {
		return err
	}
	dropped, ok := d.World.Dropped.Get(droppedID)
	if !ok {
		return apperr.New(apperr.NotFound, "dropped item not found")
	}
	if err := d.withinReach(p, dropped.PosX, dropped.PosY); err != nil {
		return err
	}
	return d.Inventory.PickupDropped(p, droppedID)
}
