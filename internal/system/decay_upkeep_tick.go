package system

import (
	"github.com/soitun/survivalcore/internal/data"
	"github.com/soitun/survivalcore/internal/scheduler"
	"github.com/soitun/survivalcore/internal/world"
)

// upkeepCostPerCycle is how many resource-category item units a hearth
// consumes per upkeep tick (spec §4.3 upkeep tick, §9 homestead_hearth.rs).
// The cost is per hearth: it does not depend on how many building cells the
// owner has or on their tier, and no connected-structures walk is made.
const upkeepCostPerCycle = 1

// decayHealthLoss is the health a building cell loses per decay tick once
// its owner's upkeep has lapsed.
const decayHealthLoss = 5.0

// upkeepTick consumes resource items from each owner's hearths to keep
// their building cells paid up, recording the payment timestamp on every
// hearth that found fuel.
func (d *Deps) upkeepTick(row *scheduler.Row, now int64) {
	d.World.Hearths.Range(func(_ world.ContainerID, h *world.Hearth) bool {
		if consumeResourceUnit(d, h) {
			h.LastUpkeepPaidAt = now
		}
		return true
	})
}

// consumeResourceUnit removes one unit of the first resource-category item
// found in h's slots, reporting whether fuel was available.
func consumeResourceUnit(d *Deps, h *world.Hearth) bool {
	for i := 0; i < h.NumSlots(); i++ {
		slot := h.GetSlot(i)
		if slot.Empty() {
			continue
		}
		def, ok := d.Items.Get(slot.DefID)
		if !ok || def.Category != data.CategoryResource {
			continue
		}
		inst, ok := d.World.Items.Get(slot.InstanceID)
		if !ok || inst.Quantity < upkeepCostPerCycle {
			continue
		}
		inst.Quantity -= upkeepCostPerCycle
		if inst.Quantity <= 0 {
			h.SetSlot(i, 0, 0)
			d.World.DeleteItem(inst.InstanceID)
		}
		return true
	}
	return false
}

// decayTick applies health loss to every building cell whose owner has no
// hearth that paid upkeep within the current cycle (spec §4.3: "building
// decay when out of upkeep"), then sweeps destroyed-by-decay cells.
func (d *Deps) decayTick(row *scheduler.Row, now int64) {
	paid := ownersPaidSince(d, now)

	decayCell := func(owner world.PlayerID, health *float64, destroyed *bool) {
		if *destroyed || paid[owner] {
			return
		}
		*health -= decayHealthLoss
		if *health <= 0 {
			*destroyed = true
		}
	}

	d.World.Foundations.Range(func(_ world.BuildingCellID, c *world.FoundationCell) bool {
		decayCell(c.Owner, &c.Health, &c.IsDestroyed)
		return true
	})
	d.World.Walls.Range(func(_ world.BuildingCellID, c *world.WallCell) bool {
		decayCell(c.Owner, &c.Health, &c.IsDestroyed)
		return true
	})
	d.World.Doors.Range(func(_ world.BuildingCellID, c *world.Door) bool {
		decayCell(c.Owner, &c.Health, &c.IsDestroyed)
		return true
	})
	d.World.Fences.Range(func(_ world.BuildingCellID, c *world.Fence) bool {
		decayCell(c.Owner, &c.Health, &c.IsDestroyed)
		return true
	})
}

// ownersPaidSince reports which players have at least one hearth that paid
// upkeep within the current decay cycle.
func ownersPaidSince(d *Deps, now int64) map[world.PlayerID]bool {
	const decayIntervalMs = 10 * 60 * 1000
	paid := make(map[world.PlayerID]bool)
	d.World.Hearths.Range(func(_ world.ContainerID, h *world.Hearth) bool {
		if now-h.LastUpkeepPaidAt < decayIntervalMs {
			paid[h.Owner] = true
		}
		return true
	})
	return paid
}
