package system

import (
	"github.com/soitun/survivalcore/internal/data"
	"github.com/soitun/survivalcore/internal/scheduler"
	"github.com/soitun/survivalcore/internal/world"
)

// applianceTickIntervalSecs matches handler.ScheduleApplianceTick's row
// interval; kept as a named constant so the burn/cook math stays
// self-documenting instead of a bare literal.
const applianceTickIntervalSecs = 1.0

// applianceTick implements spec §4.3's per-appliance tick: each burning
// campfire, barbecue, furnace, or lantern carries its own schedule row
// (EntityID = container id), inserted when it is lit and deleted here the
// moment it stops burning — rain, fuel exhaustion, or a vanished entity all
// end with the row cancelled so an idle appliance costs nothing (spec §8
// property 8).
func (d *Deps) applianceTick(row *scheduler.Row, now int64) {
	a, ok := d.World.Appliance(world.ContainerID(row.EntityID))
	if !ok || a.Destroyed() {
		d.Sched.Cancel(row.ID) // stale row: the appliance is gone
		return
	}

	if a.OpenFlame() && d.isRaining() && a.Burning() {
		a.SetBurning(false)
		d.Sched.Cancel(row.ID)
		return
	}

	d.burnDown(a)
	if a.Burning() {
		if cooker, ok := a.(cookProgresser); ok {
			advanceCookSlots(d, cooker, a.CookRack())
		}
		return
	}
	d.Sched.Cancel(row.ID)
}

// burnDown decrements the current fuel unit's remaining burn time,
// depositing its byproduct (wood -> charcoal, spec §4.3 seed scenario 1)
// when the unit finishes, then pulls the next unit from the fuel slot. An
// appliance whose slot runs dry is left not burning; the caller cancels its
// schedule row.
func (d *Deps) burnDown(a world.FueledAppliance) {
	if a.Burning() {
		defID, remain := a.FuelState()
		remain -= applianceTickIntervalSecs
		if remain > 0 {
			a.SetFuelState(defID, remain)
			return
		}
		if def, ok := d.Items.Get(defID); ok {
			depositByproduct(d, a, def, a.FuelSlot())
		}
		a.SetBurning(false)
	}

	slot := a.GetSlot(a.FuelSlot())
	if slot.Empty() {
		return
	}
	def, ok := d.Items.Get(slot.DefID)
	if !ok || def.FuelBurnSecs <= 0 {
		return
	}
	inst, ok := d.World.Items.Get(slot.InstanceID)
	if !ok || inst.Quantity <= 0 {
		return
	}
	inst.Quantity--
	if inst.Quantity <= 0 {
		a.SetSlot(a.FuelSlot(), 0, 0)
		inst.Location = world.Unknown()
		d.World.DeleteItem(inst.InstanceID)
	}
	a.SetBurning(true)
	a.SetFuelState(def.ID, def.FuelBurnSecs)
}

// depositByproduct drops one unit of the consumed fuel's byproduct into the
// first empty or matching slot other than skipSlot (the fuel slot, reserved
// for the next fuel unit rather than immediately reclaimed by its own
// byproduct); if none is free the byproduct is lost, matching a full
// container's ordinary item-loss behavior elsewhere.
func depositByproduct(d *Deps, c world.Container, consumedDef data.ItemDefinition, skipSlot int) {
	if consumedDef.FuelByproductDefID == 0 || consumedDef.FuelByproductChance <= 0 {
		return
	}
	if d.Rng != nil && d.Rng.Float64() >= consumedDef.FuelByproductChance {
		return
	}
	for i := 0; i < c.NumSlots(); i++ {
		if i == skipSlot {
			continue
		}
		slot := c.GetSlot(i)
		if !slot.Empty() {
			if slot.DefID != consumedDef.FuelByproductDefID {
				continue
			}
			inst, ok := d.World.Items.Get(slot.InstanceID)
			if !ok {
				continue
			}
			byproductDef, ok := d.Items.Get(consumedDef.FuelByproductDefID)
			if ok && inst.Quantity < byproductDef.StackSize {
				inst.Quantity++
				return
			}
			continue
		}
		id := d.World.NextItemInstanceID()
		inst := &world.ItemInstance{
			InstanceID: id, ItemDefID: consumedDef.FuelByproductDefID, Quantity: 1,
			Location: world.InContainer(c.ContainerType(), c.ContainerID(), i),
		}
		d.World.Items.Put(id, inst)
		c.SetSlot(i, id, consumedDef.FuelByproductDefID)
		return
	}
}

// cookProgresser is the subset of Container the cook-advance step needs:
// per-slot cooking state plus the ability to replace a slot's item once it
// finishes cooking.
type cookProgresser interface {
	world.SlotArray
	SetSlotCooking(i int, instance world.ItemInstanceID, defID int32, progress float64)
}

// advanceCookSlots advances each occupied cook/smelt slot's progress,
// converting the item into its CookedInto definition once CookTimeSecs is
// reached (spec §4.3, supplemented from original_source/cooking.rs).
func advanceCookSlots(d *Deps, c cookProgresser, slots []int) {
	for _, idx := range slots {
		slot := c.GetSlot(idx)
		if slot.Empty() {
			continue
		}
		def, ok := d.Items.Get(slot.DefID)
		if !ok || def.CookedInto == 0 {
			continue
		}
		progress := slot.CookProgressSec + applianceTickIntervalSecs
		if progress < def.CookTimeSecs {
			c.SetSlotCooking(idx, slot.InstanceID, slot.DefID, progress)
			continue
		}
		inst, ok := d.World.Items.Get(slot.InstanceID)
		if !ok {
			continue
		}
		inst.ItemDefID = def.CookedInto
		c.SetSlotCooking(idx, inst.InstanceID, inst.ItemDefID, 0)
	}
}
