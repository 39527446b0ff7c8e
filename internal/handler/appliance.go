package handler

import (
	"time"

	"github.com/soitun/survivalcore/internal/apperr"
	"github.com/soitun/survivalcore/internal/scheduler"
	"github.com/soitun/survivalcore/internal/world"
)

// KindApplianceTick names the per-appliance schedule rows (spec §4.3). The
// constant lives here rather than in internal/system because command
// reducers (ToggleBurning, below) insert and cancel these rows too, and
// system already imports handler.
const KindApplianceTick = "appliance_tick"

// applianceTickInterval is the per-appliance cadence from spec §4.3
// ("per-appliance tick (~1 s)").
const applianceTickInterval = 1 * time.Second

// ScheduleApplianceTick inserts the periodic row for an appliance unless it
// already has one, keeping spec §8 property 8's "exactly one schedule row"
// half intact no matter how many code paths light the same appliance.
func (d *Deps) ScheduleApplianceTick(id world.ContainerID, now int64) {
	if _, ok := d.Scheduler.FindByEntity(KindApplianceTick, uint64(id)); ok {
		return
	}
	d.Scheduler.Insert(KindApplianceTick, uint64(id), scheduler.Timing{Interval: applianceTickInterval}, now)
}

// ReschedulePersistedAppliances re-inserts the per-appliance schedule rows
// for every appliance loaded back in a burning state, since schedule rows
// themselves are process-local. Called once at boot after a snapshot load.
func (d *Deps) ReschedulePersistedAppliances(now int64) {
	d.World.Campfires.Range(func(id world.ContainerID, c *world.Campfire) bool {
		if c.IsBurning {
			d.ScheduleApplianceTick(id, now)
		}
		return true
	})
	d.World.Barbecues.Range(func(id world.ContainerID, c *world.Barbecue) bool {
		if c.IsBurning {
			d.ScheduleApplianceTick(id, now)
		}
		return true
	})
	d.World.Furnaces.Range(func(id world.ContainerID, c *world.Furnace) bool {
		if c.IsBurning {
			d.ScheduleApplianceTick(id, now)
		}
		return true
	})
	d.World.Lanterns.Range(func(id world.ContainerID, c *world.Lantern) bool {
		if c.IsBurning {
			d.ScheduleApplianceTick(id, now)
		}
		return true
	})
}

// ToggleBurning implements the toggle-burning command for every fuel-driven
// container family (campfire, barbecue, furnace, lantern). Lighting consumes
// one unit from the fuel slot immediately and inserts the appliance's
// schedule row; snuffing extinguishes and deletes the row (spec §4.3
// rescheduling discipline: "any mutation that changes whether an entity
// needs its periodic tick... must also insert or delete the schedule row").
func (d *Deps) ToggleBurning(actor world.PlayerID, id world.ContainerID, now int64) error {
	p, err := d.requireActor(actor)
	if err != nil {
		return err
	}
	a, ok := d.World.Appliance(id)
	if !ok {
		return apperr.New(apperr.NotFound, "appliance not found")
	}
	if a.Destroyed() {
		return apperr.New(apperr.StateViolation, "appliance is destroyed")
	}
	x, y := a.Position()
	if err := d.withinReach(p, x, y); err != nil {
		return err
	}

	if a.Burning() {
		a.SetBurning(false)
		d.Scheduler.CancelByEntity(KindApplianceTick, uint64(id))
		return nil
	}

	if err := d.lightFromFuelSlot(a); err != nil {
		return err
	}
	d.ScheduleApplianceTick(id, now)
	return nil
}

// lightFromFuelSlot consumes one fuel unit out of the appliance's fuel slot
// and starts it burning. The unit's byproduct (wood -> charcoal) lands when
// it finishes burning, in the appliance tick, not here.
func (d *Deps) lightFromFuelSlot(a world.FueledAppliance) error {
	slot := a.GetSlot(a.FuelSlot())
	if slot.Empty() {
		return apperr.New(apperr.StateViolation, "no fuel in the fuel slot")
	}
	def, ok := d.Items.Get(slot.DefID)
	if !ok || def.FuelBurnSecs <= 0 {
		return apperr.New(apperr.TypeViolation, "item in the fuel slot does not burn")
	}
	inst, ok := d.World.Items.Get(slot.InstanceID)
	if !ok || inst.Quantity <= 0 {
		return apperr.New(apperr.NotFound, "fuel item instance not found")
	}
	inst.Quantity--
	if inst.Quantity <= 0 {
		a.SetSlot(a.FuelSlot(), 0, 0)
		inst.Location = world.Unknown()
		d.World.DeleteItem(inst.InstanceID)
	}
	a.SetBurning(true)
	a.SetFuelState(def.ID, def.FuelBurnSecs)
	return nil
}
