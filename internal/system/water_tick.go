package system

import (
	"github.com/soitun/survivalcore/internal/scheduler"
	"github.com/soitun/survivalcore/internal/world"
)

// rainCollectorFillPerTick is how many liters a RainCollector (or an
// equipped portable container caught in the rain) gains per waterFillTick
// fire while it is raining (spec §4.3 "Water-container fill... during rain
// if outdoors").
const rainCollectorFillPerTick = 1.0

// waterFillTick tops up every RainCollector's slot-0 reservoir, and every
// online player's equipped portable water container, while d.isRaining();
// the tick is a no-op outside of rain. Creates the water item instance the
// first time a collector gains any water.
func (d *Deps) waterFillTick(row *scheduler.Row, now int64) {
	if !d.isRaining() {
		return
	}
	waterDef, ok := d.Items.FindByName("water")
	if !ok {
		return
	}
	d.World.RainCollectors.Range(func(_ world.ContainerID, r *world.RainCollector) bool {
		slot := r.GetSlot(0)
		if slot.Empty() {
			id := d.World.NextItemInstanceID()
			inst := &world.ItemInstance{
				InstanceID: id, ItemDefID: waterDef.ID, Quantity: 1,
				Location: world.InContainer(world.ContainerRainCollector, r.ContainerID(), 0),
			}
			inst.SetWaterLiters(rainCollectorFillPerTick)
			d.World.Items.Put(id, inst)
			r.SetSlot(0, id, waterDef.ID)
			return true
		}
		inst, ok := d.World.Items.Get(slot.InstanceID)
		if !ok {
			return true
		}
		liters, _ := inst.WaterLiters()
		if liters < r.CapacityLit {
			next := liters + rainCollectorFillPerTick
			if next > r.CapacityLit {
				next = r.CapacityLit
			}
			inst.SetWaterLiters(next)
		}
		return true
	})

	d.World.Players.Range(func(_ world.PlayerID, p *world.Player) bool {
		if !p.IsOnline {
			return true
		}
		eq, ok := d.World.Equipment.Get(p.ID)
		if !ok {
			return true
		}
		d.fillEquippedContainer(eq.Hand)
		d.fillEquippedContainer(eq.Back)
		return true
	})
}

// fillEquippedContainer tops up item's water_liters if it already carries
// the key (spec §6: "presence of water_liters IS the definition" of a
// portable water container) and a capacity is seeded for its def.
func (d *Deps) fillEquippedContainer(item world.EquippedItem) {
	if item.Empty() {
		return
	}
	inst, ok := d.World.Items.Get(item.InstanceID)
	if !ok {
		return
	}
	liters, ok := inst.WaterLiters()
	if !ok {
		return
	}
	def, ok := d.Items.Get(inst.ItemDefID)
	if !ok || def.WaterCapacityLit <= 0 || liters >= def.WaterCapacityLit {
		return
	}
	next := liters + rainCollectorFillPerTick
	if next > def.WaterCapacityLit {
		next = def.WaterCapacityLit
	}
	inst.SetWaterLiters(next)
}
