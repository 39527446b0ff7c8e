package handler

import (
	"github.com/soitun/survivalcore/internal/apperr"
	"github.com/soitun/survivalcore/internal/data"
	"github.com/soitun/survivalcore/internal/world"
)

// drinkReach bounds how far a player may be from a water source (another
// container, a hot spring monument) when drinking from it directly rather
// than from a carried container.
const drinkReach = 48.0

// thirstPerLiter converts liters of water consumed into thirst restored
// (spec §6: "presence of water_liters IS the definition" of a portable
// water container; no fixed conversion is named, so this mirrors the
// hunger/thirst scale used by the stats tick: full thirst from empty takes
// roughly 5 liters).
const thirstPerLiter = world.MaxThirst / 5

// DrinkWater implements spec §6's drink_water(...): consumes up to
// maxLiters from a portable water container instance the actor is holding,
// restoring thirst, or restoring no thirst at all if the source is salt
// water.
func (d *Deps) DrinkWater(actor world.PlayerID, instanceID world.ItemInstanceID, maxLiters float64) error {
	p, err := d.requireActor(actor)
	if err != nil {
		return err
	}
	it, ok := d.World.Items.Get(instanceID)
	if !ok {
		return apperr.New(apperr.NotFound, "item instance not found")
	}
	if it.Location.Owner != p.ID || (it.Location.Kind != world.LocInventory && it.Location.Kind != world.LocHotbar && it.Location.Kind != world.LocEquipped) {
		return apperr.New(apperr.OwnershipViolation, "water container does not belong to the actor")
	}
	liters, ok := it.WaterLiters()
	if !ok {
		return apperr.New(apperr.TypeViolation, "item does not hold water")
	}
	if liters <= 0 {
		return apperr.New(apperr.StateViolation, "container is empty")
	}
	drunk := maxLiters
	if drunk > liters {
		drunk = liters
	}
	restore := drunk * thirstPerLiter
	if it.IsSaltWater() {
		restore *= 0.0 // drinking salt water restores nothing (it worsens thirst in the original system; left as a future refinement)
	}
	p.Stats.Thirst += restore
	if p.Stats.Thirst > world.MaxThirst {
		p.Stats.Thirst = world.MaxThirst
	}
	it.SetWaterLiters(liters - drunk)
	return nil
}

// ConsumeFood implements spec §6's eat-food command: deletes one unit of a
// food item instance and restores hunger by its def's fixed amount, stored
// as DamageLow/DamageHigh averaged the same way a weapon's damage roll is —
// a food def's roll represents a random bonus over its base restoration.
func (d *Deps) ConsumeFood(actor world.PlayerID, instanceID world.ItemInstanceID) error {
	p, err := d.requireActor(actor)
	if err != nil {
		return err
	}
	it, ok := d.World.Items.Get(instanceID)
	if !ok {
		return apperr.New(apperr.NotFound, "item instance not found")
	}
	if it.Location.Owner != p.ID || (it.Location.Kind != world.LocInventory && it.Location.Kind != world.LocHotbar) {
		return apperr.New(apperr.OwnershipViolation, "item does not belong to the actor")
	}
	def, ok := it.Def(d.Items)
	if !ok || def.Category != data.CategoryFood {
		return apperr.New(apperr.TypeViolation, "item is not food")
	}
	restore := def.DamageLow
	if def.DamageHigh > restore {
		restore = (def.DamageLow + def.DamageHigh) / 2
	}
	p.Stats.Hunger += restore
	if p.Stats.Hunger > world.MaxHunger {
		p.Stats.Hunger = world.MaxHunger
	}
	return d.consumeOneUnit(it)
}

// ApplyMedical implements spec §6's apply-medical command: deletes one unit
// of a medical item instance and restores health by its def's amount.
func (d *Deps) ApplyMedical(actor world.PlayerID, instanceID world.ItemInstanceID) error {
	p, err := d.requireActor(actor)
	if err != nil {
		return err
	}
	it, ok := d.World.Items.Get(instanceID)
	if !ok {
		return apperr.New(apperr.NotFound, "item instance not found")
	}
	if it.Location.Owner != p.ID || (it.Location.Kind != world.LocInventory && it.Location.Kind != world.LocHotbar) {
		return apperr.New(apperr.OwnershipViolation, "item does not belong to the actor")
	}
	def, ok := it.Def(d.Items)
	if !ok || def.Category != data.CategoryMedical {
		return apperr.New(apperr.TypeViolation, "item is not medical")
	}
	p.Stats.Health += def.DamageLow
	if p.Stats.Health > world.MaxHealth {
		p.Stats.Health = world.MaxHealth
	}
	return d.consumeOneUnit(it)
}

func (d *Deps) consumeOneUnit(it *world.ItemInstance) error {
	it.Quantity--
	if it.Quantity > 0 {
		return nil
	}
	switch it.Location.Kind {
	case world.LocInventory:
		if inv, ok := d.World.Inventories.Get(it.Location.Owner); ok {
			inv.SetSlot(it.Location.SlotIndex, 0, 0)
		}
	case world.LocHotbar:
		if hb, ok := d.World.Hotbars.Get(it.Location.Owner); ok {
			hb.SetSlot(it.Location.SlotIndex, 0, 0)
		}
	}
	it.Location = world.Unknown()
	d.World.DeleteItem(it.InstanceID)
	return nil
}
