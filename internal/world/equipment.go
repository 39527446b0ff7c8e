package world

import "github.com/soitun/survivalcore/internal/data"

// ActiveEquipment tracks what a player currently has equipped (spec §3).
// Each equipped instance's Location is Equipped(player, slot); it must not
// also appear in any container or inventory slot map — enforced by the
// inventory transaction engine, never by Equipment itself.
type ActiveEquipment struct {
	Owner PlayerID

	Hand  EquippedItem // active weapon/tool
	Head  EquippedItem
	Chest EquippedItem
	Legs  EquippedItem
	Feet  EquippedItem
	Hands EquippedItem
	Back  EquippedItem

	SwingStartMs int64

	// Ammo/magazine state for the currently-equipped ranged weapon (spec §9,
	// supplemented from original_source/active_equipment.rs).
	MagazineDefID int32
	MagazineCount int32
}

type EquippedItem struct {
	InstanceID ItemInstanceID
	DefID      int32
}

func (e EquippedItem) Empty() bool { return e.InstanceID == 0 }

// Get returns the equipped item in slot.
func (e *ActiveEquipment) Get(slot data.EquipSlot) EquippedItem {
	switch slot {
	case data.EquipHand:
		return e.Hand
	case data.EquipHead:
		return e.Head
	case data.EquipChest:
		return e.Chest
	case data.EquipLegs:
		return e.Legs
	case data.EquipFeet:
		return e.Feet
	case data.EquipHands:
		return e.Hands
	case data.EquipBack:
		return e.Back
	default:
		return EquippedItem{}
	}
}

// Set places (or clears, with a zero EquippedItem) the item in slot.
func (e *ActiveEquipment) Set(slot data.EquipSlot, item EquippedItem) {
	switch slot {
	case data.EquipHand:
		e.Hand = item
	case data.EquipHead:
		e.Head = item
	case data.EquipChest:
		e.Chest = item
	case data.EquipLegs:
		e.Legs = item
	case data.EquipFeet:
		e.Feet = item
	case data.EquipHands:
		e.Hands = item
	case data.EquipBack:
		e.Back = item
	}
}

// ArmorSlots returns the five wearable-armor slots, excluding Hand, for
// iterating cold-resistance/damage-resistance contributions (spec §4.4).
func (e *ActiveEquipment) ArmorSlots() []EquippedItem {
	return []EquippedItem{e.Head, e.Chest, e.Legs, e.Feet, e.Hands, e.Back}
}

// ClearAll empties every slot, used on death (spec §4.4: "clear
// ActiveEquipment").
func (e *ActiveEquipment) ClearAll() {
	*e = ActiveEquipment{Owner: e.Owner}
}

// ArmorColdResist sums the cold resistance across all worn armor (spec §4.4
// cold-immunity-stacking note: armor resistance scales, it does not
// short-circuit like a full zone neutralization does).
func (e *ActiveEquipment) ArmorColdResist(items *data.ItemTable) float64 {
	total := 0.0
	for _, eq := range e.ArmorSlots() {
		if eq.Empty() {
			continue
		}
		if def, ok := items.Get(eq.DefID); ok {
			total += def.Armor.Cold
		}
	}
	if total > 1 {
		total = 1
	}
	return total
}
