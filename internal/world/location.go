package world

import "github.com/soitun/survivalcore/internal/data"

// LocationKind tags which arm of the ItemLocation union is populated.
type LocationKind int

const (
	LocUnknown LocationKind = iota
	LocInventory
	LocHotbar
	LocEquipped
	LocContainer
	LocDropped
)

// EquipSlotRef names an equipment slot independent of data.EquipSlot, since
// equipment slots are addressed by player + slot, not by item category.
type EquipSlotRef = data.EquipSlot

// ContainerType names a container family (spec §3 Container row).
type ContainerType string

const (
	ContainerCampfire      ContainerType = "Campfire"
	ContainerBarbecue      ContainerType = "Barbecue"
	ContainerFurnace       ContainerType = "Furnace"
	ContainerStorageBox    ContainerType = "StorageBox"
	ContainerStash         ContainerType = "Stash"
	ContainerHearth        ContainerType = "Hearth"
	ContainerCorpse        ContainerType = "Corpse"
	ContainerRainCollector ContainerType = "RainCollector"
	ContainerLantern       ContainerType = "Lantern"
)

// Location is the discriminated union of spec §3: "ItemLocation is one of:
// Inventory(owner, slot_index), Hotbar(owner, slot_index),
// Equipped(owner, slot_type), Container(container_type, container_id,
// slot_index), Dropped(dropped_item_id), Unknown."
//
// Only the fields relevant to Kind are meaningful; the rest are zero. This
// mirrors a tagged union with a flat struct rather than an interface, the
// same tradeoff the teacher's entity-tag grid makes (spec §9: "Dynamic /
// runtime type dispatch... avoids trait-object storage").
type Location struct {
	Kind LocationKind

	Owner     PlayerID
	SlotIndex int

	EquipSlot EquipSlotRef

	ContainerType ContainerType
	ContainerID   ContainerID

	DroppedID DroppedItemID
}

func Unknown() Location { return Location{Kind: LocUnknown} }

func InInventory(owner PlayerID, slot int) Location {
	return Location{Kind: LocInventory, Owner: owner, SlotIndex: slot}
}

func InHotbar(owner PlayerID, slot int) Location {
	return Location{Kind: LocHotbar, Owner: owner, SlotIndex: slot}
}

func InEquipped(owner PlayerID, slot EquipSlotRef) Location {
	return Location{Kind: LocEquipped, Owner: owner, EquipSlot: slot}
}

func InContainer(ct ContainerType, id ContainerID, slot int) Location {
	return Location{Kind: LocContainer, ContainerType: ct, ContainerID: id, SlotIndex: slot}
}

func InDropped(id DroppedItemID) Location {
	return Location{Kind: LocDropped, DroppedID: id}
}

// Equal reports whether two locations refer to the same slot.
func (l Location) Equal(o Location) bool {
	return l == o
}
