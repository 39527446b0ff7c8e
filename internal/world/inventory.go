package world

// PlayerInventory and PlayerHotbar are the two player-owned slot arrays
// named in spec §3's Location union. Both embed SlottedBase so the
// inventory transaction engine's generic routines (spec §4.1) work on them
// exactly like a Container, without a player needing to be one.
const (
	PlayerInventorySlots = 24
	PlayerHotbarSlots    = 6
)

type PlayerInventory struct {
	SlottedBase
	Owner PlayerID
}

func NewPlayerInventory(owner PlayerID) *PlayerInventory {
	return &PlayerInventory{SlottedBase: NewSlottedBase(0, PlayerInventorySlots), Owner: owner}
}

type PlayerHotbar struct {
	SlottedBase
	Owner PlayerID
}

func NewPlayerHotbar(owner PlayerID) *PlayerHotbar {
	return &PlayerHotbar{SlottedBase: NewSlottedBase(0, PlayerHotbarSlots), Owner: owner}
}
