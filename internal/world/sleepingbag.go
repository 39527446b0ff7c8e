package world

// SleepingBag is a placed respawn anchor (spec §4.4: "sleeping-bag respawn
// at a chosen owned bag"). It holds no items and so is not a Container
// family; it shares the container id sequence because reducers address it
// the same way they address placed deployables.
type SleepingBag struct {
	ID         ContainerID
	Owner      PlayerID
	PosX, PosY float64
	ChunkIndex int64
	PlacedAt   int64 // unix seconds
}
