package world

import "github.com/google/uuid"

// DroppedItem is the world entity an ItemInstance's location points to when
// Location.Kind is LocDropped (spec §3 Location union: "Dropped(dropped_item_id)").
// Not itself a container: it holds exactly one stack, identified by the
// item instance it wraps. Token is a stable identifier that survives a
// process restart without colliding with the in-memory handle sequence,
// which restarts from the highest persisted id.
type DroppedItem struct {
	ID         DroppedItemID
	Token      uuid.UUID
	InstanceID ItemInstanceID
	PosX, PosY float64
	ChunkIndex int64
	DroppedBy  PlayerID // 0 = anyone may pick up
	DroppedAt  int64    // unix seconds, drives the despawn tick (spec §4.3)
}
