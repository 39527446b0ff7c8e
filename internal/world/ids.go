// Package world holds the persistent table rows of spec §3: players,
// items, containers, equipment, tiles, buildings, and hostile NPCs, plus the
// location invariant that ties an item instance to whatever references it.
package world

// PlayerID identifies a Player row. It is permanent: a player persists
// forever once registered (spec §3 Entity lifecycles).
type PlayerID uint64

// ConnectionID identifies a live network connection (ActiveConnection row).
type ConnectionID uint64

// ItemInstanceID identifies an ItemInstance row.
type ItemInstanceID uint64

// ContainerID identifies a Container row, unique across all container
// families sharing one handle sequence so a (type, id) pair is never
// ambiguous even though multiple families exist.
type ContainerID uint64

// HostileID identifies a WildAnimal row.
type HostileID uint64

// BuildingCellID identifies a FoundationCell/WallCell/Door/Fence row.
type BuildingCellID uint64

// DroppedItemID identifies a Dropped world entity.
type DroppedItemID uint64

// ResourceNodeID identifies a harvestable ResourceNode row (tree, stone,
// basalt column).
type ResourceNodeID uint64
