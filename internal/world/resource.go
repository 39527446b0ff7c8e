package world

// ResourceNodeKind enumerates the harvestable static entities the spatial
// index tracks alongside placed structures (spec §3 SpatialIndex: Tree,
// Stone, BasaltColumn).
type ResourceNodeKind byte

const (
	ResourceTree ResourceNodeKind = iota
	ResourceStone
	ResourceBasaltColumn
)

// ResourceNode is one harvestable world feature. Depleting it (health to 0)
// rolls its yield list; the global tick's spawn cycle restores it after a
// cooldown rather than deleting the row, so node positions are stable for
// the life of the world.
type ResourceNode struct {
	ID         ResourceNodeID
	Kind       ResourceNodeKind
	PosX, PosY float64
	ChunkIndex int64
	Health     float64
	MaxHealth  float64
	DepletedAt int64 // unix seconds; 0 while standing
}

func (n *ResourceNode) Depleted() bool { return n.Health <= 0 }

// YieldSourceID keys the node's kind into the seeded yield table.
func (n *ResourceNode) YieldSourceID() int32 { return int32(n.Kind) + 1 }

// CollisionRadius is the broad-phase circle each kind occupies in the
// spatial grid (spec §4.2: trees, stones, and columns are circle colliders).
func (n *ResourceNode) CollisionRadius() float64 {
	switch n.Kind {
	case ResourceStone:
		return 12
	case ResourceBasaltColumn:
		return 14
	default:
		return 10
	}
}
