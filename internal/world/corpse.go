package world

import "github.com/google/uuid"

// Corpse is the container created on player death (spec §4.4), holding the
// player's full inventory/hotbar/armor at the moment of death. It has no
// fuel/cook behavior and is destroyed once emptied or after its despawn
// schedule fires. Token identifies the corpse stably across restarts, the
// same way DroppedItem carries one.
type Corpse struct {
	SlottedBase
	Token      uuid.UUID
	PosX, PosY float64
	ChunkIndex int64
	Owner      PlayerID
	CreatedAt  int64 // unix seconds, drives despawn scheduling
}

const corpseSlots = 40 // inventory + hotbar + armor, generously sized

func NewCorpse(id ContainerID, owner PlayerID, x, y float64, chunk int64, createdAt int64) *Corpse {
	return &Corpse{
		SlottedBase: NewSlottedBase(id, corpseSlots),
		Token:       uuid.New(),
		PosX:        x, PosY: y, ChunkIndex: chunk,
		Owner: owner, CreatedAt: createdAt,
	}
}

func (c *Corpse) ContainerType() ContainerType { return ContainerCorpse }
func (c *Corpse) Allows(defID int32) bool      { return true }

// Empty reports whether every slot is vacated (pickup eligible for
// owner-initiated container destruction per spec §3).
func (c *Corpse) Empty() bool {
	for i := 0; i < c.NumSlots(); i++ {
		if !c.GetSlot(i).Empty() {
			return false
		}
	}
	return true
}

type CorpseFamily struct {
	Table interface {
		Range(func(ContainerID, *Corpse) bool)
	}
}

func (f CorpseFamily) Each(fn func(ClearableContainer)) {
	f.Table.Range(func(_ ContainerID, c *Corpse) bool { fn(c); return true })
}
