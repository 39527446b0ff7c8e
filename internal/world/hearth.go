package world

// Hearth is the per-settlement upkeep sink (spec §4.3 upkeep tick, §9
// "homestead_hearth.rs"): each upkeep tick consumes one resource unit from
// this container's slots and records LastUpkeepPaidAt when it could; the
// decay tick then spares every building cell of the hearth's owner. No
// connected-structures walk is made from FoundationCell.
type Hearth struct {
	SlottedBase
	PosX, PosY       float64
	ChunkIndex       int64
	Health           float64
	FoundationCell   BuildingCellID
	Owner            PlayerID
	LastUpkeepPaidAt int64 // unix ms of the last upkeep tick this hearth could pay
}

const hearthSlots = 18

func NewHearth(id ContainerID, x, y float64, chunk int64, foundation BuildingCellID, owner PlayerID) *Hearth {
	return &Hearth{
		SlottedBase:    NewSlottedBase(id, hearthSlots),
		PosX:           x, PosY: y, ChunkIndex: chunk,
		Health:         300,
		FoundationCell: foundation,
		Owner:          owner,
	}
}

func (h *Hearth) ContainerType() ContainerType { return ContainerHearth }
func (h *Hearth) Allows(defID int32) bool      { return true }

type HearthFamily struct {
	Table interface {
		Range(func(ContainerID, *Hearth) bool)
	}
}

func (f HearthFamily) Each(fn func(ClearableContainer)) {
	f.Table.Range(func(_ ContainerID, c *Hearth) bool { fn(c); return true })
}
