package world

// Furnace smelts ore into metal using the same fuel/cook-tick model as
// Campfire/Barbecue but a larger slot count and an ore-only input policy.
type Furnace struct {
	SlottedBase
	FuelBed
	PosX, PosY float64
	ChunkIndex int64
	Health     float64
	oreDefIDs  map[int32]bool
}

const furnaceSmeltSlots = 6

func NewFurnace(id ContainerID, x, y float64, chunk int64, oreDefIDs map[int32]bool) *Furnace {
	return &Furnace{
		SlottedBase: NewSlottedBase(id, 1+furnaceSmeltSlots),
		PosX:        x,
		PosY:        y,
		ChunkIndex:  chunk,
		Health:      200,
		oreDefIDs:   oreDefIDs,
	}
}

func (f *Furnace) ContainerType() ContainerType { return ContainerFurnace }
func (f *Furnace) FuelSlot() int                { return 0 }
func (f *Furnace) CookRack() []int              { return f.SmeltSlots() }
func (f *Furnace) Position() (float64, float64) { return f.PosX, f.PosY }
func (f *Furnace) OpenFlame() bool              { return false }

func (f *Furnace) SmeltSlots() []int {
	out := make([]int, furnaceSmeltSlots)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func (f *Furnace) Allows(defID int32) bool {
	return f.oreDefIDs[defID]
}

type FurnaceFamily struct {
	Table interface {
		Range(func(ContainerID, *Furnace) bool)
	}
}

func (fam FurnaceFamily) Each(fn func(ClearableContainer)) {
	fam.Table.Range(func(_ ContainerID, c *Furnace) bool {
		fn(c)
		return true
	})
}
