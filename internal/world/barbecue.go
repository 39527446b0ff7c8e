package world

// Barbecue is a cooking-only appliance: no raw-to-charcoal smelting, faster
// cook rate than a campfire, rejects non-food/non-fuel items.
type Barbecue struct {
	SlottedBase
	FuelBed
	PosX, PosY float64
	ChunkIndex int64
	Health     float64
	foodDefIDs map[int32]bool
}

const barbecueCookSlots = 4

func NewBarbecue(id ContainerID, x, y float64, chunk int64, foodDefIDs map[int32]bool) *Barbecue {
	return &Barbecue{
		SlottedBase: NewSlottedBase(id, 1+barbecueCookSlots),
		PosX:        x,
		PosY:        y,
		ChunkIndex:  chunk,
		Health:      100,
		foodDefIDs:  foodDefIDs,
	}
}

func (b *Barbecue) ContainerType() ContainerType { return ContainerBarbecue }
func (b *Barbecue) FuelSlot() int                { return 0 }
func (b *Barbecue) CookRack() []int              { return b.CookSlots() }
func (b *Barbecue) Position() (float64, float64) { return b.PosX, b.PosY }
func (b *Barbecue) OpenFlame() bool              { return true }

func (b *Barbecue) CookSlots() []int {
	out := make([]int, barbecueCookSlots)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// Allows rejects anything that isn't food or the fuel item (spec §7
// TypeViolation example: "bandage in barbecue").
func (b *Barbecue) Allows(defID int32) bool {
	return b.foodDefIDs[defID]
}

type BarbecueFamily struct {
	Table interface {
		Range(func(ContainerID, *Barbecue) bool)
	}
}

func (f BarbecueFamily) Each(fn func(ClearableContainer)) {
	f.Table.Range(func(_ ContainerID, c *Barbecue) bool {
		fn(c)
		return true
	})
}
