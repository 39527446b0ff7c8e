package world

// Campfire is a burning/cooking container (spec §3, §4.3 per-appliance
// tick). NumSlots mirrors a small fuel+cook rack: slot 0 is fuel, the rest
// are cook slots.
type Campfire struct {
	SlottedBase
	FuelBed
	PosX, PosY float64
	ChunkIndex int64
	Health     float64
}

const campfireCookSlots = 4

func NewCampfire(id ContainerID, x, y float64, chunk int64) *Campfire {
	return &Campfire{
		SlottedBase: NewSlottedBase(id, 1+campfireCookSlots),
		PosX:        x,
		PosY:        y,
		ChunkIndex:  chunk,
		Health:      100,
	}
}

func (c *Campfire) ContainerType() ContainerType { return ContainerCampfire }

func (c *Campfire) Allows(defID int32) bool { return true }

// FuelSlot is the dedicated fuel slot index.
func (c *Campfire) FuelSlot() int { return 0 }

// CookSlots returns the cook-rack slot indices.
func (c *Campfire) CookSlots() []int {
	out := make([]int, campfireCookSlots)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func (c *Campfire) CookRack() []int              { return c.CookSlots() }
func (c *Campfire) Position() (float64, float64) { return c.PosX, c.PosY }
func (c *Campfire) OpenFlame() bool              { return true }

// CampfireFamily adapts a store.Table of campfires to ContainerFamily so
// ContainerClearer can fan out across all live campfires.
type CampfireFamily struct {
	Table interface {
		Range(func(ContainerID, *Campfire) bool)
	}
}

func (f CampfireFamily) Each(fn func(ClearableContainer)) {
	f.Table.Range(func(_ ContainerID, c *Campfire) bool {
		fn(c)
		return true
	})
}
