package world

// StorageBox is a plain many-slot container with no fuel/cook behavior and
// an owner-privilege radius (spec §9: "Building-privilege radius... granted
// until explicitly revoked by the owner").
type StorageBox struct {
	SlottedBase
	PosX, PosY float64
	ChunkIndex int64
	Health     float64
	Owner      PlayerID
}

const storageBoxSlots = 24

func NewStorageBox(id ContainerID, owner PlayerID, x, y float64, chunk int64) *StorageBox {
	return &StorageBox{
		SlottedBase: NewSlottedBase(id, storageBoxSlots),
		PosX:        x, PosY: y, ChunkIndex: chunk,
		Health: 250, Owner: owner,
	}
}

func (b *StorageBox) ContainerType() ContainerType { return ContainerStorageBox }
func (b *StorageBox) Allows(defID int32) bool      { return true }

type StorageBoxFamily struct {
	Table interface {
		Range(func(ContainerID, *StorageBox) bool)
	}
}

func (f StorageBoxFamily) Each(fn func(ClearableContainer)) {
	f.Table.Range(func(_ ContainerID, c *StorageBox) bool { fn(c); return true })
}

// Stash is a hidden, smaller-capacity, buried container.
type Stash struct {
	SlottedBase
	PosX, PosY float64
	ChunkIndex int64
	Health     float64
	Owner      PlayerID
	Buried     bool
}

const stashSlots = 12

func NewStash(id ContainerID, owner PlayerID, x, y float64, chunk int64) *Stash {
	return &Stash{
		SlottedBase: NewSlottedBase(id, stashSlots),
		PosX:        x, PosY: y, ChunkIndex: chunk,
		Health: 100, Owner: owner,
	}
}

func (s *Stash) ContainerType() ContainerType { return ContainerStash }
func (s *Stash) Allows(defID int32) bool      { return true }

type StashFamily struct {
	Table interface {
		Range(func(ContainerID, *Stash) bool)
	}
}

func (f StashFamily) Each(fn func(ClearableContainer)) {
	f.Table.Range(func(_ ContainerID, c *Stash) bool { fn(c); return true })
}

// RainCollector passively fills an internal water reservoir during rain
// (spec §4.3 "Water-container fill" tick family feeds off the same
// mechanism for equipped containers; the collector keeps its own single
// bulk reservoir represented as slot 0's quantity).
type RainCollector struct {
	SlottedBase
	PosX, PosY   float64
	ChunkIndex   int64
	Health       float64
	CapacityLit  float64
}

func NewRainCollector(id ContainerID, x, y float64, chunk int64) *RainCollector {
	return &RainCollector{
		SlottedBase: NewSlottedBase(id, 1),
		PosX:        x, PosY: y, ChunkIndex: chunk,
		Health: 80, CapacityLit: 50,
	}
}

func (r *RainCollector) ContainerType() ContainerType { return ContainerRainCollector }
func (r *RainCollector) Allows(defID int32) bool      { return true }

type RainCollectorFamily struct {
	Table interface {
		Range(func(ContainerID, *RainCollector) bool)
	}
}

func (f RainCollectorFamily) Each(fn func(ClearableContainer)) {
	f.Table.Range(func(_ ContainerID, c *RainCollector) bool { fn(c); return true })
}

// Lantern is a single-fuel-slot light source; unlike Campfire it has no
// cook rack.
type Lantern struct {
	SlottedBase
	FuelBed
	PosX, PosY float64
	ChunkIndex int64
	Health     float64
}

func NewLantern(id ContainerID, x, y float64, chunk int64) *Lantern {
	return &Lantern{
		SlottedBase: NewSlottedBase(id, 1),
		PosX:        x, PosY: y, ChunkIndex: chunk,
		Health: 50,
	}
}

func (l *Lantern) ContainerType() ContainerType { return ContainerLantern }
func (l *Lantern) Allows(defID int32) bool      { return true }
func (l *Lantern) FuelSlot() int                { return 0 }
func (l *Lantern) CookRack() []int              { return nil }
func (l *Lantern) Position() (float64, float64) { return l.PosX, l.PosY }
func (l *Lantern) OpenFlame() bool              { return false }

type LanternFamily struct {
	Table interface {
		Range(func(ContainerID, *Lantern) bool)
	}
}

func (f LanternFamily) Each(fn func(ClearableContainer)) {
	f.Table.Range(func(_ ContainerID, c *Lantern) bool { fn(c); return true })
}
