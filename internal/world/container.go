package world

// Slot is one addressable slot inside a container: an item reference plus a
// cached def id and any per-slot ancillary state (cooking progress).
type Slot struct {
	InstanceID      ItemInstanceID // zero = empty
	DefID           int32
	CookProgressSec float64
}

func (s Slot) Empty() bool { return s.InstanceID == 0 }

// SlotArray is the mechanical slot-addressing capability shared by
// container families AND a player's own Inventory/Hotbar slot maps, so the
// inventory transaction engine's move/split routines can be written once
// against either side of a transfer (spec §4.1).
type SlotArray interface {
	NumSlots() int
	GetSlot(i int) Slot
	// SetSlot replaces slot i. Setting instance to 0 also clears ancillary
	// state (spec §4.1: "Setting a slot to none must also clear any
	// per-slot ancillary state").
	SetSlot(i int, instance ItemInstanceID, defID int32)
}

// Container is the uniform capability of spec §4.1: "a thing with N indexed
// slots holding item instances." Every container family (campfire,
// barbecue, furnace, storage box, stash, hearth, corpse, rain collector,
// lantern) implements this once so the inventory transaction engine can be
// written generically against it (spec §9 "Heterogeneous containers").
type Container interface {
	SlotArray
	ContainerType() ContainerType
	ContainerID() ContainerID
	// Allows reports whether defID is a category this container accepts
	// (spec §7 TypeViolation source, e.g. "bandage in barbecue").
	Allows(defID int32) bool
	// Destroyed reports whether the container should no longer participate
	// in transactions or collision.
	Destroyed() bool
}

// ClearableContainer is a Container that also knows how to drop a single
// item-instance reference, used by ContainerClearer's fan-out.
type ClearableContainer interface {
	Container
	// ClearItem removes every slot reference to instanceID in this
	// container, returning true if anything changed.
	ClearItem(instanceID ItemInstanceID) bool
}

// ContainerFamily is registered with a ContainerClearer so that clearing an
// item's location can fan out across every live container of that family
// without the caller needing to know which families exist. Grounded on the
// teacher's ecs.Registry/Removable fan-out (adapted: instead of bulk-wiping
// one entity's components, this bulk-clears one item across all containers
// of a family).
type ContainerFamily interface {
	// Each calls fn for every live container of this family.
	Each(fn func(ClearableContainer))
}

// ContainerClearer implements spec §4.1's clear_item_from_any_container:
// "fans out across all container families and is invoked whenever an
// item's definitive location becomes Unknown or it is scheduled for
// deletion."
type ContainerClearer struct {
	families []ContainerFamily
}

func NewContainerClearer() *ContainerClearer {
	return &ContainerClearer{}
}

// Register adds a container family to the fan-out list.
func (c *ContainerClearer) Register(f ContainerFamily) {
	c.families = append(c.families, f)
}

// ClearItemFromAnyContainer removes every slot reference to instanceID
// across every registered family, returning true if anything changed.
func (c *ContainerClearer) ClearItemFromAnyContainer(instanceID ItemInstanceID) bool {
	changed := false
	for _, fam := range c.families {
		fam.Each(func(ct ClearableContainer) {
			if ct.ClearItem(instanceID) {
				changed = true
			}
		})
	}
	return changed
}
