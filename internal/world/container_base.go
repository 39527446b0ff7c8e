package world

// SlottedBase implements the mechanical half of Container (slot storage)
// that every concrete container family embeds, so only the
// family-specific policy (Allows, ContainerType) needs to be written once
// per family (spec §9: "implement the move/split/drop routines once
// against it").
type SlottedBase struct {
	id        ContainerID
	slots     []Slot
	destroyed bool
}

func NewSlottedBase(id ContainerID, numSlots int) SlottedBase {
	return SlottedBase{id: id, slots: make([]Slot, numSlots)}
}

func (b *SlottedBase) ContainerID() ContainerID { return b.id }
func (b *SlottedBase) NumSlots() int            { return len(b.slots) }
func (b *SlottedBase) Destroyed() bool          { return b.destroyed }
func (b *SlottedBase) SetDestroyed(v bool)      { b.destroyed = v }

func (b *SlottedBase) GetSlot(i int) Slot {
	if i < 0 || i >= len(b.slots) {
		return Slot{}
	}
	return b.slots[i]
}

func (b *SlottedBase) SetSlot(i int, instance ItemInstanceID, defID int32) {
	if i < 0 || i >= len(b.slots) {
		return
	}
	if instance == 0 {
		b.slots[i] = Slot{}
		return
	}
	b.slots[i] = Slot{InstanceID: instance, DefID: defID}
}

// SetSlotCooking sets a slot's item reference while preserving/overwriting
// its cooking progress explicitly — used by cook-tick advancement, which
// must not clear ancillary state the way a plain SetSlot(0,0) does.
func (b *SlottedBase) SetSlotCooking(i int, instance ItemInstanceID, defID int32, progress float64) {
	if i < 0 || i >= len(b.slots) {
		return
	}
	b.slots[i] = Slot{InstanceID: instance, DefID: defID, CookProgressSec: progress}
}

// ClearItem removes every slot reference to instanceID, returning true if
// anything changed.
func (b *SlottedBase) ClearItem(instanceID ItemInstanceID) bool {
	changed := false
	for i, s := range b.slots {
		if s.InstanceID == instanceID {
			b.slots[i] = Slot{}
			changed = true
		}
	}
	return changed
}

// FindEmpty returns the index of the first empty slot, or -1.
func (b *SlottedBase) FindEmpty() int {
	for i, s := range b.slots {
		if s.Empty() {
			return i
		}
	}
	return -1
}

// FindStackable returns the index of the first slot holding defID with
// room for at least one more unit, given the current per-instance
// quantities (quantities are tracked on the ItemInstance table, not here).
func (b *SlottedBase) FindSameDef(defID int32) []int {
	var out []int
	for i, s := range b.slots {
		if !s.Empty() && s.DefID == defID {
			out = append(out, i)
		}
	}
	return out
}
