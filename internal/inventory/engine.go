// Package inventory implements spec §4.1's inventory transaction engine:
// move/split/merge/drop/quick-move routines written once against the
// SlotArray/Container capability in internal/world, so every concrete
// container family and a player's own inventory/hotbar slot arrays share one
// implementation instead of nine near-identical copies.
package inventory

import (
	"github.com/google/uuid"

	"github.com/soitun/survivalcore/internal/apperr"
	"github.com/soitun/survivalcore/internal/data"
	"github.com/soitun/survivalcore/internal/world"
)

// Engine holds the two tables the transaction routines need: the world for
// every table a slot reference might resolve into, and the item
// definitions for stack_size lookups.
type Engine struct {
	World *world.World
	Items *data.ItemTable
}

func New(w *world.World, items *data.ItemTable) *Engine {
	return &Engine{World: w, Items: items}
}

// SlotOwner is a SlotArray that also knows how to address one of its own
// slots as a world.Location, letting the generic routines below keep
// spec §3's "location and referring collection must always agree"
// invariant without a type switch at every call site.
type SlotOwner interface {
	world.SlotArray
	LocationAt(slot int) world.Location
}

// ContainerOwner adapts any world.Container to SlotOwner.
type ContainerOwner struct{ world.Container }

func (c ContainerOwner) LocationAt(slot int) world.Location {
	return world.InContainer(c.ContainerType(), c.ContainerID(), slot)
}

// InventoryOwner adapts a player's backpack slots to SlotOwner.
type InventoryOwner struct {
	*world.PlayerInventory
	PlayerOwner world.PlayerID
}

func (i InventoryOwner) LocationAt(slot int) world.Location {
	return world.InInventory(i.PlayerOwner, slot)
}

// HotbarOwner adapts a player's hotbar slots to SlotOwner.
type HotbarOwner struct {
	*world.PlayerHotbar
	PlayerOwner world.PlayerID
}

func (h HotbarOwner) LocationAt(slot int) world.Location {
	return world.InHotbar(h.PlayerOwner, slot)
}

func (e *Engine) item(id world.ItemInstanceID) (*world.ItemInstance, error) {
	it, ok := e.World.Items.Get(id)
	if !ok {
		return nil, apperr.New(apperr.NotFound, "item instance not found")
	}
	return it, nil
}

func (e *Engine) requireActive(p *world.Player) error {
	if p == nil {
		return apperr.New(apperr.NotFound, "player not found")
	}
	if !p.CanIssueCommands() {
		return apperr.New(apperr.StateViolation, "player is dead or knocked out")
	}
	return nil
}

// ownsItem implements the "item ownership via location" constraint: an item
// currently sitting in a personal slot array (inventory, hotbar, equipped)
// must belong to the acting player. Container/dropped locations carry no
// per-item owner; access to those is a distance/permission concern handled
// by the calling reducer, not this engine.
func (e *Engine) ownsItem(owner world.PlayerID, it *world.ItemInstance) bool {
	switch it.Location.Kind {
	case world.LocInventory, world.LocHotbar, world.LocEquipped:
		return it.Location.Owner == owner
	default:
		return true
	}
}

// validateTransferable runs the actor/ownership/durability checks common to
// every transfer routine (spec §4.1 failure list: "item not found, not
// owned,... item is broken,... player dead/knocked out").
func (e *Engine) validateTransferable(actor *world.Player, it *world.ItemInstance, requireOwn bool) error {
	if err := e.requireActive(actor); err != nil {
		return err
	}
	if requireOwn && !e.ownsItem(actor.ID, it) {
		return apperr.New(apperr.OwnershipViolation, "item does not belong to the actor")
	}
	if it.IsBroken() {
		return apperr.New(apperr.ResourceBroken, "item is broken")
	}
	return nil
}

func stackSize(items *data.ItemTable, defID int32) int32 {
	if d, ok := items.Get(defID); ok && d.StackSize > 0 {
		return d.StackSize
	}
	return 1
}

func findEmptySlot(a world.SlotArray) int {
	for i := 0; i < a.NumSlots(); i++ {
		if a.GetSlot(i).Empty() {
			return i
		}
	}
	return -1
}

func sameDefSlotsWithRoom(a world.SlotArray, defID int32) []int {
	var out []int
	for i := 0; i < a.NumSlots(); i++ {
		s := a.GetSlot(i)
		if !s.Empty() && s.DefID == defID {
			out = append(out, i)
		}
	}
	return out
}

// freeCapacity estimates how many additional units of defID a SlotArray can
// absorb: headroom in existing same-def stacks plus empty slots at full
// stack size. Quick-move/pickup routines precheck this so a CapacityExceeded
// failure never leaves partially-applied state behind (spec §8 property 10:
// "if inventory is full,... state is bit-for-bit unchanged").
func (e *Engine) freeCapacity(a world.SlotArray, defID int32) int32 {
	max := stackSize(e.Items, defID)
	var total int32
	for i := 0; i < a.NumSlots(); i++ {
		s := a.GetSlot(i)
		if s.Empty() {
			total += max
			continue
		}
		if s.DefID != defID {
			continue
		}
		if inst, ok := e.World.Items.Get(s.InstanceID); ok {
			if room := max - inst.Quantity; room > 0 {
				total += room
			}
		}
	}
	return total
}

// clearSource removes it's slot reference from wherever its current
// Location says it lives, the "clear the old side" half of every move. The
// new side is always written by the caller right after.
func (e *Engine) clearSource(it *world.ItemInstance) {
	switch it.Location.Kind {
	case world.LocInventory:
		if inv, ok := e.World.Inventories.Get(it.Location.Owner); ok {
			inv.SetSlot(it.Location.SlotIndex, 0, 0)
		}
	case world.LocHotbar:
		if hb, ok := e.World.Hotbars.Get(it.Location.Owner); ok {
			hb.SetSlot(it.Location.SlotIndex, 0, 0)
		}
	case world.LocEquipped:
		if eq, ok := e.World.Equipment.Get(it.Location.Owner); ok {
			eq.Set(it.Location.EquipSlot, world.EquippedItem{})
		}
	case world.LocContainer:
		if c, ok := e.World.Container(it.Location.ContainerType, it.Location.ContainerID); ok {
			c.SetSlot(it.Location.SlotIndex, 0, 0)
		}
	case world.LocDropped:
		e.World.Dropped.Delete(it.Location.DroppedID)
	}
}

// MergeOrPlaceIntoSlot implements spec §4.1's merge_or_place_into_slot: if
// the target slot holds the same def with headroom, transfer quantity up
// to stack_size and delete the source once it empties; otherwise place the
// source into the (assumed empty) slot outright. This is the single place
// that ever moves an ItemInstance's Location, so every higher-level routine
// in this package is built on top of it.
func (e *Engine) MergeOrPlaceIntoSlot(it *world.ItemInstance, dst SlotOwner, slot int) error {
	target := dst.GetSlot(slot)
	if target.Empty() {
		e.clearSource(it)
		dst.SetSlot(slot, it.InstanceID, it.ItemDefID)
		it.Location = dst.LocationAt(slot)
		return nil
	}
	if target.DefID != it.ItemDefID {
		return apperr.New(apperr.CapacityExceeded, "target slot is occupied by a different item")
	}
	targetInst, err := e.item(target.InstanceID)
	if err != nil {
		return err
	}
	room := stackSize(e.Items, it.ItemDefID) - targetInst.Quantity
	if room <= 0 {
		return apperr.New(apperr.CapacityExceeded, "target stack is full")
	}
	moved := it.Quantity
	if moved > room {
		moved = room
	}
	targetInst.Quantity += moved
	it.Quantity -= moved
	if it.Quantity <= 0 {
		e.clearSource(it)
		it.Location = world.Unknown()
		e.World.DeleteItem(it.InstanceID)
	}
	return nil
}

// transferAll moves the whole remaining quantity of it into dst, merging
// into existing same-def stacks first and then the first empty slot.
func (e *Engine) transferAll(it *world.ItemInstance, dst SlotOwner) error {
	for _, idx := range sameDefSlotsWithRoom(dst, it.ItemDefID) {
		if it.Quantity <= 0 {
			return nil
		}
		if t, ok := e.World.Items.Get(dst.GetSlot(idx).InstanceID); ok && t.Quantity >= stackSize(e.Items, it.ItemDefID) {
			continue
		}
		if err := e.MergeOrPlaceIntoSlot(it, dst, idx); err != nil {
			return err
		}
	}
	if it.Quantity <= 0 {
		return nil
	}
	idx := findEmptySlot(dst)
	if idx < 0 {
		return apperr.New(apperr.CapacityExceeded, "no room")
	}
	return e.MergeOrPlaceIntoSlot(it, dst, idx)
}

// MoveToContainerSlot implements spec §4.1's move_to_container_slot:
// constraints are item ownership via location, slot in range, item type
// allowed by container policy, target slot empty or same def for merge.
func (e *Engine) MoveToContainerSlot(actor *world.Player, instanceID world.ItemInstanceID, dst world.Container, slot int) error {
	it, err := e.item(instanceID)
	if err != nil {
		return err
	}
	if err := e.validateTransferable(actor, it, true); err != nil {
		return err
	}
	if dst.Destroyed() {
		return apperr.New(apperr.StateViolation, "container is destroyed")
	}
	if slot < 0 || slot >= dst.NumSlots() {
		return apperr.New(apperr.NotFound, "slot out of range")
	}
	if !dst.Allows(it.ItemDefID) {
		return apperr.New(apperr.TypeViolation, "container does not accept this item category")
	}
	target := dst.GetSlot(slot)
	if !target.Empty() && target.DefID != it.ItemDefID {
		return apperr.New(apperr.CapacityExceeded, "target slot is occupied by a different item")
	}
	return e.MergeOrPlaceIntoSlot(it, ContainerOwner{dst}, slot)
}

// QuickMoveToContainer implements spec §4.1's quick_move_to_container:
// "first merge into existing stacks of same def, then fill first empty
// slot."
func (e *Engine) QuickMoveToContainer(actor *world.Player, dst world.Container, instanceID world.ItemInstanceID) error {
	it, err := e.item(instanceID)
	if err != nil {
		return err
	}
	if err := e.validateTransferable(actor, it, true); err != nil {
		return err
	}
	if dst.Destroyed() {
		return apperr.New(apperr.StateViolation, "container is destroyed")
	}
	if !dst.Allows(it.ItemDefID) {
		return apperr.New(apperr.TypeViolation, "container does not accept this item category")
	}
	if e.freeCapacity(dst, it.ItemDefID) < it.Quantity {
		return apperr.New(apperr.CapacityExceeded, "container is full")
	}
	return e.transferAll(it, ContainerOwner{dst})
}

// QuickMoveFromContainer implements spec §4.1's quick_move_from_container:
// "reverse: try to merge into player hotbar first, then inventory."
func (e *Engine) QuickMoveFromContainer(actor *world.Player, src world.Container, slot int) error {
	if err := e.requireActive(actor); err != nil {
		return err
	}
	if slot < 0 || slot >= src.NumSlots() {
		return apperr.New(apperr.NotFound, "slot out of range")
	}
	s := src.GetSlot(slot)
	if s.Empty() {
		return apperr.New(apperr.NotFound, "slot is empty")
	}
	it, err := e.item(s.InstanceID)
	if err != nil {
		return err
	}
	if err := e.validateTransferable(actor, it, false); err != nil {
		return err
	}
	hotbar, ok := e.World.Hotbars.Get(actor.ID)
	if !ok {
		return apperr.New(apperr.NotFound, "player hotbar not found")
	}
	inv, ok := e.World.Inventories.Get(actor.ID)
	if !ok {
		return apperr.New(apperr.NotFound, "player inventory not found")
	}
	if e.freeCapacity(hotbar, it.ItemDefID)+e.freeCapacity(inv, it.ItemDefID) < it.Quantity {
		return apperr.New(apperr.CapacityExceeded, "inventory and hotbar are both full")
	}
	hbOwner := HotbarOwner{PlayerHotbar: hotbar, PlayerOwner: actor.ID}
	if err := e.transferAll(it, hbOwner); err == nil {
		return nil
	}
	invOwner := InventoryOwner{PlayerInventory: inv, PlayerOwner: actor.ID}
	return e.transferAll(it, invOwner)
}

// MoveWithinContainer implements spec §4.1's move_within_container: swap /
// merge / move-to-empty, preserving per-slot ancillary state with the
// correct semantic (move carries it with the item; swap exchanges it;
// merge lets the target retain its own).
func (e *Engine) MoveWithinContainer(actor *world.Player, c world.Container, src, dst int) error {
	if err := e.requireActive(actor); err != nil {
		return err
	}
	if src < 0 || src >= c.NumSlots() || dst < 0 || dst >= c.NumSlots() {
		return apperr.New(apperr.NotFound, "slot out of range")
	}
	if src == dst {
		return nil
	}
	srcSlot := c.GetSlot(src)
	if srcSlot.Empty() {
		return apperr.New(apperr.NotFound, "source slot is empty")
	}
	dstSlot := c.GetSlot(dst)

	if dstSlot.Empty() {
		c.SetSlot(dst, srcSlot.InstanceID, srcSlot.DefID)
		if cooker, ok := c.(interface {
			SetSlotCooking(int, world.ItemInstanceID, int32, float64)
		}); ok {
			cooker.SetSlotCooking(dst, srcSlot.InstanceID, srcSlot.DefID, srcSlot.CookProgressSec)
		}
		c.SetSlot(src, 0, 0)
		if it, ok := e.World.Items.Get(srcSlot.InstanceID); ok {
			it.Location = ContainerOwner{c}.LocationAt(dst)
		}
		return nil
	}

	if dstSlot.DefID == srcSlot.DefID {
		it, err := e.item(srcSlot.InstanceID)
		if err != nil {
			return err
		}
		return e.MergeOrPlaceIntoSlot(it, ContainerOwner{c}, dst)
	}

	c.SetSlot(src, dstSlot.InstanceID, dstSlot.DefID)
	c.SetSlot(dst, srcSlot.InstanceID, srcSlot.DefID)
	if cooker, ok := c.(interface {
		SetSlotCooking(int, world.ItemInstanceID, int32, float64)
	}); ok {
		cooker.SetSlotCooking(src, dstSlot.InstanceID, dstSlot.DefID, dstSlot.CookProgressSec)
		cooker.SetSlotCooking(dst, srcSlot.InstanceID, srcSlot.DefID, srcSlot.CookProgressSec)
	}
	if it, ok := e.World.Items.Get(srcSlot.InstanceID); ok {
		it.Location = ContainerOwner{c}.LocationAt(dst)
	}
	if it, ok := e.World.Items.Get(dstSlot.InstanceID); ok {
		it.Location = ContainerOwner{c}.LocationAt(src)
	}
	return nil
}

// splitOff is the shared core of split_within/split_into/split_from/
// split_and_drop: it creates a new ItemInstance carrying qty units off of
// source, decrementing (and deleting, if exhausted) the source. It never
// touches where the new instance ends up — callers place it.
func (e *Engine) splitOff(source *world.ItemInstance, qty int32) (*world.ItemInstance, error) {
	if qty <= 0 || qty > source.Quantity {
		return nil, apperr.New(apperr.TypeViolation, "invalid split quantity")
	}
	newID := e.World.NextItemInstanceID()
	copied := make(map[string]any, len(source.ItemData))
	for k, v := range source.ItemData {
		copied[k] = v
	}
	newInst := &world.ItemInstance{
		InstanceID: newID,
		ItemDefID:  source.ItemDefID,
		Quantity:   qty,
		ItemData:   copied,
		Location:   world.Unknown(),
	}
	e.World.Items.Put(newID, newInst)

	source.Quantity -= qty
	if source.Quantity <= 0 {
		e.clearSource(source)
		source.Location = world.Unknown()
		e.World.DeleteItem(source.InstanceID)
	}
	return newInst, nil
}

// SplitWithin implements spec §4.1's split_within: splits qty off the item
// in srcSlot into an empty dstSlot of the same container.
func (e *Engine) SplitWithin(actor *world.Player, c world.Container, srcSlot int, qty int32, dstSlot int) (world.ItemInstanceID, error) {
	s := c.GetSlot(srcSlot)
	if s.Empty() {
		return 0, apperr.New(apperr.NotFound, "source slot is empty")
	}
	if !c.GetSlot(dstSlot).Empty() {
		return 0, apperr.New(apperr.CapacityExceeded, "destination slot is occupied")
	}
	source, err := e.item(s.InstanceID)
	if err != nil {
		return 0, err
	}
	if err := e.validateTransferable(actor, source, false); err != nil {
		return 0, err
	}
	newInst, err := e.splitOff(source, qty)
	if err != nil {
		return 0, err
	}
	c.SetSlot(dstSlot, newInst.InstanceID, newInst.ItemDefID)
	newInst.Location = ContainerOwner{c}.LocationAt(dstSlot)
	return newInst.InstanceID, nil
}

// SplitInto implements spec §4.1's split_into: splits qty off sourceID
// wherever it currently sits, into a specific slot of dst.
func (e *Engine) SplitInto(actor *world.Player, sourceID world.ItemInstanceID, qty int32, dst SlotOwner, dstSlot int) (world.ItemInstanceID, error) {
	if !dst.GetSlot(dstSlot).Empty() {
		return 0, apperr.New(apperr.CapacityExceeded, "destination slot is occupied")
	}
	source, err := e.item(sourceID)
	if err != nil {
		return 0, err
	}
	if err := e.validateTransferable(actor, source, true); err != nil {
		return 0, err
	}
	newInst, err := e.splitOff(source, qty)
	if err != nil {
		return 0, err
	}
	dst.SetSlot(dstSlot, newInst.InstanceID, newInst.ItemDefID)
	newInst.Location = dst.LocationAt(dstSlot)
	return newInst.InstanceID, nil
}

// SplitFrom implements spec §4.1's split_from: the partial-quantity analog
// of QuickMoveFromContainer — split qty out of a container/array slot and
// place the new stack on the actor's hotbar, falling back to inventory.
func (e *Engine) SplitFrom(actor *world.Player, src world.SlotArray, srcSlot int, qty int32) (world.ItemInstanceID, error) {
	s := src.GetSlot(srcSlot)
	if s.Empty() {
		return 0, apperr.New(apperr.NotFound, "source slot is empty")
	}
	source, err := e.item(s.InstanceID)
	if err != nil {
		return 0, err
	}
	if err := e.validateTransferable(actor, source, false); err != nil {
		return 0, err
	}
	hotbar, ok := e.World.Hotbars.Get(actor.ID)
	if !ok {
		return 0, apperr.New(apperr.NotFound, "player hotbar not found")
	}
	inv, ok := e.World.Inventories.Get(actor.ID)
	if !ok {
		return 0, apperr.New(apperr.NotFound, "player inventory not found")
	}
	idx := findEmptySlot(hotbar)
	owner := SlotOwner(HotbarOwner{PlayerHotbar: hotbar, PlayerOwner: actor.ID})
	if idx < 0 {
		idx = findEmptySlot(inv)
		owner = InventoryOwner{PlayerInventory: inv, PlayerOwner: actor.ID}
	}
	if idx < 0 {
		return 0, apperr.New(apperr.CapacityExceeded, "inventory and hotbar are both full")
	}
	newInst, err := e.splitOff(source, qty)
	if err != nil {
		return 0, err
	}
	owner.SetSlot(idx, newInst.InstanceID, newInst.ItemDefID)
	newInst.Location = owner.LocationAt(idx)
	return newInst.InstanceID, nil
}

// dropInstance creates a Dropped world entity wrapping it near (x,y) and
// repoints it.Location at it. Shared by DropFromContainerSlot and
// SplitAndDrop.
func (e *Engine) dropInstance(actor *world.Player, it *world.ItemInstance, x, y float64, chunkIndex int64) world.DroppedItemID {
	id := e.World.NextDroppedItemID()
	var owner world.PlayerID
	if actor != nil {
		owner = actor.ID
	}
	e.World.Dropped.Put(id, &world.DroppedItem{
		ID: id, Token: uuid.New(), InstanceID: it.InstanceID,
		PosX: x, PosY: y, ChunkIndex: chunkIndex, DroppedBy: owner,
	})
	it.Location = world.InDropped(id)
	return id
}

// DropFromContainerSlot implements spec §4.1's drop_from_container_slot:
// removes the slot reference and creates a Dropped world entity near a
// player-supplied anchor.
func (e *Engine) DropFromContainerSlot(actor *world.Player, src world.SlotArray, srcSlot int, anchorX, anchorY float64, chunkIndex int64) (world.DroppedItemID, error) {
	s := src.GetSlot(srcSlot)
	if s.Empty() {
		return 0, apperr.New(apperr.NotFound, "source slot is empty")
	}
	it, err := e.item(s.InstanceID)
	if err != nil {
		return 0, err
	}
	if err := e.validateTransferable(actor, it, false); err != nil {
		return 0, err
	}
	e.clearSource(it)
	return e.dropInstance(actor, it, anchorX, anchorY, chunkIndex), nil
}

// SplitAndDrop implements spec §4.1's split_and_drop: split qty off a
// source slot and immediately drop the new stack near the anchor.
func (e *Engine) SplitAndDrop(actor *world.Player, src world.SlotArray, srcSlot int, qty int32, anchorX, anchorY float64, chunkIndex int64) (world.DroppedItemID, error) {
	s := src.GetSlot(srcSlot)
	if s.Empty() {
		return 0, apperr.New(apperr.NotFound, "source slot is empty")
	}
	source, err := e.item(s.InstanceID)
	if err != nil {
		return 0, err
	}
	if err := e.validateTransferable(actor, source, false); err != nil {
		return 0, err
	}
	newInst, err := e.splitOff(source, qty)
	if err != nil {
		return 0, err
	}
	return e.dropInstance(actor, newInst, anchorX, anchorY, chunkIndex), nil
}

// PickupDropped is the reverse of DropFromContainerSlot: the actor picks up
// a Dropped world entity onto their hotbar, falling back to inventory
// (spec §8 round-trip law: "drop then pick up yields an equivalent stack
// delta... modulo consolidation with existing stacks").
func (e *Engine) PickupDropped(actor *world.Player, droppedID world.DroppedItemID) error {
	if err := e.requireActive(actor); err != nil {
		return err
	}
	dropped, ok := e.World.Dropped.Get(droppedID)
	if !ok {
		return apperr.New(apperr.NotFound, "dropped item not found")
	}
	it, err := e.item(dropped.InstanceID)
	if err != nil {
		return err
	}
	hotbar, ok := e.World.Hotbars.Get(actor.ID)
	if !ok {
		return apperr.New(apperr.NotFound, "player hotbar not found")
	}
	inv, ok := e.World.Inventories.Get(actor.ID)
	if !ok {
		return apperr.New(apperr.NotFound, "player inventory not found")
	}
	if e.freeCapacity(hotbar, it.ItemDefID)+e.freeCapacity(inv, it.ItemDefID) < it.Quantity {
		return apperr.New(apperr.CapacityExceeded, "inventory and hotbar are both full")
	}
	hbOwner := HotbarOwner{PlayerHotbar: hotbar, PlayerOwner: actor.ID}
	if err := e.transferAll(it, hbOwner); err != nil {
		invOwner := InventoryOwner{PlayerInventory: inv, PlayerOwner: actor.ID}
		if err := e.transferAll(it, invOwner); err != nil {
			return err
		}
	}
	e.World.Dropped.Delete(droppedID)
	return nil
}

// GiveOrDrop hands a freshly created, unplaced instance (Location Unknown)
// to the actor: merge into hotbar stacks first, then inventory, and if
// neither has room, drop it at (x,y) instead of failing — gather/yield
// payouts are never rolled back for a full backpack.
func (e *Engine) GiveOrDrop(actor *world.Player, it *world.ItemInstance, x, y float64, chunkIndex int64) {
	hotbar, hbOK := e.World.Hotbars.Get(actor.ID)
	inv, invOK := e.World.Inventories.Get(actor.ID)
	if hbOK && invOK &&
		e.freeCapacity(hotbar, it.ItemDefID)+e.freeCapacity(inv, it.ItemDefID) >= it.Quantity {
		hbOwner := HotbarOwner{PlayerHotbar: hotbar, PlayerOwner: actor.ID}
		if err := e.transferAll(it, hbOwner); err == nil {
			return
		}
		invOwner := InventoryOwner{PlayerInventory: inv, PlayerOwner: actor.ID}
		if err := e.transferAll(it, invOwner); err == nil {
			return
		}
	}
	e.dropInstance(actor, it, x, y, chunkIndex)
}

// ClearItemFromAnyContainer re-exports the world-level clearer so reducers
// that already hold an *Engine don't need a separate *world.World handle
// just to invalidate a deleted item's slot references (spec §4.1
// clear_item_from_any_container).
func (e *Engine) ClearItemFromAnyContainer(instanceID world.ItemInstanceID) bool {
	return e.World.Clearer.ClearItemFromAnyContainer(instanceID)
}
