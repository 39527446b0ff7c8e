package inventory

import (
	"testing"

	"github.com/soitun/survivalcore/internal/apperr"
	"github.com/soitun/survivalcore/internal/data"
	"github.com/soitun/survivalcore/internal/world"
)

func newTestEngine(t *testing.T) (*Engine, *world.World) {
	t.Helper()
	items := data.NewItemTable()
	items.Put(data.ItemDefinition{ID: 1, Name: "wood", Category: data.CategoryResource, StackSize: 100})
	items.Put(data.ItemDefinition{ID: 2, Name: "stone", Category: data.CategoryResource, StackSize: 100})
	w := world.New()
	return New(w, items), w
}

func newTestPlayer(t *testing.T, w *world.World) *world.Player {
	t.Helper()
	return w.RegisterPlayer("tester")
}

func putItem(t *testing.T, w *world.World, defID int32, qty int32, loc world.Location) *world.ItemInstance {
	t.Helper()
	id := w.NextItemInstanceID()
	it := &world.ItemInstance{InstanceID: id, ItemDefID: defID, Quantity: qty, Location: loc}
	w.Items.Put(id, it)
	return it
}

func TestMoveToContainerSlotPlacesIntoEmptySlot(t *testing.T) {
	e, w := newTestEngine(t)
	p := newTestPlayer(t, w)
	box := world.NewStorageBox(w.NextContainerID(), p.ID, 0, 0, 0)
	w.StorageBoxes.Put(box.ContainerID(), box)

	inv, _ := w.Inventories.Get(p.ID)
	it := putItem(t, w, 1, 10, world.InInventory(p.ID, 0))
	inv.SetSlot(0, it.InstanceID, it.ItemDefID)

	if err := e.MoveToContainerSlot(p, it.InstanceID, box, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !inv.GetSlot(0).Empty() {
		t.Fatal("source inventory slot should be cleared")
	}
	if box.GetSlot(3).InstanceID != it.InstanceID {
		t.Fatal("destination slot should hold the moved instance")
	}
	if it.Location.Kind != world.LocContainer || it.Location.SlotIndex != 3 {
		t.Fatalf("item location not updated: %+v", it.Location)
	}
}

func TestMoveToContainerSlotRejectsWrongOwner(t *testing.T) {
	e, w := newTestEngine(t)
	owner := newTestPlayer(t, w)
	other := newTestPlayer(t, w)
	box := world.NewStorageBox(w.NextContainerID(), owner.ID, 0, 0, 0)
	w.StorageBoxes.Put(box.ContainerID(), box)

	it := putItem(t, w, 1, 5, world.InInventory(owner.ID, 0))

	err := e.MoveToContainerSlot(other, it.InstanceID, box, 0)
	if !apperr.Is(err, apperr.OwnershipViolation) {
		t.Fatalf("expected OwnershipViolation, got %v", err)
	}
}

func TestQuickMoveToContainerMergesBeforeFillingEmpty(t *testing.T) {
	e, w := newTestEngine(t)
	p := newTestPlayer(t, w)
	box := world.NewStorageBox(w.NextContainerID(), p.ID, 0, 0, 0)
	w.StorageBoxes.Put(box.ContainerID(), box)

	existing := putItem(t, w, 1, 50, world.InContainer(box.ContainerType(), box.ContainerID(), 0))
	box.SetSlot(0, existing.InstanceID, existing.ItemDefID)

	moving := putItem(t, w, 1, 20, world.InInventory(p.ID, 0))
	inv, _ := w.Inventories.Get(p.ID)
	inv.SetSlot(0, moving.InstanceID, moving.ItemDefID)

	if err := e.QuickMoveToContainer(p, box, moving.InstanceID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if existing.Quantity != 70 {
		t.Fatalf("expected merge into existing stack, got quantity %d", existing.Quantity)
	}
	if _, ok := w.Items.Get(moving.InstanceID); ok {
		t.Fatal("source instance should have been deleted once emptied")
	}
}

func TestQuickMoveToContainerFullLeavesStateUnchanged(t *testing.T) {
	e, w := newTestEngine(t)
	p := newTestPlayer(t, w)
	box := world.NewStorageBox(w.NextContainerID(), p.ID, 0, 0, 0)
	w.StorageBoxes.Put(box.ContainerID(), box)

	// Fill every slot with a different def so nothing can merge or land.
	for i := 0; i < box.NumSlots(); i++ {
		inst := putItem(t, w, 2, 100, world.InContainer(box.ContainerType(), box.ContainerID(), i))
		box.SetSlot(i, inst.InstanceID, inst.ItemDefID)
	}

	moving := putItem(t, w, 1, 5, world.InInventory(p.ID, 0))
	inv, _ := w.Inventories.Get(p.ID)
	inv.SetSlot(0, moving.InstanceID, moving.ItemDefID)

	err := e.QuickMoveToContainer(p, box, moving.InstanceID)
	if !apperr.Is(err, apperr.CapacityExceeded) {
		t.Fatalf("expected CapacityExceeded, got %v", err)
	}
	if moving.Quantity != 5 || moving.Location.Kind != world.LocInventory {
		t.Fatalf("source item must be unchanged on failure: %+v", moving)
	}
	if inv.GetSlot(0).InstanceID != moving.InstanceID {
		t.Fatal("inventory slot must be unchanged on failure")
	}
}

func TestSplitWithinContainerThenMergeBackIsIdentity(t *testing.T) {
	e, w := newTestEngine(t)
	p := newTestPlayer(t, w)
	box := world.NewStorageBox(w.NextContainerID(), p.ID, 0, 0, 0)
	w.StorageBoxes.Put(box.ContainerID(), box)

	it := putItem(t, w, 1, 30, world.InContainer(box.ContainerType(), box.ContainerID(), 0))
	box.SetSlot(0, it.InstanceID, it.ItemDefID)

	newID, err := e.SplitWithin(p, box, 0, 10, 1)
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}
	if it.Quantity != 20 {
		t.Fatalf("source should have 20 left, got %d", it.Quantity)
	}

	newInst, err := e.item(newID)
	if err != nil {
		t.Fatalf("split instance missing: %v", err)
	}
	if err := e.MergeOrPlaceIntoSlot(newInst, ContainerOwner{box}, 0); err != nil {
		t.Fatalf("merge back failed: %v", err)
	}
	if it.Quantity != 30 {
		t.Fatalf("expected original stack restored to 30, got %d", it.Quantity)
	}
	if _, ok := w.Items.Get(newID); ok {
		t.Fatal("merged-away split instance should be deleted")
	}
}

func TestSplitIntoThenMergeIsRoundTrip(t *testing.T) {
	e, w := newTestEngine(t)
	p := newTestPlayer(t, w)
	inv, _ := w.Inventories.Get(p.ID)

	it := putItem(t, w, 1, 30, world.InInventory(p.ID, 0))
	inv.SetSlot(0, it.InstanceID, it.ItemDefID)

	owner := InventoryOwner{PlayerInventory: inv, PlayerOwner: p.ID}
	newID, err := e.SplitInto(p, it.InstanceID, 10, owner, 1)
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}
	if it.Quantity != 20 {
		t.Fatalf("source should have 20 left, got %d", it.Quantity)
	}
	newInst, err := e.item(newID)
	if err != nil {
		t.Fatalf("split instance missing: %v", err)
	}
	if newInst.Quantity != 10 {
		t.Fatalf("split stack should carry 10, got %d", newInst.Quantity)
	}

	// Merge back: move the split stack onto the original slot.
	if err := e.MergeOrPlaceIntoSlot(newInst, owner, 0); err != nil {
		t.Fatalf("merge back failed: %v", err)
	}
	if it.Quantity != 30 {
		t.Fatalf("expected original stack restored to 30, got %d", it.Quantity)
	}
	if _, ok := w.Items.Get(newID); ok {
		t.Fatal("merged-away split instance should be deleted")
	}
}

func TestDropThenPickupRoundTrip(t *testing.T) {
	e, w := newTestEngine(t)
	p := newTestPlayer(t, w)
	inv, _ := w.Inventories.Get(p.ID)

	it := putItem(t, w, 1, 15, world.InInventory(p.ID, 0))
	inv.SetSlot(0, it.InstanceID, it.ItemDefID)

	droppedID, err := e.DropFromContainerSlot(p, InventoryOwner{PlayerInventory: inv, PlayerOwner: p.ID}, 0, 100, 100, 0)
	if err != nil {
		t.Fatalf("drop failed: %v", err)
	}
	if !inv.GetSlot(0).Empty() {
		t.Fatal("inventory slot should be cleared after drop")
	}
	if it.Location.Kind != world.LocDropped {
		t.Fatalf("item location should be Dropped, got %+v", it.Location)
	}

	if err := e.PickupDropped(p, droppedID); err != nil {
		t.Fatalf("pickup failed: %v", err)
	}
	if _, ok := w.Dropped.Get(droppedID); ok {
		t.Fatal("dropped entity should be removed after pickup")
	}
	hotbar, _ := w.Hotbars.Get(p.ID)
	if hotbar.GetSlot(0).InstanceID != it.InstanceID || it.Quantity != 15 {
		t.Fatalf("expected item back in hotbar slot 0 with quantity 15, got slot=%+v qty=%d", hotbar.GetSlot(0), it.Quantity)
	}
}

func TestMoveWithinContainerSwapExchangesAncillaryState(t *testing.T) {
	e, w := newTestEngine(t)
	p := newTestPlayer(t, w)
	box := world.NewStorageBox(w.NextContainerID(), p.ID, 0, 0, 0)
	w.StorageBoxes.Put(box.ContainerID(), box)

	a := putItem(t, w, 1, 1, world.InContainer(box.ContainerType(), box.ContainerID(), 0))
	b := putItem(t, w, 2, 1, world.InContainer(box.ContainerType(), box.ContainerID(), 1))
	box.SetSlotCooking(0, a.InstanceID, a.ItemDefID, 5.0)
	box.SetSlotCooking(1, b.InstanceID, b.ItemDefID, 0)

	if err := e.MoveWithinContainer(p, box, 0, 1); err != nil {
		t.Fatalf("swap failed: %v", err)
	}
	if box.GetSlot(0).InstanceID != b.InstanceID || box.GetSlot(1).InstanceID != a.InstanceID {
		t.Fatalf("expected slots swapped, got 0=%+v 1=%+v", box.GetSlot(0), box.GetSlot(1))
	}
	if a.Location.SlotIndex != 1 || b.Location.SlotIndex != 0 {
		t.Fatalf("item locations must follow the swap: a=%+v b=%+v", a.Location, b.Location)
	}
	if box.GetSlot(1).CookProgressSec != 5.0 || box.GetSlot(0).CookProgressSec != 0 {
		t.Fatalf("cook progress must be exchanged with the items: 0=%+v 1=%+v", box.GetSlot(0), box.GetSlot(1))
	}
}

func TestPickupDroppedCapacityExceededLeavesStateUnchanged(t *testing.T) {
	e, w := newTestEngine(t)
	p := newTestPlayer(t, w)
	inv, _ := w.Inventories.Get(p.ID)
	hotbar, _ := w.Hotbars.Get(p.ID)

	for i := 0; i < inv.NumSlots(); i++ {
		inst := putItem(t, w, 2, 100, world.InInventory(p.ID, i))
		inv.SetSlot(i, inst.InstanceID, inst.ItemDefID)
	}
	for i := 0; i < hotbar.NumSlots(); i++ {
		inst := putItem(t, w, 2, 100, world.InHotbar(p.ID, i))
		hotbar.SetSlot(i, inst.InstanceID, inst.ItemDefID)
	}

	dropped := putItem(t, w, 1, 1, world.Location{})
	droppedID := w.NextDroppedItemID()
	w.Dropped.Put(droppedID, &world.DroppedItem{ID: droppedID, InstanceID: dropped.InstanceID})
	dropped.Location = world.InDropped(droppedID)

	err := e.PickupDropped(p, droppedID)
	if !apperr.Is(err, apperr.CapacityExceeded) {
		t.Fatalf("expected CapacityExceeded, got %v", err)
	}
	if _, ok := w.Dropped.Get(droppedID); !ok {
		t.Fatal("dropped entity must remain on failed pickup")
	}
	if dropped.Location.Kind != world.LocDropped {
		t.Fatalf("dropped item location must be unchanged on failure: %+v", dropped.Location)
	}
}
