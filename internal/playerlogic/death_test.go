package playerlogic

import (
	"testing"

	"github.com/soitun/survivalcore/internal/world"
)

func setupDyingPlayer(w *world.World) *world.Player {
	p := w.RegisterPlayer("victim")
	p.PosX, p.PosY = 50, 60

	inv, _ := w.Inventories.Get(p.ID)
	it := &world.ItemInstance{InstanceID: w.NextItemInstanceID(), ItemDefID: 1, Quantity: 5, Location: world.InInventory(p.ID, 0)}
	w.Items.Put(it.InstanceID, it)
	inv.SetSlot(0, it.InstanceID, it.ItemDefID)

	eq, _ := w.Equipment.Get(p.ID)
	weapon := &world.ItemInstance{InstanceID: w.NextItemInstanceID(), ItemDefID: 2, Quantity: 1}
	w.Items.Put(weapon.InstanceID, weapon)
	eq.Set("hand", world.EquippedItem{InstanceID: weapon.InstanceID, DefID: weapon.ItemDefID})
	weapon.Location = world.InEquipped(p.ID, "hand")

	return p
}

func TestDieCreatesCorpseAndDrainsInventoryAndEquipment(t *testing.T) {
	w := world.New()
	p := setupDyingPlayer(w)

	corpseID := Die(w, p, 1000)

	if !p.IsDead {
		t.Fatal("expected player marked dead")
	}
	corpse, ok := w.Corpses.Get(corpseID)
	if !ok {
		t.Fatal("expected corpse container created")
	}
	if corpse.PosX != 50 || corpse.PosY != 60 {
		t.Fatalf("expected corpse at death position, got (%v,%v)", corpse.PosX, corpse.PosY)
	}

	inv, _ := w.Inventories.Get(p.ID)
	if !inv.GetSlot(0).Empty() {
		t.Fatal("expected inventory slot cleared on death")
	}

	eq, _ := w.Equipment.Get(p.ID)
	if !eq.Hand.Empty() {
		t.Fatal("expected equipped weapon cleared on death")
	}

	foundItem := false
	for i := 0; i < corpse.NumSlots(); i++ {
		if corpse.GetSlot(i).DefID == 1 {
			foundItem = true
		}
	}
	if !foundItem {
		t.Fatal("expected the inventory item to land in the corpse")
	}

	weaponDropped := false
	w.Dropped.Range(func(_ world.DroppedItemID, d *world.DroppedItem) bool {
		if it, ok := w.Items.Get(d.InstanceID); ok && it.ItemDefID == 2 {
			weaponDropped = true
			return false
		}
		return true
	})
	if !weaponDropped {
		t.Fatal("expected the active weapon dropped on the ground beside the corpse")
	}

	if _, ok := w.DeathMarkers.Get(p.ID); !ok {
		t.Fatal("expected a death marker written")
	}
}

func TestDieIsIdempotent(t *testing.T) {
	w := world.New()
	p := setupDyingPlayer(w)

	first := Die(w, p, 1000)
	second := Die(w, p, 2000)

	if first != second {
		t.Fatalf("expected repeated Die on an already-dead player to be a no-op, got %v then %v", first, second)
	}
}

func TestRespawnAtBeachRevivesPlayer(t *testing.T) {
	w := world.New()
	p := setupDyingPlayer(w)
	Die(w, p, 1000)

	err := RespawnAtBeach(p, []BeachCandidate{
		{X: 10, Y: 20, Valid: func() bool { return true }},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.IsDead {
		t.Fatal("expected player alive after respawn")
	}
	if p.PosX != 10 || p.PosY != 20 {
		t.Fatalf("expected player placed at chosen beach tile, got (%v,%v)", p.PosX, p.PosY)
	}
	if p.Stats.Hunger != world.MaxHunger {
		t.Fatal("expected needs refilled on respawn")
	}
}

func TestRespawnAtBeachSkipsInvalidCandidates(t *testing.T) {
	w := world.New()
	p := setupDyingPlayer(w)
	Die(w, p, 1000)

	err := RespawnAtBeach(p, []BeachCandidate{
		{X: 1, Y: 1, Valid: func() bool { return false }},
		{X: 2, Y: 2, Valid: func() bool { return true }},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.PosX != 2 || p.PosY != 2 {
		t.Fatalf("expected first valid candidate chosen, got (%v,%v)", p.PosX, p.PosY)
	}
}

func TestRespawnAtSleepingBagRejectsLivingPlayer(t *testing.T) {
	w := world.New()
	p := setupDyingPlayer(w)

	if err := RespawnAtSleepingBag(p, 0, 0); err == nil {
		t.Fatal("expected error respawning a living player")
	}
}

func TestKnockOutAndRecover(t *testing.T) {
	w := world.New()
	p := setupDyingPlayer(w)

	KnockOut(w, p, 1000)
	if !p.IsKnockedOut {
		t.Fatal("expected player knocked out")
	}
	if _, ok := w.KnockedOut.Get(p.ID); !ok {
		t.Fatal("expected knocked-out status row")
	}

	Recover(w, p)
	if p.IsKnockedOut {
		t.Fatal("expected player no longer knocked out after recovery")
	}
	if _, ok := w.KnockedOut.Get(p.ID); ok {
		t.Fatal("expected knocked-out status row removed on recovery")
	}
}
