package system

import (
	"math/rand"
	"testing"

	"github.com/soitun/survivalcore/internal/core/event"
	"github.com/soitun/survivalcore/internal/data"
	"github.com/soitun/survivalcore/internal/scheduler"
	"github.com/soitun/survivalcore/internal/world"
)

func TestPlayerDiedEventSchedulesCorpseDespawn(t *testing.T) {
	w := world.New()
	sched := scheduler.New()
	bus := event.NewBus()
	d := &Deps{World: w, Items: data.NewItemTable(), Sched: sched, Bus: bus, Rng: rand.New(rand.NewSource(1))}
	d.registerEventHandlers()
	sched.RegisterHandler(kindCorpseDespawn, d.corpseDespawnTick)

	corpseID := w.NextContainerID()
	corpse := world.NewCorpse(corpseID, 1, 10, 10, 0, 1)
	lootID := w.NextItemInstanceID()
	w.Items.Put(lootID, &world.ItemInstance{
		InstanceID: lootID, ItemDefID: 5, Quantity: 2,
		Location: world.InContainer(world.ContainerCorpse, corpseID, 0),
	})
	corpse.SetSlot(0, lootID, 5)
	w.Corpses.Put(corpseID, corpse)

	// Two deaths reported for the same corpse must still schedule one row.
	event.Emit(bus, event.PlayerDied{PlayerID: 1, CorpseID: uint64(corpseID)})
	event.Emit(bus, event.PlayerDied{PlayerID: 1, CorpseID: uint64(corpseID)})
	d.DrainEvents(1000)

	rowID, ok := sched.FindByEntity(kindCorpseDespawn, uint64(corpseID))
	if !ok {
		t.Fatal("expected a corpse-despawn row after the death event was delivered")
	}
	if sched.Len() != 1 {
		t.Fatalf("expected exactly one schedule row, got %d", sched.Len())
	}

	sched.Dispatch(1000 + corpseDespawnDelay.Milliseconds())

	if _, ok := w.Corpses.Get(corpseID); ok {
		t.Fatal("expected the corpse removed once its despawn row fired")
	}
	if _, ok := w.Items.Get(lootID); ok {
		t.Fatal("expected unlooted corpse items deleted with the corpse")
	}
	if sched.Has(rowID) {
		t.Fatal("expected the one-shot despawn row consumed")
	}
}

func TestDrainEventsDeliversOnceAndClears(t *testing.T) {
	bus := event.NewBus()
	d := &Deps{Bus: bus}
	delivered := 0
	event.Subscribe(bus, func(e event.PlayerRespawned) { delivered++ })

	event.Emit(bus, event.PlayerRespawned{PlayerID: 7})
	d.DrainEvents(1000)
	d.DrainEvents(2000)

	if delivered != 1 {
		t.Fatalf("expected exactly one delivery, got %d", delivered)
	}
}

func TestReschedulePersistedCorpsesInsertsDueRows(t *testing.T) {
	w := world.New()
	sched := scheduler.New()
	d := &Deps{World: w, Sched: sched}

	oldID := w.NextContainerID()
	w.Corpses.Put(oldID, world.NewCorpse(oldID, 1, 0, 0, 0, 1)) // long past its window

	d.reschedulePersistedCorpses(10_000_000)
	if _, ok := sched.FindByEntity(kindCorpseDespawn, uint64(oldID)); !ok {
		t.Fatal("expected a despawn row for the loaded corpse")
	}
}
