package system

import (
	"math/rand"
	"testing"
	"time"

	"github.com/soitun/survivalcore/internal/data"
	"github.com/soitun/survivalcore/internal/handler"
	"github.com/soitun/survivalcore/internal/scheduler"
	"github.com/soitun/survivalcore/internal/world"
)

// applianceFixture builds a lit-table world with one player standing at the
// origin and the tick family registered, the minimum a ToggleBurning-driven
// appliance scenario needs.
func applianceFixture(t *testing.T) (*Deps, *handler.Deps, *scheduler.Scheduler, *world.World) {
	t.Helper()
	w := world.New()
	items := data.NewItemTable()
	items.Put(data.ItemDefinition{ID: 1, Name: "wood", StackSize: 50, FuelBurnSecs: 60, FuelByproductDefID: 2, FuelByproductChance: 1.0})
	items.Put(data.ItemDefinition{ID: 2, Name: "charcoal", StackSize: 50})

	sched := scheduler.New()
	hd := &handler.Deps{World: w, Items: items, Scheduler: sched}
	d := &Deps{Handler: hd, World: w, Items: items, Sched: sched, Rng: rand.New(rand.NewSource(1))}
	sched.RegisterHandler(kindAppliance, d.applianceTick)
	return d, hd, sched, w
}

// Seed scenario: a campfire with 10 wood in the fuel slot is toggled on and
// run dry. Every fuel-unit boundary consumes one wood and (at 100% seeded
// byproduct odds) yields one charcoal; when the last unit finishes, the
// fire is out and its schedule row is gone.
func TestCampfireBurnsTenWoodToCharcoalAndGoesIdle(t *testing.T) {
	d, hd, sched, w := applianceFixture(t)

	p := w.RegisterPlayer("fire-tender")
	c := world.NewCampfire(w.NextContainerID(), 0, 0, 0)
	w.Campfires.Put(c.ContainerID(), c)

	woodID := w.NextItemInstanceID()
	wood := &world.ItemInstance{
		InstanceID: woodID, ItemDefID: 1, Quantity: 10,
		Location: world.InContainer(world.ContainerCampfire, c.ContainerID(), c.FuelSlot()),
	}
	w.Items.Put(woodID, wood)
	c.SetSlot(c.FuelSlot(), woodID, 1)

	if err := hd.ToggleBurning(p.ID, c.ContainerID(), 0); err != nil {
		t.Fatalf("toggle burning: %v", err)
	}
	if !c.IsBurning {
		t.Fatal("expected the campfire to be lit")
	}
	if _, ok := sched.FindByEntity(kindAppliance, uint64(c.ContainerID())); !ok {
		t.Fatal("expected a schedule row for the burning campfire")
	}
	if got, _ := w.Items.Get(woodID); got.Quantity != 9 {
		t.Fatalf("lighting should consume one wood, %d left", got.Quantity)
	}

	// 10 units x 60s each; drive one simulated second per dispatch until
	// well past exhaustion.
	for i := 1; i <= 620; i++ {
		sched.Dispatch(int64(i) * 1000)
	}

	if c.IsBurning {
		t.Fatal("expected the campfire to run out of fuel")
	}
	if !c.GetSlot(c.FuelSlot()).Empty() {
		t.Fatal("expected the fuel slot to be emptied")
	}
	if _, ok := w.Items.Get(woodID); ok {
		t.Fatal("expected the consumed wood stack to be deleted")
	}
	if _, ok := sched.FindByEntity(kindAppliance, uint64(c.ContainerID())); ok {
		t.Fatal("expected the idle campfire's schedule row to be deleted")
	}
	var charcoal int32
	for i := 0; i < c.NumSlots(); i++ {
		s := c.GetSlot(i)
		if s.Empty() || s.DefID != 2 {
			continue
		}
		if inst, ok := w.Items.Get(s.InstanceID); ok {
			charcoal += inst.Quantity
		}
	}
	if charcoal != 10 {
		t.Fatalf("expected 10 charcoal from 10 wood at certain byproduct odds, got %d", charcoal)
	}
	d.Sched.Dispatch(700 * 1000) // an extra dispatch past the end must be a no-op
	if sched.Len() != 0 {
		t.Fatalf("expected no live schedule rows, have %d", sched.Len())
	}
}

func TestToggleBurningOffCancelsScheduleRow(t *testing.T) {
	_, hd, sched, w := applianceFixture(t)

	p := w.RegisterPlayer("fire-tender")
	c := world.NewCampfire(w.NextContainerID(), 0, 0, 0)
	w.Campfires.Put(c.ContainerID(), c)

	woodID := w.NextItemInstanceID()
	w.Items.Put(woodID, &world.ItemInstance{InstanceID: woodID, ItemDefID: 1, Quantity: 5})
	c.SetSlot(c.FuelSlot(), woodID, 1)

	if err := hd.ToggleBurning(p.ID, c.ContainerID(), 0); err != nil {
		t.Fatalf("light: %v", err)
	}
	if err := hd.ToggleBurning(p.ID, c.ContainerID(), 0); err != nil {
		t.Fatalf("snuff: %v", err)
	}
	if c.IsBurning {
		t.Fatal("expected the campfire to be snuffed")
	}
	if _, ok := sched.FindByEntity(kindAppliance, uint64(c.ContainerID())); ok {
		t.Fatal("expected the snuffed campfire's schedule row to be cancelled")
	}
}

func TestToggleBurningRejectsEmptyFuelSlot(t *testing.T) {
	_, hd, _, w := applianceFixture(t)
	p := w.RegisterPlayer("fire-tender")
	c := world.NewCampfire(w.NextContainerID(), 0, 0, 0)
	w.Campfires.Put(c.ContainerID(), c)

	if err := hd.ToggleBurning(p.ID, c.ContainerID(), 0); err == nil {
		t.Fatal("expected lighting an empty campfire to fail")
	}
	if c.IsBurning {
		t.Fatal("a failed toggle must leave the campfire unlit")
	}
}

// The lantern is enclosed: rain must not snuff it the way it snuffs a
// campfire, and its schedule row stays live.
func TestRainDoesNotExtinguishLantern(t *testing.T) {
	d, _, sched, w := applianceFixture(t)
	d.weather.Raining = true

	l := world.NewLantern(w.NextContainerID(), 0, 0, 0)
	l.IsBurning = true
	l.FuelDefID = 1
	l.FuelRemain = 30
	w.Lanterns.Put(l.ContainerID(), l)
	sched.Insert(kindAppliance, uint64(l.ContainerID()), scheduler.Timing{Interval: time.Second}, 0)

	sched.Dispatch(1000)
	if !l.IsBurning {
		t.Fatal("rain must not extinguish an enclosed lantern")
	}
	if _, ok := sched.FindByEntity(kindAppliance, uint64(l.ContainerID())); !ok {
		t.Fatal("expected the lantern's schedule row to stay live")
	}
}
