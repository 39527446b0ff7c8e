package system

import (
	"math/rand"
	"testing"
	"time"

	"github.com/soitun/survivalcore/internal/data"
	"github.com/soitun/survivalcore/internal/scheduler"
	"github.com/soitun/survivalcore/internal/world"
)

func TestAdvanceWeatherFlipsAfterSpellElapses(t *testing.T) {
	d := &Deps{Rng: rand.New(rand.NewSource(1))}
	d.advanceWeather(1000)
	if d.isRaining() {
		t.Fatal("weather should start clear")
	}
	changeAt := d.weather.NextChangeAt
	d.advanceWeather(changeAt - 1)
	if d.isRaining() {
		t.Fatal("weather flipped before its spell elapsed")
	}
	d.advanceWeather(changeAt)
	if !d.isRaining() {
		t.Fatal("expected rain to start once the clear spell elapsed")
	}
}

func TestWaterFillTickNoOpWhenNotRaining(t *testing.T) {
	w := world.New()
	items := data.NewItemTable()
	items.Put(data.ItemDefinition{ID: 1, Name: "water", StackSize: 1})
	rc := world.NewRainCollector(w.NextContainerID(), 0, 0, 0)
	w.RainCollectors.Put(rc.ContainerID(), rc)

	d := &Deps{World: w, Items: items, Rng: rand.New(rand.NewSource(1))}
	d.waterFillTick(nil, 0)
	if !rc.GetSlot(0).Empty() {
		t.Fatal("rain collector should not fill while it isn't raining")
	}
}

func TestWaterFillTickFillsRainCollectorWhileRaining(t *testing.T) {
	w := world.New()
	items := data.NewItemTable()
	items.Put(data.ItemDefinition{ID: 1, Name: "water", StackSize: 1})
	rc := world.NewRainCollector(w.NextContainerID(), 0, 0, 0)
	w.RainCollectors.Put(rc.ContainerID(), rc)

	d := &Deps{World: w, Items: items, Rng: rand.New(rand.NewSource(1))}
	d.weather.Raining = true
	d.waterFillTick(nil, 0)

	slot := rc.GetSlot(0)
	if slot.Empty() {
		t.Fatal("expected rain collector to gain water while raining")
	}
	inst, ok := w.Items.Get(slot.InstanceID)
	if !ok {
		t.Fatal("fill created a slot reference to a missing item instance")
	}
	liters, ok := inst.WaterLiters()
	if !ok || liters != rainCollectorFillPerTick {
		t.Fatalf("expected %v liters, got %v (present=%v)", rainCollectorFillPerTick, liters, ok)
	}
}

func TestWaterFillTickFillsEquippedContainerWhileRaining(t *testing.T) {
	w := world.New()
	items := data.NewItemTable()
	items.Put(data.ItemDefinition{ID: 1, Name: "water", StackSize: 1})
	items.Put(data.ItemDefinition{ID: 2, Name: "canteen", WaterCapacityLit: 5})

	p := &world.Player{ID: w.NextPlayerID(), IsOnline: true}
	w.Players.Put(p.ID, p)

	canteenID := w.NextItemInstanceID()
	canteen := &world.ItemInstance{InstanceID: canteenID, ItemDefID: 2, Quantity: 1}
	canteen.SetWaterLiters(1)
	w.Items.Put(canteenID, canteen)

	eq := &world.ActiveEquipment{Owner: p.ID}
	eq.Set(data.EquipHand, world.EquippedItem{InstanceID: canteenID, DefID: 2})
	w.Equipment.Put(p.ID, eq)

	d := &Deps{World: w, Items: items, Rng: rand.New(rand.NewSource(1))}
	d.weather.Raining = true
	d.waterFillTick(nil, 0)

	liters, _ := canteen.WaterLiters()
	if liters != 2 {
		t.Fatalf("expected equipped canteen to gain a liter of rain water, got %v", liters)
	}
}

func TestApplianceTickExtinguishesCampfireInRain(t *testing.T) {
	w := world.New()
	items := data.NewItemTable()
	c := world.NewCampfire(w.NextContainerID(), 0, 0, 0)
	c.IsBurning = true
	c.FuelDefID = 1
	c.FuelRemain = 30
	w.Campfires.Put(c.ContainerID(), c)

	sched := scheduler.New()
	d := &Deps{World: w, Items: items, Sched: sched, Rng: rand.New(rand.NewSource(1))}
	d.weather.Raining = true
	rowID := sched.Insert(kindAppliance, uint64(c.ContainerID()), scheduler.Timing{Interval: time.Second}, 0)
	sched.RegisterHandler(kindAppliance, d.applianceTick)
	sched.Dispatch(1000)

	if c.IsBurning {
		t.Fatal("expected rain to extinguish a burning campfire")
	}
	if c.FuelDefID != 0 {
		t.Fatal("expected extinguishing to clear the current fuel def")
	}
	if sched.Has(rowID) {
		t.Fatal("expected the extinguished campfire's schedule row to be deleted")
	}
}

func TestApplianceTickDepositsByproductWhenFuelUnitFinishes(t *testing.T) {
	w := world.New()
	items := data.NewItemTable()
	items.Put(data.ItemDefinition{ID: 1, Name: "wood", FuelBurnSecs: 60, FuelByproductDefID: 2, FuelByproductChance: 1.0})
	items.Put(data.ItemDefinition{ID: 2, Name: "charcoal", StackSize: 10})

	c := world.NewCampfire(w.NextContainerID(), 0, 0, 0)
	c.IsBurning = true
	c.FuelDefID = 1
	c.FuelRemain = 1 // final second of the burning unit
	w.Campfires.Put(c.ContainerID(), c)

	sched := scheduler.New()
	d := &Deps{World: w, Items: items, Sched: sched, Rng: rand.New(rand.NewSource(1))}
	row := &scheduler.Row{ID: sched.Insert(kindAppliance, uint64(c.ContainerID()), scheduler.Timing{Interval: time.Second}, 0), Kind: kindAppliance, EntityID: uint64(c.ContainerID())}
	d.applianceTick(row, 1000)

	var foundCharcoal bool
	for i := 0; i < c.NumSlots(); i++ {
		if c.GetSlot(i).DefID == 2 {
			foundCharcoal = true
		}
	}
	if !foundCharcoal {
		t.Fatal("expected a guaranteed byproduct to appear once the fuel unit finished")
	}
}
