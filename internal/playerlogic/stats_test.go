package playerlogic

import (
	"testing"

	"github.com/soitun/survivalcore/internal/data"
	"github.com/soitun/survivalcore/internal/world"
)

func newStatsPlayer() *world.Player {
	return &world.Player{
		ID: 1,
		Stats: world.Stats{
			Health: world.MaxHealth, Hunger: world.MaxHunger, Thirst: world.MaxThirst,
			Warmth: world.MaxWarmth, Stamina: world.MaxStamina,
		},
	}
}

func TestApplyStatsTickDrainsHungerAndThirst(t *testing.T) {
	w := world.New()
	p := newStatsPlayer()
	p.LastStatUpdate = 0
	ApplyStatsTick(w, nil, p, nil, 3600*1000, Environment{}, nil)

	if p.Stats.Hunger >= world.MaxHunger {
		t.Fatal("hunger should have drained over an hour")
	}
	if p.Stats.Thirst >= world.MaxThirst {
		t.Fatal("thirst should have drained over an hour")
	}
}

func TestApplyStatsTickZeroElapsedIsNoop(t *testing.T) {
	w := world.New()
	p := newStatsPlayer()
	p.LastStatUpdate = 1000
	ApplyStatsTick(w, nil, p, nil, 1000, Environment{}, nil)

	if p.Stats.Hunger != world.MaxHunger || p.Stats.Thirst != world.MaxThirst {
		t.Fatal("zero elapsed tick must not change stats")
	}
}

func TestApplyStatsTickLowHungerCausesDamageAndEventualDeath(t *testing.T) {
	w := world.New()
	p := newStatsPlayer()
	p.Stats.Hunger = 0
	p.Stats.Thirst = world.MaxThirst
	p.Stats.Warmth = world.MaxWarmth
	p.Stats.Health = 2
	p.LastStatUpdate = 0

	ApplyStatsTick(w, nil, p, nil, 2000, Environment{}, nil)

	if !p.IsDead {
		t.Fatal("expected zero-hunger damage over 2s to kill a 2hp player")
	}
	if _, ok := w.DeathMarkers.Get(p.ID); !ok {
		t.Fatal("expected a death marker written on death")
	}
}

func TestApplyStatsTickRegenRequiresHealthyNeeds(t *testing.T) {
	w := world.New()
	p := newStatsPlayer()
	p.Stats.Health = 60
	p.LastStatUpdate = 0
	ApplyStatsTick(w, nil, p, nil, 1000, Environment{}, nil)

	if p.Stats.Health <= 60 {
		t.Fatalf("expected regen with full needs, got health=%v", p.Stats.Health)
	}
}

func TestApplyStatsTickArmorColdResistZeroesColdDamage(t *testing.T) {
	items := data.NewItemTable()
	items.Put(data.ItemDefinition{ID: 1, Category: data.CategoryArmor, Armor: data.ArmorResist{Cold: 1}})
	eq := &world.ActiveEquipment{Owner: 1}
	eq.Set(data.EquipChest, world.EquippedItem{InstanceID: 1, DefID: 1})

	w := world.New()
	p := newStatsPlayer()
	p.LastStatUpdate = 0

	ApplyStatsTick(w, items, p, eq, 60*1000, Environment{WarmthBaseline: -2}, nil)

	if p.Stats.Warmth != world.MaxWarmth {
		t.Fatalf("expected full cold immunity to prevent any warmth loss, got %v", p.Stats.Warmth)
	}
}
