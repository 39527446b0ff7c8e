package handler

import (
	"math/rand"
	"testing"

	"github.com/soitun/survivalcore/internal/apperr"
	"github.com/soitun/survivalcore/internal/config"
	"github.com/soitun/survivalcore/internal/core/event"
	"github.com/soitun/survivalcore/internal/data"
	"github.com/soitun/survivalcore/internal/inventory"
	"github.com/soitun/survivalcore/internal/scheduler"
	"github.com/soitun/survivalcore/internal/spatial"
	"github.com/soitun/survivalcore/internal/world"
)

func newDeps(t *testing.T) *Deps {
	t.Helper()
	w := world.New()
	items := data.NewItemTable()
	cfg := config.Default()
	cfg.World.WidthTiles = 32
	cfg.World.HeightTiles = 32
	return &Deps{
		World:     w,
		Items:     items,
		Yields:    data.NewYieldTable(),
		Inventory: inventory.New(w, items),
		Scheduler: scheduler.New(),
		Bus:       event.NewBus(),
		Grid:      spatial.NewGrid(),
		Rng:       rand.New(rand.NewSource(7)),
		Config:    cfg,
	}
}

// seedCoast writes one chunk whose row y=4 is sea and row y=5 is beach, so
// every beach tile in it qualifies as a coastal spawn.
func seedCoast(d *Deps) {
	chunk := world.NewWorldChunkData(0, 0)
	for ly := int32(0); ly < world.ChunkSize; ly++ {
		for lx := int32(0); lx < world.ChunkSize; lx++ {
			tt := world.TileGrass
			switch ly {
			case 4:
				tt = world.TileSea
			case 5:
				tt = world.TileBeach
			}
			chunk.SetTile(lx, ly, tt, 0)
			d.World.Tiles.Put(world.ChunkIndex(lx, ly), &world.WorldTile{
				ChunkX: 0, ChunkY: 0, LocalX: lx, LocalY: ly,
				WorldX: lx, WorldY: ly, Type: tt,
			})
		}
	}
	d.World.Chunks.Put(world.ChunkIndex(0, 0), chunk)
}

func TestRespawnAtBeachPlacesDeadPlayerOnCoast(t *testing.T) {
	d := newDeps(t)
	seedCoast(d)

	p := d.World.RegisterPlayer("castaway")
	p.IsDead = true
	p.Stats.Health = 0

	if err := d.RespawnAtBeach(p.ID, 1000); err != nil {
		t.Fatalf("respawn at beach: %v", err)
	}
	if p.IsDead {
		t.Fatal("expected the player to be alive after respawn")
	}
	if p.Stats.Health <= 0 {
		t.Fatal("expected respawn to restore health")
	}
	ts := terrainSampler{d: d}
	if tile, ok := ts.tileAt(p.PosX, p.PosY); !ok || tile != world.TileBeach {
		t.Fatalf("expected the player on a beach tile, got %v at (%v,%v)", tile, p.PosX, p.PosY)
	}
}

func TestRespawnAtBeachRejectsLivingPlayer(t *testing.T) {
	d := newDeps(t)
	seedCoast(d)
	p := d.World.RegisterPlayer("alive")
	if err := d.RespawnAtBeach(p.ID, 1000); !apperr.Is(err, apperr.StateViolation) {
		t.Fatalf("expected StateViolation for a living player, got %v", err)
	}
}

func TestRespawnAtSleepingBagChecksOwnership(t *testing.T) {
	d := newDeps(t)
	owner := d.World.RegisterPlayer("owner")
	thief := d.World.RegisterPlayer("thief")
	thief.IsDead = true

	bagID := d.World.NextContainerID()
	d.World.SleepingBags.Put(bagID, &world.SleepingBag{ID: bagID, Owner: owner.ID, PosX: 40, PosY: 40})

	if err := d.RespawnAtSleepingBag(thief.ID, bagID, 1000); !apperr.Is(err, apperr.OwnershipViolation) {
		t.Fatalf("expected OwnershipViolation, got %v", err)
	}

	owner.IsDead = true
	if err := d.RespawnAtSleepingBag(owner.ID, bagID, 1000); err != nil {
		t.Fatalf("owner respawn: %v", err)
	}
	if owner.PosX != 40 || owner.PosY != 40 {
		t.Fatalf("expected respawn at the bag, got (%v,%v)", owner.PosX, owner.PosY)
	}
}

func TestHarvestNodePaysOutYieldOnDepletion(t *testing.T) {
	d := newDeps(t)
	d.Items.Put(data.ItemDefinition{ID: 10, Name: "wood", StackSize: 50})
	d.Yields.Put(1, []data.YieldItem{{ItemDefID: 10, Min: 3, Max: 3, Chance: 1_000_000}})

	p := d.World.RegisterPlayer("lumberjack")
	p.PosX, p.PosY = 10, 10

	nodeID := d.World.NextResourceNodeID()
	d.World.ResourceNodes.Put(nodeID, &world.ResourceNode{
		ID: nodeID, Kind: world.ResourceTree, PosX: 12, PosY: 10,
		Health: 8, MaxHealth: 8,
	})

	if err := d.HarvestNode(p.ID, nodeID, 0); err != nil {
		t.Fatalf("first swing: %v", err)
	}
	if err := d.HarvestNode(p.ID, nodeID, 100); !apperr.Is(err, apperr.CooldownViolation) {
		t.Fatalf("expected a swing cooldown, got %v", err)
	}
	if err := d.HarvestNode(p.ID, nodeID, 500); err != nil {
		t.Fatalf("second swing: %v", err)
	}

	node, _ := d.World.ResourceNodes.Get(nodeID)
	if !node.Depleted() {
		t.Fatalf("expected the node depleted after two bare-hand swings, health=%v", node.Health)
	}
	hb, _ := d.World.Hotbars.Get(p.ID)
	s := hb.GetSlot(0)
	if s.Empty() || s.DefID != 10 {
		t.Fatal("expected the yield in the first hotbar slot")
	}
	inst, _ := d.World.Items.Get(s.InstanceID)
	if inst.Quantity != 3 {
		t.Fatalf("expected 3 units of yield, got %d", inst.Quantity)
	}

	if err := d.HarvestNode(p.ID, nodeID, 1000); !apperr.Is(err, apperr.StateViolation) {
		t.Fatalf("expected harvesting a depleted node to fail, got %v", err)
	}
}

func TestRegisterPlayerPasswordGuardsUsername(t *testing.T) {
	d := newDeps(t)
	p, err := d.RegisterPlayer(1, "gatherer", "hunter2", 1000)
	if err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if err := d.Disconnect(1); err != nil {
		t.Fatalf("disconnect: %v", err)
	}

	if _, err := d.RegisterPlayer(2, "gatherer", "wrong", 2000); !apperr.Is(err, apperr.OwnershipViolation) {
		t.Fatalf("expected OwnershipViolation for a wrong password, got %v", err)
	}
	again, err := d.RegisterPlayer(2, "gatherer", "hunter2", 3000)
	if err != nil {
		t.Fatalf("reconnect: %v", err)
	}
	if again.ID != p.ID {
		t.Fatalf("expected the same identity back, got %d and %d", p.ID, again.ID)
	}
}
