package npcai

import (
	"math/rand"
	"testing"

	"github.com/soitun/survivalcore/internal/data"
	"github.com/soitun/survivalcore/internal/spatial"
	"github.com/soitun/survivalcore/internal/world"
)

func alwaysValid(x, y float64, sp data.Species) bool { return true }

func fixedSampler(x, y float64) RingSampler {
	return func(baseX, baseY, innerR, outerR float64, rng *rand.Rand) Candidate {
		return Candidate{X: x, Y: y}
	}
}

func TestAttemptSpawnsRespectsTotalCap(t *testing.T) {
	w := world.New()
	species := data.DefaultSpeciesTable()
	grid := spatial.NewGrid()

	// Pre-fill the area up to the total cap with Shorebound hostiles.
	var occ []spatial.Occupant
	for i := 0; i < CapTotal; i++ {
		h := &world.Hostile{ID: world.HostileID(i + 1), Species: data.SpeciesShorebound, Health: 1, MaxHealth: 1, PosX: 10, PosY: 10}
		w.Hostiles.Put(h.ID, h)
		occ = append(occ, spatial.Occupant{ID: uint64(h.ID), Kind: spatial.KindHostile, X: 10, Y: 10, Radius: 1})
	}
	grid.Rebuild(1, occ)

	rng := rand.New(rand.NewSource(1))
	spawned := AttemptSpawns(w, species, grid, 0, 0, true, rng, fixedSampler(100, 100), alwaysValid, 1000)
	if len(spawned) != 0 {
		t.Fatalf("expected no spawns once the total cap is reached, got %d", len(spawned))
	}
}

func TestAttemptSpawnsDrownedWatchGatedOnCamping(t *testing.T) {
	w := world.New()
	species := data.DefaultSpeciesTable()
	grid := spatial.NewGrid()
	grid.Rebuild(1, nil)

	rng := rand.New(rand.NewSource(1))
	var sawDrownedWatch bool
	for i := 0; i < 200; i++ {
		spawned := AttemptSpawns(w, species, grid, 0, 0, false, rng, DefaultRingSampler, alwaysValid, 1000)
		for _, h := range spawned {
			if h.Species == data.SpeciesDrownedWatch {
				sawDrownedWatch = true
			}
			w.Hostiles.Delete(h.ID)
		}
	}
	if sawDrownedWatch {
		t.Fatal("expected DrownedWatch to never spawn while not camping")
	}
}

func TestAttemptSpawnsRejectsInvalidCandidates(t *testing.T) {
	w := world.New()
	species := data.DefaultSpeciesTable()
	grid := spatial.NewGrid()
	grid.Rebuild(1, nil)

	rng := rand.New(rand.NewSource(2))
	neverValid := func(x, y float64, sp data.Species) bool { return false }
	spawned := AttemptSpawns(w, species, grid, 0, 0, true, rng, DefaultRingSampler, neverValid, 1000)
	if len(spawned) != 0 {
		t.Fatalf("expected no spawns when the validator rejects every candidate, got %d", len(spawned))
	}
}
