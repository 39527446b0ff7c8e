package worldgen

import (
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
	"github.com/soitun/survivalcore/internal/world"
)

// monumentSpacing is the minimum candidate-grid spacing between monument
// scatter attempts, in world tile units, keeping ALK stations/rune stones/
// hot springs/quarries from clustering (spec §4.2's "not overlapping
// existing same-type within a minimum radius" placement rule applies at the
// structure level; this keeps the zones themselves spread out).
const monumentSpacing = 64

const (
	alkStationRadius = 30.0
	runeStoneRadius  = 20.0
	hotSpringRadius  = 25.0
	quarryRadius     = 40.0
)

// scatterMonuments places at most one monument per monumentSpacing grid
// cell on land, a single roll choosing its kind (or none). The roll comes
// from an rng seeded from cfg.Seed and the sea test from the elevation
// noise, so the same seed always reproduces the same monument layout (spec
// §4.2 GLOSSARY: "ALK stations, rune stones, hot springs, quarries").
func scatterMonuments(cfg Config, worldW, worldH int32, elevation opensimplex.Noise) []world.MonumentZone {
	rng := rand.New(rand.NewSource(cfg.Seed + 1000))
	var zones []world.MonumentZone
	var nextID int64 = 1

	for gy := int32(monumentSpacing / 2); gy < worldH; gy += monumentSpacing {
		for gx := int32(monumentSpacing / 2); gx < worldW; gx += monumentSpacing {
			e := elevation.Eval2(float64(gx)*cfg.Frequency, float64(gy)*cfg.Frequency)
			if e < cfg.SeaLevel {
				continue // monuments never land in open sea
			}

			roll := rng.Float64()
			switch {
			case roll < 0.02:
				zones = append(zones, world.MonumentZone{ID: nextID, Kind: world.MonumentALKStation, PosX: float64(gx), PosY: float64(gy), Radius: alkStationRadius})
			case roll < 0.05:
				zones = append(zones, world.MonumentZone{ID: nextID, Kind: world.MonumentRuneStone, PosX: float64(gx), PosY: float64(gy), Radius: runeStoneRadius})
			case roll < 0.07:
				zones = append(zones, world.MonumentZone{ID: nextID, Kind: world.MonumentHotSpring, PosX: float64(gx), PosY: float64(gy), Radius: hotSpringRadius})
			case roll < 0.09:
				zones = append(zones, world.MonumentZone{ID: nextID, Kind: world.MonumentQuarry, PosX: float64(gx), PosY: float64(gy), Radius: quarryRadius})
			default:
				continue
			}
			nextID++
		}
	}
	return zones
}
