// Package worldgen implements the spec §6 admin/maintenance surface:
// generate_world, regenerate_compressed_chunks, and generate_minimap_data.
// It is the only package that ever writes world.WorldTile/WorldChunkData
// rows — every other system treats tiles as immutable after generation
// (spec §3: "immutable after generation"). Grounded on the teacher's
// terrain seeding step (internal/world state bootstrap), generalized from a
// hand-authored static map to noise-driven procedural terrain using
// opensimplex-go, the deterministic-seed noise library the rest of the pack
// reaches for when no source heightmap exists.
package worldgen

import (
	"github.com/ojrac/opensimplex-go"
	"github.com/soitun/survivalcore/internal/world"
)

// Config is the generate_world(config) admin reducer's argument (spec §6).
type Config struct {
	Seed          int64
	ChunksWide    int32
	ChunksHigh    int32
	SeaLevel      float64 // noise threshold below which a tile is TileSea
	BeachBand     float64 // noise band above SeaLevel rendered as TileBeach
	TundraLatitude float64 // fraction of world height (0=top) where tundra begins
	AlpineLatitude float64
	// Frequency controls how quickly the noise field varies per tile; lower
	// values produce larger, smoother landmasses.
	Frequency float64
}

// DefaultConfig mirrors the constants the teacher's bootstrap map used for
// a single temperate continent, scaled up to a noise-driven multi-biome
// world (spec §4.5's three biomes: temperate grass/forest, tundra, alpine).
func DefaultConfig(seed int64) Config {
	return Config{
		Seed: seed, ChunksWide: 16, ChunksHigh: 16,
		SeaLevel: -0.05, BeachBand: 0.05,
		TundraLatitude: 0.15, AlpineLatitude: 0.05,
		Frequency: 0.015,
	}
}

// Generate implements generate_world(config): seeds every WorldTile row for
// the configured chunk extent from two independent noise fields (elevation
// and moisture, the classic two-octave terrain split), writes the
// compressed WorldChunkData cache, and scatters monument zones. Tiles are
// written once; callers must not call Generate twice against a live world
// without first clearing w.Tiles/w.Chunks, since world.ChunkIndex keys
// would otherwise collide with stale rows from a previous generation.
func Generate(w *world.World, cfg Config) []world.MonumentZone {
	elevation := opensimplex.New(cfg.Seed)
	moisture := opensimplex.New(cfg.Seed + 1)

	worldTilesWide := int32(cfg.ChunksWide) * world.ChunkSize
	worldTilesHigh := int32(cfg.ChunksHigh) * world.ChunkSize

	for cy := int32(0); cy < cfg.ChunksHigh; cy++ {
		for cx := int32(0); cx < cfg.ChunksWide; cx++ {
			chunk := world.NewWorldChunkData(cx, cy)
			for ly := int32(0); ly < world.ChunkSize; ly++ {
				for lx := int32(0); lx < world.ChunkSize; lx++ {
					wx := cx*world.ChunkSize + lx
					wy := cy*world.ChunkSize + ly

					e := elevation.Eval2(float64(wx)*cfg.Frequency, float64(wy)*cfg.Frequency)
					m := moisture.Eval2(float64(wx)*cfg.Frequency*1.7, float64(wy)*cfg.Frequency*1.7)

					tt, variant := classify(e, m, wy, worldTilesHigh, cfg)
					chunk.SetTile(lx, ly, tt, variant)

					tile := &world.WorldTile{
						ChunkX: cx, ChunkY: cy, LocalX: lx, LocalY: ly,
						WorldX: wx, WorldY: wy, Type: tt, Variant: variant,
					}
					w.Tiles.Put(world.ChunkIndex(wx, wy), tile)
				}
			}
			w.Chunks.Put(world.ChunkIndex(cx, cy), chunk)
		}
	}

	ScatterResources(w, cfg)
	return scatterMonuments(cfg, worldTilesWide, worldTilesHigh, elevation)
}

// classify maps the two noise samples plus latitude into a concrete tile
// type: sea/beach from elevation against sea level, then temperate/tundra/
// alpine banding by world-relative latitude for land tiles, with moisture
// distinguishing grass from forest and river/lake pockets.
func classify(e, m float64, wy, worldTilesHigh int32, cfg Config) (world.TileType, byte) {
	if e < cfg.SeaLevel {
		return world.TileSea, 0
	}
	if e < cfg.SeaLevel+cfg.BeachBand {
		return world.TileBeach, 0
	}

	latitude := float64(wy) / float64(worldTilesHigh)
	switch {
	case latitude < cfg.AlpineLatitude || latitude > 1-cfg.AlpineLatitude:
		return world.TileAlpine, variantFrom(m)
	case latitude < cfg.TundraLatitude || latitude > 1-cfg.TundraLatitude:
		return world.TileTundra, variantFrom(m)
	}

	if m > 0.55 {
		return world.TileLake, 0
	}
	if m > 0.2 {
		return world.TileForest, variantFrom(m)
	}
	return world.TileGrass, variantFrom(m)
}

func variantFrom(m float64) byte {
	v := int((m + 1) / 2 * 4)
	if v < 0 {
		v = 0
	}
	if v > 3 {
		v = 3
	}
	return byte(v)
}
