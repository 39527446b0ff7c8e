package worldgen

import (
	"github.com/ojrac/opensimplex-go"
	"github.com/soitun/survivalcore/internal/world"
)

// Per-kind starting health for scattered nodes; a depleted node regrows to
// this via the global tick's spawn cycle.
const (
	treeHealth   = 60.0
	stoneHealth  = 80.0
	basaltHealth = 120.0
)

// ScatterResources seeds the harvestable resource nodes (trees on forest,
// stones on grass/tundra, basalt columns on alpine) from a third noise
// field, so the same seed always yields the same node positions. Returns
// the number of nodes placed.
func ScatterResources(w *world.World, cfg Config) int {
	noise := opensimplex.New(cfg.Seed + 2)
	count := 0
	w.Tiles.Range(func(_ int64, t *world.WorldTile) bool {
		v := noise.Eval2(float64(t.WorldX)*0.9, float64(t.WorldY)*0.9)

		var kind world.ResourceNodeKind
		var hp float64
		switch t.Type {
		case world.TileForest:
			if v < 0.62 {
				return true
			}
			kind, hp = world.ResourceTree, treeHealth
		case world.TileGrass, world.TileTundra:
			if v < 0.78 {
				return true
			}
			kind, hp = world.ResourceStone, stoneHealth
		case world.TileAlpine:
			if v < 0.74 {
				return true
			}
			kind, hp = world.ResourceBasaltColumn, basaltHealth
		default:
			return true
		}

		id := w.NextResourceNodeID()
		w.ResourceNodes.Put(id, &world.ResourceNode{
			ID: id, Kind: kind,
			PosX: float64(t.WorldX) + 0.5, PosY: float64(t.WorldY) + 0.5,
			ChunkIndex: world.ChunkIndex(t.ChunkX, t.ChunkY),
			Health:     hp, MaxHealth: hp,
		})
		count++
		return true
	})
	return count
}
