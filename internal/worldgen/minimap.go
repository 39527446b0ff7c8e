package worldgen

import "github.com/soitun/survivalcore/internal/world"

// minimapPalette maps each tile type to a single representative color byte
// (spec §6 implies a client-renderable summary; exact color semantics are a
// client concern, so this just needs to be deterministic and distinct per
// type).
var minimapPalette = map[world.TileType]byte{
	world.TileSea:            0,
	world.TileBeach:          1,
	world.TileGrass:          2,
	world.TileForest:         3,
	world.TileTundra:         4,
	world.TileAlpine:         5,
	world.TileHotSpringWater: 6,
	world.TileRiver:          7,
	world.TileLake:           8,
	world.TileRoad:           9,
	world.TileQuarryDirt:     10,
}

// GenerateMinimapData implements spec §6's generate_minimap_data(w, h):
// downsamples the full tile grid into a w*h byte grid (row-major, one byte
// per pixel) by nearest-neighbor sampling, the cheapest resampling that
// still keeps coastlines readable at minimap scale.
func GenerateMinimapData(w *world.World, outW, outH int) []byte {
	minX, minY, maxX, maxY := tileBounds(w)
	spanX := maxX - minX + 1
	spanY := maxY - minY + 1
	if spanX <= 0 || spanY <= 0 {
		return make([]byte, outW*outH)
	}

	out := make([]byte, outW*outH)
	for py := 0; py < outH; py++ {
		for px := 0; px < outW; px++ {
			wx := minX + int32(px)*spanX/int32(outW)
			wy := minY + int32(py)*spanY/int32(outH)
			t, ok := w.Tiles.Get(world.ChunkIndex(wx, wy))
			if !ok {
				continue
			}
			out[py*outW+px] = minimapPalette[t.Type]
		}
	}
	return out
}

func tileBounds(w *world.World) (minX, minY, maxX, maxY int32) {
	first := true
	w.Tiles.Range(func(_ int64, t *world.WorldTile) bool {
		if first {
			minX, maxX, minY, maxY = t.WorldX, t.WorldX, t.WorldY, t.WorldY
			first = false
			return true
		}
		if t.WorldX < minX {
			minX = t.WorldX
		}
		if t.WorldX > maxX {
			maxX = t.WorldX
		}
		if t.WorldY < minY {
			minY = t.WorldY
		}
		if t.WorldY > maxY {
			maxY = t.WorldY
		}
		return true
	})
	return
}
