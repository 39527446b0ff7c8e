package worldgen

import "github.com/soitun/survivalcore/internal/world"

// RegenerateCompressedChunks implements spec §6's regenerate_compressed_chunks:
// rebuild every WorldChunkData row from the authoritative WorldTile rows.
// Used after any out-of-band tile edit (an admin patch, a future terraforming
// feature) so the compressed cache clients read (spec §6: "Compressed chunks
// are an authoritative cache; if absent, clients fall back to per-tile
// lookups") never drifts from the tile table it was derived from.
func RegenerateCompressedChunks(w *world.World) int {
	chunks := make(map[int64]*world.WorldChunkData)
	w.Tiles.Range(func(_ int64, t *world.WorldTile) bool {
		key := world.ChunkIndex(t.ChunkX, t.ChunkY)
		c, ok := chunks[key]
		if !ok {
			c = world.NewWorldChunkData(t.ChunkX, t.ChunkY)
			chunks[key] = c
		}
		c.SetTile(t.LocalX, t.LocalY, t.Type, t.Variant)
		return true
	})
	for key, c := range chunks {
		w.Chunks.Put(key, c)
	}
	return len(chunks)
}
