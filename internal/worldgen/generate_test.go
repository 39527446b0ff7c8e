package worldgen

import (
	"testing"

	"github.com/soitun/survivalcore/internal/world"
)

func smallConfig() Config {
	cfg := DefaultConfig(42)
	cfg.ChunksWide, cfg.ChunksHigh = 2, 2
	return cfg
}

func TestGenerateIsDeterministicForAGivenSeed(t *testing.T) {
	w1, w2 := world.New(), world.New()
	cfg := smallConfig()

	Generate(w1, cfg)
	Generate(w2, cfg)

	if w1.Tiles.Len() != w2.Tiles.Len() {
		t.Fatalf("expected identical tile counts for the same seed, got %d vs %d", w1.Tiles.Len(), w2.Tiles.Len())
	}
	mismatch := false
	w1.Tiles.Range(func(key int64, t1 *world.WorldTile) bool {
		t2, ok := w2.Tiles.Get(key)
		if !ok || t1.Type != t2.Type || t1.Variant != t2.Variant {
			mismatch = true
			return false
		}
		return true
	})
	if mismatch {
		t.Fatal("expected identical tile types/variants for the same seed")
	}
}

func TestGeneratePopulatesExpectedTileCount(t *testing.T) {
	w := world.New()
	cfg := smallConfig()
	Generate(w, cfg)

	want := int(cfg.ChunksWide) * int(cfg.ChunksHigh) * world.ChunkSize * world.ChunkSize
	if w.Tiles.Len() != want {
		t.Fatalf("expected %d tiles, got %d", want, w.Tiles.Len())
	}
	if w.Chunks.Len() != int(cfg.ChunksWide)*int(cfg.ChunksHigh) {
		t.Fatalf("expected %d chunks, got %d", int(cfg.ChunksWide)*int(cfg.ChunksHigh), w.Chunks.Len())
	}
}

func TestRegenerateCompressedChunksMatchesTiles(t *testing.T) {
	w := world.New()
	cfg := smallConfig()
	Generate(w, cfg)

	// Corrupt the compressed cache, then rebuild it from the tile table.
	w.Chunks.Range(func(key int64, c *world.WorldChunkData) bool {
		c.SetTile(0, 0, world.TileRoad, 9)
		return true
	})

	n := RegenerateCompressedChunks(w)
	if n != int(cfg.ChunksWide)*int(cfg.ChunksHigh) {
		t.Fatalf("expected %d chunks rebuilt, got %d", int(cfg.ChunksWide)*int(cfg.ChunksHigh), n)
	}

	mismatch := false
	w.Tiles.Range(func(_ int64, tile *world.WorldTile) bool {
		key := world.ChunkIndex(tile.ChunkX, tile.ChunkY)
		c, ok := w.Chunks.Get(key)
		if !ok {
			mismatch = true
			return false
		}
		tt, variant := c.TileAt(tile.LocalX, tile.LocalY)
		if tt != tile.Type || variant != tile.Variant {
			mismatch = true
			return false
		}
		return true
	})
	if mismatch {
		t.Fatal("expected regenerated chunks to exactly match the tile table")
	}
}

func TestGenerateMinimapDataProducesRequestedDimensions(t *testing.T) {
	w := world.New()
	Generate(w, smallConfig())

	data := GenerateMinimapData(w, 16, 16)
	if len(data) != 16*16 {
		t.Fatalf("expected 256 bytes, got %d", len(data))
	}
}

func TestGenerateMinimapDataEmptyWorldReturnsZeroedBuffer(t *testing.T) {
	w := world.New()
	data := GenerateMinimapData(w, 4, 4)
	if len(data) != 16 {
		t.Fatalf("expected 16 bytes, got %d", len(data))
	}
	for _, b := range data {
		if b != 0 {
			t.Fatal("expected a zeroed buffer for a world with no tiles")
		}
	}
}
