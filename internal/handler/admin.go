package handler

import (
	"github.com/soitun/survivalcore/internal/world"
	"github.com/soitun/survivalcore/internal/worldgen"
)

// GenerateWorld implements spec §6's generate_world(config) admin reducer.
// Callers must only invoke this against a fresh world — it does not clear
// existing tile/chunk rows first (worldgen.Generate's own caveat).
func (d *Deps) GenerateWorld(cfg worldgen.Config) []world.MonumentZone {
	return worldgen.Generate(d.World, cfg)
}

// RegenerateCompressedChunks implements spec §6's
// regenerate_compressed_chunks admin reducer.
func (d *Deps) RegenerateCompressedChunks() int {
	return worldgen.RegenerateCompressedChunks(d.World)
}

// GenerateMinimapData implements spec §6's generate_minimap_data(w, h)
// admin reducer.
func (d *Deps) GenerateMinimapData(outW, outH int) []byte {
	return worldgen.GenerateMinimapData(d.World, outW, outH)
}
