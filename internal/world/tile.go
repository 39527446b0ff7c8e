package world

// TileType enumerates terrain kinds (spec §3 WorldTile, §6 "tile types are
// enumerated"). Concrete values are seeded by internal/worldgen.
type TileType byte

const (
	TileSea TileType = iota
	TileBeach
	TileGrass
	TileForest
	TileTundra
	TileAlpine
	TileHotSpringWater
	TileRiver
	TileLake
	TileRoad
	TileQuarryDirt
)

// WorldTile is the spec §3 row: "chunk(x,y), local(x,y), world(x,y),
// tile_type, variant; immutable after generation."
type WorldTile struct {
	ChunkX, ChunkY int32
	LocalX, LocalY int32
	WorldX, WorldY int32
	Type           TileType
	Variant        byte
}

// ChunkSize is the width/height of a chunk in tiles; WorldChunkData's
// compressed arrays are sized ChunkSize² (spec §6).
const ChunkSize = 32

// WorldChunkData is the spec §3/§6 denormalized cache: "compressed
// tile_types[], variants[]... row-major local order (y then x)."
type WorldChunkData struct {
	ChunkX, ChunkY int32
	TileTypes      []byte // len == ChunkSize*ChunkSize
	Variants       []byte // len == ChunkSize*ChunkSize
}

func NewWorldChunkData(cx, cy int32) *WorldChunkData {
	n := ChunkSize * ChunkSize
	return &WorldChunkData{ChunkX: cx, ChunkY: cy, TileTypes: make([]byte, n), Variants: make([]byte, n)}
}

func (c *WorldChunkData) Index(localX, localY int32) int {
	return int(localY)*ChunkSize + int(localX)
}

func (c *WorldChunkData) SetTile(localX, localY int32, t TileType, variant byte) {
	i := c.Index(localX, localY)
	c.TileTypes[i] = byte(t)
	c.Variants[i] = variant
}

func (c *WorldChunkData) TileAt(localX, localY int32) (TileType, byte) {
	i := c.Index(localX, localY)
	return TileType(c.TileTypes[i]), c.Variants[i]
}

// ChunkIndex packs chunk coordinates into the single int64 key used
// elsewhere (container/entity ChunkIndex fields) for cheap range grouping.
func ChunkIndex(cx, cy int32) int64 {
	return int64(cx)<<32 | int64(uint32(cy))
}

// MonumentZone is a map feature enforcing placement restrictions (spec §4.2,
// §4.5, GLOSSARY: "ALK stations, rune stones, hot springs, quarries").
type MonumentZoneKind int

const (
	MonumentALKStation MonumentZoneKind = iota
	MonumentRuneStone
	MonumentHotSpring
	MonumentQuarry
)

type MonumentZone struct {
	ID     int64
	Kind   MonumentZoneKind
	PosX   float64
	PosY   float64
	Radius float64
}
