// Package spatial implements the bucketed collision grid of spec §4.2: a
// cache keyed by tick timestamp so repeated neighbor queries within one
// tick reuse the same bucketing, plus the shape/collision/placement helpers
// that operate on it. Grounded on internal/world/aoi.go's cell-keyed
// Area-of-Interest grid (teacher: rdtc8822-debug-L1JGO-Whale), generalized
// from session lookup to arbitrary circle-shaped occupants (players,
// hostiles, placed structures).
package spatial

// CellSize is chosen so a 3x3 neighborhood fully covers the largest
// collision/interaction radius used anywhere in the simulation (spec §4.2).
const CellSize = 16.0

type cellKey struct {
	cx, cy int32
}

func cellCoord(v float64) int32 {
	c := int32(v / CellSize)
	if v < 0 && float64(c)*CellSize != v {
		c--
	}
	return c
}

// Occupant is anything the grid can bucket and query: a player, a hostile,
// or a placed structure footprint.
type Occupant struct {
	ID     uint64
	Kind   OccupantKind
	X, Y   float64
	Radius float64
}

type OccupantKind int

const (
	KindPlayer OccupantKind = iota
	KindHostile
	KindStructure
	KindDropped
	KindResource
)

// Grid is a cache-per-tick bucketed index of occupants (spec §4.2: "the
// spatial grid is rebuilt at most once per tick and cached by timestamp").
type Grid struct {
	builtAtTick int64
	cells       map[cellKey][]Occupant
}

func NewGrid() *Grid {
	return &Grid{cells: make(map[cellKey][]Occupant)}
}

// Rebuild replaces the grid contents and stamps it with tick. Callers
// should check BuiltAt before rebuilding so a tick only pays the bucketing
// cost once no matter how many systems query it.
func (g *Grid) Rebuild(tick int64, occupants []Occupant) {
	g.builtAtTick = tick
	for k := range g.cells {
		delete(g.cells, k)
	}
	for _, o := range occupants {
		k := cellKey{cx: cellCoord(o.X), cy: cellCoord(o.Y)}
		g.cells[k] = append(g.cells[k], o)
	}
}

// BuiltAt reports the tick this grid's contents were last rebuilt for.
func (g *Grid) BuiltAt() int64 { return g.builtAtTick }

// Nearby returns every occupant within a 3x3 cell neighborhood of (x,y).
// Callers apply exact distance/shape tests on the (small) result set.
func (g *Grid) Nearby(x, y float64) []Occupant {
	cx, cy := cellCoord(x), cellCoord(y)
	var out []Occupant
	for dx := int32(-1); dx <= 1; dx++ {
		for dy := int32(-1); dy <= 1; dy++ {
			out = append(out, g.cells[cellKey{cx: cx + dx, cy: cy + dy}]...)
		}
	}
	return out
}

// WithinRadius filters Nearby to occupants whose center lies within r of
// (x,y), excluding the occupant identified by excludeID if nonzero.
func WithinRadius(occupants []Occupant, x, y, r float64, excludeID uint64) []Occupant {
	var out []Occupant
	rr := r * r
	for _, o := range occupants {
		if excludeID != 0 && o.ID == excludeID {
			continue
		}
		dx, dy := o.X-x, o.Y-y
		if dx*dx+dy*dy <= rr {
			out = append(out, o)
		}
	}
	return out
}
