package spatial

import "github.com/go-gl/mathgl/mgl64"

// Circle is the collision shape used by players, hostiles, and most
// dropped-item pickup radii (spec §4.2).
type Circle struct {
	Center mgl64.Vec2
	Radius float64
}

func (c Circle) Overlaps(o Circle) bool {
	d := c.Center.Sub(o.Center)
	r := c.Radius + o.Radius
	return d.Dot(d) <= r*r
}

// AABB is the axis-aligned footprint used by placed structures
// (foundations, walls, storage boxes) for placement validation.
type AABB struct {
	Min, Max mgl64.Vec2
}

func (b AABB) Overlaps(o AABB) bool {
	return b.Min.X() <= o.Max.X() && b.Max.X() >= o.Min.X() &&
		b.Min.Y() <= o.Max.Y() && b.Max.Y() >= o.Min.Y()
}

func (b AABB) OverlapsCircle(c Circle) bool {
	closestX := clamp(c.Center.X(), b.Min.X(), b.Max.X())
	closestY := clamp(c.Center.Y(), b.Min.Y(), b.Max.Y())
	dx, dy := c.Center.X()-closestX, c.Center.Y()-closestY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// ThinEdge is a zero-thickness wall/fence segment (spec §4.2 "thin
// edges"). Only ValidatePlacement measures distance to it; movement
// collision treats wall, door and fence cells as full-cell AABB obstacles,
// and the sweep helpers take Obstacles, not ThinEdges.
type ThinEdge struct {
	A, B mgl64.Vec2
}

// DistanceToPoint returns the shortest distance from p to the segment.
func (e ThinEdge) DistanceToPoint(p mgl64.Vec2) float64 {
	ab := e.B.Sub(e.A)
	abLenSq := ab.Dot(ab)
	if abLenSq == 0 {
		return p.Sub(e.A).Len()
	}
	t := p.Sub(e.A).Dot(ab) / abLenSq
	t = clamp(t, 0, 1)
	proj := e.A.Add(ab.Mul(t))
	return p.Sub(proj).Len()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
