package spatial

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Obstacle is a static or dynamic collider the slide/push-out passes check
// a moving circle against. Grounded on original_source's player_collision.rs
// (calculate_slide_collision / resolve_push_out_collision), generalized from
// a hand-enumerated match over per-entity-type tables to one obstacle shape
// abstraction shared by every placed structure and NPC.
type Obstacle struct {
	ID     uint64
	Center mgl64.Vec2
	Radius float64
	// AABB, if non-nil, overrides circle collision for this obstacle
	// (shelters and other footprint structures use box collision).
	AABB *AABB
}

// SlideSeparation is the minimum post-slide gap enforced between a moving
// circle and any obstacle it slid against, preventing the "gravity well"
// failure mode where sliding along one obstacle immediately re-penetrates
// it on the next tick (original_source: SLIDE_SEPARATION_DISTANCE).
const SlideSeparation = 8.0

// PushOutSeparation is the separation pushed beyond exact contact during
// iterative overlap resolution (original_source: separation_distance in
// resolve_push_out_collision, raised from 0.01 to 10.0 to stop trapping).
const PushOutSeparation = 10.0

const pushOutIterations = 2

// Slide computes the post-collision position for a circle attempting to
// move by (dx,dy) from current to proposed, sliding along the first
// obstacle it would otherwise penetrate (spec §4.2 "slide" movement
// resolution). Only obstacles the circle is moving toward participate
// (dot product of velocity and contact normal must be negative), matching
// the teacher's "only slide if moving toward the object" guard.
func Slide(current, proposed mgl64.Vec2, velocity mgl64.Vec2, radius float64, obstacles []Obstacle) mgl64.Vec2 {
	final := proposed
	for _, ob := range obstacles {
		var normal mgl64.Vec2
		var minDist float64
		var contact mgl64.Vec2
		if ob.AABB != nil {
			contact = closestPointOnAABB(final, *ob.AABB)
			normal = final.Sub(contact)
			minDist = radius
		} else {
			normal = final.Sub(ob.Center)
			minDist = radius + ob.Radius + SlideSeparation
			contact = ob.Center
		}
		distSq := normal.Dot(normal)
		if distSq >= minDist*minDist {
			continue
		}
		var norm mgl64.Vec2
		if distSq == 0 {
			// Landing exactly on the contact point leaves no outward
			// normal; use the one pointing back along the motion.
			if velocity.Dot(velocity) == 0 {
				continue
			}
			norm = velocity.Normalize().Mul(-1)
		} else {
			norm = normal.Mul(1 / sqrt(distSq))
		}
		dot := velocity.Dot(norm)
		if dot >= 0 {
			continue
		}
		slideVel := velocity.Sub(norm.Mul(dot))
		final = current.Add(slideVel)

		finalNormal := final.Sub(contact)
		finalDist := finalNormal.Len()
		if finalDist < minDist {
			dir := mgl64.Vec2{1, 0}
			if finalDist > 0.001 {
				dir = finalNormal.Mul(1 / finalDist)
			}
			final = contact.Add(dir.Mul(minDist))
		}
	}
	return final
}

// PushOut iteratively separates a circle from every overlapping obstacle,
// resolving dense multi-body overlap in a bounded number of passes (spec
// §4.2; original_source: resolve_push_out_collision's 2-iteration loop).
func PushOut(position mgl64.Vec2, radius float64, obstacles []Obstacle) mgl64.Vec2 {
	resolved := position
	for iter := 0; iter < pushOutIterations; iter++ {
		overlapped := false
		for _, ob := range obstacles {
			if ob.AABB != nil {
				contact := closestPointOnAABB(resolved, *ob.AABB)
				d := resolved.Sub(contact)
				distSq := d.Dot(d)
				if distSq >= radius*radius {
					continue
				}
				overlapped = true
				if distSq > 0 {
					dist := sqrt(distSq)
					overlap := (radius - dist) + PushOutSeparation
					resolved = resolved.Add(d.Mul(overlap / dist))
				} else {
					resolved = pushFromAABBCenter(resolved, *ob.AABB, radius)
				}
				continue
			}
			d := resolved.Sub(ob.Center)
			distSq := d.Dot(d)
			minDist := radius + ob.Radius
			if distSq >= minDist*minDist || distSq == 0 {
				continue
			}
			overlapped = true
			dist := sqrt(distSq)
			overlap := (minDist - dist) + PushOutSeparation
			resolved = resolved.Add(d.Mul(overlap / dist))
		}
		if !overlapped {
			break
		}
	}
	return resolved
}

func closestPointOnAABB(p mgl64.Vec2, b AABB) mgl64.Vec2 {
	return mgl64.Vec2{clamp(p.X(), b.Min.X(), b.Max.X()), clamp(p.Y(), b.Min.Y(), b.Max.Y())}
}

func pushFromAABBCenter(p mgl64.Vec2, b AABB, radius float64) mgl64.Vec2 {
	halfW, halfH := (b.Max.X()-b.Min.X())/2, (b.Max.Y()-b.Min.Y())/2
	cx, cy := b.Min.X()+halfW, b.Min.Y()+halfH
	penLeft := p.X() - b.Min.X()
	penRight := b.Max.X() - p.X()
	penTop := p.Y() - b.Min.Y()
	penBottom := b.Max.Y() - p.Y()
	minX := min(penLeft, penRight)
	minY := min(penTop, penBottom)
	if minX < minY {
		if penLeft < penRight {
			return mgl64.Vec2{b.Min.X() - radius, p.Y()}
		}
		return mgl64.Vec2{b.Max.X() + radius, p.Y()}
	}
	_ = cx
	_ = cy
	if penTop < penBottom {
		return mgl64.Vec2{p.X(), b.Min.Y() - radius}
	}
	return mgl64.Vec2{p.X(), b.Max.Y() + radius}
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func sqrt(v float64) float64 {
	return math.Sqrt(v)
}

// ClampToBounds restricts a circle's center so it stays fully within the
// world rectangle (spec §4.4 movement clamp).
func ClampToBounds(p mgl64.Vec2, radius, worldW, worldH float64) mgl64.Vec2 {
	return mgl64.Vec2{
		clamp(p.X(), radius, worldW-radius),
		clamp(p.Y(), radius, worldH-radius),
	}
}

// TwoRadiiCollide checks NPC-vs-target overlap using the attacking radius
// when the NPC is in an attacking state and the idle radius otherwise (spec
// §4.5 "two-radii NPC collision": a Shorebound has a small idle footprint
// but a larger attack-lunge reach).
func TwoRadiiCollide(npcCenter mgl64.Vec2, idleRadius, attackRadius float64, attacking bool, targetCenter mgl64.Vec2, targetRadius float64) bool {
	r := idleRadius
	if attacking {
		r = attackRadius
	}
	d := npcCenter.Sub(targetCenter)
	rr := r + targetRadius
	return d.Dot(d) <= rr*rr
}
