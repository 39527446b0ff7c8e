package spatial

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/soitun/survivalcore/internal/apperr"
)

// PlacementRule captures the checks a new static entity (structure, hearth,
// storage box) must pass before its reducer may create it. Grounded on
// spec §4.2's placement-validation rule set and the water/monument checks
// in original_source/world_generation.rs (is_near_water / monument-zone
// masking), translated from terrain-generation-time checks into a runtime
// placement gate.
type PlacementRule struct {
	AllowWater        bool // walrus/bee-class placements may straddle water
	MinSameTypeGap    float64
	RequireFoundation bool
}

// TerrainSampler answers the terrain questions placement validation needs
// without spatial needing to depend on the world/worldgen packages.
type TerrainSampler interface {
	IsWater(x, y float64) bool
	IsMonumentZone(x, y float64) bool
	HasFoundationAt(x, y float64) bool
}

// ValidatePlacement implements spec §4.2's placement-validation rule:
// "not on water unless species permits; not inside any shelter AABB or
// enclosed building; not inside monument zones for built placements; not
// overlapping existing same-type within a minimum radius; not on a wall
// edge; for some items (hearth), must be on a foundation cell."
func ValidatePlacement(
	pos mgl64.Vec2,
	rule PlacementRule,
	terrain TerrainSampler,
	shelters []AABB,
	wallEdges []ThinEdge,
	sameTypeNearby []Occupant,
) error {
	if !rule.AllowWater && terrain.IsWater(pos.X(), pos.Y()) {
		return apperr.New(apperr.RuleViolation, "cannot place on water")
	}
	if terrain.IsMonumentZone(pos.X(), pos.Y()) {
		return apperr.New(apperr.RuleViolation, "cannot place inside a monument zone")
	}
	for _, s := range shelters {
		if s.OverlapsCircle(Circle{Center: pos, Radius: 0.5}) {
			return apperr.New(apperr.RuleViolation, "cannot place inside a shelter")
		}
	}
	for _, e := range wallEdges {
		if e.DistanceToPoint(pos) < wallPlacementClearance {
			return apperr.New(apperr.RuleViolation, "cannot place on a wall edge")
		}
	}
	if rule.MinSameTypeGap > 0 {
		for _, o := range sameTypeNearby {
			d := o.X - pos.X()
			e := o.Y - pos.Y()
			if d*d+e*e < rule.MinSameTypeGap*rule.MinSameTypeGap {
				return apperr.New(apperr.RuleViolation, "too close to an existing placement of the same type")
			}
		}
	}
	if rule.RequireFoundation && !terrain.HasFoundationAt(pos.X(), pos.Y()) {
		return apperr.New(apperr.RuleViolation, "must be placed on a foundation")
	}
	return nil
}

const wallPlacementClearance = 4.0
