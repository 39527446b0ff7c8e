// Package playerlogic implements spec §4.4's player lifecycle state
// machine: movement resolution, stats drain/regen, insanity, and
// death/corpse/respawn/knockout. Grounded on the teacher's per-tick
// character update pass, generalized from Lineage's HP/MP/EXP model to the
// hunger/thirst/warmth/stamina/insanity model this spec names.
package playerlogic

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/soitun/survivalcore/internal/spatial"
	"github.com/soitun/survivalcore/internal/world"
)

// PlayerRadius is the collision circle radius used for every player in the
// spatial layer (spec §4.2 "circle... for players").
const PlayerRadius = 12.0

// PlayerSpeed is the baseline walking speed in px/sec (spec §4.4 max_step).
const PlayerSpeed = 140.0

const gravityWellGuard = 20.0

// ResolveMovement implements spec §4.4 Movement: computes displacement from
// the player's last known position, clamps its magnitude by
// max_step = PLAYER_SPEED * dt * (sprint? 1.75 : 1) * (water? 0.5 : 1),
// applies the combined slide+push-out collision resolution (spec §4.2), then
// writes the resolved position. clientSeq is recorded purely as an ordering
// token — the client's desired position is never trusted for magnitude.
func ResolveMovement(p *world.Player, destX, destY float64, dt time.Duration, clientSeq uint32, worldW, worldH float64, obstacles []spatial.Obstacle) {
	current := mgl64.Vec2{p.PosX, p.PosY}
	desired := mgl64.Vec2{destX, destY}
	delta := desired.Sub(current)

	maxStep := PlayerSpeed * dt.Seconds()
	if p.Flags.Sprinting {
		maxStep *= 1.75
	}
	if p.IsOnWater {
		maxStep *= 0.5
	}

	if dist := delta.Len(); dist > maxStep && dist > 0 {
		delta = delta.Mul(maxStep / dist)
	}
	proposed := current.Add(delta)

	slid := spatial.Slide(current, proposed, delta, PlayerRadius, obstacles)
	pushed := spatial.PushOut(slid, PlayerRadius, obstacles)

	// Gravity-well guard (spec §4.2): discard push-out if it moved the
	// player more than 20px away from the post-slide position.
	if pushed.Sub(slid).Len() > gravityWellGuard {
		pushed = slid
	}

	final := spatial.ClampToBounds(pushed, PlayerRadius, worldW, worldH)

	p.PosX, p.PosY = final.X(), final.Y()
	p.ClientMovementSequence = clientSeq
}
