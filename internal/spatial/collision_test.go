package spatial

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestSlideAlongTrunkKeepsTangentialMotion(t *testing.T) {
	// Player skims a trunk offset slightly above its path: the normal
	// component is projected out, the tangential remainder survives, and
	// the minimum separation is enforced.
	current := mgl64.Vec2{100, 100}
	velocity := mgl64.Vec2{20, 0}
	proposed := current.Add(velocity)
	trunk := Obstacle{ID: 1, Center: mgl64.Vec2{130, 104}, Radius: 8}

	final := Slide(current, proposed, velocity, 12, []Obstacle{trunk})

	if final.X() <= current.X() {
		t.Fatalf("expected forward progress along the tangent, got %v", final)
	}
	minDist := 12 + trunk.Radius + SlideSeparation
	if got := final.Sub(trunk.Center).Len(); got < minDist-0.01 {
		t.Fatalf("expected at least %v separation after slide, got %v", minDist, got)
	}
}

func TestSlideIgnoresObstacleWhenMovingAway(t *testing.T) {
	// The trunk overlaps the proposed spot, but the contact normal points
	// along the motion: the player is leaving, not entering.
	current := mgl64.Vec2{100, 100}
	velocity := mgl64.Vec2{-20, 0}
	proposed := current.Add(velocity)
	trunk := Obstacle{ID: 1, Center: mgl64.Vec2{95, 100}, Radius: 8}

	final := Slide(current, proposed, velocity, 12, []Obstacle{trunk})
	if final != proposed {
		t.Fatalf("moving away from an overlap must not be altered, got %v", final)
	}
}

func TestPushOutSeparatesOverlappingCircle(t *testing.T) {
	tree := Obstacle{ID: 1, Center: mgl64.Vec2{115, 100}, Radius: 8}
	resolved := PushOut(mgl64.Vec2{120, 100}, 12, []Obstacle{tree})

	minDist := 12 + tree.Radius + PushOutSeparation
	if got := resolved.Sub(tree.Center).Len(); got < minDist-0.01 {
		t.Fatalf("expected at least %v separation after push-out, got %v", minDist, got)
	}
	if resolved.Y() != 100 {
		t.Fatalf("head-on push-out must keep y unchanged, got %v", resolved.Y())
	}
}

func TestPushOutAABBUsesMinimumPenetrationAxis(t *testing.T) {
	shelter := AABB{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{100, 40}}
	// Deep inside near the bottom edge: y is the cheaper escape.
	resolved := PushOut(mgl64.Vec2{50, 36}, 10, []Obstacle{{ID: 1, AABB: &shelter}})

	if resolved.X() != 50 {
		t.Fatalf("expected push along the minimum-penetration axis only, got %v", resolved)
	}
	if resolved.Y() <= 40 {
		t.Fatalf("expected the circle pushed out past the near edge, got %v", resolved)
	}
}

func TestPushOutLeavesSeparatedCircleAlone(t *testing.T) {
	tree := Obstacle{ID: 1, Center: mgl64.Vec2{0, 0}, Radius: 8}
	start := mgl64.Vec2{100, 100}
	if resolved := PushOut(start, 12, []Obstacle{tree}); resolved != start {
		t.Fatalf("non-overlapping circle must not move, got %v", resolved)
	}
}

func TestClampToBoundsKeepsCircleInside(t *testing.T) {
	p := ClampToBounds(mgl64.Vec2{-50, 9999}, 12, 1000, 1000)
	if p.X() != 12 || p.Y() != 1000-12 {
		t.Fatalf("expected clamp to (12, 988), got %v", p)
	}
}

func TestTwoRadiiCollideSwitchesOnAttackState(t *testing.T) {
	npc := mgl64.Vec2{0, 0}
	target := mgl64.Vec2{30, 0}
	if TwoRadiiCollide(npc, 10, 25, false, target, 5) {
		t.Fatal("idle radius must not reach the target at this range")
	}
	if !TwoRadiiCollide(npc, 10, 25, true, target, 5) {
		t.Fatal("attacking radius should reach the target at this range")
	}
}
