package playerlogic

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/soitun/survivalcore/internal/spatial"
	"github.com/soitun/survivalcore/internal/world"
)

func newMovingPlayer(x, y float64) *world.Player {
	return &world.Player{PosX: x, PosY: y}
}

func TestResolveMovementClampsToMaxStep(t *testing.T) {
	p := newMovingPlayer(0, 0)
	ResolveMovement(p, 10000, 0, time.Second, 1, 100000, 100000, nil)

	if p.PosX > PlayerSpeed+0.0001 {
		t.Fatalf("expected displacement clamped to max_step=%v, got %v", PlayerSpeed, p.PosX)
	}
	if p.ClientMovementSequence != 1 {
		t.Fatalf("expected sequence recorded, got %d", p.ClientMovementSequence)
	}
}

func TestResolveMovementSprintMultiplier(t *testing.T) {
	p := newMovingPlayer(0, 0)
	p.Flags.Sprinting = true
	ResolveMovement(p, 10000, 0, time.Second, 1, 100000, 100000, nil)

	want := PlayerSpeed * 1.75
	if p.PosX < want-0.01 || p.PosX > want+0.01 {
		t.Fatalf("expected sprint max_step %v, got %v", want, p.PosX)
	}
}

func TestResolveMovementWaterHalvesSpeed(t *testing.T) {
	p := newMovingPlayer(0, 0)
	p.IsOnWater = true
	ResolveMovement(p, 10000, 0, time.Second, 1, 100000, 100000, nil)

	want := PlayerSpeed * 0.5
	if p.PosX < want-0.01 || p.PosX > want+0.01 {
		t.Fatalf("expected water-slowed max_step %v, got %v", want, p.PosX)
	}
}

func TestResolveMovementSlidesAlongObstacle(t *testing.T) {
	p := newMovingPlayer(0, 0)
	obstacles := []spatial.Obstacle{
		{ID: 1, Center: mgl64.Vec2{PlayerSpeed, 0}, Radius: 8},
	}
	ResolveMovement(p, PlayerSpeed, 0, time.Second, 1, 100000, 100000, obstacles)

	dist := mgl64.Vec2{p.PosX, p.PosY}.Sub(mgl64.Vec2{PlayerSpeed, 0}).Len()
	minDist := PlayerRadius + 8 + spatial.SlideSeparation
	if dist < minDist-0.01 {
		t.Fatalf("expected player kept at least %v from obstacle, got %v", minDist, dist)
	}
}

func TestResolveMovementClampsToWorldBounds(t *testing.T) {
	p := newMovingPlayer(5, 5)
	ResolveMovement(p, -1000, -1000, time.Second, 1, 2000, 2000, nil)

	if p.PosX < PlayerRadius || p.PosY < PlayerRadius {
		t.Fatalf("expected position clamped inside world bounds, got (%v,%v)", p.PosX, p.PosY)
	}
}
