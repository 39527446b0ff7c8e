package spatial

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// wallAt builds the thin vertical AABB a wall edge contributes to sweeps.
func wallAt(x float64) Obstacle {
	box := AABB{Min: mgl64.Vec2{x - 2, -64}, Max: mgl64.Vec2{x + 2, 64}}
	return Obstacle{ID: 7, AABB: &box}
}

func TestResolveSweepStopsShortOfWall(t *testing.T) {
	// A hostile covering 200 px in one tick against a wall at x=100: the
	// resolved position must sit before the wall, one sample short of the
	// first intersection, with no part of the path crossing it.
	start := mgl64.Vec2{0, 0}
	end := mgl64.Vec2{200, 0}
	const radius = 16.0

	final := ResolveSweep(start, end, radius, []Obstacle{wallAt(100)})

	if final.X() >= 100-radius {
		t.Fatalf("expected stop short of the wall face, got x=%v", final.X())
	}
	if final.X() <= start.X() {
		t.Fatal("expected some forward progress before the wall")
	}
}

func TestResolveSweepPassesClearPath(t *testing.T) {
	start := mgl64.Vec2{0, 0}
	end := mgl64.Vec2{200, 0}
	final := ResolveSweep(start, end, 16, []Obstacle{wallAt(400)})
	if final != end {
		t.Fatalf("clear path must reach its endpoint, got %v", final)
	}
}

func TestResolveSweepAlreadyTouchingStaysPut(t *testing.T) {
	start := mgl64.Vec2{90, 0} // overlapping the wall face at t=0
	end := mgl64.Vec2{200, 0}
	final := ResolveSweep(start, end, 16, []Obstacle{wallAt(100)})
	if final != start {
		t.Fatalf("a sweep that starts in contact must not advance, got %v", final)
	}
}

func TestSweepPathPicksEarliestHit(t *testing.T) {
	start := mgl64.Vec2{0, 0}
	end := mgl64.Vec2{200, 0}
	hit := SweepPath(start, end, 16, []Obstacle{wallAt(150), wallAt(75)})
	if !hit.Hit {
		t.Fatal("expected a hit")
	}
	if hit.Point.X() > 100 {
		t.Fatalf("expected the nearer wall to win, hit at %v", hit.Point)
	}
}

func TestGridRebuildCachesByTimestamp(t *testing.T) {
	g := NewGrid()
	g.Rebuild(1000, []Occupant{{ID: 1, Kind: KindStructure, X: 10, Y: 10, Radius: 8}})
	if g.BuiltAt() != 1000 {
		t.Fatalf("expected BuiltAt 1000, got %d", g.BuiltAt())
	}
	if got := len(g.Nearby(10, 10)); got != 1 {
		t.Fatalf("expected 1 occupant near (10,10), got %d", got)
	}

	g.Rebuild(2000, nil)
	if got := len(g.Nearby(10, 10)); got != 0 {
		t.Fatalf("expected rebuild to replace contents, got %d occupants", got)
	}
}

func TestWithinRadiusFiltersAndExcludes(t *testing.T) {
	occ := []Occupant{
		{ID: 1, X: 0, Y: 0},
		{ID: 2, X: 30, Y: 0},
		{ID: 3, X: 100, Y: 0},
	}
	got := WithinRadius(occ, 0, 0, 50, 1)
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected only occupant 2 within radius after excluding 1, got %v", got)
	}
}
