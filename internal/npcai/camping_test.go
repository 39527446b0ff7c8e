package npcai

import (
	"testing"

	"github.com/soitun/survivalcore/internal/world"
)

func TestRefreshCampingStartsStationaryOnFirstCheck(t *testing.T) {
	w := world.New()
	p := w.RegisterPlayer("camper")
	p.PosX, p.PosY = 0, 0

	st := RefreshCamping(w, p, 1000)
	if st.StationarySinceMs != 1000 {
		t.Fatalf("expected stationary clock started at first check, got %d", st.StationarySinceMs)
	}
	if st.IsCamping {
		t.Fatal("expected not camping immediately")
	}
}

func TestRefreshCampingResetsOnLargeMovement(t *testing.T) {
	w := world.New()
	p := w.RegisterPlayer("camper")
	p.PosX, p.PosY = 0, 0
	RefreshCamping(w, p, 0)

	p.PosX = CampingMoveThreshold + 10
	st := RefreshCamping(w, p, 70_000)
	if st.StationarySinceMs != 70_000 {
		t.Fatalf("expected stationary clock reset after a large move, got %d", st.StationarySinceMs)
	}
	if st.IsCamping {
		t.Fatal("expected camping reset alongside the stationary clock")
	}
}

func TestRefreshCampingTrueAfterStationaryThreshold(t *testing.T) {
	w := world.New()
	p := w.RegisterPlayer("camper")
	p.PosX, p.PosY = 0, 0
	RefreshCamping(w, p, 0)

	st := RefreshCamping(w, p, CampingStationaryThresholdMs+1)
	if !st.IsCamping {
		t.Fatal("expected camping true once stationary past threshold")
	}
}

func TestRefreshCampingTrueWhenIndoorsRegardlessOfTime(t *testing.T) {
	w := world.New()
	p := w.RegisterPlayer("camper")
	p.IsInsideBuilding = true

	st := RefreshCamping(w, p, 0)
	if !st.IsCamping {
		t.Fatal("expected camping true while indoors immediately")
	}
}
