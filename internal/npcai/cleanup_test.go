package npcai

import (
	"math/rand"
	"testing"

	"github.com/soitun/survivalcore/internal/world"
)

func TestRunCleanupTickForceRemovesAfterWindow(t *testing.T) {
	w := world.New()
	for i := 1; i <= 5; i++ {
		h := &world.Hostile{ID: world.HostileID(i), Health: 10, MaxHealth: 10}
		w.Hostiles.Put(h.ID, h)
	}

	c := &DawnCleanup{StartedAt: 0}
	rng := rand.New(rand.NewSource(1))

	closed := RunCleanupTick(w, c, int64(DawnCleanupWindowSecs), rng, nil)
	if !closed {
		t.Fatal("expected the window reported closed once elapsed >= window")
	}
	if w.Hostiles.Len() != 0 {
		t.Fatalf("expected every remaining hostile force-removed, got %d left", w.Hostiles.Len())
	}
}

func TestRunCleanupTickDoesNotTouchAlreadyDispatched(t *testing.T) {
	w := world.New()
	h := &world.Hostile{ID: 1, Health: 10, MaxHealth: 10, DespawnAt: 500}
	w.Hostiles.Put(h.ID, h)

	c := &DawnCleanup{StartedAt: 0}
	rng := rand.New(rand.NewSource(1))

	RunCleanupTick(w, c, 2, rng, nil)
	if _, ok := w.Hostiles.Get(1); !ok {
		t.Fatal("expected an already-dispatched hostile left alone by this tick")
	}
}

func TestRunCleanupTickNotClosedBeforeWindow(t *testing.T) {
	w := world.New()
	c := &DawnCleanup{StartedAt: 0}
	rng := rand.New(rand.NewSource(1))

	closed := RunCleanupTick(w, c, 2, rng, nil)
	if closed {
		t.Fatal("expected window not yet closed partway through")
	}
}
