package playerlogic

import (
	"testing"

	"github.com/soitun/survivalcore/internal/world"
)

func TestApplyInsanityAccumulatesWhenCarryingShards(t *testing.T) {
	p := &world.Player{ID: 1}
	st := &InsanityState{}

	ApplyInsanity(p, st, 10, false, false, 100, 10, nil)

	if p.Stats.Insanity <= 0 {
		t.Fatal("expected insanity to accumulate while carrying shards above threshold")
	}
}

func TestApplyInsanityHaltsInSafeZone(t *testing.T) {
	p := &world.Player{ID: 1}
	st := &InsanityState{}

	ApplyInsanity(p, st, 10, true, false, 100, 10, nil)

	if p.Stats.Insanity != 0 {
		t.Fatalf("expected safe zone to halt accumulation, got %v", p.Stats.Insanity)
	}
	if st.CarryStartedAt == 0 {
		t.Fatal("carry clock should still be running in a safe zone")
	}
}

func TestApplyInsanityMemoryBeaconResetsInstantly(t *testing.T) {
	p := &world.Player{ID: 1, Stats: world.Stats{Insanity: 80}}
	st := &InsanityState{CarryStartedAt: 500, LastThreshold: 75}

	ApplyInsanity(p, st, 10, false, true, 1000, 5, nil)

	if p.Stats.Insanity != 0 {
		t.Fatalf("expected beacon zone to reset insanity to 0, got %v", p.Stats.Insanity)
	}
	if st.CarryStartedAt != 0 || st.LastThreshold != 0 {
		t.Fatal("expected beacon reset to clear carry bookkeeping")
	}
}

func TestApplyInsanityDecaysFastBelowFifty(t *testing.T) {
	p := &world.Player{ID: 1, Stats: world.Stats{Insanity: 40}}
	st := &InsanityState{}

	ApplyInsanity(p, st, 0, false, false, 100, 1, nil)

	want := 40 - insanityDecayFast
	if p.Stats.Insanity != want {
		t.Fatalf("expected fast decay below 50, got %v want %v", p.Stats.Insanity, want)
	}
}

func TestApplyInsanityDecaysSlowAboveFifty(t *testing.T) {
	p := &world.Player{ID: 1, Stats: world.Stats{Insanity: 80}}
	st := &InsanityState{}

	ApplyInsanity(p, st, 0, false, false, 100, 1, nil)

	want := 80 - insanityDecaySlow
	if p.Stats.Insanity != want {
		t.Fatalf("expected slow decay above 50, got %v want %v", p.Stats.Insanity, want)
	}
}

func TestApplyInsanityClampsToZeroAndMax(t *testing.T) {
	p := &world.Player{ID: 1, Stats: world.Stats{Insanity: 1}}
	st := &InsanityState{}
	ApplyInsanity(p, st, 0, false, false, 100, 1000, nil)
	if p.Stats.Insanity < 0 {
		t.Fatal("insanity must never go negative")
	}

	p2 := &world.Player{ID: 2, Stats: world.Stats{Insanity: 99}}
	st2 := &InsanityState{CarryStartedAt: 0}
	ApplyInsanity(p2, st2, 100, false, false, 1, 1000, nil)
	if p2.Stats.Insanity > world.MaxInsanity {
		t.Fatal("insanity must never exceed MaxInsanity")
	}
}
