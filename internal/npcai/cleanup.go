package npcai

import (
	"math/rand"

	"github.com/soitun/survivalcore/internal/core/event"
	"github.com/soitun/survivalcore/internal/world"
)

// DawnCleanupWindowSecs is the total span of the staggered dawn cleanup
// sweep (spec §4.5: "runs every ~2s for ~12s").
const DawnCleanupWindowSecs = 12.0

const (
	cleanupChanceStart = 0.10
	cleanupChanceEnd   = 0.50
)

// DawnCleanup is the scheduled-row state driving the staggered despawn
// sweep, ticked every ~2s by the standing dawn_cleanup_tick row. Once
// StartedAt + DawnCleanupWindowSecs elapses the caller resets StartedAt to
// zero; the schedule row itself stays in the scheduler.
type DawnCleanup struct {
	StartedAt int64 // unix seconds
}

// RunCleanupTick implements one tick of spec §4.5's dawn cleanup: every
// non-dispatched hostile gets an independent despawn roll whose probability
// ramps linearly from 10% to 50% across the window; once the window has
// elapsed, every remaining hostile is force-removed and the caller should
// stop rescheduling this row. Returns true if the window has closed.
func RunCleanupTick(w *world.World, c *DawnCleanup, nowSec int64, rng *rand.Rand, bus *event.Bus) (windowClosed bool) {
	elapsed := float64(nowSec - c.StartedAt)
	t := elapsed / DawnCleanupWindowSecs
	if t > 1 {
		t = 1
	}
	chance := cleanupChanceStart + (cleanupChanceEnd-cleanupChanceStart)*t
	force := elapsed >= DawnCleanupWindowSecs

	var toRemove []world.HostileID
	w.Hostiles.Range(func(id world.HostileID, h *world.Hostile) bool {
		if h.DespawnAt != 0 {
			return true
		}
		if force || rng.Float64() < chance {
			h.DespawnAt = nowSec
			toRemove = append(toRemove, id)
		}
		return true
	})
	for _, id := range toRemove {
		w.Hostiles.Delete(id)
		if bus != nil {
			event.Emit(bus, event.HostileDespawned{HostileID: uint64(id)})
		}
	}

	return force
}
