// Package npcai implements spec §4.5's hostile NPC spawn/despawn pressure
// system: per-player camping-state tracking, priority-ordered stochastic
// spawn against per-species caps, and the staggered dawn cleanup sweep.
// Grounded on the teacher's internal/system/npc_respawn.go cadence-driven
// respawn loop, generalized from a single fixed-template respawn table to
// three differently-weighted species with camping-gated spawn rules.
package npcai

import (
	"math"

	"github.com/soitun/survivalcore/internal/world"
)

// CampingMoveThreshold is the displacement that resets a player's
// stationary timer (spec §4.5: "moved > 500 px since last check").
const CampingMoveThreshold = 500.0

// CampingStationaryThresholdMs is how long a player must stay put (without
// the move-threshold reset) before camping kicks in purely from standing
// still, independent of IsInsideBuilding (spec §4.5: "stationary >= 60s").
const CampingStationaryThresholdMs = 60_000

// RefreshCamping implements spec §4.5 step 1: refresh the camping state for
// one online player. nowMs is unix millis.
func RefreshCamping(w *world.World, p *world.Player, nowMs int64) *world.PlayerCampingState {
	st, ok := w.CampingState.Get(p.ID)
	if !ok {
		st = &world.PlayerCampingState{
			Owner: p.ID, LastCheckX: p.PosX, LastCheckY: p.PosY,
			LastCheckAt: nowMs, StationarySinceMs: nowMs,
		}
		w.CampingState.Put(p.ID, st)
	} else if moved := dist(p.PosX, p.PosY, st.LastCheckX, st.LastCheckY); moved > CampingMoveThreshold {
		st.StationarySinceMs = nowMs
	}

	st.LastCheckX, st.LastCheckY, st.LastCheckAt = p.PosX, p.PosY, nowMs

	stationaryFor := nowMs - st.StationarySinceMs
	st.IsCamping = p.IsInsideBuilding || stationaryFor >= CampingStationaryThresholdMs
	return st
}

func dist(x1, y1, x2, y2 float64) float64 {
	dx, dy := x1-x2, y1-y2
	return math.Sqrt(dx*dx + dy*dy)
}
