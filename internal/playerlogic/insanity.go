package playerlogic

import (
	"math"

	"github.com/soitun/survivalcore/internal/core/event"
	"github.com/soitun/survivalcore/internal/world"
)

const (
	insanityCarryThreshold    = 3 // shard count beyond which accumulation begins
	insanityDecayFast         = 2.0
	insanityDecaySlow         = 0.35
	insanityDecayFastAbove    = 50.0
	insanityTimeMultiplierCap = 8.0
	insanityRampSeconds       = 15 * 60
	insanityShardExponent     = 0.35
)

var insanityThresholds = [...]int{25, 50, 75, 90, 100}

// InsanityState is the per-player carry-duration bookkeeping a stats tick
// needs beyond the bare Stats.Insanity field: when continuous carrying
// started, and the last threshold reported so crossings fire once each.
type InsanityState struct {
	CarryStartedAt int64 // unix seconds; 0 = not currently carrying
	LastThreshold  int
}

// ApplyInsanity implements spec §4.4 Insanity: accumulation scales with
// shard_count^0.35 and a time-in-carry multiplier ramping to 8x over ~15
// minutes, halts (but keeps the carry clock running) inside a safe zone,
// and resets instantly to zero at a memory beacon. elapsed is in seconds;
// now is unix seconds.
func ApplyInsanity(p *world.Player, st *InsanityState, shardCount int, inSafeZone, inBeaconZone bool, now int64, elapsed float64, bus *event.Bus) {
	if inBeaconZone {
		p.Stats.Insanity = 0
		st.CarryStartedAt = 0
		st.LastThreshold = 0
		return
	}

	if shardCount > insanityCarryThreshold {
		if st.CarryStartedAt == 0 {
			st.CarryStartedAt = now
		}
		if !inSafeZone {
			rate := math.Pow(float64(shardCount), insanityShardExponent) * timeMultiplier(float64(now-st.CarryStartedAt))
			p.Stats.Insanity += rate * elapsed
		}
	} else {
		st.CarryStartedAt = 0
		rate := insanityDecaySlow
		if p.Stats.Insanity < insanityDecayFastAbove {
			rate = insanityDecayFast
		}
		p.Stats.Insanity -= rate * elapsed
	}

	p.Stats.Insanity = clamp(p.Stats.Insanity, 0, world.MaxInsanity)
	reportCrossings(p, st, bus)
}

// timeMultiplier grows from 1x to an 8x cap over ~15 minutes of continuous
// carry, using a log curve so the early minutes ramp faster than the tail.
func timeMultiplier(durationSec float64) float64 {
	if durationSec <= 0 {
		return 1
	}
	t := durationSec / insanityRampSeconds
	if t > 1 {
		t = 1
	}
	return 1 + (insanityTimeMultiplierCap-1)*math.Log1p(9*t)/math.Log(10)
}

// reportCrossings fires InsanityThresholdCrossed once per upward crossing of
// {25,50,75,90,100} (spec §4.4), and rearms the next-lower threshold once
// insanity has decayed back under it so a later re-climb reports again.
func reportCrossings(p *world.Player, st *InsanityState, bus *event.Bus) {
	crossed := 0
	for _, th := range insanityThresholds {
		if p.Stats.Insanity >= float64(th) && st.LastThreshold < th {
			crossed = th
		}
	}
	if crossed > 0 {
		st.LastThreshold = crossed
		if bus != nil {
			event.Emit(bus, event.InsanityThresholdCrossed{PlayerID: uint64(p.ID), Threshold: crossed})
			if crossed == 100 {
				event.Emit(bus, event.EffectEntered{PlayerID: uint64(p.ID), Effect: event.EffectEntrainment})
			}
		}
		return
	}
	if st.LastThreshold > 0 && p.Stats.Insanity < float64(st.LastThreshold) {
		rearmed := 0
		for _, th := range insanityThresholds {
			if p.Stats.Insanity < float64(th) {
				break
			}
			rearmed = th
		}
		if rearmed < st.LastThreshold && st.LastThreshold == 100 && bus != nil {
			event.Emit(bus, event.EffectExited{PlayerID: uint64(p.ID), Effect: event.EffectEntrainment})
		}
		st.LastThreshold = rearmed
	}
}
