package system

import (
	"github.com/soitun/survivalcore/internal/scheduler"
	"github.com/soitun/survivalcore/internal/world"
)

// DayLengthSecs is the full day/night cycle length; NightFraction is the
// portion of that cycle treated as night (spec §4.5: hostile spawn pressure
// and dawn cleanup both key off day/night, exact cycle length left
// unspecified so this picks the common survival-game convention of a short
// real-time day).
const (
	DayLengthSecs  = 24 * 60
	NightFraction  = 0.4
	dawnWindowSecs = 30
)

// resourceRespawnSecs is the standing-down time before a depleted resource
// node regrows; the sweep itself runs coarsely since regrowth precision is
// irrelevant at this timescale.
const (
	resourceRespawnSecs     = 600
	resourceSweepEverySecs  = 30
)

// globalTick anchors the day/night clock on first fire, advances the
// weather cycle, and runs the resource-node spawn cycle (spec §4.3 "spawn
// cycles for resource nodes"). Whole-world bookkeeping that doesn't belong
// to any single entity family lives here, mirroring the teacher's Runner
// phase that ran before every per-entity system; internal/spatial.Grid is
// rebuilt lazily by whichever tick needs it next rather than from here,
// since Grid.BuiltAt/Rebuild already dedupe same-tick rebuilds.
func (d *Deps) globalTick(row *scheduler.Row, now int64) {
	nowSec := now / 1000
	if d.cycleStartedAt == 0 {
		d.cycleStartedAt = nowSec
	}
	d.advanceWeather(nowSec)

	if nowSec-d.lastResourceSweep >= resourceSweepEverySecs {
		d.lastResourceSweep = nowSec
		d.World.ResourceNodes.Range(func(_ world.ResourceNodeID, n *world.ResourceNode) bool {
			if n.Depleted() && nowSec-n.DepletedAt >= resourceRespawnSecs {
				n.Health = n.MaxHealth
				n.DepletedAt = 0
			}
			return true
		})
	}
}

// isNight reports whether now falls in the night portion of the day/night
// cycle (spec §4.5 "hostile spawn pressure... at night").
func (d *Deps) isNight(nowSec int64) bool {
	if d.cycleStartedAt == 0 {
		d.cycleStartedAt = nowSec
	}
	elapsed := (nowSec - d.cycleStartedAt) % DayLengthSecs
	return float64(elapsed) >= DayLengthSecs*(1-NightFraction)
}

// isDawn reports whether now is within the dawn window where the cleanup
// tick family staggers hostile removal (spec §4.5 "staggered ~12s dawn
// cleanup").
func (d *Deps) isDawn(nowSec int64) bool {
	if d.cycleStartedAt == 0 {
		d.cycleStartedAt = nowSec
	}
	elapsed := (nowSec - d.cycleStartedAt) % DayLengthSecs
	return elapsed >= 0 && elapsed < dawnWindowSecs
}
