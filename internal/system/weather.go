package system

// weatherState tracks the world's current rain/clear spell and when it next
// flips, advanced once per globalTick fire (spec §4.3: the global tick
// "advances... weather state"). Exact rain-cycle lengths are unspecified, so
// this picks clear spells several times longer than rain spells, the common
// survival-game convention also used for the day/night split in
// internal/system/globaltick.go.
type weatherState struct {
	Raining      bool
	NextChangeAt int64 // unix seconds
}

const (
	minClearSecs = 180
	maxClearSecs = 420
	minRainSecs  = 60
	maxRainSecs  = 180
)

// advanceWeather flips between rain and clear once the current spell's
// duration has elapsed, rolling the next spell's length from d.Rng the same
// way internal/npcai.AttemptSpawns rolls its spawn candidates.
func (d *Deps) advanceWeather(nowSec int64) {
	if d.weather.NextChangeAt == 0 {
		d.weather.NextChangeAt = nowSec + d.weatherRoll(minClearSecs, maxClearSecs)
		return
	}
	if nowSec < d.weather.NextChangeAt {
		return
	}
	d.weather.Raining = !d.weather.Raining
	if d.weather.Raining {
		d.weather.NextChangeAt = nowSec + d.weatherRoll(minRainSecs, maxRainSecs)
	} else {
		d.weather.NextChangeAt = nowSec + d.weatherRoll(minClearSecs, maxClearSecs)
	}
}

func (d *Deps) weatherRoll(lo, hi int64) int64 {
	if d.Rng == nil || hi <= lo {
		return lo
	}
	return lo + d.Rng.Int63n(hi-lo)
}

// isRaining reports the current world-wide rain state, consumed by the
// per-player stats tick's Environment and the water-fill/appliance ticks.
func (d *Deps) isRaining() bool {
	return d.weather.Raining
}
