package system

import (
	"github.com/soitun/survivalcore/internal/data"
	"github.com/soitun/survivalcore/internal/npcai"
	"github.com/soitun/survivalcore/internal/scheduler"
	"github.com/soitun/survivalcore/internal/world"
)

// hostileSpawnTick implements spec §4.5 steps 1-4 for every online player,
// gated to the night portion of the day/night cycle. Camping state is
// refreshed every fire regardless of night/day since it tracks continuous
// player behavior, not just the spawn-eligible window.
func (d *Deps) hostileSpawnTick(row *scheduler.Row, now int64) {
	nowSec := now / 1000
	night := d.isNight(nowSec)

	d.Handler.RebuildGrid(now)
	d.World.Players.Range(func(id world.PlayerID, p *world.Player) bool {
		if !p.IsOnline {
			return true
		}
		st := npcai.RefreshCamping(d.World, p, now)
		if !night {
			return true
		}
		npcai.AttemptSpawns(d.World, d.Species, d.Grid, p.PosX, p.PosY, st.IsCamping, d.Rng,
			npcai.DefaultRingSampler, d.validSpawnPoint, nowSec)
		return true
	})
}

// validSpawnPoint rejects candidates outside world bounds, inside a
// rune-stone deterrence zone, or on open water (spec §4.5 step 4).
func (d *Deps) validSpawnPoint(x, y float64, species data.Species) bool {
	worldW := float64(d.Config.World.WidthTiles) * float64(world.ChunkSize)
	worldH := float64(d.Config.World.HeightTiles) * float64(world.ChunkSize)
	if x < 0 || y < 0 || x >= worldW || y >= worldH {
		return false
	}
	for _, z := range d.Monuments {
		if z.Kind != world.MonumentRuneStone {
			continue
		}
		dx, dy := x-z.PosX, y-z.PosY
		if dx*dx+dy*dy < z.Radius*z.Radius {
			return false
		}
	}
	cx, cy := int32(x)/world.ChunkSize, int32(y)/world.ChunkSize
	chunk, ok := d.World.Chunks.Get(world.ChunkIndex(cx, cy))
	if !ok {
		return true
	}
	lx, ly := int32(x)%world.ChunkSize, int32(y)%world.ChunkSize
	t, _ := chunk.TileAt(lx, ly)
	return t != world.TileSea && t != world.TileRiver && t != world.TileLake
}

// dawnCleanupTick implements spec §4.5's staggered dawn cleanup: only runs
// during the dawn window, starting the sweep's clock on the first fire after
// the previous sweep closed. A dawn window longer than
// npcai.DawnCleanupWindowSecs therefore holds a second sweep.
func (d *Deps) dawnCleanupTick(row *scheduler.Row, now int64) {
	nowSec := now / 1000
	if !d.isDawn(nowSec) {
		return
	}
	if d.cleanup.StartedAt == 0 || nowSec < d.cleanup.StartedAt {
		d.cleanup.StartedAt = nowSec
	}
	if npcai.RunCleanupTick(d.World, &d.cleanup, nowSec, d.Rng, d.Bus) {
		d.cleanup.StartedAt = 0
	}
}
