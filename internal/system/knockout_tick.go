package system

import (
	"github.com/soitun/survivalcore/internal/playerlogic"
	"github.com/soitun/survivalcore/internal/scheduler"
	"github.com/soitun/survivalcore/internal/world"
)

// knockoutRecoveryTick sweeps the KnockedOutStatus table and revives every
// player whose recovery time has come (spec §4.4: "a recovery schedule can
// revive them"). A status row whose player is gone is dropped as stale.
func (d *Deps) knockoutRecoveryTick(row *scheduler.Row, now int64) {
	nowSec := now / 1000
	var due []world.PlayerID
	d.World.KnockedOut.Range(func(id world.PlayerID, st *world.KnockedOutStatus) bool {
		if nowSec >= st.RecoverAfter {
			due = append(due, id)
		}
		return true
	})
	for _, id := range due {
		p, ok := d.World.Players.Get(id)
		if !ok {
			d.World.KnockedOut.Delete(id)
			continue
		}
		playerlogic.Recover(d.World, p)
	}
}
