package handler

import (
	"time"

	"github.com/soitun/survivalcore/internal/playerlogic"
	"github.com/soitun/survivalcore/internal/world"
)

// MovePlayer implements the movement half of spec §6's command set:
// resolves (destX,destY) against the collision grid via
// internal/playerlogic.ResolveMovement, then stamps the client's movement
// sequence so duplicate/stale packets are ignored.
func (d *Deps) MovePlayer(actor world.PlayerID, destX, destY float64, dt time.Duration, clientSeq uint32, now int64) error {
	p, err := d.requireActor(actor)
	if err != nil {
		return err
	}
	if clientSeq != 0 && clientSeq <= p.ClientMovementSequence {
		return nil // stale/duplicate, not an error: the client will catch up
	}

	d.RebuildGrid(now)
	obstacles := d.obstaclesNear(p.PosX, p.PosY, playerlogic.PlayerRadius)
	worldW := float64(d.Config.World.WidthTiles) * float64(d.Config.World.ChunkSize)
	worldH := float64(d.Config.World.HeightTiles) * float64(d.Config.World.ChunkSize)
	playerlogic.ResolveMovement(p, destX, destY, dt, clientSeq, worldW, worldH, obstacles)
	p.ChunkIndex = world.ChunkIndex(int32(p.PosX)/int32(d.Config.World.ChunkSize), int32(p.PosY)/int32(d.Config.World.ChunkSize))
	return nil
}

// SetActiveFlags implements the crouch/sprint/torch/snorkel toggles named
// alongside position in spec §3's Player row.
func (d *Deps) SetActiveFlags(actor world.PlayerID, flags world.ActiveFlags) error {
	p, err := d.requireActor(actor)
	if err != nil {
		return err
	}
	p.Flags = flags
	return nil
}
