package handler

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/soitun/survivalcore/internal/apperr"
	"github.com/soitun/survivalcore/internal/core/event"
	"github.com/soitun/survivalcore/internal/world"
)

// RegisterPlayer implements spec §6's register_player(username): looks up
// the identity by username, creating a new Player row the first time it's
// seen, then opens an ActiveConnection for it. Ownership of an existing
// username is proven by password — a mismatch is the spec's UsernameTaken
// ("the name belongs to a different identity"), following the teacher's
// bcrypt account check. A username already bound to a live connection is a
// StateViolation — the teacher's login flow calls this an "already online"
// kick, generalized here to a plain refusal since this layer has no
// forcible-disconnect surface of its own.
func (d *Deps) RegisterPlayer(connectionID world.ConnectionID, username, password string, now int64) (*world.Player, error) {
	if username == "" {
		return nil, apperr.New(apperr.TypeViolation, "username must not be empty")
	}

	p, existed := d.World.FindPlayerByUsername(username)
	if existed {
		if bcrypt.CompareHashAndPassword(p.PasswordHash, []byte(password)) != nil {
			return nil, apperr.New(apperr.OwnershipViolation, "username is taken")
		}
	} else {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperr.New(apperr.TypeViolation, "password is not hashable")
		}
		p = d.World.RegisterPlayer(username)
		p.PasswordHash = hash
		event.Emit(d.Bus, event.PlayerRegistered{PlayerID: uint64(p.ID), Username: username})
	}

	var alreadyOnline *world.ActiveConnection
	d.World.Connections.Range(func(_ world.ConnectionID, c *world.ActiveConnection) bool {
		if c.Owner == p.ID {
			alreadyOnline = c
			return false
		}
		return true
	})
	if alreadyOnline != nil {
		return nil, apperr.New(apperr.StateViolation, "identity is already online")
	}

	d.World.Connections.Put(connectionID, &world.ActiveConnection{Owner: p.ID, ConnectionID: connectionID, Timestamp: now})
	p.IsOnline = true
	event.Emit(d.Bus, event.PlayerConnected{PlayerID: uint64(p.ID), ConnectionID: uint64(connectionID)})
	return p, nil
}

// Disconnect implements the ActiveConnection teardown half of spec §3's
// "presence <=> is_online (eventually)" invariant.
func (d *Deps) Disconnect(connectionID world.ConnectionID) error {
	c, ok := d.World.Connections.Get(connectionID)
	if !ok {
		return apperr.New(apperr.NotFound, "connection not found")
	}
	d.World.Connections.Delete(connectionID)
	if p, ok := d.World.Players.Get(c.Owner); ok {
		p.IsOnline = false
	}
	event.Emit(d.Bus, event.PlayerDisconnected{PlayerID: uint64(c.Owner), ConnectionID: uint64(connectionID)})
	return nil
}

// Viewport is a per-connection window into the tile/entity stream, the
// state update_viewport mutates (spec §6: "clients declare a rectangular
// region of interest; the server only streams updates intersecting it").
type Viewport struct {
	MinX, MinY, MaxX, MaxY float64
}

// UpdateViewport implements spec §6's update_viewport(min_x,min_y,max_x,max_y).
// Kept here rather than on world.Player since it is purely a streaming
// concern, not simulation state; reducers never read it.
func (d *Deps) UpdateViewport(viewports map[world.PlayerID]Viewport, actor world.PlayerID, minX, minY, maxX, maxY float64) error {
	if _, err := d.requireActor(actor); err != nil {
		return err
	}
	if minX > maxX || minY > maxY {
		return apperr.New(apperr.TypeViolation, "viewport bounds are inverted")
	}
	viewports[actor] = Viewport{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
	return nil
}

