package playerlogic

import (
	"github.com/google/uuid"

	"github.com/soitun/survivalcore/internal/apperr"
	"github.com/soitun/survivalcore/internal/data"
	"github.com/soitun/survivalcore/internal/world"
)

const knockedOutDefaultRecoverSecs = 45

// weaponDropOffset keeps the dropped active weapon visually beside the
// corpse rather than on top of it.
const weaponDropOffset = 8.0

// Die implements spec §4.4 death: the active weapon drops to the ground
// beside the corpse, the player's full inventory, hotbar, and worn armor
// land inside a freshly created corpse container at the death position, a
// DeathMarker is written/overwritten, and the player is marked dead.
// Returns the new corpse's container id. A player already dead is left
// untouched (idempotent against a stats tick firing twice before the death
// transition is observed elsewhere).
func Die(w *world.World, p *world.Player, nowSec int64) world.ContainerID {
	if p.IsDead {
		if dm, ok := w.DeathMarkers.Get(p.ID); ok {
			return findCorpseAt(w, dm)
		}
		return 0
	}

	corpseID := w.NextContainerID()
	corpse := world.NewCorpse(corpseID, p.ID, p.PosX, p.PosY, p.ChunkIndex, nowSec)
	w.Corpses.Put(corpseID, corpse)

	slot := 0
	if inv, ok := w.Inventories.Get(p.ID); ok {
		slot = drainSlots(w, inv, corpse, slot)
	}
	if hb, ok := w.Hotbars.Get(p.ID); ok {
		slot = drainSlots(w, hb, corpse, slot)
	}
	if eq, ok := w.Equipment.Get(p.ID); ok {
		dropActiveWeapon(w, eq, p, nowSec)
		drainEquipment(w, eq, corpse, &slot)
	}

	w.DeathMarkers.Put(p.ID, &world.DeathMarker{Owner: p.ID, PosX: p.PosX, PosY: p.PosY, At: nowSec})
	p.IsDead = true
	p.DeathTimestamp = nowSec
	p.Flags = world.ActiveFlags{}
	return corpseID
}

// drainSlots moves every occupied slot of a (inventory/hotbar) SlotArray
// into corpse starting at startSlot, clearing the source slot and
// re-pointing each moved ItemInstance's Location. Items beyond the corpse's
// capacity are deleted outright rather than silently left referencing a
// cleared slot — the corpse is sized generously enough that this should
// never trigger in practice.
func drainSlots(w *world.World, src world.SlotArray, corpse *world.Corpse, startSlot int) int {
	slot := startSlot
	for i := 0; i < src.NumSlots(); i++ {
		s := src.GetSlot(i)
		if s.Empty() {
			continue
		}
		it, ok := w.Items.Get(s.InstanceID)
		src.SetSlot(i, 0, 0)
		if !ok {
			continue
		}
		if slot >= corpse.NumSlots() {
			w.DeleteItem(it.InstanceID)
			continue
		}
		corpse.SetSlot(slot, it.InstanceID, it.ItemDefID)
		it.Location = world.InContainer(world.ContainerCorpse, corpse.ContainerID(), slot)
		slot++
	}
	return slot
}

// dropActiveWeapon puts the hand item on the ground next to the corpse
// (spec §4.4: "drop active weapon near corpse"); armor goes into the corpse
// with everything else.
func dropActiveWeapon(w *world.World, eq *world.ActiveEquipment, p *world.Player, nowSec int64) {
	hand := eq.Get(data.EquipHand)
	if hand.Empty() {
		return
	}
	eq.Set(data.EquipHand, world.EquippedItem{})
	it, ok := w.Items.Get(hand.InstanceID)
	if !ok {
		return
	}
	id := w.NextDroppedItemID()
	w.Dropped.Put(id, &world.DroppedItem{
		ID: id, Token: uuid.New(), InstanceID: it.InstanceID,
		PosX: p.PosX + weaponDropOffset, PosY: p.PosY,
		ChunkIndex: p.ChunkIndex, DroppedAt: nowSec,
	})
	it.Location = world.InDropped(id)
}

func drainEquipment(w *world.World, eq *world.ActiveEquipment, corpse *world.Corpse, slot *int) {
	for _, s := range []data.EquipSlot{
		data.EquipHead, data.EquipChest,
		data.EquipLegs, data.EquipFeet, data.EquipHands, data.EquipBack,
	} {
		item := eq.Get(s)
		if item.Empty() {
			continue
		}
		it, ok := w.Items.Get(item.InstanceID)
		if ok && *slot < corpse.NumSlots() {
			corpse.SetSlot(*slot, it.InstanceID, it.ItemDefID)
			it.Location = world.InContainer(world.ContainerCorpse, corpse.ContainerID(), *slot)
			*slot++
		} else if ok {
			w.DeleteItem(it.InstanceID)
		}
	}
	eq.ClearAll()
}

func findCorpseAt(w *world.World, dm *world.DeathMarker) world.ContainerID {
	var found world.ContainerID
	w.Corpses.Range(func(id world.ContainerID, c *world.Corpse) bool {
		if c.Owner == dm.Owner && c.CreatedAt == dm.At {
			found = id
			return false
		}
		return true
	})
	return found
}

// RespawnAtSleepingBag implements the sleeping-bag respawn option named in
// spec §4.4: the player wakes at an owned bag they've registered as their
// anchor, rather than at a random beach tile.
func RespawnAtSleepingBag(p *world.Player, bagX, bagY float64) error {
	if !p.IsDead {
		return apperr.New(apperr.StateViolation, "player is not dead")
	}
	resetOnRespawn(p, bagX, bagY)
	return nil
}

// BeachCandidate is one coastal tile offered to RespawnAtBeach; Valid
// reports whether it currently passes placement/collision validation.
type BeachCandidate struct {
	X, Y  float64
	Valid func() bool
}

// maxBeachSpawnAttempts bounds how many candidates RespawnAtBeach will
// check before forcing acceptance of the final candidate, so respawn can
// never stall indefinitely on a beach with no collision-clear tile (spec
// §4.4: "force a beach tile after N tries rather than searching forever").
const maxBeachSpawnAttempts = 8

// RespawnAtBeach implements the random-coastal-beach respawn option. It
// tries at most maxBeachSpawnAttempts candidates for one that validates;
// if none does, it forces acceptance of the final candidate in the list,
// which goes untried when the list is longer than that bound.
func RespawnAtBeach(p *world.Player, candidates []BeachCandidate) error {
	if !p.IsDead {
		return apperr.New(apperr.StateViolation, "player is not dead")
	}
	if len(candidates) == 0 {
		return apperr.New(apperr.StateViolation, "no beach candidates available")
	}
	chosen := candidates[len(candidates)-1]
	for i, c := range candidates {
		if i >= maxBeachSpawnAttempts {
			break
		}
		if c.Valid == nil || c.Valid() {
			chosen = c
			break
		}
	}
	resetOnRespawn(p, chosen.X, chosen.Y)
	return nil
}

func resetOnRespawn(p *world.Player, x, y float64) {
	p.PosX, p.PosY = x, y
	p.IsDead = false
	p.Stats.Health = world.MaxHealth / 2
	p.Stats.Hunger = world.MaxHunger
	p.Stats.Thirst = world.MaxThirst
	p.Stats.Warmth = world.MaxWarmth
}

// KnockOut implements the non-terminal alternative to death (spec §4.4): the
// player loses command admission and is scheduled for recovery rather than
// a corpse/respawn cycle.
func KnockOut(w *world.World, p *world.Player, nowSec int64) {
	p.IsKnockedOut = true
	w.KnockedOut.Put(p.ID, &world.KnockedOutStatus{
		Owner: p.ID, KnockedAt: nowSec, RecoverAfter: nowSec + knockedOutDefaultRecoverSecs,
	})
}

// Recover clears a knocked-out player's non-terminal state once its
// recovery schedule fires.
func Recover(w *world.World, p *world.Player) {
	p.IsKnockedOut = false
	w.KnockedOut.Delete(p.ID)
}
