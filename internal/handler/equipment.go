package handler

import (
	"math"

	"github.com/soitun/survivalcore/internal/apperr"
	"github.com/soitun/survivalcore/internal/data"
	"github.com/soitun/survivalcore/internal/world"
)

// EquipItem implements spec §6's equip_armor and its weapon/tool
// counterpart: moves an inventory/hotbar item into the equipment slot its
// definition names, swapping out whatever already occupied that slot.
func (d *Deps) EquipItem(actor world.PlayerID, instanceID world.ItemInstanceID) error {
	p, err := d.requireActor(actor)
	if err != nil {
		return err
	}
	it, ok := d.World.Items.Get(instanceID)
	if !ok {
		return apperr.New(apperr.NotFound, "item instance not found")
	}
	if it.Location.Kind != world.LocInventory && it.Location.Kind != world.LocHotbar {
		return apperr.New(apperr.OwnershipViolation, "item is not in the player's own slots")
	}
	if it.Location.Owner != p.ID {
		return apperr.New(apperr.OwnershipViolation, "item does not belong to the actor")
	}
	if it.IsBroken() {
		return apperr.New(apperr.ResourceBroken, "item is broken")
	}
	def, ok := it.Def(d.Items)
	if !ok || def.EquipSlot == data.EquipNone {
		return apperr.New(apperr.TypeViolation, "item is not equippable")
	}
	eq, ok := d.World.Equipment.Get(p.ID)
	if !ok {
		return apperr.New(apperr.NotFound, "player equipment not found")
	}

	current := eq.Get(def.EquipSlot)
	if !current.Empty() {
		if err := d.unequipInto(p, eq, def.EquipSlot); err != nil {
			return err
		}
	}

	clearSlotReference(d, it)
	eq.Set(def.EquipSlot, world.EquippedItem{InstanceID: it.InstanceID, DefID: it.ItemDefID})
	it.Location = world.InEquipped(p.ID, def.EquipSlot)
	return nil
}

// clearSlotReference removes it's old slot-array reference without going
// through the inventory engine's MergeOrPlaceIntoSlot (there's no
// destination slot yet — the destination is the equipment union, which
// Location already models as its own arm).
func clearSlotReference(d *Deps, it *world.ItemInstance) {
	switch it.Location.Kind {
	case world.LocInventory:
		if inv, ok := d.World.Inventories.Get(it.Location.Owner); ok {
			inv.SetSlot(it.Location.SlotIndex, 0, 0)
		}
	case world.LocHotbar:
		if hb, ok := d.World.Hotbars.Get(it.Location.Owner); ok {
			hb.SetSlot(it.Location.SlotIndex, 0, 0)
		}
	}
}

// unequipInto moves whatever currently occupies slot back into the actor's
// hotbar, falling back to inventory, the same placement order
// QuickMoveFromContainer uses.
func (d *Deps) unequipInto(p *world.Player, eq *world.ActiveEquipment, slot data.EquipSlot) error {
	current := eq.Get(slot)
	it, ok := d.World.Items.Get(current.InstanceID)
	if !ok {
		eq.Set(slot, world.EquippedItem{})
		return nil
	}
	hotbar, ok := d.World.Hotbars.Get(p.ID)
	if !ok {
		return apperr.New(apperr.NotFound, "player hotbar not found")
	}
	if idx := firstEmpty(hotbar); idx >= 0 {
		hotbar.SetSlot(idx, it.InstanceID, it.ItemDefID)
		it.Location = world.InHotbar(p.ID, idx)
		eq.Set(slot, world.EquippedItem{})
		return nil
	}
	inv, ok := d.World.Inventories.Get(p.ID)
	if !ok {
		return apperr.New(apperr.NotFound, "player inventory not found")
	}
	if idx := firstEmpty(inv); idx >= 0 {
		inv.SetSlot(idx, it.InstanceID, it.ItemDefID)
		it.Location = world.InInventory(p.ID, idx)
		eq.Set(slot, world.EquippedItem{})
		return nil
	}
	return apperr.New(apperr.CapacityExceeded, "inventory and hotbar are both full")
}

func firstEmpty(a world.SlotArray) int {
	for i := 0; i < a.NumSlots(); i++ {
		if a.GetSlot(i).Empty() {
			return i
		}
	}
	return -1
}

// UnequipItem implements the inverse of EquipItem for a named slot.
func (d *Deps) UnequipItem(actor world.PlayerID, slot data.EquipSlot) error {
	p, err := d.requireActor(actor)
	if err != nil {
		return err
	}
	eq, ok := d.World.Equipment.Get(p.ID)
	if !ok {
		return apperr.New(apperr.NotFound, "player equipment not found")
	}
	if eq.Get(slot).Empty() {
		return apperr.New(apperr.NotFound, "slot is already empty")
	}
	return d.unequipInto(p, eq, slot)
}

// swingCooldownMs is the minimum spacing between use_equipped_item calls,
// backed by ActiveEquipment.SwingStartMs (spec §3 row field, §7
// CooldownViolation).
const swingCooldownMs = 400

// UseEquippedItem implements spec §6's use_equipped_item(): swings the
// currently-equipped hand item, gated by the fixed swingCooldownMs spacing,
// which is the same for every weapon.
func (d *Deps) UseEquippedItem(actor world.PlayerID, now int64) error {
	p, err := d.requireActor(actor)
	if err != nil {
		return err
	}
	eq, ok := d.World.Equipment.Get(p.ID)
	if !ok {
		return apperr.New(apperr.NotFound, "player equipment not found")
	}
	if eq.Hand.Empty() {
		return apperr.New(apperr.TypeViolation, "no item equipped in hand")
	}
	if now-eq.SwingStartMs < swingCooldownMs {
		return apperr.New(apperr.CooldownViolation, "swing is still on cooldown")
	}
	eq.SwingStartMs = now
	return nil
}

// LoadRangedWeapon implements spec §6's load_ranged_weapon(): consumes one
// ammo stack from the actor's inventory/hotbar into the equipped weapon's
// magazine, up to the weapon definition's magazine_size.
func (d *Deps) LoadRangedWeapon(actor world.PlayerID, ammoInstanceID world.ItemInstanceID) error {
	p, err := d.requireActor(actor)
	if err != nil {
		return err
	}
	eq, ok := d.World.Equipment.Get(p.ID)
	if !ok {
		return apperr.New(apperr.NotFound, "player equipment not found")
	}
	if eq.Hand.Empty() {
		return apperr.New(apperr.TypeViolation, "no weapon equipped")
	}
	weaponDef, ok := d.Items.Get(eq.Hand.DefID)
	if !ok || weaponDef.MagazineSize <= 0 {
		return apperr.New(apperr.TypeViolation, "equipped item is not a ranged weapon")
	}
	ammo, ok := d.World.Items.Get(ammoInstanceID)
	if !ok {
		return apperr.New(apperr.NotFound, "ammo instance not found")
	}
	if ammo.Location.Owner != p.ID || (ammo.Location.Kind != world.LocInventory && ammo.Location.Kind != world.LocHotbar) {
		return apperr.New(apperr.OwnershipViolation, "ammo does not belong to the actor")
	}
	ammoDef, ok := ammo.Def(d.Items)
	if !ok || ammoDef.Category != data.CategoryAmmo {
		return apperr.New(apperr.TypeViolation, "item is not ammunition")
	}
	if eq.MagazineDefID != 0 && eq.MagazineDefID != ammo.ItemDefID {
		return apperr.New(apperr.TypeViolation, "magazine already holds a different ammo type")
	}
	room := weaponDef.MagazineSize - eq.MagazineCount
	if room <= 0 {
		return apperr.New(apperr.CapacityExceeded, "magazine is full")
	}
	loaded := ammo.Quantity
	if loaded > room {
		loaded = room
	}
	eq.MagazineDefID = ammo.ItemDefID
	eq.MagazineCount += loaded
	ammo.Quantity -= loaded
	if ammo.Quantity <= 0 {
		clearSlotReference(d, ammo)
		ammo.Location = world.Unknown()
		d.World.DeleteItem(ammo.InstanceID)
	}
	return nil
}

// projectileSpeed is the flat travel speed every projectile moves at per
// second of the projectile-step tick (spec §4.3); weapon-specific velocity
// is a future refinement, not named by any current reducer.
const projectileSpeed = 900.0
const projectileLifetimeSecs = 2

// FireProjectile implements spec §6's fire_projectile(aim_x, aim_y):
// consumes one round from the magazine and creates a Projectile row the
// projectile-step tick family advances and resolves hits for, since a shot
// travels over multiple ticks rather than hit-scanning instantly.
func (d *Deps) FireProjectile(actor world.PlayerID, aimX, aimY float64, now int64) (world.ProjectileID, error) {
	p, err := d.requireActor(actor)
	if err != nil {
		return 0, err
	}
	eq, ok := d.World.Equipment.Get(p.ID)
	if !ok {
		return 0, apperr.New(apperr.NotFound, "player equipment not found")
	}
	if eq.MagazineCount <= 0 {
		return 0, apperr.New(apperr.StateViolation, "weapon is not loaded")
	}
	weaponDef, _ := d.Items.Get(eq.Hand.DefID)
	eq.MagazineCount--

	dx, dy := aimX-p.PosX, aimY-p.PosY
	dist := dx*dx + dy*dy
	var velX, velY float64
	if dist > 0 {
		inv := projectileSpeed / math.Sqrt(dist)
		velX, velY = dx*inv, dy*inv
	}

	id := d.World.NextProjectileID()
	d.World.Projectiles.Put(id, &world.Projectile{
		ID: id, Owner: p.ID, PosX: p.PosX, PosY: p.PosY,
		VelX: velX, VelY: velY,
		DamageLow: weaponDef.DamageLow, DamageHigh: weaponDef.DamageHigh,
		FiredAt: now, ExpiresAt: now + projectileLifetimeSecs*1000,
	})
	return id, nil
}
