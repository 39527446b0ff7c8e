package handler

import (
	"github.com/soitun/survivalcore/internal/apperr"
	"github.com/soitun/survivalcore/internal/world"
)

// harvestReach is the swing distance for gathering from a resource node,
// tighter than placementReach since the player works the node directly.
const harvestReach = 48.0

// bareHandDamage applies when nothing (or a non-damaging item) is in hand.
const bareHandDamage = 4.0

// HarvestNode implements the gather command against a tree, stone, or
// basalt column: each swing chips the node's health by the equipped tool's
// damage roll, and the depleting swing rolls the node's yield list into the
// actor's hotbar/inventory (overflow drops at the node). Depleted nodes
// stand down until the global tick's spawn cycle restores them.
func (d *Deps) HarvestNode(actor world.PlayerID, nodeID world.ResourceNodeID, now int64) error {
	p, err := d.requireActor(actor)
	if err != nil {
		return err
	}
	if last, ok := d.World.LastAttacks.Get(actor); ok && now-last.At < attackIntervalMs {
		return apperr.New(apperr.CooldownViolation, "swing is still on cooldown")
	}
	node, ok := d.World.ResourceNodes.Get(nodeID)
	if !ok {
		return apperr.New(apperr.NotFound, "resource node not found")
	}
	if node.Depleted() {
		return apperr.New(apperr.StateViolation, "resource node is depleted")
	}
	dx, dy := node.PosX-p.PosX, node.PosY-p.PosY
	if dx*dx+dy*dy > harvestReach*harvestReach {
		return apperr.New(apperr.DistanceViolation, "resource node is out of reach")
	}

	dmg := bareHandDamage
	if eq, ok := d.World.Equipment.Get(actor); ok && !eq.Hand.Empty() {
		if it, ok := d.World.Items.Get(eq.Hand.InstanceID); ok && it.IsBroken() {
			return apperr.New(apperr.ResourceBroken, "tool is broken")
		}
		if def, ok := d.Items.Get(eq.Hand.DefID); ok && def.DamageHigh > 0 {
			dmg = (def.DamageLow + def.DamageHigh) / 2
		}
	}

	d.World.LastAttacks.Put(actor, &world.PlayerLastAttackTimestamp{Owner: actor, At: now})
	node.Health -= dmg
	if !node.Depleted() {
		return nil
	}
	node.Health = 0
	node.DepletedAt = now / 1000
	d.payOutYields(p, node)
	return nil
}

// payOutYields rolls the node's seeded yield list and hands each rolled
// stack to the harvester (spec §4.3's resource spawn cycle is the other
// half: the node itself regrows later).
func (d *Deps) payOutYields(p *world.Player, node *world.ResourceNode) {
	if d.Yields == nil {
		return
	}
	for _, y := range d.Yields.Get(node.YieldSourceID()) {
		if d.Rng != nil && y.Chance < 1_000_000 && d.Rng.Intn(1_000_000) >= y.Chance {
			continue
		}
		qty := y.Min
		if d.Rng != nil && y.Max > y.Min {
			qty += d.Rng.Int31n(y.Max - y.Min + 1)
		}
		if qty <= 0 {
			continue
		}
		id := d.World.NextItemInstanceID()
		inst := &world.ItemInstance{
			InstanceID: id, ItemDefID: y.ItemDefID, Quantity: qty,
			Location: world.Unknown(),
		}
		d.World.Items.Put(id, inst)
		d.Inventory.GiveOrDrop(p, inst, node.PosX, node.PosY, node.ChunkIndex)
	}
}
