package persist

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/soitun/survivalcore/internal/data"
	"github.com/soitun/survivalcore/internal/world"
)

// The snapshot layer is the write-behind half of spec §5's table storage:
// the in-memory world.World is authoritative during ticks, and SaveSnapshot
// flushes it whole. Rows carry no in-row pointers (spec §6 "relationships
// are by id"), so a flush is a flat walk over every table.

type slotJSON struct {
	Index      int     `json:"i"`
	InstanceID uint64  `json:"inst"`
	DefID      int32   `json:"def"`
	Cook       float64 `json:"cook,omitempty"`
}

func slotsToJSON(a world.SlotArray) string {
	var out []slotJSON
	for i := 0; i < a.NumSlots(); i++ {
		s := a.GetSlot(i)
		if s.Empty() {
			continue
		}
		out = append(out, slotJSON{Index: i, InstanceID: uint64(s.InstanceID), DefID: s.DefID, Cook: s.CookProgressSec})
	}
	raw, _ := json.Marshal(out)
	return string(raw)
}

// slotCooker lets slot restoration keep cook progress on families that
// track it; plain SetSlot drops it by design, which is wrong on load.
type slotCooker interface {
	SetSlotCooking(i int, instance world.ItemInstanceID, defID int32, progress float64)
}

func slotsFromJSON(raw []byte, a world.SlotArray) error {
	var in []slotJSON
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &in); err != nil {
			return err
		}
	}
	for _, s := range in {
		if s.Index < 0 || s.Index >= a.NumSlots() {
			continue
		}
		if c, ok := a.(slotCooker); ok && s.Cook > 0 {
			c.SetSlotCooking(s.Index, world.ItemInstanceID(s.InstanceID), s.DefID, s.Cook)
			continue
		}
		a.SetSlot(s.Index, world.ItemInstanceID(s.InstanceID), s.DefID)
	}
	return nil
}

type locJSON struct {
	Kind          int    `json:"kind"`
	Owner         uint64 `json:"owner,omitempty"`
	Slot          int    `json:"slot,omitempty"`
	EquipSlot     string `json:"equip_slot,omitempty"`
	ContainerType string `json:"container_type,omitempty"`
	ContainerID   uint64 `json:"container_id,omitempty"`
	DroppedID     uint64 `json:"dropped_id,omitempty"`
}

func locationToJSON(l world.Location) string {
	raw, _ := json.Marshal(locJSON{
		Kind: int(l.Kind), Owner: uint64(l.Owner), Slot: l.SlotIndex,
		EquipSlot: string(l.EquipSlot), ContainerType: string(l.ContainerType),
		ContainerID: uint64(l.ContainerID), DroppedID: uint64(l.DroppedID),
	})
	return string(raw)
}

func locationFromJSON(raw []byte) (world.Location, error) {
	var in locJSON
	if err := json.Unmarshal(raw, &in); err != nil {
		return world.Unknown(), err
	}
	return world.Location{
		Kind: world.LocationKind(in.Kind), Owner: world.PlayerID(in.Owner), SlotIndex: in.Slot,
		EquipSlot: world.EquipSlotRef(in.EquipSlot), ContainerType: world.ContainerType(in.ContainerType),
		ContainerID: world.ContainerID(in.ContainerID), DroppedID: world.DroppedItemID(in.DroppedID),
	}, nil
}

type equipRefJSON struct {
	InstanceID uint64 `json:"inst"`
	DefID      int32  `json:"def"`
}

type equipJSON struct {
	Slots         map[string]equipRefJSON `json:"slots,omitempty"`
	SwingStartMs  int64                   `json:"swing_start_ms,omitempty"`
	MagazineDefID int32                   `json:"magazine_def_id,omitempty"`
	MagazineCount int32                   `json:"magazine_count,omitempty"`
}

var equipSlotOrder = []data.EquipSlot{
	data.EquipHand, data.EquipHead, data.EquipChest,
	data.EquipLegs, data.EquipFeet, data.EquipHands, data.EquipBack,
}

func equipmentToJSON(eq *world.ActiveEquipment) string {
	out := equipJSON{
		Slots:         make(map[string]equipRefJSON),
		SwingStartMs:  eq.SwingStartMs,
		MagazineDefID: eq.MagazineDefID,
		MagazineCount: eq.MagazineCount,
	}
	for _, slot := range equipSlotOrder {
		item := eq.Get(slot)
		if item.Empty() {
			continue
		}
		out.Slots[string(slot)] = equipRefJSON{InstanceID: uint64(item.InstanceID), DefID: item.DefID}
	}
	raw, _ := json.Marshal(out)
	return string(raw)
}

func equipmentFromJSON(raw []byte, eq *world.ActiveEquipment) error {
	var in equipJSON
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &in); err != nil {
			return err
		}
	}
	for slot, ref := range in.Slots {
		eq.Set(data.EquipSlot(slot), world.EquippedItem{
			InstanceID: world.ItemInstanceID(ref.InstanceID), DefID: ref.DefID,
		})
	}
	eq.SwingStartMs = in.SwingStartMs
	eq.MagazineDefID = in.MagazineDefID
	eq.MagazineCount = in.MagazineCount
	return nil
}

// volatileTables are replaced wholesale on every snapshot. Terrain
// (world_chunks, monument_zones) is excluded: it is write-once at init and
// flushed separately by SaveTerrain.
const volatileTables = `players, item_instances, containers, sleeping_bags, resource_nodes,
	building_cells, hostiles, dropped_items, player_camping_state`

// SaveSnapshot flushes the entire mutable world into Postgres in one
// transaction: the previous snapshot's rows are dropped and the current
// tables written back. Invoked from the save ticker and on shutdown.
func (db *DB) SaveSnapshot(ctx context.Context, w *world.World) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE "+volatileTables); err != nil {
		return fmt.Errorf("clear snapshot tables: %w", err)
	}

	b := &pgx.Batch{}
	queuePlayers(b, w)
	queueItems(b, w)
	queueContainers(b, w)
	queueBuildingCells(b, w)
	queueHostiles(b, w)
	queueDropped(b, w)
	queueCamping(b, w)
	queueSleepingBags(b, w)
	queueResourceNodes(b, w)

	if err := tx.SendBatch(ctx, b).Close(); err != nil {
		return fmt.Errorf("write snapshot rows: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

func queuePlayers(b *pgx.Batch, w *world.World) {
	w.Players.Range(func(id world.PlayerID, p *world.Player) bool {
		stats, _ := json.Marshal(p.Stats)
		flags, _ := json.Marshal(p.Flags)
		invJSON, hbJSON, eqJSON := "[]", "[]", "{}"
		if inv, ok := w.Inventories.Get(id); ok {
			invJSON = slotsToJSON(inv)
		}
		if hb, ok := w.Hotbars.Get(id); ok {
			hbJSON = slotsToJSON(hb)
		}
		if eq, ok := w.Equipment.Get(id); ok {
			eqJSON = equipmentToJSON(eq)
		}
		b.Queue(`INSERT INTO players
			(id, username, password_hash, sleeping_bag_id, pos_x, pos_y, chunk_index,
			 stats, flags, is_online, is_inside_building, last_hit_time,
			 inventory, hotbar, equipment)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
			uint64(id), p.Username, p.PasswordHash, uint64(p.SleepingBagID),
			p.PosX, p.PosY, p.ChunkIndex,
			string(stats), string(flags), p.IsOnline, p.IsInsideBuilding, p.LastHitTime,
			invJSON, hbJSON, eqJSON)
		return true
	})
}

func queueItems(b *pgx.Batch, w *world.World) {
	w.Items.Range(func(id world.ItemInstanceID, it *world.ItemInstance) bool {
		itemData := "{}"
		if len(it.ItemData) > 0 {
			raw, _ := json.Marshal(it.ItemData)
			itemData = string(raw)
		}
		b.Queue(`INSERT INTO item_instances (instance_id, item_def_id, quantity, location, item_data)
			VALUES ($1,$2,$3,$4,$5)`,
			uint64(id), it.ItemDefID, it.Quantity, locationToJSON(it.Location), itemData)
		return true
	})
}

const insertContainerSQL = `INSERT INTO containers
	(id, container_type, pos_x, pos_y, chunk_index, health, slots, extra, token)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9::uuid)`

func queueContainer(b *pgx.Batch, c world.Container, x, y float64, chunk int64, health float64, extra map[string]any, token *uuid.UUID) {
	raw, _ := json.Marshal(extra)
	var tokenArg any
	if token != nil {
		tokenArg = token.String()
	}
	b.Queue(insertContainerSQL,
		uint64(c.ContainerID()), string(c.ContainerType()),
		x, y, chunk, health, slotsToJSON(c), string(raw), tokenArg)
}

func fuelExtra(f *world.FuelBed) map[string]any {
	return map[string]any{
		"is_burning": f.IsBurning, "fuel_def_id": f.FuelDefID, "fuel_remain": f.FuelRemain,
	}
}

func queueContainers(b *pgx.Batch, w *world.World) {
	w.Campfires.Range(func(_ world.ContainerID, c *world.Campfire) bool {
		queueContainer(b, c, c.PosX, c.PosY, c.ChunkIndex, c.Health, fuelExtra(&c.FuelBed), nil)
		return true
	})
	w.Barbecues.Range(func(_ world.ContainerID, c *world.Barbecue) bool {
		queueContainer(b, c, c.PosX, c.PosY, c.ChunkIndex, c.Health, fuelExtra(&c.FuelBed), nil)
		return true
	})
	w.Furnaces.Range(func(_ world.ContainerID, c *world.Furnace) bool {
		queueContainer(b, c, c.PosX, c.PosY, c.ChunkIndex, c.Health, fuelExtra(&c.FuelBed), nil)
		return true
	})
	w.StorageBoxes.Range(func(_ world.ContainerID, c *world.StorageBox) bool {
		queueContainer(b, c, c.PosX, c.PosY, c.ChunkIndex, c.Health, map[string]any{"owner": uint64(c.Owner)}, nil)
		return true
	})
	w.Stashes.Range(func(_ world.ContainerID, c *world.Stash) bool {
		queueContainer(b, c, c.PosX, c.PosY, c.ChunkIndex, c.Health,
			map[string]any{"owner": uint64(c.Owner), "buried": c.Buried}, nil)
		return true
	})
	w.Hearths.Range(func(_ world.ContainerID, c *world.Hearth) bool {
		queueContainer(b, c, c.PosX, c.PosY, c.ChunkIndex, c.Health, map[string]any{
			"owner": uint64(c.Owner), "foundation_cell": uint64(c.FoundationCell),
			"last_upkeep_paid_at": c.LastUpkeepPaidAt,
		}, nil)
		return true
	})
	w.Corpses.Range(func(_ world.ContainerID, c *world.Corpse) bool {
		token := c.Token
		queueContainer(b, c, c.PosX, c.PosY, c.ChunkIndex, 0, map[string]any{
			"owner": uint64(c.Owner), "created_at": c.CreatedAt,
		}, &token)
		return true
	})
	w.RainCollectors.Range(func(_ world.ContainerID, c *world.RainCollector) bool {
		queueContainer(b, c, c.PosX, c.PosY, c.ChunkIndex, c.Health,
			map[string]any{"capacity_lit": c.CapacityLit}, nil)
		return true
	})
	w.Lanterns.Range(func(_ world.ContainerID, c *world.Lantern) bool {
		queueContainer(b, c, c.PosX, c.PosY, c.ChunkIndex, c.Health, fuelExtra(&c.FuelBed), nil)
		return true
	})
}

const insertBuildingCellSQL = `INSERT INTO building_cells
	(id, kind, owner, cell_x, cell_y, edge, shape, tier, health, is_destroyed, is_open)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`

func queueBuildingCells(b *pgx.Batch, w *world.World) {
	w.Foundations.Range(func(id world.BuildingCellID, c *world.FoundationCell) bool {
		b.Queue(insertBuildingCellSQL, uint64(id), "foundation", uint64(c.Owner),
			c.CellX, c.CellY, nil, int16(c.Shape), c.Tier, c.Health, c.IsDestroyed, false)
		return true
	})
	w.Walls.Range(func(id world.BuildingCellID, c *world.WallCell) bool {
		b.Queue(insertBuildingCellSQL, uint64(id), "wall", uint64(c.Owner),
			c.CellX, c.CellY, int16(c.Edge), nil, c.Tier, c.Health, c.IsDestroyed, false)
		return true
	})
	w.Doors.Range(func(id world.BuildingCellID, c *world.Door) bool {
		b.Queue(insertBuildingCellSQL, uint64(id), "door", uint64(c.Owner),
			c.CellX, c.CellY, int16(c.Edge), nil, c.Tier, c.Health, c.IsDestroyed, c.IsOpen)
		return true
	})
	w.Fences.Range(func(id world.BuildingCellID, c *world.Fence) bool {
		b.Queue(insertBuildingCellSQL, uint64(id), "fence", uint64(c.Owner),
			c.CellX, c.CellY, int16(c.Edge), nil, int32(0), c.Health, c.IsDestroyed, false)
		return true
	})
}

func queueHostiles(b *pgx.Batch, w *world.World) {
	w.Hostiles.Range(func(id world.HostileID, h *world.Hostile) bool {
		b.Queue(`INSERT INTO hostiles
			(id, species, pos_x, pos_y, facing, state, state_changed_at, health, max_health,
			 spawn_origin_x, spawn_origin_y, target_player, last_attack_at, despawn_at, aggroed)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
			uint64(id), string(h.Species), h.PosX, h.PosY, h.Facing,
			int16(h.State), h.StateChangedAt, h.Health, h.MaxHealth,
			h.SpawnOriginX, h.SpawnOriginY, uint64(h.TargetPlayer), h.LastAttackAt,
			h.DespawnAt, h.Hostile)
		return true
	})
}

func queueDropped(b *pgx.Batch, w *world.World) {
	w.Dropped.Range(func(id world.DroppedItemID, it *world.DroppedItem) bool {
		b.Queue(`INSERT INTO dropped_items (id, instance_id, pos_x, pos_y, chunk_index, dropped_by, dropped_at, token)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8::uuid)`,
			uint64(id), uint64(it.InstanceID), it.PosX, it.PosY, it.ChunkIndex,
			uint64(it.DroppedBy), it.DroppedAt, it.Token.String())
		return true
	})
}

func queueCamping(b *pgx.Batch, w *world.World) {
	w.CampingState.Range(func(id world.PlayerID, st *world.PlayerCampingState) bool {
		b.Queue(`INSERT INTO player_camping_state
			(owner, last_check_x, last_check_y, last_check_at, stationary_since_ms, is_camping)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			uint64(id), st.LastCheckX, st.LastCheckY, st.LastCheckAt, st.StationarySinceMs, st.IsCamping)
		return true
	})
}

func queueSleepingBags(b *pgx.Batch, w *world.World) {
	w.SleepingBags.Range(func(id world.ContainerID, bag *world.SleepingBag) bool {
		b.Queue(`INSERT INTO sleeping_bags (id, owner, pos_x, pos_y, chunk_index, placed_at)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			uint64(id), uint64(bag.Owner), bag.PosX, bag.PosY, bag.ChunkIndex, bag.PlacedAt)
		return true
	})
}

func queueResourceNodes(b *pgx.Batch, w *world.World) {
	w.ResourceNodes.Range(func(id world.ResourceNodeID, n *world.ResourceNode) bool {
		b.Queue(`INSERT INTO resource_nodes (id, kind, pos_x, pos_y, chunk_index, health, max_health, depleted_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			uint64(id), int16(n.Kind), n.PosX, n.PosY, n.ChunkIndex, n.Health, n.MaxHealth, n.DepletedAt)
		return true
	})
}

// SaveTerrain flushes the write-once terrain cache and monument zones,
// called once after generate_world rather than on the snapshot ticker.
func (db *DB) SaveTerrain(ctx context.Context, w *world.World, zones []world.MonumentZone) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin terrain save: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE world_chunks, monument_zones"); err != nil {
		return fmt.Errorf("clear terrain tables: %w", err)
	}
	b := &pgx.Batch{}
	w.Chunks.Range(func(_ int64, c *world.WorldChunkData) bool {
		b.Queue(`INSERT INTO world_chunks (chunk_x, chunk_y, tile_types, variants) VALUES ($1,$2,$3,$4)`,
			c.ChunkX, c.ChunkY, c.TileTypes, c.Variants)
		return true
	})
	for _, z := range zones {
		b.Queue(`INSERT INTO monument_zones (id, kind, pos_x, pos_y, radius) VALUES ($1,$2,$3,$4,$5)`,
			z.ID, int16(z.Kind), z.PosX, z.PosY, z.Radius)
	}
	if err := tx.SendBatch(ctx, b).Close(); err != nil {
		return fmt.Errorf("write terrain rows: %w", err)
	}
	return tx.Commit(ctx)
}
