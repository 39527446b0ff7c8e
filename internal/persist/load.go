package persist

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/soitun/survivalcore/internal/data"
	"github.com/soitun/survivalcore/internal/world"
)

// extra-map readers: JSON numbers decode as float64, so every typed field
// goes through one of these.
func extraF64(m map[string]any, k string) float64 {
	v, _ := m[k].(float64)
	return v
}

func extraU64(m map[string]any, k string) uint64 { return uint64(extraF64(m, k)) }
func extraI64(m map[string]any, k string) int64  { return int64(extraF64(m, k)) }

func extraBool(m map[string]any, k string) bool {
	v, _ := m[k].(bool)
	return v
}

func restoreFuel(f *world.FuelBed, extra map[string]any) {
	f.IsBurning = extraBool(extra, "is_burning")
	f.FuelDefID = int32(extraF64(extra, "fuel_def_id"))
	f.FuelRemain = extraF64(extra, "fuel_remain")
}

// LoadSnapshot rebuilds the mutable world tables from the last persisted
// snapshot. The caller passes the seeded item table so container allow
// policies (barbecue food, furnace ore) are re-derived the same way
// placement derives them. Allocators are primed afterwards so fresh handles
// never collide with loaded rows.
func (db *DB) LoadSnapshot(ctx context.Context, w *world.World, items *data.ItemTable) error {
	if err := db.loadPlayers(ctx, w); err != nil {
		return err
	}
	if err := db.loadItems(ctx, w); err != nil {
		return err
	}
	if err := db.loadContainers(ctx, w, items); err != nil {
		return err
	}
	if err := db.loadBuildingCells(ctx, w); err != nil {
		return err
	}
	if err := db.loadHostiles(ctx, w); err != nil {
		return err
	}
	if err := db.loadDropped(ctx, w); err != nil {
		return err
	}
	if err := db.loadCamping(ctx, w); err != nil {
		return err
	}
	if err := db.loadSleepingBags(ctx, w); err != nil {
		return err
	}
	if err := db.loadResourceNodes(ctx, w); err != nil {
		return err
	}
	w.PrimeAllocators()
	return nil
}

func (db *DB) loadPlayers(ctx context.Context, w *world.World) error {
	rows, err := db.Pool.Query(ctx, `SELECT id, username, password_hash, sleeping_bag_id,
		pos_x, pos_y, chunk_index, stats, flags, is_inside_building, last_hit_time,
		inventory, hotbar, equipment FROM players`)
	if err != nil {
		return fmt.Errorf("load players: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id, bagID             uint64
			p                     world.Player
			stats, flags          []byte
			inv, hb, eq           []byte
		)
		if err := rows.Scan(&id, &p.Username, &p.PasswordHash, &bagID,
			&p.PosX, &p.PosY, &p.ChunkIndex, &stats, &flags, &p.IsInsideBuilding, &p.LastHitTime,
			&inv, &hb, &eq); err != nil {
			return fmt.Errorf("scan player: %w", err)
		}
		p.ID = world.PlayerID(id)
		p.SleepingBagID = world.ContainerID(bagID)
		if err := json.Unmarshal(stats, &p.Stats); err != nil {
			return fmt.Errorf("player %d stats: %w", id, err)
		}
		if err := json.Unmarshal(flags, &p.Flags); err != nil {
			return fmt.Errorf("player %d flags: %w", id, err)
		}
		// Every identity comes back offline: connections don't survive a
		// restart (spec §3 "presence <=> is_online, eventually").
		p.IsOnline = false
		w.Players.Put(p.ID, &p)

		inventory := world.NewPlayerInventory(p.ID)
		if err := slotsFromJSON(inv, inventory); err != nil {
			return fmt.Errorf("player %d inventory: %w", id, err)
		}
		w.Inventories.Put(p.ID, inventory)

		hotbar := world.NewPlayerHotbar(p.ID)
		if err := slotsFromJSON(hb, hotbar); err != nil {
			return fmt.Errorf("player %d hotbar: %w", id, err)
		}
		w.Hotbars.Put(p.ID, hotbar)

		equipment := &world.ActiveEquipment{Owner: p.ID}
		if err := equipmentFromJSON(eq, equipment); err != nil {
			return fmt.Errorf("player %d equipment: %w", id, err)
		}
		w.Equipment.Put(p.ID, equipment)
	}
	return rows.Err()
}

func (db *DB) loadItems(ctx context.Context, w *world.World) error {
	rows, err := db.Pool.Query(ctx, `SELECT instance_id, item_def_id, quantity, location, item_data FROM item_instances`)
	if err != nil {
		return fmt.Errorf("load items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id            uint64
			it            world.ItemInstance
			loc, itemData []byte
		)
		if err := rows.Scan(&id, &it.ItemDefID, &it.Quantity, &loc, &itemData); err != nil {
			return fmt.Errorf("scan item: %w", err)
		}
		it.InstanceID = world.ItemInstanceID(id)
		if it.Location, err = locationFromJSON(loc); err != nil {
			return fmt.Errorf("item %d location: %w", id, err)
		}
		if len(itemData) > 0 {
			if err := json.Unmarshal(itemData, &it.ItemData); err != nil {
				return fmt.Errorf("item %d item_data: %w", id, err)
			}
		}
		w.Items.Put(it.InstanceID, &it)
	}
	return rows.Err()
}

func (db *DB) loadContainers(ctx context.Context, w *world.World, items *data.ItemTable) error {
	rows, err := db.Pool.Query(ctx, `SELECT id, container_type, pos_x, pos_y, chunk_index,
		health, slots, extra, COALESCE(token::text, '') FROM containers`)
	if err != nil {
		return fmt.Errorf("load containers: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id              uint64
			ct              string
			x, y            float64
			chunk           int64
			health          float64
			slots, extraRaw []byte
			tokenStr        string
		)
		if err := rows.Scan(&id, &ct, &x, &y, &chunk, &health, &slots, &extraRaw, &tokenStr); err != nil {
			return fmt.Errorf("scan container: %w", err)
		}
		extra := map[string]any{}
		if len(extraRaw) > 0 {
			if err := json.Unmarshal(extraRaw, &extra); err != nil {
				return fmt.Errorf("container %d extra: %w", id, err)
			}
		}

		cid := world.ContainerID(id)
		var target world.Container
		switch world.ContainerType(ct) {
		case world.ContainerCampfire:
			c := world.NewCampfire(cid, x, y, chunk)
			c.Health = health
			restoreFuel(&c.FuelBed, extra)
			w.Campfires.Put(cid, c)
			target = c
		case world.ContainerBarbecue:
			c := world.NewBarbecue(cid, x, y, chunk, items.BarbecueAllowed())
			c.Health = health
			restoreFuel(&c.FuelBed, extra)
			w.Barbecues.Put(cid, c)
			target = c
		case world.ContainerFurnace:
			c := world.NewFurnace(cid, x, y, chunk, items.FurnaceAllowed())
			c.Health = health
			restoreFuel(&c.FuelBed, extra)
			w.Furnaces.Put(cid, c)
			target = c
		case world.ContainerStorageBox:
			c := world.NewStorageBox(cid, world.PlayerID(extraU64(extra, "owner")), x, y, chunk)
			c.Health = health
			w.StorageBoxes.Put(cid, c)
			target = c
		case world.ContainerStash:
			c := world.NewStash(cid, world.PlayerID(extraU64(extra, "owner")), x, y, chunk)
			c.Health = health
			c.Buried = extraBool(extra, "buried")
			w.Stashes.Put(cid, c)
			target = c
		case world.ContainerHearth:
			c := world.NewHearth(cid, x, y, chunk,
				world.BuildingCellID(extraU64(extra, "foundation_cell")),
				world.PlayerID(extraU64(extra, "owner")))
			c.Health = health
			c.LastUpkeepPaidAt = extraI64(extra, "last_upkeep_paid_at")
			w.Hearths.Put(cid, c)
			target = c
		case world.ContainerCorpse:
			c := world.NewCorpse(cid, world.PlayerID(extraU64(extra, "owner")), x, y, chunk,
				extraI64(extra, "created_at"))
			if t, err := uuid.Parse(tokenStr); err == nil {
				c.Token = t
			}
			w.Corpses.Put(cid, c)
			target = c
		case world.ContainerRainCollector:
			c := world.NewRainCollector(cid, x, y, chunk)
			c.Health = health
			if capLit := extraF64(extra, "capacity_lit"); capLit > 0 {
				c.CapacityLit = capLit
			}
			w.RainCollectors.Put(cid, c)
			target = c
		case world.ContainerLantern:
			c := world.NewLantern(cid, x, y, chunk)
			c.Health = health
			restoreFuel(&c.FuelBed, extra)
			w.Lanterns.Put(cid, c)
			target = c
		default:
			continue // unknown family left behind by an older build
		}
		if err := slotsFromJSON(slots, target); err != nil {
			return fmt.Errorf("container %d slots: %w", id, err)
		}
	}
	return rows.Err()
}

func (db *DB) loadBuildingCells(ctx context.Context, w *world.World) error {
	rows, err := db.Pool.Query(ctx, `SELECT id, kind, owner, cell_x, cell_y,
		COALESCE(edge, 0), COALESCE(shape, 0), tier, health, is_destroyed, is_open FROM building_cells`)
	if err != nil {
		return fmt.Errorf("load building cells: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id, owner    uint64
			kind         string
			cellX, cellY int32
			edge, shape  int16
			tier         int32
			health       float64
			destroyed    bool
			open         bool
		)
		if err := rows.Scan(&id, &kind, &owner, &cellX, &cellY, &edge, &shape,
			&tier, &health, &destroyed, &open); err != nil {
			return fmt.Errorf("scan building cell: %w", err)
		}
		bid := world.BuildingCellID(id)
		pid := world.PlayerID(owner)
		switch kind {
		case "foundation":
			w.Foundations.Put(bid, &world.FoundationCell{
				ID: bid, Owner: pid, CellX: cellX, CellY: cellY,
				Shape: world.FoundationShape(shape), Tier: tier, Health: health, IsDestroyed: destroyed,
			})
		case "wall":
			w.Walls.Put(bid, &world.WallCell{
				ID: bid, Owner: pid, CellX: cellX, CellY: cellY,
				Edge: world.Edge(edge), Tier: tier, Health: health, IsDestroyed: destroyed,
			})
		case "door":
			w.Doors.Put(bid, &world.Door{
				ID: bid, Owner: pid, CellX: cellX, CellY: cellY,
				Edge: world.Edge(edge), Tier: tier, Health: health, IsDestroyed: destroyed, IsOpen: open,
			})
		case "fence":
			w.Fences.Put(bid, &world.Fence{
				ID: bid, Owner: pid, CellX: cellX, CellY: cellY,
				Edge: world.Edge(edge), Health: health, IsDestroyed: destroyed,
			})
		}
	}
	return rows.Err()
}

func (db *DB) loadHostiles(ctx context.Context, w *world.World) error {
	rows, err := db.Pool.Query(ctx, `SELECT id, species, pos_x, pos_y, facing, state,
		state_changed_at, health, max_health, spawn_origin_x, spawn_origin_y,
		target_player, last_attack_at, despawn_at, aggroed FROM hostiles`)
	if err != nil {
		return fmt.Errorf("load hostiles: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id, target uint64
			h          world.Hostile
			species    string
			state      int16
		)
		if err := rows.Scan(&id, &species, &h.PosX, &h.PosY, &h.Facing, &state,
			&h.StateChangedAt, &h.Health, &h.MaxHealth, &h.SpawnOriginX, &h.SpawnOriginY,
			&target, &h.LastAttackAt, &h.DespawnAt, &h.Hostile); err != nil {
			return fmt.Errorf("scan hostile: %w", err)
		}
		h.ID = world.HostileID(id)
		h.Species = data.Species(species)
		h.State = world.HostileState(state)
		h.TargetPlayer = world.PlayerID(target)
		w.Hostiles.Put(h.ID, &h)
	}
	return rows.Err()
}

func (db *DB) loadDropped(ctx context.Context, w *world.World) error {
	rows, err := db.Pool.Query(ctx, `SELECT id, instance_id, pos_x, pos_y, chunk_index,
		dropped_by, dropped_at, COALESCE(token::text, '') FROM dropped_items`)
	if err != nil {
		return fmt.Errorf("load dropped items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id, instID, by uint64
			it             world.DroppedItem
			tokenStr       string
		)
		if err := rows.Scan(&id, &instID, &it.PosX, &it.PosY, &it.ChunkIndex,
			&by, &it.DroppedAt, &tokenStr); err != nil {
			return fmt.Errorf("scan dropped item: %w", err)
		}
		it.ID = world.DroppedItemID(id)
		it.InstanceID = world.ItemInstanceID(instID)
		it.DroppedBy = world.PlayerID(by)
		if t, err := uuid.Parse(tokenStr); err == nil {
			it.Token = t
		}
		w.Dropped.Put(it.ID, &it)
	}
	return rows.Err()
}

func (db *DB) loadCamping(ctx context.Context, w *world.World) error {
	rows, err := db.Pool.Query(ctx, `SELECT owner, last_check_x, last_check_y,
		last_check_at, stationary_since_ms, is_camping FROM player_camping_state`)
	if err != nil {
		return fmt.Errorf("load camping state: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			owner uint64
			st    world.PlayerCampingState
		)
		if err := rows.Scan(&owner, &st.LastCheckX, &st.LastCheckY,
			&st.LastCheckAt, &st.StationarySinceMs, &st.IsCamping); err != nil {
			return fmt.Errorf("scan camping state: %w", err)
		}
		st.Owner = world.PlayerID(owner)
		w.CampingState.Put(st.Owner, &st)
	}
	return rows.Err()
}

func (db *DB) loadSleepingBags(ctx context.Context, w *world.World) error {
	rows, err := db.Pool.Query(ctx, `SELECT id, owner, pos_x, pos_y, chunk_index, placed_at FROM sleeping_bags`)
	if err != nil {
		return fmt.Errorf("load sleeping bags: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id, owner uint64
			bag       world.SleepingBag
		)
		if err := rows.Scan(&id, &owner, &bag.PosX, &bag.PosY, &bag.ChunkIndex, &bag.PlacedAt); err != nil {
			return fmt.Errorf("scan sleeping bag: %w", err)
		}
		bag.ID = world.ContainerID(id)
		bag.Owner = world.PlayerID(owner)
		w.SleepingBags.Put(bag.ID, &bag)
	}
	return rows.Err()
}

func (db *DB) loadResourceNodes(ctx context.Context, w *world.World) error {
	rows, err := db.Pool.Query(ctx, `SELECT id, kind, pos_x, pos_y, chunk_index,
		health, max_health, depleted_at FROM resource_nodes`)
	if err != nil {
		return fmt.Errorf("load resource nodes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id   uint64
			kind int16
			n    world.ResourceNode
		)
		if err := rows.Scan(&id, &kind, &n.PosX, &n.PosY, &n.ChunkIndex,
			&n.Health, &n.MaxHealth, &n.DepletedAt); err != nil {
			return fmt.Errorf("scan resource node: %w", err)
		}
		n.ID = world.ResourceNodeID(id)
		n.Kind = world.ResourceNodeKind(kind)
		w.ResourceNodes.Put(n.ID, &n)
	}
	return rows.Err()
}

// LoadTerrain rebuilds the chunk cache, the per-tile rows derived from it,
// and the monument zones. Returns the zones and the number of chunks found;
// zero chunks means the world was never generated.
func (db *DB) LoadTerrain(ctx context.Context, w *world.World) ([]world.MonumentZone, int, error) {
	rows, err := db.Pool.Query(ctx, `SELECT chunk_x, chunk_y, tile_types, variants FROM world_chunks`)
	if err != nil {
		return nil, 0, fmt.Errorf("load chunks: %w", err)
	}
	defer rows.Close()
	chunks := 0
	for rows.Next() {
		var (
			cx, cy     int32
			tiles, va  []byte
		)
		if err := rows.Scan(&cx, &cy, &tiles, &va); err != nil {
			return nil, 0, fmt.Errorf("scan chunk: %w", err)
		}
		chunk := world.NewWorldChunkData(cx, cy)
		copy(chunk.TileTypes, tiles)
		copy(chunk.Variants, va)
		w.Chunks.Put(world.ChunkIndex(cx, cy), chunk)
		for ly := int32(0); ly < world.ChunkSize; ly++ {
			for lx := int32(0); lx < world.ChunkSize; lx++ {
				tt, variant := chunk.TileAt(lx, ly)
				wx, wy := cx*world.ChunkSize+lx, cy*world.ChunkSize+ly
				w.Tiles.Put(world.ChunkIndex(wx, wy), &world.WorldTile{
					ChunkX: cx, ChunkY: cy, LocalX: lx, LocalY: ly,
					WorldX: wx, WorldY: wy, Type: tt, Variant: variant,
				})
			}
		}
		chunks++
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	zrows, err := db.Pool.Query(ctx, `SELECT id, kind, pos_x, pos_y, radius FROM monument_zones`)
	if err != nil {
		return nil, 0, fmt.Errorf("load monument zones: %w", err)
	}
	defer zrows.Close()
	var zones []world.MonumentZone
	for zrows.Next() {
		var (
			z    world.MonumentZone
			kind int16
		)
		if err := zrows.Scan(&z.ID, &kind, &z.PosX, &z.PosY, &z.Radius); err != nil {
			return nil, 0, fmt.Errorf("scan monument zone: %w", err)
		}
		z.Kind = world.MonumentZoneKind(kind)
		zones = append(zones, z)
	}
	return zones, chunks, zrows.Err()
}
