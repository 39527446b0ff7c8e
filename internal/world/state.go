package world

import "github.com/soitun/survivalcore/internal/store"

// World is the single composition root for every table named in spec §3:
// players, connections, item instances, every container family, active
// equipment, hostiles, dropped items, building cells, tiles/chunks, and the
// per-player auxiliary rows (camping state, knockout, death marker,
// cooldowns). Grounded on the teacher's world.State (single game-loop
// goroutine, no locking), generalized from a hand-rolled map-per-entity-type
// struct to a set of store.Table instances sharing one handle allocator per
// id space, matching spec §2's "storage substrate" leaf.
type World struct {
	Players        *store.Table[PlayerID, *Player]
	Connections    *store.Table[ConnectionID, *ActiveConnection]
	Items          *store.Table[ItemInstanceID, *ItemInstance]
	Inventories    *store.Table[PlayerID, *PlayerInventory]
	Hotbars        *store.Table[PlayerID, *PlayerHotbar]
	Equipment      *store.Table[PlayerID, *ActiveEquipment]

	Campfires      *store.Table[ContainerID, *Campfire]
	Barbecues      *store.Table[ContainerID, *Barbecue]
	Furnaces       *store.Table[ContainerID, *Furnace]
	StorageBoxes   *store.Table[ContainerID, *StorageBox]
	Stashes        *store.Table[ContainerID, *Stash]
	Hearths        *store.Table[ContainerID, *Hearth]
	Corpses        *store.Table[ContainerID, *Corpse]
	RainCollectors *store.Table[ContainerID, *RainCollector]
	Lanterns       *store.Table[ContainerID, *Lantern]

	SleepingBags *store.Table[ContainerID, *SleepingBag]

	Hostiles      *store.Table[HostileID, *Hostile]
	Dropped       *store.Table[DroppedItemID, *DroppedItem]
	Projectiles   *store.Table[ProjectileID, *Projectile]
	ResourceNodes *store.Table[ResourceNodeID, *ResourceNode]

	Foundations *store.Table[BuildingCellID, *FoundationCell]
	Walls       *store.Table[BuildingCellID, *WallCell]
	Doors       *store.Table[BuildingCellID, *Door]
	Fences      *store.Table[BuildingCellID, *Fence]

	Tiles  *store.Table[int64, *WorldTile] // keyed by ChunkIndex(world tile coords packed via tile.go helper, per-chunk lookup done by worldgen)
	Chunks *store.Table[int64, *WorldChunkData]

	KnockedOut    *store.Table[PlayerID, *KnockedOutStatus]
	DeathMarkers  *store.Table[PlayerID, *DeathMarker]
	CampingState  *store.Table[PlayerID, *PlayerCampingState]
	KillCooldowns *store.Table[PlayerID, *PlayerKillCommandCooldown]
	LastAttacks   *store.Table[PlayerID, *PlayerLastAttackTimestamp]

	Clearer *ContainerClearer

	playerIDs     *store.HandleAllocator
	itemIDs       *store.HandleAllocator
	containerIDs  *store.HandleAllocator
	hostileIDs    *store.HandleAllocator
	buildingIDs   *store.HandleAllocator
	droppedIDs    *store.HandleAllocator
	projectileIDs *store.HandleAllocator
	resourceIDs   *store.HandleAllocator
}

// New builds an empty world with every table initialized and every
// container family registered with the clearer, so
// ClearItemFromAnyContainer (spec §4.1) fans out across all of them from
// the start.
func New() *World {
	w := &World{
		Players:     store.New[PlayerID, *Player](),
		Connections: store.New[ConnectionID, *ActiveConnection](),
		Items:       store.New[ItemInstanceID, *ItemInstance](),
		Inventories: store.New[PlayerID, *PlayerInventory](),
		Hotbars:     store.New[PlayerID, *PlayerHotbar](),
		Equipment:   store.New[PlayerID, *ActiveEquipment](),

		Campfires:      store.New[ContainerID, *Campfire](),
		Barbecues:      store.New[ContainerID, *Barbecue](),
		Furnaces:       store.New[ContainerID, *Furnace](),
		StorageBoxes:   store.New[ContainerID, *StorageBox](),
		Stashes:        store.New[ContainerID, *Stash](),
		Hearths:        store.New[ContainerID, *Hearth](),
		Corpses:        store.New[ContainerID, *Corpse](),
		RainCollectors: store.New[ContainerID, *RainCollector](),
		Lanterns:       store.New[ContainerID, *Lantern](),

		SleepingBags: store.New[ContainerID, *SleepingBag](),

		Hostiles:      store.New[HostileID, *Hostile](),
		Dropped:       store.New[DroppedItemID, *DroppedItem](),
		Projectiles:   store.New[ProjectileID, *Projectile](),
		ResourceNodes: store.New[ResourceNodeID, *ResourceNode](),

		Foundations: store.New[BuildingCellID, *FoundationCell](),
		Walls:       store.New[BuildingCellID, *WallCell](),
		Doors:       store.New[BuildingCellID, *Door](),
		Fences:      store.New[BuildingCellID, *Fence](),

		Tiles:  store.New[int64, *WorldTile](),
		Chunks: store.New[int64, *WorldChunkData](),

		KnockedOut:    store.New[PlayerID, *KnockedOutStatus](),
		DeathMarkers:  store.New[PlayerID, *DeathMarker](),
		CampingState:  store.New[PlayerID, *PlayerCampingState](),
		KillCooldowns: store.New[PlayerID, *PlayerKillCommandCooldown](),
		LastAttacks:   store.New[PlayerID, *PlayerLastAttackTimestamp](),

		playerIDs:     store.NewHandleAllocator(0),
		itemIDs:       store.NewHandleAllocator(0),
		containerIDs:  store.NewHandleAllocator(0),
		hostileIDs:    store.NewHandleAllocator(0),
		buildingIDs:   store.NewHandleAllocator(0),
		droppedIDs:    store.NewHandleAllocator(0),
		projectileIDs: store.NewHandleAllocator(0),
		resourceIDs:   store.NewHandleAllocator(0),
	}

	w.Clearer = NewContainerClearer()
	w.Clearer.Register(CampfireFamily{Table: w.Campfires})
	w.Clearer.Register(BarbecueFamily{Table: w.Barbecues})
	w.Clearer.Register(FurnaceFamily{Table: w.Furnaces})
	w.Clearer.Register(StorageBoxFamily{Table: w.StorageBoxes})
	w.Clearer.Register(StashFamily{Table: w.Stashes})
	w.Clearer.Register(HearthFamily{Table: w.Hearths})
	w.Clearer.Register(CorpseFamily{Table: w.Corpses})
	w.Clearer.Register(RainCollectorFamily{Table: w.RainCollectors})
	w.Clearer.Register(LanternFamily{Table: w.Lanterns})

	return w
}

func (w *World) NextPlayerID() PlayerID         { return PlayerID(w.playerIDs.Next()) }
func (w *World) NextItemInstanceID() ItemInstanceID { return ItemInstanceID(w.itemIDs.Next()) }
func (w *World) NextContainerID() ContainerID   { return ContainerID(w.containerIDs.Next()) }
func (w *World) NextHostileID() HostileID       { return HostileID(w.hostileIDs.Next()) }
func (w *World) NextBuildingCellID() BuildingCellID { return BuildingCellID(w.buildingIDs.Next()) }
func (w *World) NextDroppedItemID() DroppedItemID { return DroppedItemID(w.droppedIDs.Next()) }
func (w *World) NextProjectileID() ProjectileID { return ProjectileID(w.projectileIDs.Next()) }
func (w *World) NextResourceNodeID() ResourceNodeID { return ResourceNodeID(w.resourceIDs.Next()) }

// RegisterPlayer implements the entity-creation half of spec §6's
// register_player: creates a new Player row (fresh id) plus its empty
// inventory/hotbar/equipment rows on every call. It does not look up
// existing usernames; handler.RegisterPlayer checks FindPlayerByUsername
// first and only calls this for a name it has not seen.
func (w *World) RegisterPlayer(username string) *Player {
	id := w.NextPlayerID()
	p := &Player{
		ID:       id,
		Username: username,
		Stats: Stats{
			Health: MaxHealth, Hunger: MaxHunger, Thirst: MaxThirst,
			Warmth: MaxWarmth, Stamina: MaxStamina,
		},
	}
	w.Players.Put(id, p)
	w.Inventories.Put(id, NewPlayerInventory(id))
	w.Hotbars.Put(id, NewPlayerHotbar(id))
	w.Equipment.Put(id, &ActiveEquipment{Owner: id})
	return p
}

// FindPlayerByUsername does a linear scan; the teacher keeps a byName
// index for O(1) lookup, but register_player is rare enough (once per new
// identity) that a dedicated secondary index isn't worth the upkeep here —
// the common path through the player's own id is always O(1) via Players.
func (w *World) FindPlayerByUsername(username string) (*Player, bool) {
	var found *Player
	w.Players.Range(func(_ PlayerID, p *Player) bool {
		if p.Username == username {
			found = p
			return false
		}
		return true
	})
	return found, found != nil
}

// Container resolves a (type, id) pair to its concrete Container, the
// lookup every slot-addressed reducer needs (spec §4.1).
func (w *World) Container(ct ContainerType, id ContainerID) (Container, bool) {
	switch ct {
	case ContainerCampfire:
		c, ok := w.Campfires.Get(id)
		return c, ok
	case ContainerBarbecue:
		c, ok := w.Barbecues.Get(id)
		return c, ok
	case ContainerFurnace:
		c, ok := w.Furnaces.Get(id)
		return c, ok
	case ContainerStorageBox:
		c, ok := w.StorageBoxes.Get(id)
		return c, ok
	case ContainerStash:
		c, ok := w.Stashes.Get(id)
		return c, ok
	case ContainerHearth:
		c, ok := w.Hearths.Get(id)
		return c, ok
	case ContainerCorpse:
		c, ok := w.Corpses.Get(id)
		return c, ok
	case ContainerRainCollector:
		c, ok := w.RainCollectors.Get(id)
		return c, ok
	case ContainerLantern:
		c, ok := w.Lanterns.Get(id)
		return c, ok
	default:
		return nil, false
	}
}

// DeleteItem removes an item instance row entirely (quantity reached 0,
// spec §3 ItemInstance invariant: "quantity=0 => deleted").
func (w *World) DeleteItem(id ItemInstanceID) {
	w.Items.Delete(id)
}

// PrimeAllocators advances every handle sequence past the highest id
// currently in its tables, so a world rebuilt from persisted rows never
// re-issues a loaded handle.
func (w *World) PrimeAllocators() {
	var maxPlayer, maxItem, maxContainer, maxHostile, maxBuilding, maxDropped, maxResource uint64
	bump := func(m *uint64, v uint64) {
		if v > *m {
			*m = v
		}
	}
	w.Players.Range(func(id PlayerID, _ *Player) bool { bump(&maxPlayer, uint64(id)); return true })
	w.Items.Range(func(id ItemInstanceID, _ *ItemInstance) bool { bump(&maxItem, uint64(id)); return true })
	w.Hostiles.Range(func(id HostileID, _ *Hostile) bool { bump(&maxHostile, uint64(id)); return true })
	w.Dropped.Range(func(id DroppedItemID, _ *DroppedItem) bool { bump(&maxDropped, uint64(id)); return true })
	w.ResourceNodes.Range(func(id ResourceNodeID, _ *ResourceNode) bool { bump(&maxResource, uint64(id)); return true })

	bumpBuilding := func(id BuildingCellID) { bump(&maxBuilding, uint64(id)) }
	w.Foundations.Range(func(id BuildingCellID, _ *FoundationCell) bool { bumpBuilding(id); return true })
	w.Walls.Range(func(id BuildingCellID, _ *WallCell) bool { bumpBuilding(id); return true })
	w.Doors.Range(func(id BuildingCellID, _ *Door) bool { bumpBuilding(id); return true })
	w.Fences.Range(func(id BuildingCellID, _ *Fence) bool { bumpBuilding(id); return true })

	bumpContainer := func(id ContainerID) { bump(&maxContainer, uint64(id)) }
	w.Campfires.Range(func(id ContainerID, _ *Campfire) bool { bumpContainer(id); return true })
	w.Barbecues.Range(func(id ContainerID, _ *Barbecue) bool { bumpContainer(id); return true })
	w.Furnaces.Range(func(id ContainerID, _ *Furnace) bool { bumpContainer(id); return true })
	w.StorageBoxes.Range(func(id ContainerID, _ *StorageBox) bool { bumpContainer(id); return true })
	w.Stashes.Range(func(id ContainerID, _ *Stash) bool { bumpContainer(id); return true })
	w.Hearths.Range(func(id ContainerID, _ *Hearth) bool { bumpContainer(id); return true })
	w.Corpses.Range(func(id ContainerID, _ *Corpse) bool { bumpContainer(id); return true })
	w.RainCollectors.Range(func(id ContainerID, _ *RainCollector) bool { bumpContainer(id); return true })
	w.Lanterns.Range(func(id ContainerID, _ *Lantern) bool { bumpContainer(id); return true })
	w.SleepingBags.Range(func(id ContainerID, _ *SleepingBag) bool { bumpContainer(id); return true })

	w.playerIDs.Reserve(maxPlayer)
	w.itemIDs.Reserve(maxItem)
	w.containerIDs.Reserve(maxContainer)
	w.hostileIDs.Reserve(maxHostile)
	w.buildingIDs.Reserve(maxBuilding)
	w.droppedIDs.Reserve(maxDropped)
	w.resourceIDs.Reserve(maxResource)
}
