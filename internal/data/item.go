// Package data loads the immutable-after-seeding static definitions that
// back the world: item definitions and NPC species templates, seeded once
// from YAML fixtures at startup the same way the teacher seeds its item and
// NPC tables.
package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ItemCategory distinguishes the action an item is valid for (spec §7
// TypeViolation: "wrong item category for action").
type ItemCategory string

const (
	CategoryResource  ItemCategory = "resource"
	CategoryTool      ItemCategory = "tool"
	CategoryWeapon    ItemCategory = "weapon"
	CategoryArmor     ItemCategory = "armor"
	CategoryFood      ItemCategory = "food"
	CategoryMedical   ItemCategory = "medical"
	CategoryAmmo      ItemCategory = "ammo"
	CategoryFuel      ItemCategory = "fuel"
	CategoryDeployable ItemCategory = "deployable"
	CategoryMisc      ItemCategory = "misc"
)

// EquipSlot is the equipment slot an item occupies when worn/wielded.
type EquipSlot string

const (
	EquipNone  EquipSlot = ""
	EquipHand  EquipSlot = "hand"
	EquipHead  EquipSlot = "head"
	EquipChest EquipSlot = "chest"
	EquipLegs  EquipSlot = "legs"
	EquipFeet  EquipSlot = "feet"
	EquipHands EquipSlot = "hands"
	EquipBack  EquipSlot = "back"
)

// ArmorResist holds the per-damage-type resistance an armor piece grants.
type ArmorResist struct {
	Blunt  float64 `yaml:"blunt"`
	Sharp  float64 `yaml:"sharp"`
	Bullet float64 `yaml:"bullet"`
	Cold   float64 `yaml:"cold"`
}

// ItemDefinition is the immutable-after-seeding template named in spec §3.
// ItemInstance rows reference one of these by ItemDefID.
type ItemDefinition struct {
	ID           int32        `yaml:"id"`
	Name         string       `yaml:"name"`
	Category     ItemCategory `yaml:"category"`
	StackSize    int32        `yaml:"stack_size"`
	EquipSlot    EquipSlot    `yaml:"equip_slot"`
	FuelBurnSecs float64      `yaml:"fuel_burn_secs"`
	DamageLow    float64      `yaml:"damage_low"`
	DamageHigh   float64      `yaml:"damage_high"`
	Armor        ArmorResist  `yaml:"armor"`
	CookTimeSecs float64      `yaml:"cook_time_secs"`
	CookedInto   int32        `yaml:"cooked_into"` // 0 = does not cook
	MagazineSize int32        `yaml:"magazine_size"`
	Placeable    bool         `yaml:"placeable"`
	Recipe       []int32      `yaml:"recipe"` // out of scope to craft, kept as opaque refs

	// WaterCapacityLit is >0 for defs that can hold a water_liters item_data
	// value (spec §6: "presence of water_liters IS the definition"); the
	// instance only gains the key once actually filled.
	WaterCapacityLit float64 `yaml:"water_capacity_lit"`

	// FuelByproductDefID and FuelByproductChance implement the campfire fuel
	// tick's charcoal drop (spec §4.3 "produces charcoal with probability"):
	// each consumed fuel unit of this def has FuelByproductChance odds of
	// depositing one unit of FuelByproductDefID into the appliance.
	FuelByproductDefID  int32   `yaml:"fuel_byproduct_def_id"`
	FuelByproductChance float64 `yaml:"fuel_byproduct_chance"`
}

type itemDefFile struct {
	Items []ItemDefinition `yaml:"items"`
}

// ItemTable holds all seeded item definitions indexed by id.
type ItemTable struct {
	defs map[int32]ItemDefinition
}

// NewItemTable builds an empty table, used by tests that seed definitions
// directly via Put.
func NewItemTable() *ItemTable {
	return &ItemTable{defs: make(map[int32]ItemDefinition)}
}

// LoadItemTable reads item definitions from a YAML fixture.
func LoadItemTable(path string) (*ItemTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read item table: %w", err)
	}
	var f itemDefFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse item table: %w", err)
	}
	t := NewItemTable()
	for _, d := range f.Items {
		t.defs[d.ID] = d
	}
	return t, nil
}

// Put seeds or overwrites a single definition.
func (t *ItemTable) Put(d ItemDefinition) { t.defs[d.ID] = d }

// Get returns the definition for id, or false if never seeded.
func (t *ItemTable) Get(id int32) (ItemDefinition, bool) {
	d, ok := t.defs[id]
	return d, ok
}

// Count returns the number of seeded definitions.
func (t *ItemTable) Count() int { return len(t.defs) }

// BarbecueAllowed derives the set of def ids a barbecue accepts: cookable
// food plus anything that burns. Policy is derived from the seeded defs
// rather than stored per container so a reseeded item table immediately
// applies everywhere.
func (t *ItemTable) BarbecueAllowed() map[int32]bool {
	out := make(map[int32]bool)
	for id, d := range t.defs {
		if d.Category == CategoryFood || d.CookedInto != 0 || d.FuelBurnSecs > 0 {
			out[id] = true
		}
	}
	return out
}

// FurnaceAllowed derives the set of def ids a furnace accepts: smeltable
// resources plus fuel.
func (t *ItemTable) FurnaceAllowed() map[int32]bool {
	out := make(map[int32]bool)
	for id, d := range t.defs {
		if (d.Category == CategoryResource && d.CookedInto != 0) || d.FuelBurnSecs > 0 {
			out[id] = true
		}
	}
	return out
}

// FindByName does a linear scan for the definition with the given name,
// used by the handful of callers that need a well-known item (e.g. "water")
// without hardcoding its numeric id.
func (t *ItemTable) FindByName(name string) (ItemDefinition, bool) {
	for _, d := range t.defs {
		if d.Name == name {
			return d, true
		}
	}
	return ItemDefinition{}, false
}
