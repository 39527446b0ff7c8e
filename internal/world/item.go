package world

import "github.com/soitun/survivalcore/internal/data"

// ItemInstance is a concrete item row (spec §3). Quantity>0 is existence;
// quantity==0 is deleted. Location is the single source of truth for where
// the instance lives — the global invariant of spec §3 requires every
// mutation to keep Location and the referring collection in agreement.
type ItemInstance struct {
	InstanceID ItemInstanceID
	ItemDefID  int32
	Quantity   int32
	Location   Location
	ItemData   map[string]any // opaque JSON keys, e.g. water_liters, is_salt_water
}

// WaterLiters reads the well-known item_data key (spec §6).
func (i *ItemInstance) WaterLiters() (float64, bool) {
	v, ok := i.ItemData["water_liters"]
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}

// SetWaterLiters writes the well-known item_data key.
func (i *ItemInstance) SetWaterLiters(v float64) {
	if i.ItemData == nil {
		i.ItemData = make(map[string]any)
	}
	i.ItemData["water_liters"] = v
}

// IsSaltWater reads the well-known item_data key.
func (i *ItemInstance) IsSaltWater() bool {
	v, _ := i.ItemData["is_salt_water"].(bool)
	return v
}

// Durability reads an optional durability fraction in [0,1] from item_data;
// items without the key are treated as undamaged (spec §7 ResourceBroken).
func (i *ItemInstance) Durability() float64 {
	if v, ok := i.ItemData["durability"].(float64); ok {
		return v
	}
	return 1.0
}

func (i *ItemInstance) IsBroken() bool {
	return i.Durability() <= 0
}

// Def resolves the instance's static definition from the item table.
func (i *ItemInstance) Def(items *data.ItemTable) (data.ItemDefinition, bool) {
	return items.Get(i.ItemDefID)
}
