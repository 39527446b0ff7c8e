package system

import (
	"github.com/soitun/survivalcore/internal/scheduler"
	"github.com/soitun/survivalcore/internal/world"
)

// droppedItemLifetimeSecs is how long a DroppedItem survives before the
// despawn tick removes it (spec §4.3 "Dropped-item despawn").
const droppedItemLifetimeSecs = 15 * 60

// droppedDespawnTick removes any DroppedItem whose DroppedAt has aged past
// droppedItemLifetimeSecs, deleting the backing item instance along with it.
func (d *Deps) droppedDespawnTick(row *scheduler.Row, now int64) {
	nowSec := now / 1000
	var expired []world.DroppedItemID
	d.World.Dropped.Range(func(id world.DroppedItemID, item *world.DroppedItem) bool {
		if nowSec-item.DroppedAt >= droppedItemLifetimeSecs {
			expired = append(expired, id)
		}
		return true
	})
	for _, id := range expired {
		item, ok := d.World.Dropped.Get(id)
		if ok {
			d.World.DeleteItem(item.InstanceID)
		}
		d.World.Dropped.Delete(id)
	}
}
