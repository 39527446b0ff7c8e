package world

// FuelBed is the mechanical burning state every fuel-driven container
// family embeds (campfire, barbecue, furnace, lantern). Field promotion
// keeps the families' existing IsBurning/FuelDefID/FuelRemain access
// working unchanged while the methods satisfy FueledAppliance.
type FuelBed struct {
	IsBurning  bool
	FuelDefID  int32
	FuelRemain float64 // seconds of burn left in the currently-consuming unit
}

func (f *FuelBed) Burning() bool { return f.IsBurning }

func (f *FuelBed) SetBurning(on bool) {
	f.IsBurning = on
	if !on {
		f.FuelDefID = 0
	}
}

func (f *FuelBed) FuelState() (defID int32, remainSecs float64) {
	return f.FuelDefID, f.FuelRemain
}

func (f *FuelBed) SetFuelState(defID int32, remainSecs float64) {
	f.FuelDefID = defID
	f.FuelRemain = remainSecs
}

// FueledAppliance is the capability the per-appliance tick and the
// toggle-burning reducer share across the four burning families. CookRack
// returns the slot indices whose contents cook while the appliance burns
// (nil for a lantern).
type FueledAppliance interface {
	Container
	FuelSlot() int
	CookRack() []int
	Position() (x, y float64)
	OpenFlame() bool // open flames extinguish in rain; enclosed burners don't

	Burning() bool
	SetBurning(on bool)
	FuelState() (defID int32, remainSecs float64)
	SetFuelState(defID int32, remainSecs float64)
}

// Appliance resolves a container id across the four fuel-burning families.
// Container ids are unique across families (one shared handle sequence), so
// trying each table in turn is unambiguous.
func (w *World) Appliance(id ContainerID) (FueledAppliance, bool) {
	if c, ok := w.Campfires.Get(id); ok {
		return c, true
	}
	if b, ok := w.Barbecues.Get(id); ok {
		return b, true
	}
	if f, ok := w.Furnaces.Get(id); ok {
		return f, true
	}
	if l, ok := w.Lanterns.Get(id); ok {
		return l, true
	}
	return nil, false
}
