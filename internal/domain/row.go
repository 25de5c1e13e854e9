package domain

// Row is one timestamped fact about an entity, asserted as of Tick.
// Within a single log rows are ordered by non-decreasing tick.
type Row interface {
	RowID() string
	RowTick() int
}

// Optional references (trip, package, vehicle, courier ids) use the empty
// string for "absent"; a JSON null decodes to the same zero value.

type CourierRow struct {
	Tick      int    `json:"tick"`
	ID        string `json:"id"`
	Name      string `json:"name"`
	TripID    string `json:"tripId,omitempty"`
	PackageID string `json:"packageId,omitempty"`
	VehicleID string `json:"vehicleId,omitempty"`
}

func (r CourierRow) RowID() string { return r.ID }
func (r CourierRow) RowTick() int  { return r.Tick }

// SameState reports whether both rows describe the same courier state,
// ignoring the tick.
func (r CourierRow) SameState(o CourierRow) bool {
	r.Tick, o.Tick = 0, 0
	return r == o
}

type PackageRow struct {
	Tick        int      `json:"tick"`
	ID          string   `json:"id"`
	Destination Location `json:"destination"`
	CourierID   string   `json:"courierId,omitempty"`
	Delivered   bool     `json:"delivered"`
}

func (r PackageRow) RowID() string { return r.ID }
func (r PackageRow) RowTick() int  { return r.Tick }

func (r PackageRow) SameState(o PackageRow) bool {
	r.Tick, o.Tick = 0, 0
	return r == o
}

type VehicleRow struct {
	Tick      int    `json:"tick"`
	ID        string `json:"id"`
	Name      string `json:"name"`
	CourierID string `json:"courierId,omitempty"`
}

func (r VehicleRow) RowID() string { return r.ID }
func (r VehicleRow) RowTick() int  { return r.Tick }

func (r VehicleRow) SameState(o VehicleRow) bool {
	r.Tick, o.Tick = 0, 0
	return r == o
}

type TripRow struct {
	Tick     int      `json:"tick"`
	ID       string   `json:"id"`
	Position Location `json:"position"`
}

func (r TripRow) RowID() string { return r.ID }
func (r TripRow) RowTick() int  { return r.Tick }

func (r TripRow) SameState(o TripRow) bool {
	r.Tick, o.Tick = 0, 0
	return r == o
}

// RowLogs groups the four per-kind logs that make up the fake backend's history.
type RowLogs struct {
	Couriers []CourierRow
	Packages []PackageRow
	Vehicles []VehicleRow
	Trips    []TripRow
}
