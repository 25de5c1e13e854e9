package domain

// Courier as reconstructed at one tick. A courier without a trip is idle
// and stationed at the central hub.
type Courier struct {
	ID        string
	Name      string
	Location  Location
	Idle      bool
	PackageID string
	VehicleID string
}

func NewCourier(row CourierRow, location Location) Courier {
	return Courier{
		ID:        row.ID,
		Name:      row.Name,
		Location:  location,
		Idle:      row.TripID == "",
		PackageID: row.PackageID,
		VehicleID: row.VehicleID,
	}
}

func (c Courier) Status() string {
	if c.Idle {
		return "Idle"
	}

	hasPackage := c.PackageID != ""
	hasVehicle := c.VehicleID != ""
	switch {
	case hasPackage && hasVehicle:
		return "Delivering - Vehicle"
	case hasPackage:
		return "Delivering - Foot"
	case hasVehicle:
		return "Returning - Vehicle"
	default:
		return "Returning - Foot"
	}
}
