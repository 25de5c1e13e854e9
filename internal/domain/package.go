package domain

// Represents a single delivery unit as reconstructed at one tick.
// Location is the delivering courier's location while in transit,
// the destination once delivered, and the central hub otherwise.
type Package struct {
	ID          string
	Destination Location
	CourierID   string
	Delivered   bool
	Location    Location
}

func NewPackage(row PackageRow, location Location) Package {
	return Package{
		ID:          row.ID,
		Destination: row.Destination,
		CourierID:   row.CourierID,
		Delivered:   row.Delivered,
		Location:    location,
	}
}

// Status is the short label shown next to a package in listings.
func (p Package) Status() string {
	switch {
	case p.Delivered:
		return "Delivered"
	case p.CourierID != "":
		return "In Transit"
	default:
		return "Pending"
	}
}
