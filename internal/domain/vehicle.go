package domain

type Vehicle struct {
	ID        string
	Name      string
	CourierID string
	Location  Location
}

func NewVehicle(row VehicleRow, location Location) Vehicle {
	return Vehicle{
		ID:        row.ID,
		Name:      row.Name,
		CourierID: row.CourierID,
		Location:  location,
	}
}

func (v Vehicle) Status() string {
	if v.CourierID != "" {
		return "In use"
	}
	return "Idle"
}
