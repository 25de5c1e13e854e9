package dto

import "courier-tracking-service/internal/domain"

type LocationResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type CourierResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Location  LocationResponse `json:"location"`
	Idle      bool             `json:"idle"`
	PackageID *string          `json:"packageId"`
	VehicleID *string          `json:"vehicleId"`
	Status    string           `json:"status"`
}

type PackageResponse struct {
	ID          string           `json:"id"`
	Destination LocationResponse `json:"destination"`
	CourierID   *string          `json:"courierId"`
	Delivered   bool             `json:"delivered"`
	Location    LocationResponse `json:"location"`
	Status      string           `json:"status"`
}

type VehicleResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	CourierID *string          `json:"courierId"`
	Location  LocationResponse `json:"location"`
	Status    string           `json:"status"`
}

type StateResponse struct {
	Tick     int               `json:"tick"`
	Central  LocationResponse  `json:"central"`
	Couriers []CourierResponse `json:"couriers"`
	Packages []PackageResponse `json:"packages"`
	Vehicles []VehicleResponse `json:"vehicles"`
}

func FromLocation(l domain.Location) LocationResponse {
	return LocationResponse{Lat: l.Lat, Lng: l.Lng}
}

// optional maps an absent id to JSON null.
func optional(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

func FromState(s domain.GlobalState) StateResponse {
	res := StateResponse{
		Tick:     s.Tick,
		Central:  FromLocation(s.Central),
		Couriers: make([]CourierResponse, 0, len(s.Couriers)),
		Packages: make([]PackageResponse, 0, len(s.Packages)),
		Vehicles: make([]VehicleResponse, 0, len(s.Vehicles)),
	}

	for _, c := range s.Couriers {
		res.Couriers = append(res.Couriers, CourierResponse{
			ID:        c.ID,
			Name:      c.Name,
			Location:  FromLocation(c.Location),
			Idle:      c.Idle,
			PackageID: optional(c.PackageID),
			VehicleID: optional(c.VehicleID),
			Status:    c.Status(),
		})
	}
	for _, p := range s.Packages {
		res.Packages = append(res.Packages, PackageResponse{
			ID:          p.ID,
			Destination: FromLocation(p.Destination),
			CourierID:   optional(p.CourierID),
			Delivered:   p.Delivered,
			Location:    FromLocation(p.Location),
			Status:      p.Status(),
		})
	}
	for _, v := range s.Vehicles {
		res.Vehicles = append(res.Vehicles, VehicleResponse{
			ID:        v.ID,
			Name:      v.Name,
			CourierID: optional(v.CourierID),
			Location:  FromLocation(v.Location),
			Status:    v.Status(),
		})
	}

	return res
}
