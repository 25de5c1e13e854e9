package services

import (
	"cmp"
	"courier-tracking-service/internal/domain"
	"courier-tracking-service/internal/rowstore"
	"slices"
)

// Reconstruct rebuilds the world as of tick.
//
// Evaluation order matters: trips resolve courier locations, and couriers
// resolve package and vehicle locations. The result depends only on
// (tick, store, central); every entity list is sorted by id.
func Reconstruct(store *rowstore.Store, tick int, central domain.Location) domain.GlobalState {
	tripPositions := make(map[string]domain.Location)
	for id, row := range LatestAsOf(store.Trips(), tick) {
		tripPositions[id] = row.Position
	}

	couriers := make([]domain.Courier, 0)
	for _, row := range LatestAsOf(store.Couriers(), tick) {
		location := central
		if pos, ok := tripPositions[row.TripID]; ok && row.TripID != "" {
			location = pos
		}
		couriers = append(couriers, domain.NewCourier(row, location))
	}
	slices.SortFunc(couriers, func(a, b domain.Courier) int { return cmp.Compare(a.ID, b.ID) })

	// Couriers are sorted, so the lowest courier id wins if two claim the same item.
	byPackage := make(map[string]domain.Location)
	byVehicle := make(map[string]domain.Location)
	for _, c := range couriers {
		if _, seen := byPackage[c.PackageID]; c.PackageID != "" && !seen {
			byPackage[c.PackageID] = c.Location
		}
		if _, seen := byVehicle[c.VehicleID]; c.VehicleID != "" && !seen {
			byVehicle[c.VehicleID] = c.Location
		}
	}

	packages := make([]domain.Package, 0)
	for _, row := range LatestAsOf(store.Packages(), tick) {
		location, ok := byPackage[row.ID]
		if !ok {
			location = central
			if row.Delivered {
				location = row.Destination
			}
		}
		packages = append(packages, domain.NewPackage(row, location))
	}
	slices.SortFunc(packages, func(a, b domain.Package) int { return cmp.Compare(a.ID, b.ID) })

	vehicles := make([]domain.Vehicle, 0)
	for _, row := range LatestAsOf(store.Vehicles(), tick) {
		location, ok := byVehicle[row.ID]
		if !ok {
			location = central
		}
		vehicles = append(vehicles, domain.NewVehicle(row, location))
	}
	slices.SortFunc(vehicles, func(a, b domain.Vehicle) int { return cmp.Compare(a.ID, b.ID) })

	return domain.GlobalState{
		Tick:     tick,
		Central:  central,
		Couriers: couriers,
		Packages: packages,
		Vehicles: vehicles,
	}
}
