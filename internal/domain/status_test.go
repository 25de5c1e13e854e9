package domain

import "testing"

func TestCourierStatus(t *testing.T) {
	cases := []struct {
		name string
		row  CourierRow
		want string
	}{
		{"idle", CourierRow{ID: "C1", PackageID: "P1", VehicleID: "V1"}, "Idle"},
		{"delivering by vehicle", CourierRow{ID: "C1", TripID: "T1", PackageID: "P1", VehicleID: "V1"}, "Delivering - Vehicle"},
		{"delivering on foot", CourierRow{ID: "C1", TripID: "T1", PackageID: "P1"}, "Delivering - Foot"},
		{"returning by vehicle", CourierRow{ID: "C1", TripID: "T1", VehicleID: "V1"}, "Returning - Vehicle"},
		{"returning on foot", CourierRow{ID: "C1", TripID: "T1"}, "Returning - Foot"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NewCourier(tc.row, CentralLocation).Status()
			if got != tc.want {
				t.Fatalf("status = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestPackageAndVehicleStatus(t *testing.T) {
	if got := NewPackage(PackageRow{ID: "P1"}, CentralLocation).Status(); got != "Pending" {
		t.Errorf("pending package status = %q", got)
	}
	if got := NewPackage(PackageRow{ID: "P1", CourierID: "C1"}, CentralLocation).Status(); got != "In Transit" {
		t.Errorf("in transit package status = %q", got)
	}
	if got := NewPackage(PackageRow{ID: "P1", CourierID: "C1", Delivered: true}, CentralLocation).Status(); got != "Delivered" {
		t.Errorf("delivered package status = %q", got)
	}

	if got := NewVehicle(VehicleRow{ID: "V1"}, CentralLocation).Status(); got != "Idle" {
		t.Errorf("idle vehicle status = %q", got)
	}
	if got := NewVehicle(VehicleRow{ID: "V1", CourierID: "C1"}, CentralLocation).Status(); got != "In use" {
		t.Errorf("used vehicle status = %q", got)
	}
}

func TestSameStateIgnoresTick(t *testing.T) {
	a := CourierRow{Tick: 1, ID: "C1", Name: "Ana", TripID: "T1"}
	b := a
	b.Tick = 9
	if !a.SameState(b) {
		t.Fatalf("rows differing only by tick should share state")
	}

	b.PackageID = "P1"
	if a.SameState(b) {
		t.Fatalf("rows with different package should not share state")
	}

	p1 := PackageRow{Tick: 0, ID: "P1", Destination: Location{Lat: 2, Lng: 2}}
	p2 := PackageRow{Tick: 4, ID: "P1", Destination: Location{Lat: 2, Lng: 2}, Delivered: true}
	if p1.SameState(p2) {
		t.Fatalf("delivery change must be a distinct state")
	}
}

func TestGlobalStateEqual(t *testing.T) {
	a := GlobalState{
		Tick:     3,
		Central:  CentralLocation,
		Couriers: []Courier{{ID: "C1", Location: CentralLocation, Idle: true}},
	}
	b := a
	b.Couriers = append([]Courier(nil), a.Couriers...)
	if !a.Equal(b) {
		t.Fatalf("copies should be equal")
	}

	b.Couriers[0].Idle = false
	if a.Equal(b) {
		t.Fatalf("states with different couriers should differ")
	}
}
