package fixtures

import (
	"context"
	"courier-tracking-service/internal/rowstore"
	"courier-tracking-service/internal/scenario"
	"errors"
	"testing"
	"testing/fstest"
)

func TestEmbeddedProductionFixturesLoad(t *testing.T) {
	store, err := rowstore.Load(context.Background(), NewLoader(Embedded(), scenario.ProductionFixtures))
	if err != nil {
		t.Fatalf("load production fixtures: %v", err)
	}
	if len(store.Couriers()) == 0 || len(store.Trips()) == 0 {
		t.Fatalf("production fixtures should not be empty: %d couriers, %d trips",
			len(store.Couriers()), len(store.Trips()))
	}
}

func TestEmbeddedMockFixturesLoad(t *testing.T) {
	store, err := rowstore.Load(context.Background(), NewLoader(Embedded(), scenario.MockFixtures))
	if err != nil {
		t.Fatalf("load mock fixtures: %v", err)
	}

	couriers := store.Couriers()
	if len(couriers) != 2 {
		t.Fatalf("mock couriers = %d, want 2", len(couriers))
	}
	if couriers[0].TripID == "" || couriers[1].TripID != "" {
		t.Fatalf("expected C1 on a trip and C2 idle, got %+v", couriers)
	}
}

func TestMalformedFixtureNamesIt(t *testing.T) {
	fsys := fstest.MapFS{
		"c.json": {Data: []byte(`[{"tick":0,"id":"C1","name":"Ana"}]`)},
		"p.json": {Data: []byte(`[{"tick":0,"id":`)},
		"v.json": {Data: []byte(`[]`)},
		"t.json": {Data: []byte(`[]`)},
	}
	names := scenario.Fixtures{Couriers: "c", Packages: "p", Vehicles: "v", Trips: "t"}

	_, err := NewLoader(FSOpener{FS: fsys}, names).LoadRows(context.Background())

	var le *rowstore.LoadError
	if !errors.As(err, &le) {
		t.Fatalf("err = %v, want *rowstore.LoadError", err)
	}
	if le.Fixture != "p" {
		t.Fatalf("fixture = %q, want p", le.Fixture)
	}
}

func TestMissingFixture(t *testing.T) {
	fsys := fstest.MapFS{
		"c.json": {Data: []byte(`[]`)},
		"p.json": {Data: []byte(`[]`)},
		"v.json": {Data: []byte(`[]`)},
	}
	names := scenario.Fixtures{Couriers: "c", Packages: "p", Vehicles: "v", Trips: "t"}

	_, err := NewLoader(FSOpener{FS: fsys}, names).LoadRows(context.Background())

	var le *rowstore.LoadError
	if !errors.As(err, &le) || le.Fixture != "t" {
		t.Fatalf("err = %v, want LoadError for t", err)
	}
}

func TestNullOptionalIDsDecodeAsAbsent(t *testing.T) {
	fsys := fstest.MapFS{
		"c.json": {Data: []byte(`[{"tick":0,"id":"C1","name":"Ana","tripId":null,"packageId":null,"vehicleId":null}]`)},
		"p.json": {Data: []byte(`[]`)},
		"v.json": {Data: []byte(`[]`)},
		"t.json": {Data: []byte(`[]`)},
	}
	names := scenario.Fixtures{Couriers: "c", Packages: "p", Vehicles: "v", Trips: "t"}

	logs, err := NewLoader(FSOpener{FS: fsys}, names).LoadRows(context.Background())
	if err != nil {
		t.Fatalf("LoadRows: %v", err)
	}
	if c := logs.Couriers[0]; c.TripID != "" || c.PackageID != "" || c.VehicleID != "" {
		t.Fatalf("null ids should decode as empty, got %+v", c)
	}
}
