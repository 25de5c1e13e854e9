package services

import (
	"context"
	"courier-tracking-service/internal/adapters/distance"
	"courier-tracking-service/internal/domain"
	"testing"
)

func TestDeliveryPaths(t *testing.T) {
	posA := domain.Location{Lat: 1, Lng: 1}
	posB := domain.Location{Lat: 2, Lng: 2}
	dest := domain.Location{Lat: 5, Lng: 5}

	state := domain.GlobalState{
		Central: hub,
		Couriers: []domain.Courier{
			{ID: "C1", Location: posA, PackageID: "P1"},
			{ID: "C2", Location: posB},
			{ID: "C3", Location: hub, Idle: true},
		},
		Packages: []domain.Package{{ID: "P1", Destination: dest, CourierID: "C1", Location: posA}},
	}

	provider := distance.NewMockDistanceProvider([]distance.MockPair{
		{From: posA, To: dest, Meters: 1200, Seconds: 300},
		{From: posB, To: hub, Meters: 800, Seconds: 240},
	})

	paths, err := DeliveryPaths(context.Background(), state, provider)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(paths) != 2 {
		t.Fatalf("expected 2 paths, got %d", len(paths))
	}
	if p := paths[0]; p.CourierID != "C1" || p.Purpose != domain.PathDelivering || p.To != dest || p.DistanceMeters != 1200 {
		t.Fatalf("first path = %+v", p)
	}
	if p := paths[1]; p.CourierID != "C2" || p.Purpose != domain.PathReturning || p.To != hub || p.DurationSeconds != 240 {
		t.Fatalf("second path = %+v", p)
	}
}

func TestDeliveryPathsPropagatesProviderErrors(t *testing.T) {
	state := domain.GlobalState{
		Central:  hub,
		Couriers: []domain.Courier{{ID: "C1", Location: domain.Location{Lat: 1, Lng: 1}}},
	}

	_, err := DeliveryPaths(context.Background(), state, distance.NewMockDistanceProvider(nil))
	if err == nil {
		t.Fatalf("expected error for missing distance pair")
	}
}

func TestDeliveryPathsWithoutProvider(t *testing.T) {
	state := domain.GlobalState{
		Central:  hub,
		Couriers: []domain.Courier{{ID: "C1", Location: domain.Location{Lat: 1, Lng: 1}}},
	}

	paths, err := DeliveryPaths(context.Background(), state, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 1 || paths[0].DistanceMeters != 0 {
		t.Fatalf("paths = %+v", paths)
	}
}
