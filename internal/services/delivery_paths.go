package services

import (
	"context"
	"courier-tracking-service/internal/domain"
	"courier-tracking-service/internal/ports"
	"fmt"

	"golang.org/x/sync/errgroup"
)

const maxConcurrentDistanceLookups = 5

// DeliveryPaths lists the remaining leg of every busy courier in state.
//
// A courier carrying an undelivered package heads to that package's
// destination; any other busy courier is returning to the hub. Idle couriers
// have no path. Distances come from provider when it is non-nil, with at most
// five lookups in flight. Paths are returned in courier id order.
func DeliveryPaths(
	ctx context.Context,
	state domain.GlobalState,
	provider ports.DistanceProvider,
) ([]domain.DeliveryPath, error) {
	packages := make(map[string]domain.Package, len(state.Packages))
	for _, p := range state.Packages {
		packages[p.ID] = p
	}

	paths := make([]domain.DeliveryPath, 0, len(state.Couriers))
	for _, c := range state.Couriers {
		if c.Idle {
			continue
		}

		path := domain.DeliveryPath{
			CourierID: c.ID,
			Purpose:   domain.PathReturning,
			From:      c.Location,
			To:        state.Central,
		}
		if pkg, ok := packages[c.PackageID]; ok && !pkg.Delivered {
			path.PackageID = pkg.ID
			path.Purpose = domain.PathDelivering
			path.To = pkg.Destination
		}
		paths = append(paths, path)
	}

	if provider == nil || len(paths) == 0 {
		return paths, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentDistanceLookups)

	for i := range paths {
		g.Go(func() error {
			p := &paths[i]
			r, err := provider.GetDistance(gctx, p.From, p.To)
			if err != nil {
				return fmt.Errorf("delivery paths: courier %s: get distance %s -> %s: %w",
					p.CourierID, p.From.Key(), p.To.Key(), err)
			}
			p.DistanceMeters = r.DistanceMeters
			p.DurationSeconds = r.DurationSeconds
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
