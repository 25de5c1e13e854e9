package ports

import (
	"context"
	"courier-tracking-service/internal/domain"
)

// Contract for caching reconstructed snapshots.
// Reconstruction is deterministic per (row logs, central, tick); rows is the
// fingerprint of the logs that produced the snapshot.
type StateCache interface {
	Get(ctx context.Context, rows string, central domain.Location, tick int) (domain.GlobalState, bool, error)
	Put(ctx context.Context, rows string, state domain.GlobalState) error
}
