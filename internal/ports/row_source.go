package ports

import (
	"context"
	"courier-tracking-service/internal/domain"
)

// Port: a boundary for loading the four entity-change logs from a data source.
type RowSource interface {
	// Return the courier, package, vehicle and trip logs, each ordered by tick.
	LoadRows(ctx context.Context) (domain.RowLogs, error)
}
