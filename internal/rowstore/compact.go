package rowstore

import "courier-tracking-service/internal/domain"

type stateRow[R any] interface {
	domain.Row
	SameState(R) bool
}

// Compact drops rows that repeat the previous state of the same entity.
// Order is preserved, and the surviving rows project to the same state at
// every tick as the input.
func Compact[R stateRow[R]](rows []R) []R {
	out := make([]R, 0, len(rows))
	last := make(map[string]R, len(rows))
	for _, r := range rows {
		if prev, ok := last[r.RowID()]; ok && prev.SameState(r) {
			continue
		}
		last[r.RowID()] = r
		out = append(out, r)
	}
	return out
}

// CompactLogs applies Compact to every log.
func CompactLogs(logs domain.RowLogs) domain.RowLogs {
	return domain.RowLogs{
		Couriers: Compact(logs.Couriers),
		Packages: Compact(logs.Packages),
		Vehicles: Compact(logs.Vehicles),
		Trips:    Compact(logs.Trips),
	}
}
