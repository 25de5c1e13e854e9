package services

import (
	"courier-tracking-service/internal/domain"
	"sort"
)

// LatestAsOf returns, for every entity id, the latest row at or before tick.
//
// rows must be ordered by non-decreasing tick. The cut-off is located with a
// binary search, and later rows in the prefix overwrite earlier ones for the
// same id. Ties at exactly tick are included; ids first seen after tick are
// absent from the result.
func LatestAsOf[R domain.Row](rows []R, tick int) map[string]R {
	end := sort.Search(len(rows), func(i int) bool { return rows[i].RowTick() > tick })

	latest := make(map[string]R)
	for _, r := range rows[:end] {
		latest[r.RowID()] = r
	}
	return latest
}
